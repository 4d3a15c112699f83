package ui

import (
	"errors"
	"fmt"
	"soundboard/audio"
	"soundboard/board"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fynestorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"
)

// MainWindow represents the main application window
type MainWindow struct {
	app    fyne.App
	window fyne.Window
	boards *board.Manager
	logger *zap.Logger

	boardSelect *widget.Select
	themeButton *widget.Button
	slots       []*SlotButton

	// updating suppresses the dropdown callback while the window sets it
	updating bool

	// chooseFile asks the user for a sound file and reports the chosen path,
	// or "" when the user cancelled
	chooseFile func(onChosen func(path string))
}

// NewMainWindow creates the main window for boards, which must be loaded
func NewMainWindow(a fyne.App, boards *board.Manager, logger *zap.Logger) *MainWindow {
	if logger == nil {
		logger = zap.NewNop()
	}
	settings := boards.Settings()

	a.Settings().SetTheme(newBoardTheme(settings.Theme))

	window := a.NewWindow("Virtual Soundboard")
	window.Resize(fyne.NewSize(float32(settings.Window.Width), float32(settings.Window.Height)))
	window.SetFixedSize(!settings.Window.Resizable)

	mw := &MainWindow{
		app:    a,
		window: window,
		boards: boards,
		logger: logger.Named("ui"),
	}
	mw.chooseFile = mw.openSoundDialog

	mw.setupUI()
	mw.refreshGrid()

	window.SetCloseIntercept(mw.onClose)

	return mw
}

// onClose flushes the boards before the window goes away. A failed flush is
// shown first and the window closes once the error is dismissed.
func (mw *MainWindow) onClose() {
	err := mw.boards.Close()
	if err == nil {
		mw.window.Close()
		return
	}

	mw.logger.Error("Failed to save soundboards on exit", zap.Error(err))
	errDialog := dialog.NewError(err, mw.window)
	errDialog.SetOnClosed(mw.window.Close)
	errDialog.Show()
}

// ShowAndRun shows the window and runs the application
func (mw *MainWindow) ShowAndRun() {
	mw.window.ShowAndRun()
}

// setupUI sets up the user interface
func (mw *MainWindow) setupUI() {
	settings := mw.boards.Settings()

	mw.boardSelect = widget.NewSelect(mw.boards.Boards(), mw.onBoardSelected)
	mw.boardSelect.PlaceHolder = "Select a soundboard"

	newButton := widget.NewButton("New", mw.newBoard)
	mw.themeButton = widget.NewButton(toggleLabel(settings.Theme), mw.toggleTheme)

	menu := container.NewHBox(mw.boardSelect, newButton, mw.themeButton)

	columns := settings.UI.ButtonGrid.Columns
	if columns <= 0 {
		columns = 1
	}
	grid := container.NewGridWithColumns(columns)

	mw.slots = make([]*SlotButton, len(mw.boards.Grid()))
	for pos := range mw.slots {
		sb := NewSlotButton(pos, float32(settings.UI.ButtonSize))
		sb.OnTapped = mw.onSlotTapped
		sb.OnTappedSecondary = mw.onSlotTappedSecondary
		mw.slots[pos] = sb
		grid.Add(container.NewCenter(sb))
	}

	content := container.NewBorder(container.NewPadded(menu), nil, nil, nil, container.NewPadded(grid))
	mw.window.SetContent(content)
}

// refreshGrid mirrors the board manager's grid into the slot buttons
func (mw *MainWindow) refreshGrid() {
	_, selected := mw.boards.ActiveBoard()
	for pos, slot := range mw.boards.Grid() {
		if pos >= len(mw.slots) {
			break
		}
		mw.slots[pos].SetSlot(slot.Label, slot.Assigned())
		mw.slots[pos].SetEnabled(selected)
	}
}

// onBoardSelected handles a choice in the dropdown
func (mw *MainWindow) onBoardSelected(name string) {
	if mw.updating {
		return
	}
	if err := mw.boards.SelectBoard(name); err != nil {
		mw.showFailure(err)
	}
	mw.refreshGrid()
}

// onSlotTapped plays an assigned slot or asks for a sound for an empty one
func (mw *MainWindow) onSlotTapped(pos int) {
	if !mw.requireBoard() {
		return
	}

	slot, err := mw.boards.Slot(pos)
	if err != nil {
		mw.showFailure(err)
		return
	}
	if !slot.Assigned() {
		mw.addSound(pos)
		return
	}

	if err := mw.boards.Play(pos); err != nil {
		mw.showPlaybackError(err)
	}
}

// onSlotTappedSecondary clears an assigned slot or asks for a sound for an
// empty one
func (mw *MainWindow) onSlotTappedSecondary(pos int) {
	if !mw.requireBoard() {
		return
	}

	slot, err := mw.boards.Slot(pos)
	if err != nil {
		mw.showFailure(err)
		return
	}
	if !slot.Assigned() {
		mw.addSound(pos)
		return
	}

	err = mw.boards.ClearSlot(pos)
	mw.refreshGrid()
	if err != nil {
		mw.showFailure(err)
	}
}

// addSound asks for a file and assigns it to pos
func (mw *MainWindow) addSound(pos int) {
	mw.chooseFile(func(path string) {
		if path == "" {
			return
		}
		err := mw.boards.AssignSlot(pos, path)
		mw.refreshGrid()
		if err != nil {
			mw.showFailure(err)
		}
	})
}

// newBoard asks for a name and creates the board
func (mw *MainWindow) newBoard() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Board name")

	form := dialog.NewForm("New Board", "Create", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Board name:", nameEntry),
		},
		func(confirm bool) {
			if confirm {
				mw.createBoard(nameEntry.Text)
			}
		},
		mw.window)

	form.Resize(fyne.NewSize(300, 150))
	form.Show()
}

// createBoard creates name and makes it the selected board
func (mw *MainWindow) createBoard(name string) {
	created, err := mw.boards.CreateBoard(name)
	switch {
	case errors.Is(err, board.ErrEmptyBoardName):
		dialog.ShowInformation("Invalid Name", "Please enter a name for the soundboard.", mw.window)
		return
	case errors.Is(err, board.ErrBoardExists):
		dialog.ShowInformation("Board Exists",
			fmt.Sprintf("Soundboard '%s' already exists!", strings.TrimSpace(name)), mw.window)
		return
	}

	// A failed save still leaves the board in memory
	mw.updating = true
	mw.boardSelect.SetOptions(mw.boards.Boards())
	mw.boardSelect.SetSelected(created)
	mw.updating = false
	mw.refreshGrid()

	if err != nil {
		dialog.ShowError(err, mw.window)
		return
	}
	dialog.ShowInformation("Success",
		fmt.Sprintf("Soundboard '%s' created successfully!", created), mw.window)
}

// toggleTheme switches between the dark and light palette
func (mw *MainWindow) toggleTheme() {
	name, err := mw.boards.ToggleTheme()
	mw.app.Settings().SetTheme(newBoardTheme(name))
	mw.themeButton.SetText(toggleLabel(name))

	if err != nil {
		dialog.ShowError(err, mw.window)
		return
	}
	dialog.ShowInformation("Theme Changed", "Theme has been applied", mw.window)
}

// requireBoard warns and returns false while no board is active
func (mw *MainWindow) requireBoard() bool {
	if _, ok := mw.boards.ActiveBoard(); ok {
		return true
	}
	dialog.ShowInformation("No Soundboard", "Please create/select a soundboard first!", mw.window)
	return false
}

// showFailure shows rejections as warnings and everything else as errors
func (mw *MainWindow) showFailure(err error) {
	if board.IsRejection(err) {
		mw.logger.Debug("Request rejected", zap.Error(err))
		dialog.ShowInformation("Warning", err.Error(), mw.window)
		return
	}
	mw.logger.Error("Operation failed", zap.Error(err))
	dialog.ShowError(err, mw.window)
}

// showPlaybackError tells engine failures apart from anything else
func (mw *MainWindow) showPlaybackError(err error) {
	mw.logger.Warn("Playback failed", zap.Error(err))
	title, message := playbackErrorText(err)
	dialog.ShowCustom(title, "OK", widget.NewLabel(message), mw.window)
}

// playbackErrorText returns the dialog title and message for a failed play
func playbackErrorText(err error) (string, string) {
	if audio.IsEngineError(err) {
		return "Playback Error", err.Error()
	}
	return "Error", fmt.Sprintf("An unexpected error: %v", err)
}

// openSoundDialog opens the system's native file dialog, or fyne's own when
// none is available
func (mw *MainWindow) openSoundDialog(onChosen func(path string)) {
	patterns := mw.boards.Settings().Audio.SupportedFormats

	if zenity.IsAvailable() {
		filename, err := zenity.SelectFile(
			zenity.Title("Select Sound"),
			zenity.FileFilters{
				{"Audio Files", patterns, true},
			},
		)
		if err == nil {
			onChosen(filename)
			return
		}
		if err == zenity.ErrCanceled {
			onChosen("")
			return
		}
		mw.logger.Warn("Native file dialog failed, falling back", zap.Error(err))
	}

	mw.openFyneFileDialog(patterns, onChosen)
}

// openFyneFileDialog is a fallback that uses the Fyne file dialog
func (mw *MainWindow) openFyneFileDialog(patterns []string, onChosen func(path string)) {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if reader == nil {
			onChosen("") // User cancelled
			return
		}
		defer reader.Close()
		onChosen(reader.URI().Path())
	}, mw.window)

	if extensions := extensionsOf(patterns); len(extensions) > 0 {
		fileDialog.SetFilter(fynestorage.NewExtensionFileFilter(extensions))
	}
	fileDialog.Show()
}

// extensionsOf turns glob patterns such as "*.mp3" into extensions
func extensionsOf(patterns []string) []string {
	var extensions []string
	for _, pattern := range patterns {
		ext := strings.TrimPrefix(pattern, "*")
		if strings.HasPrefix(ext, ".") && !strings.ContainsAny(ext, "*?[") {
			extensions = append(extensions, ext)
		}
	}
	return extensions
}
