package ui

import (
	"errors"
	"fmt"
	"os"
	"soundboard/audio"
	"soundboard/board"
	"soundboard/models"
	"soundboard/storage"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPlayer struct {
	played []string
	err    error
}

func (p *recordingPlayer) Play(path string, _ float64) error {
	p.played = append(p.played, path)
	return p.err
}

func newTestWindow(t *testing.T) (*MainWindow, *recordingPlayer) {
	t.Helper()
	return newTestWindowAt(t, t.TempDir())
}

func newTestWindowAt(t *testing.T, dataDir string) (*MainWindow, *recordingPlayer) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	player := &recordingPlayer{}
	boards := board.NewManager(storage.NewManager(dataDir, zap.NewNop()), player, zap.NewNop())
	boards.Load()

	return NewMainWindow(a, boards, zap.NewNop()), player
}

func TestNewBoardTheme(t *testing.T) {
	dark := newBoardTheme(models.ThemeDark)
	assert.Equal(t, rgb(0x2b, 0x2b, 0x2b), dark.Color(theme.ColorNameBackground, theme.VariantLight))
	assert.Equal(t, rgb(0x4c, 0xaf, 0x50), dark.Color(colorNameSlotActive, theme.VariantDark))

	light := newBoardTheme(models.ThemeLight)
	assert.Equal(t, rgb(0xff, 0xff, 0xff), light.Color(theme.ColorNameBackground, theme.VariantDark))
	assert.Equal(t, rgb(0xe0, 0xe0, 0xe0), light.Color(colorNameSlotInactive, theme.VariantDark))
	assert.Equal(t, theme.VariantLight, light.variant)

	unknown := newBoardTheme("sepia")
	assert.Equal(t, models.ThemeDark, unknown.name)
}

func TestToggleLabel(t *testing.T) {
	assert.Equal(t, "🌙", toggleLabel(models.ThemeLight))
	assert.Equal(t, "☀️", toggleLabel(models.ThemeDark))
}

func TestExtensionsOf(t *testing.T) {
	assert.Equal(t, []string{".mp3", ".wav", ".ogg"}, extensionsOf([]string{"*.mp3", "*.wav", "*.ogg"}))
	assert.Empty(t, extensionsOf([]string{"*", "*.*", "song?.mp3"}))
}

func TestSlotButton_Taps(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	var primary, secondary []int
	sb := NewSlotButton(4, 70)
	sb.OnTapped = func(pos int) { primary = append(primary, pos) }
	sb.OnTappedSecondary = func(pos int) { secondary = append(secondary, pos) }

	test.Tap(sb)
	test.TapSecondary(sb)
	test.TapSecondary(sb)

	assert.Equal(t, []int{4}, primary)
	assert.Equal(t, []int{4, 4}, secondary)
}

func TestSlotButton_MinSize(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	sb := NewSlotButton(0, 70)
	sb.SetSlot("horn", true)
	size := sb.MinSize()
	assert.GreaterOrEqual(t, size.Width, float32(70))
	assert.Greater(t, size.Height, float32(70))
}

func TestMainWindow_RequiresBoard(t *testing.T) {
	mw, player := newTestWindow(t)
	chosen := 0
	mw.chooseFile = func(onChosen func(string)) { chosen++ }

	require.Len(t, mw.slots, 6)
	test.Tap(mw.slots[0])
	test.TapSecondary(mw.slots[0])

	assert.Equal(t, 0, chosen)
	assert.Empty(t, player.played)
	assert.NotNil(t, mw.window.Canvas().Overlays().Top(), "a warning should be shown")
}

func TestMainWindow_AssignPlayClear(t *testing.T) {
	mw, player := newTestWindow(t)
	mw.chooseFile = func(onChosen func(string)) { onChosen("/sounds/loud_explosion_effect.wav") }

	mw.createBoard("  Party  ")
	assert.Equal(t, "Party", mw.boardSelect.Selected)
	assert.Equal(t, []string{"Party"}, mw.boardSelect.Options)
	assert.False(t, mw.slots[0].disabled)

	test.Tap(mw.slots[1])
	assert.True(t, mw.slots[1].assigned)
	assert.Equal(t, "loud_explo...", mw.slots[1].label)

	test.Tap(mw.slots[1])
	assert.Equal(t, []string{"/sounds/loud_explosion_effect.wav"}, player.played)

	test.TapSecondary(mw.slots[1])
	assert.False(t, mw.slots[1].assigned)
	assert.Equal(t, models.PlaceholderLabel, mw.slots[1].label)

	slots, _ := mw.boards.Board("Party")
	assert.Empty(t, slots)
}

func TestMainWindow_CancelledFileChoice(t *testing.T) {
	mw, _ := newTestWindow(t)
	mw.chooseFile = func(onChosen func(string)) { onChosen("") }

	mw.createBoard("Party")
	test.Tap(mw.slots[0])

	assert.False(t, mw.slots[0].assigned)
}

func TestMainWindow_DuplicateBoard(t *testing.T) {
	mw, _ := newTestWindow(t)

	mw.createBoard("Party")
	mw.createBoard("Party")
	mw.createBoard("   ")

	assert.Equal(t, []string{"Party"}, mw.boardSelect.Options)
}

func TestMainWindow_EmptyBoardNameWarns(t *testing.T) {
	mw, _ := newTestWindow(t)
	require.Nil(t, mw.window.Canvas().Overlays().Top())

	mw.createBoard("   ")

	assert.NotNil(t, mw.window.Canvas().Overlays().Top(), "an empty name should be reported")
	assert.Empty(t, mw.boardSelect.Options)
	_, selected := mw.boards.ActiveBoard()
	assert.False(t, selected)
}

func TestMainWindow_CloseReportsSaveFailure(t *testing.T) {
	dir := t.TempDir()
	mw, _ := newTestWindowAt(t, dir)
	mw.createBoard("Party")
	mw.window.Canvas().Overlays().Remove(mw.window.Canvas().Overlays().Top())
	require.Nil(t, mw.window.Canvas().Overlays().Top())

	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("in the way"), 0644))

	mw.onClose()

	assert.NotNil(t, mw.window.Canvas().Overlays().Top(), "the failed flush should be shown before closing")
}

func TestPlaybackErrorText(t *testing.T) {
	engineErr := fmt.Errorf("could not play: %w", &audio.EngineError{Op: "load", Path: "/sounds/horn.wav", Err: audio.ErrUnsupportedFormat})
	title, message := playbackErrorText(engineErr)
	assert.Equal(t, "Playback Error", title)
	assert.Contains(t, message, "unsupported audio format")

	title, message = playbackErrorText(errors.New("could not play: disk on fire"))
	assert.Equal(t, "Error", title)
	assert.Equal(t, "An unexpected error: could not play: disk on fire", message)
}

func TestMainWindow_PlaybackFailureShowsDialog(t *testing.T) {
	for name, playErr := range map[string]error{
		"engine":     &audio.EngineError{Op: "load", Path: "/sounds/horn.wav", Err: audio.ErrUnsupportedFormat},
		"unexpected": errors.New("device busy"),
	} {
		t.Run(name, func(t *testing.T) {
			mw, player := newTestWindow(t)
			mw.chooseFile = func(onChosen func(string)) { onChosen("/sounds/horn.wav") }
			mw.createBoard("Party")
			test.Tap(mw.slots[0])
			mw.window.Canvas().Overlays().Remove(mw.window.Canvas().Overlays().Top())
			require.Nil(t, mw.window.Canvas().Overlays().Top())

			player.err = playErr
			test.Tap(mw.slots[0])

			assert.Equal(t, []string{"/sounds/horn.wav"}, player.played)
			assert.NotNil(t, mw.window.Canvas().Overlays().Top())
			assert.True(t, mw.slots[0].assigned, "a failed play leaves the slot alone")
		})
	}
}

func TestMainWindow_SelectBoard(t *testing.T) {
	mw, _ := newTestWindow(t)
	mw.chooseFile = func(onChosen func(string)) { onChosen("/sounds/horn.wav") }

	mw.createBoard("Party")
	test.Tap(mw.slots[2])
	mw.createBoard("Office")
	assert.False(t, mw.slots[2].assigned)

	mw.boardSelect.SetSelected("Party")
	assert.True(t, mw.slots[2].assigned)
	assert.Equal(t, "horn", mw.slots[2].label)
}

func TestMainWindow_ToggleTheme(t *testing.T) {
	mw, _ := newTestWindow(t)
	require.Equal(t, "☀️", mw.themeButton.Text)

	mw.toggleTheme()
	assert.Equal(t, models.ThemeLight, mw.boards.Settings().Theme)
	assert.Equal(t, "🌙", mw.themeButton.Text)

	current, ok := mw.app.Settings().Theme().(*boardTheme)
	require.True(t, ok)
	assert.Equal(t, models.ThemeLight, current.name)
}
