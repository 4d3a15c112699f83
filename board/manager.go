// Package board keeps the soundboard registry and the grid of the active
// board in step with each other and with disk.
package board

import (
	"fmt"
	"sort"
	"soundboard/models"
	"soundboard/storage"
	"strings"

	"go.uber.org/zap"
)

// Player is the audio engine a slot is played through
type Player interface {
	Play(path string, volume float64) error
}

// Manager owns the settings, the registry and the grid of the active board.
// It is not safe for concurrent use; every call runs to completion, including
// its disk write, before returning.
type Manager struct {
	storage *storage.Manager
	player  Player
	logger  *zap.Logger

	document models.Document
	settings *models.Settings
	registry models.Registry

	active   string
	selected bool
	grid     []Slot
}

// NewManager creates a board manager. Call Load before using it.
func NewManager(store *storage.Manager, player Player, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		storage:  store,
		player:   player,
		logger:   logger.Named("board"),
		document: models.DefaultDocument(),
		settings: models.DefaultSettings(),
		registry: models.Registry{},
	}
}

// SetPlayer replaces the audio engine slots are played through
func (m *Manager) SetPlayer(player Player) {
	m.player = player
}

// Load reads settings and boards from storage and resets the grid. No board is
// active afterwards.
func (m *Manager) Load() {
	m.document, m.settings = m.storage.LoadSettings()
	m.registry = m.storage.LoadBoards()
	m.active, m.selected = "", false
	m.grid = make([]Slot, m.settings.SlotCount())
	m.clearGrid()

	m.logger.Info("Loaded soundboards",
		zap.Int("boards", len(m.registry)),
		zap.Int("slots", len(m.grid)),
		zap.String("theme", m.settings.Theme))
}

// Settings returns the typed settings in effect
func (m *Manager) Settings() models.Settings {
	return *m.settings
}

// ToggleTheme switches between the dark and light theme and saves the
// settings. The new theme stays in effect even if saving fails.
func (m *Manager) ToggleTheme() (string, error) {
	theme := models.NextTheme(m.settings.Theme)
	if err := m.document.SetTheme(theme); err != nil {
		return m.settings.Theme, err
	}
	m.settings.Theme = theme
	m.logger.Debug("Theme changed", zap.String("theme", theme))

	return theme, m.storage.SaveSettings(m.document)
}

// Boards returns the board names in sorted order
func (m *Manager) Boards() []string {
	names := m.registry.Names()
	sort.Strings(names)
	return names
}

// Board returns the stored slot assignments of name
func (m *Manager) Board(name string) ([]models.SlotAssignment, bool) {
	slots, ok := m.registry[name]
	if !ok {
		return nil, false
	}
	return append([]models.SlotAssignment(nil), slots...), true
}

// ActiveBoard returns the board mirrored in the grid, if any
func (m *Manager) ActiveBoard() (string, bool) {
	return m.active, m.selected
}

// Grid returns a copy of the grid
func (m *Manager) Grid() []Slot {
	return append([]Slot(nil), m.grid...)
}

// Slot returns the slot at pos
func (m *Manager) Slot(pos int) (Slot, error) {
	if err := m.checkPosition(pos); err != nil {
		return Slot{}, err
	}
	return m.grid[pos], nil
}

// CreateBoard adds an empty board named name with surrounding whitespace
// removed, makes it active and saves. It returns the stored name.
func (m *Manager) CreateBoard(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyBoardName
	}
	if _, exists := m.registry[name]; exists {
		return "", fmt.Errorf("%w: %q", ErrBoardExists, name)
	}

	m.registry[name] = []models.SlotAssignment{}
	m.active, m.selected = name, true
	m.clearGrid()
	m.logger.Info("Created soundboard", zap.String("board", name))

	return name, m.Save()
}

// SelectBoard makes name the active board and replays its assignments into
// the grid. Assignments outside the current grid are skipped; this happens
// when the grid was shrunk after the board was saved.
func (m *Manager) SelectBoard(name string) error {
	slots, ok := m.registry[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBoard, name)
	}

	m.active, m.selected = name, true
	m.clearGrid()

	for _, slot := range slots {
		if slot.Pos < 0 || slot.Pos >= len(m.grid) {
			m.logger.Warn("Ignoring slot outside the grid",
				zap.String("board", name),
				zap.Int("pos", slot.Pos),
				zap.Int("slots", len(m.grid)),
				zap.String("file", slot.File))
			continue
		}
		m.grid[slot.Pos] = Slot{File: slot.File, Label: slot.Name}
	}

	m.logger.Debug("Selected soundboard", zap.String("board", name), zap.Int("assignments", len(slots)))
	return nil
}

// AssignSlot binds file to the slot at pos on the active board and saves
func (m *Manager) AssignSlot(pos int, file string) error {
	if !m.selected {
		return ErrNoBoardSelected
	}
	if err := m.checkPosition(pos); err != nil {
		return err
	}
	file = models.CleanPath(file)
	if file == "" {
		return ErrEmptyPath
	}

	m.grid[pos] = Slot{
		File:  file,
		Label: models.DisplayName(file, m.settings.UI.MaxLabelLength),
	}
	m.logger.Debug("Assigned slot", zap.String("board", m.active), zap.Int("pos", pos), zap.String("file", file))

	return m.Save()
}

// ClearSlot unbinds the slot at pos on the active board and saves
func (m *Manager) ClearSlot(pos int) error {
	if !m.selected {
		return ErrNoBoardSelected
	}
	if err := m.checkPosition(pos); err != nil {
		return err
	}

	m.grid[pos] = emptySlot()
	m.logger.Debug("Cleared slot", zap.String("board", m.active), zap.Int("pos", pos))

	return m.Save()
}

// Play plays the slot at pos at the configured volume. An empty slot is a
// no-op.
func (m *Manager) Play(pos int) error {
	if !m.selected {
		return ErrNoBoardSelected
	}
	slot, err := m.Slot(pos)
	if err != nil {
		return err
	}
	if !slot.Assigned() {
		return nil
	}
	if m.player == nil {
		return fmt.Errorf("could not play %s: no audio engine", slot.File)
	}

	if err := m.player.Play(slot.File, m.settings.Audio.DefaultVolume); err != nil {
		return fmt.Errorf("could not play: %w", err)
	}
	return nil
}

// Save rebuilds the active board from the grid and writes every board to disk.
// The in-memory state is kept when writing fails.
func (m *Manager) Save() error {
	if m.selected {
		m.registry[m.active] = m.assignments()
	}
	return m.storage.SaveBoards(m.registry)
}

// Close flushes the registry to disk
func (m *Manager) Close() error {
	return m.Save()
}

// FixPaths normalizes every stored file path and saves when anything changed.
// It returns the number of assignments that were rewritten.
func (m *Manager) FixPaths() (int, error) {
	fixed := 0
	for name, slots := range m.registry {
		for i, slot := range slots {
			cleaned := models.CleanPath(slot.File)
			if cleaned == slot.File {
				continue
			}
			m.logger.Info("Fixed path",
				zap.String("board", name),
				zap.Int("pos", slot.Pos),
				zap.String("from", slot.File),
				zap.String("to", cleaned))
			slots[i].File = cleaned
			fixed++
		}
	}
	if fixed == 0 {
		return 0, nil
	}

	// The active board is rebuilt from the grid on save, so refresh it first
	if m.selected {
		if err := m.SelectBoard(m.active); err != nil {
			return fixed, err
		}
	}
	return fixed, m.Save()
}

// assignments lists the occupied slots of the grid in position order
func (m *Manager) assignments() []models.SlotAssignment {
	out := []models.SlotAssignment{}
	for pos, slot := range m.grid {
		if !slot.Assigned() {
			continue
		}
		out = append(out, models.SlotAssignment{
			Pos:  pos,
			File: slot.File,
			Name: slot.Label,
		})
	}
	return out
}

func (m *Manager) clearGrid() {
	for i := range m.grid {
		m.grid[i] = emptySlot()
	}
}

func (m *Manager) checkPosition(pos int) error {
	if pos < 0 || pos >= len(m.grid) {
		return fmt.Errorf("%w: %d (grid has %d slots)", ErrPositionOutOfRange, pos, len(m.grid))
	}
	return nil
}
