package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"soundboard/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// SettingsFile holds the settings document
	SettingsFile = "config.json"
	// BoardsFile holds the registry of boards
	BoardsFile = "soundboards.json"
)

// errNotObject is returned when a document decodes to JSON null
var errNotObject = errors.New("document is not a JSON object")

// Manager handles data persistence
type Manager struct {
	dataPath string
	logger   *zap.Logger
}

// DefaultDataPath returns ~/.soundboard, or the current directory when the
// home directory cannot be determined
func DefaultDataPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".soundboard")
}

// NewManager creates a new storage manager rooted at dataPath
func NewManager(dataPath string, logger *zap.Logger) *Manager {
	if dataPath == "" {
		dataPath = DefaultDataPath()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		dataPath: dataPath,
		logger:   logger.Named("storage"),
	}
}

// DataPath returns the directory holding both documents
func (m *Manager) DataPath() string {
	return m.dataPath
}

// SettingsPath returns the location of the settings document
func (m *Manager) SettingsPath() string {
	return filepath.Join(m.dataPath, SettingsFile)
}

// BoardsPath returns the location of the boards document
func (m *Manager) BoardsPath() string {
	return filepath.Join(m.dataPath, BoardsFile)
}

// LoadSettings loads the settings document from disk.
//
// A missing file is created from the defaults. A file that cannot be read or
// decoded is logged and left alone, and the defaults are used in its place.
// Otherwise top-level keys missing from the file are filled in from the
// defaults. Loading never fails.
func (m *Manager) LoadSettings() (models.Document, *models.Settings) {
	filePath := m.SettingsPath()
	defaults := models.DefaultDocument()

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Debug("Settings file does not exist, writing defaults", zap.String("path", filePath))
			if err := m.SaveSettings(defaults); err != nil {
				m.logger.Warn("Failed to write default settings", zap.String("path", filePath), zap.Error(err))
			}
			return defaults, models.DefaultSettings()
		}
		m.logger.Warn("Failed to read settings, using defaults", zap.String("path", filePath), zap.Error(err))
		return defaults, models.DefaultSettings()
	}

	doc, settings, filled, err := decodeSettings(data, defaults)
	if err != nil {
		m.logger.Warn("Failed to load settings, using defaults", zap.String("path", filePath), zap.Error(err))
		return defaults, models.DefaultSettings()
	}
	if len(filled) > 0 {
		m.logger.Debug("Filled missing settings", zap.String("path", filePath), zap.Strings("keys", filled))
	}

	m.logger.Debug("Loaded settings", zap.String("path", filePath), zap.String("theme", settings.Theme))
	return doc, settings
}

// decodeSettings parses data, back-fills it from defaults and returns the
// keys that were filled in
func decodeSettings(data []byte, defaults models.Document) (models.Document, *models.Settings, []string, error) {
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, nil, err
	}
	if doc == nil {
		return nil, nil, nil, errNotObject
	}

	filled := doc.BackFill(defaults)

	settings, err := doc.Settings()
	if err != nil {
		return nil, nil, nil, err
	}
	return doc, settings, filled, nil
}

// SaveSettings saves the settings document to disk
func (m *Manager) SaveSettings(doc models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := m.writeFile(SettingsFile, data); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// LoadBoards loads the registry from disk. A missing file yields an empty
// registry; an unreadable or malformed one is logged and also yields an empty
// registry.
func (m *Manager) LoadBoards() models.Registry {
	filePath := m.BoardsPath()
	m.logger.Debug("Loading boards", zap.String("path", filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("File access error, starting with no boards", zap.String("path", filePath), zap.Error(err))
		} else {
			m.logger.Debug("Boards file does not exist, returning empty registry")
		}
		return models.Registry{}
	}

	var registry models.Registry
	if err := json.Unmarshal(data, &registry); err != nil {
		m.logger.Warn("Failed to decode boards, starting with no boards", zap.String("path", filePath), zap.Error(err))
		return models.Registry{}
	}
	if registry == nil {
		registry = models.Registry{}
	}

	m.logger.Debug("Loaded boards", zap.Int("count", len(registry)))
	return registry
}

// SaveBoards writes the whole registry to disk
func (m *Manager) SaveBoards(registry models.Registry) error {
	out := make(models.Registry, len(registry))
	for name, slots := range registry {
		if slots == nil {
			slots = []models.SlotAssignment{}
		}
		out[name] = slots
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode boards: %w", err)
	}

	m.logger.Debug("Saving boards", zap.String("path", m.BoardsPath()), zap.Int("count", len(out)))
	if err := m.writeFile(BoardsFile, data); err != nil {
		return fmt.Errorf("failed to save soundboards: %w", err)
	}
	return nil
}

// writeFile replaces name in the data directory. The data is written to a
// temporary sibling first so a failed write never truncates the old file.
func (m *Manager) writeFile(name string, data []byte) error {
	if err := os.MkdirAll(m.dataPath, 0755); err != nil {
		return err
	}

	target := filepath.Join(m.dataPath, name)
	tmp := filepath.Join(m.dataPath, fmt.Sprintf(".%s.%s.tmp", name, uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
