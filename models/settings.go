package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Theme names accepted in the settings document
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Top-level keys of the settings document
const (
	KeyTheme  = "theme"
	KeyWindow = "window"
	KeyAudio  = "audio"
	KeyUI     = "ui"
)

// Settings is the typed view of the settings document
type Settings struct {
	Theme  string         `json:"theme"`
	Window WindowSettings `json:"window"`
	Audio  AudioSettings  `json:"audio"`
	UI     UISettings     `json:"ui"`
}

// WindowSettings controls the main window geometry
type WindowSettings struct {
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	Resizable bool `json:"resizable"`
}

// AudioSettings controls file selection and playback
type AudioSettings struct {
	SupportedFormats []string `json:"supported_formats"` // glob patterns, e.g. "*.mp3"
	DefaultVolume    float64  `json:"default_volume"`    // 0.0 - 1.0
}

// GridSize is the fixed shape of every board
type GridSize struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// UISettings controls the slot grid
type UISettings struct {
	ButtonGrid     GridSize `json:"button_grid"`
	ButtonSize     int      `json:"button_size"` // in pixels
	MaxLabelLength int      `json:"max_label_length"`
}

// DefaultSettings returns default application settings
func DefaultSettings() *Settings {
	return &Settings{
		Theme: ThemeDark,
		Window: WindowSettings{
			Width:     500,
			Height:    350,
			Resizable: false,
		},
		Audio: AudioSettings{
			SupportedFormats: []string{"*.mp3", "*.wav", "*.ogg"},
			DefaultVolume:    0.7,
		},
		UI: UISettings{
			ButtonGrid:     GridSize{Rows: 2, Columns: 3},
			ButtonSize:     70,
			MaxLabelLength: 10,
		},
	}
}

// SlotCount returns the number of slots in the grid
func (s *Settings) SlotCount() int {
	rows, cols := s.UI.ButtonGrid.Rows, s.UI.ButtonGrid.Columns
	if rows <= 0 || cols <= 0 {
		return 0
	}
	return rows * cols
}

// NextTheme returns the theme a toggle switches to
func NextTheme(current string) string {
	if current == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Document is the settings file as stored on disk. Sections are kept as raw
// JSON so that whatever the user wrote under a key survives a load/save cycle.
type Document map[string]json.RawMessage

// DefaultDocument returns the default settings as a document
func DefaultDocument() Document {
	doc, err := NewDocument(DefaultSettings())
	if err != nil {
		// DefaultSettings only holds plain values
		panic(fmt.Sprintf("encode default settings: %v", err))
	}
	return doc
}

// NewDocument encodes typed settings into a document
func NewDocument(s *Settings) (Document, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// BackFill inserts every top-level key of defaults that is missing from d.
// Present keys are left untouched, including their nested contents.
// It returns the inserted keys in sorted order.
func (d Document) BackFill(defaults Document) []string {
	var filled []string
	for key, value := range defaults {
		if _, ok := d[key]; ok {
			continue
		}
		d[key] = append(json.RawMessage(nil), value...)
		filled = append(filled, key)
	}
	sort.Strings(filled)
	return filled
}

// Settings decodes the typed view of the document
func (d Document) Settings() (*Settings, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &s, nil
}

// SetTheme replaces the theme key
func (d Document) SetTheme(theme string) error {
	value, err := json.Marshal(theme)
	if err != nil {
		return err
	}
	d[KeyTheme] = value
	return nil
}
