package models

import (
	"path/filepath"
	"strings"
)

// PlaceholderLabel is shown under a slot with no sound assigned
const PlaceholderLabel = "SoundName"

// Ellipsis marks a truncated display name
const Ellipsis = "..."

// SlotAssignment binds a grid position to a sound file
type SlotAssignment struct {
	Pos  int    `json:"pos"`
	File string `json:"file"` // absolute path
	Name string `json:"name"` // display label
}

// Registry maps a board name to its slot assignments
type Registry map[string][]SlotAssignment

// Names returns the board names in the registry
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	return names
}

// DisplayName derives the slot label for a file: the base name without its
// extension, cut to maxLength runes plus an ellipsis when longer.
// A maxLength of zero or less disables truncation.
func DisplayName(path string, maxLength int) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		// dotfiles such as ".wav" have no stem of their own
		name = base
	}

	runes := []rune(name)
	if maxLength > 0 && len(runes) > maxLength {
		return string(runes[:maxLength]) + Ellipsis
	}
	return name
}

// CleanPath cleans and normalizes a file path
func CleanPath(path string) string {
	// Remove surrounding quotes
	path = strings.Trim(strings.TrimSpace(path), `"'`)
	if path == "" {
		return path
	}

	// Normalize path separators
	path = filepath.Clean(path)

	// Convert to absolute path if it's not already
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err == nil {
			path = absPath
		}
	}

	return path
}
