package board

import "soundboard/models"

// Slot is one grid position as shown to the user
type Slot struct {
	File  string
	Label string
}

// emptySlot returns an unassigned slot
func emptySlot() Slot {
	return Slot{Label: models.PlaceholderLabel}
}

// Assigned reports whether a sound file is bound to the slot
func (s Slot) Assigned() bool {
	return s.File != ""
}
