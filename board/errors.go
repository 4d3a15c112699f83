package board

import "errors"

// User-input rejections. They leave all state untouched.
var (
	ErrEmptyBoardName     = errors.New("board name is empty")
	ErrBoardExists        = errors.New("soundboard already exists")
	ErrUnknownBoard       = errors.New("no such soundboard")
	ErrNoBoardSelected    = errors.New("no soundboard selected")
	ErrPositionOutOfRange = errors.New("slot position out of range")
	ErrEmptyPath          = errors.New("no sound file given")
)

var rejections = []error{
	ErrEmptyBoardName,
	ErrBoardExists,
	ErrUnknownBoard,
	ErrNoBoardSelected,
	ErrPositionOutOfRange,
	ErrEmptyPath,
}

// IsRejection reports whether err is a rejected user request rather than a
// failure of storage or playback
func IsRejection(err error) bool {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}
