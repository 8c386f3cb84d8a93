package keypad

import "fmt"

// UnsupportedCharError reports a character with no keypad mapping. Encoding
// aborts on the first one; nothing is partially written.
type UnsupportedCharError struct {
	Char     rune `json:"char"`
	Position int  `json:"position"`
}

// NewUnsupportedCharError creates an UnsupportedCharError for the character
// at the given zero-based position.
func NewUnsupportedCharError(char rune, position int) *UnsupportedCharError {
	return &UnsupportedCharError{
		Char:     char,
		Position: position,
	}
}

func (e *UnsupportedCharError) Error() string {
	return fmt.Sprintf("unsupported character %q at position %d", e.Char, e.Position)
}
