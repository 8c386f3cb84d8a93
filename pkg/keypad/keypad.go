// Package keypad implements the T9 symbol mapping between message text and
// the 12-symbol keypad digit alphabet shared by the tone synthesizer and
// detector. All tables are built once at init and never mutated, so every
// function here is safe for concurrent use.
package keypad

import "encoding/json"

// Digit is one keypad symbol: '0'-'9', '*' or '#'. Unknown marks a decoded
// position whose tone pair could not be recognized.
type Digit byte

// Unknown is the placeholder digit for unrecognized or silent segments.
const Unknown Digit = '?'

// Message delimiter characters. Both live on the '0' key.
const (
	DelimiterOpen  = '{'
	DelimiterClose = '}'
)

// DelimiterDigit is the key the two delimiters map to.
const DelimiterDigit Digit = '0'

// keyLetters is the canonical key -> characters table. Candidate order is
// the keypad's printed order and is part of the contract (candidate sets
// are surfaced to users in this order).
var keyLetters = map[Digit]string{
	'2': "ABC",
	'3': "DEF",
	'4': "GHI",
	'5': "JKL",
	'6': "MNO",
	'7': "PQRS",
	'8': "TUV",
	'9': "WXYZ",
	'0': "{}",
}

var forward map[rune]Digit

func init() {
	forward = make(map[rune]Digit, 28)
	for digit, chars := range keyLetters {
		for _, r := range chars {
			forward[r] = digit
		}
	}
}

// String renders the digit as its keypad character.
func (d Digit) String() string {
	return string(rune(d))
}

// Valid reports whether d is one of the 12 keypad symbols.
func (d Digit) Valid() bool {
	switch {
	case d >= '0' && d <= '9':
		return true
	case d == '*' || d == '#':
		return true
	}
	return false
}

// MarshalJSON renders digits as one-character strings instead of bytes.
func (d Digit) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// MarshalYAML renders digits as one-character strings instead of bytes.
func (d Digit) MarshalYAML() (any, error) {
	return d.String(), nil
}

// Sequence is an ordered run of digits, one message's worth.
type Sequence []Digit

// String renders the sequence with no separators, e.g. "42083780".
func (s Sequence) String() string {
	b := make([]byte, len(s))
	for i, d := range s {
		b[i] = byte(d)
	}
	return string(b)
}

// Keys renders the sequence space-separated, e.g. "4 2 0 8 3 7 8 0".
func (s Sequence) Keys() string {
	if len(s) == 0 {
		return ""
	}
	b := make([]byte, 0, len(s)*2-1)
	for i, d := range s {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, byte(d))
	}
	return string(b)
}

// DigitForChar returns the keypad digit for a single supported character.
func DigitForChar(r rune) (Digit, bool) {
	d, ok := forward[r]
	return d, ok
}

// ToDigits converts text to its keypad digit sequence. The supported
// alphabet is uppercase A-Z plus the two delimiters; any other character
// fails fast with an UnsupportedCharError naming it and its position.
func ToDigits(text string) (Sequence, error) {
	digits := make(Sequence, 0, len(text))
	pos := 0
	for _, r := range text {
		d, ok := forward[r]
		if !ok {
			return nil, NewUnsupportedCharError(r, pos)
		}
		digits = append(digits, d)
		pos++
	}
	return digits, nil
}

// Candidates returns the full character candidate set for a digit, in
// keypad order. Digits '1', '*' and '#' carry no supported characters and
// return nil. The slice is freshly allocated on every call.
func Candidates(d Digit) []rune {
	chars, ok := keyLetters[d]
	if !ok {
		return nil
	}
	return []rune(chars)
}
