package keypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDigitsMapping(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"HC", "42"},
		{"HC{TEST}", "42083780"},
		{"ABC", "222"},
		{"PQRS", "7777"},
		{"WXYZ", "9999"},
		{"{}", "00"},
		{"", ""},
	}

	for _, tt := range tests {
		digits, err := ToDigits(tt.text)
		require.NoError(t, err, "ToDigits(%q)", tt.text)
		assert.Equal(t, tt.want, digits.String(), "ToDigits(%q)", tt.text)
	}
}

func TestToDigitsUnsupported(t *testing.T) {
	tests := []struct {
		text     string
		char     rune
		position int
	}{
		{"HC!", '!', 2},
		{"hc", 'h', 0},
		{"HC 123", ' ', 2},
		{"H5", '5', 1},
		{"*", '*', 0},
	}

	for _, tt := range tests {
		digits, err := ToDigits(tt.text)
		require.Error(t, err, "ToDigits(%q)", tt.text)
		assert.Nil(t, digits)

		var charErr *UnsupportedCharError
		require.ErrorAs(t, err, &charErr)
		assert.Equal(t, tt.char, charErr.Char)
		assert.Equal(t, tt.position, charErr.Position)
		assert.Contains(t, err.Error(), string(tt.char))
	}
}

func TestToDigitsPure(t *testing.T) {
	first, err := ToDigits("HC{TEST}")
	require.NoError(t, err)
	second, err := ToDigits("HC{TEST}")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDigitForChar(t *testing.T) {
	d, ok := DigitForChar('H')
	require.True(t, ok)
	assert.Equal(t, Digit('4'), d)

	_, ok = DigitForChar('h')
	assert.False(t, ok)

	_, ok = DigitForChar('7')
	assert.False(t, ok)
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		digit Digit
		want  []rune
	}{
		{'2', []rune{'A', 'B', 'C'}},
		{'5', []rune{'J', 'K', 'L'}},
		{'7', []rune{'P', 'Q', 'R', 'S'}},
		{'9', []rune{'W', 'X', 'Y', 'Z'}},
		{'0', []rune{'{', '}'}},
		{'1', nil},
		{'*', nil},
		{'#', nil},
		{Unknown, nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Candidates(tt.digit), "Candidates(%s)", tt.digit)
	}
}

func TestCandidatesReturnsFreshSlice(t *testing.T) {
	first := Candidates('8')
	first[0] = 'X'

	second := Candidates('8')
	assert.Equal(t, []rune{'T', 'U', 'V'}, second)
}

func TestDigitValid(t *testing.T) {
	for _, d := range []Digit{'0', '5', '9', '*', '#'} {
		assert.True(t, d.Valid(), "Digit(%s)", d)
	}
	for _, d := range []Digit{Unknown, 'A', ' ', 0} {
		assert.False(t, d.Valid(), "Digit(%q)", byte(d))
	}
}

func TestSequenceRendering(t *testing.T) {
	digits, err := ToDigits("HC{TEST}")
	require.NoError(t, err)

	assert.Equal(t, "42083780", digits.String())
	assert.Equal(t, "4 2 0 8 3 7 8 0", digits.Keys())
	assert.Equal(t, "", Sequence{}.Keys())
}
