package dtmf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/dtmf-codec/pkg/keypad"
)

func TestPairForDigit(t *testing.T) {
	tests := []struct {
		digit keypad.Digit
		row   float64
		col   float64
	}{
		{'1', 697, 1209},
		{'5', 770, 1336},
		{'9', 852, 1477},
		{'*', 941, 1209},
		{'0', 941, 1336},
		{'#', 941, 1477},
	}

	for _, tt := range tests {
		pair, ok := PairForDigit(tt.digit)
		require.True(t, ok, "digit %q should have a pair", tt.digit)
		assert.Equal(t, tt.row, pair.Row)
		assert.Equal(t, tt.col, pair.Col)
	}
}

func TestPairForDigitUnknown(t *testing.T) {
	_, ok := PairForDigit(keypad.Unknown)
	assert.False(t, ok)

	_, ok = PairForDigit('A')
	assert.False(t, ok)
}

func TestPairDigitBijection(t *testing.T) {
	seen := make(map[Pair]keypad.Digit)
	for _, row := range RowFrequencies {
		for _, col := range ColFrequencies {
			pair := Pair{Row: row, Col: col}
			digit, ok := DigitForPair(pair)
			require.True(t, ok, "pair (%v, %v) should map to a digit", row, col)

			_, dup := seen[pair]
			require.False(t, dup)
			seen[pair] = digit

			back, ok := PairForDigit(digit)
			require.True(t, ok)
			assert.Equal(t, pair, back, "digit %q should round-trip", digit)
		}
	}
	assert.Len(t, seen, 12)
}

func TestDigitForPairUnlisted(t *testing.T) {
	_, ok := DigitForPair(Pair{Row: 700, Col: 1209})
	assert.False(t, ok, "raw peak frequencies must be snapped before lookup")
}

func TestNearestSnapping(t *testing.T) {
	tests := []struct {
		name string
		freq float64
		ref  float64
		dist float64
		col  bool
	}{
		{"row exact", 770, 770, 0, false},
		{"row off by scalloping", 700, 697, 3, false},
		{"row above top", 1000, 941, 59, false},
		{"col off by one bin", 1210, 1209, 1, true},
		{"col between refs", 1400, 1336, 64, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref, dist float64
			if tt.col {
				ref, dist = NearestCol(tt.freq)
			} else {
				ref, dist = NearestRow(tt.freq)
			}
			assert.Equal(t, tt.ref, ref)
			assert.InDelta(t, tt.dist, dist, 1e-9)
		})
	}
}
