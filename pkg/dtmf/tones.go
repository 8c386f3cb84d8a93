// Package dtmf implements the tone side of the codec: synthesis of
// dual-tone segments from keypad digits and recovery of digits from a
// waveform on the shared timing grid.
package dtmf

import (
	"math"

	"github.com/RyanBlaney/dtmf-codec/pkg/keypad"
)

// Reference tones in Hz. Rows and columns are disjoint sets; a detector
// must never trade one for the other.
var (
	RowFrequencies = [4]float64{697, 770, 852, 941}
	ColFrequencies = [3]float64{1209, 1336, 1477}
)

// Pair is one digit's (row, column) carrier frequencies in Hz.
type Pair struct {
	Row float64 `json:"row_hz"`
	Col float64 `json:"col_hz"`
}

// keypadGrid lays the 12 digits out on the 4x3 keypad.
var keypadGrid = [4][3]keypad.Digit{
	{'1', '2', '3'},
	{'4', '5', '6'},
	{'7', '8', '9'},
	{'*', '0', '#'},
}

var (
	digitToPair map[keypad.Digit]Pair
	pairToDigit map[Pair]keypad.Digit
)

func init() {
	digitToPair = make(map[keypad.Digit]Pair, 12)
	pairToDigit = make(map[Pair]keypad.Digit, 12)
	for r, row := range keypadGrid {
		for c, digit := range row {
			pair := Pair{Row: RowFrequencies[r], Col: ColFrequencies[c]}
			digitToPair[digit] = pair
			pairToDigit[pair] = digit
		}
	}
}

// PairForDigit returns the carrier pair for a keypad digit.
func PairForDigit(d keypad.Digit) (Pair, bool) {
	pair, ok := digitToPair[d]
	return pair, ok
}

// DigitForPair returns the digit carried by an exact reference pair.
func DigitForPair(p Pair) (keypad.Digit, bool) {
	digit, ok := pairToDigit[p]
	return digit, ok
}

// NearestRow snaps a measured frequency to the closest row reference tone
// and returns it with the absolute distance in Hz.
func NearestRow(freq float64) (ref, distance float64) {
	return nearest(freq, RowFrequencies[:])
}

// NearestCol snaps a measured frequency to the closest column reference
// tone and returns it with the absolute distance in Hz.
func NearestCol(freq float64) (ref, distance float64) {
	return nearest(freq, ColFrequencies[:])
}

func nearest(freq float64, refs []float64) (ref, distance float64) {
	ref = refs[0]
	distance = math.Abs(freq - refs[0])
	for _, candidate := range refs[1:] {
		if d := math.Abs(freq - candidate); d < distance {
			ref, distance = candidate, d
		}
	}
	return ref, distance
}
