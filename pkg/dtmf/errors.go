package dtmf

import "fmt"

// UnrecognizedToneError reports a window whose spectral peaks do not land
// near any reference tone pair.
type UnrecognizedToneError struct {
	Segment int     `json:"segment"`
	RowHz   float64 `json:"row_hz"`
	ColHz   float64 `json:"col_hz"`
}

// NewUnrecognizedToneError creates an UnrecognizedToneError for a segment.
func NewUnrecognizedToneError(segment int, rowHz, colHz float64) *UnrecognizedToneError {
	return &UnrecognizedToneError{
		Segment: segment,
		RowHz:   rowHz,
		ColHz:   colHz,
	}
}

// Error implements the error interface.
func (e *UnrecognizedToneError) Error() string {
	return fmt.Sprintf("segment %d: tone pair (%.1f Hz, %.1f Hz) matches no reference tones",
		e.Segment, e.RowHz, e.ColHz)
}
