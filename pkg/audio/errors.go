package audio

import "errors"

// ErrMalformed is the sentinel every FormatError matches, so callers can
// test errors.Is(err, ErrMalformed) without caring which check failed.
var ErrMalformed = errors.New("malformed waveform")

// Error codes for waveform format failures.
const (
	ErrCodeMalformedHeader = "MALFORMED_HEADER"
	ErrCodeNotPCM          = "NOT_PCM"
	ErrCodeWrongSampleRate = "WRONG_SAMPLE_RATE"
	ErrCodeWrongChannels   = "WRONG_CHANNELS"
	ErrCodeWrongBitDepth   = "WRONG_BIT_DEPTH"
	ErrCodeShortWaveform   = "SHORT_WAVEFORM"
	ErrCodeUnreadableData  = "UNREADABLE_DATA"
)

// FormatError reports a waveform that cannot be decoded: wrong container
// format, wrong audio parameters, or too short to hold a single tone.
// Decoding stops immediately; no partial result is produced.
type FormatError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// NewFormatError creates a FormatError with an optional underlying cause.
func NewFormatError(code, message string, cause error) *FormatError {
	return &FormatError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

func (e *FormatError) Is(target error) bool {
	return target == ErrMalformed
}
