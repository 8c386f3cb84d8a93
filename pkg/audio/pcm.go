package audio

// PCM16FromFloat converts a [-1, 1] float sample to a signed 16-bit PCM
// value, clamping out-of-range input instead of wrapping.
func PCM16FromFloat(v float64) int {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int(v * 32767)
}

// FloatFromPCM converts a raw container sample value to a [-1, 1] float.
// 8-bit WAV samples are unsigned per the format; deeper samples are signed.
func FloatFromPCM(value, bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return (float64(value) - 128) / 128
	case 16:
		return float64(value) / 32768
	case 24:
		return float64(value) / 8388608
	case 32:
		return float64(value) / 2147483648
	default:
		return 0
	}
}
