package keypad

import (
	"fmt"
	"slices"
	"strings"
)

// Default message markers. Flags are conventionally wrapped HC{...}.
const (
	DefaultPrefix = "HC{"
	DefaultSuffix = "}"
)

// PositionStatus classifies how one decoded position was resolved.
type PositionStatus string

const (
	StatusResolved   PositionStatus = "resolved"
	StatusAmbiguous  PositionStatus = "ambiguous"
	StatusUnresolved PositionStatus = "unresolved"
)

// Position is one character slot of a reconstructed message. The full
// candidate set is always surfaced, even when a structural prior resolved
// the slot, so the true character is never hidden from the caller.
type Position struct {
	Index      int            `json:"index"`
	Digit      Digit          `json:"digit"`
	Status     PositionStatus `json:"status"`
	Char       string         `json:"char,omitempty"`
	Candidates []string       `json:"candidates,omitempty"`
}

// Transcript is the reconstruction of a decoded digit sequence.
type Transcript struct {
	Positions []Position `json:"positions"`
}

// Render prints one slot: the character when resolved, the bracketed
// candidate set when ambiguous (a guess is never presented as certain),
// and '?' when unresolved.
func (p Position) Render() string {
	switch p.Status {
	case StatusResolved:
		return p.Char
	case StatusAmbiguous:
		var b strings.Builder
		b.WriteByte('[')
		for _, c := range p.Candidates {
			b.WriteString(c)
		}
		b.WriteByte(']')
		return b.String()
	default:
		return "?"
	}
}

// Text renders the best-effort message, one Render per position.
func (t *Transcript) Text() string {
	var b strings.Builder
	for _, pos := range t.Positions {
		b.WriteString(pos.Render())
	}
	return b.String()
}

// AmbiguousCount returns the number of multi-candidate positions.
func (t *Transcript) AmbiguousCount() int {
	return t.countStatus(StatusAmbiguous)
}

// UnresolvedCount returns the number of positions with no candidates.
func (t *Transcript) UnresolvedCount() int {
	return t.countStatus(StatusUnresolved)
}

func (t *Transcript) countStatus(status PositionStatus) int {
	count := 0
	for _, pos := range t.Positions {
		if pos.Status == status {
			count++
		}
	}
	return count
}

// Reconstructor turns decoded digits back into text using the reverse
// keypad mapping plus two structural priors: literal opening and closing
// message markers. It applies no dictionary or language heuristics.
type Reconstructor struct {
	prefix       []rune
	suffix       []rune
	prefixDigits Sequence
	suffixDigits Sequence
}

// NewReconstructor builds a Reconstructor anchored on the given literal
// markers. Either marker may be empty. Marker characters must be in the
// supported alphabet.
func NewReconstructor(prefix, suffix string) (*Reconstructor, error) {
	prefixDigits, err := ToDigits(prefix)
	if err != nil {
		return nil, fmt.Errorf("invalid message prefix %q: %w", prefix, err)
	}
	suffixDigits, err := ToDigits(suffix)
	if err != nil {
		return nil, fmt.Errorf("invalid message suffix %q: %w", suffix, err)
	}
	return &Reconstructor{
		prefix:       []rune(prefix),
		suffix:       []rune(suffix),
		prefixDigits: prefixDigits,
		suffixDigits: suffixDigits,
	}, nil
}

// DefaultReconstructor anchors on the conventional HC{...} markers.
func DefaultReconstructor() *Reconstructor {
	r, _ := NewReconstructor(DefaultPrefix, DefaultSuffix)
	return r
}

// Reconstruct maps each digit to its candidate set and resolves what the
// structural priors allow: marker positions anchor to the marker
// characters, and every delimiter digit resolves by position (opening in
// the first half of the sequence, closing in the second). Everything else
// stays ambiguous or unresolved.
func (r *Reconstructor) Reconstruct(digits Sequence) *Transcript {
	n := len(digits)
	anchors := make(map[int]rune)

	// Closing marker first so the opening marker wins any overlap.
	if m := len(r.suffixDigits); m > 0 && n >= m && slices.Equal(digits[n-m:], r.suffixDigits) {
		for i, ch := range r.suffix {
			anchors[n-m+i] = ch
		}
	}
	if m := len(r.prefixDigits); m > 0 && n >= m && slices.Equal(digits[:m], r.prefixDigits) {
		for i, ch := range r.prefix {
			anchors[i] = ch
		}
	}

	positions := make([]Position, n)
	for i, d := range digits {
		candidates := Candidates(d)
		pos := Position{
			Index:      i,
			Digit:      d,
			Candidates: runesToStrings(candidates),
		}
		switch {
		case d == Unknown || len(candidates) == 0:
			pos.Status = StatusUnresolved
		case anchors[i] != 0:
			pos.Status = StatusResolved
			pos.Char = string(anchors[i])
		case d == DelimiterDigit:
			pos.Status = StatusResolved
			if i < n/2 {
				pos.Char = string(rune(DelimiterOpen))
			} else {
				pos.Char = string(rune(DelimiterClose))
			}
		case len(candidates) == 1:
			pos.Status = StatusResolved
			pos.Char = string(candidates[0])
		default:
			pos.Status = StatusAmbiguous
		}
		positions[i] = pos
	}

	return &Transcript{Positions: positions}
}

func runesToStrings(runes []rune) []string {
	if len(runes) == 0 {
		return nil
	}
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
