// apps/go-solver/internal/game/types.go
//
// Core type definitions for the Wordle decision engine.
// Defines:
//   - Word: an immutable five-letter uppercase word.
//   - Mark: per-letter result of a guess (hit/present/miss).
//   - Pattern: the five marks of one guess, serialized as a G/Y/B string.
//   - Feedback: a Pattern plus the categorized letter views.

package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// WordLen is the fixed number of letters in every word.
	WordLen = 5
	// MaxAttempts is the number of guesses a player gets.
	MaxAttempts = 6
)

var (
	ErrInvalidWord    = errors.New("game: invalid word")
	ErrInvalidPattern = errors.New("game: invalid pattern")
)

// Word is a five-letter word stored as uppercase ASCII bytes.
// The zero Word is not valid; obtain one through ParseWord.
type Word [WordLen]byte

// ParseWord trims and uppercases s and validates it is exactly five letters A–Z.
func ParseWord(s string) (Word, error) {
	var w Word
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != WordLen || !isAlpha(s) {
		return w, fmt.Errorf("%w: %q", ErrInvalidWord, s)
	}
	copy(w[:], s)
	return w, nil
}

// MustWord is ParseWord for literals; it panics on invalid input.
func MustWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

// ParseWords parses every entry of list, failing on the first invalid one.
func ParseWords(list []string) ([]Word, error) {
	out := make([]Word, 0, len(list))
	for _, s := range list {
		w, err := ParseWord(s)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func (w Word) String() string { return string(w[:]) }

// Valid reports whether every byte is an uppercase letter.
func (w Word) Valid() bool {
	for _, c := range w {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// Count returns how many times letter c occurs in w.
func (w Word) Count(c byte) int {
	n := 0
	for _, x := range w {
		if x == c {
			n++
		}
	}
	return n
}

// Contains reports whether letter c occurs anywhere in w.
func (w Word) Contains(c byte) bool {
	for _, x := range w {
		if x == c {
			return true
		}
	}
	return false
}

// Distinct reports whether all five letters differ.
func (w Word) Distinct() bool {
	var seen uint32
	for _, c := range w {
		bit := uint32(1) << (c - 'A')
		if seen&bit != 0 {
			return false
		}
		seen |= bit
	}
	return true
}

func (w Word) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWord, w[:])
	}
	return []byte(w.String()), nil
}

func (w *Word) UnmarshalText(b []byte) error {
	parsed, err := ParseWord(string(b))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Mark represents the evaluation result for a single letter in a guess.
// The byte value is the canonical wire encoding:
//   - 'G' hit:     letter is correct and in the correct position.
//   - 'Y' present: letter exists in the secret but in a different position.
//   - 'B' miss:    letter is not in the secret (or all its copies are used up).
type Mark byte

const (
	MarkHit     Mark = 'G'
	MarkPresent Mark = 'Y'
	MarkMiss    Mark = 'B'
)

// Pattern is the per-position coloring of one guess.
type Pattern [WordLen]Mark

// ParsePattern reads a five-character G/Y/B string (case-insensitive).
func ParsePattern(s string) (Pattern, error) {
	var p Pattern
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != WordLen {
		return p, fmt.Errorf("%w: %q", ErrInvalidPattern, s)
	}
	for i := 0; i < WordLen; i++ {
		p[i] = Mark(s[i])
	}
	if !p.Valid() {
		return Pattern{}, fmt.Errorf("%w: %q", ErrInvalidPattern, s)
	}
	return p, nil
}

// MustPattern is ParsePattern for literals; it panics on invalid input.
func MustPattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) String() string {
	var b [WordLen]byte
	for i, m := range p {
		b[i] = byte(m)
	}
	return string(b[:])
}

// Valid reports whether every mark is one of G, Y or B.
func (p Pattern) Valid() bool {
	for _, m := range p {
		if m != MarkHit && m != MarkPresent && m != MarkMiss {
			return false
		}
	}
	return true
}

// Solved reports whether every mark is a hit.
func (p Pattern) Solved() bool {
	for _, m := range p {
		if m != MarkHit {
			return false
		}
	}
	return true
}

func (p Pattern) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Pattern) UnmarshalText(b []byte) error {
	parsed, err := ParsePattern(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// LetterPos is a letter together with the guess position it was scored at.
type LetterPos struct {
	Pos    int    `json:"pos"`
	Letter string `json:"letter"`
}

// Feedback is the full evaluation of one guess.
type Feedback struct {
	Pattern Pattern     `json:"pattern"`
	Correct []LetterPos `json:"correct"`
	Present []LetterPos `json:"present"`
	Absent  []string    `json:"absent"` // sorted, no duplicates
}
