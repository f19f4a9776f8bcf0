// apps/go-solver/internal/prune/filter.go
//
// Candidate filters driven by one guess and its G/Y/B pattern.
// Two filters with different objectives:
//   - Solutions keeps words that can still be the secret.
//   - Probes keeps words still worth guessing to gather information,
//     whether or not they can be the secret.
//
// Both validate the guess and pattern eagerly. Solutions treats an empty
// result from a non-empty input as contradictory feedback; Probes may
// legitimately end up empty.

package prune

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

var ErrContradictoryFeedback = errors.New("prune: no candidate is consistent with the feedback")

// matcher is the solution predicate for one (guess, pattern), compiled once
// so that counting survivors across a set does no per-word setup.
type matcher struct {
	hit     [game.WordLen]byte // required letter per position, 0 if none
	notHere [game.WordLen]byte // letter forbidden at position (present marks)
	absent  uint32             // letters that must not occur at all
	need    [26]uint8          // minimum occurrences per letter; covers present letters
}

func compile(guess game.Word, p game.Pattern) matcher {
	var m matcher
	// Letters with a hit or present mark anywhere in the guess.
	var seen uint32
	for i := 0; i < game.WordLen; i++ {
		c := guess[i]
		switch p[i] {
		case game.MarkHit:
			m.hit[i] = c
			m.need[c-'A']++
			seen |= 1 << (c - 'A')
		case game.MarkPresent:
			m.notHere[i] = c
			m.need[c-'A']++
			seen |= 1 << (c - 'A')
		}
	}
	for i := 0; i < game.WordLen; i++ {
		if p[i] != game.MarkMiss {
			continue
		}
		bit := uint32(1) << (guess[i] - 'A')
		// A miss on a letter that is also hit/present elsewhere only says
		// there are no further copies; it does not ban the letter.
		if seen&bit == 0 {
			m.absent |= bit
		}
	}
	return m
}

func (m *matcher) match(w game.Word) bool {
	var counts [26]uint8
	for i := 0; i < game.WordLen; i++ {
		c := w[i]
		if m.hit[i] != 0 && c != m.hit[i] {
			return false
		}
		if m.notHere[i] != 0 && c == m.notHere[i] {
			return false
		}
		if m.absent&(1<<(c-'A')) != 0 {
			return false
		}
		counts[c-'A']++
	}
	for i, n := range m.need {
		if counts[i] < n {
			return false
		}
	}
	return true
}

func validate(guess game.Word, p game.Pattern) error {
	if !guess.Valid() {
		return fmt.Errorf("%w: %q", game.ErrInvalidWord, guess[:])
	}
	if !p.Valid() {
		return fmt.Errorf("%w: %q", game.ErrInvalidPattern, p.String())
	}
	return nil
}

// Solutions returns the members of in that are still possible secrets after
// guess scored p. A word w survives iff, for every position i:
//   - hit:     w[i] == guess[i];
//   - present: w[i] != guess[i] and guess[i] occurs in w;
//   - miss:    guess[i] does not occur in w, unless that letter has a hit or
//     present mark elsewhere in the guess;
//
// and, for every letter with n hit+present marks, w holds at least n copies.
func Solutions(guess game.Word, p game.Pattern, in Set) (Set, error) {
	if err := validate(guess, p); err != nil {
		return Set{}, err
	}
	m := compile(guess, p)
	out := in.filter(m.match)
	if out.Empty() && !in.Empty() {
		return out, fmt.Errorf("%w: %s scored %s over %d words", ErrContradictoryFeedback, guess, p, in.Len())
	}
	return out, nil
}

// CountSolutions returns the size Solutions would return, without building
// the set. Inputs are assumed valid.
func CountSolutions(guess game.Word, p game.Pattern, in Set) int {
	m := compile(guess, p)
	return in.count(m.match)
}

// Probes returns the members of in still useful as information-gathering
// guesses after guess scored p. A probe word is rejected if it:
//   - repeats any letter;
//   - has the guess letter at a position marked hit;
//   - has the guess letter at a position marked present;
//   - contains any letter marked miss anywhere in the guess.
func Probes(guess game.Word, p game.Pattern, in Set) (Set, error) {
	if err := validate(guess, p); err != nil {
		return Set{}, err
	}
	var banned uint32
	for i := 0; i < game.WordLen; i++ {
		if p[i] == game.MarkMiss {
			banned |= 1 << (guess[i] - 'A')
		}
	}
	return in.filter(func(w game.Word) bool {
		if !w.Distinct() {
			return false
		}
		for i := 0; i < game.WordLen; i++ {
			if w[i] == guess[i] {
				// Hit or present: re-testing the same slot gains nothing.
				// Miss: the letter is banned below anyway.
				return false
			}
			if banned&(1<<(w[i]-'A')) != 0 {
				return false
			}
		}
		return true
	}), nil
}
