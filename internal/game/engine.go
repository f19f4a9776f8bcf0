// apps/go-solver/internal/game/engine.go
//
// Feedback evaluator for a single guess against a secret.
// Responsibilities:
//   - Score guesses using the classic two‑pass Wordle algorithm.
//   - Derive the categorized views (hits, presents, sorted absent letters).
//   - Validate raw string input (length, alphabetic) before scoring.
//
// Notes:
//   - Score is allocation-free; the solver calls it in its innermost loop.
//   - Evaluation is pure: identical inputs always yield identical output.
package game

import (
	"sort"
)

// Score implements the standard Wordle two‑pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit and consume that secret letter.
//
// Pass 2:
//   - For each non‑hit guess letter, scan the secret's unconsumed letters left
//     to right; on a match mark Present and consume it, otherwise mark Miss.
//
// Per letter, hits plus presents never exceed that letter's count in the
// secret, so surplus copies of a repeated guess letter come back as Miss.
func Score(guess, secret Word) Pattern {
	var res Pattern
	var used [WordLen]bool

	// First pass: hits.
	for i := 0; i < WordLen; i++ {
		if guess[i] == secret[i] {
			res[i] = MarkHit
			used[i] = true
		}
	}

	// Second pass: resolve presents/misses for non‑hit tiles.
	for i := 0; i < WordLen; i++ {
		if res[i] == MarkHit {
			continue
		}
		res[i] = MarkMiss
		for j := 0; j < WordLen; j++ {
			if !used[j] && guess[i] == secret[j] {
				res[i] = MarkPresent
				used[j] = true
				break
			}
		}
	}
	return res
}

// Evaluate scores guess against secret and returns the pattern with its
// categorized views.
func Evaluate(guess, secret Word) Feedback {
	return Describe(guess, Score(guess, secret))
}

// EvaluateStrings validates both words and evaluates them.
func EvaluateStrings(guess, secret string) (Feedback, error) {
	g, err := ParseWord(guess)
	if err != nil {
		return Feedback{}, err
	}
	s, err := ParseWord(secret)
	if err != nil {
		return Feedback{}, err
	}
	return Evaluate(g, s), nil
}

// Describe builds the categorized views of a pattern already known for guess,
// e.g. one reported by a human playing elsewhere.
func Describe(guess Word, p Pattern) Feedback {
	fb := Feedback{
		Pattern: p,
		Correct: []LetterPos{},
		Present: []LetterPos{},
		Absent:  []string{},
	}
	var absent uint32
	for i := 0; i < WordLen; i++ {
		switch p[i] {
		case MarkHit:
			fb.Correct = append(fb.Correct, LetterPos{Pos: i, Letter: string(guess[i])})
		case MarkPresent:
			fb.Present = append(fb.Present, LetterPos{Pos: i, Letter: string(guess[i])})
		default:
			bit := uint32(1) << (guess[i] - 'A')
			if absent&bit == 0 {
				absent |= bit
				fb.Absent = append(fb.Absent, string(guess[i]))
			}
		}
	}
	sort.Strings(fb.Absent)
	return fb
}

// isAlpha checks that a string consists only of uppercase A–Z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
