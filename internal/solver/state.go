// apps/go-solver/internal/solver/state.go
//
// Per-game solving state and the turn transition.
// A State is a value: Advance returns the next state and leaves the
// receiver untouched, so a turn can be replayed or tested in isolation and
// no letter knowledge leaks between games.

package solver

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/prune"
)

// Turn is one guess and the feedback it received.
type Turn struct {
	Guess    game.Word     `json:"guess"`
	Feedback game.Feedback `json:"feedback"`
}

// State is the solver's view of one game.
type State struct {
	Attempt    int            // 1-based number of the next guess
	Candidates prune.Set      // words that can still be the secret
	Probes     prune.Set      // words still worth guessing for information
	Knowledge  game.Knowledge // accumulated per-letter state
	History    []Turn
}

// NewState starts a game before the first guess.
func NewState(candidates, probes prune.Set) State {
	return State{Attempt: 1, Candidates: candidates, Probes: probes}
}

// Remaining is the number of guesses left including the next one.
func (s State) Remaining() int { return game.MaxAttempts + 1 - s.Attempt }

// Advance applies guess and its feedback and returns the next state.
// It fails if the feedback leaves no candidate, which means the feedback was
// not produced by any word in the candidate set.
func (s State) Advance(guess game.Word, fb game.Feedback) (State, error) {
	candidates, err := prune.Solutions(guess, fb.Pattern, s.Candidates)
	if err != nil {
		return s, fmt.Errorf("attempt %d: %w", s.Attempt, err)
	}
	probes, err := prune.Probes(guess, fb.Pattern, s.Probes)
	if err != nil {
		return s, fmt.Errorf("attempt %d: %w", s.Attempt, err)
	}

	history := make([]Turn, len(s.History), len(s.History)+1)
	copy(history, s.History)
	history = append(history, Turn{Guess: guess, Feedback: fb})

	return State{
		Attempt:    s.Attempt + 1,
		Candidates: candidates,
		Probes:     probes,
		Knowledge:  s.Knowledge.Apply(fb),
		History:    history,
	}, nil
}
