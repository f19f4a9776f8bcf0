// apps/go-solver/internal/solver/session.go
//
// Interactive game session with solver assistance.
// Responsibilities:
//   - Create sessions with a fixed secret and a fresh solving state.
//   - Validate and apply guesses (length, alphabetic, allowed list).
//   - Track state transitions: playing → won/lost.
//   - Suggest the next guess from the session's own entropy guesser.
//
// Notes:
//   - The guess validity gate is supplied by the caller (dictionary lookup).
//   - Each session owns its cache; sessions never share solver memo state.
package solver

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/prune"
)

var (
	ErrGameFinished = errors.New("solver: game finished")
	ErrNotAllowed   = errors.New("solver: not in word list")
)

// Session states as reported to clients.
const (
	StatePlaying = "playing"
	StateWon     = "won"
	StateLost    = "lost"
)

// Session holds one in-progress or finished game.
type Session struct {
	ID       string
	Secret   game.Word
	Finished bool
	Won      bool

	mu      sync.Mutex
	state   State
	allowed func(game.Word) bool
	guesser *Entropy
}

// NewSession starts a game for secret over the given universe.
// allowed is the guess validity gate; nil allows every valid word.
func NewSession(secret game.Word, u *prune.Universe, opening game.Word, allowed func(game.Word) bool) *Session {
	return &Session{
		ID:      randomID(),
		Secret:  secret,
		state:   NewState(u.All(), u.All()),
		allowed: allowed,
		guesser: NewEntropy(opening, nil),
	}
}

// ApplyGuess validates and scores a guess, advancing the session.
// Returns the feedback and the new state string, or an error.
//
// State transitions:
//   - All hits → finished and won.
//   - Else if the guess count reaches MaxAttempts → finished (loss).
func (s *Session) ApplyGuess(raw string) (game.Feedback, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Finished {
		return game.Feedback{}, s.status(), ErrGameFinished
	}
	guess, err := game.ParseWord(raw)
	if err != nil {
		return game.Feedback{}, s.status(), err
	}
	if s.allowed != nil && !s.allowed(guess) {
		return game.Feedback{}, s.status(), fmt.Errorf("%w: %s", ErrNotAllowed, guess)
	}

	fb := game.Evaluate(guess, s.Secret)
	next, err := s.state.Advance(guess, fb)
	if err != nil {
		// Only possible when the secret is outside the session's universe.
		return fb, s.status(), err
	}
	s.state = next

	if fb.Pattern.Solved() {
		s.Finished, s.Won = true, true
	} else if len(s.state.History) >= game.MaxAttempts {
		s.Finished = true
	}
	return fb, s.status(), nil
}

// Hint returns the guesser's suggestion for the next guess.
func (s *Session) Hint() (game.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Finished {
		return game.Word{}, ErrGameFinished
	}
	return s.guesser.Guess(s.state)
}

// Snapshot returns a copy of the current solving state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status reports "playing", "won" or "lost".
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

func (s *Session) status() string {
	if s.Finished {
		if s.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
