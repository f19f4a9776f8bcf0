// apps/go-solver/internal/sim/harness.go
//
// Opening-word simulation.
// Responsibilities:
//   - Play one full game for a (starting word, secret) pair with a fresh
//     solving state and fresh guesser caches.
//   - Evaluate a starting word against every target and aggregate the
//     outcomes into a 7-bucket histogram (1..6 guesses, loss).
//   - Record, never propagate, per-pair failures (errors and panics).
//
// Notes:
//   • Word lists are shared read-only by every game; nothing else is.
//   • The heuristic strategy draws from a generator seeded per pair, so a
//     run is reproducible regardless of worker scheduling.

package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/prune"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// Strategy names accepted by WithStrategy.
const (
	StrategyEntropy   = "entropy"
	StrategyHeuristic = "heuristic"
)

var (
	ErrNoTargets       = errors.New("sim: target list is empty")
	ErrUnknownStrategy = errors.New("sim: unknown strategy")
	ErrPanic           = errors.New("sim: game panicked")
)

// Outcome is the number of guesses a game took, or OutcomeLoss.
type Outcome int

// OutcomeLoss records a game not solved within MaxAttempts.
const OutcomeLoss Outcome = game.MaxAttempts + 1

// Histogram counts outcomes; bucket i holds games solved in i+1 guesses and
// the last bucket holds losses.
type Histogram [game.MaxAttempts + 1]int

// Add records one outcome.
func (h *Histogram) Add(o Outcome) {
	if o < 1 || o > OutcomeLoss {
		o = OutcomeLoss
	}
	h[o-1]++
}

// Total is the number of recorded games.
func (h Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Losses is the number of lost games.
func (h Histogram) Losses() int { return h[OutcomeLoss-1] }

// LossRate is the percentage of games lost, 0 when empty.
func (h Histogram) LossRate() float64 {
	t := h.Total()
	if t == 0 {
		return 0
	}
	return float64(h.Losses()) / float64(t) * 100
}

// Mean is the average number of guesses over won games, 0 when none.
func (h Histogram) Mean() float64 {
	won, sum := 0, 0
	for i := 0; i < game.MaxAttempts; i++ {
		won += h[i]
		sum += h[i] * (i + 1)
	}
	if won == 0 {
		return 0
	}
	return float64(sum) / float64(won)
}

// Percentages returns each bucket as a share of the total.
func (h Histogram) Percentages() [game.MaxAttempts + 1]float64 {
	var out [game.MaxAttempts + 1]float64
	t := h.Total()
	if t == 0 {
		return out
	}
	for i, c := range h {
		out[i] = float64(c) / float64(t) * 100
	}
	return out
}

// Failure is one (starting word, secret) pair that could not be simulated.
type Failure struct {
	Start  game.Word `json:"start"`
	Secret game.Word `json:"secret"`
	Err    string    `json:"error"`
}

// Result is the outcome distribution for one starting word.
type Result struct {
	Start     game.Word `json:"start"`
	Histogram Histogram `json:"histogram"`
	Failures  []Failure `json:"failures,omitempty"`
}

// Harness simulates games over fixed word lists.
type Harness struct {
	targets  []game.Word
	universe *prune.Universe
	strategy string
	seed     uint64
	workers  int

	// newGuesser builds the guesser for one game.
	newGuesser func(start, secret game.Word) solver.Guesser
}

// Option configures a Harness.
type Option func(*Harness)

// WithStrategy selects StrategyEntropy (default) or StrategyHeuristic.
func WithStrategy(name string) Option { return func(h *Harness) { h.strategy = name } }

// WithSeed sets the base seed for the heuristic strategy.
func WithSeed(seed uint64) Option { return func(h *Harness) { h.seed = seed } }

// WithWorkers sets the worker pool size used by Run; <= 0 means NumCPU.
func WithWorkers(n int) Option { return func(h *Harness) { h.workers = n } }

// New builds a harness. Secrets are drawn from targets; candidates and probes
// start from pool ∪ targets.
func New(targets, pool []game.Word, opts ...Option) (*Harness, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	h := &Harness{
		targets:  targets,
		universe: prune.NewUniverse(append(append([]game.Word{}, pool...), targets...)),
		strategy: StrategyEntropy,
	}
	for _, opt := range opts {
		opt(h)
	}
	switch h.strategy {
	case StrategyEntropy:
		h.newGuesser = func(start, _ game.Word) solver.Guesser {
			return solver.NewEntropy(start, nil)
		}
	case StrategyHeuristic:
		h.newGuesser = func(start, secret game.Word) solver.Guesser {
			rng := rand.New(rand.NewPCG(h.seed^pack(start), pack(secret)))
			return solver.NewHeuristic(start, rng)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, h.strategy)
	}
	return h, nil
}

// Targets returns the secrets every starting word is played against.
func (h *Harness) Targets() []game.Word { return h.targets }

// Universe returns the initial candidate and probe pool.
func (h *Harness) Universe() *prune.Universe { return h.universe }

// Play runs one game and returns the number of guesses taken or OutcomeLoss.
func (h *Harness) Play(start, secret game.Word) (Outcome, error) {
	g := h.newGuesser(start, secret)
	st := solver.NewState(h.universe.All(), h.universe.All())
	for st.Attempt <= game.MaxAttempts {
		guess, err := g.Guess(st)
		if err != nil {
			return 0, fmt.Errorf("attempt %d: %w", st.Attempt, err)
		}
		fb := game.Evaluate(guess, secret)
		if fb.Pattern.Solved() {
			return Outcome(st.Attempt), nil
		}
		if st, err = st.Advance(guess, fb); err != nil {
			return 0, err
		}
	}
	return OutcomeLoss, nil
}

// play is Play with panics turned into errors.
func (h *Harness) play(start, secret game.Word) (o Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return h.Play(start, secret)
}

// Evaluate plays start against every target. Failed pairs are recorded in
// the result and skipped; only cancellation of ctx returns an error.
func (h *Harness) Evaluate(ctx context.Context, start game.Word) (Result, error) {
	res := Result{Start: start}
	for _, secret := range h.targets {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		o, err := h.play(start, secret)
		if err != nil {
			log.Warn().Err(err).Str("start", start.String()).Str("secret", secret.String()).Msg("sim: game failed")
			res.Failures = append(res.Failures, Failure{Start: start, Secret: secret, Err: err.Error()})
			continue
		}
		res.Histogram.Add(o)
	}
	return res, nil
}

// pack folds a word into an integer for seeding.
func pack(w game.Word) uint64 {
	var n uint64
	for _, c := range w {
		n = n<<8 | uint64(c)
	}
	return n
}
