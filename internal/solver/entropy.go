// apps/go-solver/internal/solver/entropy.go
//
// Expected-survivor guesser.
// For every probe word it computes the average number of candidates that
// would remain after guessing it, over all candidates as the secret, and
// picks the smallest. Patterns and survivor counts are memoized in a Cache
// whose lifetime is one solving context (one game); caches are never shared
// between concurrently solved games.

package solver

import (
	"errors"
	"math"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/prune"
)

// DefaultOpening is the precomputed high-information first guess.
var DefaultOpening = game.MustWord("SALET")

var ErrNoCandidates = errors.New("solver: candidate set is empty")

// Guesser picks the next guess for a game state.
type Guesser interface {
	Guess(st State) (game.Word, error)
}

type pairKey struct {
	guess, secret game.Word
}

type survivorKey struct {
	guess   game.Word
	pattern game.Pattern
	size    int
}

// Cache memoizes scoring work for one solving context.
//
// Survivor counts are keyed by candidate-set size rather than set identity.
// Within one game the candidate set only ever shrinks to a subset of itself,
// so two sets of equal size in the same game are the same set; the key is
// unsafe across games, which is why a Cache must not outlive its game.
type Cache struct {
	patterns  map[pairKey]game.Pattern
	survivors map[survivorKey]int

	hits, misses int
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		patterns:  make(map[pairKey]game.Pattern),
		survivors: make(map[survivorKey]int),
	}
}

// Pattern returns Score(guess, secret), memoized.
func (c *Cache) Pattern(guess, secret game.Word) game.Pattern {
	k := pairKey{guess, secret}
	if p, ok := c.patterns[k]; ok {
		return p
	}
	p := game.Score(guess, secret)
	c.patterns[k] = p
	return p
}

// Survivors returns the number of candidates consistent with guess scoring p.
func (c *Cache) Survivors(guess game.Word, p game.Pattern, candidates prune.Set) int {
	k := survivorKey{guess, p, candidates.Len()}
	if n, ok := c.survivors[k]; ok {
		c.hits++
		return n
	}
	c.misses++
	n := prune.CountSolutions(guess, p, candidates)
	c.survivors[k] = n
	return n
}

// Stats reports survivor-cache hits and misses.
func (c *Cache) Stats() (hits, misses int) { return c.hits, c.misses }

// Entropy is the expected-survivor guesser.
type Entropy struct {
	Opening game.Word
	Cache   *Cache
}

// NewEntropy returns a guesser with its own cache when cache is nil.
func NewEntropy(opening game.Word, cache *Cache) *Entropy {
	if cache == nil {
		cache = NewCache()
	}
	return &Entropy{Opening: opening, Cache: cache}
}

// Guess implements Guesser.
//
//   - Attempt 1: the opening word, no computation.
//   - One candidate left: that candidate.
//   - No more candidates than guesses left, or no probes: the last
//     candidate in list order.
//   - Otherwise: the probe minimizing expected survivors, first minimum wins.
func (e *Entropy) Guess(st State) (game.Word, error) {
	if st.Attempt <= 1 {
		return e.Opening, nil
	}
	if st.Candidates.Empty() {
		return game.Word{}, ErrNoCandidates
	}
	if w, ok := exploit(st); ok {
		return w, nil
	}

	best, _ := e.Best(st.Candidates, st.Probes)
	return best, nil
}

// Best scores every probe against the candidates and returns the winner and
// its expected survivor count. Probes must be non-empty.
func (e *Entropy) Best(candidates, probes prune.Set) (game.Word, float64) {
	n := candidates.Len()
	secrets := candidates.Words()

	var best game.Word
	bestTotal := math.MaxInt
	probes.Each(func(p game.Word) bool {
		total := 0
		for _, s := range secrets {
			total += e.Cache.Survivors(p, e.Cache.Pattern(p, s), candidates)
			// The sum only grows; stop once this probe cannot win.
			if total >= bestTotal {
				break
			}
		}
		if total < bestTotal {
			bestTotal = total
			best = p
		}
		return true
	})
	return best, float64(bestTotal) / float64(n)
}

// exploit returns the guess for the cases that need no scoring.
func exploit(st State) (game.Word, bool) {
	if st.Candidates.Len() == 1 || st.Candidates.Len() <= st.Remaining() || st.Probes.Empty() {
		return st.Candidates.Last()
	}
	return game.Word{}, false
}
