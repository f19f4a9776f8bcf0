package solver

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/prune"
)

var testWords = []string{
	"SALET", "CRANE", "CRATE", "TRACE", "REACT", "ERASE", "SPEED", "ABIDE",
	"ALLEY", "ALOFT", "ABBEY", "BABES", "GEESE", "THERE", "ROUND", "BEACH",
	"TRAIN", "MAIZE", "PAINT", "ABODE", "SHEEP", "CHEEP", "LATCH", "MATCH",
	"PATCH", "WATCH", "DRAMA", "FLING", "MOUSY", "DWARF", "BLIMP", "CHUNK",
}

func universe(t testing.TB, list ...string) *prune.Universe {
	t.Helper()
	words, err := game.ParseWords(list)
	require.NoError(t, err)
	return prune.NewUniverse(words)
}

// advanceTo plays guesses against secret and returns the resulting state.
func advanceTo(t testing.TB, u *prune.Universe, secret string, guesses ...string) State {
	t.Helper()
	st := NewState(u.All(), u.All())
	for _, g := range guesses {
		guess := game.MustWord(g)
		next, err := st.Advance(guess, game.Evaluate(guess, game.MustWord(secret)))
		require.NoError(t, err)
		st = next
	}
	return st
}

func TestEntropyOpening(t *testing.T) {
	u := universe(t, testWords...)
	e := NewEntropy(DefaultOpening, nil)

	for _, st := range []State{
		NewState(u.All(), u.All()),
		NewState(u.Of(), u.Of()),
		NewState(u.Of(game.MustWord("CRANE")), u.Of()),
	} {
		got, err := e.Guess(st)
		require.NoError(t, err)
		assert.Equal(t, "SALET", got.String())
	}
}

func TestEntropyNoCandidates(t *testing.T) {
	u := universe(t, testWords...)
	st := NewState(u.Of(), u.All())
	st.Attempt = 2
	_, err := NewEntropy(DefaultOpening, nil).Guess(st)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestEntropySingleCandidate(t *testing.T) {
	u := universe(t, testWords...)
	st := NewState(u.Of(game.MustWord("BLIMP")), u.All())
	st.Attempt = 2
	got, err := NewEntropy(DefaultOpening, nil).Guess(st)
	require.NoError(t, err)
	assert.Equal(t, "BLIMP", got.String())
}

func TestEntropyExploitation(t *testing.T) {
	u := universe(t, testWords...)
	three := u.Of(game.MustWord("LATCH"), game.MustWord("MATCH"), game.MustWord("PATCH"))

	// Attempt 4 leaves three guesses for three candidates.
	st := NewState(three, u.All())
	st.Attempt = 4
	got, err := NewEntropy(DefaultOpening, nil).Guess(st)
	require.NoError(t, err)
	assert.Equal(t, "PATCH", got.String())

	// Attempt 2 with no probes left also brute-forces.
	st = NewState(three, u.Of())
	st.Attempt = 2
	got, err = NewEntropy(DefaultOpening, nil).Guess(st)
	require.NoError(t, err)
	assert.Equal(t, "PATCH", got.String())
}

// referenceBest is an unmemoized, unpruned scan used to check Entropy.Best.
func referenceBest(candidates, probes prune.Set) (game.Word, float64) {
	var best game.Word
	bestExp := math.Inf(1)
	secrets := candidates.Words()
	probes.Each(func(p game.Word) bool {
		total := 0
		for _, s := range secrets {
			total += prune.CountSolutions(p, game.Score(p, s), candidates)
		}
		exp := float64(total) / float64(len(secrets))
		if exp < bestExp {
			best, bestExp = p, exp
		}
		return true
	})
	return best, bestExp
}

func TestEntropyMatchesExhaustiveScan(t *testing.T) {
	u := universe(t, testWords...)
	for _, secret := range []string{"CRANE", "WATCH", "ABIDE", "GEESE", "CHUNK"} {
		st := advanceTo(t, u, secret, "SALET")
		if st.Candidates.Len() <= st.Remaining() || st.Probes.Empty() {
			continue
		}
		e := NewEntropy(DefaultOpening, nil)
		got, gotExp := e.Best(st.Candidates, st.Probes)
		want, wantExp := referenceBest(st.Candidates, st.Probes)
		assert.Equal(t, want, got, "secret %s", secret)
		assert.InDelta(t, wantExp, gotExp, 1e-9, "secret %s", secret)
	}

	// Full sets exercise pruning on many probes.
	e := NewEntropy(DefaultOpening, nil)
	got, gotExp := e.Best(u.All(), u.All())
	want, wantExp := referenceBest(u.All(), u.All())
	assert.Equal(t, want, got)
	assert.InDelta(t, wantExp, gotExp, 1e-9)
}

func TestEntropyDeterministic(t *testing.T) {
	u := universe(t, testWords...)
	st := NewState(u.All(), u.All())
	st.Attempt = 2

	first, err := NewEntropy(DefaultOpening, nil).Guess(st)
	require.NoError(t, err)
	shared := NewEntropy(DefaultOpening, nil)
	for i := 0; i < 5; i++ {
		got, err := shared.Guess(st)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
	hits, misses := shared.Cache.Stats()
	assert.Positive(t, hits)
	assert.Positive(t, misses)
}

func TestAdvance(t *testing.T) {
	u := universe(t, testWords...)
	st := NewState(u.All(), u.All())
	guess := game.MustWord("SALET")
	next, err := st.Advance(guess, game.Evaluate(guess, game.MustWord("CRANE")))
	require.NoError(t, err)

	assert.Equal(t, 1, st.Attempt, "receiver unchanged")
	assert.Empty(t, st.History)
	assert.Equal(t, 2, next.Attempt)
	assert.Len(t, next.History, 1)
	assert.True(t, next.Candidates.Contains(game.MustWord("CRANE")))
	assert.LessOrEqual(t, next.Candidates.Len(), st.Candidates.Len())
	assert.LessOrEqual(t, next.Probes.Len(), st.Probes.Len())
	assert.Equal(t, game.LetterPresent, next.Knowledge.Letter('A').State)
	assert.Equal(t, game.LetterUnknown, st.Knowledge.Letter('A').State)

	// Feedback no candidate can produce.
	_, err = next.Advance(game.MustWord("ROUND"), game.Describe(game.MustWord("ROUND"), game.MustPattern("GGGGG")))
	assert.ErrorIs(t, err, prune.ErrContradictoryFeedback)
}

func TestHeuristic(t *testing.T) {
	u := universe(t, testWords...)
	st := NewState(u.All(), u.All())
	st.Attempt = 2

	pick := func(seed uint64) game.Word {
		h := NewHeuristic(DefaultOpening, rand.New(rand.NewPCG(seed, 1024)))
		w, err := h.Guess(st)
		require.NoError(t, err)
		return w
	}
	first := pick(42)
	assert.Equal(t, first, pick(42), "same seed, same guess")
	assert.True(t, st.Probes.Contains(first))

	h := NewHeuristic(DefaultOpening, nil)
	w, err := h.Guess(NewState(u.Of(), u.Of()))
	require.NoError(t, err)
	assert.Equal(t, "SALET", w.String())
}

func TestHeuristicRanking(t *testing.T) {
	u := universe(t, testWords...)
	words := func(list ...string) prune.Set {
		ws, err := game.ParseWords(list)
		require.NoError(t, err)
		return u.Of(ws...)
	}
	// After SALET vs CRANE: S, L, T absent; A, E present.
	knowledge := game.Knowledge{}.Apply(game.Evaluate(game.MustWord("SALET"), game.MustWord("CRANE")))

	tests := []struct {
		name   string
		probes prune.Set
		want   string
	}{
		// MOUSY and DWARF both add 4 untried letters; DWARF carries the present A.
		{"present letter breaks tie", words("MOUSY", "DWARF"), "DWARF"},
		// CHUNK adds 5 untried letters and beats the present-letter words.
		{"untried letters first", words("BEACH", "DWARF", "CHUNK", "MOUSY"), "CHUNK"},
		// ROUND and CHUNK tie on both keys; universe order decides.
		{"stable on full tie", words("ROUND", "CHUNK"), "ROUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState(u.All(), tt.probes)
			st.Attempt = 2
			st.Knowledge = knowledge

			h := &Heuristic{Opening: DefaultOpening, Rand: rand.New(rand.NewPCG(7, 7)), TopN: 1}
			got, err := h.Guess(st)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestSession(t *testing.T) {
	u := universe(t, testWords...)
	allowed := func(w game.Word) bool { _, ok := u.Index(w); return ok }
	s := NewSession(game.MustWord("CRANE"), u, DefaultOpening, allowed)
	assert.Len(t, s.ID, 16)

	hint, err := s.Hint()
	require.NoError(t, err)
	assert.Equal(t, "SALET", hint.String())

	_, _, err = s.ApplyGuess("QQQQQ")
	assert.ErrorIs(t, err, ErrNotAllowed)
	_, _, err = s.ApplyGuess("CRAN")
	assert.ErrorIs(t, err, game.ErrInvalidWord)

	fb, state, err := s.ApplyGuess("salet")
	require.NoError(t, err)
	assert.Equal(t, "BYBYB", fb.Pattern.String())
	assert.Equal(t, StatePlaying, state)

	fb, state, err = s.ApplyGuess("CRANE")
	require.NoError(t, err)
	assert.True(t, fb.Pattern.Solved())
	assert.Equal(t, StateWon, state)

	_, _, err = s.ApplyGuess("CRANE")
	assert.ErrorIs(t, err, ErrGameFinished)
	_, err = s.Hint()
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestSessionLoss(t *testing.T) {
	u := universe(t, testWords...)
	s := NewSession(game.MustWord("CHUNK"), u, DefaultOpening, nil)
	var state string
	for _, g := range []string{"SALET", "ROUND", "MOUSY", "DWARF", "FLING", "BLIMP"} {
		_, st, err := s.ApplyGuess(g)
		require.NoError(t, err, g)
		state = st
	}
	assert.Equal(t, StateLost, state)
	assert.True(t, s.Finished)
	assert.False(t, s.Won)
}
