package sim

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

var targets = []string{
	"CRANE", "SALET", "ABIDE", "BEACH", "ROUND", "WATCH", "MATCH", "GEESE",
	"THERE", "ALLEY", "SPEED", "ERASE", "FLING", "CHUNK", "DWARF", "BLIMP",
}

var extra = []string{"TRAIN", "MOUSY", "PAINT", "SHEEP", "CRATE", "TRACE"}

func words(t testing.TB, list ...string) []game.Word {
	t.Helper()
	w, err := game.ParseWords(list)
	require.NoError(t, err)
	return w
}

func newHarness(t testing.TB, opts ...Option) *Harness {
	t.Helper()
	h, err := New(words(t, targets...), words(t, extra...), opts...)
	require.NoError(t, err)
	return h
}

func TestNew(t *testing.T) {
	_, err := New(nil, words(t, extra...))
	assert.ErrorIs(t, err, ErrNoTargets)

	_, err = New(words(t, targets...), nil, WithStrategy("greedy"))
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	h := newHarness(t)
	assert.Equal(t, len(targets)+len(extra), h.Universe().Len())
}

func TestPlayWinsOnOpening(t *testing.T) {
	h := newHarness(t)
	o, err := h.Play(game.MustWord("SALET"), game.MustWord("SALET"))
	require.NoError(t, err)
	assert.Equal(t, Outcome(1), o)
}

func TestPlaySolvesEveryTarget(t *testing.T) {
	h := newHarness(t)
	res, err := h.Evaluate(context.Background(), game.MustWord("SALET"))
	require.NoError(t, err)
	assert.Empty(t, res.Failures)
	assert.Equal(t, len(targets), res.Histogram.Total())
	assert.Equal(t, 1, res.Histogram[0], "only SALET itself in one")
}

func TestPlayLoss(t *testing.T) {
	// After BATCH every other word differs only in its first letter, the
	// probe pool is empty and the guesser walks candidates from the end.
	list := words(t, "BATCH", "LATCH", "MATCH", "PATCH", "WATCH", "DATCH", "FATCH", "GATCH")
	h, err := New(list, list)
	require.NoError(t, err)

	o, err := h.Play(game.MustWord("BATCH"), game.MustWord("LATCH"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeLoss, o)

	o, err = h.Play(game.MustWord("BATCH"), game.MustWord("PATCH"))
	require.NoError(t, err)
	assert.Equal(t, Outcome(6), o)
}

type failingGuesser struct{ panics bool }

func (f failingGuesser) Guess(solver.State) (game.Word, error) {
	if f.panics {
		panic("boom")
	}
	return game.Word{}, errors.New("no guess")
}

func TestEvaluateIsolatesFailures(t *testing.T) {
	h := newHarness(t)
	entropy := h.newGuesser
	h.newGuesser = func(start, secret game.Word) solver.Guesser {
		switch secret.String() {
		case "ROUND":
			return failingGuesser{panics: true}
		case "CHUNK":
			return failingGuesser{}
		}
		return entropy(start, secret)
	}

	res, err := h.Evaluate(context.Background(), game.MustWord("SALET"))
	require.NoError(t, err)
	assert.Equal(t, len(targets)-2, res.Histogram.Total())
	require.Len(t, res.Failures, 2)
	assert.Equal(t, "ROUND", res.Failures[0].Secret.String())
	assert.Contains(t, res.Failures[0].Err, "boom")
	assert.Equal(t, "CHUNK", res.Failures[1].Secret.String())
	assert.Contains(t, res.Failures[1].Err, "no guess")

	assert.Len(t, Failures([]Result{res, res}), 4)
}

func TestRun(t *testing.T) {
	h := newHarness(t, WithWorkers(2))
	var mu sync.Mutex
	seen := map[string]int{}
	results, err := h.Run(context.Background(), words(t, "SALET", "CRANE", "SALET", "TRAIN"), func(r Result) {
		mu.Lock()
		defer mu.Unlock()
		seen[r.Start.String()]++
	})
	require.NoError(t, err)

	got := make([]string, 0, len(results))
	for _, r := range results {
		got = append(got, r.Start.String())
		assert.Equal(t, len(targets), r.Histogram.Total()+len(r.Failures))
	}
	if diff := cmp.Diff([]string{"SALET", "CRANE", "TRAIN"}, got); diff != "" {
		t.Errorf("result order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[string]int{"SALET": 1, "CRANE": 1, "TRAIN": 1}, seen)

	// Results do not depend on the pool size.
	serial, err := newHarness(t, WithWorkers(1)).Run(context.Background(), words(t, "TRAIN", "CRANE", "SALET"), nil)
	require.NoError(t, err)
	byStart := map[game.Word]Histogram{}
	for _, r := range serial {
		byStart[r.Start] = r.Histogram
	}
	for _, r := range results {
		assert.Equal(t, byStart[r.Start], r.Histogram, r.Start.String())
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := newHarness(t).Run(ctx, words(t, "SALET", "CRANE"), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestHeuristicRunIsReproducible(t *testing.T) {
	starts := words(t, "SALET", "CRANE")
	a, err := newHarness(t, WithStrategy(StrategyHeuristic), WithSeed(7), WithWorkers(2)).Run(context.Background(), starts, nil)
	require.NoError(t, err)
	b, err := newHarness(t, WithStrategy(StrategyHeuristic), WithSeed(7), WithWorkers(1)).Run(context.Background(), starts, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("seeded runs differ (-first +second):\n%s", diff)
	}
}

func TestHistogram(t *testing.T) {
	var h Histogram
	for _, o := range []Outcome{1, 3, 3, 4, OutcomeLoss, 0} {
		h.Add(o)
	}
	assert.Equal(t, Histogram{1, 0, 2, 1, 0, 0, 2}, h)
	assert.Equal(t, 6, h.Total())
	assert.Equal(t, 2, h.Losses())
	assert.InDelta(t, 100.0/3, h.LossRate(), 1e-9)
	assert.InDelta(t, 11.0/4, h.Mean(), 1e-9)
	assert.InDelta(t, 50.0, h.Percentages()[2]*1.5, 1e-9)

	var empty Histogram
	assert.Zero(t, empty.LossRate())
	assert.Zero(t, empty.Mean())
}

func TestRank(t *testing.T) {
	results := []Result{
		{Start: game.MustWord("ZZZZZ"), Histogram: Histogram{0, 1, 1, 0, 0, 0, 1}},
		{Start: game.MustWord("CRANE"), Histogram: Histogram{0, 0, 2, 0, 0, 0, 0}},
		{Start: game.MustWord("SALET"), Histogram: Histogram{0, 2, 0, 0, 0, 0, 0}},
		{Start: game.MustWord("ADIEU"), Histogram: Histogram{0, 0, 2, 0, 0, 0, 0}},
	}
	var got []string
	for _, r := range Rank(results) {
		got = append(got, r.Start.String())
	}
	if diff := cmp.Diff([]string{"SALET", "ADIEU", "CRANE", "ZZZZZ"}, got); diff != "" {
		t.Errorf("rank mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "ZZZZZ", results[0].Start.String(), "input untouched")
}
