package sim

import (
	"context"
	"runtime"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// Run evaluates every starting word on a bounded worker pool and returns one
// result per distinct start, in the order given. onResult, if set, is called
// from a single goroutine as each start completes.
func (h *Harness) Run(ctx context.Context, starts []game.Word, onResult func(Result)) ([]Result, error) {
	workers := h.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	starts = Dedupe(starts)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	out := make(chan Result)
	merged := make(map[game.Word]Result, len(starts))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range out {
			merged[r.Start] = r
			if onResult != nil {
				onResult(r)
			}
		}
	}()

	// g.Go blocks once all workers are busy.
	for _, start := range starts {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r, err := h.Evaluate(gctx, start)
			if err != nil {
				return err
			}
			select {
			case out <- r:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	err := g.Wait()
	close(out)
	<-done

	results := make([]Result, 0, len(merged))
	for _, s := range starts {
		if r, ok := merged[s]; ok {
			results = append(results, r)
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		log.Warn().Err(err).Int("completed", len(results)).Int("requested", len(starts)).Msg("sim: run stopped early")
	}
	return results, err
}

// Dedupe drops repeated words, keeping first occurrences in order.
func Dedupe(words []game.Word) []game.Word {
	seen := make(map[game.Word]bool, len(words))
	out := make([]game.Word, 0, len(words))
	for _, w := range words {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

// Rank orders results best first: lowest loss rate, then fewest mean
// guesses, then alphabetically. The input is not modified.
func Rank(results []Result) []Result {
	out := append([]Result(nil), results...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Histogram, out[j].Histogram
		if la, lb := a.LossRate(), b.LossRate(); la != lb {
			return la < lb
		}
		if ma, mb := a.Mean(), b.Mean(); ma != mb {
			return ma < mb
		}
		return out[i].Start.String() < out[j].Start.String()
	})
	return out
}

// Failures flattens the failed pairs of every result.
func Failures(results []Result) []Failure {
	var out []Failure
	for _, r := range results {
		out = append(out, r.Failures...)
	}
	return out
}
