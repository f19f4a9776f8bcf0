// apps/go-solver/cmd/wordlesim/main.go
//
// Batch opening-word simulation.
// Plays every chosen starting word against every answer, prints the best
// starting words by loss rate and mean guesses, and reports failed pairs.
// Results can be persisted to the same SQLite store the server reads.
//
//	wordlesim -starts SALET,CRANE
//	wordlesim -all -workers 8 -db ./data/results.db -top 20 -json out.json

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/sim"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	answersFile := flag.String("answers", cfg.AnswersFile, "Answer list file (default: embedded)")
	allowedFile := flag.String("allowed", cfg.AllowedFile, "Allowed guess list file (default: embedded)")
	startsFlag := flag.String("starts", cfg.Opening.String(), "Comma-separated starting words")
	doAll := flag.Bool("all", false, "Use every allowed word and answer as a starting word")
	workers := flag.Int("workers", cfg.SimWorkers, "Worker pool size (0: one per CPU)")
	strategy := flag.String("strategy", cfg.SimStrategy, "Guesser: entropy or heuristic")
	seed := flag.Uint64("seed", cfg.SimSeed, "Seed for the heuristic guesser")
	dbPath := flag.String("db", cfg.ResultsDB, "SQLite results database (optional)")
	top := flag.Int("top", 10, "Number of starting words to print")
	jsonOut := flag.String("json", "", "Write all results as JSON to this file")
	timeout := flag.Duration("timeout", 0, "Stop after this long (0: no limit)")
	quiet := flag.Bool("quiet", false, "No progress bar")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(cfg.LogLevel)

	if err := run(cfg, options{
		answersFile: *answersFile,
		allowedFile: *allowedFile,
		starts:      *startsFlag,
		all:         *doAll,
		workers:     *workers,
		strategy:    *strategy,
		seed:        *seed,
		dbPath:      *dbPath,
		top:         *top,
		jsonOut:     *jsonOut,
		timeout:     *timeout,
		quiet:       *quiet,
	}); err != nil {
		log.Error().Err(err).Msg("wordlesim")
		os.Exit(1)
	}
}

type options struct {
	answersFile, allowedFile string
	starts                   string
	all                      bool
	workers                  int
	strategy                 string
	seed                     uint64
	dbPath                   string
	top                      int
	jsonOut                  string
	timeout                  time.Duration
	quiet                    bool
}

func run(cfg config.Config, o options) error {
	dict, err := words.Load(o.answersFile, o.allowedFile)
	if err != nil {
		return err
	}

	starts := dict.Pool().Words()
	if !o.all {
		if starts, err = game.ParseWords(strings.Split(o.starts, ",")); err != nil {
			return fmt.Errorf("-starts: %w", err)
		}
	}

	h, err := sim.New(dict.Answers(), dict.Allowed(),
		sim.WithStrategy(o.strategy), sim.WithSeed(o.seed), sim.WithWorkers(o.workers))
	if err != nil {
		return err
	}

	var save func(sim.Result) error
	batch := store.NewRun(o.strategy)
	if o.dbPath != "" {
		db, err := store.OpenSQLite(o.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		save = store.Saver(context.Background(), db, batch)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	answers, allowed := dict.Stats()
	log.Info().
		Int("starts", len(starts)).Int("answers", answers).Int("allowed", allowed).
		Str("strategy", o.strategy).Str("run", batch.ID).
		Msg("simulating")

	var bar *progressbar.ProgressBar
	if !o.quiet {
		bar = progressbar.Default(int64(len(starts)), "starting words")
	}
	began := time.Now()
	out, runErr := h.Run(ctx, starts, func(r sim.Result) {
		if save != nil {
			if err := save(r); err != nil {
				log.Warn().Err(err).Str("start", r.Start.String()).Msg("save result")
			}
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	})
	if bar != nil {
		_ = bar.Finish()
	}
	log.Info().Int("completed", len(out)).Dur("took", time.Since(began)).Msg("done")

	report(os.Stdout, sim.Rank(out), o.top)

	if o.jsonOut != "" {
		if err := writeJSON(o.jsonOut, batch, out); err != nil {
			return err
		}
	}
	// Partial results above are still worth printing on interrupt.
	return runErr
}

func report(w io.Writer, ranked []sim.Result, top int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "rank\tstart\tloss %\tmean\t1\t2\t3\t4\t5\t6\tX\t")
	for i, r := range ranked {
		if top > 0 && i >= top {
			break
		}
		h := r.Histogram
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.3f\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t\n",
			i+1, r.Start, h.LossRate(), h.Mean(), h[0], h[1], h[2], h[3], h[4], h[5], h[6])
	}
	_ = tw.Flush()

	failures := sim.Failures(ranked)
	if len(failures) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%d failed games:\n", len(failures))
	for _, f := range failures {
		fmt.Fprintf(w, "  %s vs %s: %s\n", f.Start, f.Secret, f.Err)
	}
}

func writeJSON(path string, run store.Run, results []sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Run     store.Run    `json:"run"`
		Results []sim.Result `json:"results"`
	}{run, results})
}
