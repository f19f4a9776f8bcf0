package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/sim"
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrNoRunID  = errors.New("store: run id is required")
)

// Run identifies one simulation batch.
type Run struct {
	ID       string `json:"id"`
	Strategy string `json:"strategy"`
}

// NewRun returns a run with a fresh random ID.
func NewRun(strategy string) Run {
	return Run{ID: uuid.NewString(), Strategy: strategy}
}

// saveTimeout bounds each save made by Saver.
const saveTimeout = 5 * time.Second

// Saver returns a callback that saves results under run. Saves ignore the
// cancellation of ctx, so results finished while a run is being stopped are
// still stored; each save is bounded by saveTimeout instead.
func Saver(ctx context.Context, rs Results, run Run) func(sim.Result) error {
	ctx = context.WithoutCancel(ctx)
	return func(r sim.Result) error {
		ctx, cancel := context.WithTimeout(ctx, saveTimeout)
		defer cancel()
		return rs.Save(ctx, run, r)
	}
}

// Record is a stored simulation result.
type Record struct {
	RunID     string    `json:"runId"`
	Strategy  string    `json:"strategy"`
	CreatedAt time.Time `json:"createdAt"`
	sim.Result
}

// Results persists simulation results. Get and List answer with the most
// recently saved record per starting word.
type Results interface {
	Save(ctx context.Context, run Run, r sim.Result) error

	// Get returns the latest record for start, or ErrNotFound.
	Get(ctx context.Context, start game.Word) (Record, error)

	// List returns the latest record per start, best first (see sim.Rank).
	// limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Record, error)

	// Run returns every record saved under a run ID, or ErrNotFound.
	Run(ctx context.Context, id string) ([]Record, error)

	Close() error
}
