// apps/go-solver/internal/store/memory.go
//
// In-memory stores.
//   - Sessions: live *solver.Session objects keyed by ID for the game API.
//   - Results: simulation results, used when no database is configured
//     and in tests.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/sim"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// Sessions persists interactive game sessions.
type Sessions interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *solver.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*solver.Session, error)
}

// memorySessions is a map-based Sessions implementation.
type memorySessions struct {
	mu       sync.RWMutex
	sessions map[string]*solver.Session
}

// NewMemorySessions constructs an empty in-memory session store.
func NewMemorySessions() Sessions {
	return &memorySessions{sessions: make(map[string]*solver.Session)}
}

func (m *memorySessions) Save(_ context.Context, s *solver.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memorySessions) Get(_ context.Context, id string) (*solver.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// memoryResults keeps every saved record and answers with the latest per start.
type memoryResults struct {
	mu     sync.RWMutex
	latest map[game.Word]Record
	byRun  map[string][]Record
	now    func() time.Time
}

// NewMemoryResults constructs an empty in-memory results store.
func NewMemoryResults() Results {
	return &memoryResults{
		latest: make(map[game.Word]Record),
		byRun:  make(map[string][]Record),
		now:    time.Now,
	}
}

func (m *memoryResults) Save(_ context.Context, run Run, r sim.Result) error {
	if run.ID == "" {
		return ErrNoRunID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := Record{RunID: run.ID, Strategy: run.Strategy, Result: r, CreatedAt: m.now().UTC()}
	m.latest[r.Start] = rec
	m.byRun[run.ID] = append(m.byRun[run.ID], rec)
	return nil
}

func (m *memoryResults) Get(_ context.Context, start game.Word) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.latest[start]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *memoryResults) List(_ context.Context, limit int) ([]Record, error) {
	m.mu.RLock()
	recs := make(map[game.Word]Record, len(m.latest))
	results := make([]sim.Result, 0, len(m.latest))
	for w, rec := range m.latest {
		recs[w] = rec
		results = append(results, rec.Result)
	}
	m.mu.RUnlock()

	ranked := sim.Rank(results)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]Record, len(ranked))
	for i, r := range ranked {
		out[i] = recs[r.Start]
	}
	return out, nil
}

func (m *memoryResults) Run(_ context.Context, id string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs, ok := m.byRun[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]Record(nil), recs...), nil
}

func (m *memoryResults) Close() error { return nil }
