// apps/go-solver/internal/store/sqlite.go
//
// SQLite-backed results store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Saving and querying simulation results.
//
// Histograms and failure lists are stored as JSON text; loss rate and mean
// are denormalized so ranking happens in SQL.

package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/sim"
)

//go:embed sql/*.sql
var migrations embed.FS

// SQLite is a Results store on a single database file.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (and creates if missing) the database at path and
// applies pending migrations.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db, now: time.Now}, nil
}

// openDB opens a SQLite file, creating its parent directory for paths like
// ./data/results.db.
func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies every *.sql file of fsys in lexical order, each in its own
// transaction, skipping files already recorded in _migrations.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Save inserts one result row.
func (s *SQLite) Save(ctx context.Context, run Run, r sim.Result) error {
	if run.ID == "" {
		return ErrNoRunID
	}
	hist, err := json.Marshal(r.Histogram)
	if err != nil {
		return err
	}
	failures := r.Failures
	if failures == nil {
		failures = []sim.Failure{}
	}
	fails, err := json.Marshal(failures)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO sim_results
            (run_id, start, strategy, histogram, failures, games, loss_rate, mean, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, r.Start.String(), run.Strategy, string(hist), string(fails),
		r.Histogram.Total(), r.Histogram.LossRate(), r.Histogram.Mean(),
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert result %s: %w", r.Start, err)
	}
	return nil
}

const selectRecord = `SELECT run_id, strategy, start, histogram, failures, created_at FROM sim_results`

// Get returns the latest row for start.
func (s *SQLite) Get(ctx context.Context, start game.Word) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		selectRecord+` WHERE start=? ORDER BY id DESC LIMIT 1`, start.String())
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

// List returns the latest row per start, ranked like sim.Rank.
func (s *SQLite) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT r.run_id, r.strategy, r.start, r.histogram, r.failures, r.created_at
        FROM sim_results r
        JOIN (SELECT start, MAX(id) AS id FROM sim_results GROUP BY start) l ON r.id = l.id
        ORDER BY r.loss_rate ASC, r.mean ASC, r.start ASC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// Run returns every row of a run in insertion order.
func (s *SQLite) Run(ctx context.Context, id string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecord+` WHERE run_id=? ORDER BY id ASC`, id)
	if err != nil {
		return nil, err
	}
	out, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec                      Record
		start, hist, fails, when string
	)
	if err := row.Scan(&rec.RunID, &rec.Strategy, &start, &hist, &fails, &when); err != nil {
		return Record{}, err
	}
	w, err := game.ParseWord(start)
	if err != nil {
		return Record{}, fmt.Errorf("stored start: %w", err)
	}
	rec.Start = w
	if err := json.Unmarshal([]byte(hist), &rec.Histogram); err != nil {
		return Record{}, fmt.Errorf("stored histogram for %s: %w", start, err)
	}
	if err := json.Unmarshal([]byte(fails), &rec.Failures); err != nil {
		return Record{}, fmt.Errorf("stored failures for %s: %w", start, err)
	}
	if len(rec.Failures) == 0 {
		rec.Failures = nil
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, when)
	return rec, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()
	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
