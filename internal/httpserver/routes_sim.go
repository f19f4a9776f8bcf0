// apps/go-solver/internal/httpserver/routes_sim.go
//
// Opening-word simulation over HTTP.
//   - POST /sim/run        → (operator) start a background batch, returns a run ID
//   - GET  /sim/runs/{id}  → (operator) progress and, once done, stored results
//   - GET  /results        → best starting words so far (?limit=, default 20)
//   - GET  /results/{word} → latest stored result for one starting word
//
// Runs execute on the server's background context, not the request's, and
// each completed start is saved to the results store as soon as it finishes,
// including starts that finish while the server is shutting down.

package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/sim"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

// Run states reported by GET /sim/runs/{id}.
const (
	runRunning = "running"
	runDone    = "done"
	runFailed  = "failed"
)

type runStatus struct {
	ID        string    `json:"id"`
	Strategy  string    `json:"strategy"`
	State     string    `json:"state"`
	Total     int       `json:"total"`
	Completed int       `json:"completed"`
	Error     string    `json:"error,omitempty"`
	StartedAt time.Time `json:"startedAt"`
}

func (s *Server) mountSim(r chi.Router) {
	r.Post("/auth/token", s.handleToken)
	r.Group(func(r chi.Router) {
		r.Use(s.requireOperator)
		r.Post("/sim/run", s.handleSimRun)
		r.Get("/sim/runs/{id}", s.handleSimStatus)
	})
	r.Get("/results", s.handleResults)
	r.Get("/results/{word}", s.handleResult)
}

type simRunReq struct {
	Starts   []string `json:"starts"`
	All      bool     `json:"all"` // every word in the pool as a starting word
	Strategy string   `json:"strategy"`
	Seed     *uint64  `json:"seed"`
	Workers  int      `json:"workers"`
}

func (s *Server) handleSimRun(w http.ResponseWriter, r *http.Request) {
	var req simRunReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var starts []game.Word
	if req.All {
		starts = s.dict.Pool().Words()
	} else {
		var err error
		if starts, err = game.ParseWords(req.Starts); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_word")
			return
		}
	}
	starts = sim.Dedupe(starts)
	if len(starts) == 0 {
		writeError(w, http.StatusBadRequest, "no_starts")
		return
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = s.cfg.SimStrategy
	}
	seed := s.cfg.SimSeed
	if req.Seed != nil {
		seed = *req.Seed
	}
	workers := req.Workers
	if workers <= 0 {
		workers = s.cfg.SimWorkers
	}
	h, err := sim.New(s.dict.Answers(), s.dict.Allowed(),
		sim.WithStrategy(strategy), sim.WithSeed(seed), sim.WithWorkers(workers))
	if errors.Is(err, sim.ErrUnknownStrategy) {
		writeError(w, http.StatusBadRequest, "unknown_strategy")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sim_setup_failed")
		return
	}

	run := store.NewRun(strategy)
	status := &runStatus{ID: run.ID, Strategy: strategy, State: runRunning, Total: len(starts), StartedAt: s.now().UTC()}
	s.runsMu.Lock()
	s.runs[run.ID] = status
	s.runsMu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		logger := log.With().Str("run", run.ID).Str("strategy", strategy).Logger()
		logger.Info().Int("starts", len(starts)).Msg("simulation started")

		save := store.Saver(s.bg, s.results, run)
		_, err := h.Run(s.bg, starts, func(res sim.Result) {
			if err := save(res); err != nil {
				logger.Error().Err(err).Str("start", res.Start.String()).Msg("save result")
			}
			s.runsMu.Lock()
			status.Completed++
			s.runsMu.Unlock()
		})

		s.runsMu.Lock()
		defer s.runsMu.Unlock()
		if err != nil {
			status.State, status.Error = runFailed, err.Error()
			logger.Warn().Err(err).Msg("simulation stopped")
			return
		}
		status.State = runDone
		logger.Info().Int("completed", status.Completed).Msg("simulation finished")
	}()

	writeJSON(w, http.StatusAccepted, s.runSnapshot(status))
}

// runSnapshot copies a run status under the runs lock.
func (s *Server) runSnapshot(st *runStatus) runStatus {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()
	return *st
}

type simStatusRes struct {
	runStatus
	Results []store.Record `json:"results,omitempty"`
}

func (s *Server) handleSimStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.runsMu.Lock()
	st, ok := s.runs[id]
	s.runsMu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	res := simStatusRes{runStatus: s.runSnapshot(st)}
	if res.State != runRunning {
		recs, err := s.results.Run(r.Context(), id)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		res.Results = recs
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}
	recs, err := s.results.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	word, err := game.ParseWord(chi.URLParam(r, "word"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_word")
		return
	}
	rec, err := s.results.Get(r.Context(), word)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
