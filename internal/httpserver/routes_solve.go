// apps/go-solver/internal/httpserver/routes_solve.go
//
// Stateless analyzer endpoints:
//   - POST /feedback   → score a guess against a known secret
//   - POST /solve/next → replay a game's feedback and suggest the next guess
//
// /solve/next rebuilds the solving state from scratch on every call; the
// client owns the history.

package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/prune"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// sampleSize caps the candidate words echoed back to clients.
const sampleSize = 20

func (s *Server) mountSolve(r chi.Router) {
	r.Post("/feedback", s.handleFeedback)
	r.Post("/solve/next", s.handleSolveNext)
}

type feedbackReq struct {
	Guess  string `json:"guess"`
	Secret string `json:"secret"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	fb, err := game.EvaluateStrings(req.Guess, req.Secret)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_word")
		return
	}
	writeJSON(w, http.StatusOK, fb)
}

type turnReq struct {
	Guess   string `json:"guess"`
	Pattern string `json:"pattern"`
}

type solveReq struct {
	History  []turnReq `json:"history"`
	Strategy string    `json:"strategy"` // "entropy" (default) | "heuristic"
}

type solveRes struct {
	Guess      game.Word       `json:"guess"`
	Attempt    int             `json:"attempt"`
	Candidates int             `json:"candidates"`
	Probes     int             `json:"probes"`
	Sample     []string        `json:"sample"`
	Mask       string          `json:"mask"`
	Letters    game.Categories `json:"letters"`
}

func (s *Server) handleSolveNext(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if len(req.History) >= game.MaxAttempts {
		writeError(w, http.StatusBadRequest, "no_attempts_left")
		return
	}

	pool := s.dict.Pool()
	st := solver.NewState(pool.All(), pool.All())
	for _, t := range req.History {
		guess, err := game.ParseWord(t.Guess)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_word")
			return
		}
		p, err := game.ParsePattern(t.Pattern)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_pattern")
			return
		}
		next, err := st.Advance(guess, game.Describe(guess, p))
		if errors.Is(err, prune.ErrContradictoryFeedback) {
			hlog.FromRequest(r).Info().Err(err).Msg("contradictory history")
			writeError(w, http.StatusUnprocessableEntity, "contradictory_feedback")
			return
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_turn")
			return
		}
		st = next
	}

	var g solver.Guesser
	switch req.Strategy {
	case "", "entropy":
		g = solver.NewEntropy(s.cfg.Opening, nil)
	case "heuristic":
		g = solver.NewHeuristic(s.cfg.Opening, nil)
	default:
		writeError(w, http.StatusBadRequest, "unknown_strategy")
		return
	}
	guess, err := g.Guess(st)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("solve next")
		writeError(w, http.StatusInternalServerError, "solver_failed")
		return
	}

	sample := st.Candidates.Strings()
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	writeJSON(w, http.StatusOK, solveRes{
		Guess:      guess,
		Attempt:    st.Attempt,
		Candidates: st.Candidates.Len(),
		Probes:     st.Probes.Len(),
		Sample:     sample,
		Mask:       st.Knowledge.Mask(),
		Letters:    st.Knowledge.Categorize(),
	})
}
