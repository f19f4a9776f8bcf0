// apps/go-solver/internal/httpserver/routes_game.go
//
// Interactive games with solver assistance.
//   - POST /game/new        → start a game ("normal": random or fixed answer,
//                             "daily": the date's deterministic answer)
//   - POST /game/guess      → submit a guess
//   - GET  /game/{id}       → current state and letter knowledge
//   - GET  /game/{id}/hint  → the entropy guesser's suggestion
//
// Sessions live in the session store; the answer is only revealed once the
// game is finished.

package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/guess", s.handleGuess)
		r.Get("/{id}", s.handleGetGame)
		r.Get("/{id}/hint", s.handleHint)
	})
}

// -----------------------------------------------------------------------------
// /game/new

type newGameReq struct {
	Mode   string `json:"mode"`   // "normal" | "daily"
	Answer string `json:"answer"` // optional fixed answer (normal mode)
}

type newGameRes struct {
	GameID string `json:"gameId"`
	Mode   string `json:"mode"`
	Date   string `json:"date,omitempty"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = decode(w, r, &req) // empty body means a random normal game

	res := newGameRes{Mode: req.Mode}
	var secret game.Word
	switch req.Mode {
	case "", "normal":
		res.Mode = "normal"
		if req.Answer == "" {
			secret = s.dict.RandomAnswer()
			break
		}
		var err error
		if secret, err = game.ParseWord(req.Answer); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_word")
			return
		}
	case "daily":
		now := s.now()
		res.Date = daily.DateKey(now)
		secret, _ = daily.Secret(now, s.cfg.DailySalt, s.dict.Answers())
	default:
		writeError(w, http.StatusBadRequest, "unknown_mode")
		return
	}

	// The solver's pool must contain the secret.
	if !s.dict.IsAllowed(secret) {
		writeError(w, http.StatusBadRequest, "not_in_word_list")
		return
	}
	sess := solver.NewSession(secret, s.dict.Pool(), s.cfg.Opening, s.dict.IsAllowed)
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	res.GameID = sess.ID
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// /game/guess

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Feedback   game.Feedback `json:"feedback"`
	State      string        `json:"state"` // "playing" | "won" | "lost"
	Attempt    int           `json:"attempt"`
	Candidates int           `json:"candidates"`
	Mask       string        `json:"mask"`
	Answer     string        `json:"answer,omitempty"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, ok := s.loadSession(w, r, req.GameID)
	if !ok {
		return
	}

	fb, state, err := sess.ApplyGuess(req.Guess)
	switch {
	case errors.Is(err, solver.ErrGameFinished):
		writeError(w, http.StatusConflict, "game_finished")
		return
	case errors.Is(err, game.ErrInvalidWord):
		writeError(w, http.StatusBadRequest, "invalid_word")
		return
	case errors.Is(err, solver.ErrNotAllowed):
		writeError(w, http.StatusBadRequest, "not_in_word_list")
		return
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Str("gameId", sess.ID).Msg("apply guess")
		writeError(w, http.StatusInternalServerError, "guess_failed")
		return
	}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	st := sess.Snapshot()
	res := guessRes{
		Feedback:   fb,
		State:      state,
		Attempt:    st.Attempt,
		Candidates: st.Candidates.Len(),
		Mask:       st.Knowledge.Mask(),
	}
	if state != solver.StatePlaying {
		res.Answer = sess.Secret.String()
	}
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// /game/{id}

type gameRes struct {
	GameID     string          `json:"gameId"`
	State      string          `json:"state"`
	Attempt    int             `json:"attempt"`
	Candidates int             `json:"candidates"`
	History    []solver.Turn   `json:"history"`
	Mask       string          `json:"mask"`
	Letters    game.Categories `json:"letters"`
	Answer     string          `json:"answer,omitempty"`
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	st := sess.Snapshot()
	res := gameRes{
		GameID:     sess.ID,
		State:      sess.Status(),
		Attempt:    st.Attempt,
		Candidates: st.Candidates.Len(),
		History:    st.History,
		Mask:       st.Knowledge.Mask(),
		Letters:    st.Knowledge.Categorize(),
	}
	if res.History == nil {
		res.History = []solver.Turn{}
	}
	if res.State != solver.StatePlaying {
		res.Answer = sess.Secret.String()
	}
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// /game/{id}/hint

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	guess, err := sess.Hint()
	if errors.Is(err, solver.ErrGameFinished) {
		writeError(w, http.StatusConflict, "game_finished")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("gameId", sess.ID).Msg("hint")
		writeError(w, http.StatusInternalServerError, "hint_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"guess":      guess,
		"candidates": sess.Snapshot().Candidates.Len(),
	})
}

// loadSession fetches a session or writes a 404.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request, id string) (*solver.Session, bool) {
	sess, err := s.sessions.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load_failed")
		return nil, false
	}
	return sess, true
}
