// internal/httpserver/routes_daily.go
//
// HTTP routes for the Daily Challenge.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start (or resume) today's daily game
//   - POST /daily/move        → submit a move in today's daily game
//   - GET  /daily/leaderboard → top 20 wins for today (or ?date=YYYY-MM-DD)
//
// Every player gets the same board for a UTC day (seeded from date + salt)
// and one attempt at it: the game id is bound to the player in
// daily_sessions and the finished result lands in daily_results.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/store"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Post("/move", s.handleDailyMove)
		r.Get("/leaderboard", s.handleDailyLeaderboard)
	})
}

func (s *Server) puzzleToday() daily.Puzzle {
	return daily.For(time.Now(), s.cfg.DailySalt, s.cfg.BoardSize, s.cfg.Turns)
}

// dailyNewRes is returned by /daily/new. Game is nil once played.
type dailyNewRes struct {
	Date   string        `json:"date"`
	Played bool          `json:"played"`
	Game   *game.Session `json:"game,omitempty"`
}

// handleDailyNew returns today's game for the caller, creating it on first
// call. A player with a finished result gets Played=true.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := s.playerID(w, r)
	p := s.puzzleToday()

	if played, err := s.daily.AlreadyPlayed(ctx, uid, p.Date); err != nil {
		log.Error().Err(err).Msg("daily already played")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	} else if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: p.Date, Played: true})
		return
	}

	if id, err := s.daily.GameFor(ctx, uid, p.Date); err == nil && id != "" {
		g, err := s.store.Get(ctx, id)
		if err == nil {
			writeJSON(w, http.StatusOK, dailyNewRes{Date: p.Date, Game: g})
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			writeError(w, errStatus(err), "load_failed")
			return
		}
		// The session expired from the store; a fresh board is dealt below
		// and replaces the stale binding.
	}

	setup, err := p.Setup(s.gen)
	if err != nil {
		log.Error().Err(err).Msg("daily board")
		writeError(w, http.StatusInternalServerError, "build_failed")
		return
	}
	g, err := game.New(setup, []board.Player{{ID: uid}}, false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.store.Save(ctx, g); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	bound, err := s.bindDaily(ctx, uid, p.Date, g.ID)
	if err != nil {
		log.Error().Err(err).Msg("bind daily game")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if bound != g.ID {
		// A concurrent request won the binding; hand out its game.
		if g, err = s.store.Get(ctx, bound); err != nil {
			writeError(w, errStatus(err), "load_failed")
			return
		}
	} else {
		s.metrics.Started(g)
	}
	writeJSON(w, http.StatusOK, dailyNewRes{Date: p.Date, Game: g})
}

// bindDaily binds gameID, replacing a binding whose session no longer exists.
func (s *Server) bindDaily(ctx context.Context, uid, date, gameID string) (string, error) {
	bound, err := s.daily.BindGame(ctx, uid, date, gameID)
	if err != nil || bound == gameID {
		return bound, err
	}
	if _, err := s.store.Get(ctx, bound); errors.Is(err, store.ErrNotFound) {
		return gameID, s.daily.Rebind(ctx, uid, date, gameID)
	}
	return bound, nil
}

// handleDailyMove plays a move in the caller's daily game only.
func (s *Server) handleDailyMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	uid := s.playerID(w, r)
	p := s.puzzleToday()
	bound, err := s.daily.GameFor(r.Context(), uid, p.Date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if bound != req.GameID {
		writeError(w, http.StatusForbidden, "not_your_daily")
		return
	}
	s.playMove(w, r, req, uid, func(ctx context.Context, g *game.Session) {
		res := daily.Result{
			UserID:    uid,
			Date:      p.Date,
			Seed:      p.Seed,
			Score:     g.Scores[uid],
			Moves:     g.MovesMade,
			Outcome:   string(g.Outcome),
			ElapsedMs: g.UpdatedAt.Sub(g.CreatedAt).Milliseconds(),
		}
		if err := s.daily.InsertResult(ctx, res); err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	})
}

func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	rows, err := s.daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "rows": rows})
}
