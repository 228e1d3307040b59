// internal/httpserver/routes_game.go
//
// Game endpoints:
//   - POST /game/new   → start a game (procedural or curated layout)
//   - POST /game/move  → submit a tile path for the caller
//   - GET  /game/{id}  → current session state
//
// Moves on one game are serialized with the store's lock; a rejected word
// answers 422 with the reason and leaves the game unchanged.

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
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/generator"
	"github.com/robalobadob/wordgrid/internal/layouts"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/move", s.handleMove)
	r.Get("/game/{id}", s.handleGetGame)
}

// newGameReq is the payload for POST /game/new. LayoutID selects a curated
// board; otherwise a procedural board of Size is drawn from Seed (random
// when zero). Opponents turn the game into a multiplayer match.
type newGameReq struct {
	LayoutID  string   `json:"layoutId"`
	Size      int      `json:"size"`
	Seed      int64    `json:"seed"`
	Opponents []string `json:"opponents"`
	Refill    bool     `json:"refill"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}

	var src generator.Source
	if req.LayoutID != "" {
		src = generator.Fixed{LayoutID: req.LayoutID}
	} else {
		if req.Size == 0 {
			req.Size = s.cfg.BoardSize
		}
		if req.Seed == 0 {
			req.Seed = time.Now().UnixNano()
		}
		src = generator.Procedural{Size: req.Size, Seed: req.Seed}
	}
	setup, err := s.gen.Build(src)
	switch {
	case errors.Is(err, layouts.ErrNotFound):
		writeError(w, http.StatusNotFound, "unknown_layout")
		return
	case errors.Is(err, board.ErrInvalidBoard):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Error().Err(err).Msg("build board")
		writeError(w, http.StatusInternalServerError, "build_failed")
		return
	}

	players := []board.Player{{ID: s.playerID(w, r)}}
	for _, id := range req.Opponents {
		players = append(players, board.Player{ID: id})
	}
	g, err := game.New(setup, players, req.Refill)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.metrics.Started(g)
	log.Info().Str("gameId", g.ID).Str("mode", string(g.Mode)).Str("layout", g.LayoutID).Int("players", len(players)).Msg("game started")
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, errStatus(err), "not_found")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// moveReq is the payload for POST /game/move and /daily/move.
type moveReq struct {
	GameID    string           `json:"gameId"`
	Positions []board.Position `json:"positions"`
}

// moveRes reports one move and the game state after it.
type moveRes struct {
	game.Result
	Error     string         `json:"error,omitempty"`
	Scores    map[string]int `json:"scores"`
	Turn      string         `json:"turn"`
	GameOver  bool           `json:"gameOver"`
	Winner    string         `json:"winner,omitempty"`
	MovesMade int            `json:"movesMade"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.playMove(w, r, req, s.playerID(w, r), nil)
}

// playMove loads the game under lock, applies the move for player and
// persists the result. onFinish runs once when the move ends the game.
func (s *Server) playMove(w http.ResponseWriter, r *http.Request, req moveReq, player string, onFinish func(ctx context.Context, g *game.Session)) {
	ctx := r.Context()
	unlock, err := s.store.Lock(ctx, req.GameID)
	if err != nil {
		writeError(w, errStatus(err), "busy")
		return
	}
	defer unlock()

	g, err := s.store.Get(ctx, req.GameID)
	if err != nil {
		writeError(w, errStatus(err), "not_found")
		return
	}
	res, err := g.ApplyMove(s.dict, player, req.Positions)
	switch {
	case errors.Is(err, game.ErrFinished), errors.Is(err, game.ErrNotYourTurn):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, game.ErrUnknownPlayer):
		writeError(w, http.StatusForbidden, err.Error())
		return
	case err != nil:
		log.Error().Err(err).Str("gameId", g.ID).Msg("apply move")
		writeError(w, http.StatusInternalServerError, "engine_error")
		return
	}
	s.metrics.Observe(g, res)

	out := moveRes{
		Result:    res,
		Scores:    g.Scores,
		Turn:      g.Current().ID,
		GameOver:  g.Finished(),
		Winner:    g.Winner,
		MovesMade: g.MovesMade,
	}
	if !res.Accepted {
		out.Error = res.Reason.Error()
		writeJSON(w, http.StatusUnprocessableEntity, out)
		return
	}

	if err := s.store.Save(ctx, g); err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Debug().Str("gameId", g.ID).Str("player", player).Str("word", res.Word).Int("score", res.Score).
		Int("effects", len(res.Effects)).Bool("clamped", res.Clamped).Msg("move")

	if g.Finished() {
		for _, p := range g.Players {
			if err := s.bumpStats(ctx, p.ID, g.Winner == p.ID); err != nil {
				log.Warn().Err(err).Str("user", p.ID).Msg("bump stats")
			}
		}
		if onFinish != nil {
			onFinish(ctx, g)
		}
		log.Info().Str("gameId", g.ID).Str("outcome", string(g.Outcome)).Str("winner", g.Winner).Msg("game finished")
	}
	writeJSON(w, http.StatusOK, out)
}
