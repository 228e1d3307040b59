// internal/game/types.go
//
// Session state for one word-grid game.
// Defines:
//   - Session: board, players, scores, turn order and outcome for a game.
//   - Play: one accepted move in the session history.

package game

import (
	"time"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/effects"
	"github.com/robalobadob/wordgrid/internal/progress"
)

// Session holds the state of a single game across moves.
type Session struct {
	ID        string             `json:"id"`        // Unique game identifier (uuid).
	LayoutID  string             `json:"layoutId"`  // Curated layout, empty for procedural boards.
	Seed      int64              `json:"seed"`      // Procedural seed; also drives refills.
	Mode      progress.Mode      `json:"mode"`      // Win-condition family.
	Condition progress.Condition `json:"condition"` // Target and description.
	GameMode  progress.GameMode  `json:"gameMode"`  // solo | multiplayer.
	Refill    bool               `json:"refill"`    // Replace played tiles after each move.

	Board     *board.Board   `json:"board"`
	Players   []board.Player `json:"players"`
	Scores    map[string]int `json:"scores"`
	Turn      int            `json:"turn"` // Index into Players of who moves next.
	MovesMade int            `json:"movesMade"`
	TurnLimit int            `json:"turnLimit"` // 0 means unlimited.
	TurnsLeft int            `json:"turnsLeft"` // progress.Unlimited when TurnLimit is 0.

	Outcome  progress.Outcome  `json:"outcome"`
	Winner   string            `json:"winner,omitempty"`
	Progress progress.Progress `json:"progress"`
	Previous *effects.Effect   `json:"previous,omitempty"` // Primary effect of the last accepted move.
	History  []Play            `json:"history"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Play records one accepted move.
type Play struct {
	PlayerID  string           `json:"playerId"`
	Word      string           `json:"word"`
	Positions []board.Position `json:"positions"`
	Score     int              `json:"score"`
	Effects   []effects.Effect `json:"effects"`
	Clamped   bool             `json:"clamped,omitempty"`
}

// Finished reports whether the game has ended.
func (s *Session) Finished() bool { return s.Outcome.Final() }
