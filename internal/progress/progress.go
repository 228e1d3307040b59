// internal/progress/progress.go
//
// Win-condition evaluation.
// Computes {current, target, percentage} for a puzzle mode and derives the
// outcome. Pure; never mutates the board.
//
//   score_target       current = score,                 win when current >= target
//   vault_break        current = unlocked vault tiles,  win when current == total vaults
//   hidden_phrase      current = revealed phrase tiles, win when current == total phrase tiles
//   territory_control  current = % claimable owned,     win when current >= threshold
//
// A solo game is lost when its turn budget runs out without a win.

package progress

import (
	"fmt"
	"math"

	"github.com/robalobadob/wordgrid/internal/board"
)

// Mode is the win-condition family of a puzzle.
type Mode string

const (
	ScoreTarget      Mode = "score_target"
	VaultBreak       Mode = "vault_break"
	HiddenPhrase     Mode = "hidden_phrase"
	TerritoryControl Mode = "territory_control"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ScoreTarget, VaultBreak, HiddenPhrase, TerritoryControl:
		return m, nil
	}
	return "", fmt.Errorf("unknown puzzle mode %q", s)
}

// Condition is a puzzle's win condition.
type Condition struct {
	Type        Mode   `json:"type" yaml:"type"`
	Target      int    `json:"target" yaml:"target"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Outcome is the state of a game after a move.
type Outcome string

const (
	Ongoing Outcome = "ongoing"
	Win     Outcome = "win"
	Loss    Outcome = "loss"
)

// Final reports whether o ends the game.
func (o Outcome) Final() bool { return o == Win || o == Loss }

// GameMode distinguishes solo puzzles from multiplayer matches.
type GameMode string

const (
	Solo        GameMode = "solo"
	Multiplayer GameMode = "multiplayer"
)

// Unlimited marks a game without a turn budget.
const Unlimited = -1

// Progress is the measurable advance toward a win condition.
type Progress struct {
	Current    int `json:"current"`
	Target     int `json:"target"`
	Percentage int `json:"percentage"`
}

// Input is everything Evaluate needs.
type Input struct {
	Board     *board.Board
	Mode      Mode
	Condition Condition
	Score     int
	MovesMade int
	GameMode  GameMode
	TurnsLeft int // Unlimited, or turns remaining after the latest move
	PlayerID  string
}

// Report is the evaluation result.
type Report struct {
	Progress Progress `json:"progress"`
	Outcome  Outcome  `json:"outcome"`
}

// Evaluate computes progress and outcome for in.
func Evaluate(in Input) Report {
	var p Progress
	won := false
	switch in.Mode {
	case ScoreTarget:
		p = Progress{Current: in.Score, Target: in.Condition.Target}
		p.Percentage = percent(p.Current, p.Target)
		won = p.Target > 0 && p.Current >= p.Target
	case VaultBreak:
		p.Current, p.Target = count(in.Board, func(t board.Tile) (bool, bool) {
			return t.Vault(), t.Vault() && !t.Locked()
		})
		p.Percentage = percent(p.Current, p.Target)
		won = p.Target > 0 && p.Current == p.Target
	case HiddenPhrase:
		p.Current, p.Target = count(in.Board, func(t board.Tile) (bool, bool) {
			return t.Phrase, t.Phrase && t.Revealed
		})
		p.Percentage = percent(p.Current, p.Target)
		won = p.Target > 0 && p.Current == p.Target
	case TerritoryControl:
		owned, total := count(in.Board, func(t board.Tile) (bool, bool) {
			return t.Claimable(), t.Claimable() && t.OwnerID != "" && t.OwnerID == in.PlayerID
		})
		if total > 0 {
			p.Current = owned * 100 / total
		}
		p.Target = in.Condition.Target
		if p.Target > 0 {
			p.Percentage = clamp(p.Current)
		}
		won = p.Target > 0 && p.Current >= p.Target
	}

	out := Ongoing
	switch {
	case won:
		out = Win
	case in.GameMode != Multiplayer && in.TurnsLeft == 0:
		out = Loss
	}
	return Report{Progress: p, Outcome: out}
}

// count tallies tiles matching (inTotal, inCurrent).
func count(b *board.Board, fn func(board.Tile) (bool, bool)) (current, total int) {
	if b == nil {
		return 0, 0
	}
	for _, row := range b.Tiles {
		for _, t := range row {
			inTotal, inCurrent := fn(t)
			if inTotal {
				total++
			}
			if inCurrent {
				current++
			}
		}
	}
	return current, total
}

func percent(current, target int) int {
	if target <= 0 {
		return 0
	}
	return clamp(int(math.Round(100 * float64(current) / float64(target))))
}

func clamp(v int) int { return min(max(v, 0), 100) }
