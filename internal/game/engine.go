// internal/game/engine.go
//
// Move orchestration for the word-grid engine.
// Responsibilities:
//   - Validate a selection (bounds, repeats, adjacency, locks).
//   - Validate the formed word against the dictionary.
//   - Score the word, analyze its effects and apply them to a fresh board.
//   - Evaluate puzzle progress and outcome, enforcing the balance clamp.
//
// SubmitMove is pure: identical inputs give identical results, and the input
// board is never modified. A rejected move returns Accepted=false with the
// input board pointer unchanged; the error return is reserved for invariant
// violations (broken board, effect off the grid).

package game

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/effects"
	"github.com/robalobadob/wordgrid/internal/progress"
	"github.com/robalobadob/wordgrid/internal/scoring"
	"github.com/robalobadob/wordgrid/internal/words"
)

// Input errors: the selection itself is malformed.
var (
	ErrEmptySelection = errors.New("empty selection")
	ErrOutOfBounds    = errors.New("tile out of bounds")
	ErrRepeatedTile   = errors.New("tile selected twice")
	ErrNotAdjacent    = errors.New("tiles not adjacent")
	ErrLockedTile     = errors.New("tile is locked")
)

// Validation failures: the selection is well formed but the word is not.
var (
	ErrWordTooShort = errors.New("word too short")
	ErrUnknownWord  = errors.New("word not recognized")
)

// IsInputError reports whether err rejects a malformed selection.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptySelection) || errors.Is(err, ErrOutOfBounds) ||
		errors.Is(err, ErrRepeatedTile) || errors.Is(err, ErrNotAdjacent) || errors.Is(err, ErrLockedTile)
}

// IsValidationError reports whether err rejects the formed word.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrWordTooShort) || errors.Is(err, ErrUnknownWord)
}

// MoveInput is one proposed move and the game context it is played in.
type MoveInput struct {
	Board     *board.Board
	Positions []board.Position
	Mode      progress.Mode
	Condition progress.Condition
	Player    board.Player
	Previous  *effects.Effect // primary effect of the previous accepted move

	Score     int // acting player's score before the move
	MovesMade int
	GameMode  progress.GameMode
	TurnsLeft int // before the move; progress.Unlimited for no budget
}

// Result is the outcome of SubmitMove.
type Result struct {
	Accepted  bool              `json:"accepted"`
	Reason    error             `json:"-"`
	Word      string            `json:"word,omitempty"`
	Score     int               `json:"score"`
	Effects   []effects.Effect  `json:"effects"`
	Primary   *effects.Effect   `json:"primary,omitempty"`
	Board     *board.Board      `json:"board"`
	Outcome   progress.Outcome  `json:"outcome"`
	Progress  progress.Progress `json:"progress"`
	TurnsLeft int               `json:"turnsLeft"`
	Clamped   bool              `json:"clamped,omitempty"`
}

// SubmitMove runs one move through validation, scoring, effects and
// win-condition evaluation.
func SubmitMove(dict *words.Dictionary, in MoveInput) (Result, error) {
	if dict == nil {
		return Result{}, errors.New("game: nil dictionary")
	}
	if err := in.Board.Validate(); err != nil {
		return Result{}, err
	}

	reject := func(err error) (Result, error) {
		r := evaluate(in, in.Board, in.Score, in.TurnsLeft)
		return Result{Reason: err, Board: in.Board, Effects: []effects.Effect{},
			Outcome: r.Outcome, Progress: r.Progress, TurnsLeft: in.TurnsLeft}, nil
	}
	if err := checkSelection(in.Board, in.Positions); err != nil {
		return reject(err)
	}
	word := in.Board.Word(in.Positions)
	if len(in.Positions) < words.MinLength {
		return reject(ErrWordTooShort)
	}
	if !dict.IsValid(word) {
		return reject(fmt.Errorf("%w: %s", ErrUnknownWord, word))
	}

	pts := scoring.Score(word, in.Positions, in.Board)
	a := effects.Analyze(effects.Move{
		Word:      word,
		Positions: in.Positions,
		Board:     in.Board,
		Mode:      in.Mode,
		Previous:  in.Previous,
	})
	player := in.Player.WithColor()
	next, err := effects.Apply(in.Board, player, a.Effects)
	if err != nil {
		return Result{}, err
	}

	turnsLeft := in.TurnsLeft
	if turnsLeft > 0 {
		turnsLeft--
	}
	opening := in.MovesMade == 0
	in.Player = player
	in.MovesMade++

	before := evaluate(in, in.Board, in.Score, in.TurnsLeft)
	after := evaluate(in, next, in.Score+pts, turnsLeft)
	clamped := false
	// Only the opening move is held back, so a board with a single
	// objective tile stays winnable from the second move on.
	if opening && before.Progress.Percentage == 0 && after.Outcome == progress.Win {
		clamped = true
		if in.Mode == progress.ScoreTarget {
			pts = max(in.Condition.Target-1-in.Score, 0)
		} else {
			next = rollback(in, in.Board, next, turnsLeft)
		}
		after = evaluate(in, next, in.Score+pts, turnsLeft)
	}

	primary := a.Primary
	return Result{
		Accepted:  true,
		Word:      word,
		Score:     pts,
		Effects:   a.Effects,
		Primary:   &primary,
		Board:     next,
		Outcome:   after.Outcome,
		Progress:  after.Progress,
		TurnsLeft: turnsLeft,
		Clamped:   clamped,
	}, nil
}

func checkSelection(b *board.Board, ps []board.Position) error {
	if len(ps) == 0 {
		return ErrEmptySelection
	}
	seen := make(map[board.Position]bool, len(ps))
	for i, p := range ps {
		if !b.In(p) {
			return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.Row, p.Col)
		}
		if seen[p] {
			return fmt.Errorf("%w: (%d,%d)", ErrRepeatedTile, p.Row, p.Col)
		}
		seen[p] = true
		if i > 0 && !board.Adjacent(ps[i-1], p) {
			return fmt.Errorf("%w: (%d,%d) -> (%d,%d)", ErrNotAdjacent, ps[i-1].Row, ps[i-1].Col, p.Row, p.Col)
		}
	}
	for _, p := range ps {
		if b.At(p).Locked() {
			return fmt.Errorf("%w: (%d,%d)", ErrLockedTile, p.Row, p.Col)
		}
	}
	return nil
}

func evaluate(in MoveInput, b *board.Board, score, turnsLeft int) progress.Report {
	return progress.Evaluate(progress.Input{
		Board:     b,
		Mode:      in.Mode,
		Condition: in.Condition,
		Score:     score,
		MovesMade: in.MovesMade,
		GameMode:  in.GameMode,
		TurnsLeft: turnsLeft,
		PlayerID:  in.Player.ID,
	})
}

// rollback undoes objective progress on next, one tile at a time in reverse
// row-major order, until the opening move no longer wins.
// Only the objective state of the mode is restored; content moves stay.
func rollback(in MoveInput, prev, next *board.Board, turnsLeft int) *board.Board {
	for r := next.Size - 1; r >= 0; r-- {
		for c := next.Size - 1; c >= 0; c-- {
			if !restoreObjective(in.Mode, &next.Tiles[r][c], prev.Tiles[r][c]) {
				continue
			}
			if evaluate(in, next, in.Score, turnsLeft).Outcome != progress.Win {
				return next
			}
		}
	}
	return next
}

func restoreObjective(mode progress.Mode, dst *board.Tile, src board.Tile) bool {
	switch mode {
	case progress.VaultBreak:
		if dst.Vault() && dst.Locks != src.Locks {
			dst.Locks = src.Locks
			return true
		}
	case progress.HiddenPhrase:
		if dst.Phrase && (dst.Fogged != src.Fogged || dst.Revealed != src.Revealed) {
			dst.Fogged, dst.Revealed = src.Fogged, src.Revealed
			return true
		}
	case progress.TerritoryControl:
		if dst.Claimable() && dst.OwnerID != src.OwnerID {
			dst.OwnerID, dst.OwnerColor = src.OwnerID, src.OwnerColor
			return true
		}
	}
	return false
}
