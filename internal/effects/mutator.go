package effects

import (
	"fmt"

	"github.com/robalobadob/wordgrid/internal/board"
)

// content is the part of a tile that travels when a region moves.
type content struct {
	letter  string
	value   int
	special board.Special
}

func take(t *board.Tile) content { return content{t.Letter, t.Value, t.Special} }

func put(t *board.Tile, c content) { t.Letter, t.Value, t.Special = c.letter, c.value, c.special }

// Apply executes effs in order against a copy of b and returns the copy.
// b is never modified. Any effect that does not fit the board aborts the
// whole mutation with ErrInvariant.
func Apply(b *board.Board, player board.Player, effs []Effect) (*board.Board, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	player = player.WithColor()
	out := b.Clone()
	for i, e := range effs {
		if err := apply(out, player, e); err != nil {
			return nil, fmt.Errorf("effect %d (%s): %w", i, e.Kind, err)
		}
	}
	return out, nil
}

func apply(b *board.Board, player board.Player, e Effect) error {
	for _, p := range e.Targets {
		if !b.In(p) {
			return fmt.Errorf("%w: target (%d,%d) off a %d×%d board", ErrInvariant, p.Row, p.Col, b.Size, b.Size)
		}
	}
	switch e.Kind {
	case KindReveal:
		for _, p := range e.Targets {
			if t := b.At(p); t.Kind == board.KindFog && t.Fogged {
				t.Fogged, t.Revealed = false, true
			}
		}
	case KindBreak:
		for _, p := range e.Targets {
			if t := b.At(p); t.Kind == board.KindLocked || t.Kind == board.KindVault {
				t.Locks = 0
			}
		}
	case KindWeaken:
		if e.Amount < 0 {
			return fmt.Errorf("%w: negative weaken amount %d", ErrInvariant, e.Amount)
		}
		for _, p := range e.Targets {
			if t := b.At(p); t.Kind == board.KindLocked || t.Kind == board.KindVault {
				t.Locks = max(t.Locks-e.Amount, 0)
			}
		}
	case KindClaim:
		if player.ID == "" {
			return fmt.Errorf("%w: claim without a player", ErrInvariant)
		}
		for _, p := range e.Targets {
			if t := b.At(p); t.Claimable() {
				t.OwnerID, t.OwnerColor = player.ID, player.Color
			}
		}
	case KindShift:
		return shift(b, e)
	case KindRotate:
		return rotate(b, e)
	case KindReverse:
		if e.Region == nil || !e.Region.within(b.Size) {
			return fmt.Errorf("%w: reverse region outside board", ErrInvariant)
		}
		ps := e.Region.Positions()
		for i, j := 0, len(ps)-1; i < j; i, j = i+1, j-1 {
			a, z := b.At(ps[i]), b.At(ps[j])
			ca, cz := take(a), take(z)
			put(a, cz)
			put(z, ca)
		}
	case KindNoop:
	default:
		return fmt.Errorf("%w: unknown effect kind %q", ErrInvariant, e.Kind)
	}
	return nil
}

// shift circularly moves the content of one row or column.
func shift(b *board.Board, e Effect) error {
	if e.Line < 0 || e.Line >= b.Size {
		return fmt.Errorf("%w: shift line %d outside board", ErrInvariant, e.Line)
	}
	var step int
	switch e.Direction {
	case board.East, board.South:
		step = 1
	case board.West, board.North:
		step = -1
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrInvariant, e.Direction)
	}
	n := b.Size
	at := func(i int) *board.Tile {
		if e.Direction.Vertical() {
			return b.At(board.Position{Row: i, Col: e.Line})
		}
		return b.At(board.Position{Row: e.Line, Col: i})
	}
	line := make([]content, n)
	for i := range line {
		line[i] = take(at(i))
	}
	off := ((step*e.Amount)%n + n) % n
	for i, c := range line {
		put(at((i+off)%n), c)
	}
	return nil
}

// rotate turns a square region clockwise e.Amount quarter turns.
func rotate(b *board.Board, e Effect) error {
	r := e.Region
	if r == nil || !r.within(b.Size) || r.Height() != r.Width() {
		return fmt.Errorf("%w: rotate needs a square region on the board", ErrInvariant)
	}
	k := r.Height()
	for turn := 0; turn < ((e.Amount%4)+4)%4; turn++ {
		grid := make([][]content, k)
		for i := range grid {
			grid[i] = make([]content, k)
			for j := range grid[i] {
				grid[i][j] = take(b.At(board.Position{Row: r.Top + i, Col: r.Left + j}))
			}
		}
		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				put(b.At(board.Position{Row: r.Top + i, Col: r.Left + j}), grid[k-1-j][i])
			}
		}
	}
	return nil
}
