// Package generator builds starting boards, either procedurally from a seed
// or from a curated layout, and refills played tiles.
package generator

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/layouts"
	"github.com/robalobadob/wordgrid/internal/progress"
)

// ErrUnknownSource is returned for a nil or unsupported Source.
var ErrUnknownSource = errors.New("unknown board source")

// Source selects how a board is built: Procedural or Fixed.
type Source interface{ source() }

// Procedural draws a random board of Size from Seed.
type Procedural struct {
	Size int
	Seed int64
}

// Fixed loads a curated layout by id.
type Fixed struct {
	LayoutID string
}

func (Procedural) source() {}
func (Fixed) source()      {}

// Setup is a ready-to-play board with its puzzle definition.
type Setup struct {
	Board      *board.Board
	Mode       progress.Mode
	Condition  progress.Condition
	Difficulty string
	Tags       []string
	LayoutID   string
	Seed       int64
	Turns      int // 0 means no turn limit
}

// Generator turns a Source into a Setup.
type Generator struct {
	Library *layouts.Library

	// ScoreTarget and Turns define the puzzle attached to procedural boards.
	ScoreTarget int
	Turns       int
}

// New wires a generator over a layout library.
func New(lib *layouts.Library, scoreTarget, turns int) *Generator {
	return &Generator{Library: lib, ScoreTarget: scoreTarget, Turns: turns}
}

// Build creates a Setup for src.
func (g *Generator) Build(src Source) (*Setup, error) {
	switch s := src.(type) {
	case Procedural:
		b, err := Generate(s.Size, s.Seed)
		if err != nil {
			return nil, err
		}
		return &Setup{
			Board: b,
			Mode:  progress.ScoreTarget,
			Condition: progress.Condition{
				Type:        progress.ScoreTarget,
				Target:      g.ScoreTarget,
				Description: fmt.Sprintf("Score %d points", g.ScoreTarget),
			},
			Difficulty: "random",
			Seed:       s.Seed,
			Turns:      g.Turns,
		}, nil
	case Fixed:
		if g.Library == nil {
			return nil, fmt.Errorf("%w: no layout library", layouts.ErrNotFound)
		}
		l, err := g.Library.Get(s.LayoutID)
		if err != nil {
			return nil, err
		}
		b, err := l.Board()
		if err != nil {
			return nil, err
		}
		return &Setup{
			Board:      b,
			Mode:       l.Mode,
			Condition:  l.Win,
			Difficulty: l.Difficulty,
			Tags:       append([]string(nil), l.Tags...),
			LayoutID:   l.ID,
			Turns:      l.Turns,
		}, nil
	}
	return nil, ErrUnknownSource
}

// Generate draws an n×n board: weighted letters, table values and ~15%
// specials. The same seed always yields the same board.
func Generate(n int, seed int64) (*board.Board, error) {
	if !board.ValidSize(n) {
		return nil, fmt.Errorf("%w: size %d (odd sizes >= %d)", board.ErrInvalidBoard, n, board.MinSize)
	}
	rng := rand.New(rand.NewSource(seed))
	b := board.New(n)
	b.Each(func(t *board.Tile) {
		t.Letter = standardPool.draw(rng)
		t.Value = board.LetterValue(t.Letter)
		t.Special = drawSpecial(rng)
	})
	return b, nil
}

// Refill returns a copy of b where the content of every tile in ps is
// replaced with a fresh draw. Structural state stays. catchUp selects the
// favourable pool used for a trailing player.
func Refill(b *board.Board, ps []board.Position, seed int64, catchUp bool) *board.Board {
	p := standardPool
	if catchUp {
		p = catchUpPool
	}
	rng := rand.New(rand.NewSource(seed))
	out := b.Clone()
	for _, pos := range ps {
		if !out.In(pos) {
			continue
		}
		t := out.At(pos)
		t.Letter = p.draw(rng)
		t.Value = board.LetterValue(t.Letter)
		t.Special = drawSpecial(rng)
	}
	return out
}
