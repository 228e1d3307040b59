// internal/layouts/layouts.go
//
// Curated board library.
//
// Layouts are hand-authored boards described in YAML: a letter grid plus
// per-tile overrides (locked obstacles, vault/fog puzzle tiles, territory
// objectives, specials), a puzzle mode, a win condition, difficulty and tags.
//
// Sources:
//   1. LAYOUTS_FILE=/path/to/layouts.yaml when set (see config).
//   2. Otherwise the embedded assets/layouts.yaml.

package layouts

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordgrid/assets"
	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/progress"
)

// ErrNotFound is returned for an unknown layout id.
var ErrNotFound = errors.New("layout not found")

// Tile types accepted in a layout.
const (
	TypeLetter    = "letter"
	TypeLocked    = "locked"
	TypePuzzle    = "puzzle"    // puzzle: vault | fog
	TypeObjective = "objective" // objective: territory
)

// TileSpec overrides one grid cell.
type TileSpec struct {
	Row       int           `yaml:"row"`
	Col       int           `yaml:"col"`
	Type      string        `yaml:"type"`
	Puzzle    string        `yaml:"puzzle,omitempty"`
	Objective string        `yaml:"objective,omitempty"`
	Locks     int           `yaml:"locks,omitempty"`
	Phrase    bool          `yaml:"phrase,omitempty"`
	Special   board.Special `yaml:"special,omitempty"`
}

// Layout is one curated board.
type Layout struct {
	ID         string             `yaml:"id" json:"id"`
	Name       string             `yaml:"name" json:"name"`
	Size       int                `yaml:"size" json:"size"`
	Mode       progress.Mode      `yaml:"mode" json:"mode"`
	Win        progress.Condition `yaml:"win" json:"win"`
	Difficulty string             `yaml:"difficulty" json:"difficulty"`
	Turns      int                `yaml:"turns" json:"turns"`
	Tags       []string           `yaml:"tags" json:"tags"`
	Grid       []string           `yaml:"grid" json:"-"`
	Tiles      []TileSpec         `yaml:"tiles" json:"-"`
}

type file struct {
	Layouts []Layout `yaml:"layouts"`
}

// Library is an immutable set of layouts in authoring order.
type Library struct {
	order []string
	byID  map[string]Layout
}

// Parse decodes and validates a YAML library.
func Parse(data []byte) (*Library, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	lib := &Library{byID: make(map[string]Layout, len(f.Layouts))}
	for _, l := range f.Layouts {
		if l.ID == "" {
			return nil, errors.New("layout without id")
		}
		if _, dup := lib.byID[l.ID]; dup {
			return nil, fmt.Errorf("duplicate layout id %q", l.ID)
		}
		if _, err := l.Board(); err != nil {
			return nil, fmt.Errorf("layout %q: %w", l.ID, err)
		}
		lib.order = append(lib.order, l.ID)
		lib.byID[l.ID] = l
	}
	return lib, nil
}

// Load reads a library from path, or the embedded one when path is empty.
func Load(path string) (*Library, error) {
	if path == "" {
		return Parse(assets.Layouts)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layouts: %w", err)
	}
	return Parse(data)
}

// Get returns the layout with id.
func (l *Library) Get(id string) (Layout, error) {
	lay, ok := l.byID[id]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return lay, nil
}

// List returns all layouts in authoring order.
func (l *Library) List() []Layout {
	out := make([]Layout, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id])
	}
	return out
}

// Board builds a fresh board from the layout.
func (l Layout) Board() (*board.Board, error) {
	if !board.ValidSize(l.Size) {
		return nil, fmt.Errorf("unsupported size %d", l.Size)
	}
	if _, err := progress.ParseMode(string(l.Mode)); err != nil {
		return nil, err
	}
	if len(l.Grid) != l.Size {
		return nil, fmt.Errorf("grid has %d rows, want %d", len(l.Grid), l.Size)
	}
	b := board.New(l.Size)
	for r, line := range l.Grid {
		line = strings.ToUpper(strings.ReplaceAll(line, " ", ""))
		if len(line) != l.Size {
			return nil, fmt.Errorf("row %d has %d letters, want %d", r, len(line), l.Size)
		}
		for c := 0; c < l.Size; c++ {
			t := &b.Tiles[r][c]
			t.Letter = string(line[c])
			t.Value = board.LetterValue(t.Letter)
		}
	}
	for _, s := range l.Tiles {
		p := board.Position{Row: s.Row, Col: s.Col}
		if !b.In(p) {
			return nil, fmt.Errorf("tile (%d,%d) off the grid", s.Row, s.Col)
		}
		if err := s.apply(b.At(p)); err != nil {
			return nil, fmt.Errorf("tile (%d,%d): %w", s.Row, s.Col, err)
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (s TileSpec) apply(t *board.Tile) error {
	switch s.Special {
	case board.SpecialNone, board.SpecialDouble, board.SpecialTriple, board.SpecialWildcard:
		t.Special = s.Special
	default:
		return fmt.Errorf("unknown special %q", s.Special)
	}
	locks := max(s.Locks, 1)
	switch s.Type {
	case TypeLetter, "":
		t.Kind = board.KindLetter
	case TypeLocked:
		t.Kind, t.Locks = board.KindLocked, locks
	case TypePuzzle:
		switch s.Puzzle {
		case "vault":
			t.Kind, t.Locks = board.KindVault, locks
		case "fog":
			t.Kind, t.Fogged, t.Phrase = board.KindFog, true, s.Phrase
		default:
			return fmt.Errorf("unknown puzzle %q", s.Puzzle)
		}
	case TypeObjective:
		if s.Objective != "territory" {
			return fmt.Errorf("unknown objective %q", s.Objective)
		}
		t.Kind = board.KindTerritory
	default:
		return fmt.Errorf("unknown tile type %q", s.Type)
	}
	return nil
}
