package board

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
)

// ErrInvalidBoard marks a structurally broken board (programming error).
var ErrInvalidBoard = errors.New("invalid board")

// MinSize is the smallest accepted grid. Play uses 7 or 9; other odd sizes
// are accepted for diagnostics.
const MinSize = 3

// ValidSize reports whether n is an accepted grid size.
func ValidSize(n int) bool { return n >= MinSize && n%2 == 1 }

// New returns an n×n board of empty letter tiles with positions filled in.
func New(n int) *Board {
	b := &Board{Size: n, Tiles: make([][]Tile, n)}
	for r := 0; r < n; r++ {
		b.Tiles[r] = make([]Tile, n)
		for c := 0; c < n; c++ {
			b.Tiles[r][c] = Tile{Row: r, Col: c, Kind: KindLetter}
		}
	}
	return b
}

// In reports whether p lies on the board.
func (b *Board) In(p Position) bool {
	return p.Row >= 0 && p.Row < b.Size && p.Col >= 0 && p.Col < b.Size
}

// At returns a pointer to the tile at p. Callers must check In first.
func (b *Board) At(p Position) *Tile { return &b.Tiles[p.Row][p.Col] }

// Clone returns a deep copy that shares no memory with b.
func (b *Board) Clone() *Board {
	out := &Board{Size: b.Size, Tiles: make([][]Tile, len(b.Tiles))}
	for r := range b.Tiles {
		out.Tiles[r] = append([]Tile(nil), b.Tiles[r]...)
	}
	return out
}

// Each calls fn for every tile in row-major order.
func (b *Board) Each(fn func(t *Tile)) {
	for r := range b.Tiles {
		for c := range b.Tiles[r] {
			fn(&b.Tiles[r][c])
		}
	}
}

// Validate checks the square-grid invariant and per-kind tile consistency.
func (b *Board) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil board", ErrInvalidBoard)
	}
	if b.Size < 1 || len(b.Tiles) != b.Size {
		return fmt.Errorf("%w: size %d with %d rows", ErrInvalidBoard, b.Size, len(b.Tiles))
	}
	for r, row := range b.Tiles {
		if len(row) != b.Size {
			return fmt.Errorf("%w: row %d has %d tiles", ErrInvalidBoard, r, len(row))
		}
		for c, t := range row {
			if t.Row != r || t.Col != c {
				return fmt.Errorf("%w: tile at (%d,%d) claims (%d,%d)", ErrInvalidBoard, r, c, t.Row, t.Col)
			}
			if t.Letter == "" {
				return fmt.Errorf("%w: empty letter at (%d,%d)", ErrInvalidBoard, r, c)
			}
			if err := t.check(); err != nil {
				return fmt.Errorf("%w: (%d,%d): %v", ErrInvalidBoard, r, c, err)
			}
		}
	}
	return nil
}

func (t Tile) check() error {
	switch t.Kind {
	case KindLetter:
		if t.Locks != 0 || t.Fogged || t.Phrase || t.OwnerID != "" {
			return errors.New("letter tile carries puzzle state")
		}
	case KindLocked, KindVault:
		if t.Locks < 0 {
			return errors.New("negative lock strength")
		}
		if t.Fogged || t.Phrase || t.OwnerID != "" {
			return errors.New("lock tile carries foreign state")
		}
	case KindFog:
		if t.Locks != 0 || t.OwnerID != "" {
			return errors.New("fog tile carries foreign state")
		}
		if t.Fogged && t.Revealed {
			return errors.New("fog tile both fogged and revealed")
		}
	case KindTerritory:
		if t.Locks != 0 || t.Fogged || t.Phrase {
			return errors.New("territory tile carries foreign state")
		}
	default:
		return fmt.Errorf("unknown kind %q", t.Kind)
	}
	return nil
}

// Adjacent reports whether a and b are distinct 8-neighbours.
func Adjacent(a, b Position) bool {
	dr, dc := abs(a.Row-b.Row), abs(a.Col-b.Col)
	return dr <= 1 && dc <= 1 && (dr != 0 || dc != 0)
}

// Distance is the Chebyshev (king-move) distance between a and b.
func Distance(a, b Position) int {
	return max(abs(a.Row-b.Row), abs(a.Col-b.Col))
}

// Word concatenates the letters at ps in selection order (upper case).
func (b *Board) Word(ps []Position) string {
	var sb strings.Builder
	for _, p := range ps {
		sb.WriteString(b.At(p).Letter)
	}
	return strings.ToUpper(sb.String())
}

// String renders the grid one row per line; locked tiles print as '#'
// and fogged tiles as '?'.
func (b *Board) String() string {
	var sb strings.Builder
	for r, row := range b.Tiles {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, t := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			switch {
			case t.Locked():
				sb.WriteByte('#')
			case t.Fogged:
				sb.WriteByte('?')
			default:
				sb.WriteString(t.Letter)
			}
		}
	}
	return sb.String()
}

var palette = []string{"#e4572e", "#17bebb", "#ffc914", "#76b041", "#7e52a0", "#2e86ab"}

// ColorFor picks a stable palette colour for a player id.
func ColorFor(id string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return palette[h.Sum32()%uint32(len(palette))]
}

// WithColor returns p with a palette colour filled in when unset.
func (p Player) WithColor() Player {
	if p.Color == "" {
		p.Color = ColorFor(p.ID)
	}
	return p
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
