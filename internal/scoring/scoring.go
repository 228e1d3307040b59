// Package scoring computes the point value of an accepted word.
package scoring

import (
	"unicode/utf8"

	"github.com/robalobadob/wordgrid/internal/board"
)

const (
	longBonus      = 10 // length >= 6
	extraLongBonus = 20 // length >= 8, on top of longBonus
)

// Score sums tile values along ps. Double and triple specials multiply their
// own tile; every wildcard doubles the running total once its value has been
// added. Long words earn a flat bonus. The result is never negative.
func Score(word string, ps []board.Position, b *board.Board) int {
	total := 0
	for _, p := range ps {
		t := b.At(p)
		switch t.Special {
		case board.SpecialDouble:
			total += t.Value * 2
		case board.SpecialTriple:
			total += t.Value * 3
		case board.SpecialWildcard:
			total += t.Value
			total *= 2
		default:
			total += t.Value
		}
	}
	n := utf8.RuneCountInString(word)
	if n >= 6 {
		total += longBonus
	}
	if n >= 8 {
		total += extraLongBonus
	}
	return max(total, 0)
}
