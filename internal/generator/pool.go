package generator

import (
	"math/rand"

	"github.com/robalobadob/wordgrid/internal/board"
)

// standardWeights is the letter frequency pool: vowel-heavy, rare
// consonants weighted down.
var standardWeights = [26]int{
	9, 2, 2, 4, 12, 2, 3, 2, 9, 1, 1, 4, 2, // A–M
	6, 8, 2, 1, 6, 4, 6, 4, 2, 2, 1, 2, 1, // N–Z
}

// catchUpWeights favours vowels and the easiest consonants (S T R N L)
// by half again; used for a trailing player's refills.
var catchUpWeights = func() [26]int {
	w := standardWeights
	for _, c := range "AEIOUSTRNL" {
		i := c - 'A'
		w[i] += w[i] / 2
	}
	return w
}()

// pool draws letters from a weighted table.
type pool struct {
	weights [26]int
	total   int
}

func newPool(w [26]int) pool {
	p := pool{weights: w}
	for _, x := range w {
		p.total += x
	}
	return p
}

var (
	standardPool = newPool(standardWeights)
	catchUpPool  = newPool(catchUpWeights)
)

func (p pool) draw(rng *rand.Rand) string {
	n := rng.Intn(p.total)
	for i, w := range p.weights {
		if n < w {
			return string(rune('A' + i))
		}
		n -= w
	}
	return "E"
}

// Special-tile rates.
const (
	specialRate = 0.15
	doubleShare = 0.50
	tripleShare = 0.35 // remainder is wildcard
)

func drawSpecial(rng *rand.Rand) board.Special {
	if rng.Float64() >= specialRate {
		return board.SpecialNone
	}
	switch r := rng.Float64(); {
	case r < doubleShare:
		return board.SpecialDouble
	case r < doubleShare+tripleShare:
		return board.SpecialTriple
	default:
		return board.SpecialWildcard
	}
}
