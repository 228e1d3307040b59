package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/wordgrid/internal/board"
)

// row builds a 9×9 board whose first row spells word with value 1 per tile.
func row(word string) (*board.Board, []board.Position) {
	b := board.New(9)
	b.Each(func(t *board.Tile) { t.Letter, t.Value = "E", 1 })
	ps := make([]board.Position, len(word))
	for i := range word {
		ps[i] = board.Position{Row: 0, Col: i}
		b.Tiles[0][i].Letter = string(word[i])
	}
	return b, ps
}

func TestScore(t *testing.T) {
	cases := []struct {
		name  string
		word  string
		setup func(b *board.Board)
		want  int
	}{
		{name: "plain", word: "CAT", want: 3},
		{name: "double", word: "CAT", setup: func(b *board.Board) {
			b.Tiles[0][0].Value, b.Tiles[0][0].Special = 3, board.SpecialDouble
		}, want: 6 + 1 + 1},
		{name: "triple", word: "CAT", setup: func(b *board.Board) {
			b.Tiles[0][1].Special = board.SpecialTriple
		}, want: 1 + 3 + 1},
		{name: "wildcard doubles running total", word: "CAT", setup: func(b *board.Board) {
			b.Tiles[0][1].Special = board.SpecialWildcard
		}, want: (1+1)*2 + 1},
		{name: "two wildcards", word: "CAT", setup: func(b *board.Board) {
			b.Tiles[0][0].Special = board.SpecialWildcard
			b.Tiles[0][2].Special = board.SpecialWildcard
		}, want: ((1*2)+1+1)*2},
		{name: "six letters", word: "PLANET", want: 6 + 10},
		{name: "eight letters", word: "ABSOLUTE", want: 8 + 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, ps := row(tc.word)
			if tc.setup != nil {
				tc.setup(b)
			}
			assert.Equal(t, tc.want, Score(tc.word, ps, b))
		})
	}
}
