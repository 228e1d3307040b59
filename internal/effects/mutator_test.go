package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/progress"
)

// lettered gives every tile of an n×n board a distinct letter, row-major.
func lettered(n int) *board.Board {
	b := board.New(n)
	i := 0
	b.Each(func(t *board.Tile) {
		t.Letter = string(rune('A' + i%26))
		t.Value = i
		i++
	})
	return b
}

func letters(b *board.Board, r int) string {
	s := ""
	for _, t := range b.Tiles[r] {
		s += t.Letter
	}
	return s
}

func TestApplyNeverAliases(t *testing.T) {
	b := lettered(3)
	before := b.Clone()
	out, err := Apply(b, board.Player{ID: "p"}, []Effect{{Kind: KindShift, Direction: board.East, Line: 0, Amount: 1}})
	require.NoError(t, err)
	assert.Equal(t, before, b)
	assert.NotSame(t, b, out)
	assert.Equal(t, "CAB", letters(out, 0))
}

func TestShiftWrapsAndKeepsStructure(t *testing.T) {
	b := lettered(3)
	b.Tiles[1][0].Kind, b.Tiles[1][0].Locks = board.KindVault, 2
	b.Tiles[1][2].Special = board.SpecialTriple

	out, err := Apply(b, board.Player{ID: "p"}, []Effect{{Kind: KindShift, Direction: board.West, Line: 1, Amount: 1}})
	require.NoError(t, err)
	assert.Equal(t, "EFD", letters(out, 1))
	assert.Equal(t, board.SpecialTriple, out.Tiles[1][1].Special, "special travels with content")
	assert.Equal(t, board.KindVault, out.Tiles[1][0].Kind, "vault stays bound to position")
	assert.Equal(t, 2, out.Tiles[1][0].Locks)

	out, err = Apply(b, board.Player{ID: "p"}, []Effect{{Kind: KindShift, Direction: board.South, Line: 0, Amount: 1}})
	require.NoError(t, err)
	assert.Equal(t, "G", out.Tiles[0][0].Letter)
	assert.Equal(t, "A", out.Tiles[1][0].Letter)
	assert.Equal(t, "D", out.Tiles[2][0].Letter)
}

func TestRotateAndReverse(t *testing.T) {
	b := lettered(3)
	r := Rect{Top: 0, Left: 0, Bottom: 2, Right: 2}
	out, err := Apply(b, board.Player{ID: "p"}, []Effect{{Kind: KindRotate, Region: &r, Amount: 1}})
	require.NoError(t, err)
	assert.Equal(t, []string{"GDA", "HEB", "IFC"}, []string{letters(out, 0), letters(out, 1), letters(out, 2)})

	out, err = Apply(b, board.Player{ID: "p"}, []Effect{{Kind: KindRotate, Region: &r, Amount: 4}})
	require.NoError(t, err)
	assert.Equal(t, b, out)

	row := Rect{Top: 1, Left: 0, Bottom: 1, Right: 2}
	out, err = Apply(b, board.Player{ID: "p"}, []Effect{{Kind: KindReverse, Region: &row}})
	require.NoError(t, err)
	assert.Equal(t, "FED", letters(out, 1))
}

func TestRevealBreakWeakenClaim(t *testing.T) {
	b := lettered(3)
	b.Tiles[0][0].Kind, b.Tiles[0][0].Fogged, b.Tiles[0][0].Phrase = board.KindFog, true, true
	b.Tiles[0][1].Kind, b.Tiles[0][1].Locks = board.KindVault, 3
	b.Tiles[0][2].Kind, b.Tiles[0][2].Locks = board.KindLocked, 1
	b.Tiles[1][0].Kind = board.KindTerritory

	out, err := Apply(b, board.Player{ID: "p1", Color: "#123"}, []Effect{
		{Kind: KindReveal, Targets: []board.Position{{Row: 0, Col: 0}, {Row: 2, Col: 2}}},
		{Kind: KindWeaken, Amount: 2, Targets: []board.Position{{Row: 0, Col: 1}}},
		{Kind: KindBreak, Targets: []board.Position{{Row: 0, Col: 2}}},
		{Kind: KindClaim, Targets: []board.Position{{Row: 1, Col: 0}, {Row: 1, Col: 1}}},
	})
	require.NoError(t, err)

	assert.False(t, out.Tiles[0][0].Fogged)
	assert.True(t, out.Tiles[0][0].Revealed)
	assert.Equal(t, 1, out.Tiles[0][1].Locks)
	assert.True(t, out.Tiles[0][1].Locked())
	assert.False(t, out.Tiles[0][2].Locked())
	assert.Equal(t, "p1", out.Tiles[1][0].OwnerID)
	assert.Equal(t, "#123", out.Tiles[1][0].OwnerColor)
	assert.Empty(t, out.Tiles[1][1].OwnerID, "only claimable tiles change owner")
	assert.False(t, out.Tiles[2][2].Revealed, "reveal ignores non-fog tiles")
}

func TestInvariantViolationsAbort(t *testing.T) {
	b := lettered(3)
	big := Rect{Top: 0, Left: 0, Bottom: 3, Right: 3}
	tall := Rect{Top: 0, Left: 0, Bottom: 2, Right: 1}
	cases := map[string]Effect{
		"target off board":  {Kind: KindReveal, Targets: []board.Position{{Row: 3, Col: 0}}},
		"shift line":        {Kind: KindShift, Direction: board.East, Line: 5, Amount: 1},
		"shift direction":   {Kind: KindShift, Direction: "up", Line: 0, Amount: 1},
		"region off board":  {Kind: KindReverse, Region: &big},
		"non-square rotate": {Kind: KindRotate, Region: &tall, Amount: 1},
		"unknown kind":      {Kind: "explode"},
	}
	for name, e := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := Apply(b, board.Player{ID: "p"}, []Effect{e})
			assert.ErrorIs(t, err, ErrInvariant)
			assert.Nil(t, out)
		})
	}

	broken := b.Clone()
	broken.Tiles = broken.Tiles[:2]
	_, err := Apply(broken, board.Player{ID: "p"}, nil)
	assert.ErrorIs(t, err, board.ErrInvalidBoard)
}

func TestApplyIsDeterministic(t *testing.T) {
	b := lettered(7)
	b.Tiles[6][6].Kind, b.Tiles[6][6].Locks = board.KindLocked, 1
	ps := []board.Position{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 3, Col: 3}, {Row: 4, Col: 4}, {Row: 5, Col: 5}, {Row: 5, Col: 6}}
	m := Move{Word: "JEZEBEL", Positions: ps, Board: b, Mode: progress.ScoreTarget}

	a1, a2 := Analyze(m), Analyze(m)
	out1, err := Apply(b, board.Player{ID: "p"}, a1.Effects)
	require.NoError(t, err)
	out2, err := Apply(b.Clone(), board.Player{ID: "p"}, a2.Effects)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}
