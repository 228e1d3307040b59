package generator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/layouts"
	"github.com/robalobadob/wordgrid/internal/progress"
)

func TestGenerateSizes(t *testing.T) {
	for _, n := range []int{3, 5, 7, 9, 11} {
		b, err := Generate(n, 42)
		require.NoError(t, err)
		require.NoError(t, b.Validate())
		tiles := 0
		b.Each(func(tl *board.Tile) {
			tiles++
			assert.NotEmpty(t, tl.Letter)
			assert.Equal(t, board.LetterValue(tl.Letter), tl.Value)
		})
		assert.Equal(t, n*n, tiles)
	}

	for _, n := range []int{0, 2, 8} {
		_, err := Generate(n, 1)
		assert.ErrorIs(t, err, board.ErrInvalidBoard, "size %d", n)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(9, 7)
	require.NoError(t, err)
	b, err := Generate(9, 7)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Generate(9, 8)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestSpecialFraction(t *testing.T) {
	b, err := Generate(101, 12345)
	require.NoError(t, err)
	counts := map[board.Special]int{}
	b.Each(func(tl *board.Tile) { counts[tl.Special]++ })

	total := float64(101 * 101)
	special := total - float64(counts[board.SpecialNone])
	assert.InDelta(t, 0.15, special/total, 0.02)
	assert.InDelta(t, 0.50, float64(counts[board.SpecialDouble])/special, 0.05)
	assert.InDelta(t, 0.35, float64(counts[board.SpecialTriple])/special, 0.05)
	assert.InDelta(t, 0.15, float64(counts[board.SpecialWildcard])/special, 0.05)
}

func TestCatchUpPoolFavoursEasyLetters(t *testing.T) {
	easy := func(p pool) float64 {
		rng := rand.New(rand.NewSource(3))
		n := 0
		for i := 0; i < 20000; i++ {
			switch p.draw(rng) {
			case "A", "E", "I", "O", "U", "S", "T", "R", "N", "L":
				n++
			}
		}
		return float64(n) / 20000
	}
	assert.Greater(t, easy(catchUpPool), easy(standardPool))
}

func TestRefill(t *testing.T) {
	b, err := Generate(7, 1)
	require.NoError(t, err)
	b.Tiles[0][1].Kind, b.Tiles[0][1].Locks = board.KindVault, 0
	ps := []board.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}

	r1 := Refill(b, ps, 99, true)
	r2 := Refill(b, ps, 99, true)
	assert.Equal(t, r1, r2)
	assert.Equal(t, board.KindVault, r1.Tiles[0][1].Kind)
	assert.Equal(t, b.Tiles[3], r1.Tiles[3], "untouched rows stay")
	assert.NotSame(t, b, r1)
}

func TestBuild(t *testing.T) {
	lib, err := layouts.Load("")
	require.NoError(t, err)
	g := New(lib, 80, 10)

	s, err := g.Build(Procedural{Size: 7, Seed: 5})
	require.NoError(t, err)
	assert.Equal(t, progress.ScoreTarget, s.Mode)
	assert.Equal(t, 80, s.Condition.Target)
	assert.Equal(t, 10, s.Turns)
	assert.Equal(t, int64(5), s.Seed)

	s, err = g.Build(Fixed{LayoutID: "fog-of-words"})
	require.NoError(t, err)
	assert.Equal(t, progress.HiddenPhrase, s.Mode)
	assert.Equal(t, "fog-of-words", s.LayoutID)
	assert.Equal(t, 7, s.Board.Size)

	_, err = g.Build(Fixed{LayoutID: "missing"})
	assert.ErrorIs(t, err, layouts.ErrNotFound)
	_, err = g.Build(nil)
	assert.ErrorIs(t, err, ErrUnknownSource)
}
