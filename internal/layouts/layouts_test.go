package layouts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/progress"
)

func TestEmbeddedLibrary(t *testing.T) {
	lib, err := Load("")
	require.NoError(t, err)

	list := lib.List()
	require.NotEmpty(t, list)
	assert.Equal(t, "first-steps", list[0].ID)

	modes := map[progress.Mode]bool{}
	for _, l := range list {
		modes[l.Mode] = true
		b, err := l.Board()
		require.NoError(t, err, l.ID)
		assert.Equal(t, l.Size, b.Size)
	}
	assert.Len(t, modes, 4, "every puzzle mode has a curated board")
}

func TestVaultLayoutBoard(t *testing.T) {
	lib, err := Load("")
	require.NoError(t, err)
	l, err := lib.Get("vault-intro")
	require.NoError(t, err)

	b, err := l.Board()
	require.NoError(t, err)
	v := b.Tiles[6][0]
	assert.Equal(t, board.KindVault, v.Kind)
	assert.Equal(t, 3, v.Locks)
	assert.Equal(t, "K", v.Letter)
	assert.Equal(t, board.KindLocked, b.Tiles[1][3].Kind)
	assert.Equal(t, 1, b.Tiles[1][3].Locks)
	assert.Equal(t, board.SpecialDouble, b.Tiles[4][4].Special)

	_, err = lib.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseRejectsBadLayouts(t *testing.T) {
	cases := map[string]string{
		"even size": `layouts: [{id: a, size: 4, mode: score_target, grid: [ABCD, ABCD, ABCD, ABCD]}]`,
		"short row": `layouts: [{id: a, size: 3, mode: score_target, grid: [ABC, AB, ABC]}]`,
		"bad mode":  `layouts: [{id: a, size: 3, mode: chess, grid: [ABC, ABC, ABC]}]`,
		"bad type":  `layouts: [{id: a, size: 3, mode: score_target, grid: [ABC, ABC, ABC], tiles: [{row: 0, col: 0, type: lava}]}]`,
		"off grid":  `layouts: [{id: a, size: 3, mode: score_target, grid: [ABC, ABC, ABC], tiles: [{row: 5, col: 0, type: locked}]}]`,
		"duplicate": `layouts: [{id: a, size: 3, mode: score_target, grid: [ABC, ABC, ABC]},
		              {id: a, size: 3, mode: score_target, grid: [ABC, ABC, ABC]}]`,
		"no id": `layouts: [{size: 3, mode: score_target, grid: [ABC, ABC, ABC]}]`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.yaml")
	doc := `layouts:
  - id: tiny
    size: 3
    mode: hidden_phrase
    win: {type: hidden_phrase, target: 1}
    grid: [CAT, ODE, GET]
    tiles:
      - {row: 1, col: 1, type: puzzle, puzzle: fog, phrase: true}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	lib, err := Load(path)
	require.NoError(t, err)
	l, err := lib.Get("tiny")
	require.NoError(t, err)
	b, err := l.Board()
	require.NoError(t, err)
	assert.True(t, b.Tiles[1][1].Fogged)
	assert.True(t, b.Tiles[1][1].Phrase)
}
