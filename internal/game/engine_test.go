package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/effects"
	"github.com/robalobadob/wordgrid/internal/progress"
	"github.com/robalobadob/wordgrid/internal/words"
)

var dict = words.New([]string{"CAT", "TEA", "EAT", "LEVEL", "NORTH", "ROTATE", "HAPPY"})

// grid returns an n×n board of plain "E" tiles.
func grid(n int) *board.Board {
	b := board.New(n)
	b.Each(func(t *board.Tile) { t.Letter, t.Value = "E", board.LetterValue("E") })
	return b
}

// spell lays word along row r from column 0 and returns its path.
func spell(b *board.Board, r int, word string) []board.Position {
	ps := make([]board.Position, len(word))
	for i := range word {
		ps[i] = board.Position{Row: r, Col: i}
		b.Tiles[r][i].Letter = string(word[i])
		b.Tiles[r][i].Value = board.LetterValue(string(word[i]))
	}
	return ps
}

func scoreInput(b *board.Board, ps []board.Position, target int) MoveInput {
	return MoveInput{
		Board:     b,
		Positions: ps,
		Mode:      progress.ScoreTarget,
		Condition: progress.Condition{Type: progress.ScoreTarget, Target: target},
		Player:    board.Player{ID: "p1"},
		TurnsLeft: progress.Unlimited,
	}
}

func TestRejectNonAdjacent(t *testing.T) {
	b := grid(7)
	before := b.Clone()
	res, err := SubmitMove(dict, scoreInput(b, []board.Position{{Row: 0, Col: 0}, {Row: 5, Col: 5}}, 100))
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.ErrorIs(t, res.Reason, ErrNotAdjacent)
	assert.True(t, IsInputError(res.Reason))
	assert.Same(t, b, res.Board)
	assert.Empty(t, res.Effects)
	assert.Equal(t, before, b)
}

func TestRejectSelections(t *testing.T) {
	b := grid(7)
	b.Tiles[1][1].Kind, b.Tiles[1][1].Locks = board.KindLocked, 1
	cases := []struct {
		name string
		ps   []board.Position
		want error
	}{
		{"empty", nil, ErrEmptySelection},
		{"out of bounds", []board.Position{{Row: 0, Col: 0}, {Row: 0, Col: -1}}, ErrOutOfBounds},
		{"repeat", []board.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 0}}, ErrRepeatedTile},
		{"locked", []board.Position{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}}, ErrLockedTile},
		{"short", []board.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, ErrWordTooShort},
		{"unknown", []board.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, ErrUnknownWord},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := SubmitMove(dict, scoreInput(b, tc.ps, 100))
			require.NoError(t, err)
			assert.False(t, res.Accepted)
			assert.ErrorIs(t, res.Reason, tc.want)
			assert.Same(t, b, res.Board)
		})
	}
}

func TestAcceptCat(t *testing.T) {
	b := grid(7)
	ps := spell(b, 0, "CAT")
	in := scoreInput(b, ps, 100)
	in.Score = 10
	in.TurnsLeft = 3

	res, err := SubmitMove(dict, in)
	require.NoError(t, err)
	require.True(t, res.Accepted)
	assert.Equal(t, "CAT", res.Word)
	assert.Equal(t, 5, res.Score)
	assert.Equal(t, 2, res.TurnsLeft)
	assert.Equal(t, progress.Ongoing, res.Outcome)
	assert.Equal(t, 15, res.Progress.Current)
	require.NotNil(t, res.Primary)
	assert.Equal(t, effects.KindShift, res.Primary.Kind)
	assert.NotSame(t, b, res.Board)
	assert.Equal(t, "C", b.Tiles[0][0].Letter, "input board untouched")
	assert.Equal(t, "C", res.Board.Tiles[0][1].Letter, "row shifted east")
}

func TestLastTurnLoses(t *testing.T) {
	b := grid(7)
	in := scoreInput(b, spell(b, 0, "CAT"), 100)
	in.Score = 10
	in.TurnsLeft = 1
	res, err := SubmitMove(dict, in)
	require.NoError(t, err)
	assert.Equal(t, 0, res.TurnsLeft)
	assert.Equal(t, progress.Loss, res.Outcome)
}

func TestClampScoreFromStandingStart(t *testing.T) {
	b := grid(7)
	res, err := SubmitMove(dict, scoreInput(b, spell(b, 0, "CAT"), 5))
	require.NoError(t, err)
	require.True(t, res.Accepted)
	assert.True(t, res.Clamped)
	assert.Equal(t, 4, res.Score)
	assert.Equal(t, progress.Ongoing, res.Outcome)

	in := scoreInput(res.Board, spell(res.Board, 2, "CAT"), 5)
	in.Score = res.Score
	res, err = SubmitMove(dict, in)
	require.NoError(t, err)
	assert.False(t, res.Clamped)
	assert.Equal(t, progress.Win, res.Outcome)
}

func TestClampVaultRollback(t *testing.T) {
	b := grid(7)
	b.Tiles[1][3].Kind, b.Tiles[1][3].Locks = board.KindVault, 1
	ps := spell(b, 0, "CAT")
	in := MoveInput{
		Board: b, Positions: ps, Mode: progress.VaultBreak,
		Player: board.Player{ID: "p1"}, TurnsLeft: progress.Unlimited,
	}
	res, err := SubmitMove(dict, in)
	require.NoError(t, err)
	require.True(t, res.Accepted)
	assert.True(t, res.Clamped)
	assert.Equal(t, 1, res.Board.Tiles[1][3].Locks)
	assert.Equal(t, progress.Ongoing, res.Outcome)
	assert.Equal(t, 0, res.Progress.Percentage)

	// Half-way there: the same move is allowed to finish the job.
	b.Tiles[6][6].Kind = board.KindVault
	res, err = SubmitMove(dict, in)
	require.NoError(t, err)
	assert.False(t, res.Clamped)
	assert.Equal(t, 0, res.Board.Tiles[1][3].Locks)
	assert.Equal(t, progress.Win, res.Outcome)
}

func TestSingleVaultIsWinnableAfterOpeningMove(t *testing.T) {
	b := grid(7)
	b.Tiles[1][3].Kind, b.Tiles[1][3].Locks = board.KindVault, 1
	in := MoveInput{
		Board: b, Positions: spell(b, 0, "CAT"), Mode: progress.VaultBreak,
		Player: board.Player{ID: "p1"}, TurnsLeft: progress.Unlimited,
	}
	res, err := SubmitMove(dict, in)
	require.NoError(t, err)
	require.True(t, res.Clamped)
	require.Equal(t, progress.Ongoing, res.Outcome)

	in.Board, in.MovesMade = res.Board, 1
	in.Positions = spell(in.Board, 0, "CAT")
	res, err = SubmitMove(dict, in)
	require.NoError(t, err)
	assert.False(t, res.Clamped)
	assert.Equal(t, 0, res.Board.Tiles[1][3].Locks)
	assert.Equal(t, progress.Win, res.Outcome)
}

func TestSinglePhraseTileIsWinnableAfterOpeningMove(t *testing.T) {
	b := grid(7)
	ph := &b.Tiles[1][1]
	ph.Kind, ph.Fogged, ph.Phrase = board.KindFog, true, true
	in := MoveInput{
		Board: b, Positions: spell(b, 0, "CAT"), Mode: progress.HiddenPhrase,
		Player: board.Player{ID: "p1"}, TurnsLeft: progress.Unlimited,
	}
	res, err := SubmitMove(dict, in)
	require.NoError(t, err)
	require.True(t, res.Clamped)
	assert.True(t, res.Board.Tiles[1][1].Fogged)

	in.Board, in.MovesMade = res.Board, 1
	in.Positions = spell(in.Board, 0, "CAT")
	res, err = SubmitMove(dict, in)
	require.NoError(t, err)
	assert.False(t, res.Clamped)
	assert.True(t, res.Board.Tiles[1][1].Revealed)
	assert.Equal(t, progress.Win, res.Outcome)
}

func TestSubmitMoveIsDeterministic(t *testing.T) {
	b := grid(9)
	b.Tiles[4][4].Kind, b.Tiles[4][4].Locks = board.KindLocked, 2
	ps := spell(b, 3, "ROTATE")
	in := scoreInput(b, ps, 500)

	r1, err := SubmitMove(dict, in)
	require.NoError(t, err)
	r2, err := SubmitMove(dict, in)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
	assert.NotSame(t, r1.Board, r2.Board)
}

func TestSubmitMoveErrors(t *testing.T) {
	_, err := SubmitMove(nil, scoreInput(grid(3), nil, 1))
	assert.Error(t, err)

	broken := grid(3)
	broken.Tiles[0][0].Letter = ""
	_, err = SubmitMove(dict, scoreInput(broken, []board.Position{{Row: 0, Col: 0}}, 1))
	assert.ErrorIs(t, err, board.ErrInvalidBoard)
}
