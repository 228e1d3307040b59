package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/internal/generator"
	"github.com/robalobadob/wordgrid/internal/store"
)

func TestSeedIsStablePerDay(t *testing.T) {
	morning := time.Date(2026, 3, 14, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	next := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-14", DateKey(morning))
	assert.Equal(t, Seed(morning, "salt"), Seed(evening, "salt"))
	assert.NotEqual(t, Seed(morning, "salt"), Seed(next, "salt"))
	assert.NotEqual(t, Seed(morning, "salt"), Seed(morning, "pepper"))
	assert.GreaterOrEqual(t, Seed(morning, "salt"), int64(0))

	// A non-UTC clock on the same UTC day agrees.
	east := time.FixedZone("east", 10*3600)
	assert.Equal(t, DateKey(evening), DateKey(evening.In(east)))
}

func TestPuzzleSetup(t *testing.T) {
	g := generator.New(nil, 60, 8)
	day := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	p := For(day, "salt", 7, 10)

	a, err := p.Setup(g)
	require.NoError(t, err)
	b, err := p.Setup(g)
	require.NoError(t, err)
	assert.Equal(t, a.Board, b.Board)
	assert.Equal(t, 10, a.Turns)
	assert.Equal(t, 60, a.Condition.Target)
	assert.Equal(t, []string{"daily", "2026-01-02"}, a.Tags)

	_, err = For(day, "salt", 4, 10).Setup(g)
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "daily.db"))
	require.NoError(t, err)
	defer db.Close()
	st := NewStore(db)
	ctx := context.Background()

	played, err := st.AlreadyPlayed(ctx, "ana", "2026-01-02")
	require.NoError(t, err)
	assert.False(t, played)

	id, err := st.GameFor(ctx, "ana", "2026-01-02")
	require.NoError(t, err)
	assert.Empty(t, id)
	id, err = st.BindGame(ctx, "ana", "2026-01-02", "g1")
	require.NoError(t, err)
	assert.Equal(t, "g1", id)
	id, err = st.BindGame(ctx, "ana", "2026-01-02", "g2")
	require.NoError(t, err)
	assert.Equal(t, "g1", id, "first binding wins")
	require.NoError(t, st.Rebind(ctx, "ana", "2026-01-02", "g3"))
	id, err = st.GameFor(ctx, "ana", "2026-01-02")
	require.NoError(t, err)
	assert.Equal(t, "g3", id)

	results := []Result{
		{UserID: "ana", Date: "2026-01-02", Score: 70, Moves: 6, Outcome: "win", ElapsedMs: 900},
		{UserID: "bo", Date: "2026-01-02", Score: 90, Moves: 6, Outcome: "win", ElapsedMs: 1200},
		{UserID: "cy", Date: "2026-01-02", Score: 65, Moves: 4, Outcome: "win", ElapsedMs: 5000},
		{UserID: "di", Date: "2026-01-02", Score: 20, Moves: 10, Outcome: "loss"},
		{UserID: "ana", Date: "2026-01-03", Score: 61, Moves: 2, Outcome: "win"},
	}
	for _, r := range results {
		require.NoError(t, st.InsertResult(ctx, r))
	}
	// duplicate ignored
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "ana", Date: "2026-01-02", Score: 999, Moves: 1, Outcome: "win"}))

	played, err = st.AlreadyPlayed(ctx, "ana", "2026-01-02")
	require.NoError(t, err)
	assert.True(t, played)

	lb, err := st.Leaderboard(ctx, "2026-01-02", 0)
	require.NoError(t, err)
	require.Len(t, lb, 3)
	assert.Equal(t, []string{"cy", "bo", "ana"}, []string{lb[0].UserID, lb[1].UserID, lb[2].UserID})
	assert.Equal(t, 70, lb[2].Score)

	lb, err = st.Leaderboard(ctx, "2026-01-02", 1)
	require.NoError(t, err)
	assert.Len(t, lb, 1)

	// Claim keeps ana's own 2026-01-02 entries and moves the rest.
	_, err = st.BindGame(ctx, "anon-1", "2026-01-02", "g9")
	require.NoError(t, err)
	_, err = st.BindGame(ctx, "anon-1", "2026-01-04", "g10")
	require.NoError(t, err)
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "anon-1", Date: "2026-01-04", Score: 5, Moves: 3, Outcome: "loss"}))
	require.NoError(t, st.Claim(ctx, "anon-1", "ana"))

	id, err = st.GameFor(ctx, "ana", "2026-01-02")
	require.NoError(t, err)
	assert.Equal(t, "g3", id)
	id, err = st.GameFor(ctx, "ana", "2026-01-04")
	require.NoError(t, err)
	assert.Equal(t, "g10", id)
	played, err = st.AlreadyPlayed(ctx, "ana", "2026-01-04")
	require.NoError(t, err)
	assert.True(t, played)
	played, err = st.AlreadyPlayed(ctx, "anon-1", "2026-01-04")
	require.NoError(t, err)
	assert.False(t, played)
}
