package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/internal/effects"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/progress"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	b, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(b)
}

func TestObserve(t *testing.T) {
	m := New()
	s := &game.Session{Mode: progress.VaultBreak}
	m.Started(s)

	m.Observe(s, game.Result{Reason: game.ErrNotAdjacent})
	m.Observe(s, game.Result{Reason: errors.Join(game.ErrUnknownWord)})
	m.Observe(s, game.Result{
		Accepted: true,
		Score:    7,
		Effects: []effects.Effect{
			{Kind: effects.KindWeaken, Trigger: effects.TriggerLength},
			{Kind: effects.KindBreak, Trigger: effects.TriggerRare},
		},
		Outcome: progress.Win,
	})

	out := scrape(t, m)
	assert.Contains(t, out, `wordgrid_games_started_total{mode="vault_break"} 1`)
	assert.Contains(t, out, `wordgrid_moves_total{result="accepted"} 1`)
	assert.Contains(t, out, `wordgrid_moves_total{result="input"} 1`)
	assert.Contains(t, out, `wordgrid_moves_total{result="invalid"} 1`)
	assert.Contains(t, out, `wordgrid_effects_total{kind="weaken",trigger="length"} 1`)
	assert.Contains(t, out, `wordgrid_effects_total{kind="break",trigger="rare_letter"} 1`)
	assert.Contains(t, out, `wordgrid_games_finished_total{mode="vault_break",outcome="win"} 1`)
	assert.Contains(t, out, `wordgrid_word_score_sum 7`)
	assert.Contains(t, out, "go_goroutines")
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.Started(&game.Session{Mode: progress.ScoreTarget})
	assert.NotContains(t, scrape(t, b), `wordgrid_games_started_total{mode="score_target"}`)
	assert.NotNil(t, a.Registry())
}
