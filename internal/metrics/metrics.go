// Package metrics exposes Prometheus counters for played moves. The engine
// packages stay free of instrumentation; the HTTP layer records each
// game.Result here.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/wordgrid/internal/game"
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	moves      *prometheus.CounterVec
	effects    *prometheus.CounterVec
	wordScore  prometheus.Histogram
	outcomes   *prometheus.CounterVec
	gamesStart *prometheus.CounterVec
}

// New registers the wordgrid collectors plus Go runtime and process stats.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordgrid",
			Name:      "moves_total",
			Help:      "Submitted moves by result (accepted, input, invalid).",
		}, []string{"result"}),
		effects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordgrid",
			Name:      "effects_total",
			Help:      "Applied effects by kind and trigger.",
		}, []string{"kind", "trigger"}),
		wordScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wordgrid",
			Name:      "word_score",
			Help:      "Points awarded per accepted word.",
			Buckets:   []float64{3, 5, 8, 12, 20, 30, 50, 80},
		}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordgrid",
			Name:      "games_finished_total",
			Help:      "Finished games by mode and outcome.",
		}, []string{"mode", "outcome"}),
		gamesStart: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordgrid",
			Name:      "games_started_total",
			Help:      "Started games by mode.",
		}, []string{"mode"}),
	}
	m.reg.MustRegister(
		m.moves, m.effects, m.wordScore, m.outcomes, m.gamesStart,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Started counts a new game.
func (m *Metrics) Started(s *game.Session) {
	m.gamesStart.WithLabelValues(string(s.Mode)).Inc()
}

// Observe records one SubmitMove result for session s.
func (m *Metrics) Observe(s *game.Session, r game.Result) {
	switch {
	case r.Accepted:
		m.moves.WithLabelValues("accepted").Inc()
	case game.IsInputError(r.Reason):
		m.moves.WithLabelValues("input").Inc()
		return
	default:
		m.moves.WithLabelValues("invalid").Inc()
		return
	}
	m.wordScore.Observe(float64(r.Score))
	for _, e := range r.Effects {
		m.effects.WithLabelValues(string(e.Kind), string(e.Trigger)).Inc()
	}
	if r.Outcome.Final() {
		m.outcomes.WithLabelValues(string(s.Mode), string(r.Outcome)).Inc()
	}
}

// Registry exposes the registry for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
