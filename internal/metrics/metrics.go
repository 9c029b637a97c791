// Package metrics holds the Prometheus collectors for the scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

const namespace = "bowling"

// Metrics records engine outcomes. A nil *Metrics records nothing.
type Metrics struct {
	rolls           *prometheus.CounterVec
	gamesCompleted  prometheus.Counter
	finalScores     prometheus.Histogram
	reconstructions *prometheus.CounterVec
	sheetsImported  *prometheus.CounterVec
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		rolls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rolls_total",
			Help:      "Rolls submitted, by outcome (accepted or the rejection reason).",
		}, []string{"outcome"}),
		gamesCompleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_completed_total",
			Help:      "Games whose tenth frame was finished.",
		}),
		finalScores: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Final scores of completed games.",
			Buckets:   prometheus.LinearBuckets(0, 30, 11),
		}),
		reconstructions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconstructions_total",
			Help:      "Games rebuilt from running totals, by overall confidence.",
		}, []string{"confidence"}),
		sheetsImported: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scoresheets_imported_total",
			Help:      "Scoresheet uploads, by result.",
		}, []string{"result"}),
	}
}

// ObserveRoll counts a roll; err is the engine's rejection, if any.
func (m *Metrics) ObserveRoll(err error) {
	if m == nil {
		return
	}
	outcome := "accepted"
	if err != nil {
		outcome = bowling.Reason(err)
	}
	m.rolls.WithLabelValues(outcome).Inc()
}

// ObserveGame records g's final score once it is complete.
func (m *Metrics) ObserveGame(g bowling.Game) {
	if m == nil || g.Final() == nil {
		return
	}
	m.gamesCompleted.Inc()
	m.finalScores.Observe(float64(*g.Final()))
}

func (m *Metrics) ObserveReconstruction(c bowling.Confidence) {
	if m == nil {
		return
	}
	m.reconstructions.WithLabelValues(c.String()).Inc()
}

func (m *Metrics) ObserveSheet(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.sheetsImported.WithLabelValues(result).Inc()
}
