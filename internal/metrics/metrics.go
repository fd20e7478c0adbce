// Package metrics exposes Prometheus collectors for page views, navigation
// misses and demo simulations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mideck/domain/core"
)

const namespace = "mideck"

// Simulation outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// OutcomeFor classifies a failed simulation.
func OutcomeFor(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case core.IsValidationError(err):
		return OutcomeInvalid
	}
	return OutcomeError
}

// Metrics groups the collectors. A nil *Metrics records nothing.
type Metrics struct {
	pageViews       *prometheus.CounterVec
	navigationMiss  prometheus.Counter
	simulations     *prometheus.CounterVec
	simulationWidth prometheus.Histogram
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		pageViews: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_views_total",
			Help:      "Pages rendered, by page identifier",
		}, []string{"page"}),
		navigationMiss: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigation_misses_total",
			Help:      "Navigation requests for identifiers not in the catalog",
		}),
		simulations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Demo simulations by outcome (ok, invalid, error)",
		}, []string{"outcome"}),
		simulationWidth: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_half_width",
			Help:      "Half-width of the simulated confidence interval",
			Buckets:   []float64{0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 1.1, 1.2, 1.4},
		}),
	}
}

// RecordPageView counts a rendered page.
func (m *Metrics) RecordPageView(page string) {
	if m == nil {
		return
	}
	m.pageViews.WithLabelValues(page).Inc()
}

// RecordNavigationMiss counts a lookup of an unknown page.
func (m *Metrics) RecordNavigationMiss() {
	if m == nil {
		return
	}
	m.navigationMiss.Inc()
}

// RecordSimulation counts a simulation. halfWidth is observed only for
// successful runs.
func (m *Metrics) RecordSimulation(outcome string, halfWidth float64) {
	if m == nil {
		return
	}
	m.simulations.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.simulationWidth.Observe(halfWidth)
	}
}
