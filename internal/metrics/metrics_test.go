package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"mideck/domain/core"
)

func TestRecorders(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordPageView("0_Home")
	m.RecordPageView("0_Home")
	m.RecordPageView("7_Interactive_Demo")
	m.RecordNavigationMiss()
	m.RecordSimulation(OutcomeOK, 0.95)
	m.RecordSimulation(OutcomeInvalid, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.pageViews.WithLabelValues("0_Home")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pageViews.WithLabelValues("7_Interactive_Demo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.navigationMiss))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.simulations.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.simulations.WithLabelValues(OutcomeInvalid)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.simulationWidth))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordPageView("0_Home")
		m.RecordNavigationMiss()
		m.RecordSimulation(OutcomeOK, 1)
	})
}

func TestOutcomeFor(t *testing.T) {
	assert.Equal(t, OutcomeOK, OutcomeFor(nil))
	assert.Equal(t, OutcomeInvalid, OutcomeFor(fmt.Errorf("%w: sample_size", core.ErrInvalidInput)))
	assert.Equal(t, OutcomeError, OutcomeFor(errors.New("boom")))
}
