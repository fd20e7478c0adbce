package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartSpecDefaultDomain(t *testing.T) {
	res, err := Compute(DefaultInputs(), 0)
	require.NoError(t, err)

	spec := NewChartSpec(res)
	assert.Equal(t, 0.0, spec.DomainMin)
	assert.Equal(t, 4.0, spec.DomainMax)
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4}, spec.Ticks)
	assert.Equal(t, res.PooledEstimate, spec.Estimate)
	assert.Equal(t, "Effect Estimate", spec.XLabel)
}

func TestChartSpecWidensWhenClipped(t *testing.T) {
	low := SimulationInputs{SampleSize: 100, MissingPercent: 0, NumImputations: 5, ModelComplexity: 10}
	res, err := Compute(low, 0)
	require.NoError(t, err)
	require.Less(t, res.LowerBound, 0.0)

	spec := NewChartSpec(res)
	assert.InDelta(t, res.LowerBound-0.5, spec.DomainMin, eps)
	assert.Equal(t, 4.0, spec.DomainMax)
	assert.Equal(t, -0.5, spec.Ticks[0])

	high := SimulationInputs{SampleSize: 1000, MissingPercent: 50, NumImputations: 5, ModelComplexity: 10}
	res, err = Compute(high, 0.5)
	require.NoError(t, err)
	require.Greater(t, res.UpperBound, 3.5)

	spec = NewChartSpec(res)
	assert.Equal(t, 0.0, spec.DomainMin)
	assert.InDelta(t, res.UpperBound+0.5, spec.DomainMax, eps)
}

func TestChartScale(t *testing.T) {
	spec := ChartSpec{DomainMin: 0, DomainMax: 4}
	assert.Equal(t, 0.0, spec.Scale(0, 400))
	assert.Equal(t, 200.0, spec.Scale(2, 400))
	assert.Equal(t, 400.0, spec.Scale(4, 400))

	assert.Equal(t, 0.0, ChartSpec{}.Scale(1, 400))
}
