package demo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mideck/domain/core"
)

func TestAccuracySeries(t *testing.T) {
	tests := []struct {
		metric  AccuracyMetric
		base    float64
		maxDist float64
	}{
		{MetricMAE, 0.1, 0.05 + 6*0.01},
		{MetricMSE, 0.02, 0.01 + 6*0.005},
	}

	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			series, err := Accuracy(tt.metric, NewSource(DefaultSeed))
			require.NoError(t, err)
			require.Len(t, series.Points, AccuracyVisits)
			assert.Equal(t, tt.metric.Label(), series.Label)
			assert.Contains(t, series.Caption, "Simulated data")

			for i, pt := range series.Points {
				assert.Equal(t, i+1, pt.Visit)
				assert.Less(t, math.Abs(pt.R-tt.base), tt.maxDist)
				assert.Less(t, math.Abs(pt.SAS-tt.base), tt.maxDist)
			}
		})
	}
}

func TestAccuracyDeterministic(t *testing.T) {
	a, err := Accuracy(MetricMAE, NewSource(3))
	require.NoError(t, err)
	b, err := Accuracy(MetricMAE, NewSource(3))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAccuracyUnknownMetric(t *testing.T) {
	_, err := Accuracy("rmse", NewSource(DefaultSeed))
	assert.ErrorIs(t, err, core.ErrInvalidSetting)
}
