package demo

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"mideck/domain/core"
)

// AccuracyMetric selects the imputation error measure on the comparison page.
type AccuracyMetric string

const (
	MetricMAE AccuracyMetric = "mae"
	MetricMSE AccuracyMetric = "mse"
)

// AccuracyVisits is the number of visit timepoints in the study.
const AccuracyVisits = 28

// AccuracyMetrics lists the radio options in display order.
func AccuracyMetrics() []AccuracyMetric {
	return []AccuracyMetric{MetricMAE, MetricMSE}
}

// Label is the radio caption for m.
func (m AccuracyMetric) Label() string {
	switch m {
	case MetricMAE:
		return "Mean Absolute Error (MAE)"
	case MetricMSE:
		return "Mean Squared Error (MSE)"
	}
	return string(m)
}

// AccuracyPoint is one visit of the R vs SAS comparison.
type AccuracyPoint struct {
	Visit int     `json:"visit"`
	R     float64 `json:"r"`
	SAS   float64 `json:"sas"`
}

// AccuracySeries is a synthetic error curve per visit for both tools.
type AccuracySeries struct {
	Metric  AccuracyMetric  `json:"metric"`
	Label   string          `json:"label"`
	Caption string          `json:"caption"`
	Points  []AccuracyPoint `json:"points"`
}

// curve is base + amp*wave(visit/period - shift) + noise*N(0,1).
type curve struct {
	base, amp, period, noise float64
	wave                     func(float64) float64
}

// shift is the SAS phase lag.
func (m AccuracyMetric) curve() (c curve, shift float64, err error) {
	switch m {
	case MetricMAE:
		return curve{base: 0.1, amp: 0.05, period: 3, noise: 0.01, wave: math.Sin}, 0.1, nil
	case MetricMSE:
		return curve{base: 0.02, amp: 0.01, period: 4, noise: 0.005, wave: math.Cos}, 0.15, nil
	}
	return curve{}, 0, fmt.Errorf("%w: accuracy metric %q", core.ErrInvalidSetting, m)
}

func (c curve) at(visit, shift, z float64) float64 {
	return c.base + c.amp*c.wave(visit/c.period-shift) + c.noise*z
}

// Accuracy draws the conceptual per-visit errors for m. The SAS curve is the
// R curve phase-shifted slightly; both carry independent normal noise from src.
func Accuracy(m AccuracyMetric, src rand.Source) (AccuracySeries, error) {
	c, shift, err := m.curve()
	if err != nil {
		return AccuracySeries{}, err
	}

	noise := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	rNoise := make([]float64, AccuracyVisits)
	for i := range rNoise {
		rNoise[i] = noise.Rand()
	}

	series := AccuracySeries{
		Metric:  m,
		Label:   m.Label(),
		Caption: fmt.Sprintf("Conceptual %s Comparison between R and SAS. (Simulated data)", strings.ToUpper(string(m))),
		Points:  make([]AccuracyPoint, AccuracyVisits),
	}
	for i := 0; i < AccuracyVisits; i++ {
		visit := float64(i + 1)
		series.Points[i] = AccuracyPoint{
			Visit: i + 1,
			R:     c.at(visit, 0, rNoise[i]),
			SAS:   c.at(visit, shift, noise.Rand()),
		}
	}
	return series, nil
}
