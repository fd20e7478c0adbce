package demo

import (
	"fmt"
	"math"
)

const (
	chartFloor   = 0.0
	chartCeiling = 4.0
	chartPadding = 0.5
	tickStep     = 0.5
)

// ChartSpec describes the single-point-with-error-bar chart.
type ChartSpec struct {
	DomainMin float64   `json:"domain_min"`
	DomainMax float64   `json:"domain_max"`
	Estimate  float64   `json:"estimate"`
	Lower     float64   `json:"lower"`
	Upper     float64   `json:"upper"`
	Ticks     []float64 `json:"ticks"`
	XLabel    string    `json:"x_label"`
}

// NewChartSpec sizes the x axis to [0, 4], widened by half a unit past either
// bound when the interval would otherwise be clipped.
func NewChartSpec(r SimulationResult) ChartSpec {
	spec := ChartSpec{
		DomainMin: math.Min(chartFloor, r.LowerBound-chartPadding),
		DomainMax: math.Max(chartCeiling, r.UpperBound+chartPadding),
		Estimate:  r.PooledEstimate,
		Lower:     r.LowerBound,
		Upper:     r.UpperBound,
		XLabel:    "Effect Estimate",
	}

	for t := math.Ceil(spec.DomainMin/tickStep) * tickStep; t <= spec.DomainMax+1e-9; t += tickStep {
		spec.Ticks = append(spec.Ticks, math.Round(t*100)/100)
	}
	return spec
}

// Scale maps a data value onto [0, width] pixels.
func (c ChartSpec) Scale(x, width float64) float64 {
	span := c.DomainMax - c.DomainMin
	if span <= 0 {
		return 0
	}
	return (x - c.DomainMin) / span * width
}

// EstimateLabel is the point-estimate readout.
func (r SimulationResult) EstimateLabel() string {
	return fmt.Sprintf("%.2f", r.PooledEstimate)
}

// IntervalLabel is the interval readout.
func (r SimulationResult) IntervalLabel() string {
	return fmt.Sprintf("[%.2f, %.2f]", r.LowerBound, r.UpperBound)
}
