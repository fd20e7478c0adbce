package demo

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"mideck/domain/core"
)

// Parameter names one slider.
type Parameter string

const (
	ParamSampleSize      Parameter = "sample_size"
	ParamMissingPercent  Parameter = "missing_percent"
	ParamNumImputations  Parameter = "num_imputations"
	ParamModelComplexity Parameter = "model_complexity"
)

// Parameters lists the sliders in page order.
func Parameters() []Parameter {
	return []Parameter{ParamSampleSize, ParamMissingPercent, ParamNumImputations, ParamModelComplexity}
}

// SliderRange is the domain and step of one slider.
type SliderRange struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

// Range returns the slider domain for p.
func (p Parameter) Range() (SliderRange, error) {
	switch p {
	case ParamSampleSize:
		return SliderRange{MinSampleSize, MaxSampleSize, SampleSizeStep}, nil
	case ParamMissingPercent:
		return SliderRange{MinMissingPercent, MaxMissingPercent, MissingPercentStep}, nil
	case ParamNumImputations:
		return SliderRange{MinImputations, MaxImputations, ImputationsStep}, nil
	case ParamModelComplexity:
		return SliderRange{MinComplexity, MaxComplexity, ComplexityStep}, nil
	}
	return SliderRange{}, fmt.Errorf("%w: parameter %q", core.ErrInvalidSetting, p)
}

// with returns in with the parameter set to v.
func (p Parameter) with(in SimulationInputs, v int) SimulationInputs {
	switch p {
	case ParamSampleSize:
		in.SampleSize = v
	case ParamMissingPercent:
		in.MissingPercent = v
	case ParamNumImputations:
		in.NumImputations = v
	case ParamModelComplexity:
		in.ModelComplexity = v
	}
	return in
}

// SweepPoint is the result for one slider position.
type SweepPoint struct {
	Value  int              `json:"value"`
	Result SimulationResult `json:"result"`
}

// SweepSummary condenses a sweep.
type SweepSummary struct {
	MeanEstimate  float64 `json:"mean_estimate"`
	MinHalfWidth  float64 `json:"min_half_width"`
	MaxHalfWidth  float64 `json:"max_half_width"`
	MeanHalfWidth float64 `json:"mean_half_width"`
}

// Sweep is one slider walked over its whole range with the others fixed.
type Sweep struct {
	Parameter Parameter        `json:"parameter"`
	Base      SimulationInputs `json:"base"`
	Seed      uint64           `json:"seed"`
	Points    []SweepPoint     `json:"points"`
	Summary   SweepSummary     `json:"summary"`
}

// RunSweep evaluates Simulate at every step of p's slider. Every point is
// seeded identically, so differences between points come only from the model.
func RunSweep(base SimulationInputs, p Parameter, seed uint64) (*Sweep, error) {
	sw, err := SweepWithJitter(base, p, DrawJitter(NewSource(seed)))
	if err != nil {
		return nil, err
	}
	sw.Seed = seed
	return sw, nil
}

// SweepWithJitter walks p's slider applying one already drawn jitter to
// every point.
func SweepWithJitter(base SimulationInputs, p Parameter, jitter float64) (*Sweep, error) {
	rng, err := p.Range()
	if err != nil {
		return nil, err
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}

	sw := &Sweep{Parameter: p, Base: base}
	estimates := make([]float64, 0, (rng.Max-rng.Min)/rng.Step+1)
	widths := make([]float64, 0, cap(estimates))

	for v := rng.Min; v <= rng.Max; v += rng.Step {
		res, err := Compute(p.with(base, v), jitter)
		if err != nil {
			return nil, err
		}
		sw.Points = append(sw.Points, SweepPoint{Value: v, Result: res})
		estimates = append(estimates, res.PooledEstimate)
		widths = append(widths, res.HalfWidth())
	}

	summary, err := summarize(estimates, widths)
	if err != nil {
		return nil, err
	}
	sw.Summary = summary
	return sw, nil
}

func summarize(estimates, widths []float64) (SweepSummary, error) {
	var s SweepSummary
	var err error

	if s.MeanEstimate, err = stats.Mean(estimates); err != nil {
		return s, err
	}
	if s.MinHalfWidth, err = stats.Min(widths); err != nil {
		return s, err
	}
	if s.MaxHalfWidth, err = stats.Max(widths); err != nil {
		return s, err
	}
	if s.MeanHalfWidth, err = stats.Mean(widths); err != nil {
		return s, err
	}
	return s, nil
}
