package demo

import (
	"fmt"
	"strings"

	"mideck/domain/core"
)

// Slider domains for the interactive demo page.
const (
	MinSampleSize     = 100
	MaxSampleSize     = 1000
	DefaultSampleSize = 500
	SampleSizeStep    = 50

	MinMissingPercent     = 0
	MaxMissingPercent     = 50
	DefaultMissingPercent = 20
	MissingPercentStep    = 5

	MinImputations     = 5
	MaxImputations     = 100
	DefaultImputations = 20
	ImputationsStep    = 5

	MinComplexity     = 1
	MaxComplexity     = 10
	DefaultComplexity = 5
	ComplexityStep    = 1
)

// SimulationInputs holds the four conceptual slider values. It is passed by
// value on every render; nothing about it is kept between requests.
type SimulationInputs struct {
	SampleSize      int `json:"sample_size" form:"sample_size"`
	MissingPercent  int `json:"missing_percent" form:"missing_percent"`
	NumImputations  int `json:"num_imputations" form:"num_imputations"`
	ModelComplexity int `json:"model_complexity" form:"model_complexity"`
}

// DefaultInputs returns the slider positions shown on first load.
func DefaultInputs() SimulationInputs {
	return SimulationInputs{
		SampleSize:      DefaultSampleSize,
		MissingPercent:  DefaultMissingPercent,
		NumImputations:  DefaultImputations,
		ModelComplexity: DefaultComplexity,
	}
}

// FieldError describes one input outside its slider domain.
type FieldError struct {
	Field string `json:"field"`
	Value int    `json:"value"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s=%d outside [%d,%d]", f.Field, f.Value, f.Min, f.Max)
}

// InputError lists every violation found by Validate.
type InputError struct {
	Violations []FieldError `json:"violations"`
}

func (e *InputError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%v: %s", core.ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *InputError) Unwrap() error {
	return core.ErrInvalidInput
}

// Validate rejects values outside the slider domains. Values are never clamped.
func (in SimulationInputs) Validate() error {
	var violations []FieldError
	check := func(field string, value, lo, hi int) {
		if value < lo || value > hi {
			violations = append(violations, FieldError{Field: field, Value: value, Min: lo, Max: hi})
		}
	}

	check("sample_size", in.SampleSize, MinSampleSize, MaxSampleSize)
	check("missing_percent", in.MissingPercent, MinMissingPercent, MaxMissingPercent)
	check("num_imputations", in.NumImputations, MinImputations, MaxImputations)
	check("model_complexity", in.ModelComplexity, MinComplexity, MaxComplexity)

	if len(violations) > 0 {
		return &InputError{Violations: violations}
	}
	return nil
}

// Adjustments are the four terms the inputs contribute to the result.
type Adjustments struct {
	SampleSize  float64 `json:"sample_size"`
	MissingData float64 `json:"missing_data"`
	Imputations float64 `json:"imputations"`
	Complexity  float64 `json:"complexity"`
}

// Adjustments computes the terms. Callers must validate first: a zero sample
// size or imputation count would divide by zero.
func (in SimulationInputs) Adjustments() Adjustments {
	return Adjustments{
		SampleSize:  (500 / float64(in.SampleSize)) * 0.1,
		MissingData: (float64(in.MissingPercent) / 100) * 0.5,
		Imputations: (100 / float64(in.NumImputations)) * 0.1,
		Complexity:  (float64(in.ModelComplexity) / 10) * 0.2,
	}
}
