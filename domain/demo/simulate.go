package demo

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	BaseEffect  = 2.0
	BaseCIWidth = 1.5

	// JitterStdDev is the spread of the single normal draw added for visual effect.
	JitterStdDev = 0.1

	// DefaultSeed keeps the conceptual demo reproducible.
	DefaultSeed uint64 = 42
)

// Named random streams. A stream name picks the second PCG word, so two
// streams sharing a seed do not share draws.
const (
	JitterStream   = "demo.jitter"
	AccuracyStream = "demo.accuracy"
)

// SimulationResult is the synthetic pooled estimate and its symmetric interval.
type SimulationResult struct {
	Inputs         SimulationInputs `json:"inputs"`
	Jitter         float64          `json:"jitter"`
	PooledEstimate float64          `json:"pooled_estimate"`
	LowerBound     float64          `json:"lower_bound"`
	UpperBound     float64          `json:"upper_bound"`
}

// HalfWidth is the distance from the estimate to either bound.
func (r SimulationResult) HalfWidth() float64 {
	return (r.UpperBound - r.LowerBound) / 2
}

// Compute applies the fixed arithmetic model for an already drawn jitter.
func Compute(in SimulationInputs, jitter float64) (SimulationResult, error) {
	if err := in.Validate(); err != nil {
		return SimulationResult{}, err
	}

	adj := in.Adjustments()
	estimate := BaseEffect + jitter - adj.SampleSize + adj.MissingData
	halfWidth := (BaseCIWidth + adj.Imputations + adj.Complexity) / 2

	return SimulationResult{
		Inputs:         in,
		Jitter:         jitter,
		PooledEstimate: estimate,
		LowerBound:     estimate - halfWidth,
		UpperBound:     estimate + halfWidth,
	}, nil
}

// DrawJitter takes one Normal(0, JitterStdDev) sample from src.
func DrawJitter(src rand.Source) float64 {
	return distuv.Normal{Mu: 0, Sigma: JitterStdDev, Src: src}.Rand()
}

// NewStreamSource returns the PCG generator for a named stream and seed.
func NewStreamSource(name string, seed uint64) rand.Source {
	return rand.NewPCG(seed, uint64(streamWord(name)))
}

// NewSource returns the jitter stream generator for a seed.
func NewSource(seed uint64) rand.Source {
	return NewStreamSource(JitterStream, seed)
}

// streamWord is djb2
func streamWord(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c)
	}
	return hash
}

// Simulate seeds a fresh jitter stream, draws once and computes the result.
// Identical arguments always give identical results.
func Simulate(in SimulationInputs, seed uint64) (SimulationResult, error) {
	return Compute(in, DrawJitter(NewSource(seed)))
}
