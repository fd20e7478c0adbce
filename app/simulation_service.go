package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"mideck/domain/core"
	"mideck/domain/demo"
	"mideck/ports"
)

// SeedPolicy decides how the demo jitter generator is seeded.
type SeedPolicy string

const (
	// SeedPolicyReseed seeds a fresh generator on every call, so the same
	// inputs always render the same chart.
	SeedPolicyReseed SeedPolicy = "reseed"
	// SeedPolicyStream seeds one generator at startup and keeps drawing from it.
	SeedPolicyStream SeedPolicy = "stream"
)

// ParseSeedPolicy accepts "reseed" or "stream", ignoring case. Empty means reseed.
func ParseSeedPolicy(s string) (SeedPolicy, error) {
	switch SeedPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SeedPolicyReseed:
		return SeedPolicyReseed, nil
	case SeedPolicyStream:
		return SeedPolicyStream, nil
	}
	return "", fmt.Errorf("%w: seed policy %q", core.ErrInvalidSetting, s)
}

// SimulationService runs the conceptual imputation demo
type SimulationService struct {
	rngPort ports.RNGPort
	seed    uint64
	policy  SeedPolicy

	mu     sync.Mutex
	stream rand.Source
}

// NewSimulationService creates a simulation service
func NewSimulationService(rngPort ports.RNGPort, seed uint64, policy SeedPolicy) *SimulationService {
	return &SimulationService{
		rngPort: rngPort,
		seed:    seed,
		policy:  policy,
	}
}

// Seed returns the configured seed.
func (s *SimulationService) Seed() uint64 { return s.seed }

// Policy returns the configured seed policy.
func (s *SimulationService) Policy() SeedPolicy { return s.policy }

// Simulate validates the inputs, draws one jitter and computes the pooled
// estimate and interval.
func (s *SimulationService) Simulate(ctx context.Context, in demo.SimulationInputs) (demo.SimulationResult, error) {
	if err := in.Validate(); err != nil {
		return demo.SimulationResult{}, err
	}
	jitter, err := s.drawJitter(ctx)
	if err != nil {
		return demo.SimulationResult{}, err
	}
	return demo.Compute(in, jitter)
}

// Sweep walks one slider over its range with the other inputs fixed. All
// points share a single jitter draw.
func (s *SimulationService) Sweep(ctx context.Context, base demo.SimulationInputs, p demo.Parameter) (*demo.Sweep, error) {
	if _, err := p.Range(); err != nil {
		return nil, err
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}
	jitter, err := s.drawJitter(ctx)
	if err != nil {
		return nil, err
	}
	sw, err := demo.SweepWithJitter(base, p, jitter)
	if err != nil {
		return nil, err
	}
	sw.Seed = s.seed
	return sw, nil
}

func (s *SimulationService) drawJitter(ctx context.Context) (float64, error) {
	if s.policy != SeedPolicyStream {
		src, err := s.rngPort.SeededStream(ctx, demo.JitterStream, s.seed)
		if err != nil {
			return 0, fmt.Errorf("seed jitter stream: %w", err)
		}
		return demo.DrawJitter(src), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream == nil {
		src, err := s.rngPort.SeededStream(ctx, demo.JitterStream, s.seed)
		if err != nil {
			return 0, fmt.Errorf("seed jitter stream: %w", err)
		}
		s.stream = src
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return demo.DrawJitter(s.stream), nil
}

// Accuracy draws the R vs SAS error curves for a metric. The noise stream is
// always reseeded so the comparison chart does not change between views.
func (s *SimulationService) Accuracy(ctx context.Context, m demo.AccuracyMetric) (demo.AccuracySeries, error) {
	src, err := s.rngPort.SeededStream(ctx, demo.AccuracyStream, s.seed)
	if err != nil {
		return demo.AccuracySeries{}, fmt.Errorf("seed accuracy stream: %w", err)
	}
	return demo.Accuracy(m, src)
}
