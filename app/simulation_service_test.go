package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mideck/adapters/rng"
	"mideck/domain/core"
	"mideck/domain/demo"
)

func TestParseSeedPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want SeedPolicy
		err  bool
	}{
		{"", SeedPolicyReseed, false},
		{"reseed", SeedPolicyReseed, false},
		{" Stream ", SeedPolicyStream, false},
		{"random", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSeedPolicy(tt.in)
		if tt.err {
			assert.ErrorIs(t, err, core.ErrInvalidSetting)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestSimulateReseedIsDeterministic(t *testing.T) {
	svc := NewSimulationService(rng.NewPCGAdapter(), 42, SeedPolicyReseed)
	ctx := context.Background()

	first, err := svc.Simulate(ctx, demo.DefaultInputs())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := svc.Simulate(ctx, demo.DefaultInputs())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	assert.Less(t, first.LowerBound, first.PooledEstimate)
	assert.Less(t, first.PooledEstimate, first.UpperBound)
	assert.InDelta(t, 1.05, first.HalfWidth(), 1e-9)
}

func TestSimulateStreamAdvances(t *testing.T) {
	svc := NewSimulationService(rng.NewPCGAdapter(), 42, SeedPolicyStream)
	ctx := context.Background()

	a, err := svc.Simulate(ctx, demo.DefaultInputs())
	require.NoError(t, err)
	b, err := svc.Simulate(ctx, demo.DefaultInputs())
	require.NoError(t, err)
	assert.NotEqual(t, a.Jitter, b.Jitter)

	// The first draw of the stream equals the reseeded draw.
	reseed := NewSimulationService(rng.NewPCGAdapter(), 42, SeedPolicyReseed)
	r, err := reseed.Simulate(ctx, demo.DefaultInputs())
	require.NoError(t, err)
	assert.Equal(t, r.Jitter, a.Jitter)
}

func TestSimulateStreamConcurrent(t *testing.T) {
	svc := NewSimulationService(rng.NewPCGAdapter(), 1, SeedPolicyStream)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Simulate(context.Background(), demo.DefaultInputs())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestSimulateRejectsInvalidInputs(t *testing.T) {
	svc := NewSimulationService(rng.NewPCGAdapter(), 42, SeedPolicyReseed)

	in := demo.DefaultInputs()
	in.MissingPercent = 75
	_, err := svc.Simulate(context.Background(), in)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestSimulateCancelled(t *testing.T) {
	svc := NewSimulationService(rng.NewPCGAdapter(), 42, SeedPolicyReseed)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Simulate(ctx, demo.DefaultInputs())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweepMatchesSimulate(t *testing.T) {
	svc := NewSimulationService(rng.NewPCGAdapter(), 42, SeedPolicyReseed)
	ctx := context.Background()

	sw, err := svc.Sweep(ctx, demo.DefaultInputs(), demo.ParamNumImputations)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), sw.Seed)
	require.Len(t, sw.Points, 20)

	single, err := svc.Simulate(ctx, demo.DefaultInputs())
	require.NoError(t, err)
	for _, pt := range sw.Points {
		if pt.Value == demo.DefaultImputations {
			assert.Equal(t, single, pt.Result)
		}
	}

	_, err = svc.Sweep(ctx, demo.DefaultInputs(), "bogus")
	assert.ErrorIs(t, err, core.ErrInvalidSetting)
}

func TestAccuracyIsStable(t *testing.T) {
	svc := NewSimulationService(rng.NewPCGAdapter(), 42, SeedPolicyStream)
	ctx := context.Background()

	a, err := svc.Accuracy(ctx, demo.MetricMSE)
	require.NoError(t, err)
	b, err := svc.Accuracy(ctx, demo.MetricMSE)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = svc.Accuracy(ctx, "rmse")
	assert.ErrorIs(t, err, core.ErrInvalidSetting)
}

func TestServiceMatchesDomainFunctions(t *testing.T) {
	ctx := context.Background()
	in := demo.DefaultInputs()
	in.SampleSize = 300

	for _, seed := range []uint64{0, 7, 42} {
		svc := NewSimulationService(rng.NewPCGAdapter(), seed, SeedPolicyReseed)

		want, err := demo.Simulate(in, seed)
		require.NoError(t, err)
		got, err := svc.Simulate(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "seed %d", seed)

		wantSweep, err := demo.RunSweep(in, demo.ParamMissingPercent, seed)
		require.NoError(t, err)
		gotSweep, err := svc.Sweep(ctx, in, demo.ParamMissingPercent)
		require.NoError(t, err)
		assert.Equal(t, wantSweep, gotSweep, "seed %d", seed)
	}
}
