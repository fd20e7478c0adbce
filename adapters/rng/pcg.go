package rng

import (
	"context"
	"math/rand/v2"

	"mideck/domain/demo"
	"mideck/ports"
)

// PCGAdapter implements ports.RNGPort with math/rand/v2 PCG generators.
type PCGAdapter struct{}

var _ ports.RNGPort = (*PCGAdapter)(nil)

// NewPCGAdapter creates the adapter.
func NewPCGAdapter() *PCGAdapter {
	return &PCGAdapter{}
}

// SeededStream returns the PCG generator for the named stream, the same one
// the demo package seeds on its own.
func (a *PCGAdapter) SeededStream(ctx context.Context, name string, seed uint64) (rand.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return demo.NewStreamSource(name, seed), nil
}
