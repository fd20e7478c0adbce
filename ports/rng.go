package ports

import (
	"context"
	"math/rand/v2"
)

// RNGPort provides seeded random sources for deterministic operations
type RNGPort interface {
	// SeededStream returns a source for a named operation. The same name and
	// seed always produce the same sequence.
	SeededStream(ctx context.Context, name string, seed uint64) (rand.Source, error)
}
