package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		notFound   bool
		validation bool
	}{
		{"missing page", NewPageNotFoundError("9_Missing"), true, false},
		{"wrapped missing page", fmt.Errorf("navigate: %w", NewPageNotFoundError("x")), true, false},
		{"bad catalog", NewCatalogError("duplicate identifier"), false, true},
		{"unknown setting", fmt.Errorf("%w %q", ErrInvalidSetting, "sometimes"), false, true},
		{"plain input error", ErrInvalidInput, false, true},
		{"unrelated", fmt.Errorf("disk full"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.validation, IsValidationError(tt.err))
		})
	}
}

func TestPageNotFoundMessage(t *testing.T) {
	err := NewPageNotFoundError("9_Missing")
	assert.ErrorIs(t, err, ErrPageNotFound)
	assert.Contains(t, err.Error(), `"9_Missing"`)
}
