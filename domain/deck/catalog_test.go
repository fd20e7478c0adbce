package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mideck/domain/core"
)

func TestNewCatalogRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		pages []PageDescriptor
	}{
		{name: "empty", pages: nil},
		{
			name:  "empty identifier",
			pages: []PageDescriptor{{Ordinal: 0, Identifier: ""}},
		},
		{
			name: "duplicate identifier",
			pages: []PageDescriptor{
				{Ordinal: 0, Identifier: "0_Home"},
				{Ordinal: 1, Identifier: "0_Home"},
			},
		},
		{
			name: "gap in ordinals",
			pages: []PageDescriptor{
				{Ordinal: 0, Identifier: "0_Home"},
				{Ordinal: 2, Identifier: "2_Methods"},
			},
		},
		{
			name:  "ordinal not starting at zero",
			pages: []PageDescriptor{{Ordinal: 1, Identifier: "1_Intro"}},
		},
		{
			name:  "unknown kind",
			pages: []PageDescriptor{{Ordinal: 0, Identifier: "0_Home", Kind: "video"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCatalog(tt.pages)
			assert.Nil(t, c)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrInvalidCatalog)
		})
	}
}

func TestNewCatalogFillsDefaults(t *testing.T) {
	c, err := NewCatalog([]PageDescriptor{
		{Ordinal: 0, Identifier: "0_Home"},
		{Ordinal: 1, Identifier: "7_Interactive_Demo", Kind: KindDemo, DisplayTitle: "Interactive Demo!"},
	})
	require.NoError(t, err)

	home, ok := c.Lookup("0_Home")
	require.True(t, ok)
	assert.Equal(t, "Home", home.DisplayTitle)
	assert.Equal(t, KindStatic, home.Kind)

	demo, ok := c.Lookup("7_Interactive_Demo")
	require.True(t, ok)
	assert.Equal(t, "Interactive Demo!", demo.DisplayTitle)
	assert.Equal(t, 2, demo.Number())
}

func TestCatalogIsImmutable(t *testing.T) {
	c, err := NewCatalog([]PageDescriptor{{Ordinal: 0, Identifier: "0_Home"}})
	require.NoError(t, err)

	pages := c.Pages()
	pages[0].Identifier = "changed"

	assert.Equal(t, "0_Home", c.First().Identifier)
	_, ok := c.At(1)
	assert.False(t, ok)
	_, ok = c.At(-1)
	assert.False(t, ok)
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0_Home", "Home"},
		{"4_R_Implementation", "R Implementation"},
		{"5_Comparative_Analysis", "Comparative Analysis"},
		{"3_SAS_Implementation", "SAS Implementation"},
		{"interactive-demo", "Interactive Demo"},
		{"12_multiple_imputation", "Multiple Imputation"},
		{"42", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveTitle(tt.input))
		})
	}
}
