package content

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mideck/domain/core"
	"mideck/domain/deck"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"pages/home.md": {Data: []byte("# Welcome\n\nSee [the code](https://example.org).\n")},
		"pages/r.md":    {Data: []byte("```r\nfit <- lm(y ~ x)\n```\n")},
	}
}

func TestRenderMarkdown(t *testing.T) {
	s := NewStore(testFS(), "pages")
	ctx := context.Background()

	body, err := s.Render(ctx, deck.PageDescriptor{Identifier: "0_Home", Source: "home.md"})
	require.NoError(t, err)
	assert.Contains(t, string(body), `<h1 id="welcome">Welcome</h1>`)
	assert.Contains(t, string(body), `target="_blank"`)

	code, err := s.Render(ctx, deck.PageDescriptor{Identifier: "4_R", Source: "r.md"})
	require.NoError(t, err)
	assert.Contains(t, string(code), `class="language-r"`)
	assert.Contains(t, string(code), "fit &lt;- lm(y ~ x)")
}

func TestRenderMissingContent(t *testing.T) {
	s := NewStore(testFS(), "pages")

	_, err := s.Render(context.Background(), deck.PageDescriptor{Identifier: "9_Gone", Source: "gone.md"})
	require.Error(t, err)
	assert.True(t, core.IsNotFoundError(err))
}

func TestRenderUsesCache(t *testing.T) {
	fsys := testFS()
	s := NewStore(fsys, "pages")
	page := deck.PageDescriptor{Identifier: "0_Home", Source: "home.md"}

	first, err := s.Render(context.Background(), page)
	require.NoError(t, err)

	delete(fsys, "pages/home.md")
	second, err := s.Render(context.Background(), page)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPreload(t *testing.T) {
	c, err := deck.NewCatalog([]deck.PageDescriptor{
		{Ordinal: 0, Identifier: "0_Home", Source: "home.md"},
		{Ordinal: 1, Identifier: "1_Missing", Source: "missing.md"},
	})
	require.NoError(t, err)

	err = NewStore(testFS(), "pages").Preload(context.Background(), c)
	assert.True(t, core.IsNotFoundError(err))
}
