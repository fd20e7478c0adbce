// Package content renders the markdown bodies of deck pages.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"mideck/domain/core"
	"mideck/domain/deck"
	"mideck/ports"
)

const extensions = parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock

// Store reads page markdown from a filesystem and renders it to HTML.
// Rendered pages are cached; the source files never change at runtime.
type Store struct {
	fsys fs.FS
	root string

	mu    sync.RWMutex
	cache map[string][]byte
}

var _ ports.ContentSource = (*Store)(nil)

// NewStore reads markdown files from root inside fsys.
func NewStore(fsys fs.FS, root string) *Store {
	return &Store{
		fsys:  fsys,
		root:  root,
		cache: make(map[string][]byte),
	}
}

// Render returns the HTML body for a page.
func (s *Store) Render(ctx context.Context, page deck.PageDescriptor) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	body, ok := s.cache[page.Source]
	s.mu.RUnlock()
	if ok {
		return body, nil
	}

	raw, err := fs.ReadFile(s.fsys, path.Join(s.root, page.Source))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: content %q for page %q", core.ErrNotFound, page.Source, page.Identifier)
		}
		return nil, fmt.Errorf("read content %q: %w", page.Source, err)
	}

	body = ToHTML(raw)

	s.mu.Lock()
	s.cache[page.Source] = body
	s.mu.Unlock()
	return body, nil
}

// Preload renders every page of the catalog so a missing file fails at startup
// rather than on first view.
func (s *Store) Preload(ctx context.Context, c *deck.Catalog) error {
	for _, p := range c.Pages() {
		if _, err := s.Render(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// ToHTML converts markdown to HTML. Links open in a new tab so the deck keeps
// its place.
func ToHTML(md []byte) []byte {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	})
	return markdown.ToHTML(md, p, renderer)
}
