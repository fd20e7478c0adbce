package deck

import (
	"fmt"

	"mideck/domain/core"
)

// Catalog is the fixed, ordered sequence of pages. It is built once at startup
// and never mutated afterwards, so it is safe to share between requests.
type Catalog struct {
	pages []PageDescriptor
	index map[string]int
}

// NewCatalog validates the descriptors and freezes them into a catalog.
// Ordinals must be unique and contiguous from zero, in slice order; identifiers
// must be non-empty and unique. Missing titles are derived from identifiers and
// a missing kind defaults to static.
func NewCatalog(pages []PageDescriptor) (*Catalog, error) {
	if len(pages) == 0 {
		return nil, core.NewCatalogError("catalog has no pages")
	}

	c := &Catalog{
		pages: make([]PageDescriptor, len(pages)),
		index: make(map[string]int, len(pages)),
	}

	for i, p := range pages {
		if p.Identifier == "" {
			return nil, core.NewCatalogError(fmt.Sprintf("page at position %d has an empty identifier", i))
		}
		if p.Ordinal != i {
			return nil, core.NewCatalogError(fmt.Sprintf("page %q has ordinal %d, expected %d", p.Identifier, p.Ordinal, i))
		}
		if _, dup := c.index[p.Identifier]; dup {
			return nil, core.NewCatalogError(fmt.Sprintf("duplicate identifier %q", p.Identifier))
		}
		if p.Kind == "" {
			p.Kind = KindStatic
		}
		if !p.Kind.IsValid() {
			return nil, core.NewCatalogError(fmt.Sprintf("page %q has unknown kind %q", p.Identifier, p.Kind))
		}
		if p.DisplayTitle == "" {
			p.DisplayTitle = DeriveTitle(p.Identifier)
		}

		c.pages[i] = p
		c.index[p.Identifier] = i
	}

	return c, nil
}

// Len returns the number of pages.
func (c *Catalog) Len() int {
	return len(c.pages)
}

// Pages returns a copy of the ordered descriptors.
func (c *Catalog) Pages() []PageDescriptor {
	out := make([]PageDescriptor, len(c.pages))
	copy(out, c.pages)
	return out
}

// First returns the opening page.
func (c *Catalog) First() PageDescriptor {
	return c.pages[0]
}

// At returns the descriptor at the given ordinal.
func (c *Catalog) At(ordinal int) (PageDescriptor, bool) {
	if ordinal < 0 || ordinal >= len(c.pages) {
		return PageDescriptor{}, false
	}
	return c.pages[ordinal], true
}

// Lookup finds a descriptor by identifier.
func (c *Catalog) Lookup(identifier string) (PageDescriptor, bool) {
	i, ok := c.index[identifier]
	if !ok {
		return PageDescriptor{}, false
	}
	return c.pages[i], true
}
