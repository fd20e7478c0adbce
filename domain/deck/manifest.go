package deck

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"mideck/domain/core"
)

// Manifest is the static declaration of the deck. Page order in the file is the
// catalog order; there is no discovery from directory listings.
type Manifest struct {
	Title    string         `yaml:"title" json:"title"`
	Subtitle string         `yaml:"subtitle" json:"subtitle"`
	Author   string         `yaml:"author" json:"author"`
	Contact  string         `yaml:"contact" json:"contact"`
	Pages    []ManifestPage `yaml:"pages" json:"pages"`
}

// ManifestPage is one entry of the pages list.
type ManifestPage struct {
	ID      string   `yaml:"id" json:"id"`
	Title   string   `yaml:"title,omitempty" json:"title,omitempty"`
	Kind    PageKind `yaml:"kind,omitempty" json:"kind,omitempty"`
	Content string   `yaml:"content,omitempty" json:"content,omitempty"`
}

// ParseManifest decodes a YAML manifest. Unknown fields are rejected so that a
// typo in the deck file fails at startup.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: decode manifest: %v", core.ErrInvalidCatalog, err)
	}
	return &m, nil
}

// Catalog converts the manifest pages into a validated catalog.
func (m *Manifest) Catalog() (*Catalog, error) {
	pages := make([]PageDescriptor, len(m.Pages))
	for i, p := range m.Pages {
		pages[i] = PageDescriptor{
			Ordinal:      i,
			Identifier:   p.ID,
			DisplayTitle: p.Title,
			Kind:         p.Kind,
			Source:       p.Content,
		}
		if pages[i].Source == "" {
			pages[i].Source = p.ID + ".md"
		}
	}
	return NewCatalog(pages)
}

// LoadCatalog parses a manifest and builds its catalog in one step.
func LoadCatalog(data []byte) (*Manifest, *Catalog, error) {
	m, err := ParseManifest(data)
	if err != nil {
		return nil, nil, err
	}
	c, err := m.Catalog()
	if err != nil {
		return nil, nil, err
	}
	return m, c, nil
}
