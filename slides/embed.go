// Package slides embeds the deck manifest and the markdown page bodies.
package slides

import "embed"

// ManifestFile is the manifest path inside FS.
const ManifestFile = "deck.yaml"

// PagesDir holds the page markdown inside FS.
const PagesDir = "pages"

//go:embed deck.yaml pages/*.md
var FS embed.FS
