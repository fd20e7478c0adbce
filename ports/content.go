package ports

import (
	"context"

	"mideck/domain/deck"
)

// ContentSource renders the static body of a page. The payload is opaque to
// the navigation and simulation code; it is only placed into the page shell.
type ContentSource interface {
	Render(ctx context.Context, page deck.PageDescriptor) ([]byte, error)
}
