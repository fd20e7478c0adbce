package deck

import (
	"fmt"

	"mideck/domain/core"
)

// Navigation is the adjacency of one page within the catalog.
type Navigation struct {
	Current  PageDescriptor  `json:"current"`
	Previous *PageDescriptor `json:"previous"`
	Next     *PageDescriptor `json:"next"`
	Total    int             `json:"total"`
}

// Resolve computes the previous and next pages for the given identifier.
// An identifier outside the catalog yields an error wrapping core.ErrPageNotFound.
func Resolve(c *Catalog, identifier string) (Navigation, error) {
	current, ok := c.Lookup(identifier)
	if !ok {
		return Navigation{}, core.NewPageNotFoundError(identifier)
	}

	nav := Navigation{Current: current, Total: c.Len()}
	if prev, ok := c.At(current.Ordinal - 1); ok {
		nav.Previous = &prev
	}
	if next, ok := c.At(current.Ordinal + 1); ok {
		nav.Next = &next
	}
	return nav, nil
}

// Position reads like "3 / 8". Empty for a zero Navigation.
func (n Navigation) Position() string {
	if n.Total == 0 {
		return ""
	}
	return fmt.Sprintf("%d / %d", n.Current.Number(), n.Total)
}

// Placement says where on the page a set of controls is drawn.
type Placement string

const (
	PlacementUpper Placement = "upper"
	PlacementLower Placement = "lower"
)

// Control is one "go back" or "go forward" affordance.
type Control struct {
	Label   string `json:"label"`
	Target  string `json:"target,omitempty"`
	Title   string `json:"title,omitempty"`
	Enabled bool   `json:"enabled"`
}

// Controls is the pair of affordances drawn at one placement.
type Controls struct {
	Placement Placement `json:"placement"`
	Back      Control   `json:"back"`
	Forward   Control   `json:"forward"`
	Position  string    `json:"position,omitempty"`
}

// Controls builds the affordances for a placement. It reads only n, so calling
// it for the upper and the lower bar gives the same targets.
func (n Navigation) Controls(placement Placement) Controls {
	ctl := Controls{
		Placement: placement,
		Back:      Control{Label: "Previous"},
		Forward:   Control{Label: "Next"},
		Position:  n.Position(),
	}
	if n.Previous != nil {
		ctl.Back.Target = n.Previous.Identifier
		ctl.Back.Title = n.Previous.DisplayTitle
		ctl.Back.Enabled = true
	}
	if n.Next != nil {
		ctl.Forward.Target = n.Next.Identifier
		ctl.Forward.Title = n.Next.DisplayTitle
		ctl.Forward.Enabled = true
	}
	return ctl
}
