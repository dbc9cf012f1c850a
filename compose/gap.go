package compose

import "github.com/mrjoshuak/otio-topology/ordinate"

// Gap is a leaf node with a duration and no media: it occupies time in a
// Track without projecting anywhere beyond its own presentation space.
type Gap struct {
	base
	duration ordinate.Ordinate
}

// NewGap constructs a Gap of the given duration.
func NewGap(name string, duration ordinate.Ordinate) *Gap {
	return &Gap{base: newBase(name), duration: duration}
}

// PresentationBounds returns [0, duration).
func (g *Gap) PresentationBounds() ordinate.Interval {
	return ordinate.Interval{Start: 0, End: g.duration}
}

// Spaces returns the Gap's sole space.
func (g *Gap) Spaces() []string { return []string{SpacePresentation} }

// SpaceBounds returns the Gap's presentation bounds for SpacePresentation.
func (g *Gap) SpaceBounds(space string) (ordinate.Interval, error) {
	return presentationOnlyBounds(g.name, space, g.PresentationBounds())
}

// Edges returns no edges: a Gap has nothing beyond presentation.
func (g *Gap) Edges() []Edge { return nil }
