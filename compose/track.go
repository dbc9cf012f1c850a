package compose

import (
	"github.com/mrjoshuak/otio-topology/mapping"
	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/projerr"
)

// Track lays its children end-to-end in presentation space: child i's
// presentation end equals child i+1's presentation start, mirroring
// gotio/opentimelineio.Track.RangeOfChildAtIndex's cumulative-duration
// placement (generalized here from float/rational durations to bare
// Ordinate spans, and computed once at construction rather than queried
// per index, since Topology nodes are immutable after construction).
type Track struct {
	base
	children []Node
	starts   []ordinate.Ordinate // presentation-space start of each child
}

// NewTrack constructs a Track, validating that every child's own
// presentation space starts at 0 (required for end-to-end placement to be
// well defined) before laying them out end to end.
func NewTrack(name string, children []Node) (*Track, error) {
	starts := make([]ordinate.Ordinate, len(children))
	cursor := ordinate.Ordinate(0)
	for i, c := range children {
		if c.PresentationBounds().Start != 0 {
			return nil, &projerr.SpaceError{
				Owner: name,
				Space: SpacePresentation,
				Err:   &projerr.IndexError{Index: i, Size: len(children)},
			}
		}
		starts[i] = cursor
		cursor += c.PresentationBounds().Duration()
	}
	cp := make([]Node, len(children))
	copy(cp, children)
	return &Track{base: newBase(name), children: cp, starts: starts}, nil
}

// PresentationBounds returns [0, sum of children's durations).
func (t *Track) PresentationBounds() ordinate.Interval {
	if len(t.children) == 0 {
		return ordinate.Interval{}
	}
	last := t.children[len(t.children)-1]
	return ordinate.Interval{Start: 0, End: t.starts[len(t.starts)-1] + last.PresentationBounds().Duration()}
}

// Spaces returns the Track's sole space.
func (t *Track) Spaces() []string { return []string{SpacePresentation} }

// SpaceBounds returns the Track's presentation bounds for SpacePresentation.
func (t *Track) SpaceBounds(space string) (ordinate.Interval, error) {
	return presentationOnlyBounds(t.name, space, t.PresentationBounds())
}

// RangeOfChildAtIndex returns the child's placement within the track's
// presentation space.
func (t *Track) RangeOfChildAtIndex(i int) (ordinate.Interval, error) {
	if i < 0 || i >= len(t.children) {
		return ordinate.Interval{}, &projerr.IndexError{Index: i, Size: len(t.children)}
	}
	return ordinate.Interval{Start: t.starts[i], End: t.starts[i] + t.children[i].PresentationBounds().Duration()}, nil
}

// Edges returns one presentation->child.presentation edge per child, each
// an affine shift by the child's placement start.
func (t *Track) Edges() []Edge {
	edges := make([]Edge, len(t.children))
	for i, c := range t.children {
		bounds, _ := t.RangeOfChildAtIndex(i)
		edges[i] = Edge{
			FromSpace: SpacePresentation,
			ToNode:    c,
			ToSpace:   SpacePresentation,
			Transform: mapping.NewAffine(bounds, 1, -t.starts[i]),
		}
	}
	return edges
}

// Children returns the track's children in order.
func (t *Track) Children() []Node {
	cp := make([]Node, len(t.children))
	copy(cp, t.children)
	return cp
}
