package compose

import (
	"github.com/mrjoshuak/otio-topology/mapping"
	"github.com/mrjoshuak/otio-topology/ordinate"
)

// Stack holds children that overlap in presentation time, all starting at
// 0; the stack's own duration is the longest child's duration, mirroring
// gotio/opentimelineio.Stack.AvailableRange's "union of children" rule
// collapsed to the common case of all children anchored at the origin.
type Stack struct {
	base
	children []Node
}

// NewStack constructs a Stack from the given children.
func NewStack(name string, children []Node) *Stack {
	cp := make([]Node, len(children))
	copy(cp, children)
	return &Stack{base: newBase(name), children: cp}
}

// PresentationBounds returns [0, max(children durations)).
func (s *Stack) PresentationBounds() ordinate.Interval {
	var bounds ordinate.Interval
	for i, c := range s.children {
		cb := c.PresentationBounds()
		if i == 0 || cb.End > bounds.End {
			bounds = ordinate.Interval{Start: 0, End: cb.End}
		}
	}
	return bounds
}

// Spaces returns the Stack's sole space.
func (s *Stack) Spaces() []string { return []string{SpacePresentation} }

// SpaceBounds returns the Stack's presentation bounds for SpacePresentation.
func (s *Stack) SpaceBounds(space string) (ordinate.Interval, error) {
	return presentationOnlyBounds(s.name, space, s.PresentationBounds())
}

// Edges returns one identity presentation->child.presentation edge per
// child, each restricted to the overlap between the stack's bounds and
// that child's own bounds.
func (s *Stack) Edges() []Edge {
	stackBounds := s.PresentationBounds()
	edges := make([]Edge, len(s.children))
	for i, c := range s.children {
		overlap := stackBounds.Intersect(c.PresentationBounds())
		edges[i] = Edge{
			FromSpace: SpacePresentation,
			ToNode:    c,
			ToSpace:   SpacePresentation,
			Transform: mapping.NewAffine(overlap, 1, 0),
		}
	}
	return edges
}

// Children returns the stack's children in order.
func (s *Stack) Children() []Node {
	cp := make([]Node, len(s.children))
	copy(cp, s.children)
	return cp
}
