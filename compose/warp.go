package compose

import (
	"fmt"

	"github.com/mrjoshuak/otio-topology/mapping"
	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/projerr"
)

// Warp retimes a single child through an arbitrary Topology: its own
// presentation space is the transform's input domain, and it exposes its
// child's presentation space through that transform rather than through
// an affine placement, the way Track and Stack do.
type Warp struct {
	base
	child     Node
	transform mapping.Topology
}

// NewWarp constructs a Warp, validating the invariant that transform's
// output bounds equal the child's presentation bounds exactly.
func NewWarp(name string, child Node, transform mapping.Topology) (*Warp, error) {
	out := transform.OutputBounds()
	want := child.PresentationBounds()
	if out != want {
		return nil, &projerr.SpaceError{
			Owner: name,
			Space: SpacePresentation,
			Err:   fmt.Errorf("warp transform output bounds %v do not match child presentation bounds %v", out, want),
		}
	}
	return &Warp{base: newBase(name), child: child, transform: transform}, nil
}

// PresentationBounds returns the warp transform's input domain.
func (w *Warp) PresentationBounds() ordinate.Interval {
	return w.transform.InputBounds()
}

// Spaces returns the Warp's sole space.
func (w *Warp) Spaces() []string { return []string{SpacePresentation} }

// SpaceBounds returns the Warp's presentation bounds for SpacePresentation.
func (w *Warp) SpaceBounds(space string) (ordinate.Interval, error) {
	return presentationOnlyBounds(w.name, space, w.PresentationBounds())
}

// Child returns the warped child node.
func (w *Warp) Child() Node { return w.child }

// Transform returns the warp's presentation->child.presentation Topology.
func (w *Warp) Transform() mapping.Topology { return w.transform }

// Edges returns a single presentation->child.presentation edge per
// mapping segment of the warp's transform Topology (a Warp's transform
// may itself be a multi-segment Topology, e.g. after a join).
func (w *Warp) Edges() []Edge {
	edges := make([]Edge, len(w.transform.Mappings))
	for i, m := range w.transform.Mappings {
		edges[i] = Edge{
			FromSpace: SpacePresentation,
			ToNode:    w.child,
			ToSpace:   SpacePresentation,
			Transform: m,
		}
	}
	return edges
}
