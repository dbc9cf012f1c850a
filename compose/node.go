// Package compose implements the composition tree: Timeline, Stack, Track,
// Clip, Gap, and Warp nodes, laid out the way gotio/opentimelineio lays out
// its Composable/Item/Composition hierarchy, but generalized from a media
// editing data model to a pure projection-topology tree whose nodes exist
// to expose named coordinate spaces and the Mappings between them.
package compose

import (
	"fmt"
	"sync/atomic"

	"github.com/mrjoshuak/otio-topology/mapping"
	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/projerr"
)

// Space names a node exposes a subset of, per §4.6.
const (
	SpacePresentation = "presentation"
	SpaceIntrinsic    = "intrinsic"
	SpaceMedia        = "media"
)

// Node is the common interface of every composition-tree element. It
// mirrors gotio/opentimelineio.Composable's role (the thing a parent
// composition holds a child as) but scoped to this engine's concerns:
// identity, presentation-space bounds, the set of named spaces a node
// exposes, and the edges leaving those spaces for the topological map
// builder's tree walk.
type Node interface {
	// Name returns the node's display name (for diagnostics only).
	Name() string

	// ID returns the node's stable identity, assigned at construction.
	ID() string

	// PresentationBounds returns the node's extent in its own
	// presentation space.
	PresentationBounds() ordinate.Interval

	// Spaces returns the named spaces this node exposes.
	Spaces() []string

	// SpaceBounds returns the node's extent in the named space, or a
	// *projerr.SpaceError if the node doesn't expose that space.
	SpaceBounds(space string) (ordinate.Interval, error)

	// Edges returns every directed edge leaving one of this node's
	// spaces, whether to one of its own other spaces (e.g. a Clip's
	// intrinsic->media trim) or to a child node's presentation space
	// (e.g. a Track's presentation->child.presentation placement).
	Edges() []Edge
}

// Edge is one directed, Mapping-labeled edge in the composition tree, as
// consumed by topomap's graph builder. FromSpace is always a space on the
// node whose Edges() returned this value; ToNode/ToSpace name the edge's
// destination, which may be the same node (an internal space-to-space
// trim) or a child.
type Edge struct {
	FromSpace string
	ToNode    Node
	ToSpace   string
	Transform mapping.Mapping
}

// base holds the fields common to every node, analogous to gotio's
// ComposableBase: a display name, a stable identity (used as the
// topological map's vertex key), and the ambient AnyDictionary/Color
// metadata every node in this ecosystem carries whether or not projection
// math ever reads it.
type base struct {
	name     string
	id       string
	metadata AnyDictionary
	color    *Color
}

var nodeIDCounter uint64

// newBase constructs a base with a freshly assigned, stable ID.
func newBase(name string) base {
	n := atomic.AddUint64(&nodeIDCounter, 1)
	return base{name: name, id: fmt.Sprintf("node-%d", n)}
}

// Name returns the node's display name.
func (b base) Name() string { return b.name }

// ID returns the node's stable identity, assigned at construction.
func (b base) ID() string { return b.id }

// Metadata returns the node's freeform metadata bag, or nil if unset.
func (b base) Metadata() AnyDictionary { return b.metadata }

// SetMetadata replaces the node's metadata bag.
func (b *base) SetMetadata(m AnyDictionary) { b.metadata = m }

// Color returns the node's presentation color tag, or nil if unset.
func (b base) Color() *Color { return b.color }

// SetColor replaces the node's presentation color tag.
func (b *base) SetColor(c *Color) { b.color = c }

// presentationOnlyBounds is the SpaceBounds implementation shared by every
// node kind that exposes only the presentation space (Gap, Track, Stack,
// Warp, Timeline).
func presentationOnlyBounds(owner, space string, presentation ordinate.Interval) (ordinate.Interval, error) {
	if space != SpacePresentation {
		return ordinate.Interval{}, &projerr.SpaceError{
			Owner: owner,
			Space: space,
			Err:   fmt.Errorf("node exposes no such space"),
		}
	}
	return presentation, nil
}
