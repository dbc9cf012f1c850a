package compose

import (
	"github.com/mrjoshuak/otio-topology/discreteinfo"
	"github.com/mrjoshuak/otio-topology/mapping"
	"github.com/mrjoshuak/otio-topology/ordinate"
)

// Timeline is the root of a composition tree: a named top-level Stack
// plus the discrete sampling grid of its own presentation space.
type Timeline struct {
	base
	tracks           *Stack
	presentationGrid discreteinfo.Info
}

// NewTimeline constructs a Timeline rooted at tracks.
func NewTimeline(name string, tracks *Stack, presentationGrid discreteinfo.Info) *Timeline {
	return &Timeline{base: newBase(name), tracks: tracks, presentationGrid: presentationGrid}
}

// Tracks returns the timeline's root Stack.
func (tl *Timeline) Tracks() *Stack { return tl.tracks }

// PresentationInfo returns the timeline's presentation-space sampling
// grid.
func (tl *Timeline) PresentationInfo() discreteinfo.Info { return tl.presentationGrid }

// PresentationBounds delegates to the root Stack.
func (tl *Timeline) PresentationBounds() ordinate.Interval {
	return tl.tracks.PresentationBounds()
}

// Spaces returns the Timeline's sole space.
func (tl *Timeline) Spaces() []string { return []string{SpacePresentation} }

// SpaceBounds returns the Timeline's presentation bounds for
// SpacePresentation.
func (tl *Timeline) SpaceBounds(space string) (ordinate.Interval, error) {
	return presentationOnlyBounds(tl.name, space, tl.PresentationBounds())
}

// Edges returns a single identity edge into the root Stack's presentation
// space.
func (tl *Timeline) Edges() []Edge {
	return []Edge{{
		FromSpace: SpacePresentation,
		ToNode:    tl.tracks,
		ToSpace:   SpacePresentation,
		Transform: mapping.NewAffine(tl.PresentationBounds(), 1, 0),
	}}
}
