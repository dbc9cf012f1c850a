package compose

import (
	"fmt"

	"github.com/mrjoshuak/otio-topology/discreteinfo"
	"github.com/mrjoshuak/otio-topology/mapping"
	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/projerr"
)

// Clip is a leaf node referencing a span of media. It owns all three
// named spaces: presentation (trimmed, starting at 0), intrinsic (same
// shape as presentation, offset into the clip's own untrimmed timeline —
// here taken identical to presentation, since this engine has no
// transition/handle model), and media (the untrimmed media's own sample
// grid, per MediaInfo).
type Clip struct {
	base
	mediaBounds    ordinate.Interval
	mediaInfo      discreteinfo.Info
	mediaReference string
}

// NewClip constructs a Clip. mediaBounds is validated to be non-negative
// and non-inverted (Interval already enforces Start<=End; this adds the
// "lies within the media-space extent" half of the invariant in §3 by
// requiring Start >= 0).
func NewClip(name string, mediaBounds ordinate.Interval, mediaInfo discreteinfo.Info, mediaReference string) (*Clip, error) {
	if mediaBounds.Start < 0 {
		return nil, &projerr.SpaceError{Owner: name, Space: SpaceMedia, Err: fmt.Errorf("media_bounds start %v is negative", mediaBounds.Start)}
	}
	return &Clip{
		base:           newBase(name),
		mediaBounds:    mediaBounds,
		mediaInfo:      mediaInfo,
		mediaReference: mediaReference,
	}, nil
}

// PresentationBounds returns [0, mediaBounds.Duration()) — the clip's
// trimmed span, relocated to start at the origin of its own presentation
// space.
func (c *Clip) PresentationBounds() ordinate.Interval {
	return ordinate.Interval{Start: 0, End: c.mediaBounds.Duration()}
}

// MediaBounds returns the clip's span within the untrimmed media space.
func (c *Clip) MediaBounds() ordinate.Interval { return c.mediaBounds }

// MediaInfo returns the clip's media-space sampling grid.
func (c *Clip) MediaInfo() discreteinfo.Info { return c.mediaInfo }

// MediaReference returns the opaque identifier of the referenced media.
func (c *Clip) MediaReference() string { return c.mediaReference }

// Spaces returns all three spaces a Clip exposes.
func (c *Clip) Spaces() []string {
	return []string{SpacePresentation, SpaceIntrinsic, SpaceMedia}
}

// SpaceBounds returns the clip's extent in the named space: presentation
// and intrinsic share the trimmed [0, duration) extent; media is the
// clip's span within the untrimmed media timeline.
func (c *Clip) SpaceBounds(space string) (ordinate.Interval, error) {
	switch space {
	case SpacePresentation, SpaceIntrinsic:
		return c.PresentationBounds(), nil
	case SpaceMedia:
		return c.mediaBounds, nil
	default:
		return ordinate.Interval{}, &projerr.SpaceError{
			Owner: c.name,
			Space: space,
			Err:   fmt.Errorf("clip exposes no such space"),
		}
	}
}

// Edges returns presentation->intrinsic (identity, no transitions modeled)
// and intrinsic->media (affine offset by mediaBounds.Start).
func (c *Clip) Edges() []Edge {
	presentationToIntrinsic := mapping.NewAffine(c.PresentationBounds(), 1, 0)
	intrinsicToMedia := mapping.NewAffine(c.PresentationBounds(), 1, c.mediaBounds.Start)
	return []Edge{
		{FromSpace: SpacePresentation, ToNode: c, ToSpace: SpaceIntrinsic, Transform: presentationToIntrinsic},
		{FromSpace: SpaceIntrinsic, ToNode: c, ToSpace: SpaceMedia, Transform: intrinsicToMedia},
	}
}
