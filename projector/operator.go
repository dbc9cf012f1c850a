// Package projector implements the Projection Operator of §4.8: built by
// folding a topomap.Path over mapping.Join, exposing the CC/CD/DD query
// methods against the resulting Topology, generalizing
// gotio/opentimelineio/item.go's TransformedTime/TransformedTimeRange
// ancestor-walking queries to an arbitrary (source, destination) space
// pair reached via topomap.
package projector

import (
	"github.com/mrjoshuak/otio-topology/compose"
	"github.com/mrjoshuak/otio-topology/discreteinfo"
	"github.com/mrjoshuak/otio-topology/mapping"
	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/projerr"
	"github.com/mrjoshuak/otio-topology/topomap"
)

// Operator is an immutable, built projection between a source and
// destination space: source, destination, and the composed Topology
// between them (§4.8). It owns every control-point array it holds — the
// fold through mapping.Join already constructs entirely new Mapping
// values at each step, so Operator never aliases the composition tree or
// the topomap.Map it was built from, satisfying §4.8's "owns a deep copy"
// ownership rule the same way curve.Bezier.splitAt and
// curve.Linear.SplitAtEachOutputOrdinate avoid aliasing their source
// curves (see DESIGN.md Open Question 1).
type Operator struct {
	SourceNode  compose.Node
	SourceSpace string
	DestNode    compose.Node
	DestSpace   string
	Topo        mapping.Topology
}

// Build constructs the Operator projecting (srcNode, srcSpace) to
// (dstNode, dstSpace) through m: resolving the path, then folding it by
// successive mapping.Join starting from the identity over the source's
// own bounds, per §4.8 step 1-3.
func Build(m *topomap.Map, srcNode compose.Node, srcSpace string, dstNode compose.Node, dstSpace string) (*Operator, error) {
	srcBounds, err := srcNode.SpaceBounds(srcSpace)
	if err != nil {
		return nil, err
	}
	path, err := m.Path(srcNode, srcSpace, dstNode, dstSpace)
	if err != nil {
		return nil, err
	}
	topo := mapping.Topology{Mappings: []mapping.Mapping{mapping.NewAffine(srcBounds, 1, 0)}}
	for _, seg := range path {
		topo, err = mapping.Join(topo, seg)
		if err != nil {
			return nil, err
		}
	}
	return &Operator{
		SourceNode:  srcNode,
		SourceSpace: srcSpace,
		DestNode:    dstNode,
		DestSpace:   dstSpace,
		Topo:        topo,
	}, nil
}

// ProjectInstantaneousCC projects a single continuous ordinate:
// continuous -> continuous.
func (op *Operator) ProjectInstantaneousCC(t ordinate.Ordinate) (ordinate.Ordinate, error) {
	return op.Topo.ProjectOrdinate(t)
}

// ProjectInstantaneousCD projects a single continuous ordinate to an
// integer destination sample index: applies CC, then destInfo.IndexForOrd.
func (op *Operator) ProjectInstantaneousCD(t ordinate.Ordinate, destInfo discreteinfo.Info) (int64, error) {
	y, err := op.ProjectInstantaneousCC(t)
	if err != nil {
		return 0, err
	}
	return destInfo.IndexForOrd(y), nil
}

// ProjectIndexDD expands source index i to its own continuous sample
// interval via srcInfo, projects that interval, and re-discretizes
// against destInfo, returning every destination index whose continuous
// interval intersects the projected one, in ascending order.
func (op *Operator) ProjectIndexDD(i int64, srcInfo, destInfo discreteinfo.Info) ([]int64, error) {
	iv := srcInfo.OrdIntervalForIndex(i)
	dstIv, err := op.ProjectRangeCC(iv)
	if err != nil {
		return nil, err
	}
	return indicesIntersecting(dstIv, destInfo), nil
}

// ProjectRangeCD projects a continuous source interval and re-discretizes
// it against destInfo, returning every intersecting destination index in
// ascending order.
func (op *Operator) ProjectRangeCD(iv ordinate.Interval, destInfo discreteinfo.Info) ([]int64, error) {
	dstIv, err := op.ProjectRangeCC(iv)
	if err != nil {
		return nil, err
	}
	return indicesIntersecting(dstIv, destInfo), nil
}

// ProjectRangeCC projects a continuous source interval to a single
// contiguous destination Interval: the convex hull of the image. Extrema
// of a monotonic-per-segment Topology occur only at segment breakpoints
// (the same property mapping.Mapping.OutputRange relies on), so this
// evaluates iv's endpoints plus every breakpoint strictly inside iv and
// takes the min/max — exact for affine/linear mappings, a close
// approximation for bezier ones already split on their own critical
// points.
func (op *Operator) ProjectRangeCC(iv ordinate.Interval) (ordinate.Interval, error) {
	bounds := op.Topo.InputBounds()
	lo, hi := iv.Start, iv.End
	if lo < bounds.Start {
		lo = bounds.Start
	}
	if hi > bounds.End {
		hi = bounds.End
	}
	if lo >= hi {
		return ordinate.Interval{}, projerr.ErrOutOfBounds
	}

	xs := []ordinate.Ordinate{lo}
	for _, m := range op.Topo.Mappings {
		if m.Bounds.Start > lo && m.Bounds.Start < hi {
			xs = append(xs, m.Bounds.Start)
		}
	}
	xs = append(xs, hi)

	var rangeLo, rangeHi ordinate.Ordinate
	found := false
	for _, x := range xs {
		y, err := op.Topo.ProjectOrdinateClosed(x)
		if err != nil {
			continue
		}
		if !found {
			rangeLo, rangeHi = y, y
			found = true
			continue
		}
		if y < rangeLo {
			rangeLo = y
		}
		if y > rangeHi {
			rangeHi = y
		}
	}
	if !found {
		return ordinate.Interval{}, projerr.ErrOutOfBounds
	}
	return ordinate.Interval{Start: rangeLo, End: rangeHi}, nil
}

// indicesIntersecting returns every index whose sample interval
// intersects iv, in ascending order. A sample that merely touches iv.End
// (its interval starts exactly there) still counts as intersecting —
// per §8 scenario 1's worked example, which expects the destination
// index whose interval begins exactly at a projected range's endpoint to
// be included in the result, unlike ordinary half-open point containment.
func indicesIntersecting(iv ordinate.Interval, info discreteinfo.Info) []int64 {
	if iv.Start >= iv.End {
		return nil
	}
	start := info.IndexForOrd(iv.Start)
	last := info.IndexForOrd(iv.End)
	if last < start {
		return nil
	}
	out := make([]int64, 0, last-start+1)
	for idx := start; idx <= last; idx++ {
		out = append(out, idx)
	}
	return out
}
