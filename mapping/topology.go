package mapping

import (
	"sort"

	"github.com/mrjoshuak/otio-topology/curve"
	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/projerr"
)

// Topology is an ordered sequence of Mappings whose input intervals tile
// a single contiguous parent interval without gap or overlap. An empty
// Topology (no mappings) is permitted.
type Topology struct {
	Mappings []Mapping
}

// InputBounds returns the union of the topology's mappings' input
// intervals.
func (t Topology) InputBounds() ordinate.Interval {
	if len(t.Mappings) == 0 {
		return ordinate.Interval{}
	}
	bounds := t.Mappings[0].Bounds
	for _, m := range t.Mappings[1:] {
		bounds = bounds.Union(m.Bounds)
	}
	return bounds
}

// OutputBounds returns the union of the topology's mappings' output
// ranges.
func (t Topology) OutputBounds() ordinate.Interval {
	if len(t.Mappings) == 0 {
		return ordinate.Interval{}
	}
	bounds := t.Mappings[0].OutputRange()
	for _, m := range t.Mappings[1:] {
		bounds = bounds.Union(m.OutputRange())
	}
	return bounds
}

// mappingAt returns the index of the mapping whose half-open input range
// contains x, selecting the one whose Bounds.Contains(x) holds (the upper
// boundary of one mapping belongs to the next).
func (t Topology) mappingAt(x ordinate.Ordinate) (int, bool) {
	for i, m := range t.Mappings {
		if m.Bounds.Contains(x) {
			return i, true
		}
	}
	return 0, false
}

// ProjectOrdinate returns f(t) for the mapping whose input interval
// contains t, or ErrOutOfBounds if none does.
func (top Topology) ProjectOrdinate(t ordinate.Ordinate) (ordinate.Ordinate, error) {
	i, ok := top.mappingAt(t)
	if !ok {
		return 0, projerr.ErrOutOfBounds
	}
	return top.Mappings[i].OutputAt(t)
}

// ProjectOrdinateClosed behaves like ProjectOrdinate, but additionally
// accepts t exactly at the topology's own upper input bound — the one
// point ProjectOrdinate legitimately rejects by half-open design but
// which range queries need as the supremum of the image over
// [start, end). There is no ambiguity at the outer edge (unlike an
// interior breakpoint, which always belongs to the next mapping), so this
// evaluates the final mapping's formula at its own Bounds.End directly.
func (top Topology) ProjectOrdinateClosed(t ordinate.Ordinate) (ordinate.Ordinate, error) {
	y, err := top.ProjectOrdinate(t)
	if err == nil {
		return y, nil
	}
	if len(top.Mappings) == 0 || t != top.InputBounds().End {
		return 0, err
	}
	return lastOutputAtClosedEnd(top.Mappings[len(top.Mappings)-1])
}

func lastOutputAtClosedEnd(m Mapping) (ordinate.Ordinate, error) {
	switch m.Kind {
	case Affine:
		return m.Scale*m.Bounds.End + m.Offset, nil
	case LinearKind:
		if len(m.Lin.Knots) == 0 {
			return 0, projerr.ErrEmptyMapping
		}
		return m.Lin.Knots[len(m.Lin.Knots)-1].Out, nil
	case BezierKind:
		if len(m.Bez.Segments) == 0 {
			return 0, projerr.ErrEmptyMapping
		}
		return m.Bez.Segments[len(m.Bez.Segments)-1].P3.Out, nil
	default:
		return 0, projerr.ErrEmptyMapping
	}
}

// breakpoints returns the sorted list of input-space cut points: every
// mapping's Bounds.Start plus the final mapping's Bounds.End.
func (t Topology) breakpoints() []ordinate.Ordinate {
	if len(t.Mappings) == 0 {
		return nil
	}
	pts := make([]ordinate.Ordinate, 0, len(t.Mappings)+1)
	for _, m := range t.Mappings {
		pts = append(pts, m.Bounds.Start)
	}
	pts = append(pts, t.Mappings[len(t.Mappings)-1].Bounds.End)
	return pts
}

// Linearize returns a single linear Topology whose knots sample each
// underlying mapping at its breakpoints plus one knot per critical point
// (critical points are already present in bezier mappings once split via
// curve.Bezier.SplitOnCriticalPoints — callers compose from already-split
// curves, per §4.4/§4.5).
func (t Topology) Linearize(samplesPerSegment int) Topology {
	var knots []curve.ControlPoint
	for _, m := range t.Mappings {
		var lin curve.Linear
		switch m.Kind {
		case Affine:
			lin = curve.Linear{Knots: []curve.ControlPoint{
				{In: m.Bounds.Start, Out: m.Scale*m.Bounds.Start + m.Offset},
				{In: m.Bounds.End, Out: m.Scale*m.Bounds.End + m.Offset},
			}}
		case LinearKind:
			lin = m.Lin
		case BezierKind:
			lin = m.Bez.SplitOnCriticalPoints().Linearize(samplesPerSegment)
		case Empty:
			continue
		}
		for i, k := range lin.Knots {
			if len(knots) > 0 && i == 0 && knots[len(knots)-1].In == k.In {
				continue
			}
			knots = append(knots, k)
		}
	}
	if len(knots) == 0 {
		return Topology{}
	}
	l, err := curve.NewLinear(knots)
	if err != nil {
		// A non-monotonic knot sequence here means an upstream mapping
		// violated the input-monotonicity invariant; surface it as an
		// empty result topology rather than panicking the caller.
		return Topology{Mappings: []Mapping{NewEmpty(ordinate.Interval{Start: knots[0].In, End: knots[len(knots)-1].In})}}
	}
	return Topology{Mappings: []Mapping{NewLinear(l)}}
}

func sortedUnique(xs []ordinate.Ordinate) []ordinate.Ordinate {
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	out := xs[:0:0]
	for _, x := range xs {
		if len(out) > 0 && out[len(out)-1] == x {
			continue
		}
		out = append(out, x)
	}
	return out
}
