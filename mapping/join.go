package mapping

import (
	"github.com/mrjoshuak/otio-topology/curve"
	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/projerr"
)

// joinLinearizeSamples is the per-segment sample count used when a bezier
// mapping must be resolved to a linear representation before composing
// (the "bezier then linearized" row of the join table).
const joinLinearizeSamples = 16

// Join composes a2b and b2c into a2c: for each mapping m in a2b, the
// image of m's input interval lies (wholly or partly) in b2c's input
// domain; m's input interval is partitioned by the preimages of b2c's cut
// points and, on each resulting sub-interval, m is composed with the
// corresponding b2c mapping per the join table in §4.5. Where the image
// of a2b exceeds b2c's input bounds, the out-of-range portion becomes an
// empty mapping, so the result still tiles a2b's input domain exactly.
func Join(a2b, b2c Topology) (Topology, error) {
	bPoints := b2c.breakpoints()
	var result []Mapping

	for _, m := range a2b.Mappings {
		if m.Bounds.IsEmpty() {
			continue
		}
		if m.Kind == Empty {
			result = append(result, NewEmpty(m.Bounds))
			continue
		}

		resolved := m
		if m.Kind == BezierKind {
			split := m.Bez.SplitOnCriticalPoints()
			resolved = NewLinear(split.Linearize(joinLinearizeSamples))
			// Linearize can lose the exact original bounds to float
			// sampling error; pin them back to m's authoritative bounds.
			resolved.Bounds = m.Bounds
		}

		cuts := []ordinate.Ordinate{resolved.Bounds.Start, resolved.Bounds.End}
		for _, bp := range bPoints {
			if x, ok := resolved.InverseAt(bp); ok && x > resolved.Bounds.Start && x < resolved.Bounds.End {
				cuts = append(cuts, x)
			}
		}
		cuts = sortedUnique(cuts)

		for i := 0; i+1 < len(cuts); i++ {
			sub := ordinate.Interval{Start: cuts[i], End: cuts[i+1]}
			if sub.IsEmpty() {
				continue
			}
			composed, err := joinSubInterval(resolved, sub, b2c)
			if err != nil {
				return Topology{}, err
			}
			result = append(result, composed)
		}
	}

	return Topology{Mappings: result}, nil
}

// joinSubInterval composes resolved (an affine or linear mapping) over
// sub — a slice of resolved's domain known to map entirely into a single
// b2c mapping or entirely out of b2c's bounds — with the b2c mapping
// governing that sub-interval's image.
func joinSubInterval(resolved Mapping, sub ordinate.Interval, b2c Topology) (Mapping, error) {
	mid := sub.Start + (sub.End-sub.Start)/2
	y, err := resolved.OutputAt(mid)
	if err != nil {
		return NewEmpty(sub), nil
	}

	idx, ok := b2c.mappingAt(y)
	if !ok {
		return NewEmpty(sub), nil
	}
	n := b2c.Mappings[idx]

	switch resolved.Kind {
	case Affine:
		return composeAffine(resolved, sub, n)
	case LinearKind:
		return composeLinear(resolved, sub, n)
	default:
		return Mapping{}, &projerr.SegmentError{Curve: "join", Err: projerr.ErrNonMonotonicInput}
	}
}

// composeAffine handles the affine|affine, affine|linear, and
// affine|bezier rows of the join table.
func composeAffine(m Mapping, sub ordinate.Interval, n Mapping) (Mapping, error) {
	switch n.Kind {
	case Empty:
		return NewEmpty(sub), nil
	case Affine:
		scale := n.Scale * m.Scale
		offset := n.Scale*m.Offset + n.Offset
		return NewAffine(sub, scale, offset), nil
	case LinearKind:
		inv := func(y ordinate.Ordinate) ordinate.Ordinate { return (y - m.Offset) / m.Scale }
		lin := n.Lin.MapIn(inv).Slice(sub)
		return NewLinear(lin), nil
	case BezierKind:
		inv := func(y ordinate.Ordinate) ordinate.Ordinate { return (y - m.Offset) / m.Scale }
		bez := n.Bez.MapIn(inv)
		// Restrict to sub so the joined Topology tiles a2b's domain.
		composed := NewBezier(bez)
		composed.Bounds = sub
		return composed, nil
	default:
		return NewEmpty(sub), nil
	}
}

// composeLinear handles the linear|affine, linear|linear, and
// linear|bezier rows of the join table.
func composeLinear(m Mapping, sub ordinate.Interval, n Mapping) (Mapping, error) {
	sliced := m.Lin.Slice(sub)
	switch n.Kind {
	case Empty:
		return NewEmpty(sub), nil
	case Affine:
		out := sliced.MapOut(func(y ordinate.Ordinate) ordinate.Ordinate { return n.Scale*y + n.Offset })
		return NewLinear(out), nil
	case LinearKind:
		// sliced only carries m's own knots; n's internal knots (its own
		// slope changes, in the shared b-space coordinate) fall between
		// them and must be inserted before evaluating n pointwise, or a
		// straight chord gets drawn across one of n's breakpoints.
		ys := make([]ordinate.Ordinate, len(n.Lin.Knots))
		for i, k := range n.Lin.Knots {
			ys[i] = k.In
		}
		refined, err := curve.NewLinear(sliced.SplitAtEachOutputOrdinate(ys))
		if err != nil {
			return Mapping{}, &projerr.SegmentError{Curve: "join", Err: err}
		}
		out := refined.MapOut(func(y ordinate.Ordinate) ordinate.Ordinate { return evalLinearClosed(n.Lin, y) })
		return NewLinear(out), nil
	case BezierKind:
		out := sliced.MapOut(func(y ordinate.Ordinate) ordinate.Ordinate { return evalBezierClosed(n.Bez, y) })
		return NewLinear(out), nil
	default:
		return NewEmpty(sub), nil
	}
}

// evalLinearClosed evaluates lin at y, treating lin's domain as closed at
// its upper boundary. A boundary knot produced by Slice to stitch two
// adjoining sub-intervals together legitimately lands exactly on the next
// governing mapping's upper bound, where half-open OutputAt would reject
// it; falling back to the nearest endpoint's Out (rather than returning y
// itself, which is in the wrong coordinate space entirely) keeps
// continuity across the stitch.
func evalLinearClosed(lin curve.Linear, y ordinate.Ordinate) ordinate.Ordinate {
	if z, err := lin.OutputAt(y); err == nil {
		return z
	}
	if len(lin.Knots) == 0 {
		return y
	}
	bounds := lin.InputBounds()
	if y <= bounds.Start {
		return lin.Knots[0].Out
	}
	return lin.Knots[len(lin.Knots)-1].Out
}

// evalBezierClosed is evalLinearClosed's bezier-mapping analogue.
func evalBezierClosed(bez curve.Bezier, y ordinate.Ordinate) ordinate.Ordinate {
	if z, err := bez.OutputAt(y); err == nil {
		return z
	}
	if len(bez.Segments) == 0 {
		return y
	}
	bounds := bez.InputBounds()
	if y <= bounds.Start {
		return bez.Segments[0].P0.Out
	}
	last := bez.Segments[len(bez.Segments)-1]
	return last.P3.Out
}

// Identity returns the affine identity mapping (scale=1, offset=0) over
// bounds — joining it with any Topology X on either side reproduces X up
// to representation, per §8 scenario 6.
func Identity(bounds ordinate.Interval) Mapping {
	return NewAffine(bounds, 1, 0)
}
