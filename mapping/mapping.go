// Package mapping implements the atomic transform type (Mapping) and its
// ordered composition into a Topology: join, project, and linearize, per
// the tagged-union join matrix over {empty, affine, linear, bezier}.
package mapping

import (
	"sort"

	"github.com/mrjoshuak/otio-topology/curve"
	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/projerr"
)

// Kind tags a Mapping's variant.
type Kind int

const (
	// Empty maps nothing; projecting through it always fails.
	Empty Kind = iota
	// Affine is y = Scale*x + Offset.
	Affine
	// LinearKind wraps a piecewise-linear curve.
	LinearKind
	// BezierKind wraps a piecewise cubic Bezier curve.
	BezierKind
)

// Mapping is the atomic monotonic transform between two spaces over a
// contiguous half-open input interval, tagged by Kind.
type Mapping struct {
	Kind   Kind
	Bounds ordinate.Interval

	// Affine fields.
	Scale  ordinate.Ordinate
	Offset ordinate.Ordinate

	// LinearKind field.
	Lin curve.Linear

	// BezierKind field.
	Bez curve.Bezier
}

// NewEmpty constructs an empty mapping over bounds.
func NewEmpty(bounds ordinate.Interval) Mapping {
	return Mapping{Kind: Empty, Bounds: bounds}
}

// NewAffine constructs an affine mapping y = scale*x + offset over bounds.
func NewAffine(bounds ordinate.Interval, scale, offset ordinate.Ordinate) Mapping {
	return Mapping{Kind: Affine, Bounds: bounds, Scale: scale, Offset: offset}
}

// NewLinear constructs a linear mapping from a curve.Linear, taking the
// curve's own input bounds as the mapping's bounds.
func NewLinear(lin curve.Linear) Mapping {
	return Mapping{Kind: LinearKind, Bounds: lin.InputBounds(), Lin: lin}
}

// NewBezier constructs a bezier mapping from a curve.Bezier, taking the
// curve's own input bounds as the mapping's bounds.
func NewBezier(bez curve.Bezier) Mapping {
	return Mapping{Kind: BezierKind, Bounds: bez.InputBounds(), Bez: bez}
}

// InputBounds returns the mapping's half-open input domain.
func (m Mapping) InputBounds() ordinate.Interval {
	return m.Bounds
}

// OutputAt evaluates the mapping at input x.
func (m Mapping) OutputAt(x ordinate.Ordinate) (ordinate.Ordinate, error) {
	if !m.Bounds.Contains(x) {
		return 0, projerr.ErrOutOfBounds
	}
	switch m.Kind {
	case Empty:
		return 0, projerr.ErrEmptyMapping
	case Affine:
		return m.Scale*x + m.Offset, nil
	case LinearKind:
		return m.Lin.OutputAt(x)
	case BezierKind:
		return m.Bez.OutputAt(x)
	default:
		return 0, projerr.ErrEmptyMapping
	}
}

// OutputRange returns the interval spanning the mapping's minimum and
// maximum output values over its domain. Because every mapping is
// monotonic per-segment (even reverse-warp linear mappings, which are
// monotonic within each knot pair but may alternate direction across
// pairs), extrema occur only at breakpoints, so sampling breakpoints is
// exact for affine/linear and a close approximation for bezier (sampled
// via linearization).
func (m Mapping) OutputRange() ordinate.Interval {
	switch m.Kind {
	case Empty:
		return ordinate.Interval{}
	case Affine:
		y0 := m.Scale*m.Bounds.Start + m.Offset
		y1 := m.Scale*m.Bounds.End + m.Offset
		return minMaxInterval(y0, y1)
	case LinearKind:
		return rangeOfKnots(m.Lin.Knots)
	case BezierKind:
		lin := m.Bez.Linearize(bezierRangeSamples)
		return rangeOfKnots(lin.Knots)
	default:
		return ordinate.Interval{}
	}
}

// bezierRangeSamples is the per-segment sample count used to approximate
// a bezier mapping's output range, its Inverse, and InverseAt. Join
// linearizes with joinLinearizeSamples instead.
const bezierRangeSamples = 12

func rangeOfKnots(knots []curve.ControlPoint) ordinate.Interval {
	if len(knots) == 0 {
		return ordinate.Interval{}
	}
	lo, hi := knots[0].Out, knots[0].Out
	for _, k := range knots {
		if k.Out < lo {
			lo = k.Out
		}
		if k.Out > hi {
			hi = k.Out
		}
	}
	return ordinate.Interval{Start: lo, End: hi}
}

func minMaxInterval(a, b ordinate.Ordinate) ordinate.Interval {
	if a <= b {
		return ordinate.Interval{Start: a, End: b}
	}
	return ordinate.Interval{Start: b, End: a}
}

// Inverse returns the functional inverse of m as a new Mapping: swapping
// input and output axes entirely, rather than solving pointwise via
// InverseAt. Used by topomap when a projection path climbs from a
// descendant space toward an ancestor against the grain of the tree's
// parent->child edges.
//
// Affine inverts exactly. LinearKind inverts exactly by swapping each
// knot's In/Out and re-sorting by the new In (=old Out) — a decreasing
// linear mapping's inverse is itself decreasing, which NewLinear accepts
// since it only constrains In to be strictly increasing, not Out.
// BezierKind has no closed-form inverse in this representation, so it is
// linearized first and inverted the same way as LinearKind, matching the
// approximation OutputRange and InverseAt already make for bezier.
func (m Mapping) Inverse() (Mapping, error) {
	switch m.Kind {
	case Affine:
		if m.Scale == 0 {
			return Mapping{}, projerr.ErrDivByZero
		}
		newScale := 1 / m.Scale
		newOffset := -m.Offset / m.Scale
		return NewAffine(m.OutputRange(), newScale, newOffset), nil
	case LinearKind:
		return NewLinear(invertKnots(m.Lin.Knots)), nil
	case BezierKind:
		lin := m.Bez.Linearize(bezierRangeSamples)
		return NewLinear(invertKnots(lin.Knots)), nil
	default:
		return Mapping{}, projerr.ErrEmptyMapping
	}
}

func invertKnots(knots []curve.ControlPoint) curve.Linear {
	swapped := make([]curve.ControlPoint, len(knots))
	for i, k := range knots {
		swapped[i] = curve.ControlPoint{In: k.Out, Out: k.In}
	}
	sort.Slice(swapped, func(i, j int) bool { return swapped[i].In < swapped[j].In })
	lin, err := curve.NewLinear(swapped)
	if err != nil {
		// Degenerate (non-injective forward mapping produced ties on
		// the new In axis); fall back to a single segment joining the
		// first and last swapped knots rather than propagating a constructor
		// error out of Inverse's otherwise error-free LinearKind path.
		if len(swapped) > 0 {
			lin = curve.Linear{Knots: []curve.ControlPoint{swapped[0], swapped[len(swapped)-1]}}
		}
	}
	return lin
}

// InverseAt returns the input x in m's domain such that OutputAt(x) == y,
// or ok == false if y is not attained by m.
func (m Mapping) InverseAt(y ordinate.Ordinate) (x ordinate.Ordinate, ok bool) {
	switch m.Kind {
	case Affine:
		if m.Scale == 0 {
			return 0, false
		}
		x := (y - m.Offset) / m.Scale
		if x < m.Bounds.Start || x > m.Bounds.End {
			return 0, false
		}
		return x, true
	case LinearKind:
		return m.Lin.InverseAt(y)
	case BezierKind:
		lin := m.Bez.Linearize(bezierRangeSamples)
		return lin.InverseAt(y)
	default:
		return 0, false
	}
}
