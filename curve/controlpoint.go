// Package curve implements the piecewise-linear and cubic-Bezier mapping
// primitives used to describe retiming warps: ControlPoint, LinearCurve, and
// BezierCurve, along with the dual-number helper used for derivative-aware
// evaluation.
package curve

import (
	"math"

	"github.com/mrjoshuak/otio-topology/ordinate"
)

// ControlPoint is a 2D point (In, Out) used by curves.
type ControlPoint struct {
	In  ordinate.Ordinate
	Out ordinate.Ordinate
}

// Add returns the componentwise sum of two control points.
func (p ControlPoint) Add(o ControlPoint) ControlPoint {
	return ControlPoint{In: p.In + o.In, Out: p.Out + o.Out}
}

// Sub returns the componentwise difference of two control points.
func (p ControlPoint) Sub(o ControlPoint) ControlPoint {
	return ControlPoint{In: p.In - o.In, Out: p.Out - o.Out}
}

// Scale returns p scaled by a scalar.
func (p ControlPoint) Scale(s float64) ControlPoint {
	return ControlPoint{In: p.In * ordinate.Ordinate(s), Out: p.Out * ordinate.Ordinate(s)}
}

// Distance returns the Euclidean distance between p and o.
func (p ControlPoint) Distance(o ControlPoint) float64 {
	di := float64(p.In - o.In)
	do := float64(p.Out - o.Out)
	return math.Sqrt(di*di + do*do)
}

// Dual is a plain (real, infinitesimal) pair used for derivative-aware
// curve evaluation (per the spec's note that no operator overloading is
// required if arithmetic is a dedicated helper namespace). When evaluation
// is requested on a dual (r, i), the result's infinitesimal component
// carries dy/du (or dy/dx, for input-duals).
type Dual struct {
	Real float64
	Inf  float64
}

// NewDual constructs a dual number with the given real part and an
// infinitesimal part of 1 (the seed used to propagate a derivative through
// a single evaluation).
func NewDual(real float64) Dual {
	return Dual{Real: real, Inf: 1}
}

// Constant returns a dual number representing a constant (zero
// infinitesimal part), for use in products/sums with a seeded Dual.
func Constant(real float64) Dual {
	return Dual{Real: real, Inf: 0}
}

// Add returns d + o.
func (d Dual) Add(o Dual) Dual {
	return Dual{Real: d.Real + o.Real, Inf: d.Inf + o.Inf}
}

// Sub returns d - o.
func (d Dual) Sub(o Dual) Dual {
	return Dual{Real: d.Real - o.Real, Inf: d.Inf - o.Inf}
}

// Mul returns d * o following the product rule: (a+bε)(c+dε) = ac + (ad+bc)ε.
func (d Dual) Mul(o Dual) Dual {
	return Dual{Real: d.Real * o.Real, Inf: d.Real*o.Inf + d.Inf*o.Real}
}

// Scale returns d scaled by a plain scalar.
func (d Dual) Scale(s float64) Dual {
	return Dual{Real: d.Real * s, Inf: d.Inf * s}
}

// Div returns d / o (quotient rule). o.Real must be non-zero.
func (d Dual) Div(o Dual) Dual {
	return Dual{
		Real: d.Real / o.Real,
		Inf:  (d.Inf*o.Real - d.Real*o.Inf) / (o.Real * o.Real),
	}
}
