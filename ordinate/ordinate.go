// Package ordinate provides scalar time values (Ordinate) and half-open
// continuous intervals ([start, end)) over them, generalizing the
// value-type arithmetic shape of gotio/opentime.RationalTime down to a bare
// scalar with no attached rate.
package ordinate

import "math"

// Ordinate is a scalar time value in seconds within a named coordinate
// space.
type Ordinate float64

// Add returns o + other.
func (o Ordinate) Add(other Ordinate) Ordinate { return o + other }

// Sub returns o - other.
func (o Ordinate) Sub(other Ordinate) Ordinate { return o - other }

// Mul returns o * other.
func (o Ordinate) Mul(other Ordinate) Ordinate { return o * other }

// Div returns o / other.
func (o Ordinate) Div(other Ordinate) Ordinate { return o / other }

// IsNaN reports whether o is NaN.
func (o Ordinate) IsNaN() bool { return math.IsNaN(float64(o)) }

// IsInf reports whether o is +/-Inf.
func (o Ordinate) IsInf() bool { return math.IsInf(float64(o), 0) }

// IsFinite reports whether o is neither NaN nor infinite.
func (o Ordinate) IsFinite() bool { return !o.IsNaN() && !o.IsInf() }

// Cmp returns -1, 0, or 1 as o is less than, equal to, or greater than
// other.
func (o Ordinate) Cmp(other Ordinate) int {
	switch {
	case o < other:
		return -1
	case o > other:
		return 1
	default:
		return 0
	}
}

// Min returns the smaller of two Ordinates.
func Min(a, b Ordinate) Ordinate {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two Ordinates.
func Max(a, b Ordinate) Ordinate {
	if a > b {
		return a
	}
	return b
}
