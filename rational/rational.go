// Package rational implements exact rational-number arithmetic for sample
// rates such as 24·1000/1001. It avoids the floating-point drift that would
// otherwise accumulate across repeated discretization math.
package rational

import (
	"fmt"
	"math"

	"github.com/mrjoshuak/otio-topology/projerr"
)

// Rational is a signed rational number Num/Den. Den == 0 encodes signed
// infinity, with the sign carried by Num (Num > 0 → +Inf, Num < 0 → -Inf).
// Num == 0 && Den == 0 is the invalid ("not a rational") sentinel.
type Rational struct {
	Num int32
	Den uint32
}

// Zero is the rational 0/1.
var Zero = Rational{Num: 0, Den: 1}

// Invalid is the not-a-rational sentinel (0/0).
var Invalid = Rational{Num: 0, Den: 0}

// New constructs a Rational and normalizes it. A zero denominator with a
// non-zero numerator produces a signed infinity; 0/0 produces Invalid.
func New(num int32, den uint32) Rational {
	return Rational{Num: num, Den: den}.Normalize()
}

// FromInt constructs the rational n/1.
func FromInt(n int32) Rational {
	return Rational{Num: n, Den: 1}
}

// IsInvalid reports whether r is the 0/0 sentinel.
func (r Rational) IsInvalid() bool {
	return r.Num == 0 && r.Den == 0
}

// IsInf reports whether r is a signed infinity (Den == 0, Num != 0).
func (r Rational) IsInf() bool {
	return r.Den == 0 && r.Num != 0
}

// Sign returns -1, 0, or 1.
func (r Rational) Sign() int {
	switch {
	case r.Num < 0:
		return -1
	case r.Num > 0:
		return 1
	default:
		return 0
	}
}

// binaryGCD computes gcd(a, b) using Stein's algorithm on unsigned 32-bit
// integers (no division, only shifts and subtraction).
func binaryGCD(a, b uint32) uint32 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}

	shift := uint(0)
	for (a|b)&1 == 0 {
		a >>= 1
		b >>= 1
		shift++
	}
	for a&1 == 0 {
		a >>= 1
	}
	for b != 0 {
		for b&1 == 0 {
			b >>= 1
		}
		if a > b {
			a, b = b, a
		}
		b -= a
	}
	return a << shift
}

func absInt32(v int32) uint32 {
	if v < 0 {
		return uint32(-int64(v))
	}
	return uint32(v)
}

// lcmUint64 returns lcm(a, b) computed as (a*b)/gcd(a, b).
func lcmUint64(a, b uint32) uint64 {
	g := binaryGCD(a, b)
	if g == 0 {
		return 0
	}
	return (uint64(a) / uint64(g)) * uint64(b)
}

// Normalize returns r reduced to lowest terms with the sign carried on Num.
// Infinities are reduced to +/-1 over 0; the invalid sentinel passes
// through unchanged.
func (r Rational) Normalize() Rational {
	if r.Den == 0 {
		if r.Num == 0 {
			return Invalid
		}
		sign := int32(1)
		if r.Num < 0 {
			sign = -1
		}
		return Rational{Num: sign, Den: 0}
	}
	if r.Num == 0 {
		return Zero
	}
	g := binaryGCD(absInt32(r.Num), r.Den)
	if g == 0 {
		return r
	}
	return Rational{
		Num: r.Num / int32(g),
		Den: r.Den / uint32(g),
	}
}

// Equal reports whether r and o have identical Num and Den fields, with no
// normalization performed first.
func (r Rational) Equal(o Rational) bool {
	return r.Num == o.Num && r.Den == o.Den
}

// Equivalent reports whether r and o represent the same value once both are
// normalized.
func (r Rational) Equivalent(o Rational) bool {
	return r.Normalize().Equal(o.Normalize())
}

// Add returns r + o, normalizing denominators to their LCM first.
func (r Rational) Add(o Rational) (Rational, error) {
	if r.IsInvalid() || o.IsInvalid() {
		return Invalid, fmt.Errorf("rational: add of invalid operand")
	}
	if r.IsInf() || o.IsInf() {
		return addInf(r, o)
	}
	l := lcmUint64(r.Den, o.Den)
	rMul := l / uint64(r.Den)
	oMul := l / uint64(o.Den)
	num := int64(r.Num)*int64(rMul) + int64(o.Num)*int64(oMul)
	return New(int32(num), uint32(l)).Normalize(), nil
}

// Sub returns r - o.
func (r Rational) Sub(o Rational) (Rational, error) {
	return r.Add(Rational{Num: -o.Num, Den: o.Den})
}

// Mul returns r * o, cross-cancelling common factors before multiplying to
// avoid overflow.
func (r Rational) Mul(o Rational) (Rational, error) {
	if r.IsInvalid() || o.IsInvalid() {
		return Invalid, fmt.Errorf("rational: mul of invalid operand")
	}
	if r.IsInf() || o.IsInf() {
		return mulInf(r, o)
	}
	// Cancel r.Num/o.Den and o.Num/r.Den crosswise.
	g1 := binaryGCD(absInt32(r.Num), o.Den)
	g2 := binaryGCD(absInt32(o.Num), r.Den)
	rn := r.Num
	od := o.Den
	on := o.Num
	rd := r.Den
	if g1 > 0 {
		rn /= int32(g1)
		od /= g1
	}
	if g2 > 0 {
		on /= int32(g2)
		rd /= g2
	}
	num := int64(rn) * int64(on)
	den := uint64(od) * uint64(rd)
	return New(int32(num), uint32(den)).Normalize(), nil
}

// Div returns r / o. Dividing by the zero rational fails with
// projerr.ErrDivByZero.
func (r Rational) Div(o Rational) (Rational, error) {
	if o.Num == 0 && o.Den != 0 {
		return Invalid, projerr.ErrDivByZero
	}
	reciprocal := Rational{Num: reciprocalNum(o), Den: absInt32(o.Num)}
	return r.Mul(reciprocal)
}

// reciprocalNum returns Den reinterpreted as the reciprocal's numerator,
// carrying the original sign of Num.
func reciprocalNum(r Rational) int32 {
	if r.Num < 0 {
		return -int32(r.Den)
	}
	return int32(r.Den)
}

func addInf(r, o Rational) (Rational, error) {
	rInf, oInf := r.IsInf(), o.IsInf()
	switch {
	case rInf && oInf:
		if r.Sign() != o.Sign() {
			return Invalid, fmt.Errorf("rational: indeterminate +inf + -inf")
		}
		return r, nil
	case rInf:
		return r, nil
	default:
		return o, nil
	}
}

func mulInf(r, o Rational) (Rational, error) {
	if r.Sign() == 0 || o.Sign() == 0 {
		return Invalid, fmt.Errorf("rational: indeterminate 0 * inf")
	}
	sign := int32(1)
	if r.Sign()*o.Sign() < 0 {
		sign = -1
	}
	return Rational{Num: sign, Den: 0}, nil
}

// Less reports whether r < o. The comparison walks the continued-fraction
// expansion of both operands (via alternating-sign Euclidean division)
// rather than cross-multiplying, which is what lets this stay exact if the
// type is later widened beyond int64-safe cross products.
func (r Rational) Less(o Rational) bool {
	if r.IsInf() || o.IsInf() {
		return lessInf(r, o)
	}
	return continuedFractionLess(int64(r.Num), int64(r.Den), int64(o.Num), int64(o.Den))
}

func lessInf(r, o Rational) bool {
	rs, os := signOf(r), signOf(o)
	if rs != os {
		return rs < os
	}
	if rs == 0 {
		return false
	}
	// Same-signed infinities are not strictly less than each other;
	// a finite value compares against the sign of the infinity.
	if r.IsInf() && o.IsInf() {
		return false
	}
	if r.IsInf() {
		return rs < 0
	}
	return os > 0
}

func signOf(r Rational) int {
	if r.IsInf() || !r.IsInvalid() {
		return r.Sign()
	}
	return 0
}

// floorDivMod returns (q, r) such that a == q*b + r, 0 <= r < b, for b > 0.
func floorDivMod(a, b int64) (int64, int64) {
	q := a / b
	r := a % b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}

// continuedFractionLess compares a/b < c/d for b, d > 0 by walking the
// continued-fraction expansion of each side one Euclidean step at a time:
// at each level the two sides' integer quotients are compared directly on
// even levels and with reversed sense on odd levels (taking a reciprocal of
// a positive fraction reverses order), so the comparison never needs to
// form the cross product a*d.
func continuedFractionLess(a, b, c, d int64) bool {
	level := 0
	for {
		qa, ra := floorDivMod(a, b)
		qc, rc := floorDivMod(c, d)
		if qa != qc {
			if level%2 == 0 {
				return qa < qc
			}
			return qa > qc
		}
		switch {
		case ra == 0 && rc == 0:
			return false
		case ra == 0:
			return level%2 == 0
		case rc == 0:
			return level%2 == 1
		}
		a, b, c, d = b, ra, d, rc
		level++
	}
}

// String renders the rational as "num/den" (or "+inf"/"-inf"/"nan").
func (r Rational) String() string {
	switch {
	case r.IsInvalid():
		return "nan"
	case r.IsInf():
		if r.Num > 0 {
			return "+inf"
		}
		return "-inf"
	default:
		return fmt.Sprintf("%d/%d", r.Num, r.Den)
	}
}

// Float64 returns the rational as a float64 (for display/epsilon-bounded
// comparisons only — not for exact arithmetic).
func (r Rational) Float64() float64 {
	if r.IsInvalid() {
		return 0
	}
	if r.IsInf() {
		if r.Num > 0 {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}
	return float64(r.Num) / float64(r.Den)
}
