package curve

import (
	"fmt"
	"math"
	"sort"

	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/projerr"
)

// Segment is a single cubic Bezier segment defined by four control
// points. It must be input-monotonic: p0.In <= p1.In <= p2.In <= p3.In.
type Segment struct {
	P0, P1, P2, P3 ControlPoint
}

// newtonMaxIterations bounds the find-u Newton-Raphson loop.
const newtonMaxIterations = 64

// newtonTolerance is the convergence tolerance on the input residual.
const newtonTolerance = 1e-9

// InputBounds returns [P0.In, P3.In).
func (s Segment) InputBounds() ordinate.Interval {
	return ordinate.Interval{Start: s.P0.In, End: s.P3.In}
}

// IsMonotonic reports whether the segment satisfies the input-monotonicity
// invariant (non-strict, so degenerate endpoint coincidences are allowed).
func (s Segment) IsMonotonic() bool {
	return s.P0.In <= s.P1.In && s.P1.In <= s.P2.In && s.P2.In <= s.P3.In
}

// pointAt evaluates the cubic Bezier basis at parameter u in [0,1].
func (s Segment) pointAt(u float64) ControlPoint {
	mu := 1 - u
	b0 := mu * mu * mu
	b1 := 3 * mu * mu * u
	b2 := 3 * mu * u * u
	b3 := u * u * u
	return ControlPoint{
		In:  ordinate.Ordinate(b0)*s.P0.In + ordinate.Ordinate(b1)*s.P1.In + ordinate.Ordinate(b2)*s.P2.In + ordinate.Ordinate(b3)*s.P3.In,
		Out: ordinate.Ordinate(b0)*s.P0.Out + ordinate.Ordinate(b1)*s.P1.Out + ordinate.Ordinate(b2)*s.P2.Out + ordinate.Ordinate(b3)*s.P3.Out,
	}
}

// xDual evaluates the segment's input component x(u) as a Dual, carrying
// dx/du in the infinitesimal part.
func (s Segment) xDual(u Dual) Dual {
	one := Constant(1)
	mu := one.Sub(u)
	mu2 := mu.Mul(mu)
	mu3 := mu2.Mul(mu)
	u2 := u.Mul(u)
	u3 := u2.Mul(u)

	term0 := mu3.Scale(float64(s.P0.In))
	term1 := mu2.Mul(u).Scale(3 * float64(s.P1.In))
	term2 := mu.Mul(u2).Scale(3 * float64(s.P2.In))
	term3 := u3.Scale(float64(s.P3.In))
	return term0.Add(term1).Add(term2).Add(term3)
}

// FindU solves Bx(u) = x for u in [0,1] using Newton-Raphson on the
// input polynomial, seeded by a binary-search bracket, relying on the
// segment's input-monotonicity invariant. It returns ErrNonMonotonicInput
// (wrapped with segment/input context) rather than a best-effort guess if
// the iteration fails to converge — the source repo's "catch and return
// whatever we had" behavior this spec calls out as a bug is not replicated.
func (s Segment) FindU(x ordinate.Ordinate, index int) (float64, error) {
	bounds := s.InputBounds()
	if x < bounds.Start || x > bounds.End {
		return 0, projerr.ErrOutOfBounds
	}
	if !s.IsMonotonic() {
		return 0, &projerr.SegmentError{Curve: "bezier", Segment: index, Input: float64(x), Err: projerr.ErrNonMonotonicInput}
	}

	lo, hi := 0.0, 1.0
	// Degenerate segment (zero input span): any u maps to the same x.
	if bounds.Start == bounds.End {
		return 0, nil
	}

	u := bisectSeed(s, x, lo, hi)

	for i := 0; i < newtonMaxIterations; i++ {
		d := s.xDual(NewDual(u))
		residual := d.Real - float64(x)
		if math.Abs(residual) < newtonTolerance {
			return clamp01(u), nil
		}
		if d.Inf == 0 {
			break
		}
		next := u - residual/d.Inf
		if math.IsNaN(next) || next < -1 || next > 2 {
			break
		}
		if next < lo {
			next = (lo + u) / 2
		}
		if next > hi {
			next = (hi + u) / 2
		}
		u = next
	}

	return 0, &projerr.SegmentError{
		Curve:   "bezier",
		Segment: index,
		Input:   float64(x),
		Err:     fmt.Errorf("find-u did not converge: %w", projerr.ErrNonMonotonicInput),
	}
}

// bisectSeed brackets a starting guess for Newton-Raphson via binary search
// on the (monotonic) x(u) function.
func bisectSeed(s Segment, x ordinate.Ordinate, lo, hi float64) float64 {
	for i := 0; i < 20; i++ {
		mid := (lo + hi) / 2
		xm := s.pointAt(mid).In
		if xm < x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

func clamp01(u float64) float64 {
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}

// OutputAt evaluates the segment at input x via find-u then basis
// evaluation of the output component.
func (s Segment) OutputAt(x ordinate.Ordinate, index int) (ordinate.Ordinate, error) {
	u, err := s.FindU(x, index)
	if err != nil {
		return 0, err
	}
	return s.pointAt(u).Out, nil
}

// Hodograph returns the quadratic-Bezier derivative curve's three control
// points Q0, Q1, Q2 (the spec's "hodograph of a cubic Bezier is a
// quadratic Bezier").
func (s Segment) Hodograph() (q0, q1, q2 ControlPoint) {
	q0 = s.P1.Sub(s.P0).Scale(3)
	q1 = s.P2.Sub(s.P1).Scale(3)
	q2 = s.P3.Sub(s.P2).Scale(3)
	return
}

// CriticalPoints returns the real roots in (0,1) of the hodograph's input
// (x) component — the parameter values where dIn/du == 0, i.e. where the
// segment's input direction would reverse if not split there.
func (s Segment) CriticalPoints() []float64 {
	q0, q1, q2 := s.Hodograph()
	a := float64(q0.In - 2*q1.In + q2.In)
	b := 2 * float64(q1.In-q0.In)
	c := float64(q0.In)

	var roots []float64
	const tol = 1e-12
	switch {
	case math.Abs(a) < tol:
		if math.Abs(b) > tol {
			roots = append(roots, -c/b)
		}
	default:
		disc := b*b - 4*a*c
		if disc >= 0 {
			sq := math.Sqrt(disc)
			roots = append(roots, (-b+sq)/(2*a), (-b-sq)/(2*a))
		}
	}

	var inRange []float64
	for _, r := range roots {
		if r > tol && r < 1-tol {
			inRange = append(inRange, r)
		}
	}
	return inRange
}

// splitAt de Casteljau-subdivides the segment at parameter u into two
// segments, each an independently owned Segment (no aliasing with s).
func (s Segment) splitAt(u float64) (Segment, Segment) {
	lerp := func(a, b ControlPoint) ControlPoint {
		return ControlPoint{
			In:  a.In + ordinate.Ordinate(u)*(b.In-a.In),
			Out: a.Out + ordinate.Ordinate(u)*(b.Out-a.Out),
		}
	}
	p01 := lerp(s.P0, s.P1)
	p12 := lerp(s.P1, s.P2)
	p23 := lerp(s.P2, s.P3)
	p012 := lerp(p01, p12)
	p123 := lerp(p12, p23)
	p0123 := lerp(p012, p123)

	left := Segment{P0: s.P0, P1: p01, P2: p012, P3: p0123}
	right := Segment{P0: p0123, P1: p123, P2: p23, P3: s.P3}
	return left, right
}

// Bezier is a piecewise cubic Bezier mapping: an ordered sequence of
// segments with Segment[i].P3 == Segment[i+1].P0, input-monotonic overall.
type Bezier struct {
	Segments []Segment
}

// NewBezier validates and constructs a Bezier curve.
func NewBezier(segments []Segment) (Bezier, error) {
	for i, seg := range segments {
		if !seg.IsMonotonic() {
			return Bezier{}, &projerr.SegmentError{Curve: "bezier", Segment: i, Err: projerr.ErrNonMonotonicInput}
		}
		if i > 0 && segments[i-1].P3 != seg.P0 {
			return Bezier{}, &projerr.SegmentError{Curve: "bezier", Segment: i, Err: fmt.Errorf("segment %d does not abut segment %d", i-1, i)}
		}
	}
	cp := make([]Segment, len(segments))
	copy(cp, segments)
	return Bezier{Segments: cp}, nil
}

// InputBounds returns [first_segment.P0.In, last_segment.P3.In).
func (b Bezier) InputBounds() ordinate.Interval {
	if len(b.Segments) == 0 {
		return ordinate.Interval{}
	}
	return ordinate.Interval{Start: b.Segments[0].P0.In, End: b.Segments[len(b.Segments)-1].P3.In}
}

// segmentFor returns the index of the segment whose half-open input range
// contains x.
func (b Bezier) segmentFor(x ordinate.Ordinate) (int, error) {
	bounds := b.InputBounds()
	if x < bounds.Start || x >= bounds.End {
		return 0, projerr.ErrOutOfBounds
	}
	for i, seg := range b.Segments {
		end := seg.P3.In
		if i == len(b.Segments)-1 {
			end = bounds.End
		}
		if x >= seg.P0.In && x < end {
			return i, nil
		}
	}
	return 0, projerr.ErrOutOfBounds
}

// OutputAt evaluates the piecewise Bezier mapping at input x.
func (b Bezier) OutputAt(x ordinate.Ordinate) (ordinate.Ordinate, error) {
	i, err := b.segmentFor(x)
	if err != nil {
		return 0, err
	}
	return b.Segments[i].OutputAt(x, i)
}

// SplitOnCriticalPoints returns a Bezier curve with additional breakpoints
// inserted at every segment's hodograph root, so the input direction does
// not change within any resulting segment: an input-monotonic segment
// yields non-decreasing pieces, while a segment whose input reverses
// yields a non-increasing piece between its two roots. The returned curve
// owns entirely new segment
// and control-point storage — it never aliases b.Segments, resolving the
// aliasing bug the spec calls out in the source repo's split_hodograph.
func (b Bezier) SplitOnCriticalPoints() Bezier {
	var out []Segment
	for _, seg := range b.Segments {
		roots := seg.CriticalPoints()
		sort.Float64s(roots)

		// Track each piece's span in the original segment's parameter
		// space [0,1] so a root can be mapped into whichever piece
		// currently contains it, regardless of how many prior roots
		// already split that piece off.
		type span struct {
			lo, hi float64
			seg    Segment
		}
		pieces := []span{{lo: 0, hi: 1, seg: seg}}

		for _, r := range roots {
			for i, p := range pieces {
				if r <= p.lo || r >= p.hi {
					continue
				}
				local := (r - p.lo) / (p.hi - p.lo)
				left, right := p.seg.splitAt(local)
				replacement := []span{
					{lo: p.lo, hi: r, seg: left},
					{lo: r, hi: p.hi, seg: right},
				}
				pieces = append(pieces[:i], append(replacement, pieces[i+1:]...)...)
				break
			}
		}

		for _, p := range pieces {
			out = append(out, p.seg)
		}
	}
	return Bezier{Segments: out}
}

// Linearize samples the (already split) Bezier curve at fixed parameter
// increments per segment, plus guaranteed endpoints, returning an
// independently-owned Linear curve.
func (b Bezier) Linearize(samplesPerSegment int) Linear {
	if samplesPerSegment < 2 {
		samplesPerSegment = 2
	}
	var knots []ControlPoint
	for si, seg := range b.Segments {
		for i := 0; i < samplesPerSegment; i++ {
			u := float64(i) / float64(samplesPerSegment-1)
			cp := seg.pointAt(u)
			if si > 0 && i == 0 {
				// Endpoint already emitted as the previous
				// segment's last sample.
				continue
			}
			knots = append(knots, cp)
		}
	}
	return Linear{Knots: knots}
}

// MapIn returns a new Bezier curve with every control point's In value
// (across every segment) passed through f. Used to compose an affine
// mapping's inverse into a following bezier mapping's control points,
// per the affine-then-bezier join case.
func (b Bezier) MapIn(f func(ordinate.Ordinate) ordinate.Ordinate) Bezier {
	out := make([]Segment, len(b.Segments))
	for i, seg := range b.Segments {
		out[i] = Segment{
			P0: ControlPoint{In: f(seg.P0.In), Out: seg.P0.Out},
			P1: ControlPoint{In: f(seg.P1.In), Out: seg.P1.Out},
			P2: ControlPoint{In: f(seg.P2.In), Out: seg.P2.Out},
			P3: ControlPoint{In: f(seg.P3.In), Out: seg.P3.Out},
		}
	}
	if len(out) > 1 && out[0].P0.In > out[len(out)-1].P0.In {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return Bezier{Segments: out}
}

// ThreePointApprox synthesizes a cubic Bezier segment from start, mid, and
// end control points plus the slope (dOut/dIn) at the midpoint, matching
// position at u=0 and u=1, position at u=0.5, and derivative at u=0.5. The
// midpoint derivative is expressed as a 2D tangent by scaling (1, slope)
// by the chord length in In, giving the synthesized segment a tangent
// magnitude proportional to the span being approximated.
func ThreePointApprox(start, mid, end ControlPoint, midSlope float64) Segment {
	chord := float64(end.In - start.In)
	tangent := ControlPoint{In: ordinate.Ordinate(chord), Out: ordinate.Ordinate(chord * midSlope)}

	// B(0.5) = (P0 + 3P1 + 3P2 + P3)/8  =>  P1+P2 = (8*mid - P0 - P3)/3
	sum := mid.Scale(8).Sub(start).Sub(end).Scale(1.0 / 3.0)
	// B'(0.5) = 0.75*(P3+P2-P1-P0)      =>  P2-P1 = (4/3)*tangent - P3 + P0
	diff := tangent.Scale(4.0 / 3.0).Sub(end).Add(start)

	p1 := sum.Sub(diff).Scale(0.5)
	p2 := sum.Add(diff).Scale(0.5)

	return Segment{P0: start, P1: p1, P2: p2, P3: end}
}
