package curve

import (
	"sort"

	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/projerr"
)

// Linear is a monotonic piecewise-linear mapping defined by an ordered
// knot sequence with strictly increasing In values.
type Linear struct {
	Knots []ControlPoint
}

// NewLinear validates and constructs a Linear curve. It fails loudly (per
// the spec's construction-time-validation error category) if the knots are
// not strictly increasing in In.
func NewLinear(knots []ControlPoint) (Linear, error) {
	for i := 1; i < len(knots); i++ {
		if knots[i].In <= knots[i-1].In {
			return Linear{}, &projerr.SegmentError{
				Curve:   "linear",
				Segment: i,
				Input:   float64(knots[i].In),
				Err:     projerr.ErrNonMonotonicInput,
			}
		}
	}
	cp := make([]ControlPoint, len(knots))
	copy(cp, knots)
	return Linear{Knots: cp}, nil
}

// InputBounds returns [first_knot.In, last_knot.In).
func (l Linear) InputBounds() ordinate.Interval {
	if len(l.Knots) == 0 {
		return ordinate.Interval{}
	}
	return ordinate.Interval{Start: l.Knots[0].In, End: l.Knots[len(l.Knots)-1].In}
}

// bracket returns the index i such that Knots[i].In <= x < Knots[i+1].In,
// or an error if x is outside the curve's domain.
func (l Linear) bracket(x ordinate.Ordinate) (int, error) {
	if len(l.Knots) < 2 {
		return 0, projerr.ErrEmptyTopology
	}
	bounds := l.InputBounds()
	if x < bounds.Start || x >= bounds.End {
		return 0, projerr.ErrOutOfBounds
	}
	// Largest i with Knots[i].In <= x.
	i := sort.Search(len(l.Knots), func(i int) bool { return l.Knots[i].In > x }) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(l.Knots)-1 {
		i = len(l.Knots) - 2
	}
	return i, nil
}

// OutputAt evaluates the piecewise-linear mapping at input x.
func (l Linear) OutputAt(x ordinate.Ordinate) (ordinate.Ordinate, error) {
	i, err := l.bracket(x)
	if err != nil {
		return 0, err
	}
	a, b := l.Knots[i], l.Knots[i+1]
	t := float64(x-a.In) / float64(b.In-a.In)
	return a.Out + ordinate.Ordinate(t)*(b.Out-a.Out), nil
}

// InverseAt returns the input x such that OutputAt(x) == y, searching each
// consecutive knot pair in either orientation (so reverse segments, where
// Out decreases as In increases, are supported). ok is false if y is not
// spanned by any segment.
func (l Linear) InverseAt(y ordinate.Ordinate) (x ordinate.Ordinate, ok bool) {
	for i := 0; i+1 < len(l.Knots); i++ {
		a, b := l.Knots[i], l.Knots[i+1]
		lo, hi := a.Out, b.Out
		if lo == hi {
			if y == lo {
				return a.In, true
			}
			continue
		}
		if (y >= lo && y <= hi) || (y <= lo && y >= hi) {
			t := float64(y-a.Out) / float64(b.Out-a.Out)
			return a.In + ordinate.Ordinate(t)*(b.In-a.In), true
		}
	}
	return 0, false
}

// Slice returns a new Linear curve restricted to bounds, inserting
// boundary knots (via interpolation) at bounds.Start/bounds.End when they
// do not already fall exactly on an existing knot. The result owns
// entirely new storage.
func (l Linear) Slice(bounds ordinate.Interval) Linear {
	var knots []ControlPoint
	if v, err := l.OutputAt(bounds.Start); err == nil {
		knots = append(knots, ControlPoint{In: bounds.Start, Out: v})
	} else if bounds.Start == l.InputBounds().Start {
		knots = append(knots, l.Knots[0])
	}
	for _, k := range l.Knots {
		if k.In > bounds.Start && k.In < bounds.End {
			knots = append(knots, k)
		}
	}
	endBounds := l.InputBounds()
	if bounds.End == endBounds.End {
		knots = append(knots, l.Knots[len(l.Knots)-1])
	} else if v, err := l.OutputAt(bounds.End); err == nil {
		knots = append(knots, ControlPoint{In: bounds.End, Out: v})
	}
	out := make([]ControlPoint, len(knots))
	copy(out, knots)
	return Linear{Knots: out}
}

// MapOut returns a new Linear curve with every knot's Out value passed
// through f, preserving In values and knot order.
func (l Linear) MapOut(f func(ordinate.Ordinate) ordinate.Ordinate) Linear {
	out := make([]ControlPoint, len(l.Knots))
	for i, k := range l.Knots {
		out[i] = ControlPoint{In: k.In, Out: f(k.Out)}
	}
	return Linear{Knots: out}
}

// MapIn returns a new Linear curve with every knot's In value passed
// through f, re-sorted into increasing order (f may reverse orientation,
// as when composing with a negative-scale affine mapping).
func (l Linear) MapIn(f func(ordinate.Ordinate) ordinate.Ordinate) Linear {
	out := make([]ControlPoint, len(l.Knots))
	for i, k := range l.Knots {
		out[i] = ControlPoint{In: f(k.In), Out: k.Out}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].In < out[j].In })
	return Linear{Knots: out}
}

// SplitAtEachOutputOrdinate inserts knots at every input value x such that
// OutputAt(x) == y for any y in ys, returning a new, independently owned
// knot slice (per the spec's ownership resolution: the result never
// aliases l.Knots).
func (l Linear) SplitAtEachOutputOrdinate(ys []ordinate.Ordinate) []ControlPoint {
	result := make([]ControlPoint, len(l.Knots))
	copy(result, l.Knots)

	for _, y := range ys {
		for i := 0; i+1 < len(l.Knots); i++ {
			a, b := l.Knots[i], l.Knots[i+1]
			lo, hi := a.Out, b.Out
			if lo == hi {
				continue
			}
			if (y > lo && y < hi) || (y < lo && y > hi) {
				t := float64(y-lo) / float64(hi-lo)
				x := a.In + ordinate.Ordinate(t)*(b.In-a.In)
				result = append(result, ControlPoint{In: x, Out: y})
			}
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].In < result[j].In })

	// De-duplicate knots that landed on exactly the same input.
	deduped := result[:0:0]
	for _, cp := range result {
		if len(deduped) > 0 && deduped[len(deduped)-1].In == cp.In {
			continue
		}
		deduped = append(deduped, cp)
	}
	return deduped
}
