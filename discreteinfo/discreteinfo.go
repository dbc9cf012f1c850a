// Package discreteinfo bridges continuous ordinates and integer sample
// indices given a per-space sample-rate grid, generalizing the frame/second
// conversions of gotio/opentime.RationalTime (Floor, ToFrames, FromFrames)
// to an exact rational.Rational rate instead of a float64 one.
package discreteinfo

import (
	"math"

	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/rational"
)

// epsilon guards BufferSizeForLength against float rounding landing just
// short of an exact integer multiple of the sample period.
const epsilon = 1e-9

// Info is the sampling grid rooted at ordinate 0 for one named space:
// sample index i spans the continuous interval
// [(i-StartIndex)/rate, (i-StartIndex+1)/rate).
type Info struct {
	SampleRateHz rational.Rational
	StartIndex   int64
}

// New constructs an Info for the given rate and start index.
func New(rate rational.Rational, startIndex int64) Info {
	return Info{SampleRateHz: rate, StartIndex: startIndex}
}

// rateFloat64 returns the sample rate as a float64 for the arithmetic that
// necessarily crosses into continuous-ordinate space.
func (d Info) rateFloat64() float64 {
	return d.SampleRateHz.Float64()
}

// OrdForIndex returns the ordinate at the start of sample i.
func (d Info) OrdForIndex(i int64) ordinate.Ordinate {
	// Multiply by Den and divide by Num rather than dividing by the rounded
	// float rate, so the ordinate stays on the exact sample boundary.
	return ordinate.Ordinate(float64(i-d.StartIndex) * float64(d.SampleRateHz.Den) / float64(d.SampleRateHz.Num))
}

// OrdIntervalForIndex returns the half-open interval spanning sample i.
func (d Info) OrdIntervalForIndex(i int64) ordinate.Interval {
	start := d.OrdForIndex(i)
	end := d.OrdForIndex(i + 1)
	return ordinate.Interval{Start: start, End: end}
}

// IndexForOrd returns the index of the sample whose half-open interval
// contains ordinate t.
func (d Info) IndexForOrd(t ordinate.Ordinate) int64 {
	return int64(math.Floor(float64(t)*d.rateFloat64())) + d.StartIndex
}

// BufferSizeForLength returns the number of samples needed to cover
// [0, duration), computed as ceil(duration * rate). Values that land within
// epsilon of an exact integer multiple are treated as exact, so a duration
// of precisely N sample periods yields N samples rather than N+1 from
// float rounding.
func (d Info) BufferSizeForLength(duration ordinate.Ordinate) int64 {
	raw := float64(duration) * d.rateFloat64()
	rounded := math.Round(raw)
	if math.Abs(raw-rounded) < epsilon {
		return int64(rounded)
	}
	return int64(math.Ceil(raw))
}
