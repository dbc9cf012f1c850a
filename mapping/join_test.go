package mapping

import (
	"math"
	"testing"

	"github.com/mrjoshuak/otio-topology/curve"
	"github.com/mrjoshuak/otio-topology/ordinate"
)

func approxEqual(a, b ordinate.Ordinate) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestJoinAffineAffine(t *testing.T) {
	a2b := Topology{Mappings: []Mapping{NewAffine(ordinate.NewInterval(0, 10), 2, 0)}}   // y = 2x, x in [0,10)
	b2c := Topology{Mappings: []Mapping{NewAffine(ordinate.NewInterval(0, 20), 3, 1)}}   // z = 3y+1, y in [0,20)

	a2c, err := Join(a2b, b2c)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	for _, x := range []ordinate.Ordinate{0, 3, 9.999} {
		got, err := a2c.ProjectOrdinate(x)
		if err != nil {
			t.Fatalf("ProjectOrdinate(%v): %v", x, err)
		}
		want := 3*(2*x) + 1
		if !approxEqual(got, want) {
			t.Errorf("ProjectOrdinate(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestJoinIdentityPreservesTopology(t *testing.T) {
	lin, err := curve.NewLinear([]curve.ControlPoint{
		{In: 0, Out: 0}, {In: 5, Out: 10}, {In: 10, Out: 15},
	})
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}
	x := Topology{Mappings: []Mapping{NewLinear(lin)}}
	identity := Topology{Mappings: []Mapping{Identity(ordinate.NewInterval(0, 15))}}

	joined, err := Join(identity, x)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}

	for _, t0 := range []ordinate.Ordinate{0, 1, 4.5, 9.999} {
		want, err := x.ProjectOrdinate(t0)
		if err != nil {
			t.Fatalf("ProjectOrdinate(%v) on x: %v", t0, err)
		}
		got, err := joined.ProjectOrdinate(t0)
		if err != nil {
			t.Fatalf("ProjectOrdinate(%v) on identity-join: %v", t0, err)
		}
		if !approxEqual(got, want) {
			t.Errorf("join(identity, x).ProjectOrdinate(%v) = %v, want %v", t0, got, want)
		}
	}
}

func TestJoinLinearLinearInsertsBreakpoints(t *testing.T) {
	a2b, _ := curve.NewLinear([]curve.ControlPoint{{In: 0, Out: 0}, {In: 10, Out: 10}})
	b2c1, _ := curve.NewLinear([]curve.ControlPoint{{In: 0, Out: 0}, {In: 5, Out: 50}})
	b2c2, _ := curve.NewLinear([]curve.ControlPoint{{In: 5, Out: 50}, {In: 10, Out: 1000}})

	a := Topology{Mappings: []Mapping{NewLinear(a2b)}}
	b := Topology{Mappings: []Mapping{
		NewLinear(b2c1),
		NewLinear(b2c2),
	}}

	joined, err := Join(a, b)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if len(joined.Mappings) < 2 {
		t.Fatalf("expected the join to split at b's breakpoint (y=5, x=5), got %d mapping(s)", len(joined.Mappings))
	}

	got, err := joined.ProjectOrdinate(2.5)
	if err != nil {
		t.Fatalf("ProjectOrdinate(2.5): %v", err)
	}
	want := ordinate.Ordinate(25) // a(2.5)=2.5 -> b2c1 scaled: y=2.5 -> z=25
	if !approxEqual(got, want) {
		t.Errorf("ProjectOrdinate(2.5) = %v, want %v", got, want)
	}
}

func TestJoinLinearLinearSplitsAtGoverningMappingInternalKnot(t *testing.T) {
	a2b, _ := curve.NewLinear([]curve.ControlPoint{{In: 0, Out: 0}, {In: 10, Out: 10}}) // identity
	b2c, _ := curve.NewLinear([]curve.ControlPoint{
		{In: 0, Out: 0}, {In: 5, Out: 100}, {In: 10, Out: 110},
	}) // slope 20 on [0,5), slope 2 on [5,10)

	a := Topology{Mappings: []Mapping{NewLinear(a2b)}}
	b := Topology{Mappings: []Mapping{NewLinear(b2c)}}

	joined, err := Join(a, b)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}

	got, err := joined.ProjectOrdinate(2.5)
	if err != nil {
		t.Fatalf("ProjectOrdinate(2.5): %v", err)
	}
	want := ordinate.Ordinate(50) // a(2.5)=2.5 is on b2c's slope-20 segment: z=20*2.5
	if !approxEqual(got, want) {
		t.Errorf("ProjectOrdinate(2.5) = %v, want %v (straight-chord regression would give 27.5)", got, want)
	}

	got, err = joined.ProjectOrdinate(7.5)
	if err != nil {
		t.Fatalf("ProjectOrdinate(7.5): %v", err)
	}
	want = ordinate.Ordinate(105) // a(7.5)=7.5 is on b2c's slope-2 segment: z=100+2*2.5
	if !approxEqual(got, want) {
		t.Errorf("ProjectOrdinate(7.5) = %v, want %v", got, want)
	}
}

func TestJoinOutOfRangeBecomesEmpty(t *testing.T) {
	a2b := Topology{Mappings: []Mapping{NewAffine(ordinate.NewInterval(0, 10), 1, 0)}}
	b2c := Topology{Mappings: []Mapping{NewAffine(ordinate.NewInterval(0, 5), 1, 0)}}

	joined, err := Join(a2b, b2c)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	// [0,10) tiled fully: a subinterval beyond b2c's bounds (here [5,10))
	// must become an empty mapping rather than be dropped.
	ib := joined.InputBounds()
	if ib.Start != 0 || ib.End != 10 {
		t.Errorf("joined InputBounds = %v, want [0,10) (full domain preserved)", ib)
	}

	found := false
	for _, m := range joined.Mappings {
		if m.Kind == Empty && m.Bounds.Start == 5 {
			found = true
		}
	}
	if !found {
		t.Error("expected an empty mapping covering the out-of-range portion [5,10)")
	}
}
