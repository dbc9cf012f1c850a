package curve

import (
	"errors"
	"testing"

	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/projerr"
)

func TestNewLinearRejectsNonMonotonic(t *testing.T) {
	_, err := NewLinear([]ControlPoint{
		{In: 0, Out: 0},
		{In: 1, Out: 1},
		{In: 1, Out: 2},
	})
	if err == nil {
		t.Fatal("expected error for non-increasing In values")
	}
	if !errors.Is(err, projerr.ErrNonMonotonicInput) {
		t.Errorf("expected ErrNonMonotonicInput, got %v", err)
	}
}

func TestLinearOutputAt(t *testing.T) {
	l, err := NewLinear([]ControlPoint{
		{In: 0, Out: 0},
		{In: 10, Out: 100},
	})
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}

	tests := []struct {
		x    ordinate.Ordinate
		want ordinate.Ordinate
	}{
		{0, 0},
		{5, 50},
		{9.999, 99.99},
	}
	for _, tt := range tests {
		got, err := l.OutputAt(tt.x)
		if err != nil {
			t.Fatalf("OutputAt(%v): %v", tt.x, err)
		}
		if diff := float64(got - tt.want); diff > 1e-9 || diff < -1e-9 {
			t.Errorf("OutputAt(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}

	if _, err := l.OutputAt(10); !errors.Is(err, projerr.ErrOutOfBounds) {
		t.Errorf("OutputAt at end bound should be out of bounds (half-open), got %v", err)
	}
}

func TestLinearSplitAtEachOutputOrdinateDoesNotAliasKnots(t *testing.T) {
	l, err := NewLinear([]ControlPoint{
		{In: 0, Out: 0},
		{In: 10, Out: 100},
	})
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}

	split := l.SplitAtEachOutputOrdinate([]ordinate.Ordinate{50})
	if len(split) != 3 {
		t.Fatalf("expected 3 knots after split, got %d", len(split))
	}
	if len(l.Knots) != 2 {
		t.Errorf("original Knots slice was mutated: len=%d", len(l.Knots))
	}

	mid := split[1]
	if mid.In != 5 || mid.Out != 50 {
		t.Errorf("split knot = %+v, want {In:5 Out:50}", mid)
	}
}

func TestLinearSplitAtEachOutputOrdinateNoSpurious(t *testing.T) {
	l, _ := NewLinear([]ControlPoint{
		{In: 0, Out: 0},
		{In: 10, Out: 100},
	})
	split := l.SplitAtEachOutputOrdinate([]ordinate.Ordinate{-5, 1000})
	if len(split) != 2 {
		t.Errorf("expected no new knots for out-of-range ordinates, got %d", len(split))
	}
}
