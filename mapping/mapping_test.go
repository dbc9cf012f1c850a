package mapping

import (
	"errors"
	"math"
	"testing"

	"github.com/mrjoshuak/otio-topology/curve"
	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/projerr"
)

func TestAffineOutputAt(t *testing.T) {
	m := NewAffine(ordinate.NewInterval(0, 10), 2, -1)
	got, err := m.OutputAt(5)
	if err != nil {
		t.Fatalf("OutputAt: %v", err)
	}
	if got != 9 {
		t.Errorf("OutputAt(5) = %v, want 9", got)
	}
	if _, err := m.OutputAt(10); !errors.Is(err, projerr.ErrOutOfBounds) {
		t.Errorf("expected out of bounds at upper boundary, got %v", err)
	}
}

func TestEmptyMappingFailsToProject(t *testing.T) {
	m := NewEmpty(ordinate.NewInterval(0, 10))
	_, err := m.OutputAt(5)
	if !errors.Is(err, projerr.ErrEmptyMapping) {
		t.Errorf("expected ErrEmptyMapping, got %v", err)
	}
}

func TestAffineOutputRange(t *testing.T) {
	// Negative scale: output decreases as input increases.
	m := NewAffine(ordinate.NewInterval(0, 10), -2, 5)
	r := m.OutputRange()
	if r.Start != -15 || r.End != 5 {
		t.Errorf("OutputRange = %v, want [-15, 5)", r)
	}
}

func TestMappingInverseAtAffine(t *testing.T) {
	m := NewAffine(ordinate.NewInterval(0, 10), 2, -1)
	x, ok := m.InverseAt(9)
	if !ok || math.Abs(float64(x-5)) > 1e-9 {
		t.Errorf("InverseAt(9) = (%v, %v), want (5, true)", x, ok)
	}
	if _, ok := m.InverseAt(1000); ok {
		t.Error("expected InverseAt to fail for an unattained value")
	}
}

func TestLinearMappingDelegatesToCurve(t *testing.T) {
	lin, err := curve.NewLinear([]curve.ControlPoint{{In: 0, Out: 0}, {In: 10, Out: 100}})
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}
	m := NewLinear(lin)
	got, err := m.OutputAt(5)
	if err != nil {
		t.Fatalf("OutputAt: %v", err)
	}
	if got != 50 {
		t.Errorf("OutputAt(5) = %v, want 50", got)
	}
}

func TestTopologyProjectOrdinateHalfOpenSelection(t *testing.T) {
	top := Topology{Mappings: []Mapping{
		NewAffine(ordinate.NewInterval(0, 5), 1, 0),
		NewAffine(ordinate.NewInterval(5, 10), 1, 100),
	}}
	got, err := top.ProjectOrdinate(5)
	if err != nil {
		t.Fatalf("ProjectOrdinate(5): %v", err)
	}
	if got != 105 {
		t.Errorf("ProjectOrdinate(5) = %v, want 105 (second mapping owns the boundary)", got)
	}
	if _, err := top.ProjectOrdinate(10); !errors.Is(err, projerr.ErrOutOfBounds) {
		t.Errorf("expected out of bounds past the topology's end, got %v", err)
	}
}

func TestTopologyInputAndOutputBounds(t *testing.T) {
	top := Topology{Mappings: []Mapping{
		NewAffine(ordinate.NewInterval(0, 5), 1, 0),
		NewAffine(ordinate.NewInterval(5, 10), 2, 0),
	}}
	ib := top.InputBounds()
	if ib.Start != 0 || ib.End != 10 {
		t.Errorf("InputBounds = %v, want [0,10)", ib)
	}
	ob := top.OutputBounds()
	if ob.Start != 0 || ob.End != 20 {
		t.Errorf("OutputBounds = %v, want [0,20)", ob)
	}
}
