package ordinate

import "testing"

func TestIntervalContains(t *testing.T) {
	iv := NewInterval(1, 3)
	tests := []struct {
		t    Ordinate
		want bool
	}{
		{0, false},
		{1, true},
		{2, true},
		{3, false}, // half-open: upper bound excluded
		{4, false},
	}
	for _, tt := range tests {
		if got := iv.Contains(tt.t); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestIntervalIntersect(t *testing.T) {
	a := NewInterval(0, 10)
	b := NewInterval(5, 15)
	got := a.Intersect(b)
	want := NewInterval(5, 10)
	if got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}

	c := NewInterval(20, 30)
	if got := a.Intersect(c); !got.IsEmpty() {
		t.Errorf("expected empty intersection, got %v", got)
	}
}

func TestIntervalDuration(t *testing.T) {
	iv := NewInterval(2, 7)
	if iv.Duration() != 5 {
		t.Errorf("Duration = %v, want 5", iv.Duration())
	}
}

func TestIntervalAdditiveInverse(t *testing.T) {
	iv := NewInterval(2, 5)
	inv := iv.AdditiveInverse()
	want := NewInterval(-5, -2)
	if inv != want {
		t.Errorf("AdditiveInverse = %v, want %v", inv, want)
	}
}

func TestIntervalUnion(t *testing.T) {
	a := NewInterval(0, 5)
	b := NewInterval(10, 20)
	got := a.Union(b)
	want := NewInterval(0, 20)
	if got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
}

func TestNewIntervalPanicsOnInverted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for end < start")
		}
	}()
	NewInterval(5, 1)
}
