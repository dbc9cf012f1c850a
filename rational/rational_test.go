package rational

import "testing"

func TestNewNormalizes(t *testing.T) {
	tests := []struct {
		name     string
		num      int32
		den      uint32
		wantNum  int32
		wantDen  uint32
	}{
		{"already reduced", 3, 4, 3, 4},
		{"reducible", 6, 8, 3, 4},
		{"negative numerator", -6, 8, -3, 4},
		{"zero numerator", 0, 5, 0, 1},
		{"integer rate", 24, 1, 24, 1},
		{"ntsc-style rate", 24000, 1001, 24000, 1001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.num, tt.den)
			if got.Num != tt.wantNum || got.Den != tt.wantDen {
				t.Errorf("New(%d, %d) = %d/%d, want %d/%d", tt.num, tt.den, got.Num, got.Den, tt.wantNum, tt.wantDen)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	rs := []Rational{New(6, 8), New(-9, 12), FromInt(5), Zero, {Num: 1, Den: 0}, {Num: -1, Den: 0}}
	for _, r := range rs {
		once := r.Normalize()
		twice := once.Normalize()
		if !once.Equal(twice) {
			t.Errorf("normalize not idempotent for %v: once=%v twice=%v", r, once, twice)
		}
	}
}

func TestInfinityAndInvalid(t *testing.T) {
	posInf := Rational{Num: 5, Den: 0}.Normalize()
	if !posInf.IsInf() || posInf.Sign() != 1 {
		t.Errorf("expected +inf, got %v", posInf)
	}
	negInf := Rational{Num: -5, Den: 0}.Normalize()
	if !negInf.IsInf() || negInf.Sign() != -1 {
		t.Errorf("expected -inf, got %v", negInf)
	}
	invalid := Rational{Num: 0, Den: 0}.Normalize()
	if !invalid.IsInvalid() {
		t.Errorf("expected invalid, got %v", invalid)
	}
}

func TestAddSub(t *testing.T) {
	a := New(1, 2)
	b := New(1, 3)
	sum, err := a.Add(b)
	if err != nil {
		t.Fatal(err)
	}
	if want := New(5, 6); !sum.Equivalent(want) {
		t.Errorf("1/2 + 1/3 = %v, want %v", sum, want)
	}
	diff, err := a.Sub(b)
	if err != nil {
		t.Fatal(err)
	}
	if want := New(1, 6); !diff.Equivalent(want) {
		t.Errorf("1/2 - 1/3 = %v, want %v", diff, want)
	}
}

func TestMulDiv(t *testing.T) {
	a := New(2, 3)
	b := New(3, 4)
	prod, err := a.Mul(b)
	if err != nil {
		t.Fatal(err)
	}
	if want := New(1, 2); !prod.Equivalent(want) {
		t.Errorf("2/3 * 3/4 = %v, want %v", prod, want)
	}
	quot, err := a.Div(b)
	if err != nil {
		t.Fatal(err)
	}
	if want := New(8, 9); !quot.Equivalent(want) {
		t.Errorf("2/3 / 3/4 = %v, want %v", quot, want)
	}
}

func TestDivByZero(t *testing.T) {
	_, err := New(1, 2).Div(Zero)
	if err == nil {
		t.Fatal("expected division-by-zero error")
	}
}

func TestLess(t *testing.T) {
	tests := []struct {
		a, b Rational
		want bool
	}{
		{New(1, 2), New(1, 3), false},
		{New(1, 3), New(1, 2), true},
		{New(-1, 2), New(1, 3), true},
		{New(1, 2), New(1, 2), false},
		{New(24000, 1001), New(24, 1), true},
		{New(24, 1), New(24000, 1001), false},
	}
	for _, tt := range tests {
		if got := tt.a.Less(tt.b); got != tt.want {
			t.Errorf("%v.Less(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLessInfinity(t *testing.T) {
	posInf := Rational{Num: 1, Den: 0}
	negInf := Rational{Num: -1, Den: 0}
	finite := New(5, 1)
	if !negInf.Less(finite) {
		t.Error("-inf should be less than any finite value")
	}
	if !finite.Less(posInf) {
		t.Error("any finite value should be less than +inf")
	}
	if negInf.Less(negInf) {
		t.Error("-inf should not be less than itself")
	}
}
