package winding

import (
	"math"
	"testing"
)

func TestTwoProdIsExact(t *testing.T) {
	a := 1 + math.Ldexp(1, -30)
	p, e := twoProd(a, a)
	// (1+2^-30)^2 = 1 + 2^-29 + 2^-60; the last term does not fit in p.
	if p != 1+math.Ldexp(1, -29) {
		t.Errorf("p = %v", p)
	}
	if e != math.Ldexp(1, -60) {
		t.Errorf("e = %v, want 2^-60", e)
	}
}

func TestTwoSumIsExact(t *testing.T) {
	s, e := twoSum(1, math.Ldexp(1, -60))
	if s != 1 || e != math.Ldexp(1, -60) {
		t.Errorf("twoSum(1, 2^-60) = (%v, %v)", s, e)
	}
}

func TestXfloatSqrt(t *testing.T) {
	r := xfloat{hi: 2}.sqrt()
	if r.hi != math.Sqrt2 {
		t.Errorf("sqrt(2).hi = %v, want %v", r.hi, math.Sqrt2)
	}
	sq := r.mul(r)
	if sq.hi != 2 || math.Abs(sq.lo) > 1e-30 {
		t.Errorf("sqrt(2)^2 = %v + %v, want 2", sq.hi, sq.lo)
	}
	if z := (xfloat{}).sqrt(); !z.isZero() {
		t.Errorf("sqrt(0) = %v", z)
	}
	if z := (xfloat{hi: -1}).sqrt(); !z.isZero() {
		t.Errorf("sqrt(-1) = %v, want 0", z)
	}
}

func TestXfloatAddKeepsLowBits(t *testing.T) {
	x := xfloat{hi: 1}.add(xfloat{hi: math.Ldexp(1, -70)})
	y := x.sub(xfloat{hi: 1})
	if y.hi != math.Ldexp(1, -70) {
		t.Errorf("(1 + 2^-70) - 1 = %v, want 2^-70", y.hi)
	}
}

func TestXfloatLdexp(t *testing.T) {
	x := xfloat{hi: 3, lo: math.Ldexp(1, -60)}.ldexp(-4)
	if x.hi != 3.0/16 || x.lo != math.Ldexp(1, -64) {
		t.Errorf("ldexp = %v", x)
	}
}

func TestTwoPiMatchesThreshold(t *testing.T) {
	if twoPi.hi != Threshold {
		t.Fatalf("twoPi.hi = %v, Threshold = %v", twoPi.hi, Threshold)
	}
	if Threshold != 6.283185307179586 {
		t.Errorf("Threshold = %.17g", Threshold)
	}
	if twoPi.lo <= 0 {
		t.Errorf("twoPi.lo = %v, float64 2π should round down", twoPi.lo)
	}
}

func TestAtLeast(t *testing.T) {
	tests := []struct {
		name string
		x    xfloat
		want bool
	}{
		{"equal", xfloat{hi: Threshold}, true},
		{"equal with positive tail", xfloat{hi: Threshold, lo: 1e-20}, true},
		{"equal with negative tail", xfloat{hi: Threshold, lo: -1e-20}, false},
		{"above", xfloat{hi: 7}, true},
		{"below", xfloat{hi: 6}, false},
		{"exact revolution", twoPi, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.x.atLeast(Threshold); got != tt.want {
				t.Errorf("atLeast() = %v, want %v", got, tt.want)
			}
		})
	}
}
