package winding

import (
	"math"

	"github.com/chazu/winding/pkg/mesh"
)

// Threshold is the accumulated angle at or above which a point is inside:
// one full revolution, 2π rounded to float64. It sits 2.45e-16 below the
// exact revolution; the extended accumulation keeps interior sums of a
// closed mesh on the inside of the comparison.
const Threshold float64 = 2 * math.Pi

// Sum is an accumulated winding angle, Σθ over the triangles of a mesh.
// For a closed outward-oriented mesh it is 2π inside and 0 outside.
type Sum struct {
	v xfloat
}

// Float64 returns the sum rounded to float64.
func (s Sum) Float64() float64 {
	return s.v.hi + s.v.lo
}

// Turns returns the sum in revolutions, the generalized winding number.
func (s Sum) Turns() float64 {
	return s.Float64() / Threshold
}

// Inside applies the single inclusive comparison S >= Threshold.
func (s Sum) Inside() bool {
	return s.v.atLeast(Threshold)
}

// turns folds per-triangle angles together. The angles are added as the
// argument of a running complex product Π(den + i·num) kept in
// double-double, and the whole revolutions lost to the argument's branch
// cut are recovered from a float64 running sum of the same angles.
type turns struct {
	re, im xfloat
	coarse float64
}

func newTurns() turns {
	return turns{re: xfloat{hi: 1}}
}

// add folds in one triangle's angle atan2(num, den).
func (t *turns) add(num, den xfloat) {
	var theta float64
	if !num.isZero() || !den.isZero() {
		theta = math.Atan2(num.hi, den.hi)

		e := exponent(num.hi, den.hi)
		num, den = num.ldexp(-e), den.ldexp(-e)
		re := t.re.mul(den).sub(t.im.mul(num))
		im := t.re.mul(num).add(t.im.mul(den))

		e = exponent(re.hi, im.hi)
		t.re, t.im = re.ldexp(-e), im.ldexp(-e)
	}
	t.coarse += theta
}

// sum resolves the product's argument into the total angle.
func (t *turns) sum() Sum {
	r := math.Atan2(t.im.hi, t.re.hi)
	k := math.Round((t.coarse - r) / Threshold)
	return Sum{v: twoPi.mulFloat(k).add(xfloat{hi: r})}
}

// exponent returns the binary exponent of the larger magnitude of a and b.
func exponent(a, b float64) int {
	_, e := math.Frexp(math.Max(math.Abs(a), math.Abs(b)))
	return e
}

// Accumulate returns the winding angle of m at x, summed in extended
// precision. It is a pure function of its arguments.
func Accumulate(m *mesh.Mesh, x mesh.Point) Sum {
	acc := newTurns()
	for _, t := range m.Triangles {
		acc.add(halfAngle(t, x))
	}
	return acc.sum()
}

// WindingNumber returns the plain float64 sum of SolidAngle over m at x.
// It is the naive reference accumulation: close to 2π inside and 0
// outside, but its rounding noise straddles Threshold for interior points,
// so classification uses Accumulate.
func WindingNumber(m *mesh.Mesh, x mesh.Point) float64 {
	var s float64
	for _, t := range m.Triangles {
		s += SolidAngle(t, x)
	}
	return s
}

// Inside reports whether x lies inside m using single-point evaluation.
func Inside(m *mesh.Mesh, x mesh.Point) bool {
	return Accumulate(m, x).Inside()
}
