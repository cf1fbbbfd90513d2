package winding

import "math"

// xfloat is a double-double value hi+lo with |lo| <= ulp(hi)/2, giving
// roughly 106 bits of significand. It is built on error-free transforms
// (twoSum, twoProd via math.FMA) and is the widest floating type the
// classifier can use without leaving hardware arithmetic.
type xfloat struct {
	hi, lo float64
}

// twoPi is 2π in double-double. twoPi.hi equals Threshold.
var twoPi = xfloat{hi: 6.283185307179586, lo: 2.4492935982947064e-16}

func twoSum(a, b float64) (s, e float64) {
	s = a + b
	bb := s - a
	e = (a - (s - bb)) + (b - bb)
	return s, e
}

func quickTwoSum(a, b float64) (s, e float64) {
	s = a + b
	e = b - (s - a)
	return s, e
}

func twoProd(a, b float64) (p, e float64) {
	p = a * b
	e = math.FMA(a, b, -p)
	return p, e
}

// exact returns the product a*b without rounding.
func exact(a, b float64) xfloat {
	p, e := twoProd(a, b)
	return xfloat{p, e}
}

func (x xfloat) add(y xfloat) xfloat {
	s, e := twoSum(x.hi, y.hi)
	t, f := twoSum(x.lo, y.lo)
	e += t
	s, e = quickTwoSum(s, e)
	e += f
	s, e = quickTwoSum(s, e)
	return xfloat{s, e}
}

func (x xfloat) neg() xfloat {
	return xfloat{-x.hi, -x.lo}
}

func (x xfloat) sub(y xfloat) xfloat {
	return x.add(y.neg())
}

func (x xfloat) mul(y xfloat) xfloat {
	p, e := twoProd(x.hi, y.hi)
	e += x.hi*y.lo + x.lo*y.hi
	p, e = quickTwoSum(p, e)
	return xfloat{p, e}
}

func (x xfloat) mulFloat(f float64) xfloat {
	p, e := twoProd(x.hi, f)
	e += x.lo * f
	p, e = quickTwoSum(p, e)
	return xfloat{p, e}
}

// sqrt returns the square root using one Newton correction on the float64
// estimate. Non-positive inputs yield zero.
func (x xfloat) sqrt() xfloat {
	if x.hi <= 0 {
		return xfloat{}
	}
	s := math.Sqrt(x.hi)
	p, e := twoProd(s, s)
	r := ((x.hi - p) - e + x.lo) / (2 * s)
	s, r = quickTwoSum(s, r)
	return xfloat{s, r}
}

// ldexp scales x by 2**n. The scaling is exact unless it under- or overflows.
func (x xfloat) ldexp(n int) xfloat {
	return xfloat{math.Ldexp(x.hi, n), math.Ldexp(x.lo, n)}
}

func (x xfloat) isZero() bool {
	return x.hi == 0
}

// atLeast reports whether x >= f.
func (x xfloat) atLeast(f float64) bool {
	return x.hi > f || (x.hi == f && x.lo >= 0)
}
