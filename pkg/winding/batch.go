package winding

import (
	"math"

	"github.com/chazu/winding/pkg/mesh"
	"gonum.org/v1/gonum/floats"
)

// batch evaluates one triangle at a time against every query point, with
// the points held as structure-of-arrays. For each point it performs the
// same arithmetic in the same order as halfAngle and Accumulate, so the
// sums it produces are identical to single-point evaluation.
type batch struct {
	xs, ys, zs []float64

	// translated vertices A-x, B-x, C-x
	ax, ay, az []float64
	bx, by, bz []float64
	cx, cy, cz []float64

	la, lb, lc []xfloat
	ab, bc, ca []xfloat
	num, den   []xfloat

	acc []turns
}

func newBatch(points []mesh.Point) *batch {
	n := len(points)
	col := func() []float64 { return make([]float64, n) }
	xcol := func() []xfloat { return make([]xfloat, n) }

	b := &batch{
		xs: col(), ys: col(), zs: col(),
		ax: col(), ay: col(), az: col(),
		bx: col(), by: col(), bz: col(),
		cx: col(), cy: col(), cz: col(),
		la: xcol(), lb: xcol(), lc: xcol(),
		ab: xcol(), bc: xcol(), ca: xcol(),
		num: xcol(), den: xcol(),
		acc: make([]turns, n),
	}
	for i, p := range points {
		b.xs[i], b.ys[i], b.zs[i] = p.X, p.Y, p.Z
		b.acc[i] = newTurns()
	}
	return b
}

// translateTo sets dst to v - s for every element: (-s) + v is bitwise
// equal to v - s.
func translateTo(dst []float64, v float64, s []float64) {
	floats.ScaleTo(dst, -1, s)
	floats.AddConst(v, dst)
}

func (b *batch) translate(t mesh.Triangle) {
	translateTo(b.ax, t.V[0].X, b.xs)
	translateTo(b.ay, t.V[0].Y, b.ys)
	translateTo(b.az, t.V[0].Z, b.zs)
	translateTo(b.bx, t.V[1].X, b.xs)
	translateTo(b.by, t.V[1].Y, b.ys)
	translateTo(b.bz, t.V[1].Z, b.zs)
	translateTo(b.cx, t.V[2].X, b.xs)
	translateTo(b.cy, t.V[2].Y, b.ys)
	translateTo(b.cz, t.V[2].Z, b.zs)
}

func normTo(dst []xfloat, x, y, z []float64) {
	for i := range dst {
		dst[i] = norm3(x[i], y[i], z[i])
	}
}

func dotTo(dst []xfloat, ux, uy, uz, vx, vy, vz []float64) {
	for i := range dst {
		dst[i] = dot3(ux[i], uy[i], uz[i], vx[i], vy[i], vz[i])
	}
}

// detTo writes det[a b c] for every point: three products added, three
// subtracted.
func (b *batch) detTo(dst []xfloat) {
	for i := range dst {
		d := exact(b.ax[i], b.by[i]).mulFloat(b.cz[i])
		d = d.add(exact(b.bx[i], b.cy[i]).mulFloat(b.az[i]))
		d = d.add(exact(b.cx[i], b.ay[i]).mulFloat(b.bz[i]))
		d = d.sub(exact(b.cx[i], b.by[i]).mulFloat(b.az[i]))
		d = d.sub(exact(b.bx[i], b.ay[i]).mulFloat(b.cz[i]))
		d = d.sub(exact(b.ax[i], b.cy[i]).mulFloat(b.bz[i]))
		dst[i] = d
	}
}

// add folds one triangle into every point's accumulator.
func (b *batch) add(t mesh.Triangle) {
	b.translate(t)

	b.detTo(b.num)

	normTo(b.la, b.ax, b.ay, b.az)
	normTo(b.lb, b.bx, b.by, b.bz)
	normTo(b.lc, b.cx, b.cy, b.cz)
	dotTo(b.ab, b.ax, b.ay, b.az, b.bx, b.by, b.bz)
	dotTo(b.bc, b.bx, b.by, b.bz, b.cx, b.cy, b.cz)
	dotTo(b.ca, b.cx, b.cy, b.cz, b.ax, b.ay, b.az)
	for i := range b.den {
		b.den[i] = combine(b.la[i], b.lb[i], b.lc[i], b.ab[i], b.bc[i], b.ca[i])
	}

	for i := range b.acc {
		b.acc[i].add(b.num[i], b.den[i])
	}
}

func (b *batch) sums(dst []Sum) {
	for i := range b.acc {
		dst[i] = b.acc[i].sum()
	}
}

// accumulateBatch writes the winding angle of m at each point to dst.
func accumulateBatch(m *mesh.Mesh, points []mesh.Point, dst []Sum) {
	if len(points) == 0 {
		return
	}
	b := newBatch(points)
	for _, t := range m.Triangles {
		b.add(t)
	}
	b.sums(dst)
}

// WindingNumbers is the batched form of WindingNumber: plain float64 sums
// of SolidAngle for every point, computed with array arithmetic.
func WindingNumbers(m *mesh.Mesh, points []mesh.Point) []float64 {
	n := len(points)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	b := newBatch(points)

	det := make([]float64, n)
	term := make([]float64, n)
	la, lb, lc := make([]float64, n), make([]float64, n), make([]float64, n)
	k := make([]float64, n)
	theta := make([]float64, n)

	norm := func(dst, x, y, z []float64) {
		for i := range dst {
			dst[i] = math.Sqrt(x[i]*x[i] + y[i]*y[i] + z[i]*z[i])
		}
	}
	// product3 sets dst to x*y*z element-wise.
	product3 := func(dst, x, y, z []float64) {
		floats.MulTo(dst, x, y)
		floats.Mul(dst, z)
	}
	// dotScaled adds s*(u·v) to dst.
	dotScaled := func(dst, s, ux, uy, uz, vx, vy, vz []float64) {
		for i := range dst {
			dst[i] += s[i] * (ux[i]*vx[i] + uy[i]*vy[i] + uz[i]*vz[i])
		}
	}

	for _, t := range m.Triangles {
		b.translate(t)

		product3(det, b.ax, b.by, b.cz)
		product3(term, b.bx, b.cy, b.az)
		floats.Add(det, term)
		product3(term, b.cx, b.ay, b.bz)
		floats.Add(det, term)
		product3(term, b.cx, b.by, b.az)
		floats.Sub(det, term)
		product3(term, b.bx, b.ay, b.cz)
		floats.Sub(det, term)
		product3(term, b.ax, b.cy, b.bz)
		floats.Sub(det, term)

		norm(la, b.ax, b.ay, b.az)
		norm(lb, b.bx, b.by, b.bz)
		norm(lc, b.cx, b.cy, b.cz)
		product3(k, la, lb, lc)
		dotScaled(k, lc, b.ax, b.ay, b.az, b.bx, b.by, b.bz)
		dotScaled(k, la, b.bx, b.by, b.bz, b.cx, b.cy, b.cz)
		dotScaled(k, lb, b.cx, b.cy, b.cz, b.ax, b.ay, b.az)

		for i := range theta {
			theta[i] = math.Atan2(det[i], k[i])
		}
		floats.Add(out, theta)
	}
	return out
}
