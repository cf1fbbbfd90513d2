package winding

import (
	"math"

	"github.com/chazu/winding/pkg/mesh"
)

// SolidAngle returns half the signed solid angle that triangle t subtends
// at x, in radians, evaluated in float64:
//
//	a, b, c = A-x, B-x, C-x
//	θ = atan2(det[a b c], |a||b||c| + |c|(a·b) + |a|(b·c) + |b|(c·a))
//
// θ is positive when x lies behind the triangle, opposite its right-hand
// normal, so the angles of a closed outward-oriented mesh sum to 2π at an
// interior point and to 0 outside. atan2(0, 0) is 0, which covers degenerate triangles and
// query points sitting on a vertex.
func SolidAngle(t mesh.Triangle, x mesh.Point) float64 {
	a := t.V[0].Sub(x)
	b := t.V[1].Sub(x)
	c := t.V[2].Sub(x)

	num := a.X*b.Y*c.Z + b.X*c.Y*a.Z + c.X*a.Y*b.Z -
		c.X*b.Y*a.Z - b.X*a.Y*c.Z - a.X*c.Y*b.Z

	la, lb, lc := a.Length(), b.Length(), c.Length()
	den := la*lb*lc + lc*a.Dot(b) + la*b.Dot(c) + lb*c.Dot(a)

	return math.Atan2(num, den)
}

// halfAngle is the extended-precision form of SolidAngle. It returns the
// numerator and denominator of the atan2 argument in double-double; the
// translated vertices themselves stay float64, so a vertex shared by two
// triangles translates identically in both.
func halfAngle(t mesh.Triangle, x mesh.Point) (num, den xfloat) {
	a := t.V[0].Sub(x)
	b := t.V[1].Sub(x)
	c := t.V[2].Sub(x)
	return det3(a, b, c), denominator(a, b, c)
}

// det3 is the scalar triple product a·(b×c) by cofactor expansion.
func det3(a, b, c mesh.Point) xfloat {
	d := exact(a.X, b.Y).mulFloat(c.Z)
	d = d.add(exact(b.X, c.Y).mulFloat(a.Z))
	d = d.add(exact(c.X, a.Y).mulFloat(b.Z))
	d = d.sub(exact(c.X, b.Y).mulFloat(a.Z))
	d = d.sub(exact(b.X, a.Y).mulFloat(c.Z))
	d = d.sub(exact(a.X, c.Y).mulFloat(b.Z))
	return d
}

func dot3(ax, ay, az, bx, by, bz float64) xfloat {
	return exact(ax, bx).add(exact(ay, by)).add(exact(az, bz))
}

func norm3(x, y, z float64) xfloat {
	return dot3(x, y, z, x, y, z).sqrt()
}

func denominator(a, b, c mesh.Point) xfloat {
	la := norm3(a.X, a.Y, a.Z)
	lb := norm3(b.X, b.Y, b.Z)
	lc := norm3(c.X, c.Y, c.Z)
	return combine(la, lb, lc,
		dot3(a.X, a.Y, a.Z, b.X, b.Y, b.Z),
		dot3(b.X, b.Y, b.Z, c.X, c.Y, c.Z),
		dot3(c.X, c.Y, c.Z, a.X, a.Y, a.Z))
}

// combine assembles |a||b||c| + |c|(a·b) + |a|(b·c) + |b|(c·a).
func combine(la, lb, lc, ab, bc, ca xfloat) xfloat {
	d := la.mul(lb).mul(lc)
	d = d.add(lc.mul(ab))
	d = d.add(la.mul(bc))
	d = d.add(lb.mul(ca))
	return d
}
