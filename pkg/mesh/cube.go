package mesh

// Cube returns a closed, outward-oriented mesh of an axis-aligned cube with
// the given side length, centered at the origin. Each face is split into two
// triangles.
func Cube(side float64) *Mesh {
	h := side / 2
	p := func(x, y, z float64) Point { return Point{X: x * h, Y: y * h, Z: z * h} }

	tris := []Triangle{
		// +Y
		NewTriangle(p(-1, 1, -1), p(1, 1, 1), p(1, 1, -1)),
		NewTriangle(p(-1, 1, -1), p(-1, 1, 1), p(1, 1, 1)),
		// -X
		NewTriangle(p(-1, -1, -1), p(-1, -1, 1), p(-1, 1, -1)),
		NewTriangle(p(-1, -1, 1), p(-1, 1, 1), p(-1, 1, -1)),
		// -Y
		NewTriangle(p(-1, -1, -1), p(1, -1, -1), p(-1, -1, 1)),
		NewTriangle(p(1, -1, -1), p(1, -1, 1), p(-1, -1, 1)),
		// +X
		NewTriangle(p(1, -1, -1), p(1, 1, -1), p(1, 1, 1)),
		NewTriangle(p(1, -1, -1), p(1, 1, 1), p(1, -1, 1)),
		// +Z
		NewTriangle(p(-1, -1, 1), p(1, -1, 1), p(1, 1, 1)),
		NewTriangle(p(-1, -1, 1), p(1, 1, 1), p(-1, 1, 1)),
		// -Z
		NewTriangle(p(-1, -1, -1), p(-1, 1, -1), p(1, -1, -1)),
		NewTriangle(p(1, -1, -1), p(-1, 1, -1), p(1, 1, -1)),
	}
	return New("cube", tris)
}
