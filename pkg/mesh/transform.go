package mesh

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
)

// Transform returns a copy of the mesh with every vertex mapped through m.
// A vertex shared by several triangles maps to the same point in each, so a
// closed mesh stays closed. Normals are recomputed from the new vertices.
func (m *Mesh) Transform(mat sdf.M44) *Mesh {
	out := make([]Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		out[i] = NewTriangle(
			mat.MulPosition(t.V[0]),
			mat.MulPosition(t.V[1]),
			mat.MulPosition(t.V[2]),
		)
	}
	return &Mesh{Name: m.Name, Triangles: out}
}

// Bounds returns the axis-aligned bounding box of the mesh vertices.
// An empty mesh has a zero box.
func (m *Mesh) Bounds() sdf.Box3 {
	if m.IsEmpty() {
		return sdf.Box3{}
	}
	lo := Point{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := Point{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, t := range m.Triangles {
		for _, v := range t.V {
			lo = lo.Min(v)
			hi = hi.Max(v)
		}
	}
	return sdf.Box3{Min: lo, Max: hi}
}

// Permuted returns a copy of the mesh with triangles reordered so that
// triangle i of the result is triangle perm[i] of m.
func (m *Mesh) Permuted(perm []int) *Mesh {
	out := make([]Triangle, len(perm))
	for i, j := range perm {
		out[i] = m.Triangles[j]
	}
	return &Mesh{Name: m.Name, Triangles: out}
}
