// Package mesh defines the triangle mesh consumed by the winding number
// classifier. A Mesh is built once, typically by the stl package, and is
// read-only afterwards: every operation that changes geometry returns a
// new Mesh.
package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Point is a location in R³.
type Point = v3.Vec

// Triangle is an ordered triple of vertices. The order encodes the
// orientation (right-hand rule). Normal is carried from the input file and
// is not used for classification.
type Triangle struct {
	V      [3]Point
	Normal Point
}

// NewTriangle returns a triangle with its normal derived from the vertex order.
func NewTriangle(a, b, c Point) Triangle {
	t := Triangle{V: [3]Point{a, b, c}}
	t.Normal = t.FaceNormal()
	return t
}

// FaceNormal returns the unit normal implied by the vertex order, or the
// zero vector for a degenerate triangle.
func (t Triangle) FaceNormal() Point {
	n := t.V[1].Sub(t.V[0]).Cross(t.V[2].Sub(t.V[0]))
	l := n.Length()
	if l == 0 {
		return Point{}
	}
	return n.DivScalar(l)
}

// Area returns the triangle area.
func (t Triangle) Area() float64 {
	return t.V[1].Sub(t.V[0]).Cross(t.V[2].Sub(t.V[0])).Length() / 2
}

// Reversed returns the triangle with opposite orientation.
func (t Triangle) Reversed() Triangle {
	return Triangle{
		V:      [3]Point{t.V[0], t.V[2], t.V[1]},
		Normal: t.Normal.Neg(),
	}
}

// Mesh is an ordered sequence of triangles. The triangles are assumed to
// form a closed, consistently oriented surface; this is not checked.
type Mesh struct {
	Name      string
	Triangles []Triangle
}

// New returns a mesh holding the given triangles.
func New(name string, triangles []Triangle) *Mesh {
	return &Mesh{Name: name, Triangles: triangles}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// Reversed returns a copy of the mesh with every triangle's orientation flipped.
func (m *Mesh) Reversed() *Mesh {
	out := make([]Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		out[i] = t.Reversed()
	}
	return &Mesh{Name: m.Name, Triangles: out}
}

// SignedVolume returns the volume enclosed by the mesh, computed from the
// signed tetrahedra formed with the origin. It is positive for a closed
// outward-oriented mesh and negative for an inward-oriented one.
func (m *Mesh) SignedVolume() float64 {
	var vol float64
	for _, t := range m.Triangles {
		vol += t.V[0].Dot(t.V[1].Cross(t.V[2]))
	}
	return vol / 6
}

// Outward returns the mesh unchanged if its signed volume is non-negative,
// otherwise a reversed copy. It fixes a globally inverted orientation only;
// mixed orientation is left as is.
func (m *Mesh) Outward() *Mesh {
	if m.SignedVolume() < 0 {
		return m.Reversed()
	}
	return m
}
