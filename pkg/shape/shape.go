// Package shape builds closed triangle meshes from signed distance
// primitives using the github.com/deadsy/sdfx CAD library. It supplies
// test fixtures and sample geometry for the classifier: an SDF knows
// exactly which side of its surface a point is on, which gives an
// independent answer to compare winding-number results against.
package shape

import (
	"fmt"
	"math"

	"github.com/chazu/winding/pkg/mesh"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultCells controls marching cubes tessellation resolution along the
// longest axis of the shape's bounding box.
const DefaultCells = 64

// Solid wraps an sdf.SDF3.
type Solid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s Solid) BoundingBox() sdf.Box3 {
	return s.s.BoundingBox()
}

// Contains reports whether p lies inside the solid, and how far p is from
// the surface. Distances below the tessellation cell size make the answer
// unreliable as a reference for the tessellated mesh.
func (s Solid) Contains(p mesh.Point) (inside bool, distance float64) {
	d := s.s.Evaluate(p)
	return d < 0, math.Abs(d)
}

// Box creates a box with the given dimensions centered at the origin.
func Box(x, y, z float64) (Solid, error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return Solid{}, fmt.Errorf("shape: box: %w", err)
	}
	return Solid{s}, nil
}

// Sphere creates a sphere of the given radius centered at the origin.
func Sphere(radius float64) (Solid, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return Solid{}, fmt.Errorf("shape: sphere: %w", err)
	}
	return Solid{s}, nil
}

// Cylinder creates a cylinder along Z centered at the origin.
func Cylinder(height, radius float64) (Solid, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return Solid{}, fmt.Errorf("shape: cylinder: %w", err)
	}
	return Solid{s}, nil
}

// Union returns the union of two solids.
func Union(a, b Solid) Solid {
	return Solid{sdf.Union3D(a.s, b.s)}
}

// Difference returns the difference a - b.
func Difference(a, b Solid) Solid {
	return Solid{sdf.Difference3D(a.s, b.s)}
}

// Transform applies m to a solid.
func Transform(s Solid, m sdf.M44) Solid {
	return Solid{sdf.Transform3D(s.s, m)}
}

// Translate moves a solid by (x, y, z).
func Translate(s Solid, x, y, z float64) Solid {
	return Transform(s, sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))
}

// Rotate turns a solid about the X, then Y, then Z axis by the given
// angles in degrees.
func Rotate(s Solid, x, y, z float64) Solid {
	return Transform(s, sdf.RotateZ(sdf.DtoR(z)).Mul(sdf.RotateY(sdf.DtoR(y))).Mul(sdf.RotateX(sdf.DtoR(x))))
}

// ToMesh tessellates a solid with marching cubes. cells <= 0 selects
// DefaultCells. The mesh is returned outward-oriented.
//
// Vertices are stored at float32 precision. Marching cubes computes an edge
// vertex separately in each cell sharing the edge, and the copies can differ
// in the last bits; rounding them to float32 makes the copies identical
// again so that the mesh is closed exactly.
func ToMesh(s Solid, name string, cells int) *mesh.Mesh {
	if cells <= 0 {
		cells = DefaultCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s.s, renderer)

	tris := make([]mesh.Triangle, 0, len(triangles))
	for _, tri := range triangles {
		tris = append(tris, mesh.NewTriangle(single(tri[0]), single(tri[1]), single(tri[2])))
	}
	return mesh.New(name, tris).Outward()
}

// single rounds p to float32 precision.
func single(p v3.Vec) v3.Vec {
	return v3.Vec{X: float64(float32(p.X)), Y: float64(float32(p.Y)), Z: float64(float32(p.Z))}
}
