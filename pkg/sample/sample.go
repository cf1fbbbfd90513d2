// Package sample draws reproducible point sets for classification runs.
package sample

import (
	"math/rand/v2"

	"github.com/chazu/winding/pkg/mesh"
	"github.com/deadsy/sdfx/sdf"
)

// Uniform returns n points drawn uniformly from box. The same seed always
// yields the same points.
func Uniform(box sdf.Box3, n int, seed uint64) []mesh.Point {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	size := box.Size()
	points := make([]mesh.Point, n)
	for i := range points {
		points[i] = mesh.Point{
			X: box.Min.X + rng.Float64()*size.X,
			Y: box.Min.Y + rng.Float64()*size.Y,
			Z: box.Min.Z + rng.Float64()*size.Z,
		}
	}
	return points
}

// Filter returns the points whose flag in inside is set. It panics if the
// slices differ in length.
func Filter(points []mesh.Point, inside []bool) []mesh.Point {
	if len(points) != len(inside) {
		panic("sample: points and flags differ in length")
	}
	var out []mesh.Point
	for i, p := range points {
		if inside[i] {
			out = append(out, p)
		}
	}
	return out
}
