// Package winding classifies points as inside or outside a closed triangle
// mesh using the generalized winding number.
//
// Every triangle contributes half the signed solid angle it subtends at the
// query point (SolidAngle). The contributions are summed (Accumulate) and
// the sum is compared once against Threshold, one full revolution. A point
// inside a closed outward-oriented mesh accumulates 2π and a point outside
// accumulates 0. The comparison is inclusive and has no slack: a gap in the
// surface can pull interior sums just below Threshold. Callers handling meshes
// that are not exactly closed can apply their own tolerance to Sum.Turns.
//
// Points near the surface, and points coinciding with a vertex, are
// inherently ambiguous and are not snapped to either side. Reversing the
// orientation of every triangle negates the sum, so an inverted mesh
// classifies every point as outside. Very large coordinates relative to the
// mesh size lose precision in the translation A-x; normalize coordinates
// first when that matters.
package winding
