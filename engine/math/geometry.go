package math

import "github.com/go-gl/mathgl/mgl32"

// FaceNormal returns the unit normal of the counter-clockwise triangle p0, p1, p2.
// Degenerate triangles produce the zero vector.
func FaceNormal(p0, p1, p2 Vec3) Vec3 {
	edge1 := p1.Sub(p0)
	edge2 := p2.Sub(p0)

	// NOTE: This just generates a face normal. Smoothing out should be done in a separate pass if desired.
	return NormalizeOrZero(edge1.Cross(edge2))
}

// Vec3Compare reports whether |a[i]-b[i]| <= tolerance for every component.
func Vec3Compare(a, b Vec3, tolerance float32) bool {
	return withinTolerance(a[:], b[:], tolerance)
}

// Mat4Compare reports whether |a[i]-b[i]| <= tolerance for every element.
func Mat4Compare(a, b Mat4, tolerance float32) bool {
	return withinTolerance(a[:], b[:], tolerance)
}

// FloatEqual reports whether a and b differ by at most K_VERTEX_EPSILON.
func FloatEqual(a, b float32) bool {
	return mgl32.Abs(a-b) <= K_VERTEX_EPSILON
}

func withinTolerance(a, b []float32, tolerance float32) bool {
	for i := range a {
		if mgl32.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}
