package mesh

import (
	"github.com/spaghettifunk/meshtools/engine/math"
)

// WithTransform returns a copy of m with the world matrix of t applied.
// See WithMatrix.
func WithTransform(m *Mesh, t *math.Transform) (*Mesh, bool) {
	return WithMatrix(m, t.ComputeWorld())
}

// WithMatrix returns a copy of m moved by the affine matrix mat. Positions
// get the full transform, normals the inverse transpose of its 3x3 part and
// are renormalized (a degenerate normal becomes exactly zero). Every other
// channel, tangents included, and the index buffer are copied unchanged.
//
// The second result is false, and the mesh nil, only when m has no Float32x3
// position channel.
func WithMatrix(m *Mesh, mat math.Mat4) (*Mesh, bool) {
	if values, ok := m.Attribute(AttributePosition); !ok || values.Format() != VertexFormatFloat32x3 {
		return nil, false
	}

	out := m.Clone()
	for _, p := range PositionsMut(out) {
		*p = math.TransformPoint3(mat, *p)
	}

	normalMatrix := math.NormalMatrix(mat)
	for _, n := range NormalsMut(out) {
		*n = math.TransformNormal(normalMatrix, *n)
	}

	return out, true
}
