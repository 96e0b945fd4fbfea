package mesh

import (
	"github.com/spaghettifunk/meshtools/engine/math"
)

// ComputeAabb returns the axis aligned bounds of the positions, or false for
// a mesh without positions.
func ComputeAabb(m *Mesh) (math.Extents3D, bool) {
	var ext math.Extents3D
	found := false
	for _, p := range Positions(m) {
		if !found {
			ext = math.Extents3D{Min: p, Max: p}
			found = true
			continue
		}
		ext = ext.Grow(p)
	}
	return ext, found
}

// ComputeFlatNormals writes the face normal of every triangle to its three
// vertices, creating the normal channel if needed. Vertices shared between
// triangles keep the normal of the last triangle that references them.
// Only triangle lists are supported; other topologies are left untouched.
func ComputeFlatNormals(m *Mesh) {
	if m.topology != TriangleList {
		return
	}
	positions := AttributeAs[Float32x3Values](m, AttributePosition)
	if len(positions) == 0 {
		return
	}

	normals := make(Float32x3Values, len(positions))
	triangle := func(i0, i1, i2 uint32) {
		if int(max(i0, i1, i2)) >= len(positions) {
			return
		}
		n := math.FaceNormal(positions[i0], positions[i1], positions[i2])
		normals[i0] = n
		normals[i1] = n
		normals[i2] = n
	}

	if ix := m.Indices(); ix != nil {
		for i := 0; i+2 < ix.Len(); i += 3 {
			triangle(ix.At(i), ix.At(i+1), ix.At(i+2))
		}
	} else {
		for i := 0; i+2 < len(positions); i += 3 {
			triangle(uint32(i), uint32(i+1), uint32(i+2))
		}
	}

	// Both values carry the registered format, so this cannot fail.
	_ = m.InsertAttribute(AttributeNormal, normals)
}
