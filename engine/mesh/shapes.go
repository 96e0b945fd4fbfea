package mesh

import (
	stdmath "math"

	"github.com/spaghettifunk/meshtools/engine/core"
	"github.com/spaghettifunk/meshtools/engine/math"
)

// newTriangleMesh builds a position/normal/uv triangle list. The channels
// always have the formats InsertAttribute expects, so errors cannot happen.
func newTriangleMesh(positions Float32x3Values, normals Float32x3Values, uvs Float32x2Values, indices Indices) *Mesh {
	m := New(TriangleList)
	m.attributes = append(m.attributes,
		attributeData{id: AttributePosition, values: positions},
		attributeData{id: AttributeNormal, values: normals},
		attributeData{id: AttributeUV0, values: uvs},
	)
	m.indices = indices
	return m
}

// Cube returns an 8 vertex cube centered at the origin. Corners are shared
// between faces, so normals point along the corner diagonals.
func Cube(size float32) *Mesh {
	if size == 0 {
		core.LogWarn("Cube size must be nonzero. Defaulting to one.")
		size = 1.0
	}
	h := size * 0.5
	positions := Float32x3Values{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}
	normals := make(Float32x3Values, len(positions))
	uvs := make(Float32x2Values, len(positions))
	for i, p := range positions {
		normals[i] = math.NormalizeOrZero(p)
		uvs[i] = [2]float32{sign01(p[0]), sign01(p[1])}
	}
	indices := IndicesU32{
		4, 5, 6, 4, 6, 7, // front
		1, 0, 3, 1, 3, 2, // back
		0, 4, 7, 0, 7, 3, // left
		5, 1, 2, 5, 2, 6, // right
		7, 6, 2, 7, 2, 3, // top
		0, 1, 5, 0, 5, 4, // bottom
	}
	return newTriangleMesh(positions, normals, uvs, indices)
}

func sign01(v float32) float32 {
	if v < 0 {
		return 0
	}
	return 1
}

// Box returns a 24 vertex box with flat faces. tileX and tileY scale the
// texture coordinates of every face.
func Box(width, height, depth, tileX, tileY float32) *Mesh {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1.0
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	minX, maxX := -width*0.5, width*0.5
	minY, maxY := -height*0.5, height*0.5
	minZ, maxZ := -depth*0.5, depth*0.5

	faces := [6]struct {
		corners [4][3]float32
		normal  [3]float32
	}{
		{[4][3]float32{{minX, minY, maxZ}, {maxX, maxY, maxZ}, {minX, maxY, maxZ}, {maxX, minY, maxZ}}, [3]float32{0, 0, 1}},  // front
		{[4][3]float32{{maxX, minY, minZ}, {minX, maxY, minZ}, {maxX, maxY, minZ}, {minX, minY, minZ}}, [3]float32{0, 0, -1}}, // back
		{[4][3]float32{{minX, minY, minZ}, {minX, maxY, maxZ}, {minX, maxY, minZ}, {minX, minY, maxZ}}, [3]float32{-1, 0, 0}}, // left
		{[4][3]float32{{maxX, minY, maxZ}, {maxX, maxY, minZ}, {maxX, maxY, maxZ}, {maxX, minY, minZ}}, [3]float32{1, 0, 0}},  // right
		{[4][3]float32{{maxX, minY, maxZ}, {minX, minY, minZ}, {maxX, minY, minZ}, {minX, minY, maxZ}}, [3]float32{0, -1, 0}}, // bottom
		{[4][3]float32{{minX, maxY, maxZ}, {maxX, maxY, minZ}, {minX, maxY, minZ}, {maxX, maxY, maxZ}}, [3]float32{0, 1, 0}},  // top
	}
	faceUVs := [4][2]float32{{0, 0}, {tileX, tileY}, {0, tileY}, {tileX, 0}}

	positions := make(Float32x3Values, 0, 24)
	normals := make(Float32x3Values, 0, 24)
	uvs := make(Float32x2Values, 0, 24)
	indices := make(IndicesU32, 0, 36)
	for i, f := range faces {
		positions = append(positions, f.corners[:]...)
		for c := 0; c < 4; c++ {
			normals = append(normals, f.normal)
		}
		uvs = append(uvs, faceUVs[:]...)
		v := uint32(i * 4)
		indices = append(indices, v+0, v+1, v+2, v+0, v+3, v+1)
	}
	return newTriangleMesh(positions, normals, uvs, indices)
}

// Plane returns a plane in the XY plane facing +Z, split into xSegments by
// ySegments quads of 4 vertices each.
func Plane(width, height float32, xSegments, ySegments uint32) *Mesh {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if xSegments < 1 {
		core.LogWarn("xSegments must be a positive number. Defaulting to one.")
		xSegments = 1
	}
	if ySegments < 1 {
		core.LogWarn("ySegments must be a positive number. Defaulting to one.")
		ySegments = 1
	}

	quads := xSegments * ySegments
	positions := make(Float32x3Values, 0, quads*4)
	normals := make(Float32x3Values, 0, quads*4)
	uvs := make(Float32x2Values, 0, quads*4)
	indices := make(IndicesU32, 0, quads*6)

	segWidth := width / float32(xSegments)
	segHeight := height / float32(ySegments)
	halfWidth := width * 0.5
	halfHeight := height * 0.5
	for y := uint32(0); y < ySegments; y++ {
		for x := uint32(0); x < xSegments; x++ {
			minX := (float32(x) * segWidth) - halfWidth
			minY := (float32(y) * segHeight) - halfHeight
			maxX := minX + segWidth
			maxY := minY + segHeight
			minU := float32(x) / float32(xSegments)
			minV := float32(y) / float32(ySegments)
			maxU := float32(x+1) / float32(xSegments)
			maxV := float32(y+1) / float32(ySegments)

			v := uint32(len(positions))
			positions = append(positions,
				[3]float32{minX, minY, 0},
				[3]float32{maxX, maxY, 0},
				[3]float32{minX, maxY, 0},
				[3]float32{maxX, minY, 0},
			)
			uvs = append(uvs,
				[2]float32{minU, minV},
				[2]float32{maxU, maxV},
				[2]float32{minU, maxV},
				[2]float32{maxU, minV},
			)
			for c := 0; c < 4; c++ {
				normals = append(normals, [3]float32{0, 0, 1})
			}
			indices = append(indices, v+0, v+1, v+2, v+0, v+3, v+1)
		}
	}
	return newTriangleMesh(positions, normals, uvs, indices)
}

// Triangle returns the unit right triangle (0,0,0) (1,0,0) (0,1,0) facing +Z.
func Triangle() *Mesh {
	return newTriangleMesh(
		Float32x3Values{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Float32x3Values{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Float32x2Values{{0, 0}, {1, 0}, {0, 1}},
		IndicesU32{0, 1, 2},
	)
}

// UVSphere returns a latitude/longitude sphere. sectors and stacks are clamped
// to at least 3 and 2.
func UVSphere(radius float32, sectors, stacks uint32) *Mesh {
	if radius == 0 {
		core.LogWarn("Radius must be nonzero. Defaulting to one.")
		radius = 1.0
	}
	sectors = max(sectors, 3)
	stacks = max(stacks, 2)

	count := (sectors + 1) * (stacks + 1)
	positions := make(Float32x3Values, 0, count)
	normals := make(Float32x3Values, 0, count)
	uvs := make(Float32x2Values, 0, count)

	sectorStep := 2 * stdmath.Pi / float64(sectors)
	stackStep := stdmath.Pi / float64(stacks)
	for i := uint32(0); i <= stacks; i++ {
		stackAngle := stdmath.Pi/2 - float64(i)*stackStep
		xy := stdmath.Cos(stackAngle)
		z := stdmath.Sin(stackAngle)
		for j := uint32(0); j <= sectors; j++ {
			sectorAngle := float64(j) * sectorStep
			n := [3]float32{
				float32(xy * stdmath.Cos(sectorAngle)),
				float32(xy * stdmath.Sin(sectorAngle)),
				float32(z),
			}
			normals = append(normals, n)
			positions = append(positions, [3]float32{n[0] * radius, n[1] * radius, n[2] * radius})
			uvs = append(uvs, [2]float32{float32(j) / float32(sectors), float32(i) / float32(stacks)})
		}
	}

	indices := make(IndicesU32, 0, sectors*stacks*6)
	for i := uint32(0); i < stacks; i++ {
		k1 := i * (sectors + 1)
		k2 := k1 + sectors + 1
		for j := uint32(0); j < sectors; j, k1, k2 = j+1, k1+1, k2+1 {
			if i != 0 {
				indices = append(indices, k1, k2, k1+1)
			}
			if i != stacks-1 {
				indices = append(indices, k1+1, k2, k2+1)
			}
		}
	}
	return newTriangleMesh(positions, normals, uvs, indices)
}

// SkinnedStrip returns a 10 vertex, 1 by 2 unit strip rising along +Y, bound
// to two joints: the bottom row follows joint 0, the top row joint 1 and the
// rows in between blend linearly. Indices are 16 bit.
func SkinnedStrip() *Mesh {
	m := New(TriangleList)
	positions := make(Float32x3Values, 0, 10)
	for row := 0; row < 5; row++ {
		y := float32(row) * 0.5
		positions = append(positions, [3]float32{0, y, 0}, [3]float32{1, y, 0})
	}
	normals := make(Float32x3Values, 10)
	uvs := make(Float32x2Values, 10)
	jointIndices := make(Uint16x4Values, 10)
	weights := make(Float32x4Values, 10)
	for i := range normals {
		normals[i] = [3]float32{0, 0, 1}
		if i >= 2 {
			jointIndices[i] = [4]uint16{0, 1, 0, 0}
		}
		w1 := float32(i/2) * 0.25
		weights[i] = [4]float32{1 - w1, w1, 0, 0}
	}

	m.attributes = append(m.attributes,
		attributeData{id: AttributePosition, values: positions},
		attributeData{id: AttributeNormal, values: normals},
		attributeData{id: AttributeUV0, values: uvs},
		attributeData{id: AttributeJointIndex, values: jointIndices},
		attributeData{id: AttributeJointWeight, values: weights},
	)
	m.indices = IndicesU16{
		0, 1, 3, 0, 3, 2,
		2, 3, 5, 2, 5, 4,
		4, 5, 7, 4, 7, 6,
		6, 7, 9, 6, 9, 8,
	}
	return m
}
