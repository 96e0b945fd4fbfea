package loaders

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/spaghettifunk/meshtools/engine/mesh"
)

const generator = "meshtools"

var (
	identityMatrix   = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	identityRotation = [4]float32{0, 0, 0, 1}
	unitScale        = [3]float32{1, 1, 1}
)

// WriteGLB saves m as a single node binary glTF file. Position, normal,
// tangent, uv, joint and weight channels are written when present in the
// format glTF expects; any other channel is skipped.
func WriteGLB(path, name string, m *mesh.Mesh) error {
	doc, err := Document(name, m)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Document converts m into an in-memory glTF document.
func Document(name string, m *mesh.Mesh) (*gltf.Document, error) {
	positions := mesh.AttributeAs[mesh.Float32x3Values](m, mesh.AttributePosition)
	if len(positions) == 0 {
		return nil, ErrNoPositions
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = generator

	attrs := map[string]uint32{
		gltf.POSITION: modeler.WritePosition(doc, [][3]float32(positions)),
	}
	for id, values := range m.Attributes() {
		switch v := values.(type) {
		case mesh.Float32x3Values:
			if id.Name == mesh.AttributeNormal.Name {
				attrs[gltf.NORMAL] = modeler.WriteNormal(doc, [][3]float32(v))
			}
		case mesh.Float32x2Values:
			if id.Name == mesh.AttributeUV0.Name {
				attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, [][2]float32(v))
			}
		case mesh.Float32x4Values:
			switch id.Name {
			case mesh.AttributeTangent.Name:
				attrs[gltf.TANGENT] = modeler.WriteTangent(doc, [][4]float32(v))
			case mesh.AttributeJointWeight.Name:
				attrs[gltf.WEIGHTS_0] = modeler.WriteWeights(doc, [][4]float32(v))
			}
		case mesh.Uint16x4Values:
			if id.Name == mesh.AttributeJointIndex.Name {
				attrs[gltf.JOINTS_0] = modeler.WriteJoints(doc, [][4]uint16(v))
			}
		}
	}

	prim := &gltf.Primitive{
		Attributes: attrs,
		Mode:       gltf.PrimitiveTriangles,
	}
	switch ix := m.Indices().(type) {
	case mesh.IndicesU16:
		if len(ix) > 0 {
			prim.Indices = gltf.Index(modeler.WriteIndices(doc, []uint16(ix)))
		}
	case mesh.IndicesU32:
		if len(ix) > 0 {
			prim.Indices = gltf.Index(modeler.WriteIndices(doc, []uint32(ix)))
		}
	}

	doc.Meshes = []*gltf.Mesh{{Name: name, Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{
		Name:     name,
		Mesh:     gltf.Index(0),
		Matrix:   identityMatrix,
		Rotation: identityRotation,
		Scale:    unitScale,
	}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc, nil
}
