package loaders

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/spaghettifunk/meshtools/engine/core"
	"github.com/spaghettifunk/meshtools/engine/math"
	"github.com/spaghettifunk/meshtools/engine/mesh"
	"github.com/spaghettifunk/meshtools/engine/scene"
)

var (
	ErrNoPositions         = errors.New("gltf: primitive has no POSITION attribute")
	ErrUnsupportedTopology = errors.New("gltf: only triangle list primitives are supported")
)

// Primitive is one glTF mesh primitive placed in the model's node graph.
type Primitive struct {
	Name string
	Mesh *mesh.Mesh
	// Node is the graph node that instantiates the mesh.
	Node core.Identifier
	// Skin indexes Model.Skins, or is -1 for a rigid primitive.
	Skin int
}

// Model is a glTF document converted to meshes, skins and a scene graph.
// Skin joints are graph node identifiers, so the graph resolves them.
type Model struct {
	Path       string
	Graph      *scene.Graph
	Primitives []Primitive
	Skins      []mesh.SkinBinding
}

// Bake places every primitive in world space and merges them into a single
// position/normal/uv mesh. Skinned primitives are deformed by their skin and
// ignore the transform of the node carrying them, as glTF requires.
func (md *Model) Bake() (*mesh.Mesh, error) {
	out := mesh.EmptyDefault()
	for i, p := range md.Primitives {
		var placed *mesh.Mesh
		if p.Skin >= 0 {
			skinned, err := mesh.WithSkinnedTransform(p.Mesh, md.Skins[p.Skin], md.Graph)
			if err != nil {
				return nil, fmt.Errorf("primitive %d (%s): %w", i, p.Name, err)
			}
			placed = skinned
		} else {
			world, ok := md.Graph.World(p.Node)
			if !ok {
				return nil, fmt.Errorf("primitive %d (%s): %w", i, p.Name, scene.ErrNodeNotFound)
			}
			moved, ok := mesh.WithMatrix(p.Mesh, world)
			if !ok {
				return nil, fmt.Errorf("primitive %d (%s): %w", i, p.Name, ErrNoPositions)
			}
			placed = moved
		}
		if err := mesh.Append(out, placed); err != nil {
			return nil, fmt.Errorf("primitive %d (%s): %w", i, p.Name, err)
		}
	}
	return out, nil
}

// ModelLoader reads .gltf and .glb files.
type ModelLoader struct{}

func (ml *ModelLoader) Load(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	md, err := ml.parseDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	md.Path = path
	return md, nil
}

func (ml *ModelLoader) parseDocument(doc *gltf.Document) (*Model, error) {
	md := &Model{Graph: scene.NewGraph()}

	nodeIDs, err := buildGraph(doc, md.Graph)
	if err != nil {
		return nil, err
	}

	for s, skin := range doc.Skins {
		binding, err := readSkin(doc, skin, nodeIDs)
		if err != nil {
			return nil, fmt.Errorf("skin %d: %w", s, err)
		}
		md.Skins = append(md.Skins, binding)
	}

	for n, node := range doc.Nodes {
		if node.Mesh == nil {
			continue
		}
		gm := doc.Meshes[*node.Mesh]
		for p, prim := range gm.Primitives {
			m, err := readPrimitive(doc, prim)
			if err != nil {
				if errors.Is(err, ErrUnsupportedTopology) {
					core.LogWarn("skipping primitive %d of mesh %q: %s", p, gm.Name, err)
					continue
				}
				return nil, fmt.Errorf("mesh %q primitive %d: %w", gm.Name, p, err)
			}
			skin := -1
			if node.Skin != nil && m.ContainsAttribute(mesh.AttributeJointIndex) && m.ContainsAttribute(mesh.AttributeJointWeight) {
				skin = int(*node.Skin)
			}
			md.Primitives = append(md.Primitives, Primitive{
				Name: fmt.Sprintf("%s.%d", gm.Name, p),
				Mesh: m,
				Node: nodeIDs[n],
				Skin: skin,
			})
		}
	}
	return md, nil
}

// buildGraph spawns every glTF node, parents before children, and returns
// the graph identifier of each node index.
func buildGraph(doc *gltf.Document, g *scene.Graph) ([]core.Identifier, error) {
	nodeIDs := make([]core.Identifier, len(doc.Nodes))
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if int(c) >= len(doc.Nodes) {
				return nil, fmt.Errorf("gltf: child index %d out of range", c)
			}
			hasParent[c] = true
		}
	}

	var spawn func(i uint32, parent core.Identifier, depth int) error
	spawn = func(i uint32, parent core.Identifier, depth int) error {
		if depth > len(doc.Nodes) {
			return fmt.Errorf("gltf: node hierarchy contains a cycle at node %d", i)
		}
		node := doc.Nodes[i]
		sn, err := g.Spawn(node.Name, nodeTransform(node), parent)
		if err != nil {
			return err
		}
		nodeIDs[i] = sn.ID
		for _, c := range node.Children {
			if err := spawn(c, sn.ID, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for i := range doc.Nodes {
		if hasParent[i] {
			continue
		}
		if err := spawn(uint32(i), core.InvalidID, 0); err != nil {
			return nil, err
		}
	}
	return nodeIDs, nil
}

// nodeTransform honours an explicit matrix when one is set, and otherwise
// the translation/rotation/scale triple with glTF defaults for zero fields.
func nodeTransform(n *gltf.Node) *math.Transform {
	if n.Matrix != [16]float32{} && n.Matrix != identityMatrix {
		return math.TransformFromMatrix(mgl32.Mat4(n.Matrix))
	}
	rotation := math.NewQuatIdentity()
	if n.Rotation != [4]float32{} {
		rotation = mgl32.Quat{W: n.Rotation[3], V: mgl32.Vec3{n.Rotation[0], n.Rotation[1], n.Rotation[2]}}.Normalize()
	}
	scale := math.NewVec3One()
	if n.Scale != [3]float32{} {
		scale = n.Scale
	}
	return math.TransformFromPositionRotationScale(n.Translation, rotation, scale)
}

func readSkin(doc *gltf.Document, skin *gltf.Skin, nodeIDs []core.Identifier) (mesh.SkinBinding, error) {
	binding := mesh.SkinBinding{
		Joints:           make([]mesh.JointRef, len(skin.Joints)),
		InverseBindPoses: make([]math.Mat4, len(skin.Joints)),
	}
	for i, j := range skin.Joints {
		if int(j) >= len(nodeIDs) {
			return binding, fmt.Errorf("gltf: joint node %d out of range", j)
		}
		binding.Joints[i] = nodeIDs[j]
		binding.InverseBindPoses[i] = math.NewMat4Identity()
	}
	if skin.InverseBindMatrices == nil {
		return binding, nil
	}

	data, err := modeler.ReadAccessor(doc, doc.Accessors[*skin.InverseBindMatrices], nil)
	if err != nil {
		return binding, fmt.Errorf("inverse bind matrices: %w", err)
	}
	matrices, ok := data.([][4][4]float32)
	if !ok {
		return binding, fmt.Errorf("inverse bind matrices: unexpected accessor data %T", data)
	}
	for i := range binding.InverseBindPoses {
		if i >= len(matrices) {
			break
		}
		// Accessor matrices are column major, one [4]float32 per column.
		var m math.Mat4
		for c := 0; c < 4; c++ {
			for r := 0; r < 4; r++ {
				m[c*4+r] = matrices[i][c][r]
			}
		}
		binding.InverseBindPoses[i] = m
	}
	return binding, nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*mesh.Mesh, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, ErrUnsupportedTopology
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, ErrNoPositions
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	m := mesh.New(mesh.TriangleList)
	if err := m.InsertAttribute(mesh.AttributePosition, mesh.Float32x3Values(positions)); err != nil {
		return nil, err
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		if err := m.InsertAttribute(mesh.AttributeNormal, mesh.Float32x3Values(normals)); err != nil {
			return nil, err
		}
	}

	uvs := make([][2]float32, len(positions))
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("read texture coordinates: %w", err)
		}
	}
	if err := m.InsertAttribute(mesh.AttributeUV0, mesh.Float32x2Values(uvs)); err != nil {
		return nil, err
	}

	if idx, ok := prim.Attributes[gltf.TANGENT]; ok {
		tangents, err := modeler.ReadTangent(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read tangents: %w", err)
		}
		if err := m.InsertAttribute(mesh.AttributeTangent, mesh.Float32x4Values(tangents)); err != nil {
			return nil, err
		}
	}

	jointsIdx, hasJoints := prim.Attributes[gltf.JOINTS_0]
	weightsIdx, hasWeights := prim.Attributes[gltf.WEIGHTS_0]
	if hasJoints && hasWeights {
		joints, err := modeler.ReadJoints(doc, doc.Accessors[jointsIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("read joints: %w", err)
		}
		weights, err := modeler.ReadWeights(doc, doc.Accessors[weightsIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("read weights: %w", err)
		}
		if err := m.InsertAttribute(mesh.AttributeJointIndex, mesh.Uint16x4Values(joints)); err != nil {
			return nil, err
		}
		if err := m.InsertAttribute(mesh.AttributeJointWeight, mesh.Float32x4Values(weights)); err != nil {
			return nil, err
		}
	}

	if prim.Indices != nil {
		acr := doc.Accessors[*prim.Indices]
		indices, err := modeler.ReadIndices(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
		if acr.ComponentType == gltf.ComponentUshort || acr.ComponentType == gltf.ComponentUbyte {
			narrow := make(mesh.IndicesU16, len(indices))
			for i, v := range indices {
				narrow[i] = uint16(v)
			}
			m.SetIndices(narrow)
		} else {
			m.SetIndices(mesh.IndicesU32(indices))
		}
	} else {
		sequential := make(mesh.IndicesU32, len(positions))
		for i := range sequential {
			sequential[i] = uint32(i)
		}
		m.SetIndices(sequential)
	}

	if !m.ContainsAttribute(mesh.AttributeNormal) {
		mesh.ComputeFlatNormals(m)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
