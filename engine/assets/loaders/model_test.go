package loaders

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/spaghettifunk/meshtools/engine/math"
	"github.com/spaghettifunk/meshtools/engine/mesh"
)

func positionsOf(m *mesh.Mesh) []math.Vec3 {
	var out []math.Vec3
	for _, p := range mesh.Positions(m) {
		out = append(out, p)
	}
	return out
}

func indicesOf(m *mesh.Mesh) []uint32 {
	var out []uint32
	for _, v := range m.Indices().All() {
		out = append(out, v)
	}
	return out
}

func TestGLBRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		mesh   *mesh.Mesh
		format mesh.IndexFormat
	}{
		{"cube", mesh.Cube(2), mesh.IndexFormatUint32},
		{"sphere", mesh.UVSphere(1, 8, 4), mesh.IndexFormatUint32},
		{"strip", mesh.SkinnedStrip(), mesh.IndexFormatUint16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.name+".glb")
			if err := WriteGLB(path, tt.name, tt.mesh); err != nil {
				t.Fatalf("WriteGLB() error = %v", err)
			}

			md, err := (&ModelLoader{}).Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(md.Primitives) != 1 {
				t.Fatalf("loaded %d primitives, want 1", len(md.Primitives))
			}
			got := md.Primitives[0].Mesh

			if !slices.Equal(positionsOf(got), positionsOf(tt.mesh)) {
				t.Error("positions differ after round trip")
			}
			if !slices.Equal(indicesOf(got), indicesOf(tt.mesh)) {
				t.Error("indices differ after round trip")
			}
			if got.Indices().Format() != tt.format {
				t.Errorf("index format = %s, want %s", got.Indices().Format(), tt.format)
			}
			if !slices.Equal(
				mesh.AttributeAs[mesh.Float32x2Values](got, mesh.AttributeUV0),
				mesh.AttributeAs[mesh.Float32x2Values](tt.mesh, mesh.AttributeUV0),
			) {
				t.Error("uvs differ after round trip")
			}
			if !slices.Equal(
				mesh.AttributeAs[mesh.Uint16x4Values](got, mesh.AttributeJointIndex),
				mesh.AttributeAs[mesh.Uint16x4Values](tt.mesh, mesh.AttributeJointIndex),
			) {
				t.Error("joint indices differ after round trip")
			}
		})
	}
}

func TestWriteGLBRejectsEmptyMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.glb")
	if err := WriteGLB(path, "empty", mesh.EmptyDefault()); !errors.Is(err, ErrNoPositions) {
		t.Errorf("WriteGLB() error = %v, want ErrNoPositions", err)
	}
}

func TestParseDocumentPlacesNodes(t *testing.T) {
	doc, err := Document("tri", mesh.Triangle())
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	// Wrap the mesh node in a translated, uniformly scaled parent.
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name:        "parent",
		Children:    []uint32{0},
		Translation: [3]float32{0, 0, -4},
		Scale:       [3]float32{2, 2, 2},
	})

	md, err := (&ModelLoader{}).parseDocument(doc)
	if err != nil {
		t.Fatalf("parseDocument() error = %v", err)
	}
	if md.Graph.Len() != 2 {
		t.Fatalf("graph has %d nodes, want 2", md.Graph.Len())
	}
	baked, err := md.Bake()
	if err != nil {
		t.Fatalf("Bake() error = %v", err)
	}
	want := []math.Vec3{{0, 0, -4}, {2, 0, -4}, {0, 2, -4}}
	for i, p := range positionsOf(baked) {
		if !math.Vec3Compare(p, want[i], math.K_VERTEX_EPSILON) {
			t.Errorf("baked position %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestParseDocumentSkin(t *testing.T) {
	doc, err := Document("strip", mesh.SkinnedStrip())
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	doc.Nodes = append(doc.Nodes,
		&gltf.Node{Name: "joint0", Children: []uint32{2}},
		&gltf.Node{Name: "joint1", Translation: [3]float32{0, 1, 0}},
	)
	doc.Nodes[0].Skin = gltf.Index(0)
	// The mesh node transform must not affect a skinned primitive.
	doc.Nodes[0].Translation = [3]float32{100, 0, 0}
	doc.Skins = []*gltf.Skin{{Name: "rig", Joints: []uint32{1, 2}}}

	md, err := (&ModelLoader{}).parseDocument(doc)
	if err != nil {
		t.Fatalf("parseDocument() error = %v", err)
	}
	if len(md.Skins) != 1 || len(md.Skins[0].Joints) != 2 {
		t.Fatalf("skins = %+v", md.Skins)
	}
	if md.Primitives[0].Skin != 0 {
		t.Fatalf("primitive skin = %d, want 0", md.Primitives[0].Skin)
	}

	baked, err := md.Bake()
	if err != nil {
		t.Fatalf("Bake() error = %v", err)
	}
	if got := positionsOf(baked)[4]; !math.Vec3Compare(got, math.NewVec3(0, 1.5, 0), math.K_VERTEX_EPSILON) {
		t.Errorf("position 4 = %v, want [0 1.5 0]", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := (&ModelLoader{}).Load(filepath.Join(t.TempDir(), "missing.glb")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}
