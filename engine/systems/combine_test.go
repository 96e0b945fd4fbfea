package systems

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/meshtools/engine/assets/loaders"
	"github.com/spaghettifunk/meshtools/engine/config"
	"github.com/spaghettifunk/meshtools/engine/core"
	"github.com/spaghettifunk/meshtools/engine/math"
	"github.com/spaghettifunk/meshtools/engine/mesh"
	"github.com/spaghettifunk/meshtools/engine/scene"
)

// fakeModels serves in-memory models by path.
type fakeModels map[string]*loaders.Model

func (f fakeModels) LoadModel(path string) (*loaders.Model, error) {
	md, ok := f[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return md, nil
}

func triangleModel(t *testing.T, offset math.Vec3) *loaders.Model {
	t.Helper()
	g := scene.NewGraph()
	n, err := g.Spawn("tri", math.TransformFromPosition(offset), core.InvalidID)
	if err != nil {
		t.Fatal(err)
	}
	return &loaders.Model{
		Graph:      g,
		Primitives: []loaders.Primitive{{Name: "tri.0", Mesh: mesh.Triangle(), Node: n.ID, Skin: -1}},
	}
}

func newJobs(t *testing.T) *JobSystem {
	t.Helper()
	js, err := NewJobSystem(4, 8)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { js.Shutdown() })
	return js
}

func resolved(t *testing.T, cfg config.Config) config.Config {
	t.Helper()
	cfg.Resolve(config.Flags{})
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestCombineDefault(t *testing.T) {
	cfg := resolved(t, config.Default())
	cfg.Output = filepath.Join(t.TempDir(), "combined.glb")

	out, err := NewCombinePipeline(newJobs(t), nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.CountVertices() != 11 || out.CountTriangles() != 13 {
		t.Errorf("combined mesh has %d vertices and %d triangles, want 11 and 13", out.CountVertices(), out.CountTriangles())
	}

	// The triangle comes last, shifted by 1.5 along X.
	var positions []math.Vec3
	for _, p := range mesh.Positions(out) {
		positions = append(positions, p)
	}
	if got := positions[8]; !math.Vec3Compare(got, math.NewVec3(1.5, 0, 0), math.K_VERTEX_EPSILON) {
		t.Errorf("first triangle vertex = %v, want [1.5 0 0]", got)
	}

	md, err := (&loaders.ModelLoader{}).Load(cfg.Output)
	if err != nil {
		t.Fatalf("loading output: %v", err)
	}
	if got := md.Primitives[0].Mesh.CountVertices(); got != 11 {
		t.Errorf("written mesh has %d vertices, want 11", got)
	}
}

func TestCombineSkipsFailingEntries(t *testing.T) {
	cfg := config.Config{
		Meshes: []config.MeshEntry{
			{Name: "missing", Source: "missing.glb"},
			{Name: "model", Source: "tri.glb"},
			{Name: "strip", Shape: config.ShapeStrip, Translation: [3]float32{0, 0, 2}},
		},
	}
	cfg = resolved(t, cfg)
	models := fakeModels{"tri.glb": triangleModel(t, math.NewVec3(0, 5, 0))}

	out, err := NewCombinePipeline(newJobs(t), models).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.CountVertices() != 13 {
		t.Fatalf("combined mesh has %d vertices, want 3 + 10", out.CountVertices())
	}
	if out.ContainsAttribute(mesh.AttributeJointIndex) {
		t.Error("joint channel leaked into the combined mesh")
	}
	aabb, _ := mesh.ComputeAabb(out)
	if aabb.Max.Y() != 6 || aabb.Max.Z() != 2 {
		t.Errorf("bounds max = %v, want y=6 and z=2", aabb.Max)
	}
}

func TestCombineNothingToCombine(t *testing.T) {
	cfg := resolved(t, config.Config{Meshes: []config.MeshEntry{{Name: "gone", Source: "gone.glb"}}})
	_, err := NewCombinePipeline(newJobs(t), fakeModels{}).Run(context.Background(), cfg)
	if !errors.Is(err, ErrNothingToCombine) {
		t.Errorf("Run() error = %v, want ErrNothingToCombine", err)
	}
}

func TestCombineCancelled(t *testing.T) {
	js, err := NewJobSystem(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer js.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := resolved(t, config.Default())
	// Either the first submit races the cancelled context or a later one fails.
	if _, err := NewCombinePipeline(js, nil).Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want nil or context.Canceled", err)
	}
}

func TestBuildEntry(t *testing.T) {
	tests := []struct {
		entry     config.MeshEntry
		wantVerts int
		wantErr   bool
	}{
		{config.MeshEntry{Shape: config.ShapeCube, Size: []float32{3}}, 8, false},
		{config.MeshEntry{Shape: config.ShapeBox, Size: []float32{1, 2, 3}}, 24, false},
		{config.MeshEntry{Shape: config.ShapePlane, Segments: []uint32{2, 3}}, 24, false},
		{config.MeshEntry{Shape: config.ShapeTriangle}, 3, false},
		{config.MeshEntry{Shape: config.ShapeSphere, Segments: []uint32{8, 4}}, 45, false},
		{config.MeshEntry{Shape: config.ShapeStrip}, 10, false},
		{config.MeshEntry{Shape: "torus"}, 0, true},
		{config.MeshEntry{Source: "model.glb"}, 0, true},
	}
	for _, tt := range tests {
		name := tt.entry.Shape + tt.entry.Source
		t.Run(name, func(t *testing.T) {
			m, err := BuildEntry(tt.entry, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BuildEntry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && m.CountVertices() != tt.wantVerts {
				t.Errorf("BuildEntry() has %d vertices, want %d", m.CountVertices(), tt.wantVerts)
			}
		})
	}
}
