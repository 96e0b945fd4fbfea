package systems

import (
	"context"
	stdmath "math"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/meshtools/engine/assets/loaders"
	"github.com/spaghettifunk/meshtools/engine/config"
	"github.com/spaghettifunk/meshtools/engine/math"
	"github.com/spaghettifunk/meshtools/engine/mesh"
)

func positions(m *mesh.Mesh) []math.Vec3 {
	var out []math.Vec3
	for _, p := range mesh.Positions(m) {
		out = append(out, p)
	}
	return out
}

func TestStripRigPose(t *testing.T) {
	rig, err := NewStripRig()
	if err != nil {
		t.Fatal(err)
	}
	strip := mesh.SkinnedStrip()

	tests := []struct {
		name    string
		radians float32
		vertex  int
		want    math.Vec3
	}{
		{"rest bottom", 0, 0, math.NewVec3(0, 0, 0)},
		{"rest top", 0, 9, math.NewVec3(1, 2, 0)},
		{"bent bottom", stdmath.Pi / 2, 0, math.NewVec3(0, 0, 0)},
		// (0,2,0) rotated a quarter turn about the (0.5,1,0) pivot.
		{"bent top", stdmath.Pi / 2, 8, math.NewVec3(-0.5, 0.5, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := rig.Pose(tt.radians); err != nil {
				t.Fatal(err)
			}
			resolver, err := rig.snapshot()
			if err != nil {
				t.Fatal(err)
			}
			skinned, err := mesh.WithSkinnedTransform(strip, rig.Binding, resolver)
			if err != nil {
				t.Fatalf("WithSkinnedTransform() error = %v", err)
			}
			if got := positions(skinned)[tt.vertex]; !math.Vec3Compare(got, tt.want, 1e-5) {
				t.Errorf("vertex %d = %v, want %v", tt.vertex, got, tt.want)
			}
		})
	}
}

func TestSkinAnimate(t *testing.T) {
	cfg := config.Config{Mode: config.ModeSkin, Skin: config.SkinConfig{Frames: 8, Duration: 2, Amplitude: 90}}
	cfg = resolved(t, cfg)

	frames, err := NewSkinPipeline(newJobs(t)).Animate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Animate() error = %v", err)
	}
	if len(frames) != 8 {
		t.Fatalf("got %d frames, want 8", len(frames))
	}

	rest := positions(mesh.SkinnedStrip())
	for i, p := range positions(frames[0].Mesh) {
		if !math.Vec3Compare(p, rest[i], 1e-5) {
			t.Errorf("frame 0 vertex %d = %v, want rest pose %v", i, p, rest[i])
		}
	}
	for _, fr := range frames {
		want := math.DegToRad(90) * float32(stdmath.Sin(fr.Time))
		if !math.FloatEqual(fr.Angle, want) {
			t.Errorf("frame %d angle = %v, want %v", fr.Index, fr.Angle, want)
		}
		if fr.Mesh == nil {
			t.Fatalf("frame %d was not skinned", fr.Index)
		}
		// The bottom row is bound to the root joint only.
		if p := positions(fr.Mesh)[0]; !math.Vec3Compare(p, rest[0], 1e-5) {
			t.Errorf("frame %d bottom vertex moved to %v", fr.Index, p)
		}
	}
	if frames[7].Bounds.Min.X() >= 0 {
		t.Errorf("last frame bounds %v, expected the strip to bend past x=0", frames[7].Bounds)
	}
}

func TestSkinRunWritesLastFrame(t *testing.T) {
	cfg := config.Config{Mode: config.ModeSkin, Skin: config.SkinConfig{Frames: 4}}
	cfg = resolved(t, cfg)
	cfg.Output = filepath.Join(t.TempDir(), "skinned.glb")

	last, err := NewSkinPipeline(newJobs(t)).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	md, err := (&loaders.ModelLoader{}).Load(cfg.Output)
	if err != nil {
		t.Fatalf("loading output: %v", err)
	}
	got := positions(md.Primitives[0].Mesh)
	for i, p := range positions(last) {
		if got[i] != p {
			t.Errorf("written vertex %d = %v, want %v", i, got[i], p)
		}
	}
}

func TestSkinAnimateRejectsNoFrames(t *testing.T) {
	if _, err := NewSkinPipeline(newJobs(t)).Animate(context.Background(), config.Config{}); err == nil {
		t.Error("Animate() without frames succeeded")
	}
}
