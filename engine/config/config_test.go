package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spaghettifunk/meshtools/engine/core"
	"github.com/spaghettifunk/meshtools/engine/math"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meshtools.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
mode = "combine"
log_level = "debug"
workers = 3
output = "out.glb"

[[mesh]]
name = "floor"
shape = "plane"
size = [4, 4]
segments = [2, 2]
rotation = [-90, 0, 0]

[[mesh]]
source = "models/crate.glb"
translation = [1, 0, 0]
scale = [2, 2, 2]

[skin]
frames = 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mode != ModeCombine || cfg.LogLevel != "debug" || cfg.Workers != 3 || cfg.Output != "out.glb" {
		t.Errorf("top level = %+v", cfg)
	}
	if len(cfg.Meshes) != 2 {
		t.Fatalf("loaded %d meshes, want 2", len(cfg.Meshes))
	}
	if cfg.Meshes[0].SizeAt(1, 1) != 4 || cfg.Meshes[0].SegmentsAt(0, 1) != 2 {
		t.Errorf("floor = %+v", cfg.Meshes[0])
	}
	if cfg.Skin.Frames != 10 {
		t.Errorf("skin frames = %d, want 10", cfg.Skin.Frames)
	}

	cfg.Resolve(Flags{})
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	wantSource := filepath.Join(filepath.Dir(path), "models", "crate.glb")
	if cfg.Meshes[1].Source != wantSource {
		t.Errorf("source = %q, want %q", cfg.Meshes[1].Source, wantSource)
	}
	if want := filepath.Join(filepath.Dir(path), "out.glb"); cfg.Output != want {
		t.Errorf("output = %q, want %q", cfg.Output, want)
	}
	if cfg.Meshes[1].Name != "mesh1" {
		t.Errorf("default name = %q, want mesh1", cfg.Meshes[1].Name)
	}
	if cfg.Skin.Duration != 2 || cfg.Skin.Amplitude != 90 {
		t.Errorf("skin defaults not applied: %+v", cfg.Skin)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantInvalid bool
	}{
		{"unknown key", "mode = \"combine\"\ncolour = \"red\"\n", true},
		{"syntax", "mode = \n", false},
		{"wrong type", "workers = \"many\"\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() succeeded")
			}
			if got := errors.Is(err, core.ErrInvalidConfig); got != tt.wantInvalid {
				t.Errorf("errors.Is(ErrInvalidConfig) = %v, want %v (%v)", got, tt.wantInvalid, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() of a missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Default()
	cfg.Resolve(Flags{Mode: "SKIN", Output: "strip.glb", LogLevel: "WARN", Workers: 7, Watch: true})

	if cfg.Mode != ModeSkin {
		t.Errorf("mode = %q, want skin", cfg.Mode)
	}
	if cfg.Output != "strip.glb" || cfg.LogLevel != "warn" || cfg.Workers != 7 || !cfg.Watch {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Meshes = []MeshEntry{{Shape: "Cube"}}
	cfg.Resolve(Flags{})

	if cfg.Mode != ModeCombine || cfg.LogLevel != "info" || cfg.Workers != runtime.NumCPU() {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Meshes[0].Shape != ShapeCube {
		t.Errorf("shape = %q, want %q", cfg.Meshes[0].Shape, ShapeCube)
	}
	if s := cfg.Meshes[0].Scale; s == nil || *s != [3]float32{1, 1, 1} {
		t.Errorf("scale = %v, want unit scale", s)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"default", func(*Config) {}, ""},
		{"unknown mode", func(c *Config) { c.Mode = "explode" }, "unknown mode"},
		{"unknown level", func(c *Config) { c.LogLevel = "loud" }, "unknown log level"},
		{"no meshes", func(c *Config) { c.Meshes = nil }, "at least one"},
		{"skin without meshes", func(c *Config) { c.Mode = ModeSkin; c.Meshes = nil }, ""},
		{"shape and source", func(c *Config) { c.Meshes[0].Source = "a.glb" }, "mutually exclusive"},
		{"neither", func(c *Config) { c.Meshes[0].Shape = "" }, "either shape or source"},
		{"unknown shape", func(c *Config) { c.Meshes[0].Shape = "torus" }, "unknown shape"},
		{"negative size", func(c *Config) { c.Meshes[0].Size = []float32{-1} }, "negative"},
		{"zero frames", func(c *Config) { c.Skin.Frames = 0 }, "frames"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Resolve(Flags{})
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestMeshEntryTransform(t *testing.T) {
	e := MeshEntry{
		Translation: [3]float32{1, 2, 3},
		Rotation:    [3]float32{0, 0, 90},
		Scale:       &[3]float32{2, 2, 2},
	}
	got := math.TransformPoint3(e.Transform().ComputeWorld(), math.NewVec3(1, 0, 0))
	want := math.NewVec3(1, 4, 3)
	if !math.Vec3Compare(got, want, math.K_VERTEX_EPSILON) {
		t.Errorf("transformed point = %v, want %v", got, want)
	}
}

func TestMeshEntryScale(t *testing.T) {
	path := writeConfig(t, "[[mesh]]\nshape = \"cube\"\n\n[[mesh]]\nshape = \"cube\"\nscale = [0.0, 0.0, 0.0]\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.Resolve(Flags{})

	tests := []struct {
		name string
		want math.Vec3
	}{
		{"absent scale is unit", math.NewVec3(1, 0, 0)},
		{"explicit zero scale is kept", math.NewVec3Zero()},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := math.TransformPoint3(cfg.Meshes[i].Transform().ComputeWorld(), math.NewVec3(1, 0, 0))
			if !math.Vec3Compare(got, tt.want, math.K_VERTEX_EPSILON) {
				t.Errorf("transformed point = %v, want %v", got, tt.want)
			}
		})
	}
}
