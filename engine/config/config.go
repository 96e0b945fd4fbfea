package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/meshtools/engine/core"
	"github.com/spaghettifunk/meshtools/engine/math"
)

type Mode string

const (
	ModeCombine Mode = "combine"
	ModeSkin    Mode = "skin"
)

// Shapes accepted by MeshEntry.Shape.
const (
	ShapeCube     = "cube"
	ShapeBox      = "box"
	ShapePlane    = "plane"
	ShapeTriangle = "triangle"
	ShapeSphere   = "sphere"
	ShapeStrip    = "strip"
)

// MaxSegments bounds the tessellation of generated shapes.
const MaxSegments = 1024

var (
	shapes    = []string{ShapeCube, ShapeBox, ShapePlane, ShapeTriangle, ShapeSphere, ShapeStrip}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// Config describes one meshtools job.
type Config struct {
	Mode     Mode        `toml:"mode"`
	LogLevel string      `toml:"log_level"`
	Workers  int         `toml:"workers"`
	Output   string      `toml:"output"`
	Watch    bool        `toml:"watch"`
	Meshes   []MeshEntry `toml:"mesh"`
	Skin     SkinConfig  `toml:"skin"`

	// Path is the file the config was loaded from, if any.
	Path string `toml:"-"`
}

// MeshEntry is either a generated shape or a glTF file, placed by a
// translation, an XYZ euler rotation in degrees and a scale. A nil Scale
// means the key was absent and resolves to unit scale; an explicit
// [0, 0, 0] is kept and collapses the mesh.
type MeshEntry struct {
	Name        string      `toml:"name"`
	Shape       string      `toml:"shape"`
	Source      string      `toml:"source"`
	Size        []float32   `toml:"size"`
	Segments    []uint32    `toml:"segments"`
	Translation [3]float32  `toml:"translation"`
	Rotation    [3]float32  `toml:"rotation"`
	Scale       *[3]float32 `toml:"scale,omitempty"`
}

// SkinConfig drives the skinned strip animation. Amplitude is in degrees,
// Duration in seconds.
type SkinConfig struct {
	Frames    int     `toml:"frames"`
	Duration  float64 `toml:"duration"`
	Amplitude float32 `toml:"amplitude"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Mode     string
	Output   string
	LogLevel string
	Workers  int
	Watch    bool
}

// Default returns the job run when no config file is given: the cube and
// triangle merge.
func Default() Config {
	return Config{
		Mode:     ModeCombine,
		LogLevel: "info",
		Workers:  runtime.NumCPU(),
		Meshes: []MeshEntry{
			{Name: "cube", Shape: ShapeCube, Size: []float32{1}},
			{Name: "triangle", Shape: ShapeTriangle, Translation: [3]float32{1.5, 0, 0}},
		},
		Skin: defaultSkin(),
	}
}

func defaultSkin() SkinConfig {
	return SkinConfig{Frames: 60, Duration: 2, Amplitude: 90}
}

// Load reads a TOML config file. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("config: parse %s: %w: %s", path, core.ErrInvalidConfig, strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return Config{}, fmt.Errorf("config: parse %s:%d:%d: %w", path, row, col, err)
		}
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Resolve applies CLI overrides, fills defaults and makes relative paths in
// the file relative to the file itself. CLI flags take priority when
// non-zero and their paths stay relative to the working directory.
func (c *Config) Resolve(flags Flags) {
	if c.Path != "" && c.Output != "" && !filepath.IsAbs(c.Output) {
		c.Output = filepath.Join(filepath.Dir(c.Path), c.Output)
	}
	if flags.Mode != "" {
		c.Mode = Mode(strings.ToLower(flags.Mode))
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Watch {
		c.Watch = true
	}

	if c.Mode == "" {
		c.Mode = ModeCombine
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	def := defaultSkin()
	if c.Skin.Frames <= 0 {
		c.Skin.Frames = def.Frames
	}
	if c.Skin.Duration <= 0 {
		c.Skin.Duration = def.Duration
	}
	if c.Skin.Amplitude == 0 {
		c.Skin.Amplitude = def.Amplitude
	}

	for i := range c.Meshes {
		e := &c.Meshes[i]
		if e.Name == "" {
			e.Name = fmt.Sprintf("mesh%d", i)
		}
		if e.Scale == nil {
			e.Scale = &[3]float32{1, 1, 1}
		}
		e.Shape = strings.ToLower(e.Shape)
	}

	if c.Path != "" {
		base := filepath.Dir(c.Path)
		for i := range c.Meshes {
			if src := c.Meshes[i].Source; src != "" && !filepath.IsAbs(src) {
				c.Meshes[i].Source = filepath.Join(base, src)
			}
		}
	}
}

// Validate reports every problem of a resolved config at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Mode != ModeCombine && c.Mode != ModeSkin {
		errs = append(errs, fmt.Errorf("unknown mode %q, expected %s or %s", c.Mode, ModeCombine, ModeSkin))
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.Mode == ModeCombine && len(c.Meshes) == 0 {
		errs = append(errs, errors.New("combine mode needs at least one [[mesh]] entry"))
	}
	for i, e := range c.Meshes {
		if err := e.validate(); err != nil {
			errs = append(errs, fmt.Errorf("mesh %d (%s): %w", i, e.Name, err))
		}
	}
	if c.Skin.Frames <= 0 {
		errs = append(errs, fmt.Errorf("skin frames must be positive, got %d", c.Skin.Frames))
	}
	if c.Skin.Duration <= 0 {
		errs = append(errs, fmt.Errorf("skin duration must be positive, got %v", c.Skin.Duration))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", core.ErrInvalidConfig, errors.Join(errs...))
}

func (e MeshEntry) validate() error {
	switch {
	case e.Shape == "" && e.Source == "":
		return errors.New("either shape or source is required")
	case e.Shape != "" && e.Source != "":
		return errors.New("shape and source are mutually exclusive")
	case e.Shape != "" && !slices.Contains(shapes, e.Shape):
		return fmt.Errorf("unknown shape %q", e.Shape)
	}
	for _, s := range e.Size {
		if s < 0 {
			return fmt.Errorf("size must not be negative, got %v", e.Size)
		}
	}
	return nil
}

// Transform returns the placement of the entry.
func (e MeshEntry) Transform() *math.Transform {
	rotation := math.NewQuatFromEulerXYZ(
		math.DegToRad(e.Rotation[0]),
		math.DegToRad(e.Rotation[1]),
		math.DegToRad(e.Rotation[2]),
	)
	scale := math.NewVec3One()
	if e.Scale != nil {
		scale = *e.Scale
	}
	return math.TransformFromPositionRotationScale(e.Translation, rotation, scale)
}

// SizeAt returns the i-th size component, or def when it is not set.
func (e MeshEntry) SizeAt(i int, def float32) float32 {
	if i < len(e.Size) && e.Size[i] > 0 {
		return e.Size[i]
	}
	return def
}

// SegmentsAt returns the i-th segment count clamped to [1, MaxSegments], or
// def when it is not set.
func (e MeshEntry) SegmentsAt(i int, def uint32) uint32 {
	if i < len(e.Segments) && e.Segments[i] > 0 {
		return math.Clamp(e.Segments[i], 1, MaxSegments)
	}
	return def
}
