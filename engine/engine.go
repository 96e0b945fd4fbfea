package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/meshtools/engine/assets"
	"github.com/spaghettifunk/meshtools/engine/config"
	"github.com/spaghettifunk/meshtools/engine/containers"
	"github.com/spaghettifunk/meshtools/engine/core"
	"github.com/spaghettifunk/meshtools/engine/mesh"
	"github.com/spaghettifunk/meshtools/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// reloadDelay coalesces the bursts of write events editors produce on save.
const reloadDelay = 150 * time.Millisecond

const historySize = 16

// RunReport summarizes one pipeline run.
type RunReport struct {
	Mode      config.Mode
	Vertices  int
	Triangles int
	Duration  time.Duration
	Err       error
}

// ResultHook observes the outcome of every pipeline run.
type ResultHook func(mode config.Mode, m *mesh.Mesh, err error)

type Option func(*Engine)

// WithFlags keeps CLI overrides applied when the config file is reloaded.
func WithFlags(flags config.Flags) Option {
	return func(e *Engine) { e.flags = flags }
}

func WithResultHook(hook ResultHook) Option {
	return func(e *Engine) { e.onResult = hook }
}

type Engine struct {
	mu           sync.Mutex
	currentStage Stage
	history      *containers.RingQueue[RunReport]

	config   config.Config
	flags    config.Flags
	onResult ResultHook

	assetManager *assets.AssetManager
	jobSystem    *systems.JobSystem
	combine      *systems.CombinePipeline
	skin         *systems.SkinPipeline
}

// New validates cfg and sets up the asset manager and the worker pool.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := core.SetLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	js, err := systems.NewJobSystem(cfg.Workers, cfg.Workers*2)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	e := &Engine{
		currentStage: EngineStageUninitialized,
		history:      containers.NewRingQueue[RunReport](historySize),
		config:       cfg,
		assetManager: am,
		jobSystem:    js,
		combine:      systems.NewCombinePipeline(js, am),
		skin:         systems.NewSkinPipeline(js),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Initialize starts watching the config file and model sources when watch
// mode is on.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine: initialize called in stage %d", e.currentStage)
	}
	e.currentStage = EngineStageInitializing

	var dirs []string
	if e.config.Watch {
		dirs = watchDirs(e.config)
	}
	if err := e.assetManager.Initialize(dirs...); err != nil {
		return err
	}
	if len(dirs) > 0 {
		core.LogInfo("watching %v for changes", dirs)
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run executes the configured pipeline once. In watch mode it then reruns it
// on every change to the config file or a model source until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.currentStage != EngineStageInitialized {
		e.mu.Unlock()
		return core.ErrNotInitialized
	}
	e.currentStage = EngineStageRunning
	cfg := e.config
	e.mu.Unlock()

	_, err := e.RunOnce(ctx, cfg)
	if !cfg.Watch {
		return err
	}
	if err != nil {
		core.LogError("run failed: %s", err)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case change, ok := <-e.assetManager.Changes():
			if !ok {
				return nil
			}
			if e.relevant(change) {
				core.LogDebug("%s %s changed, scheduling a rerun", change.Type, change.Path)
				pending = time.After(reloadDelay)
			}

		case err, ok := <-e.assetManager.Errors():
			if !ok {
				return nil
			}
			core.LogWarn("watcher: %s", err)

		case <-pending:
			pending = nil
			cfg, err := e.reload()
			if err != nil {
				core.LogError("reload failed, keeping the previous config: %s", err)
				cfg = e.currentConfig()
			}
			if _, err := e.RunOnce(ctx, cfg); err != nil {
				core.LogError("run failed: %s", err)
			}
		}
	}
}

// RunOnce runs the pipeline selected by cfg.Mode.
func (e *Engine) RunOnce(ctx context.Context, cfg config.Config) (*mesh.Mesh, error) {
	clock := core.NewClock()
	clock.Start()
	var (
		m   *mesh.Mesh
		err error
	)
	switch cfg.Mode {
	case config.ModeCombine:
		m, err = e.combine.Run(ctx, cfg)
	case config.ModeSkin:
		m, err = e.skin.Run(ctx, cfg)
	default:
		err = fmt.Errorf("%w: unknown mode %q", core.ErrInvalidConfig, cfg.Mode)
	}
	clock.Stop()

	report := RunReport{Mode: cfg.Mode, Duration: clock.Elapsed(), Err: err}
	if m != nil {
		report.Vertices = m.CountVertices()
		report.Triangles = m.CountTriangles()
	}
	e.mu.Lock()
	e.history.Push(report)
	e.mu.Unlock()

	if e.onResult != nil {
		e.onResult(cfg.Mode, m, err)
	}
	return m, err
}

// History returns the most recent runs, oldest first.
func (e *Engine) History() []RunReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Items()
}

func (e *Engine) Shutdown() error {
	e.mu.Lock()
	if e.currentStage == EngineStageShuttingDown {
		e.mu.Unlock()
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.mu.Unlock()

	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	return e.jobSystem.Shutdown()
}

func (e *Engine) currentConfig() config.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// reload rereads the config file, if there is one, and applies the CLI flags
// again. Watch mode itself cannot be turned off by a reload.
func (e *Engine) reload() (config.Config, error) {
	current := e.currentConfig()
	if current.Path == "" {
		return current, nil
	}
	cfg, err := config.Load(current.Path)
	if err != nil {
		return current, err
	}
	cfg.Resolve(e.flags)
	cfg.Watch = true
	if err := cfg.Validate(); err != nil {
		return current, err
	}
	if err := core.SetLogLevel(cfg.LogLevel); err != nil {
		return current, err
	}

	e.mu.Lock()
	e.config = cfg
	e.mu.Unlock()
	core.LogInfo("reloaded %s", cfg.Path)
	return cfg, nil
}

func (e *Engine) relevant(change assets.Change) bool {
	if change.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	cfg := e.currentConfig()
	path := filepath.Clean(change.Path)
	switch change.Type {
	case assets.AssetTypeConfig:
		return cfg.Path != "" && path == filepath.Clean(cfg.Path)
	case assets.AssetTypeModel:
		return slices.ContainsFunc(cfg.Meshes, func(m config.MeshEntry) bool {
			return m.Source != "" && filepath.Clean(m.Source) == path
		})
	default:
		return false
	}
}

// watchDirs lists the directories holding the config file and the model
// sources, without duplicates.
func watchDirs(cfg config.Config) []string {
	var dirs []string
	add := func(file string) {
		dir := filepath.Dir(file)
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	if cfg.Path != "" {
		add(cfg.Path)
	}
	for _, m := range cfg.Meshes {
		if m.Source != "" {
			add(m.Source)
		}
	}
	return dirs
}
