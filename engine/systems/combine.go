package systems

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/meshtools/engine/assets/loaders"
	"github.com/spaghettifunk/meshtools/engine/config"
	"github.com/spaghettifunk/meshtools/engine/core"
	"github.com/spaghettifunk/meshtools/engine/math"
	"github.com/spaghettifunk/meshtools/engine/mesh"
)

var ErrNothingToCombine = errors.New("combine: no mesh entry could be built")

// CombinePipeline places every configured mesh in world space and merges
// them into one position/normal/uv mesh.
type CombinePipeline struct {
	jobs   *JobSystem
	models ModelSource
}

func NewCombinePipeline(jobs *JobSystem, models ModelSource) *CombinePipeline {
	return &CombinePipeline{jobs: jobs, models: models}
}

// Run builds and transforms the entries concurrently, then appends them in
// config order. An entry that fails to build, transform or merge is logged
// and skipped. The result is written to cfg.Output when it is set.
func (p *CombinePipeline) Run(ctx context.Context, cfg config.Config) (*mesh.Mesh, error) {
	clock := core.NewClock()
	clock.Start()

	placed := make([]*mesh.Mesh, len(cfg.Meshes))
	var wg sync.WaitGroup
	var submitErr error
	for i, entry := range cfg.Meshes {
		wg.Add(1)
		err := p.jobs.Submit(ctx, JobTask{
			Name: entry.Name,
			Run: func() error {
				m, err := BuildEntry(entry, p.models)
				if err != nil {
					return err
				}
				moved, ok := mesh.WithTransform(m, entry.Transform())
				if !ok {
					return fmt.Errorf("%s: %w", entry.Name, mesh.ErrAttributeNotFound)
				}
				placed[i] = moved
				return nil
			},
			OnFailure: func(err error) {
				core.LogWarn("skipping mesh %q: %s", entry.Name, err)
			},
			OnCompletionCallback: wg.Done,
		})
		if err != nil {
			wg.Done()
			submitErr = err
			break
		}
	}
	wg.Wait()
	if submitErr != nil {
		return nil, submitErr
	}

	out := mesh.EmptyDefault()
	merged := make([]int, 0, len(placed))
	for i, m := range placed {
		if m == nil {
			continue
		}
		if err := mesh.Append(out, m); err != nil {
			core.LogWarn("skipping mesh %q: %s", cfg.Meshes[i].Name, err)
			continue
		}
		core.LogDebug("merged %q: %d vertices", cfg.Meshes[i].Name, m.CountVertices())
		merged = append(merged, m.CountVertices())
	}
	if len(merged) == 0 {
		return nil, ErrNothingToCombine
	}

	clock.Stop()
	core.LogInfo("combined %d of %d meshes: %d vertices, %d triangles in %s",
		len(merged), len(cfg.Meshes), math.Sum(merged...), out.CountTriangles(), clock.Elapsed())
	if aabb, ok := mesh.ComputeAabb(out); ok {
		core.LogDebug("combined bounds center=%v half extents=%v", aabb.Center(), aabb.HalfExtents())
	}

	if cfg.Output != "" {
		if err := loaders.WriteGLB(cfg.Output, "combined", out); err != nil {
			return out, err
		}
		core.LogInfo("wrote %s", cfg.Output)
	}
	return out, nil
}
