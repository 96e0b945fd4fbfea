package systems

import (
	"context"
	"fmt"
	gomath "math"
	"sync"

	"github.com/spaghettifunk/meshtools/engine/assets/loaders"
	"github.com/spaghettifunk/meshtools/engine/config"
	"github.com/spaghettifunk/meshtools/engine/core"
	"github.com/spaghettifunk/meshtools/engine/math"
	"github.com/spaghettifunk/meshtools/engine/mesh"
	"github.com/spaghettifunk/meshtools/engine/scene"
)

// StripRig is the two joint skeleton driving mesh.SkinnedStrip. Joint 1 is a
// child of joint 0 and both bind at (0.5, 1, 0), so the rest pose leaves the
// strip where it is and rotating joint 1 bends the strip about that point.
type StripRig struct {
	Graph   *scene.Graph
	Root    core.Identifier
	Bend    core.Identifier
	Binding mesh.SkinBinding
}

func NewStripRig() (*StripRig, error) {
	g := scene.NewGraph()
	pivot := math.NewVec3(0.5, 1, 0)

	root, err := g.Spawn("joint0", math.TransformFromPosition(pivot), core.InvalidID)
	if err != nil {
		return nil, err
	}
	bend, err := g.Spawn("joint1", nil, root.ID)
	if err != nil {
		return nil, err
	}

	inverseBind := math.NewMat4Translation(pivot.Mul(-1))
	return &StripRig{
		Graph: g,
		Root:  root.ID,
		Bend:  bend.ID,
		Binding: mesh.SkinBinding{
			Joints:           []mesh.JointRef{root.ID, bend.ID},
			InverseBindPoses: []math.Mat4{inverseBind, inverseBind},
		},
	}, nil
}

// Pose rotates the bend joint about +Z.
func (r *StripRig) Pose(radians float32) error {
	return r.Graph.UpdateTransform(r.Bend, func(t *math.Transform) {
		t.SetRotation(math.NewQuatFromAxisAngle(math.NewVec3(0, 0, 1), radians, true))
	})
}

// snapshot captures the current joint worlds so a frame can be skinned
// while the rig moves on to the next pose.
func (r *StripRig) snapshot() (mesh.JointResolver, error) {
	worlds := make(map[mesh.JointRef]math.Mat4, len(r.Binding.Joints))
	for _, j := range r.Binding.Joints {
		w, ok := r.Graph.JointWorld(j)
		if !ok {
			return nil, fmt.Errorf("%w: %s", mesh.ErrUnresolvedJoint, j)
		}
		worlds[j] = w
	}
	return mesh.JointResolverFunc(func(ref mesh.JointRef) (math.Mat4, bool) {
		w, ok := worlds[ref]
		return w, ok
	}), nil
}

// SkinFrame is one sample of the strip animation.
type SkinFrame struct {
	Index  int
	Time   float64
	Angle  float32
	Mesh   *mesh.Mesh
	Bounds math.Extents3D
}

// SkinPipeline animates the skinned strip and exports its last frame.
type SkinPipeline struct {
	jobs *JobSystem
}

func NewSkinPipeline(jobs *JobSystem) *SkinPipeline {
	return &SkinPipeline{jobs: jobs}
}

// Animate samples cfg.Skin.Frames poses over cfg.Skin.Duration seconds. At
// time t joint 1 is rotated by amplitude * sin(t). Poses are taken in order
// and the frames are skinned on the job system.
func (p *SkinPipeline) Animate(ctx context.Context, cfg config.Config) ([]SkinFrame, error) {
	if cfg.Skin.Frames <= 0 {
		return nil, fmt.Errorf("%w: skin frames must be positive", core.ErrInvalidConfig)
	}
	rig, err := NewStripRig()
	if err != nil {
		return nil, err
	}
	strip := mesh.SkinnedStrip()
	amplitude := math.DegToRad(cfg.Skin.Amplitude)

	frames := make([]SkinFrame, cfg.Skin.Frames)
	errs := make([]error, cfg.Skin.Frames)
	var wg sync.WaitGroup
	var submitErr error
	for f := range frames {
		t := math.Lerp(0, cfg.Skin.Duration, float64(f)/float64(cfg.Skin.Frames))
		angle := amplitude * float32(gomath.Sin(t))
		if err := rig.Pose(angle); err != nil {
			submitErr = err
			break
		}
		resolver, err := rig.snapshot()
		if err != nil {
			submitErr = err
			break
		}
		frames[f] = SkinFrame{Index: f, Time: t, Angle: angle}

		wg.Add(1)
		err = p.jobs.Submit(ctx, JobTask{
			Name: fmt.Sprintf("frame %d", f),
			Run: func() error {
				skinned, err := mesh.WithSkinnedTransform(strip, rig.Binding, resolver)
				if err != nil {
					return err
				}
				frames[f].Mesh = skinned
				frames[f].Bounds, _ = mesh.ComputeAabb(skinned)
				return nil
			},
			OnFailure:            func(err error) { errs[f] = err },
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
	for f, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", f, err)
		}
	}
	return frames, nil
}

// Run animates the strip, logs the bounds of every frame and writes the last
// one to cfg.Output when it is set.
func (p *SkinPipeline) Run(ctx context.Context, cfg config.Config) (*mesh.Mesh, error) {
	frames, err := p.Animate(ctx, cfg)
	if err != nil {
		return nil, err
	}
	for _, fr := range frames {
		core.LogDebug("frame %d t=%.3fs angle=%.1f° bounds min=%v max=%v",
			fr.Index, fr.Time, math.RadToDeg(fr.Angle), fr.Bounds.Min, fr.Bounds.Max)
	}

	last := frames[len(frames)-1]
	core.LogInfo("skinned %d frames, last frame spans %v", len(frames), last.Bounds.HalfExtents().Mul(2))

	if cfg.Output != "" {
		if err := loaders.WriteGLB(cfg.Output, "skinned", last.Mesh); err != nil {
			return last.Mesh, err
		}
		core.LogInfo("wrote %s", cfg.Output)
	}
	return last.Mesh, nil
}
