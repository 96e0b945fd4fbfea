package systems

import (
	"fmt"

	"github.com/spaghettifunk/meshtools/engine/assets/loaders"
	"github.com/spaghettifunk/meshtools/engine/config"
	"github.com/spaghettifunk/meshtools/engine/mesh"
)

// ModelSource loads glTF models referenced by mesh entries.
// *assets.AssetManager satisfies it.
type ModelSource interface {
	LoadModel(path string) (*loaders.Model, error)
}

// BuildEntry produces the untransformed mesh of a config entry, either a
// generated shape or a glTF model baked into one mesh.
func BuildEntry(e config.MeshEntry, models ModelSource) (*mesh.Mesh, error) {
	if e.Source != "" {
		if models == nil {
			return nil, fmt.Errorf("%s: no model source to load %s", e.Name, e.Source)
		}
		md, err := models.LoadModel(e.Source)
		if err != nil {
			return nil, err
		}
		return md.Bake()
	}

	switch e.Shape {
	case config.ShapeCube:
		return mesh.Cube(e.SizeAt(0, 1)), nil
	case config.ShapeBox:
		return mesh.Box(e.SizeAt(0, 1), e.SizeAt(1, 1), e.SizeAt(2, 1), 1, 1), nil
	case config.ShapePlane:
		return mesh.Plane(e.SizeAt(0, 1), e.SizeAt(1, 1), e.SegmentsAt(0, 1), e.SegmentsAt(1, 1)), nil
	case config.ShapeTriangle:
		return mesh.Triangle(), nil
	case config.ShapeSphere:
		return mesh.UVSphere(e.SizeAt(0, 0.5), e.SegmentsAt(0, 32), e.SegmentsAt(1, 16)), nil
	case config.ShapeStrip:
		return mesh.SkinnedStrip(), nil
	default:
		return nil, fmt.Errorf("%s: unknown shape %q", e.Name, e.Shape)
	}
}
