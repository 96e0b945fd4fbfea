package mesh

import (
	"fmt"

	"github.com/spaghettifunk/meshtools/engine/core"
	"github.com/spaghettifunk/meshtools/engine/math"
)

// JointRef is an opaque handle to a joint owned by the host scene graph.
type JointRef = core.Identifier

// SkinBinding associates joint i with inverse bind pose i. Both slices are
// owned by the caller and only read during skinning.
type SkinBinding struct {
	Joints           []JointRef
	InverseBindPoses []math.Mat4
}

// JointResolver looks up the current world transform of a joint.
type JointResolver interface {
	JointWorld(ref JointRef) (math.Mat4, bool)
}

// JointResolverFunc adapts a plain function to JointResolver.
type JointResolverFunc func(ref JointRef) (math.Mat4, bool)

func (f JointResolverFunc) JointWorld(ref JointRef) (math.Mat4, bool) {
	return f(ref)
}

// SkinMatrices returns joint world * inverse bind pose for every joint of the
// binding. Any joint the resolver does not know fails the whole call.
func SkinMatrices(binding SkinBinding, resolver JointResolver) ([]math.Mat4, error) {
	if len(binding.Joints) != len(binding.InverseBindPoses) {
		return nil, fmt.Errorf("%w: %d joints, %d inverse bind poses", ErrBindPoseMismatch, len(binding.Joints), len(binding.InverseBindPoses))
	}

	matrices := make([]math.Mat4, len(binding.Joints))
	for i, joint := range binding.Joints {
		world, ok := resolver.JointWorld(joint)
		if !ok {
			return nil, fmt.Errorf("%w: joint %d (%s)", ErrUnresolvedJoint, i, joint)
		}
		matrices[i] = world.Mul4(binding.InverseBindPoses[i])
	}
	return matrices, nil
}

// SkinModel blends four joint matrices by the given weights. Weights are not
// renormalized.
func SkinModel(jointMatrices []math.Mat4, indices [4]uint16, weights math.Vec4) math.Mat4 {
	mats := [4]math.Mat4{
		jointMatrices[indices[0]],
		jointMatrices[indices[1]],
		jointMatrices[indices[2]],
		jointMatrices[indices[3]],
	}
	return math.Mat4WeightedSum(mats[:], weights[:])
}

// WithSkinnedTransform returns a copy of m deformed by its skin: each vertex
// is moved by the weighted blend of its four joints' skin matrices and its
// normal by the inverse transpose of that blend.
//
// On failure no mesh is returned. Vertices past the end of the joint index or
// weight channels are copied unchanged, as is a mesh with no skinning data.
func WithSkinnedTransform(m *Mesh, binding SkinBinding, resolver JointResolver) (*Mesh, error) {
	jointMatrices, err := SkinMatrices(binding, resolver)
	if err != nil {
		return nil, err
	}

	indices := AttributeAs[Uint16x4Values](m, AttributeJointIndex)
	weights := AttributeAs[Float32x4Values](m, AttributeJointWeight)
	count := min(len(indices), len(weights))

	for v := 0; v < count; v++ {
		for _, j := range indices[v] {
			if int(j) >= len(jointMatrices) {
				return nil, fmt.Errorf("%w: vertex %d references joint %d of %d", ErrJointIndexOutOfRange, v, j, len(jointMatrices))
			}
		}
	}

	models := make([]math.Mat4, count)
	for v := 0; v < count; v++ {
		models[v] = SkinModel(jointMatrices, indices[v], weights[v])
	}

	out := m.Clone()
	for i, p := range PositionsMut(out) {
		if i >= count {
			break
		}
		*p = math.TransformPoint3(models[i], *p)
	}

	// The blended matrix differs per vertex, so the normal matrix does too.
	for i, n := range NormalsMut(out) {
		if i >= count {
			break
		}
		*n = math.TransformNormal(math.NormalMatrix(models[i]), *n)
	}

	return out, nil
}
