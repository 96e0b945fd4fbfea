package mesh

import (
	"iter"

	"github.com/spaghettifunk/meshtools/engine/math"
)

// The views below never fail. A channel that is missing, or stored in a
// format other than the one the view expects, yields no elements, so zipping
// several views naturally stops at the shortest.
//
// Mutable views hand out pointers into channel storage. math.Vec2/3/4 are
// defined over [N]float32, so *[N]float32 -> *math.VecN is a plain pointer
// conversion checked by the compiler and no data is copied.

// AttributeAs returns the channel stored under id if it has concrete type T,
// or the zero value of T otherwise.
func AttributeAs[T VertexAttributeValues](m *Mesh, id AttributeID) T {
	var zero T
	values, ok := m.Attribute(id)
	if !ok {
		return zero
	}
	typed, ok := values.(T)
	if !ok {
		return zero
	}
	return typed
}

// Len returns the number of positions of the mesh, or 0 when it has none.
func Len(m *Mesh) int {
	return len(AttributeAs[Float32x3Values](m, AttributePosition))
}

func Positions(m *Mesh) iter.Seq2[int, math.Vec3] {
	return seq(AttributeAs[Float32x3Values](m, AttributePosition), vec3)
}

func PositionsMut(m *Mesh) iter.Seq2[int, *math.Vec3] {
	return seqMut(AttributeAs[Float32x3Values](m, AttributePosition), vec3Ptr)
}

func Normals(m *Mesh) iter.Seq2[int, math.Vec3] {
	return seq(AttributeAs[Float32x3Values](m, AttributeNormal), vec3)
}

func NormalsMut(m *Mesh) iter.Seq2[int, *math.Vec3] {
	return seqMut(AttributeAs[Float32x3Values](m, AttributeNormal), vec3Ptr)
}

func UVs(m *Mesh) iter.Seq2[int, math.Vec2] {
	return seq(AttributeAs[Float32x2Values](m, AttributeUV0), vec2)
}

func UVsMut(m *Mesh) iter.Seq2[int, *math.Vec2] {
	return seqMut(AttributeAs[Float32x2Values](m, AttributeUV0), vec2Ptr)
}

func Tangents(m *Mesh) iter.Seq2[int, math.Vec4] {
	return seq(AttributeAs[Float32x4Values](m, AttributeTangent), vec4)
}

func TangentsMut(m *Mesh) iter.Seq2[int, *math.Vec4] {
	return seqMut(AttributeAs[Float32x4Values](m, AttributeTangent), vec4Ptr)
}

func Colors(m *Mesh) iter.Seq2[int, math.Vec4] {
	return seq(AttributeAs[Float32x4Values](m, AttributeColor), vec4)
}

func JointWeights(m *Mesh) iter.Seq2[int, math.Vec4] {
	return seq(AttributeAs[Float32x4Values](m, AttributeJointWeight), vec4)
}

func JointIndices(m *Mesh) iter.Seq2[int, [4]uint16] {
	return seq(AttributeAs[Uint16x4Values](m, AttributeJointIndex), func(e [4]uint16) [4]uint16 { return e })
}

func vec2(e [2]float32) math.Vec2 { return e }
func vec3(e [3]float32) math.Vec3 { return e }
func vec4(e [4]float32) math.Vec4 { return e }

func vec2Ptr(e *[2]float32) *math.Vec2 { return (*math.Vec2)(e) }
func vec3Ptr(e *[3]float32) *math.Vec3 { return (*math.Vec3)(e) }
func vec4Ptr(e *[4]float32) *math.Vec4 { return (*math.Vec4)(e) }

func seq[S ~[]E, E, V any](s S, conv func(E) V) iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i := range s {
			if !yield(i, conv(s[i])) {
				return
			}
		}
	}
}

func seqMut[S ~[]E, E, V any](s S, conv func(*E) *V) iter.Seq2[int, *V] {
	return func(yield func(int, *V) bool) {
		for i := range s {
			if !yield(i, conv(&s[i])) {
				return
			}
		}
	}
}
