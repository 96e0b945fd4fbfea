package math

import (
	m "math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief An approximate representation of PI divided by 2. */
	K_HALF_PI float32 = 0.5 * K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
	/** @brief Tolerance used when comparing transformed vertex data. */
	K_VERTEX_EPSILON float32 = 1e-5
)

// ------------------------------------------
// Vectors
// ------------------------------------------

/**
 * @brief Creates and returns a new 2-element vector using the supplied values.
 */
func NewVec2(x, y float32) Vec2 {
	return Vec2{x, y}
}

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @param z The z value.
 * @return A new 3-element vector.
 */
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

/**
 * @brief Creates and returns a 3-component vector with all components set to 0.0f.
 */
func NewVec3Zero() Vec3 {
	return Vec3{0.0, 0.0, 0.0}
}

/**
 * @brief Creates and returns a 3-component vector with all components set to 1.0f.
 */
func NewVec3One() Vec3 {
	return Vec3{1.0, 1.0, 1.0}
}

func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// NormalizeOrZero returns v scaled to unit length, or the zero vector when v
// has zero (or non-finite) length.
func NormalizeOrZero(v Vec3) Vec3 {
	l := v.Len()
	if l == 0 || m.IsInf(float64(l), 0) || m.IsNaN(float64(l)) {
		return NewVec3Zero()
	}
	r := v.Mul(1 / l)
	if !isFinite3(r) {
		return NewVec3Zero()
	}
	return r
}

func isFinite3(v Vec3) bool {
	for _, c := range v {
		if m.IsInf(float64(c), 0) || m.IsNaN(float64(c)) {
			return false
		}
	}
	return true
}

// ------------------------------------------
// Matrices
// ------------------------------------------

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 */
func NewMat4Identity() Mat4 {
	return mgl32.Ident4()
}

/**
 * @brief Creates and returns a translation matrix from the given position.
 */
func NewMat4Translation(position Vec3) Mat4 {
	return mgl32.Translate3D(position[0], position[1], position[2])
}

/**
 * @brief Returns a scale matrix using the provided scale.
 */
func NewMat4Scale(scale Vec3) Mat4 {
	return mgl32.Scale3D(scale[0], scale[1], scale[2])
}

// TransformPoint3 applies the full affine matrix, translation included, to p.
func TransformPoint3(mat Mat4, p Vec3) Vec3 {
	return mat.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformVector3 applies only the linear part of mat to v.
func TransformVector3(mat Mat4, v Vec3) Vec3 {
	return mat.Mul4x1(v.Vec4(0)).Vec3()
}

// NormalMatrix returns transpose(inverse(upper-left 3x3 of mat)), the matrix
// that keeps normals perpendicular to surfaces under non-uniform scale and
// shear. A singular linear part yields the zero matrix.
func NormalMatrix(mat Mat4) Mat3 {
	linear := mat.Mat3()
	if linear.Det() == 0 {
		return Mat3{}
	}
	return linear.Inv().Transpose()
}

// TransformNormal applies the normal matrix n to v and renormalizes. A
// degenerate result is exactly the zero vector.
func TransformNormal(n Mat3, v Vec3) Vec3 {
	return NormalizeOrZero(n.Mul3x1(v))
}

// Mat4WeightedSum returns sum(weights[k] * mats[k]).
func Mat4WeightedSum(mats []Mat4, weights []float32) Mat4 {
	var out Mat4
	for k := range mats {
		if k >= len(weights) {
			break
		}
		out = out.Add(mats[k].Mul(weights[k]))
	}
	return out
}

// ------------------------------------------
// Quaternion
// ------------------------------------------

func NewQuatIdentity() Quaternion {
	return mgl32.QuatIdent()
}

/**
 * @brief Creates a quaternion from the given axis and angle.
 *
 * @param axis The axis of rotation.
 * @param angle The angle of rotation in radians.
 * @param normalize Indicates if the quaternion should be normalized.
 * @return A new quaternion.
 */
func NewQuatFromAxisAngle(axis Vec3, angle float32, normalize bool) Quaternion {
	q := mgl32.QuatRotate(angle, axis)
	if normalize {
		q = q.Normalize()
	}
	return q
}

// NewQuatFromEulerXYZ rotates about X first, then Y, then Z.
func NewQuatFromEulerXYZ(xRadians, yRadians, zRadians float32) Quaternion {
	qx := mgl32.QuatRotate(xRadians, mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(yRadians, mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(zRadians, mgl32.Vec3{0, 0, 1})
	return qz.Mul(qy).Mul(qx).Normalize()
}

/**
 * @brief Converts provided degrees to radians.
 */
func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

/**
 * @brief Converts provided radians to degrees.
 */
func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}

// ------------------------------------------
// Extents
// ------------------------------------------

func (e Extents3D) Center() Vec3 {
	return e.Min.Add(e.Max).Mul(0.5)
}

func (e Extents3D) HalfExtents() Vec3 {
	return e.Max.Sub(e.Min).Mul(0.5)
}

// Grow extends e to contain p.
func (e Extents3D) Grow(p Vec3) Extents3D {
	for i := 0; i < 3; i++ {
		e.Min[i] = min(e.Min[i], p[i])
		e.Max[i] = max(e.Max[i], p[i])
	}
	return e
}
