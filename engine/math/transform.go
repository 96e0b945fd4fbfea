package math

import "github.com/go-gl/mathgl/mgl32"

func TransformCreate() *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(NewVec3Zero(), NewQuatIdentity(), NewVec3One())
	t.Local = NewMat4Identity()
	t.Parent = nil
	return t
}

func TransformFromPosition(position Vec3) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(position, NewQuatIdentity(), NewVec3One())
	t.Local = NewMat4Identity()
	t.Parent = nil
	return t
}

func TransformFromRotation(rotation Quaternion) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(NewVec3Zero(), rotation, NewVec3One())
	t.Local = NewMat4Identity()
	t.Parent = nil
	return t
}

func TransformFromPositionRotation(position Vec3, rotation Quaternion) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(position, rotation, NewVec3One())
	t.Local = NewMat4Identity()
	t.Parent = nil
	return t
}

func TransformFromPositionRotationScale(position Vec3, rotation Quaternion, scale Vec3) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(position, rotation, scale)
	t.Local = NewMat4Identity()
	t.Parent = nil
	return t
}

// TransformFromMatrix builds a transform whose local matrix is exactly m.
// Position, rotation and scale are decomposed from m assuming it carries no
// shear; calling any setter afterwards rebuilds the local matrix from them.
func TransformFromMatrix(m Mat4) *Transform {
	col0 := m.Col(0).Vec3()
	col1 := m.Col(1).Vec3()
	col2 := m.Col(2).Vec3()
	scale := NewVec3(col0.Len(), col1.Len(), col2.Len())
	if m.Mat3().Det() < 0 {
		scale[0] = -scale[0]
	}

	rot := NewMat4Identity()
	axes := [3]Vec3{col0, col1, col2}
	for c := 0; c < 3; c++ {
		if scale[c] != 0 {
			axes[c] = axes[c].Mul(1 / scale[c])
		}
		rot.SetCol(c, axes[c].Vec4(0))
	}

	return &Transform{
		Position: m.Col(3).Vec3(),
		Rotation: mgl32.Mat4ToQuat(rot).Normalize(),
		Scale:    scale,
		IsDirty:  false,
		Local:    m,
	}
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
	t.IsDirty = true
}

func (t *Transform) SetRotation(rotation Quaternion) {
	t.Rotation = rotation
	t.IsDirty = true
}

func (t *Transform) Rotate(rotation Quaternion) {
	t.Rotation = t.Rotation.Mul(rotation)
	t.IsDirty = true
}

func (t *Transform) SetScale(scale Vec3) {
	t.Scale = scale
	t.IsDirty = true
}

func (t *Transform) ScaleIt(scale Vec3) {
	t.Scale = NewVec3(t.Scale[0]*scale[0], t.Scale[1]*scale[1], t.Scale[2]*scale[2])
	t.IsDirty = true
}

func (t *Transform) SetPositionRotation(position Vec3, rotation Quaternion) {
	t.Position = position
	t.Rotation = rotation
	t.IsDirty = true
}

func (t *Transform) SetPositionRotationScale(position Vec3, rotation Quaternion, scale Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.IsDirty = true
}

func (t *Transform) TranslateRotate(translation Vec3, rotation Quaternion) {
	t.Position = t.Position.Add(translation)
	t.Rotation = t.Rotation.Mul(rotation)
	t.IsDirty = true
}

// GetLocal returns translation * rotation * scale, applied to column vectors,
// and caches it in Local.
func (t *Transform) GetLocal() Mat4 {
	if t != nil {
		if t.IsDirty {
			t.Local = t.ComputeLocal()
			t.IsDirty = false
		}
		return t.Local
	}
	return NewMat4Identity()
}

// ComputeLocal is GetLocal without touching the cache, so it is safe to call
// on a transform shared between goroutines.
func (t *Transform) ComputeLocal() Mat4 {
	if t == nil {
		return NewMat4Identity()
	}
	if !t.IsDirty {
		return t.Local
	}
	tr := NewMat4Translation(t.Position)
	r := t.Rotation.Mat4()
	s := NewMat4Scale(t.Scale)
	return tr.Mul4(r).Mul4(s)
}

// ComputeWorld is GetWorld without touching any cache in the parent chain.
func (t *Transform) ComputeWorld() Mat4 {
	if t == nil {
		return NewMat4Identity()
	}
	l := t.ComputeLocal()
	if t.Parent != nil {
		return t.Parent.ComputeWorld().Mul4(l)
	}
	return l
}

// GetWorld walks the parent chain: parent world * local.
func (t *Transform) GetWorld() Mat4 {
	if t != nil {
		l := t.GetLocal()
		if t.Parent != nil {
			p := t.Parent.GetWorld()
			return p.Mul4(l)
		}
		return l
	}
	return NewMat4Identity()
}
