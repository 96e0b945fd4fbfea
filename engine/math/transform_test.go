package math

import (
	"testing"
)

func TestTransformLocalIsTRS(t *testing.T) {
	tr := TransformFromPositionRotationScale(
		NewVec3(1, 2, 3),
		NewQuatFromAxisAngle(NewVec3(0, 0, 1), K_HALF_PI, true),
		NewVec3(2, 2, 2),
	)
	// Scale first, then rotate +X onto +Y, then translate.
	got := TransformPoint3(tr.GetLocal(), NewVec3(1, 0, 0))
	if want := NewVec3(1, 4, 3); !Vec3Compare(got, want, K_VERTEX_EPSILON) {
		t.Errorf("local * (1,0,0) = %v, want %v", got, want)
	}
	if tr.IsDirty {
		t.Error("GetLocal() left the transform dirty")
	}
}

func TestTransformWorldFollowsParent(t *testing.T) {
	root := TransformFromPosition(NewVec3(0, 5, 0))
	mid := TransformFromRotation(NewQuatFromAxisAngle(NewVec3(0, 1, 0), K_PI, true))
	mid.Parent = root
	leaf := TransformFromPosition(NewVec3(1, 0, 0))
	leaf.Parent = mid

	tests := []struct {
		name string
		mat  Mat4
	}{
		{"GetWorld", leaf.GetWorld()},
		{"ComputeWorld", leaf.ComputeWorld()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TransformPoint3(tt.mat, NewVec3Zero())
			if want := NewVec3(-1, 5, 0); !Vec3Compare(got, want, K_VERTEX_EPSILON) {
				t.Errorf("world origin = %v, want %v", got, want)
			}
		})
	}
}

func TestComputeLocalDoesNotCache(t *testing.T) {
	tr := TransformCreate()
	tr.SetPosition(NewVec3(3, 0, 0))
	m := tr.ComputeLocal()
	if !tr.IsDirty {
		t.Error("ComputeLocal() cleared the dirty flag")
	}
	if !Mat4Compare(m, NewMat4Translation(NewVec3(3, 0, 0)), K_VERTEX_EPSILON) {
		t.Errorf("ComputeLocal() = %v", m)
	}
}

func TestTransformMutators(t *testing.T) {
	tr := TransformCreate()
	tr.Translate(NewVec3(1, 0, 0))
	tr.Translate(NewVec3(0, 2, 0))
	tr.ScaleIt(NewVec3(2, 3, 4))
	tr.ScaleIt(NewVec3(0.5, 1, 1))
	if !Vec3Compare(tr.Position, NewVec3(1, 2, 0), K_VERTEX_EPSILON) {
		t.Errorf("Position = %v", tr.Position)
	}
	if !Vec3Compare(tr.Scale, NewVec3(1, 3, 4), K_VERTEX_EPSILON) {
		t.Errorf("Scale = %v", tr.Scale)
	}

	quarter := NewQuatFromAxisAngle(NewVec3(0, 0, 1), K_HALF_PI, true)
	tr.Rotate(quarter)
	tr.Rotate(quarter)
	got := tr.Rotation.Rotate(NewVec3(1, 0, 0))
	if !Vec3Compare(got, NewVec3(-1, 0, 0), K_VERTEX_EPSILON) {
		t.Errorf("two quarter turns map +X to %v", got)
	}
}

func TestTransformFromMatrix(t *testing.T) {
	tests := []struct {
		name string
		mat  Mat4
	}{
		{"identity", NewMat4Identity()},
		{"translation", NewMat4Translation(NewVec3(4, -2, 7))},
		{"trs", NewMat4Translation(NewVec3(1, 2, 3)).Mul4(NewQuatFromEulerXYZ(0.3, 0.6, -0.9).Mat4()).Mul4(NewMat4Scale(NewVec3(2, 0.5, 1.5)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := TransformFromMatrix(tt.mat)
			if tr.ComputeLocal() != tt.mat {
				t.Errorf("ComputeLocal() = %v, want %v", tr.ComputeLocal(), tt.mat)
			}

			// Rebuilding from the decomposed parts reproduces the matrix.
			tr.SetPositionRotationScale(tr.Position, tr.Rotation, tr.Scale)
			if got := tr.GetLocal(); !Mat4Compare(got, tt.mat, 1e-4) {
				t.Errorf("rebuilt local = %v, want %v", got, tt.mat)
			}
		})
	}
}

func TestNilTransformIsIdentity(t *testing.T) {
	var tr *Transform
	if tr.GetWorld() != NewMat4Identity() || tr.ComputeWorld() != NewMat4Identity() {
		t.Error("nil transform is not the identity")
	}
}
