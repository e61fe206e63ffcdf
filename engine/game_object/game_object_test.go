package game_object

import (
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-5

func floatApprox(a, b, eps float32) bool {
	return mgl32.Abs(a-b) <= eps
}

func vecApprox(a, b mgl32.Vec3) bool {
	for i := range a {
		if !floatApprox(a[i], b[i], epsilon) {
			return false
		}
	}
	return true
}

func matApprox(a, b mgl32.Mat4) bool {
	for i := range a {
		if !floatApprox(a[i], b[i], epsilon) {
			return false
		}
	}
	return true
}

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject()
	if !obj.Enabled() {
		t.Error("Enabled() = false, want true")
	}
	if obj.ID() != 0 || obj.Ephemeral() {
		t.Errorf("ID/Ephemeral = %d/%v, want 0/false", obj.ID(), obj.Ephemeral())
	}
	if sx, sy, sz := obj.Scale(); sx != 1 || sy != 1 || sz != 1 {
		t.Errorf("Scale() = (%v, %v, %v), want (1, 1, 1)", sx, sy, sz)
	}
	if got := obj.Transform(); got != mgl32.Ident4() {
		t.Errorf("Transform() = %v, want identity", got)
	}
}

func TestBuilderOptions(t *testing.T) {
	obj := NewGameObject(
		WithID(7),
		WithName("cube"),
		WithEnabled(false),
		WithEphemeral(true),
		WithPosition(1, 2, 3),
		WithScale(2, 2, 2),
		WithRotation(0.1, 0.2, 0.3),
		WithRotationSpeed(0, 1, 0),
	)
	if obj.ID() != 7 || obj.Name() != "cube" || obj.Enabled() || !obj.Ephemeral() {
		t.Errorf("ID/Name/Enabled/Ephemeral = %d/%q/%v/%v, want 7/\"cube\"/false/true",
			obj.ID(), obj.Name(), obj.Enabled(), obj.Ephemeral())
	}
	pos, scale, rot, rotSpeed := obj.TransformData()
	if pos != [3]float32{1, 2, 3} {
		t.Errorf("pos = %v, want [1 2 3]", pos)
	}
	if scale != [3]float32{2, 2, 2} {
		t.Errorf("scale = %v, want [2 2 2]", scale)
	}
	if rot != [3]float32{0.1, 0.2, 0.3} {
		t.Errorf("rot = %v, want [0.1 0.2 0.3]", rot)
	}
	if rotSpeed != [3]float32{0, 1, 0} {
		t.Errorf("rotSpeed = %v, want [0 1 0]", rotSpeed)
	}
}

func TestUpdateIntegratesRotationSpeed(t *testing.T) {
	obj := NewGameObject(WithRotationSpeed(1, -2, 0.5))
	obj.Update(0.5)
	obj.Update(0.5)
	rx, ry, rz := obj.Rotation()
	want := mgl32.Vec3{1, -2, 0.5}
	if got := (mgl32.Vec3{rx, ry, rz}); !vecApprox(got, want) {
		t.Errorf("Rotation() = %v, want %v", got, want)
	}
}

func TestUpdateSkipsDisabledAndNonPositiveDelta(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		dt      float32
	}{
		{"disabled", false, 1},
		{"zero dt", true, 0},
		{"negative dt", true, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := NewGameObject(WithRotationSpeed(1, 1, 1), WithEnabled(tt.enabled))
			obj.Update(tt.dt)
			if rx, ry, rz := obj.Rotation(); rx != 0 || ry != 0 || rz != 0 {
				t.Errorf("Rotation() = (%v, %v, %v), want zero", rx, ry, rz)
			}
		})
	}
}

func TestTransformComposition(t *testing.T) {
	obj := NewGameObject(WithPosition(5, 0, 0), WithRotation(0, math.Pi/2, 0), WithScale(2, 2, 2))
	// local +X scaled to 2, yawed onto -Z, then translated
	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, obj.Transform())
	want := mgl32.Vec3{5, 0, -2}
	if !vecApprox(got, want) {
		t.Errorf("Transform() * (1, 0, 0) = %v, want %v", got, want)
	}
}

func TestTransformRotationOrder(t *testing.T) {
	obj := NewGameObject(WithRotation(0.3, 0.7, -0.4))
	want := mgl32.HomogRotate3DY(0.7).Mul4(mgl32.HomogRotate3DX(0.3)).Mul4(mgl32.HomogRotate3DZ(-0.4))
	if got := obj.Transform(); !matApprox(got, want) {
		t.Errorf("Transform() = %v, want Ry*Rx*Rz %v", got, want)
	}
}

func TestSettersConcurrentWithUpdate(t *testing.T) {
	obj := NewGameObject(WithRotationSpeed(0, 1, 0))
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				obj.Update(0.01)
				obj.SetPosition(float32(i), 0, 0)
				_ = obj.Transform()
			}
		}()
	}
	wg.Wait()
	if _, ry, _ := obj.Rotation(); !floatApprox(ry, 8, 1e-2) {
		t.Errorf("ry = %v, want 8", ry)
	}
}
