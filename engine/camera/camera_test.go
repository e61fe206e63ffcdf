package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNewCameraDefaults(t *testing.T) {
	cam := NewCamera()
	if got, want := cam.Fov(), mgl32.DegToRad(45); !floatApprox(got, want, epsilon) {
		t.Errorf("Fov() = %v, want %v", got, want)
	}
	if cam.Aspect() != 1 || cam.Near() != 0.1 || cam.Far() != 100 {
		t.Errorf("Aspect/Near/Far = %v/%v/%v, want 1/0.1/100", cam.Aspect(), cam.Near(), cam.Far())
	}
	if cam.Controller() != nil {
		t.Error("Controller() != nil, want nil")
	}
	if got := cam.ViewMatrix(); got != mgl32.Ident4() {
		t.Errorf("ViewMatrix() = %v, want identity", got)
	}
	want := mgl32.Perspective(cam.Fov(), 1, 0.1, 100)
	if got := cam.ProjectionMatrix(); !matApprox(got, want) {
		t.Errorf("ProjectionMatrix() = %v, want %v", got, want)
	}
}

func TestCameraUpdateWithoutControllerIsNoop(t *testing.T) {
	cam := NewCamera()
	before := cam.ViewProjectionMatrix()
	cam.Update()
	if got := cam.ViewProjectionMatrix(); got != before {
		t.Errorf("ViewProjectionMatrix() = %v, want %v", got, before)
	}
}

func TestCameraFollowsController(t *testing.T) {
	cc, tracker, _ := newTestController(ModeFirstPerson, WithPosition(2, 1, 5))
	cam := NewCamera(WithController(cc), WithAspect(16.0/9.0))
	if got := cam.ViewMatrix(); !matApprox(got, cc.ViewMatrix()) {
		t.Errorf("ViewMatrix() after NewCamera = %v, want %v", got, cc.ViewMatrix())
	}

	hold(tracker, common.KeyW)
	cc.Update(1)

	// stale until Update
	if got := cam.ViewMatrix(); matApprox(got, cc.ViewMatrix()) {
		t.Error("ViewMatrix() tracked the controller before Camera.Update")
	}
	cam.Update()
	if got := cam.ViewMatrix(); !matApprox(got, cc.ViewMatrix()) {
		t.Errorf("ViewMatrix() = %v, want %v", got, cc.ViewMatrix())
	}

	want := cam.ProjectionMatrix().Mul4(cam.ViewMatrix())
	if got := cam.ViewProjectionMatrix(); !matApprox(got, want) {
		t.Errorf("ViewProjectionMatrix() = %v, want P*V %v", got, want)
	}
	inv := cam.ProjectionMatrix().Mul4(cam.InverseProjectionMatrix())
	if !matApprox(inv, mgl32.Ident4()) {
		t.Errorf("P * InverseProjectionMatrix() = %v, want identity", inv)
	}
}

func TestCameraSettersRecomputeProjection(t *testing.T) {
	cam := NewCamera()
	cam.SetFov(mgl32.DegToRad(90))
	cam.SetAspect(2)
	cam.SetNear(0.5)
	cam.SetFar(500)
	want := mgl32.Perspective(mgl32.DegToRad(90), 2, 0.5, 500)
	if got := cam.ProjectionMatrix(); !matApprox(got, want) {
		t.Errorf("ProjectionMatrix() = %v, want %v", got, want)
	}
}

func TestCameraSetController(t *testing.T) {
	cc, _, _ := newTestController(ModeFirstPerson, WithPosition(0, 0, 10))
	cam := NewCamera()
	cam.SetController(cc)
	if cam.Controller() != cc {
		t.Error("Controller() did not return the attached controller")
	}
	if got := cam.ViewMatrix(); !matApprox(got, mgl32.Translate3D(0, 0, -10)) {
		t.Errorf("ViewMatrix() = %v, want translate(0, 0, -10)", got)
	}
}

func TestCameraUniformMarshal(t *testing.T) {
	cc, _, _ := newTestController(ModeFirstPerson, WithPosition(1.5, -2, 3.25))
	cam := NewCamera(WithController(cc))
	u := cam.Uniform()
	if u.Size() != 80 {
		t.Fatalf("Size() = %d, want 80", u.Size())
	}
	buf := u.Marshal()
	if len(buf) != 80 {
		t.Fatalf("len(Marshal()) = %d, want 80", len(buf))
	}
	vp := cam.ViewProjectionMatrix()
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])); got != vp[0] {
		t.Errorf("view_proj[0] = %v, want %v", got, vp[0])
	}
	for i, want := range []float32{1.5, -2, 3.25} {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[64+i*4:]))
		if got != want {
			t.Errorf("camera_position[%d] = %v, want %v", i, got, want)
		}
	}
}
