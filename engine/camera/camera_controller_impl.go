package camera

import (
	"log/slog"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default tuning values for NewCameraController.
const (
	DefaultMoveSpeed        float32 = 3.0  // units per second
	DefaultRotationSpeed    float32 = 2.0  // radians per second per unit of look input
	DefaultMaxDeltaTime     float32 = 1.0  // seconds
	DefaultSprintMultiplier float32 = 2.0
	DefaultSlowMultiplier   float32 = 0.25
	DefaultZoomSpeed        float32 = 1.0 // units per wheel notch
)

// DefaultPitchLimit keeps the camera one degree short of straight up or down.
var DefaultPitchLimit = mgl32.DegToRad(89)

// maxPitchLimit is the largest accepted clamp; anything at or past vertical flips the view.
var maxPitchLimit = float32(math.Pi/2) - 1e-4

var (
	worldUp      = mgl32.Vec3{0, 1, 0}
	localRight   = mgl32.Vec3{1, 0, 0}
	localForward = mgl32.Vec3{0, 0, -1}
)

// glide holds an in-progress ScrollTo animation over the ground plane.
type glide struct {
	tweenX *gween.Tween
	tweenZ *gween.Tween
	doneX  bool
	doneZ  bool
}

type cameraControllerImpl struct {
	mu *sync.Mutex

	tracker  input.InputTracker
	bindings KeyBindings
	mode     Mode

	position mgl32.Vec3
	yaw      float32
	pitch    float32

	moveSpeed         float32
	rotationSpeed     float32
	pitchLimit        float32
	maxDeltaTime      float32
	sprintMultiplier  float32
	slowMultiplier    float32
	zoomSpeed         float32
	normalizeDiagonal bool

	// input queued between frames, consumed by Update
	lookX, lookY float32
	scroll       float32

	glide *glide
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a camera controller in the given mode that reads key state
// from tracker. The tracker is required and NewCameraController panics if it is nil.
//
// Parameters:
//   - tracker: the input tracker to query each Update
//   - mode: the initial motion policy
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(tracker input.InputTracker, mode Mode, options ...CameraControllerOption) CameraController {
	if tracker == nil {
		panic("camera: NewCameraController requires a non-nil InputTracker")
	}
	cc := &cameraControllerImpl{
		mu:               &sync.Mutex{},
		tracker:          tracker,
		bindings:         DefaultKeyBindings(),
		mode:             mode,
		moveSpeed:        DefaultMoveSpeed,
		rotationSpeed:    DefaultRotationSpeed,
		pitchLimit:       DefaultPitchLimit,
		maxDeltaTime:     DefaultMaxDeltaTime,
		sprintMultiplier: DefaultSprintMultiplier,
		slowMultiplier:   DefaultSlowMultiplier,
		zoomSpeed:        DefaultZoomSpeed,
	}
	for _, option := range options {
		option(cc)
	}

	cc.pitchLimit = mgl32.Clamp(cc.pitchLimit, 0, maxPitchLimit)
	cc.pitch = mgl32.Clamp(cc.pitch, -cc.pitchLimit, cc.pitchLimit)
	if cc.maxDeltaTime < 0 {
		cc.maxDeltaTime = 0
	}
	return cc
}

// --- internal helpers ---

// orientation builds the yaw-then-pitch rotation. Caller must hold the mutex.
func (cc *cameraControllerImpl) orientation() mgl32.Quat {
	return mgl32.QuatRotate(cc.yaw, worldUp).Mul(mgl32.QuatRotate(cc.pitch, localRight))
}

// clampDelta maps negative, NaN and stalled frame times into [0, maxDeltaTime].
func (cc *cameraControllerImpl) clampDelta(dt float32) float32 {
	if !(dt > 0) {
		return 0
	}
	if dt > cc.maxDeltaTime {
		return cc.maxDeltaTime
	}
	return dt
}

// moveDirection accumulates the held bindings into a local-space direction.
// Opposing keys cancel. Caller must hold the mutex.
func (cc *cameraControllerImpl) moveDirection() mgl32.Vec3 {
	var dir mgl32.Vec3
	if cc.tracker.IsKey(cc.bindings.Forward) {
		dir = dir.Add(localForward)
	}
	if cc.tracker.IsKey(cc.bindings.Back) {
		dir = dir.Sub(localForward)
	}
	if cc.tracker.IsKey(cc.bindings.Right) {
		dir = dir.Add(localRight)
	}
	if cc.tracker.IsKey(cc.bindings.Left) {
		dir = dir.Sub(localRight)
	}
	if cc.tracker.IsKey(cc.bindings.Up) {
		dir = dir.Add(worldUp)
	}
	if cc.tracker.IsKey(cc.bindings.Down) {
		dir = dir.Sub(worldUp)
	}
	if cc.normalizeDiagonal && dir.Len() > 1 {
		dir = dir.Normalize()
	}
	return dir
}

// stepSpeed applies the sprint and slow modifiers to the move speed.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) stepSpeed() float32 {
	speed := cc.moveSpeed
	if cc.tracker.IsShiftHeld() {
		speed *= cc.sprintMultiplier
	}
	if cc.tracker.IsCtrlHeld() {
		speed *= cc.slowMultiplier
	}
	return speed
}

// updateFirstPerson moves along the camera's own axes and applies queued look input.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updateFirstPerson(dt float32) {
	dir := cc.moveDirection()
	if dir != (mgl32.Vec3{}) && dt > 0 {
		// a paused glide would drag the camera back onto its old path
		cc.glide = nil
		world := cc.orientation().Rotate(dir)
		cc.position = cc.position.Add(world.Mul(cc.stepSpeed() * dt))
	}

	turn := cc.rotationSpeed * dt
	cc.yaw -= cc.lookX * turn
	cc.pitch = mgl32.Clamp(cc.pitch-cc.lookY*turn, -cc.pitchLimit, cc.pitchLimit)
}

// updateScroll pans over the ground plane using yaw only, zooms along the view axis with
// queued wheel input and advances any active glide. Panning and zooming cancel the glide.
// Orientation is left untouched.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updateScroll(dt float32) {
	dir := cc.moveDirection()
	if dir != (mgl32.Vec3{}) {
		cc.glide = nil
		if dt > 0 {
			world := mgl32.QuatRotate(cc.yaw, worldUp).Rotate(dir)
			cc.position = cc.position.Add(world.Mul(cc.stepSpeed() * dt))
		}
	}

	if cc.scroll != 0 {
		cc.glide = nil
		forward := cc.orientation().Rotate(localForward)
		cc.position = cc.position.Add(forward.Mul(cc.scroll * cc.zoomSpeed))
	}

	if g := cc.glide; g != nil {
		if !g.doneX {
			var x float32
			x, g.doneX = g.tweenX.Update(dt)
			cc.position[0] = x
		}
		if !g.doneZ {
			var z float32
			z, g.doneZ = g.tweenZ.Update(dt)
			cc.position[2] = z
		}
		if g.doneX && g.doneZ {
			cc.glide = nil
		}
	}
}

// --- CameraController implementation ---

func (cc *cameraControllerImpl) Mode() Mode {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mode
}

func (cc *cameraControllerImpl) SetMode(mode Mode) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if mode == cc.mode {
		return
	}
	slog.Debug("camera mode changed", "from", cc.mode, "to", mode)
	cc.mode = mode
}

func (cc *cameraControllerImpl) Speed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.moveSpeed
}

func (cc *cameraControllerImpl) SetSpeed(speed float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.moveSpeed = speed
}

func (cc *cameraControllerImpl) RotationSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rotationSpeed
}

func (cc *cameraControllerImpl) PitchLimit() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pitchLimit
}

func (cc *cameraControllerImpl) MaxDeltaTime() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxDeltaTime
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) SetPosition(pos mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = pos
	cc.glide = nil
}

func (cc *cameraControllerImpl) Yaw() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.yaw
}

func (cc *cameraControllerImpl) Pitch() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pitch
}

func (cc *cameraControllerImpl) SetRotation(yaw, pitch float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.yaw = yaw
	cc.pitch = mgl32.Clamp(pitch, -cc.pitchLimit, cc.pitchLimit)
}

func (cc *cameraControllerImpl) Orientation() mgl32.Quat {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orientation()
}

func (cc *cameraControllerImpl) Forward() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orientation().Rotate(localForward)
}

func (cc *cameraControllerImpl) Right() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orientation().Rotate(localRight)
}

func (cc *cameraControllerImpl) Up() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orientation().Rotate(worldUp)
}

func (cc *cameraControllerImpl) Look(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.lookX += dx
	cc.lookY += dy
}

func (cc *cameraControllerImpl) Scroll(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.scroll += delta
}

func (cc *cameraControllerImpl) ScrollTo(x, z, duration float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if duration <= 0 {
		// gween reports the begin value for a zero-length tween
		cc.position[0], cc.position[2] = x, z
		cc.glide = nil
		return
	}
	cc.glide = &glide{
		tweenX: gween.New(cc.position[0], x, duration, ease.InOutQuad),
		tweenZ: gween.New(cc.position[2], z, duration, ease.InOutQuad),
	}
}

func (cc *cameraControllerImpl) Gliding() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.glide != nil
}

func (cc *cameraControllerImpl) Update(dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	dt = cc.clampDelta(dt)
	switch cc.mode {
	case ModeFirstPerson:
		cc.updateFirstPerson(dt)
	case ModeScroll:
		cc.updateScroll(dt)
	}

	cc.lookX, cc.lookY = 0, 0
	cc.scroll = 0
}

func (cc *cameraControllerImpl) ViewMatrix() mgl32.Mat4 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	p := cc.position
	return cc.orientation().Conjugate().Mat4().Mul4(mgl32.Translate3D(-p[0], -p[1], -p[2]))
}

func (cc *cameraControllerImpl) Transform() mgl32.Mat4 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	p := cc.position
	return mgl32.Translate3D(p[0], p[1], p[2]).Mul4(cc.orientation().Mat4())
}
