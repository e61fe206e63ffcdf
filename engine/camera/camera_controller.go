package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController owns a camera pose (position + yaw/pitch orientation) and advances it
// once per frame from the tracked key state, pending look input and pending wheel input.
// The active Mode selects the motion policy. The Camera reads ViewMatrix from the
// controller each frame.
type CameraController interface {
	// Mode returns the active motion policy.
	//
	// Returns:
	//   - Mode: the current mode
	Mode() Mode

	// SetMode switches the motion policy. The pose is carried over unchanged.
	//
	// Parameters:
	//   - mode: the new mode
	SetMode(mode Mode)

	// Speed returns the linear move speed in units per second.
	//
	// Returns:
	//   - float32: the move speed
	Speed() float32

	// SetSpeed sets the linear move speed in units per second.
	//
	// Parameters:
	//   - speed: the new move speed
	SetSpeed(speed float32)

	// RotationSpeed returns the look rotation speed in radians per second per unit of look input.
	// It is fixed at construction (see WithRotationSpeed).
	//
	// Returns:
	//   - float32: the rotation speed
	RotationSpeed() float32

	// PitchLimit returns the maximum absolute pitch in radians. Always below π/2.
	//
	// Returns:
	//   - float32: the pitch clamp
	PitchLimit() float32

	// MaxDeltaTime returns the largest frame time, in seconds, a single Update integrates.
	//
	// Returns:
	//   - float32: the delta time cap
	MaxDeltaTime() float32

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition moves the camera to a world-space position and cancels any active glide.
	//
	// Parameters:
	//   - pos: the new position
	SetPosition(pos mgl32.Vec3)

	// Yaw returns the rotation around world +Y in radians. Zero looks down -Z.
	//
	// Returns:
	//   - float32: the yaw angle
	Yaw() float32

	// Pitch returns the rotation around the camera's local +X in radians. Positive looks up.
	//
	// Returns:
	//   - float32: the pitch angle
	Pitch() float32

	// SetRotation sets yaw and pitch directly. Pitch is clamped to ±PitchLimit.
	//
	// Parameters:
	//   - yaw: rotation around world +Y in radians
	//   - pitch: rotation around local +X in radians
	SetRotation(yaw, pitch float32)

	// Orientation returns the camera orientation as a quaternion (yaw then pitch).
	//
	// Returns:
	//   - mgl32.Quat: the orientation
	Orientation() mgl32.Quat

	// Forward returns the world-space direction the camera looks along.
	//
	// Returns:
	//   - mgl32.Vec3: unit forward vector
	Forward() mgl32.Vec3

	// Right returns the camera's world-space right axis.
	//
	// Returns:
	//   - mgl32.Vec3: unit right vector
	Right() mgl32.Vec3

	// Up returns the camera's world-space up axis.
	//
	// Returns:
	//   - mgl32.Vec3: unit up vector
	Up() mgl32.Vec3

	// Look queues look-axis input (mouse delta or stick axes) for the next Update.
	// Positive dx turns right, positive dy looks down, matching screen-space mouse motion.
	//
	// Parameters:
	//   - dx: horizontal look input
	//   - dy: vertical look input
	Look(dx, dy float32)

	// Scroll queues wheel input for the next Update. Positive values zoom in.
	//
	// Parameters:
	//   - delta: wheel notches
	Scroll(delta float32)

	// ScrollTo starts a glide to the ground position (x, z), eased over duration seconds.
	// The glide only advances in ModeScroll. Movement keys in either mode and wheel
	// input cancel it.
	//
	// Parameters:
	//   - x: target world X
	//   - z: target world Z
	//   - duration: glide length in seconds
	ScrollTo(x, z, duration float32)

	// Gliding reports whether a ScrollTo glide is in progress.
	//
	// Returns:
	//   - bool: true while gliding
	Gliding() bool

	// Update advances the pose by one frame of dt seconds.
	// dt is clamped to [0, MaxDeltaTime]; a zero step leaves the position unchanged.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	Update(dt float32)

	// ViewMatrix returns the world-to-camera transform derived from the current pose:
	// the inverse orientation applied after translating by -position.
	// It is recomputed on every call.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// Transform returns the camera's world transform, the inverse of ViewMatrix.
	//
	// Returns:
	//   - mgl32.Mat4: the world transform (column-major)
	Transform() mgl32.Mat4
}
