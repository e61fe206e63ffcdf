package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial yaw and pitch. Pitch is clamped to the pitch limit
// after all options are applied.
//
// Parameters:
//   - yaw: rotation around world +Y in radians (0 looks down -Z)
//   - pitch: rotation around local +X in radians (positive looks up)
//
// Returns:
//   - CameraControllerOption: functional option to set the orientation
func WithRotation(yaw, pitch float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.yaw = yaw
		cc.pitch = pitch
	}
}

// WithMoveSpeed sets the initial linear move speed. It can be changed later with SetSpeed.
//
// Parameters:
//   - speed: units per second
//
// Returns:
//   - CameraControllerOption: functional option to set the move speed
func WithMoveSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.moveSpeed = speed
	}
}

// WithRotationSpeed sets the look rotation speed. There is no setter after construction.
//
// Parameters:
//   - speed: radians per second per unit of look input
//
// Returns:
//   - CameraControllerOption: functional option to set the rotation speed
func WithRotationSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotationSpeed = speed
	}
}

// WithPitchLimit sets the maximum absolute pitch. Values at or beyond π/2 are reduced
// to just under vertical.
//
// Parameters:
//   - limit: pitch clamp in radians
//
// Returns:
//   - CameraControllerOption: functional option to set the pitch clamp
func WithPitchLimit(limit float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.pitchLimit = limit
	}
}

// WithMaxDeltaTime caps the frame time integrated by a single Update, so a stalled
// frame can not teleport the camera.
//
// Parameters:
//   - seconds: the cap in seconds
//
// Returns:
//   - CameraControllerOption: functional option to set the delta time cap
func WithMaxDeltaTime(seconds float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.maxDeltaTime = seconds
	}
}

// WithSprintMultiplier sets the move speed factor applied while Shift is held.
//
// Parameters:
//   - m: speed multiplier
//
// Returns:
//   - CameraControllerOption: functional option to set the sprint multiplier
func WithSprintMultiplier(m float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.sprintMultiplier = m
	}
}

// WithSlowMultiplier sets the move speed factor applied while Ctrl is held.
//
// Parameters:
//   - m: speed multiplier
//
// Returns:
//   - CameraControllerOption: functional option to set the slow multiplier
func WithSlowMultiplier(m float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.slowMultiplier = m
	}
}

// WithZoomSpeed sets how far one wheel notch moves the camera in ModeScroll.
//
// Parameters:
//   - speed: units per wheel notch
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithNormalizeDiagonal enables normalizing the combined move direction, so holding two
// or three direction keys moves no faster than one. Disabled by default.
//
// Parameters:
//   - enabled: true to normalize
//
// Returns:
//   - CameraControllerOption: functional option to set diagonal normalization
func WithNormalizeDiagonal(enabled bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.normalizeDiagonal = enabled
	}
}

// WithKeyBindings replaces the default WASD/QE movement bindings.
//
// Parameters:
//   - bindings: the direction-to-key mapping
//
// Returns:
//   - CameraControllerOption: functional option to set the key bindings
func WithKeyBindings(bindings KeyBindings) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.bindings = bindings
	}
}
