package camera

import "github.com/Carmen-Shannon/oxy-flycam/common"

// KeyBindings maps the six movement directions to keys.
// Directions are in the camera's local frame: Forward is local -Z, Right is +X, Up is +Y.
type KeyBindings struct {
	Forward common.KeyCode
	Back    common.KeyCode
	Left    common.KeyCode
	Right   common.KeyCode
	Up      common.KeyCode
	Down    common.KeyCode
}

// DefaultKeyBindings returns WASD for planar movement with Q/E for up/down.
//
// Returns:
//   - KeyBindings: the default bindings
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Forward: common.KeyW,
		Back:    common.KeyS,
		Left:    common.KeyA,
		Right:   common.KeyD,
		Up:      common.KeyQ,
		Down:    common.KeyE,
	}
}
