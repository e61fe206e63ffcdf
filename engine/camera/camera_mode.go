package camera

import (
	"fmt"
	"strings"
)

// Mode selects how a CameraController integrates input into motion.
type Mode int

const (
	// ModeFirstPerson flies along the camera's own axes and turns with look input.
	ModeFirstPerson Mode = iota
	// ModeScroll pans over the ground plane with a frozen orientation and zooms with the wheel.
	ModeScroll
)

func (m Mode) String() string {
	switch m {
	case ModeFirstPerson:
		return "first_person"
	case ModeScroll:
		return "scroll"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves a configuration name ("first_person", "fps", "scroll") to a Mode.
//
// Parameters:
//   - name: the case-insensitive mode name
//
// Returns:
//   - Mode: the parsed mode
//   - error: error if the name is not a known mode
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "first_person", "firstperson", "fps":
		return ModeFirstPerson, nil
	case "scroll":
		return ModeScroll, nil
	}
	return ModeFirstPerson, fmt.Errorf("unknown camera mode %q", name)
}
