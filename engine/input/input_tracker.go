package input

import (
	"maps"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-flycam/common"
)

// ModifierSource reports the platform's live modifier-key state.
// Implementations query the physical keys directly instead of tracked events, so the
// answer stays correct across focus changes.
type ModifierSource interface {
	// IsShiftHeld reports whether either Shift key is physically down.
	IsShiftHeld() bool

	// IsCtrlHeld reports whether either Control key is physically down.
	IsCtrlHeld() bool

	// IsAltHeld reports whether either Alt key is physically down.
	IsAltHeld() bool
}

// InputTracker defines the interface for per-frame keyboard state with edge detection.
// Raw key events may arrive at any time from the platform layer; ProgressFrame marks
// the frame boundary by snapshotting the current state so rising and falling edges
// can be derived for exactly one frame.
type InputTracker interface {
	ModifierSource

	// AddKey records a key press. Repeated presses while the key is held have no further effect.
	//
	// Parameters:
	//   - state: the raw key report
	AddKey(state common.KeyState)

	// RemoveKey records a key release.
	//
	// Parameters:
	//   - state: the raw key report
	RemoveKey(state common.KeyState)

	// IsKeyDown reports whether the key was pressed since the last frame boundary
	// (held now and not held last frame).
	//
	// Parameters:
	//   - code: the key to query
	//
	// Returns:
	//   - bool: true only on the frame the key went down
	IsKeyDown(code common.KeyCode) bool

	// IsKey reports whether the key is currently held.
	//
	// Parameters:
	//   - code: the key to query
	//
	// Returns:
	//   - bool: true while the key is held
	IsKey(code common.KeyCode) bool

	// IsKeyUp reports whether the key was released since the last frame boundary
	// (not held now and held last frame).
	//
	// Parameters:
	//   - code: the key to query
	//
	// Returns:
	//   - bool: true only on the frame the key went up
	IsKeyUp(code common.KeyCode) bool

	// ProgressFrame copies the current key state into the previous-frame snapshot.
	// Must be called exactly once per frame, after the frame's edge queries and before
	// the next frame's. Calling it twice in a row clears every edge; never calling it
	// leaves every held key reporting IsKeyDown.
	ProgressFrame()

	// HeldKeys returns the currently held keys in ascending order.
	//
	// Returns:
	//   - []common.KeyCode: the held keys
	HeldKeys() []common.KeyCode

	// Reset forgets all tracked key state, current and previous.
	// Used when the window loses focus and release events may never arrive.
	Reset()
}

type inputTracker struct {
	mu *sync.Mutex

	currentlyHeld map[common.KeyCode]bool
	heldLastFrame map[common.KeyCode]bool

	modifiers ModifierSource
}

var _ InputTracker = &inputTracker{}

// NewInputTracker creates an empty InputTracker.
// Without a ModifierSource the modifier queries always report false.
//
// Parameters:
//   - options: functional options to configure the tracker
//
// Returns:
//   - InputTracker: the newly created tracker
func NewInputTracker(options ...InputTrackerOption) InputTracker {
	it := &inputTracker{
		mu:            &sync.Mutex{},
		currentlyHeld: make(map[common.KeyCode]bool),
		heldLastFrame: make(map[common.KeyCode]bool),
	}
	for _, option := range options {
		option(it)
	}
	return it
}

// held is a total lookup: keys never seen are not held.
func held(m map[common.KeyCode]bool, code common.KeyCode) bool {
	return m[code]
}

func (it *inputTracker) AddKey(state common.KeyState) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.currentlyHeld[state.Code] = true
}

func (it *inputTracker) RemoveKey(state common.KeyState) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.currentlyHeld[state.Code] = false
}

func (it *inputTracker) IsKeyDown(code common.KeyCode) bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return held(it.currentlyHeld, code) && !held(it.heldLastFrame, code)
}

func (it *inputTracker) IsKey(code common.KeyCode) bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return held(it.currentlyHeld, code)
}

func (it *inputTracker) IsKeyUp(code common.KeyCode) bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return !held(it.currentlyHeld, code) && held(it.heldLastFrame, code)
}

func (it *inputTracker) IsShiftHeld() bool {
	return it.modifiers != nil && it.modifiers.IsShiftHeld()
}

func (it *inputTracker) IsCtrlHeld() bool {
	return it.modifiers != nil && it.modifiers.IsCtrlHeld()
}

func (it *inputTracker) IsAltHeld() bool {
	return it.modifiers != nil && it.modifiers.IsAltHeld()
}

func (it *inputTracker) ProgressFrame() {
	it.mu.Lock()
	defer it.mu.Unlock()
	clear(it.heldLastFrame)
	maps.Copy(it.heldLastFrame, it.currentlyHeld)
}

func (it *inputTracker) HeldKeys() []common.KeyCode {
	it.mu.Lock()
	defer it.mu.Unlock()
	keys := make([]common.KeyCode, 0, len(it.currentlyHeld))
	for code, down := range it.currentlyHeld {
		if down {
			keys = append(keys, code)
		}
	}
	slices.Sort(keys)
	return keys
}

func (it *inputTracker) Reset() {
	it.mu.Lock()
	defer it.mu.Unlock()
	clear(it.currentlyHeld)
	clear(it.heldLastFrame)
}
