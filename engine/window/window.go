package window

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
// Callbacks run on the goroutine that calls ProcessMessages. Modifier queries and
// SetCursorCaptured are safe from any goroutine.
type Window interface {
	input.ModifierSource

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and auto-repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key report
	SetKeyDownCallback(callback func(key common.KeyState))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key report
	SetKeyUpCallback(callback func(key common.KeyState))

	// SetMouseMoveCallback sets the callback for cursor movement.
	// The first event after the cursor enters or is captured reports a zero delta.
	//
	// Parameters:
	//   - callback: function receiving the cursor delta in pixels since the previous event
	SetMouseMoveCallback(callback func(dx, dy float32))

	// SetFocusCallback sets the callback for window focus changes.
	// Modifier state is cleared when focus is lost.
	//
	// Parameters:
	//   - callback: function receiving true on focus gain, false on focus loss
	SetFocusCallback(callback func(focused bool))

	// SetCursorCaptured hides and locks the cursor for unbounded mouse look, or releases it.
	// The change is applied on the next message loop iteration.
	//
	// Parameters:
	//   - captured: true to capture the cursor
	SetCursorCaptured(captured bool)

	// CursorCaptured returns whether the cursor is captured (or about to be).
	//
	// Returns:
	//   - bool: true if captured
	CursorCaptured() bool

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// modifierState holds the live held state of the six modifier keys, updated from
// key events on the message loop and read from any goroutine.
type modifierState struct {
	held [6]atomic.Bool
}

func modifierSlot(code common.KeyCode) (int, bool) {
	switch code {
	case common.KeyLeftShift:
		return 0, true
	case common.KeyRightShift:
		return 1, true
	case common.KeyLeftControl:
		return 2, true
	case common.KeyRightControl:
		return 3, true
	case common.KeyLeftAlt:
		return 4, true
	case common.KeyRightAlt:
		return 5, true
	}
	return 0, false
}

func (m *modifierState) set(code common.KeyCode, down bool) {
	if i, ok := modifierSlot(code); ok {
		m.held[i].Store(down)
	}
}

func (m *modifierState) clear() {
	for i := range m.held {
		m.held[i].Store(false)
	}
}

func (m *modifierState) shift() bool { return m.held[0].Load() || m.held[1].Load() }
func (m *modifierState) ctrl() bool  { return m.held[2].Load() || m.held[3].Load() }
func (m *modifierState) alt() bool   { return m.held[4].Load() || m.held[5].Load() }

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// modifiers tracks Shift/Ctrl/Alt for ModifierSource queries from the tick goroutine.
	modifiers modifierState

	// captureCursor is the requested cursor capture state, applied by the message loop.
	captureCursor atomic.Bool

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)

	// onScroll is called for mouse wheel events.
	// Positive delta = scroll up (zoom in), negative = scroll down (zoom out).
	onScroll func(delta float32)

	// onKeyDown is called when a key is pressed or auto-repeats.
	onKeyDown func(key common.KeyState)

	// onKeyUp is called when a key is released.
	onKeyUp func(key common.KeyState)

	// onMouseMove is called with the cursor delta when the mouse moves.
	onMouseMove func(dx, dy float32)

	// onFocus is called when the window gains or loses focus.
	onFocus func(focused bool)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
// Panics if the platform window can not be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

// newEngineWindow applies the defaults and options without touching the platform.
// The size limits are widened to contain the initial size.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "Default Window Title",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	w.minWidth = min(w.minWidth, w.width)
	w.minHeight = min(w.minHeight, w.height)
	w.maxWidth = max(w.maxWidth, w.width)
	w.maxHeight = max(w.maxHeight, w.height)
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(key common.KeyState)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(key common.KeyState)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(dx, dy float32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SetFocusCallback(callback func(focused bool)) {
	w.onFocus = callback
}

func (w *engineWindow) SetCursorCaptured(captured bool) {
	w.captureCursor.Store(captured)
}

func (w *engineWindow) CursorCaptured() bool {
	return w.captureCursor.Load()
}

func (w *engineWindow) IsShiftHeld() bool {
	return w.modifiers.shift()
}

func (w *engineWindow) IsCtrlHeld() bool {
	return w.modifiers.ctrl()
}

func (w *engineWindow) IsAltHeld() bool {
	return w.modifiers.alt()
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
