package window

import (
	"fmt"
	"runtime"
	"unicode/utf8"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool

	// captured is the cursor mode currently applied to the GLFW window.
	captured bool

	// lastX, lastY are the previous cursor position; hasLast is false until the first sample.
	lastX, lastY float64
	hasLast      bool
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// No graphics context is needed, the window only supplies input events.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		state := common.KeyState{Code: common.KeyCode(key), Char: keyChar(key, scancode)}
		switch action {
		case glfw.Press, glfw.Repeat:
			w.modifiers.set(state.Code, true)
			if w.onKeyDown != nil {
				w.onKeyDown(state)
			}
		case glfw.Release:
			w.modifiers.set(state.Code, false)
			if w.onKeyUp != nil {
				w.onKeyUp(state)
			}
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if !gw.hasLast {
			gw.lastX, gw.lastY, gw.hasLast = xpos, ypos, true
		}
		dx, dy := xpos-gw.lastX, ypos-gw.lastY
		gw.lastX, gw.lastY = xpos, ypos
		if w.onMouseMove != nil {
			w.onMouseMove(float32(dx), float32(dy))
		}
	})

	win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		gw.hasLast = false
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFocusCallback
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			w.modifiers.clear()
		}
		gw.hasLast = false
		if w.onFocus != nil {
			w.onFocus(focused)
		}
	})

	// Framebuffer size is in pixels, which differs from window size on high-DPI displays.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	applyCursorMode(gw)
	return nil
}

// keyChar returns the printable character GLFW reports for a key under the current
// keyboard layout, or 0 for non-printable keys.
func keyChar(key glfw.Key, scancode int) rune {
	name := glfw.GetKeyName(key, scancode)
	if name == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// applyCursorMode syncs the GLFW cursor mode with the requested capture state.
// Must be called on the thread that created the window.
//
// Reference: https://www.glfw.org/docs/latest/input_guide.html#cursor_mode
func applyCursorMode(gw *glfwWindow) {
	want := gw.parent.captureCursor.Load()
	if want == gw.captured {
		return
	}
	mode := glfw.CursorNormal
	if want {
		mode = glfw.CursorDisabled
	}
	gw.window.SetInputMode(glfw.CursorMode, mode)
	gw.captured = want
	gw.hasLast = false
}

// platformIsRunningCheck returns whether the GLFW window is still active.
// Returns false if the internal window is nil, the running flag is cleared, or GLFW reports ShouldClose.
//
// Parameters:
//   - w: the engineWindow to check
//
// Returns:
//   - bool: true if the window is still running
func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
// Returns an error if the internal window has not been initialized.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking, then
// applies any cursor capture change requested since the last iteration.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	if !platformIsRunningCheck(w) {
		return false
	}
	applyCursorMode(w.internalWindow.(*glfwWindow))
	return true
}
