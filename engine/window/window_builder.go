package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial client area size. Non-positive dimensions keep the 1280x720 default.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithSizeLimits bounds interactive resizing. A non-positive value keeps that limit's
// default (320x200 minimum, 3840x2160 maximum).
//
// Parameters:
//   - minWidth, minHeight: smallest client area in pixels
//   - maxWidth, maxHeight: largest client area in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		for _, l := range []struct {
			dst *int
			val int
		}{
			{&w.minWidth, minWidth},
			{&w.minHeight, minHeight},
			{&w.maxWidth, maxWidth},
			{&w.maxHeight, maxHeight},
		} {
			if l.val > 0 {
				*l.dst = l.val
			}
		}
	}
}

// WithCursorCaptured sets whether the cursor starts captured for mouse look.
//
// Parameters:
//   - captured: true to hide and lock the cursor once the window opens
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithCursorCaptured(captured bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.captureCursor.Store(captured)
	}
}
