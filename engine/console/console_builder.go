package console

import (
	"io"
	"time"
)

// ConsoleBuilderOption is a functional option for configuring a console.
type ConsoleBuilderOption func(*console)

// WithReader sets the input stream. Defaults to os.Stdin.
//
// Parameters:
//   - r: the byte source
//
// Returns:
//   - ConsoleBuilderOption: option function to apply
func WithReader(r io.Reader) ConsoleBuilderOption {
	return func(c *console) {
		c.in = r
	}
}

// WithPulse sets how long a key stays held after its last byte. Defaults to 180ms,
// which bridges the initial delay of typical terminal auto-repeat. Non-positive values are ignored.
//
// Parameters:
//   - d: the pulse length
//
// Returns:
//   - ConsoleBuilderOption: option function to apply
func WithPulse(d time.Duration) ConsoleBuilderOption {
	return func(c *console) {
		if d > 0 {
			c.pulse = d
		}
	}
}

// WithLookHandler sets the function arrow keys drive, typically a camera controller's Look.
//
// Parameters:
//   - fn: receives the look delta for each arrow byte
//
// Returns:
//   - ConsoleBuilderOption: option function to apply
func WithLookHandler(fn func(dx, dy float32)) ConsoleBuilderOption {
	return func(c *console) {
		c.onLook = fn
	}
}

// WithLookStep sets the look delta reported per arrow byte. Defaults to 3.
//
// Parameters:
//   - step: the delta magnitude
//
// Returns:
//   - ConsoleBuilderOption: option function to apply
func WithLookStep(step float32) ConsoleBuilderOption {
	return func(c *console) {
		c.lookStep = step
	}
}

// WithQuitHandler sets the function called on Ctrl+C or a lone ESC. Raw mode
// disables the terminal's own interrupt handling.
//
// Parameters:
//   - fn: the quit callback
//
// Returns:
//   - ConsoleBuilderOption: option function to apply
func WithQuitHandler(fn func()) ConsoleBuilderOption {
	return func(c *console) {
		c.onQuit = fn
	}
}

// WithClock replaces time.Now as the pulse time source.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - ConsoleBuilderOption: option function to apply
func WithClock(now func() time.Time) ConsoleBuilderOption {
	return func(c *console) {
		c.now = now
	}
}
