package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/Carmen-Shannon/oxy-flycam/engine/profiler"
	"github.com/Carmen-Shannon/oxy-flycam/engine/scene"
	"github.com/Carmen-Shannon/oxy-flycam/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler, e.g. to change its interval or logger.
//
// Parameters:
//   - p: the profiler to report tick statistics to
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// The tick callback will be called at this rate for game logic updates.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithWindow sets the window the engine reads input from and whose message loop Run drives.
// Without a window the engine runs headless.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithInputTracker sets the tracker the window feeds. Pass the same tracker given to the
// camera controllers so they observe the window's keys.
//
// Parameters:
//   - t: the input tracker
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInputTracker(t input.InputTracker) EngineBuilderOption {
	return func(e *engine) {
		e.tracker = t
	}
}

// WithLookSensitivity scales raw cursor deltas before they reach camera controllers.
// Defaults to 0.1. Non-positive values are ignored.
//
// Parameters:
//   - s: the multiplier applied to mouse movement in pixels
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLookSensitivity(s float32) EngineBuilderOption {
	return func(e *engine) {
		if s > 0 {
			e.lookSensitivity = s
		}
	}
}

// WithScene registers a scene at the given z-index key during engine construction.
// Scenes are updated in ascending key order each tick.
//
// Parameters:
//   - key: the z-index determining update order (lower updates first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}
