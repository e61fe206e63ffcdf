package engine

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/Carmen-Shannon/oxy-flycam/engine/profiler"
	"github.com/Carmen-Shannon/oxy-flycam/engine/scene"
	"github.com/Carmen-Shannon/oxy-flycam/engine/window"
)

// engine implements the Engine interface.
// Coordinates the tick goroutine with the window message loop.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window  window.Window
	tracker input.InputTracker

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate  time.Duration
	tickCallback    func(deltaTime float32)
	lookSensitivity float32

	scenesMu sync.RWMutex
	scenes   map[int]scene.Scene
}

// Engine is the main entry point for the engine.
// It orchestrates the fixed-rate tick loop, input routing and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil when running headless
	Window() window.Window

	// Tracker returns the input tracker fed by the window and read by camera controllers.
	//
	// Returns:
	//   - input.InputTracker: the tracker instance
	Tracker() input.InputTracker

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// The callback runs after every active scene has been updated and before
	// the input tracker advances, so key edges are visible to it.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// AddScene registers a scene at the given z-index key.
	// Scenes are updated in ascending key order each tick.
	//
	// Parameters:
	//   - key: the z-index determining update order (lower updates first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Step runs a single engine tick: updates every active scene in ascending key order,
	// fires the tick callback, then advances the input tracker to the next frame.
	// Run calls Step from its tick goroutine; it is exported for fixed-step drivers and tests.
	//
	// Parameters:
	//   - dt: the elapsed time in seconds
	Step(dt float32)

	// Run starts the engine. With a window it runs the message loop and blocks until the
	// window closes; headless it blocks until Quit is called. Scenes are closed on return.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// When a window is set and no tracker is supplied, a tracker reading modifiers from the
// window is created. Window input events are routed to the tracker and active scene cameras.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		scenes:           make(map[int]scene.Scene),
		wg:               sync.WaitGroup{},
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		lookSensitivity:  0.1,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}
	if e.tracker == nil {
		if e.window != nil {
			e.tracker = input.NewInputTracker(input.WithModifierSource(e.window))
		} else {
			e.tracker = input.NewInputTracker()
		}
	}
	if e.window != nil {
		e.bindWindow()
	}

	return e
}

// bindWindow routes window events into the engine. Key events feed the tracker,
// mouse and wheel events drive the controllers of active scene cameras.
// The window is closed from its own message loop once quit is signalled.
func (e *engine) bindWindow() {
	w := e.window

	w.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			_ = w.Close()
		default:
		}
	})

	w.SetKeyDownCallback(func(key common.KeyState) {
		e.tracker.AddKey(key)
	})
	w.SetKeyUpCallback(func(key common.KeyState) {
		e.tracker.RemoveKey(key)
	})
	w.SetFocusCallback(func(focused bool) {
		if !focused {
			e.tracker.Reset()
		}
		slog.Debug("window focus changed", "focused", focused)
	})
	w.SetMouseMoveCallback(func(dx, dy float32) {
		if !w.CursorCaptured() {
			return
		}
		for _, s := range e.activeScenes() {
			if c := s.Camera(); c != nil && c.Controller() != nil {
				c.Controller().Look(dx*e.lookSensitivity, dy*e.lookSensitivity)
			}
		}
	})
	w.SetScrollCallback(func(delta float32) {
		for _, s := range e.activeScenes() {
			if c := s.Camera(); c != nil && c.Controller() != nil {
				c.Controller().Scroll(delta)
			}
		}
	})
	w.SetResizeCallback(func(width, height int) {
		if width <= 0 || height <= 0 {
			return
		}
		for _, s := range e.Scenes() {
			if c := s.Camera(); c != nil {
				c.SetAspect(float32(width) / float32(height))
			}
		}
	})
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Tracker() input.InputTracker {
	return e.tracker
}

func (e *engine) Run() {
	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
		_ = e.window.Close()
	}
	e.wg.Wait()

	for _, s := range e.Scenes() {
		s.Close()
	}
	slog.Info("engine stopped")
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handle launches the engine and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.running.Store(true)
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Steps the engine at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("engine goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.Step(dt)

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick(time.Since(now))
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
			slog.Debug("tick rate changed", "interval", newRate)
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

func (e *engine) Step(dt float32) {
	for _, s := range e.activeScenes() {
		s.Update(dt)
	}

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	e.tracker.ProgressFrame()
}

// activeScenes returns the active scenes in ascending z-index order.
func (e *engine) activeScenes() []scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenesMu.Lock()
	defer e.scenesMu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.scenesMu.Lock()
	defer e.scenesMu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
