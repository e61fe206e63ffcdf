package scene

import (
	"log/slog"
	"reflect"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
)

// Participant is anything the scene advances once per frame and can place in the world.
// GameObjects and CameraControllers both satisfy it.
type Participant interface {
	// Update advances the participant by dt seconds.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	Update(dt float32)

	// Transform returns the participant's world transform (column-major).
	//
	// Returns:
	//   - mgl32.Mat4: the world transform
	Transform() mgl32.Mat4
}

// Scene owns a Camera and a set of Participants and advances them once per frame.
// Participants are updated in parallel on a persistent worker pool; the camera's
// controller is updated afterwards on the calling goroutine so the view always
// reflects the input of the frame being simulated.
// Scenes can be hot-swapped via the Active flag to switch between different views or levels.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently advanced by the engine.
	Active() bool

	// SetActive sets whether this scene is advanced by the engine.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Count returns the number of registered (non-ephemeral) GameObjects.
	Count() int

	// Add adds a participant to the scene. Non-ephemeral GameObjects without an ID are
	// assigned the next free ID and registered for Get. Adding the same participant
	// twice is a no-op. Participants are identified with ==, so p must have a comparable
	// dynamic type (typically a pointer); a participant that is not comparable is rejected
	// with a warning.
	//
	// Parameters:
	//   - p: the participant to add
	//
	// Returns:
	//   - uint64: the GameObject's ID, or 0 for other participants and ephemeral objects
	Add(p Participant) uint64

	// Get returns the registered GameObject with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a participant from the scene. Unknown participants are ignored.
	//
	// Parameters:
	//   - p: the participant to remove
	Remove(p Participant)

	// Participants returns a snapshot of the scene's participants in insertion order.
	//
	// Returns:
	//   - []Participant: the participants
	Participants() []Participant

	// Clear removes every participant and registered object.
	Clear()

	// Update advances the scene by one frame: every participant is updated on the
	// worker pool, then the camera controller, then the camera matrices.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	Update(dt float32)

	// Close stops the scene's worker pool. The scene must not be updated afterwards.
	Close()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	participants []Participant
	registry     map[uint64]game_object.GameObject // non-ephemeral objects by ID
	nextID       uint64

	cam camera.Camera

	// updatePool manages a bounded set of reusable goroutines for participant updates.
	// Workers persist across frames, avoiding per-frame goroutine spawn/teardown overhead.
	updatePool    worker.DynamicWorkerPool
	updateWorkers int
	closeOnce     sync.Once
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene viewed through the given camera. The camera is required
// and NewScene panics if it is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:            &sync.RWMutex{},
		name:          name,
		cam:           cam,
		registry:      make(map[uint64]game_object.GameObject),
		nextID:        1,
		updateWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the pool after options so WithUpdateWorkers can override the default.
	s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(p Participant) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(p)
}

// add registers p. Caller must hold s.mu write lock.
func (s *scene) add(p Participant) uint64 {
	if p != nil && !reflect.TypeOf(p).Comparable() {
		slog.Warn("scene participant rejected: type is not comparable", "scene", s.name, "type", reflect.TypeOf(p).String())
		return 0
	}
	if p == nil || slices.Contains(s.participants, p) {
		if obj, ok := p.(game_object.GameObject); ok {
			return obj.ID()
		}
		return 0
	}
	s.participants = append(s.participants, p)

	obj, ok := p.(game_object.GameObject)
	if !ok || obj.Ephemeral() {
		return 0
	}
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	}
	s.registry[obj.ID()] = obj
	slog.Debug("scene object added", "scene", s.name, "id", obj.ID(), "name", obj.Name())
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(p Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.Index(s.participants, p)
	if idx < 0 {
		return
	}
	s.participants = slices.Delete(s.participants, idx, idx+1)

	if obj, ok := p.(game_object.GameObject); ok && !obj.Ephemeral() {
		delete(s.registry, obj.ID())
		slog.Debug("scene object removed", "scene", s.name, "id", obj.ID())
	}
}

func (s *scene) Participants() []Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.participants)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants = nil
	s.registry = make(map[uint64]game_object.GameObject)
}

func (s *scene) Update(dt float32) {
	s.mu.RLock()
	participants := slices.Clone(s.participants)
	cam := s.cam
	name := s.name
	s.mu.RUnlock()

	var ctrl camera.CameraController
	if cam != nil {
		ctrl = cam.Controller()
	}

	// Phase 1: parallel participant updates. A WaitGroup provides the per-frame
	// barrier since pool.Wait() blocks until workers idle-exit.
	var wg sync.WaitGroup
	for i, p := range participants {
		if ctrl != nil && p == Participant(ctrl) {
			continue
		}
		wg.Add(1)
		s.updatePool.SubmitTask(worker.Task{
			ID:      i,
			Payload: p,
			Do: func() (any, error) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						slog.Error("participant update panicked", "scene", name, "task", i, "panic", r)
					}
				}()
				p.Update(dt)
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Phase 2: camera on the frame goroutine, after the world has moved.
	if ctrl != nil {
		ctrl.Update(dt)
	}
	if cam != nil {
		cam.Update()
	}
}

func (s *scene) Close() {
	s.closeOnce.Do(func() {
		s.updatePool.Stop()
	})
}
