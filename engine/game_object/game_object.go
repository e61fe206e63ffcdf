package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	mu *sync.Mutex

	id        uint64
	name      string
	enabled   atomic.Bool
	ephemeral bool

	position      mgl32.Vec3
	scale         mgl32.Vec3
	rotation      mgl32.Vec3 // Euler angles in radians (x, y, z)
	rotationSpeed mgl32.Vec3 // radians per second (x, y, z)
}

// GameObject defines the interface for a posed scene entity.
// Objects spin at their rotation speed each Update and expose a world transform
// composed as translation * Ry * Rx * Rz * scale.
// All methods are safe for concurrent use; the scene updates objects from worker goroutines.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's display name, used in log lines.
	//
	// Returns:
	//   - string: the name, possibly empty
	Name() string

	// Enabled returns whether this object is advanced by Update.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Ephemeral returns whether this object is ephemeral.
	// Ephemeral objects are updated by the scene they are added to but not registered by ID.
	//
	// Returns:
	//   - bool: true if ephemeral
	Ephemeral() bool

	// Position returns the object's world-space position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the object's Euler rotation in radians.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// RotationSpeed returns the object's angular velocity in radians per second.
	//
	// Returns:
	//   - rx, ry, rz: rotation speed values
	RotationSpeed() (rx, ry, rz float32)

	// Scale returns the object's scale factors.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// TransformData reads all transform state under a single lock.
	//
	// Returns:
	//   - pos: position as [3]float32 (x, y, z)
	//   - scale: scale as [3]float32 (x, y, z)
	//   - rot: rotation as [3]float32 (rx, ry, rz)
	//   - rotSpeed: rotation speed as [3]float32 (rx, ry, rz)
	TransformData() (pos, scale, rot, rotSpeed [3]float32)

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is advanced by Update.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetPosition sets the object's world-space position.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetRotation sets the object's Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation angles
	SetRotation(rx, ry, rz float32)

	// SetRotationSpeed sets the object's angular velocity in radians per second.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation speed values
	SetRotationSpeed(rx, ry, rz float32)

	// SetScale sets the object's scale factors.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)

	// Update advances the rotation by rotation speed * dt. Disabled objects and
	// non-positive dt leave the object unchanged.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	Update(dt float32)

	// Transform returns the object's world transform (column-major).
	//
	// Returns:
	//   - mgl32.Mat4: translation * Ry * Rx * Rz * scale
	Transform() mgl32.Mat4
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject at the origin with unit scale.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.Mutex{},
		scale: mgl32.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Ephemeral() bool {
	return g.ephemeral
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position.Elem()
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation.Elem()
}

func (g *gameObject) RotationSpeed() (rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotationSpeed.Elem()
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale.Elem()
}

func (g *gameObject) TransformData() (pos, scale, rot, rotSpeed [3]float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position, g.scale, g.rotation, g.rotationSpeed
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = mgl32.Vec3{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = mgl32.Vec3{rx, ry, rz}
}

func (g *gameObject) SetRotationSpeed(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotationSpeed = mgl32.Vec3{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = mgl32.Vec3{sx, sy, sz}
}

func (g *gameObject) Update(dt float32) {
	if !g.enabled.Load() || !(dt > 0) {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = g.rotation.Add(g.rotationSpeed.Mul(dt))
}

func (g *gameObject) Transform() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, r, s := g.position, g.rotation, g.scale
	return mgl32.Translate3D(p[0], p[1], p[2]).
		Mul4(mgl32.HomogRotate3DY(r[1])).
		Mul4(mgl32.HomogRotate3DX(r[0])).
		Mul4(mgl32.HomogRotate3DZ(r[2])).
		Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}
