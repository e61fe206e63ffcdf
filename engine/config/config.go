// Package config loads the YAML file that describes a flycam session: window,
// engine loop, camera tuning, key bindings and logging.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownKey is returned when a binding names a key that does not exist.
	ErrUnknownKey = errors.New("unknown key")
	// ErrUnknownMode is returned when camera.mode is not a known camera mode.
	ErrUnknownMode = errors.New("unknown camera mode")
	// ErrInvalidValue is returned when a numeric setting is out of range.
	ErrInvalidValue = errors.New("invalid value")
)

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Engine  EngineConfig  `yaml:"engine"`
	Camera  CameraConfig  `yaml:"camera"`
	Logging LoggingConfig `yaml:"logging"`
}

type WindowConfig struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	MinWidth      int    `yaml:"min_width"`
	MinHeight     int    `yaml:"min_height"`
	CaptureCursor bool   `yaml:"capture_cursor"`
}

type EngineConfig struct {
	TickRate        float64 `yaml:"tick_rate"`
	Profiling       bool    `yaml:"profiling"`
	LookSensitivity float32 `yaml:"look_sensitivity"`
	// Headless runs without a window, reading keys from the terminal.
	Headless bool `yaml:"headless"`
}

type CameraConfig struct {
	Mode              string         `yaml:"mode"`
	FovDeg            float32        `yaml:"fov_deg"`
	MoveSpeed         float32        `yaml:"move_speed"`
	RotationSpeed     float32        `yaml:"rotation_speed"`
	PitchLimitDeg     float32        `yaml:"pitch_limit_deg"`
	MaxDeltaTime      float32        `yaml:"max_delta_time"`
	SprintMultiplier  float32        `yaml:"sprint_multiplier"`
	SlowMultiplier    float32        `yaml:"slow_multiplier"`
	NormalizeDiagonal bool           `yaml:"normalize_diagonal"`
	ZoomSpeed         float32        `yaml:"zoom_speed"`
	Position          [3]float32     `yaml:"position"`
	YawDeg            float32        `yaml:"yaw_deg"`
	PitchDeg          float32        `yaml:"pitch_deg"`
	Bindings          BindingsConfig `yaml:"bindings"`
}

// BindingsConfig names the key for each movement direction, e.g. "w" or "space".
type BindingsConfig struct {
	Forward string `yaml:"forward"`
	Back    string `yaml:"back"`
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
	Up      string `yaml:"up"`
	Down    string `yaml:"down"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given. Load decodes onto
// it, so keys missing from the file keep these values.
//
// Returns:
//   - *Config: a fully populated configuration
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "oxy flycam",
			Width:     1280,
			Height:    720,
			MinWidth:  320,
			MinHeight: 200,
		},
		Engine: EngineConfig{
			TickRate:        60,
			LookSensitivity: 0.1,
		},
		Camera: CameraConfig{
			Mode:             camera.ModeFirstPerson.String(),
			FovDeg:           45,
			MoveSpeed:        camera.DefaultMoveSpeed,
			RotationSpeed:    camera.DefaultRotationSpeed,
			PitchLimitDeg:    89,
			MaxDeltaTime:     camera.DefaultMaxDeltaTime,
			SprintMultiplier: camera.DefaultSprintMultiplier,
			SlowMultiplier:   camera.DefaultSlowMultiplier,
			ZoomSpeed:        camera.DefaultZoomSpeed,
			Bindings: BindingsConfig{
				Forward: "w",
				Back:    "s",
				Left:    "a",
				Right:   "d",
				Up:      "q",
				Down:    "e",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads and validates the YAML file at path. Missing fields take their
// Default values.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - *Config: the loaded configuration
//   - error: a read, parse or validation error
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes, defaults and validates a YAML document.
//
// Parameters:
//   - data: the YAML bytes
//
// Returns:
//   - *Config: the parsed configuration
//   - error: a parse or validation error
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.applyDefaults(Default())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults restores string settings written as empty values ("" or ~).
// Numeric settings keep what the file says, zero included, and are range checked by Validate.
func (c *Config) applyDefaults(d *Config) {
	c.Window.Title = common.Coalesce(c.Window.Title, d.Window.Title)

	cc, dc := &c.Camera, &d.Camera
	cc.Mode = common.Coalesce(cc.Mode, dc.Mode)
	cc.Bindings.Forward = common.Coalesce(cc.Bindings.Forward, dc.Bindings.Forward)
	cc.Bindings.Back = common.Coalesce(cc.Bindings.Back, dc.Bindings.Back)
	cc.Bindings.Left = common.Coalesce(cc.Bindings.Left, dc.Bindings.Left)
	cc.Bindings.Right = common.Coalesce(cc.Bindings.Right, dc.Bindings.Right)
	cc.Bindings.Up = common.Coalesce(cc.Bindings.Up, dc.Bindings.Up)
	cc.Bindings.Down = common.Coalesce(cc.Bindings.Down, dc.Bindings.Down)

	c.Logging.Level = common.Coalesce(c.Logging.Level, d.Logging.Level)
	c.Logging.Format = common.Coalesce(c.Logging.Format, d.Logging.Format)
}

// Validate checks every setting and returns the first problem found, wrapping
// ErrUnknownKey, ErrUnknownMode or ErrInvalidValue.
//
// Returns:
//   - error: nil if the configuration is usable
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalidValue)
	}
	if c.Window.MinWidth <= 0 || c.Window.MinHeight <= 0 ||
		c.Window.MinWidth > c.Window.Width || c.Window.MinHeight > c.Window.Height {
		return fmt.Errorf("window minimum size %dx%d: %w", c.Window.MinWidth, c.Window.MinHeight, ErrInvalidValue)
	}
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("engine.tick_rate %v: %w", c.Engine.TickRate, ErrInvalidValue)
	}
	if c.Engine.LookSensitivity <= 0 {
		return fmt.Errorf("engine.look_sensitivity %v: %w", c.Engine.LookSensitivity, ErrInvalidValue)
	}
	if _, err := camera.ParseMode(c.Camera.Mode); err != nil {
		return fmt.Errorf("camera.mode %q: %w", c.Camera.Mode, ErrUnknownMode)
	}
	if _, err := c.Camera.KeyBindings(); err != nil {
		return err
	}

	cc := c.Camera
	checks := []struct {
		name string
		val  float32
		ok   bool
	}{
		{"camera.fov_deg", cc.FovDeg, cc.FovDeg > 0 && cc.FovDeg < 180},
		{"camera.move_speed", cc.MoveSpeed, cc.MoveSpeed >= 0},
		{"camera.rotation_speed", cc.RotationSpeed, cc.RotationSpeed >= 0},
		{"camera.pitch_limit_deg", cc.PitchLimitDeg, cc.PitchLimitDeg > 0 && cc.PitchLimitDeg <= 90},
		{"camera.max_delta_time", cc.MaxDeltaTime, cc.MaxDeltaTime > 0},
		{"camera.sprint_multiplier", cc.SprintMultiplier, cc.SprintMultiplier > 0},
		{"camera.slow_multiplier", cc.SlowMultiplier, cc.SlowMultiplier > 0},
		{"camera.zoom_speed", cc.ZoomSpeed, cc.ZoomSpeed >= 0},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%s %v: %w", chk.name, chk.val, ErrInvalidValue)
		}
	}
	return nil
}

// KeyBindings resolves the configured key names.
//
// Returns:
//   - camera.KeyBindings: the resolved bindings
//   - error: wraps ErrUnknownKey naming the first unresolvable binding
func (c CameraConfig) KeyBindings() (camera.KeyBindings, error) {
	var kb camera.KeyBindings
	fields := []struct {
		name string
		key  string
		dst  *common.KeyCode
	}{
		{"forward", c.Bindings.Forward, &kb.Forward},
		{"back", c.Bindings.Back, &kb.Back},
		{"left", c.Bindings.Left, &kb.Left},
		{"right", c.Bindings.Right, &kb.Right},
		{"up", c.Bindings.Up, &kb.Up},
		{"down", c.Bindings.Down, &kb.Down},
	}
	for _, f := range fields {
		code, ok := common.KeyByName(f.key)
		if !ok {
			return camera.KeyBindings{}, fmt.Errorf("camera.bindings.%s %q: %w", f.name, f.key, ErrUnknownKey)
		}
		*f.dst = code
	}
	return kb, nil
}

// CameraOptions converts the camera section into the controller's mode and options.
//
// Returns:
//   - camera.Mode: the initial mode
//   - []camera.CameraControllerOption: options for camera.NewCameraController
//   - error: wraps ErrUnknownMode or ErrUnknownKey
func (c *Config) CameraOptions() (camera.Mode, []camera.CameraControllerOption, error) {
	cc := c.Camera
	mode, err := camera.ParseMode(cc.Mode)
	if err != nil {
		return mode, nil, fmt.Errorf("camera.mode %q: %w", cc.Mode, ErrUnknownMode)
	}
	bindings, err := cc.KeyBindings()
	if err != nil {
		return mode, nil, err
	}
	return mode, []camera.CameraControllerOption{
		camera.WithPosition(cc.Position[0], cc.Position[1], cc.Position[2]),
		camera.WithRotation(mgl32.DegToRad(cc.YawDeg), mgl32.DegToRad(cc.PitchDeg)),
		camera.WithMoveSpeed(cc.MoveSpeed),
		camera.WithRotationSpeed(cc.RotationSpeed),
		camera.WithPitchLimit(mgl32.DegToRad(cc.PitchLimitDeg)),
		camera.WithMaxDeltaTime(cc.MaxDeltaTime),
		camera.WithSprintMultiplier(cc.SprintMultiplier),
		camera.WithSlowMultiplier(cc.SlowMultiplier),
		camera.WithZoomSpeed(cc.ZoomSpeed),
		camera.WithNormalizeDiagonal(cc.NormalizeDiagonal),
		camera.WithKeyBindings(bindings),
	}, nil
}
