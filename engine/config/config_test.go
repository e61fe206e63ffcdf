package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flycam.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		createFile bool
		content    string
		wantErr    error
		validate   func(t *testing.T, cfg *Config)
	}{
		{
			name:       "full file",
			createFile: true,
			content: `window:
  title: "survey"
  width: 1920
  height: 1080
  capture_cursor: true
engine:
  tick_rate: 120
  profiling: true
  headless: true
camera:
  mode: scroll
  move_speed: 8
  pitch_limit_deg: 60
  normalize_diagonal: true
  position: [1, 20, -3]
  yaw_deg: 90
  pitch_deg: -45
  bindings:
    forward: up
    back: down
    left: left
    right: right
    up: page_up
    down: page_down
logging:
  level: debug
  format: json
`,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Window.Title != "survey" || cfg.Window.Width != 1920 || !cfg.Window.CaptureCursor {
					t.Errorf("Window = %+v", cfg.Window)
				}
				if cfg.Engine.TickRate != 120 || !cfg.Engine.Profiling || !cfg.Engine.Headless {
					t.Errorf("Engine = %+v", cfg.Engine)
				}
				if cfg.Camera.Mode != "scroll" || cfg.Camera.MoveSpeed != 8 || !cfg.Camera.NormalizeDiagonal {
					t.Errorf("Camera = %+v", cfg.Camera)
				}
				if cfg.Camera.Position != [3]float32{1, 20, -3} {
					t.Errorf("Camera.Position = %v, want [1 20 -3]", cfg.Camera.Position)
				}
				if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
					t.Errorf("Logging = %+v", cfg.Logging)
				}
			},
		},
		{
			name:       "empty file takes defaults",
			createFile: true,
			content:    "",
			validate: func(t *testing.T, cfg *Config) {
				d := Default()
				if *cfg != *d {
					t.Errorf("Load(empty) = %+v, want %+v", cfg, d)
				}
			},
		},
		{
			name:       "partial camera section",
			createFile: true,
			content:    "camera:\n  rotation_speed: 4\n  bindings:\n    up: space\n",
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Camera.RotationSpeed != 4 {
					t.Errorf("RotationSpeed = %v, want 4", cfg.Camera.RotationSpeed)
				}
				if cfg.Camera.MoveSpeed != camera.DefaultMoveSpeed {
					t.Errorf("MoveSpeed = %v, want default %v", cfg.Camera.MoveSpeed, camera.DefaultMoveSpeed)
				}
				if cfg.Camera.Bindings.Up != "space" || cfg.Camera.Bindings.Forward != "w" {
					t.Errorf("Bindings = %+v", cfg.Camera.Bindings)
				}
			},
		},
		{
			name:       "unknown mode",
			createFile: true,
			content:    "camera:\n  mode: orbit\n",
			wantErr:    ErrUnknownMode,
		},
		{
			name:       "unknown key",
			createFile: true,
			content:    "camera:\n  bindings:\n    forward: hyperspace\n",
			wantErr:    ErrUnknownKey,
		},
		{
			name:       "pitch limit out of range",
			createFile: true,
			content:    "camera:\n  pitch_limit_deg: 120\n",
			wantErr:    ErrInvalidValue,
		},
		{
			name:       "negative speed",
			createFile: true,
			content:    "camera:\n  move_speed: -1\n",
			wantErr:    ErrInvalidValue,
		},
		{
			name:       "explicit zero speeds are kept",
			createFile: true,
			content:    "camera:\n  move_speed: 0\n  zoom_speed: 0\n  rotation_speed: 0\n",
			validate: func(t *testing.T, cfg *Config) {
				cc := cfg.Camera
				if cc.MoveSpeed != 0 || cc.ZoomSpeed != 0 || cc.RotationSpeed != 0 {
					t.Errorf("move/zoom/rotation speed = %v/%v/%v, want 0/0/0", cc.MoveSpeed, cc.ZoomSpeed, cc.RotationSpeed)
				}
				if cc.SprintMultiplier != camera.DefaultSprintMultiplier {
					t.Errorf("SprintMultiplier = %v, want default %v", cc.SprintMultiplier, camera.DefaultSprintMultiplier)
				}
			},
		},
		{
			name:       "empty strings take defaults",
			createFile: true,
			content:    "window:\n  title: \"\"\ncamera:\n  mode: \"\"\n  bindings:\n    up: ~\n",
			validate: func(t *testing.T, cfg *Config) {
				d := Default()
				if cfg.Window.Title != d.Window.Title || cfg.Camera.Mode != d.Camera.Mode || cfg.Camera.Bindings.Up != "q" {
					t.Errorf("Title/Mode/Up = %q/%q/%q, want defaults", cfg.Window.Title, cfg.Camera.Mode, cfg.Camera.Bindings.Up)
				}
			},
		},
		{
			name:       "zero window size",
			createFile: true,
			content:    "window:\n  width: 0\n",
			wantErr:    ErrInvalidValue,
		},
		{
			name:       "minimum size above window size",
			createFile: true,
			content:    "window:\n  width: 640\n  height: 480\n  min_width: 800\n",
			wantErr:    ErrInvalidValue,
		},
		{
			name:       "zero tick rate",
			createFile: true,
			content:    "engine:\n  tick_rate: 0\n",
			wantErr:    ErrInvalidValue,
		},
		{
			name:       "zero max delta time",
			createFile: true,
			content:    "camera:\n  max_delta_time: 0\n",
			wantErr:    ErrInvalidValue,
		},
		{
			name:       "negative tick rate",
			createFile: true,
			content:    "engine:\n  tick_rate: -5\n",
			wantErr:    ErrInvalidValue,
		},
		{
			name:       "missing file",
			createFile: false,
			wantErr:    os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.yaml")
			if tt.createFile {
				path = writeConfig(t, tt.content)
			}
			cfg, err := Load(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("camera: [unterminated")); err == nil {
		t.Error("Parse() error = nil, want a yaml error")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestKeyBindings(t *testing.T) {
	cfg := Default()
	cfg.Camera.Bindings.Up = "SPACE"
	cfg.Camera.Bindings.Down = "left_ctrl"
	kb, err := cfg.Camera.KeyBindings()
	if err != nil {
		t.Fatalf("KeyBindings() error = %v", err)
	}
	want := camera.KeyBindings{
		Forward: common.KeyW,
		Back:    common.KeyS,
		Left:    common.KeyA,
		Right:   common.KeyD,
		Up:      common.KeySpace,
		Down:    common.KeyLeftControl,
	}
	if kb != want {
		t.Errorf("KeyBindings() = %+v, want %+v", kb, want)
	}
}

func TestCameraOptions(t *testing.T) {
	cfg := Default()
	cfg.Camera.Mode = "scroll"
	cfg.Camera.MoveSpeed = 5
	cfg.Camera.Position = [3]float32{1, 2, 3}
	cfg.Camera.YawDeg = 90
	cfg.Camera.PitchDeg = -30
	cfg.Camera.PitchLimitDeg = 45

	mode, opts, err := cfg.CameraOptions()
	if err != nil {
		t.Fatalf("CameraOptions() error = %v", err)
	}
	if mode != camera.ModeScroll {
		t.Errorf("mode = %v, want %v", mode, camera.ModeScroll)
	}

	cc := camera.NewCameraController(input.NewInputTracker(), mode, opts...)
	if cc.Speed() != 5 {
		t.Errorf("Speed() = %v, want 5", cc.Speed())
	}
	if cc.Position() != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Position() = %v, want (1, 2, 3)", cc.Position())
	}
	if d := mgl32.Abs(cc.Yaw() - mgl32.DegToRad(90)); d > 1e-5 {
		t.Errorf("Yaw() = %v, want π/2", cc.Yaw())
	}
	if d := mgl32.Abs(cc.Pitch() - mgl32.DegToRad(-30)); d > 1e-5 {
		t.Errorf("Pitch() = %v, want -π/6", cc.Pitch())
	}
	if d := mgl32.Abs(cc.PitchLimit() - mgl32.DegToRad(45)); d > 1e-5 {
		t.Errorf("PitchLimit() = %v, want π/4", cc.PitchLimit())
	}
}

func TestCameraOptionsErrors(t *testing.T) {
	cfg := Default()
	cfg.Camera.Mode = "tumble"
	if _, _, err := cfg.CameraOptions(); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("CameraOptions() error = %v, want ErrUnknownMode", err)
	}

	cfg = Default()
	cfg.Camera.Bindings.Left = ""
	if _, _, err := cfg.CameraOptions(); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("CameraOptions() error = %v, want ErrUnknownKey", err)
	}
}
