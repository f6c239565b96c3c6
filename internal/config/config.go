// Package config loads the visualizer settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/ayusman/lace/internal/app"
	"github.com/ayusman/lace/internal/scene"
	"github.com/ayusman/lace/internal/tracking"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Backends a config may select.
const (
	BackendGocv     = "gocv"
	BackendEbiten   = "ebiten"
	BackendHeadless = "headless"
)

// Tracker sources a config may select.
const (
	SourceBridge = "bridge"
	SourceReplay = "replay"
	SourceMock   = "mock"
)

const maxFileSize = 1 << 20

// Config is the root of the YAML document.
type Config struct {
	Backend string        `yaml:"backend"`
	Window  WindowConfig  `yaml:"window"`
	Tracker TrackerConfig `yaml:"tracker"`
	Mapping MappingConfig `yaml:"mapping"`
	Scene   SceneConfig   `yaml:"scene"`
}

// WindowConfig sizes the output window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
}

// TrackerConfig selects where hand frames come from.
type TrackerConfig struct {
	Source           string   `yaml:"source"`
	Command          []string `yaml:"command"`
	ReplayFile       string   `yaml:"replay_file"`
	ReplayFPS        int      `yaml:"replay_fps"`
	Loop             bool     `yaml:"loop"`
	BackgroundFrames bool     `yaml:"background_frames"`
}

// MappingConfig holds the sensor ranges in millimeters. Depth also takes a
// fixed output range; X and Y always span the viewport.
type MappingConfig struct {
	X    []float64 `yaml:"x"`
	Y    []float64 `yaml:"y"`
	Z    []float64 `yaml:"z"`
	ZOut []float64 `yaml:"z_out"`
}

// SceneConfig controls what is drawn.
type SceneConfig struct {
	Grid          bool         `yaml:"grid"`
	Box           bool         `yaml:"box"`
	BoxPolicy     string       `yaml:"box_policy"`
	TrailCapacity int          `yaml:"trail_capacity"`
	Camera        CameraConfig `yaml:"camera"`
}

// CameraConfig positions the scene camera. Orientation is in degrees.
type CameraConfig struct {
	Orientation []float64 `yaml:"orientation"`
	FOV         float64   `yaml:"fov"`
	Distance    float64   `yaml:"distance"`
}

// Default returns the stock configuration.
func Default() *Config {
	bounds := tracking.DefaultSensorBounds()
	style := app.DefaultStyle()
	cam := style.Camera

	return &Config{
		Backend: BackendGocv,
		Window: WindowConfig{
			Title:  style.Title,
			Width:  1024,
			Height: 768,
			FPS:    app.DefaultFPS,
		},
		Tracker: TrackerConfig{
			Source:           SourceBridge,
			Command:          []string{"python3", "scripts/leap_bridge.py"},
			ReplayFPS:        tracking.DefaultReplayRate,
			Loop:             true,
			BackgroundFrames: true,
		},
		Mapping: MappingConfig{
			X:    bounds.X[:],
			Y:    bounds.Y[:],
			Z:    bounds.Z[:],
			ZOut: bounds.ZDst[:],
		},
		Scene: SceneConfig{
			Grid:      true,
			Box:       true,
			BoxPolicy: string(app.BoxLastKnown),
			Camera: CameraConfig{
				Orientation: []float64{cam.Orientation.X, cam.Orientation.Y, cam.Orientation.Z},
				FOV:         cam.FOV,
				Distance:    cam.Distance,
			},
		},
	}
}

// Load reads path and layers it over Default. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML document over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendGocv, BackendEbiten, BackendHeadless:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		return fmt.Errorf("%w: window fps must be positive, got %d", ErrInvalid, c.Window.FPS)
	}

	switch c.Tracker.Source {
	case SourceBridge:
		if len(c.Tracker.Command) == 0 {
			return fmt.Errorf("%w: bridge source needs tracker.command", ErrInvalid)
		}
	case SourceReplay:
		if c.Tracker.ReplayFile == "" {
			return fmt.Errorf("%w: replay source needs tracker.replay_file", ErrInvalid)
		}
	case SourceMock:
	default:
		return fmt.Errorf("%w: unknown tracker source %q", ErrInvalid, c.Tracker.Source)
	}
	if c.Tracker.ReplayFPS < 0 {
		return fmt.Errorf("%w: tracker.replay_fps must not be negative", ErrInvalid)
	}

	ranges := []struct {
		name string
		r    []float64
	}{
		{"mapping.x", c.Mapping.X},
		{"mapping.y", c.Mapping.Y},
		{"mapping.z", c.Mapping.Z},
		{"mapping.z_out", c.Mapping.ZOut},
	}
	for _, rg := range ranges {
		if len(rg.r) != 2 {
			return fmt.Errorf("%w: %s needs 2 values, got %d", ErrInvalid, rg.name, len(rg.r))
		}
	}
	for _, rg := range ranges[:3] {
		if rg.r[0] == rg.r[1] {
			return fmt.Errorf("%w: %s range is empty", ErrInvalid, rg.name)
		}
	}

	switch app.BoxPolicy(c.Scene.BoxPolicy) {
	case app.BoxLastKnown, app.BoxCurrentOnly:
	default:
		return fmt.Errorf("%w: unknown scene.box_policy %q", ErrInvalid, c.Scene.BoxPolicy)
	}
	if c.Scene.TrailCapacity < 0 {
		return fmt.Errorf("%w: scene.trail_capacity must not be negative", ErrInvalid)
	}
	if len(c.Scene.Camera.Orientation) != 3 {
		return fmt.Errorf("%w: scene.camera.orientation needs 3 values, got %d", ErrInvalid, len(c.Scene.Camera.Orientation))
	}
	if fov := c.Scene.Camera.FOV; fov <= 0 || fov >= 180 {
		return fmt.Errorf("%w: scene.camera.fov must be in (0, 180), got %g", ErrInvalid, fov)
	}

	return nil
}

// SensorBounds returns the mapping ranges. The config must be valid.
func (c *Config) SensorBounds() tracking.SensorBounds {
	return tracking.SensorBounds{
		X:    [2]float64{c.Mapping.X[0], c.Mapping.X[1]},
		Y:    [2]float64{c.Mapping.Y[0], c.Mapping.Y[1]},
		Z:    [2]float64{c.Mapping.Z[0], c.Mapping.Z[1]},
		ZDst: [2]float64{c.Mapping.ZOut[0], c.Mapping.ZOut[1]},
	}
}

// Style returns the default style adjusted by the scene settings.
func (c *Config) Style() app.Style {
	style := app.DefaultStyle()
	style.Title = c.Window.Title
	style.BoxPolicy = app.BoxPolicy(c.Scene.BoxPolicy)

	o := c.Scene.Camera.Orientation
	style.Camera = scene.Camera{
		Orientation: r3.Vec{X: o[0], Y: o[1], Z: o[2]},
		FOV:         c.Scene.Camera.FOV,
		Distance:    c.Scene.Camera.Distance,
	}
	return style
}

// AppConfig builds the app configuration around t.
func (c *Config) AppConfig(t tracking.Tracker) app.Config {
	return app.Config{
		Tracker:          t,
		Bounds:           c.SensorBounds(),
		Style:            c.Style(),
		Toggles:          app.Toggles{Grid: c.Scene.Grid, Box: c.Scene.Box},
		TrailCapacity:    c.Scene.TrailCapacity,
		BackgroundFrames: c.Tracker.BackgroundFrames,
	}
}
