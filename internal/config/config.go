// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Shapes   ShapesConfig   `yaml:"shapes"`
	Render   RenderConfig   `yaml:"render"`
	Capture  CaptureConfig  `yaml:"capture"`
	Controls ControlsConfig `yaml:"controls"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// ShapesConfig locates the base mesh, the blendshape targets and the weights.
//
// Targets are either listed explicitly or generated from TargetPattern, a
// printf pattern taking the target index (e.g. "faces/%d.obj").
type ShapesConfig struct {
	Base          string   `yaml:"base"`
	Targets       []string `yaml:"targets"`
	TargetPattern string   `yaml:"target_pattern"`
	TargetCount   int      `yaml:"target_count"`
	Weights       string   `yaml:"weights"`
}

// RenderConfig holds the fixed scene setup.
type RenderConfig struct {
	ClearColor   [3]float32 `yaml:"clear_color"`
	LightDir     [3]float32 `yaml:"light_dir"`
	Wireframe    bool       `yaml:"wireframe"`
	BlendNormals bool       `yaml:"blend_normals"`

	// LightAngles, when set, overrides LightDir with [azimuth, elevation]
	// in degrees.
	LightAngles *[2]float32 `yaml:"light_angles"`

	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	FovY   float32    `yaml:"fov_y"` // degrees
	Aspect float32    `yaml:"aspect"`
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
}

// CaptureConfig holds frame capture settings.
type CaptureConfig struct {
	// Prefix is prepended to the sequence number; it may include a directory.
	Prefix string `yaml:"prefix"`
	// Format is one of "ppm", "png" or "webp".
	Format string `yaml:"format"`
}

// ControlsConfig holds SDL key names for the viewer actions.
type ControlsConfig struct {
	Quit    string `yaml:"quit"`
	Capture string `yaml:"capture"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "blendview",
			Width:  1024,
			Height: 768,
			VSync:  true,
		},
		Shapes: ShapesConfig{
			Base:          "data/faces/base.obj",
			TargetPattern: "data/faces/%d.obj",
			TargetCount:   35,
			Weights:       "data/weights/0.weights",
		},
		Render: RenderConfig{
			ClearColor: [3]float32{0.3, 0.4, 0.5},
			LightDir:   [3]float32{0, 0, 1},
			Eye:        [3]float32{0, 0.1, 0.5},
			Target:     [3]float32{0, 0, 0},
			FovY:       60,
			Aspect:     4.0 / 3.0,
			Near:       0.1,
			Far:        10,
		},
		Capture: CaptureConfig{
			Prefix: "capture",
			Format: "ppm",
		},
		Controls: ControlsConfig{
			Quit:    "Escape",
			Capture: "P",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// TargetPaths returns the target mesh paths in blend order.
func (s *ShapesConfig) TargetPaths() []string {
	if len(s.Targets) > 0 {
		return s.Targets
	}
	if s.TargetPattern == "" {
		return nil
	}
	paths := make([]string, s.TargetCount)
	for i := range paths {
		paths[i] = fmt.Sprintf(s.TargetPattern, i)
	}
	return paths
}

// Validate reports settings that would make startup fail.
func (c *Config) Validate() error {
	var errs []error

	if c.Shapes.Base == "" {
		errs = append(errs, errors.New("shapes.base is empty"))
	}
	if c.Shapes.Weights == "" {
		errs = append(errs, errors.New("shapes.weights is empty"))
	}
	if len(c.Shapes.Targets) == 0 && c.Shapes.TargetPattern != "" && c.Shapes.TargetCount <= 0 {
		errs = append(errs, fmt.Errorf("shapes.target_count must be positive, got %d", c.Shapes.TargetCount))
	}
	if c.Render.LightAngles == nil && c.Render.LightDir == [3]float32{} {
		errs = append(errs, errors.New("render.light_dir has zero length"))
	}
	switch c.Capture.Format {
	case "ppm", "png", "webp":
	default:
		errs = append(errs, fmt.Errorf("capture.format %q is not one of ppm, png, webp", c.Capture.Format))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d is invalid", c.Window.Width, c.Window.Height))
	}

	return errors.Join(errs...)
}
