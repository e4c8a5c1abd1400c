// Package main is the entry point for the blendshape viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/blendview/internal/blend"
	"github.com/Faultbox/blendview/internal/config"
	"github.com/Faultbox/blendview/internal/engine/camera"
	"github.com/Faultbox/blendview/internal/engine/capture"
	"github.com/Faultbox/blendview/internal/engine/input"
	"github.com/Faultbox/blendview/internal/engine/lighting"
	"github.com/Faultbox/blendview/internal/engine/renderer"
	"github.com/Faultbox/blendview/internal/engine/window"
	"github.com/Faultbox/blendview/internal/logger"
	"github.com/Faultbox/blendview/internal/viewer"
	"github.com/Faultbox/blendview/pkg/formats"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("=== blendview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logFatal(err)
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
	logger.Sync()
}

// run loads and blends the meshes, then opens the window. Any load or
// topology error is returned before a window exists.
func run(cfg *config.Config) error {
	mesh, err := prepare(cfg)
	if err != nil {
		return err
	}

	bindings, err := input.ParseBindings(cfg.Controls.Quit, cfg.Controls.Capture)
	if err != nil {
		return fmt.Errorf("controls: %w", err)
	}
	format, err := capture.ParseFormat(cfg.Capture.Format)
	if err != nil {
		return err
	}
	light, err := lighting.Resolve(cfg.Render.LightDir, cfg.Render.LightAngles)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	win, err := window.New(window.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	cam := camera.NewFixedCamera(
		cfg.Render.Eye, cfg.Render.Target,
		cfg.Render.FovY, cfg.Render.Aspect, cfg.Render.Near, cfg.Render.Far,
	)

	width, height := win.DrawableSize()
	r, err := renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Render.ClearColor,
		LightDir:   [3]float32{light.X, light.Y, light.Z},
		Wireframe:  cfg.Render.Wireframe,
		MVP:        cam.ViewProjection(),
	})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Close()

	if err := r.Upload(mesh.Positions, mesh.Normals); err != nil {
		return fmt.Errorf("failed to upload mesh: %w", err)
	}

	v := viewer.New(input.New(bindings), r, win, capture.New(cfg.Capture.Prefix, format))
	v.Run()
	return nil
}

// prepare loads the shape set and the weights and blends them.
func prepare(cfg *config.Config) (*blend.Result, error) {
	set, err := blend.LoadShapeSet(cfg.Shapes.Base, cfg.Shapes.TargetPaths())
	if err != nil {
		return nil, err
	}

	weights, err := formats.LoadWeights(cfg.Shapes.Weights)
	if err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}

	res, err := set.Blend(weights, blend.Options{BlendNormals: cfg.Render.BlendNormals})
	if err != nil {
		return nil, err
	}

	logger.Info("mesh blended",
		zap.Int("targets", len(set.Targets)),
		zap.Int("corners", res.Corners()),
		zap.Bool("blend_normals", cfg.Render.BlendNormals),
	)
	return res, nil
}

func logFatal(err error) {
	var le *formats.LoadError
	var tm *blend.TopologyMismatchError
	switch {
	case errors.As(err, &le):
		logger.Error("failed to load input",
			zap.String("path", le.Path),
			zap.Int("line", le.Line),
			zap.Error(le.Err),
		)
	case errors.As(err, &tm):
		logger.Error("topology mismatch",
			zap.String("what", tm.What),
			zap.Int("want", tm.Want),
			zap.Int("got", tm.Got),
		)
	default:
		logger.Error("viewer error", zap.Error(err))
	}
}
