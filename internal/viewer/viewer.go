// Package viewer implements the render loop.
package viewer

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/blendview/internal/engine/capture"
	"github.com/Faultbox/blendview/internal/engine/input"
	"github.com/Faultbox/blendview/internal/logger"
)

// State is the loop state.
type State int

const (
	Running State = iota
	Closing
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// Input reports the actions requested since the previous frame.
type Input interface {
	Poll() input.Actions
}

// Scene draws the frame and can read it back.
type Scene interface {
	capture.PixelSource
	Draw()
	Resize(width, height int)
}

// Presenter shows the drawn frame.
type Presenter interface {
	SwapBuffers()
	DrawableSize() (int, int)
}

// Capturer writes the displayed frame to a file.
type Capturer interface {
	Capture(src capture.PixelSource, width, height int) (string, error)
}

// Viewer runs the render loop until quit is requested.
type Viewer struct {
	input     Input
	scene     Scene
	presenter Presenter
	capturer  Capturer

	state  State
	frames uint64
}

// New creates a viewer in the Running state.
func New(in Input, scene Scene, presenter Presenter, capturer Capturer) *Viewer {
	return &Viewer{
		input:     in,
		scene:     scene,
		presenter: presenter,
		capturer:  capturer,
		state:     Running,
	}
}

// State returns the current loop state.
func (v *Viewer) State() State {
	return v.state
}

// Frames returns the number of frames presented so far.
func (v *Viewer) Frames() uint64 {
	return v.frames
}

// Run steps the loop until it reaches Closing.
func (v *Viewer) Run() {
	logger.Info("starting render loop")

	frameCount := 0
	fpsTimer := time.Now()

	for v.Step() {
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("render loop stopped", zap.Uint64("frames", v.frames))
}

// Step runs one iteration and reports whether the loop is still running.
// A capture requested in this iteration reads the frame presented by the
// previous one.
func (v *Viewer) Step() bool {
	if v.state != Running {
		return false
	}

	actions := v.input.Poll()
	if actions.Quit {
		v.state = Closing
		return false
	}

	if actions.Resized {
		v.scene.Resize(v.presenter.DrawableSize())
	}

	if actions.Capture {
		v.capture()
	}

	v.scene.Draw()
	v.presenter.SwapBuffers()
	v.frames++
	return true
}

func (v *Viewer) capture() {
	width, height := v.presenter.DrawableSize()
	path, err := v.capturer.Capture(v.scene, width, height)
	if err != nil {
		var ioErr *capture.IOError
		if errors.As(err, &ioErr) {
			logger.Error("failed to write capture", zap.String("path", ioErr.Path), zap.Error(ioErr.Err))
		} else {
			logger.Error("capture failed", zap.Error(err))
		}
		return
	}
	logger.Info("frame captured", zap.String("path", path))
}
