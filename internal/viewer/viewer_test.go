package viewer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/blendview/internal/engine/capture"
	"github.com/Faultbox/blendview/internal/engine/input"
)

type scriptedInput struct {
	script []input.Actions
	polls  int
}

func (s *scriptedInput) Poll() input.Actions {
	s.polls++
	if len(s.script) == 0 {
		return input.Actions{Quit: true}
	}
	a := s.script[0]
	s.script = s.script[1:]
	return a
}

type fakeScene struct {
	draws   int
	resized [][2]int
	pix     []byte
}

func (s *fakeScene) Draw() { s.draws++ }

func (s *fakeScene) Resize(width, height int) {
	s.resized = append(s.resized, [2]int{width, height})
}

func (s *fakeScene) ReadPixels(width, height int, dst []byte) error {
	copy(dst, s.pix)
	return nil
}

type fakePresenter struct {
	swaps         int
	width, height int
}

func (p *fakePresenter) SwapBuffers()             { p.swaps++ }
func (p *fakePresenter) DrawableSize() (int, int) { return p.width, p.height }

type recordingCapturer struct {
	calls int
	err   error
}

func (c *recordingCapturer) Capture(src capture.PixelSource, width, height int) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return "shot.ppm", nil
}

func TestStep_QuitClosesWithoutDrawing(t *testing.T) {
	in := &scriptedInput{script: []input.Actions{{Quit: true, Capture: true}}}
	scene := &fakeScene{}
	pres := &fakePresenter{width: 2, height: 1}
	capt := &recordingCapturer{}
	v := New(in, scene, pres, capt)

	assert.False(t, v.Step())
	assert.Equal(t, Closing, v.State())
	assert.Equal(t, 0, scene.draws)
	assert.Equal(t, 0, pres.swaps)
	assert.Equal(t, 0, capt.calls, "quit wins over capture")

	// Closing is terminal.
	assert.False(t, v.Step())
	assert.Equal(t, 1, in.polls)
}

func TestRun_DrawsUntilQuit(t *testing.T) {
	in := &scriptedInput{script: []input.Actions{{}, {}, {}}}
	scene := &fakeScene{}
	pres := &fakePresenter{width: 4, height: 3}
	v := New(in, scene, pres, &recordingCapturer{})

	v.Run()

	assert.Equal(t, Closing, v.State())
	assert.Equal(t, 3, scene.draws)
	assert.Equal(t, 3, pres.swaps)
	assert.Equal(t, uint64(3), v.Frames())
}

func TestStep_CaptureOncePerPress(t *testing.T) {
	in := &scriptedInput{script: []input.Actions{{Capture: true}, {}, {Capture: true}}}
	capt := &recordingCapturer{}
	v := New(in, &fakeScene{}, &fakePresenter{width: 1, height: 1}, capt)

	v.Run()
	assert.Equal(t, 2, capt.calls)
}

func TestStep_CaptureErrorKeepsRunning(t *testing.T) {
	in := &scriptedInput{script: []input.Actions{{Capture: true}, {}}}
	scene := &fakeScene{}
	capt := &recordingCapturer{err: &capture.IOError{Path: "x0.ppm", Err: errors.New("disk full")}}
	v := New(in, scene, &fakePresenter{width: 1, height: 1}, capt)

	require.True(t, v.Step())
	assert.Equal(t, Running, v.State())
	assert.Equal(t, 1, scene.draws)

	assert.True(t, v.Step())
	assert.False(t, v.Step())
}

func TestStep_ResizeUsesDrawableSize(t *testing.T) {
	in := &scriptedInput{script: []input.Actions{{Resized: true, Width: 800, Height: 600}}}
	scene := &fakeScene{}
	v := New(in, scene, &fakePresenter{width: 1600, height: 1200}, &recordingCapturer{})

	v.Run()
	assert.Equal(t, [][2]int{{1600, 1200}}, scene.resized)
}

func TestStep_CaptureWritesFile(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "frame")
	in := &scriptedInput{script: []input.Actions{{Capture: true}}}
	scene := &fakeScene{pix: []byte{255, 0, 0, 0, 255, 0}}
	c := capture.New(prefix, capture.FormatPPM)
	v := New(in, scene, &fakePresenter{width: 2, height: 1}, c)

	v.Run()

	data, err := os.ReadFile(prefix + "0.ppm")
	require.NoError(t, err)
	assert.Equal(t, "P3\n2 1\n255\n255 0 0 0 255 0\n", string(data))
	assert.Equal(t, uint64(1), c.Next())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "closing", Closing.String())
}
