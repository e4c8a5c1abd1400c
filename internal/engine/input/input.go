// Package input turns SDL2 events into viewer actions.
package input

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// Actions are the requests collected during one poll.
type Actions struct {
	Quit    bool
	Capture bool

	// Resized is set when the drawable size changed; Width/Height hold the
	// new window size.
	Resized       bool
	Width, Height int
}

// Bindings maps actions to keys.
type Bindings struct {
	Quit    sdl.Scancode
	Capture sdl.Scancode
}

// ParseBindings resolves SDL key names such as "Escape" or "P".
func ParseBindings(quit, capture string) (Bindings, error) {
	q, err := scancode(quit)
	if err != nil {
		return Bindings{}, err
	}
	c, err := scancode(capture)
	if err != nil {
		return Bindings{}, err
	}
	if q == c {
		return Bindings{}, fmt.Errorf("quit and capture are both bound to %q", quit)
	}
	return Bindings{Quit: q, Capture: c}, nil
}

func scancode(name string) (sdl.Scancode, error) {
	sc := sdl.GetScancodeFromName(name)
	if sc == sdl.SCANCODE_UNKNOWN {
		return 0, fmt.Errorf("unknown key name %q", name)
	}
	return sc, nil
}

// Input polls SDL events.
type Input struct {
	bindings Bindings
}

// New creates an input handler with the given key bindings.
func New(b Bindings) *Input {
	return &Input{bindings: b}
}

// Poll drains the SDL event queue. A key triggers its action once per
// press; auto-repeat events are ignored.
func (i *Input) Poll() Actions {
	var a Actions

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			a.Quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				a.Resized = true
				a.Width = int(e.Data1)
				a.Height = int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			switch e.Keysym.Scancode {
			case i.bindings.Quit:
				a.Quit = true
			case i.bindings.Capture:
				a.Capture = true
			}
		}
	}

	return a
}
