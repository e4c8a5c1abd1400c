// Package capture writes the rendered frame to numbered image files.
package capture

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// PixelSource provides the current color buffer.
type PixelSource interface {
	// ReadPixels fills dst with width*height tightly packed RGB bytes,
	// bottom row first.
	ReadPixels(width, height int, dst []byte) error
}

// IOError reports a capture file that could not be created or written.
// It does not end the viewer session.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("capture %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Capturer writes frames to <prefix><n>.<ext>, n counting successful
// captures from zero for the lifetime of the Capturer.
type Capturer struct {
	prefix string
	format Format

	mu   sync.Mutex
	next uint64
}

// New creates a capturer. The prefix may include a directory, which must exist.
func New(prefix string, format Format) *Capturer {
	return &Capturer{
		prefix: prefix,
		format: format,
	}
}

// Next returns the sequence number the next successful capture will use.
func (c *Capturer) Next() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next
}

// Filename returns the output path for sequence number n.
func (c *Capturer) Filename(n uint64) string {
	return fmt.Sprintf("%s%d.%s", c.prefix, n, c.format.Ext())
}

// Capture reads a width x height frame from src and writes it to the next
// file in sequence, flipping rows so the file starts with the top row.
// The counter only advances when the file is fully written.
func (c *Capturer) Capture(src PixelSource, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("capture: invalid frame size %dx%d", width, height)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	pixels := make([]byte, width*height*3)
	if err := src.ReadPixels(width, height, pixels); err != nil {
		return "", fmt.Errorf("capture: reading pixels: %w", err)
	}

	path := c.Filename(c.next)
	if err := c.write(path, Frame{Width: width, Height: height, Pix: pixels}); err != nil {
		// Drop the partial file so the number is reused by the next capture.
		os.Remove(path)
		return "", &IOError{Path: path, Err: err}
	}

	c.next++
	return path, nil
}

func (c *Capturer) write(path string, frame Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := c.format.encode(w, frame); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
