package capture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strconv"

	"github.com/HugoSmits86/nativewebp"
)

// Format selects the capture file encoding.
type Format int

const (
	// FormatPPM is the plain-text P3 pixmap.
	FormatPPM Format = iota
	FormatPNG
	FormatWebP
)

// ParseFormat maps a config name to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "ppm", "":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return 0, fmt.Errorf("unknown capture format %q", name)
	}
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatWebP:
		return "webp"
	default:
		return "ppm"
	}
}

func (f Format) String() string {
	return f.Ext()
}

// Frame is an RGB frame as read back from the GPU: rows bottom to top.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// row returns output row y (0 = top), which is source row height-1-y.
func (fr Frame) row(y int) []byte {
	stride := fr.Width * 3
	off := (fr.Height - 1 - y) * stride
	return fr.Pix[off : off+stride]
}

// Image converts the frame to a top-down NRGBA image.
func (fr Frame) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fr.Width, fr.Height))
	for y := 0; y < fr.Height; y++ {
		src := fr.row(y)
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < fr.Width; x++ {
			dst[x*4+0] = src[x*3+0]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 0xff
		}
	}
	return img
}

func (f Format) encode(w io.Writer, fr Frame) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, fr.Image())
	case FormatWebP:
		return nativewebp.Encode(w, fr.Image(), nil)
	default:
		return EncodePPM(w, fr)
	}
}

// EncodePPM writes the frame as a plain-text P3 pixmap: a header with the
// magic, the dimensions and the maximum channel value, then one line per
// row of space-separated decimal R G B values, top row first.
func EncodePPM(w io.Writer, fr Frame) error {
	if _, err := fmt.Fprintf(w, "P3\n%d %d\n255\n", fr.Width, fr.Height); err != nil {
		return err
	}

	line := make([]byte, 0, fr.Width*12+1)
	for y := 0; y < fr.Height; y++ {
		line = line[:0]
		for i, v := range fr.row(y) {
			if i > 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendUint(line, uint64(v), 10)
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}
