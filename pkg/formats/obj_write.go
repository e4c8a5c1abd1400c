package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteFlatOBJ writes non-indexed per-corner buffers as an OBJ file.
// Every corner becomes its own v/vn pair and every three corners one face,
// so reading the result back and flattening it reproduces the buffers.
func WriteFlatOBJ(w io.Writer, positions, normals []float32) error {
	if len(positions)%9 != 0 {
		return fmt.Errorf("position buffer length %d is not a whole number of triangles", len(positions))
	}
	if len(normals) != len(positions) {
		return fmt.Errorf("normal buffer length %d, want %d", len(normals), len(positions))
	}

	bw := bufio.NewWriter(w)
	writeVec := func(tag string, buf []float32, i int) {
		bw.WriteString(tag)
		for k := 0; k < 3; k++ {
			bw.WriteByte(' ')
			bw.WriteString(strconv.FormatFloat(float64(buf[i+k]), 'g', -1, 32))
		}
		bw.WriteByte('\n')
	}

	for i := 0; i < len(positions); i += 3 {
		writeVec("v", positions, i)
	}
	for i := 0; i < len(normals); i += 3 {
		writeVec("vn", normals, i)
	}

	corners := len(positions) / 3
	for c := 1; c <= corners; c += 3 {
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", c, c, c+1, c+1, c+2, c+2)
	}

	return bw.Flush()
}
