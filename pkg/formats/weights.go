package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadWeights reads a blend weight file from disk.
func LoadWeights(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	return ParseWeights(f, path)
}

// ParseWeights reads one decimal weight per line, in file order.
// Blank lines are skipped. The count is not checked against any mesh.
func ParseWeights(r io.Reader, name string) ([]float32, error) {
	var weights []float32

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		w, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil, &LoadError{
				Path: name,
				Line: line,
				Err:  fmt.Errorf("%w: %q is not a number", ErrMalformedLine, text),
			}
		}
		weights = append(weights, float32(w))
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}

	return weights, nil
}
