package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrMalformedLine   = errors.New("malformed line")
	ErrInvalidIndex    = errors.New("invalid index")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrDegenerateFace  = errors.New("face has fewer than 3 corners")
	ErrNoFaces         = errors.New("mesh has no faces")
)

// NoIndex marks a face corner that does not reference a normal.
const NoIndex = -1

// Corner is one face corner. Indices are 0-based.
type Corner struct {
	Position int
	Normal   int
}

// Face is a triangle.
type Face struct {
	Corners [3]Corner
}

// OBJ represents a parsed Wavefront OBJ file with all faces triangulated.
type OBJ struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	Faces     []Face

	// Groups lists the o/g names in file order.
	Groups []string

	// Skipped counts lines with keywords the loader ignores (vt, s, usemtl...).
	Skipped int
}

// CornerCount returns the number of face corners.
func (o *OBJ) CornerCount() int {
	return len(o.Faces) * 3
}

// LoadOBJ reads and parses an OBJ file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	return ParseOBJ(f, path)
}

// ParseOBJ parses OBJ data. name is used for the mesh name and in errors.
// Polygons with more than three corners are fan-triangulated.
func ParseOBJ(r io.Reader, name string) (*OBJ, error) {
	p := objParser{
		obj: &OBJ{Name: name},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, &LoadError{Path: name, Line: p.line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}

	if len(p.obj.Faces) == 0 {
		return nil, &LoadError{Path: name, Err: ErrNoFaces}
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	return p.obj, nil
}

type objParser struct {
	obj  *OBJ
	line int

	// faceLines remembers the source line of each face for index errors.
	faceLines []int
}

func (p *objParser) parseLine(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := parseVec3(fields[1:])
		if err != nil {
			return err
		}
		p.obj.Positions = append(p.obj.Positions, v)
	case "vn":
		n, err := parseVec3(fields[1:])
		if err != nil {
			return err
		}
		p.obj.Normals = append(p.obj.Normals, n)
	case "f":
		return p.parseFace(fields[1:])
	case "o", "g":
		if len(fields) > 1 {
			p.obj.Groups = append(p.obj.Groups, strings.Join(fields[1:], " "))
		}
	default:
		p.obj.Skipped++
	}
	return nil
}

// parseVec3 reads the first three components of a v or vn line.
// A fourth (w) component on v lines is accepted and dropped.
func parseVec3(fields []string) ([3]float32, error) {
	var v [3]float32
	if len(fields) < 3 {
		return v, fmt.Errorf("%w: expected 3 components, got %d", ErrMalformedLine, len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, fmt.Errorf("%w: %q is not a number", ErrMalformedLine, fields[i])
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseFace parses "f v1[/vt1][/vn1] v2... v3..." and appends the fan of
// triangles (0,i,i+1) to the face list.
func (p *objParser) parseFace(fields []string) error {
	if len(fields) < 3 {
		return ErrDegenerateFace
	}

	corners := make([]Corner, len(fields))
	for i, field := range fields {
		c, err := p.parseCorner(field)
		if err != nil {
			return err
		}
		corners[i] = c
	}

	for i := 1; i < len(corners)-1; i++ {
		p.obj.Faces = append(p.obj.Faces, Face{
			Corners: [3]Corner{corners[0], corners[i], corners[i+1]},
		})
		p.faceLines = append(p.faceLines, p.line)
	}
	return nil
}

func (p *objParser) parseCorner(field string) (Corner, error) {
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return Corner{}, fmt.Errorf("%w: face corner %q", ErrMalformedLine, field)
	}

	pos, err := resolveIndex(parts[0], len(p.obj.Positions))
	if err != nil {
		return Corner{}, err
	}

	c := Corner{Position: pos, Normal: NoIndex}
	if len(parts) == 3 && parts[2] != "" {
		c.Normal, err = resolveIndex(parts[2], len(p.obj.Normals))
		if err != nil {
			return Corner{}, err
		}
	}
	return c, nil
}

// resolveIndex converts a 1-based or negative (relative to count) OBJ index
// to a 0-based index. Bounds are checked once the whole file is read.
func resolveIndex(s string, count int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, s)
	}
	switch {
	case v > 0:
		return v - 1, nil
	case v < 0:
		if count+v < 0 {
			return 0, fmt.Errorf("%w: relative index %d with %d defined", ErrIndexOutOfRange, v, count)
		}
		return count + v, nil
	default:
		return 0, fmt.Errorf("%w: index 0", ErrInvalidIndex)
	}
}

func (p *objParser) validate() error {
	np := len(p.obj.Positions)
	nn := len(p.obj.Normals)
	for fi, face := range p.obj.Faces {
		for _, c := range face.Corners {
			if c.Position < 0 || c.Position >= np {
				return &LoadError{
					Path: p.obj.Name,
					Line: p.faceLines[fi],
					Err:  fmt.Errorf("%w: position %d of %d", ErrIndexOutOfRange, c.Position+1, np),
				}
			}
			if c.Normal != NoIndex && (c.Normal < 0 || c.Normal >= nn) {
				return &LoadError{
					Path: p.obj.Name,
					Line: p.faceLines[fi],
					Err:  fmt.Errorf("%w: normal %d of %d", ErrIndexOutOfRange, c.Normal+1, nn),
				}
			}
		}
	}
	return nil
}
