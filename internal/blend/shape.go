package blend

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/blendview/internal/logger"
	"github.com/Faultbox/blendview/pkg/formats"
)

// Shape is a loaded mesh together with its flattened buffers.
type Shape struct {
	Mesh      *formats.OBJ
	Positions []float32
	Normals   []float32
}

// NewShape flattens m.
func NewShape(m *formats.OBJ) *Shape {
	positions, normals := Flatten(m)
	return &Shape{
		Mesh:      m,
		Positions: positions,
		Normals:   normals,
	}
}

// LoadShape loads and flattens an OBJ file.
func LoadShape(path string) (*Shape, error) {
	m, err := formats.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	return NewShape(m), nil
}

// Name returns the mesh name (its source path when loaded from disk).
func (s *Shape) Name() string {
	return s.Mesh.Name
}

// ShapeSet is one base shape followed by its blendshape targets.
type ShapeSet struct {
	Base    *Shape
	Targets []*Shape
}

// NewShapeSet checks that every target flattens to the same length as the
// base and returns the set.
func NewShapeSet(base *Shape, targets ...*Shape) (*ShapeSet, error) {
	for i, t := range targets {
		if len(t.Positions) != len(base.Positions) {
			return nil, &TopologyMismatchError{
				What: fmt.Sprintf("target %d (%s) positions", i, t.Name()),
				Want: len(base.Positions),
				Got:  len(t.Positions),
			}
		}
		if len(t.Normals) != len(base.Normals) {
			return nil, &TopologyMismatchError{
				What: fmt.Sprintf("target %d (%s) normals", i, t.Name()),
				Want: len(base.Normals),
				Got:  len(t.Normals),
			}
		}
	}
	return &ShapeSet{Base: base, Targets: targets}, nil
}

// LoadShapeSet loads the base mesh and the targets in order. Loading stops
// at the first file that fails.
func LoadShapeSet(basePath string, targetPaths []string) (*ShapeSet, error) {
	base, err := LoadShape(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading base mesh: %w", err)
	}
	logger.Debug("base mesh loaded",
		zap.String("path", basePath),
		zap.Int("positions", len(base.Mesh.Positions)),
		zap.Int("normals", len(base.Mesh.Normals)),
		zap.Int("triangles", len(base.Mesh.Faces)),
	)

	targets := make([]*Shape, 0, len(targetPaths))
	for i, path := range targetPaths {
		t, err := LoadShape(path)
		if err != nil {
			return nil, fmt.Errorf("loading target %d: %w", i, err)
		}
		logger.Debug("target mesh loaded",
			zap.Int("index", i),
			zap.String("path", path),
			zap.Int("triangles", len(t.Mesh.Faces)),
		)
		targets = append(targets, t)
	}

	return NewShapeSet(base, targets...)
}
