// Package camera provides the viewer's fixed camera.
package camera

import (
	"github.com/Faultbox/blendview/pkg/math"
)

// FixedCamera looks from Eye at Target with a perspective projection.
// It never moves, so the combined matrix is computed once.
type FixedCamera struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3

	FovY   float32 // radians
	Aspect float32
	Near   float32
	Far    float32
}

// NewFixedCamera creates a camera with +Y up. fovYDeg is in degrees.
func NewFixedCamera(eye, target [3]float32, fovYDeg, aspect, near, far float32) *FixedCamera {
	return &FixedCamera{
		Eye:    math.Vec3Of(eye),
		Target: math.Vec3Of(target),
		Up:     math.Vec3{X: 0, Y: 1, Z: 0},
		FovY:   math.Radians(fovYDeg),
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *FixedCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection.
func (c *FixedCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view. Meshes are drawn in world
// space, so this is the full MVP.
func (c *FixedCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
