// Package lighting resolves the directional light used for shading.
package lighting

import (
	"errors"

	"github.com/chewxy/math32"

	"github.com/Faultbox/blendview/pkg/math"
)

// ErrZeroDirection is returned for a light direction of zero length.
var ErrZeroDirection = errors.New("light direction has zero length")

// SunDirection converts azimuth/elevation angles in degrees to a unit vector
// pointing towards the light. Azimuth rotates around +Y starting at +Z,
// elevation is measured up from the XZ plane.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := math.Radians(azimuth)
	el := math.Radians(elevation)

	return math.Vec3{
		X: math32.Cos(el) * math32.Sin(az),
		Y: math32.Sin(el),
		Z: math32.Cos(el) * math32.Cos(az),
	}
}

// Direction normalizes an explicit light direction.
func Direction(dir [3]float32) (math.Vec3, error) {
	v := math.Vec3Of(dir)
	if v.Length() == 0 {
		return math.Vec3{}, ErrZeroDirection
	}
	return v.Normalize(), nil
}

// Resolve picks the light: angles when given, the explicit direction otherwise.
func Resolve(dir [3]float32, angles *[2]float32) (math.Vec3, error) {
	if angles != nil {
		return SunDirection(angles[0], angles[1]), nil
	}
	return Direction(dir)
}
