package blend

import (
	"github.com/Faultbox/blendview/pkg/formats"
	"github.com/Faultbox/blendview/pkg/math"
)

// Flatten expands an indexed mesh into per-corner position and normal
// buffers, in face order then corner order. Both buffers hold 3 floats per
// corner, so positions[3k:3k+3] and normals[3k:3k+3] describe corner k.
//
// Corners without a normal index get the geometric normal of their face.
func Flatten(m *formats.OBJ) (positions, normals []float32) {
	n := m.CornerCount() * 3
	positions = make([]float32, 0, n)
	normals = make([]float32, 0, n)

	for _, face := range m.Faces {
		var faceNormal math.Vec3
		haveFaceNormal := false

		for _, c := range face.Corners {
			positions = math.Vec3Of(m.Positions[c.Position]).AppendTo(positions)

			if c.Normal != formats.NoIndex {
				normals = math.Vec3Of(m.Normals[c.Normal]).AppendTo(normals)
				continue
			}
			if !haveFaceNormal {
				faceNormal = geometricNormal(m, face)
				haveFaceNormal = true
			}
			normals = faceNormal.AppendTo(normals)
		}
	}

	return positions, normals
}

// geometricNormal returns the unit normal of a counter-clockwise triangle,
// or zero for a degenerate one.
func geometricNormal(m *formats.OBJ, face formats.Face) math.Vec3 {
	v0 := math.Vec3Of(m.Positions[face.Corners[0].Position])
	v1 := math.Vec3Of(m.Positions[face.Corners[1].Position])
	v2 := math.Vec3Of(m.Positions[face.Corners[2].Position])
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}
