// Package blend combines a base mesh with weighted blendshape targets.
package blend

import (
	"fmt"

	"github.com/Faultbox/blendview/pkg/math"
)

// Blend computes base + Σ w[i]·(targets[i] − base) component-wise.
// Targets are accumulated in index order, so the result is reproducible
// bit for bit for the same inputs. base and targets are not modified.
func Blend(base []float32, targets [][]float32, weights []float32) ([]float32, error) {
	if len(weights) != len(targets) {
		return nil, &TopologyMismatchError{What: "weights", Want: len(targets), Got: len(weights)}
	}
	for i, t := range targets {
		if len(t) != len(base) {
			return nil, &TopologyMismatchError{What: fmt.Sprintf("target %d", i), Want: len(base), Got: len(t)}
		}
	}

	out := make([]float32, len(base))
	copy(out, base)
	for i, t := range targets {
		w := weights[i]
		for j := range out {
			out[j] += w * (t[j] - base[j])
		}
	}
	return out, nil
}

// Options controls ShapeSet.Blend.
type Options struct {
	// BlendNormals blends normals with the same weights and renormalizes
	// them. When false the base normals are used unchanged.
	BlendNormals bool
}

// Result holds the buffers handed to the renderer.
type Result struct {
	Positions []float32
	Normals   []float32
}

// Corners returns the number of vertices to draw.
func (r *Result) Corners() int {
	return len(r.Positions) / 3
}

// Blend applies weights to the set. weights[i] belongs to Targets[i].
func (s *ShapeSet) Blend(weights []float32, opts Options) (*Result, error) {
	targets := make([][]float32, len(s.Targets))
	for i, t := range s.Targets {
		targets[i] = t.Positions
	}
	positions, err := Blend(s.Base.Positions, targets, weights)
	if err != nil {
		return nil, err
	}

	normals := make([]float32, len(s.Base.Normals))
	copy(normals, s.Base.Normals)
	if opts.BlendNormals {
		for i, t := range s.Targets {
			targets[i] = t.Normals
		}
		normals, err = Blend(s.Base.Normals, targets, weights)
		if err != nil {
			return nil, err
		}
		renormalize(normals)
	}

	return &Result{Positions: positions, Normals: normals}, nil
}

func renormalize(normals []float32) {
	for i := 0; i+2 < len(normals); i += 3 {
		n := math.Vec3At(normals, i).Normalize()
		normals[i], normals[i+1], normals[i+2] = n.X, n.Y, n.Z
	}
}
