package blend

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/blendview/pkg/formats"
)

// triangleOBJ builds a two-triangle mesh whose vertex i is offset by d along
// axis i%3, so targets differ from each other and from the base.
func triangleOBJ(d float32) string {
	var sb strings.Builder
	verts := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for i, v := range verts {
		v[i%3] += d
		sb.WriteString("v ")
		for k, c := range v {
			if k > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(formatFloat(c))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("vn 0 0 1\nf 1//1 2//1 3//1 4//1\n")
	return sb.String()
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func mustShape(t *testing.T, src, name string) *Shape {
	t.Helper()
	m, err := formats.ParseOBJ(strings.NewReader(src), name)
	require.NoError(t, err)
	return NewShape(m)
}

func testSet(t *testing.T) *ShapeSet {
	t.Helper()
	base := mustShape(t, triangleOBJ(0), "base.obj")
	t0 := mustShape(t, triangleOBJ(0.5), "0.obj")
	t1 := mustShape(t, triangleOBJ(-0.25), "1.obj")
	t2 := mustShape(t, triangleOBJ(2), "2.obj")
	set, err := NewShapeSet(base, t0, t1, t2)
	require.NoError(t, err)
	return set
}

func TestBlend_ZeroWeightsGiveBase(t *testing.T) {
	set := testSet(t)

	res, err := set.Blend([]float32{0, 0, 0}, Options{})
	require.NoError(t, err)
	assert.Equal(t, set.Base.Positions, res.Positions)
	assert.Equal(t, set.Base.Normals, res.Normals)
	assert.Equal(t, 6, res.Corners())
}

func TestBlend_SingleTargetIsolation(t *testing.T) {
	set := testSet(t)

	for i, target := range set.Targets {
		w := make([]float32, len(set.Targets))
		w[i] = 1

		res, err := set.Blend(w, Options{})
		require.NoError(t, err)
		require.Len(t, res.Positions, len(target.Positions))
		for j := range res.Positions {
			assert.InDelta(t, target.Positions[j], res.Positions[j], 1e-6, "target %d component %d", i, j)
		}
	}
}

func TestBlend_LinearInWeights(t *testing.T) {
	set := testSet(t)
	w := []float32{0.3, 0.6, -0.2}
	const k = 2.5

	kw := make([]float32, len(w))
	for i := range w {
		kw[i] = k * w[i]
	}

	rw, err := set.Blend(w, Options{})
	require.NoError(t, err)
	rk, err := set.Blend(kw, Options{})
	require.NoError(t, err)

	base := set.Base.Positions
	for j := range base {
		assert.InDelta(t, k*(rw.Positions[j]-base[j]), rk.Positions[j]-base[j], 1e-5, "component %d", j)
	}
}

func TestBlend_Formula(t *testing.T) {
	base := []float32{1, 2, 3}
	targets := [][]float32{
		{2, 2, 3},
		{1, 4, 3},
	}

	out, err := Blend(base, targets, []float32{0.5, 0.25})
	require.NoError(t, err)
	assert.Equal(t, []float32{1.5, 2.5, 3}, out)

	// Inputs are untouched.
	assert.Equal(t, []float32{1, 2, 3}, base)
	assert.Equal(t, []float32{2, 2, 3}, targets[0])
}

func TestBlend_Deterministic(t *testing.T) {
	set := testSet(t)
	w := []float32{0.1, 0.7, 0.33}

	a, err := set.Blend(w, Options{})
	require.NoError(t, err)
	b, err := set.Blend(w, Options{})
	require.NoError(t, err)
	assert.Equal(t, a.Positions, b.Positions)
}

func TestBlend_NoTargets(t *testing.T) {
	out, err := Blend([]float32{1, 2, 3}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, out)
}

func TestBlend_WeightCountMismatch(t *testing.T) {
	set := testSet(t)

	_, err := set.Blend([]float32{1, 0}, Options{})
	var tm *TopologyMismatchError
	require.True(t, errors.As(err, &tm), "expected TopologyMismatchError, got %v", err)
	assert.Equal(t, "weights", tm.What)
	assert.Equal(t, 3, tm.Want)
	assert.Equal(t, 2, tm.Got)
}

func TestBlend_TargetLengthMismatch(t *testing.T) {
	_, err := Blend([]float32{0, 0, 0}, [][]float32{{0, 0, 0}, {0, 0, 0, 0, 0, 0}}, []float32{1, 1})
	var tm *TopologyMismatchError
	require.True(t, errors.As(err, &tm))
	assert.Equal(t, "target 1", tm.What)
	assert.Contains(t, tm.Error(), "length 6, want 3")
}

func TestBlend_Normals(t *testing.T) {
	base := mustShape(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\n", "base.obj")
	tilted := mustShape(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 1 0 0\nf 1//1 2//1 3//1\n", "0.obj")
	set, err := NewShapeSet(base, tilted)
	require.NoError(t, err)

	kept, err := set.Blend([]float32{0.5}, Options{})
	require.NoError(t, err)
	assert.Equal(t, base.Normals, kept.Normals, "normals must come from the base by default")

	// The result must not alias the base buffer.
	kept.Normals[0] = 42
	assert.NotEqual(t, float32(42), base.Normals[0])

	blended, err := set.Blend([]float32{0.5}, Options{BlendNormals: true})
	require.NoError(t, err)
	const h = 0.70710677
	for c := 0; c < 3; c++ {
		assert.InDelta(t, h, blended.Normals[c*3], 1e-6)
		assert.InDelta(t, 0, blended.Normals[c*3+1], 1e-6)
		assert.InDelta(t, h, blended.Normals[c*3+2], 1e-6)
	}
}

func TestNewShapeSet_TopologyMismatch(t *testing.T) {
	base := mustShape(t, triangleOBJ(0), "base.obj")
	single := mustShape(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n", "0.obj")

	_, err := NewShapeSet(base, single)
	var tm *TopologyMismatchError
	require.True(t, errors.As(err, &tm))
	assert.Equal(t, 18, tm.Want)
	assert.Equal(t, 9, tm.Got)
	assert.Contains(t, tm.What, "0.obj")
}

func TestLoadShapeSet(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(src), 0644))
		return path
	}

	base := write("base.obj", triangleOBJ(0))
	t0 := write("0.obj", triangleOBJ(1))
	t1 := write("1.obj", triangleOBJ(2))

	set, err := LoadShapeSet(base, []string{t0, t1})
	require.NoError(t, err)
	assert.Len(t, set.Targets, 2)
	assert.Equal(t, t1, set.Targets[1].Name())

	t.Run("missing target", func(t *testing.T) {
		_, err := LoadShapeSet(base, []string{t0, filepath.Join(dir, "7.obj")})
		var le *formats.LoadError
		require.True(t, errors.As(err, &le), "expected LoadError, got %v", err)
		assert.Contains(t, err.Error(), "target 1")
	})

	t.Run("mismatched target", func(t *testing.T) {
		bad := write("bad.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
		_, err := LoadShapeSet(base, []string{t0, bad})
		var tm *TopologyMismatchError
		require.True(t, errors.As(err, &tm), "expected TopologyMismatchError, got %v", err)
	})
}
