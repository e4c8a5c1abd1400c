package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 0.1, 0.5}
	view := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	p := view.TransformPoint(eye)
	if p.Length() > 1e-6 {
		t.Errorf("eye should map to origin, got %v", p)
	}

	// The target lies straight ahead on -Z.
	c := view.TransformPoint(Vec3{})
	if abs(c.X) > 1e-6 || abs(c.Y) > 1e-6 || c.Z >= 0 {
		t.Errorf("target should be on -Z axis, got %v", c)
	}
	if abs(c.Length()-eye.Length()) > 1e-6 {
		t.Errorf("target distance: got %v, want %v", c.Length(), eye.Length())
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := Perspective(Radians(60), 4.0/3.0, 0.1, 10)

	near := p.TransformPoint(Vec3{0, 0, -0.1})
	far := p.TransformPoint(Vec3{0, 0, -10})
	if abs(near.Z+1) > 1e-4 {
		t.Errorf("near plane should map to z=-1, got %v", near.Z)
	}
	if abs(far.Z-1) > 1e-4 {
		t.Errorf("far plane should map to z=1, got %v", far.Z)
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); abs(got-math32.Pi) > 1e-6 {
		t.Errorf("Radians(180) = %v, want pi", got)
	}
}

func abs(x float32) float32 {
	return math32.Abs(x)
}
