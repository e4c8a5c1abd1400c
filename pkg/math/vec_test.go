package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	if got := v.Length(); got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 0}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector should normalize to zero, got %v", z)
	}
}

func TestVec3Buffer(t *testing.T) {
	buf := Vec3{1, 2, 3}.AppendTo(nil)
	buf = Vec3Of([3]float32{4, 5, 6}).AppendTo(buf)

	if got := Vec3At(buf, 3); got != (Vec3{4, 5, 6}) {
		t.Errorf("Vec3At(3) = %v, want {4 5 6}", got)
	}
	if got := Vec3At(buf, 0).Add(Vec3At(buf, 3)).Scale(0.5); got != (Vec3{2.5, 3.5, 4.5}) {
		t.Errorf("midpoint = %v, want {2.5 3.5 4.5}", got)
	}
}
