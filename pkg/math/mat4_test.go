package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := float32(0)
			if row == col {
				want = 1
			}
			if got := m.At(row, col); got != want {
				t.Errorf("Identity(%d, %d) = %v, want %v", row, col, got, want)
			}
		}
	}
}

func TestColumnMajorLayout(t *testing.T) {
	m := TranslateVec(Vec3{5, 10, 15})

	// Translation lives in the last column (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("TranslateVec: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if got := m.Translation(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Translation() = %v, want (5, 10, 15)", got)
	}
	if got := m.Column(3); got != (Vec4{5, 10, 15, 1}) {
		t.Errorf("Column(3) = %v", got)
	}
	if m.At(0, 3) != 5 {
		t.Errorf("At(0, 3) = %v, want 5", m.At(0, 3))
	}
}

func TestMulIdentity(t *testing.T) {
	m := Compose(Vec3{1, 2, 3}, QuatFromAxisAngle(Vec3{0, 1, 0}, 0.3), Vec3{2, 2, 2})
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I should equal M, got %v", got)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * M should equal M, got %v", got)
	}
}

func TestTransformVec3(t *testing.T) {
	m := TranslateVec(Vec3{10, 20, 30})
	if got := m.TransformVec3(Vec3{1, 2, 3}); got != (Vec3{11, 22, 33}) {
		t.Errorf("TransformVec3: got %v, want (11, 22, 33)", got)
	}

	s := ScaleVec(Vec3{2, 3, 4})
	if got := s.TransformVec3(Vec3{1, 2, 3}); got != (Vec3{2, 6, 12}) {
		t.Errorf("TransformVec3 with scale: got %v, want (2, 6, 12)", got)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := TranslateVec(Vec3{10, 20, 30})
	if got := m.TransformDirection(Vec3{1, 0, 0}); got != (Vec3{1, 0, 0}) {
		t.Errorf("TransformDirection: got %v, want (1, 0, 0)", got)
	}
}

func TestCompose(t *testing.T) {
	// Quarter turn about +Y maps +X to -Z.
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))
	m := Compose(Vec3{1, 0, 0}, q, Vec3{2, 1, 1})

	// Scale, then rotate, then translate: (1,0,0) -> (2,0,0) -> (0,0,-2) -> (1,0,-2)
	if got := m.TransformVec3(Vec3{1, 0, 0}); !near(got, Vec3{1, 0, -2}) {
		t.Errorf("Compose: got %v, want (1, 0, -2)", got)
	}

	want := TranslateVec(Vec3{1, 0, 0}).Mul(q.ToMat4()).Mul(ScaleVec(Vec3{2, 1, 1}))
	for i := range m {
		if abs(m[i]-want[i]) > 1e-5 {
			t.Errorf("element %d: got %v, want %v", i, m[i], want[i])
		}
	}
}

func TestThenAppliesInOrder(t *testing.T) {
	scale := ScaleVec(Vec3{2, 2, 2})
	move := TranslateVec(Vec3{10, 0, 0})

	// Scale first, then translate: (1,1,1) -> (2,2,2) -> (12,2,2)
	if got := scale.Then(move).TransformVec3(Vec3{1, 1, 1}); got != (Vec3{12, 2, 2}) {
		t.Errorf("Then: got %v, want (12, 2, 2)", got)
	}

	// Translate first, then scale: (1,1,1) -> (11,1,1) -> (22,2,2)
	if got := move.Then(scale).TransformVec3(Vec3{1, 1, 1}); got != (Vec3{22, 2, 2}) {
		t.Errorf("Then: got %v, want (22, 2, 2)", got)
	}
}

func TestInverse(t *testing.T) {
	m := Compose(Vec3{1, 2, 3}, QuatFromAxisAngle(Vec3{1, 1, 0}, 0.4), Vec3{0.5, 2, 1})
	p := Vec3{0.5, -1, 2}

	back := m.Inverse().TransformVec3(m.TransformVec3(p))
	if !near(back, p) {
		t.Errorf("Inverse round trip: got %v, want %v", back, p)
	}

	id := m.Mul(m.Inverse())
	want := Identity()
	for i := range id {
		if abs(id[i]-want[i]) > 1e-4 {
			t.Errorf("M * M^-1 element %d: got %v, want %v", i, id[i], want[i])
		}
	}
}

func TestInverseNeedsPivoting(t *testing.T) {
	// Zero on the diagonal: swaps X and Y.
	m := FromColumns(
		Vec4{0, 1, 0, 0},
		Vec4{1, 0, 0, 0},
		Vec4{0, 0, 1, 0},
		Vec4{0, 0, 0, 1},
	)
	if got := m.Inverse(); got != m {
		t.Errorf("a swap is its own inverse, got %v", got)
	}
}

func TestInverseSingular(t *testing.T) {
	m := ScaleVec(Vec3{0, 1, 1})
	if inv := m.Inverse(); inv != Identity() {
		t.Errorf("singular Inverse should return identity, got %v", inv)
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 2) // 90 degrees
	zNear, zFar := float32(0.1), float32(100.0)

	m := Perspective(fov, 2, zNear, zFar)

	if abs(m[0]-0.5) > 1e-6 || abs(m[5]-1) > 1e-6 {
		t.Errorf("Perspective focal terms: got (%f, %f), want (0.5, 1)", m[0], m[5])
	}
	if m[11] != -1 || m[15] != 0 {
		t.Errorf("Perspective w row: got [11]=%f [15]=%f", m[11], m[15])
	}

	// The near and far planes map to NDC depth -1 and 1.
	if got := m.TransformVec3(Vec3{0, 0, -zNear}); abs(got.Z+1) > 1e-4 {
		t.Errorf("near plane depth: got %f, want -1", got.Z)
	}
	if got := m.TransformVec3(Vec3{0, 0, -zFar}); abs(got.Z-1) > 1e-4 {
		t.Errorf("far plane depth: got %f, want 1", got.Z)
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	center := Vec3{0, 0, 0}
	up := Vec3{0, 1, 0}

	m := LookAt(eye, center, up)

	// The eye maps to the view-space origin
	if got := m.TransformVec3(eye); !near(got, Vec3{}) {
		t.Errorf("LookAt eye: got %v, want origin", got)
	}
	// The target lies straight ahead on -Z
	if got := m.TransformVec3(center); !near(got, Vec3{0, 0, -5}) {
		t.Errorf("LookAt center: got %v, want (0, 0, -5)", got)
	}
	// World +X stays to the right
	if got := m.TransformDirection(Vec3{1, 0, 0}); !near(got, Vec3{1, 0, 0}) {
		t.Errorf("LookAt right: got %v, want (1, 0, 0)", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func near(a, b Vec3) bool {
	return abs(a.X-b.X) < 0.001 && abs(a.Y-b.Y) < 0.001 && abs(a.Z-b.Z) < 0.001
}
