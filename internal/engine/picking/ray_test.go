package picking

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/boxify/pkg/math"
)

func near(a, b math.Vec3) bool {
	return a.Distance(b) < 0.001
}

func TestScreenToRayCenter(t *testing.T) {
	eye := math.Vec3{X: 0, Y: 0, Z: 5}
	view := math.LookAt(eye, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(math32.Pi/2, 1, 0.1, 100)
	inv := proj.Mul(view).Inverse()

	r := ScreenToRay(math.Vec2{X: 50, Y: 50}, math.Vec2{X: 100, Y: 100}, inv)

	if !near(r.Direction, math.Vec3{Z: -1}) {
		t.Errorf("expected ray along -Z, got %v", r.Direction)
	}
	if !near(r.Origin, math.Vec3{Z: 4.9}) {
		t.Errorf("expected origin on the near plane, got %v", r.Origin)
	}
}

func TestIntersectPlaneY(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1, Y: 2, Z: 0}, Direction: math.Vec3{X: 0, Y: -1, Z: 0}}

	p, ok := r.IntersectPlaneY(0)
	if !ok {
		t.Fatal("expected intersection")
	}
	if !near(p, math.Vec3{X: 1}) {
		t.Errorf("expected (1,0,0), got %v", p)
	}

	if _, ok := r.IntersectPlaneY(5); ok {
		t.Error("plane behind the origin must not intersect")
	}

	flat := Ray{Origin: math.Vec3{Y: 1}, Direction: math.Vec3{X: 1}}
	if _, ok := flat.IntersectPlaneY(0); ok {
		t.Error("parallel ray must not intersect")
	}
}

func TestIntersectPlane(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: -3, Y: 0.5, Z: 0.2}, Direction: math.Vec3{X: 1}}

	tHit, ok := r.IntersectPlane(math.Vec3{X: 1}, math.Vec3{X: -1})
	if !ok {
		t.Fatal("expected intersection")
	}
	if abs(tHit-4) > 0.0001 {
		t.Errorf("expected t=4, got %f", tHit)
	}
}

func TestIntersectAABB(t *testing.T) {
	box := math.Bounds{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	r := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}
	tHit, ok := r.IntersectAABB(box)
	if !ok || abs(tHit-4) > 0.0001 {
		t.Errorf("expected hit at t=4, got %f %v", tHit, ok)
	}

	inside := Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}
	tHit, ok = inside.IntersectAABB(box)
	if !ok || abs(tHit-1) > 0.0001 {
		t.Errorf("expected exit at t=1, got %f %v", tHit, ok)
	}

	miss := Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}
	if _, ok := miss.IntersectAABB(box); ok {
		t.Error("expected miss")
	}
}

func TestIntersectFlatQuad(t *testing.T) {
	quad := math.Bounds{Min: math.Vec3{X: -0.5, Y: -0.5}, Max: math.Vec3{X: 0.5, Y: 0.5}}

	r := Ray{Origin: math.Vec3{X: 0.2, Y: 0.1, Z: 2}, Direction: math.Vec3{Z: -1}}
	tHit, ok := r.IntersectAABB(quad)
	if !ok || abs(tHit-2) > 0.0001 {
		t.Errorf("expected hit at t=2, got %f %v", tHit, ok)
	}
}

func TestIntersectOriented(t *testing.T) {
	quad := math.Bounds{Min: math.Vec3{X: -0.5, Y: -0.5}, Max: math.Vec3{X: 0.5, Y: 0.5}}
	// Quad lying on the ground at (2,0,0), facing up.
	transform := math.Compose(math.Vec3{X: 2}, math.QuatFromAxisAngle(math.AxisX.Unit(), -math32.Pi/2), math.Vec3{X: 1, Y: 1, Z: 1})

	r := Ray{Origin: math.Vec3{X: 2.1, Y: 3, Z: -0.2}, Direction: math.Vec3{Y: -1}}
	p, ok := r.IntersectOriented(transform, quad)
	if !ok {
		t.Fatal("expected hit")
	}
	if !near(p, math.Vec3{X: 2.1, Z: -0.2}) {
		t.Errorf("expected (2.1,0,-0.2), got %v", p)
	}

	outside := Ray{Origin: math.Vec3{X: 3, Y: 3}, Direction: math.Vec3{Y: -1}}
	if _, ok := outside.IntersectOriented(transform, quad); ok {
		t.Error("expected miss outside the quad")
	}
}

func TestAlongAndAngle(t *testing.T) {
	r := Ray{Origin: math.Vec3{}, Direction: math.Vec3{Z: -1}}

	if got := r.Along(math.Vec3{X: 1, Z: -3}); abs(got-3) > 0.0001 {
		t.Errorf("expected 3, got %f", got)
	}
	if got := r.AngleTo(math.Vec3{X: 1, Z: -1}); abs(got-math32.Pi/4) > 0.0001 {
		t.Errorf("expected pi/4, got %f", got)
	}
	if got := r.AngleTo(math.Vec3{Z: -2}); got > 0.001 {
		t.Errorf("expected 0, got %f", got)
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
