// Package picking provides ray casting utilities for screen-space hit tests.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/boxify/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized for rays built by ScreenToRay
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screen is in pixels with Y down, viewport is the viewport size in pixels.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screen, viewport math.Vec2, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screen.X/viewport.X - 1.0
	ndcY := 1.0 - 2.0*screen.Y/viewport.Y // Flip Y

	nearWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1.0, 1.0})

	return Ray{Origin: nearWorld, Direction: farWorld.Sub(nearWorld).Normalize()}
}

func unproject(invViewProj math.Mat4, ndc math.Vec4) math.Vec3 {
	p := invViewProj.MulVec4(ndc)
	if p[3] != 0 {
		p[0] /= p[3]
		p[1] /= p[3]
		p[2] /= p[3]
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// At returns Origin + t*Direction.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform maps the ray by m. The direction is not renormalized, so a
// parameter t addresses the same point before and after the transform.
func (r Ray) Transform(m math.Mat4) Ray {
	return Ray{Origin: m.TransformVec3(r.Origin), Direction: m.TransformDirection(r.Direction)}
}

// Along returns the ray parameter of the point on the ray closest to p.
func (r Ray) Along(p math.Vec3) float32 {
	return p.Sub(r.Origin).Dot(r.Direction) / r.Direction.Dot(r.Direction)
}

// AngleTo returns the angle between the ray direction and the direction from
// the origin to p, in radians.
func (r Ray) AngleTo(p math.Vec3) float32 {
	to := p.Sub(r.Origin).Normalize()
	cos := to.Dot(r.Direction.Normalize())
	return math32.Acos(math32.Max(-1, math32.Min(1, cos)))
}

// IntersectPlane intersects the ray with the plane through point with normal.
// Returns the ray parameter and whether the plane is in front of the origin.
func (r Ray) IntersectPlane(point, normal math.Vec3) (t float32, ok bool) {
	denom := normal.Dot(r.Direction)
	if math32.Abs(denom) < 1e-6 {
		return 0, false // Ray parallel to plane
	}

	t = point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return 0, false // Intersection behind ray origin
	}
	return t, true
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (math.Vec3, bool) {
	t, ok := r.IntersectPlane(math.Vec3{Y: planeY}, math.Vec3{Y: 1})
	if !ok {
		return math.Vec3{}, false
	}
	p := r.At(t)
	p.Y = planeY
	return p, true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
// Boxes with zero thickness on an axis behave as flat quads.
func (r Ray) IntersectAABB(box math.Bounds) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	for _, axis := range [3]math.Axis{math.AxisX, math.AxisY, math.AxisZ} {
		origin := r.Origin.Get(axis)
		dir := r.Direction.Get(axis)
		lo, hi := box.Min.Get(axis), box.Max.Get(axis)

		if dir == 0 {
			if origin < lo || origin > hi {
				return 0, false
			}
			continue
		}

		t1 := (lo - origin) / dir
		t2 := (hi - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectOriented tests the ray against bounds placed in world space by
// transform. Returns the world-space hit point.
func (r Ray) IntersectOriented(transform math.Mat4, bounds math.Bounds) (math.Vec3, bool) {
	local := r.Transform(transform.Inverse())
	t, ok := local.IntersectAABB(bounds)
	if !ok {
		return math.Vec3{}, false
	}
	return r.At(t), true
}
