// Package sim provides a simulated world host and a scenario replayer that
// drive the interaction controller without a device.
package sim

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/boxify/internal/box"
	"github.com/Faultbox/boxify/internal/engine/camera"
	"github.com/Faultbox/boxify/internal/engine/picking"
	"github.com/Faultbox/boxify/internal/worldhit"
	"github.com/Faultbox/boxify/pkg/math"
)

// World is a static environment seen through an orbit camera: horizontal
// planes with a known extent and a cloud of feature points.
type World struct {
	Camera   *camera.OrbitCamera
	planes   []*worldhit.PlaneAnchor
	features []math.Vec3
}

// NewWorld creates an empty world.
func NewWorld(cam *camera.OrbitCamera) *World {
	return &World{Camera: cam}
}

// AddPlane adds a detected horizontal plane.
func (w *World) AddPlane(p worldhit.PlaneAnchor) {
	w.planes = append(w.planes, &p)
}

// AddFeature adds a tracked feature point.
func (w *World) AddFeature(p math.Vec3) {
	w.features = append(w.features, p)
}

// Bounds returns the box around every plane and feature point.
// It reports false for an empty world.
func (w *World) Bounds() (math.Bounds, bool) {
	var points []math.Vec3
	for _, p := range w.planes {
		half := math.Vec3{X: p.Extent.X / 2, Z: p.Extent.Y / 2}
		points = append(points, p.Center.Sub(half), p.Center.Add(half))
	}
	points = append(points, w.features...)
	if len(points) == 0 {
		return math.Bounds{}, false
	}

	b := math.Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b, true
}

// HitTestPlanes returns the nearest plane hit within its extent.
func (w *World) HitTestPlanes(screen math.Vec2) (worldhit.PlaneHit, bool) {
	ray := w.Camera.Ray(screen)

	var best worldhit.PlaneHit
	bestT := math32.Inf(1)
	for _, plane := range w.planes {
		p, ok := ray.IntersectPlaneY(plane.Center.Y)
		if !ok {
			continue
		}
		t := ray.Along(p)
		if t >= bestT ||
			math32.Abs(p.X-plane.Center.X) > plane.Extent.X/2 ||
			math32.Abs(p.Z-plane.Center.Z) > plane.Extent.Y/2 {
			continue
		}
		best = worldhit.PlaneHit{Position: p, Plane: plane}
		bestT = t
	}
	return best, !math32.IsInf(bestT, 1)
}

// HitTestFeatures picks the feature point closest to the screen ray and
// returns its projection onto the ray. A filter limits candidates to a cone
// around the ray and a depth window along it.
func (w *World) HitTestFeatures(screen math.Vec2, filter worldhit.FeatureFilter) (math.Vec3, bool) {
	ray := w.Camera.Ray(screen)
	unfiltered := filter.Unfiltered()

	var best math.Vec3
	bestScore := math32.Inf(1)
	for _, p := range w.features {
		t := ray.Along(p)
		if t <= 0 {
			continue
		}

		score := ray.At(t).Distance(p)
		if !unfiltered {
			angle := ray.AngleTo(p)
			if angle > filter.ConeAngle/2 || t < filter.MinDistance || t > filter.MaxDistance {
				continue
			}
			score = angle
		}

		if score < bestScore {
			bestScore = score
			best = ray.At(t)
		}
	}
	return best, !math32.IsInf(bestScore, 1)
}

// HitTest intersects the screen ray with an oriented region.
func (w *World) HitTest(screen math.Vec2, region box.Region) (math.Vec3, bool) {
	return w.Camera.Ray(screen).IntersectOriented(region.Transform, region.Bounds)
}

// Ray returns the camera ray through a screen point.
func (w *World) Ray(screen math.Vec2) picking.Ray {
	return w.Camera.Ray(screen)
}
