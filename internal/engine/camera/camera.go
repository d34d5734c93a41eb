// Package camera provides the orbit camera used to view and pick the scene.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/boxify/internal/engine/picking"
	"github.com/Faultbox/boxify/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Vertical angle above the XZ plane, radians
	Yaw      float32 // Horizontal angle around +Y, radians

	// Projection
	FovY     float32 // radians
	Near     float32
	Far      float32
	Viewport math.Vec2 // pixels

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
// Distances are in metres, looking down at a table-sized scene.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        1.5,
		Pitch:           0.6,
		Yaw:             0.0,
		FovY:            math32.Pi / 3,
		Near:            0.01,
		Far:             100,
		Viewport:        math.Vec2{X: 1170, Y: 2532},
		MinDistance:     0.1,
		MaxDistance:     20,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sinPitch, cosPitch := math32.Sincos(c.Pitch)
	sinYaw, cosYaw := math32.Sincos(c.Yaw)

	return c.Center.Add(math.Vec3{
		X: c.Distance * cosPitch * sinYaw,
		Y: c.Distance * sinPitch,
		Z: c.Distance * cosPitch * cosYaw,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjectionMatrix returns the perspective projection for the viewport.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FovY, c.Viewport.X/c.Viewport.Y, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Project maps a world point to screen pixels (Y down).
// Returns false for points behind the camera.
func (c *OrbitCamera) Project(world math.Vec3) (math.Vec2, bool) {
	clip := c.ViewProjection().MulVec4(math.Vec4{world.X, world.Y, world.Z, 1})
	if clip[3] <= 0 {
		return math.Vec2{}, false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	return math.Vec2{
		X: (ndcX + 1) / 2 * c.Viewport.X,
		Y: (1 - ndcY) / 2 * c.Viewport.Y,
	}, true
}

// Ray returns the world-space ray through a screen point.
func (c *OrbitCamera) Ray(screen math.Vec2) picking.Ray {
	return picking.ScreenToRay(screen, c.Viewport, c.ViewProjection().Inverse())
}

// HandleDrag walks the viewer around the center by a drag of delta pixels.
// Dragging right turns the view left; pitch stays within its limits.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom steps toward the center by amount steps; negative steps back off.
// Each step covers ZoomSensitivity of the current distance.
func (c *OrbitCamera) HandleZoom(amount float32) {
	c.Distance = clamp(c.Distance*(1-amount*c.ZoomSensitivity), c.MinDistance, c.MaxDistance)
}

// FitToBounds centres the camera on bounds and backs off until a sphere
// around them fills the vertical field of view.
func (c *OrbitCamera) FitToBounds(bounds math.Bounds) {
	c.Center = bounds.Center()
	radius := bounds.Size().Length() / 2
	c.Distance = clamp(radius/math32.Sin(c.FovY/2), c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
