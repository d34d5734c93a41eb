// Package interaction drives the measurement box from gesture events.
//
// A Controller starts in WaitingForLocation. The first world hit places the
// box; the next drag sets its width and yaw, the one after that its length.
// From then on every drag that starts on a face moves that face along its
// axis. A double tap starts over.
package interaction

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/boxify/internal/box"
	"github.com/Faultbox/boxify/internal/engine/input"
	"github.com/Faultbox/boxify/internal/engine/picking"
	"github.com/Faultbox/boxify/internal/logger"
	"github.com/Faultbox/boxify/internal/worldhit"
	"github.com/Faultbox/boxify/pkg/math"
)

// Locator resolves a screen point against the real world.
// *worldhit.Policy implements it.
type Locator interface {
	Resolve(screen math.Vec2) (worldhit.Result, bool)
}

// SceneHost hit-tests scene geometry that the controller places itself.
type SceneHost interface {
	// HitTest returns the world point where the ray through screen meets region.
	HitTest(screen math.Vec2, region box.Region) (math.Vec3, bool)
	// Ray returns the camera ray through screen.
	Ray(screen math.Vec2) picking.Ray
}

// HitPlane is the invisible plane dragged points are projected onto.
// It lives in the box's local frame.
type HitPlane struct {
	Position math.Vec3
	Bounds   math.Bounds // flat on one axis
	Hidden   bool
}

// Options configures a Controller.
type Options struct {
	// HitPlaneExtent is the half size of the hit plane; large enough to act as infinite.
	HitPlaneExtent float32
	Logger         *zap.Logger
}

// DefaultOptions returns the standard controller settings.
func DefaultOptions() Options {
	return Options{HitPlaneExtent: 1000}
}

// Controller owns the interaction state and mutates the box in response to
// gestures. It is not safe for concurrent use.
type Controller struct {
	box     *box.Box
	locator Locator
	host    SceneHost
	opts    Options
	log     *zap.Logger

	state           State
	plane           HitPlane
	floorHidden     bool
	rotationEnabled bool
	lastRotation    float32
}

// New creates a controller in WaitingForLocation.
func New(b *box.Box, locator Locator, host SceneHost, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = logger.Named("interaction")
	}
	c := &Controller{
		box:     b,
		locator: locator,
		host:    host,
		opts:    opts,
		log:     opts.Logger,
	}
	c.transition(WaitingForLocation{})
	return c
}

// State returns the active interaction state.
func (c *Controller) State() State {
	return c.state
}

// Box returns the controlled box.
func (c *Controller) Box() *box.Box {
	return c.box
}

// HitPlane returns the current hit-test plane.
func (c *Controller) HitPlane() HitPlane {
	return c.plane
}

// HitPlaneRegion returns the hit-test plane in world space.
func (c *Controller) HitPlaneRegion() box.Region {
	return box.Region{
		Transform: c.box.WorldTransform().Mul(math.TranslateVec(c.plane.Position)),
		Bounds:    c.plane.Bounds,
	}
}

// FloorHidden reports whether the reflective floor under the box is hidden.
func (c *Controller) FloorHidden() bool {
	return c.floorHidden
}

// RotationEnabled reports whether twist-to-rotate gestures are accepted.
func (c *Controller) RotationEnabled() bool {
	return c.rotationEnabled
}

// Handle dispatches a gesture event.
func (c *Controller) Handle(ev input.Event) {
	switch ev.Type {
	case input.EventPan:
		c.HandlePan(ev.Phase, ev.Screen)
	case input.EventRotation:
		c.HandleRotation(ev.Phase, ev.Rotation)
	case input.EventDoubleTap:
		c.Reset()
	default:
		panic(fmt.Sprintf("interaction: unhandled event type %d", int(ev.Type)))
	}
}

// HandlePan advances the state machine with a drag event.
func (c *Controller) HandlePan(phase input.Phase, screen math.Vec2) {
	switch s := c.state.(type) {
	case WaitingForLocation:
		c.findStartingLocation(phase, screen)
	case DraggingInitialWidth:
		c.dragInitialWidth(phase, screen)
	case DraggingInitialLength:
		c.dragInitialLength(phase, screen)
	case WaitingForFaceDrag:
		c.findFaceDragLocation(phase, screen)
	case DraggingFace:
		c.dragFace(s, phase, screen)
	default:
		panic(fmt.Sprintf("interaction: unknown state %T", c.state))
	}
}

// HandleRotation rotates the box about the vertical axis through its ground
// centre. rotation is cumulative since the gesture began.
func (c *Controller) HandleRotation(phase input.Phase, rotation float32) {
	if !c.rotationEnabled {
		return
	}

	switch phase {
	case input.PhaseBegan:
		c.lastRotation = rotation
	case input.PhaseChanged:
		delta := rotation - c.lastRotation
		c.lastRotation = rotation

		pivot := c.box.LocalToWorld(c.box.PointInBounds(math.Vec3{X: 0.5, Y: 0, Z: 0.5}))
		c.box.RotateAround(pivot, math.AxisY.Unit(), -delta)
	}
}

// Reset collapses and hides the box and starts over from WaitingForLocation.
func (c *Controller) Reset() {
	c.transition(WaitingForLocation{})
	c.box.Reset()
	c.lastRotation = 0
}

func (c *Controller) findStartingLocation(phase input.Phase, screen math.Vec2) {
	if phase != input.PhaseBegan && phase != input.PhaseChanged {
		return
	}
	hit, ok := c.locator.Resolve(screen)
	if !ok {
		return
	}
	c.box.SetPosition(hit.Position)
	c.transition(DraggingInitialWidth{})
}

func (c *Controller) dragInitialWidth(phase input.Phase, screen math.Vec2) {
	switch {
	case phase == input.PhaseChanged:
		hit, ok := c.hitPlaneHit(screen)
		if !ok {
			return
		}
		// The box's front faces 90 degrees clockwise from the dragged line.
		delta := c.box.Position().Sub(hit)
		angle := math32.Atan2(delta.Z, delta.X)

		c.box.Move(box.SideRight, delta.Length())
		c.box.SetYaw(-(angle + math32.Pi))

	case phase.Finished():
		if b := c.box.Bounds(); b.Max.X != b.Min.X {
			c.transition(DraggingInitialLength{})
		}
	}
}

func (c *Controller) dragInitialLength(phase input.Phase, screen math.Vec2) {
	switch {
	case phase == input.PhaseChanged:
		hit, ok := c.hitPlaneHit(screen)
		if !ok {
			return
		}
		local := c.box.WorldToLocal(hit)

		// Keep one end at the origin and extend the other toward the touch.
		if local.Z < 0 {
			c.box.Move(box.SideFront, 0)
			c.box.Move(box.SideBack, local.Z)
		} else {
			c.box.Move(box.SideFront, local.Z)
			c.box.Move(box.SideBack, 0)
		}

	case phase.Finished():
		if b := c.box.Bounds(); b.Max.Z != b.Min.Z {
			c.transition(WaitingForFaceDrag{})
		}
	}
}

func (c *Controller) findFaceDragLocation(phase input.Phase, screen math.Vec2) {
	if phase != input.PhaseBegan && phase != input.PhaseChanged {
		return
	}
	side, hit, ok := c.nearestFace(screen)
	if !ok {
		return
	}
	c.transition(DraggingFace{Side: side, DragStart: c.box.WorldToLocal(hit)})
}

// faceTie is how much closer, in metres, a later face must be to win.
// Flat boxes put two faces at the same depth.
const faceTie = 1e-4

// nearestFace hit-tests every face on its own and returns the one closest
// along the camera ray. Ties keep the earlier side.
func (c *Controller) nearestFace(screen math.Vec2) (box.Side, math.Vec3, bool) {
	ray := c.host.Ray(screen)

	var (
		best    box.Side
		bestHit math.Vec3
	)
	bestT := math32.Inf(1)
	for _, side := range box.Sides() {
		hit, ok := c.host.HitTest(screen, c.box.FaceRegion(side))
		if !ok {
			continue
		}
		if t := ray.Along(hit); t < bestT-faceTie {
			best, bestHit, bestT = side, hit, t
		}
	}
	return best, bestHit, !math32.IsInf(bestT, 1)
}

func (c *Controller) dragFace(s DraggingFace, phase input.Phase, screen math.Vec2) {
	switch {
	case phase == input.PhaseChanged:
		hit, ok := c.hitPlaneHit(screen)
		if !ok {
			return
		}
		axis := s.Side.Axis()
		extent := c.box.WorldToLocal(hit).Get(axis)

		// Faces may touch their opposite but never pass it.
		limit := c.box.Extent(s.Side.Opposite())
		if s.Side.Polarity() == box.PolarityMin {
			extent = math32.Min(extent, limit)
		} else {
			extent = math32.Max(extent, limit)
		}
		c.box.Move(s.Side, extent)

	case phase.Finished():
		c.transition(WaitingForFaceDrag{})
	}
}

func (c *Controller) hitPlaneHit(screen math.Vec2) (math.Vec3, bool) {
	return c.host.HitTest(screen, c.HitPlaneRegion())
}

// transition switches state and applies the new state's presentation.
func (c *Controller) transition(next State) {
	prev := c.state
	c.state = next
	c.enter(next)

	fields := []zap.Field{zap.String("to", next.Name())}
	if prev != nil {
		fields = append(fields, zap.String("from", prev.Name()))
	}
	if s, ok := next.(DraggingFace); ok {
		fields = append(fields, zap.Stringer("side", s.Side), zap.Stringer("dragStart", s.DragStart))
	}
	c.log.Debug("state changed", fields...)
}

func (c *Controller) enter(s State) {
	e := c.opts.HitPlaneExtent

	switch s := s.(type) {
	case WaitingForLocation:
		c.rotationEnabled = false
		c.box.SetHidden(true)
		c.box.ClearHighlights()
		c.plane.Hidden = true
		c.floorHidden = true

	case DraggingInitialWidth, DraggingInitialLength:
		c.rotationEnabled = true
		c.box.SetHidden(false)
		c.box.ClearHighlights()
		c.floorHidden = false

		// Flat on the ground, aligned with the bottom of the box.
		c.plane = HitPlane{
			Position: math.Vec3{},
			Bounds:   math.Bounds{Min: math.Vec3{X: -e, Z: -e}, Max: math.Vec3{X: e, Z: e}},
		}

	case WaitingForFaceDrag:
		c.rotationEnabled = true
		c.box.SetHidden(false)
		c.box.ClearHighlights()
		c.floorHidden = false
		c.plane.Hidden = true

	case DraggingFace:
		c.rotationEnabled = true
		c.box.SetHidden(false)
		c.floorHidden = false
		c.box.Highlight(s.Side)

		// Through the dragged face at the touched point, containing the drag axis.
		c.plane = HitPlane{Position: s.DragStart}
		switch s.Side.Axis() {
		case math.AxisX, math.AxisY:
			c.plane.Bounds = math.Bounds{Min: math.Vec3{X: -e, Y: -e}, Max: math.Vec3{X: e, Y: e}}
		case math.AxisZ:
			c.plane.Bounds = math.Bounds{Min: math.Vec3{Y: -e, Z: -e}, Max: math.Vec3{Y: e, Z: e}}
		}

	default:
		panic(fmt.Sprintf("interaction: unknown state %T", s))
	}
}
