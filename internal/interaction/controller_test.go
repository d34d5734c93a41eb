package interaction

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/boxify/internal/box"
	"github.com/Faultbox/boxify/internal/engine/input"
	"github.com/Faultbox/boxify/internal/engine/picking"
	"github.com/Faultbox/boxify/internal/worldhit"
	"github.com/Faultbox/boxify/pkg/math"
)

const tol = 1e-4

// fakeLocator returns a fixed world hit, or none when hit is nil.
type fakeLocator struct {
	hit   *math.Vec3
	calls int
}

func (l *fakeLocator) Resolve(math.Vec2) (worldhit.Result, bool) {
	l.calls++
	if l.hit == nil {
		return worldhit.Result{}, false
	}
	return worldhit.Result{Position: *l.hit, Source: worldhit.SourceFeature}, true
}

// fakeHost casts the ray returned by cast against the region.
type fakeHost struct {
	cast func(screen math.Vec2) picking.Ray
}

func (h *fakeHost) HitTest(screen math.Vec2, region box.Region) (math.Vec3, bool) {
	if h.cast == nil {
		return math.Vec3{}, false
	}
	return h.cast(screen).IntersectOriented(region.Transform, region.Bounds)
}

func (h *fakeHost) Ray(screen math.Vec2) picking.Ray {
	if h.cast == nil {
		return picking.Ray{Direction: math.Vec3{Z: -1}}
	}
	return h.cast(screen)
}

// topDown maps screen (x, y) to a ray straight down onto world (x, 0, y).
func topDown(screen math.Vec2) picking.Ray {
	return picking.Ray{Origin: math.Vec3{X: screen.X, Y: 10, Z: screen.Y}, Direction: math.Vec3{Y: -1}}
}

// headOn maps screen (x, y) to a ray along -Z through world (x, y, *).
func headOn(screen math.Vec2) picking.Ray {
	return picking.Ray{Origin: math.Vec3{X: screen.X, Y: screen.Y, Z: 10}, Direction: math.Vec3{Z: -1}}
}

func newController(t *testing.T) (*Controller, *fakeLocator, *fakeHost) {
	t.Helper()
	opts := box.DefaultOptions()
	opts.Logger = zap.NewNop()
	b := box.New(opts)

	loc := &fakeLocator{}
	host := &fakeHost{cast: topDown}
	copts := DefaultOptions()
	copts.Logger = zap.NewNop()
	return New(b, loc, host, copts), loc, host
}

func pan(c *Controller, phase input.Phase, x, y float32) {
	c.HandlePan(phase, math.Vec2{X: x, Y: y})
}

func assertVecNear(t *testing.T, want, got math.Vec3, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, tol, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, tol, msgAndArgs...)
}

// place drives the controller from WaitingForLocation to DraggingInitialWidth at (1,0,2).
func place(t *testing.T, c *Controller, loc *fakeLocator) {
	t.Helper()
	loc.hit = &math.Vec3{X: 1, Y: 0, Z: 2}
	pan(c, input.PhaseBegan, 1, 2)
	require.IsType(t, DraggingInitialWidth{}, c.State())
}

// measure runs the full creation flow: 0.5 wide along +x, 0.4 long toward -z.
func measure(t *testing.T, c *Controller, loc *fakeLocator) {
	t.Helper()
	place(t, c, loc)
	pan(c, input.PhaseChanged, 1.5, 2)
	pan(c, input.PhaseEnded, 1.5, 2)
	require.IsType(t, DraggingInitialLength{}, c.State())
	pan(c, input.PhaseBegan, 1.2, 1.6)
	pan(c, input.PhaseChanged, 1.2, 1.6)
	pan(c, input.PhaseEnded, 1.2, 1.6)
	require.IsType(t, WaitingForFaceDrag{}, c.State())
}

func TestInitialState(t *testing.T) {
	c, _, _ := newController(t)

	assert.Equal(t, WaitingForLocation{}, c.State())
	assert.True(t, c.Box().Hidden())
	assert.True(t, c.FloorHidden())
	assert.True(t, c.HitPlane().Hidden)
	assert.False(t, c.RotationEnabled())
}

func TestWaitingForLocationIgnoresMisses(t *testing.T) {
	c, loc, _ := newController(t)

	pan(c, input.PhaseBegan, 10, 10)
	pan(c, input.PhaseChanged, 11, 10)
	assert.Equal(t, WaitingForLocation{}, c.State())
	assert.Equal(t, 2, loc.calls)

	pan(c, input.PhaseEnded, 11, 10)
	assert.Equal(t, 2, loc.calls, "ended must not query the world")
}

func TestFirstHitPlacesBox(t *testing.T) {
	c, loc, _ := newController(t)
	loc.hit = &math.Vec3{X: 1, Y: 0, Z: 2}

	pan(c, input.PhaseChanged, 5, 5)

	assert.Equal(t, DraggingInitialWidth{}, c.State())
	assert.Equal(t, math.Vec3{X: 1, Y: 0, Z: 2}, c.Box().Position())
	assert.False(t, c.Box().Hidden())
	assert.False(t, c.FloorHidden())
	assert.True(t, c.RotationEnabled())

	plane := c.HitPlane()
	assert.False(t, plane.Hidden)
	assert.Equal(t, math.Vec3{}, plane.Position)
	assert.Equal(t, float32(0), plane.Bounds.Size().Y)
	assert.Equal(t, float32(2000), plane.Bounds.Size().X)
}

func TestWidthDragSetsExtentAndYaw(t *testing.T) {
	tests := []struct {
		name string
		hit  math.Vec2
	}{
		{"along +x", math.Vec2{X: 1.5, Y: 2}},
		{"along +z", math.Vec2{X: 1, Y: 2.5}},
		{"diagonal", math.Vec2{X: 0.7, Y: 1.6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, loc, _ := newController(t)
			place(t, c, loc)

			pan(c, input.PhaseChanged, tt.hit.X, tt.hit.Y)

			world := math.Vec3{X: tt.hit.X, Z: tt.hit.Y}
			b := c.Box()
			assert.InDelta(t, world.Distance(b.Position()), b.Bounds().Max.X, tol)
			assert.Equal(t, float32(0), b.Bounds().Min.X)
			// The right edge of the box ends under the finger.
			assertVecNear(t, world, b.LocalToWorld(math.Vec3{X: b.Bounds().Max.X}))
		})
	}
}

func TestWidthDragNeedsNonZeroWidth(t *testing.T) {
	c, loc, host := newController(t)
	place(t, c, loc)

	pan(c, input.PhaseEnded, 1, 2)
	assert.Equal(t, DraggingInitialWidth{}, c.State())

	host.cast = nil
	pan(c, input.PhaseChanged, 3, 3)
	assert.Equal(t, math.Bounds{}, c.Box().Bounds(), "a missed hit leaves the box alone")
	pan(c, input.PhaseCancelled, 3, 3)
	assert.Equal(t, DraggingInitialWidth{}, c.State())

	host.cast = topDown
	pan(c, input.PhaseChanged, 1.5, 2)
	pan(c, input.PhaseCancelled, 1.5, 2)
	assert.Equal(t, DraggingInitialLength{}, c.State())
}

func TestLengthDragPinsOneEnd(t *testing.T) {
	c, loc, _ := newController(t)
	place(t, c, loc)
	pan(c, input.PhaseChanged, 1.5, 2)
	pan(c, input.PhaseEnded, 1.5, 2)
	require.Equal(t, DraggingInitialLength{}, c.State())

	pan(c, input.PhaseEnded, 1.5, 2)
	assert.Equal(t, DraggingInitialLength{}, c.State(), "zero length must not advance")

	pan(c, input.PhaseChanged, 1.2, 2.3)
	b := c.Box().Bounds()
	assert.InDelta(t, 0, b.Min.Z, tol)
	assert.InDelta(t, 0.3, b.Max.Z, tol)

	pan(c, input.PhaseChanged, 1.2, 1.6)
	b = c.Box().Bounds()
	assert.InDelta(t, -0.4, b.Min.Z, tol)
	assert.InDelta(t, 0, b.Max.Z, tol)
	assert.InDelta(t, 0.5, b.Max.X, tol, "width is kept")

	pan(c, input.PhaseEnded, 1.2, 1.6)
	assert.Equal(t, WaitingForFaceDrag{}, c.State())
	assert.True(t, c.HitPlane().Hidden)
}

func TestFaceDragClampsAtOppositeFace(t *testing.T) {
	c, loc, host := newController(t)
	measure(t, c, loc)

	// Touch the top face from above.
	pan(c, input.PhaseBegan, 1.25, 1.8)
	s, ok := c.State().(DraggingFace)
	require.True(t, ok, "expected DraggingFace, got %s", c.State().Name())
	assert.Equal(t, box.SideTop, s.Side)
	assertVecNear(t, math.Vec3{X: 0.25, Y: 0, Z: -0.2}, s.DragStart)

	side, highlighted := c.Box().Highlighted()
	assert.True(t, highlighted)
	assert.Equal(t, box.SideTop, side)

	plane := c.HitPlane()
	assert.False(t, plane.Hidden)
	assert.Equal(t, s.DragStart, plane.Position)
	assert.Equal(t, float32(0), plane.Bounds.Size().Z)

	// Drag it up while looking at the box head on.
	host.cast = headOn
	pan(c, input.PhaseChanged, 1.25, 0.3)
	assert.InDelta(t, 0.3, c.Box().Bounds().Max.Y, tol)
	assert.InDelta(t, 0, c.Box().Bounds().Min.Y, tol)

	// Dragging below the bottom face stops at the bottom face.
	pan(c, input.PhaseChanged, 1.25, -0.5)
	assert.InDelta(t, 0, c.Box().Bounds().Max.Y, tol)
	assert.InDelta(t, 0, c.Box().Bounds().Min.Y, tol)

	pan(c, input.PhaseChanged, 1.25, 0.2)
	pan(c, input.PhaseEnded, 1.25, 0.2)
	assert.Equal(t, WaitingForFaceDrag{}, c.State())
	assert.InDelta(t, 0.2, c.Box().Bounds().Max.Y, tol)
	_, highlighted = c.Box().Highlighted()
	assert.False(t, highlighted)
}

func TestMinFaceDragClamp(t *testing.T) {
	c, loc, host := newController(t)
	measure(t, c, loc)

	// Grab the left face (local x = 0) head on.
	host.cast = headOn
	c.Box().ResizeTo(math.Vec3{X: 0, Y: 0, Z: -0.4}, math.Vec3{X: 0.5, Y: 0.3, Z: 0})
	c.transition(DraggingFace{Side: box.SideLeft, DragStart: math.Vec3{X: 0, Y: 0.1, Z: 0}})

	pan(c, input.PhaseChanged, 1.2, 0.1)
	assert.InDelta(t, 0.2, c.Box().Bounds().Min.X, tol)

	pan(c, input.PhaseChanged, 2.5, 0.1)
	assert.InDelta(t, 0.5, c.Box().Bounds().Min.X, tol, "left face stops at the right face")
	assert.InDelta(t, 0.5, c.Box().Bounds().Max.X, tol)
}

func TestFaceSearchPicksNearestFace(t *testing.T) {
	c, loc, host := newController(t)
	measure(t, c, loc)
	c.Box().ResizeTo(math.Vec3{X: 0, Y: 0, Z: -0.4}, math.Vec3{X: 0.5, Y: 0.3, Z: 0})

	// Looking down at 45 degrees from the front: the ray enters through the
	// top face at world (1.25, 0.3, 1.7) and leaves through the back face.
	host.cast = func(math.Vec2) picking.Ray {
		dir := math.Vec3{Y: -1, Z: -1}.Normalize()
		return picking.Ray{Origin: math.Vec3{X: 1.25, Y: 5.3, Z: 6.7}, Direction: dir}
	}
	_, backHit := c.host.HitTest(math.Vec2{}, c.Box().FaceRegion(box.SideBack))
	require.True(t, backHit, "the ray must cross the back face too")

	pan(c, input.PhaseBegan, 0, 0)
	s, ok := c.State().(DraggingFace)
	require.True(t, ok, "expected DraggingFace, got %s", c.State().Name())
	assert.Equal(t, box.SideTop, s.Side)
	assertVecNear(t, math.Vec3{X: 0.25, Y: 0.3, Z: -0.3}, s.DragStart)
}

func TestFaceSearchMisses(t *testing.T) {
	c, loc, _ := newController(t)
	measure(t, c, loc)

	pan(c, input.PhaseBegan, 5, 5)
	assert.Equal(t, WaitingForFaceDrag{}, c.State())
}

func TestRotation(t *testing.T) {
	c, loc, _ := newController(t)

	c.HandleRotation(input.PhaseBegan, 0)
	c.HandleRotation(input.PhaseChanged, 1)
	assert.Equal(t, math.QuatIdentity(), c.Box().Orientation(), "rotation is disabled while waiting for a location")

	measure(t, c, loc)
	b := c.Box()
	pivotLocal := b.PointInBounds(math.Vec3{X: 0.5, Y: 0, Z: 0.5})
	pivot := b.LocalToWorld(pivotLocal)
	right := b.Orientation().Rotate(math.Vec3{X: 1})

	c.HandleRotation(input.PhaseBegan, 0.2)
	c.HandleRotation(input.PhaseChanged, 0.5)
	c.HandleRotation(input.PhaseChanged, 0.5)
	c.HandleRotation(input.PhaseEnded, 0.5)

	assertVecNear(t, pivot, b.LocalToWorld(pivotLocal), "pivot stays put")
	turned := b.Orientation().Rotate(math.Vec3{X: 1})
	angle := math32.Acos(right.Dot(turned))
	assert.InDelta(t, 0.3, angle, tol)
	// A positive gesture turns local +x toward +z.
	assert.Less(t, right.Cross(turned).Y, float32(0))
}

func TestResetFromAnyState(t *testing.T) {
	states := []State{
		WaitingForLocation{},
		DraggingInitialWidth{},
		DraggingInitialLength{},
		WaitingForFaceDrag{},
		DraggingFace{Side: box.SideFront},
	}

	for _, s := range states {
		t.Run(s.Name(), func(t *testing.T) {
			c, _, _ := newController(t)
			c.Box().ResizeTo(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1})
			c.transition(s)

			c.Handle(input.Event{Type: input.EventDoubleTap})

			assert.Equal(t, WaitingForLocation{}, c.State())
			assert.Equal(t, math.Bounds{}, c.Box().Bounds())
			assert.True(t, c.Box().Hidden())
			assert.False(t, c.RotationEnabled())
			_, highlighted := c.Box().Highlighted()
			assert.False(t, highlighted)
		})
	}
}

func TestHandleDispatch(t *testing.T) {
	c, loc, _ := newController(t)
	loc.hit = &math.Vec3{X: 1}

	c.Handle(input.Event{Type: input.EventPan, Phase: input.PhaseBegan})
	assert.Equal(t, DraggingInitialWidth{}, c.State())

	c.Handle(input.Event{Type: input.EventRotation, Phase: input.PhaseBegan, Rotation: 0.1})
	c.Handle(input.Event{Type: input.EventRotation, Phase: input.PhaseChanged, Rotation: 0.1})

	assert.Panics(t, func() { c.Handle(input.Event{Type: input.EventNone}) })
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "waitingForLocation", WaitingForLocation{}.Name())
	assert.Equal(t, "draggingInitialWidth", DraggingInitialWidth{}.Name())
	assert.Equal(t, "draggingInitialLength", DraggingInitialLength{}.Name())
	assert.Equal(t, "waitingForFaceDrag", WaitingForFaceDrag{}.Name())
	assert.Equal(t, "draggingFace", DraggingFace{}.Name())
	assert.Equal(t, "draggingFace(right, (0.000, 1.000, 0.000))",
		DraggingFace{Side: box.SideRight, DragStart: math.Vec3{Y: 1}}.String())
}
