package sim

import (
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/boxify/internal/engine/camera"
	"github.com/Faultbox/boxify/internal/engine/input"
	"github.com/Faultbox/boxify/internal/worldhit"
	"github.com/Faultbox/boxify/pkg/math"
)

// Scenario describes a world and a gesture script to replay against it.
type Scenario struct {
	Name     string       `yaml:"name"`
	Viewport ViewportSpec `yaml:"viewport"`
	Camera   CameraSpec   `yaml:"camera"`
	Planes   []PlaneSpec  `yaml:"planes"`
	Features [][3]float32 `yaml:"features"`
	Events   []EventSpec  `yaml:"events"`
}

// ViewportSpec is the screen size in pixels.
type ViewportSpec struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// CameraSpec places the orbit camera. With Fit set the center and distance
// are replaced so that every plane and feature is in view. A scenario
// without a camera section fits.
type CameraSpec struct {
	Center     [3]float32 `yaml:"center"`
	Distance   float32    `yaml:"distance"`
	Pitch      float32    `yaml:"pitch"` // radians
	Yaw        float32    `yaml:"yaw"`   // radians
	FovDegrees float32    `yaml:"fov_degrees"`
	Fit        bool       `yaml:"fit,omitempty"`
}

// PlaneSpec is a detected horizontal plane.
type PlaneSpec struct {
	ID     string     `yaml:"id"`
	Center [3]float32 `yaml:"center"`
	Extent [2]float32 `yaml:"extent"`
}

// Camera event types. They move the viewer and never reach the controller.
const (
	EventOrbit = "orbit"
	EventZoom  = "zoom"
)

// EventSpec is one scripted gesture or camera move. Pan and double tap
// events are given either as a screen point or as a world point projected
// through the camera as it is when the event runs. An orbit drags the
// camera by Delta pixels; a zoom scales its distance by Amount steps.
type EventSpec struct {
	Type     string      `yaml:"type"`
	Phase    string      `yaml:"phase,omitempty"`
	Screen   *[2]float32 `yaml:"screen,omitempty"`
	World    *[3]float32 `yaml:"world,omitempty"`
	Rotation float32     `yaml:"rotation,omitempty"`
	Delta    *[2]float32 `yaml:"delta,omitempty"`
	Amount   float32     `yaml:"amount,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	sc := &Scenario{
		Viewport: ViewportSpec{Width: 1170, Height: 2532},
		Camera:   CameraSpec{Distance: 1.5, Pitch: 0.6, FovDegrees: 60},
	}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	var sections struct {
		Camera *yaml.Node `yaml:"camera"`
	}
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if sections.Camera == nil {
		sc.Camera.Fit = true
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate reports every problem in the scenario.
func (sc *Scenario) Validate() error {
	var errs error

	if sc.Viewport.Width <= 0 || sc.Viewport.Height <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("viewport must be positive, got %vx%v", sc.Viewport.Width, sc.Viewport.Height))
	}
	if sc.Camera.Distance <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("camera distance must be positive, got %v", sc.Camera.Distance))
	}
	if sc.Camera.FovDegrees <= 0 || sc.Camera.FovDegrees >= 180 {
		errs = multierr.Append(errs, fmt.Errorf("camera fov_degrees must be in (0, 180), got %v", sc.Camera.FovDegrees))
	}
	for i, p := range sc.Planes {
		if p.Extent[0] <= 0 || p.Extent[1] <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("plane %d (%s): extent must be positive", i, p.ID))
		}
	}
	for i, ev := range sc.Events {
		if err := ev.validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("event %d: %w", i, err))
		}
	}
	return errs
}

func (ev EventSpec) validate() error {
	switch ev.Type {
	case input.EventPan.String():
		if _, ok := input.ParsePhase(ev.Phase); !ok {
			return fmt.Errorf("unknown phase %q", ev.Phase)
		}
		if (ev.Screen == nil) == (ev.World == nil) {
			return fmt.Errorf("pan needs exactly one of screen or world")
		}
	case input.EventRotation.String():
		if _, ok := input.ParsePhase(ev.Phase); !ok {
			return fmt.Errorf("unknown phase %q", ev.Phase)
		}
	case input.EventDoubleTap.String():
		if ev.Screen != nil && ev.World != nil {
			return fmt.Errorf("double_tap takes at most one of screen or world")
		}
	case EventOrbit:
		if ev.Delta == nil {
			return fmt.Errorf("orbit needs a delta")
		}
	case EventZoom:
		if ev.Amount == 0 {
			return fmt.Errorf("zoom needs a non-zero amount")
		}
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}

// NewCamera builds the scenario's orbit camera.
func (sc *Scenario) NewCamera() *camera.OrbitCamera {
	cam := camera.NewOrbitCamera()
	cam.Viewport = math.Vec2{X: sc.Viewport.Width, Y: sc.Viewport.Height}
	cam.Center = vec3(sc.Camera.Center)
	cam.Distance = sc.Camera.Distance
	cam.Pitch = sc.Camera.Pitch
	cam.Yaw = sc.Camera.Yaw
	cam.FovY = sc.Camera.FovDegrees * math32.Pi / 180
	return cam
}

// NewWorld builds the scenario's world.
func (sc *Scenario) NewWorld() *World {
	w := NewWorld(sc.NewCamera())
	for i, p := range sc.Planes {
		id := p.ID
		if id == "" {
			id = fmt.Sprintf("plane-%d", i)
		}
		w.AddPlane(worldhit.PlaneAnchor{
			ID:     id,
			Center: vec3(p.Center),
			Extent: math.Vec2{X: p.Extent[0], Y: p.Extent[1]},
		})
	}
	for _, f := range sc.Features {
		w.AddFeature(vec3(f))
	}
	if sc.Camera.Fit {
		if b, ok := w.Bounds(); ok {
			w.Camera.FitToBounds(b)
		}
	}
	return w
}

// IsCamera reports whether the event moves the camera instead of touching the scene.
func (ev EventSpec) IsCamera() bool {
	return ev.Type == EventOrbit || ev.Type == EventZoom
}

// MoveCamera applies an orbit or zoom event to cam.
func (ev EventSpec) MoveCamera(cam *camera.OrbitCamera) error {
	switch ev.Type {
	case EventOrbit:
		if ev.Delta == nil {
			return fmt.Errorf("orbit needs a delta")
		}
		cam.HandleDrag(ev.Delta[0], ev.Delta[1])
	case EventZoom:
		cam.HandleZoom(ev.Amount)
	default:
		return fmt.Errorf("%q is not a camera event", ev.Type)
	}
	return nil
}

// Queue converts a scripted gesture to an input event on in, projecting
// world points through cam.
func (ev EventSpec) Queue(in *input.Input, cam *camera.OrbitCamera) error {
	screen, err := ev.screen(cam)
	if err != nil {
		return err
	}
	phase, _ := input.ParsePhase(ev.Phase)

	switch ev.Type {
	case input.EventPan.String():
		in.Pan(phase, screen)
	case input.EventRotation.String():
		in.Rotate(phase, ev.Rotation)
	case input.EventDoubleTap.String():
		in.DoubleTap(screen)
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}

func (ev EventSpec) screen(cam *camera.OrbitCamera) (math.Vec2, error) {
	switch {
	case ev.Screen != nil:
		return math.Vec2{X: ev.Screen[0], Y: ev.Screen[1]}, nil
	case ev.World != nil:
		world := vec3(*ev.World)
		screen, ok := cam.Project(world)
		if !ok {
			return math.Vec2{}, fmt.Errorf("world point %v is behind the camera", world)
		}
		return screen, nil
	}
	return math.Vec2{}, nil
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
