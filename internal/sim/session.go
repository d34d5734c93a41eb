package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/boxify/internal/box"
	"github.com/Faultbox/boxify/internal/engine/input"
	"github.com/Faultbox/boxify/internal/engine/scene"
	"github.com/Faultbox/boxify/internal/interaction"
	"github.com/Faultbox/boxify/internal/logger"
	"github.com/Faultbox/boxify/internal/worldhit"
	"github.com/Faultbox/boxify/pkg/math"
)

// SessionOptions configures the pieces a Session wires together.
type SessionOptions struct {
	Box         box.Options
	Interaction interaction.Options
	HitTest     worldhit.Config
	Palette     scene.Palette
	Logger      *zap.Logger
}

// DefaultSessionOptions returns the default settings for every component.
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		Box:         box.DefaultOptions(),
		Interaction: interaction.DefaultOptions(),
		HitTest:     worldhit.DefaultConfig(),
		Palette:     scene.DefaultPalette(),
	}
}

// Session replays a scenario against a fresh box and controller.
type Session struct {
	scenario   *Scenario
	world      *World
	controller *interaction.Controller
	input      *input.Input
	palette    scene.Palette
	log        *zap.Logger
}

// Step records the controller after one scripted event.
type Step struct {
	Index  int       `yaml:"index"`
	Event  string    `yaml:"event"`
	Phase  string    `yaml:"phase,omitempty"`
	Screen math.Vec2 `yaml:"screen"`
	State  string    `yaml:"state"`
	Size   math.Vec3 `yaml:"size"`
}

// LabelResult is the final text of one dimension label.
type LabelResult struct {
	Kind   string `yaml:"kind"`
	Text   string `yaml:"text"`
	Hidden bool   `yaml:"hidden"`
}

// Result is the outcome of a replay.
type Result struct {
	Scenario string        `yaml:"scenario"`
	Steps    []Step        `yaml:"steps"`
	State    string        `yaml:"state"`
	Size     math.Vec3     `yaml:"size"`
	Labels   []LabelResult `yaml:"labels"`
	Visible  int           `yaml:"visible_nodes"`
	Frame    scene.Frame   `yaml:"-"`
}

// NewSession builds the world, box and controller for sc.
func NewSession(sc *Scenario, opts SessionOptions) *Session {
	log := opts.Logger
	if log == nil {
		log = logger.Named("sim")
	}
	if opts.Box.Logger == nil {
		opts.Box.Logger = log.Named("box")
	}
	if opts.Interaction.Logger == nil {
		opts.Interaction.Logger = log.Named("interaction")
	}

	world := sc.NewWorld()
	policy := worldhit.NewPolicy(world, opts.HitTest).WithLogger(log.Named("worldhit"))
	b := box.New(opts.Box)

	return &Session{
		scenario:   sc,
		world:      world,
		controller: interaction.New(b, policy, world, opts.Interaction),
		input:      input.New(),
		palette:    opts.Palette,
		log:        log,
	}
}

// World returns the simulated world.
func (s *Session) World() *World {
	return s.world
}

// Controller returns the interaction controller.
func (s *Session) Controller() *interaction.Controller {
	return s.controller
}

// Run replays every scripted event in order and reports the final box.
func (s *Session) Run() (Result, error) {
	res := Result{
		Scenario: s.scenario.Name,
		Steps:    make([]Step, 0, len(s.scenario.Events)),
	}

	for i, spec := range s.scenario.Events {
		step, err := s.apply(i, spec)
		if err != nil {
			return res, fmt.Errorf("event %d: %w", i, err)
		}
		res.Steps = append(res.Steps, step)

		s.log.Debug("step",
			zap.Int("index", i),
			zap.String("event", step.Event),
			zap.String("phase", step.Phase),
			zap.Stringer("screen", step.Screen),
			zap.String("state", step.State),
			zap.Stringer("size", step.Size),
		)
	}

	b := s.controller.Box()
	res.State = s.controller.State().Name()
	res.Size = b.Size()
	for kind := box.LabelKind(0); kind < box.LabelCount; kind++ {
		l := b.Label(kind)
		res.Labels = append(res.Labels, LabelResult{Kind: kind.String(), Text: l.Text, Hidden: l.Hidden})
	}
	res.Frame = scene.Snapshot(b, s.palette)
	res.Visible = len(res.Frame.Visible())

	s.log.Info("replay finished",
		zap.String("scenario", res.Scenario),
		zap.Int("events", len(res.Steps)),
		zap.String("state", res.State),
		zap.Stringer("size", res.Size),
	)
	return res, nil
}

// apply runs one scripted event. Camera events move the viewer; gestures go
// through the input queue to the controller.
func (s *Session) apply(i int, spec EventSpec) (Step, error) {
	step := Step{Index: i, Event: spec.Type}

	if spec.IsCamera() {
		if err := spec.MoveCamera(s.world.Camera); err != nil {
			return step, err
		}
		s.log.Debug("camera moved",
			zap.Int("index", i),
			zap.Float32("yaw", s.world.Camera.Yaw),
			zap.Float32("pitch", s.world.Camera.Pitch),
			zap.Float32("distance", s.world.Camera.Distance),
		)
	} else {
		if err := spec.Queue(s.input, s.world.Camera); err != nil {
			return step, err
		}
		if s.input.HasDoubleTap() {
			s.log.Debug("reset requested", zap.Int("index", i))
		}
		for _, ev := range s.input.Drain() {
			s.controller.Handle(ev)
			step.Event = ev.Type.String()
			step.Screen = ev.Screen
			if ev.Type != input.EventDoubleTap {
				step.Phase = ev.Phase.String()
			}
		}
	}

	step.State = s.controller.State().Name()
	step.Size = s.controller.Box().Size()
	return step, nil
}
