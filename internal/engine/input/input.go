// Package input defines gesture events and a per-frame event queue.
package input

import "github.com/Faultbox/boxify/pkg/math"

// EventType identifies a gesture.
type EventType int

const (
	EventNone EventType = iota
	EventPan
	EventRotation
	EventDoubleTap
)

// String returns the gesture name used in scenario files.
func (t EventType) String() string {
	switch t {
	case EventPan:
		return "pan"
	case EventRotation:
		return "rotate"
	case EventDoubleTap:
		return "double_tap"
	}
	return "none"
}

// Phase is the lifecycle stage of a continuous gesture.
type Phase int

const (
	PhaseBegan Phase = iota
	PhaseChanged
	PhaseEnded
	PhaseCancelled
)

// String returns the phase name used in scenario files.
func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	case PhaseCancelled:
		return "cancelled"
	}
	return "unknown"
}

// ParsePhase maps a phase name back to a Phase.
func ParsePhase(name string) (Phase, bool) {
	for p := PhaseBegan; p <= PhaseCancelled; p++ {
		if p.String() == name {
			return p, true
		}
	}
	return 0, false
}

// Finished reports whether the gesture is over. Cancelled counts as ended.
func (p Phase) Finished() bool {
	return p == PhaseEnded || p == PhaseCancelled
}

// Event represents a processed gesture.
type Event struct {
	Type   EventType
	Phase  Phase
	Screen math.Vec2 // touch point in pixels
	// Rotation is the cumulative angle since the rotation gesture began, radians.
	Rotation float32
}

// Input collects gesture events until they are drained.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Pan queues a one-finger drag event.
func (i *Input) Pan(phase Phase, screen math.Vec2) {
	i.events = append(i.events, Event{Type: EventPan, Phase: phase, Screen: screen})
}

// Rotate queues a two-finger rotation event.
func (i *Input) Rotate(phase Phase, rotation float32) {
	i.events = append(i.events, Event{Type: EventRotation, Phase: phase, Rotation: rotation})
}

// DoubleTap queues a double tap.
func (i *Input) DoubleTap(screen math.Vec2) {
	i.events = append(i.events, Event{Type: EventDoubleTap, Phase: PhaseEnded, Screen: screen})
}

// Drain returns the queued events and clears the queue.
// The returned slice is only valid until the next queued event.
func (i *Input) Drain() []Event {
	events := i.events
	i.events = i.events[:0]
	return events
}

// HasDoubleTap checks if a double tap is queued.
func (i *Input) HasDoubleTap() bool {
	for _, e := range i.events {
		if e.Type == EventDoubleTap {
			return true
		}
	}
	return false
}
