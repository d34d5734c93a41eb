package input

import (
	"testing"

	"github.com/Faultbox/boxify/pkg/math"
)

func TestDrainClearsQueue(t *testing.T) {
	in := New()
	in.Pan(PhaseBegan, math.Vec2{X: 1, Y: 2})
	in.Rotate(PhaseChanged, 0.5)

	events := in.Drain()
	if len(events) != 2 {
		t.Fatalf("expected 2 drained events, got %d", len(events))
	}
	if events[0].Type != EventPan || events[0].Screen != (math.Vec2{X: 1, Y: 2}) {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if events[1].Type != EventRotation || events[1].Rotation != 0.5 {
		t.Errorf("unexpected second event %+v", events[1])
	}
	if len(in.Drain()) != 0 {
		t.Errorf("queue not cleared")
	}
}

func TestHasDoubleTap(t *testing.T) {
	in := New()
	in.Pan(PhaseChanged, math.Vec2{})
	if in.HasDoubleTap() {
		t.Error("no double tap queued yet")
	}

	in.DoubleTap(math.Vec2{X: 3})
	if !in.HasDoubleTap() {
		t.Error("expected a queued double tap")
	}
	events := in.Drain()
	if got := events[1].Phase; got != PhaseEnded {
		t.Errorf("double tap phase = %v, want ended", got)
	}
	if in.HasDoubleTap() {
		t.Error("drained queue still reports a double tap")
	}
}

func TestParsePhase(t *testing.T) {
	for p := PhaseBegan; p <= PhaseCancelled; p++ {
		got, ok := ParsePhase(p.String())
		if !ok || got != p {
			t.Errorf("ParsePhase(%q) = %v, %v", p.String(), got, ok)
		}
	}
	if _, ok := ParsePhase("moved"); ok {
		t.Error("expected unknown phase to fail")
	}
}

func TestFinished(t *testing.T) {
	tests := []struct {
		phase Phase
		want  bool
	}{
		{PhaseBegan, false},
		{PhaseChanged, false},
		{PhaseEnded, true},
		{PhaseCancelled, true},
	}
	for _, tt := range tests {
		if got := tt.phase.Finished(); got != tt.want {
			t.Errorf("%v.Finished() = %v, want %v", tt.phase, got, tt.want)
		}
	}
}

func TestEventTypeNames(t *testing.T) {
	names := map[EventType]string{
		EventNone:      "none",
		EventPan:       "pan",
		EventRotation:  "rotate",
		EventDoubleTap: "double_tap",
	}
	for typ, want := range names {
		if got := typ.String(); got != want {
			t.Errorf("EventType(%d).String() = %q, want %q", int(typ), got, want)
		}
	}
}
