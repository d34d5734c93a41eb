package interaction

import (
	"fmt"

	"github.com/Faultbox/boxify/internal/box"
	"github.com/Faultbox/boxify/pkg/math"
)

// State is the current interaction mode. Exactly one is active at a time.
type State interface {
	// Name returns the mode name used in logs and replay output.
	Name() string
	state()
}

// WaitingForLocation waits for the first world hit that places the box.
type WaitingForLocation struct{}

// DraggingInitialWidth drags out the box's width and yaw.
type DraggingInitialWidth struct{}

// DraggingInitialLength drags out the box's length.
type DraggingInitialLength struct{}

// WaitingForFaceDrag waits for a touch on one of the faces.
type WaitingForFaceDrag struct{}

// DraggingFace drags a single face along its axis.
type DraggingFace struct {
	Side box.Side
	// DragStart is the touched point on the face in box-local space.
	DragStart math.Vec3
}

func (WaitingForLocation) Name() string    { return "waitingForLocation" }
func (DraggingInitialWidth) Name() string  { return "draggingInitialWidth" }
func (DraggingInitialLength) Name() string { return "draggingInitialLength" }
func (WaitingForFaceDrag) Name() string    { return "waitingForFaceDrag" }
func (DraggingFace) Name() string          { return "draggingFace" }

func (WaitingForLocation) state()    {}
func (DraggingInitialWidth) state()  {}
func (DraggingInitialLength) state() {}
func (WaitingForFaceDrag) state()    {}
func (DraggingFace) state()          {}

func (s DraggingFace) String() string {
	return fmt.Sprintf("draggingFace(%s, %v)", s.Side, s.DragStart)
}
