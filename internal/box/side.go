package box

import (
	"fmt"

	"github.com/Faultbox/boxify/pkg/math"
)

// Polarity tells whether a side sits on the smaller or larger bound of its axis.
type Polarity int

const (
	PolarityMin Polarity = iota
	PolarityMax
)

// String returns "min" or "max".
func (p Polarity) String() string {
	if p == PolarityMin {
		return "min"
	}
	return "max"
}

// Side identifies one of the six faces of the box.
type Side int

const (
	SideFront Side = iota
	SideBack
	SideTop
	SideBottom
	SideLeft
	SideRight
)

// SideCount is the number of faces.
const SideCount = 6

// sideTable binds every side to exactly one axis and one edge polarity.
var sideTable = [SideCount]struct {
	name     string
	axis     math.Axis
	polarity Polarity
}{
	SideFront:  {"front", math.AxisZ, PolarityMax},
	SideBack:   {"back", math.AxisZ, PolarityMin},
	SideTop:    {"top", math.AxisY, PolarityMax},
	SideBottom: {"bottom", math.AxisY, PolarityMin},
	SideLeft:   {"left", math.AxisX, PolarityMin},
	SideRight:  {"right", math.AxisX, PolarityMax},
}

// Sides lists every side in handle order.
func Sides() [SideCount]Side {
	return [SideCount]Side{SideFront, SideBack, SideTop, SideBottom, SideLeft, SideRight}
}

// Valid reports whether s is one of the six known sides.
func (s Side) Valid() bool {
	return s >= 0 && s < SideCount
}

// String returns the face node name.
func (s Side) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideTable[s].name
}

// Axis returns the axis the side is perpendicular to.
func (s Side) Axis() math.Axis {
	s.mustBeValid()
	return sideTable[s].axis
}

// Polarity returns which bound of the axis the side sits on.
func (s Side) Polarity() Polarity {
	s.mustBeValid()
	return sideTable[s].polarity
}

// Opposite returns the side on the other bound of the same axis.
func (s Side) Opposite() Side {
	s.mustBeValid()
	for _, other := range Sides() {
		if other != s && sideTable[other].axis == sideTable[s].axis {
			return other
		}
	}
	panic("box: side table has no opposite for " + s.String())
}

func (s Side) mustBeValid() {
	if !s.Valid() {
		panic(fmt.Sprintf("box: invalid side %d", int(s)))
	}
}

// ParseSide maps a face node name back to its side.
func ParseSide(name string) (Side, error) {
	for _, s := range Sides() {
		if sideTable[s].name == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown side %q", name)
}

// MustParseSide is like ParseSide but panics on unknown names.
// Use it only for names that come from the box's own nodes.
func MustParseSide(name string) Side {
	s, err := ParseSide(name)
	if err != nil {
		panic("box: " + err.Error())
	}
	return s
}
