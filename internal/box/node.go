package box

import (
	"fmt"

	"github.com/Faultbox/boxify/pkg/math"
)

// Node is the placement shared by every derived geometry record.
// Positions are in the box's local frame.
type Node struct {
	Position    math.Vec3
	Orientation math.Quat
	Scale       math.Vec3
	Pivot       math.Vec3 // local point that lands on Position
	Hidden      bool
}

func newNode() Node {
	return Node{Orientation: math.QuatIdentity(), Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// Transform returns T(Position) * R(Orientation) * S(Scale) * T(-Pivot).
func (n Node) Transform() math.Mat4 {
	return math.Compose(n.Position, n.Orientation, n.Scale).
		Mul(math.TranslateVec(n.Pivot.Negate()))
}

// VertexID is a stable handle to one of the eight corners.
// A..D form the bottom ring at min.y, E..H the top ring at max.y.
type VertexID int

const (
	VertexA VertexID = iota
	VertexB
	VertexC
	VertexD
	VertexE
	VertexF
	VertexG
	VertexH
)

// VertexCount is the number of corners.
const VertexCount = 8

// String returns the corner letter.
func (id VertexID) String() string {
	if id < 0 || id >= VertexCount {
		return fmt.Sprintf("VertexID(%d)", int(id))
	}
	return string(rune('A' + id))
}

// Vertex is a corner marker.
type Vertex struct {
	Node
	Radius float32
}

// EdgeID is a stable handle to one of the twelve edges.
type EdgeID int

const (
	EdgeAB EdgeID = iota
	EdgeBC
	EdgeCD
	EdgeDA
	EdgeEF
	EdgeFG
	EdgeGH
	EdgeHE
	EdgeAE
	EdgeBF
	EdgeCG
	EdgeDH
)

// EdgeCount is the number of edges.
const EdgeCount = 12

// edgeTable follows the perimeter of each ring, then the four verticals.
var edgeTable = [EdgeCount]struct {
	from, to VertexID
	axis     math.Axis
}{
	EdgeAB: {VertexA, VertexB, math.AxisX},
	EdgeBC: {VertexB, VertexC, math.AxisZ},
	EdgeCD: {VertexC, VertexD, math.AxisX},
	EdgeDA: {VertexD, VertexA, math.AxisZ},
	EdgeEF: {VertexE, VertexF, math.AxisX},
	EdgeFG: {VertexF, VertexG, math.AxisZ},
	EdgeGH: {VertexG, VertexH, math.AxisX},
	EdgeHE: {VertexH, VertexE, math.AxisZ},
	EdgeAE: {VertexA, VertexE, math.AxisY},
	EdgeBF: {VertexB, VertexF, math.AxisY},
	EdgeCG: {VertexC, VertexG, math.AxisY},
	EdgeDH: {VertexD, VertexH, math.AxisY},
}

// String returns the two corner letters, e.g. "AB".
func (id EdgeID) String() string {
	if id < 0 || id >= EdgeCount {
		return fmt.Sprintf("EdgeID(%d)", int(id))
	}
	return edgeTable[id].from.String() + edgeTable[id].to.String()
}

// Edge is a segment between two corners.
type Edge struct {
	Node
	From, To VertexID
	Axis     math.Axis
	// Distance is the signed length from From to To along Axis.
	Distance float32
	// Dimensions is the segment extent: line width across, |Distance| along Axis.
	Dimensions math.Vec3
}

// Vertical reports whether the edge connects the bottom and top rings.
func (e Edge) Vertical() bool {
	return e.Axis == math.AxisY
}

// Face is one of the six translucent side planes.
// The plane lies in its node's XY plane with the normal along +Z.
type Face struct {
	Node
	Side        Side
	Width       float32
	Height      float32
	Opacity     float32
	WritesDepth bool
}

// LabelKind is a stable handle to one of the three dimension labels.
type LabelKind int

const (
	LabelWidth LabelKind = iota
	LabelHeight
	LabelLength
)

// LabelCount is the number of dimension labels.
const LabelCount = 3

// String returns the label name.
func (k LabelKind) String() string {
	switch k {
	case LabelWidth:
		return "width"
	case LabelHeight:
		return "height"
	case LabelLength:
		return "length"
	}
	return fmt.Sprintf("LabelKind(%d)", int(k))
}

// Label is a dimension text placed along one box edge.
type Label struct {
	Node
	Kind LabelKind
	Axis math.Axis
	Text string
	// Anchor is the normalized point within the text bounds pinned to Position.
	Anchor math.Vec2
}

// Region is an oriented box in world space, used for hit tests.
type Region struct {
	Transform math.Mat4
	Bounds    math.Bounds
}
