package scene

import (
	"image/color"

	"github.com/Faultbox/boxify/internal/box"
	"github.com/Faultbox/boxify/pkg/math"
)

// Kind is the type of a drawable node.
type Kind int

const (
	KindVertex Kind = iota
	KindEdge
	KindFace
	KindLabel
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	case KindFace:
		return "face"
	case KindLabel:
		return "label"
	}
	return "unknown"
}

// Drawable is one box node resolved to world space for the render host.
type Drawable struct {
	Kind        Kind
	Name        string    // handle name: "A", "AB", "top", "width"
	Transform   math.Mat4 // node to world
	Size        math.Vec3 // sphere radius, segment extent or quad size
	Text        string
	Color       color.NRGBA
	WritesDepth bool
	Hidden      bool
}

// Frame is everything the render host needs to draw one box.
type Frame struct {
	Hidden bool
	Nodes  []Drawable
}

// Visible returns the nodes that should be drawn.
func (f Frame) Visible() []Drawable {
	if f.Hidden {
		return nil
	}
	visible := make([]Drawable, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		if !n.Hidden {
			visible = append(visible, n)
		}
	}
	return visible
}

// Faces returns the face drawables indexed by side.
func (f Frame) Faces() [box.SideCount]Drawable {
	var faces [box.SideCount]Drawable
	for _, n := range f.Nodes {
		if n.Kind == KindFace {
			faces[box.MustParseSide(n.Name)] = n
		}
	}
	return faces
}

// Snapshot reads every node of b by handle and resolves it to world space.
func Snapshot(b *box.Box, p Palette) Frame {
	world := b.WorldTransform()
	frame := Frame{
		Hidden: b.Hidden(),
		Nodes:  make([]Drawable, 0, box.VertexCount+box.EdgeCount+box.SideCount+box.LabelCount),
	}

	for id := box.VertexID(0); id < box.VertexCount; id++ {
		v := b.Vertex(id)
		frame.Nodes = append(frame.Nodes, Drawable{
			Kind:        KindVertex,
			Name:        id.String(),
			Transform:   world.Mul(v.Transform()),
			Size:        math.Vec3{X: v.Radius, Y: v.Radius, Z: v.Radius},
			Color:       RGBA(p.Vertex, 1),
			WritesDepth: true,
			Hidden:      v.Hidden,
		})
	}

	for id := box.EdgeID(0); id < box.EdgeCount; id++ {
		e := b.Edge(id)
		frame.Nodes = append(frame.Nodes, Drawable{
			Kind:        KindEdge,
			Name:        id.String(),
			Transform:   world.Mul(e.Transform()),
			Size:        e.Dimensions,
			Color:       RGBA(p.Edge, 1),
			WritesDepth: true,
			Hidden:      e.Hidden,
		})
	}

	for _, side := range box.Sides() {
		f := b.Face(side)
		frame.Nodes = append(frame.Nodes, Drawable{
			Kind:        KindFace,
			Name:        side.String(),
			Transform:   world.Mul(f.Transform()),
			Size:        math.Vec3{X: f.Width, Y: f.Height},
			Color:       RGBA(p.FaceColor(f.Opacity), f.Opacity),
			WritesDepth: f.WritesDepth,
			Hidden:      f.Hidden,
		})
	}

	for kind := box.LabelKind(0); kind < box.LabelCount; kind++ {
		l := b.Label(kind)
		frame.Nodes = append(frame.Nodes, Drawable{
			Kind:        KindLabel,
			Name:        kind.String(),
			Transform:   world.Mul(l.Transform()),
			Text:        l.Text,
			Color:       RGBA(p.Label, 1),
			WritesDepth: true,
			Hidden:      l.Hidden,
		})
	}

	return frame
}
