// Package box implements the parametric measurement box.
//
// A Box owns a single local-space bounding box. Every vertex, edge, face and
// dimension label is derived from it and rebuilt in full after each mutation,
// so two boxes with the same bounds always expose identical geometry.
package box

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/Faultbox/boxify/internal/logger"
	"github.com/Faultbox/boxify/pkg/math"
)

// Options configures geometry constants.
type Options struct {
	FaceOpacity         float32 // opacity of faces that are not highlighted
	LineWidth           float32
	VertexRadius        float32
	FontSize            float32 // uniform label scale
	LabelMargin         float32 // gap between a label and its edge
	MinLabelDistance    float32 // labels for shorter sides are hidden
	FlatteningThreshold float32 // height below which the box is flattened
	Locale              language.Tag
	Measurer            TextMeasurer
	Logger              *zap.Logger
}

// DefaultOptions returns the standard geometry constants.
func DefaultOptions() Options {
	return Options{
		FaceOpacity:         0.1,
		LineWidth:           0.005,
		VertexRadius:        0.005,
		FontSize:            0.025,
		LabelMargin:         0.01,
		MinLabelDistance:    0.01,
		FlatteningThreshold: 0.05,
		Locale:              language.English,
		Measurer:            DefaultMeasurer(),
	}
}

type faceLayout struct {
	anchor        math.Vec3
	width, height math.Axis
	orientation   math.Quat
}

// Face planes point outward; orientation does not depend on size.
var faceLayouts = [SideCount]faceLayout{
	SideFront:  {math.Vec3{X: 0.5, Y: 0.5, Z: 1}, math.AxisX, math.AxisY, math.QuatIdentity()},
	SideBack:   {math.Vec3{X: 0.5, Y: 0.5, Z: 0}, math.AxisX, math.AxisY, math.QuatFromAxisAngle(math.AxisY.Unit(), math32.Pi)},
	SideTop:    {math.Vec3{X: 0.5, Y: 1, Z: 0.5}, math.AxisX, math.AxisZ, math.QuatFromAxisAngle(math.AxisX.Unit(), -math32.Pi/2)},
	SideBottom: {math.Vec3{X: 0.5, Y: 0, Z: 0.5}, math.AxisX, math.AxisZ, math.QuatFromAxisAngle(math.AxisX.Unit(), math32.Pi/2)},
	SideLeft:   {math.Vec3{X: 0, Y: 0.5, Z: 0.5}, math.AxisZ, math.AxisY, math.QuatFromAxisAngle(math.AxisY.Unit(), -math32.Pi/2)},
	SideRight:  {math.Vec3{X: 1, Y: 0.5, Z: 0.5}, math.AxisZ, math.AxisY, math.QuatFromAxisAngle(math.AxisY.Unit(), math32.Pi/2)},
}

// Box is the measurement cuboid. It is not safe for concurrent use.
type Box struct {
	opts   Options
	format LengthFormatter
	log    *zap.Logger

	bounds      math.Bounds
	position    math.Vec3
	orientation math.Quat
	hidden      bool

	highlighted    Side
	hasHighlighted bool
	flattening     float32

	vertices [VertexCount]Vertex
	edges    [EdgeCount]Edge
	faces    [SideCount]Face
	labels   [LabelCount]Label
}

// New creates a zero-size, hidden box at the origin.
func New(opts Options) *Box {
	if opts.Measurer == nil {
		opts.Measurer = DefaultMeasurer()
	}
	if opts.Locale == language.Und {
		opts.Locale = language.English
	}
	if opts.Logger == nil {
		opts.Logger = logger.Named("box")
	}

	b := &Box{
		opts:        opts,
		format:      NewLengthFormatter(opts.Locale),
		log:         opts.Logger,
		orientation: math.QuatIdentity(),
		hidden:      true,
	}
	for i := range b.vertices {
		b.vertices[i].Node = newNode()
	}
	for i := range b.edges {
		b.edges[i].Node = newNode()
	}
	for i := range b.faces {
		b.faces[i].Node = newNode()
	}
	for i := range b.labels {
		b.labels[i].Node = newNode()
	}
	b.ClearHighlights()
	b.rebuild()
	return b
}

// Options returns the constants the box was built with.
func (b *Box) Options() Options {
	return b.opts
}

// Bounds returns the local bounding box.
func (b *Box) Bounds() math.Bounds {
	return b.bounds
}

// Size returns max - min.
func (b *Box) Size() math.Vec3 {
	return b.bounds.Size()
}

// PointInBounds maps a normalized coordinate to a local point inside the box.
func (b *Box) PointInBounds(normalized math.Vec3) math.Vec3 {
	return b.bounds.PointAt(normalized)
}

// FlatteningRatio returns the y-scale applied to horizontal elements.
func (b *Box) FlatteningRatio() float32 {
	return b.flattening
}

// ResizeTo stores the bounds spanned by two corners and rebuilds all geometry.
// Components are swapped per axis so that min <= max. Any input is accepted.
func (b *Box) ResizeTo(min, max math.Vec3) {
	b.bounds = math.NewBounds(min, max)
	b.rebuild()
}

// Move sets the bound selected by side to extent and resizes.
// Moving a side past its opposite turns the box inside out: the two sides
// swap roles after normalization.
func (b *Box) Move(side Side, extent float32) {
	lo, hi := b.bounds.Min, b.bounds.Max
	axis := side.Axis()
	if side.Polarity() == PolarityMin {
		lo = lo.With(axis, extent)
	} else {
		hi = hi.With(axis, extent)
	}
	b.ResizeTo(lo, hi)
}

// Extent returns the current bound selected by side.
func (b *Box) Extent(side Side) float32 {
	if side.Polarity() == PolarityMin {
		return b.bounds.Min.Get(side.Axis())
	}
	return b.bounds.Max.Get(side.Axis())
}

// Highlight makes side opaque and every other face translucent.
func (b *Box) Highlight(side Side) {
	side.mustBeValid()
	b.ClearHighlights()
	f := &b.faces[side]
	f.Opacity = 1
	f.WritesDepth = true
	b.highlighted = side
	b.hasHighlighted = true
}

// ClearHighlights makes every face translucent.
func (b *Box) ClearHighlights() {
	for i := range b.faces {
		b.faces[i].Opacity = b.opts.FaceOpacity
		b.faces[i].WritesDepth = false
	}
	b.hasHighlighted = false
}

// Highlighted returns the highlighted side, if any.
func (b *Box) Highlighted() (Side, bool) {
	return b.highlighted, b.hasHighlighted
}

// Hidden reports whether the whole box is hidden.
func (b *Box) Hidden() bool {
	return b.hidden
}

// SetHidden shows or hides the whole box.
func (b *Box) SetHidden(hidden bool) {
	b.hidden = hidden
}

// Reset collapses the box to zero size at its local origin and hides it.
func (b *Box) Reset() {
	b.ResizeTo(math.Vec3{}, math.Vec3{})
	b.hidden = true
	b.ClearHighlights()
	b.log.Debug("box reset", zap.Stringer("position", b.position))
}

// Position returns the world position of the local origin.
func (b *Box) Position() math.Vec3 {
	return b.position
}

// SetPosition moves the local origin in world space.
func (b *Box) SetPosition(p math.Vec3) {
	b.position = p
}

// Orientation returns the local-to-world rotation.
func (b *Box) Orientation() math.Quat {
	return b.orientation
}

// SetYaw replaces the rotation with angle radians about +Y.
func (b *Box) SetYaw(angle float32) {
	b.orientation = math.QuatFromAxisAngle(math.AxisY.Unit(), angle)
}

// RotateAround rotates the box by angle about an axis through a world pivot.
func (b *Box) RotateAround(pivot, axis math.Vec3, angle float32) {
	r := math.QuatFromAxisAngle(axis, angle)
	b.position = pivot.Add(r.Rotate(b.position.Sub(pivot)))
	b.orientation = r.Mul(b.orientation).Normalize()
}

// WorldTransform returns T(position) * R(orientation).
func (b *Box) WorldTransform() math.Mat4 {
	return math.TranslateVec(b.position).Mul(b.orientation.ToMat4())
}

// LocalToWorld converts a box-local point to world space.
func (b *Box) LocalToWorld(p math.Vec3) math.Vec3 {
	return b.position.Add(b.orientation.Rotate(p))
}

// WorldToLocal converts a world point to box-local space.
func (b *Box) WorldToLocal(p math.Vec3) math.Vec3 {
	return b.orientation.Conjugate().Rotate(p.Sub(b.position))
}

// FaceRegion returns the world-space quad covered by a face.
func (b *Box) FaceRegion(side Side) Region {
	side.mustBeValid()
	f := b.faces[side]
	half := math.Vec3{X: f.Width / 2, Y: f.Height / 2}
	return Region{
		Transform: b.WorldTransform().
			Mul(math.Compose(f.Position, f.Orientation, math.Vec3{X: 1, Y: 1, Z: 1})),
		Bounds: math.Bounds{Min: half.Negate(), Max: half},
	}
}

// Vertex returns the corner record for id.
func (b *Box) Vertex(id VertexID) Vertex {
	if id < 0 || id >= VertexCount {
		panic(fmt.Sprintf("box: invalid vertex %d", int(id)))
	}
	return b.vertices[id]
}

// Edge returns the edge record for id.
func (b *Box) Edge(id EdgeID) Edge {
	if id < 0 || id >= EdgeCount {
		panic(fmt.Sprintf("box: invalid edge %d", int(id)))
	}
	return b.edges[id]
}

// Face returns the face record for side.
func (b *Box) Face(side Side) Face {
	side.mustBeValid()
	return b.faces[side]
}

// Label returns the dimension label record for kind.
func (b *Box) Label(kind LabelKind) Label {
	if kind < 0 || kind >= LabelCount {
		panic(fmt.Sprintf("box: invalid label %d", int(kind)))
	}
	return b.labels[kind]
}

// rebuild rederives every node from the bounds. It has no other inputs.
func (b *Box) rebuild() {
	size := b.bounds.Size()
	if size.X < 0 || size.Y < 0 || size.Z < 0 {
		panic(fmt.Sprintf("box: negative size %v", size))
	}

	b.flattening = math32.Min(size.Y, b.opts.FlatteningThreshold) / b.opts.FlatteningThreshold
	flat := math.Vec3{X: 1, Y: b.flattening, Z: 1}

	corners := b.corners()
	for i := range b.vertices {
		v := &b.vertices[i]
		v.Position = corners[i]
		v.Radius = b.opts.VertexRadius
		v.Scale = flat
	}

	lw := b.opts.LineWidth
	for id := range b.edges {
		e := &b.edges[id]
		def := edgeTable[id]
		from := corners[def.from]
		e.From, e.To, e.Axis = def.from, def.to, def.axis
		e.Distance = corners[def.to].Get(def.axis) - from.Get(def.axis)
		e.Position = from.Add(def.axis.Unit().Scale(e.Distance / 2))
		e.Dimensions = math.Vec3{X: lw, Y: lw, Z: lw}.With(def.axis, math32.Abs(e.Distance))
		if e.Vertical() {
			e.Scale = math.Vec3{X: 1, Y: 1, Z: 1}
		} else {
			e.Scale = flat
		}
	}

	for _, side := range Sides() {
		layout := faceLayouts[side]
		f := &b.faces[side]
		f.Side = side
		f.Width = size.Get(layout.width)
		f.Height = size.Get(layout.height)
		f.Position = b.PointInBounds(layout.anchor)
		f.Orientation = layout.orientation
	}

	for kind := range b.labels {
		b.updateLabel(LabelKind(kind), size)
	}
}

// corners picks min or max per axis directly so shared coordinates stay exact.
func (b *Box) corners() [VertexCount]math.Vec3 {
	lo, hi := b.bounds.Min, b.bounds.Max
	return [VertexCount]math.Vec3{
		VertexA: {X: lo.X, Y: lo.Y, Z: lo.Z},
		VertexB: {X: hi.X, Y: lo.Y, Z: lo.Z},
		VertexC: {X: hi.X, Y: lo.Y, Z: hi.Z},
		VertexD: {X: lo.X, Y: lo.Y, Z: hi.Z},
		VertexE: {X: lo.X, Y: hi.Y, Z: lo.Z},
		VertexF: {X: hi.X, Y: hi.Y, Z: lo.Z},
		VertexG: {X: hi.X, Y: hi.Y, Z: hi.Z},
		VertexH: {X: lo.X, Y: hi.Y, Z: hi.Z},
	}
}
