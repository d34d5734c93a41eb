package box

import (
	"unicode/utf8"

	"github.com/chewxy/math32"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Faultbox/boxify/pkg/math"
)

// TextMeasurer reports the bounds of rendered text in unscaled font units.
type TextMeasurer interface {
	Measure(text string) math.Bounds
}

// MonospaceMeasurer approximates text bounds with fixed per-glyph metrics.
type MonospaceMeasurer struct {
	Advance float32
	Ascent  float32
	Descent float32
}

// DefaultMeasurer returns metrics close to a system sans-serif font.
func DefaultMeasurer() MonospaceMeasurer {
	return MonospaceMeasurer{Advance: 0.6, Ascent: 0.8, Descent: 0.2}
}

// Measure returns (0, -Descent, 0)..(Advance*runes, Ascent, 0).
func (m MonospaceMeasurer) Measure(text string) math.Bounds {
	width := m.Advance * float32(utf8.RuneCountInString(text))
	return math.Bounds{
		Min: math.Vec3{Y: -m.Descent},
		Max: math.Vec3{X: width, Y: m.Ascent},
	}
}

// LengthFormatter renders lengths in centimetres with one decimal place.
type LengthFormatter struct {
	printer *message.Printer
}

// NewLengthFormatter creates a formatter for the given locale.
func NewLengthFormatter(tag language.Tag) LengthFormatter {
	return LengthFormatter{printer: message.NewPrinter(tag)}
}

// Format converts an absolute length in metres, e.g. 1.234 -> "123.4 cm".
func (f LengthFormatter) Format(meters float32) string {
	cm := float64(math32.Abs(meters)) * 100
	return f.printer.Sprintf("%v cm", number.Decimal(cm,
		number.MinFractionDigits(1),
		number.MaxFractionDigits(1),
	))
}

type labelLayout struct {
	axis        math.Axis
	anchor      math.Vec2 // within text bounds: x 0=left 1=right, y 0=bottom 1=top
	boundsPoint math.Vec3 // normalized point on the box
	offset      math.Vec3 // multiplied by the label margin
	orientation math.Quat
}

// Width lies flat in front of the bottom-front edge, length flat beside the
// bottom-right edge, height upright against the top-left vertical edge.
var labelLayouts = [LabelCount]labelLayout{
	LabelWidth: {
		axis:        math.AxisX,
		anchor:      math.Vec2{X: 0.5, Y: 1},
		boundsPoint: math.Vec3{X: 0.5, Y: 0, Z: 1},
		offset:      math.Vec3{Z: 1},
		orientation: flatOnGround,
	},
	LabelHeight: {
		axis:        math.AxisY,
		anchor:      math.Vec2{X: 1, Y: 1},
		boundsPoint: math.Vec3{X: 0, Y: 1, Z: 1},
		offset:      math.Vec3{X: -1},
		orientation: math.QuatIdentity(),
	},
	LabelLength: {
		axis:        math.AxisZ,
		anchor:      math.Vec2{X: 0.5, Y: 1},
		boundsPoint: math.Vec3{X: 1, Y: 0, Z: 0.5},
		offset:      math.Vec3{X: 1},
		orientation: math.QuatFromAxisAngle(math.AxisY.Unit(), math32.Pi/2).Mul(flatOnGround),
	},
}

var flatOnGround = math.QuatFromAxisAngle(math.AxisX.Unit(), -math32.Pi/2)

func (b *Box) updateLabel(kind LabelKind, size math.Vec3) {
	layout := labelLayouts[kind]
	l := &b.labels[kind]

	extent := size.Get(layout.axis)
	l.Kind = kind
	l.Axis = layout.axis
	l.Text = b.format.Format(extent)
	l.Anchor = layout.anchor
	l.Orientation = layout.orientation
	l.Scale = math.Vec3{X: b.opts.FontSize, Y: b.opts.FontSize, Z: b.opts.FontSize}
	l.Position = b.PointInBounds(layout.boundsPoint).Add(layout.offset.Scale(b.opts.LabelMargin))

	textBounds := b.opts.Measurer.Measure(l.Text)
	l.Pivot = textBounds.PointAt(math.Vec3{X: layout.anchor.X, Y: layout.anchor.Y})
	l.Hidden = extent < b.opts.MinLabelDistance
}
