package scene

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/multierr"
)

// PaletteConfig holds hex colours, e.g. "#ffffff".
type PaletteConfig struct {
	Vertex    string `yaml:"vertex" toml:"vertex"`
	Edge      string `yaml:"edge" toml:"edge"`
	Face      string `yaml:"face" toml:"face"`
	Highlight string `yaml:"highlight" toml:"highlight"`
	Label     string `yaml:"label" toml:"label"`
}

// DefaultPaletteConfig returns white wireframe and labels over light faces,
// with highlighted faces in the system tint.
func DefaultPaletteConfig() PaletteConfig {
	return PaletteConfig{
		Vertex:    "#ffffff",
		Edge:      "#ffffff",
		Face:      "#e6e6e6",
		Highlight: "#0a84ff",
		Label:     "#ffffff",
	}
}

// Palette holds the colours used for each kind of node.
type Palette struct {
	Vertex    colorful.Color
	Edge      colorful.Color
	Face      colorful.Color
	Highlight colorful.Color
	Label     colorful.Color
}

// DefaultPalette parses DefaultPaletteConfig.
func DefaultPalette() Palette {
	p, err := ParsePalette(DefaultPaletteConfig())
	if err != nil {
		panic("scene: invalid default palette: " + err.Error())
	}
	return p
}

// ParsePalette parses every colour and reports all invalid ones together.
func ParsePalette(cfg PaletteConfig) (Palette, error) {
	var p Palette
	var errs error
	parse := func(name, hex string, dst *colorful.Color) {
		c, err := colorful.Hex(hex)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s colour %q: %w", name, hex, err))
			return
		}
		*dst = c
	}

	parse("vertex", cfg.Vertex, &p.Vertex)
	parse("edge", cfg.Edge, &p.Edge)
	parse("face", cfg.Face, &p.Face)
	parse("highlight", cfg.Highlight, &p.Highlight)
	parse("label", cfg.Label, &p.Label)
	return p, errs
}

// FaceColor blends the face colour toward the highlight colour by opacity.
func (p Palette) FaceColor(opacity float32) colorful.Color {
	return p.Face.BlendLab(p.Highlight, float64(opacity)).Clamped()
}

// RGBA converts c with the given alpha to 8-bit non-premultiplied RGBA.
func RGBA(c colorful.Color, alpha float32) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	a := alpha
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}
