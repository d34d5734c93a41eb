package math

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec2 is a screen point in pixels (Y down) or a 2D extent.
type Vec2 struct {
	X, Y float32
}

// String formats the vector with one decimal.
func (v Vec2) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y)
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Distance returns the distance to another point, e.g. between two touches.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}
