package math

// Bounds is an axis-aligned box given by its min and max corners.
type Bounds struct {
	Min Vec3
	Max Vec3
}

// NewBounds creates Bounds from two corners, swapping components so that Min <= Max per axis.
func NewBounds(a, b Vec3) Bounds {
	return Bounds{Min: a.Min(b), Max: a.Max(b)}
}

// Size returns Max - Min.
func (b Bounds) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Vec3 {
	return b.PointAt(Vec3{0.5, 0.5, 0.5})
}

// PointAt returns the point at a normalized location within the bounds,
// where 0 is Min and 1 is Max on each axis.
func (b Bounds) PointAt(normalized Vec3) Vec3 {
	return b.Min.Add(b.Size().Mul(normalized))
}

// Contains reports whether p lies inside the bounds (inclusive).
func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
