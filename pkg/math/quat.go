package math

import "github.com/chewxy/math32"

// Quat is a rotation quaternion. W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the quaternion for no rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle returns a rotation of angle radians about axis.
// The axis need not be normalized.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	s, c := math32.Sincos(angle / 2)
	v := axis.Normalize().Scale(s)
	return Quat{X: v.X, Y: v.Y, Z: v.Z, W: c}
}

func (q Quat) vec() Vec3 {
	return Vec3{q.X, q.Y, q.Z}
}

// Length returns the quaternion norm.
func (q Quat) Length() float32 {
	return math32.Sqrt(q.vec().Dot(q.vec()) + q.W*q.W)
}

// Normalize returns q scaled to unit length, or the identity when q is degenerate.
func (q Quat) Normalize() Quat {
	l := q.Length()
	if l < 1e-4 {
		return QuatIdentity()
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Mul returns q * other, which applies other first.
func (q Quat) Mul(other Quat) Quat {
	a, b := q.vec(), other.vec()
	v := b.Scale(q.W).Add(a.Scale(other.W)).Add(a.Cross(b))
	return Quat{v.X, v.Y, v.Z, q.W*other.W - a.Dot(b)}
}

// Rotate rotates v by q.
func (q Quat) Rotate(v Vec3) Vec3 {
	q = q.Normalize()
	u := q.vec()
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// ToMat4 returns the rotation as a matrix.
func (q Quat) ToMat4() Mat4 {
	return Compose(Vec3{}, q, Vec3{1, 1, 1})
}
