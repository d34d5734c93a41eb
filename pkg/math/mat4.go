package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix stored column by column: m[col*4+row].
// Points are column vectors, so m.Mul(n) applies n first.
type Mat4 [16]float32

// Vec4 is a homogeneous coordinate.
type Vec4 [4]float32

// FromColumns builds a matrix from its four columns.
func FromColumns(c0, c1, c2, c3 Vec4) Mat4 {
	var m Mat4
	for i, c := range [4]Vec4{c0, c1, c2, c3} {
		copy(m[i*4:i*4+4], c[:])
	}
	return m
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	return ScaleVec(Vec3{1, 1, 1})
}

// TranslateVec returns a matrix that moves points by v.
func TranslateVec(v Vec3) Mat4 {
	return FromColumns(
		Vec4{1, 0, 0, 0},
		Vec4{0, 1, 0, 0},
		Vec4{0, 0, 1, 0},
		Vec4{v.X, v.Y, v.Z, 1},
	)
}

// ScaleVec returns a matrix that scales each axis by the matching component of v.
func ScaleVec(v Vec3) Mat4 {
	return FromColumns(
		Vec4{v.X, 0, 0, 0},
		Vec4{0, v.Y, 0, 0},
		Vec4{0, 0, v.Z, 0},
		Vec4{0, 0, 0, 1},
	)
}

// Compose returns T(position) * R(rotation) * S(scale), the usual node transform.
func Compose(position Vec3, rotation Quat, scale Vec3) Mat4 {
	x := rotation.Rotate(Vec3{X: scale.X})
	y := rotation.Rotate(Vec3{Y: scale.Y})
	z := rotation.Rotate(Vec3{Z: scale.Z})
	return FromColumns(
		Vec4{x.X, x.Y, x.Z, 0},
		Vec4{y.X, y.Y, y.Z, 0},
		Vec4{z.X, z.Y, z.Z, 0},
		Vec4{position.X, position.Y, position.Z, 1},
	)
}

// Perspective returns an OpenGL-style projection (NDC depth -1..1).
// fovY is in radians, aspect is width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	depth := near - far
	return FromColumns(
		Vec4{f / aspect, 0, 0, 0},
		Vec4{0, f, 0, 0},
		Vec4{0, 0, (far + near) / depth, -1},
		Vec4{0, 0, 2 * far * near / depth, 0},
	)
}

// LookAt returns a view matrix for a camera at eye facing target.
// The camera looks down its local -Z.
func LookAt(eye, target, up Vec3) Mat4 {
	forward := target.Sub(eye).Normalize()
	right := forward.Cross(up).Normalize()
	camUp := right.Cross(forward)

	return FromColumns(
		Vec4{right.X, camUp.X, -forward.X, 0},
		Vec4{right.Y, camUp.Y, -forward.Y, 0},
		Vec4{right.Z, camUp.Z, -forward.Z, 0},
		Vec4{-right.Dot(eye), -camUp.Dot(eye), forward.Dot(eye), 1},
	)
}

// At returns the element in the given row and column.
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// Column returns column i.
func (m Mat4) Column(i int) Vec4 {
	return Vec4(m[i*4 : i*4+4])
}

// Mul returns m * other. The result applies other first, then m.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		c := m.MulVec4(other.Column(col))
		copy(out[col*4:col*4+4], c[:])
	}
	return out
}

// Then composes m followed by next (next * m).
func (m Mat4) Then(next Mat4) Mat4 {
	return next.Mul(m)
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[row] += m[col*4+row] * v[col]
		}
	}
	return out
}

// TransformVec3 transforms a point, dividing by w for projective matrices.
func (m Mat4) TransformVec3(p Vec3) Vec3 {
	h := m.MulVec4(Vec4{p.X, p.Y, p.Z, 1})
	if h[3] != 0 && h[3] != 1 {
		return Vec3{h[0] / h[3], h[1] / h[3], h[2] / h[3]}
	}
	return Vec3{h[0], h[1], h[2]}
}

// TransformDirection transforms a direction; translation does not apply.
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	h := m.MulVec4(Vec4{d.X, d.Y, d.Z, 0})
	return Vec3{h[0], h[1], h[2]}
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// Inverse returns the inverse by Gauss-Jordan elimination with partial
// pivoting. A singular matrix yields the identity.
func (m Mat4) Inverse() Mat4 {
	// Row-major [m | I].
	var a [4][8]float32
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			a[r][c] = m.At(r, c)
		}
		a[r][4+r] = 1
	}

	for col := 0; col < 4; col++ {
		pivot := col
		for r := col + 1; r < 4; r++ {
			if math32.Abs(a[r][col]) > math32.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if a[pivot][col] == 0 {
			return Identity()
		}
		a[col], a[pivot] = a[pivot], a[col]

		inv := 1 / a[col][col]
		for c := range a[col] {
			a[col][c] *= inv
		}
		for r := 0; r < 4; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			f := a[r][col]
			for c := range a[r] {
				a[r][c] -= f * a[col][c]
			}
		}
	}

	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[c*4+r] = a[r][4+c]
		}
	}
	return out
}
