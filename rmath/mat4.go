package rmath

import "math"

// Mat4 is a row-major 4x4 matrix, adapted from the teacher engine's math
// package (github.com/mrigankad/gorenderengine originally; see
// mrigankad-gorenderengine/math/mat4.go).
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Zero() Mat4 { return Mat4{} }

func (m Mat4) Mul(o Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[i][k] * o[k][j]
			}
			result[i][j] = sum
		}
	}
	return result
}

func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			t[j][i] = m[i][j]
		}
	}
	return t
}

func Mat4Translation(t Vector) Mat4 {
	m := Mat4Identity()
	m[0][3] = t.X
	m[1][3] = t.Y
	m[2][3] = t.Z
	return m
}

func Mat4ScaleXYZ(s Vector) Mat4 {
	m := Mat4Identity()
	m[0][0] = s.X
	m[1][1] = s.Y
	m[2][2] = s.Z
	return m
}

func Mat4RotationX(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationY(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationZ(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationAxis(axis Vector, angle float32) Mat4 {
	axis = axis.Normalize()
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		{t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0},
		{t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0},
		{t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0},
		{0, 0, 0, 1},
	}
}

// Mat4Perspective composes a projective-divide matrix with an axis-aligned
// scale by cot(fov/2), per spec 4.2.
func Mat4Perspective(fovRadians, near, far float32) Mat4 {
	invTan := 1.0 / float32(math.Tan(float64(fovRadians)/2))
	m := Mat4Identity()
	m[2][2] = far / (far - near)
	m[2][3] = -far * near / (far - near)
	m[3][2] = 1
	m[3][3] = 0
	scale := Mat4ScaleXYZ(Vector{X: invTan, Y: invTan, Z: 1})
	return scale.Mul(m)
}

// Mat4LookAt builds a camera-to-world matrix whose third column is the
// forward direction; orthonormal when pos/target/up are well-formed.
func Mat4LookAt(pos, target, up Vector) Mat4 {
	dir := target.Sub(pos).Normalize()
	right := up.Normalize().Cross(dir).Normalize()
	newUp := dir.Cross(right)

	return Mat4{
		{right.X, newUp.X, dir.X, pos.X},
		{right.Y, newUp.Y, dir.Y, pos.Y},
		{right.Z, newUp.Z, dir.Z, pos.Z},
		{0, 0, 0, 1},
	}
}

func (m Mat4) Inverse() Mat4 {
	var inv Mat4
	indxc := [4]int{}
	indxr := [4]int{}
	ipiv := [4]int{}
	a := m

	for i := 0; i < 4; i++ {
		irow, icol := -1, -1
		big := float32(0)
		for j := 0; j < 4; j++ {
			if ipiv[j] != 1 {
				for k := 0; k < 4; k++ {
					if ipiv[k] == 0 {
						v := a[j][k]
						if v < 0 {
							v = -v
						}
						if v >= big {
							big = v
							irow, icol = j, k
						}
					}
				}
			}
		}
		ipiv[icol]++
		if irow != icol {
			a[irow], a[icol] = a[icol], a[irow]
		}
		indxr[i], indxc[i] = irow, icol
		if a[icol][icol] == 0 {
			return Mat4Identity()
		}
		pivinv := 1 / a[icol][icol]
		a[icol][icol] = 1
		for j := 0; j < 4; j++ {
			a[icol][j] *= pivinv
		}
		for j := 0; j < 4; j++ {
			if j != icol {
				save := a[j][icol]
				a[j][icol] = 0
				for k := 0; k < 4; k++ {
					a[j][k] -= a[icol][k] * save
				}
			}
		}
	}
	for j := 3; j >= 0; j-- {
		if indxr[j] != indxc[j] {
			for k := 0; k < 4; k++ {
				a[k][indxr[j]], a[k][indxc[j]] = a[k][indxc[j]], a[k][indxr[j]]
			}
		}
	}
	inv = a
	return inv
}
