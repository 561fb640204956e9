package rmath

import "math"

// Transform stores both a matrix and its inverse to avoid recomputing it on
// every TransformNormal/TransformRay call.
type Transform struct {
	M, MInv Mat4
}

func TransformIdentity() Transform {
	return Transform{M: Mat4Identity(), MInv: Mat4Identity()}
}

// NewTransform builds a Transform from a matrix, computing its inverse.
func NewTransform(m Mat4) Transform {
	return Transform{M: m, MInv: m.Inverse()}
}

// NewTransformWithInverse avoids recomputing the inverse when the caller
// already has it (e.g. composing two transforms).
func NewTransformWithInverse(m, mInv Mat4) Transform {
	return Transform{M: m, MInv: mInv}
}

func (t Transform) Inverse() Transform {
	return Transform{M: t.MInv, MInv: t.M}
}

func (t Transform) Mul(o Transform) Transform {
	return Transform{M: t.M.Mul(o.M), MInv: o.MInv.Mul(t.MInv)}
}

func (t Transform) TransformPoint(p Point3) Point3 {
	m := t.M
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w != 1 && w != 0 {
		return Point3{x / w, y / w, z / w}
	}
	return Point3{x, y, z}
}

func (t Transform) TransformVector(v Vector) Vector {
	m := t.M
	return Vector{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// TransformNormal uses the inverse-transpose of the linear part, per spec
// 3: normals preserve unit length only when the transform is orthogonal.
func (t Transform) TransformNormal(n Normal3) Normal3 {
	mi := t.MInv
	return Normal3{
		X: mi[0][0]*n.X + mi[1][0]*n.Y + mi[2][0]*n.Z,
		Y: mi[0][1]*n.X + mi[1][1]*n.Y + mi[2][1]*n.Z,
		Z: mi[0][2]*n.X + mi[1][2]*n.Y + mi[2][2]*n.Z,
	}
}

func (t Transform) TransformRay(r Ray) Ray {
	r2 := r
	r2.Origin = t.TransformPoint(r.Origin)
	r2.Direction = t.TransformVector(r.Direction)
	return r2
}

func (t Transform) TransformRayDifferential(rd RayDifferential) RayDifferential {
	out := rd
	out.Ray = t.TransformRay(rd.Ray)
	if rd.HasDifferentials {
		out.RxOrigin = t.TransformPoint(rd.RxOrigin)
		out.RyOrigin = t.TransformPoint(rd.RyOrigin)
		out.RxDirection = t.TransformVector(rd.RxDirection)
		out.RyDirection = t.TransformVector(rd.RyDirection)
	}
	return out
}

func (t Transform) TransformBBox(b BBox) BBox {
	result := BBoxEmpty()
	for i := 0; i < 8; i++ {
		result = result.UnionPoint(t.TransformPoint(b.Corner(i)))
	}
	return result
}

// HasScale reports whether transforming the basis vectors changes their
// length non-trivially.
func (t Transform) HasScale() bool {
	la2 := t.TransformVector(Vector{1, 0, 0}).LengthSqr()
	lb2 := t.TransformVector(Vector{0, 1, 0}).LengthSqr()
	lc2 := t.TransformVector(Vector{0, 0, 1}).LengthSqr()
	notOne := func(x float32) bool { return x < 0.999 || x > 1.001 }
	return notOne(la2) || notOne(lb2) || notOne(lc2)
}

func Translate(delta Vector) Transform {
	m := Mat4Translation(delta)
	mi := Mat4Translation(delta.Negate())
	return NewTransformWithInverse(m, mi)
}

func Scale(s Vector) Transform {
	m := Mat4ScaleXYZ(s)
	mi := Mat4ScaleXYZ(Vector{1 / s.X, 1 / s.Y, 1 / s.Z})
	return NewTransformWithInverse(m, mi)
}

func RotateX(angle float32) Transform {
	m := Mat4RotationX(angle)
	return NewTransformWithInverse(m, m.Transpose())
}

func RotateY(angle float32) Transform {
	m := Mat4RotationY(angle)
	return NewTransformWithInverse(m, m.Transpose())
}

func RotateZ(angle float32) Transform {
	m := Mat4RotationZ(angle)
	return NewTransformWithInverse(m, m.Transpose())
}

func RotateAxis(axis Vector, angle float32) Transform {
	m := Mat4RotationAxis(axis, angle)
	return NewTransformWithInverse(m, m.Transpose())
}

// LookAt builds a camera-to-world Transform, per spec 4.2.
func LookAt(pos, target, up Vector) Transform {
	m := Mat4LookAt(pos, target, up)
	return NewTransform(m)
}

// Perspective composes a projection-divide matrix with an axis-aligned
// scaling by cot(fov/2), per spec 4.2.
func Perspective(fovRadians, near, far float32) Transform {
	m := Mat4Perspective(fovRadians, near, far)
	return NewTransform(m)
}

func radians(deg float32) float32 { return deg * float32(math.Pi) / 180 }
