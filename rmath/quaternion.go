package rmath

import "math"

// Quaternion is adapted from the teacher engine's math package
// (mrigankad-gorenderengine/math/quaternion.go); Slerp backs
// AnimatedTransform's keyframe interpolation.
type Quaternion struct {
	X, Y, Z, W float32
}

func QuaternionIdentity() Quaternion { return Quaternion{0, 0, 0, 1} }

func QuaternionFromAxisAngle(axis Vector, angle float32) Quaternion {
	half := angle / 2
	s := float32(math.Sin(float64(half)))
	c := float32(math.Cos(float64(half)))
	axis = axis.Normalize()
	return Quaternion{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: c}
}

func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

func (q Quaternion) Normalize() Quaternion {
	l := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if l > 0 {
		inv := 1 / l
		return Quaternion{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
	}
	return q
}

func (q Quaternion) RotateVector(v Vector) Vector {
	qv := Vector{q.X, q.Y, q.Z}
	t := qv.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(qv.Cross(t))
}

func (q Quaternion) ToMat4() Mat4 {
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z

	return Mat4{
		{1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy), 0},
		{2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx), 0},
		{2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}

// QuaternionFromMat4 extracts the rotation quaternion from the upper 3x3
// of an orthonormal matrix.
func QuaternionFromMat4(m Mat4) Quaternion {
	trace := m[0][0] + m[1][1] + m[2][2]
	var q Quaternion
	if trace > 0 {
		s := float32(0.5 / math.Sqrt(float64(trace+1)))
		q.W = 0.25 / s
		q.X = (m[2][1] - m[1][2]) * s
		q.Y = (m[0][2] - m[2][0]) * s
		q.Z = (m[1][0] - m[0][1]) * s
	} else if m[0][0] > m[1][1] && m[0][0] > m[2][2] {
		s := 2 * float32(math.Sqrt(float64(1+m[0][0]-m[1][1]-m[2][2])))
		q.W = (m[2][1] - m[1][2]) / s
		q.X = 0.25 * s
		q.Y = (m[0][1] + m[1][0]) / s
		q.Z = (m[0][2] + m[2][0]) / s
	} else if m[1][1] > m[2][2] {
		s := 2 * float32(math.Sqrt(float64(1+m[1][1]-m[0][0]-m[2][2])))
		q.W = (m[0][2] - m[2][0]) / s
		q.X = (m[0][1] + m[1][0]) / s
		q.Y = 0.25 * s
		q.Z = (m[1][2] + m[2][1]) / s
	} else {
		s := 2 * float32(math.Sqrt(float64(1+m[2][2]-m[0][0]-m[1][1])))
		q.W = (m[1][0] - m[0][1]) / s
		q.X = (m[0][2] + m[2][0]) / s
		q.Y = (m[1][2] + m[2][1]) / s
		q.Z = 0.25 * s
	}
	return q.Normalize()
}

func (q Quaternion) Lerp(o Quaternion, t float32) Quaternion {
	return Quaternion{
		X: q.X + (o.X-q.X)*t,
		Y: q.Y + (o.Y-q.Y)*t,
		Z: q.Z + (o.Z-q.Z)*t,
		W: q.W + (o.W-q.W)*t,
	}.Normalize()
}

// Slerp spherically interpolates between two quaternions, falling back to
// Lerp when they are nearly parallel to avoid division by ~0.
func (q Quaternion) Slerp(o Quaternion, t float32) Quaternion {
	dot := q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
	if dot < 0 {
		dot = -dot
		o = Quaternion{-o.X, -o.Y, -o.Z, -o.W}
	}
	if dot > 0.9995 {
		return q.Lerp(o, t)
	}
	theta0 := math.Acos(float64(dot))
	theta := theta0 * float64(t)
	sinTheta := math.Sin(theta)
	sinTheta0 := math.Sin(theta0)

	s0 := float32(math.Cos(theta) - float64(dot)*sinTheta/sinTheta0)
	s1 := float32(sinTheta / sinTheta0)

	return Quaternion{
		X: q.X*s0 + o.X*s1,
		Y: q.Y*s0 + o.Y*s1,
		Z: q.Z*s0 + o.Z*s1,
		W: q.W*s0 + o.W*s1,
	}
}

// AnimatedTransform linearly interpolates translation and slerps rotation
// between two keyframe transforms, sampled at a ray's Time. Grounded on
// original_source/include/linalg/animated_transform.h; the original's
// polar decomposition collapses to translation+rotation because this
// engine's Node transforms carry no shear.
type AnimatedTransform struct {
	StartTime, EndTime     float32
	StartT, EndT           Transform
	StartTranslate, EndTranslate Vector
	StartRotate, EndRotate Quaternion
	Animated               bool
}

func NewAnimatedTransform(start, end Transform, startTime, endTime float32) *AnimatedTransform {
	at := &AnimatedTransform{
		StartTime: startTime, EndTime: endTime,
		StartT: start, EndT: end,
		Animated: start.M != end.M,
	}
	at.StartTranslate = Vector{start.M[0][3], start.M[1][3], start.M[2][3]}
	at.EndTranslate = Vector{end.M[0][3], end.M[1][3], end.M[2][3]}
	at.StartRotate = QuaternionFromMat4(start.M)
	at.EndRotate = QuaternionFromMat4(end.M)
	return at
}

// Interpolate returns the transform at the given time, clamped to
// [StartTime, EndTime].
func (at *AnimatedTransform) Interpolate(time float32) Transform {
	if !at.Animated || time <= at.StartTime {
		return at.StartT
	}
	if time >= at.EndTime {
		return at.EndT
	}
	t := (time - at.StartTime) / (at.EndTime - at.StartTime)
	translate := at.StartTranslate.Add(at.EndTranslate.Sub(at.StartTranslate).Mul(t))
	rotate := at.StartRotate.Slerp(at.EndRotate, t)
	m := rotate.ToMat4()
	m[0][3], m[1][3], m[2][3] = translate.X, translate.Y, translate.Z
	return NewTransform(m)
}

func (at *AnimatedTransform) TransformRay(r Ray) Ray {
	return at.Interpolate(r.Time).TransformRay(r)
}
