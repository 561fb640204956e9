// Package rmath implements the linear-algebra primitives shared by every
// other package: vectors, points, normals, rays, matrices, transforms and
// axis-aligned bounding boxes.
package rmath

import "math"

// Vector is a direction in 3-space. Vectors transform by the linear part of
// a Transform only.
type Vector struct {
	X, Y, Z float32
}

var (
	VectorZero = Vector{0, 0, 0}
	VectorX    = Vector{1, 0, 0}
	VectorY    = Vector{0, 1, 0}
	VectorZ    = Vector{0, 0, 1}
)

func NewVector(x, y, z float32) Vector { return Vector{X: x, Y: y, Z: z} }

func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector) Mul(s float32) Vector { return Vector{v.X * s, v.Y * s, v.Z * s} }
func (v Vector) Div(s float32) Vector { return v.Mul(1.0 / s) }
func (v Vector) Negate() Vector       { return Vector{-v.X, -v.Y, -v.Z} }

func (v Vector) Dot(o Vector) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vector) AbsDot(o Vector) float32 {
	d := v.Dot(o)
	if d < 0 {
		return -d
	}
	return d
}

func (v Vector) Cross(o Vector) Vector {
	return Vector{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector) LengthSqr() float32 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vector) Length() float32    { return float32(math.Sqrt(float64(v.LengthSqr()))) }

func (v Vector) Normalize() Vector {
	l := v.Length()
	if l > 0 {
		return v.Mul(1.0 / l)
	}
	return v
}

// Component returns the i-th component (0=X,1=Y,2=Z).
func (v Vector) Component(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// MaxDimension returns the index of the largest-magnitude component.
func (v Vector) MaxDimension() int {
	ax, ay, az := absf(v.X), absf(v.Y), absf(v.Z)
	if ax > ay && ax > az {
		return 0
	}
	if ay > az {
		return 1
	}
	return 2
}

func (v Vector) ToNormal() Normal3 { return Normal3{v.X, v.Y, v.Z} }
func (v Vector) ToPoint() Point3   { return Point3{v.X, v.Y, v.Z} }

// Point3 is a position in 3-space. Points transform by the full affine
// transform, including translation.
type Point3 struct {
	X, Y, Z float32
}

var PointOrigin = Point3{0, 0, 0}

func NewPoint3(x, y, z float32) Point3 { return Point3{X: x, Y: y, Z: z} }

func (p Point3) Add(v Vector) Point3       { return Point3{p.X + v.X, p.Y + v.Y, p.Z + v.Z} }
func (p Point3) Sub(v Vector) Point3       { return Point3{p.X - v.X, p.Y - v.Y, p.Z - v.Z} }
func (p Point3) SubPoint(o Point3) Vector  { return Vector{p.X - o.X, p.Y - o.Y, p.Z - o.Z} }
func (p Point3) Distance(o Point3) float32 { return p.SubPoint(o).Length() }
func (p Point3) ToVector() Vector          { return Vector{p.X, p.Y, p.Z} }

func (p Point3) Lerp(o Point3, t float32) Point3 {
	return Point3{
		X: p.X + (o.X-p.X)*t,
		Y: p.Y + (o.Y-p.Y)*t,
		Z: p.Z + (o.Z-p.Z)*t,
	}
}

func (p Point3) Component(i int) float32 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// Normal3 is a surface normal. Normals transform by the inverse-transpose
// of a Transform's linear part and are only unit length after an
// orthogonal transform; callers renormalize when needed.
type Normal3 struct {
	X, Y, Z float32
}

func NewNormal3(x, y, z float32) Normal3 { return Normal3{X: x, Y: y, Z: z} }

func (n Normal3) Add(o Normal3) Normal3 { return Normal3{n.X + o.X, n.Y + o.Y, n.Z + o.Z} }
func (n Normal3) Negate() Normal3       { return Normal3{-n.X, -n.Y, -n.Z} }
func (n Normal3) Mul(s float32) Normal3 { return Normal3{n.X * s, n.Y * s, n.Z * s} }

func (n Normal3) Dot(v Vector) float32 { return n.X*v.X + n.Y*v.Y + n.Z*v.Z }
func (n Normal3) DotNormal(o Normal3) float32 { return n.X*o.X + n.Y*o.Y + n.Z*o.Z }

func (n Normal3) LengthSqr() float32 { return n.X*n.X + n.Y*n.Y + n.Z*n.Z }
func (n Normal3) Length() float32    { return float32(math.Sqrt(float64(n.LengthSqr()))) }

func (n Normal3) Normalize() Normal3 {
	l := n.Length()
	if l > 0 {
		return n.Mul(1.0 / l)
	}
	return n
}

func (n Normal3) ToVector() Vector { return Vector{n.X, n.Y, n.Z} }

// FaceForward flips n so that it lies in the same hemisphere as v.
func (n Normal3) FaceForward(v Vector) Normal3 {
	if n.Dot(v) < 0 {
		return n.Negate()
	}
	return n
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clampf(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// CoordinateSystem builds an orthonormal basis (v2, v3) given a unit v1.
func CoordinateSystem(v1 Vector) (v2, v3 Vector) {
	if absf(v1.X) > absf(v1.Y) {
		invLen := 1.0 / float32(math.Sqrt(float64(v1.X*v1.X+v1.Z*v1.Z)))
		v2 = Vector{-v1.Z * invLen, 0, v1.X * invLen}
	} else {
		invLen := 1.0 / float32(math.Sqrt(float64(v1.Y*v1.Y+v1.Z*v1.Z)))
		v2 = Vector{0, v1.Z * invLen, -v1.Y * invLen}
	}
	v3 = v1.Cross(v2)
	return
}
