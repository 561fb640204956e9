package rmath

import (
	"math"
	"testing"
)

func almostEqualf(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

func almostEqualPoint(a, b Point3, eps float32) bool {
	return almostEqualf(a.X, b.X, eps) && almostEqualf(a.Y, b.Y, eps) && almostEqualf(a.Z, b.Z, eps)
}

func almostEqualVector(a, b Vector, eps float32) bool {
	return almostEqualf(a.X, b.X, eps) && almostEqualf(a.Y, b.Y, eps) && almostEqualf(a.Z, b.Z, eps)
}

// TestTransformRoundTrip verifies spec 8.1: T.Inverse()(T(P)) == P.
func TestTransformRoundTrip(t *testing.T) {
	transforms := []Transform{
		Translate(Vector{1, 2, 3}),
		Scale(Vector{2, 0.5, 4}),
		RotateY(radians(37)),
		RotateAxis(Vector{1, 1, 0}.Normalize(), radians(62)),
	}
	points := []Point3{{0, 0, 0}, {1, 2, 3}, {-5, 2, 9}}

	for _, tr := range transforms {
		inv := tr.Inverse()
		for _, p := range points {
			got := inv.TransformPoint(tr.TransformPoint(p))
			if !almostEqualPoint(got, p, 1e-3) {
				t.Errorf("round trip failed: got %v want %v", got, p)
			}
		}
	}
}

func TestTransformRoundTripVectorAndRay(t *testing.T) {
	tr := RotateAxis(Vector{0, 1, 0}.Normalize(), radians(45)).Mul(Translate(Vector{2, 0, 0}))
	inv := tr.Inverse()

	v := Vector{1, 0, 0}
	if got := inv.TransformVector(tr.TransformVector(v)); !almostEqualVector(got, v, 1e-3) {
		t.Errorf("vector round trip: got %v want %v", got, v)
	}

	r := NewRay(Point3{1, 2, 3}, Vector{0, 0, -1})
	r2 := inv.TransformRay(tr.TransformRay(r))
	if !almostEqualPoint(r2.Origin, r.Origin, 1e-3) || !almostEqualVector(r2.Direction, r.Direction, 1e-3) {
		t.Errorf("ray round trip: got %+v want %+v", r2, r)
	}
}

func TestTransformRoundTripBBox(t *testing.T) {
	tr := Translate(Vector{3, -1, 2}).Mul(Scale(Vector{2, 2, 2}))
	inv := tr.Inverse()
	b := BBox{Min: Point3{-1, -1, -1}, Max: Point3{1, 1, 1}}
	got := inv.TransformBBox(tr.TransformBBox(b))
	if !almostEqualPoint(got.Min, b.Min, 5e-2) || !almostEqualPoint(got.Max, b.Max, 5e-2) {
		t.Errorf("bbox round trip: got %+v want %+v", got, b)
	}
}

// TestNormalTransformUnitLength verifies spec 8.2 for an orthonormal transform.
func TestNormalTransformUnitLength(t *testing.T) {
	tr := RotateAxis(Vector{1, 2, 3}.Normalize(), radians(71))
	n := Normal3{0, 1, 0}
	got := tr.TransformNormal(n)
	if !almostEqualf(got.Length(), 1, 1e-3) {
		t.Errorf("normal transform length = %v, want 1", got.Length())
	}
}

// TestBBoxMonotone verifies spec 8.3.
func TestBBoxMonotone(t *testing.T) {
	a := BBox{Min: Point3{0, 0, 0}, Max: Point3{1, 1, 1}}
	b := BBox{Min: Point3{5, 5, 5}, Max: Point3{6, 7, 6}}
	u := a.Union(b)
	if u.SurfaceArea() < a.SurfaceArea() || u.SurfaceArea() < b.SurfaceArea() {
		t.Errorf("union surface area %v should be >= max(%v, %v)", u.SurfaceArea(), a.SurfaceArea(), b.SurfaceArea())
	}
}

func TestBBoxIntersectP(t *testing.T) {
	b := BBox{Min: Point3{-1, -1, -1}, Max: Point3{1, 1, 1}}
	r := NewRay(Point3{0, 0, -5}, Vector{0, 0, 1})
	inv, neg := InvDir(r.Direction)
	tEnter, tExit, hit := b.IntersectP(r, inv, neg)
	if !hit {
		t.Fatal("expected hit")
	}
	if !almostEqualf(tEnter, 4, 1e-3) || !almostEqualf(tExit, 6, 1e-3) {
		t.Errorf("tEnter=%v tExit=%v, want 4,6", tEnter, tExit)
	}

	r2 := NewRay(Point3{5, 5, -5}, Vector{0, 0, 1})
	inv2, neg2 := InvDir(r2.Direction)
	if _, _, hit := b.IntersectP(r2, inv2, neg2); hit {
		t.Errorf("expected miss")
	}
}

func TestQuaternionSlerpEndpoints(t *testing.T) {
	a := QuaternionIdentity()
	b := QuaternionFromAxisAngle(Vector{0, 1, 0}, radians(90))

	got0 := a.Slerp(b, 0)
	if !almostEqualf(got0.W, a.W, 1e-3) {
		t.Errorf("slerp(0) = %v, want %v", got0, a)
	}
	got1 := a.Slerp(b, 1)
	if !almostEqualf(got1.W, b.W, 1e-3) || !almostEqualf(got1.Y, b.Y, 1e-3) {
		t.Errorf("slerp(1) = %v, want %v", got1, b)
	}
}

func TestAnimatedTransformInterpolate(t *testing.T) {
	start := Translate(Vector{0, 0, 0})
	end := Translate(Vector{10, 0, 0})
	at := NewAnimatedTransform(start, end, 0, 1)

	mid := at.Interpolate(0.5)
	p := mid.TransformPoint(Point3{0, 0, 0})
	if !almostEqualPoint(p, Point3{5, 0, 0}, 1e-3) {
		t.Errorf("interpolated midpoint = %v, want (5,0,0)", p)
	}
}

func TestMat4InverseIdentityOnSingular(t *testing.T) {
	singular := Mat4Zero()
	inv := singular.Inverse()
	if inv != Mat4Identity() {
		t.Errorf("inverse of singular matrix should fall back to identity, got %v", inv)
	}
}

func TestCoordinateSystemOrthonormal(t *testing.T) {
	v1 := Vector{0.267, 0.534, 0.802}.Normalize()
	v2, v3 := CoordinateSystem(v1)
	if !almostEqualf(v1.Dot(v2), 0, 1e-3) || !almostEqualf(v1.Dot(v3), 0, 1e-3) || !almostEqualf(v2.Dot(v3), 0, 1e-3) {
		t.Errorf("CoordinateSystem not orthogonal: v1=%v v2=%v v3=%v", v1, v2, v3)
	}
	if !almostEqualf(v2.Length(), 1, 1e-3) || !almostEqualf(v3.Length(), 1, 1e-3) {
		t.Errorf("CoordinateSystem vectors not unit length")
	}
}

func radToDeg(r float32) float32 { return r * 180 / float32(math.Pi) }
