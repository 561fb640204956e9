package geometry

import (
	"testing"

	"github.com/mrigankad/tracer/rmath"
)

func TestSphereIntersectCenterRay(t *testing.T) {
	s := NewSphere(2)
	ray := rmath.NewRay(rmath.Point3{Z: -10}, rmath.Vector{Z: 1})
	dg, tHit, ok := s.Intersect(ray)
	if !ok {
		t.Fatal("expected hit")
	}
	if tHit < 7.9 || tHit > 8.1 {
		t.Errorf("tHit = %v, want ~8", tHit)
	}
	if dg.Point.Z > -1.9 || dg.Point.Z < -2.1 {
		t.Errorf("hit point z = %v, want ~-2", dg.Point.Z)
	}
}

func TestSphereMiss(t *testing.T) {
	s := NewSphere(1)
	ray := rmath.NewRay(rmath.Point3{X: 5, Z: -10}, rmath.Vector{Z: 1})
	if _, _, ok := s.Intersect(ray); ok {
		t.Errorf("expected miss")
	}
}

func TestSphereSurfaceAreaFullSphere(t *testing.T) {
	s := NewSphere(3)
	got := s.SurfaceArea()
	want := float32(4 * 3.14159265 * 9)
	if got < want-0.1 || got > want+0.1 {
		t.Errorf("surface area = %v, want ~%v", got, want)
	}
}

func TestDiskIntersect(t *testing.T) {
	d := NewDisk(0, 1, 0, 2*3.14159265)
	ray := rmath.NewRay(rmath.Point3{Z: -5}, rmath.Vector{Z: 1})
	dg, tHit, ok := d.Intersect(ray)
	if !ok {
		t.Fatal("expected hit")
	}
	if tHit < 4.9 || tHit > 5.1 {
		t.Errorf("tHit = %v, want 5", tHit)
	}
	if dg.GeomNormal.Z < 0.99 {
		t.Errorf("normal = %v, want +Z", dg.GeomNormal)
	}
}

func TestTriangleIntersectBarycentric(t *testing.T) {
	mesh := &TriMesh{
		Positions: []rmath.Point3{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 0, Y: 1}},
		Indices:   []int{0, 1, 2},
	}
	tris := mesh.Triangles()
	ray := rmath.NewRay(rmath.Point3{Z: -5}, rmath.Vector{Z: 1})
	dg, _, ok := tris[0].Intersect(ray)
	if !ok {
		t.Fatal("expected hit through triangle centroid-ish region")
	}
	if dg.GeomNormal.Z < 0.99 && dg.GeomNormal.Z > -0.99 {
		t.Errorf("expected normal along +-Z, got %v", dg.GeomNormal)
	}
}

func TestTriangleMiss(t *testing.T) {
	mesh := &TriMesh{
		Positions: []rmath.Point3{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 0, Y: 1}},
		Indices:   []int{0, 1, 2},
	}
	tris := mesh.Triangles()
	ray := rmath.NewRay(rmath.Point3{X: 10, Z: -5}, rmath.Vector{Z: 1})
	if _, _, ok := tris[0].Intersect(ray); ok {
		t.Errorf("expected miss outside triangle")
	}
}

func TestSphereSampleFromPointOutside(t *testing.T) {
	s := NewSphere(1)
	p := rmath.Point3{Z: -5}
	pt, n := s.SampleFromPoint(p, 0.3, 0.7)
	if pt.Distance(rmath.PointOrigin) > 1.01 {
		t.Errorf("sampled point should lie on unit sphere, got distance %v", pt.Distance(rmath.PointOrigin))
	}
	if n.Length() < 0.99 || n.Length() > 1.01 {
		t.Errorf("normal should be unit length, got %v", n.Length())
	}
	pdf := s.PdfFromPoint(p, pt.SubPoint(p).Normalize())
	if pdf <= 0 {
		t.Errorf("pdf should be positive, got %v", pdf)
	}
}

func TestCylinderIntersect(t *testing.T) {
	c := NewCylinder(1, -5, 5, 2*3.14159265)
	ray := rmath.NewRay(rmath.Point3{X: -10}, rmath.Vector{X: 1})
	_, tHit, ok := c.Intersect(ray)
	if !ok {
		t.Fatal("expected hit")
	}
	if tHit < 8.9 || tHit > 9.1 {
		t.Errorf("tHit = %v, want 9", tHit)
	}
}
