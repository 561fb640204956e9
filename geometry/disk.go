package geometry

import (
	"math"

	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/rmath"
)

// Disk lies in the object-space Z=Height plane, between InnerRadius and
// Radius, swept through [0, PhiMax].
type Disk struct {
	base
	Height                  float32
	Radius, InnerRadius     float32
	PhiMax                  float32
}

func NewDisk(height, radius, innerRadius, phiMax float32) *Disk {
	return &Disk{Height: height, Radius: radius, InnerRadius: innerRadius, PhiMax: clampf(phiMax, 0, 2*math.Pi)}
}

func (d *Disk) ObjectBound() rmath.BBox {
	return rmath.BBox{
		Min: rmath.Point3{X: -d.Radius, Y: -d.Radius, Z: d.Height},
		Max: rmath.Point3{X: d.Radius, Y: d.Radius, Z: d.Height},
	}
}

func (d *Disk) hitParam(ray rmath.Ray) (t, phi, rHit float32, ok bool) {
	if absf(ray.Direction.Z) < 1e-9 {
		return 0, 0, 0, false
	}
	t = (d.Height - ray.Origin.Z) / ray.Direction.Z
	if t < ray.TMin || t > ray.TMax {
		return 0, 0, 0, false
	}
	p := ray.At(t)
	dist2 := p.X*p.X + p.Y*p.Y
	if dist2 > d.Radius*d.Radius || dist2 < d.InnerRadius*d.InnerRadius {
		return 0, 0, 0, false
	}
	phi = float32(math.Atan2(float64(p.Y), float64(p.X)))
	if phi < 0 {
		phi += 2 * math.Pi
	}
	if phi > d.PhiMax {
		return 0, 0, 0, false
	}
	return t, phi, sqrtf(dist2), true
}

func (d *Disk) Intersect(ray rmath.Ray) (*core.DifferentialGeometry, float32, bool) {
	t, phi, rHit, ok := d.hitParam(ray)
	if !ok {
		return nil, 0, false
	}
	p := ray.At(t)
	u := phi / d.PhiMax
	oneMinusV := (rHit - d.InnerRadius) / (d.Radius - d.InnerRadius)
	v := 1 - oneMinusV

	dpdu := rmath.Vector{X: -d.PhiMax * p.Y, Y: d.PhiMax * p.X, Z: 0}
	dpdv := rmath.Vector{X: p.X, Y: p.Y, Z: 0}.Mul((d.InnerRadius - d.Radius) / rHit)

	n := rmath.Normal3{X: 0, Y: 0, Z: 1}
	dg := &core.DifferentialGeometry{
		Point:         p,
		GeomNormal:    d.faceForward(n),
		ShadingNormal: d.faceForward(n),
		DPDU:          dpdu,
		DPDV:          dpdv,
		U:             u,
		V:             v,
	}
	return dg, t, true
}

func (d *Disk) IntersectP(ray rmath.Ray) bool {
	_, _, _, ok := d.hitParam(ray)
	return ok
}

func (d *Disk) SurfaceArea() float32 {
	return d.PhiMax * 0.5 * (d.Radius*d.Radius - d.InnerRadius*d.InnerRadius)
}

func (d *Disk) Sample(u1, u2 float32) (rmath.Point3, rmath.Normal3) {
	x, y := concentricSampleDisk(u1, u2)
	p := rmath.Point3{X: x * d.Radius, Y: y * d.Radius, Z: d.Height}
	n := rmath.Normal3{X: 0, Y: 0, Z: 1}
	return p, d.faceForward(n)
}

func (d *Disk) Pdf(rmath.Point3) float32 { return 1 / d.SurfaceArea() }

func concentricSampleDisk(u1, u2 float32) (x, y float32) {
	sx := 2*u1 - 1
	sy := 2*u2 - 1
	if sx == 0 && sy == 0 {
		return 0, 0
	}
	var r, theta float32
	if absf(sx) > absf(sy) {
		r = sx
		theta = (math.Pi / 4) * (sy / sx)
	} else {
		r = sy
		theta = (math.Pi / 2) - (math.Pi/4)*(sx/sy)
	}
	return r * float32(math.Cos(float64(theta))), r * float32(math.Sin(float64(theta)))
}
