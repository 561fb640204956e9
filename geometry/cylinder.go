package geometry

import (
	"math"

	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/rmath"
)

// Cylinder is the infinite-axis quadric x^2+y^2=r^2, object-space Z-aligned
// and clipped to [ZMin,ZMax], swept through [0,PhiMax].
type Cylinder struct {
	base
	Radius     float32
	ZMin, ZMax float32
	PhiMax     float32
}

func NewCylinder(radius, zMin, zMax, phiMax float32) *Cylinder {
	if zMin > zMax {
		zMin, zMax = zMax, zMin
	}
	return &Cylinder{Radius: radius, ZMin: zMin, ZMax: zMax, PhiMax: clampf(phiMax, 0, 2*math.Pi)}
}

func (c *Cylinder) ObjectBound() rmath.BBox {
	return rmath.BBox{
		Min: rmath.Point3{X: -c.Radius, Y: -c.Radius, Z: c.ZMin},
		Max: rmath.Point3{X: c.Radius, Y: c.Radius, Z: c.ZMax},
	}
}

func (c *Cylinder) hitParam(ray rmath.Ray) (t, phi float32, ok bool) {
	ox, oy := ray.Origin.X, ray.Origin.Y
	dx, dy := ray.Direction.X, ray.Direction.Y

	a := dx*dx + dy*dy
	b := 2 * (dx*ox + dy*oy)
	cc := ox*ox + oy*oy - c.Radius*c.Radius

	t0, t1, found := solveQuadratic(a, b, cc)
	if !found {
		return 0, 0, false
	}
	if t0 > ray.TMax || t1 < ray.TMin {
		return 0, 0, false
	}
	tHit := t0
	if tHit < ray.TMin {
		tHit = t1
		if tHit > ray.TMax {
			return 0, 0, false
		}
	}
	for {
		p := ray.At(tHit)
		phi = float32(math.Atan2(float64(p.Y), float64(p.X)))
		if phi < 0 {
			phi += 2 * math.Pi
		}
		if p.Z < c.ZMin || p.Z > c.ZMax || phi > c.PhiMax {
			if tHit == t1 {
				return 0, 0, false
			}
			tHit = t1
			if tHit > ray.TMax {
				return 0, 0, false
			}
			continue
		}
		break
	}
	return tHit, phi, true
}

func (c *Cylinder) Intersect(ray rmath.Ray) (*core.DifferentialGeometry, float32, bool) {
	t, phi, ok := c.hitParam(ray)
	if !ok {
		return nil, 0, false
	}
	p := ray.At(t)
	u := phi / c.PhiMax
	v := (p.Z - c.ZMin) / (c.ZMax - c.ZMin)

	dpdu := rmath.Vector{X: -c.PhiMax * p.Y, Y: c.PhiMax * p.X, Z: 0}
	dpdv := rmath.Vector{X: 0, Y: 0, Z: c.ZMax - c.ZMin}

	n := rmath.Vector{X: p.X, Y: p.Y, Z: 0}.Normalize().ToNormal()
	dg := &core.DifferentialGeometry{
		Point:         p,
		GeomNormal:    c.faceForward(n),
		ShadingNormal: c.faceForward(n),
		DPDU:          dpdu,
		DPDV:          dpdv,
		U:             u,
		V:             v,
	}
	return dg, t, true
}

func (c *Cylinder) IntersectP(ray rmath.Ray) bool {
	_, _, ok := c.hitParam(ray)
	return ok
}

func (c *Cylinder) SurfaceArea() float32 {
	return (c.ZMax - c.ZMin) * c.Radius * c.PhiMax
}

func (c *Cylinder) Sample(u1, u2 float32) (rmath.Point3, rmath.Normal3) {
	z := c.ZMin + u1*(c.ZMax-c.ZMin)
	phi := u2 * c.PhiMax
	x := c.Radius * float32(math.Cos(float64(phi)))
	y := c.Radius * float32(math.Sin(float64(phi)))
	p := rmath.Point3{X: x, Y: y, Z: z}
	n := rmath.Vector{X: x, Y: y, Z: 0}.Normalize().ToNormal()
	return p, c.faceForward(n)
}

func (c *Cylinder) Pdf(rmath.Point3) float32 { return 1 / c.SurfaceArea() }
