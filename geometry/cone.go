package geometry

import (
	"math"

	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/rmath"
)

// Cone has its apex at object-space Z=Height and base radius Radius at
// Z=0, swept through [0,PhiMax].
type Cone struct {
	base
	Height, Radius float32
	PhiMax         float32
}

func NewCone(height, radius, phiMax float32) *Cone {
	return &Cone{Height: height, Radius: radius, PhiMax: clampf(phiMax, 0, 2*math.Pi)}
}

func (c *Cone) ObjectBound() rmath.BBox {
	return rmath.BBox{
		Min: rmath.Point3{X: -c.Radius, Y: -c.Radius, Z: 0},
		Max: rmath.Point3{X: c.Radius, Y: c.Radius, Z: c.Height},
	}
}

func (c *Cone) hitParam(ray rmath.Ray) (t, phi float32, ok bool) {
	ox, oy, oz := ray.Origin.X, ray.Origin.Y, ray.Origin.Z
	dx, dy, dz := ray.Direction.X, ray.Direction.Y, ray.Direction.Z

	k := (c.Radius / c.Height) * (c.Radius / c.Height)
	a := dx*dx + dy*dy - k*dz*dz
	b := 2 * (dx*ox + dy*oy - k*dz*(oz-c.Height))
	cc := ox*ox + oy*oy - k*(oz-c.Height)*(oz-c.Height)

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
		if p.Z < 0 || p.Z > c.Height || phi > c.PhiMax {
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

func (c *Cone) Intersect(ray rmath.Ray) (*core.DifferentialGeometry, float32, bool) {
	t, phi, ok := c.hitParam(ray)
	if !ok {
		return nil, 0, false
	}
	p := ray.At(t)
	u := phi / c.PhiMax
	v := p.Z / c.Height

	dpdu := rmath.Vector{X: -c.PhiMax * p.Y, Y: c.PhiMax * p.X, Z: 0}
	dpdv := rmath.Vector{X: -p.X / (1 - v), Y: -p.Y / (1 - v), Z: c.Height}

	n := dpdu.Cross(dpdv).Normalize().ToNormal()
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

func (c *Cone) IntersectP(ray rmath.Ray) bool {
	_, _, ok := c.hitParam(ray)
	return ok
}

func (c *Cone) SurfaceArea() float32 {
	slant := sqrtf(c.Radius*c.Radius + c.Height*c.Height)
	return c.Radius * slant * c.PhiMax / 2
}

func (c *Cone) Sample(u1, u2 float32) (rmath.Point3, rmath.Normal3) {
	v := u1
	z := v * c.Height
	r := c.Radius * (1 - v)
	phi := u2 * c.PhiMax
	x := r * float32(math.Cos(float64(phi)))
	y := r * float32(math.Sin(float64(phi)))
	p := rmath.Point3{X: x, Y: y, Z: z}

	dpdu := rmath.Vector{X: -c.PhiMax * y, Y: c.PhiMax * x, Z: 0}
	dpdv := rmath.Vector{X: -x / (1 - v + 1e-6), Y: -y / (1 - v + 1e-6), Z: c.Height}
	n := dpdu.Cross(dpdv).Normalize().ToNormal()
	return p, c.faceForward(n)
}

func (c *Cone) Pdf(rmath.Point3) float32 { return 1 / c.SurfaceArea() }
