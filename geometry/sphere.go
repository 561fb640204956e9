package geometry

import (
	"math"

	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/rmath"
)

// Sphere is a partial sphere of given radius, clipped to [zMin,zMax] and
// swept through [0, phiMax] around the object-space Z axis, matching the
// quadric parameterization spec 4.4 calls for.
type Sphere struct {
	base
	Radius           float32
	ZMin, ZMax       float32
	ThetaMin, ThetaMax float32
	PhiMax           float32
}

func NewSphere(radius float32) *Sphere {
	return NewPartialSphere(radius, -radius, radius, 2*math.Pi)
}

func NewPartialSphere(radius, zMin, zMax float32, phiMax float32) *Sphere {
	zMin = clampf(zMin, -radius, radius)
	zMax = clampf(zMax, -radius, radius)
	return &Sphere{
		Radius:    radius,
		ZMin:      zMin,
		ZMax:      zMax,
		ThetaMin:  float32(math.Acos(float64(clampf(zMin/radius, -1, 1)))),
		ThetaMax:  float32(math.Acos(float64(clampf(zMax/radius, -1, 1)))),
		PhiMax:    clampf(phiMax, 0, 2*math.Pi),
	}
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

func (s *Sphere) ObjectBound() rmath.BBox {
	return rmath.BBox{
		Min: rmath.Point3{X: -s.Radius, Y: -s.Radius, Z: s.ZMin},
		Max: rmath.Point3{X: s.Radius, Y: s.Radius, Z: s.ZMax},
	}
}

// solveQuadratic is the quadric root solver shared by Sphere/Cylinder/Cone,
// written out long-form (rather than via math.Sqrt of a pre-clamped
// discriminant helper) so each quadric can inline its own coefficients.
func solveQuadratic(a, b, c float32) (t0, t1 float32, ok bool) {
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, false
	}
	sq := sqrtf(disc)
	var q float32
	if b < 0 {
		q = -0.5 * (b - sq)
	} else {
		q = -0.5 * (b + sq)
	}
	t0, t1 = q/a, c/q
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}

func (s *Sphere) hitParam(ray rmath.Ray) (t float32, phi float32, ok bool) {
	ox, oy, oz := ray.Origin.X, ray.Origin.Y, ray.Origin.Z
	dx, dy, dz := ray.Direction.X, ray.Direction.Y, ray.Direction.Z

	a := dx*dx + dy*dy + dz*dz
	b := 2 * (dx*ox + dy*oy + dz*oz)
	c := ox*ox + oy*oy + oz*oz - s.Radius*s.Radius

	t0, t1, found := solveQuadratic(a, b, c)
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
		if p.X == 0 && p.Y == 0 {
			p.X = 1e-5 * s.Radius
		}
		phi = float32(math.Atan2(float64(p.Y), float64(p.X)))
		if phi < 0 {
			phi += 2 * math.Pi
		}
		if (s.ZMin > -s.Radius && p.Z < s.ZMin) || (s.ZMax < s.Radius && p.Z > s.ZMax) || phi > s.PhiMax {
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

func (s *Sphere) Intersect(ray rmath.Ray) (*core.DifferentialGeometry, float32, bool) {
	tHit, phi, ok := s.hitParam(ray)
	if !ok {
		return nil, 0, false
	}
	p := ray.At(tHit)
	theta := float32(math.Acos(float64(clampf(p.Z/s.Radius, -1, 1))))

	u := phi / s.PhiMax
	v := (theta - s.ThetaMin) / (s.ThetaMax - s.ThetaMin)

	zRadius := sqrtf(p.X*p.X + p.Y*p.Y)
	invZRadius := float32(0)
	if zRadius > 0 {
		invZRadius = 1 / zRadius
	}
	cosPhi, sinPhi := p.X*invZRadius, p.Y*invZRadius
	dpdu := rmath.Vector{X: -s.PhiMax * p.Y, Y: s.PhiMax * p.X, Z: 0}
	dthetaScale := s.ThetaMax - s.ThetaMin
	dpdv := rmath.Vector{
		X: p.Z * cosPhi,
		Y: p.Z * sinPhi,
		Z: -s.Radius * float32(math.Sin(float64(theta))),
	}.Mul(dthetaScale)

	n := p.ToVector().Normalize().ToNormal()

	dg := &core.DifferentialGeometry{
		Point:         p,
		GeomNormal:    s.faceForward(n),
		ShadingNormal: s.faceForward(n),
		DPDU:          dpdu,
		DPDV:          dpdv,
		U:             u,
		V:             v,
	}
	return dg, tHit, true
}

func (s *Sphere) IntersectP(ray rmath.Ray) bool {
	_, _, ok := s.hitParam(ray)
	return ok
}

func (s *Sphere) SurfaceArea() float32 {
	return s.PhiMax * s.Radius * (s.ZMax - s.ZMin)
}

func (s *Sphere) Sample(u1, u2 float32) (rmath.Point3, rmath.Normal3) {
	p := rmath.PointOrigin.Add(uniformSampleSphere(u1, u2).Mul(s.Radius))
	n := p.ToVector().Normalize().ToNormal()
	return p, s.faceForward(n)
}

func (s *Sphere) Pdf(rmath.Point3) float32 { return 1 / s.SurfaceArea() }

func (s *Sphere) CanSampleFromPoint() bool { return true }

// SampleFromPoint implements uniform cone sampling toward the sphere as
// seen from an external point p, collapsing to uniform area sampling when
// p lies inside the sphere. This is the solid-angle sampling strategy
// spec 4.10 asks area lights to use when the underlying shape supports it.
func (s *Sphere) SampleFromPoint(p rmath.Point3, u1, u2 float32) (rmath.Point3, rmath.Normal3) {
	centerToP := p.SubPoint(rmath.PointOrigin)
	distSqr := centerToP.LengthSqr()
	if distSqr <= s.Radius*s.Radius*1.00001 {
		return s.Sample(u1, u2)
	}

	wc := centerToP.Negate().Normalize()
	wcX, wcY := rmath.CoordinateSystem(wc)

	sinThetaMax2 := s.Radius * s.Radius / distSqr
	cosThetaMax := sqrtf(maxf32(0, 1-sinThetaMax2))

	cosTheta := (1 - u1) + u1*cosThetaMax
	sinTheta := sqrtf(maxf32(0, 1-cosTheta*cosTheta))
	phi := u2 * 2 * math.Pi

	dc := sqrtf(distSqr)
	ds := dc*cosTheta - sqrtf(maxf32(0, s.Radius*s.Radius-dc*dc*sinTheta*sinTheta))

	cosAlpha := (dc*dc + s.Radius*s.Radius - ds*ds) / (2 * dc * s.Radius)
	sinAlpha := sqrtf(maxf32(0, 1-cosAlpha*cosAlpha))

	localDir := sphericalDirection(sinAlpha, cosAlpha, float32(phi), wcX.Negate(), wcY.Negate(), wc.Negate())
	nHit := localDir
	pHit := rmath.PointOrigin.Add(nHit.Mul(s.Radius))
	return pHit, nHit.Normalize().ToNormal()
}

func (s *Sphere) PdfFromPoint(p rmath.Point3, wi rmath.Vector) float32 {
	distSqr := p.SubPoint(rmath.PointOrigin).LengthSqr()
	if distSqr <= s.Radius*s.Radius*1.00001 {
		// Inside the sphere: fall back to the solid-angle conversion of
		// the uniform area pdf.
		ray := rmath.NewRay(p, wi)
		tHit, _, ok := s.hitParam(ray)
		if !ok {
			return 0
		}
		hitP := ray.At(tHit)
		return pdfFromAreaSample(p, hitP, hitP.ToVector().Normalize().ToNormal(), wi, s.SurfaceArea())
	}
	sinThetaMax2 := s.Radius * s.Radius / distSqr
	cosThetaMax := sqrtf(maxf32(0, 1-sinThetaMax2))
	return uniformConePdf(cosThetaMax)
}

func uniformSampleSphere(u1, u2 float32) rmath.Vector {
	z := 1 - 2*u1
	r := sqrtf(maxf32(0, 1-z*z))
	phi := 2 * math.Pi * u2
	return rmath.Vector{X: r * float32(math.Cos(float64(phi))), Y: r * float32(math.Sin(float64(phi))), Z: z}
}

func sphericalDirection(sinTheta, cosTheta, phi float32, x, y, z rmath.Vector) rmath.Vector {
	a := x.Mul(sinTheta * float32(math.Cos(float64(phi))))
	b := y.Mul(sinTheta * float32(math.Sin(float64(phi))))
	c := z.Mul(cosTheta)
	return a.Add(b).Add(c)
}

func uniformConePdf(cosThetaMax float32) float32 {
	return 1 / (2 * math.Pi * (1 - cosThetaMax))
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
