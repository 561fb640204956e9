package volume

import (
	"math"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/rmath"
)

// Exponential models density falling off as a*e^(-b*h), h being the
// distance along Up from the region's minimum corner — smoke/fog
// settling near the ground, grounded on
// original_source/src/volume/exponential_volume.cpp.
type Exponential struct {
	densityVolume
	Region rmath.BBox
	A, B   float32
	Up     rmath.Vector
}

func NewExponential(sigA, sigS, emit color.Color, g float32, region rmath.BBox, a, b float32, up rmath.Vector) *Exponential {
	e := &Exponential{Region: region, A: a, B: b, Up: up}
	e.densityVolume = densityVolume{SigA: sigA, SigS: sigS, Emit: emit, PhaseAsymmetry: g, density: e.densityAt}
	return e
}

func (e *Exponential) inside(p rmath.Point3) bool {
	return p.X >= e.Region.Min.X && p.X <= e.Region.Max.X &&
		p.Y >= e.Region.Min.Y && p.Y <= e.Region.Max.Y &&
		p.Z >= e.Region.Min.Z && p.Z <= e.Region.Max.Z
}

func (e *Exponential) densityAt(p rmath.Point3) float32 {
	if !e.inside(p) {
		return 0
	}
	h := e.Up.Dot(p.SubPoint(e.Region.Min))
	return e.A * float32(math.Exp(float64(-e.B*h)))
}

func (e *Exponential) Bound() rmath.BBox { return e.Region }

func (e *Exponential) Intersect(ray rmath.Ray) (float32, float32, bool) {
	inv, neg := rmath.InvDir(ray.Direction)
	return e.Region.IntersectP(ray, inv, neg)
}

func (e *Exponential) Absorption(p rmath.Point3, v rmath.Vector) color.Color { return e.absorption(p) }
func (e *Exponential) Scattering(p rmath.Point3, v rmath.Vector) color.Color { return e.scattering(p) }
func (e *Exponential) Attenuation(p rmath.Point3, v rmath.Vector) color.Color {
	return e.attenuation(p)
}
func (e *Exponential) Emission(p rmath.Point3, v rmath.Vector) color.Color { return e.emission(p) }
func (e *Exponential) Phase(p rmath.Point3, wi, wo rmath.Vector) float32   { return e.phase(wi, wo) }

func (e *Exponential) OpticalThickness(ray rmath.Ray, step, offset float32) color.Color {
	return opticalThickness(ray, step, offset, e.Intersect, e.Attenuation)
}
