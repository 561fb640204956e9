// Package volume implements the participating-media model of spec 4.13:
// a Volume interface over absorption/scattering/emission coefficients and
// a set of phase functions, plus the homogeneous/exponential/grid density
// models and the emission/single-scattering volume integrators. Grounded
// on original_source/include/volume (Twinklebear/tray's VolumeRegion)
// and src/volume/*.cpp, translated from the original's virtual-method
// hierarchy into an interface plus an embeddable density-weighted base,
// matching the way material.BxDF composes in this repo.
package volume

import (
	"math"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/rmath"
)

const piF32 = 3.14159265358979323846

// Volume describes a region of participating media: its spatial extent,
// its per-point scattering/absorption/emission coefficients, and the
// phase function governing how light scatters within it.
type Volume interface {
	Bound() rmath.BBox
	Intersect(ray rmath.Ray) (tEnter, tExit float32, hit bool)
	Absorption(p rmath.Point3, v rmath.Vector) color.Color
	Scattering(p rmath.Point3, v rmath.Vector) color.Color
	Attenuation(p rmath.Point3, v rmath.Vector) color.Color
	Emission(p rmath.Point3, v rmath.Vector) color.Color
	// OpticalThickness integrates the attenuation coefficient along ray
	// from its TMin to TMax via ray-marching with the given step size and
	// a fractional offset in [0,1) applied to the first sample.
	OpticalThickness(ray rmath.Ray, step, offset float32) color.Color
	Phase(p rmath.Point3, wi, wo rmath.Vector) float32
}

func phaseIsotropic() float32 { return 1.0 / (4 * piF32) }

// PhaseRayleigh models scattering off particles much smaller than the
// wavelength of light (clear sky blue).
func PhaseRayleigh(wi, wo rmath.Vector) float32 {
	cosT := wi.Dot(wo)
	return 3.0 / (16 * piF32) * (1 + cosT*cosT)
}

// PhaseHenyeyGreenstein is the standard single-parameter phase function;
// g > 0 favors forward scattering, g < 0 backward, g = 0 isotropic.
func PhaseHenyeyGreenstein(wi, wo rmath.Vector, g float32) float32 {
	cosT := wi.Dot(wo)
	denom := float32(math.Pow(float64(1+g*g-2*g*cosT), 1.5))
	return 1.0 / (4 * piF32) * (1 - g*g) / denom
}

// PhaseSchlick is a cheaper rational approximation of Henyey-Greenstein.
func PhaseSchlick(wi, wo rmath.Vector, g float32) float32 {
	const alpha = 1.5
	k := alpha*g + (1-alpha)*g*g*g
	kCosT := k * wi.Dot(wo)
	return 1.0 / (4 * piF32) * (1 - k*k) / ((1 - kCosT) * (1 - kCosT))
}

// densityVolume factors out the common "constant coefficients scaled by
// a per-point scalar density" behavior shared by Exponential and Grid,
// mirroring original_source's VaryingDensityVolume base class.
type densityVolume struct {
	SigA, SigS, Emit color.Color
	PhaseAsymmetry   float32
	density          func(p rmath.Point3) float32
}

func (d densityVolume) absorption(p rmath.Point3) color.Color {
	return d.SigA.Scale(d.density(p))
}

func (d densityVolume) scattering(p rmath.Point3) color.Color {
	return d.SigS.Scale(d.density(p))
}

func (d densityVolume) attenuation(p rmath.Point3) color.Color {
	return d.SigA.Add(d.SigS).Scale(d.density(p))
}

func (d densityVolume) emission(p rmath.Point3) color.Color {
	return d.Emit.Scale(d.density(p))
}

func (d densityVolume) phase(wi, wo rmath.Vector) float32 {
	return PhaseHenyeyGreenstein(wi, wo, d.PhaseAsymmetry)
}

// opticalThickness ray-marches attenuation along ray's valid [TMin,TMax]
// intersected with intersectFn's reported range, per spec 4.13.
func opticalThickness(ray rmath.Ray, step, offset float32, intersectFn func(rmath.Ray) (float32, float32, bool), attenuationFn func(rmath.Point3, rmath.Vector) color.Color) color.Color {
	length := ray.Direction.Length()
	if length == 0 {
		return color.Black
	}
	r := rmath.Ray{
		Origin:    ray.Origin,
		Direction: ray.Direction.Div(length),
		TMin:      ray.TMin * length,
		TMax:      ray.TMax * length,
	}
	t0, t1, ok := intersectFn(r)
	if !ok {
		return color.Black
	}
	tau := color.Black
	for t := t0 + offset*step; t < t1; t += step {
		p := r.At(t)
		tau = tau.Add(attenuationFn(p, r.Direction.Negate()))
	}
	return tau.Scale(step)
}
