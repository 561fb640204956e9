// Package material implements the BSDF/BxDF stack from spec 4.9: a
// tagged-flag dispatch over individual scattering terms (Lambertian,
// Oren-Nayar, specular reflection/transmission, Torrance-Sparrow), plus
// the BSDF container that composites up to eight BxDFs per shading point
// and corrects the geometric/shading-normal energy leak. Grounded on
// original_source/include/material/bxdf.h and bsdf.h for the contract
// shape; the teacher engine only has a PBR-lite Material struct
// (mrigankad-gorenderengine/materials/material.go) with no BSDF
// evaluation, so the actual scattering math follows the original.
package material

import (
	"math"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/rmath"
)

// BxDFType tags a scattering term along two independent axes (spec 4.9):
// reflection vs transmission, and the roughness class diffuse/glossy/
// specular. BSDF evaluation and sampling both filter by these flags.
type BxDFType int

const (
	BxDFReflection BxDFType = 1 << iota
	BxDFTransmission
	BxDFDiffuse
	BxDFGlossy
	BxDFSpecular
)

const BxDFAll = BxDFReflection | BxDFTransmission | BxDFDiffuse | BxDFGlossy | BxDFSpecular

// BxDF is evaluated entirely in the local shading frame, where the
// shading normal is +Z; the BSDF that owns a set of BxDFs is
// responsible for transforming to and from world space.
type BxDF interface {
	Type() BxDFType
	MatchesFlags(flags BxDFType) bool

	// F evaluates the distribution function for a non-specular pair of
	// directions; specular BxDFs return black here (they're delta
	// distributions, only reachable via SampleF).
	F(wo, wi rmath.Vector) color.Color

	// SampleF draws wi given wo, returning its pdf and the BxDF value.
	// Delta-distribution BxDFs set pdf=1 and only ever return a single
	// direction.
	SampleF(wo rmath.Vector, u1, u2 float32) (wi rmath.Vector, pdf float32, f color.Color)

	Pdf(wo, wi rmath.Vector) float32

	// RhoHD is the hemispherical-directional reflectance for a fixed
	// outgoing direction, estimated by Monte Carlo integration over the
	// supplied stratified samples.
	RhoHD(wo rmath.Vector, samples [][2]float32) color.Color
	// RhoHH is the hemispherical-hemispherical reflectance.
	RhoHH(samples1, samples2 [][2]float32) color.Color
}

// baseBxDF supplies the flag bookkeeping (Type and MatchesFlags) shared by
// every BxDF type embedding it; the default cosine-weighted sampling, pdf
// and rho implementations are the separate default* helper functions.
type baseBxDF struct {
	bxType BxDFType
}

func (b baseBxDF) Type() BxDFType { return b.bxType }

func (b baseBxDF) MatchesFlags(flags BxDFType) bool {
	return b.bxType&flags == b.bxType
}

// CosTheta et al. operate on a vector already expressed in the local
// shading frame, where Z is the surface normal.
func CosTheta(w rmath.Vector) float32    { return w.Z }
func AbsCosTheta(w rmath.Vector) float32 { return absf(w.Z) }
func SinTheta2(w rmath.Vector) float32 {
	return maxf(0, 1-CosTheta(w)*CosTheta(w))
}
func SinTheta(w rmath.Vector) float32 { return sqrtf(SinTheta2(w)) }

func CosPhi(w rmath.Vector) float32 {
	sinTheta := SinTheta(w)
	if sinTheta == 0 {
		return 1
	}
	return clampf(w.X/sinTheta, -1, 1)
}

func SinPhi(w rmath.Vector) float32 {
	sinTheta := SinTheta(w)
	if sinTheta == 0 {
		return 0
	}
	return clampf(w.Y/sinTheta, -1, 1)
}

// SameHemisphere reports whether two local-frame vectors lie on the same
// side of the shading normal.
func SameHemisphere(a, b rmath.Vector) bool { return a.Z*b.Z > 0 }

// cosineSampleHemisphere draws a direction proportional to cos(theta)
// using Malley's method (concentric disk sample projected up).
func cosineSampleHemisphere(u1, u2 float32) rmath.Vector {
	x, y := concentricSampleDisk(u1, u2)
	z := sqrtf(maxf(0, 1-x*x-y*y))
	return rmath.Vector{X: x, Y: y, Z: z}
}

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

// defaultSampleF implements the cosine-weighted default used by every
// non-specular BxDF: flip to wo's hemisphere so reflection lobes never
// sample through the surface.
func defaultSampleF(f BxDF, wo rmath.Vector, u1, u2 float32) (wi rmath.Vector, pdf float32, val color.Color) {
	wi = cosineSampleHemisphere(u1, u2)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	pdf = defaultPdf(wo, wi)
	val = f.F(wo, wi)
	return
}

func defaultPdf(wo, wi rmath.Vector) float32 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	return AbsCosTheta(wi) / math.Pi
}

func defaultRhoHD(f BxDF, wo rmath.Vector, samples [][2]float32) color.Color {
	r := color.Black
	for _, s := range samples {
		wi, pdf, val := f.SampleF(wo, s[0], s[1])
		if pdf > 0 {
			r = r.Add(val.Scale(AbsCosTheta(wi) / pdf))
		}
	}
	return r.Scale(1 / float32(len(samples)))
}

func defaultRhoHH(f BxDF, samples1, samples2 [][2]float32) color.Color {
	r := color.Black
	n := len(samples1)
	for i := 0; i < n; i++ {
		wo := uniformSampleHemisphere(samples1[i][0], samples1[i][1])
		pdfo := uniformHemispherePdf()
		wi, pdfi, val := f.SampleF(wo, samples2[i][0], samples2[i][1])
		if pdfi > 0 {
			r = r.Add(val.Scale(AbsCosTheta(wi) * AbsCosTheta(wo) / (pdfo * pdfi)))
		}
	}
	return r.Scale(1 / (float32(n) * math.Pi))
}

func uniformSampleHemisphere(u1, u2 float32) rmath.Vector {
	z := u1
	r := sqrtf(maxf(0, 1-z*z))
	phi := 2 * math.Pi * u2
	return rmath.Vector{X: r * float32(math.Cos(float64(phi))), Y: r * float32(math.Sin(float64(phi))), Z: z}
}

func uniformHemispherePdf() float32 { return 1 / (2 * math.Pi) }

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
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

func sqrtf(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}
