package material

import (
	"math"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/rmath"
)

// MicrofacetDistribution supplies the normal distribution function and
// matching importance-sampling strategy for TorranceSparrow.
type MicrofacetDistribution interface {
	D(wh rmath.Vector) float32
	SampleWh(u1, u2 float32) rmath.Vector
	Pdf(wh rmath.Vector) float32
}

// Blinn is the classic Blinn-Phong microfacet distribution, D(wh) ~
// cos(theta_h)^exponent, matched to original_source's Blinn distribution.
type Blinn struct {
	Exponent float32
}

func (b Blinn) D(wh rmath.Vector) float32 {
	costhetah := AbsCosTheta(wh)
	return (b.Exponent + 2) / (2 * piF32) * powf(costhetah, b.Exponent)
}

func (b Blinn) SampleWh(u1, u2 float32) rmath.Vector {
	costheta := powf(u1, 1/(b.Exponent+1))
	sintheta := sqrtf(maxf(0, 1-costheta*costheta))
	phi := u2 * 2 * piF32
	return rmath.Vector{
		X: sintheta * float32(math.Cos(float64(phi))),
		Y: sintheta * float32(math.Sin(float64(phi))),
		Z: costheta,
	}
}

func (b Blinn) Pdf(wh rmath.Vector) float32 {
	return (b.Exponent + 1) * powf(AbsCosTheta(wh), b.Exponent) / (2 * piF32)
}

func powf(x, e float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Pow(float64(x), float64(e)))
}

// TorranceSparrow is the classic glossy microfacet BRDF: D*G*F/(4 cosI
// cosO), following original_source's TorranceSparrow bxdf with a pluggable
// MicrofacetDistribution and Fresnel term.
type TorranceSparrow struct {
	baseBxDF
	R            color.Color
	Distribution MicrofacetDistribution
	Fresnel      Fresnel
}

func NewTorranceSparrow(r color.Color, d MicrofacetDistribution, fr Fresnel) *TorranceSparrow {
	return &TorranceSparrow{baseBxDF: baseBxDF{bxType: BxDFReflection | BxDFGlossy}, R: r, Distribution: d, Fresnel: fr}
}

func (t *TorranceSparrow) geometricTerm(wo, wi, wh rmath.Vector) float32 {
	nDotWh := AbsCosTheta(wh)
	nDotWo := AbsCosTheta(wo)
	nDotWi := AbsCosTheta(wi)
	woDotWh := absf(wo.Dot(wh))

	g1 := 2 * nDotWh * nDotWo / woDotWh
	g2 := 2 * nDotWh * nDotWi / woDotWh
	return minf(1, minf(g1, g2))
}

func (t *TorranceSparrow) F(wo, wi rmath.Vector) color.Color {
	cosThetaO := AbsCosTheta(wo)
	cosThetaI := AbsCosTheta(wi)
	if cosThetaO == 0 || cosThetaI == 0 {
		return color.Black
	}
	wh := wi.Add(wo)
	if wh.LengthSqr() == 0 {
		return color.Black
	}
	wh = wh.Normalize()
	cosThetaH := wi.Dot(wh)

	d := t.Distribution.D(wh)
	g := t.geometricTerm(wo, wi, wh)
	f := t.Fresnel.Evaluate(cosThetaH)

	return t.R.Mul(f).Scale(d * g / (4 * cosThetaI * cosThetaO))
}

func (t *TorranceSparrow) SampleF(wo rmath.Vector, u1, u2 float32) (rmath.Vector, float32, color.Color) {
	wh := t.Distribution.SampleWh(u1, u2)
	wi := wh.Mul(2 * wo.Dot(wh)).Sub(wo)
	if !SameHemisphere(wo, wi) {
		return wi, 0, color.Black
	}
	pdf := t.Distribution.Pdf(wh) / (4 * wo.Dot(wh))
	return wi, pdf, t.F(wo, wi)
}

func (t *TorranceSparrow) Pdf(wo, wi rmath.Vector) float32 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	wh := wo.Add(wi).Normalize()
	return t.Distribution.Pdf(wh) / (4 * wo.Dot(wh))
}

func (t *TorranceSparrow) RhoHD(wo rmath.Vector, samples [][2]float32) color.Color {
	return defaultRhoHD(t, wo, samples)
}
func (t *TorranceSparrow) RhoHH(s1, s2 [][2]float32) color.Color { return defaultRhoHH(t, s1, s2) }
