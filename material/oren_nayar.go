package material

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/rmath"
)

// OrenNayar models rough diffuse surfaces (clay, cloth) via the
// qualitative microfacet approximation from the original Oren-Nayar
// paper, following original_source's OrenNayar bxdf.
type OrenNayar struct {
	baseBxDF
	R    color.Color
	A, B float32
}

func NewOrenNayar(r color.Color, sigmaDegrees float32) *OrenNayar {
	sigma := sigmaDegrees * piF32 / 180
	sigma2 := sigma * sigma
	return &OrenNayar{
		baseBxDF: baseBxDF{bxType: BxDFReflection | BxDFDiffuse},
		R:        r,
		A:        1 - (sigma2 / (2 * (sigma2 + 0.33))),
		B:        0.45 * sigma2 / (sigma2 + 0.09),
	}
}

func (o *OrenNayar) F(wo, wi rmath.Vector) color.Color {
	if !SameHemisphere(wo, wi) {
		return color.Black
	}
	sinThetaI := SinTheta(wi)
	sinThetaO := SinTheta(wo)

	maxCos := float32(0)
	if sinThetaI > 1e-4 && sinThetaO > 1e-4 {
		sinPhiI, cosPhiI := SinPhi(wi), CosPhi(wi)
		sinPhiO, cosPhiO := SinPhi(wo), CosPhi(wo)
		dCos := cosPhiI*cosPhiO + sinPhiI*sinPhiO
		maxCos = maxf(0, dCos)
	}

	var sinAlpha, tanBeta float32
	if AbsCosTheta(wi) > AbsCosTheta(wo) {
		sinAlpha = sinThetaO
		tanBeta = sinThetaI / maxf(AbsCosTheta(wi), 1e-7)
	} else {
		sinAlpha = sinThetaI
		tanBeta = sinThetaO / maxf(AbsCosTheta(wo), 1e-7)
	}

	return o.R.Scale((o.A + o.B*maxCos*sinAlpha*tanBeta) / piF32)
}

func (o *OrenNayar) SampleF(wo rmath.Vector, u1, u2 float32) (rmath.Vector, float32, color.Color) {
	return defaultSampleF(o, wo, u1, u2)
}

func (o *OrenNayar) Pdf(wo, wi rmath.Vector) float32 { return defaultPdf(wo, wi) }

func (o *OrenNayar) RhoHD(wo rmath.Vector, samples [][2]float32) color.Color {
	return defaultRhoHD(o, wo, samples)
}
func (o *OrenNayar) RhoHH(s1, s2 [][2]float32) color.Color { return defaultRhoHH(o, s1, s2) }
