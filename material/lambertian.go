package material

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/rmath"
)

const piF32 = 3.14159265358979323846

// Lambertian is the perfectly diffuse BRDF f = R/pi, matched against
// original_source's Lambertian bxdf (constant reflectance, constant
// distribution value over the whole hemisphere).
type Lambertian struct {
	baseBxDF
	R color.Color
}

func NewLambertian(r color.Color) *Lambertian {
	return &Lambertian{baseBxDF: baseBxDF{bxType: BxDFReflection | BxDFDiffuse}, R: r}
}

func (l *Lambertian) F(wo, wi rmath.Vector) color.Color {
	if !SameHemisphere(wo, wi) {
		return color.Black
	}
	return l.R.Scale(1 / piF32)
}

func (l *Lambertian) SampleF(wo rmath.Vector, u1, u2 float32) (rmath.Vector, float32, color.Color) {
	return defaultSampleF(l, wo, u1, u2)
}

func (l *Lambertian) Pdf(wo, wi rmath.Vector) float32 { return defaultPdf(wo, wi) }

func (l *Lambertian) RhoHD(wo rmath.Vector, samples [][2]float32) color.Color { return l.R }
func (l *Lambertian) RhoHH(s1, s2 [][2]float32) color.Color                  { return l.R }
