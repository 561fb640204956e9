package light

import (
	"math"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/rmath"
)

// AmbientLight supplies constant radiance from every direction, with no
// geometry; SampleLi's visibility test runs out to twice WorldRadius along
// the sampled direction — supplemented from
// original_source/include/lights/ambient_light.h, which the distilled
// spec dropped in favor of area lights alone. Useful as a cheap
// fill/ambient-occlusion-style term during lookdev.
type AmbientLight struct {
	Radiance color.Color
	WorldRadius float32 // given to NewAmbientLight, bounds SampleEmission's origin
}

func NewAmbientLight(radiance color.Color, worldRadius float32) *AmbientLight {
	return &AmbientLight{Radiance: radiance, WorldRadius: worldRadius}
}

func (a *AmbientLight) SampleLi(at rmath.Point3, u1, u2 float32) (rmath.Vector, float32, color.Color, VisibilityTester) {
	wi := uniformSampleSphere(u1, u2)
	pdf := uniformSpherePdf()
	far := at.Add(wi.Mul(2 * a.WorldRadius))
	vt := NewVisibilityTester(at, far, 0)
	return wi, pdf, a.Radiance, vt
}

func (a *AmbientLight) PdfLi(rmath.Point3, rmath.Vector) float32 { return uniformSpherePdf() }

func (a *AmbientLight) SampleEmission(u1, u2, u3, u4 float32) (rmath.Ray, rmath.Normal3, float32, float32, color.Color) {
	dir := uniformSampleSphere(u1, u2).Negate()
	origin := rmath.PointOrigin.Sub(dir.Mul(a.WorldRadius))
	ray := rmath.NewRay(origin, dir)
	return ray, dir.Negate().ToNormal(), 1 / (math.Pi * a.WorldRadius * a.WorldRadius), uniformSpherePdf(), a.Radiance
}

func (a *AmbientLight) EmissionPdf(rmath.Ray, rmath.Normal3) (float32, float32) {
	return 1 / (math.Pi * a.WorldRadius * a.WorldRadius), uniformSpherePdf()
}

func (a *AmbientLight) Emit(rmath.Ray, rmath.Normal3) color.Color { return a.Radiance }

func (a *AmbientLight) Power() color.Color {
	return a.Radiance.Scale(4 * math.Pi * math.Pi * a.WorldRadius * a.WorldRadius)
}

func (a *AmbientLight) IsDelta() bool   { return false }
func (a *AmbientLight) NumSamples() int { return 1 }
