package light

import (
	"math"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/rmath"
)

// PointLight is an idealized delta light with no area, following
// original_source's PointLight (a color plus a world-space position).
type PointLight struct {
	Intensity color.Color
	Position  rmath.Point3
}

func NewPointLight(intensity color.Color, pos rmath.Point3) *PointLight {
	return &PointLight{Intensity: intensity, Position: pos}
}

func (p *PointLight) SampleLi(at rmath.Point3, u1, u2 float32) (rmath.Vector, float32, color.Color, VisibilityTester) {
	d := p.Position.SubPoint(at)
	distSqr := d.LengthSqr()
	wi := d.Normalize()
	li := p.Intensity.Scale(1 / distSqr)
	vt := NewVisibilityTester(at, p.Position, 0)
	return wi, 1, li, vt
}

func (p *PointLight) PdfLi(rmath.Point3, rmath.Vector) float32 { return 0 }

func (p *PointLight) SampleEmission(u1, u2, u3, u4 float32) (rmath.Ray, rmath.Normal3, float32, float32, color.Color) {
	dir := uniformSampleSphere(u1, u2)
	ray := rmath.NewRay(p.Position, dir)
	return ray, dir.ToNormal(), 1, uniformSpherePdf(), p.Intensity
}

func (p *PointLight) EmissionPdf(rmath.Ray, rmath.Normal3) (float32, float32) {
	return 1, uniformSpherePdf()
}

func (p *PointLight) Emit(rmath.Ray, rmath.Normal3) color.Color { return color.Black }

func (p *PointLight) Power() color.Color { return p.Intensity.Scale(4 * math.Pi) }

func (p *PointLight) IsDelta() bool   { return true }
func (p *PointLight) NumSamples() int { return 1 }

func uniformSampleSphere(u1, u2 float32) rmath.Vector {
	z := 1 - 2*u1
	r := float32(math.Sqrt(float64(maxf(0, 1-z*z))))
	phi := 2 * math.Pi * u2
	return rmath.Vector{X: r * float32(math.Cos(float64(phi))), Y: r * float32(math.Sin(float64(phi))), Z: z}
}

func uniformSpherePdf() float32 { return 1 / (4 * math.Pi) }

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
