package volume

import (
	"math"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/light"
	"github.com/mrigankad/tracer/rmath"
)

func expf(x float32) float32 { return float32(math.Exp(float64(x))) }

// RandomSource is the minimal sampler surface the volume integrators
// need: one uniform float per call, matching sampler.random_float() in
// original_source.
type RandomSource interface {
	Get1D() float32
}

// Occluder is the shadow-ray query surface used for light visibility
// inside the volume; identical in shape to light.Occluder, kept as its
// own type so this package doesn't need an accel/scenegraph import.
type Occluder interface {
	IntersectP(ray rmath.Ray) bool
}

// Integrator computes the radiance contributed by participating media
// along a ray and the beam transmittance through it, per spec 4.13.
type Integrator interface {
	// Radiance returns the in-scattered/emitted radiance accumulated along
	// ray and the transmittance through the same segment.
	Radiance(vol Volume, ray rmath.Ray, rng RandomSource) (radiance, transmittance color.Color)
	Transmittance(vol Volume, ray rmath.Ray, rng RandomSource) color.Color
}

const lowTransmittanceThreshold = 1e-3
const continueProb = 0.5

// Emission integrates only absorption/emission along the ray via ray
// marching, ignoring in-scattering — cheap, used when the scene has no
// lights worth single-scattering against. Grounded on
// original_source/src/integrator/emission_integrator.cpp.
type Emission struct {
	StepSize float32
}

func NewEmission(stepSize float32) *Emission { return &Emission{StepSize: stepSize} }

func (e *Emission) Radiance(vol Volume, ray rmath.Ray, rng RandomSource) (color.Color, color.Color) {
	if vol == nil {
		return color.Black, color.White
	}
	t0, t1, ok := vol.Intersect(ray)
	if !ok || t0 == t1 {
		return color.Black, color.White
	}

	nSteps := int((t1-t0)/e.StepSize) + 1
	step := (t1 - t0) / float32(nSteps)
	transmit := color.White
	rad := color.Black
	wo := ray.Direction.Negate()

	t := t0 + rng.Get1D()*step
	for i := 0; i < nSteps; i++ {
		p := ray.At(t)
		prev := ray.At(t - step)
		stepRay := rmath.Ray{Origin: prev, Direction: p.SubPoint(prev), TMin: 0, TMax: 1}
		tau := vol.OpticalThickness(stepRay, 0.5*e.StepSize, rng.Get1D())
		transmit = transmit.Mul(negExp(tau))

		if transmit.Luminance() < lowTransmittanceThreshold {
			if rng.Get1D() > continueProb {
				transmit = color.Black
				break
			}
			transmit = transmit.Scale(1 / continueProb)
		}

		rad = rad.Add(transmit.Mul(vol.Emission(p, wo)))
		t += step
	}
	return rad.Scale(step), transmit
}

func (e *Emission) Transmittance(vol Volume, ray rmath.Ray, rng RandomSource) color.Color {
	if vol == nil {
		return color.White
	}
	tau := vol.OpticalThickness(ray, e.StepSize, rng.Get1D())
	return negExp(tau)
}

// SingleScattering extends Emission by additionally sampling one random
// light at each step and adding its in-scattered contribution, per spec
// 4.13 and original_source/src/integrator/single_scattering_integrator.cpp.
type SingleScattering struct {
	StepSize float32
}

func NewSingleScattering(stepSize float32) *SingleScattering {
	return &SingleScattering{StepSize: stepSize}
}

func (s *SingleScattering) Radiance(vol Volume, ray rmath.Ray, rng RandomSource) (color.Color, color.Color) {
	return s.radianceWithLights(vol, ray, rng, nil, nil)
}

// RadianceWithLights is the full single-scattering evaluation, exposed
// separately from Radiance (which satisfies the bare Integrator
// interface) because it needs the scene's light list and an occluder to
// test shadow rays against — neither of which the minimal Integrator
// contract carries.
func (s *SingleScattering) RadianceWithLights(vol Volume, ray rmath.Ray, rng RandomSource, lights []light.Light, occ Occluder) (color.Color, color.Color) {
	return s.radianceWithLights(vol, ray, rng, lights, occ)
}

func (s *SingleScattering) radianceWithLights(vol Volume, ray rmath.Ray, rng RandomSource, lights []light.Light, occ Occluder) (color.Color, color.Color) {
	if vol == nil {
		return color.Black, color.White
	}
	t0, t1, ok := vol.Intersect(ray)
	if !ok || t0 == t1 {
		return color.Black, color.White
	}

	nSteps := int((t1-t0)/s.StepSize) + 1
	step := (t1 - t0) / float32(nSteps)
	transmit := color.White
	rad := color.Black
	wo := ray.Direction.Negate()

	t := t0 + rng.Get1D()*step
	for i := 0; i < nSteps; i++ {
		p := ray.At(t)
		prev := ray.At(t - step)
		stepRay := rmath.Ray{Origin: prev, Direction: p.SubPoint(prev), TMin: 0, TMax: 1}
		tau := vol.OpticalThickness(stepRay, 0.5*s.StepSize, rng.Get1D())
		transmit = transmit.Mul(negExp(tau))

		if transmit.Luminance() < lowTransmittanceThreshold {
			if rng.Get1D() > continueProb {
				transmit = color.Black
				break
			}
			transmit = transmit.Scale(1 / continueProb)
		}

		rad = rad.Add(transmit.Mul(vol.Emission(p, wo)))

		scatter := vol.Scattering(p, wo)
		if !scatter.IsBlack() && len(lights) > 0 {
			nLights := len(lights)
			lightNum := int(rng.Get1D() * float32(nLights))
			if lightNum >= nLights {
				lightNum = nLights - 1
			}
			chosen := lights[lightNum]

			wi, pdf, li, vt := chosen.SampleLi(p, rng.Get1D(), rng.Get1D())
			if !li.IsBlack() && pdf > 0 && (occ == nil || vt.Unoccluded(occ)) {
				ph := vol.Phase(p, wo, wi.Negate())
				contrib := transmit.Mul(scatter).Scale(ph).Mul(li).Scale(float32(nLights) / pdf)
				rad = rad.Add(contrib)
			}
		}

		t += step
	}
	return rad.Scale(step), transmit
}

func (s *SingleScattering) Transmittance(vol Volume, ray rmath.Ray, rng RandomSource) color.Color {
	if vol == nil {
		return color.White
	}
	tau := vol.OpticalThickness(ray, s.StepSize, rng.Get1D())
	return negExp(tau)
}

func negExp(c color.Color) color.Color {
	return color.New(expf(-c.R), expf(-c.G), expf(-c.B))
}
