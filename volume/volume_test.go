package volume

import (
	"testing"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/rmath"
)

type constRNG struct{ v float32 }

func (c constRNG) Get1D() float32 { return c.v }

func boxRegion() rmath.BBox {
	return rmath.BBox{Min: rmath.Point3{X: -1, Y: -1, Z: -1}, Max: rmath.Point3{X: 1, Y: 1, Z: 1}}
}

func TestHomogeneousAttenuationZeroOutsideRegion(t *testing.T) {
	h := NewHomogeneous(color.New(0.1, 0.1, 0.1), color.New(0.2, 0.2, 0.2), color.Black, 0, boxRegion())
	inside := h.Attenuation(rmath.Point3{}, rmath.Vector{})
	outside := h.Attenuation(rmath.Point3{X: 5}, rmath.Vector{})
	if inside.IsBlack() {
		t.Errorf("expected nonzero attenuation inside region")
	}
	if !outside.IsBlack() {
		t.Errorf("expected zero attenuation outside region, got %v", outside)
	}
}

func TestHomogeneousOpticalThicknessScalesWithDistance(t *testing.T) {
	h := NewHomogeneous(color.New(0.5, 0.5, 0.5), color.Black, color.Black, 0, boxRegion())
	ray := rmath.NewRay(rmath.Point3{X: -5}, rmath.Vector{X: 1})
	tau := h.OpticalThickness(ray, 1, 0.5)
	if tau.R <= 0 {
		t.Errorf("expected positive optical thickness through the box, got %v", tau)
	}
}

func TestExponentialDensityDecaysWithHeight(t *testing.T) {
	e := NewExponential(color.New(1, 1, 1), color.Black, color.Black, 0, boxRegion(), 1, 2, rmath.Vector{Y: 1})
	low := e.Absorption(rmath.Point3{Y: -0.99}, rmath.Vector{})
	high := e.Absorption(rmath.Point3{Y: 0.99}, rmath.Vector{})
	if high.R >= low.R {
		t.Errorf("expected density to decay with height: low=%v high=%v", low, high)
	}
}

func TestGridTrilinearInterpolationIsContinuous(t *testing.T) {
	values := make([]float32, 2*2*2)
	for i := range values {
		values[i] = 1
	}
	values[0] = 0
	g := NewGrid(color.New(1, 1, 1), color.Black, color.Black, 0, boxRegion(), 2, 2, 2, values, 1)
	center := g.Absorption(rmath.Point3{}, rmath.Vector{})
	if center.R <= 0 || center.R >= 1 {
		t.Errorf("expected interpolated density strictly between corner values, got %v", center.R)
	}
}

func TestPhaseIsotropicIntegratesToOne(t *testing.T) {
	if v := phaseIsotropic() * 4 * piF32; v < 0.9999 || v > 1.0001 {
		t.Errorf("expected isotropic phase times 4*pi to be 1, got %v", v)
	}
}

func TestPhaseHenyeyGreensteinPeaksForward(t *testing.T) {
	wo := rmath.Vector{Z: 1}
	forward := PhaseHenyeyGreenstein(wo, wo, 0.8)
	backward := PhaseHenyeyGreenstein(wo, wo.Negate(), 0.8)
	if forward <= backward {
		t.Errorf("expected forward-scattering phase (g=0.8) to favor wi==wo, got forward=%v backward=%v", forward, backward)
	}
}

func TestEmissionIntegratorZeroOutsideVolume(t *testing.T) {
	h := NewHomogeneous(color.Black, color.Black, color.New(1, 1, 1), 0, boxRegion())
	e := NewEmission(0.25)
	ray := rmath.NewRay(rmath.Point3{X: -10}, rmath.Vector{X: 1})
	ray.TMax = 1
	rad, transmit := e.Radiance(h, ray, constRNG{0.5})
	if !rad.IsBlack() {
		t.Errorf("expected no radiance for a ray missing the volume, got %v", rad)
	}
	if transmit != color.White {
		t.Errorf("expected full transmittance outside the volume, got %v", transmit)
	}
}

func TestEmissionIntegratorAccumulatesThroughVolume(t *testing.T) {
	h := NewHomogeneous(color.New(0.05, 0.05, 0.05), color.Black, color.New(1, 1, 1), 0, boxRegion())
	e := NewEmission(0.25)
	ray := rmath.NewRay(rmath.Point3{X: -5}, rmath.Vector{X: 1})
	ray.TMax = 10
	rad, _ := e.Radiance(h, ray, constRNG{0.5})
	if rad.IsBlack() {
		t.Errorf("expected nonzero emitted radiance through an emissive volume")
	}
}

func TestSingleScatteringWithNoLightsMatchesEmission(t *testing.T) {
	h := NewHomogeneous(color.New(0.05, 0.05, 0.05), color.New(0.1, 0.1, 0.1), color.New(1, 1, 1), 0, boxRegion())
	ss := NewSingleScattering(0.25)
	ray := rmath.NewRay(rmath.Point3{X: -5}, rmath.Vector{X: 1})
	ray.TMax = 10
	rad, _ := ss.Radiance(h, ray, constRNG{0.5})
	if rad.IsBlack() {
		t.Errorf("expected nonzero radiance from emission term even with no lights")
	}
	emitted, _ := NewEmission(0.25).Radiance(h, ray, constRNG{0.5})
	if rad != emitted {
		t.Errorf("expected single scattering with no lights to match emission: %v vs %v", rad, emitted)
	}
}
