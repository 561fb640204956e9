package material

import (
	"testing"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/rmath"
)

func testDG() *core.DifferentialGeometry {
	return &core.DifferentialGeometry{
		Point:         rmath.Point3{},
		GeomNormal:    rmath.Normal3{Z: 1},
		ShadingNormal: rmath.Normal3{Z: 1},
		DPDU:          rmath.Vector{X: 1},
		DPDV:          rmath.Vector{Y: 1},
	}
}

func TestLambertianFNonNegative(t *testing.T) {
	l := NewLambertian(color.New(0.5, 0.5, 0.5))
	wo := rmath.Vector{Z: 1}
	wi := rmath.Vector{X: 0.3, Z: 0.9}.Normalize()
	f := l.F(wo, wi)
	if f.R < 0 || f.R > 1 {
		t.Errorf("lambertian f out of range: %v", f)
	}
}

func TestMatteGetBSDFAddsLambertian(t *testing.T) {
	m := NewMatte(color.New(0.8, 0.2, 0.2), 0)
	p := NewPool()
	bsdf := m.GetBSDF(testDG(), p)
	if bsdf.NumComponents(BxDFAll) != 1 {
		t.Errorf("expected 1 BxDF, got %d", bsdf.NumComponents(BxDFAll))
	}
}

func TestGlassHasReflectAndTransmit(t *testing.T) {
	g := NewGlass(color.White, color.White, 1.5)
	p := NewPool()
	bsdf := g.GetBSDF(testDG(), p)
	if bsdf.NumComponents(BxDFReflection|BxDFSpecular) != 1 {
		t.Errorf("expected 1 reflective BxDF")
	}
	if bsdf.NumComponents(BxDFTransmission|BxDFSpecular) != 1 {
		t.Errorf("expected 1 transmissive BxDF")
	}
}

func TestSpecularReflectionSampleFReflectsAboutNormal(t *testing.T) {
	s := NewSpecularReflection(color.White, FresnelNoOp{})
	wo := rmath.Vector{X: 0.3, Y: 0, Z: 0.95}.Normalize()
	wi, pdf, _ := s.SampleF(wo, 0, 0)
	if pdf != 1 {
		t.Errorf("expected delta pdf=1, got %v", pdf)
	}
	if wi.Z < 0 {
		t.Errorf("reflection should stay in same hemisphere as wo, got wi=%v", wi)
	}
}

func TestBSDFFZeroWhenOppositeSidesWithoutTransmission(t *testing.T) {
	bsdf := NewBSDF(testDG(), 1)
	bsdf.Add(NewLambertian(color.White))
	wo := rmath.Vector{Z: 1}
	wi := rmath.Vector{Z: -1}
	f := bsdf.F(wo, wi, BxDFAll)
	if !f.IsBlack() {
		t.Errorf("expected black f across the surface for a reflection-only BSDF, got %v", f)
	}
}

func TestMixMaterialCombinesComponents(t *testing.T) {
	m1 := NewMatte(color.New(1, 0, 0), 0)
	m2 := NewMirror(color.New(0, 1, 0))
	mix := NewMixMaterial(m1, m2, 0.5)
	p := NewPool()
	bsdf := mix.GetBSDF(testDG(), p)
	if bsdf.NumComponents(BxDFAll) != 2 {
		t.Errorf("expected 2 BxDFs from mix, got %d", bsdf.NumComponents(BxDFAll))
	}
}
