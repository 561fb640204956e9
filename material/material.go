package material

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/core"
)

// Material builds a BSDF for a given surface hit. Concrete materials
// below are the path-traced equivalents of the teacher's PBR-lite
// Material struct (mrigankad-gorenderengine/materials/material.go):
// DiffuseColor/SpecularColor/Roughness/Metallic carry over as field
// names, but instead of feeding a GPU uniform buffer they now parameterize
// which BxDFs GetBSDF adds.
type Material interface {
	GetBSDF(dg *core.DifferentialGeometry, p *Pool) *BSDF
}

// Matte is a pure diffuse surface: Lambertian, optionally Oren-Nayar
// roughened.
type Matte struct {
	DiffuseColor color.Color
	Sigma        float32 // Oren-Nayar roughness in degrees; 0 = Lambertian
}

func NewMatte(diffuse color.Color, sigma float32) *Matte {
	return &Matte{DiffuseColor: diffuse, Sigma: sigma}
}

func (m *Matte) GetBSDF(dg *core.DifferentialGeometry, p *Pool) *BSDF {
	bsdf := NewBSDFInPool(p, dg, 1)
	if m.DiffuseColor.IsBlack() {
		return bsdf
	}
	if m.Sigma == 0 {
		bsdf.Add(NewLambertian(m.DiffuseColor))
	} else {
		bsdf.Add(NewOrenNayar(m.DiffuseColor, m.Sigma))
	}
	return bsdf
}

// Plastic composites a diffuse base coat with a glossy Torrance-Sparrow
// specular highlight, following the teacher's Roughness/Specular knobs
// but now actually evaluating a microfacet term instead of shading a
// rasterized highlight.
type Plastic struct {
	DiffuseColor  color.Color
	SpecularColor color.Color
	Roughness     float32 // 0..1, converted to a Blinn exponent
}

func NewPlastic(diffuse, specular color.Color, roughness float32) *Plastic {
	return &Plastic{DiffuseColor: diffuse, SpecularColor: specular, Roughness: roughness}
}

func (p *Plastic) GetBSDF(dg *core.DifferentialGeometry, pool *Pool) *BSDF {
	bsdf := NewBSDFInPool(pool, dg, 1)
	if !p.DiffuseColor.IsBlack() {
		bsdf.Add(NewLambertian(p.DiffuseColor))
	}
	if !p.SpecularColor.IsBlack() {
		exponent := roughnessToExponent(p.Roughness)
		fr := FresnelDielectric{EtaI: 1, EtaT: 1.5}
		bsdf.Add(NewTorranceSparrow(p.SpecularColor, Blinn{Exponent: exponent}, fr))
	}
	return bsdf
}

func roughnessToExponent(roughness float32) float32 {
	r := roughness
	if r < 1e-3 {
		r = 1e-3
	}
	return 2/(r*r) - 2
}

// Mirror is a perfect specular reflector.
type Mirror struct {
	ReflectColor color.Color
}

func NewMirror(reflect color.Color) *Mirror { return &Mirror{ReflectColor: reflect} }

func (mr *Mirror) GetBSDF(dg *core.DifferentialGeometry, p *Pool) *BSDF {
	bsdf := NewBSDFInPool(p, dg, 1)
	if !mr.ReflectColor.IsBlack() {
		bsdf.Add(NewSpecularReflection(mr.ReflectColor, FresnelNoOp{}))
	}
	return bsdf
}

// Glass is a dielectric with both specular reflection and transmission,
// weighted by the Fresnel term at each hit (spec 4.9: a "random choice
// between the two at BSDF sample time" shows up automatically since both
// BxDFs live in the same BSDF and SampleF picks one uniformly, each
// already scaled by its own Fresnel-consistent weight).
type Glass struct {
	ReflectColor, TransmitColor color.Color
	Eta                         float32
}

func NewGlass(reflect, transmit color.Color, eta float32) *Glass {
	return &Glass{ReflectColor: reflect, TransmitColor: transmit, Eta: eta}
}

func (g *Glass) GetBSDF(dg *core.DifferentialGeometry, p *Pool) *BSDF {
	bsdf := NewBSDFInPool(p, dg, g.Eta)
	if !g.ReflectColor.IsBlack() {
		bsdf.Add(NewSpecularReflection(g.ReflectColor, FresnelDielectric{EtaI: 1, EtaT: g.Eta}))
	}
	if !g.TransmitColor.IsBlack() {
		bsdf.Add(NewSpecularTransmission(g.TransmitColor, 1, g.Eta))
	}
	return bsdf
}

// Metal is a conductor with a glossy Torrance-Sparrow specular lobe and
// no diffuse term.
type Metal struct {
	Eta, K    color.Color
	Roughness float32
}

func NewMetal(eta, k color.Color, roughness float32) *Metal {
	return &Metal{Eta: eta, K: k, Roughness: roughness}
}

func (mt *Metal) GetBSDF(dg *core.DifferentialGeometry, p *Pool) *BSDF {
	bsdf := NewBSDFInPool(p, dg, 1)
	exponent := roughnessToExponent(mt.Roughness)
	bsdf.Add(NewTorranceSparrow(color.White, Blinn{Exponent: exponent}, FresnelConductor{Eta: mt.Eta, K: mt.K}))
	return bsdf
}

// MixMaterial blends two materials' BSDFs by a constant weight, matching
// original_source's MixMaterial: every BxDF of both underlying materials
// is added, each wrapped in a ScaledBxDF by Amount and (1-Amount).
type MixMaterial struct {
	M1, M2 Material
	Amount float32
}

func NewMixMaterial(m1, m2 Material, amount float32) *MixMaterial {
	return &MixMaterial{M1: m1, M2: m2, Amount: amount}
}

func (mm *MixMaterial) GetBSDF(dg *core.DifferentialGeometry, pool *Pool) *BSDF {
	b1 := mm.M1.GetBSDF(dg, pool)
	b2 := mm.M2.GetBSDF(dg, pool)

	out := NewBSDFInPool(pool, dg, b1.Eta)
	for i := 0; i < b1.nBxDFs; i++ {
		out.Add(NewScaledBxDF(b1.bxdfs[i], color.Gray(mm.Amount)))
	}
	for i := 0; i < b2.nBxDFs; i++ {
		out.Add(NewScaledBxDF(b2.bxdfs[i], color.Gray(1-mm.Amount)))
	}
	return out
}
