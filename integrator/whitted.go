package integrator

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/rmath"
	"github.com/mrigankad/tracer/scenegraph"
)

// Whitted implements classical recursive ray tracing (spec 4.11): sample
// every non-delta light once at each hit, then recurse on specular
// reflection/transmission up to MaxDepth. Grounded on
// original_source/include/integrator/whitted_integrator.h.
type Whitted struct {
	MaxDepth int
}

func NewWhitted(maxDepth int) *Whitted { return &Whitted{MaxDepth: maxDepth} }

func (w *Whitted) Illumination(scene Scene, rd rmath.RayDifferential, sampler Sampler, pool *material.Pool) color.Color {
	return w.illuminate(scene, rd.Ray, sampler, pool, 0)
}

func (w *Whitted) illuminate(scene Scene, ray rmath.Ray, sampler Sampler, pool *material.Pool, depth int) color.Color {
	dg, _, hit := scene.Intersect(ray)
	if !hit {
		return color.Black
	}

	var mat material.Material
	if n, ok := dg.Node.(*scenegraph.Node); ok {
		mat = n.Material
		if n.Light != nil {
			l := color.Black
			l = l.Add(n.Light.Emit(ray, dg.GeomNormal))
			if mat == nil {
				return l
			}
		}
	}
	if mat == nil {
		return color.Black
	}

	bsdf := mat.GetBSDF(dg, pool)
	wo := ray.Direction.Negate()

	lo := color.Black
	for _, lt := range scene.Lights() {
		if lt.IsDelta() {
			continue
		}
		lo = lo.Add(estimateDirect(scene, bsdf, dg.Point, wo, lt, sampler, material.BxDFAll&^material.BxDFSpecular))
	}
	for _, lt := range scene.Lights() {
		if !lt.IsDelta() {
			continue
		}
		u1, u2 := sampler.Get2D()
		wi, pdf, li, vt := lt.SampleLi(dg.Point, u1, u2)
		if pdf == 0 || li.IsBlack() || !vt.Unoccluded(scene) {
			continue
		}
		f := bsdf.F(wo, wi, material.BxDFAll&^material.BxDFSpecular)
		if f.IsBlack() {
			continue
		}
		cosTerm := absf(wi.Dot(dg.GeomNormal.ToVector()))
		lo = lo.Add(f.Mul(li).Scale(cosTerm / pdf))
	}

	if depth+1 < w.MaxDepth {
		lo = lo.Add(w.specularReflect(scene, ray, dg, bsdf, wo, sampler, pool, depth))
		lo = lo.Add(w.specularTransmit(scene, ray, dg, bsdf, wo, sampler, pool, depth))
	}
	return lo
}

func (w *Whitted) specularReflect(scene Scene, ray rmath.Ray, dg *core.DifferentialGeometry, bsdf *material.BSDF, wo rmath.Vector, sampler Sampler, pool *material.Pool, depth int) color.Color {
	u1, u2, u3 := sampler.Get1D(), sampler.Get1D(), sampler.Get1D()
	wi, pdf, f, sampledType := bsdf.SampleF(wo, u1, u2, u3, material.BxDFReflection|material.BxDFSpecular)
	if pdf == 0 || f.IsBlack() || sampledType&material.BxDFSpecular == 0 {
		return color.Black
	}
	cosTerm := absf(wi.Dot(dg.ShadingNormal.ToVector()))
	newRay := rmath.NewRay(dg.Point, wi)
	newRay.Depth = ray.Depth + 1
	li := w.illuminate(scene, newRay, sampler, pool, depth+1)
	return f.Mul(li).Scale(cosTerm / pdf)
}

func (w *Whitted) specularTransmit(scene Scene, ray rmath.Ray, dg *core.DifferentialGeometry, bsdf *material.BSDF, wo rmath.Vector, sampler Sampler, pool *material.Pool, depth int) color.Color {
	u1, u2, u3 := sampler.Get1D(), sampler.Get1D(), sampler.Get1D()
	wi, pdf, f, sampledType := bsdf.SampleF(wo, u1, u2, u3, material.BxDFTransmission|material.BxDFSpecular)
	if pdf == 0 || f.IsBlack() || sampledType&material.BxDFSpecular == 0 {
		return color.Black
	}
	cosTerm := absf(wi.Dot(dg.ShadingNormal.ToVector()))
	newRay := rmath.NewRay(dg.Point, wi)
	newRay.Depth = ray.Depth + 1
	li := w.illuminate(scene, newRay, sampler, pool, depth+1)
	return f.Mul(li).Scale(cosTerm / pdf)
}
