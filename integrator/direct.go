package integrator

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/light"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/rmath"
	"github.com/mrigankad/tracer/scenegraph"
)

// powerHeuristic weights two sampling strategies by the beta=2 power
// heuristic (spec 4.12), preferring the strategy with lower variance
// without the bias of the balance heuristic.
func powerHeuristic(pdfF, pdfG float32) float32 {
	f2 := pdfF * pdfF
	g2 := pdfG * pdfG
	if f2+g2 == 0 {
		return 0
	}
	return f2 / (f2 + g2)
}

// volumeTransmittance queries the scene's volume integrator for the beam
// transmittance between two points, matching OcclusionTester::
// transmittance in original_source; returns full transmittance when the
// scene carries no volume.
func volumeTransmittance(scene Scene, p0, p1 rmath.Point3, rng Sampler) color.Color {
	vol := scene.Volume()
	if vol == nil {
		return color.White
	}
	d := p1.SubPoint(p0)
	dist := d.Length()
	if dist < 1e-6 {
		return color.White
	}
	ray := rmath.Ray{Origin: p0, Direction: d.Div(dist), TMin: 1e-3, TMax: dist * (1 - 1e-3)}
	return scene.VolumeIntegrator().Transmittance(vol, ray, rng)
}

// estimateDirect computes the direct-lighting contribution of one light
// at a shading point via multiple importance sampling between light
// sampling and BSDF sampling, per spec 4.12.
func estimateDirect(scene Scene, bsdf *material.BSDF, p rmath.Point3, wo rmath.Vector, lt light.Light, sampler Sampler, flags material.BxDFType) color.Color {
	ld := color.Black

	u1, u2 := sampler.Get2D()
	wi, pdfLight, li, vt := lt.SampleLi(p, u1, u2)
	if pdfLight > 0 && !li.IsBlack() {
		f := bsdf.F(wo, wi, flags)
		if !f.IsBlack() && vt.Unoccluded(scene) {
			tr := volumeTransmittance(scene, p, vt.P1, sampler)
			cosTerm := absf(wi.Dot(bsdf.GeomNormal.ToVector()))
			contrib := f.Mul(li).Mul(tr).Scale(cosTerm)
			if lt.IsDelta() {
				ld = ld.Add(contrib.Scale(1 / pdfLight))
			} else {
				pdfBSDF := bsdf.Pdf(wo, wi, flags)
				weight := powerHeuristic(pdfLight, pdfBSDF)
				ld = ld.Add(contrib.Scale(weight / pdfLight))
			}
		}
	}

	if !lt.IsDelta() {
		u1b, u2b := sampler.Get2D()
		u3 := sampler.Get1D()
		wiB, pdfBSDF, f, sampledType := bsdf.SampleF(wo, u1b, u2b, u3, flags)
		if pdfBSDF > 0 && !f.IsBlack() {
			pdfLightB := lt.PdfLi(p, wiB)
			if pdfLightB > 0 {
				var weight float32 = 1
				if sampledType&material.BxDFSpecular == 0 {
					weight = powerHeuristic(pdfBSDF, pdfLightB)
				}
				ray := rmath.NewRay(p, wiB)
				if dg, _, hit := scene.Intersect(ray); hit {
					if n, ok := dg.Node.(*scenegraph.Node); ok && n.Light == lt {
						le := lt.Emit(ray, dg.GeomNormal)
						if !le.IsBlack() {
							cosTerm := absf(wiB.Dot(bsdf.GeomNormal.ToVector()))
							ld = ld.Add(f.Mul(le).Scale(cosTerm * weight / pdfBSDF))
						}
					}
				}
			}
		}
	}

	return ld
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
