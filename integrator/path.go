package integrator

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/rmath"
	"github.com/mrigankad/tracer/scenegraph"
)

// Path implements unidirectional path tracing with Russian roulette
// termination, per spec 4.11. At every bounce it adds the one-sample
// direct-lighting estimate of a single uniformly chosen light, then
// samples the BSDF to continue the path; emission is only added at the
// first bounce or immediately after a specular bounce, since non-specular
// bounces already had their light contribution accounted for by
// estimate_direct at the previous vertex. Grounded on
// original_source/include/integrator/path_integrator.h.
type Path struct {
	MinBounces int
	MaxDepth   int
}

// NewPath builds a Path integrator. Panics if minBounces exceeds
// maxDepth, since Russian roulette could never kick in before the hard
// depth cap fires.
func NewPath(minBounces, maxDepth int) *Path {
	if minBounces > maxDepth {
		panic("integrator: MinBounces must not exceed MaxDepth")
	}
	return &Path{MinBounces: minBounces, MaxDepth: maxDepth}
}

func (p *Path) Illumination(scene Scene, rd rmath.RayDifferential, sampler Sampler, pool *material.Pool) color.Color {
	l := color.Black
	throughput := color.White
	ray := rd.Ray
	specularBounce := true

	for depth := 0; depth < p.MaxDepth; depth++ {
		dg, _, hit := scene.Intersect(ray)
		if !hit {
			break
		}

		n, ok := dg.Node.(*scenegraph.Node)
		if !ok {
			break
		}

		if n.Light != nil && specularBounce {
			l = l.Add(throughput.Mul(n.Light.Emit(ray, dg.GeomNormal)))
		}

		if n.Material == nil {
			break
		}

		bsdf := n.Material.GetBSDF(dg, pool)
		wo := ray.Direction.Negate()

		if lights := scene.Lights(); len(lights) > 0 {
			idx := int(sampler.Get1D() * float32(len(lights)))
			if idx >= len(lights) {
				idx = len(lights) - 1
			}
			direct := estimateDirect(scene, bsdf, dg.Point, wo, lights[idx], sampler, material.BxDFAll&^material.BxDFSpecular)
			l = l.Add(throughput.Mul(direct).Scale(float32(len(lights))))
		}

		u1, u2, u3 := sampler.Get1D(), sampler.Get1D(), sampler.Get1D()
		wi, pdf, f, sampledType := bsdf.SampleF(wo, u1, u2, u3, material.BxDFAll)
		if pdf == 0 || f.IsBlack() {
			break
		}
		specularBounce = sampledType&material.BxDFSpecular != 0

		cosTerm := absf(wi.Dot(dg.ShadingNormal.ToVector()))
		throughput = throughput.Mul(f).Scale(cosTerm / pdf)

		if depth >= p.MinBounces {
			q := throughput.Luminance()
			if q > 0.5 {
				q = 0.5
			}
			if sampler.Get1D() > q {
				break
			}
			throughput = throughput.Scale(1 / q)
		}

		ray = rmath.NewRay(dg.Point, wi)
		ray.Depth = rd.Ray.Depth + depth + 1
	}

	return l
}
