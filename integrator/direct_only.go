package integrator

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/rmath"
	"github.com/mrigankad/tracer/scenegraph"
)

// DirectOnly is a fast preview integrator: it samples direct light at the
// first hit only and never recurses, so it misses indirect bounces and
// specular reflection/transmission entirely. Supplemented from
// original_source/include/integrator/direct_lighting_integrator.h, which
// the distilled spec dropped; useful for quick framing/exposure checks
// before committing to a full Path or BidirPath render.
type DirectOnly struct{}

func NewDirectOnly() *DirectOnly { return &DirectOnly{} }

func (d *DirectOnly) Illumination(scene Scene, rd rmath.RayDifferential, sampler Sampler, pool *material.Pool) color.Color {
	dg, _, hit := scene.Intersect(rd.Ray)
	if !hit {
		return color.Black
	}

	n, ok := dg.Node.(*scenegraph.Node)
	if !ok {
		return color.Black
	}

	l := color.Black
	if n.Light != nil {
		l = l.Add(n.Light.Emit(rd.Ray, dg.GeomNormal))
	}
	if n.Material == nil {
		return l
	}

	bsdf := n.Material.GetBSDF(dg, pool)
	wo := rd.Ray.Direction.Negate()

	for _, lt := range scene.Lights() {
		l = l.Add(estimateDirect(scene, bsdf, dg.Point, wo, lt, sampler, material.BxDFAll&^material.BxDFSpecular))
	}
	return l
}
