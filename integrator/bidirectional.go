package integrator

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/light"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/rmath"
	"github.com/mrigankad/tracer/scenegraph"
)

// pathVertex records one bounce of a camera or light subpath, enough to
// reconnect it to a vertex of the opposite subpath: the hit geometry, the
// BSDF built there, the throughput carried up to (and including) this
// vertex, and whether the bounce sampled at it was specular (specular
// vertices can't be connected to directly, since their BSDF is a delta
// function with zero measure).
type pathVertex struct {
	dg          *core.DifferentialGeometry
	bsdf        *material.BSDF
	wo          rmath.Vector
	throughput  color.Color
	specular    bool
	nSpecular   int // specular bounces accumulated up to and including this vertex
}

// BidirPath implements bidirectional path tracing (spec 4.11): a camera
// subpath and a light subpath are each traced up to MaxDepth, and every
// pair of reachable vertices is connected by a shadow ray, each
// connection strategy weighted by the balance-heuristic-derived
// 1/(i+j+2-specularCount) term. Grounded on
// original_source/include/integrator/bidirectional_integrator.h.
type BidirPath struct {
	MaxDepth int
}

func NewBidirPath(maxDepth int) *BidirPath { return &BidirPath{MaxDepth: maxDepth} }

func (b *BidirPath) Illumination(scene Scene, rd rmath.RayDifferential, sampler Sampler, pool *material.Pool) color.Color {
	lights := scene.Lights()
	if len(lights) == 0 {
		return color.Black
	}

	cameraPath := b.traceSubpath(scene, rd.Ray, color.White, sampler, pool, b.MaxDepth)

	lightIdx := int(sampler.Get1D() * float32(len(lights)))
	if lightIdx >= len(lights) {
		lightIdx = len(lights) - 1
	}
	chosen := lights[lightIdx]
	nLights := float32(len(lights))

	lightRay, lightNormal, pdfPos, pdfDir, le := chosen.SampleEmission(sampler.Get1D(), sampler.Get1D(), sampler.Get1D(), sampler.Get1D())
	l := color.Black

	if pdfPos > 0 && pdfDir > 0 && !le.IsBlack() {
		cosAtLight := absf(lightRay.Direction.Dot(lightNormal.ToVector()))
		lightThroughput := le.Scale(cosAtLight / (pdfPos * pdfDir))
		lightPath := b.traceSubpath(scene, lightRay, lightThroughput, sampler, pool, b.MaxDepth)

		for i, cv := range cameraPath {
			if cv.specular {
				continue
			}
			// direct emission hit by the camera subpath is already folded
			// in by traceSubpath via the node's attached Light, so only
			// connections to light-subpath vertices are handled here.
			for j, lv := range lightPath {
				if lv.specular {
					continue
				}
				contrib := connect(scene, cv.pathVertex, lv.pathVertex)
				if contrib.IsBlack() {
					continue
				}
				weight := 1 / float32(i+j+2-cv.nSpecular-lv.nSpecular)
				l = l.Add(contrib.Scale(weight * nLights))
			}
		}
	}

	for _, cv := range cameraPath {
		l = l.Add(cv.emitted)
	}

	return l
}

// subpathVertexResultHolder bundles a pathVertex with the emission term
// collected at that vertex (from a Light-tagged node hit along the way),
// kept outside pathVertex itself so pathVertex stays a pure reconnection
// record.
type subpathVertexResultHolder struct {
	pathVertex
	emitted color.Color
}

func (b *BidirPath) traceSubpath(scene Scene, startRay rmath.Ray, throughput color.Color, sampler Sampler, pool *material.Pool, maxDepth int) []subpathVertexResultHolder {
	var path []subpathVertexResultHolder
	ray := startRay
	t := throughput
	nSpecular := 0

	for depth := 0; depth < maxDepth; depth++ {
		dg, _, hit := scene.Intersect(ray)
		if !hit {
			break
		}
		n, ok := dg.Node.(*scenegraph.Node)
		if !ok {
			break
		}

		emitted := color.Black
		if n.Light != nil && depth == 0 {
			emitted = t.Mul(n.Light.Emit(ray, dg.GeomNormal))
		}

		if n.Material == nil {
			break
		}

		bsdf := n.Material.GetBSDF(dg, pool)
		wo := ray.Direction.Negate()

		u1, u2, u3 := sampler.Get1D(), sampler.Get1D(), sampler.Get1D()
		wi, pdf, f, sampledType := bsdf.SampleF(wo, u1, u2, u3, material.BxDFAll)

		specular := sampledType&material.BxDFSpecular != 0
		if specular {
			nSpecular++
		}

		path = append(path, subpathVertexResultHolder{
			pathVertex: pathVertex{dg: dg, bsdf: bsdf, wo: wo, throughput: t, specular: specular, nSpecular: nSpecular},
			emitted:    emitted,
		})

		if pdf == 0 || f.IsBlack() {
			break
		}
		cosTerm := absf(wi.Dot(dg.ShadingNormal.ToVector()))
		t = t.Mul(f).Scale(cosTerm / pdf)
		if t.IsBlack() {
			break
		}

		ray = rmath.NewRay(dg.Point, wi)
	}

	return path
}

// connect estimates the transport between one camera-subpath vertex and
// one light-subpath vertex: BSDF at each end times the geometric term
// times a shadow-ray visibility test, matching
// original_source's BidirectionalIntegrator::connect_vertices.
func connect(scene Scene, cv, lv pathVertex) color.Color {
	d := lv.dg.Point.SubPoint(cv.dg.Point)
	dist := d.Length()
	if dist < 1e-6 {
		return color.Black
	}
	wi := d.Div(dist)

	fCamera := cv.bsdf.F(cv.wo, wi, material.BxDFAll&^material.BxDFSpecular)
	if fCamera.IsBlack() {
		return color.Black
	}
	fLight := lv.bsdf.F(lv.wo, wi.Negate(), material.BxDFAll&^material.BxDFSpecular)
	if fLight.IsBlack() {
		return color.Black
	}

	vt := light.NewVisibilityTester(cv.dg.Point, lv.dg.Point, 0)
	if !vt.Unoccluded(scene) {
		return color.Black
	}

	cosCamera := absf(wi.Dot(cv.dg.ShadingNormal.ToVector()))
	cosLight := absf(wi.Dot(lv.dg.ShadingNormal.ToVector()))
	geom := cosCamera * cosLight / (dist * dist)

	return cv.throughput.Mul(fCamera).Mul(fLight).Mul(lv.throughput).Scale(geom)
}
