package material

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/rmath"
)

const maxBxDFs = 8

// BSDF composites up to maxBxDFs BxDFs at a single shading point,
// built fresh per-hit from the arena allocator (spec 4.9/4.14) and
// discarded once the path segment finishes. It owns the shading
// coordinate frame and the geometric-vs-shading-normal correction that
// keeps specular transmission from leaking energy when the two normals
// disagree near silhouettes.
type BSDF struct {
	GeomNormal    rmath.Normal3
	shadingNormal rmath.Normal3
	ss, ts        rmath.Vector // shading tangent, bitangent
	bxdfs         [maxBxDFs]BxDF
	nBxDFs        int
	Eta           float32 // index of refraction above the surface, for transmission bookkeeping
}

// NewBSDF builds a BSDF from a differential geometry hit, orienting the
// shading tangent frame from dg.DPDU.
func NewBSDF(dg *core.DifferentialGeometry, eta float32) *BSDF {
	ns := dg.ShadingNormal.Normalize()
	ss := dg.DPDU
	if ss.LengthSqr() < 1e-12 {
		ss, _ = rmath.CoordinateSystem(ns.ToVector())
	} else {
		ss = ss.Normalize()
	}
	ts := ns.ToVector().Cross(ss)
	return &BSDF{GeomNormal: dg.GeomNormal.Normalize(), shadingNormal: ns, ss: ss, ts: ts, Eta: eta}
}

// Add appends a BxDF to this BSDF; panics if more than maxBxDFs terms
// are added to one BSDF, matching the fixed-capacity contract in spec
// 4.9.
func (b *BSDF) Add(bx BxDF) {
	if b.nBxDFs >= maxBxDFs {
		panic("material: BSDF exceeds max BxDF count")
	}
	b.bxdfs[b.nBxDFs] = bx
	b.nBxDFs++
}

func (b *BSDF) NumComponents(flags BxDFType) int {
	n := 0
	for i := 0; i < b.nBxDFs; i++ {
		if b.bxdfs[i].MatchesFlags(flags) {
			n++
		}
	}
	return n
}

func (b *BSDF) worldToLocal(v rmath.Vector) rmath.Vector {
	return rmath.Vector{X: v.Dot(b.ss), Y: v.Dot(b.ts), Z: v.Dot(b.shadingNormal.ToVector())}
}

func (b *BSDF) localToWorld(v rmath.Vector) rmath.Vector {
	return rmath.Vector{
		X: b.ss.X*v.X + b.ts.X*v.Y + b.shadingNormal.X*v.Z,
		Y: b.ss.Y*v.X + b.ts.Y*v.Y + b.shadingNormal.Y*v.Z,
		Z: b.ss.Z*v.X + b.ts.Z*v.Y + b.shadingNormal.Z*v.Z,
	}
}

// F sums every matching BxDF's contribution, applying the standard
// reflect/transmit side test against the *geometric* normal (not the
// shading normal) to avoid the light leak that occurs near silhouettes
// when the two normals disagree, per spec 4.9.
func (b *BSDF) F(woW, wiW rmath.Vector, flags BxDFType) color.Color {
	wo := b.worldToLocal(woW)
	wi := b.worldToLocal(wiW)
	if wo.Z == 0 {
		return color.Black
	}

	reflect := wiW.Dot(b.GeomNormal.ToVector())*woW.Dot(b.GeomNormal.ToVector()) > 0

	f := color.Black
	for i := 0; i < b.nBxDFs; i++ {
		bx := b.bxdfs[i]
		if !bx.MatchesFlags(flags) {
			continue
		}
		if (reflect && bx.Type()&BxDFReflection != 0) || (!reflect && bx.Type()&BxDFTransmission != 0) {
			f = f.Add(bx.F(wo, wi))
		}
	}
	return f
}

// SampleF picks a component uniformly among those matching flags (using
// u3 as the selector), asks it to sample a direction, and — for
// non-specular components — adds in the other matching components' F at
// that direction with MIS-style pdf averaging, following the approach in
// original_source's BSDF::Sample_f.
func (b *BSDF) SampleF(woW rmath.Vector, u1, u2, u3 float32, flags BxDFType) (wiW rmath.Vector, pdf float32, f color.Color, sampledType BxDFType) {
	matching := b.NumComponents(flags)
	if matching == 0 {
		return rmath.Vector{}, 0, color.Black, 0
	}
	which := int(u3 * float32(matching))
	if which == matching {
		which = matching - 1
	}

	var chosen BxDF
	count := which
	for i := 0; i < b.nBxDFs; i++ {
		if b.bxdfs[i].MatchesFlags(flags) {
			if count == 0 {
				chosen = b.bxdfs[i]
				break
			}
			count--
		}
	}
	if chosen == nil {
		return rmath.Vector{}, 0, color.Black, 0
	}

	wo := b.worldToLocal(woW)
	if wo.Z == 0 {
		return rmath.Vector{}, 0, color.Black, 0
	}

	wi, samplePdf, sampleF := chosen.SampleF(wo, u1, u2)
	if samplePdf == 0 {
		return rmath.Vector{}, 0, color.Black, 0
	}
	sampledType = chosen.Type()
	wiW = b.localToWorld(wi)

	if chosen.Type()&BxDFSpecular == 0 && matching > 1 {
		for i := 0; i < b.nBxDFs; i++ {
			if b.bxdfs[i] != chosen && b.bxdfs[i].MatchesFlags(flags) {
				samplePdf += b.bxdfs[i].Pdf(wo, wi)
			}
		}
	}
	pdf = samplePdf / float32(matching)

	if chosen.Type()&BxDFSpecular == 0 {
		f = b.F(woW, wiW, flags)
	} else {
		f = sampleF
	}
	return wiW, pdf, f, sampledType
}

func (b *BSDF) Pdf(woW, wiW rmath.Vector, flags BxDFType) float32 {
	if b.nBxDFs == 0 {
		return 0
	}
	wo := b.worldToLocal(woW)
	wi := b.worldToLocal(wiW)
	if wo.Z == 0 {
		return 0
	}
	pdf := float32(0)
	matching := 0
	for i := 0; i < b.nBxDFs; i++ {
		if b.bxdfs[i].MatchesFlags(flags) {
			matching++
			pdf += b.bxdfs[i].Pdf(wo, wi)
		}
	}
	if matching == 0 {
		return 0
	}
	return pdf / float32(matching)
}

// NewBSDFInPool allocates a BSDF out of the per-worker pool rather than
// the heap, so a whole path's shading state is released in one
// FreeBlocks call (spec 4.14).
func NewBSDFInPool(p *Pool, dg *core.DifferentialGeometry, eta float32) *BSDF {
	b := p.Alloc()
	*b = *NewBSDF(dg, eta)
	return b
}
