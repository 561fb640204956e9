package volume

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/rmath"
)

// Homogeneous describes a box of space with constant scattering,
// absorption, and emission coefficients throughout — the simplest
// volume, grounded on original_source/src/volume/homogeneous_volume.cpp.
type Homogeneous struct {
	SigA, SigS, Emit color.Color
	PhaseAsymmetry   float32
	Region           rmath.BBox
}

func NewHomogeneous(sigA, sigS, emit color.Color, g float32, region rmath.BBox) *Homogeneous {
	return &Homogeneous{SigA: sigA, SigS: sigS, Emit: emit, PhaseAsymmetry: g, Region: region}
}

func (h *Homogeneous) Bound() rmath.BBox { return h.Region }

func (h *Homogeneous) Intersect(ray rmath.Ray) (float32, float32, bool) {
	inv, neg := rmath.InvDir(ray.Direction)
	t0, t1, ok := h.Region.IntersectP(ray, inv, neg)
	return t0, t1, ok
}

func (h *Homogeneous) inside(p rmath.Point3) bool {
	return p.X >= h.Region.Min.X && p.X <= h.Region.Max.X &&
		p.Y >= h.Region.Min.Y && p.Y <= h.Region.Max.Y &&
		p.Z >= h.Region.Min.Z && p.Z <= h.Region.Max.Z
}

func (h *Homogeneous) Absorption(p rmath.Point3, _ rmath.Vector) color.Color {
	if !h.inside(p) {
		return color.Black
	}
	return h.SigA
}

func (h *Homogeneous) Scattering(p rmath.Point3, _ rmath.Vector) color.Color {
	if !h.inside(p) {
		return color.Black
	}
	return h.SigS
}

func (h *Homogeneous) Attenuation(p rmath.Point3, _ rmath.Vector) color.Color {
	if !h.inside(p) {
		return color.Black
	}
	return h.SigA.Add(h.SigS)
}

func (h *Homogeneous) Emission(p rmath.Point3, _ rmath.Vector) color.Color {
	if !h.inside(p) {
		return color.Black
	}
	return h.Emit
}

func (h *Homogeneous) OpticalThickness(ray rmath.Ray, _, _ float32) color.Color {
	t0, t1, ok := h.Intersect(ray)
	if !ok {
		return color.Black
	}
	dist := ray.At(t0).Distance(ray.At(t1))
	return h.SigA.Add(h.SigS).Scale(dist)
}

func (h *Homogeneous) Phase(p rmath.Point3, wi, wo rmath.Vector) float32 {
	if !h.inside(p) {
		return 0
	}
	return PhaseHenyeyGreenstein(wi, wo, h.PhaseAsymmetry)
}
