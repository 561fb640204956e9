// Package core holds the small shared value types that flow between every
// other package: the differential-geometry hit record and the samples
// drawn by a Sampler. Adapted from the teacher engine's plain-struct style
// (mrigankad-gorenderengine/core/types.go), generalized from GPU vertex/
// viewport bookkeeping to the path tracer's per-hit bookkeeping.
package core

import "github.com/mrigankad/tracer/rmath"

// HitSide classifies which side of a surface a ray hit.
type HitSide int

const (
	HitSideNone HitSide = iota
	HitSideFront
	HitSideBack
)

// DifferentialGeometry is the full local description of a surface hit, in
// the geometry's own object space (spec 3). The scene graph transforms it
// to world space. Derivatives (DUDx etc.) are filled lazily from a
// RayDifferential via ComputeDifferentials.
type DifferentialGeometry struct {
	Point         rmath.Point3
	ShadingNormal rmath.Normal3
	GeomNormal    rmath.Normal3
	DPDU, DPDV    rmath.Vector
	DNDU, DNDV    rmath.Normal3
	U, V          float32
	DUDx, DUDy    float32
	DVDx, DVDy    float32
	Side          HitSide
	Node          interface{} // *scenegraph.Node; interface{} avoids an import cycle
}

// ComputeDifferentials fills DUDx/DUDy/DVDx/DVDy by intersecting the
// RayDifferential's auxiliary rays with the tangent plane at dg.Point, per
// spec 3/4.1. Falls back to zero derivatives when the ray carries none.
func (dg *DifferentialGeometry) ComputeDifferentials(rd rmath.RayDifferential) {
	if !rd.HasDifferentials {
		dg.DUDx, dg.DUDy, dg.DVDx, dg.DVDy = 0, 0, 0, 0
		return
	}

	n := dg.GeomNormal
	d := -n.Dot(dg.Point.ToVector())

	txNum := -n.Dot(rd.RxOrigin.ToVector()) - d
	txDen := n.Dot(rd.RxDirection)
	tyNum := -n.Dot(rd.RyOrigin.ToVector()) - d
	tyDen := n.Dot(rd.RyDirection)

	if txDen == 0 || tyDen == 0 {
		dg.DUDx, dg.DUDy, dg.DVDx, dg.DVDy = 0, 0, 0, 0
		return
	}

	tx := txNum / txDen
	ty := tyNum / tyDen

	px := rd.RxOrigin.Add(rd.RxDirection.Mul(tx))
	py := rd.RyOrigin.Add(rd.RyDirection.Mul(ty))

	dpdx := px.SubPoint(dg.Point)
	dpdy := py.SubPoint(dg.Point)

	// Solve the 2x2 system [dpdu dpdv][du dv]^T = dpdx for (du,dv).
	a00 := dg.DPDU.Dot(dg.DPDU)
	a01 := dg.DPDU.Dot(dg.DPDV)
	a11 := dg.DPDV.Dot(dg.DPDV)
	det := a00*a11 - a01*a01
	if det == 0 {
		dg.DUDx, dg.DUDy, dg.DVDx, dg.DVDy = 0, 0, 0, 0
		return
	}
	invDet := 1 / det

	bx0 := dg.DPDU.Dot(dpdx)
	bx1 := dg.DPDV.Dot(dpdx)
	dg.DUDx = (a11*bx0 - a01*bx1) * invDet
	dg.DVDx = (a00*bx1 - a01*bx0) * invDet

	by0 := dg.DPDU.Dot(dpdy)
	by1 := dg.DPDV.Dot(dpdy)
	dg.DUDy = (a11*by0 - a01*by1) * invDet
	dg.DVDy = (a00*by1 - a01*by0) * invDet
}

// Sample is a triple of two [0,1)^2 draws plus an optional time (spec 3).
// ImgX/ImgY are continuous image coordinates.
type Sample struct {
	ImgX, ImgY   float32
	LensU, LensV float32
	Time         float32
}
