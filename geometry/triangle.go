package geometry

import (
	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/rmath"
)

// TriMesh holds shared, per-mesh vertex data; individual Triangles index
// into it so transforms and normals are stored once per mesh rather than
// once per face, matching the teacher's shared-vertex-buffer layout
// (mrigankad-gorenderengine/scene/mesh.go) instead of per-triangle copies.
type TriMesh struct {
	Positions []rmath.Point3
	Normals   []rmath.Normal3 // optional, len 0 or len(Positions)
	UVs       [][2]float32    // optional, len 0 or len(Positions)
	Indices   []int           // 3 per triangle
}

// Triangles returns one Shape per face of the mesh.
func (m *TriMesh) Triangles() []Shape {
	n := len(m.Indices) / 3
	out := make([]Shape, n)
	for i := 0; i < n; i++ {
		out[i] = &Triangle{Mesh: m, i0: m.Indices[3*i], i1: m.Indices[3*i+1], i2: m.Indices[3*i+2]}
	}
	return out
}

// Triangle is a single face of a TriMesh, intersected with Möller-Trumbore,
// grounded directly on the teacher's editor/raycast.go mollerTrumbore.
type Triangle struct {
	base
	Mesh         *TriMesh
	i0, i1, i2   int
}

const triangleEpsilon = 1e-7

func (t *Triangle) verts() (v0, v1, v2 rmath.Point3) {
	return t.Mesh.Positions[t.i0], t.Mesh.Positions[t.i1], t.Mesh.Positions[t.i2]
}

func (t *Triangle) ObjectBound() rmath.BBox {
	v0, v1, v2 := t.verts()
	return rmath.BBoxFromPoint(v0).UnionPoint(v1).UnionPoint(v2)
}

func (t *Triangle) mollerTrumbore(ray rmath.Ray) (tHit, u, v float32, ok bool) {
	v0, v1, v2 := t.verts()
	edge1 := v1.SubPoint(v0)
	edge2 := v2.SubPoint(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -triangleEpsilon && a < triangleEpsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / a
	s := ray.Origin.SubPoint(v0)
	u = f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	tHit = f * edge2.Dot(q)
	if tHit < ray.TMin || tHit > ray.TMax {
		return 0, 0, 0, false
	}
	return tHit, u, v, true
}

func (t *Triangle) Intersect(ray rmath.Ray) (*core.DifferentialGeometry, float32, bool) {
	tHit, b1, b2, ok := t.mollerTrumbore(ray)
	if !ok {
		return nil, 0, false
	}
	b0 := 1 - b1 - b2
	v0, v1, v2 := t.verts()
	p := ray.At(tHit)

	edge1 := v1.SubPoint(v0)
	edge2 := v2.SubPoint(v0)
	geomN := edge1.Cross(edge2).Normalize().ToNormal()

	var uv [3][2]float32 = [3][2]float32{{0, 0}, {1, 0}, {1, 1}}
	if len(t.Mesh.UVs) == len(t.Mesh.Positions) {
		uv[0], uv[1], uv[2] = t.Mesh.UVs[t.i0], t.Mesh.UVs[t.i1], t.Mesh.UVs[t.i2]
	}
	u := b0*uv[0][0] + b1*uv[1][0] + b2*uv[2][0]
	v := b0*uv[0][1] + b1*uv[1][1] + b2*uv[2][1]

	dpdu, dpdv := triangleTangents(v0, v1, v2, uv)

	shadingN := geomN
	if len(t.Mesh.Normals) == len(t.Mesh.Positions) {
		n0, n1, n2 := t.Mesh.Normals[t.i0], t.Mesh.Normals[t.i1], t.Mesh.Normals[t.i2]
		shadingN = n0.Mul(b0).Add(n1.Mul(b1)).Add(n2.Mul(b2)).Normalize()
		shadingN = shadingN.FaceForward(geomN.ToVector())
	}

	dg := &core.DifferentialGeometry{
		Point:         p,
		GeomNormal:    t.faceForward(geomN),
		ShadingNormal: t.faceForward(shadingN),
		DPDU:          dpdu,
		DPDV:          dpdv,
		U:             u,
		V:             v,
	}
	return dg, tHit, true
}

// triangleTangents solves for dp/du, dp/dv from the triangle's UV
// parameterization, falling back to an arbitrary orthonormal basis when
// the UVs are degenerate.
func triangleTangents(v0, v1, v2 rmath.Point3, uv [3][2]float32) (dpdu, dpdv rmath.Vector) {
	du1, dv1 := uv[1][0]-uv[0][0], uv[1][1]-uv[0][1]
	du2, dv2 := uv[2][0]-uv[0][0], uv[2][1]-uv[0][1]
	e1 := v1.SubPoint(v0)
	e2 := v2.SubPoint(v0)
	det := du1*dv2 - dv1*du2
	if absf(det) < 1e-9 {
		n := e1.Cross(e2).Normalize()
		dpdu, dpdv = rmath.CoordinateSystem(n)
		return
	}
	invDet := 1 / det
	dpdu = e1.Mul(dv2 * invDet).Sub(e2.Mul(dv1 * invDet))
	dpdv = e2.Mul(du1 * invDet).Sub(e1.Mul(du2 * invDet))
	return
}

func (t *Triangle) IntersectP(ray rmath.Ray) bool {
	_, _, _, ok := t.mollerTrumbore(ray)
	return ok
}

func (t *Triangle) SurfaceArea() float32 {
	v0, v1, v2 := t.verts()
	return 0.5 * v1.SubPoint(v0).Cross(v2.SubPoint(v0)).Length()
}

func (t *Triangle) Sample(u1, u2 float32) (rmath.Point3, rmath.Normal3) {
	v0, v1, v2 := t.verts()
	su1 := sqrtf(u1)
	b0 := 1 - su1
	b1 := u2 * su1
	b2 := 1 - b0 - b1
	p := rmath.Point3{
		X: b0*v0.X + b1*v1.X + b2*v2.X,
		Y: b0*v0.Y + b1*v1.Y + b2*v2.Y,
		Z: b0*v0.Z + b1*v1.Z + b2*v2.Z,
	}
	n := v1.SubPoint(v0).Cross(v2.SubPoint(v0)).Normalize().ToNormal()
	return p, t.faceForward(n)
}

func (t *Triangle) Pdf(rmath.Point3) float32 { return 1 / t.SurfaceArea() }
