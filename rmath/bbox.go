package rmath

import "math"

// BBox is an axis-aligned bounding box. The zero value is not the empty
// box; use BBoxEmpty() so Union composes from the identity.
type BBox struct {
	Min, Max Point3
}

func BBoxEmpty() BBox {
	inf := float32(math.Inf(1))
	return BBox{
		Min: Point3{inf, inf, inf},
		Max: Point3{-inf, -inf, -inf},
	}
}

func BBoxFromPoint(p Point3) BBox { return BBox{Min: p, Max: p} }

func BBoxFromPoints(a, b Point3) BBox {
	return BBox{
		Min: Point3{minf(a.X, b.X), minf(a.Y, b.Y), minf(a.Z, b.Z)},
		Max: Point3{maxf(a.X, b.X), maxf(a.Y, b.Y), maxf(a.Z, b.Z)},
	}
}

func (b BBox) UnionPoint(p Point3) BBox {
	return BBox{
		Min: Point3{minf(b.Min.X, p.X), minf(b.Min.Y, p.Y), minf(b.Min.Z, p.Z)},
		Max: Point3{maxf(b.Max.X, p.X), maxf(b.Max.Y, p.Y), maxf(b.Max.Z, p.Z)},
	}
}

func (b BBox) Union(o BBox) BBox {
	return BBox{
		Min: Point3{minf(b.Min.X, o.Min.X), minf(b.Min.Y, o.Min.Y), minf(b.Min.Z, o.Min.Z)},
		Max: Point3{maxf(b.Max.X, o.Max.X), maxf(b.Max.Y, o.Max.Y), maxf(b.Max.Z, o.Max.Z)},
	}
}

func (b BBox) Overlaps(o BBox) bool {
	x := b.Max.X >= o.Min.X && b.Min.X <= o.Max.X
	y := b.Max.Y >= o.Min.Y && b.Min.Y <= o.Max.Y
	z := b.Max.Z >= o.Min.Z && b.Min.Z <= o.Max.Z
	return x && y && z
}

func (b BBox) Diagonal() Vector { return b.Max.SubPoint(b.Min) }

func (b BBox) SurfaceArea() float32 {
	d := b.Diagonal()
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

func (b BBox) Volume() float32 {
	d := b.Diagonal()
	return d.X * d.Y * d.Z
}

// LongestAxis returns 0, 1 or 2 for X, Y, Z.
func (b BBox) LongestAxis() int {
	d := b.Diagonal()
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

// Corner returns one of the 8 box corners, indexed by the low bit of each
// axis (0 = Min on that axis, 1 = Max).
func (b BBox) Corner(i int) Point3 {
	pick := func(axis int, lo, hi float32) float32 {
		if i&(1<<uint(axis)) != 0 {
			return hi
		}
		return lo
	}
	return Point3{
		X: pick(0, b.Min.X, b.Max.X),
		Y: pick(1, b.Min.Y, b.Max.Y),
		Z: pick(2, b.Min.Z, b.Max.Z),
	}
}

// Offset maps p into [0,1]^3 relative to the box, used by BVH bucketing.
func (b BBox) Offset(p Point3) Vector {
	o := p.SubPoint(b.Min)
	d := b.Diagonal()
	if d.X > 0 {
		o.X /= d.X
	}
	if d.Y > 0 {
		o.Y /= d.Y
	}
	if d.Z > 0 {
		o.Z /= d.Z
	}
	return o
}

// IntersectP implements the sign-aware slab test from spec 4.2: precompute
// invDir including +/-Inf for zero components, pick bounds by the sign of
// invDir, and return the entry/exit parameters. Returns intersection iff
// tEnter <= ray.TMax && tExit >= ray.TMin.
func (b BBox) IntersectP(ray Ray, invDir Vector, negDir [3]bool) (tEnter, tExit float32, hit bool) {
	bounds := [2]Point3{b.Min, b.Max}

	idx := func(neg bool) int {
		if neg {
			return 1
		}
		return 0
	}

	tMin := (bounds[idx(negDir[0])].X - ray.Origin.X) * invDir.X
	tMax := (bounds[1-idx(negDir[0])].X - ray.Origin.X) * invDir.X
	tyMin := (bounds[idx(negDir[1])].Y - ray.Origin.Y) * invDir.Y
	tyMax := (bounds[1-idx(negDir[1])].Y - ray.Origin.Y) * invDir.Y

	if tMin > tyMax || tyMin > tMax {
		return 0, 0, false
	}
	if tyMin > tMin {
		tMin = tyMin
	}
	if tyMax < tMax {
		tMax = tyMax
	}

	tzMin := (bounds[idx(negDir[2])].Z - ray.Origin.Z) * invDir.Z
	tzMax := (bounds[1-idx(negDir[2])].Z - ray.Origin.Z) * invDir.Z

	if tMin > tzMax || tzMin > tMax {
		return 0, 0, false
	}
	if tzMin > tMin {
		tMin = tzMin
	}
	if tzMax < tMax {
		tMax = tzMax
	}

	if tMin <= ray.TMax && tMax >= ray.TMin {
		return tMin, tMax, true
	}
	return tMin, tMax, false
}

// InvDir precomputes the ray's componentwise reciprocal direction plus the
// sign bits used by IntersectP and the BVH traversal.
func InvDir(d Vector) (inv Vector, neg [3]bool) {
	inv = Vector{X: 1 / d.X, Y: 1 / d.Y, Z: 1 / d.Z}
	neg = [3]bool{inv.X < 0, inv.Y < 0, inv.Z < 0}
	return
}
