package rmath

import "math"

// Ray is a parametric ray O + t*D, valid over [TMin, TMax]. Depth counts
// recursive bounces so far; Time supports motion blur via
// AnimatedTransform. Intersection routines update TMax monotonically: a
// successful hit sets TMax = t so any later test on the same ray is
// automatically clipped to "must be closer."
type Ray struct {
	Origin    Point3
	Direction Vector
	TMin      float32
	TMax      float32
	Depth     int
	Time      float32
}

func NewRay(origin Point3, dir Vector) Ray {
	return Ray{Origin: origin, Direction: dir, TMin: 1e-4, TMax: float32(math.Inf(1))}
}

func (r Ray) At(t float32) Point3 { return r.Origin.Add(r.Direction.Mul(t)) }

// RayDifferential extends Ray with two auxiliary rays representing the
// camera rays through neighboring pixels, used to estimate a texture
// filter footprint.
type RayDifferential struct {
	Ray
	RxOrigin, RyOrigin       Point3
	RxDirection, RyDirection Vector
	HasDifferentials         bool
}

func NewRayDifferential(r Ray) RayDifferential {
	return RayDifferential{Ray: r}
}

// ScaleDifferentials widens or narrows the auxiliary-ray footprint by s,
// keeping the differentials' offset from the main ray origin scaled by s.
func (rd *RayDifferential) ScaleDifferentials(s float32) {
	rd.RxOrigin = rd.Origin.Add(rd.RxOrigin.SubPoint(rd.Origin).Mul(s))
	rd.RyOrigin = rd.Origin.Add(rd.RyOrigin.SubPoint(rd.Origin).Mul(s))
	rd.RxDirection = rd.Direction.Add(rd.RxDirection.Sub(rd.Direction).Mul(s))
	rd.RyDirection = rd.Direction.Add(rd.RyDirection.Sub(rd.Direction).Mul(s))
}
