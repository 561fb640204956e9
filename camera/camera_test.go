package camera

import (
	"math"
	"testing"

	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/rmath"
)

func TestGenerateRayPassesThroughImageCenter(t *testing.T) {
	camToWorld := rmath.TransformIdentity()
	c := New(camToWorld, math.Pi/2, 100, 100, 0, 10)
	ray := c.GenerateRay(core.Sample{ImgX: 50, ImgY: 50})
	if ray.Direction.X > 0.01 || ray.Direction.Y > 0.01 {
		t.Errorf("center ray direction = %v, want roughly straight ahead", ray.Direction)
	}
	if ray.Direction.Z <= 0 {
		t.Errorf("expected center ray to point into the scene (+Z), got %v", ray.Direction)
	}
}

func TestGenerateRayCornersDivergeFromCenter(t *testing.T) {
	camToWorld := rmath.TransformIdentity()
	c := New(camToWorld, math.Pi/2, 100, 100, 0, 10)
	center := c.GenerateRay(core.Sample{ImgX: 50, ImgY: 50})
	corner := c.GenerateRay(core.Sample{ImgX: 0, ImgY: 0})
	if corner.Direction == center.Direction {
		t.Errorf("expected corner ray to differ from center ray")
	}
}

func TestGenerateRayDifferentialProducesDistinctAuxRays(t *testing.T) {
	camToWorld := rmath.TransformIdentity()
	c := New(camToWorld, math.Pi/2, 64, 64, 0, 10)
	rd := c.GenerateRayDifferential(core.Sample{ImgX: 32, ImgY: 32})
	if !rd.HasDifferentials {
		t.Fatal("expected HasDifferentials to be true")
	}
	if rd.RxDirection == rd.RyDirection {
		t.Errorf("expected distinct x/y auxiliary ray directions")
	}
}

func TestLensSampleRefocusesRayThroughFocalPlane(t *testing.T) {
	camToWorld := rmath.TransformIdentity()
	c := New(camToWorld, math.Pi/2, 32, 32, 0.1, 5)
	ray := c.GenerateRay(core.Sample{ImgX: 16, ImgY: 16, LensU: 0.8, LensV: 0.3})
	if ray.Origin.X == 0 && ray.Origin.Y == 0 {
		t.Errorf("expected lens sample to offset ray origin off the axis")
	}
}
