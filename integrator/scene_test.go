package integrator

import (
	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/geometry"
	"github.com/mrigankad/tracer/light"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/rmath"
	"github.com/mrigankad/tracer/scenegraph"
	"github.com/mrigankad/tracer/volume"
)

// testScene is a minimal Scene backed by a flat node list, enough to
// exercise the integrators without the BVH or render packages.
type testScene struct {
	nodes  []*scenegraph.Node
	lights []light.Light
	vol    volume.Volume
	volInt volume.Integrator
}

func (s *testScene) Intersect(ray rmath.Ray) (*core.DifferentialGeometry, float32, bool) {
	var bestDG *core.DifferentialGeometry
	bestT := ray.TMax
	hit := false
	for _, n := range s.nodes {
		if dg, t, ok := n.Intersect(ray); ok && t < bestT {
			bestDG, bestT, hit = dg, t, true
			ray.TMax = t
		}
	}
	return bestDG, bestT, hit
}

func (s *testScene) IntersectP(ray rmath.Ray) bool {
	for _, n := range s.nodes {
		if n.IntersectP(ray) {
			return true
		}
	}
	return false
}

func (s *testScene) Lights() []light.Light               { return s.lights }
func (s *testScene) Volume() volume.Volume                { return s.vol }
func (s *testScene) VolumeIntegrator() volume.Integrator { return s.volInt }

// fixedSampler returns the same deterministic value sequence for every
// call, enough to drive a single evaluation of an integrator
// deterministically in a test.
type fixedSampler struct {
	v float32
}

func (f fixedSampler) Get1D() float32          { return f.v }
func (f fixedSampler) Get2D() (float32, float32) { return f.v, f.v }

func newSphereScene(mat material.Material, lt light.Light) *testScene {
	n := scenegraph.NewNode("sphere")
	n.Shape = geometry.NewSphere(1)
	n.Material = mat
	n.SetLocal(rmath.TransformIdentity())

	return &testScene{
		nodes:  []*scenegraph.Node{n},
		lights: []light.Light{lt},
	}
}

func testCameraRay() rmath.RayDifferential {
	return rmath.NewRayDifferential(rmath.NewRay(rmath.Point3{X: 0, Y: 0, Z: -5}, rmath.Vector{Z: 1}))
}
