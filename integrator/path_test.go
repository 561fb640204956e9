package integrator

import (
	"testing"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/light"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/rmath"
)

func TestNewPathPanicsWhenMinBouncesExceedsMaxDepth(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected NewPath to panic when MinBounces > MaxDepth")
		}
	}()
	NewPath(5, 2)
}

func TestPathLitSphereIsNonBlack(t *testing.T) {
	mat := material.NewMatte(color.New(0.8, 0.8, 0.8), 0)
	lt := light.NewPointLight(color.New(10, 10, 10), rmath.Point3{X: -3, Y: 3, Z: -3})
	scene := newSphereScene(mat, lt)

	p := NewPath(2, 6)
	pool := material.NewPool()
	l := p.Illumination(scene, testCameraRay(), fixedSampler{0.5}, pool)
	if l.IsBlack() {
		t.Errorf("expected nonzero radiance on a lit diffuse sphere, got %v", l)
	}
}

func TestPathMissIsBlack(t *testing.T) {
	mat := material.NewMatte(color.New(0.8, 0.8, 0.8), 0)
	lt := light.NewPointLight(color.New(10, 10, 10), rmath.Point3{X: -3, Y: 3, Z: -3})
	scene := newSphereScene(mat, lt)

	p := NewPath(2, 6)
	pool := material.NewPool()
	missRay := rmath.NewRayDifferential(rmath.NewRay(rmath.Point3{X: 10, Y: 10, Z: -5}, rmath.Vector{Z: 1}))
	l := p.Illumination(scene, missRay, fixedSampler{0.5}, pool)
	if !l.IsBlack() {
		t.Errorf("expected black radiance for a ray that misses the scene, got %v", l)
	}
}

func TestPathTerminatesWithinMaxDepthOnHighAlbedoSphere(t *testing.T) {
	mat := material.NewMatte(color.New(0.99, 0.99, 0.99), 0)
	lt := light.NewPointLight(color.New(5, 5, 5), rmath.Point3{X: -2, Y: 2, Z: -2})
	scene := newSphereScene(mat, lt)

	p := NewPath(1, 8)
	pool := material.NewPool()
	p.Illumination(scene, testCameraRay(), fixedSampler{0.9}, pool)
}
