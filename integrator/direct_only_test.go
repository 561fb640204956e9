package integrator

import (
	"testing"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/light"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/rmath"
)

func TestDirectOnlyLitSphereIsNonBlack(t *testing.T) {
	mat := material.NewMatte(color.New(0.8, 0.8, 0.8), 0)
	lt := light.NewPointLight(color.New(10, 10, 10), rmath.Point3{X: -3, Y: 3, Z: -3})
	scene := newSphereScene(mat, lt)

	d := NewDirectOnly()
	pool := material.NewPool()
	l := d.Illumination(scene, testCameraRay(), fixedSampler{0.5}, pool)
	if l.IsBlack() {
		t.Errorf("expected nonzero direct radiance on a lit diffuse sphere, got %v", l)
	}
}

func TestDirectOnlyMissIsBlack(t *testing.T) {
	mat := material.NewMatte(color.New(0.8, 0.8, 0.8), 0)
	lt := light.NewPointLight(color.New(10, 10, 10), rmath.Point3{X: -3, Y: 3, Z: -3})
	scene := newSphereScene(mat, lt)

	d := NewDirectOnly()
	pool := material.NewPool()
	missRay := rmath.NewRayDifferential(rmath.NewRay(rmath.Point3{X: 10, Y: 10, Z: -5}, rmath.Vector{Z: 1}))
	l := d.Illumination(scene, missRay, fixedSampler{0.5}, pool)
	if !l.IsBlack() {
		t.Errorf("expected black radiance for a ray that misses the scene, got %v", l)
	}
}
