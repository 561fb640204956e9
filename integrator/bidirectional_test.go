package integrator

import (
	"math"
	"testing"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/light"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/rmath"
)

func TestBidirPathNoLightsIsBlack(t *testing.T) {
	mat := material.NewMatte(color.New(0.8, 0.8, 0.8), 0)
	scene := newSphereScene(mat, light.NewPointLight(color.Black, rmath.Point3{}))
	scene.lights = nil

	b := NewBidirPath(4)
	pool := material.NewPool()
	l := b.Illumination(scene, testCameraRay(), fixedSampler{0.5}, pool)
	if !l.IsBlack() {
		t.Errorf("expected black radiance when the scene has no lights, got %v", l)
	}
}

func TestBidirPathProducesFiniteRadianceOnLitSphere(t *testing.T) {
	mat := material.NewMatte(color.New(0.8, 0.8, 0.8), 0)
	lt := light.NewAmbientLight(color.New(1, 1, 1), 10)
	scene := newSphereScene(mat, lt)

	b := NewBidirPath(4)
	pool := material.NewPool()
	l := b.Illumination(scene, testCameraRay(), fixedSampler{0.5}, pool)
	if math.IsNaN(float64(l.R)) || math.IsInf(float64(l.R), 0) {
		t.Errorf("expected finite radiance connecting camera and light subpaths, got %v", l)
	}
}

func TestBidirPathMissIsBlack(t *testing.T) {
	mat := material.NewMatte(color.New(0.8, 0.8, 0.8), 0)
	lt := light.NewAmbientLight(color.New(1, 1, 1), 10)
	scene := newSphereScene(mat, lt)

	b := NewBidirPath(4)
	pool := material.NewPool()
	missRay := rmath.NewRayDifferential(rmath.NewRay(rmath.Point3{X: 10, Y: 10, Z: -5}, rmath.Vector{Z: 1}))
	l := b.Illumination(scene, missRay, fixedSampler{0.5}, pool)
	if !l.IsBlack() {
		t.Errorf("expected black radiance for a camera ray that misses the scene, got %v", l)
	}
}
