// Package integrator implements the surface light-transport estimators of
// spec 4.11/4.12: Whitted recursive ray tracing, unidirectional path
// tracing with Russian roulette, bidirectional path tracing, and (from
// original_source, supplemented) a direct-lighting-only preview
// integrator. Every integrator shares the estimate_direct multiple
// importance sampling helper. Grounded on
// original_source/include/integrator/{whitted,path,bidirectional,
// direct_lighting}_integrator.h for control flow, translated from the
// original's virtual-dispatch Renderer/Integrator split into the
// teacher-style small-interface-plus-concrete-struct idiom used
// throughout this repo.
package integrator

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/light"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/rmath"
	"github.com/mrigankad/tracer/volume"
)

// Scene is the narrow surface every integrator needs: a first-hit query,
// a shadow-ray query, and the light/volume data built at scene-load time.
// Defined here (the consumer) rather than in render, so render can depend
// on integrator without a cycle.
type Scene interface {
	Intersect(ray rmath.Ray) (*core.DifferentialGeometry, float32, bool)
	IntersectP(ray rmath.Ray) bool
	Lights() []light.Light
	Volume() volume.Volume
	VolumeIntegrator() volume.Integrator
}

// Sampler is the subset of sampler.Sampler an integrator consumes.
type Sampler interface {
	Get1D() float32
	Get2D() (float32, float32)
}

// Surface is implemented by every surface integrator.
type Surface interface {
	Illumination(scene Scene, ray rmath.RayDifferential, sampler Sampler, p *material.Pool) color.Color
}
