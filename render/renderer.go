package render

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/integrator"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/rmath"
)

// Renderer pairs a surface integrator with the scene's own volume
// integrator (spec 6: "a renderer (surface integrator + optional volume
// integrator)"). When the scene carries no participating media,
// Illumination is exactly the surface term.
type Renderer struct {
	Surface integrator.Surface
}

func NewRenderer(surface integrator.Surface) *Renderer {
	return &Renderer{Surface: surface}
}

// Illumination evaluates the surface term along rd, then folds in the
// scene's participating media: the volume's own in-scattered/emitted
// radiance is added, and the surface term is attenuated by the beam
// transmittance through the medium between the camera and the first
// surface hit.
func (r *Renderer) Illumination(scene *Scene, rd rmath.RayDifferential, sampler integrator.Sampler, pool *material.Pool) color.Color {
	l := r.Surface.Illumination(scene, rd, sampler, pool)

	vol := scene.Volume()
	if vol == nil || scene.VolumeIntegrator() == nil {
		return l
	}
	volRadiance, transmit := scene.VolumeIntegrator().Radiance(vol, rd.Ray, sampler)
	return volRadiance.Add(l.Mul(transmit))
}
