package sampler

import (
	"math/rand"

	"github.com/mrigankad/tracer/core"
)

// Uniform draws every sample coordinate independently and uniformly.
type Uniform struct {
	baseSampler
}

func NewUniform(samplesPerPixel int, seed int64) *Uniform {
	return &Uniform{baseSampler{rng: rand.New(rand.NewSource(seed)), samplesPerPixel: samplesPerPixel}}
}

func (u *Uniform) GetCameraSample(lensSupported bool) core.Sample {
	s := core.Sample{
		ImgX: float32(u.px) + u.rng.Float32(),
		ImgY: float32(u.py) + u.rng.Float32(),
		Time: u.rng.Float32(),
	}
	if lensSupported {
		s.LensU, s.LensV = u.rng.Float32(), u.rng.Float32()
	}
	return s
}

func (u *Uniform) Clone(seed int64) Sampler {
	return NewUniform(u.samplesPerPixel, seed)
}
