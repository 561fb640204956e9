package sampler

import (
	"math/rand"

	"github.com/mrigankad/tracer/core"
)

// Stratified divides the pixel into an nx*ny jittered grid so each
// sample's image-plane position is confined to its own cell, reducing
// clumping relative to Uniform at the same sample count (spec 4.6).
type Stratified struct {
	baseSampler
	nx, ny int
	cellX, cellY []float32
}

func NewStratified(nx, ny int, seed int64) *Stratified {
	s := &Stratified{
		baseSampler: baseSampler{rng: rand.New(rand.NewSource(seed)), samplesPerPixel: nx * ny},
		nx:          nx,
		ny:          ny,
	}
	return s
}

func (s *Stratified) StartPixel(x, y int) {
	s.baseSampler.StartPixel(x, y)
	n := s.nx * s.ny
	s.cellX = make([]float32, n)
	s.cellY = make([]float32, n)
	for i := 0; i < n; i++ {
		s.cellX[i] = float32(i%s.nx) + s.rng.Float32()
		s.cellY[i] = float32(i/s.nx) + s.rng.Float32()
	}
	// Fisher-Yates shuffle so successive samples (used together by other
	// per-sample draws) aren't correlated with their stratum index.
	for i := n - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		s.cellX[i], s.cellX[j] = s.cellX[j], s.cellX[i]
		s.cellY[i], s.cellY[j] = s.cellY[j], s.cellY[i]
	}
}

func (s *Stratified) GetCameraSample(lensSupported bool) core.Sample {
	idx := s.sampleIndex
	cam := core.Sample{
		ImgX: float32(s.px) + s.cellX[idx]/float32(s.nx),
		ImgY: float32(s.py) + s.cellY[idx]/float32(s.ny),
		Time: s.rng.Float32(),
	}
	if lensSupported {
		cam.LensU, cam.LensV = s.rng.Float32(), s.rng.Float32()
	}
	return cam
}

func (s *Stratified) Clone(seed int64) Sampler {
	return NewStratified(s.nx, s.ny, seed)
}
