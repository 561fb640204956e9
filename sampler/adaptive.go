package sampler

import (
	"math"

	"github.com/mrigankad/tracer/core"
)

// pixelStats tracks the running luminance mean/variance for one pixel so
// Adaptive can decide when to stop, mirroring the accumulator used by
// other progressive renderers in the pack.
type pixelStats struct {
	luminanceAccum   float64
	luminanceSqAccum float64
	count            int
}

func (ps *pixelStats) addSample(luminance float32) {
	l := float64(luminance)
	ps.luminanceAccum += l
	ps.luminanceSqAccum += l * l
	ps.count++
}

// Adaptive samples a pixel up to MaxSamples, stopping early once the
// estimated relative error of the running mean falls under Threshold.
// Unlike Uniform/Stratified/LowDiscrepancy, the number of samples taken
// isn't fixed per pixel, so Adaptive doesn't embed baseSampler's
// StartNextSample and instead tracks convergence itself; it still hands
// out image-plane positions via an internal LowDiscrepancy sequence.
type Adaptive struct {
	seq *LowDiscrepancy

	MinSamples      int
	MaxSamples      int
	Threshold       float32
	DarkThreshold   float32

	stats pixelStats
}

func NewAdaptive(minSamples, maxSamples int, threshold, darkThreshold float32, seed int64) *Adaptive {
	return &Adaptive{
		seq:           NewLowDiscrepancy(maxSamples, seed),
		MinSamples:    minSamples,
		MaxSamples:    maxSamples,
		Threshold:     threshold,
		DarkThreshold: darkThreshold,
	}
}

func (a *Adaptive) StartPixel(x, y int) {
	a.seq.StartPixel(x, y)
	a.stats = pixelStats{}
}

// StartNextSample reports whether another sample should be taken: never
// before MinSamples, never past MaxSamples, and in between only while the
// running estimate hasn't converged per shouldStop.
func (a *Adaptive) StartNextSample() bool {
	if a.stats.count >= a.MaxSamples {
		return false
	}
	if a.stats.count >= a.MinSamples && a.shouldStop() {
		return false
	}
	return a.seq.StartNextSample()
}

func (a *Adaptive) shouldStop() bool {
	n := float64(a.stats.count)
	mean := a.stats.luminanceAccum / n
	meanSq := a.stats.luminanceSqAccum / n
	variance := math.Max(0, meanSq-mean*mean)

	if mean <= 1e-8 {
		return variance < float64(a.DarkThreshold)
	}
	relativeError := math.Sqrt(variance) / mean
	return relativeError < float64(a.Threshold)
}

// AddRadianceSample feeds the luminance of an evaluated path back into the
// convergence estimate. The render worker calls this once per sample after
// integrating the camera ray, before asking StartNextSample whether to
// continue.
func (a *Adaptive) AddRadianceSample(luminance float32) {
	a.stats.addSample(luminance)
}

func (a *Adaptive) SamplesTaken() int { return a.stats.count }

func (a *Adaptive) GetCameraSample(lensSupported bool) core.Sample {
	return a.seq.GetCameraSample(lensSupported)
}

func (a *Adaptive) Get1D() float32 { return a.seq.Get1D() }

func (a *Adaptive) Get2D() (float32, float32) { return a.seq.Get2D() }

func (a *Adaptive) SamplesPerPixel() int { return a.MaxSamples }

func (a *Adaptive) Clone(seed int64) Sampler {
	return &Adaptive{
		seq:           NewLowDiscrepancy(a.MaxSamples, seed),
		MinSamples:    a.MinSamples,
		MaxSamples:    a.MaxSamples,
		Threshold:     a.Threshold,
		DarkThreshold: a.DarkThreshold,
	}
}
