package sampler

import (
	"math/rand"

	"github.com/mrigankad/tracer/core"
)

// LowDiscrepancy draws image-plane positions from a (0,2)-sequence: the
// first dimension is the base-2 radical inverse (van der Corput) of the
// sample index, the second is its Sobol-sequence counterpart, following
// the construction spec 4.6 names. Both sequences are scrambled per
// pixel with a random XOR mask so adjacent pixels don't share the exact
// same low-discrepancy pattern (visible as banding otherwise).
type LowDiscrepancy struct {
	baseSampler
	scrambleX, scrambleY uint32
}

func NewLowDiscrepancy(samplesPerPixel int, seed int64) *LowDiscrepancy {
	return &LowDiscrepancy{baseSampler: baseSampler{rng: rand.New(rand.NewSource(seed)), samplesPerPixel: samplesPerPixel}}
}

func (l *LowDiscrepancy) StartPixel(x, y int) {
	l.baseSampler.StartPixel(x, y)
	l.scrambleX = l.rng.Uint32()
	l.scrambleY = l.rng.Uint32()
}

// vanDerCorput computes the base-2 radical inverse of n, XOR-scrambled.
func vanDerCorput(n uint32, scramble uint32) float32 {
	n = (n << 16) | (n >> 16)
	n = ((n & 0x00ff00ff) << 8) | ((n & 0xff00ff00) >> 8)
	n = ((n & 0x0f0f0f0f) << 4) | ((n & 0xf0f0f0f0) >> 4)
	n = ((n & 0x33333333) << 2) | ((n & 0xcccccccc) >> 2)
	n = ((n & 0x55555555) << 1) | ((n & 0xaaaaaaaa) >> 1)
	n ^= scramble
	return float32(n) / float32(1<<32)
}

// sobol2 is the second dimension of a (0,2)-sequence (the "Sobol" direction
// for base 2), generated via the classic Gray-code recurrence.
func sobol2(n uint32, scramble uint32) float32 {
	var v uint32
	for c := uint32(1 << 31); n != 0; n >>= 1 {
		if n&1 != 0 {
			v ^= c
		}
		c ^= c >> 1
	}
	v ^= scramble
	return float32(v) / float32(1<<32)
}

func (l *LowDiscrepancy) GetCameraSample(lensSupported bool) core.Sample {
	idx := uint32(l.sampleIndex)
	cam := core.Sample{
		ImgX: float32(l.px) + vanDerCorput(idx, l.scrambleX),
		ImgY: float32(l.py) + sobol2(idx, l.scrambleY),
		Time: l.rng.Float32(),
	}
	if lensSupported {
		cam.LensU, cam.LensV = l.rng.Float32(), l.rng.Float32()
	}
	return cam
}

func (l *LowDiscrepancy) Clone(seed int64) Sampler {
	return NewLowDiscrepancy(l.samplesPerPixel, seed)
}
