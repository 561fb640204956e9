package sampler

import "testing"

func TestUniformCoversAllSamples(t *testing.T) {
	u := NewUniform(4, 1)
	u.StartPixel(2, 3)
	n := 0
	for u.StartNextSample() {
		s := u.GetCameraSample(false)
		if s.ImgX < 2 || s.ImgX > 3 || s.ImgY < 3 || s.ImgY > 4 {
			t.Errorf("sample outside pixel bounds: %v", s)
		}
		n++
	}
	if n != 4 {
		t.Errorf("expected 4 samples, got %d", n)
	}
}

func TestStratifiedFillsEveryCellOnce(t *testing.T) {
	s := NewStratified(2, 2, 7)
	s.StartPixel(0, 0)
	n := 0
	cells := map[[2]int]int{}
	for s.StartNextSample() {
		samp := s.GetCameraSample(false)
		if samp.ImgX < 0 || samp.ImgX > 1 || samp.ImgY < 0 || samp.ImgY > 1 {
			t.Errorf("sample outside pixel bounds: %v", samp)
		}
		cells[[2]int{int(samp.ImgX * 2), int(samp.ImgY * 2)}]++
		n++
	}
	if n != 4 {
		t.Errorf("expected 4 samples, got %d", n)
	}
	if len(cells) != 4 {
		t.Errorf("expected each of the 4 cells hit exactly once, got %v", cells)
	}
}

func TestLowDiscrepancyDeterministicPerSeed(t *testing.T) {
	a := NewLowDiscrepancy(8, 42)
	b := NewLowDiscrepancy(8, 42)
	a.StartPixel(1, 1)
	b.StartPixel(1, 1)
	a.StartNextSample()
	b.StartNextSample()
	sa := a.GetCameraSample(false)
	sb := b.GetCameraSample(false)
	if sa.ImgX != sb.ImgX {
		t.Errorf("expected scrambleX to be deterministic for equal seeds, got %v vs %v", sa.ImgX, sb.ImgX)
	}
}

func TestVanDerCorputStaysInUnitRange(t *testing.T) {
	for n := uint32(0); n < 32; n++ {
		v := vanDerCorput(n, 0)
		if v < 0 || v >= 1 {
			t.Errorf("vanDerCorput(%d) = %v, want in [0,1)", n, v)
		}
	}
}

func TestAdaptiveStopsEarlyOnConvergedConstantRadiance(t *testing.T) {
	a := NewAdaptive(8, 256, 0.05, 1e-4, 3)
	a.StartPixel(0, 0)
	taken := 0
	for a.StartNextSample() {
		a.AddRadianceSample(1.0)
		taken++
	}
	if taken >= 256 {
		t.Errorf("expected adaptive sampler to converge before max samples, took %d", taken)
	}
	if taken < 8 {
		t.Errorf("expected at least MinSamples=8 samples, took %d", taken)
	}
}

func TestAdaptiveRespectsMaxSamplesOnHighVariance(t *testing.T) {
	a := NewAdaptive(4, 16, 1e-6, 1e-9, 9)
	a.StartPixel(0, 0)
	taken := 0
	toggle := float32(0)
	for a.StartNextSample() {
		toggle = 1 - toggle
		a.AddRadianceSample(toggle * 100)
		taken++
	}
	if taken != 16 {
		t.Errorf("expected adaptive sampler to use all 16 samples on noisy input, took %d", taken)
	}
}
