package film

import (
	"math"
	"sync"
	"testing"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/filter"
)

func TestWritePixelCenterReconstructsExactColor(t *testing.T) {
	rt := NewRenderTarget(4, 4, filter.NewBox(0.5, 0.5))
	c := color.New(0.2, 0.4, 0.6)
	for i := 0; i < 10; i++ {
		rt.WritePixel(2.0, 2.0, c)
	}
	got := rt.GetPixel(2, 2)
	if absf(got.R-c.R) > 1e-4 || absf(got.G-c.G) > 1e-4 || absf(got.B-c.B) > 1e-4 {
		t.Errorf("reconstructed color = %v, want %v", got, c)
	}
}

func TestWritePixelAveragesMultipleSamples(t *testing.T) {
	rt := NewRenderTarget(1, 1, filter.NewBox(0.5, 0.5))
	rt.WritePixel(0.5, 0.5, color.New(1, 0, 0))
	rt.WritePixel(0.5, 0.5, color.New(0, 1, 0))
	got := rt.GetPixel(0, 0)
	if absf(got.R-0.5) > 1e-4 || absf(got.G-0.5) > 1e-4 {
		t.Errorf("expected averaged color ~(0.5,0.5,0), got %v", got)
	}
}

func TestEmptyPixelIsBlack(t *testing.T) {
	rt := NewRenderTarget(2, 2, filter.NewBox(0.5, 0.5))
	got := rt.GetPixel(1, 1)
	if got != color.Black {
		t.Errorf("expected black for unwritten pixel, got %v", got)
	}
}

func TestConcurrentWritesDontLoseSamples(t *testing.T) {
	rt := NewRenderTarget(1, 1, filter.NewBox(0.5, 0.5))
	const n = 500
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rt.WritePixel(0.5, 0.5, color.New(1, 1, 1))
		}()
	}
	wg.Wait()
	got := rt.GetPixel(0, 0)
	if absf(got.R-1) > 1e-3 {
		t.Errorf("expected concurrent writes to average to white, got %v", got)
	}
}

func TestNonFiniteSampleIsDropped(t *testing.T) {
	rt := NewRenderTarget(1, 1, filter.NewBox(0.5, 0.5))
	rt.WritePixel(0.5, 0.5, color.New(1, 1, 1))
	rt.WritePixel(0.5, 0.5, color.New(float32(math.Inf(1)), 0, 0))
	got := rt.GetPixel(0, 0)
	if absf(got.R-1) > 1e-4 {
		t.Errorf("expected non-finite sample to be ignored, got %v", got)
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
