// Package film implements the filtered pixel accumulator of spec 4.7: a
// render target that splats each sample's radiance across every pixel its
// reconstruction filter overlaps, using lock-free atomic-float addition
// rather than a per-pixel mutex. Grounded on the teacher pack's
// AtomicFloat (lixenwraith-vi-fighter/status/atomic_float.go) for the
// compare-exchange technique and on original_source/include/film for the
// write_pixel contract.
package film

import (
	"math"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/filter"
)

// pixel holds the running (r, g, b, weight) accumulation for one output
// pixel. Padding rounds it to 64 bytes so adjacent pixels in the flat
// array don't share a cache line and thrash under concurrent splatting
// from multiple render workers.
type pixel struct {
	r, g, b, w atomicFloat
	_          [48]byte
}

// RenderTarget accumulates filtered samples into a w*h pixel grid and
// resolves them to a final color image on demand.
type RenderTarget struct {
	width, height int
	table         *filter.Table
	pixels        []pixel
}

func NewRenderTarget(width, height int, f filter.Filter) *RenderTarget {
	return &RenderTarget{
		width:  width,
		height: height,
		table:  filter.NewTable(f),
		pixels: make([]pixel, width*height),
	}
}

func (rt *RenderTarget) Width() int  { return rt.width }
func (rt *RenderTarget) Height() int { return rt.height }

// WritePixel splats a sample at continuous image coordinates (x, y) into
// every discrete pixel its filter's support overlaps, per spec 4.7: the
// affected range is floor(x-0.5)..ceil(x-0.5) by floor(y-0.5)..ceil(y-0.5)
// extended by the filter's half-extents, and each affected pixel receives
// four atomic additions weighted by the filter table lookup.
func (rt *RenderTarget) WritePixel(x, y float32, c color.Color) {
	if !c.IsFinite() {
		return
	}
	fw, fh := rt.table.Extent()

	px, py := x-0.5, y-0.5
	x0 := int(math.Ceil(float64(px - fw)))
	x1 := int(math.Floor(float64(px + fw)))
	y0 := int(math.Ceil(float64(py - fh)))
	y1 := int(math.Floor(float64(py + fh)))

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= rt.width {
		x1 = rt.width - 1
	}
	if y1 >= rt.height {
		y1 = rt.height - 1
	}

	for iy := y0; iy <= y1; iy++ {
		dy := float32(iy) - py
		for ix := x0; ix <= x1; ix++ {
			dx := float32(ix) - px
			w := rt.table.Evaluate(dx, dy)
			if w == 0 {
				continue
			}
			p := &rt.pixels[iy*rt.width+ix]
			p.r.Add(w * c.R)
			p.g.Add(w * c.G)
			p.b.Add(w * c.B)
			p.w.Add(w)
		}
	}
}

// GetPixel resolves the final color of pixel (x, y): the accumulated
// (r,g,b) divided by the accumulated weight, or black if nothing landed
// there.
func (rt *RenderTarget) GetPixel(x, y int) color.Color {
	p := &rt.pixels[y*rt.width+x]
	w := p.w.Load()
	if w == 0 {
		return color.Black
	}
	return color.New(p.r.Load()/w, p.g.Load()/w, p.b.Load()/w)
}

// ToImage resolves every pixel into a flat row-major []color.Color.
func (rt *RenderTarget) ToImage() []color.Color {
	out := make([]color.Color, rt.width*rt.height)
	for y := 0; y < rt.height; y++ {
		for x := 0; x < rt.width; x++ {
			out[y*rt.width+x] = rt.GetPixel(x, y)
		}
	}
	return out
}

// Clear resets every pixel to zero, for progressive re-render passes.
func (rt *RenderTarget) Clear() {
	for i := range rt.pixels {
		rt.pixels[i] = pixel{}
	}
}
