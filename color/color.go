// Package color implements the tri-stimulus RGB radiance/reflectance type
// used throughout the renderer (spec 3). Adapted in spirit from the
// teacher engine's core.Color (mrigankad-gorenderengine/core/types.go),
// dropping the alpha channel the GPU renderer needed but the path tracer
// does not.
package color

import "math"

type Color struct {
	R, G, B float32
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

func New(r, g, b float32) Color { return Color{r, g, b} }
func Gray(v float32) Color      { return Color{v, v, v} }

func (c Color) Add(o Color) Color { return Color{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c Color) Sub(o Color) Color { return Color{c.R - o.R, c.G - o.G, c.B - o.B} }
func (c Color) Mul(o Color) Color { return Color{c.R * o.R, c.G * o.G, c.B * o.B} }
func (c Color) Scale(s float32) Color { return Color{c.R * s, c.G * s, c.B * s} }
func (c Color) Div(s float32) Color   { return c.Scale(1.0 / s) }

func (c Color) Luminance() float32 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func (c Color) Clamp01() Color {
	return Color{clamp(c.R, 0, 1), clamp(c.G, 0, 1), clamp(c.B, 0, 1)}
}

func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// IsFinite reports whether every component is a finite float, matching
// spec 3's "finite floats" requirement; used to reject NaN/Inf fireflies
// before they're splatted into the accumulator.
func (c Color) IsFinite() bool {
	return isFinite(c.R) && isFinite(c.G) && isFinite(c.B)
}

func (c Color) Sqrt() Color {
	return Color{sqrtf(c.R), sqrtf(c.G), sqrtf(c.B)}
}

// GammaCorrect raises each channel to 1/gamma, matching the display
// encoding step used before writing 8-bit image formats.
func (c Color) GammaCorrect(gamma float32) Color {
	inv := 1.0 / gamma
	return Color{powf(c.R, inv), powf(c.G, inv), powf(c.B, inv)}
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func isFinite(x float32) bool {
	return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
}

func sqrtf(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}

func powf(x, e float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Pow(float64(x), float64(e)))
}
