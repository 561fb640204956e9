// Package imageio implements the output-image and mesh-interchange
// formats this renderer writes: PPM (P6, RGB8) color output, PGM (P5)
// depth output, an optional BMP color dump, and the bit-exact .bobj
// binary mesh format. PPM/PGM/bobj have trivial fixed headers with no
// decoder library worth reaching for, so they stay stdlib-only
// (encoding/binary, bufio); BMP uses golang.org/x/image/bmp.
package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"golang.org/x/image/bmp"

	tcolor "github.com/mrigankad/tracer/color"
)

// toByte clamps an already gamma-corrected value to [0,1] and scales it
// to [0,255].
func toByte(v float32) byte {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return byte(math.Round(float64(v) * 255))
}

// WritePPM writes pixels (row-major, width*height) as a binary PPM (P6):
// a 3-byte-per-pixel RGB8 image, gamma-corrected with the standard 2.2
// display gamma.
func WritePPM(w io.Writer, width, height int, pixels []tcolor.Color) error {
	if len(pixels) != width*height {
		return fmt.Errorf("imageio: WritePPM: expected %d pixels, got %d", width*height, len(pixels))
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	buf := make([]byte, 3)
	for _, c := range pixels {
		g := c.Clamp01().GammaCorrect(2.2)
		buf[0], buf[1], buf[2] = toByte(g.R), toByte(g.G), toByte(g.B)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePGM writes depths (row-major, width*height) as a binary PGM (P5):
// one byte per pixel, linearly rescaled so the farthest finite depth maps
// to 255 and background (non-finite / no hit) pixels map to 0.
func WritePGM(w io.Writer, width, height int, depths []float32) error {
	if len(depths) != width*height {
		return fmt.Errorf("imageio: WritePGM: expected %d depths, got %d", width*height, len(depths))
	}
	maxDepth := float32(0)
	for _, d := range depths {
		if !math.IsInf(float64(d), 0) && !math.IsNaN(float64(d)) && d > maxDepth {
			maxDepth = d
		}
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P5\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	buf := make([]byte, 1)
	for _, d := range depths {
		v := byte(0)
		if maxDepth > 0 && !math.IsInf(float64(d), 0) && !math.IsNaN(float64(d)) {
			v = byte(math.Round(float64(d/maxDepth) * 255))
		}
		buf[0] = v
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteBMP writes pixels as an RGBA8 BMP via golang.org/x/image/bmp,
// an alternative color-buffer output alongside PPM.
func WriteBMP(w io.Writer, width, height int, pixels []tcolor.Color) error {
	if len(pixels) != width*height {
		return fmt.Errorf("imageio: WriteBMP: expected %d pixels, got %d", width*height, len(pixels))
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixels[y*width+x].Clamp01().GammaCorrect(2.2)
			img.SetNRGBA(x, y, color.NRGBA{R: toByte(c.R), G: toByte(c.G), B: toByte(c.B), A: 255})
		}
	}
	return bmp.Encode(w, img)
}
