package preview

import (
	"math"
	"time"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/film"
	"github.com/mrigankad/tracer/render"
)

// refreshInterval bounds how often the window re-uploads the render
// target; faster than this just burns CPU re-encoding pixels no worker
// has touched yet.
const refreshInterval = 100 * time.Millisecond

// toByte clamps an already gamma-corrected value to [0,1] and scales it
// to [0,255], matching imageio's tone mapping so the live preview and the
// final written image agree.
func toByte(v float32) byte {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return byte(math.Round(float64(v) * 255))
}

// toRGBA converts a row-major pixel buffer into tightly packed RGBA8
// bytes suitable for glTexImage2D/TexSubImage2D, flipping no rows —
// the blit shader's texcoord flip handles GL's bottom-left origin.
func toRGBA(pixels []color.Color) []byte {
	out := make([]byte, 4*len(pixels))
	for i, c := range pixels {
		g := c.Clamp01().GammaCorrect(2.2)
		out[4*i], out[4*i+1], out[4*i+2], out[4*i+3] = toByte(g.R), toByte(g.G), toByte(g.B), 255
	}
	return out
}

// Run opens a window showing target's pixels live while driver renders
// into it, and keeps showing the finished image until the user closes
// the window. Closing the window early cancels the in-flight render.
func Run(title string, target *film.RenderTarget, driver *render.Driver) error {
	w, err := NewWindow(target.Width(), target.Height(), title)
	if err != nil {
		return err
	}
	defer w.Destroy()

	r, err := NewRenderer()
	if err != nil {
		return err
	}
	defer r.Destroy()

	fbw, fbh := w.FramebufferSize()
	r.SetViewport(fbw, fbh)

	done := make(chan struct{})
	go func() {
		driver.Render()
		close(done)
	}()

	rendering := true
	for !w.ShouldClose() {
		select {
		case <-done:
			rendering = false
		default:
		}

		r.Upload(target.Width(), target.Height(), toRGBA(target.ToImage()))
		r.Draw()
		w.SwapBuffers()
		w.PollEvents()

		if !rendering {
			// Render finished: idle-poll the window for the user to
			// close it without busy-spinning texture uploads.
			time.Sleep(refreshInterval)
			continue
		}
		time.Sleep(refreshInterval)
	}

	if rendering {
		driver.Cancel()
		<-done
	}
	return nil
}
