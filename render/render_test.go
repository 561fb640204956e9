package render

import (
	"testing"

	"github.com/mrigankad/tracer/camera"
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/filter"
	"github.com/mrigankad/tracer/film"
	"github.com/mrigankad/tracer/geometry"
	"github.com/mrigankad/tracer/integrator"
	"github.com/mrigankad/tracer/light"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/rmath"
	"github.com/mrigankad/tracer/sampler"
	"github.com/mrigankad/tracer/scenegraph"
)

func testSetup(width, height int) (*Scene, *camera.Camera, *film.RenderTarget, *Renderer) {
	n := scenegraph.NewNode("sphere")
	n.Shape = geometry.NewSphere(1)
	n.Material = material.NewMatte(color.New(0.7, 0.7, 0.7), 0)

	root := scenegraph.NewNode("root")
	root.AddChild(n)

	lt := light.NewPointLight(color.New(1000, 1000, 1000), rmath.Point3{X: 10, Y: 10, Z: 10})
	scene := NewScene(root, []light.Light{lt}, nil, nil)

	camToWorld := rmath.LookAt(rmath.Vector{Z: -4}, rmath.Vector{}, rmath.Vector{Y: 1})
	cam := camera.New(camToWorld, 0.5, width, height, 0, 1)

	target := film.NewRenderTarget(width, height, filter.NewBox(0.5, 0.5))
	renderer := NewRenderer(integrator.NewDirectOnly())

	return scene, cam, target, renderer
}

func TestDriverRendersEveryPixel(t *testing.T) {
	scene, cam, target, renderer := testSetup(16, 16)
	proto := sampler.NewUniform(4, 1)

	d := NewDriver(scene, cam, target, renderer, proto, 2, 8, 8, 1)
	d.Render()

	if !d.Done() {
		t.Errorf("expected all workers to report done after Render returns")
	}

	nonBlack := 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if !target.GetPixel(x, y).IsBlack() {
				nonBlack++
			}
		}
	}
	if nonBlack == 0 {
		t.Errorf("expected at least one lit pixel after rendering a lit sphere")
	}
}

func TestBlockQueueExhaustsExactlyOncePerBlock(t *testing.T) {
	proto := sampler.NewUniform(4, 1)
	blocks := sampler.Subsamplers(proto, 8, 8, 4, 4, 1)
	q := NewBlockQueue(blocks)

	seen := map[*sampler.Block]bool{}
	for {
		b := q.Next()
		if b == nil {
			break
		}
		if seen[b] {
			t.Fatalf("block handed out twice")
		}
		seen[b] = true
	}
	if len(seen) != len(blocks) {
		t.Errorf("expected %d blocks handed out, got %d", len(blocks), len(seen))
	}
	if q.Next() != nil {
		t.Errorf("expected queue to stay exhausted")
	}
}

func TestDriverCancelStopsWorkersWithoutHanging(t *testing.T) {
	scene, cam, target, renderer := testSetup(64, 64)
	proto := sampler.NewUniform(16, 1)

	d := NewDriver(scene, cam, target, renderer, proto, 4, 4, 4, 1)
	for _, w := range d.workers {
		d.wg.Add(1)
		go func(w *Worker) {
			defer d.wg.Done()
			w.Run()
		}(w)
	}
	d.Cancel()

	if !d.Done() {
		t.Errorf("expected all workers joined after Cancel")
	}
}
