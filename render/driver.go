package render

import (
	"sync"

	"github.com/mrigankad/tracer/camera"
	"github.com/mrigankad/tracer/film"
	"github.com/mrigankad/tracer/sampler"
)

// Driver owns a fixed pool of workers pulling from one BlockQueue and
// rendering into one RenderTarget (spec 4.15). Construction takes
// (scene, n_workers, block_w, block_h); Render blocks until every worker
// finishes or Cancel is called.
type Driver struct {
	workers []*Worker
	wg      sync.WaitGroup
}

// NewDriver partitions target's image into blockW x blockH tiles,
// clones proto once per tile, and spins up nWorkers Worker instances
// sharing one BlockQueue.
func NewDriver(scene *Scene, cam *camera.Camera, target *film.RenderTarget, r *Renderer, proto sampler.Sampler, nWorkers, blockW, blockH int, seed int64) *Driver {
	blocks := sampler.Subsamplers(proto, target.Width(), target.Height(), blockW, blockH, seed)
	queue := NewBlockQueue(blocks)

	d := &Driver{}
	for i := 0; i < nWorkers; i++ {
		d.workers = append(d.workers, NewWorker(i, queue, cam, target, scene, r))
	}
	return d
}

// Render launches every worker and blocks until Done reports true.
func (d *Driver) Render() {
	for _, w := range d.workers {
		d.wg.Add(1)
		go func(w *Worker) {
			defer d.wg.Done()
			w.Run()
		}(w)
	}
	d.wg.Wait()
	d.joinAll()
}

// Done joins any worker that has finished (Done or Cancelled) and reports
// whether every worker is now Done, Cancelled or Joined.
func (d *Driver) Done() bool {
	all := true
	for _, w := range d.workers {
		switch w.Status() {
		case StatusDone, StatusCancelled:
			w.join()
		case StatusJoined:
		default:
			all = false
		}
	}
	return all
}

func (d *Driver) joinAll() {
	for _, w := range d.workers {
		w.join()
	}
}

// Cancel transitions every Working worker to Cancelled and joins once
// their goroutines have returned. Matches spec 4.15's driver-destructor
// cancellation contract.
func (d *Driver) Cancel() {
	for _, w := range d.workers {
		w.Cancel()
	}
	d.wg.Wait()
	d.joinAll()
}
