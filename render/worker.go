package render

import (
	"sync/atomic"

	"github.com/mrigankad/tracer/camera"
	"github.com/mrigankad/tracer/film"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/sampler"
)

// WorkerStatus is the 5-state atomic lifecycle from spec 4.15:
// NotStarted -> Working -> {Done | Cancelled} -> Joined.
type WorkerStatus int32

const (
	StatusNotStarted WorkerStatus = iota
	StatusWorking
	StatusDone
	StatusCancelled
	StatusJoined
)

// cancelCheckInterval is how often (in completed pixels) a worker polls
// its cancellation flag, per spec 4.15/5.
const cancelCheckInterval = 32

// radianceSampler is implemented by adaptive samplers: after evaluating
// a path, the worker feeds its luminance back so the sampler can decide
// whether to stop early (spec 4.6).
type radianceSampler interface {
	AddRadianceSample(luminance float32)
}

// Worker pulls blocks from a shared queue, renders every pixel in each
// block with its own BSDF pool, and writes samples into the shared
// render target. Not safe for concurrent use by more than one goroutine
// — each worker is driven by exactly one goroutine, per spec 5's
// thread-local arena policy.
type Worker struct {
	id     int
	queue  *BlockQueue
	cam    *camera.Camera
	target *film.RenderTarget
	scene  *Scene
	r      *Renderer
	pool   *material.Pool

	status atomic.Int32
}

func NewWorker(id int, queue *BlockQueue, cam *camera.Camera, target *film.RenderTarget, scene *Scene, r *Renderer) *Worker {
	w := &Worker{id: id, queue: queue, cam: cam, target: target, scene: scene, r: r, pool: material.NewPool()}
	w.status.Store(int32(StatusNotStarted))
	return w
}

func (w *Worker) Status() WorkerStatus { return WorkerStatus(w.status.Load()) }

// Cancel requests cooperative termination; it only takes effect if the
// worker is currently Working, matching the spec's Working-only
// transition into Cancelled.
func (w *Worker) Cancel() {
	w.status.CompareAndSwap(int32(StatusWorking), int32(StatusCancelled))
}

// join transitions a Done or Cancelled worker to Joined; the caller must
// ensure the worker's goroutine has already returned.
func (w *Worker) join() {
	for {
		s := WorkerStatus(w.status.Load())
		if s != StatusDone && s != StatusCancelled {
			return
		}
		if w.status.CompareAndSwap(int32(s), int32(StatusJoined)) {
			return
		}
	}
}

// Run drives the worker loop of spec 4.15 to completion: pull a block,
// render every pixel in it, repeat until the queue is exhausted or the
// worker is cancelled.
func (w *Worker) Run() {
	if !w.status.CompareAndSwap(int32(StatusNotStarted), int32(StatusWorking)) {
		return
	}

	lensSupported := w.cam.LensRadius > 0
	pixelsSinceCheck := 0

loop:
	for {
		block := w.queue.Next()
		if block == nil {
			break
		}

		for y := block.Y0; y < block.Y1; y++ {
			for x := block.X0; x < block.X1; x++ {
				w.renderPixel(block.Sampler, x, y, lensSupported)

				pixelsSinceCheck++
				if pixelsSinceCheck >= cancelCheckInterval {
					pixelsSinceCheck = 0
					if WorkerStatus(w.status.Load()) == StatusCancelled {
						break loop
					}
				}
			}
		}
	}

	w.status.CompareAndSwap(int32(StatusWorking), int32(StatusDone))
}

func (w *Worker) renderPixel(s sampler.Sampler, x, y int, lensSupported bool) {
	s.StartPixel(x, y)
	adaptive, isAdaptive := s.(radianceSampler)

	for s.StartNextSample() {
		sample := s.GetCameraSample(lensSupported)
		rd := w.cam.GenerateRayDifferential(sample)
		c := w.r.Illumination(w.scene, rd, s, w.pool)
		w.target.WritePixel(sample.ImgX, sample.ImgY, c)
		if isAdaptive {
			adaptive.AddRadianceSample(c.Luminance())
		}
		w.pool.FreeBlocks()
	}
}
