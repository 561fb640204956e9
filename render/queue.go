package render

import (
	"sync/atomic"

	"github.com/mrigankad/tracer/sampler"
)

// BlockQueue hands out one image block per call to Next, via a single
// wait-free atomic fetch-add over a pre-shuffled slice (spec 4.15).
// Safe for concurrent use by every worker.
type BlockQueue struct {
	blocks []*sampler.Block
	next   atomic.Int64
}

func NewBlockQueue(blocks []*sampler.Block) *BlockQueue {
	return &BlockQueue{blocks: blocks}
}

// Next returns the next unclaimed block, or nil once the queue is
// exhausted.
func (q *BlockQueue) Next() *sampler.Block {
	i := q.next.Add(1) - 1
	if i >= int64(len(q.blocks)) {
		return nil
	}
	return q.blocks[i]
}
