package material

import "github.com/mrigankad/tracer/arena"

// Pool is the per-worker BSDF allocator backing NewBSDFInPool: a
// reused, GC-scannable slab of BSDF values rather than a raw byte
// arena, so the BxDF interface values a BSDF holds stay visible to the
// collector for as long as the BSDF itself is reachable.
type Pool = arena.Arena[BSDF]

func NewPool() *Pool { return arena.New[BSDF]() }
