package sampler

import "math/rand"

// Block is one disjoint rectangular tile of the image, paired with its
// own Sampler clone so a worker can pull pixels from it without any
// cross-goroutine state beyond the block itself, per spec 4.15's
// "queue holds a shuffled vector of sub-samplers" construction.
type Block struct {
	X0, Y0, X1, Y1 int
	Sampler        Sampler
}

func (b *Block) Width() int  { return b.X1 - b.X0 }
func (b *Block) Height() int { return b.Y1 - b.Y0 }

// Subsamplers partitions a width x height image into blockW x blockH
// tiles (the last row/column of tiles may be smaller), clones proto once
// per tile so each block owns an independent PRNG stream, and shuffles
// the resulting slice so adjacent workers don't all start on spatially
// adjacent (and thus similarly-timed) blocks.
func Subsamplers(proto Sampler, width, height, blockW, blockH int, seed int64) []*Block {
	var blocks []*Block
	id := int64(0)
	for y := 0; y < height; y += blockH {
		y1 := min(y+blockH, height)
		for x := 0; x < width; x += blockW {
			x1 := min(x+blockW, width)
			blocks = append(blocks, &Block{
				X0: x, Y0: y, X1: x1, Y1: y1,
				Sampler: proto.Clone(seed + id),
			})
			id++
		}
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(blocks), func(i, j int) { blocks[i], blocks[j] = blocks[j], blocks[i] })
	return blocks
}
