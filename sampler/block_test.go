package sampler

import "testing"

func TestSubsamplersTileExactlyCoverTheImage(t *testing.T) {
	proto := NewUniform(4, 1)
	blocks := Subsamplers(proto, 10, 7, 4, 3, 1)

	covered := make([][]bool, 7)
	for i := range covered {
		covered[i] = make([]bool, 10)
	}
	for _, b := range blocks {
		for y := b.Y0; y < b.Y1; y++ {
			for x := b.X0; x < b.X1; x++ {
				if covered[y][x] {
					t.Fatalf("pixel (%d,%d) covered by more than one block", x, y)
				}
				covered[y][x] = true
			}
		}
	}
	for y := 0; y < 7; y++ {
		for x := 0; x < 10; x++ {
			if !covered[y][x] {
				t.Errorf("pixel (%d,%d) not covered by any block", x, y)
			}
		}
	}
}

func TestSubsamplersBlocksHaveIndependentSamplers(t *testing.T) {
	proto := NewUniform(4, 1)
	blocks := Subsamplers(proto, 8, 8, 4, 4, 1)
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks tiling an 8x8 image with 4x4 tiles, got %d", len(blocks))
	}
	for _, b := range blocks {
		if b.Sampler == nil {
			t.Errorf("block missing its own sampler clone")
		}
	}
}
