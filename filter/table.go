package filter

// tableSize is the resolution of the precomputed positive-quadrant lookup
// table (spec 4.7: "precomputes a 16×16 filter lookup table").
const tableSize = 16

// Table caches a Filter's weight over its positive quadrant on a 16x16
// grid, since film.RenderTarget.WritePixel evaluates the same filter
// thousands of times per sample and the filters above aren't branch-free.
type Table struct {
	f      Filter
	w, h   float32
	values [tableSize * tableSize]float32
}

func NewTable(f Filter) *Table {
	w, h := f.Extent()
	t := &Table{f: f, w: w, h: h}
	for y := 0; y < tableSize; y++ {
		fy := (float32(y) + 0.5) / tableSize * h
		for x := 0; x < tableSize; x++ {
			fx := (float32(x) + 0.5) / tableSize * w
			t.values[y*tableSize+x] = f.Weight(fx, fy)
		}
	}
	return t
}

// Extent returns the filter's support half-width and half-height.
func (t *Table) Extent() (float32, float32) { return t.w, t.h }

// Evaluate looks up the weight for an offset, folding into the positive
// quadrant since every provided filter is symmetric about the origin.
func (t *Table) Evaluate(dx, dy float32) float32 {
	dx, dy = absf(dx), absf(dy)
	if dx > t.w || dy > t.h {
		return 0
	}
	ix := int(dx / t.w * tableSize)
	iy := int(dy / t.h * tableSize)
	if ix >= tableSize {
		ix = tableSize - 1
	}
	if iy >= tableSize {
		iy = tableSize - 1
	}
	return t.values[iy*tableSize+ix]
}
