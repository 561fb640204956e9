package filter

import "testing"

func TestBoxWeightInsideAndOutsideSupport(t *testing.T) {
	b := NewBox(1, 1)
	if b.Weight(0.5, 0.5) != 1 {
		t.Errorf("expected weight 1 inside support")
	}
	if b.Weight(1.5, 0) != 0 {
		t.Errorf("expected weight 0 outside support")
	}
}

func TestTriangleWeightZeroAtEdge(t *testing.T) {
	tr := NewTriangle(2, 2)
	if w := tr.Weight(2, 0); w != 0 {
		t.Errorf("expected weight 0 at edge, got %v", w)
	}
	if w := tr.Weight(0, 0); w <= 0 {
		t.Errorf("expected positive weight at center, got %v", w)
	}
}

func TestGaussianWeightNonNegativeAndDecaying(t *testing.T) {
	g := NewGaussian(2, 2, 2)
	center := g.Weight(0, 0)
	edge := g.Weight(1.9, 0)
	if center <= edge {
		t.Errorf("expected center weight %v > edge weight %v", center, edge)
	}
	if edge < 0 {
		t.Errorf("gaussian weight must never be negative, got %v", edge)
	}
}

func TestMitchellWeightZeroOutsideSupport(t *testing.T) {
	m := NewMitchell(2, 2, 1.0/3, 1.0/3)
	if w := m.Weight(3, 0); w != 0 {
		t.Errorf("expected weight 0 outside support, got %v", w)
	}
}

func TestLanczosSincPeaksAtOrigin(t *testing.T) {
	l := NewLanczosSinc(4, 4, 3)
	if w := l.Weight(0, 0); w != 1 {
		t.Errorf("expected weight 1 at origin, got %v", w)
	}
}

func TestTableMatchesFilterAtSampledPoints(t *testing.T) {
	b := NewBox(1, 1)
	table := NewTable(b)
	if got := table.Evaluate(0.25, 0.25); got != 1 {
		t.Errorf("table lookup inside box support = %v, want 1", got)
	}
	if got := table.Evaluate(1.5, 0); got != 0 {
		t.Errorf("table lookup outside box support = %v, want 0", got)
	}
}

func TestTableSymmetricAboutOrigin(t *testing.T) {
	tr := NewTriangle(2, 2)
	table := NewTable(tr)
	a := table.Evaluate(0.5, 0.5)
	bNeg := table.Evaluate(-0.5, -0.5)
	if a != bNeg {
		t.Errorf("expected symmetric table lookup, got %v vs %v", a, bNeg)
	}
}
