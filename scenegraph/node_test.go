package scenegraph

import (
	"testing"

	"github.com/mrigankad/tracer/geometry"
	"github.com/mrigankad/tracer/rmath"
)

func TestNodeWorldTransformInheritsParent(t *testing.T) {
	parent := NewNode("parent")
	parent.SetLocal(rmath.Translate(rmath.Vector{X: 5}))

	child := NewNode("child")
	child.SetLocal(rmath.Translate(rmath.Vector{Y: 2}))
	parent.AddChild(child)

	p := child.WorldTransform().TransformPoint(rmath.Point3{})
	if p.X != 5 || p.Y != 2 {
		t.Errorf("world transform = %v, want (5,2,0)", p)
	}
}

func TestNodeIntersectTransformsHitToWorld(t *testing.T) {
	n := NewNode("sphere")
	n.SetLocal(rmath.Translate(rmath.Vector{X: 10}))
	n.Shape = geometry.NewSphere(1)

	ray := rmath.NewRay(rmath.Point3{X: 10, Z: -10}, rmath.Vector{Z: 1})
	dg, _, ok := n.Intersect(ray)
	if !ok {
		t.Fatal("expected hit")
	}
	if dg.Point.X < 9.9 || dg.Point.X > 10.1 {
		t.Errorf("hit point x = %v, want ~10", dg.Point.X)
	}
}

func TestFlattenCollectsShapesAndLights(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	a.Shape = geometry.NewSphere(1)
	b := NewNode("b")
	b.Shape = geometry.NewSphere(1)
	root.AddChild(a)
	root.AddChild(b)

	prims, lights := Flatten(root)
	if len(prims) != 2 {
		t.Errorf("expected 2 prims, got %d", len(prims))
	}
	if len(lights) != 0 {
		t.Errorf("expected 0 lights, got %d", len(lights))
	}
}

func TestMarkDirtyPropagatesToChildren(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	_ = child.WorldTransform()

	parent.SetLocal(rmath.Translate(rmath.Vector{X: 1}))
	p := child.WorldTransform().TransformPoint(rmath.Point3{})
	if p.X != 1 {
		t.Errorf("expected child world transform to update after parent move, got %v", p)
	}
}
