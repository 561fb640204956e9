// Package scenegraph implements the transform hierarchy from spec 4.5:
// nodes carry a local transform, an optional shape/material/light
// attachment, and children; world-space intersection transforms the
// incoming ray into object space, defers to the shape, and transforms the
// resulting differential geometry back out. Adapted from the teacher
// engine's scene.Node (mrigankad-gorenderengine/scene/node.go), keeping
// its dirty-flag world-matrix cache but swapping float32 Mat4 bookkeeping
// for rmath.Transform (matrix plus its cached inverse) since every ray
// transform here needs the inverse too.
package scenegraph

import (
	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/geometry"
	"github.com/mrigankad/tracer/light"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/rmath"
)

var nodeIDCounter uint32

type Node struct {
	Name     string
	Local    rmath.Transform
	Animated *rmath.AnimatedTransform // non-nil overrides Local per ray.Time
	Parent   *Node
	Children []*Node

	Shape    geometry.Shape
	Material material.Material
	Light    light.Light

	ID uint32

	worldDirty bool
	world      rmath.Transform
}

func NewNode(name string) *Node {
	nodeIDCounter++
	return &Node{Name: name, Local: rmath.TransformIdentity(), ID: nodeIDCounter, worldDirty: true}
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	child.markDirty()
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			child.markDirty()
			return
		}
	}
}

func (n *Node) markDirty() {
	n.worldDirty = true
	for _, c := range n.Children {
		c.markDirty()
	}
}

func (n *Node) SetLocal(t rmath.Transform) {
	n.Local = t
	n.markDirty()
}

// WorldTransform returns the node's cached object-to-world transform,
// recomputing it from the parent chain only when dirty.
func (n *Node) WorldTransform() rmath.Transform {
	if n.worldDirty {
		if n.Parent != nil {
			n.world = n.Parent.WorldTransform().Mul(n.Local)
		} else {
			n.world = n.Local
		}
		n.worldDirty = false
	}
	return n.world
}

func (n *Node) worldTransformAt(time float32) rmath.Transform {
	if n.Animated != nil {
		if n.Parent != nil {
			return n.Parent.WorldTransform().Mul(n.Animated.Interpolate(time))
		}
		return n.Animated.Interpolate(time)
	}
	return n.WorldTransform()
}

// WorldBound returns the union of this node's own shape bound (if any)
// and every child's world bound.
func (n *Node) WorldBound() rmath.BBox {
	b := rmath.BBoxEmpty()
	if n.Shape != nil {
		b = n.WorldTransform().TransformBBox(n.Shape.ObjectBound())
	}
	for _, c := range n.Children {
		b = b.Union(c.WorldBound())
	}
	return b
}

// Intersect tests only this node's own shape (not its children); the
// scene graph is flattened into a BVH via Flatten before rendering, so
// per-ray child recursion never happens at render time.
func (n *Node) Intersect(ray rmath.Ray) (*core.DifferentialGeometry, float32, bool) {
	if n.Shape == nil {
		return nil, 0, false
	}
	wt := n.worldTransformAt(ray.Time)
	localRay := wt.Inverse().TransformRay(ray)
	dg, t, ok := n.Shape.Intersect(localRay)
	if !ok {
		return nil, 0, false
	}
	worldDG := transformDG(dg, wt)
	worldDG.Node = n
	return worldDG, t, true
}

func (n *Node) IntersectP(ray rmath.Ray) bool {
	if n.Shape == nil {
		return false
	}
	wt := n.worldTransformAt(ray.Time)
	localRay := wt.Inverse().TransformRay(ray)
	return n.Shape.IntersectP(localRay)
}

func transformDG(dg *core.DifferentialGeometry, t rmath.Transform) *core.DifferentialGeometry {
	out := *dg
	out.Point = t.TransformPoint(dg.Point)
	out.GeomNormal = t.TransformNormal(dg.GeomNormal).Normalize()
	out.ShadingNormal = t.TransformNormal(dg.ShadingNormal).Normalize()
	out.DPDU = t.TransformVector(dg.DPDU)
	out.DPDV = t.TransformVector(dg.DPDV)
	out.DNDU = t.TransformNormal(dg.DNDU)
	out.DNDV = t.TransformNormal(dg.DNDV)
	return &out
}

// Traverse visits n and every descendant, matching the teacher's
// depth-first Traverse helper.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Traverse(fn)
	}
}

// Find locates the first descendant (including n) with the given name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Flatten collects every node carrying a shape into a leaf-primitive list
// suitable for accel.Build, and every node carrying a light into a light
// list for the integrator.
func Flatten(root *Node) (prims []*Node, lights []light.Light) {
	root.Traverse(func(n *Node) {
		if n.Shape != nil {
			prims = append(prims, n)
		}
		if n.Light != nil {
			lights = append(lights, n.Light)
		}
	})
	return
}
