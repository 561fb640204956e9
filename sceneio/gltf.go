package sceneio

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/geometry"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/rmath"
	"github.com/mrigankad/tracer/scenegraph"
)

// LoadGLTF opens a .glb/.gltf file and returns its node hierarchy as
// scene graph roots, ready to AddChild under a loaded Scene's root.
// Meshes decode into a geometry.TriMesh and a path-traced
// material.Matte/material.Plastic rather than a GPU vertex buffer, since
// nothing here rasterizes.
func LoadGLTF(path string) (roots []*scenegraph.Node, err error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sceneio: gltf open %q: %w", path, err)
	}

	matCache := make([]material.Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		matCache[i] = gltfMaterial(gm)
	}

	// Each primitive's triangles and resolved material are cached once;
	// a scene graph Node has exactly one parent, so a mesh instanced by
	// more than one glTF node gets a fresh set of triangle Nodes built
	// from the shared geometry.TriMesh per instance (the TriMesh itself,
	// and the Material, are still shared).
	type primitive struct {
		mesh *geometry.TriMesh
		mat  material.Material
	}
	meshPrims := make([][]primitive, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			mesh, err := loadGLTFPrimitive(doc, *prim)
			if err != nil {
				return nil, fmt.Errorf("sceneio: mesh %d prim %d: %w", mi, pi, err)
			}
			var mat material.Material
			if prim.Material != nil && int(*prim.Material) < len(matCache) {
				mat = matCache[*prim.Material]
			}
			meshPrims[mi] = append(meshPrims[mi], primitive{mesh: mesh, mat: mat})
		}
	}

	nodes := make([]*scenegraph.Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		name := gn.Name
		if name == "" {
			name = fmt.Sprintf("node_%d", i)
		}
		n := scenegraph.NewNode(name)
		n.SetLocal(gltfLocalTransform(gn))

		if gn.Mesh != nil && int(*gn.Mesh) < len(meshPrims) {
			for pi, p := range meshPrims[*gn.Mesh] {
				for ti, tri := range p.mesh.Triangles() {
					child := scenegraph.NewNode(fmt.Sprintf("%s_prim%d_tri%d", name, pi, ti))
					child.Shape = tri
					child.Material = p.mat
					n.AddChild(child)
				}
			}
		}
		nodes[i] = n
	}

	for i, gn := range doc.Nodes {
		for _, childIdx := range gn.Children {
			if int(childIdx) < len(nodes) {
				nodes[i].AddChild(nodes[childIdx])
			}
		}
	}

	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		for _, rootIdx := range doc.Scenes[*doc.Scene].Nodes {
			if int(rootIdx) < len(nodes) {
				roots = append(roots, nodes[rootIdx])
			}
		}
		return roots, nil
	}

	hasParent := make([]bool, len(nodes))
	for _, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if int(c) < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	for i, n := range nodes {
		if !hasParent[i] {
			roots = append(roots, n)
		}
	}
	return roots, nil
}

// gltfLocalTransform converts a glTF node's TRS into an rmath.Transform,
// composed translation * rotation * scale.
func gltfLocalTransform(gn *gltf.Node) rmath.Transform {
	t := gn.TranslationOrDefault()
	sc := gn.ScaleOrDefault()
	r := gn.RotationOrDefault() // [x, y, z, w]

	q := rmath.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}
	translate := rmath.Translate(rmath.Vector{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])})
	rotate := rmath.NewTransform(q.ToMat4())
	scale := rmath.Scale(rmath.Vector{X: float32(sc[0]), Y: float32(sc[1]), Z: float32(sc[2])})
	return translate.Mul(rotate).Mul(scale)
}

// gltfMaterial approximates a glTF PBR metallic-roughness material with
// this renderer's Matte/Plastic split: a metallic or rough-but-shiny
// surface becomes Plastic with a Torrance-Sparrow highlight, a fully
// rough dielectric stays Matte.
func gltfMaterial(gm *gltf.Material) material.Material {
	diffuse := color.White
	roughness := float32(1)
	metallic := float32(0)
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		cf := pbr.BaseColorFactorOrDefault()
		diffuse = color.New(float32(cf[0]), float32(cf[1]), float32(cf[2]))
		roughness = float32(pbr.RoughnessFactorOrDefault())
		metallic = float32(pbr.MetallicFactorOrDefault())
	}
	if metallic > 0 || roughness < 1 {
		specular := color.Gray(metallic*0.7 + (1-roughness)*0.3)
		return material.NewPlastic(diffuse, specular, roughness)
	}
	return material.NewMatte(diffuse, 0)
}

// loadGLTFPrimitive converts one glTF mesh primitive's accessors into a
// geometry.TriMesh.
func loadGLTFPrimitive(doc *gltf.Document, prim gltf.Primitive) (*geometry.TriMesh, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	mesh := &geometry.TriMesh{Positions: make([]rmath.Point3, len(positions))}
	for i, p := range positions {
		mesh.Positions[i] = rmath.Point3{X: p[0], Y: p[1], Z: p[2]}
	}

	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err == nil {
			mesh.Normals = make([]rmath.Normal3, len(normals))
			for i, n := range normals {
				mesh.Normals[i] = rmath.Normal3{X: n[0], Y: n[1], Z: n[2]}
			}
		}
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err == nil {
			mesh.UVs = make([][2]float32, len(uvs))
			for i, uv := range uvs {
				mesh.UVs[i] = uv
			}
		}
	}

	if prim.Indices == nil {
		return nil, fmt.Errorf("no index buffer")
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return nil, fmt.Errorf("indices: %w", err)
	}
	mesh.Indices = make([]int, len(indices))
	for i, idx := range indices {
		mesh.Indices[i] = int(idx)
	}

	return mesh, nil
}
