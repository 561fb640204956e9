package sceneio

import "testing"

const minimalScene = `
camera:
  eye: [0, 0, -5]
  target: [0, 0, 0]
  up: [0, 1, 0]
  fov: 45
  width: 32
  height: 32

sampler:
  type: uniform
  spp: 4

integrator:
  type: path
  max_depth: 5

materials:
  wall:
    type: matte
    diffuse: [0.7, 0.7, 0.7]

geometry:
  ball:
    type: sphere
    radius: 1

lights:
  sun:
    type: point
    intensity: [800, 800, 800]
    position: [5, 5, -5]

nodes:
  - name: sphere
    geometry: ball
    material: wall
`

func TestLoadMinimalScene(t *testing.T) {
	scene, err := Load([]byte(minimalScene))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if scene.Camera == nil || scene.Target == nil || scene.Sampler == nil || scene.Surface == nil {
		t.Fatalf("expected every top-level component resolved, got %+v", scene)
	}
	if len(scene.Root.Children) != 1 {
		t.Fatalf("expected 1 child node, got %d", len(scene.Root.Children))
	}
	if scene.Root.Children[0].Shape == nil || scene.Root.Children[0].Material == nil {
		t.Errorf("expected sphere node to carry both shape and material")
	}
}

func TestLoadUnknownMaterialTypeFails(t *testing.T) {
	bad := `
camera:
  eye: [0, 0, -5]
  width: 8
  height: 8
sampler:
  type: uniform
  spp: 1
materials:
  wall:
    type: not_a_material
`
	if _, err := Load([]byte(bad)); err == nil {
		t.Errorf("expected an error for an unsupported material type")
	}
}

func TestLoadDanglingGeometryReferenceFails(t *testing.T) {
	bad := `
camera:
  eye: [0, 0, -5]
  width: 8
  height: 8
sampler:
  type: uniform
  spp: 1
nodes:
  - name: sphere
    geometry: missing
`
	if _, err := Load([]byte(bad)); err == nil {
		t.Errorf("expected an error for a node referencing an unknown geometry")
	}
}

func TestLoadBuildsRenderableScene(t *testing.T) {
	scene, err := Load([]byte(minimalScene))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rs := scene.NewRenderScene()
	if rs == nil {
		t.Fatalf("expected a non-nil render.Scene")
	}
	if len(rs.Lights()) != 1 {
		t.Errorf("expected 1 light carried through from the scene graph, got %d", len(rs.Lights()))
	}
}
