// Package sceneio loads a constructed scene from disk: a camera, render
// target, sampler, renderer, scene graph root, and object caches, rather
// than built up in Go. The YAML scene description is unmarshaled into a
// string-keyed, string-tagged config struct first, then each string
// field is resolved against a small lookup table that reports an
// unsupported-value error immediately, rather than letting a typo reach
// the renderer as a zero value.
package sceneio

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mrigankad/tracer/camera"
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/film"
	"github.com/mrigankad/tracer/filter"
	"github.com/mrigankad/tracer/geometry"
	"github.com/mrigankad/tracer/integrator"
	"github.com/mrigankad/tracer/light"
	"github.com/mrigankad/tracer/material"
	"github.com/mrigankad/tracer/render"
	"github.com/mrigankad/tracer/rmath"
	"github.com/mrigankad/tracer/sampler"
	"github.com/mrigankad/tracer/scenegraph"
	"github.com/mrigankad/tracer/volume"
)

// Scene is everything a loaded YAML file resolves to: the pieces cmd/render
// wires into a render.Driver, kept separate rather than pre-assembled so
// callers can override the sampler or integrator (e.g. CLI -d/-bw/-bh)
// before building the render.Scene/Renderer.
type Scene struct {
	Camera           *camera.Camera
	Target           *film.RenderTarget
	Sampler          sampler.Sampler
	Surface          integrator.Surface
	Root             *scenegraph.Node
	ExtraLights      []light.Light
	Volume           volume.Volume
	VolumeIntegrator volume.Integrator
	Background       color.Color
}

// Load parses a YAML scene description and resolves it into a Scene.
// Invalid scene. per spec 7: any unknown type name or dangling cache
// reference is reported here, at load time, before the renderer starts.
func Load(data []byte) (*Scene, error) {
	var cfg sceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("sceneio: yaml %w", err)
	}
	return resolve(&cfg)
}

// ---------------------------------------------------------------------
// yaml-tagged wire structs

type sceneConfig struct {
	Camera     cameraConfig              `yaml:"camera"`
	Sampler    samplerConfig             `yaml:"sampler"`
	Filter     filterConfig              `yaml:"filter"`
	Integrator integratorConfig          `yaml:"integrator"`
	Materials  map[string]materialConfig `yaml:"materials"`
	Geometry   map[string]geometryConfig `yaml:"geometry"`
	Lights     map[string]lightConfig    `yaml:"lights"`
	Volumes    map[string]volumeConfig   `yaml:"volumes"`
	Nodes      []nodeConfig              `yaml:"nodes"`
	Volume     string                    `yaml:"volume"` // key into Volumes, attached to the whole scene
	Background []float32                 `yaml:"background"`
}

type cameraConfig struct {
	Eye           []float32 `yaml:"eye"`
	Target        []float32 `yaml:"target"`
	Up            []float32 `yaml:"up"`
	FovDegrees    float32   `yaml:"fov"`
	Width         int       `yaml:"width"`
	Height        int       `yaml:"height"`
	LensRadius    float32   `yaml:"lens_radius"`
	FocalDistance float32   `yaml:"focal_distance"`
}

type samplerConfig struct {
	Type            string  `yaml:"type"`
	SamplesPerPixel int     `yaml:"spp"`
	Seed            int64   `yaml:"seed"`
	StrataX         int     `yaml:"strata_x"`
	StrataY         int     `yaml:"strata_y"`
	MinSamples      int     `yaml:"min_samples"`
	MaxSamples      int     `yaml:"max_samples"`
	Threshold       float32 `yaml:"threshold"`
	DarkThreshold   float32 `yaml:"dark_threshold"`
}

type filterConfig struct {
	Type   string  `yaml:"type"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Alpha  float32 `yaml:"alpha"`
	B      float32 `yaml:"b"`
	C      float32 `yaml:"c"`
	Tau    float32 `yaml:"tau"`
}

type integratorConfig struct {
	Type       string `yaml:"type"`
	MaxDepth   int    `yaml:"max_depth"`
	MinBounces int    `yaml:"min_bounces"`
}

type materialConfig struct {
	Type      string    `yaml:"type"`
	Diffuse   []float32 `yaml:"diffuse"`
	Specular  []float32 `yaml:"specular"`
	Transmit  []float32 `yaml:"transmit"`
	Reflect   []float32 `yaml:"reflect"`
	Eta       []float32 `yaml:"eta"`
	K         []float32 `yaml:"k"`
	EtaScalar float32   `yaml:"eta_scalar"`
	Roughness float32   `yaml:"roughness"`
	Sigma     float32   `yaml:"sigma"`
	M1        string    `yaml:"m1"`
	M2        string    `yaml:"m2"`
	Amount    float32   `yaml:"amount"`
}

type geometryConfig struct {
	Type        string  `yaml:"type"`
	Radius      float32 `yaml:"radius"`
	ZMin        float32 `yaml:"z_min"`
	ZMax        float32 `yaml:"z_max"`
	PhiMax      float32 `yaml:"phi_max"`
	Height      float32 `yaml:"height"`
	InnerRadius float32 `yaml:"inner_radius"`
}

type lightConfig struct {
	Type        string    `yaml:"type"`
	Intensity   []float32 `yaml:"intensity"`
	Position    []float32 `yaml:"position"`
	Radiance    []float32 `yaml:"radiance"`
	WorldRadius float32   `yaml:"world_radius"`
	Geometry    string    `yaml:"geometry"` // area lights reference a geometry cache entry
	OneSided    bool      `yaml:"one_sided"`
	NumSamples  int       `yaml:"num_samples"`
}

type volumeConfig struct {
	Type         string    `yaml:"type"`
	SigA         []float32 `yaml:"sig_a"`
	SigS         []float32 `yaml:"sig_s"`
	Emit         []float32 `yaml:"emit"`
	G            float32   `yaml:"g"`
	RegionMin    []float32 `yaml:"region_min"`
	RegionMax    []float32 `yaml:"region_max"`
	Up           []float32 `yaml:"up"`
	A            float32   `yaml:"a"`
	B            float32   `yaml:"b"`
	Integrator   string    `yaml:"integrator"` // emission or single_scattering
	StepSize     float32   `yaml:"step_size"`
}

type nodeConfig struct {
	Name      string       `yaml:"name"`
	Geometry  string       `yaml:"geometry"`
	Material  string       `yaml:"material"`
	Light     string       `yaml:"light"`
	Translate []float32    `yaml:"translate"`
	Scale     []float32    `yaml:"scale"`
	Rotate    *rotateConfig `yaml:"rotate"`
	Children  []nodeConfig `yaml:"children"`
}

type rotateConfig struct {
	Axis  []float32 `yaml:"axis"`
	Angle float32   `yaml:"angle_degrees"`
}

// ---------------------------------------------------------------------
// resolution: wire-struct -> domain object, with immediate validation.

func resolve(cfg *sceneConfig) (*Scene, error) {
	cam, err := resolveCamera(&cfg.Camera)
	if err != nil {
		return nil, err
	}
	f, err := resolveFilter(&cfg.Filter)
	if err != nil {
		return nil, err
	}
	target := film.NewRenderTarget(cfg.Camera.Width, cfg.Camera.Height, f)

	samp, err := resolveSampler(&cfg.Sampler)
	if err != nil {
		return nil, err
	}

	surface, err := resolveIntegrator(&cfg.Integrator)
	if err != nil {
		return nil, err
	}

	geomCache, err := resolveGeometryCache(cfg.Geometry)
	if err != nil {
		return nil, err
	}
	matCache, err := resolveMaterialCache(cfg.Materials)
	if err != nil {
		return nil, err
	}
	lightCache, extraLights, err := resolveLightCache(cfg.Lights, geomCache)
	if err != nil {
		return nil, err
	}
	volCache, err := resolveVolumeCache(cfg.Volumes)
	if err != nil {
		return nil, err
	}

	root := scenegraph.NewNode("root")
	for _, nc := range cfg.Nodes {
		child, err := resolveNode(&nc, geomCache, matCache, lightCache)
		if err != nil {
			return nil, err
		}
		root.AddChild(child)
	}

	var vol volume.Volume
	var volInt volume.Integrator
	if cfg.Volume != "" {
		entry, ok := volCache[cfg.Volume]
		if !ok {
			return nil, fmt.Errorf("sceneio: unknown volume %q", cfg.Volume)
		}
		vol, volInt = entry.vol, entry.integrator
	}

	return &Scene{
		Camera:           cam,
		Target:           target,
		Sampler:          samp,
		Surface:          surface,
		Root:             root,
		ExtraLights:      extraLights,
		Volume:           vol,
		VolumeIntegrator: volInt,
		Background:       vec3Color(cfg.Background),
	}, nil
}

func resolveCamera(c *cameraConfig) (*camera.Camera, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("sceneio: camera width/height must be positive")
	}
	eye := vec3Point(c.Eye)
	target := vec3Point(c.Target)
	up := vec3Vector(c.Up)
	if up == (rmath.Vector{}) {
		up = rmath.Vector{Y: 1}
	}
	camToWorld := rmath.LookAt(rmath.Vector{X: eye.X, Y: eye.Y, Z: eye.Z}, target, up)
	fov := c.FovDegrees * (3.14159265 / 180)
	return camera.New(camToWorld, fov, c.Width, c.Height, c.LensRadius, c.FocalDistance), nil
}

func resolveFilter(c *filterConfig) (filter.Filter, error) {
	w, h := c.Width, c.Height
	if w == 0 {
		w = 2
	}
	if h == 0 {
		h = 2
	}
	switch c.Type {
	case "", "box":
		return filter.NewBox(w, h), nil
	case "triangle":
		return filter.NewTriangle(w, h), nil
	case "gaussian":
		alpha := c.Alpha
		if alpha == 0 {
			alpha = 2
		}
		return filter.NewGaussian(w, h, alpha), nil
	case "mitchell":
		b, cc := c.B, c.C
		if b == 0 && cc == 0 {
			b, cc = 1.0/3, 1.0/3
		}
		return filter.NewMitchell(w, h, b, cc), nil
	case "lanczos":
		tau := c.Tau
		if tau == 0 {
			tau = 3
		}
		return filter.NewLanczosSinc(w, h, tau), nil
	default:
		return nil, fmt.Errorf("sceneio: unsupported filter type %q", c.Type)
	}
}

func resolveSampler(c *samplerConfig) (sampler.Sampler, error) {
	spp := c.SamplesPerPixel
	if spp <= 0 {
		spp = 1
	}
	switch c.Type {
	case "", "uniform":
		return sampler.NewUniform(spp, c.Seed), nil
	case "stratified":
		nx, ny := c.StrataX, c.StrataY
		if nx <= 0 {
			nx = 1
		}
		if ny <= 0 {
			ny = 1
		}
		return sampler.NewStratified(nx, ny, c.Seed), nil
	case "lowdiscrepancy":
		return sampler.NewLowDiscrepancy(spp, c.Seed), nil
	case "adaptive":
		return sampler.NewAdaptive(c.MinSamples, c.MaxSamples, c.Threshold, c.DarkThreshold, c.Seed), nil
	default:
		return nil, fmt.Errorf("sceneio: unsupported sampler type %q", c.Type)
	}
}

func resolveIntegrator(c *integratorConfig) (integrator.Surface, error) {
	switch c.Type {
	case "", "path":
		maxDepth := c.MaxDepth
		if maxDepth <= 0 {
			maxDepth = 5
		}
		return integrator.NewPath(c.MinBounces, maxDepth), nil
	case "whitted":
		return integrator.NewWhitted(c.MaxDepth), nil
	case "bidirectional":
		return integrator.NewBidirPath(c.MaxDepth), nil
	case "direct_only":
		return integrator.NewDirectOnly(), nil
	default:
		return nil, fmt.Errorf("sceneio: unsupported integrator type %q", c.Type)
	}
}

func resolveGeometryCache(cfg map[string]geometryConfig) (map[string]geometry.Shape, error) {
	out := make(map[string]geometry.Shape, len(cfg))
	for name, gc := range cfg {
		var shape geometry.Shape
		switch gc.Type {
		case "sphere":
			if gc.ZMin != 0 || gc.ZMax != 0 {
				shape = geometry.NewPartialSphere(gc.Radius, gc.ZMin, gc.ZMax, gc.PhiMax)
			} else {
				shape = geometry.NewSphere(gc.Radius)
			}
		case "plane":
			shape = geometry.NewPlane()
		case "disk":
			shape = geometry.NewDisk(gc.Height, gc.Radius, gc.InnerRadius, gc.PhiMax)
		case "cylinder":
			shape = geometry.NewCylinder(gc.Radius, gc.ZMin, gc.ZMax, gc.PhiMax)
		case "cone":
			shape = geometry.NewCone(gc.Height, gc.Radius, gc.PhiMax)
		default:
			return nil, fmt.Errorf("sceneio: unsupported geometry type %q for %q", gc.Type, name)
		}
		out[name] = shape
	}
	return out, nil
}

func resolveMaterialCache(cfg map[string]materialConfig) (map[string]material.Material, error) {
	out := make(map[string]material.Material, len(cfg))
	// two passes: MixMaterial references other cache entries by name.
	for name, mc := range cfg {
		switch mc.Type {
		case "matte":
			out[name] = material.NewMatte(vec3Color(mc.Diffuse), mc.Sigma)
		case "plastic":
			out[name] = material.NewPlastic(vec3Color(mc.Diffuse), vec3Color(mc.Specular), mc.Roughness)
		case "mirror":
			out[name] = material.NewMirror(vec3Color(mc.Reflect))
		case "glass":
			out[name] = material.NewGlass(vec3Color(mc.Reflect), vec3Color(mc.Transmit), mc.EtaScalar)
		case "metal":
			out[name] = material.NewMetal(vec3Color(mc.Eta), vec3Color(mc.K), mc.Roughness)
		case "mix":
			continue // resolved below
		default:
			return nil, fmt.Errorf("sceneio: unsupported material type %q for %q", mc.Type, name)
		}
	}
	for name, mc := range cfg {
		if mc.Type != "mix" {
			continue
		}
		m1, ok1 := out[mc.M1]
		m2, ok2 := out[mc.M2]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("sceneio: mix material %q references unknown m1/m2", name)
		}
		out[name] = material.NewMixMaterial(m1, m2, mc.Amount)
	}
	return out, nil
}

func resolveLightCache(cfg map[string]lightConfig, geomCache map[string]geometry.Shape) (map[string]light.Light, []light.Light, error) {
	out := make(map[string]light.Light, len(cfg))
	var extra []light.Light
	for name, lc := range cfg {
		switch lc.Type {
		case "point":
			l := light.NewPointLight(vec3Color(lc.Intensity), vec3Point(lc.Position))
			out[name] = l
		case "ambient":
			l := light.NewAmbientLight(vec3Color(lc.Radiance), lc.WorldRadius)
			out[name] = l
			extra = append(extra, l)
		case "area":
			shape, ok := geomCache[lc.Geometry]
			if !ok {
				return nil, nil, fmt.Errorf("sceneio: area light %q references unknown geometry %q", name, lc.Geometry)
			}
			l := light.NewAreaLight(shape, vec3Color(lc.Radiance), rmath.TransformIdentity(), lc.OneSided, lc.NumSamples)
			out[name] = l
		default:
			return nil, nil, fmt.Errorf("sceneio: unsupported light type %q for %q", lc.Type, name)
		}
	}
	return out, extra, nil
}

type volumeEntry struct {
	vol        volume.Volume
	integrator volume.Integrator
}

func resolveVolumeCache(cfg map[string]volumeConfig) (map[string]volumeEntry, error) {
	out := make(map[string]volumeEntry, len(cfg))
	for name, vc := range cfg {
		region := rmath.BBoxFromPoints(vec3Point(vc.RegionMin), vec3Point(vc.RegionMax))
		var v volume.Volume
		switch vc.Type {
		case "homogeneous":
			v = volume.NewHomogeneous(vec3Color(vc.SigA), vec3Color(vc.SigS), vec3Color(vc.Emit), vc.G, region)
		case "exponential":
			up := vec3Vector(vc.Up)
			if up == (rmath.Vector{}) {
				up = rmath.Vector{Y: 1}
			}
			v = volume.NewExponential(vec3Color(vc.SigA), vec3Color(vc.SigS), vec3Color(vc.Emit), vc.G, region, vc.A, vc.B, up)
		default:
			return nil, fmt.Errorf("sceneio: unsupported volume type %q for %q", vc.Type, name)
		}

		stepSize := vc.StepSize
		if stepSize <= 0 {
			stepSize = 0.1
		}
		var vi volume.Integrator
		switch vc.Integrator {
		case "", "emission":
			vi = volume.NewEmission(stepSize)
		case "single_scattering":
			vi = volume.NewSingleScattering(stepSize)
		default:
			return nil, fmt.Errorf("sceneio: unsupported volume integrator %q for %q", vc.Integrator, name)
		}
		out[name] = volumeEntry{vol: v, integrator: vi}
	}
	return out, nil
}

func resolveNode(nc *nodeConfig, geomCache map[string]geometry.Shape, matCache map[string]material.Material, lightCache map[string]light.Light) (*scenegraph.Node, error) {
	n := scenegraph.NewNode(nc.Name)

	local := rmath.TransformIdentity()
	if nc.Rotate != nil {
		local = local.Mul(rmath.RotateAxis(vec3Vector(nc.Rotate.Axis), nc.Rotate.Angle*(3.14159265/180)))
	}
	if len(nc.Scale) == 3 {
		local = local.Mul(rmath.Scale(vec3Vector(nc.Scale)))
	}
	n.SetLocal(rmath.Translate(vec3Vector(nc.Translate)).Mul(local))

	if nc.Geometry != "" {
		shape, ok := geomCache[nc.Geometry]
		if !ok {
			return nil, fmt.Errorf("sceneio: node %q references unknown geometry %q", nc.Name, nc.Geometry)
		}
		n.Shape = shape
	}
	if nc.Material != "" {
		mat, ok := matCache[nc.Material]
		if !ok {
			return nil, fmt.Errorf("sceneio: node %q references unknown material %q", nc.Name, nc.Material)
		}
		n.Material = mat
	}
	if nc.Light != "" {
		lt, ok := lightCache[nc.Light]
		if !ok {
			return nil, fmt.Errorf("sceneio: node %q references unknown light %q", nc.Name, nc.Light)
		}
		n.Light = lt
	}

	for _, cc := range nc.Children {
		child, err := resolveNode(&cc, geomCache, matCache, lightCache)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

// ---------------------------------------------------------------------
// small vector helpers: yaml sequences come back as []float32 or nil.

func vec3Point(v []float32) rmath.Point3 {
	if len(v) < 3 {
		return rmath.Point3{}
	}
	return rmath.Point3{X: v[0], Y: v[1], Z: v[2]}
}

func vec3Vector(v []float32) rmath.Vector {
	if len(v) < 3 {
		return rmath.Vector{}
	}
	return rmath.Vector{X: v[0], Y: v[1], Z: v[2]}
}

func vec3Color(v []float32) color.Color {
	if len(v) < 3 {
		return color.Black
	}
	return color.New(v[0], v[1], v[2])
}

// NewRenderScene assembles a render.Scene from the resolved caches, the
// last step before wiring up a render.Driver. Kept separate from Load so
// callers that only want the camera/sampler/target (e.g. to apply CLI
// overrides first) aren't forced to pay for BVH construction early.
func (s *Scene) NewRenderScene() *render.Scene {
	return render.NewScene(s.Root, s.ExtraLights, s.Volume, s.VolumeIntegrator)
}
