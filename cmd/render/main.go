// Command render is the CLI front end of this renderer: it loads a YAML
// scene description, runs the parallel path-tracing driver, and writes
// the resulting color/depth images.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/imageio"
	"github.com/mrigankad/tracer/integrator"
	"github.com/mrigankad/tracer/preview"
	"github.com/mrigankad/tracer/render"
	"github.com/mrigankad/tracer/sceneio"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	scenePath := fs.String("f", "", "scene YAML file (required)")
	outPrefix := fs.String("o", "", "output prefix; writes <prefix>.ppm and <prefix>.pgm")
	nThreads := fs.Int("n", runtime.NumCPU(), "worker thread count")
	blockW := fs.Int("bw", 32, "render block width")
	blockH := fs.Int("bh", 32, "render block height")
	maxDepth := fs.Int("d", 0, "override the scene's max bounce depth (0: use scene default)")
	pmesh := fs.Bool("pmesh", false, "preprocess the positional .obj arguments into .bobj caches and exit")
	preview_ := fs.Bool("p", false, "open a live preview window while rendering")
	help := fs.Bool("h", false, "show usage")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *help {
		fs.Usage()
		return 0
	}

	if *pmesh {
		return runPreprocessMeshes(fs.Args())
	}

	if *scenePath == "" || *outPrefix == "" {
		fmt.Fprintln(os.Stderr, "render: -f and -o are required")
		fs.Usage()
		return 1
	}

	return runRender(*scenePath, *outPrefix, *nThreads, *blockW, *blockH, *maxDepth, *preview_)
}

// runPreprocessMeshes implements -pmesh: convert each positional .obj
// argument into a sibling .bobj cache (bit-exact, host-native).
func runPreprocessMeshes(files []string) int {
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "render: -pmesh requires at least one .obj file")
		return 1
	}
	for _, path := range files {
		mesh, err := imageio.LoadOBJ(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "render: %v\n", err)
			return 1
		}
		out := path + ".bobj"
		f, err := os.Create(out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "render: create %q: %v\n", out, err)
			return 1
		}
		err = imageio.WriteBOBJ(f, mesh)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "render: write %q: %v\n", out, err)
			return 1
		}
		fmt.Fprintf(os.Stdout, "render: wrote %s\n", out)
	}
	return 0
}

func runRender(scenePath, outPrefix string, nThreads, blockW, blockH, maxDepth int, livePreview bool) int {
	data, err := os.ReadFile(scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		return 1
	}

	scn, err := sceneio.Load(data)
	if err != nil {
		// An invalid scene is fatal at load: the renderer never starts.
		fmt.Fprintf(os.Stderr, "render: invalid scene: %v\n", err)
		return 1
	}

	if maxDepth > 0 {
		overrideMaxDepth(scn.Surface, maxDepth)
	}

	renderScene := scn.NewRenderScene()
	rnd := render.NewRenderer(scn.Surface)
	driver := render.NewDriver(renderScene, scn.Camera, scn.Target, rnd, scn.Sampler, nThreads, blockW, blockH, 1)

	if livePreview {
		if err := preview.Run(scenePath, scn.Target, driver); err != nil {
			fmt.Fprintf(os.Stderr, "render: preview: %v\n", err)
			return 1
		}
	} else {
		driver.Render()
	}

	if err := writeOutputs(outPrefix, scn, renderScene); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		return 1
	}
	return 0
}

// overrideMaxDepth applies -d to whichever concrete surface integrator
// the scene loaded, since MaxDepth is a plain exported field on each and
// the CLI override is renderer-wide rather than a per-integrator
// scene-file setting.
func overrideMaxDepth(surface integrator.Surface, maxDepth int) {
	switch s := surface.(type) {
	case *integrator.Path:
		s.MaxDepth = maxDepth
		if s.MinBounces > s.MaxDepth {
			s.MinBounces = s.MaxDepth
		}
	case *integrator.Whitted:
		s.MaxDepth = maxDepth
	case *integrator.BidirPath:
		s.MaxDepth = maxDepth
	}
}

func writeOutputs(prefix string, scn *sceneio.Scene, renderScene *render.Scene) error {
	pixels := scn.Target.ToImage()

	colorFile, err := os.Create(prefix + ".ppm")
	if err != nil {
		return fmt.Errorf("create %s.ppm: %w", prefix, err)
	}
	defer colorFile.Close()
	if err := imageio.WritePPM(colorFile, scn.Target.Width(), scn.Target.Height(), pixels); err != nil {
		return fmt.Errorf("write %s.ppm: %w", prefix, err)
	}

	depths := primaryRayDepths(scn, renderScene)
	depthFile, err := os.Create(prefix + ".pgm")
	if err != nil {
		return fmt.Errorf("create %s.pgm: %w", prefix, err)
	}
	defer depthFile.Close()
	if err := imageio.WritePGM(depthFile, scn.Target.Width(), scn.Target.Height(), depths); err != nil {
		return fmt.Errorf("write %s.pgm: %w", prefix, err)
	}
	return nil
}

// primaryRayDepths casts one pixel-center primary ray per pixel and
// records the hit distance, zero for rays that miss everything; WritePGM
// rescales this into the 0-255 depth buffer written alongside the color
// PPM.
func primaryRayDepths(scn *sceneio.Scene, renderScene *render.Scene) []float32 {
	w, h := scn.Target.Width(), scn.Target.Height()
	depths := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sample := core.Sample{ImgX: float32(x) + 0.5, ImgY: float32(y) + 0.5}
			ray := scn.Camera.GenerateRay(sample)
			if _, t, hit := renderScene.Intersect(ray); hit {
				depths[y*w+x] = t
			}
		}
	}
	return depths
}
