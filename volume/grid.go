package volume

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/rmath"
)

// Grid stores density values on a regular n_x*n_y*n_z lattice and
// trilinearly interpolates between them, grounded on
// original_source/src/volume/grid_volume.cpp's density() method. Loading
// a Mitsuba .vol file into the Grid values is an external file-format
// concern (spec §1 Non-goals) handled by sceneio, not here — Grid itself
// only consumes already-decoded density data.
type Grid struct {
	densityVolume
	Region         rmath.BBox
	Nx, Ny, Nz     int
	Values         []float32
	DensityScale   float32
}

func NewGrid(sigA, sigS, emit color.Color, g float32, region rmath.BBox, nx, ny, nz int, values []float32, densityScale float32) *Grid {
	gr := &Grid{Region: region, Nx: nx, Ny: ny, Nz: nz, Values: values, DensityScale: densityScale}
	gr.densityVolume = densityVolume{SigA: sigA, SigS: sigS, Emit: emit, PhaseAsymmetry: g, density: gr.densityAt}
	return gr
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func lerp(t, a, b float32) float32 { return a + t*(b-a) }

func (g *Grid) gridDensity(x, y, z int) float32 {
	x = clampInt(x, 0, g.Nx-1)
	y = clampInt(y, 0, g.Ny-1)
	z = clampInt(z, 0, g.Nz-1)
	return g.Values[(z*g.Ny+y)*g.Nx+x] * g.DensityScale
}

func (g *Grid) inside(p rmath.Point3) bool {
	return p.X >= g.Region.Min.X && p.X <= g.Region.Max.X &&
		p.Y >= g.Region.Min.Y && p.Y <= g.Region.Max.Y &&
		p.Z >= g.Region.Min.Z && p.Z <= g.Region.Max.Z
}

func (g *Grid) densityAt(p rmath.Point3) float32 {
	if !g.inside(p) {
		return 0
	}
	offset := g.Region.Offset(p)
	vx := offset.X*float32(g.Nx) - 0.5
	vy := offset.Y*float32(g.Ny) - 0.5
	vz := offset.Z*float32(g.Nz) - 0.5

	x0, y0, z0 := int(vx), int(vy), int(vz)
	dx, dy, dz := vx-float32(x0), vy-float32(y0), vz-float32(z0)

	d00 := lerp(dx, g.gridDensity(x0, y0, z0), g.gridDensity(x0+1, y0, z0))
	d10 := lerp(dx, g.gridDensity(x0, y0+1, z0), g.gridDensity(x0+1, y0+1, z0))
	d01 := lerp(dx, g.gridDensity(x0, y0, z0+1), g.gridDensity(x0+1, y0, z0+1))
	d11 := lerp(dx, g.gridDensity(x0, y0+1, z0+1), g.gridDensity(x0+1, y0+1, z0+1))
	d0 := lerp(dy, d00, d10)
	d1 := lerp(dy, d01, d11)
	return lerp(dz, d0, d1)
}

func (g *Grid) Bound() rmath.BBox { return g.Region }

func (g *Grid) Intersect(ray rmath.Ray) (float32, float32, bool) {
	inv, neg := rmath.InvDir(ray.Direction)
	return g.Region.IntersectP(ray, inv, neg)
}

func (g *Grid) Absorption(p rmath.Point3, v rmath.Vector) color.Color  { return g.absorption(p) }
func (g *Grid) Scattering(p rmath.Point3, v rmath.Vector) color.Color  { return g.scattering(p) }
func (g *Grid) Attenuation(p rmath.Point3, v rmath.Vector) color.Color { return g.attenuation(p) }
func (g *Grid) Emission(p rmath.Point3, v rmath.Vector) color.Color    { return g.emission(p) }
func (g *Grid) Phase(p rmath.Point3, wi, wo rmath.Vector) float32      { return g.phase(wi, wo) }

func (g *Grid) OpticalThickness(ray rmath.Ray, step, offset float32) color.Color {
	return opticalThickness(ray, step, offset, g.Intersect, g.Attenuation)
}
