// Package camera implements the perspective projection and thin-lens
// depth-of-field model of spec 4.8. Construction pre-composes
// raster->screen->camera into a single raster_to_camera transform, the
// same caching idea as the teacher engine's Camera
// (mrigankad-gorenderengine/scene/camera.go) applied to a film-space
// projection instead of a GPU view-projection matrix.
package camera

import (
	"math"

	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/rmath"
)

// Camera generates primary rays for a pixel sample, optionally simulating
// a thin lens for depth of field.
type Camera struct {
	CameraToWorld rmath.Transform
	rasterToCamera rmath.Transform

	LensRadius    float32
	FocalDistance float32

	dxCamera, dyCamera rmath.Vector
}

// New builds a Camera from a camera-to-world transform, a vertical field
// of view in radians, an output resolution, and the lens parameters
// (LensRadius = 0 disables depth of field and produces a pinhole camera).
func New(camToWorld rmath.Transform, fovRadians float32, width, height int, lensRadius, focalDistance float32) *Camera {
	aspect := float32(width) / float32(height)
	var screenMinX, screenMaxX, screenMinY, screenMaxY float32
	if aspect > 1 {
		screenMinX, screenMaxX = -aspect, aspect
		screenMinY, screenMaxY = -1, 1
	} else {
		screenMinX, screenMaxX = -1, 1
		screenMinY, screenMaxY = -1/aspect, 1/aspect
	}

	screenToCamera := rmath.Perspective(fovRadians, 1e-2, 1000).Inverse()

	// raster space: (0,0) top-left, (width,height) bottom-right, maps onto
	// NDC [screenMin, screenMax] with y flipped.
	rasterToScreen := rmath.Translate(rmath.Vector{X: screenMinX, Y: screenMaxY}).
		Mul(rmath.Scale(rmath.Vector{
			X: (screenMaxX - screenMinX) / float32(width),
			Y: -(screenMaxY - screenMinY) / float32(height),
			Z: 1,
		}))

	c := &Camera{
		CameraToWorld: camToWorld,
		rasterToCamera: screenToCamera.Mul(rasterToScreen),
		LensRadius:     lensRadius,
		FocalDistance:  focalDistance,
	}
	c.dxCamera = c.rasterToCamera.TransformPoint(rmath.Point3{X: 1}).SubPoint(c.rasterToCamera.TransformPoint(rmath.Point3{}))
	c.dyCamera = c.rasterToCamera.TransformPoint(rmath.Point3{Y: 1}).SubPoint(c.rasterToCamera.TransformPoint(rmath.Point3{}))
	return c
}

func (c *Camera) cameraSpaceRay(s core.Sample) rmath.Ray {
	pCamera := c.rasterToCamera.TransformPoint(rmath.Point3{X: s.ImgX, Y: s.ImgY})
	dir := rmath.Vector{X: pCamera.X, Y: pCamera.Y, Z: pCamera.Z}.Normalize()
	ray := rmath.NewRay(rmath.Point3{}, dir)

	if c.LensRadius > 0 {
		lensU, lensV := concentricSampleDisk(s.LensU, s.LensV)
		lensU *= c.LensRadius
		lensV *= c.LensRadius

		ft := c.FocalDistance / ray.Direction.Z
		pFocus := ray.At(ft)

		ray.Origin = rmath.Point3{X: lensU, Y: lensV}
		ray.Direction = pFocus.SubPoint(ray.Origin).Normalize()
	}
	ray.Time = s.Time
	return ray
}

// GenerateRay maps a camera sample into a world-space ray, per spec 4.8.
func (c *Camera) GenerateRay(s core.Sample) rmath.Ray {
	return c.CameraToWorld.TransformRay(c.cameraSpaceRay(s))
}

// GenerateRayDifferential additionally derives auxiliary rays through the
// neighboring pixels using the precomputed dP/dx, dP/dy offsets, sharing
// the same lens sample so defocus blur stays coherent across the
// differential (spec 4.8).
func (c *Camera) GenerateRayDifferential(s core.Sample) rmath.RayDifferential {
	main := c.cameraSpaceRay(s)
	rd := rmath.NewRayDifferential(main)

	if c.LensRadius > 0 {
		lensU, lensV := concentricSampleDisk(s.LensU, s.LensV)
		lensU *= c.LensRadius
		lensV *= c.LensRadius

		pCamera := c.rasterToCamera.TransformPoint(rmath.Point3{X: s.ImgX, Y: s.ImgY})
		dxDir := rmath.Vector{X: pCamera.X + c.dxCamera.X, Y: pCamera.Y + c.dxCamera.Y, Z: pCamera.Z + c.dxCamera.Z}.Normalize()
		dyDir := rmath.Vector{X: pCamera.X + c.dyCamera.X, Y: pCamera.Y + c.dyCamera.Y, Z: pCamera.Z + c.dyCamera.Z}.Normalize()

		ftx := c.FocalDistance / dxDir.Z
		fty := c.FocalDistance / dyDir.Z
		pFocusX := rmath.Point3{}.Add(dxDir.Mul(ftx))
		pFocusY := rmath.Point3{}.Add(dyDir.Mul(fty))

		lensOrigin := rmath.Point3{X: lensU, Y: lensV}
		rd.RxOrigin, rd.RyOrigin = lensOrigin, lensOrigin
		rd.RxDirection = pFocusX.SubPoint(lensOrigin).Normalize()
		rd.RyDirection = pFocusY.SubPoint(lensOrigin).Normalize()
	} else {
		rd.RxOrigin, rd.RyOrigin = main.Origin, main.Origin
		rd.RxDirection = main.Direction.Add(c.dxCamera).Normalize()
		rd.RyDirection = main.Direction.Add(c.dyCamera).Normalize()
	}
	rd.HasDifferentials = true

	return c.CameraToWorld.TransformRayDifferential(rd)
}

// concentricSampleDisk maps [0,1)^2 to the unit disk with Shirley's
// low-distortion mapping, matching the lens-sampling scheme used for
// area-light sampling elsewhere in the renderer.
func concentricSampleDisk(u1, u2 float32) (x, y float32) {
	sx := 2*u1 - 1
	sy := 2*u2 - 1
	if sx == 0 && sy == 0 {
		return 0, 0
	}
	var r, theta float32
	if absf(sx) > absf(sy) {
		r = sx
		theta = (math.Pi / 4) * (sy / sx)
	} else {
		r = sy
		theta = (math.Pi / 2) - (math.Pi/4)*(sx/sy)
	}
	return r * float32(math.Cos(float64(theta))), r * float32(math.Sin(float64(theta)))
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
