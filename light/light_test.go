package light

import (
	"testing"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/geometry"
	"github.com/mrigankad/tracer/rmath"
)

func TestPointLightSampleLiInverseSquare(t *testing.T) {
	pl := NewPointLight(color.White, rmath.Point3{Z: 5})
	near := rmath.Point3{Z: 4}
	far := rmath.Point3{Z: 0}

	_, _, liNear, _ := pl.SampleLi(near, 0, 0)
	_, _, liFar, _ := pl.SampleLi(far, 0, 0)

	if liNear.R <= liFar.R {
		t.Errorf("closer point should receive more intensity: near=%v far=%v", liNear, liFar)
	}
}

func TestAreaLightSampleLiPositivePdf(t *testing.T) {
	s := geometry.NewSphere(1)
	al := NewAreaLight(s, color.White, rmath.TransformIdentity(), false, 1)
	p := rmath.Point3{Z: -5}
	_, pdf, li, _ := al.SampleLi(p, 0.5, 0.5)
	if pdf <= 0 {
		t.Errorf("expected positive pdf, got %v", pdf)
	}
	if li.IsBlack() {
		t.Errorf("expected non-black radiance for two-sided area light")
	}
}

func TestAreaLightOneSidedBlocksBackFace(t *testing.T) {
	d := geometry.NewDisk(0, 1, 0, 6.2831853)
	al := NewAreaLight(d, color.White, rmath.TransformIdentity(), true, 1)
	behind := rmath.Point3{Z: -5}
	_, _, li, _ := al.SampleLi(behind, 0.2, 0.2)
	if !li.IsBlack() {
		t.Errorf("expected black radiance viewing the back face of a one-sided disk light, got %v", li)
	}
}

func TestAmbientLightUniformRadiance(t *testing.T) {
	amb := NewAmbientLight(color.Gray(0.5), 100)
	_, pdf, li, _ := amb.SampleLi(rmath.Point3{}, 0.1, 0.9)
	if pdf <= 0 {
		t.Errorf("expected positive pdf")
	}
	if li.R != 0.5 {
		t.Errorf("expected constant radiance 0.5, got %v", li.R)
	}
}
