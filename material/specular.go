package material

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/rmath"
)

// SpecularReflection is a perfect mirror, a delta distribution: F is
// always black (there is zero probability of wo,wi landing on the
// reflection vector by chance) and all the energy flows through SampleF.
type SpecularReflection struct {
	baseBxDF
	R       color.Color
	Fresnel Fresnel
}

func NewSpecularReflection(r color.Color, fr Fresnel) *SpecularReflection {
	return &SpecularReflection{baseBxDF: baseBxDF{bxType: BxDFReflection | BxDFSpecular}, R: r, Fresnel: fr}
}

func (s *SpecularReflection) F(wo, wi rmath.Vector) color.Color { return color.Black }

func (s *SpecularReflection) SampleF(wo rmath.Vector, u1, u2 float32) (rmath.Vector, float32, color.Color) {
	wi := rmath.Vector{X: -wo.X, Y: -wo.Y, Z: wo.Z}
	f := s.Fresnel.Evaluate(CosTheta(wi)).Mul(s.R).Scale(1 / AbsCosTheta(wi))
	return wi, 1, f
}

func (s *SpecularReflection) Pdf(wo, wi rmath.Vector) float32 { return 0 }

func (s *SpecularReflection) RhoHD(wo rmath.Vector, samples [][2]float32) color.Color { return s.R }
func (s *SpecularReflection) RhoHH(s1, s2 [][2]float32) color.Color                   { return s.R }

// SpecularTransmission is a perfect refractor between two dielectric
// media of index EtaI (outside) and EtaT (inside), per spec 4.9.
type SpecularTransmission struct {
	baseBxDF
	T          color.Color
	EtaI, EtaT float32
	fresnel    FresnelDielectric
}

func NewSpecularTransmission(t color.Color, etaI, etaT float32) *SpecularTransmission {
	return &SpecularTransmission{
		baseBxDF: baseBxDF{bxType: BxDFTransmission | BxDFSpecular},
		T:        t, EtaI: etaI, EtaT: etaT,
		fresnel: FresnelDielectric{EtaI: etaI, EtaT: etaT},
	}
}

func (s *SpecularTransmission) F(wo, wi rmath.Vector) color.Color { return color.Black }

func (s *SpecularTransmission) SampleF(wo rmath.Vector, u1, u2 float32) (rmath.Vector, float32, color.Color) {
	entering := CosTheta(wo) > 0
	etaI, etaT := s.EtaI, s.EtaT
	if !entering {
		etaI, etaT = etaT, etaI
	}

	eta := etaI / etaT
	sinI2 := SinTheta2(wo)
	sinT2 := eta * eta * sinI2
	if sinT2 >= 1 {
		return rmath.Vector{}, 0, color.Black
	}
	cosT := sqrtf(maxf(0, 1-sinT2))
	if entering {
		cosT = -cosT
	}

	wi := rmath.Vector{X: -eta * wo.X, Y: -eta * wo.Y, Z: cosT}
	fr := s.fresnel.Evaluate(CosTheta(wo))
	transmittance := color.White.Sub(fr)

	// Radiance scales by (etaI/etaT)^2 for the solid-angle compression
	// across the interface (non-symmetric BTDF term, spec 4.9 note).
	scale := (eta * eta)
	f := s.T.Mul(transmittance).Scale(scale / AbsCosTheta(wi))
	return wi, 1, f
}

func (s *SpecularTransmission) Pdf(wo, wi rmath.Vector) float32 { return 0 }

func (s *SpecularTransmission) RhoHD(wo rmath.Vector, samples [][2]float32) color.Color { return s.T }
func (s *SpecularTransmission) RhoHH(s1, s2 [][2]float32) color.Color                   { return s.T }
