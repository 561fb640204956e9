package material

import "github.com/mrigankad/tracer/color"

// Fresnel computes the fraction of light reflected at a dielectric or
// conductor interface for a given cosine of the incident angle, per spec
// 4.9's Fresnel-weighted specular terms.
type Fresnel interface {
	Evaluate(cosI float32) color.Color
}

// FresnelDielectric implements the standard unpolarized dielectric
// Fresnel equations between two indices of refraction.
type FresnelDielectric struct {
	EtaI, EtaT float32
}

func (f FresnelDielectric) Evaluate(cosI float32) color.Color {
	cosI = clampf(cosI, -1, 1)
	etaI, etaT := f.EtaI, f.EtaT
	if cosI < 0 {
		etaI, etaT = etaT, etaI
		cosI = -cosI
	}

	sinT := etaI / etaT * sqrtf(maxf(0, 1-cosI*cosI))
	if sinT >= 1 {
		return color.White
	}
	cosT := sqrtf(maxf(0, 1-sinT*sinT))

	rParl := ((etaT * cosI) - (etaI * cosT)) / ((etaT * cosI) + (etaI * cosT))
	rPerp := ((etaI * cosI) - (etaT * cosT)) / ((etaI * cosI) + (etaT * cosT))
	r := (rParl*rParl + rPerp*rPerp) / 2
	return color.Gray(r)
}

// FresnelConductor implements the Fresnel equations for a conductor with
// complex index of refraction (eta, k).
type FresnelConductor struct {
	Eta, K color.Color
}

func (f FresnelConductor) Evaluate(cosI float32) color.Color {
	return fresnelConductorChannel(absf(cosI), f.Eta, f.K)
}

func fresnelConductorChannel(cosI float32, eta, k color.Color) color.Color {
	ch := func(e, kk float32) float32 {
		tmp := (e*e + kk*kk) * cosI * cosI
		rParl2 := (tmp - 2*e*cosI + 1) / (tmp + 2*e*cosI + 1)
		tmpF := e*e + kk*kk
		rPerp2 := (tmpF - 2*e*cosI + cosI*cosI) / (tmpF + 2*e*cosI + cosI*cosI)
		return (rParl2 + rPerp2) / 2
	}
	return color.Color{
		R: ch(eta.R, k.R),
		G: ch(eta.G, k.G),
		B: ch(eta.B, k.B),
	}
}

// FresnelNoOp returns full reflectance regardless of angle; used by
// mirror-like specular BxDFs that the caller already scales by a
// reflectance color.
type FresnelNoOp struct{}

func (FresnelNoOp) Evaluate(float32) color.Color { return color.White }
