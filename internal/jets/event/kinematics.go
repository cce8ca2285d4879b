package event

import (
	"math"

	"go-hep.org/x/hep/fmom"
)

// P4 returns the Cartesian four-momentum of k.
func (k Kin) P4() fmom.PxPyPzE {
	p := fmom.NewPtEtaPhiM(k.Pt, k.Eta, k.Phi, k.Mass)
	return fmom.NewPxPyPzE(p.Px(), p.Py(), p.Pz(), p.E())
}

// Energy returns the energy of k.
func (k Kin) Energy() float64 {
	p := fmom.NewPtEtaPhiM(k.Pt, k.Eta, k.Phi, k.Mass)
	return p.E()
}

// Rapidity returns the rapidity of k. Massless objects have y == eta.
func (k Kin) Rapidity() float64 {
	p := k.P4()
	return Rapidity(&p)
}

// Rapidity returns y = 0.5 ln((E+pz)/(E-pz)) of p, clamped to ±Inf when
// the momentum is purely longitudinal.
func Rapidity(p *fmom.PxPyPzE) float64 {
	e, pz := p.E(), p.Pz()
	if e == math.Abs(pz) {
		return math.Copysign(math.Inf(1), pz)
	}
	return 0.5 * math.Log((e+pz)/(e-pz))
}

// DeltaPhi returns phi1-phi2 wrapped into [-π, π].
func DeltaPhi(phi1, phi2 float64) float64 {
	return math.Remainder(phi1-phi2, 2*math.Pi)
}

// DeltaR returns the angular distance sqrt(Δη² + Δφ²).
func DeltaR(eta1, phi1, eta2, phi2 float64) float64 {
	deta := eta1 - eta2
	dphi := DeltaPhi(phi1, phi2)
	return math.Sqrt(deta*deta + dphi*dphi)
}
