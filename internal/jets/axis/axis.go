// Package axis computes the winner-takes-all axis of a jet by reclustering
// its constituents into a single object.
package axis

import (
	"fmt"

	"go-hep.org/x/hep/fmom"

	"github.com/banshee-data/jetforest/internal/jets/event"
	"github.com/banshee-data/jetforest/internal/jets/recluster"
)

// Axis is the (eta, phi) of the recomputed direction. Phi is in [-π, π].
type Axis struct {
	Eta, Phi float64
}

// Missing is returned when there is nothing to recluster.
var Missing = Axis{Eta: event.Sentinel, Phi: event.Sentinel}

// Recombiner reclusters jet constituents with a fixed definition.
type Recombiner struct {
	Def recluster.Definition
}

// NewRecombiner returns a recombiner with the WTA definition at radius r.
// A non-positive r keeps the default radius.
func NewRecombiner(r float64) Recombiner {
	def := recluster.WTADefinition()
	if r > 0 {
		def.R = r
	}
	return Recombiner{Def: def}
}

// WTA returns the axis of the hardest reclustered jet, or Missing when
// constituents is empty or carries no transverse momentum.
func (rc Recombiner) WTA(constituents []event.Particle) (Axis, error) {
	if len(constituents) == 0 {
		return Missing, nil
	}
	p4s := make([]fmom.PxPyPzE, len(constituents))
	for i := range constituents {
		p4s[i] = constituents[i].P4()
	}

	s, err := recluster.NewSession(p4s, rc.Def)
	if err != nil {
		return Missing, fmt.Errorf("wta axis: %w", err)
	}
	defer s.Close()

	jets, err := s.InclusiveJets(0)
	if err != nil {
		return Missing, fmt.Errorf("wta axis: %w", err)
	}
	if len(jets) == 0 || jets[0].Pt <= 0 {
		return Missing, nil
	}
	return Axis{Eta: jets[0].Eta, Phi: jets[0].Phi}, nil
}
