package composition

import (
	"github.com/banshee-data/jetforest/internal/jets/event"
)

// Sums accumulates one category. HardSum and HardN stay zero for the
// categories without a hard threshold.
type Sums struct {
	Max     float64
	Sum     float64
	N       int
	HardSum float64
	HardN   int
}

func (s *Sums) add(pt float64, hardPtMin float64, hard bool) {
	s.Sum += pt
	s.N++
	if hard && pt > hardPtMin {
		s.HardSum += pt
		s.HardN++
	}
	if pt > s.Max {
		s.Max = pt
	}
}

// Composition is the aggregate for one jet.
type Composition struct {
	Track   Sums
	Charged Sums
	Photon  Sums
	Neutral Sums
	E       Sums
	Mu      Sums

	GenChargedSum    float64
	GenHardSum       float64
	SignalChargedSum float64
	SignalHardSum    float64
}

// Aggregator holds the read-only aggregation settings.
type Aggregator struct {
	R         float64 // clustering radius
	HardPtMin float64 // hard-object threshold (track, charged, photon only)

	UseQuality   bool
	TrackQuality string
}

// Aggregate sums the candidates within R of the jet axis. The track pass
// uses track momenta of candidates that carry a track (optionally quality
// filtered); the candidate pass uses candidate momenta and the PF type.
func (a Aggregator) Aggregate(jet event.Directed, candidates []event.Candidate) Composition {
	var c Composition
	eta, phi := jet.Direction()

	for i := range candidates {
		tr := candidates[i].Track
		if tr == nil {
			continue
		}
		if a.UseQuality && !tr.HasQuality(a.TrackQuality) {
			continue
		}
		if event.DeltaR(eta, phi, tr.Eta, tr.Phi) < a.R {
			c.Track.add(tr.Pt, a.HardPtMin, true)
		}
	}

	for i := range candidates {
		cand := &candidates[i]
		if event.DeltaR(eta, phi, cand.Eta, cand.Phi) >= a.R {
			continue
		}
		pt := cand.Pt
		switch Classify(cand.PdgID) {
		case ChargedHadron:
			c.Charged.add(pt, a.HardPtMin, true)
		case Electron:
			c.E.add(pt, a.HardPtMin, false)
		case Muon:
			c.Mu.add(pt, a.HardPtMin, false)
		case Photon:
			c.Photon.add(pt, a.HardPtMin, true)
		case NeutralHadron:
			c.Neutral.add(pt, a.HardPtMin, false)
		}
	}
	return c
}

// AddGenParticles fills the generator charged-particle sums: stable
// charged particles within R, with the signal sums restricted to
// collision id 0.
func (a Aggregator) AddGenParticles(c *Composition, jet event.Directed, particles []event.GenParticle) {
	eta, phi := jet.Direction()
	for i := range particles {
		p := &particles[i]
		if p.Status != 1 || p.Charge == 0 {
			continue
		}
		if event.DeltaR(eta, phi, p.Eta, p.Phi) >= a.R {
			continue
		}
		c.GenChargedSum += p.Pt
		hard := p.Pt > a.HardPtMin
		if hard {
			c.GenHardSum += p.Pt
		}
		if p.CollisionID == 0 {
			c.SignalChargedSum += p.Pt
			if hard {
				c.SignalHardSum += p.Pt
			}
		}
	}
}
