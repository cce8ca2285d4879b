package assembler

import (
	"fmt"
	"math"

	"github.com/banshee-data/jetforest/internal/jets/event"
	"github.com/banshee-data/jetforest/internal/jets/match"
	"github.com/banshee-data/jetforest/internal/jets/record"
	"github.com/banshee-data/jetforest/internal/jets/subjets"
)

type taus struct {
	t1, t2, t3 float32
}

func (a *Assembler) genTaus(ev *event.Event, i int) (taus, error) {
	t := taus{event.Sentinel, event.Sentinel, event.Sentinel}
	if !a.opts.DoGenTaus {
		return t, nil
	}
	v1, err := ev.GenTau1.Lookup(event.CollGenTau1, i)
	if err != nil {
		return t, err
	}
	v2, err := ev.GenTau2.Lookup(event.CollGenTau2, i)
	if err != nil {
		return t, err
	}
	v3, err := ev.GenTau3.Lookup(event.CollGenTau3, i)
	if err != nil {
		return t, err
	}
	return taus{float32(v1), float32(v2), float32(v3)}, nil
}

// refKin returns the generator kinematics stored on reco record i.
func refKin(out *record.Event) func(int) event.Kin {
	return func(i int) event.Kin {
		r := &out.Jets[i]
		return event.Kin{Pt: float64(r.RefPt), Eta: float64(r.RefEta), Phi: float64(r.RefPhi)}
	}
}

// populateGen walks the generator jets. Every generator jet is matched
// back to the reco records by kinematic coincidence, first match wins;
// the pt threshold is applied afterwards, so a sub-threshold generator
// jet still hands its taus to the reco record it matched.
func (a *Assembler) populateGen(ev *event.Event, out *record.Event) error {
	o := &a.opts
	out.Pthat = float32(ev.GenInfo.QScale)
	if o.UseHepMC {
		out.BeamID1 = int32(ev.Beam.ID1)
		out.BeamID2 = int32(ev.Beam.ID2)
	}

	genGroomed := a.genGroomedResolver(ev)
	at := refKin(out)

	for i := range ev.GenJets {
		g := &ev.GenJets[i]
		t, err := a.genTaus(ev, i)
		if err != nil {
			return fmt.Errorf("gen jet %d: %w", i, err)
		}
		above := g.Pt > o.GenPtMin

		rec := record.NewGenJetRecord()
		if k := match.FirstCoincident(g.Kin, out.NRef(), at, match.DefaultTolerance); k != match.NoMatch {
			ref := &out.Jets[k]
			if above {
				dphi := event.DeltaPhi(float64(ref.RefPhi), g.Phi)
				deta := g.Eta - float64(ref.RefEta)
				rec.MatchIndex = int32(k)
				rec.DPhi = float32(dphi)
				rec.DR = float32(math.Sqrt(dphi*dphi + deta*deta))
			}
			if o.DoGenTaus {
				ref.RefTau1, ref.RefTau2, ref.RefTau3 = t.t1, t.t2, t.t3
			}
		}

		if !above || !o.FillGenJets {
			continue
		}
		if out.NGen() >= out.Capacity() {
			out.Drop()
			continue
		}

		rec.Pt = float32(g.Pt)
		rec.Eta = float32(g.Eta)
		rec.Y = float32(g.Rapidity())
		rec.Phi = float32(g.Phi)
		rec.M = float32(g.Mass)
		if o.DoGenTaus {
			rec.Tau1, rec.Tau2, rec.Tau3 = t.t1, t.t2, t.t3
		}

		if o.DoWTARecluster {
			ax, err := a.wta.WTA(g.Daughters)
			if err != nil {
				return fmt.Errorf("gen jet %d: %w", i, err)
			}
			rec.WTAEta, rec.WTAPhi = float32(ax.Eta), float32(ax.Phi)
		}

		if genGroomed != nil {
			res, err := genGroomed.Resolve(g)
			if err != nil {
				return fmt.Errorf("gen jet %d: %w", i, err)
			}
			rec.PtG, rec.EtaG, rec.PhiG, rec.MG = res.Pt, res.Eta, res.Phi, res.M
			rec.Sym = res.Sym
			rec.DroppedBranches = res.DroppedBranches
			rec.SubJets = res.SubJets
			if o.DoJetConstituents {
				rec.SDConstituents = res.Constituents
			}
		}

		if o.DoJetConstituents {
			rec.Constituents = subjets.ExtractConstituents(g.Daughters)
		}
		if o.DoSubEvent {
			rec.SubID = int32(g.SubEvent())
		}
		out.AddGenJet(rec)
	}
	return nil
}
