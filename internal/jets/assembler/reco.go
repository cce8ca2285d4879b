package assembler

import (
	"fmt"
	"math"

	"github.com/banshee-data/jetforest/internal/jets/composition"
	"github.com/banshee-data/jetforest/internal/jets/event"
	"github.com/banshee-data/jetforest/internal/jets/groom"
	"github.com/banshee-data/jetforest/internal/jets/match"
	"github.com/banshee-data/jetforest/internal/jets/record"
	"github.com/banshee-data/jetforest/internal/jets/subjets"
)

// accept applies the acceptance cuts to a primary jet.
func (a *Assembler) accept(j *event.Jet) bool {
	pt := j.Pt
	if a.opts.UseRawPt {
		pt = j.RawPt
	}
	if pt < a.opts.JetPtMin {
		return false
	}
	return math.Abs(j.Eta) <= a.opts.JetAbsEtaMax
}

func (a *Assembler) populateReco(ev *event.Event, out *record.Event) error {
	recoGroomed := a.recoGroomedResolver(ev)
	genGroomed := a.genGroomedResolver(ev)

	for i := range ev.Jets {
		jet := &ev.Jets[i]
		if !a.accept(jet) {
			continue
		}
		if out.Full() {
			out.Drop()
			continue
		}

		r, err := a.recoRecord(ev, jet, recoGroomed, genGroomed)
		if err != nil {
			return fmt.Errorf("jet %d: %w", i, err)
		}
		out.AddJet(r)
	}
	return nil
}

func (a *Assembler) recoGroomedResolver(ev *event.Event) *groom.Resolver {
	if ev.GroomedJets == nil || !(a.opts.DoSubJets || a.opts.DoJetConstituents) {
		return nil
	}
	return &groom.Resolver{
		Candidates:   ev.GroomedJets,
		Sym:          ev.GroomedSym,
		Dropped:      ev.GroomedDropped,
		WithMetadata: ev.GroomedSym != nil && ev.GroomedDropped != nil,
		MaxDR:        a.opts.GroomedMatchDR,
		SymName:      event.CollGroomedSym,
		DroppedName:  event.CollGroomedDropped,
	}
}

func (a *Assembler) genGroomedResolver(ev *event.Event) *groom.Resolver {
	if !a.opts.IsMC || !a.opts.DoGenSubJets {
		return nil
	}
	return &groom.Resolver{
		Candidates:   ev.GroomedGenJets,
		Sym:          ev.GenSym,
		Dropped:      ev.GenDropped,
		WithMetadata: a.opts.DoGenSym,
		MaxDR:        a.opts.GroomedMatchDR,
		SymName:      event.CollGenSym,
		DroppedName:  event.CollGenDropped,
	}
}

func (a *Assembler) recoRecord(ev *event.Event, jet *event.Jet, recoGroomed, genGroomed *groom.Resolver) (record.JetRecord, error) {
	o := &a.opts
	r := record.NewJetRecord()

	r.RawPt = float32(jet.RawPt)
	r.Pt = float32(jet.Pt)
	r.Eta = float32(jet.Eta)
	r.Y = float32(jet.Rapidity())
	r.Phi = float32(jet.Phi)
	r.PU = float32(jet.Pileup)
	r.M = float32(jet.Mass)
	r.Area = float32(jet.Area)

	if o.DoBTagging {
		r.DiscrBvsAll = discriminator(jet, o.discriminatorName("BvsAll"))
		r.DiscrCvsB = discriminator(jet, o.discriminatorName("CvsB"))
		r.DiscrCvsL = discriminator(jet, o.discriminatorName("CvsL"))
	}

	if o.DoJetID {
		c := a.agg.Aggregate(jet, ev.Candidates)
		if o.DoGenChargedSums {
			a.agg.AddGenParticles(&c, jet, ev.GenParticles)
		}
		setComposition(&r, &c)
		r.SubID = -1
	}

	if o.DoMatch {
		if k, dr := match.Nearest(jet, ev.MatchJets); k != match.NoMatch {
			m := &ev.MatchJets[k]
			r.MatchedPt = float32(m.Pt)
			r.MatchedRawPt = float32(m.RawPt)
			r.MatchedPu = float32(m.Pileup)
			r.MatchedR = float32(dr)
			if o.IsMC {
				r.MatchedHadronFlavor = int32(m.HadronFlavor)
				r.MatchedPartonFlavor = int32(m.PartonFlavor)
			}
		}
	}

	if o.DoWTARecluster {
		ax, err := a.wta.WTA(jet.FinalState())
		if err != nil {
			return r, err
		}
		r.WTAEta, r.WTAPhi = float32(ax.Eta), float32(ax.Phi)
	}

	if o.DoSubJets {
		r.SubJets = subjets.Extract(jet.Daughters)
	}
	if o.DoJetConstituents {
		r.Constituents = subjets.ExtractConstituents(jet.FinalState())
	}

	r.Tau1 = userFloat(jet, o.tauName(1))
	r.Tau2 = userFloat(jet, o.tauName(2))
	r.Tau3 = userFloat(jet, o.tauName(3))
	r.Sym = userFloat(jet, o.symName())
	if v, ok := jet.UserInt(o.droppedName()); ok {
		r.DroppedBranches = int32(v)
	}

	if recoGroomed != nil {
		g, err := recoGroomed.Resolve(jet)
		if err != nil {
			return r, err
		}
		if o.DoJetConstituents {
			r.SDConstituents = g.Constituents
		}
		// Attributes on the jet take precedence over the groomed side channel.
		if g.Matched() && recoGroomed.WithMetadata {
			if _, ok := jet.UserFloat(o.symName()); !ok {
				r.Sym = g.Sym
			}
			if _, ok := jet.UserInt(o.droppedName()); !ok {
				r.DroppedBranches = g.DroppedBranches
			}
		}
	}

	if jet.PF != nil {
		setPF(&r, jet.PF)
	}

	if o.IsMC {
		if err := a.linkTruth(ev, jet, &r, genGroomed); err != nil {
			return r, err
		}
	}
	return r, nil
}

// linkTruth fills the ref* fields from the framework-linked generator jet.
// reftau* stay at the sentinel here; the generator pass fills them.
func (a *Assembler) linkTruth(ev *event.Event, jet *event.Jet, r *record.JetRecord, genGroomed *groom.Resolver) error {
	o := &a.opts
	r.RefPartonFlavorForB = int32(jet.PartonFlavor)

	if jet.GenJet == nil {
		return nil
	}
	idx := *jet.GenJet
	if idx < 0 || idx >= len(ev.GenJets) {
		return fmt.Errorf("gen_jet link %d of %d: %w", idx, len(ev.GenJets), event.ErrSideChannelMiss)
	}
	g := &ev.GenJets[idx]

	r.RefPt = float32(g.Pt)
	r.RefEta = float32(g.Eta)
	r.RefY = float32(g.Rapidity())
	r.RefPhi = float32(g.Phi)
	r.RefM = float32(g.Mass)
	r.RefArea = float32(g.Area)
	r.RefDPhi = float32(event.DeltaPhi(jet.Phi, g.Phi))
	r.RefDR = float32(event.DeltaR(jet.Eta, jet.Phi, g.Eta, g.Phi))

	if o.DoSubEvent {
		r.SubID = int32(g.SubEvent())
	}
	if o.DoJetConstituents {
		r.RefConstituents = subjets.ExtractConstituents(g.Daughters)
	}

	if genGroomed != nil {
		res, err := genGroomed.Resolve(g)
		if err != nil {
			return err
		}
		r.RefPtG, r.RefEtaG, r.RefPhiG, r.RefMG = res.Pt, res.Eta, res.Phi, res.M
		r.RefSym = res.Sym
		r.RefDroppedBranches = res.DroppedBranches
		r.RefSubJets = res.SubJets
		if o.DoJetConstituents {
			r.RefSDConstituents = res.Constituents
		}
	}
	return nil
}

func userFloat(jet *event.Jet, name string) float32 {
	if v, ok := jet.UserFloat(name); ok {
		return float32(v)
	}
	return event.Sentinel
}

func discriminator(jet *event.Jet, name string) float32 {
	if v, ok := jet.Discriminator(name); ok {
		return float32(v)
	}
	return event.Sentinel
}

func setComposition(r *record.JetRecord, c *composition.Composition) {
	r.TrackMax, r.TrackSum, r.TrackN = float32(c.Track.Max), float32(c.Track.Sum), int32(c.Track.N)
	r.TrackHardSum, r.TrackHardN = float32(c.Track.HardSum), int32(c.Track.HardN)

	r.ChargedMax, r.ChargedSum, r.ChargedN = float32(c.Charged.Max), float32(c.Charged.Sum), int32(c.Charged.N)
	r.ChargedHardSum, r.ChargedHardN = float32(c.Charged.HardSum), int32(c.Charged.HardN)

	r.PhotonMax, r.PhotonSum, r.PhotonN = float32(c.Photon.Max), float32(c.Photon.Sum), int32(c.Photon.N)
	r.PhotonHardSum, r.PhotonHardN = float32(c.Photon.HardSum), int32(c.Photon.HardN)

	r.NeutralMax, r.NeutralSum, r.NeutralN = float32(c.Neutral.Max), float32(c.Neutral.Sum), int32(c.Neutral.N)
	r.EMax, r.ESum, r.EN = float32(c.E.Max), float32(c.E.Sum), int32(c.E.N)
	r.MuMax, r.MuSum, r.MuN = float32(c.Mu.Max), float32(c.Mu.Sum), int32(c.Mu.N)

	r.GenChargedSum = float32(c.GenChargedSum)
	r.GenHardSum = float32(c.GenHardSum)
	r.SignalChargedSum = float32(c.SignalChargedSum)
	r.SignalHardSum = float32(c.SignalHardSum)
}

func setPF(r *record.JetRecord, pf *event.PFComposition) {
	r.PfCHF = float32(pf.ChargedHadronFraction)
	r.PfNHF = float32(pf.NeutralHadronFraction)
	r.PfCEF = float32(pf.ChargedEmFraction)
	r.PfNEF = float32(pf.NeutralEmFraction)
	r.PfMUF = float32(pf.MuonFraction)
	r.PfCHM = int32(pf.ChargedHadronMultiplicity)
	r.PfNHM = int32(pf.NeutralHadronMultiplicity)
	r.PfCEM = int32(pf.ElectronMultiplicity)
	r.PfNEM = int32(pf.PhotonMultiplicity)
	r.PfMUM = int32(pf.MuonMultiplicity)
}
