package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/jetforest/internal/config"
	"github.com/banshee-data/jetforest/internal/jets/event"
	"github.com/banshee-data/jetforest/internal/jets/subjets"
	"github.com/banshee-data/jetforest/internal/testutil"
)

func mcOptions() Options {
	o := DefaultOptions()
	o.IsMC = true
	o.FillGenJets = true
	return o
}

func TestOptionsFrom_Defaults(t *testing.T) {
	o := OptionsFrom(config.MustLoadDefaultConfig())
	assert.Equal(t, DefaultOptions(), o)
	assert.Equal(t, 1000, o.MaxJets)
	assert.Equal(t, "akCs4PFNjettiness:tau2", o.tauName(2))
	assert.Equal(t, "akCs4PFJets:droppedBranches", o.droppedName())
	assert.Equal(t, []string{event.CollJets, event.CollCandidates}, o.Required())
}

func TestProcess_EndToEnd(t *testing.T) {
	j1 := testutil.Jet(50, 0.5, 1.0)
	testutil.LinkGen(&j1, 0)
	j2 := testutil.Jet(30, -1.0, -2.0)
	ev := testutil.SimEvent([]event.Jet{j1, j2}, []event.GenJet{testutil.GenJet(50, 0.5, 1.0)})

	o := mcOptions()
	o.DoGenSubJets = true
	ev.GroomedGenJets = []event.GroomedJet{}

	a := New(o)
	out, err := a.Process(ev)
	require.NoError(t, err)
	assert.Equal(t, Idle, a.State())

	require.Equal(t, 2, out.NRef())
	require.Equal(t, 1, out.NGen())
	assert.Equal(t, int32(0), out.GenJets[0].MatchIndex)
	assert.InDelta(t, 0, out.GenJets[0].DR, 1e-6)
	assert.Equal(t, float32(80), out.Pthat)

	assert.Equal(t, float32(50), out.Jets[0].RefPt)
	assert.InDelta(t, 0, out.Jets[0].RefDR, 1e-6)

	second := out.Jets[1]
	assert.Equal(t, float32(-999), second.RefPt)
	assert.Equal(t, float32(-999), second.RefEta)
	assert.Equal(t, float32(-999), second.RefDR)
	assert.Equal(t, float32(-999), second.RefPtG)
	assert.Equal(t, []subjets.Tuple{subjets.SentinelTuple}, second.RefSubJets)
}

func TestProcess_ResetsBetweenEvents(t *testing.T) {
	a := New(DefaultOptions())

	first, err := a.Process(testutil.DataEvent(testutil.Jet(50, 0, 0), testutil.Jet(40, 1, 1)))
	require.NoError(t, err)
	assert.Equal(t, 2, first.NRef())

	second, err := a.Process(testutil.DataEvent())
	require.NoError(t, err)
	assert.Equal(t, 0, second.NRef())
	assert.Equal(t, 2, first.NRef(), "earlier records are not reused")
}

func TestProcess_CapacityTruncation(t *testing.T) {
	o := DefaultOptions()
	o.MaxJets = 2
	jets := []event.Jet{
		testutil.Jet(50, 0, 0),
		testutil.Jet(45, 0, 1),
		testutil.Jet(40, 0, 2),
		testutil.Jet(35, 0, 3),
	}
	out, err := New(o).Process(testutil.DataEvent(jets...))
	require.NoError(t, err)
	assert.Equal(t, 2, out.NRef())
	assert.Equal(t, 2, out.Truncated())
	assert.Equal(t, float32(45), out.Jets[1].Pt)
}

func TestProcess_CapacityBoundsGenAndCalo(t *testing.T) {
	j := testutil.Jet(30, 0.2, 0.3)
	testutil.LinkGen(&j, 1)
	ev := testutil.SimEvent(
		[]event.Jet{j},
		[]event.GenJet{testutil.GenJet(40, -1, 2), testutil.GenJet(30, 0.2, 0.3)},
	)
	ev.GenTau1 = event.ValueMap[float64]{0: 0.9, 1: 0.6}
	ev.GenTau2 = event.ValueMap[float64]{0: 0.8, 1: 0.4}
	ev.GenTau3 = event.ValueMap[float64]{0: 0.7, 1: 0.2}
	ev.CaloJets = []event.CaloJet{
		{Kin: event.Kin{Pt: 25}},
		{Kin: event.Kin{Pt: 15}},
		{Kin: event.Kin{Pt: 9}},
	}

	o := mcOptions()
	o.MaxJets = 1
	o.DoGenTaus = true
	o.DoCaloJets = true
	out, err := New(o).Process(ev)
	require.NoError(t, err)

	require.Equal(t, 1, out.NRef())
	require.Equal(t, 1, out.NGen())
	require.Equal(t, 1, out.NCalo())
	assert.Equal(t, float32(40), out.GenJets[0].Pt)
	assert.Equal(t, int32(-1), out.GenJets[0].MatchIndex)
	assert.Equal(t, float32(25), out.Calo[0].Pt)
	assert.Equal(t, 3, out.Truncated(), "one generator jet and two calo jets dropped")

	ref := out.Jets[0]
	assert.Equal(t, float32(30), ref.RefPt)
	assert.Equal(t, float32(0.6), ref.RefTau1, "dropped generator jet still links its taus")
	assert.Equal(t, float32(0.4), ref.RefTau2)
	assert.Equal(t, float32(0.2), ref.RefTau3)
}

func TestProcess_MissingCollectionIsFatal(t *testing.T) {
	ev := testutil.DataEvent(testutil.Jet(50, 0, 0))
	a := New(mcOptions())

	out, err := a.Process(ev)
	assert.Nil(t, out)
	testutil.AssertErrorIs(t, err, event.ErrMissingCollection)
	assert.Contains(t, err.Error(), event.CollGenJets)
	assert.Equal(t, Idle, a.State())
}

func TestProcess_AcceptanceCuts(t *testing.T) {
	lowRaw := testutil.Jet(20, 0, 0)
	lowRaw.RawPt = 3
	forward := testutil.Jet(20, 5.2, 0)
	edge := testutil.Jet(5, 5.1, 0)

	ev := testutil.DataEvent(lowRaw, forward, edge)

	out, err := New(DefaultOptions()).Process(ev)
	require.NoError(t, err)
	require.Equal(t, 1, out.NRef())
	assert.Equal(t, float32(5), out.Jets[0].Pt)

	o := DefaultOptions()
	o.UseRawPt = false
	out, err = New(o).Process(ev)
	require.NoError(t, err)
	assert.Equal(t, 2, out.NRef())
}

func TestProcess_GenThresholdAfterMatching(t *testing.T) {
	j := testutil.Jet(30, 0.2, 0.3)
	testutil.LinkGen(&j, 0)
	ev := testutil.SimEvent([]event.Jet{j}, []event.GenJet{testutil.GenJet(8, 0.2, 0.3)})
	ev.GenTau1 = event.ValueMap[float64]{0: 0.5}
	ev.GenTau2 = event.ValueMap[float64]{0: 0.3}
	ev.GenTau3 = event.ValueMap[float64]{0: 0.1}

	o := mcOptions()
	o.DoGenTaus = true
	out, err := New(o).Process(ev)
	require.NoError(t, err)

	assert.Equal(t, 0, out.NGen(), "gen jet below gen_pt_min is not written")
	assert.Equal(t, float32(8), out.Jets[0].RefPt)
	assert.Equal(t, float32(0.5), out.Jets[0].RefTau1)
	assert.Equal(t, float32(0.1), out.Jets[0].RefTau3)
}

func TestProcess_GenTauMissIsFatal(t *testing.T) {
	ev := testutil.SimEvent(nil, []event.GenJet{testutil.GenJet(20, 0, 0), testutil.GenJet(15, 1, 1)})
	ev.GenTau1 = event.ValueMap[float64]{0: 0.5}
	ev.GenTau2 = event.ValueMap[float64]{0: 0.3, 1: 0.3}
	ev.GenTau3 = event.ValueMap[float64]{0: 0.1, 1: 0.1}

	o := mcOptions()
	o.DoGenTaus = true
	_, err := New(o).Process(ev)
	testutil.AssertErrorIs(t, err, event.ErrSideChannelMiss)
	assert.Contains(t, err.Error(), "gen jet 1")
}

func TestProcess_FirstCoincidentWins(t *testing.T) {
	a1 := testutil.Jet(50, 0.5, 1.0)
	a2 := testutil.Jet(49, 0.6, 1.1)
	testutil.LinkGen(&a1, 0)
	testutil.LinkGen(&a2, 0)
	ev := testutil.SimEvent([]event.Jet{a1, a2}, []event.GenJet{testutil.GenJet(50, 0.5, 1.0)})

	out, err := New(mcOptions()).Process(ev)
	require.NoError(t, err)
	require.Equal(t, 1, out.NGen())
	assert.Equal(t, int32(0), out.GenJets[0].MatchIndex)
}

func TestProcess_UnmatchedGenJet(t *testing.T) {
	ev := testutil.SimEvent([]event.Jet{testutil.Jet(40, 0, 0)}, []event.GenJet{testutil.GenJet(25, 2, 2)})
	out, err := New(mcOptions()).Process(ev)
	require.NoError(t, err)
	require.Equal(t, 1, out.NGen())
	g := out.GenJets[0]
	assert.Equal(t, int32(-1), g.MatchIndex)
	assert.Equal(t, float32(-1), g.DR)
	assert.Equal(t, float32(25), g.Pt)
}

func TestProcess_BadGenLinkIsFatal(t *testing.T) {
	j := testutil.Jet(40, 0, 0)
	testutil.LinkGen(&j, 4)
	ev := testutil.SimEvent([]event.Jet{j}, nil)
	_, err := New(mcOptions()).Process(ev)
	testutil.AssertErrorIs(t, err, event.ErrSideChannelMiss)
}

func TestProcess_JetFeatures(t *testing.T) {
	j := testutil.Jet(60, 0, 0)
	j.UserFloats = map[string]float64{"akCs4PFNjettiness:tau1": 0.4, "akCs4PFJets:sym": 0.2}
	j.UserInts = map[string]int{"akCs4PFJets:droppedBranches": 3}
	j.Discriminators = map[string]float64{
		"pfParticleNetFromMiniAODAK4CHSCentralDiscriminatorsJetTags:BvsAll": 0.9,
	}
	j.PF = &event.PFComposition{ChargedHadronFraction: 0.6, ChargedHadronMultiplicity: 7}
	j.Daughters = []event.Particle{
		{Kin: event.Kin{Pt: 45, Eta: 0.05, Phi: 0.02}},
		{Kin: event.Kin{Pt: 15, Eta: -0.1, Phi: -0.05}},
	}

	ev := testutil.DataEvent(j)
	ev.Candidates = []event.Candidate{
		{Kin: event.Kin{Pt: 10, Eta: 0.1}, PdgID: 211, Track: &event.Track{Pt: 9.5, Eta: 0.1, Qualities: []string{"highPurity"}}},
		{Kin: event.Kin{Pt: 3, Eta: -0.1}, PdgID: 22},
	}
	ev.MatchJets = []event.Jet{testutil.Jet(58, 0.1, 0), testutil.Jet(20, 2, 2)}

	o := DefaultOptions()
	o.DoBTagging = true
	o.DoMatch = true
	o.DoSubJets = true
	o.DoWTARecluster = true
	out, err := New(o).Process(ev)
	require.NoError(t, err)
	r := out.Jets[0]

	assert.Equal(t, float32(0.4), r.Tau1)
	assert.Equal(t, float32(-999), r.Tau2)
	assert.Equal(t, float32(0.2), r.Sym)
	assert.Equal(t, int32(3), r.DroppedBranches)

	assert.Equal(t, float32(0.9), r.DiscrBvsAll)
	assert.Equal(t, float32(-999), r.DiscrCvsB)

	assert.Equal(t, float32(0.6), r.PfCHF)
	assert.Equal(t, int32(7), r.PfCHM)

	assert.Equal(t, int32(1), r.TrackN)
	assert.Equal(t, float32(9.5), r.TrackMax)
	assert.Equal(t, int32(1), r.ChargedN)
	assert.Equal(t, int32(1), r.ChargedHardN)
	assert.Equal(t, int32(1), r.PhotonN)
	assert.Equal(t, int32(0), r.PhotonHardN)
	assert.Equal(t, int32(-1), r.SubID)

	assert.Equal(t, float32(58), r.MatchedPt)
	assert.InDelta(t, 0.1, r.MatchedR, 1e-6)
	assert.Equal(t, int32(-999), r.MatchedHadronFlavor, "flavours are simulation only")

	require.Len(t, r.SubJets, 2)
	assert.Equal(t, float32(45), r.SubJets[0].Pt)
	assert.InDelta(t, 0.05, r.WTAEta, 1e-6)
	assert.InDelta(t, 0.02, r.WTAPhi, 1e-6)
}

func TestProcess_GroomedRecoSideChannel(t *testing.T) {
	j := testutil.Jet(60, 0, 0)
	ev := testutil.DataEvent(j)
	ev.GroomedJets = []event.GroomedJet{{Kin: event.Kin{Pt: 55, Eta: 0.01}}}
	ev.GroomedSym = event.ValueMap[float64]{0: 0.35}
	ev.GroomedDropped = event.ValueMap[int]{0: 1}

	o := DefaultOptions()
	o.DoSubJets = true
	out, err := New(o).Process(ev)
	require.NoError(t, err)
	assert.Equal(t, float32(0.35), out.Jets[0].Sym)
	assert.Equal(t, int32(1), out.Jets[0].DroppedBranches)
}

func TestProcess_CaloAndBeam(t *testing.T) {
	ev := testutil.SimEvent(nil, nil)
	ev.CaloJets = []event.CaloJet{{Kin: event.Kin{Pt: 12, Eta: 1, Phi: 2}}, {Kin: event.Kin{Pt: 7}}}
	ev.Beam = &event.Beam{ID1: 2212, ID2: 1000822080}

	o := mcOptions()
	o.UseHepMC = true
	o.DoCaloJets = true
	out, err := New(o).Process(ev)
	require.NoError(t, err)
	require.Equal(t, 2, out.NCalo())
	assert.Equal(t, float32(12), out.Calo[0].Pt)
	assert.Equal(t, int32(2212), out.BeamID1)
	assert.Equal(t, int32(1000822080), out.BeamID2)
}

func TestProcess_GenFeatures(t *testing.T) {
	g := testutil.GenJet(40, 0.3, -0.4)
	g.Daughters[0].CollisionID = 2
	ev := testutil.SimEvent(nil, []event.GenJet{g})
	ev.GroomedGenJets = []event.GroomedJet{{Kin: event.Kin{Pt: 35, Eta: 0.31, Phi: -0.41}, Daughters: g.Daughters}}
	ev.GenSym = event.ValueMap[float64]{0: 0.25}
	ev.GenDropped = event.ValueMap[int]{0: 2}

	o := mcOptions()
	o.DoGenSubJets = true
	o.DoGenSym = true
	o.DoSubEvent = true
	o.DoWTARecluster = true
	o.DoJetConstituents = true
	out, err := New(o).Process(ev)
	require.NoError(t, err)
	require.Equal(t, 1, out.NGen())

	r := out.GenJets[0]
	assert.Equal(t, float32(35), r.PtG)
	assert.Equal(t, float32(0.25), r.Sym)
	assert.Equal(t, int32(2), r.DroppedBranches)
	assert.Equal(t, int32(2), r.SubID)
	assert.InDelta(t, 0.3, r.WTAEta, 1e-6)
	require.Len(t, r.SubJets, 1)
	require.Len(t, r.Constituents, 1)
	assert.Equal(t, int32(211), r.Constituents[0].ID)
	assert.Equal(t, int32(211), r.SDConstituents[0].ID)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "populating_gen", PopulatingGen.String())
	assert.Equal(t, "State(42)", State(42).String())
}
