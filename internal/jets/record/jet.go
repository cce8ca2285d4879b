package record

import (
	"github.com/banshee-data/jetforest/internal/jets/event"
	"github.com/banshee-data/jetforest/internal/jets/subjets"
)

const (
	sentinelF float32 = event.Sentinel
	sentinelI int32   = event.Sentinel
)

// JetRecord is the feature set of one accepted reconstructed jet.
type JetRecord struct {
	RawPt float32 `json:"rawpt"`
	Pt    float32 `json:"jtpt"`
	Eta   float32 `json:"jteta"`
	Y     float32 `json:"jty"`
	Phi   float32 `json:"jtphi"`
	PU    float32 `json:"jtpu"`
	M     float32 `json:"jtm"`
	Area  float32 `json:"jtarea"`

	// Composition. Zero when not computed.
	TrackMax       float32 `json:"trackMax"`
	TrackSum       float32 `json:"trackSum"`
	TrackN         int32   `json:"trackN"`
	TrackHardSum   float32 `json:"trackHardSum"`
	TrackHardN     int32   `json:"trackHardN"`
	ChargedMax     float32 `json:"chargedMax"`
	ChargedSum     float32 `json:"chargedSum"`
	ChargedN       int32   `json:"chargedN"`
	ChargedHardSum float32 `json:"chargedHardSum"`
	ChargedHardN   int32   `json:"chargedHardN"`
	PhotonMax      float32 `json:"photonMax"`
	PhotonSum      float32 `json:"photonSum"`
	PhotonN        int32   `json:"photonN"`
	PhotonHardSum  float32 `json:"photonHardSum"`
	PhotonHardN    int32   `json:"photonHardN"`
	NeutralMax     float32 `json:"neutralMax"`
	NeutralSum     float32 `json:"neutralSum"`
	NeutralN       int32   `json:"neutralN"`
	EMax           float32 `json:"eMax"`
	ESum           float32 `json:"eSum"`
	EN             int32   `json:"eN"`
	MuMax          float32 `json:"muMax"`
	MuSum          float32 `json:"muSum"`
	MuN            int32   `json:"muN"`

	GenChargedSum    float32 `json:"genChargedSum"`
	GenHardSum       float32 `json:"genHardSum"`
	SignalChargedSum float32 `json:"signalChargedSum"`
	SignalHardSum    float32 `json:"signalHardSum"`

	// Particle-flow fractions and multiplicities. Zero for non-PF jets.
	PfCHF float32 `json:"jtPfCHF"`
	PfNHF float32 `json:"jtPfNHF"`
	PfCEF float32 `json:"jtPfCEF"`
	PfNEF float32 `json:"jtPfNEF"`
	PfMUF float32 `json:"jtPfMUF"`
	PfCHM int32   `json:"jtPfCHM"`
	PfNHM int32   `json:"jtPfNHM"`
	PfCEM int32   `json:"jtPfCEM"`
	PfNEM int32   `json:"jtPfNEM"`
	PfMUM int32   `json:"jtPfMUM"`

	Tau1            float32 `json:"jttau1"`
	Tau2            float32 `json:"jttau2"`
	Tau3            float32 `json:"jttau3"`
	Sym             float32 `json:"jtsym"`
	DroppedBranches int32   `json:"jtdroppedBranches"`

	WTAEta float32 `json:"WTAeta"`
	WTAPhi float32 `json:"WTAphi"`

	SubJets        []subjets.Tuple       `json:"jtSubJet"`
	Constituents   []subjets.Constituent `json:"jtConstituents"`
	SDConstituents []subjets.Constituent `json:"jtSDConstituents"`

	MatchedPt           float32 `json:"matchedPt"`
	MatchedRawPt        float32 `json:"matchedRawPt"`
	MatchedPu           float32 `json:"matchedPu"`
	MatchedR            float32 `json:"matchedR"`
	MatchedHadronFlavor int32   `json:"matchedHadronFlavor"`
	MatchedPartonFlavor int32   `json:"matchedPartonFlavor"`

	RefPt               float32 `json:"refpt"`
	RefEta              float32 `json:"refeta"`
	RefY                float32 `json:"refy"`
	RefPhi              float32 `json:"refphi"`
	RefM                float32 `json:"refm"`
	RefArea             float32 `json:"refarea"`
	RefDPhi             float32 `json:"refdphijt"`
	RefDR               float32 `json:"refdrjt"`
	RefTau1             float32 `json:"reftau1"`
	RefTau2             float32 `json:"reftau2"`
	RefTau3             float32 `json:"reftau3"`
	RefPartonPt         float32 `json:"refparton_pt"`
	RefPartonFlavor     int32   `json:"refparton_flavor"`
	RefPartonFlavorForB int32   `json:"refparton_flavorForB"`
	SubID               int32   `json:"subid"`

	RefPtG             float32               `json:"refptG"`
	RefEtaG            float32               `json:"refetaG"`
	RefPhiG            float32               `json:"refphiG"`
	RefMG              float32               `json:"refmG"`
	RefSym             float32               `json:"refsym"`
	RefDroppedBranches int32                 `json:"refdroppedBranches"`
	RefSubJets         []subjets.Tuple       `json:"refSubJet"`
	RefConstituents    []subjets.Constituent `json:"refConstituents"`
	RefSDConstituents  []subjets.Constituent `json:"refSDConstituents"`

	DiscrBvsAll float32 `json:"discr_BvsAll"`
	DiscrCvsB   float32 `json:"discr_CvsB"`
	DiscrCvsL   float32 `json:"discr_CvsL"`
}

// NewJetRecord returns a record in its reset state.
func NewJetRecord() JetRecord {
	return JetRecord{
		RawPt: sentinelF, Pt: sentinelF, Eta: sentinelF, Y: sentinelF,
		Phi: sentinelF, PU: sentinelF, M: sentinelF, Area: sentinelF,

		Tau1: sentinelF, Tau2: sentinelF, Tau3: sentinelF,
		Sym: sentinelF, DroppedBranches: sentinelI,

		WTAEta: sentinelF, WTAPhi: sentinelF,

		SubJets:        subjets.SentinelList(),
		Constituents:   subjets.SentinelConstituents(),
		SDConstituents: subjets.SentinelConstituents(),

		MatchedPt: sentinelF, MatchedRawPt: sentinelF, MatchedPu: sentinelF,
		MatchedR: sentinelF, MatchedHadronFlavor: sentinelI, MatchedPartonFlavor: sentinelI,

		RefPt: sentinelF, RefEta: sentinelF, RefY: sentinelF, RefPhi: sentinelF,
		RefM: sentinelF, RefArea: sentinelF, RefDPhi: sentinelF, RefDR: sentinelF,
		RefTau1: sentinelF, RefTau2: sentinelF, RefTau3: sentinelF,
		RefPartonPt: sentinelF, RefPartonFlavor: sentinelI, RefPartonFlavorForB: sentinelI,
		SubID: sentinelI,

		RefPtG: sentinelF, RefEtaG: sentinelF, RefPhiG: sentinelF, RefMG: sentinelF,
		RefSym: sentinelF, RefDroppedBranches: sentinelI,
		RefSubJets:        subjets.SentinelList(),
		RefConstituents:   subjets.SentinelConstituents(),
		RefSDConstituents: subjets.SentinelConstituents(),

		DiscrBvsAll: sentinelF, DiscrCvsB: sentinelF, DiscrCvsL: sentinelF,
	}
}

// HasRef reports whether the jet carries generator-level truth.
func (r *JetRecord) HasRef() bool {
	return r.RefPt != sentinelF
}
