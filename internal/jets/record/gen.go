package record

import (
	"github.com/banshee-data/jetforest/internal/jets/subjets"
)

// GenJetRecord is the feature set of one accepted generator jet.
type GenJetRecord struct {
	MatchIndex int32   `json:"genmatchindex"`
	Pt         float32 `json:"genpt"`
	Eta        float32 `json:"geneta"`
	Y          float32 `json:"geny"`
	Phi        float32 `json:"genphi"`
	M          float32 `json:"genm"`
	DPhi       float32 `json:"gendphijt"`
	DR         float32 `json:"gendrjt"`
	Tau1       float32 `json:"gentau1"`
	Tau2       float32 `json:"gentau2"`
	Tau3       float32 `json:"gentau3"`

	WTAEta float32 `json:"WTAgeneta"`
	WTAPhi float32 `json:"WTAgenphi"`

	PtG             float32               `json:"genptG"`
	EtaG            float32               `json:"genetaG"`
	PhiG            float32               `json:"genphiG"`
	MG              float32               `json:"genmG"`
	Sym             float32               `json:"gensym"`
	DroppedBranches int32                 `json:"gendroppedBranches"`
	SubJets         []subjets.Tuple       `json:"genSubJet"`
	Constituents    []subjets.Constituent `json:"genConstituents"`
	SDConstituents  []subjets.Constituent `json:"genSDConstituents"`

	SubID int32 `json:"gensubid"`
}

// NewGenJetRecord returns a record in its reset state. An unmatched
// generator jet has MatchIndex -1 and DR -1.
func NewGenJetRecord() GenJetRecord {
	return GenJetRecord{
		MatchIndex: -1,
		Pt:         sentinelF, Eta: sentinelF, Y: sentinelF, Phi: sentinelF, M: sentinelF,
		DPhi: sentinelF, DR: -1,
		Tau1: sentinelF, Tau2: sentinelF, Tau3: sentinelF,

		WTAEta: sentinelF, WTAPhi: sentinelF,

		PtG: sentinelF, EtaG: sentinelF, PhiG: sentinelF, MG: sentinelF,
		Sym: sentinelF, DroppedBranches: sentinelI,
		SubJets:        subjets.SentinelList(),
		Constituents:   subjets.SentinelConstituents(),
		SDConstituents: subjets.SentinelConstituents(),

		SubID: sentinelI,
	}
}

// Matched reports whether a reconstructed jet claimed this generator jet.
func (g *GenJetRecord) Matched() bool {
	return g.MatchIndex >= 0
}

// CaloRecord is one calorimeter jet, passed through unmatched.
type CaloRecord struct {
	Pt  float32 `json:"calopt"`
	Eta float32 `json:"caloeta"`
	Phi float32 `json:"calophi"`
}
