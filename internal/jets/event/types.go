package event

import (
	"slices"
)

// Sentinel marks a feature that was not computed for an object. Consumers
// must read it as "absent", never as a measured zero.
const Sentinel = -999.0

// Directed is anything with an angular position.
type Directed interface {
	Direction() (eta, phi float64)
}

// Kin is the common (pt, eta, phi, mass) kinematic block of every
// jet-like or particle-like object.
type Kin struct {
	Pt   float64 `json:"pt"`
	Eta  float64 `json:"eta"`
	Phi  float64 `json:"phi"`
	Mass float64 `json:"mass"`
}

// Direction returns the angular position used by the geometric matcher.
func (k Kin) Direction() (eta, phi float64) {
	return k.Eta, k.Phi
}

// Kinematics returns the kinematic block itself so that embedding types
// satisfy interfaces over Kin.
func (k Kin) Kinematics() Kin {
	return k
}

// Particle is a jet daughter: a constituent or a subjet.
type Particle struct {
	Kin
	PdgID       int `json:"pdg_id,omitempty"`
	Charge      int `json:"charge,omitempty"`
	CollisionID int `json:"collision_id,omitempty"`
}

// Track is the trajectory attached to a packed candidate.
type Track struct {
	Pt        float64  `json:"pt"`
	Eta       float64  `json:"eta"`
	Phi       float64  `json:"phi"`
	Qualities []string `json:"qualities,omitempty"`
}

// Direction returns the track's angular position.
func (t Track) Direction() (eta, phi float64) {
	return t.Eta, t.Phi
}

// HasQuality reports whether the track carries the named quality flag.
func (t Track) HasQuality(name string) bool {
	return slices.Contains(t.Qualities, name)
}

// Candidate is a packed particle-flow candidate. Track is nil when the
// candidate has no trajectory details.
type Candidate struct {
	Kin
	PdgID int    `json:"pdg_id"`
	Track *Track `json:"track,omitempty"`
}

// GenParticle is a generator-level particle.
type GenParticle struct {
	Kin
	PdgID       int `json:"pdg_id"`
	Status      int `json:"status"`
	Charge      int `json:"charge"`
	CollisionID int `json:"collision_id"`
}

// PFComposition carries the particle-flow energy fractions and
// multiplicities the jet producer stored on a PF jet.
type PFComposition struct {
	ChargedHadronFraction float64 `json:"chf"`
	NeutralHadronFraction float64 `json:"nhf"`
	ChargedEmFraction     float64 `json:"cef"`
	NeutralEmFraction     float64 `json:"nef"`
	MuonFraction          float64 `json:"muf"`

	ChargedHadronMultiplicity int `json:"chm"`
	NeutralHadronMultiplicity int `json:"nhm"`
	ElectronMultiplicity      int `json:"cem"`
	PhotonMultiplicity        int `json:"nem"`
	MuonMultiplicity          int `json:"mum"`
}

// Jet is a reconstructed jet of the primary or the alternate
// reconstruction collection.
type Jet struct {
	Kin
	RawPt  float64 `json:"raw_pt"`
	Area   float64 `json:"area"`
	Pileup float64 `json:"pileup"`

	// Daughters are the subjets (or constituents for unsplit jets).
	Daughters []Particle `json:"daughters,omitempty"`
	// Constituents are the final-state particles; nil falls back to Daughters.
	Constituents []Particle `json:"constituents,omitempty"`

	UserFloats     map[string]float64 `json:"user_floats,omitempty"`
	UserInts       map[string]int     `json:"user_ints,omitempty"`
	Discriminators map[string]float64 `json:"discriminators,omitempty"`

	// GenJet is the framework-provided link into Event.GenJets, nil when
	// the jet has no generator match.
	GenJet *int `json:"gen_jet,omitempty"`

	PF           *PFComposition `json:"pf,omitempty"`
	HadronFlavor int            `json:"hadron_flavor,omitempty"`
	PartonFlavor int            `json:"parton_flavor,omitempty"`
}

// FinalState returns the particles used for reclustering.
func (j *Jet) FinalState() []Particle {
	if j.Constituents != nil {
		return j.Constituents
	}
	return j.Daughters
}

// UserFloat returns a named float attribute and whether it exists.
func (j *Jet) UserFloat(name string) (float64, bool) {
	v, ok := j.UserFloats[name]
	return v, ok
}

// UserInt returns a named int attribute and whether it exists.
func (j *Jet) UserInt(name string) (int, bool) {
	v, ok := j.UserInts[name]
	return v, ok
}

// Discriminator returns the named b-tag discriminator and whether it exists.
func (j *Jet) Discriminator(name string) (float64, bool) {
	v, ok := j.Discriminators[name]
	return v, ok
}

// GenJet is a generator-level jet.
type GenJet struct {
	Kin
	Area      float64    `json:"area"`
	Daughters []Particle `json:"daughters,omitempty"`
}

// SubEvent returns the collision id of the first constituent, or -1 for a
// jet without constituents.
func (g *GenJet) SubEvent() int {
	if len(g.Daughters) == 0 {
		return -1
	}
	return g.Daughters[0].CollisionID
}

// GroomedJet is a soft-drop groomed jet whose daughters are its subjets.
type GroomedJet struct {
	Kin
	Daughters []Particle `json:"daughters,omitempty"`
}

// CaloJet is a calorimeter jet, passed through without matching.
type CaloJet struct {
	Kin
}

// GenInfo is the event-level generator metadata.
type GenInfo struct {
	QScale float64 `json:"qscale"`
}

// Beam carries the beam particle identities from the generator record.
type Beam struct {
	ID1 int `json:"id1"`
	ID2 int `json:"id2"`
}

// ID identifies an event.
type ID struct {
	Run   int32 `json:"run"`
	Lumi  int32 `json:"lumi"`
	Event int32 `json:"event"`
}

// Event holds every collection the analyzer may consume for one
// collision. A nil collection is absent; an empty, non-nil one is present
// with no entries.
type Event struct {
	ID ID `json:"id"`

	Jets           []Jet         `json:"jets"`
	MatchJets      []Jet         `json:"match_jets"`
	CaloJets       []CaloJet     `json:"calo_jets"`
	GenJets        []GenJet      `json:"gen_jets"`
	GroomedJets    []GroomedJet  `json:"groomed_jets"`
	GroomedGenJets []GroomedJet  `json:"groomed_gen_jets"`
	Candidates     []Candidate   `json:"candidates"`
	GenParticles   []GenParticle `json:"gen_particles"`

	// Keyed by GenJets index.
	GenTau1 ValueMap[float64] `json:"gen_tau1"`
	GenTau2 ValueMap[float64] `json:"gen_tau2"`
	GenTau3 ValueMap[float64] `json:"gen_tau3"`

	// Keyed by GroomedJets index.
	GroomedSym     ValueMap[float64] `json:"groomed_sym"`
	GroomedDropped ValueMap[int]     `json:"groomed_dropped"`

	// Keyed by GroomedGenJets index.
	GenSym     ValueMap[float64] `json:"gen_sym"`
	GenDropped ValueMap[int]     `json:"gen_dropped"`

	GenInfo *GenInfo `json:"gen_info"`
	Beam    *Beam    `json:"beam"`
}
