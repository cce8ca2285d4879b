package event

// Collection names used in presence checks and error reports.
const (
	CollJets           = "jets"
	CollMatchJets      = "match_jets"
	CollCaloJets       = "calo_jets"
	CollGenJets        = "gen_jets"
	CollGroomedJets    = "groomed_jets"
	CollGroomedGenJets = "groomed_gen_jets"
	CollCandidates     = "candidates"
	CollGenParticles   = "gen_particles"
	CollGenTau1        = "gen_tau1"
	CollGenTau2        = "gen_tau2"
	CollGenTau3        = "gen_tau3"
	CollGroomedSym     = "groomed_sym"
	CollGroomedDropped = "groomed_dropped"
	CollGenSym         = "gen_sym"
	CollGenDropped     = "gen_dropped"
	CollGenInfo        = "gen_info"
	CollBeam           = "beam"
)

// Has reports whether the named collection is present in the event.
// Unknown names are reported as absent.
func (e *Event) Has(name string) bool {
	switch name {
	case CollJets:
		return e.Jets != nil
	case CollMatchJets:
		return e.MatchJets != nil
	case CollCaloJets:
		return e.CaloJets != nil
	case CollGenJets:
		return e.GenJets != nil
	case CollGroomedJets:
		return e.GroomedJets != nil
	case CollGroomedGenJets:
		return e.GroomedGenJets != nil
	case CollCandidates:
		return e.Candidates != nil
	case CollGenParticles:
		return e.GenParticles != nil
	case CollGenTau1:
		return e.GenTau1 != nil
	case CollGenTau2:
		return e.GenTau2 != nil
	case CollGenTau3:
		return e.GenTau3 != nil
	case CollGroomedSym:
		return e.GroomedSym != nil
	case CollGroomedDropped:
		return e.GroomedDropped != nil
	case CollGenSym:
		return e.GenSym != nil
	case CollGenDropped:
		return e.GenDropped != nil
	case CollGenInfo:
		return e.GenInfo != nil
	case CollBeam:
		return e.Beam != nil
	}
	return false
}

// Require returns a *MissingCollectionError for the first absent
// collection among names, or nil when all are present.
func (e *Event) Require(names ...string) error {
	for _, name := range names {
		if !e.Has(name) {
			return &MissingCollectionError{Name: name}
		}
	}
	return nil
}
