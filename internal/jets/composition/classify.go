package composition

// Category is the particle-flow type of a candidate.
type Category int

// Particle-flow types, numbered as the producing framework numbers them.
const (
	Unknown Category = iota
	ChargedHadron
	Electron
	Muon
	Photon
	NeutralHadron
	HFHadron
	HFEM
)

func (c Category) String() string {
	switch c {
	case ChargedHadron:
		return "charged"
	case Electron:
		return "electron"
	case Muon:
		return "muon"
	case Photon:
		return "photon"
	case NeutralHadron:
		return "neutral"
	case HFHadron:
		return "hf_hadron"
	case HFEM:
		return "hf_em"
	}
	return "unknown"
}

// Classify maps a PDG id to its particle-flow type.
func Classify(pdgID int) Category {
	if pdgID < 0 {
		pdgID = -pdgID
	}
	switch pdgID {
	case 211:
		return ChargedHadron
	case 11:
		return Electron
	case 13:
		return Muon
	case 22:
		return Photon
	case 130:
		return NeutralHadron
	case 1:
		return HFHadron
	case 2:
		return HFEM
	}
	return Unknown
}
