package assembler

import (
	"fmt"

	"github.com/banshee-data/jetforest/internal/config"
	"github.com/banshee-data/jetforest/internal/jets/event"
)

// Options is the resolved, read-only configuration of an Assembler.
type Options struct {
	JetName    string
	BTagPrefix string

	RParam         float64
	JetPtMin       float64
	JetAbsEtaMax   float64
	HardPtMin      float64
	GenPtMin       float64
	GroomedMatchDR float64
	WTARadius      float64
	MaxJets        int

	UseRawPt     bool
	UseQuality   bool
	TrackQuality string

	IsMC         bool
	UseHepMC     bool
	FillGenJets  bool
	DoSubEvent   bool
	DoGenTaus    bool
	DoGenSubJets bool
	DoGenSym     bool

	DoJetID           bool
	DoMatch           bool
	DoSubJets         bool
	DoJetConstituents bool
	DoWTARecluster    bool
	DoBTagging        bool
	DoCaloJets        bool
	DoGenChargedSums  bool
}

// OptionsFrom resolves cfg, applying defaults for every unset field.
func OptionsFrom(cfg *config.AnalyzerConfig) Options {
	if cfg == nil {
		cfg = config.EmptyAnalyzerConfig()
	}
	return Options{
		JetName:    cfg.GetJetName(),
		BTagPrefix: cfg.GetBTagPrefix(),

		RParam:         cfg.GetRParam(),
		JetPtMin:       cfg.GetJetPtMin(),
		JetAbsEtaMax:   cfg.GetJetAbsEtaMax(),
		HardPtMin:      cfg.GetHardPtMin(),
		GenPtMin:       cfg.GetGenPtMin(),
		GroomedMatchDR: cfg.GetGroomedMatchDR(),
		WTARadius:      cfg.GetWTARadius(),
		MaxJets:        cfg.GetMaxJets(),

		UseRawPt:     cfg.GetUseRawPt(),
		UseQuality:   cfg.GetUseQuality(),
		TrackQuality: cfg.GetTrackQuality(),

		IsMC:         cfg.GetIsMC(),
		UseHepMC:     cfg.GetUseHepMC(),
		FillGenJets:  cfg.GetFillGenJets(),
		DoSubEvent:   cfg.GetDoSubEvent(),
		DoGenTaus:    cfg.GetDoGenTaus(),
		DoGenSubJets: cfg.GetDoGenSubJets(),
		DoGenSym:     cfg.GetDoGenSym(),

		DoJetID:           cfg.GetDoJetID(),
		DoMatch:           cfg.GetDoMatch(),
		DoSubJets:         cfg.GetDoSubJets(),
		DoJetConstituents: cfg.GetDoJetConstituents(),
		DoWTARecluster:    cfg.GetDoWTARecluster(),
		DoBTagging:        cfg.GetDoBTagging(),
		DoCaloJets:        cfg.GetDoCaloJets(),
		DoGenChargedSums:  cfg.GetDoGenChargedSums(),
	}
}

// DefaultOptions returns the options of an empty configuration.
func DefaultOptions() Options {
	return OptionsFrom(nil)
}

// Required lists the input collections the enabled features read.
func (o Options) Required() []string {
	req := []string{event.CollJets}
	if o.DoJetID {
		req = append(req, event.CollCandidates)
	}
	if o.DoMatch {
		req = append(req, event.CollMatchJets)
	}
	if o.DoGenChargedSums {
		req = append(req, event.CollGenParticles)
	}
	if o.IsMC {
		req = append(req, event.CollGenJets, event.CollGenInfo)
		if o.UseHepMC {
			req = append(req, event.CollBeam)
		}
		if o.DoGenTaus {
			req = append(req, event.CollGenTau1, event.CollGenTau2, event.CollGenTau3)
		}
		if o.DoGenSubJets {
			req = append(req, event.CollGroomedGenJets)
		}
		if o.DoGenSym {
			req = append(req, event.CollGenSym, event.CollGenDropped)
		}
	}
	if o.DoCaloJets {
		req = append(req, event.CollCaloJets)
	}
	return req
}

// Attribute names read from the primary jets.
func (o Options) tauName(n int) string {
	return fmt.Sprintf("%sNjettiness:tau%d", o.JetName, n)
}

func (o Options) symName() string     { return o.JetName + "Jets:sym" }
func (o Options) droppedName() string { return o.JetName + "Jets:droppedBranches" }

func (o Options) discriminatorName(label string) string {
	return o.BTagPrefix + ":" + label
}
