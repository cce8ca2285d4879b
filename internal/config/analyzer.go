package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical analyzer defaults file.
const DefaultConfigPath = "config/analyzer.defaults.json"

// AnalyzerConfig is the static configuration of the jet analyzer. It is
// read once at startup; every field is optional and the Get* methods
// supply the default for fields left out of the JSON.
type AnalyzerConfig struct {
	// Naming
	JetName    *string `json:"jet_name,omitempty"` // prefix of side-channel attribute names
	BTagPrefix *string `json:"btag_prefix,omitempty"`

	// Radii and thresholds
	RParam         *float64 `json:"r_param,omitempty"`
	JetPtMin       *float64 `json:"jet_pt_min,omitempty"`
	JetAbsEtaMax   *float64 `json:"jet_abs_eta_max,omitempty"`
	HardPtMin      *float64 `json:"hard_pt_min,omitempty"`
	GenPtMin       *float64 `json:"gen_pt_min,omitempty"`
	GroomedMatchDR *float64 `json:"groomed_match_dr,omitempty"`
	WTARadius      *float64 `json:"wta_r,omitempty"`
	MaxJets        *int     `json:"max_jets,omitempty"`
	UseRawPt       *bool    `json:"use_raw_pt,omitempty"`
	UseQuality     *bool    `json:"use_quality,omitempty"`
	TrackQuality   *string  `json:"track_quality,omitempty"`

	// Simulation
	IsMC         *bool `json:"is_mc,omitempty"`
	UseHepMC     *bool `json:"use_hepmc,omitempty"`
	FillGenJets  *bool `json:"fill_gen_jets,omitempty"`
	DoSubEvent   *bool `json:"do_sub_event,omitempty"`
	DoGenTaus    *bool `json:"do_gen_taus,omitempty"`
	DoGenSubJets *bool `json:"do_gen_sub_jets,omitempty"`
	DoGenSym     *bool `json:"do_gen_sym,omitempty"`

	// Features
	DoJetID           *bool `json:"do_jet_id,omitempty"`
	DoMatch           *bool `json:"do_match,omitempty"`
	DoSubJets         *bool `json:"do_sub_jets,omitempty"`
	DoJetConstituents *bool `json:"do_jet_constituents,omitempty"`
	DoWTARecluster    *bool `json:"do_wta_recluster,omitempty"`
	DoBTagging        *bool `json:"do_btagging,omitempty"`
	DoCaloJets        *bool `json:"do_calo_jets,omitempty"`
	DoGenChargedSums  *bool `json:"do_gen_charged_sums,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyAnalyzerConfig returns an AnalyzerConfig with all fields unset.
func EmptyAnalyzerConfig() *AnalyzerConfig {
	return &AnalyzerConfig{}
}

// LoadAnalyzerConfig loads an AnalyzerConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Fields omitted
// from the file fall back to their defaults, so partial configs are safe.
func LoadAnalyzerConfig(path string) (*AnalyzerConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalyzerConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath,
// searching the current directory and its parents. Panics if the file
// cannot be loaded; intended for test setup.
func MustLoadDefaultConfig() *AnalyzerConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/jets/assembler/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadAnalyzerConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are usable.
func (c *AnalyzerConfig) Validate() error {
	radii := []struct {
		name string
		v    *float64
	}{
		{"r_param", c.RParam},
		{"groomed_match_dr", c.GroomedMatchDR},
		{"wta_r", c.WTARadius},
	}
	for _, r := range radii {
		if r.v != nil && *r.v < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", r.name, *r.v)
		}
	}

	if c.JetAbsEtaMax != nil && *c.JetAbsEtaMax < 0 {
		return fmt.Errorf("jet_abs_eta_max must be non-negative, got %f", *c.JetAbsEtaMax)
	}

	if c.MaxJets != nil && *c.MaxJets <= 0 {
		return fmt.Errorf("max_jets must be positive, got %d", *c.MaxJets)
	}

	sideChannels := c.GetDoSubJets() || c.GetDoGenTaus() || c.GetDoGenSym()
	if sideChannels && c.JetName != nil && *c.JetName == "" {
		return fmt.Errorf("jet_name must be set when side-channel features are enabled")
	}

	if c.GetDoGenSubJets() && !c.GetIsMC() {
		return fmt.Errorf("do_gen_sub_jets requires is_mc")
	}

	return nil
}

// GetJetName returns the jet_name value or the default.
func (c *AnalyzerConfig) GetJetName() string {
	if c.JetName == nil {
		return "akCs4PF"
	}
	return *c.JetName
}

// GetBTagPrefix returns the btag_prefix value or the default.
func (c *AnalyzerConfig) GetBTagPrefix() string {
	if c.BTagPrefix == nil {
		return "pfParticleNetFromMiniAODAK4CHSCentralDiscriminatorsJetTags"
	}
	return *c.BTagPrefix
}

// GetRParam returns the r_param value or the default.
func (c *AnalyzerConfig) GetRParam() float64 {
	if c.RParam == nil {
		return 0.4
	}
	return *c.RParam
}

// GetJetPtMin returns the jet_pt_min value or the default.
func (c *AnalyzerConfig) GetJetPtMin() float64 {
	if c.JetPtMin == nil {
		return 5
	}
	return *c.JetPtMin
}

// GetJetAbsEtaMax returns the jet_abs_eta_max value or the default.
func (c *AnalyzerConfig) GetJetAbsEtaMax() float64 {
	if c.JetAbsEtaMax == nil {
		return 5.1
	}
	return *c.JetAbsEtaMax
}

// GetHardPtMin returns the hard_pt_min value or the default.
func (c *AnalyzerConfig) GetHardPtMin() float64 {
	if c.HardPtMin == nil {
		return 4
	}
	return *c.HardPtMin
}

// GetGenPtMin returns the gen_pt_min value or the default.
func (c *AnalyzerConfig) GetGenPtMin() float64 {
	if c.GenPtMin == nil {
		return 10
	}
	return *c.GenPtMin
}

// GetGroomedMatchDR returns the groomed_match_dr value or the default.
func (c *AnalyzerConfig) GetGroomedMatchDR() float64 {
	if c.GroomedMatchDR == nil {
		return 0.4
	}
	return *c.GroomedMatchDR
}

// GetWTARadius returns the wta_r value or the default.
func (c *AnalyzerConfig) GetWTARadius() float64 {
	if c.WTARadius == nil {
		return 2.0
	}
	return *c.WTARadius
}

// GetMaxJets returns the max_jets value or the default.
func (c *AnalyzerConfig) GetMaxJets() int {
	if c.MaxJets == nil {
		return 1000
	}
	return *c.MaxJets
}

// GetUseRawPt returns the use_raw_pt value or the default.
func (c *AnalyzerConfig) GetUseRawPt() bool {
	if c.UseRawPt == nil {
		return true
	}
	return *c.UseRawPt
}

// GetUseQuality returns the use_quality value or the default.
func (c *AnalyzerConfig) GetUseQuality() bool {
	if c.UseQuality == nil {
		return true
	}
	return *c.UseQuality
}

// GetTrackQuality returns the track_quality value or the default.
func (c *AnalyzerConfig) GetTrackQuality() string {
	if c.TrackQuality == nil {
		return "highPurity"
	}
	return *c.TrackQuality
}

// GetDoJetID returns the do_jet_id value or the default.
func (c *AnalyzerConfig) GetDoJetID() bool {
	if c.DoJetID == nil {
		return true
	}
	return *c.DoJetID
}

func enabled(v *bool) bool {
	return v != nil && *v
}

// GetIsMC returns the is_mc value (default false).
func (c *AnalyzerConfig) GetIsMC() bool { return enabled(c.IsMC) }

// GetUseHepMC returns the use_hepmc value (default false).
func (c *AnalyzerConfig) GetUseHepMC() bool { return enabled(c.UseHepMC) }

// GetFillGenJets returns the fill_gen_jets value (default false).
func (c *AnalyzerConfig) GetFillGenJets() bool { return enabled(c.FillGenJets) }

// GetDoSubEvent returns the do_sub_event value (default false).
func (c *AnalyzerConfig) GetDoSubEvent() bool { return enabled(c.DoSubEvent) }

// GetDoGenTaus returns the do_gen_taus value (default false).
func (c *AnalyzerConfig) GetDoGenTaus() bool { return enabled(c.DoGenTaus) }

// GetDoGenSubJets returns the do_gen_sub_jets value (default false).
func (c *AnalyzerConfig) GetDoGenSubJets() bool { return enabled(c.DoGenSubJets) }

// GetDoGenSym returns the do_gen_sym value (default false).
func (c *AnalyzerConfig) GetDoGenSym() bool { return enabled(c.DoGenSym) }

// GetDoMatch returns the do_match value (default false).
func (c *AnalyzerConfig) GetDoMatch() bool { return enabled(c.DoMatch) }

// GetDoSubJets returns the do_sub_jets value (default false).
func (c *AnalyzerConfig) GetDoSubJets() bool { return enabled(c.DoSubJets) }

// GetDoJetConstituents returns the do_jet_constituents value (default false).
func (c *AnalyzerConfig) GetDoJetConstituents() bool { return enabled(c.DoJetConstituents) }

// GetDoWTARecluster returns the do_wta_recluster value (default false).
func (c *AnalyzerConfig) GetDoWTARecluster() bool { return enabled(c.DoWTARecluster) }

// GetDoBTagging returns the do_btagging value (default false).
func (c *AnalyzerConfig) GetDoBTagging() bool { return enabled(c.DoBTagging) }

// GetDoCaloJets returns the do_calo_jets value (default false).
func (c *AnalyzerConfig) GetDoCaloJets() bool { return enabled(c.DoCaloJets) }

// GetDoGenChargedSums returns the do_gen_charged_sums value (default false).
func (c *AnalyzerConfig) GetDoGenChargedSums() bool { return enabled(c.DoGenChargedSums) }
