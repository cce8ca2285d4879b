// Package qa accumulates control histograms over the records a run
// produces and renders them once the run is over.
//
// Responsibilities:
//   - fill hbook histograms (jet pt, eta, multiplicity, response,
//     truth-match distance, WTA axis offset, generator pt) per event;
//   - summarise the jet response (mean, spread, median) with gonum/stat;
//   - write PNG plots (go-hep hplot), an HTML report (go-echarts) and a
//     JSON summary into an fsutil.FileSystem;
//   - hand the histograms to a Registrar such as the ROOT writer.
//
// Dependency rule: qa reads record values only; it never mutates them.
package qa

import (
	"math"
	"sort"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/jetforest/internal/jets/event"
	"github.com/banshee-data/jetforest/internal/jets/record"
)

const sentinel = float32(event.Sentinel)

type histSpec struct {
	name   string
	title  string
	xlabel string
	bins   int
	min    float64
	max    float64
}

var specs = []histSpec{
	{"jtpt", "Jet p_T", "p_T [GeV]", 100, 0, 500},
	{"jteta", "Jet eta", "eta", 51, -5.1, 5.1},
	{"nref", "Jets per event", "nref", 50, 0, 50},
	{"response", "Jet response", "jtpt / refpt", 60, 0, 3},
	{"refdrjt", "Reco-gen distance", "dR", 50, 0, 0.5},
	{"wta_dr", "WTA axis offset", "dR", 50, 0, 0.5},
	{"genpt", "Generator jet p_T", "p_T [GeV]", 100, 0, 500},
}

// Named is a histogram together with its storage name.
type Named struct {
	Name string
	H    *hbook.H1D
}

// Registrar receives histograms for persistence.
type Registrar interface {
	AddHistogram(name string, h *hbook.H1D)
}

// Monitor accumulates histograms over a run. Not safe for concurrent use.
type Monitor struct {
	hists    map[string]*hbook.H1D
	response []float64

	events  int
	jets    int
	genJets int
	matched int
}

// New returns a Monitor with empty histograms.
func New() *Monitor {
	m := &Monitor{hists: make(map[string]*hbook.H1D, len(specs))}
	for _, s := range specs {
		h := hbook.NewH1D(s.bins, s.min, s.max)
		h.Annotation()["name"] = s.name
		h.Annotation()["title"] = s.title
		m.hists[s.name] = h
	}
	return m
}

// Fill adds one event's records.
func (m *Monitor) Fill(ev *record.Event) {
	m.events++
	m.hists["nref"].Fill(float64(ev.NRef()), 1)

	for i := range ev.Jets {
		j := &ev.Jets[i]
		m.jets++
		m.hists["jtpt"].Fill(float64(j.Pt), 1)
		m.hists["jteta"].Fill(float64(j.Eta), 1)

		if j.WTAEta != sentinel && j.WTAPhi != sentinel {
			dr := event.DeltaR(float64(j.Eta), float64(j.Phi), float64(j.WTAEta), float64(j.WTAPhi))
			m.hists["wta_dr"].Fill(dr, 1)
		}

		if !j.HasRef() || j.RefPt <= 0 {
			continue
		}
		m.matched++
		r := float64(j.Pt / j.RefPt)
		m.response = append(m.response, r)
		m.hists["response"].Fill(r, 1)
		if j.RefDR >= 0 {
			m.hists["refdrjt"].Fill(float64(j.RefDR), 1)
		}
	}

	for i := range ev.GenJets {
		m.genJets++
		m.hists["genpt"].Fill(float64(ev.GenJets[i].Pt), 1)
	}
}

// Histograms returns the histograms in a fixed order.
func (m *Monitor) Histograms() []Named {
	out := make([]Named, 0, len(specs))
	for _, s := range specs {
		out = append(out, Named{Name: s.name, H: m.hists[s.name]})
	}
	return out
}

// Histogram returns the named histogram or nil.
func (m *Monitor) Histogram(name string) *hbook.H1D {
	return m.hists[name]
}

// Register hands every histogram to r.
func (m *Monitor) Register(r Registrar) {
	for _, n := range m.Histograms() {
		r.AddHistogram(n.Name, n.H)
	}
}

// Summary describes a run's output.
type Summary struct {
	Events         int
	Jets           int
	GenJets        int
	MatchedJets    int
	ResponseMean   float64
	ResponseStdDev float64
	ResponseMedian float64
}

// Summary computes the run summary. Response statistics are NaN when no
// jet carried truth.
func (m *Monitor) Summary() Summary {
	s := Summary{
		Events:         m.events,
		Jets:           m.jets,
		GenJets:        m.genJets,
		MatchedJets:    m.matched,
		ResponseMean:   math.NaN(),
		ResponseStdDev: math.NaN(),
		ResponseMedian: math.NaN(),
	}
	if len(m.response) == 0 {
		return s
	}
	s.ResponseMean, s.ResponseStdDev = stat.MeanStdDev(m.response, nil)
	sorted := append([]float64(nil), m.response...)
	sort.Float64s(sorted)
	s.ResponseMedian = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return s
}
