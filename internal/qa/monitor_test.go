package qa

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"

	"github.com/banshee-data/jetforest/internal/fsutil"
	"github.com/banshee-data/jetforest/internal/jets/event"
	"github.com/banshee-data/jetforest/internal/jets/record"
)

func simEvent(pts ...float32) *record.Event {
	ev := record.NewEvent(event.ID{Run: 1, Lumi: 1, Event: 1}, 0)
	for _, pt := range pts {
		j := record.NewJetRecord()
		j.Pt, j.Eta, j.Phi = pt, 0.5, 1.0
		j.RefPt, j.RefDR = pt/2, 0.1
		j.WTAEta, j.WTAPhi = 0.5, 1.2
		ev.AddJet(j)
	}
	g := record.NewGenJetRecord()
	g.Pt = 40
	ev.AddGenJet(g)
	return ev
}

func TestMonitor_Fill(t *testing.T) {
	m := New()
	m.Fill(simEvent(100, 60))

	data := record.NewEvent(event.ID{Run: 1, Lumi: 1, Event: 2}, 0)
	j := record.NewJetRecord()
	j.Pt, j.Eta = 30, -1
	data.AddJet(j)
	m.Fill(data)

	assert.Equal(t, int64(3), m.Histogram("jtpt").Entries())
	assert.Equal(t, int64(2), m.Histogram("nref").Entries())
	assert.Equal(t, int64(2), m.Histogram("response").Entries(), "only jets with truth")
	assert.Equal(t, int64(2), m.Histogram("refdrjt").Entries())
	assert.Equal(t, int64(2), m.Histogram("wta_dr").Entries(), "sentinel WTA axis skipped")
	assert.Equal(t, int64(1), m.Histogram("genpt").Entries())
	assert.InDelta(t, 0.2, m.Histogram("wta_dr").XMean(), 1e-6)

	s := m.Summary()
	assert.Equal(t, 2, s.Events)
	assert.Equal(t, 3, s.Jets)
	assert.Equal(t, 1, s.GenJets)
	assert.Equal(t, 2, s.MatchedJets)
	assert.InDelta(t, 2.0, s.ResponseMean, 1e-9)
	assert.InDelta(t, 0.0, s.ResponseStdDev, 1e-9)
	assert.InDelta(t, 2.0, s.ResponseMedian, 1e-9)
}

func TestMonitor_SummaryWithoutTruth(t *testing.T) {
	m := New()
	m.Fill(record.NewEvent(event.ID{}, 0))
	s := m.Summary()
	assert.Equal(t, 1, s.Events)
	assert.True(t, math.IsNaN(s.ResponseMean))
	assert.True(t, math.IsNaN(s.ResponseMedian))
}

type registry map[string]*hbook.H1D

func (r registry) AddHistogram(name string, h *hbook.H1D) { r[name] = h }

func TestMonitor_Register(t *testing.T) {
	m := New()
	reg := registry{}
	m.Register(reg)

	var names []string
	for _, n := range m.Histograms() {
		names = append(names, n.Name)
		assert.Same(t, n.H, reg[n.Name])
		assert.Equal(t, n.Name, n.H.Name())
	}
	assert.Equal(t, []string{"jtpt", "jteta", "nref", "response", "refdrjt", "wta_dr", "genpt"}, names)
}

func TestMonitor_Write(t *testing.T) {
	m := New()
	m.Fill(simEvent(100, 60))

	fs := fsutil.NewMemoryFileSystem()
	require.NoError(t, m.Write(fs, "/out/qa"))

	png, err := fs.ReadFile(filepath.Join("/out/qa", "jtpt.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "png magic")

	html, err := fs.ReadFile("/out/qa/" + ReportFile)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Jet response")
	assert.Contains(t, string(html), "jetforest QA")

	raw, err := fs.ReadFile("/out/qa/" + SummaryFile)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.EqualValues(t, 1, got["events"])
	assert.EqualValues(t, 2, got["matched_jets"])
	assert.InDelta(t, 2.0, got["response_mean"], 1e-9)
}

func TestMonitor_WriteSkipsEmptyPlots(t *testing.T) {
	m := New()
	m.Fill(record.NewEvent(event.ID{}, 0))

	fs := fsutil.NewMemoryFileSystem()
	require.NoError(t, m.Write(fs, "/qa"))

	assert.True(t, fs.Exists("/qa/nref.png"))
	assert.False(t, fs.Exists("/qa/jtpt.png"))

	raw, err := fs.ReadFile("/qa/" + SummaryFile)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Nil(t, got["response_mean"])
}
