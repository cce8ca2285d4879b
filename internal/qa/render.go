package qa

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/jetforest/internal/fsutil"
	"github.com/banshee-data/jetforest/internal/monitoring"
)

// File names written into the QA directory.
const (
	ReportFile  = "report.html"
	SummaryFile = "summary.json"
)

// Write renders plots, the HTML report and the summary into dir.
func (m *Monitor) Write(fsys fsutil.FileSystem, dir string) error {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create qa dir: %w", err)
	}
	if err := m.WritePlots(fsys, dir); err != nil {
		return err
	}
	if err := m.WriteReport(fsys, filepath.Join(dir, ReportFile)); err != nil {
		return err
	}
	return m.WriteSummary(fsys, filepath.Join(dir, SummaryFile))
}

// WritePlots writes one <name>.png per non-empty histogram.
func (m *Monitor) WritePlots(fsys fsutil.FileSystem, dir string) error {
	for _, s := range specs {
		h := m.hists[s.name]
		if h.Entries() == 0 {
			monitoring.Debugf("qa: %s is empty, no plot", s.name)
			continue
		}

		p := hplot.New()
		p.Title.Text = s.title
		p.X.Label.Text = s.xlabel
		p.Y.Label.Text = "entries"
		p.Add(hplot.NewH1D(h), hplot.NewGrid())

		wt, err := p.Plot.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
		if err != nil {
			return fmt.Errorf("render %s: %w", s.name, err)
		}
		if err := writeFile(fsys, filepath.Join(dir, s.name+".png"), wt); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport writes an HTML page with one bar chart per histogram.
func (m *Monitor) WriteReport(fsys fsutil.FileSystem, path string) error {
	sum := m.Summary()
	page := components.NewPage()
	page.PageTitle = "jetforest QA"

	for _, s := range specs {
		h := m.hists[s.name]
		labels, values := barSeries(h)

		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "360px"}),
			charts.WithTitleOpts(opts.Title{
				Title:    s.title,
				Subtitle: fmt.Sprintf("entries=%d mean=%.3g events=%d", h.Entries(), mean(h), sum.Events),
			}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
			charts.WithXAxisOpts(opts.XAxis{Name: s.xlabel, NameLocation: "middle", NameGap: 25}),
		)
		bar.SetXAxis(labels).AddSeries(s.name, values)
		page.AddCharts(bar)
	}

	return writeFile(fsys, path, page)
}

// WriteSummary writes the run summary as indented JSON. NaN statistics
// are written as null.
func (m *Monitor) WriteSummary(fsys fsutil.FileSystem, path string) error {
	s := m.Summary()
	out := map[string]any{
		"events":          s.Events,
		"jets":            s.Jets,
		"gen_jets":        s.GenJets,
		"matched_jets":    s.MatchedJets,
		"response_mean":   finite(s.ResponseMean),
		"response_stddev": finite(s.ResponseStdDev),
		"response_median": finite(s.ResponseMedian),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	w, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return w.Close()
}

type renderer interface {
	Render(w io.Writer) error
}

func writeFile(fsys fsutil.FileSystem, path string, src any) error {
	w, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	switch v := src.(type) {
	case io.WriterTo:
		_, err = v.WriteTo(w)
	case renderer:
		err = v.Render(w)
	default:
		err = fmt.Errorf("unsupported source %T", src)
	}
	if err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return w.Close()
}

func barSeries(h *hbook.H1D) ([]string, []opts.BarData) {
	bins := h.Binning.Bins
	labels := make([]string, len(bins))
	values := make([]opts.BarData, len(bins))
	for i, b := range bins {
		labels[i] = fmt.Sprintf("%.3g", b.XMid())
		values[i] = opts.BarData{Value: b.SumW()}
	}
	return labels, values
}

func mean(h *hbook.H1D) float64 {
	if h.Entries() == 0 {
		return 0
	}
	return h.XMean()
}

func finite(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
