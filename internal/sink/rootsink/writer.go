// Package rootsink writes event records into a ROOT TTree named "t", one
// entry per event, with the column names of the heavy-ion jet analyzer
// ntuples. Histograms registered with AddHistogram are stored next to the
// tree when the file is closed.
package rootsink

import (
	"context"
	"fmt"
	"reflect"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
	"go-hep.org/x/hep/hbook"

	"github.com/banshee-data/jetforest/internal/jets/record"
	"github.com/banshee-data/jetforest/internal/monitoring"
	"github.com/banshee-data/jetforest/internal/sink"
)

// TreeName is the name of the output tree.
const TreeName = "t"

// Writer is a sink.Sink backed by a ROOT file.
type Writer struct {
	path string
	f    *riofs.File
	tree rtree.Writer

	run, evt, lumi   int32
	pthat            float32
	beamID1, beamID2 int32

	jets, gen, calo *table

	hists   []namedHist
	entries int
	closed  bool
}

type namedHist struct {
	name string
	h    *hbook.H1D
}

// Create opens path for writing and declares the tree.
func Create(path string) (*Writer, error) {
	w := &Writer{path: path}

	var err error
	if w.jets, err = newTable("nref", reflect.TypeOf(record.JetRecord{})); err != nil {
		return nil, err
	}
	if w.gen, err = newTable("ngen", reflect.TypeOf(record.GenJetRecord{})); err != nil {
		return nil, err
	}
	if w.calo, err = newTable("ncalo", reflect.TypeOf(record.CaloRecord{})); err != nil {
		return nil, err
	}

	f, err := groot.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create root file %s: %w", path, err)
	}
	w.f = f

	vars := []rtree.WriteVar{
		{Name: "run", Value: &w.run},
		{Name: "evt", Value: &w.evt},
		{Name: "lumi", Value: &w.lumi},
		{Name: "pthat", Value: &w.pthat},
		{Name: "beamId1", Value: &w.beamID1},
		{Name: "beamId2", Value: &w.beamID2},
	}
	vars = append(vars, w.jets.vars()...)
	vars = append(vars, w.gen.vars()...)
	vars = append(vars, w.calo.vars()...)

	tree, err := rtree.NewWriter(f, TreeName, vars)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create tree %q: %w", TreeName, err)
	}
	w.tree = tree
	return w, nil
}

// Write appends one tree entry for ev.
func (w *Writer) Write(ctx context.Context, ev *record.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.closed {
		return fmt.Errorf("rootsink: write after close")
	}
	w.run, w.evt, w.lumi = ev.Run, ev.Evt, ev.Lumi
	w.pthat = ev.Pthat
	w.beamID1, w.beamID2 = ev.BeamID1, ev.BeamID2

	w.jets.fill(reflect.ValueOf(ev.Jets))
	w.gen.fill(reflect.ValueOf(ev.GenJets))
	w.calo.fill(reflect.ValueOf(ev.Calo))

	if _, err := w.tree.Write(); err != nil {
		return fmt.Errorf("write tree entry %d: %w", w.entries, err)
	}
	w.entries++
	return nil
}

// AddHistogram registers h to be stored under name when the file closes.
func (w *Writer) AddHistogram(name string, h *hbook.H1D) {
	w.hists = append(w.hists, namedHist{name: name, h: h})
}

// Entries returns the number of entries written so far.
func (w *Writer) Entries() int { return w.entries }

// Close flushes the tree, stores the histograms and closes the file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.tree.Close(); err != nil {
		_ = w.f.Close()
		return fmt.Errorf("close tree: %w", err)
	}
	for _, nh := range w.hists {
		if err := w.f.Put(nh.name, rhist.NewH1DFrom(nh.h)); err != nil {
			_ = w.f.Close()
			return fmt.Errorf("store histogram %q: %w", nh.name, err)
		}
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("close root file %s: %w", w.path, err)
	}
	monitoring.Logf("wrote %d entries to %s", w.entries, w.path)
	return nil
}

var _ sink.Sink = (*Writer)(nil)
