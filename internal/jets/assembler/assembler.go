package assembler

import (
	"fmt"

	"github.com/banshee-data/jetforest/internal/jets/axis"
	"github.com/banshee-data/jetforest/internal/jets/composition"
	"github.com/banshee-data/jetforest/internal/jets/event"
	"github.com/banshee-data/jetforest/internal/jets/record"
	"github.com/banshee-data/jetforest/internal/monitoring"
)

// State is the position of an Assembler in its per-event cycle.
type State int

const (
	Idle State = iota
	Resetting
	PopulatingReco
	PopulatingGen
	PopulatingCalo
	Finalized
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Resetting:
		return "resetting"
	case PopulatingReco:
		return "populating_reco"
	case PopulatingGen:
		return "populating_gen"
	case PopulatingCalo:
		return "populating_calo"
	case Finalized:
		return "finalized"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Assembler turns input events into output records. It is not safe for
// concurrent use; run one Assembler per goroutine.
type Assembler struct {
	opts  Options
	agg   composition.Aggregator
	wta   axis.Recombiner
	state State
}

// New returns an Assembler for opts.
func New(opts Options) *Assembler {
	if opts.MaxJets <= 0 {
		opts.MaxJets = record.DefaultCapacity
	}
	return &Assembler{
		opts: opts,
		agg: composition.Aggregator{
			R:            opts.RParam,
			HardPtMin:    opts.HardPtMin,
			UseQuality:   opts.UseQuality,
			TrackQuality: opts.TrackQuality,
		},
		wta: axis.NewRecombiner(opts.WTARadius),
	}
}

// Options returns the options the assembler was built with.
func (a *Assembler) Options() Options { return a.opts }

// State returns the current state. Outside Process it is always Idle.
func (a *Assembler) State() State { return a.state }

// Process assembles the record of ev. A returned error aborts the event:
// no record is produced and the assembler is back to Idle.
func (a *Assembler) Process(ev *event.Event) (*record.Event, error) {
	if ev == nil {
		return nil, fmt.Errorf("assembler: nil event")
	}
	out, err := a.process(ev)
	a.state = Idle
	if err != nil {
		return nil, fmt.Errorf("run %d lumi %d event %d: %w", ev.ID.Run, ev.ID.Lumi, ev.ID.Event, err)
	}
	return out, nil
}

func (a *Assembler) process(ev *event.Event) (*record.Event, error) {
	a.state = Resetting
	if err := ev.Require(a.opts.Required()...); err != nil {
		return nil, err
	}
	out := record.NewEvent(ev.ID, a.opts.MaxJets)

	a.state = PopulatingReco
	if err := a.populateReco(ev, out); err != nil {
		return nil, err
	}

	if a.opts.IsMC {
		a.state = PopulatingGen
		if err := a.populateGen(ev, out); err != nil {
			return nil, err
		}
	}

	if a.opts.DoCaloJets {
		a.state = PopulatingCalo
		a.populateCalo(ev, out)
	}

	a.state = Finalized
	if n := out.Truncated(); n > 0 {
		monitoring.Debugf("event %d: %d records dropped at capacity %d", ev.ID.Event, n, out.Capacity())
	}
	return out, nil
}

// populateCalo copies the calorimeter jets. Entries past capacity are
// counted as truncated, one per jet.
func (a *Assembler) populateCalo(ev *event.Event, out *record.Event) {
	for i := range ev.CaloJets {
		c := &ev.CaloJets[i]
		out.AddCalo(record.CaloRecord{Pt: float32(c.Pt), Eta: float32(c.Eta), Phi: float32(c.Phi)})
	}
}
