package groom

import (
	"github.com/banshee-data/jetforest/internal/jets/event"
	"github.com/banshee-data/jetforest/internal/jets/match"
	"github.com/banshee-data/jetforest/internal/jets/subjets"
)

// DefaultMaxDR is the acceptance radius between a jet and its groomed
// counterpart.
const DefaultMaxDR = 0.4

// Resolver matches jets against one groomed collection. Sym and Dropped
// are the side channels keyed by groomed-jet index; they are consulted
// only when WithMetadata is set.
type Resolver struct {
	Candidates   []event.GroomedJet
	Sym          event.ValueMap[float64]
	Dropped      event.ValueMap[int]
	WithMetadata bool
	MaxDR        float64

	// Names used in lookup-failure reports.
	SymName     string
	DroppedName string
}

// Result holds the groomed fields of one jet. Unmatched results carry
// sentinels everywhere and single-entry sentinel lists.
type Result struct {
	Index           int // index into Candidates, match.NoMatch when unmatched
	DR              float64
	Pt, Eta, Phi, M float32
	Sym             float32
	DroppedBranches int32
	SubJets         []subjets.Tuple
	Constituents    []subjets.Constituent
}

// Matched reports whether a groomed jet was found within the radius.
func (r Result) Matched() bool {
	return r.Index != match.NoMatch
}

// Unmatched returns the all-sentinel result.
func Unmatched() Result {
	return Result{
		Index:           match.NoMatch,
		DR:              event.Sentinel,
		Pt:              event.Sentinel,
		Eta:             event.Sentinel,
		Phi:             event.Sentinel,
		M:               event.Sentinel,
		Sym:             event.Sentinel,
		DroppedBranches: event.Sentinel,
		SubJets:         subjets.SentinelList(),
		Constituents:    subjets.SentinelConstituents(),
	}
}

// Resolve finds the groomed jet nearest to probe. A missing side-channel
// entry for a matched index is returned as an error wrapping
// event.ErrSideChannelMiss; it is never defaulted.
func (r Resolver) Resolve(probe event.Directed) (Result, error) {
	maxDR := r.MaxDR
	if maxDR <= 0 {
		maxDR = DefaultMaxDR
	}
	idx, dr := match.Within(probe, r.Candidates, maxDR)
	if idx == match.NoMatch {
		return Unmatched(), nil
	}

	g := &r.Candidates[idx]
	res := Result{
		Index:           idx,
		DR:              dr,
		Pt:              float32(g.Pt),
		Eta:             float32(g.Eta),
		Phi:             float32(g.Phi),
		M:               float32(g.Mass),
		Sym:             event.Sentinel,
		DroppedBranches: event.Sentinel,
		SubJets:         subjets.Extract(g.Daughters),
		Constituents:    subjets.ExtractConstituents(g.Daughters),
	}

	if r.WithMetadata {
		sym, err := r.Sym.Lookup(nameOr(r.SymName, "sym"), idx)
		if err != nil {
			return Result{}, err
		}
		dropped, err := r.Dropped.Lookup(nameOr(r.DroppedName, "dropped_branches"), idx)
		if err != nil {
			return Result{}, err
		}
		res.Sym = float32(sym)
		res.DroppedBranches = int32(dropped)
	}
	return res, nil
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
