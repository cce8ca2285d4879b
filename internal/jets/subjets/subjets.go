// Package subjets builds the variable-length per-jet daughter lists.
//
// Every list has at least one entry: a jet without daughters yields the
// single sentinel entry, so fixed-shape consumers can rely on length >= 1.
package subjets

import (
	"github.com/banshee-data/jetforest/internal/jets/event"
)

// Tuple is one daughter's (pt, eta, phi, mass).
type Tuple struct {
	Pt, Eta, Phi, M float32
}

// SentinelTuple stands for "no daughters".
var SentinelTuple = Tuple{Pt: -999, Eta: -999, Phi: -999, M: -999}

// Constituent is one constituent with its identity and energy.
type Constituent struct {
	ID              int32
	E, Pt, Eta, Phi float32
	M               float32
}

// SentinelConstituent stands for "no constituents".
var SentinelConstituent = Constituent{ID: -999, E: -999, Pt: -999, Eta: -999, Phi: -999, M: -999}

// Extract returns the (pt, eta, phi, mass) list of daughters in order,
// or the single sentinel entry when there are none.
func Extract(daughters []event.Particle) []Tuple {
	if len(daughters) == 0 {
		return SentinelList()
	}
	out := make([]Tuple, len(daughters))
	for i := range daughters {
		d := &daughters[i]
		out[i] = Tuple{Pt: float32(d.Pt), Eta: float32(d.Eta), Phi: float32(d.Phi), M: float32(d.Mass)}
	}
	return out
}

// ExtractConstituents is Extract with the PDG id and energy carried along.
func ExtractConstituents(daughters []event.Particle) []Constituent {
	if len(daughters) == 0 {
		return SentinelConstituents()
	}
	out := make([]Constituent, len(daughters))
	for i := range daughters {
		d := &daughters[i]
		out[i] = Constituent{
			ID:  int32(d.PdgID),
			E:   float32(d.Energy()),
			Pt:  float32(d.Pt),
			Eta: float32(d.Eta),
			Phi: float32(d.Phi),
			M:   float32(d.Mass),
		}
	}
	return out
}

// SentinelList returns a fresh one-entry sentinel list.
func SentinelList() []Tuple {
	return []Tuple{SentinelTuple}
}

// SentinelConstituents returns a fresh one-entry sentinel constituent list.
func SentinelConstituents() []Constituent {
	return []Constituent{SentinelConstituent}
}

// IsSentinel reports whether list is the "no daughters" list.
func IsSentinel(list []Tuple) bool {
	return len(list) == 1 && list[0] == SentinelTuple
}
