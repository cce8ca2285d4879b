package record

import (
	"github.com/banshee-data/jetforest/internal/jets/event"
)

// DefaultCapacity bounds each per-event list when no capacity is
// configured.
const DefaultCapacity = 1000

// Event is the output of one processed collision. The three lists are
// bounded by the same capacity and counted independently.
type Event struct {
	Run  int32 `json:"run"`
	Evt  int32 `json:"evt"`
	Lumi int32 `json:"lumi"`

	Pthat   float32 `json:"pthat"`
	BeamID1 int32   `json:"beamId1"`
	BeamID2 int32   `json:"beamId2"`

	Jets    []JetRecord    `json:"jets"`
	GenJets []GenJetRecord `json:"gen_jets"`
	Calo    []CaloRecord   `json:"calo_jets"`

	capacity  int
	truncated int
}

// NewEvent returns an empty, reset event for id with room for capacity
// records per list. A non-positive capacity uses DefaultCapacity.
func NewEvent(id event.ID, capacity int) *Event {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Event{
		Run:     id.Run,
		Evt:     id.Event,
		Lumi:    id.Lumi,
		Pthat:   sentinelF,
		BeamID1: sentinelI,
		BeamID2: sentinelI,
		Jets:    make([]JetRecord, 0, min(capacity, 64)),
		GenJets: make([]GenJetRecord, 0, min(capacity, 64)),

		capacity: capacity,
	}
}

// Capacity returns the per-list bound.
func (e *Event) Capacity() int { return e.capacity }

// NRef, NGen and NCalo are the output list lengths.
func (e *Event) NRef() int  { return len(e.Jets) }
func (e *Event) NGen() int  { return len(e.GenJets) }
func (e *Event) NCalo() int { return len(e.Calo) }

// Truncated returns how many records were dropped for lack of room.
func (e *Event) Truncated() int { return e.truncated }

// AddJet appends r and returns its index, or -1 and false when the jet
// list is full.
func (e *Event) AddJet(r JetRecord) (int, bool) {
	if len(e.Jets) >= e.capacity {
		e.truncated++
		return -1, false
	}
	e.Jets = append(e.Jets, r)
	return len(e.Jets) - 1, true
}

// AddGenJet appends g and returns its index, or -1 and false when the
// generator list is full.
func (e *Event) AddGenJet(g GenJetRecord) (int, bool) {
	if len(e.GenJets) >= e.capacity {
		e.truncated++
		return -1, false
	}
	e.GenJets = append(e.GenJets, g)
	return len(e.GenJets) - 1, true
}

// AddCalo appends c, returning false when the calorimeter list is full.
func (e *Event) AddCalo(c CaloRecord) bool {
	if len(e.Calo) >= e.capacity {
		e.truncated++
		return false
	}
	e.Calo = append(e.Calo, c)
	return true
}

// Drop counts a record that was not stored because its list was full.
func (e *Event) Drop() { e.truncated++ }

// Full reports whether the jet list has reached capacity.
func (e *Event) Full() bool {
	return len(e.Jets) >= e.capacity
}
