// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"errors"
	"testing"

	"github.com/banshee-data/jetforest/internal/jets/event"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertErrorIs fails the test unless errors.Is(err, target).
func AssertErrorIs(t testing.TB, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error = %v, want %v", err, target)
	}
}

// Jet returns a primary jet with raw and calibrated pt both set to pt.
func Jet(pt, eta, phi float64) event.Jet {
	return event.Jet{Kin: event.Kin{Pt: pt, Eta: eta, Phi: phi, Mass: 1}, RawPt: pt, Area: 0.5}
}

// GenJet returns a generator jet with a single daughter along its axis.
func GenJet(pt, eta, phi float64) event.GenJet {
	k := event.Kin{Pt: pt, Eta: eta, Phi: phi, Mass: 1}
	return event.GenJet{
		Kin:       k,
		Area:      0.5,
		Daughters: []event.Particle{{Kin: event.Kin{Pt: pt, Eta: eta, Phi: phi}, PdgID: 211, Charge: 1}},
	}
}

// LinkGen points jet at generator jet index i.
func LinkGen(jet *event.Jet, i int) {
	jet.GenJet = &i
}

// DataEvent returns a collision event carrying jets and an empty
// candidate collection, the minimum the default options require.
func DataEvent(jets ...event.Jet) *event.Event {
	if jets == nil {
		jets = []event.Jet{}
	}
	return &event.Event{
		ID:         event.ID{Run: 1, Lumi: 1, Event: 1},
		Jets:       jets,
		Candidates: []event.Candidate{},
	}
}

// SimEvent returns DataEvent plus generator jets and generator info.
func SimEvent(jets []event.Jet, gen []event.GenJet) *event.Event {
	ev := DataEvent(jets...)
	if gen == nil {
		gen = []event.GenJet{}
	}
	ev.GenJets = gen
	ev.GenInfo = &event.GenInfo{QScale: 80}
	return ev
}
