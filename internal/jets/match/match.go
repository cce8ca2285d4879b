package match

import (
	"math"

	"github.com/banshee-data/jetforest/internal/jets/event"
)

// NoMatch is the index returned when no candidate qualifies.
const NoMatch = -1

// Directed is re-exported so callers can name the constraint without
// importing event.
type Directed = event.Directed

// Nearest returns the index of the candidate closest to probe under
// d = sqrt(Δη² + Δφ²) and that distance. An empty collection yields
// (NoMatch, +Inf). Equidistant candidates resolve to the first one.
func Nearest[T Directed](probe Directed, candidates []T) (int, float64) {
	eta, phi := probe.Direction()
	best := NoMatch
	bestDR := math.Inf(1)
	for i := range candidates {
		ceta, cphi := candidates[i].Direction()
		dr := event.DeltaR(eta, phi, ceta, cphi)
		if dr < bestDR {
			best = i
			bestDR = dr
		}
	}
	return best, bestDR
}

// Within is Nearest with an acceptance radius: the nearest candidate is
// kept only when its distance is strictly below maxDR. The distance is
// returned either way.
func Within[T Directed](probe Directed, candidates []T, maxDR float64) (int, float64) {
	idx, dr := Nearest(probe, candidates)
	if idx == NoMatch || dr >= maxDR {
		return NoMatch, dr
	}
	return idx, dr
}

// Tolerance bounds a kinematic coincidence test. Each bound is exclusive.
type Tolerance struct {
	Pt  float64
	Eta float64
	Phi float64
}

// DefaultTolerance is the coincidence window for generator jets that the
// producing framework embedded verbatim in a reconstructed jet.
var DefaultTolerance = Tolerance{Pt: 0.01, Eta: 1e-4, Phi: 1e-4}

// Coincident reports whether a and b agree within tol. Phi is compared
// modulo 2π.
func Coincident(a, b event.Kin, tol Tolerance) bool {
	return math.Abs(a.Pt-b.Pt) < tol.Pt &&
		math.Abs(a.Eta-b.Eta) < tol.Eta &&
		math.Abs(event.DeltaPhi(a.Phi, b.Phi)) < tol.Phi
}

// FirstCoincident scans n candidates in order and returns the index of the
// first whose kinematics (as returned by at) coincide with probe, or
// NoMatch. The scan stops at the first hit; it does not look for a better
// one.
func FirstCoincident(probe event.Kin, n int, at func(i int) event.Kin, tol Tolerance) int {
	for i := 0; i < n; i++ {
		if Coincident(probe, at(i), tol) {
			return i
		}
	}
	return NoMatch
}
