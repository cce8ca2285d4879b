// Package match owns nearest-neighbour association between independently
// produced jet-like collections.
//
// Responsibilities: angular nearest-neighbour search (cross-reconstruction
// and groomed-subjet matching) and tolerance-based kinematic coincidence
// (generator jet to reconstructed record discovery).
// Key types: Directed, Tolerance.
//
// Ordering rule: ties and multiple coincidences resolve to the first
// candidate in collection order. Candidates are never re-sorted.
package match
