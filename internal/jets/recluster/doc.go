// Package recluster owns sequential-recombination clustering of a small
// particle set, used to recompute the axis of a single jet from its
// constituents.
//
// Responsibilities:
//   - generalized-kt family distance measures (kt, Cambridge/Aachen, anti-kt)
//   - E-scheme and winner-takes-all pt recombination
//   - inclusive jets above a pt floor, hardest first
//
// Key types: Definition, Session, Jet.
//
// Dependency rule: recluster depends only on go-hep fmom for four-vector
// arithmetic. It knows nothing about events or records.
package recluster
