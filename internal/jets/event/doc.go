// Package event owns the input side of the jet analysis: the per-event
// collections consumed by the feature extractors and the sources that
// deliver them.
//
// Responsibilities: input data model (jets, generator jets, groomed
// subjets, particle-flow candidates, generator particles, identity-keyed
// side channels), presence checks for required collections, and event
// sources (JSON lines, in-memory).
// Key types: Event, Jet, GenJet, GroomedJet, Candidate, ValueMap, Source.
//
// Dependency rule: event depends on no other internal/jets package.
// Object identity is the index of an object in its owning collection;
// side channels are keyed by that index.
package event
