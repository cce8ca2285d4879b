// Package composition owns the per-jet aggregation of surrounding
// particle-flow candidates, their tracks and generator particles.
//
// Responsibilities: particle-flow type classification, per-category
// maximum / sum / count, hard-object sums, and generator charged-particle
// sums inside the clustering radius.
// Key types: Aggregator, Category, Sums, Composition.
//
// Cost is O(jets × candidates) per event; no spatial index is used.
package composition
