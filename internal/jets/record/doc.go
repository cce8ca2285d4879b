// Package record owns the per-event output records: one JetRecord per
// accepted jet, one GenJetRecord per accepted generator jet and one
// CaloRecord per calorimeter jet, held in a capacity-bounded Event.
//
// Every scalar starts at its sentinel (event.Sentinel, or zero for
// composition sums and counts) and every list starts as the single
// sentinel entry, so a record that was never populated reads as "absent"
// rather than "zero".
//
// Scalars are float32/int32, the widths of the output columns. JSON tags
// carry the output column names.
package record
