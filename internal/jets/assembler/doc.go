// Package assembler owns the per-event record assembly: it walks the
// primary jets, the generator jets and the calorimeter jets of one event
// and produces a record.Event.
//
// Responsibilities:
//   - acceptance cuts and capacity-bounded record lists
//   - per-jet composition, alternate axis, subjet and groomed features
//   - truth linkage in both directions (framework link for reco -> gen,
//     kinematic coincidence for gen -> reco)
//   - presence checks for every collection an enabled feature needs
//
// Key types: Options, Assembler, State.
//
// Dependency rule: assembler depends on the jets/* leaf packages and on
// config for option resolution. It never writes output; sinks do.
package assembler
