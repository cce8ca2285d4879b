// Package groom resolves a plain jet to its soft-drop groomed counterpart.
//
// Responsibilities: nearest groomed-subjet search within an acceptance
// radius, groomed kinematics, subjet and constituent lists of the matched
// groomed jet, and identity-keyed grooming metadata (symmetry, dropped
// branches).
// Key types: Resolver, Result.
package groom
