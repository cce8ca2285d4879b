package recluster

import "fmt"

// Algorithm selects the exponent p of the generalized-kt distance
// d_ij = min(pt_i^2p, pt_j^2p) ΔR_ij² / R².
type Algorithm int

const (
	KT              Algorithm = iota // p = 1
	CambridgeAachen                  // p = 0
	AntiKT                           // p = -1
)

func (a Algorithm) String() string {
	switch a {
	case KT:
		return "kt"
	case CambridgeAachen:
		return "cambridge_aachen"
	case AntiKT:
		return "antikt"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

func (a Algorithm) exponent() float64 {
	switch a {
	case KT:
		return 1
	case CambridgeAachen:
		return 0
	default:
		return -1
	}
}

// Scheme selects how two pseudojets are merged.
type Scheme int

const (
	// EScheme adds four-momenta.
	EScheme Scheme = iota
	// WTAPtScheme sums pt and takes direction and mass from the harder input.
	WTAPtScheme
)

func (s Scheme) String() string {
	switch s {
	case EScheme:
		return "E"
	case WTAPtScheme:
		return "WTA_pt"
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// Definition fully specifies a clustering.
type Definition struct {
	Algorithm Algorithm
	R         float64
	Scheme    Scheme
}

// WTADefinition is the default axis definition: anti-kt, R = 2.0, WTA pt.
// The large radius merges every constituent of a jet into one object.
func WTADefinition() Definition {
	return Definition{Algorithm: AntiKT, R: 2.0, Scheme: WTAPtScheme}
}

// Validate rejects definitions the clustering cannot run with.
func (d Definition) Validate() error {
	if d.R <= 0 {
		return fmt.Errorf("recluster: radius must be positive, got %v", d.R)
	}
	switch d.Algorithm {
	case KT, CambridgeAachen, AntiKT:
	default:
		return fmt.Errorf("recluster: unknown algorithm %v", d.Algorithm)
	}
	switch d.Scheme {
	case EScheme, WTAPtScheme:
	default:
		return fmt.Errorf("recluster: unknown recombination scheme %v", d.Scheme)
	}
	return nil
}

func (d Definition) String() string {
	return fmt.Sprintf("%s R=%.2f %s", d.Algorithm, d.R, d.Scheme)
}
