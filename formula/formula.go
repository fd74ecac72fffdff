// Package formula defines the seam for molecular-formula computation from a
// SMILES string. The engine proper never needs a formula -- deconvolution
// works from neutral mass alone -- and no other package of this repository
// imports this one; it is where a real cheminformatics backend would be
// wired in.
package formula

import "errors"

// ErrNotImplemented is returned by the stub FromSMILES. A real
// implementation would delegate to a cheminformatics library or external
// service; none is part of this repository.
var ErrNotImplemented = errors.New("formula: SMILES parsing not implemented")

// Formula is an elemental composition, e.g. {"C": 6, "H": 12, "O": 6}.
type Formula map[string]int

// Resolver computes a Formula from a SMILES string.
type Resolver interface {
	FromSMILES(smiles string) (Formula, error)
}

// Stub is a Resolver that always returns ErrNotImplemented. It satisfies
// the Resolver interface so callers can wire a real implementation in
// later without changing their call sites.
type Stub struct{}

// FromSMILES always returns ErrNotImplemented.
func (Stub) FromSMILES(string) (Formula, error) {
	return nil, ErrNotImplemented
}
