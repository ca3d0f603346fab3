// Package density builds the quasi-density ρ(r) that seeds a single
// convolution: a bilinear combination of two single-particle states,
// either plain wavefunctions or two-component spinors. Grounded on
// original_source/src/Product.hpp/.cpp.
package density

import (
	"math/cmplx"

	"github.com/cwbudde/coulombo/internal/domain"
)

// QuasiDensity maps a pair of states onto the grid domain F, either
// conjugating the left state (the "input" side of a convolution) or the
// right state (the "shared"/prepared side), matching
// Product::map(F, conjugate)'s two branches.
type QuasiDensity interface {
	Map(F domain.Domain[complex128], conjugate bool)
}

// Wavefunctions builds a quasi-density ρ(r) = left*(r)·right(r) (or its
// conjugate) from two single-component wavefunction grids.
type Wavefunctions struct {
	Left, Right domain.Domain[complex128]
}

// Map implements QuasiDensity.
func (p Wavefunctions) Map(F domain.Domain[complex128], conjugate bool) {
	for i := range F.Data {
		if conjugate {
			F.Data[i] = p.Left.Data[i] * cmplx.Conj(p.Right.Data[i])
		} else {
			F.Data[i] = cmplx.Conj(p.Left.Data[i]) * p.Right.Data[i]
		}
	}
}

// Spinfunctions builds a quasi-density from two-component (up/down)
// spinor states: ρ(r) = leftU*·rightU + leftD*·rightD (or its
// conjugate), the spin-summed bilinear Product::map uses for the
// spin-resolved CLI mode.
type Spinfunctions struct {
	LeftUp, LeftDown   domain.Domain[complex128]
	RightUp, RightDown domain.Domain[complex128]
}

// Map implements QuasiDensity.
func (p Spinfunctions) Map(F domain.Domain[complex128], conjugate bool) {
	for i := range F.Data {
		if conjugate {
			F.Data[i] = p.LeftUp.Data[i]*cmplx.Conj(p.RightUp.Data[i]) +
				p.LeftDown.Data[i]*cmplx.Conj(p.RightDown.Data[i])
		} else {
			F.Data[i] = cmplx.Conj(p.LeftUp.Data[i])*p.RightUp.Data[i] +
				cmplx.Conj(p.LeftDown.Data[i])*p.RightDown.Data[i]
		}
	}
}

// TightBinding builds a quasi-density from atom-centered orbital
// expansions: every atom contributes, to the grid cell it has been
// rounded onto (internal/atoms.Placement), the sum over its orbitals of
// the bilinear product of two states' coefficients. Several atoms may
// share a cell (dense lattices, sub-grid spacing); their contributions
// add.
//
// This generator has no direct counterpart in the surviving
// original_source headers — FunctionCollection.cpp calls a
// ProductFromTightBinding type whose definition was not part of the
// retrieval pack — so its accumulation rule is designed fresh from
// FunctionCollection.cpp's call site (one Product per (fL,fR) pair of
// loaded coefficient sets, orbitals summed per atom) and Product's
// conjugate-bilinear convention above.
type TightBinding struct {
	// Left and Right are indexed [atom][orbital]; both must have the
	// same shape.
	Left, Right [][]complex128

	// CellIndex maps each atom to its linear offset into F.Data, or -1
	// if the atom is not owned by this rank's slab.
	CellIndex []int
}

// Map implements QuasiDensity.
func (p TightBinding) Map(F domain.Domain[complex128], conjugate bool) {
	F.Zero()
	for atom, cell := range p.CellIndex {
		if cell < 0 {
			continue
		}
		left, right := p.Left[atom], p.Right[atom]
		var sum complex128
		for orbital := range left {
			if conjugate {
				sum += left[orbital] * cmplx.Conj(right[orbital])
			} else {
				sum += cmplx.Conj(left[orbital]) * right[orbital]
			}
		}
		F.Data[cell] += sum
	}
}
