// Package convengine implements the Coulomb/exchange matrix element
// calculator: initialize() once per interaction kernel, then any number
// of prepare()/calculate() cycles, one pair per integral index.
//
// Usage, mirroring original_source/src/CoulombCalculator.hpp:
//  1. Build an Engine for the wavefunction grid's dimension.
//  2. Call Initialize with the interaction kernel and step lengths.
//  3. Write the first quasi-density into Input, call Prepare.
//  4. Write the second quasi-density into Input, call Calculate (or,
//     for on-site potentials, call Potential instead).
package convengine
