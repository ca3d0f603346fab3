// Package functions loads per-atom tight-binding coefficient files onto
// the shared atom grid and turns them into the quasi-densities a
// convolution run seeds itself with. Grounded on
// original_source/src/FunctionCollection.cpp, which — in the revision
// actually wired into coulombo.cpp — reads an atom-positions file once
// on the root rank, builds a Broadcaster(atomPositions, orbitalCount),
// and treats every appended file as one more tight-binding coefficient
// set to pair up combinatorially.
package functions

import (
	"fmt"

	"github.com/cwbudde/coulombo/internal/atoms"
	"github.com/cwbudde/coulombo/internal/cluster"
	"github.com/cwbudde/coulombo/internal/density"
	"github.com/cwbudde/coulombo/internal/domain"
	"github.com/cwbudde/coulombo/internal/geom"
	"github.com/cwbudde/coulombo/internal/ioformat"
)

// Collection loads a sequence of tight-binding coefficient files against
// a shared, root-inferred atom grid, and builds every (fL,fR) pair with
// fR<=fL as one quasi-density — mirroring
// FunctionCollection::createProducts's combinatorial loop.
type Collection struct {
	rank         *cluster.Rank
	broadcaster  *atoms.Broadcaster
	orbitalCount int
	skipLines    int

	fileNames []string         // basenames, in appended order
	functions [][][]complex128 // [fileIndex][localAtom][orbital]
}

// NewCollection reads the atom positions file on the root rank (pass
// any path elsewhere; it is ignored), infers the shared grid, and
// distributes atom ownership across the cluster.
func NewCollection(rank *cluster.Rank, atomPositionsPath string, orbitalCount, skipLines int) (*Collection, error) {
	var positions []atoms.Position
	if rank.IsRoot() {
		var err error
		positions, err = ioformat.ReadAtomPositions(atomPositionsPath)
		if err != nil {
			return nil, err
		}
	}

	broadcaster, err := atoms.NewBroadcaster(rank, positions)
	if err != nil {
		return nil, err
	}

	return &Collection{
		rank:         rank,
		broadcaster:  broadcaster,
		orbitalCount: orbitalCount,
		skipLines:    skipLines,
	}, nil
}

type appendResult struct{ Err string }

// AppendFile reads one tight-binding coefficient file (on the root rank
// only; the path is ignored elsewhere) and scatters it to every rank
// owning the relevant atoms. basename is recorded for per-file output
// naming (see ExtractAtomCellValues's callers).
func (c *Collection) AppendFile(path, basename string) error {
	var global [][]complex128
	var result appendResult
	if c.rank.IsRoot() {
		var err error
		global, err = ioformat.ReadCoefficients(path, c.orbitalCount, c.broadcaster.TotalAtomCount, c.skipLines)
		if err != nil {
			result.Err = err.Error()
		}
	}
	result = cluster.Broadcast(c.rank.Comm, c.rank.ID, 0, result)
	if result.Err != "" {
		return fmt.Errorf("functions: %s", result.Err)
	}

	rows := c.broadcaster.ScatterCoefficients(global)
	c.functions = append(c.functions, rows)
	c.fileNames = append(c.fileNames, basename)
	return nil
}

// CreateProducts returns one density.TightBinding per unordered pair
// (fL,fR), fR<=fL, of appended files — including the fL==fR diagonal —
// matching FunctionCollection::createProducts.
func (c *Collection) CreateProducts() []density.QuasiDensity {
	var products []density.QuasiDensity
	for fL := 0; fL < len(c.functions); fL++ {
		for fR := 0; fR <= fL; fR++ {
			products = append(products, density.TightBinding{
				Left:      c.functions[fL],
				Right:     c.functions[fR],
				CellIndex: c.broadcaster.CellIndex,
			})
		}
	}
	return products
}

// CreateSelfProducts returns one density.TightBinding per appended
// file, paired against itself — the on-site potential personality's
// input, mirroring FunctionCollection::createSelfProducts.
func (c *Collection) CreateSelfProducts() []density.QuasiDensity {
	products := make([]density.QuasiDensity, len(c.functions))
	for f, rows := range c.functions {
		products[f] = density.TightBinding{
			Left:      rows,
			Right:     rows,
			CellIndex: c.broadcaster.CellIndex,
		}
	}
	return products
}

// FileNames returns the basenames of every appended file, in order.
func (c *Collection) FileNames() []string {
	return c.fileNames
}

// ExtractAtomCellValues reads, for every atom in the system, the value
// of potential at that atom's grid cell, gathered from whichever rank
// owns it. Every rank must call this with its own slab of potential;
// the result is identical and complete on every rank, mirroring
// FunctionCollection::extractAtomCellValues.
func (c *Collection) ExtractAtomCellValues(potential domain.Domain[complex128]) []complex128 {
	local := make([]complex128, c.broadcaster.TotalAtomCount)
	// CellIndex only covers this rank's atoms, in global atom order;
	// OwnedAtomIndices (derived from the ownership array NewBroadcaster
	// broadcasts to every rank) gives each local atom's global index in
	// that same order. Values for atoms owned by other ranks stay at the
	// zero value and disappear under the elementwise sum below.
	owned := c.broadcaster.OwnedAtomIndices()
	for localAtom, cell := range c.broadcaster.CellIndex {
		if cell < 0 {
			continue
		}
		local[owned[localAtom]] = potential.Data[cell]
	}

	sum, _ := cluster.Reduce(c.rank.Comm, c.rank.ID, 0, local, func(a, b []complex128) []complex128 {
		out := make([]complex128, len(a))
		for i := range out {
			out[i] = a[i] + b[i]
		}
		return out
	})
	return cluster.Broadcast(c.rank.Comm, c.rank.ID, 0, sum)
}

// PaddedDimension returns the grid dimension rounded up to the nearest
// {2,3,5}-smooth size a 3-D FFT can transform efficiently, mirroring
// FunctionCollection::getPaddedDimension.
func (c *Collection) PaddedDimension() geom.Dimension {
	return geom.PaddedDimension(c.broadcaster.Dimension, 1)
}

// StepValues returns the per-axis grid spacing inferred from the atom
// positions.
func (c *Collection) StepValues() atoms.Position {
	return c.broadcaster.Step
}

// FunctionCount reports how many files have been appended so far.
func (c *Collection) FunctionCount() int {
	return len(c.functions)
}
