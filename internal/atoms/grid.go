// Package atoms infers a regular grid from a set of atom coordinates
// and distributes per-atom data (orbital coefficients, grid cell
// indices) to the rank owning each atom's z-slab. Grounded on spec.md
// §4.5 and original_source/src/Broadcaster.cpp's z-slab scatterv idiom.
package atoms

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/coulombo/internal/geom"
)

// Position is an atom's Cartesian coordinate, in the same length unit
// as the grid step (Å).
type Position struct {
	X, Y, Z float64
}

// Placement is an atom's integer grid cell, in the full (unpartitioned)
// grid's index space.
type Placement struct {
	IX, IY, IZ int
}

const (
	zeroResidue = 1e-10
	failResidue = 1e-2
)

// tolerantPairGCD folds b into a using Euclid's algorithm, but residues
// too close to zero (at most zeroResidue, relative to the divisor) are
// rounded down to an exact multiple, and residues in the ambiguous band
// (zeroResidue, failResidue) fail outright rather than risk silently
// inferring the wrong step.
func tolerantPairGCD(a, b float64) (float64, error) {
	for b > zeroResidue {
		r := math.Mod(a, b)
		if r > b-r {
			r = b - r // fold into [0, b/2]: residue near b is also "near zero"
		}
		ratio := r / b
		switch {
		case ratio <= zeroResidue:
			r = 0
		case ratio < failResidue:
			return 0, fmt.Errorf("atoms: ambiguous grid step (residue ratio %.3g)", ratio)
		}
		a, b = b, r
	}
	return a, nil
}

// inferAxisStep infers the regular grid step along one axis from a set
// of (not necessarily sorted or unique) coordinates.
func inferAxisStep(coords []float64) (float64, error) {
	sorted := append([]float64(nil), coords...)
	sort.Float64s(sorted)

	var diffs []float64
	for i := 1; i < len(sorted); i++ {
		d := sorted[i] - sorted[i-1]
		if d > zeroResidue {
			diffs = append(diffs, d)
		}
	}
	if len(diffs) == 0 {
		return 1, nil // single plane along this axis; step is arbitrary
	}

	step := diffs[0]
	for _, d := range diffs[1:] {
		var err error
		step, err = tolerantPairGCD(step, d)
		if err != nil {
			return 0, err
		}
		if step <= zeroResidue {
			return 0, fmt.Errorf("atoms: degenerate grid step inferred")
		}
	}
	return step, nil
}

// InferGrid infers the origin, step and (unpadded) extent of the grid
// implied by positions, one axis at a time.
func InferGrid(positions []Position) (origin, step Position, dimension geom.Dimension, err error) {
	if len(positions) == 0 {
		return Position{}, Position{}, geom.Dimension{}, fmt.Errorf("atoms: no atoms given")
	}
	xs := make([]float64, len(positions))
	ys := make([]float64, len(positions))
	zs := make([]float64, len(positions))
	for i, p := range positions {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}

	minOf := func(vs []float64) float64 {
		m := vs[0]
		for _, v := range vs[1:] {
			if v < m {
				m = v
			}
		}
		return m
	}
	maxOf := func(vs []float64) float64 {
		m := vs[0]
		for _, v := range vs[1:] {
			if v > m {
				m = v
			}
		}
		return m
	}

	stepX, err := inferAxisStep(xs)
	if err != nil {
		return Position{}, Position{}, geom.Dimension{}, err
	}
	stepY, err := inferAxisStep(ys)
	if err != nil {
		return Position{}, Position{}, geom.Dimension{}, err
	}
	stepZ, err := inferAxisStep(zs)
	if err != nil {
		return Position{}, Position{}, geom.Dimension{}, err
	}

	origin = Position{X: minOf(xs), Y: minOf(ys), Z: minOf(zs)}
	step = Position{X: stepX, Y: stepY, Z: stepZ}

	extent := func(minV, maxV, s float64) int {
		return int(math.Round((maxV-minV)/s)) + 1
	}
	dimension = geom.Dimension{
		X: extent(origin.X, maxOf(xs), step.X),
		Y: extent(origin.Y, maxOf(ys), step.Y),
		Z: extent(origin.Z, maxOf(zs), step.Z),
	}
	return origin, step, dimension, nil
}

// MapToGrid rounds every position onto the integer grid described by
// origin and step, preserving positions' order.
func MapToGrid(positions []Position, origin, step Position) []Placement {
	out := make([]Placement, len(positions))
	for i, p := range positions {
		out[i] = Placement{
			IX: int(math.Round((p.X - origin.X) / step.X)),
			IY: int(math.Round((p.Y - origin.Y) / step.Y)),
			IZ: int(math.Round((p.Z - origin.Z) / step.Z)),
		}
	}
	return out
}

// CellIndices computes, for every placement, the linear cell offset
// into a local slab of the given distributed dimension, or -1 if the
// placement's z index does not fall in that slab.
func CellIndices(placements []Placement, dim geom.DistributedDimension) []int {
	out := make([]int, len(placements))
	for i, p := range placements {
		if p.IZ < dim.ZOffset || p.IZ >= dim.ZOffset+dim.Z {
			out[i] = -1
			continue
		}
		out[i] = ((p.IZ-dim.ZOffset)*dim.Y+p.IY)*dim.X + p.IX
	}
	return out
}

// ownerRank returns the rank whose z-slab (under an even split of
// dimension.Z across size ranks) contains iz.
func ownerRank(iz int, dimension geom.Dimension, size int) int {
	for r := 0; r < size; r++ {
		d := geom.NewDualDimension(dimension, r, size).Real
		if iz >= d.ZOffset && iz < d.ZOffset+d.Z {
			return r
		}
	}
	return size - 1
}
