package geom

import (
	"fmt"
	"math"
)

// Dimension stores the extents of a 3-D grid along x, y and z.
type Dimension struct {
	X, Y, Z int
}

// NewDimension validates and constructs a Dimension. It rejects negative
// extents and extents whose product would overflow a 64-bit unsigned cell
// count.
func NewDimension(x, y, z int) (Dimension, error) {
	if x < 0 || y < 0 || z < 0 {
		return Dimension{}, fmt.Errorf("geom: dimensions are negative: (%d,%d,%d)", x, y, z)
	}
	if x != 0 && y != 0 && z != 0 {
		limit := math.MaxUint64 / uint64(x) / uint64(y)
		if limit/uint64(z) == 0 {
			return Dimension{}, fmt.Errorf("geom: dimensions are too large: (%d,%d,%d)", x, y, z)
		}
	}
	return Dimension{X: x, Y: y, Z: z}, nil
}

// Cells returns the number of cells in a domain of this dimension.
func (d Dimension) Cells() uint64 {
	return uint64(d.X) * uint64(d.Y) * uint64(d.Z)
}

// PlusOne returns d increased by 1 cell in every dimension.
func (d Dimension) PlusOne() Dimension {
	return Dimension{d.X + 1, d.Y + 1, d.Z + 1}
}

// Twice returns d scaled by a factor of 2 in every dimension.
func (d Dimension) Twice() Dimension {
	return Dimension{2 * d.X, 2 * d.Y, 2 * d.Z}
}

// Equal reports whether d and other have identical extents.
func (d Dimension) Equal(other Dimension) bool {
	return d.X == other.X && d.Y == other.Y && d.Z == other.Z
}

// PaddedDimension rounds dimension up component-wise to the smallest
// {2,3,5}-smooth size, optionally with a base divisor c that accounts for
// a field's built-in sub-block factor (c=1 when there is none).
func PaddedDimension(dimension Dimension, c int) Dimension {
	if c < 1 {
		c = 1
	}
	return Dimension{
		X: RoundUpSmooth(dimension.X, c, 2, 3, 5),
		Y: RoundUpSmooth(dimension.Y, c, 2, 3, 5),
		Z: RoundUpSmooth(dimension.Z, c, 2, 3, 5),
	}
}

// DistributedDimension extends Dimension with the z-slab this process
// owns: the process holds z indices [ZOffset, ZOffset+Z), out of a grid
// whose full z extent is ZFull.
type DistributedDimension struct {
	Dimension
	ZOffset int
	ZFull   int
}

// WholeDistributedDimension returns a DistributedDimension describing a
// grid of the given dimension that is not fragmented at all: the single
// owning process has z-offset 0 and z-full equal to dimension.Z.
func WholeDistributedDimension(dimension Dimension) DistributedDimension {
	return DistributedDimension{Dimension: dimension, ZOffset: 0, ZFull: dimension.Z}
}

// CellsFull returns the number of cells in the entire (combined) domain,
// i.e. as if Z were ZFull instead of the local slab length.
func (d DistributedDimension) CellsFull() uint64 {
	return uint64(d.X) * uint64(d.Y) * uint64(d.ZFull)
}

// DualDimension bundles the real-space view (z-partitioned, unpadded in
// x,y) and the frequency-space view (transposed: its "z" axis is
// physically the real-space y axis) of the same distributed buffer.
// Cells is the per-rank local buffer length backing both views (the two
// agree for even splits; for uneven splits the buffer is sized to the
// larger of the two so both views alias into it).
type DualDimension struct {
	Cells uint64
	Real  DistributedDimension
	Freq  DistributedDimension
}

// NewDualDimension computes the real-space and frequency-space
// DistributedDimensions for a combined real-space dimension, split evenly
// across size processes (rank in [0,size)).
//
// Example: dimension=(100,200,400) split across 4 processes yields, for
// each process, a real-space view of (100,200,100) fragmented in z, and a
// frequency-space view of (100,400,50) with y and z swapped, fragmented
// in the (physically-y) direction.
func NewDualDimension(dimension Dimension, rank, size int) DualDimension {
	real := splitZ(Dimension{dimension.X, dimension.Y, dimension.Z}, rank, size)
	freq := splitZ(Dimension{dimension.X, dimension.Z, dimension.Y}, rank, size)
	cells := real.Cells()
	if freqCells := freq.Cells(); freqCells > cells {
		cells = freqCells
	}
	return DualDimension{
		Cells: cells,
		Real:  real,
		Freq:  freq,
	}
}

// splitZ divides dimension.Z evenly (remainder given to the lowest-ranked
// processes, one extra slice each) across size processes and returns the
// DistributedDimension owned by rank.
func splitZ(dimension Dimension, rank, size int) DistributedDimension {
	if size <= 0 {
		size = 1
	}
	base := dimension.Z / size
	rem := dimension.Z % size
	length := base
	offset := rank * base
	if rank < rem {
		length++
		offset += rank
	} else {
		offset += rem
	}
	return DistributedDimension{
		Dimension: Dimension{X: dimension.X, Y: dimension.Y, Z: length},
		ZOffset:   offset,
		ZFull:     dimension.Z,
	}
}
