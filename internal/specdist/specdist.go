package specdist

import (
	"github.com/cwbudde/coulombo/internal/cluster"
	"github.com/cwbudde/coulombo/internal/domain"
	"github.com/cwbudde/coulombo/internal/geom"
)

// ComputeGfreqDimension computes the distributed dimension of the
// kernel-spectrum slab a rank needs for the 8-shift convolution, given
// its own slab of the wavefunction-density frequency view fFreqDim. The
// needed z-range is 2x the density's own range, reflected around the
// density's full extent when it would otherwise run off the end — the
// spectrum of a doubled, real-even grid is symmetric about that point.
func ComputeGfreqDimension(fFreqDim geom.DistributedDimension) geom.DistributedDimension {
	weNeedMin := 2 * fFreqDim.ZOffset
	weNeedMax := weNeedMin + 2*fFreqDim.Z - 1
	maxIndex := fFreqDim.ZFull

	if weNeedMax > maxIndex {
		if weNeedMin > maxIndex {
			weNeedMin, weNeedMax = weNeedMax, weNeedMin
			weNeedMin = 2*maxIndex - weNeedMin
			weNeedMax = 2*maxIndex - weNeedMax
		} else {
			weNeedMin = min(weNeedMin, 2*maxIndex-weNeedMax)
			weNeedMax = maxIndex
		}
	}

	return geom.DistributedDimension{
		Dimension: geom.Dimension{X: fFreqDim.X + 1, Y: fFreqDim.Y + 1, Z: weNeedMax - weNeedMin + 1},
		ZOffset:   weNeedMin,
		ZFull:     fFreqDim.Z + 1,
	}
}

// Redistribute takes this rank's slab of the densely-computed doubled
// kernel spectrum (have, covering the z-range its own FFT transpose
// happened to produce) and returns the slab this rank actually needs
// for convolution (per ComputeGfreqDimension), normalized by the
// 3-D FFT's forward/inverse scaling and the 8-shift accumulation.
//
// Every rank derives every other rank's have/need z-ranges from
// dimension alone (both are pure functions of (dimension, rank, size)),
// so only the overlapping slices themselves cross the wire, via
// cluster.AllToAllV — no prior exchange of range metadata is needed,
// unlike the MPI_Allgather calls the original implementation uses for
// this.
func Redistribute(rank *cluster.Rank, dimension geom.Dimension, have domain.Domain[float64]) domain.Domain[float64] {
	size := rank.Size
	sliceSize := have.Dim.X * have.Dim.Y

	myFFreq := geom.NewDualDimension(dimension, rank.ID, size).Freq
	myNeed := ComputeGfreqDimension(myFFreq)
	need := domain.NewDomainView[float64](make([]float64, myNeed.Dimension.Cells()), myNeed)

	weHaveMin, weHaveMax := have.Dim.ZOffset, have.Dim.ZOffset+have.Dim.Z-1

	send := make([][]float64, size)
	for node := 0; node < size; node++ {
		otherFFreq := geom.NewDualDimension(dimension, node, size).Freq
		otherNeed := ComputeGfreqDimension(otherFFreq)
		needMin, needMax := otherNeed.ZOffset, otherNeed.ZOffset+otherNeed.Z-1

		if weHaveMin <= needMax && needMin <= weHaveMax {
			first := max(weHaveMin, needMin)
			last := min(weHaveMax, needMax)
			offset := (first - weHaveMin) * sliceSize
			count := (last - first + 1) * sliceSize
			send[node] = append([]float64(nil), have.Data[offset:offset+count]...)
		}
	}

	recv := cluster.AllToAllV(rank.Comm, rank.ID, send)

	weNeedMin, weNeedMax := myNeed.ZOffset, myNeed.ZOffset+myNeed.Z-1
	for node := 0; node < size; node++ {
		otherHave := geom.NewDualDimension(dimension.PlusOne(), node, size).Freq
		haveMin, haveMax := otherHave.ZOffset, otherHave.ZOffset+otherHave.Z-1

		if weNeedMin <= haveMax && haveMin <= weNeedMax {
			first := max(weNeedMin, haveMin)
			offset := (first - weNeedMin) * sliceSize
			copy(need.Data[offset:], recv[node])
		}
	}

	scale := float64(dimension.Cells()) * 8
	domain.ScaleReal(need, 1/scale)
	return need
}
