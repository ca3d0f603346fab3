package specdist

import (
	"testing"

	"github.com/cwbudde/coulombo/internal/cluster"
	"github.com/cwbudde/coulombo/internal/domain"
	"github.com/cwbudde/coulombo/internal/geom"
)

func TestComputeGfreqDimensionFullOverlapSingleRank(t *testing.T) {
	dimension := geom.Dimension{X: 2, Y: 3, Z: 5}
	fFreq := geom.NewDualDimension(dimension, 0, 1).Freq

	got := ComputeGfreqDimension(fFreq)

	want := geom.DistributedDimension{
		Dimension: geom.Dimension{X: 3, Y: 6, Z: 4},
		ZOffset:   0,
		ZFull:     4,
	}
	if !got.Equal(want.Dimension) || got.ZOffset != want.ZOffset || got.ZFull != want.ZFull {
		t.Fatalf("ComputeGfreqDimension = %+v, want %+v", got, want)
	}
}

func TestComputeGfreqDimensionFoldsWhenRangeExceedsMax(t *testing.T) {
	// dimension.Y=4 split over 3 ranks gives rank 2 a z-offset past the
	// halfway point, forcing the swap-and-reflect branch.
	dimension := geom.Dimension{X: 1, Y: 4, Z: 1}
	fFreq := geom.NewDualDimension(dimension, 2, 3).Freq
	if fFreq.ZOffset != 3 || fFreq.Z != 1 || fFreq.ZFull != 4 {
		t.Fatalf("test setup: fFreq = %+v, want ZOffset=3 Z=1 ZFull=4", fFreq)
	}

	got := ComputeGfreqDimension(fFreq)

	if got.ZOffset != 1 || got.Z != 2 || got.ZFull != 2 {
		t.Fatalf("ComputeGfreqDimension = %+v, want ZOffset=1 Z=2 ZFull=2", got)
	}
}

func TestRedistributeSingleRankRecoversScaledHave(t *testing.T) {
	dimension := geom.Dimension{X: 2, Y: 3, Z: 5}
	have := domain.NewSingleDomain[float64](geom.NewDualDimension(dimension.PlusOne(), 0, 1).Freq)
	for i := range have.Data {
		have.Data[i] = float64(i + 1)
	}

	w := cluster.NewWorld(1, 1)
	var got domain.Domain[float64]
	err := w.Run(func(r *cluster.Rank) error {
		got = Redistribute(r, dimension, have.Domain)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	scale := float64(dimension.Cells()) * 8
	if len(got.Data) != len(have.Data) {
		t.Fatalf("need has %d cells, want %d (full overlap expected)", len(got.Data), len(have.Data))
	}
	for i, v := range got.Data {
		want := have.Data[i] / scale
		if v != want {
			t.Errorf("need[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestRedistributeMultiRankExchangesAcrossRanks(t *testing.T) {
	dimension := geom.Dimension{X: 1, Y: 4, Z: 1}
	const size = 3
	scale := float64(dimension.Cells()) * 8

	haves := make([]domain.SingleDomain[float64], size)
	for rank := 0; rank < size; rank++ {
		haveDim := geom.NewDualDimension(dimension.PlusOne(), rank, size).Freq
		have := domain.NewSingleDomain[float64](haveDim)
		sliceSize := haveDim.X * haveDim.Y
		for izLocal := 0; izLocal < haveDim.Z; izLocal++ {
			globalZ := haveDim.ZOffset + izLocal
			for j := 0; j < sliceSize; j++ {
				have.Data[izLocal*sliceSize+j] = float64(globalZ)
			}
		}
		haves[rank] = have
	}

	results := make([]domain.Domain[float64], size)
	w := cluster.NewWorld(size, 1)
	err := w.Run(func(r *cluster.Rank) error {
		results[r.ID] = Redistribute(r, dimension, haves[r.ID].Domain)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	wantRanges := [size][2]int{{0, 3}, {1, 4}, {1, 2}}
	for rank := 0; rank < size; rank++ {
		need := results[rank]
		sliceSize := need.Dim.X * need.Dim.Y
		lo, hi := wantRanges[rank][0], wantRanges[rank][1]
		if need.Dim.Z != hi-lo+1 {
			t.Fatalf("rank %d: need.Z = %d, want %d", rank, need.Dim.Z, hi-lo+1)
		}
		if need.Dim.ZOffset != lo {
			t.Fatalf("rank %d: need.ZOffset = %d, want %d", rank, need.Dim.ZOffset, lo)
		}
		for izLocal := 0; izLocal < need.Dim.Z; izLocal++ {
			globalZ := lo + izLocal
			want := float64(globalZ) / scale
			for j := 0; j < sliceSize; j++ {
				got := need.Data[izLocal*sliceSize+j]
				if got != want {
					t.Errorf("rank %d slice %d cell %d = %v, want %v", rank, izLocal, j, got, want)
				}
			}
		}
	}
}
