package transform

import (
	"gonum.org/v1/gonum/fourier"

	"github.com/cwbudde/coulombo/internal/cluster"
	"github.com/cwbudde/coulombo/internal/domain"
	"github.com/cwbudde/coulombo/internal/geom"
)

// RealEven3D is the forward-only distributed real-even (REDFT00 / DCT-I)
// transform used exactly once per job, to turn the doubled-grid
// interaction kernel G into its spectrum. Structured identically to
// Complex3D: axis x, axis y, global transpose, axis z.
type RealEven3D struct {
	dctX, dctY, dctZ *fourier.DCT
}

// NewRealEven3D builds the three per-axis DCT-I plans for a doubled grid
// whose local real-space slab has the given distributed dimension.
func NewRealEven3D(real geom.DistributedDimension) *RealEven3D {
	return &RealEven3D{
		dctX: fourier.NewDCT(real.X),
		dctY: fourier.NewDCT(real.Y),
		dctZ: fourier.NewDCT(real.ZFull),
	}
}

// Forward transforms real in place along x and y, transposes it into
// freq, then transforms freq in place along the original (doubled) z
// axis. The result is unnormalized: per gonum's DCT.Transform contract,
// a second forward application multiplies the data by
// 2*(x-1) * 2*(y-1) * 2*(zFull-1).
func (t *RealEven3D) Forward(rank *cluster.Rank, real, freq domain.Domain[float64]) {
	for iz := 0; iz < real.Dim.Z; iz++ {
		for iy := 0; iy < real.Dim.Y; iy++ {
			base := real.Index(0, iy, iz)
			pencil := real.Data[base : base+real.Dim.X]
			t.dctX.Transform(pencil, pencil)
		}
	}

	scratch := make([]float64, real.Dim.Y)
	for iz := 0; iz < real.Dim.Z; iz++ {
		for ix := 0; ix < real.Dim.X; ix++ {
			for iy := range scratch {
				scratch[iy] = real.At(ix, iy, iz)
			}
			t.dctY.Transform(scratch, scratch)
			for iy, v := range scratch {
				real.Set(ix, iy, iz, v)
			}
		}
	}

	dimension := geom.Dimension{X: real.Dim.X, Y: real.Dim.Y, Z: real.Dim.ZFull}
	scatterRealToFreq(rank.Comm, rank.ID, rank.Size, dimension, real, freq)

	scratchZ := make([]float64, freq.Dim.Y)
	for izLocal := 0; izLocal < freq.Dim.Z; izLocal++ {
		for ix := 0; ix < freq.Dim.X; ix++ {
			for iyFull := range scratchZ {
				scratchZ[iyFull] = freq.At(ix, iyFull, izLocal)
			}
			t.dctZ.Transform(scratchZ, scratchZ)
			for iyFull, v := range scratchZ {
				freq.Set(ix, iyFull, izLocal, v)
			}
		}
	}
}
