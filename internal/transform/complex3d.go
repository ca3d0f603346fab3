package transform

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/coulombo/internal/cluster"
	"github.com/cwbudde/coulombo/internal/domain"
	"github.com/cwbudde/coulombo/internal/geom"
)

// Complex3D is a distributed in-place 3-D complex FFT: forward applies
// x then y then a global transpose then z, mirroring
// FFTW_MPI_TRANSPOSED_OUT; inverse undoes the same steps in reverse,
// mirroring FFTW_MPI_TRANSPOSED_IN.
type Complex3D struct {
	planX, planY, planZ *algofft.Plan[complex128]
}

// NewComplex3D builds the three per-axis plans for a grid whose local
// real-space slab has the given distributed dimension.
func NewComplex3D(real geom.DistributedDimension) (*Complex3D, error) {
	planX, err := algofft.NewPlan64(real.X)
	if err != nil {
		return nil, fmt.Errorf("transform: x-axis plan: %w", err)
	}
	planY, err := algofft.NewPlan64(real.Y)
	if err != nil {
		return nil, fmt.Errorf("transform: y-axis plan: %w", err)
	}
	planZ, err := algofft.NewPlan64(real.ZFull)
	if err != nil {
		return nil, fmt.Errorf("transform: z-axis plan: %w", err)
	}
	return &Complex3D{planX: planX, planY: planY, planZ: planZ}, nil
}

// Forward transforms real in place along x and y, transposes it into
// freq (distributed over the original y instead of z), then transforms
// freq in place along the original z axis.
func (t *Complex3D) Forward(rank *cluster.Rank, real, freq domain.Domain[complex128]) error {
	for iz := 0; iz < real.Dim.Z; iz++ {
		for iy := 0; iy < real.Dim.Y; iy++ {
			base := real.Index(0, iy, iz)
			pencil := real.Data[base : base+real.Dim.X]
			if err := t.planX.Forward(pencil, pencil); err != nil {
				return fmt.Errorf("transform: forward x: %w", err)
			}
		}
	}

	scratch := make([]complex128, real.Dim.Y)
	for iz := 0; iz < real.Dim.Z; iz++ {
		for ix := 0; ix < real.Dim.X; ix++ {
			for iy := range scratch {
				scratch[iy] = real.At(ix, iy, iz)
			}
			if err := t.planY.Forward(scratch, scratch); err != nil {
				return fmt.Errorf("transform: forward y: %w", err)
			}
			for iy, v := range scratch {
				real.Set(ix, iy, iz, v)
			}
		}
	}

	dimension := geom.Dimension{X: real.Dim.X, Y: real.Dim.Y, Z: real.Dim.ZFull}
	scatterRealToFreq(rank.Comm, rank.ID, rank.Size, dimension, real, freq)

	scratchZ := make([]complex128, freq.Dim.Y)
	for izLocal := 0; izLocal < freq.Dim.Z; izLocal++ {
		for ix := 0; ix < freq.Dim.X; ix++ {
			for iyFull := range scratchZ {
				scratchZ[iyFull] = freq.At(ix, iyFull, izLocal)
			}
			if err := t.planZ.Forward(scratchZ, scratchZ); err != nil {
				return fmt.Errorf("transform: forward z: %w", err)
			}
			for iyFull, v := range scratchZ {
				freq.Set(ix, iyFull, izLocal, v)
			}
		}
	}
	return nil
}

// Inverse undoes Forward: it transforms freq along the original z axis,
// transposes it back into real, then transforms real along y and x.
// algo-fft's Inverse normalizes by 1/N itself, so the round trip
// Forward-then-Inverse reproduces the original data exactly (up to
// floating-point rounding).
func (t *Complex3D) Inverse(rank *cluster.Rank, real, freq domain.Domain[complex128]) error {
	scratchZ := make([]complex128, freq.Dim.Y)
	for izLocal := 0; izLocal < freq.Dim.Z; izLocal++ {
		for ix := 0; ix < freq.Dim.X; ix++ {
			for iyFull := range scratchZ {
				scratchZ[iyFull] = freq.At(ix, iyFull, izLocal)
			}
			if err := t.planZ.Inverse(scratchZ, scratchZ); err != nil {
				return fmt.Errorf("transform: inverse z: %w", err)
			}
			for iyFull, v := range scratchZ {
				freq.Set(ix, iyFull, izLocal, v)
			}
		}
	}

	dimension := geom.Dimension{X: real.Dim.X, Y: real.Dim.Y, Z: real.Dim.ZFull}
	scatterFreqToReal(rank.Comm, rank.ID, rank.Size, dimension, freq, real)

	scratch := make([]complex128, real.Dim.Y)
	for iz := 0; iz < real.Dim.Z; iz++ {
		for ix := 0; ix < real.Dim.X; ix++ {
			for iy := range scratch {
				scratch[iy] = real.At(ix, iy, iz)
			}
			if err := t.planY.Inverse(scratch, scratch); err != nil {
				return fmt.Errorf("transform: inverse y: %w", err)
			}
			for iy, v := range scratch {
				real.Set(ix, iy, iz, v)
			}
		}
	}

	for iz := 0; iz < real.Dim.Z; iz++ {
		for iy := 0; iy < real.Dim.Y; iy++ {
			base := real.Index(0, iy, iz)
			pencil := real.Data[base : base+real.Dim.X]
			if err := t.planX.Inverse(pencil, pencil); err != nil {
				return fmt.Errorf("transform: inverse x: %w", err)
			}
		}
	}
	return nil
}
