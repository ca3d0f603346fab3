package convengine

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/coulombo/internal/cluster"
	"github.com/cwbudde/coulombo/internal/domain"
	"github.com/cwbudde/coulombo/internal/geom"
	"github.com/cwbudde/coulombo/internal/kernel"
	"github.com/cwbudde/coulombo/internal/specdist"
	"github.com/cwbudde/coulombo/internal/transform"
)

// Engine computes Coulomb/exchange matrix elements
//
//	I = ∫∫ A(rₐ) G(|rₐ-rₑ|) E(rₑ) drₐ³ drₑ³
//
// between two quasi-densities on a shared 3-D grid, via an isolated
// (non-periodic) convolution built from the 8-shift trick: the kernel
// is sampled at the density grid's step on one octant of a grid twice
// as large, so its spectrum is sampled twice as finely in frequency;
// each of the eight half-shifted frequency sub-lattices of that
// spectrum is applied to a periodic transform of the density, and the
// eight results are summed.
type Engine struct {
	rank      *cluster.Rank
	dimension geom.Dimension

	Input domain.Domain[complex128] // the quasi-density currently being prepared/contracted

	ftemp domain.DualDomain[complex128]
	v     domain.SingleDomain[complex128]
	gfreq domain.Domain[float64]

	xform *transform.Complex3D

	phaseX, phaseY, phaseZ []complex128
}

// NewEngine builds an Engine for a wavefunction grid of the given
// dimension, distributed across rank's world.
func NewEngine(rank *cluster.Rank, dimension geom.Dimension) (*Engine, error) {
	dims := geom.NewDualDimension(dimension, rank.ID, rank.Size)

	ftemp := domain.NewDualDomain[complex128](dims)
	f := domain.NewSingleDomain[complex128](dims.Real)
	v := domain.NewSingleDomain[complex128](dims.Real)

	xform, err := transform.NewComplex3D(dims.Real)
	if err != nil {
		return nil, fmt.Errorf("convengine: %w", err)
	}

	wx := math.Pi / float64(dims.Real.X)
	wy := math.Pi / float64(dims.Real.Y)
	wz := math.Pi / float64(dims.Real.ZFull)

	phaseX := make([]complex128, dims.Real.X)
	for ix := range phaseX {
		phaseX[ix] = cmplx.Rect(1, wx*float64(ix))
	}
	phaseY := make([]complex128, dims.Real.Y)
	for iy := range phaseY {
		phaseY[iy] = cmplx.Rect(1, wy*float64(iy))
	}
	phaseZ := make([]complex128, dims.Real.Z)
	for iz := range phaseZ {
		phaseZ[iz] = cmplx.Rect(1, wz*float64(iz+dims.Real.ZOffset))
	}

	return &Engine{
		rank:      rank,
		dimension: dimension,
		Input:     f.Domain,
		ftemp:     ftemp,
		v:         v,
		xform:     xform,
		phaseX:    phaseX,
		phaseY:    phaseY,
		phaseZ:    phaseZ,
	}, nil
}

// Initialize samples the interaction kernel on the doubled grid,
// transforms it, and redistributes its spectrum into the slab this
// rank's convolution needs. Must be called once before the first
// Prepare.
func (e *Engine) Initialize(d kernel.Dielectric, step kernel.Step, onsite float64) error {
	gDims := geom.NewDualDimension(e.dimension.PlusOne(), e.rank.ID, e.rank.Size)
	g := domain.NewDualDomain[float64](gDims)

	kernel.Map(d, step, onsite, g.Real)

	redft := transform.NewRealEven3D(gDims.Real)
	redft.Forward(e.rank, g.Real, g.Freq)

	e.gfreq = specdist.Redistribute(e.rank, e.dimension, g.Freq)
	return nil
}

// Prepare convolves the quasi-density currently in Input against the
// interaction kernel, accumulating the isolated-boundary result into an
// internal potential buffer via the 8-shift trick. Initialize must have
// run first.
func (e *Engine) Prepare() error {
	e.v.Zero()

	real := e.ftemp.Real
	freq := e.ftemp.Freq

	for round := 0; round < 8; round++ {
		kx := round&1 != 0
		ky := round&2 != 0
		kz := round&4 != 0

		real.AssignFrom(e.Input)
		e.applyPhase(real, kx, ky, kz, true)

		if err := e.xform.Forward(e.rank, real, freq); err != nil {
			return fmt.Errorf("convengine: prepare forward transform: %w", err)
		}

		e.multiplyByKernel(freq, kx, ky, kz)

		if err := e.xform.Inverse(e.rank, real, freq); err != nil {
			return fmt.Errorf("convengine: prepare inverse transform: %w", err)
		}

		e.applyPhase(real, kx, ky, kz, false)
		e.v.AddInPlace(real)
	}
	return nil
}

// applyPhase multiplies real in place by the quarter-shift phase
// factors selected by (kx,ky,kz), conjugated when conjugate is true.
func (e *Engine) applyPhase(real domain.Domain[complex128], kx, ky, kz, conjugate bool) {
	pick := func(table []complex128, i int, active bool) complex128 {
		if !active {
			return 1
		}
		if conjugate {
			return cmplx.Conj(table[i])
		}
		return table[i]
	}
	e.rank.Parallel(real.Dim.Z, func(iz int) {
		pfZ := pick(e.phaseZ, iz, kz)
		for iy := 0; iy < real.Dim.Y; iy++ {
			pfYZ := pfZ * pick(e.phaseY, iy, ky)
			for ix := 0; ix < real.Dim.X; ix++ {
				pf := pfYZ * pick(e.phaseX, ix, kx)
				real.Set(ix, iy, iz, real.At(ix, iy, iz)*pf)
			}
		}
	})
}

// multiplyByKernel multiplies freq in place by the doubled-grid kernel
// spectrum Gfreq, using the min(idx, 2N-idx) fold every aliased
// frequency needs and the quarter-shift offset (kx,ky,kz) select.
// ky and kz are swapped relative to (x,y,z) here because the 3-D
// transform transposes y and z.
func (e *Engine) multiplyByKernel(freq domain.Domain[complex128], kx, ky, kz bool) {
	bit := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}
	e.rank.Parallel(freq.Dim.Z, func(iz int) {
		izG := 2*(iz+freq.Dim.ZOffset) + bit(ky)
		for iy := 0; iy < freq.Dim.Y; iy++ {
			iyG := 2*iy + bit(kz)
			for ix := 0; ix < freq.Dim.X; ix++ {
				ixG := 2*ix + bit(kx)

				gx := min(ixG, 2*freq.Dim.X-ixG)
				gy := min(iyG, 2*freq.Dim.Y-iyG)
				gz := min(izG, 2*freq.Dim.ZFull-izG) - e.gfreq.Dim.ZOffset

				g := e.gfreq.At(gx, gy, gz)
				freq.Set(ix, iy, iz, freq.At(ix, iy, iz)*complex(g, 0))
			}
		}
	})
}

// Calculate returns the Coulomb/exchange matrix element between the
// quasi-density most recently passed to Prepare and the one currently
// in Input, reduced (summed) across every rank. Only the root rank's
// return value is meaningful; ok reports whether this rank is root.
func (e *Engine) Calculate() (result complex128, ok bool) {
	var part complex128
	for i := range e.v.Data {
		part += e.v.Data[i] * e.Input.Data[i]
	}
	return cluster.Reduce(e.rank.Comm, e.rank.ID, 0, part, func(a, b complex128) complex128 { return a + b })
}

// Potential returns this rank's slab of the on-site potential computed
// by the most recent Prepare call: V(r) = ∫ G(|r-r'|) A(r') dr'³,
// without contracting it against a second quasi-density. Used by the
// potentials CLI personality, which reports per-atom on-site energies
// instead of full matrix elements.
func (e *Engine) Potential() domain.Domain[complex128] {
	return e.v.Domain
}
