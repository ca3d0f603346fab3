// Package kernel implements the isolated-system interaction kernel G(r):
// a pure function of distance, sampled into the octant-only real domain
// the convolution engine's doubled-grid transform consumes. Grounded on
// original_source/src/Interaction.hpp/.cpp.
package kernel

import (
	"fmt"
	"math"

	"github.com/cwbudde/coulombo/internal/domain"
)

// e2_4pe0 is e²/4πε₀ in eV·Å.
const e2_4pe0 = 14.39963737103201

// Step holds the (possibly anisotropic) grid step lengths along each
// axis, in Å.
type Step struct {
	X, Y, Z float64
}

// Dielectric gives the (possibly distance-dependent) relative
// permittivity used to screen the bare Coulomb interaction at
// separation r.
type Dielectric interface {
	Dielectric(r float64) float64
}

// Simple is a uniform (unscreened beyond a constant ε) dielectric.
type Simple struct {
	Value float64
}

// Dielectric implements Dielectric.
func (s Simple) Dielectric(float64) float64 { return s.Value }

// ThomasFermiResta implements the Thomas-Fermi-Resta screened dielectric
// model: ε is uniform beyond a screening radius rTF and smoothly
// transitions to unscreened Coulomb (scaled) inside it.
type ThomasFermiResta struct {
	dielectric0     float64
	latticeConstant float64
	rTF, qTF        float64
}

// NewThomasFermiResta solves for the screening radius rTF by Newton's
// method on sinh(x) - ε·x = 0, exactly as the original implementation
// does. dielectric0 must be > 1 and latticeConstant must be > 0.
func NewThomasFermiResta(dielectric0, latticeConstant float64) (*ThomasFermiResta, error) {
	if !(dielectric0 > 1) {
		return nil, fmt.Errorf("kernel: dielectric constant must be >1 for Thomas-Fermi-Resta screening, got %v", dielectric0)
	}
	if !(latticeConstant > 0) {
		return nil, fmt.Errorf("kernel: lattice constant must be positive, got %v", latticeConstant)
	}
	const eps = 1.0e-12
	qTF := 2.0 / math.Sqrt(math.Pi) * math.Cbrt(96.0*math.Pi*math.Pi) / latticeConstant
	x := math.Sqrt(6.0 * (dielectric0 - 1.0))
	for {
		f := math.Sinh(x) - dielectric0*x
		df := math.Cosh(x) - dielectric0
		var dx float64
		if math.Abs(f) >= eps {
			dx = f / df
		}
		x -= dx
		if dx/qTF <= eps {
			break
		}
	}
	return &ThomasFermiResta{
		dielectric0:     dielectric0,
		latticeConstant: latticeConstant,
		rTF:             x / qTF,
		qTF:             qTF,
	}, nil
}

// Dielectric implements Dielectric.
func (t *ThomasFermiResta) Dielectric(r float64) float64 {
	if r < t.rTF {
		return t.dielectric0 * (t.qTF * t.rTF / (math.Sinh(t.qTF*(t.rTF-r)) + t.qTF*r))
	}
	return t.dielectric0
}

// Map samples the interaction G(r) = e²/(4πε₀·dielectric(r)·r) into the
// octant-only domain G (x,y,z all >= 0; the full kernel is recovered by
// the implicit reflection of the real-even transform). The origin cell
// is overridden with onsite, but only by the process that owns global
// z=0.
func Map(d Dielectric, step Step, onsite float64, G domain.Domain[float64]) {
	zStart := G.Dim.ZOffset
	zEnd := zStart + G.Dim.Z
	for iz := zStart; iz < zEnd; iz++ {
		z := float64(iz) * step.Z
		z2 := z * z
		for iy := 0; iy < G.Dim.Y; iy++ {
			y := float64(iy) * step.Y
			y2z2 := z2 + y*y
			for ix := 0; ix < G.Dim.X; ix++ {
				x := float64(ix) * step.X
				r2 := y2z2 + x*x
				r := math.Sqrt(r2)
				G.Set(ix, iy, iz-zStart, e2_4pe0/(d.Dielectric(r)*r))
			}
		}
	}
	if zStart == 0 && zEnd > 0 {
		G.Set(0, 0, 0, onsite)
	}
}
