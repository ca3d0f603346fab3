package density

import (
	"math/cmplx"
	"testing"

	"github.com/cwbudde/coulombo/internal/domain"
	"github.com/cwbudde/coulombo/internal/geom"
)

func dim3(x, y, z int) geom.DistributedDimension {
	return geom.WholeDistributedDimension(geom.Dimension{X: x, Y: y, Z: z})
}

func TestWavefunctionsMapConjugateBranches(t *testing.T) {
	left := domain.NewSingleDomain[complex128](dim3(2, 1, 1))
	right := domain.NewSingleDomain[complex128](dim3(2, 1, 1))
	left.Data[0], left.Data[1] = complex(1, 2), complex(0, 1)
	right.Data[0], right.Data[1] = complex(3, -1), complex(2, 0)

	p := Wavefunctions{Left: left.Domain, Right: right.Domain}
	F := domain.NewSingleDomain[complex128](dim3(2, 1, 1))

	p.Map(F.Domain, true)
	for i := range F.Data {
		want := left.Data[i] * cmplx.Conj(right.Data[i])
		if F.Data[i] != want {
			t.Errorf("conjugate=true F[%d] = %v, want %v", i, F.Data[i], want)
		}
	}

	p.Map(F.Domain, false)
	for i := range F.Data {
		want := cmplx.Conj(left.Data[i]) * right.Data[i]
		if F.Data[i] != want {
			t.Errorf("conjugate=false F[%d] = %v, want %v", i, F.Data[i], want)
		}
	}
}

func TestSpinfunctionsMapSumsBothComponents(t *testing.T) {
	mk := func(v0, v1 complex128) domain.SingleDomain[complex128] {
		d := domain.NewSingleDomain[complex128](dim3(2, 1, 1))
		d.Data[0], d.Data[1] = v0, v1
		return d
	}
	leftU := mk(1, 0)
	leftD := mk(0, 1)
	rightU := mk(2, 0)
	rightD := mk(0, 3)

	p := Spinfunctions{LeftUp: leftU.Domain, LeftDown: leftD.Domain, RightUp: rightU.Domain, RightDown: rightD.Domain}
	F := domain.NewSingleDomain[complex128](dim3(2, 1, 1))

	p.Map(F.Domain, false)
	if F.Data[0] != 2 {
		t.Errorf("F[0] = %v, want 2 (only up component nonzero there)", F.Data[0])
	}
	if F.Data[1] != 3 {
		t.Errorf("F[1] = %v, want 3 (only down component nonzero there)", F.Data[1])
	}
}

func TestTightBindingSharesCellAcrossAtoms(t *testing.T) {
	left := [][]complex128{{1, 0}, {0, 1}}
	right := [][]complex128{{1, 0}, {1, 0}}
	p := TightBinding{Left: left, Right: right, CellIndex: []int{0, 0}}

	F := domain.NewSingleDomain[complex128](dim3(1, 1, 1))
	p.Map(F.Domain, false)

	// atom0: conj(1)*1 + conj(0)*0 = 1
	// atom1: conj(0)*1 + conj(1)*0 = 0
	want := complex128(1)
	if F.Data[0] != want {
		t.Errorf("F[0] = %v, want %v", F.Data[0], want)
	}
}

func TestTightBindingSkipsUnownedAtoms(t *testing.T) {
	left := [][]complex128{{1}, {2}}
	right := [][]complex128{{1}, {2}}
	p := TightBinding{Left: left, Right: right, CellIndex: []int{-1, 0}}

	F := domain.NewSingleDomain[complex128](dim3(1, 1, 1))
	p.Map(F.Domain, false)

	want := complex128(4) // only atom 1 contributes: conj(2)*2 = 4
	if F.Data[0] != want {
		t.Errorf("F[0] = %v, want %v (atom 0 not owned by this rank)", F.Data[0], want)
	}
}
