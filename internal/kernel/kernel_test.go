package kernel

import (
	"math"
	"testing"

	"github.com/cwbudde/coulombo/internal/domain"
	"github.com/cwbudde/coulombo/internal/geom"
)

func TestSimpleDielectricIsConstant(t *testing.T) {
	s := Simple{Value: 5}
	for _, r := range []float64{0.1, 1, 10, 100} {
		if got := s.Dielectric(r); got != 5 {
			t.Errorf("Simple.Dielectric(%v) = %v, want 5", r, got)
		}
	}
}

func TestNewThomasFermiRestaRejectsInvalidInputs(t *testing.T) {
	if _, err := NewThomasFermiResta(1, 5); err == nil {
		t.Error("expected error for dielectric0 <= 1")
	}
	if _, err := NewThomasFermiResta(10, 0); err == nil {
		t.Error("expected error for non-positive lattice constant")
	}
}

func TestThomasFermiRestaMatchesSimpleFarFromOrigin(t *testing.T) {
	tfr, err := NewThomasFermiResta(10, 5.43)
	if err != nil {
		t.Fatal(err)
	}
	if got := tfr.Dielectric(tfr.rTF + 1000); got != tfr.dielectric0 {
		t.Errorf("far dielectric = %v, want %v", got, tfr.dielectric0)
	}
	if got := tfr.Dielectric(0); got >= tfr.dielectric0 {
		t.Errorf("dielectric(0) = %v, should be below bulk value %v", got, tfr.dielectric0)
	}
}

func TestThomasFermiRestaIsContinuousAtScreeningRadius(t *testing.T) {
	tfr, err := NewThomasFermiResta(12, 3.2)
	if err != nil {
		t.Fatal(err)
	}
	inside := tfr.Dielectric(tfr.rTF - 1e-6)
	outside := tfr.dielectric0
	if math.Abs(inside-outside) > 1e-3 {
		t.Errorf("discontinuity at rTF: inside=%v outside=%v", inside, outside)
	}
}

func TestMapOverridesOnsiteAtOriginOnOwningRank(t *testing.T) {
	dim, err := geom.NewDimension(2, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	distDim := geom.WholeDistributedDimension(dim)
	single := domain.NewSingleDomain[float64](distDim)

	Map(Simple{Value: 1}, Step{X: 1, Y: 1, Z: 1}, -7.5, single.Domain)

	if got := single.At(0, 0, 0); got != -7.5 {
		t.Errorf("G(0,0,0) = %v, want onsite -7.5", got)
	}
	want := e2_4pe0 / math.Sqrt(1)
	if got := single.At(1, 0, 0); math.Abs(got-want) > 1e-9 {
		t.Errorf("G(1,0,0) = %v, want %v", got, want)
	}
	wantDiag := e2_4pe0 / math.Sqrt(3)
	if got := single.At(1, 1, 1); math.Abs(got-wantDiag) > 1e-9 {
		t.Errorf("G(1,1,1) = %v, want %v", got, wantDiag)
	}
}

func TestMapDoesNotTouchOriginWhenRankDoesNotOwnZZero(t *testing.T) {
	dim := geom.Dimension{X: 2, Y: 2, Z: 2}
	distDim := geom.DistributedDimension{Dimension: geom.Dimension{X: 2, Y: 2, Z: 1}, ZOffset: 1, ZFull: dim.Z}
	single := domain.NewSingleDomain[float64](distDim)

	Map(Simple{Value: 1}, Step{X: 1, Y: 1, Z: 1}, -7.5, single.Domain)

	want := e2_4pe0 / 1.0
	if got := single.At(0, 0, 0); math.Abs(got-want) > 1e-9 {
		t.Errorf("G(0,0,z=1) = %v, want %v (onsite override must not apply)", got, want)
	}
}

func TestMapRespectsAnisotropicStep(t *testing.T) {
	dim, err := geom.NewDimension(2, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	distDim := geom.WholeDistributedDimension(dim)
	single := domain.NewSingleDomain[float64](distDim)

	Map(Simple{Value: 1}, Step{X: 2, Y: 1, Z: 1}, -1, single.Domain)

	want := e2_4pe0 / 2.0
	if got := single.At(1, 0, 0); math.Abs(got-want) > 1e-9 {
		t.Errorf("G(1,0,0) with step.X=2 = %v, want %v", got, want)
	}
}
