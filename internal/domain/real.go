package domain

import "github.com/cwbudde/coulombo/internal/vecmath"

// ScaleReal multiplies every cell of a real-valued domain by scale, via
// internal/vecmath's ScaleInPlace (a plain loop; algo-vecmath is not
// involved).
func ScaleReal(d Domain[float64], scale float64) {
	vecmath.ScaleInPlace(d.Data, scale)
}

// MulReal multiplies d elementwise by src, routed through the adapted
// algo-vecmath dependency.
func MulReal(d, src Domain[float64]) {
	vecmath.MulInPlace(d.Data, src.Data)
}

// SumReal returns the sum of every cell of a real-valued domain.
func SumReal(d Domain[float64]) float64 {
	return vecmath.Sum(d.Data)
}
