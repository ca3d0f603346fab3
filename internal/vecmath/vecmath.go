// Package vecmath adapts the teacher repo's elementwise block-arithmetic
// dependency (github.com/cwbudde/algo-vecmath) from 1-D audio buffers to
// the real-valued grid slabs internal/domain operates on. ScaleInPlace
// and Sum have no public equivalent in algo-vecmath's observed API
// surface, so they are plain Go loops.
package vecmath

import (
	"fmt"

	algovecmath "github.com/cwbudde/algo-vecmath"
)

// MulInPlace multiplies dst elementwise by src: dst[i] *= src[i].
func MulInPlace(dst, src []float64) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("vecmath: length mismatch %d != %d", len(dst), len(src)))
	}
	algovecmath.MulBlockInPlace(dst, src)
}

// Mul writes the elementwise product of a and b into dst.
func Mul(dst, a, b []float64) {
	if len(a) != len(b) || len(a) != len(dst) {
		panic(fmt.Sprintf("vecmath: length mismatch %d/%d/%d", len(dst), len(a), len(b)))
	}
	algovecmath.MulBlock(dst, a, b)
}

// ScaleInPlace multiplies every element of dst by scale.
func ScaleInPlace(dst []float64, scale float64) {
	for i := range dst {
		dst[i] *= scale
	}
}

// Sum returns the sum of every element of x.
func Sum(x []float64) float64 {
	var total float64
	for _, v := range x {
		total += v
	}
	return total
}
