package ioformat

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/coulombo/internal/domain"
	"github.com/cwbudde/coulombo/internal/geom"
)

// ReadWavefunctionCube reads a legacy wavefunction cube: a dimension.X *
// dimension.Y * dimension.Z array of little-endian float64 pairs (re,
// im), x-fastest. When real is true the file instead holds one
// little-endian float64 per cell, which is widened to a zero-imaginary
// complex value. Grounded on spec.md §6 "Wavefunction cube (legacy)"
// and original_source/src/FunctionCollection.cpp's loadFunctionFromFile
// binary-cube branch.
func ReadWavefunctionCube(path string, dimension geom.Dimension, real bool) (domain.Domain[complex128], error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Domain[complex128]{}, fmt.Errorf("ioformat: could not open cube file: %w", err)
	}
	defer f.Close()

	cells := dimension.Cells()
	data := make([]complex128, cells)

	if real {
		buf := make([]byte, 8)
		for i := uint64(0); i < cells; i++ {
			if _, err := io.ReadFull(f, buf); err != nil {
				return domain.Domain[complex128]{}, fmt.Errorf("ioformat: %q: truncated real cube at cell %d: %w", path, i, err)
			}
			data[i] = complex(asFloat64(buf), 0)
		}
	} else {
		buf := make([]byte, 16)
		for i := uint64(0); i < cells; i++ {
			if _, err := io.ReadFull(f, buf); err != nil {
				return domain.Domain[complex128]{}, fmt.Errorf("ioformat: %q: truncated complex cube at cell %d: %w", path, i, err)
			}
			data[i] = complex(asFloat64(buf[0:8]), asFloat64(buf[8:16]))
		}
	}

	dist := geom.WholeDistributedDimension(dimension)
	return domain.Domain[complex128]{Dim: dist, Data: data}, nil
}

func asFloat64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
