// Package ioformat reads the plain-text and binary input files the CLI
// layer consumes: atom-position files, tight-binding coefficient files,
// and legacy wavefunction cubes. Grounded on spec.md §6 and
// original_source/src/FunctionCollection.cpp's loadAtomsPositions /
// loadFunctionFromFile.
package ioformat

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/coulombo/internal/atoms"
)

// ReadAtomPositions reads a whitespace-separated "x y z" per line atom
// position file, stopping at EOF or the first line that doesn't parse
// as three floats.
func ReadAtomPositions(path string) ([]atoms.Position, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioformat: could not open atoms file: %w", err)
	}
	defer f.Close()

	var positions []atoms.Position
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var x, y, z float64
		if _, err := fmt.Sscan(scanner.Text(), &x, &y, &z); err != nil {
			break
		}
		positions = append(positions, atoms.Position{X: x, Y: y, Z: z})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ioformat: reading atoms file: %w", err)
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("ioformat: atoms file %q contains no parseable positions", path)
	}
	return positions, nil
}
