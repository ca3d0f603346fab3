package ioformat

import (
	"bufio"
	"fmt"
	"os"
)

// ReadCoefficients reads a tight-binding coefficient file: after
// skipLines header lines, exactly orbitalCount*atomCount lines of
// "re im", ordered orbital-fastest, atom-slowest. The result is indexed
// [atom][orbital].
func ReadCoefficients(path string, orbitalCount, atomCount, skipLines int) ([][]complex128, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioformat: could not open coefficient file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for i := 0; i < skipLines; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("ioformat: %q is truncated in its header", path)
		}
	}

	out := make([][]complex128, atomCount)
	for a := range out {
		out[a] = make([]complex128, orbitalCount)
		for orbital := 0; orbital < orbitalCount; orbital++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("ioformat: %q is truncated: expected %d data lines", path, orbitalCount*atomCount)
			}
			var re, im float64
			if _, err := fmt.Sscan(scanner.Text(), &re, &im); err != nil {
				return nil, fmt.Errorf("ioformat: %q: invalid data line %q: %w", path, scanner.Text(), err)
			}
			out[a][orbital] = complex(re, im)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ioformat: reading %q: %w", path, err)
	}
	return out, nil
}
