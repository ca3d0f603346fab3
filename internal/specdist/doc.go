// Package specdist redistributes the interaction kernel's spectrum
// (computed once, densely, on the doubled grid) into the sparse,
// folded view each rank's convolution actually needs. Grounded on
// original_source/src/CoulombCalculator.cpp's initialize().
package specdist
