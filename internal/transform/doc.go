// Package transform implements the two 3-D transforms the convolution
// engine needs, both built the way the original FFTW-MPI plans were:
// a sequence of 1-D transforms along each axis with an explicit global
// transpose in the middle, rather than a single black-box N-D call.
//
// Complex3D is the "transposed-out"/"transposed-in" forward/inverse
// complex FFT used on the wavefunction-density grid F. RealEven3D is the
// forward-only real-even (REDFT00, a.k.a. DCT-I) transform used once,
// on the doubled grid, to compute the interaction kernel's spectrum G.
//
// Both axis transforms are grounded on the teacher's dsp/conv plan-reuse
// pattern (one *algofft.Plan[complex128] built once, reused per pencil);
// the real-even axis uses gonum.org/v1/gonum/fourier.DCT, the only
// REDFT00-equivalent anywhere in the retrieval pack. The transpose
// itself has no library analogue (see internal/cluster) and is built on
// cluster.AllToAllV.
package transform
