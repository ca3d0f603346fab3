// Package geom provides the value types describing the shape of the 3-D
// grids the convolution engine operates on: a raw Dimension, a
// smooth-number-padded PaddedDimension, a z-partitioned
// DistributedDimension, and a DualDimension bundling the real-space and
// (transposed) frequency-space views of the same distributed buffer.
package geom
