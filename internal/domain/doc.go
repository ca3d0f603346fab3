// Package domain implements the distributed 3-D grid buffers the
// convolution engine and density generators read and write: a
// non-owning Domain view, owning SingleDomain storage, and DualDomain
// storage exposing both a real-space and a frequency-space view of the
// same underlying buffer for in-place transforms.
package domain
