package domain

import (
	"fmt"

	"github.com/cwbudde/coulombo/internal/geom"
)

// Number is the set of element types a Domain may hold.
type Number interface {
	~complex128 | ~float64
}

// Domain is a non-owning, x-fastest (then y, then z) view over a
// distributed 3-D grid slab: Data[((iz*Y)+iy)*X+ix] is the cell at
// (ix,iy,iz).
type Domain[T Number] struct {
	Dim  geom.DistributedDimension
	Data []T
}

// NewDomainView wraps data as a Domain of the given local dimension.
// data must have at least dim.Cells() elements: exactly that many for
// an owned single-purpose buffer, or more when data is a DualDomain's
// shared buffer sized for the larger of its two aliased views. The
// returned Domain's Data is trimmed to exactly dim.Cells() elements, so
// Zero/AssignFrom/AddInPlace/MulInPlace only ever touch this view's own
// cells — while still sharing the same backing array (and so the same
// memory) as any other view built from the same data starting at
// offset 0, which is what lets DualDomain's Real and Freq alias one
// buffer for in-place transforms.
func NewDomainView[T Number](data []T, dim geom.DistributedDimension) Domain[T] {
	want := dim.Dimension.Cells()
	if uint64(len(data)) < want {
		panic(fmt.Sprintf("domain: data has %d elements, dimension wants at least %d", len(data), want))
	}
	return Domain[T]{Dim: dim, Data: data[:want]}
}

// Index returns the linear offset of cell (ix,iy,iz) into Data.
func (d Domain[T]) Index(ix, iy, iz int) int {
	return (iz*d.Dim.Y+iy)*d.Dim.X + ix
}

// At returns the value at cell (ix,iy,iz).
func (d Domain[T]) At(ix, iy, iz int) T {
	return d.Data[d.Index(ix, iy, iz)]
}

// Set stores v at cell (ix,iy,iz).
func (d Domain[T]) Set(ix, iy, iz int, v T) {
	d.Data[d.Index(ix, iy, iz)] = v
}

// Zero clears every cell in the local slab.
func (d Domain[T]) Zero() {
	var zero T
	for i := range d.Data {
		d.Data[i] = zero
	}
}

// AssignFrom copies src's local slab into d. Both must have the same
// length.
func (d Domain[T]) AssignFrom(src Domain[T]) {
	if len(d.Data) != len(src.Data) {
		panic(fmt.Sprintf("domain: assignment length mismatch %d != %d", len(d.Data), len(src.Data)))
	}
	copy(d.Data, src.Data)
}

// ScaleInPlace multiplies every cell by scale.
func (d Domain[T]) ScaleInPlace(scale T) {
	for i := range d.Data {
		d.Data[i] *= scale
	}
}

// AddInPlace adds src's local slab into d elementwise: d[i] += src[i].
func (d Domain[T]) AddInPlace(src Domain[T]) {
	if len(d.Data) != len(src.Data) {
		panic(fmt.Sprintf("domain: add length mismatch %d != %d", len(d.Data), len(src.Data)))
	}
	for i := range d.Data {
		d.Data[i] += src.Data[i]
	}
}

// MulInPlace multiplies d elementwise by src: d[i] *= src[i].
func (d Domain[T]) MulInPlace(src Domain[T]) {
	if len(d.Data) != len(src.Data) {
		panic(fmt.Sprintf("domain: mul length mismatch %d != %d", len(d.Data), len(src.Data)))
	}
	for i := range d.Data {
		d.Data[i] *= src.Data[i]
	}
}

// SingleDomain is an owned 3-D grid buffer of the given dimension.
type SingleDomain[T Number] struct {
	Domain[T]
}

// NewSingleDomain allocates a zeroed SingleDomain of the given local
// dimension.
func NewSingleDomain[T Number](dim geom.DistributedDimension) SingleDomain[T] {
	data := make([]T, dim.Dimension.Cells())
	return SingleDomain[T]{Domain: NewDomainView[T](data, dim)}
}

// DualDomain owns a single contiguous buffer and exposes two views into
// it: Real (the real-space slab) and Freq (the transposed
// frequency-space slab), for in-place 3-D transforms.
type DualDomain[T Number] struct {
	data []T
	Real Domain[T]
	Freq Domain[T]
}

// NewDualDomain allocates a zeroed buffer sized for dims.Cells and
// builds its Real and Freq views.
func NewDualDomain[T Number](dims geom.DualDimension) DualDomain[T] {
	data := make([]T, dims.Cells)
	return DualDomain[T]{
		data: data,
		Real: NewDomainView[T](data, dims.Real),
		Freq: NewDomainView[T](data, dims.Freq),
	}
}

// AssignFromReal copies src into the real-space view of d (the common
// "Ftemp = F" operation in the convolution engine's prepare loop).
func (d DualDomain[T]) AssignFromReal(src Domain[T]) {
	d.Real.AssignFrom(src)
}
