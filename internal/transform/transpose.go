package transform

import (
	"github.com/cwbudde/coulombo/internal/cluster"
	"github.com/cwbudde/coulombo/internal/domain"
	"github.com/cwbudde/coulombo/internal/geom"
)

// scatterRealToFreq redistributes src (z-partitioned, full in x and y)
// into dst (y-partitioned, full in x and the original z), exactly the
// global transpose FFTW_MPI_TRANSPOSED_OUT performs. Every rank derives
// every other rank's slab boundaries from the shared dimension rather
// than exchanging them, since the z/y split is a pure function of
// (dimension, rank, size).
func scatterRealToFreq[T any](comm *cluster.Comm, rankID, size int, dimension geom.Dimension, src, dst domain.Domain[T]) {
	X := src.Dim.X
	send := make([][]T, size)
	for d := 0; d < size; d++ {
		freqD := geom.NewDualDimension(dimension, d, size).Freq
		yOffset, yLen := freqD.ZOffset, freqD.Z
		buf := make([]T, src.Dim.Z*yLen*X)
		idx := 0
		for iz := 0; iz < src.Dim.Z; iz++ {
			for iy := yOffset; iy < yOffset+yLen; iy++ {
				for ix := 0; ix < X; ix++ {
					buf[idx] = src.At(ix, iy, iz)
					idx++
				}
			}
		}
		send[d] = buf
	}

	recv := cluster.AllToAllV(comm, rankID, send)
	for s := 0; s < size; s++ {
		senderReal := geom.NewDualDimension(dimension, s, size).Real
		zOffset, zLen := senderReal.ZOffset, senderReal.Z
		yLen := dst.Dim.Z
		buf := recv[s]
		idx := 0
		for iz := 0; iz < zLen; iz++ {
			for iyLocal := 0; iyLocal < yLen; iyLocal++ {
				for ix := 0; ix < X; ix++ {
					dst.Set(ix, zOffset+iz, iyLocal, buf[idx])
					idx++
				}
			}
		}
	}
}

// scatterFreqToReal is the inverse of scatterRealToFreq: it redistributes
// src (y-partitioned, full in x and the original z) back into dst
// (z-partitioned, full in x and y).
func scatterFreqToReal[T any](comm *cluster.Comm, rankID, size int, dimension geom.Dimension, src, dst domain.Domain[T]) {
	X := src.Dim.X
	send := make([][]T, size)
	for d := 0; d < size; d++ {
		realD := geom.NewDualDimension(dimension, d, size).Real
		zOffset, zLen := realD.ZOffset, realD.Z
		buf := make([]T, src.Dim.Z*zLen*X)
		idx := 0
		for iyLocal := 0; iyLocal < src.Dim.Z; iyLocal++ {
			for iz := zOffset; iz < zOffset+zLen; iz++ {
				for ix := 0; ix < X; ix++ {
					buf[idx] = src.At(ix, iz, iyLocal)
					idx++
				}
			}
		}
		send[d] = buf
	}

	recv := cluster.AllToAllV(comm, rankID, send)
	for s := 0; s < size; s++ {
		senderFreq := geom.NewDualDimension(dimension, s, size).Freq
		yOffset, yLen := senderFreq.ZOffset, senderFreq.Z
		zLen := dst.Dim.Z
		buf := recv[s]
		idx := 0
		for iyLocal := 0; iyLocal < yLen; iyLocal++ {
			for iz := 0; iz < zLen; iz++ {
				for ix := 0; ix < X; ix++ {
					dst.Set(ix, yOffset+iyLocal, iz, buf[idx])
					idx++
				}
			}
		}
	}
}
