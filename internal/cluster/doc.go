// Package cluster simulates the MPI communicator the original
// implementation builds its distributed domain model on top of. No MPI
// binding exists anywhere in the Go ecosystem this module draws from, so
// a communicator of `size` ranks is modeled as goroutines rendezvousing
// on a shared sync.Cond-based barrier: every collective spec.md §5 names
// (Broadcast, Reduce, AllGather, AllToAllV, Barrier) is built on one
// generic rendezvous primitive. Swapping in a real wire transport later
// only touches this package.
package cluster
