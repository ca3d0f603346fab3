package cluster

import "sync"

// Comm is the rendezvous point every rank in a World shares. All
// collectives are built on the single generic collective method below:
// every rank contributes a value, the last rank to arrive computes the
// combined result, and all ranks are released with that same result.
type Comm struct {
	size int

	mu            sync.Mutex
	cond          *sync.Cond
	seq           int
	arrived       int
	contributions []any
	result        any
}

func newComm(size int) *Comm {
	c := &Comm{size: size, contributions: make([]any, size)}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Size returns the number of ranks in the communicator.
func (c *Comm) Size() int { return c.size }

// collective blocks rankID's goroutine until every rank has contributed
// a value for the current round, then returns combine applied to all
// contributions (indexed by rank), identically on every rank.
func (c *Comm) collective(rankID int, contribution any, combine func(contributions []any) any) any {
	c.mu.Lock()
	defer c.mu.Unlock()

	mySeq := c.seq
	c.contributions[rankID] = contribution
	c.arrived++

	if c.arrived == c.size {
		c.result = combine(c.contributions)
		c.contributions = make([]any, c.size)
		c.arrived = 0
		c.seq++
		c.cond.Broadcast()
	} else {
		for c.seq == mySeq {
			c.cond.Wait()
		}
	}
	return c.result
}

// Broadcast returns root's value to every rank, rendezvousing all ranks
// at this call site.
func Broadcast[T any](c *Comm, rankID, root int, value T) T {
	result := c.collective(rankID, value, func(contributions []any) any {
		return contributions[root]
	})
	return result.(T)
}

// AllGather returns every rank's value, indexed by rank, identically on
// every rank.
func AllGather[T any](c *Comm, rankID int, value T) []T {
	result := c.collective(rankID, value, func(contributions []any) any {
		out := make([]T, len(contributions))
		for i, v := range contributions {
			out[i] = v.(T)
		}
		return out
	})
	return result.([]T)
}

// Reduce combines every rank's value with combine (assumed associative
// and commutative, e.g. addition) and delivers the result only to root;
// other ranks receive the zero value of T and ok=false.
func Reduce[T any](c *Comm, rankID, root int, value T, combine func(a, b T) T) (result T, ok bool) {
	out := c.collective(rankID, value, func(contributions []any) any {
		acc := contributions[0].(T)
		for _, v := range contributions[1:] {
			acc = combine(acc, v.(T))
		}
		return acc
	})
	if rankID == root {
		return out.(T), true
	}
	var zero T
	return zero, false
}

// AllToAllV exchanges variable-length slabs of any element type: send[j]
// is the slab this rank sends to rank j. It returns recv, where recv[j]
// is the slab received from rank j. This mirrors MPI_Alltoallv
// restricted to the slice-exchange shape the kernel spectrum
// redistributor (spec.md §4.2) and the 3-D transform's transpose
// (spec.md §3) both need.
func AllToAllV[T any](c *Comm, rankID int, send [][]T) [][]T {
	out := c.collective(rankID, send, func(contributions []any) any {
		return contributions
	})
	all := out.([]any)
	recv := make([][]T, len(all))
	for j, raw := range all {
		sendFromJ := raw.([][]T)
		if rankID < len(sendFromJ) {
			recv[j] = sendFromJ[rankID]
		}
	}
	return recv
}

// Barrier blocks until every rank has called Barrier for this round.
func Barrier(c *Comm, rankID int) {
	c.collective(rankID, struct{}{}, func(contributions []any) any {
		return struct{}{}
	})
}
