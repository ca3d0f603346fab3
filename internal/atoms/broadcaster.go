package atoms

import (
	"fmt"

	"github.com/cwbudde/coulombo/internal/cluster"
	"github.com/cwbudde/coulombo/internal/geom"
)

// Broadcaster infers the shared grid from atom positions known only to
// the root rank, and distributes per-atom ownership so every rank ends
// up with only the atoms (and later, coefficient rows) its own z-slab
// owns. Grounded on original_source/src/Broadcaster.cpp's scatterv-by-
// z-slab pattern, generalized from the dimension-only broadcast it does
// to also carry per-atom placement.
type Broadcaster struct {
	rank *cluster.Rank

	Dimension geom.Dimension
	Origin    Position
	Step      Position

	// CellIndex holds, for each atom this rank owns (in the same order
	// every ScatterCoefficients call returns its rows), the linear
	// offset into this rank's local grid slab.
	CellIndex []int

	// TotalAtomCount is the number of atoms in the whole system, known
	// identically on every rank.
	TotalAtomCount int

	rootOwners []int // owner rank per atom, root-only
	owners     []int // owner rank per atom, identical on every rank

	ownedAtomIndices []int // memoized OwnedAtomIndices result
}

type gridBroadcast struct {
	Origin, Step   Position
	Dimension      geom.Dimension
	TotalAtomCount int
	Err            string
}

// NewBroadcaster infers the grid geometry from positions (read only on
// the root rank; pass nil on every other rank) and distributes each
// atom to the rank owning its z-cell.
func NewBroadcaster(rank *cluster.Rank, positions []Position) (*Broadcaster, error) {
	var msg gridBroadcast
	var placements []Placement
	var rootOwners []int

	if rank.IsRoot() {
		origin, step, dimension, err := InferGrid(positions)
		if err != nil {
			msg.Err = err.Error()
		} else {
			msg.Origin, msg.Step, msg.Dimension = origin, step, dimension
			msg.TotalAtomCount = len(positions)
			placements = MapToGrid(positions, origin, step)
			rootOwners = make([]int, len(placements))
			for i, p := range placements {
				rootOwners[i] = ownerRank(p.IZ, dimension, rank.Size)
			}
		}
	}

	msg = cluster.Broadcast(rank.Comm, rank.ID, 0, msg)
	if msg.Err != "" {
		return nil, fmt.Errorf("atoms: %s", msg.Err)
	}

	send := make([][]Placement, rank.Size)
	if rank.IsRoot() {
		for a, p := range placements {
			owner := rootOwners[a]
			send[owner] = append(send[owner], p)
		}
	}
	recv := cluster.AllToAllV(rank.Comm, rank.ID, send)
	localPlacements := recv[0]

	localDim := geom.NewDualDimension(msg.Dimension, rank.ID, rank.Size).Real
	cellIndex := CellIndices(localPlacements, localDim)

	owners := cluster.Broadcast(rank.Comm, rank.ID, 0, rootOwners)

	return &Broadcaster{
		rank:           rank,
		Dimension:      msg.Dimension,
		Origin:         msg.Origin,
		Step:           msg.Step,
		CellIndex:      cellIndex,
		TotalAtomCount: msg.TotalAtomCount,
		rootOwners:     rootOwners,
		owners:         owners,
	}, nil
}

// OwnedAtomIndices returns the global atom index of each atom this
// rank owns, in the same order as CellIndex and every
// ScatterCoefficients result.
func (b *Broadcaster) OwnedAtomIndices() []int {
	if b.ownedAtomIndices == nil {
		for a, owner := range b.owners {
			if owner == b.rank.ID {
				b.ownedAtomIndices = append(b.ownedAtomIndices, a)
			}
		}
	}
	return b.ownedAtomIndices
}

// ScatterCoefficients distributes a (atom × orbital) coefficient matrix
// — meaningful only on the root rank, ordered identically to the
// positions passed to NewBroadcaster; pass nil on every other rank —
// to the rank owning each atom. The returned rows are in the same
// per-rank order as CellIndex, so CellIndex[i] is the cell that row i
// of the result belongs in.
func (b *Broadcaster) ScatterCoefficients(global [][]complex128) [][]complex128 {
	send := make([][][]complex128, b.rank.Size)
	if b.rank.IsRoot() {
		for a, row := range global {
			owner := b.rootOwners[a]
			send[owner] = append(send[owner], row)
		}
	}
	recv := cluster.AllToAllV(b.rank.Comm, b.rank.ID, send)
	return recv[0]
}
