package planner

import (
	"fmt"
	"sort"

	"github.com/cwbudde/coulombo/internal/cluster"
)

// DensityIndex is a canonical bilinear-density reference: the pair
// (iL,iR) with iL >= iR, encoded as iL*(iL-1)/2 + (iR-1), plus a flag
// recording whether reaching canonical form required conjugating the
// density (i.e. the original request had iL < iR).
type DensityIndex struct {
	Index     int
	Conjugate bool
}

// Canonicalize folds a requested (iL,iR) pair — 1-based state
// indices — into its canonical DensityIndex, swapping and flagging
// conjugation when iL < iR.
func Canonicalize(iL, iR int) DensityIndex {
	conjugate := false
	if iL < iR {
		iL, iR = iR, iL
		conjugate = true
	}
	return DensityIndex{Index: iL*(iL-1)/2 + (iR - 1), Conjugate: conjugate}
}

// CanonicalCount returns the number of canonical density indices for
// inputCount single-particle states.
func CanonicalCount(inputCount int) int {
	return inputCount * (inputCount + 1) / 2
}

// PlanStep names one (prepare, calculate) unit of work: integral ID
// -1 is the end-of-plan sentinel broadcast by GetNextStep.
type PlanStep struct {
	ID          int
	Left, Right DensityIndex
}

// endOfPlan is the sentinel step broadcast once every real step has
// been distributed.
var endOfPlan = PlanStep{ID: -1}

// MasterPlanner accumulates integral requests, reduces them to an
// approximate minimum vertex cover of the density-sharing graph, and
// hands out an ordered PlanStep sequence that maximises reuse of the
// convolution engine's prepare() half.
type MasterPlanner struct {
	canonicalCount int
	steps          []PlanStep
	finalized      bool
	nextIndex      int
}

// NewMasterPlanner returns a planner over canonicalCount densities
// (see CanonicalCount).
func NewMasterPlanner(canonicalCount int) *MasterPlanner {
	return &MasterPlanner{canonicalCount: canonicalCount}
}

// AddIntegral records a request for integral I(i1,i2,i3,i4), canonicalising
// (i1,i4) and (i2,i3) into the step's left/right density indices. Must
// not be called after ComputePlan.
func (p *MasterPlanner) AddIntegral(i1, i2, i3, i4 int) error {
	if p.finalized {
		return fmt.Errorf("planner: plan is already computed")
	}
	p.steps = append(p.steps, PlanStep{
		ID:    len(p.steps),
		Left:  Canonicalize(i1, i4),
		Right: Canonicalize(i2, i3),
	})
	return nil
}

// ComputePlan builds the density-sharing graph, computes its
// approximate minimum vertex cover, reorients every step so its left
// endpoint lies in the cover (or either endpoint if they coincide),
// and sorts the steps to maximise consecutive-step reuse. Must be
// called exactly once, after all AddIntegral calls.
func (p *MasterPlanner) ComputePlan() error {
	if p.finalized {
		return fmt.Errorf("planner: plan is already computed")
	}

	graph := NewGraph(p.canonicalCount)
	for _, step := range p.steps {
		graph.AddEdge(step.Left.Index, step.Right.Index)
	}
	cover := graph.VertexCover()

	for i, step := range p.steps {
		if !cover[step.Left.Index] {
			p.steps[i].Left, p.steps[i].Right = step.Right, step.Left
		}
	}

	sort.SliceStable(p.steps, func(i, j int) bool {
		a, b := p.steps[i], p.steps[j]
		if a.Left.Index != b.Left.Index {
			return a.Left.Index < b.Left.Index
		}
		if a.Right.Index != b.Right.Index {
			return a.Right.Index < b.Right.Index
		}
		aSame := a.Left.Conjugate == a.Right.Conjugate
		bSame := b.Left.Conjugate == b.Right.Conjugate
		return aSame && !bSame
	})

	p.finalized = true
	p.nextIndex = 0
	return nil
}

// GetNextStep returns the next step in the finalized plan, or
// end-of-plan (ID -1) once every step has been returned. It must be
// called only on the root rank; use the package-level GetNextStep to
// additionally broadcast the step to every rank.
func (p *MasterPlanner) GetNextStep() (PlanStep, error) {
	if !p.finalized {
		return PlanStep{}, fmt.Errorf("planner: plan is not yet computed")
	}
	if p.nextIndex >= len(p.steps) {
		return endOfPlan, nil
	}
	step := p.steps[p.nextIndex]
	p.nextIndex++
	return step, nil
}

// GetNextStep distributes the next plan step to every rank: the root
// (rank 0) pulls it from master (nil on non-root ranks) and every rank
// receives the identical broadcast result. It reports whether the
// returned step is real (true) or the end-of-plan sentinel (false).
func GetNextStep(rank *cluster.Rank, master *MasterPlanner) (PlanStep, bool, error) {
	var step PlanStep
	if rank.IsRoot() {
		var err error
		step, err = master.GetNextStep()
		if err != nil {
			return PlanStep{}, false, err
		}
	}
	step = cluster.Broadcast(rank.Comm, rank.ID, 0, step)
	return step, step.ID >= 0, nil
}
