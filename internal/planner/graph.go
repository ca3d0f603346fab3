// Package planner reduces a batch of requested integrals to an ordered
// sequence of prepare/calculate steps that maximises reuse of the
// expensive "prepare" half of the convolution engine. Grounded on
// original_source/src/Planner.hpp and Graph.hpp.
package planner

// edge is an undirected pair of vertex indices; (a,b) and (b,a) are the
// same edge, normalised with the smaller index first so the edge set
// dedupes correctly.
type edge struct{ a, b int }

func newEdge(u, v int) edge {
	if u > v {
		u, v = v, u
	}
	return edge{a: u, b: v}
}

// Graph is the density-sharing graph: one vertex per canonical
// DensityIndex, one edge per requested integral connecting its two
// endpoints (a self-loop if both endpoints coincide).
type Graph struct {
	vertexCount int
	edges       map[edge]struct{}
}

// NewGraph returns an empty graph over vertexCount vertices.
func NewGraph(vertexCount int) *Graph {
	return &Graph{vertexCount: vertexCount, edges: make(map[edge]struct{})}
}

// AddEdge records an (undirected, deduplicated) edge between start and
// end.
func (g *Graph) AddEdge(start, end int) {
	g.edges[newEdge(start, end)] = struct{}{}
}

// VertexCover computes an approximate minimum vertex cover: every
// self-loop's endpoint is forced in immediately, then remaining
// vertices are greedily added in (degree-ascending, index-ascending)
// order, substituting a degree-1 vertex's unique neighbour (covering
// the neighbour removes more edges) and otherwise taking the
// maximum-degree vertex. Deterministic given the graph's edge set.
func (g *Graph) VertexCover() map[int]bool {
	cover := make(map[int]bool)
	for e := range g.edges {
		if e.a == e.b {
			cover[e.a] = true
		}
	}

	neighbors := make([]map[int]struct{}, g.vertexCount)
	for v := range neighbors {
		neighbors[v] = make(map[int]struct{})
	}
	for e := range g.edges {
		if e.a != e.b && !cover[e.a] && !cover[e.b] {
			neighbors[e.a][e.b] = struct{}{}
			neighbors[e.b][e.a] = struct{}{}
		}
	}

	inQueue := make([]bool, g.vertexCount)
	anyQueued := false
	for v := 0; v < g.vertexCount; v++ {
		if len(neighbors[v]) > 0 {
			inQueue[v] = true
			anyQueued = true
		}
	}

	less := func(a, b int) bool {
		da, db := len(neighbors[a]), len(neighbors[b])
		if da != db {
			return da < db
		}
		return a < b
	}

	for anyQueued {
		min, max := -1, -1
		for v := 0; v < g.vertexCount; v++ {
			if !inQueue[v] {
				continue
			}
			if min == -1 || less(v, min) {
				min = v
			}
			if max == -1 || less(max, v) {
				max = v
			}
		}

		var chosen int
		if len(neighbors[min]) == 1 {
			for w := range neighbors[min] {
				chosen = w
			}
		} else {
			chosen = max
		}

		inQueue[chosen] = false
		cover[chosen] = true

		for w := range neighbors[chosen] {
			if inQueue[w] {
				inQueue[w] = false
				delete(neighbors[w], chosen)
				if len(neighbors[w]) > 0 {
					inQueue[w] = true
				}
			}
		}

		anyQueued = false
		for v := 0; v < g.vertexCount; v++ {
			if inQueue[v] {
				anyQueued = true
				break
			}
		}
	}

	return cover
}
