package graph

import (
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

var (
	// ErrNegativeNodeCount is returned by [New] when n < 0.
	ErrNegativeNodeCount = errors.New("node count must not be negative")

	// ErrSelfLoop is returned by [New] when an edge joins a node to itself.
	ErrSelfLoop = errors.New("self loop")

	// ErrEdgeOutOfRange is returned by [New] when an edge endpoint is not in 0..n-1.
	ErrEdgeOutOfRange = errors.New("edge endpoint out of range")

	// ErrDuplicateEdge is returned by [New] when the same unordered pair
	// appears twice.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Edge is an unordered pair of node indices.
type Edge struct {
	U, V int
}

// Normalized returns the edge with U <= V.
func (e Edge) Normalized() Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}
	return e
}

// Graph is an immutable simple undirected graph.
type Graph struct {
	n       int
	edges   []Edge
	degrees []int
}

// New builds a graph with n nodes and the given edges. The edge slice is
// copied; later changes by the caller do not affect the graph.
func New(n int, edges []Edge) (Graph, error) {
	if n < 0 {
		return Graph{}, ErrNegativeNodeCount
	}

	seen := mapset.NewThreadUnsafeSetWithSize[Edge](len(edges))
	degrees := make([]int, n)
	out := make([]Edge, 0, len(edges))

	for _, e := range edges {
		if e.U == e.V {
			return Graph{}, fmt.Errorf("%w: (%d,%d)", ErrSelfLoop, e.U, e.V)
		}
		if e.U < 0 || e.V < 0 || e.U >= n || e.V >= n {
			return Graph{}, fmt.Errorf("%w: (%d,%d) with %d nodes", ErrEdgeOutOfRange, e.U, e.V, n)
		}
		if !seen.Add(e.Normalized()) {
			return Graph{}, fmt.Errorf("%w: (%d,%d)", ErrDuplicateEdge, e.U, e.V)
		}
		degrees[e.U]++
		degrees[e.V]++
		out = append(out, e)
	}

	return Graph{n: n, edges: out, degrees: degrees}, nil
}

// MustNew is like New but panics on invalid input. It is meant for tests and
// package-level fixtures.
func MustNew(n int, edges []Edge) Graph {
	g, err := New(n, edges)
	if err != nil {
		panic(err)
	}
	return g
}

// NodeCount returns the number of nodes.
func (g Graph) NodeCount() int { return g.n }

// EdgeCount returns the number of edges.
func (g Graph) EdgeCount() int { return len(g.edges) }

// Edges returns a copy of the edge list in insertion order.
func (g Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Degree returns the number of edges incident to v, or 0 if v is not a node.
func (g Graph) Degree(v int) int {
	if v < 0 || v >= g.n {
		return 0
	}
	return g.degrees[v]
}

// Degrees returns the degree of every node indexed by node.
func (g Graph) Degrees() []int { return slices.Clone(g.degrees) }

// DegreeSequence returns the degree multiset sorted in descending order.
// Two graphs that are relabelings of each other have equal sequences.
func (g Graph) DegreeSequence() []int {
	seq := slices.Clone(g.degrees)
	slices.SortFunc(seq, func(a, b int) int { return b - a })
	return seq
}

// MaxDegree returns the largest vertex degree, or 0 for an empty graph.
func (g Graph) MaxDegree() int {
	if len(g.degrees) == 0 {
		return 0
	}
	return slices.Max(g.degrees)
}

// Neighbors returns the nodes adjacent to v in ascending order.
func (g Graph) Neighbors(v int) []int {
	var out []int
	for _, e := range g.edges {
		switch v {
		case e.U:
			out = append(out, e.V)
		case e.V:
			out = append(out, e.U)
		}
	}
	slices.Sort(out)
	return out
}

// SortedEdges returns the normalized edges sorted lexicographically.
func (g Graph) SortedEdges() []Edge {
	out := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = e.Normalized()
	}
	slices.SortFunc(out, func(a, b Edge) int {
		if a.U != b.U {
			return a.U - b.U
		}
		return a.V - b.V
	})
	return out
}

// String returns a short human-readable summary.
func (g Graph) String() string {
	return fmt.Sprintf("graph(%d nodes, %d edges)", g.n, len(g.edges))
}
