// Package graph6 reads and writes the graph6 format for simple undirected
// graphs. Decoding and encoding are delegated to gonum's graph6 package; this
// package only converts to and from [graph.Graph].
package graph6

import (
	"strings"

	"gonum.org/v1/gonum/graph/encoding/graph6"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/lgi/pkg/errors"
	"github.com/matzehuels/lgi/pkg/graph"
)

// Header is the optional prefix some tools write before each record.
const Header = ">>graph6<<"

// Decode parses one graph6 record. Surrounding whitespace and the optional
// [Header] are ignored. Malformed records fail with INVALID_GRAPH6.
func Decode(s string) (g graph.Graph, err error) {
	defer func() {
		if r := recover(); r != nil {
			g, err = graph.Graph{}, errors.New(errors.ErrCodeInvalidGraph6, "malformed graph6 record: %v", r)
		}
	}()

	rec := graph6.Graph(strings.TrimPrefix(strings.TrimSpace(s), Header))
	if rec == "" || !printable(string(rec)) || !graph6.IsValid(rec) {
		return graph.Graph{}, errors.New(errors.ErrCodeInvalidGraph6, "invalid graph6 record %q", s)
	}

	n := rec.Nodes().Len()
	var edges []graph.Edge
	for u := range n {
		to := rec.From(int64(u))
		for to.Next() {
			if v := int(to.Node().ID()); v > u {
				edges = append(edges, graph.Edge{U: u, V: v})
			}
		}
	}

	g, err = graph.New(n, edges)
	if err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeInvalidGraph6, err, "invalid graph6 record %q", s)
	}
	return g, nil
}

// Encode returns the graph6 record for g, without header.
func Encode(g graph.Graph) string {
	ug := simple.NewUndirectedGraph()
	for v := range g.NodeCount() {
		ug.AddNode(simple.Node(v))
	}
	for _, e := range g.Edges() {
		ug.SetEdge(ug.NewEdge(simple.Node(e.U), simple.Node(e.V)))
	}
	return string(graph6.Encode(ug))
}

// printable reports whether every byte of s is in the graph6 range 63..126.
func printable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 63 || s[i] > 126 {
			return false
		}
	}
	return true
}
