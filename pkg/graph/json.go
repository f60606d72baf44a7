package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// wire is the JSON representation of a Graph.
type wire struct {
	Nodes int      `json:"nodes"`
	Edges [][2]int `json:"edges"`
}

// MarshalJSON implements json.Marshaler.
func (g Graph) MarshalJSON() ([]byte, error) {
	w := wire{Nodes: g.n, Edges: make([][2]int, 0, len(g.edges))}
	for _, e := range g.SortedEdges() {
		w.Edges = append(w.Edges, [2]int{e.U, e.V})
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. The decoded graph is validated
// with the same rules as [New].
func (g *Graph) UnmarshalJSON(data []byte) error {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	edges := make([]Edge, len(w.Edges))
	for i, e := range w.Edges {
		edges[i] = Edge{U: e[0], V: e[1]}
	}
	parsed, err := New(w.Nodes, edges)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MarshalGraph converts a graph to JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph decodes JSON bytes into a validated graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	return ReadGraph(bytes.NewReader(data))
}

// WriteGraph writes a graph as indented JSON to w.
func WriteGraph(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadGraph decodes a JSON graph from r.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}
