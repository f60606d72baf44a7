package graph

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		edges   []Edge
		wantErr error
		degrees []int
	}{
		{name: "Empty", n: 0, degrees: []int{}},
		{name: "Isolated", n: 1, degrees: []int{0}},
		{name: "SingleEdge", n: 2, edges: []Edge{{0, 1}}, degrees: []int{1, 1}},
		{name: "Path", n: 3, edges: []Edge{{0, 1}, {2, 1}}, degrees: []int{1, 2, 1}},
		{name: "Star", n: 5, edges: []Edge{{0, 1}, {0, 2}, {0, 3}, {0, 4}}, degrees: []int{4, 1, 1, 1, 1}},
		{name: "Negative", n: -1, wantErr: ErrNegativeNodeCount},
		{name: "SelfLoop", n: 2, edges: []Edge{{1, 1}}, wantErr: ErrSelfLoop},
		{name: "OutOfRange", n: 2, edges: []Edge{{0, 2}}, wantErr: ErrEdgeOutOfRange},
		{name: "NegativeEndpoint", n: 2, edges: []Edge{{-1, 0}}, wantErr: ErrEdgeOutOfRange},
		{name: "Duplicate", n: 2, edges: []Edge{{0, 1}, {0, 1}}, wantErr: ErrDuplicateEdge},
		{name: "DuplicateReversed", n: 2, edges: []Edge{{0, 1}, {1, 0}}, wantErr: ErrDuplicateEdge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.n, tt.edges)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if g.NodeCount() != tt.n {
				t.Errorf("NodeCount() = %d, want %d", g.NodeCount(), tt.n)
			}
			if g.EdgeCount() != len(tt.edges) {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), len(tt.edges))
			}
			if got := g.Degrees(); !slices.Equal(got, tt.degrees) {
				t.Errorf("Degrees() = %v, want %v", got, tt.degrees)
			}
		})
	}
}

func TestGraphIsImmutable(t *testing.T) {
	edges := []Edge{{0, 1}}
	g := MustNew(3, edges)
	edges[0] = Edge{1, 2}

	if got := g.Edges()[0]; got != (Edge{0, 1}) {
		t.Errorf("graph changed through the caller's slice: %v", got)
	}

	d := g.Degrees()
	d[0] = 99
	if g.Degree(0) != 1 {
		t.Error("Degrees() should return a copy")
	}
}

func TestDegreeSequence(t *testing.T) {
	g := MustNew(4, []Edge{{0, 1}, {1, 2}, {1, 3}})
	if got, want := g.DegreeSequence(), []int{3, 1, 1, 1}; !slices.Equal(got, want) {
		t.Errorf("DegreeSequence() = %v, want %v", got, want)
	}
	if g.MaxDegree() != 3 {
		t.Errorf("MaxDegree() = %d, want 3", g.MaxDegree())
	}
	if (Graph{}).MaxDegree() != 0 {
		t.Error("MaxDegree() of zero graph should be 0")
	}
}

func TestNeighbors(t *testing.T) {
	g := MustNew(4, []Edge{{2, 0}, {0, 3}, {1, 2}})
	if got := g.Neighbors(0); !slices.Equal(got, []int{2, 3}) {
		t.Errorf("Neighbors(0) = %v", got)
	}
	if got := g.Neighbors(1); !slices.Equal(got, []int{2}) {
		t.Errorf("Neighbors(1) = %v", got)
	}
	if g.Degree(10) != 0 {
		t.Error("Degree of unknown node should be 0")
	}
}

func TestSortedEdges(t *testing.T) {
	g := MustNew(4, []Edge{{3, 2}, {1, 0}, {2, 0}})
	want := []Edge{{0, 1}, {0, 2}, {2, 3}}
	if got := g.SortedEdges(); !slices.Equal(got, want) {
		t.Errorf("SortedEdges() = %v, want %v", got, want)
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew should panic on invalid input")
		}
	}()
	MustNew(1, []Edge{{0, 0}})
}

func TestJSONRoundTrip(t *testing.T) {
	g := MustNew(4, []Edge{{3, 2}, {1, 0}})

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	if !strings.Contains(string(data), `"nodes": 4`) {
		t.Errorf("missing node count in %s", data)
	}

	parsed, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}
	if parsed.NodeCount() != 4 || parsed.EdgeCount() != 2 {
		t.Errorf("parsed = %v", parsed)
	}
	if !slices.Equal(parsed.SortedEdges(), g.SortedEdges()) {
		t.Errorf("edges = %v, want %v", parsed.SortedEdges(), g.SortedEdges())
	}
}

func TestReadGraphRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Malformed", `{"nodes": `},
		{"SelfLoop", `{"nodes": 2, "edges": [[1, 1]]}`},
		{"OutOfRange", `{"nodes": 2, "edges": [[0, 5]]}`},
		{"Duplicate", `{"nodes": 2, "edges": [[0, 1], [1, 0]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadGraph(strings.NewReader(tt.input)); err == nil {
				t.Error("ReadGraph() should fail")
			}
		})
	}
}
