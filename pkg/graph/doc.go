// Package graph provides the simple undirected graph value exchanged by the
// lgi codec, its source adapters and the batch tooling.
//
// A [Graph] is a node count plus a set of unordered edges. Nodes are the
// integers 0..n-1 and carry no attributes; the only derived property the
// codec cares about is the vertex degree.
//
// # Construction
//
// [New] validates its input and rejects self loops, out-of-range endpoints and
// duplicate edges (in either orientation):
//
//	g, err := graph.New(3, []graph.Edge{{0, 1}, {1, 2}})
//	if err != nil {
//	    return err
//	}
//	g.Degrees() // [1 2 1]
//
// # Immutability
//
// A Graph is a value object. Accessors return copies, so a graph can be handed
// from one pipeline stage to the next without defensive cloning.
//
// # Serialization
//
// Graphs use a compact JSON form:
//
//	{"nodes": 3, "edges": [[0, 1], [1, 2]]}
//
// Edges are written normalized (u < v) and sorted for deterministic output.
// See [MarshalGraph], [UnmarshalGraph], [WriteGraph] and [ReadGraph].
package graph
