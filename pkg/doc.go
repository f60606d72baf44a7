// Package pkg provides the libraries behind the lgi command.
//
// # Overview
//
// lgi writes simple undirected graphs of maximum degree 6 as degree-encoded
// line notation strings: every vertex becomes a character naming its degree
// and the connectivity is written in SMILES syntax. The pkg directory is
// organized as follows:
//
//  1. [graph] - The graph value type and its JSON form
//  2. [lgi] - The codec (alphabet, encoder, decoder, input adapters)
//  3. [smiles] - The structure engine: SMILES parsing and canonical writing
//  4. [graph6] - graph6 record decoding and encoding
//  5. [batch] - Parallel, order-preserving record translation
//  6. [pipeline] - File translation with caching and failure reports
//  7. [cache], [io], [errors], [observability] - Infrastructure
//  8. [api], [render/nodelink] - HTTP surface and Graphviz drawing
//
// # Architecture
//
// The typical data flow of a translate run:
//
//	record file (graph6 or SMILES)
//	         ↓
//	    [io] package (one record per line)
//	         ↓
//	    [batch] package (chunks fanned out over workers)
//	         ↓
//	    [lgi] package (graph → degree elements → engine → LGI string)
//	         ↓
//	    ordered .lgi output + failure report
//
// # Quick Start
//
//	import "github.com/matzehuels/lgi/pkg/lgi"
//
//	g, _ := graph.New(2, []graph.Edge{{U: 0, V: 1}})
//	s, _ := lgi.Encode(g, true) // "AA"
//	back, _ := lgi.Decode(s)    // 2 nodes, 1 edge
package pkg
