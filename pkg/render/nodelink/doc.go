// Package nodelink draws decoded LGI graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to Graphviz DOT, then render to SVG:
//
//	g, _ := lgi.Decode("AC(A)A")
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Labels
//
// Each node is labelled with the alphabet character of its degree, so the
// drawing of a decoded string shows the same letters as the string itself.
// With [Options.Detailed] the node index is added below the character.
// Nodes whose degree has no character (above 6) are labelled "?".
//
// # DOT Format
//
// [ToDOT] produces an undirected graph with circular nodes. Isolated nodes
// are drawn dashed. The output can be rendered with [RenderSVG] or saved and
// processed with external Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
