// Package io reads and writes the files the translator works with.
//
// # Record files
//
// A record file holds one record per line. Only the first tab-separated
// field of a line is used, with surrounding whitespace removed, so tools that
// append columns (counts, names, scores) after a graph6 or SMILES string can
// be fed in directly:
//
//	Bw	triangle
//	A_	K2
//
// Empty lines are kept as empty records. They fail translation and are
// dropped like any other invalid record, so line numbers in failure reports
// match the input file.
//
// Use [ImportRecords] to read a file by path or [ReadRecords] to read from
// any io.Reader. [ExportLines] and [WriteLines] write one string per line.
//
// # Output paths
//
// [OutputPath] derives the sibling output file for an input file:
//
//	OutputPath("data/train.txt", ".lgi")  // data/train.lgi
//	OutputPath("data/train.lgi", ".valid.lgi") // data/train.valid.lgi
//
// # Graph files
//
// [ImportJSON] and [ExportJSON] read and write single graphs in the JSON
// format of [graph.Graph]:
//
//	{"nodes": 3, "edges": [[0, 1], [1, 2]]}
//
// [graph.Graph]: github.com/matzehuels/lgi/pkg/graph.Graph
package io
