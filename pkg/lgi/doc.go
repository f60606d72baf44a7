// Package lgi implements the LGI notation: a linear graph string in which
// every atom character encodes the degree of its vertex.
//
// # Alphabet
//
// Degrees 0 through 6 map to one character each:
//
//	degree  0   1   2   3   4   5   6
//	char    @   A   B   C   D   E   F
//	element B   F   O   N   C   P   S
//
// The element row is the valence-matched substitution used to drive the
// structure engine. Each element's default bonding capacity is at least the
// degree it stands for, so a single-bonded structure built from those
// elements is accepted by the engine without further constraints. The
// element row never leaves this package.
//
// # Encoding
//
// [Encoder.Encode] maps each vertex to its element, asks the engine to build
// and serialize a single-bonded structure, then replaces every element
// symbol with its degree character. Branch parentheses, ring-closure digits
// and component dots are structure syntax and pass through unchanged:
//
//	K2        -> AA
//	path P3   -> ABA
//	star K1,3 -> AC(A)A
//	one node  -> @
//
// # Decoding
//
// [Decoder.Decode] is the inverse. It records the degree of every A..F
// position, substitutes the elements back, parses the result and checks that
// each recorded degree matches the real bond count of the atom at that
// position. '@' positions contribute a node but are not checked.
//
// # Failures
//
// Every failure is an *errors.Error from
// github.com/matzehuels/lgi/pkg/errors carrying one of the codes
// DEGREE_OUT_OF_RANGE, PARSE_ERROR, DEGREE_MISMATCH or ENGINE_FAILURE (plus
// INVALID_INPUT, INVALID_GRAPH and INVALID_GRAPH6 from the adapters). Panics
// raised inside the engine are recovered and reported as ENGINE_FAILURE.
package lgi
