package lgi

import (
	"github.com/matzehuels/lgi/pkg/errors"
	"github.com/matzehuels/lgi/pkg/graph"
)

// Decoder converts LGI strings back to graphs. It holds no mutable state
// and is safe for concurrent use.
type Decoder struct {
	engine Engine
}

// NewDecoder returns a decoder backed by e, or [DefaultEngine] if e is nil.
func NewDecoder(e Engine) *Decoder {
	if e == nil {
		e = DefaultEngine
	}
	return &Decoder{engine: e}
}

// Decode parses s and checks that every A..F position carries the real
// degree of its atom. It never returns a partially valid graph.
//
// Failures: INVALID_INPUT for an empty or non-printable string, PARSE_ERROR
// for a character outside the alphabet and its structural syntax or when
// the engine rejects the structure, DEGREE_MISMATCH when a position
// disagrees with its bond count and ENGINE_FAILURE on an engine panic.
func (d *Decoder) Decode(s string) (g graph.Graph, err error) {
	defer func() {
		if r := recover(); r != nil {
			g, err = graph.Graph{}, errors.Recovered(r)
		}
	}()

	if err := errors.ValidateRecord(s); err != nil {
		return graph.Graph{}, err
	}

	if i := firstForeign(s); i >= 0 {
		return graph.Graph{}, errors.New(errors.ErrCodeParse,
			"%q: character %q at offset %d is not in the LGI alphabet", s, s[i], i)
	}

	native, expected := toNative(s)
	mol, err := d.engine.Parse(native)
	if err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeParse, err, "invalid LGI string %q", s)
	}
	if mol.NumAtoms() != len(expected) {
		return graph.Graph{}, errors.New(errors.ErrCodeParse,
			"%q has %d atom positions but parses to %d atoms", s, len(expected), mol.NumAtoms())
	}

	bonds := mol.Bonds()
	edges := make([]graph.Edge, len(bonds))
	for i, b := range bonds {
		edges[i] = graph.Edge{U: b.Begin, V: b.End}
	}
	g, err = graph.New(mol.NumAtoms(), edges)
	if err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeParse, err, "invalid LGI string %q", s)
	}

	for i, want := range expected {
		if want < 0 {
			continue
		}
		if got := g.Degree(i); got != want {
			return graph.Graph{}, errors.New(errors.ErrCodeDegreeMismatch,
				"atom %d is %q (degree %d) but has %d bonds", i, degreeChars[want], want, got)
		}
	}
	return g, nil
}

// Valid reports whether s decodes without error.
func (d *Decoder) Valid(s string) bool {
	_, err := d.Decode(s)
	return err == nil
}
