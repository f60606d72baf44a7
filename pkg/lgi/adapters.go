package lgi

import (
	"github.com/matzehuels/lgi/pkg/errors"
	"github.com/matzehuels/lgi/pkg/graph"
	"github.com/matzehuels/lgi/pkg/graph6"
)

// Source names the notation of batch input records.
type Source string

const (
	SourceGraph6 Source = "graph6"
	SourceSMILES Source = "smiles"
	SourceLGI    Source = "lgi"
)

// Sources lists the accepted record sources.
var Sources = []Source{SourceGraph6, SourceSMILES, SourceLGI}

// ParseSource validates a source name.
func ParseSource(s string) (Source, error) {
	for _, src := range Sources {
		if string(src) == s {
			return src, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidSource, "unknown source %q (want graph6, smiles or lgi)", s)
}

// TranslateFunc translates one record.
type TranslateFunc func(input string) (string, error)

// FromStructureString encodes the bond graph of a SMILES string. Bond
// orders, charges and hydrogens are ignored: the degree of an atom is the
// number of bonds the engine reports for it.
func (e *Encoder) FromStructureString(s string, canonical bool) (string, error) {
	if err := errors.ValidateRecord(s); err != nil {
		return "", err
	}
	g, err := e.StructureGraph(s)
	if err != nil {
		return "", err
	}
	return e.Encode(g, canonical)
}

// StructureGraph returns the bond graph of a SMILES string. Atoms become
// nodes in string order and every bond becomes an edge.
func (e *Encoder) StructureGraph(s string) (g graph.Graph, err error) {
	defer func() {
		if r := recover(); r != nil {
			g, err = graph.Graph{}, errors.Recovered(r)
		}
	}()

	mol, err := e.engine.Parse(s)
	if err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeParse, err, "invalid structure string %q", s)
	}
	bonds := mol.Bonds()
	edges := make([]graph.Edge, len(bonds))
	for i, b := range bonds {
		edges[i] = graph.Edge{U: b.Begin, V: b.End}
	}
	g, err = graph.New(mol.NumAtoms(), edges)
	if err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeParse, err, "invalid structure string %q", s)
	}
	return g, nil
}

// FromGraph6 encodes a graph6 record.
func (e *Encoder) FromGraph6(s string, canonical bool) (string, error) {
	g, err := graph6.Decode(s)
	if err != nil {
		return "", err
	}
	return e.Encode(g, canonical)
}

// TranslatorFor returns the record translator for src. Graph6 and SMILES
// records are encoded to LGI. LGI records are decoded and, if valid, passed
// through unchanged.
func TranslatorFor(src Source, canonical bool, opts ...Option) (TranslateFunc, error) {
	enc := NewEncoder(opts...)
	switch src {
	case SourceGraph6:
		return func(s string) (string, error) { return enc.FromGraph6(s, canonical) }, nil
	case SourceSMILES:
		return func(s string) (string, error) { return enc.FromStructureString(s, canonical) }, nil
	case SourceLGI:
		dec := NewDecoder(enc.engine)
		return func(s string) (string, error) {
			if _, err := dec.Decode(s); err != nil {
				return "", err
			}
			return s, nil
		}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidSource, "unknown source %q", src)
	}
}

var (
	defaultEncoder = NewEncoder()
	defaultDecoder = NewDecoder(nil)
)

// Encode encodes g with the default encoder.
func Encode(g graph.Graph, canonical bool) (string, error) {
	return defaultEncoder.Encode(g, canonical)
}

// Decode decodes s with the default decoder.
func Decode(s string) (graph.Graph, error) {
	return defaultDecoder.Decode(s)
}

// Valid reports whether s is a well-formed LGI string.
func Valid(s string) bool {
	return defaultDecoder.Valid(s)
}

// FromStructureString encodes a SMILES string with the default encoder.
func FromStructureString(s string, canonical bool) (string, error) {
	return defaultEncoder.FromStructureString(s, canonical)
}

// StructureGraph returns the bond graph of a SMILES string using the default
// engine.
func StructureGraph(s string) (graph.Graph, error) {
	if err := errors.ValidateRecord(s); err != nil {
		return graph.Graph{}, err
	}
	return defaultEncoder.StructureGraph(s)
}

// FromGraph6 encodes a graph6 record with the default encoder.
func FromGraph6(s string, canonical bool) (string, error) {
	return defaultEncoder.FromGraph6(s, canonical)
}
