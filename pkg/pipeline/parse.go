package pipeline

import (
	"strings"

	"github.com/matzehuels/lgi/pkg/errors"
	"github.com/matzehuels/lgi/pkg/graph"
	"github.com/matzehuels/lgi/pkg/graph6"
	"github.com/matzehuels/lgi/pkg/lgi"
)

// Format names the notation of a single encode input.
type Format string

const (
	FormatGraph6 Format = "graph6"
	FormatSMILES Format = "smiles"
	FormatJSON   Format = "json"
	FormatLGI    Format = "lgi"
)

// Formats lists the accepted encode input formats.
var Formats = []Format{FormatGraph6, FormatSMILES, FormatJSON, FormatLGI}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q (want graph6, smiles, json or lgi)", s)
}

// ParseInput reads a graph from input in the given format. SMILES inputs
// yield their bond graph and LGI inputs are decoded and validated.
func ParseInput(input string, from Format) (graph.Graph, error) {
	switch from {
	case FormatGraph6:
		return graph6.Decode(input)
	case FormatJSON:
		g, err := graph.UnmarshalGraph([]byte(strings.TrimSpace(input)))
		if err != nil {
			return graph.Graph{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "invalid graph JSON")
		}
		return g, nil
	case FormatLGI:
		return lgi.Decode(input)
	case FormatSMILES:
		return lgi.StructureGraph(input)
	default:
		return graph.Graph{}, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", from)
	}
}
