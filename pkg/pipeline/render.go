package pipeline

import (
	"context"

	"github.com/matzehuels/lgi/pkg/errors"
	"github.com/matzehuels/lgi/pkg/graph"
	"github.com/matzehuels/lgi/pkg/lgi"
	"github.com/matzehuels/lgi/pkg/render/nodelink"
)

// RenderFormat names a render output.
type RenderFormat string

const (
	RenderDOT  RenderFormat = "dot"
	RenderSVG  RenderFormat = "svg"
	RenderJSON RenderFormat = "json"
)

// Render decodes an LGI string and draws the resulting graph.
func Render(ctx context.Context, s string, format RenderFormat, opts nodelink.Options) ([]byte, error) {
	g, err := lgi.Decode(s)
	if err != nil {
		return nil, err
	}
	return RenderGraph(ctx, g, format, opts)
}

// RenderGraph draws g in the given format.
func RenderGraph(ctx context.Context, g graph.Graph, format RenderFormat, opts nodelink.Options) ([]byte, error) {
	switch format {
	case RenderDOT:
		return []byte(nodelink.ToDOT(g, opts)), nil
	case RenderSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(g, opts))
	case RenderJSON:
		return graph.MarshalGraph(g)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported render format: %s (want dot, svg or json)", format)
	}
}
