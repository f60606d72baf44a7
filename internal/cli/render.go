package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lgi/pkg/pipeline"
	"github.com/matzehuels/lgi/pkg/render/nodelink"
)

// renderCommand creates the render command for drawing decoded graphs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format string
		output string
		opts   nodelink.Options
	)

	cmd := &cobra.Command{
		Use:   "render <lgi>",
		Short: "Draw the graph of an LGI string",
		Long: `Draw the graph of an LGI string as Graphviz DOT, SVG or graph JSON.

Nodes are labeled with their degree characters. Without --output the
result is written to standard output.`,
		Example: `  lgi render 'AC(A)A' --format dot
  lgi render B1BB1 -o triangle.svg --title triangle`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readArg(cmd, args[0])
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			data, err := pipeline.Render(cmd.Context(), s, pipeline.RenderFormat(format), opts)
			if err != nil {
				return err
			}
			prog.done("Rendered", "format", format)

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered %s", format)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(pipeline.RenderSVG), "output format: svg, dot, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "add node indices to labels")
	cmd.Flags().StringVar(&opts.Title, "title", "", "diagram title")

	return cmd
}
