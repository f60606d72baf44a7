package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lgi/pkg/api"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the encoder and batch translator over HTTP",
		Long: `Serve the encoder and batch translator over HTTP.

Routes: POST /v1/encode, POST /v1/decode, POST /v1/translate, GET /healthz.
The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printKeyValue("Listening", "http://"+addr)
			printKeyValue("Cache", c.Config.Cache.Backend)

			opts := c.Config.BatchOptions()
			opts.Logger = c.Logger
			srv := api.New(runner, api.Options{Batch: opts, Logger: c.Logger})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
