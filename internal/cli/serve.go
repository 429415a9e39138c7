package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ktile/pkg/api"
	"github.com/matzehuels/ktile/pkg/config"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve tile generation and verification over HTTP.

Endpoints:
  GET  /healthz    build information
  POST /v1/tiles   {"k": 2, "w": 5, "h": 5}
  POST /v1/verify  {"k": 1, "w": 1, "h": 3, "tile": [[0, 0]]}

The server shuts down gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := api.NewServer(runner, loggerFromContext(ctx))
			srv.Workers = c.Config.Workers
			srv.Timeout = timeout
			return api.ListenAndServe(ctx, addr, srv.Handler(), srv.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "per-request timeout")

	return cmd
}
