package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pandiff/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diff over HTTP",
		Long: `Serve the HTTP API:

  POST /v1/diff      {"before": doc, "after": doc, "decorate": "latex"}
  POST /v1/decorate  {"document": doc, "format": "html"}
  GET  /healthz

The listen address comes from --addr, PANDIFF_SERVER_ADDR or [server] addr in
the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			ctx := cmd.Context()
			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			srv := server.New(runner, server.Options{
				MaxBodyBytes: c.Config.Server.MaxBodyBytes,
				Logger:       c.Logger,
			})
			printInfo("Listening on %s", StyleValue.Render(addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (host:port)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}
