package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/they4kman/prizegrid/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP",
		Long: `Serve the game over HTTP until interrupted.

	GET  /api/state
	POST /api/start
	POST /api/reset
	POST /api/boxes/{id}/open
	GET  /ws              prize celebrations as they happen`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.store, a.formatter, a.log)
			return server.Run(ctx, a.cfg.Addr, srv.Handler(), a.log, nil)
		}),
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default $PRIZEGRID_ADDR or 127.0.0.1:8080)")

	return cmd
}
