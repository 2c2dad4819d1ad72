package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ldmark/internal/metrics"
	"github.com/mesh-intelligence/ldmark/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve types, properties, validation and entity documents over HTTP",
	Long: `Serve starts the HTTP API. The listen address comes from --addr, then
listen_addr in config.yaml or LDMARK_LISTEN_ADDR. When auth_token is set every
route except /v1/health and /metrics requires "Authorization: Bearer <token>".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.ListenAddr
		if serveAddr != "" {
			addr = serveAddr
		}
		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		registry := newRegistry()
		srv := server.New(registry, backend,
			server.WithLogger(log.Component("http")),
			server.WithMetrics(metrics.New()),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.LogServerStart(addr, dataDir, len(registry.TypeNames()))
		if err := srv.ListenAndServe(ctx, addr, cfg.AuthToken); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: listen_addr from config)")
}
