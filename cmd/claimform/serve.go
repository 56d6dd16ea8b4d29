package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sungmin-oh/claimform-extractor/internal/common"
	"github.com/sungmin-oh/claimform-extractor/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the extraction HTTP service",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides LISTEN_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := common.LoadConfig()
	if serveAddr != "" {
		cfg.Server.ListenAddr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg, slog.Default())
}
