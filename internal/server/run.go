package server

import (
	"context"
	"errors"
	"net/http"

	"log/slog"

	"github.com/sungmin-oh/claimform-extractor/internal/common"
	"github.com/sungmin-oh/claimform-extractor/internal/export"
	"github.com/sungmin-oh/claimform-extractor/internal/extract"
	"github.com/sungmin-oh/claimform-extractor/internal/repository"
)

// Run wires the full service and serves HTTP until ctx is cancelled,
// then shuts down gracefully within cfg.Server.ShutdownTimeout.
func Run(ctx context.Context, cfg *common.Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		return common.WrapError(err, "open store")
	}
	defer store.Close()

	pipeline := extract.NewPipeline(logger)
	exporter := export.NewService(store, cfg.Export.SheetName, logger)
	svc := NewService(pipeline, store, exporter, logger)

	srv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: http.MaxBytesHandler(NewRouter(svc), cfg.Server.MaxBodyBytes),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http serving", "addr", cfg.Server.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return common.WrapError(err, "http serve")
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return common.WrapError(err, "shutdown")
	}
	logger.Info("stopped")
	return nil
}
