package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/router"
	"storefront/internal/services"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  serve,
}

func serve(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, s, err := setup(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	log.Info().Str("backend", cfg.StoreBackend).Msg("Storefront starting")

	if cfg.SeedOnStart {
		if err := services.NewSeedService(s, log).Initialize(ctx); err != nil {
			return err
		}
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.SetupRouter(s, cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("Server error")
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
		return err
	}

	log.Info().Msg("Server stopped")
	return nil
}
