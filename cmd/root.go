package cmd

import (
	"context"
	"fmt"

	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmdPersistentFlags struct {
	LogLevel string
	LogFile  string
	Backend  string
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error), overrides LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogFile, "log-file", "", "File to write rotated logs to, overrides LOG_FILE")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.Backend, "store", "", "Store backend (memory, mysql, sqlite, redis, badger), overrides STORE_BACKEND")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront serves a small shop backed by a scoped key-value store",
	Example: `storefront serve
  storefront serve --store sqlite --log-level debug
  storefront seed --reset`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

// setup loads the configuration, applies flag overrides and opens the store.
func setup(ctx context.Context) (config.Config, zerolog.Logger, *store.Store, error) {
	cfg := config.LoadConfig()
	if rootCmdPersistentFlags.LogLevel != "" {
		cfg.LogLevel = rootCmdPersistentFlags.LogLevel
	}
	if rootCmdPersistentFlags.LogFile != "" {
		cfg.LogFile = rootCmdPersistentFlags.LogFile
	}
	if rootCmdPersistentFlags.Backend != "" {
		cfg.StoreBackend = rootCmdPersistentFlags.Backend
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.LogFile)

	kv, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.StoreBackend).Msg("Failed to open store")
		return cfg, log, nil, fmt.Errorf("open store: %w", err)
	}
	return cfg, log, store.New(kv), nil
}
