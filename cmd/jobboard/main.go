// Package main provides the jobboard command line: the HTTP API server plus
// offline search, seeding and experience tools.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/logging"
	"github.com/jonathan/jobboard/internal/observability"
	"github.com/jonathan/jobboard/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath   string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:           "jobboard",
	Short:         "Job board API server and tools",
	Long:          "Job board serves vacancies, published resumes, skill suggestions and applications over a JSON API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file (environment variables override it)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "json", "Output format: json or text")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds its logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}

// render writes v as indented JSON, or through text when --format is text.
func render(cmd *cobra.Command, v any, text func(*observability.Printer)) error {
	switch outputFormat {
	case "", "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "text":
		text(observability.NewPrinter(cmd.OutOrStdout()))
		return nil
	default:
		return fmt.Errorf("invalid --format %q, expected json or text", outputFormat)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	st, err := store.Open(ctx, store.Options{
		Backend:     cfg.StoreBackend,
		DatabaseURL: cfg.DatabaseURL,
		Redis: store.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
	}
	return st, nil
}
