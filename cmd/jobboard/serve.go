package main

import (
	"fmt"
	"strconv"

	"github.com/jonathan/jobboard/internal/applications"
	"github.com/jonathan/jobboard/internal/seed"
	"github.com/jonathan/jobboard/internal/server"
	"github.com/jonathan/jobboard/internal/server/ratelimit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
	serveSeed bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing listings, search, skills, work experience and applications.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to the configured port)")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "Load the sample dataset into an empty store before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	port := servePort
	if port == 0 {
		if port, err = strconv.Atoi(cfg.Port); err != nil {
			return fmt.Errorf("invalid port %q: %w", cfg.Port, err)
		}
	}

	ctx := cmd.Context()
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	if serveSeed {
		d, err := seed.Sample()
		if err != nil {
			_ = st.Close()
			return err
		}
		if _, err := seed.Load(ctx, st, d, logger); err != nil {
			_ = st.Close()
			return fmt.Errorf("failed to seed store: %w", err)
		}
	}

	var publisher applications.Publisher
	if cfg.NATSURL != "" {
		p, err := applications.NewNATSPublisher(cfg.NATSURL, logger)
		if err != nil {
			_ = st.Close()
			return err
		}
		publisher = p
	}

	srv, err := server.New(ctx, st, server.Config{
		Port:          port,
		RateLimit:     ratelimit.NewConfig(cfg.RateLimitEnabled, cfg.RateLimitPerMinute, cfg.ApplyLimitPerHour),
		Now:           cfg.Now(),
		Logger:        logger,
		Publisher:     publisher,
		AutoAddSkills: cfg.AutoAddSkills,
	})
	if err != nil {
		if publisher != nil {
			_ = publisher.Close()
		}
		_ = st.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("starting job board", zap.Int("port", port), zap.String("store", cfg.StoreBackend))
	return srv.Start()
}
