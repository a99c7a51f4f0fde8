package main

import (
	"fmt"
	"time"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/experience"
	"github.com/jonathan/jobboard/internal/observability"
	"github.com/spf13/cobra"
)

var experienceCmd = &cobra.Command{
	Use:   "experience",
	Short: "Summarize a work-experience file",
	Long:  "Reads a JSON array of work-experience records, validates them and prints each entry's duration and the total, latest job first.",
	RunE:  runExperience,
}

var (
	experienceFile string
	experienceAt   string
)

func init() {
	experienceCmd.Flags().StringVarP(&experienceFile, "in", "i", "", "Path to a work-experience JSON file (required)")
	experienceCmd.Flags().StringVar(&experienceAt, "at", "", "Compute open-ended durations at this date (YYYY-MM-DD)")

	if err := experienceCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(experienceCmd)
}

func runExperience(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	now := cfg.Now()()
	if experienceAt != "" {
		if now, err = time.Parse(config.ReferenceDateLayout, experienceAt); err != nil {
			return fmt.Errorf("invalid --at date: %w", err)
		}
	}

	list, err := experience.LoadFile(experienceFile)
	if err != nil {
		return fmt.Errorf("failed to load experience: %w", err)
	}

	experience.SortByEffectiveEnd(list, now)
	summary := experience.Summarize(list, now)
	return render(cmd, summary, func(p *observability.Printer) {
		p.PrintExperience(summary)
	})
}
