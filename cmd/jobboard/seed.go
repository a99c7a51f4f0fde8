package main

import (
	"fmt"

	"github.com/jonathan/jobboard/internal/observability"
	"github.com/jonathan/jobboard/internal/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample dataset into the configured store",
	Long:  "Writes the bundled users, vacancies and resumes. A store that already holds vacancies is left untouched.",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	d, err := seed.Sample()
	if err != nil {
		return err
	}

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	res, err := seed.Load(cmd.Context(), st, d, logger)
	if err != nil {
		return fmt.Errorf("failed to seed store: %w", err)
	}
	return render(cmd, res, func(p *observability.Printer) {
		if res.Skipped {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Store already holds vacancies, nothing written")
			return
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users, %d vacancies, %d resumes\n", res.Users, res.Vacancies, res.Resumes)
	})
}
