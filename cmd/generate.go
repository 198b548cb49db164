package cmd

import (
	"github.com/hrpulse/hrpulse/core"
	"github.com/hrpulse/hrpulse/internal/contract"
	"github.com/spf13/cobra"
)

// generateCmd synthesizes the monthly HR metrics dataset.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Synthesize the monthly HR metrics dataset.",
	Long: `Generate a reproducible synthetic dataset of monthly workforce metrics.

Each department gets one row per month covering headcount, hiring,
terminations, open positions, time-to-fill, offer acceptance and turnover.
The same seed always produces the same dataset, so reports built on top of
it are reproducible end to end.

Examples:
  # Generate the default 12 months for all departments
  hrpulse generate

  # A different year of data, same structure
  hrpulse generate --seed 7 --months 24 --start-month 2024-01

  # Only two departments, plus a parquet mirror for warehouse ingestion
  hrpulse generate --departments Engineering,Sales --parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGenerate(cfg); err != nil {
			contract.LogFatal("Cannot generate dataset", err)
		}
	},
}
