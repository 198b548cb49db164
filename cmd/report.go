package cmd

import (
	"github.com/hrpulse/hrpulse/core"
	"github.com/hrpulse/hrpulse/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd builds the executive report from an existing dataset.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the executive dashboard from the dataset.",
	Long: `Analyze the monthly dataset and build the executive reporting bundle.

The report derives company-wide month-over-month trends, flags departments
whose turnover or time-to-fill crossed thresholds or whose metrics worsened
sharply, and composes a short executive narrative. Artifacts written to the
output directory:
- a PowerPoint deck with the summary and trend charts
- the three charts as standalone PNG files
- a plain-text mirror of the executive summary

Examples:
  # Build the report with default thresholds
  hrpulse report

  # Tighter risk posture
  hrpulse report --turnover-threshold 0.10 --time-to-fill-threshold 35

  # Machine-readable output for downstream tooling
  hrpulse report --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(cfg); err != nil {
			contract.LogFatal("Cannot build report", err)
		}
	},
}
