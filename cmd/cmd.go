// Package cmd defines the command-line interface for hrpulse.
package cmd

import (
	"github.com/hrpulse/hrpulse/internal/contract"
	"github.com/hrpulse/hrpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("data-file", contract.DefaultDataFile, "Path of the monthly metrics dataset")
	rootCmd.PersistentFlags().String("output-dir", contract.DefaultOutputDir, "Directory receiving the deck, charts and text summary")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of generateCmd to Viper
	generateCmd.Flags().Int64("seed", contract.DefaultSeed, "Random seed for reproducible datasets")
	generateCmd.Flags().Int("months", contract.DefaultMonths, "Number of consecutive months to generate")
	generateCmd.Flags().String("start-month", contract.DefaultStartMonth, "First month to generate (YYYY-MM)")
	generateCmd.Flags().StringSlice("departments", nil, "Departments to generate (default: all)")
	generateCmd.Flags().Bool("parquet", false, "Also write a parquet mirror of the dataset")
	if err := viper.BindPFlags(generateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding generate flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().Float64("turnover-threshold", contract.DefaultTurnoverMax, "Turnover rate above which a department is flagged")
	reportCmd.Flags().Float64("time-to-fill-threshold", contract.DefaultTimeToFillMax, "Time-to-fill days above which a department is flagged")
	reportCmd.Flags().Float64("step-worsen", contract.DefaultStepWorsen, "Fractional MoM worsening that triggers a flag")
	reportCmd.Flags().Float64("dead-band", contract.DefaultDeadBand, "Fractional MoM band classified as flat")
	reportCmd.Flags().Int("top-trends", contract.DefaultTopTrends, "Company-wide trends included in the executive summary")
	reportCmd.Flags().Int("top-flags", contract.DefaultTopFlags, "Risk flags considered for recommendations")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}
}
