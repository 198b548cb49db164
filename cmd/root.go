package cmd

import (
	"fmt"
	"strings"

	"github.com/hrpulse/hrpulse/internal/contract"
	"github.com/hrpulse/hrpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "hrpulse",
	Short:              "Generate HR metrics and build executive-ready reports.",
	Long:               `Hrpulse synthesizes monthly HR workforce metrics and turns them into an executive dashboard: trends, risk flags, charts and a presentation deck.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".hrpulse") // Name of config file (without extension)
		viper.SetConfigType("yaml")     // We'll use YAML format
		viper.AddConfigPath(".")        // Look in the current directory
		viper.AddConfigPath("$HOME")    // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("HRPULSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("data-file", contract.DefaultDataFile)
	viper.SetDefault("output-dir", contract.DefaultOutputDir)
	viper.SetDefault("seed", contract.DefaultSeed)
	viper.SetDefault("months", contract.DefaultMonths)
	viper.SetDefault("start-month", contract.DefaultStartMonth)
	viper.SetDefault("turnover-threshold", contract.DefaultTurnoverMax)
	viper.SetDefault("time-to-fill-threshold", contract.DefaultTimeToFillMax)
	viper.SetDefault("step-worsen", contract.DefaultStepWorsen)
	viper.SetDefault("dead-band", contract.DefaultDeadBand)
	viper.SetDefault("top-trends", contract.DefaultTopTrends)
	viper.SetDefault("top-flags", contract.DefaultTopFlags)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("parquet", false)
	viper.SetDefault("width", 0)
	viper.SetDefault("departments", []string{})
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	return contract.ProcessAndValidate(cfg, input)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
