// Package contract provides the validated runtime configuration and shared
// utilities for the hrpulse pipeline.
package contract

import (
	"fmt"
	"path/filepath"

	"github.com/hrpulse/hrpulse/schema"
)

// Default values for configuration.
const (
	DefaultSeed          = 42
	DefaultMonths        = 12
	DefaultStartMonth    = "2025-02"
	DefaultDataFile      = "data/hr_metrics_monthly.csv"
	DefaultOutputDir     = "output"
	DefaultPrecision     = 1
	DefaultTopTrends     = 3
	DefaultTopFlags      = 3
	DefaultTurnoverMax   = 0.15
	DefaultTimeToFillMax = 45.0
	DefaultStepWorsen    = 0.10
	DefaultDeadBand      = 0.02
)

// Fixed artifact names inside the output directory.
const (
	DeckFileName           = "hr_metrics_executive_dashboard.pptx"
	SummaryFileName        = "executive_summary.txt"
	HeadcountChartName     = "headcount_trend.png"
	HiringChartName        = "hiring_turnover_trend.png"
	DepartmentChartName    = "department_breakdown.png"
	ParquetMirrorExtension = ".parquet"
)

// ConfigRawInput holds the raw, unvalidated configuration merged by Viper
// from defaults, the config file, environment variables and flags.
type ConfigRawInput struct {
	DataFile    string   `mapstructure:"data-file"`
	OutputDir   string   `mapstructure:"output-dir"`
	Seed        int64    `mapstructure:"seed"`
	Months      int      `mapstructure:"months"`
	StartMonth  string   `mapstructure:"start-month"`
	TurnoverMax float64  `mapstructure:"turnover-threshold"`
	TimeToFill  float64  `mapstructure:"time-to-fill-threshold"`
	StepWorsen  float64  `mapstructure:"step-worsen"`
	DeadBand    float64  `mapstructure:"dead-band"`
	TopTrends   int      `mapstructure:"top-trends"`
	TopFlags    int      `mapstructure:"top-flags"`
	Precision   int      `mapstructure:"precision"`
	Output      string   `mapstructure:"output"`
	Color       string   `mapstructure:"color"`
	Parquet     bool     `mapstructure:"parquet"`
	Width       int      `mapstructure:"width"`
	Departments []string `mapstructure:"departments"`
}

// Config is the final, validated runtime configuration.
type Config struct {
	DataFile  string // Path of the tabular dataset (input of report, output of generate)
	OutputDir string // Directory receiving the deck, charts and text mirror

	Seed        int64               // RNG seed for the generator
	Months      int                 // Number of consecutive months to generate
	StartMonth  schema.Month        // First generated month
	Departments []schema.Department // Departments to generate (canonical order)

	TurnoverMax float64 // Turnover rate above which a department is flagged
	TimeToFill  float64 // Time-to-fill days above which a department is flagged
	StepWorsen  float64 // Fractional MoM worsening that triggers a flag
	DeadBand    float64 // Fractional MoM band classified as flat

	TopTrends int // Company-wide trends summarized in the executive paragraph
	TopFlags  int // Risk flags considered for recommendations

	Precision int               // Decimal precision for numeric console columns
	Output    schema.OutputMode // Console output format
	UseColors bool              // Colored severity labels in table output
	Parquet   bool              // Also write a parquet mirror of the dataset
	Width     int               // Terminal width override (0 = auto-detect)
}

// DeckPath returns the full path of the presentation artifact.
func (c *Config) DeckPath() string { return filepath.Join(c.OutputDir, DeckFileName) }

// SummaryPath returns the full path of the plain-text summary mirror.
func (c *Config) SummaryPath() string { return filepath.Join(c.OutputDir, SummaryFileName) }

// ChartPath returns the full path of a named chart artifact.
func (c *Config) ChartPath(name string) string { return filepath.Join(c.OutputDir, name) }

// ParquetPath returns the parquet mirror path derived from the data file.
func (c *Config) ParquetPath() string {
	base := c.DataFile[:len(c.DataFile)-len(filepath.Ext(c.DataFile))]
	return base + ParquetMirrorExtension
}

// ProcessAndValidate turns raw input into a validated Config. All
// configuration errors are fatal and surfaced immediately; nothing retries.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if input.Months <= 0 {
		return fmt.Errorf("%w: months=%d", ErrNonPositiveMonths, input.Months)
	}
	start, err := schema.ParseMonth(input.StartMonth)
	if err != nil {
		return fmt.Errorf("invalid start-month: %w", err)
	}

	departments, err := resolveDepartments(input.Departments)
	if err != nil {
		return err
	}

	if input.TurnoverMax <= 0 || input.TimeToFill <= 0 || input.StepWorsen <= 0 {
		return fmt.Errorf("%w: thresholds must be positive", ErrInvalidThreshold)
	}
	if input.DeadBand < 0 || input.DeadBand >= 1 {
		return fmt.Errorf("%w: dead-band %.2f outside [0,1)", ErrInvalidThreshold, input.DeadBand)
	}
	if input.TopTrends < 1 || input.TopFlags < 1 {
		return fmt.Errorf("%w: top-trends and top-flags must be at least 1", ErrInvalidThreshold)
	}

	output := schema.OutputMode(input.Output)
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q (expected text, csv or json)", input.Output)
	}

	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color setting: %w", err)
	}

	precision := input.Precision
	if precision < 1 {
		precision = 1
	}
	if precision > 2 {
		precision = 2
	}

	cfg.DataFile = input.DataFile
	cfg.OutputDir = input.OutputDir
	cfg.Seed = input.Seed
	cfg.Months = input.Months
	cfg.StartMonth = start
	cfg.Departments = departments
	cfg.TurnoverMax = input.TurnoverMax
	cfg.TimeToFill = input.TimeToFill
	cfg.StepWorsen = input.StepWorsen
	cfg.DeadBand = input.DeadBand
	cfg.TopTrends = input.TopTrends
	cfg.TopFlags = input.TopFlags
	cfg.Precision = precision
	cfg.Output = output
	cfg.UseColors = useColors
	cfg.Parquet = input.Parquet
	cfg.Width = input.Width
	return nil
}

// resolveDepartments maps configured department names onto the canonical
// set. An empty input selects all departments; an unknown name is fatal.
func resolveDepartments(names []string) ([]schema.Department, error) {
	if len(names) == 0 {
		out := make([]schema.Department, len(schema.AllDepartments))
		copy(out, schema.AllDepartments)
		return out, nil
	}
	seen := make(map[schema.Department]bool, len(names))
	for _, n := range names {
		d := schema.Department(n)
		if schema.DepartmentOrder(d) >= len(schema.AllDepartments) {
			return nil, fmt.Errorf("%w: unknown department %q", ErrNoDepartments, n)
		}
		seen[d] = true
	}
	var out []schema.Department
	for _, d := range schema.AllDepartments {
		if seen[d] {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoDepartments
	}
	return out, nil
}
