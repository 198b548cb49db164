package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hrpulse/hrpulse/internal/contract"
	"github.com/hrpulse/hrpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipelineConfig builds a full config pointing all artifacts at a temp dir.
func pipelineConfig(t *testing.T) *contract.Config {
	t.Helper()
	dir := t.TempDir()
	return &contract.Config{
		DataFile:    filepath.Join(dir, "data", "hr_metrics_monthly.csv"),
		OutputDir:   filepath.Join(dir, "output"),
		Seed:        contract.DefaultSeed,
		Months:      contract.DefaultMonths,
		StartMonth:  schema.Month(contract.DefaultStartMonth),
		Departments: schema.AllDepartments,
		TurnoverMax: contract.DefaultTurnoverMax,
		TimeToFill:  contract.DefaultTimeToFillMax,
		StepWorsen:  contract.DefaultStepWorsen,
		DeadBand:    contract.DefaultDeadBand,
		TopTrends:   contract.DefaultTopTrends,
		TopFlags:    contract.DefaultTopFlags,
		Precision:   contract.DefaultPrecision,
		Output:      schema.TextOut,
		UseColors:   false,
		Parquet:     true,
		Width:       100,
	}
}

func TestExecutePipeline(t *testing.T) {
	cfg := pipelineConfig(t)

	require.NoError(t, ExecuteGenerate(cfg))
	require.NoError(t, ExecuteReport(cfg))

	t.Run("dataset and mirror exist", func(t *testing.T) {
		for _, path := range []string{cfg.DataFile, cfg.ParquetPath()} {
			info, err := os.Stat(path)
			require.NoError(t, err, "%s should exist", path)
			assert.Greater(t, info.Size(), int64(0))
		}
	})

	t.Run("report artifacts exist", func(t *testing.T) {
		for _, path := range []string{
			cfg.DeckPath(),
			cfg.SummaryPath(),
			cfg.ChartPath(contract.HeadcountChartName),
			cfg.ChartPath(contract.HiringChartName),
			cfg.ChartPath(contract.DepartmentChartName),
		} {
			info, err := os.Stat(path)
			require.NoError(t, err, "%s should exist", path)
			assert.Greater(t, info.Size(), int64(0))
		}
	})

	t.Run("summary mirror carries the narrative", func(t *testing.T) {
		data, err := os.ReadFile(cfg.SummaryPath())
		require.NoError(t, err)
		text := string(data)
		assert.Contains(t, text, "Executive Summary (Jan 2026)")
		assert.Contains(t, text, "Department breakdown (Jan 2026):")
	})
}

func TestExecuteReportMissingDataset(t *testing.T) {
	cfg := pipelineConfig(t)
	// No generate step; the dataset does not exist.
	assert.Error(t, ExecuteReport(cfg))
}
