package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hrpulse/hrpulse/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	rowSchema := parquet.SchemaOf(new(SeriesRow))
	require.NotNil(t, rowSchema)

	expectedColumns := []string{
		"month",
		"department",
		"headcount",
		"new_hires",
		"terminations",
		"open_positions",
		"time_to_fill_days",
		"offer_acceptance_rate",
		"turnover_rate",
	}
	for _, colName := range expectedColumns {
		col, ok := rowSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

// testSeries builds a minimal valid series for export tests.
func testSeries(t *testing.T) *schema.MetricSeries {
	t.Helper()
	series, err := schema.NewMetricSeries([]schema.MetricRecord{
		{Month: "2025-02", Department: schema.Engineering, Headcount: 96, NewHires: 5, Terminations: 2, OpenPositions: 7, TimeToFillDays: 47.0, OfferAcceptanceRate: 0.815, TurnoverRate: 0.0123},
		{Month: "2025-03", Department: schema.Engineering, Headcount: 99, NewHires: 5, Terminations: 2, OpenPositions: 8, TimeToFillDays: 46.0, OfferAcceptanceRate: 0.823, TurnoverRate: 0.0107},
	})
	require.NoError(t, err)
	return series
}

func TestConvertSeries(t *testing.T) {
	rows := ConvertSeries(testSeries(t))
	require.Len(t, rows, 2)

	assert.Equal(t, "2025-02", rows[0].Month)
	assert.Equal(t, "Engineering", rows[0].Department)
	assert.Equal(t, int32(96), rows[0].Headcount)
	assert.InDelta(t, 0.0123, rows[0].TurnoverRate, 1e-9)
	assert.Equal(t, "2025-03", rows[1].Month)
}

func TestWriteSeriesParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "hr_metrics_monthly.parquet")
	series := testSeries(t)

	require.NoError(t, WriteSeriesParquet(series, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[SeriesRow](file)
	defer func() { _ = reader.Close() }()

	readData := make([]SeriesRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n, "Should read all records")
	assert.Equal(t, ConvertSeries(series), readData)
}

func TestWriteSeriesParquetInvalidPath(t *testing.T) {
	err := WriteSeriesParquet(testSeries(t), "/nonexistent/directory/output.parquet")
	require.Error(t, err)
}
