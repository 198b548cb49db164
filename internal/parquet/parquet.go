// Package parquet exports the monthly HR dataset to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/hrpulse/hrpulse/schema"
	"github.com/parquet-go/parquet-go"
)

// SeriesRow is the columnar form of one monthly department record. Column
// names mirror the CSV header so both mirrors query identically.
type SeriesRow struct {
	// Month is the calendar month in YYYY-MM form
	Month string `parquet:"month,snappy,dict"`

	// Department is the canonical department name
	Department string `parquet:"department,snappy,dict"`

	// Headcount is the active employee count at month end
	Headcount int32 `parquet:"headcount,snappy"`

	// NewHires is the number of employees who started during the month
	NewHires int32 `parquet:"new_hires,snappy"`

	// Terminations is the number of departures during the month
	Terminations int32 `parquet:"terminations,snappy"`

	// OpenPositions is the number of unfilled requisitions at month end
	OpenPositions int32 `parquet:"open_positions,snappy"`

	// TimeToFillDays is the average days to fill a position
	TimeToFillDays float64 `parquet:"time_to_fill_days,snappy"`

	// OfferAcceptanceRate is the fraction of offers accepted, in [0,1]
	OfferAcceptanceRate float64 `parquet:"offer_acceptance_rate,snappy"`

	// TurnoverRate is the fraction of staff who left, in [0,1]
	TurnoverRate float64 `parquet:"turnover_rate,snappy"`
}

// ConvertSeries flattens a metric series into Parquet rows in canonical
// (month, department) order.
func ConvertSeries(series *schema.MetricSeries) []SeriesRow {
	records := series.Records()
	rows := make([]SeriesRow, len(records))
	for i, r := range records {
		rows[i] = SeriesRow{
			Month:               string(r.Month),
			Department:          string(r.Department),
			Headcount:           int32(r.Headcount),
			NewHires:            int32(r.NewHires),
			Terminations:        int32(r.Terminations),
			OpenPositions:       int32(r.OpenPositions),
			TimeToFillDays:      r.TimeToFillDays,
			OfferAcceptanceRate: r.OfferAcceptanceRate,
			TurnoverRate:        r.TurnoverRate,
		}
	}
	return rows
}

// WriteSeriesParquet writes the dataset mirror to a Parquet file.
func WriteSeriesParquet(series *schema.MetricSeries, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the SeriesRow struct tags.
	writer := parquet.NewGenericWriter[SeriesRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(ConvertSeries(series)); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
