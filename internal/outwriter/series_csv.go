package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hrpulse/hrpulse/internal/contract"
	"github.com/hrpulse/hrpulse/schema"
)

// SeriesHeader is the column order of the tabular dataset. The reader
// tolerates reordered or extra columns but every listed name must exist.
var SeriesHeader = []string{
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

// WriteSeriesCSV writes the series to path, creating parent directories as
// needed. Rows come out in canonical (month, department) order.
func WriteSeriesCSV(series *schema.MetricSeries, path string) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := writeSeriesCSV(file, series); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

// writeSeriesCSV streams the header and rows to w.
func writeSeriesCSV(w io.Writer, series *schema.MetricSeries) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(SeriesHeader); err != nil {
		return err
	}
	for _, r := range series.Records() {
		rec := []string{
			string(r.Month),
			string(r.Department),
			strconv.Itoa(r.Headcount),
			strconv.Itoa(r.NewHires),
			strconv.Itoa(r.Terminations),
			strconv.Itoa(r.OpenPositions),
			strconv.FormatFloat(r.TimeToFillDays, 'f', 1, 64),
			strconv.FormatFloat(r.OfferAcceptanceRate, 'f', 3, 64),
			strconv.FormatFloat(r.TurnoverRate, 'f', 4, 64),
		}
		if err := csvWriter.Write(rec); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// ReadSeriesCSV loads and validates a dataset written by WriteSeriesCSV.
// Missing columns or an empty body are data format errors, fatal at
// analysis start.
func ReadSeriesCSV(path string) (*schema.MetricSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	series, err := readSeriesCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return series, nil
}

// readSeriesCSV parses the header, maps column positions and decodes rows.
func readSeriesCSV(r io.Reader) (*schema.MetricSeries, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[name] = i
	}
	for _, want := range SeriesHeader {
		if _, ok := colIdx[want]; !ok {
			return nil, fmt.Errorf("%w: %s", contract.ErrMissingColumn, want)
		}
	}

	var records []schema.MetricRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := parseRecord(row, colIdx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, contract.ErrEmptySeries
	}
	return schema.NewMetricSeries(records)
}

// parseRecord decodes one CSV row using the header's column positions.
func parseRecord(row []string, colIdx map[string]int) (schema.MetricRecord, error) {
	var rec schema.MetricRecord

	field := func(name string) string { return row[colIdx[name]] }

	month, err := schema.ParseMonth(field("month"))
	if err != nil {
		return rec, err
	}
	rec.Month = month
	rec.Department = schema.Department(field("department"))

	intCols := []struct {
		name string
		dst  *int
	}{
		{"headcount", &rec.Headcount},
		{"new_hires", &rec.NewHires},
		{"terminations", &rec.Terminations},
		{"open_positions", &rec.OpenPositions},
	}
	for _, c := range intCols {
		v, err := strconv.Atoi(field(c.name))
		if err != nil {
			return rec, fmt.Errorf("invalid %s %q: %w", c.name, field(c.name), err)
		}
		if v < 0 {
			return rec, fmt.Errorf("negative %s: %d", c.name, v)
		}
		*c.dst = v
	}

	floatCols := []struct {
		name string
		dst  *float64
	}{
		{"time_to_fill_days", &rec.TimeToFillDays},
		{"offer_acceptance_rate", &rec.OfferAcceptanceRate},
		{"turnover_rate", &rec.TurnoverRate},
	}
	for _, c := range floatCols {
		v, err := strconv.ParseFloat(field(c.name), 64)
		if err != nil {
			return rec, fmt.Errorf("invalid %s %q: %w", c.name, field(c.name), err)
		}
		if v < 0 {
			return rec, fmt.Errorf("negative %s: %v", c.name, v)
		}
		*c.dst = v
	}
	return rec, nil
}

// ensureParentDir creates the directory containing path, if any.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return contract.EnsureDir(dir)
}
