package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hrpulse/hrpulse/internal/contract"
	"github.com/hrpulse/hrpulse/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintReport writes the report to the console, dispatching on the
// configured output format.
func PrintReport(model *ReportModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(os.Stdout, model)
	case schema.CSVOut:
		return writeFlagsCSV(os.Stdout, model.Flags, cfg)
	default:
		return printReportText(os.Stdout, model, cfg, true)
	}
}

// WriteSummaryText writes the plain-text mirror of the executive summary,
// recommendations and department breakdown. Labels stay uncolored here so
// the artifact is grep-friendly.
func WriteSummaryText(model *ReportModel, path string, cfg *contract.Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := printReportText(file, model, cfg, false); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

// printReportText renders the full human-readable report. colored controls
// severity label coloring, which only makes sense on a terminal.
func printReportText(w io.Writer, model *ReportModel, cfg *contract.Config, colored bool) error {
	// The text mirror wraps at a fixed width; the console follows the
	// terminal so the paragraph stays readable either way.
	width := 100
	if colored {
		width = min(terminalWidth(cfg), 120)
	}

	if _, err := fmt.Fprintf(w, "Executive Summary (%s)\n", model.Month.Label()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("=", 40)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\n%s\n\n", wrapText(model.Summary, width)); err != nil {
		return err
	}

	if len(model.Recommendations) > 0 {
		if _, err := fmt.Fprintln(w, "Recommendations:"); err != nil {
			return err
		}
		for _, rec := range model.Recommendations {
			if _, err := fmt.Fprintf(w, "- %s\n", rec); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if len(model.Flags) > 0 {
		if _, err := fmt.Fprintln(w, "Risk flags:"); err != nil {
			return err
		}
		if err := renderFlagsTable(w, model.Flags, cfg, colored); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Department breakdown (%s):\n", model.Month.Label()); err != nil {
		return err
	}
	return renderBreakdownTable(w, model.Breakdown, cfg)
}

// wrapText greedily wraps a paragraph at width columns. Words longer than
// the width are kept whole on their own line.
func wrapText(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}

// renderFlagsTable prints risk flags ordered by severity.
func renderFlagsTable(w io.Writer, flags []schema.RiskFlag, cfg *contract.Config, colored bool) error {
	fmtFloat := createFormatters(2)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Severity", "Department", "Reason", "Metric", "Month", "Magnitude"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, f := range flags {
		label := contract.GetPlainLabel(f.Severity)
		if colored && cfg.UseColors {
			label = contract.GetColorLabel(f.Severity)
		}
		data = append(data, []string{
			label,
			string(f.Department),
			string(f.Reason),
			string(f.Metric),
			string(f.Month),
			fmtFloat(f.Magnitude),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// renderBreakdownTable prints the department breakdown ranked by headcount.
func renderBreakdownTable(w io.Writer, rows []schema.BreakdownRow, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Department", "Headcount", "Turnover %", "Time To Fill (d)"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			string(r.Department),
			strconv.Itoa(r.Headcount),
			fmtFloat(r.TurnoverRate * 100),
			fmtFloat(r.TimeToFillDays),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeFlagsCSV emits the risk flags as CSV for spreadsheet follow-up.
func writeFlagsCSV(w io.Writer, flags []schema.RiskFlag, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)

	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	header := []string{"severity", "label", "department", "reason_code", "metric", "month", "magnitude"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, f := range flags {
		rec := []string{
			strconv.Itoa(f.Severity),
			contract.GetPlainLabel(f.Severity),
			string(f.Department),
			string(f.Reason),
			string(f.Metric),
			string(f.Month),
			fmtFloat(f.Magnitude),
		}
		if err := csvWriter.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}
