package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hrpulse/hrpulse/internal/contract"
	"github.com/hrpulse/hrpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleModel builds a report model with one flag and two breakdown rows.
func sampleModel() *ReportModel {
	return &ReportModel{
		Month:   "2025-06",
		Summary: "As of Jun 2025, company-wide turnover worsened 12.0% month-over-month (1.5% to 1.7%).",
		Recommendations: []string{
			"Launch targeted retention interventions in Sales: turnover reached 21.0%, above the 15.0% alert threshold.",
		},
		Flags: []schema.RiskFlag{
			{Department: schema.Sales, Reason: schema.ReasonHighTurnover, Severity: 2, Magnitude: 0.21, Metric: schema.MetricTurnover, Month: "2025-06"},
		},
		Breakdown: []schema.BreakdownRow{
			{Rank: 1, Department: schema.Engineering, Headcount: 102, TurnoverRate: 0.012, TimeToFillDays: 46},
			{Rank: 2, Department: schema.Sales, Headcount: 64, TurnoverRate: 0.021, TimeToFillDays: 33},
		},
	}
}

// reportConfig returns a console config with fixed width and no colors.
func reportConfig() *contract.Config {
	return &contract.Config{
		Precision: 1,
		Output:    schema.TextOut,
		UseColors: false,
		Width:     100,
	}
}

func TestPrintReportText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printReportText(&buf, sampleModel(), reportConfig(), false))
	out := buf.String()

	assert.Contains(t, out, "Executive Summary (Jun 2025)")
	assert.Contains(t, out, "Recommendations:")
	assert.Contains(t, out, "- Launch targeted retention interventions in Sales")
	assert.Contains(t, out, "Risk flags:")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "Department breakdown (Jun 2025):")
	assert.Contains(t, out, "Engineering")
	assert.Contains(t, out, "102")
}

func TestWriteSummaryText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "executive_summary.txt")
	require.NoError(t, WriteSummaryText(sampleModel(), path, reportConfig()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Executive Summary (Jun 2025)")
	assert.NotContains(t, text, "\x1b[", "text mirror must stay uncolored")
}

func TestWriteFlagsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFlagsCSV(&buf, sampleModel().Flags, reportConfig()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "severity,label,department,reason_code,metric,month,magnitude", lines[0])
	assert.Equal(t, "2,High,Sales,high_turnover,turnover_rate,2025-06,0.2", lines[1])
}

func TestWriteJSONModel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sampleModel()))

	var decoded ReportModel
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, schema.Month("2025-06"), decoded.Month)
	assert.Len(t, decoded.Flags, 1)
	assert.Equal(t, schema.ReasonHighTurnover, decoded.Flags[0].Reason)
}

func TestWrapText(t *testing.T) {
	t.Run("wraps at width", func(t *testing.T) {
		wrapped := wrapText("alpha beta gamma delta", 11)
		for _, line := range strings.Split(wrapped, "\n") {
			assert.LessOrEqual(t, len(line), 11)
		}
		assert.Equal(t, "alpha beta gamma delta", strings.ReplaceAll(wrapped, "\n", " "))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", wrapText("   ", 20))
	})

	t.Run("long word stays whole", func(t *testing.T) {
		assert.Equal(t, "supercalifragilistic", wrapText("supercalifragilistic", 5))
	})
}
