// Package outwriter has output and writer logic: dataset CSV, the console
// report and the plain-text summary mirror.
package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hrpulse/hrpulse/internal/contract"
	"github.com/hrpulse/hrpulse/schema"
	"golang.org/x/term"
)

// ReportModel bundles everything the report surfaces: it is rendered as
// console text, JSON or CSV, and mirrored into the plain-text artifact.
type ReportModel struct {
	Month           schema.Month          `json:"month"`
	Summary         string                `json:"summary"`
	Recommendations []string              `json:"recommendations"`
	Insights        []schema.TrendInsight `json:"insights"`
	Flags           []schema.RiskFlag     `json:"risk_flags"`
	Breakdown       []schema.BreakdownRow `json:"department_breakdown"`
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// createFormatters creates the float formatter closure shared by the
// console and text-mirror renderers.
func createFormatters(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// terminalWidth returns the configured or detected terminal width, with a
// conservative fallback for narrow terminals and CI.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80
	}
	return detected
}
