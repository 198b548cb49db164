package core

import (
	"fmt"
	"os"
	"time"

	"github.com/hrpulse/hrpulse/internal/chart"
	"github.com/hrpulse/hrpulse/internal/contract"
	"github.com/hrpulse/hrpulse/internal/deck"
	"github.com/hrpulse/hrpulse/internal/outwriter"
	"github.com/hrpulse/hrpulse/internal/parquet"
	"github.com/hrpulse/hrpulse/schema"
)

// ExecuteGenerate runs the dataset pipeline: synthesize the monthly series
// and write the CSV dataset, plus the parquet mirror when configured.
func ExecuteGenerate(cfg *contract.Config) error {
	start := time.Now()

	series, err := Generate(cfg)
	if err != nil {
		return err
	}
	if err := outwriter.WriteSeriesCSV(series, cfg.DataFile); err != nil {
		return err
	}
	if cfg.Parquet {
		if err := parquet.WriteSeriesParquet(series, cfg.ParquetPath()); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet mirror to %s\n", cfg.ParquetPath())
	}

	months := series.Months()
	fmt.Printf("🧠 hrpulse: Generated %d records (%d departments) in %v\n",
		series.Len(), len(series.Departments()), time.Since(start).Round(time.Millisecond))
	fmt.Printf("📅 Range: %s → %s\n", months[0].Label(), months[len(months)-1].Label())
	fmt.Fprintf(os.Stderr, "💾 Wrote dataset to %s\n", cfg.DataFile)
	return nil
}

// ExecuteReport runs the reporting pipeline: load the dataset, derive
// trends, flags and the narrative, render the charts, assemble the deck
// and its text mirror, then print the report to the console.
func ExecuteReport(cfg *contract.Config) error {
	start := time.Now()

	series, err := outwriter.ReadSeriesCSV(cfg.DataFile)
	if err != nil {
		return err
	}
	analyzer, err := NewAnalyzer(series, cfg)
	if err != nil {
		return err
	}

	months := series.Months()
	latest := months[len(months)-1]

	insights := analyzer.CompanyWideTrends()
	flags := analyzer.DetectRisk()
	breakdown := analyzer.BreakdownRows(latest)
	narrative := BuildNarrative(insights, flags, cfg)

	model := &outwriter.ReportModel{
		Month:           latest,
		Summary:         narrative.Summary,
		Recommendations: narrative.Recommendations,
		Insights:        insights,
		Flags:           flags,
		Breakdown:       breakdown,
	}

	if err := contract.EnsureDir(cfg.OutputDir); err != nil {
		return err
	}
	if err := renderCharts(analyzer, months, breakdown, cfg); err != nil {
		return err
	}
	if err := buildDeck(narrative, months, cfg); err != nil {
		return err
	}
	if err := outwriter.WriteSummaryText(model, cfg.SummaryPath(), cfg); err != nil {
		return err
	}

	// Artifact notices go to stderr so stdout stays machine-parseable in
	// the csv and json output modes.
	fmt.Fprintf(os.Stderr, "💾 Wrote deck to %s\n", cfg.DeckPath())
	fmt.Fprintf(os.Stderr, "💾 Wrote summary to %s\n", cfg.SummaryPath())
	fmt.Fprintf(os.Stderr, "Report built in %v\n", time.Since(start).Round(time.Millisecond))
	return outwriter.PrintReport(model, cfg)
}

// renderCharts draws the three report charts into the output directory.
func renderCharts(analyzer *Analyzer, months []schema.Month, breakdown []schema.BreakdownRow, cfg *contract.Config) error {
	headcounts := analyzer.MonthlyValues(schema.MetricHeadcount)
	if err := chart.RenderHeadcountTrend(months, headcounts, cfg.ChartPath(contract.HeadcountChartName)); err != nil {
		return err
	}

	hires := analyzer.MonthlyValues(schema.MetricNewHires)
	turnoverPct := analyzer.MonthlyValues(schema.MetricTurnover)
	for i := range turnoverPct {
		turnoverPct[i] *= 100
	}
	if err := chart.RenderHiringTurnover(months, hires, turnoverPct, cfg.ChartPath(contract.HiringChartName)); err != nil {
		return err
	}

	return chart.RenderDepartmentBreakdown(breakdown, cfg.ChartPath(contract.DepartmentChartName))
}

// buildDeck assembles the presentation. Slide order is fixed: title with
// the executive summary, the three charts, then insights and
// recommendations.
func buildDeck(narrative schema.Narrative, months []schema.Month, cfg *contract.Config) error {
	latest := months[len(months)-1]

	recommendations := narrative.Recommendations
	if len(recommendations) == 0 {
		recommendations = []string{"No active risk flags this period."}
	}

	d := &deck.Deck{
		Slides: []deck.Slide{
			{
				Title:    "HR Metrics Executive Dashboard",
				Subtitle: fmt.Sprintf("%s through %s", months[0].Label(), latest.Label()),
				Bullets:  []string{narrative.Summary},
			},
			{
				Title:     "Total Headcount Trend",
				ImagePath: cfg.ChartPath(contract.HeadcountChartName),
			},
			{
				Title:     "Hiring Activity vs Turnover Rate",
				ImagePath: cfg.ChartPath(contract.HiringChartName),
			},
			{
				Title:     fmt.Sprintf("Department Breakdown (%s)", latest.Label()),
				ImagePath: cfg.ChartPath(contract.DepartmentChartName),
			},
			{
				Title:    "Insights & Recommendations",
				Subtitle: narrative.Summary,
				Bullets:  recommendations,
			},
		},
	}
	return deck.Write(d, cfg.DeckPath())
}
