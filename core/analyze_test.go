package core

import (
	"testing"

	"github.com/hrpulse/hrpulse/internal/contract"
	"github.com/hrpulse/hrpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// analyzeConfig returns the default analysis thresholds used by tests.
func analyzeConfig() *contract.Config {
	return &contract.Config{
		TurnoverMax: contract.DefaultTurnoverMax,
		TimeToFill:  contract.DefaultTimeToFillMax,
		StepWorsen:  contract.DefaultStepWorsen,
		DeadBand:    contract.DefaultDeadBand,
		TopTrends:   contract.DefaultTopTrends,
		TopFlags:    contract.DefaultTopFlags,
	}
}

// mustSeries builds a series from records or fails the test.
func mustSeries(t *testing.T, records []schema.MetricRecord) *schema.MetricSeries {
	t.Helper()
	series, err := schema.NewMetricSeries(records)
	require.NoError(t, err)
	return series
}

// engRecord builds one Engineering row with the values the analyzer reads.
func engRecord(month schema.Month, headcount, hires, terms int, ttf, acceptance, turnover float64) schema.MetricRecord {
	return schema.MetricRecord{
		Month:               month,
		Department:          schema.Engineering,
		Headcount:           headcount,
		NewHires:            hires,
		Terminations:        terms,
		OpenPositions:       4,
		TimeToFillDays:      ttf,
		OfferAcceptanceRate: acceptance,
		TurnoverRate:        turnover,
	}
}

func TestNewAnalyzerRejectsEmptySeries(t *testing.T) {
	_, err := NewAnalyzer(nil, analyzeConfig())
	assert.ErrorIs(t, err, contract.ErrEmptySeries)
}

func TestCompanyWideTrend(t *testing.T) {
	series := mustSeries(t, []schema.MetricRecord{
		engRecord("2025-01", 100, 10, 5, 30, 0.85, 0.05),
		engRecord("2025-02", 110, 15, 5, 50, 0.85, 0.20),
	})
	analyzer, err := NewAnalyzer(series, analyzeConfig())
	require.NoError(t, err)

	t.Run("one insight per consecutive month pair", func(t *testing.T) {
		insights := analyzer.CompanyWideTrend(schema.MetricHeadcount)
		require.Len(t, insights, 1)

		in := insights[0]
		assert.Equal(t, schema.CompanyWide, in.Scope)
		assert.Equal(t, schema.Month("2025-02"), in.Month)
		assert.Equal(t, schema.Month("2025-01"), in.PriorMonth)
		assert.InDelta(t, 0.10, in.DeltaPercent, 1e-9)
		assert.Equal(t, schema.Improving, in.Direction)
		assert.False(t, in.Undefined)
	})

	t.Run("rising turnover is worsening", func(t *testing.T) {
		insights := analyzer.CompanyWideTrend(schema.MetricTurnover)
		require.Len(t, insights, 1)
		assert.InDelta(t, 3.0, insights[0].DeltaPercent, 1e-9)
		assert.Equal(t, schema.Worsening, insights[0].Direction)
	})

	t.Run("flat metric stays flat", func(t *testing.T) {
		insights := analyzer.CompanyWideTrend(schema.MetricOfferAcceptance)
		require.Len(t, insights, 1)
		assert.Equal(t, schema.Flat, insights[0].Direction)
	})

	t.Run("all metrics in canonical order", func(t *testing.T) {
		all := analyzer.CompanyWideTrends()
		require.Len(t, all, len(schema.AnalyzedMetrics))
		for i, m := range schema.AnalyzedMetrics {
			assert.Equal(t, m, all[i].Metric)
		}
	})
}

func TestCompanyWideTrendUndefinedDelta(t *testing.T) {
	series := mustSeries(t, []schema.MetricRecord{
		engRecord("2025-01", 100, 0, 5, 30, 0.85, 0.05),
		engRecord("2025-02", 103, 8, 5, 31, 0.85, 0.05),
	})
	analyzer, err := NewAnalyzer(series, analyzeConfig())
	require.NoError(t, err)

	insights := analyzer.CompanyWideTrend(schema.MetricNewHires)
	require.Len(t, insights, 1)
	assert.True(t, insights[0].Undefined, "zero prior must mark the delta undefined")
	assert.Zero(t, insights[0].DeltaPercent)
	assert.Equal(t, schema.Flat, insights[0].Direction)
}

func TestCompanyWideAggregation(t *testing.T) {
	// Two departments, very different sizes; rates must be headcount-weighted.
	records := []schema.MetricRecord{
		{Month: "2025-01", Department: schema.Engineering, Headcount: 90, TurnoverRate: 0.10, OfferAcceptanceRate: 0.8, TimeToFillDays: 40, NewHires: 5, Terminations: 2, OpenPositions: 3},
		{Month: "2025-01", Department: schema.Finance, Headcount: 10, TurnoverRate: 0.20, OfferAcceptanceRate: 0.8, TimeToFillDays: 20, NewHires: 1, Terminations: 1, OpenPositions: 1},
	}
	series := mustSeries(t, records)
	analyzer, err := NewAnalyzer(series, analyzeConfig())
	require.NoError(t, err)

	t.Run("counts are summed", func(t *testing.T) {
		values := analyzer.MonthlyValues(schema.MetricHeadcount)
		require.Len(t, values, 1)
		assert.Equal(t, 100.0, values[0])
	})

	t.Run("rates are headcount weighted", func(t *testing.T) {
		values := analyzer.MonthlyValues(schema.MetricTurnover)
		require.Len(t, values, 1)
		assert.InDelta(t, 0.11, values[0], 1e-9) // (90*0.10 + 10*0.20) / 100
	})
}

func TestDepartmentBreakdown(t *testing.T) {
	records := []schema.MetricRecord{
		{Month: "2025-01", Department: schema.Engineering, Headcount: 90, TurnoverRate: 0.05, TimeToFillDays: 40, OfferAcceptanceRate: 0.8},
		{Month: "2025-01", Department: schema.Sales, Headcount: 60, TurnoverRate: 0.02, TimeToFillDays: 30, OfferAcceptanceRate: 0.8},
		{Month: "2025-01", Department: schema.Finance, Headcount: 20, TurnoverRate: 0.02, TimeToFillDays: 35, OfferAcceptanceRate: 0.8},
	}
	series := mustSeries(t, records)
	analyzer, err := NewAnalyzer(series, analyzeConfig())
	require.NoError(t, err)

	t.Run("higher is better ranks descending", func(t *testing.T) {
		ranked := analyzer.DepartmentBreakdown(schema.MetricHeadcount, "2025-01")
		require.Len(t, ranked, 3)
		assert.Equal(t, schema.Engineering, ranked[0].Department)
		assert.Equal(t, 1, ranked[0].Rank)
		assert.Equal(t, schema.Finance, ranked[2].Department)
		assert.Equal(t, 3, ranked[2].Rank)
	})

	t.Run("lower is better ranks ascending with canonical tie-break", func(t *testing.T) {
		ranked := analyzer.DepartmentBreakdown(schema.MetricTurnover, "2025-01")
		require.Len(t, ranked, 3)
		// Sales and Finance tie at 0.02; Sales precedes Finance canonically.
		assert.Equal(t, schema.Sales, ranked[0].Department)
		assert.Equal(t, schema.Finance, ranked[1].Department)
		assert.Equal(t, schema.Engineering, ranked[2].Department)
	})

	t.Run("breakdown rows follow headcount rank", func(t *testing.T) {
		rows := analyzer.BreakdownRows("2025-01")
		require.Len(t, rows, 3)
		assert.Equal(t, 1, rows[0].Rank)
		assert.Equal(t, schema.Engineering, rows[0].Department)
		assert.Equal(t, 90, rows[0].Headcount)
		assert.InDelta(t, 0.05, rows[0].TurnoverRate, 1e-9)
	})
}

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 1, severityRank(0.16, 0.15))
	assert.Equal(t, 2, severityRank(0.24, 0.15))
	assert.Equal(t, 3, severityRank(0.31, 0.15))
	assert.Equal(t, 1, severityRank(1, 0))
}

func TestDetectRisk(t *testing.T) {
	series := mustSeries(t, []schema.MetricRecord{
		engRecord("2025-01", 100, 10, 5, 30, 0.85, 0.05),
		engRecord("2025-02", 110, 15, 5, 50, 0.85, 0.20),
	})
	analyzer, err := NewAnalyzer(series, analyzeConfig())
	require.NoError(t, err)

	flags := analyzer.DetectRisk()
	require.Len(t, flags, 3)

	t.Run("sorted by severity then canonical orders", func(t *testing.T) {
		assert.Equal(t, schema.ReasonSharpWorsening, flags[0].Reason)
		assert.Equal(t, schema.ReasonHighTurnover, flags[1].Reason)
		assert.Equal(t, schema.ReasonSlowTimeToFill, flags[2].Reason)
	})

	t.Run("sharp worsening keeps the biggest movement", func(t *testing.T) {
		sharp := flags[0]
		assert.Equal(t, 3, sharp.Severity) // +300% against a 10% step limit
		assert.Equal(t, schema.MetricTurnover, sharp.Metric)
		assert.InDelta(t, 3.0, sharp.Magnitude, 1e-9)
	})

	t.Run("threshold crossings carry the crossing value", func(t *testing.T) {
		high := flags[1]
		assert.Equal(t, 1, high.Severity) // 0.20 / 0.15 is below the 1.5x band
		assert.InDelta(t, 0.20, high.Magnitude, 1e-9)
		assert.Equal(t, schema.Month("2025-02"), high.Month)

		slow := flags[2]
		assert.Equal(t, 1, slow.Severity)
		assert.InDelta(t, 50.0, slow.Magnitude, 1e-9)
	})
}

func TestDetectRiskDedup(t *testing.T) {
	t.Run("higher severity survives", func(t *testing.T) {
		// Turnover breaches the threshold in two months at different
		// severities; only the severity-2 flag survives for the pair.
		series := mustSeries(t, []schema.MetricRecord{
			engRecord("2025-01", 100, 10, 5, 30, 0.85, 0.05),
			engRecord("2025-02", 100, 10, 5, 30, 0.85, 0.24),
			engRecord("2025-03", 100, 10, 5, 30, 0.85, 0.16),
		})
		analyzer, err := NewAnalyzer(series, analyzeConfig())
		require.NoError(t, err)

		kept := turnoverFlags(analyzer.DetectRisk())
		require.Len(t, kept, 1)
		assert.Equal(t, 2, kept[0].Severity) // 0.24 / 0.15 crosses the 1.5x band
		assert.InDelta(t, 0.24, kept[0].Magnitude, 1e-9)
		assert.Equal(t, schema.Month("2025-02"), kept[0].Month)
	})

	t.Run("equal severity keeps the larger magnitude", func(t *testing.T) {
		series := mustSeries(t, []schema.MetricRecord{
			engRecord("2025-01", 100, 10, 5, 30, 0.85, 0.16),
			engRecord("2025-02", 100, 10, 5, 30, 0.85, 0.18),
		})
		analyzer, err := NewAnalyzer(series, analyzeConfig())
		require.NoError(t, err)

		kept := turnoverFlags(analyzer.DetectRisk())
		require.Len(t, kept, 1)
		assert.Equal(t, 1, kept[0].Severity)
		assert.InDelta(t, 0.18, kept[0].Magnitude, 1e-9)
	})
}

// turnoverFlags filters the high_turnover flags out of a detection result.
func turnoverFlags(flags []schema.RiskFlag) []schema.RiskFlag {
	var out []schema.RiskFlag
	for _, f := range flags {
		if f.Reason == schema.ReasonHighTurnover {
			out = append(out, f)
		}
	}
	return out
}

func TestDetectRiskFirstMonthBreach(t *testing.T) {
	// A breach that only exists in the opening month must still be flagged.
	series := mustSeries(t, []schema.MetricRecord{
		engRecord("2025-01", 100, 10, 5, 30, 0.85, 0.30),
		engRecord("2025-02", 100, 10, 5, 30, 0.85, 0.05),
	})
	analyzer, err := NewAnalyzer(series, analyzeConfig())
	require.NoError(t, err)

	flags := analyzer.DetectRisk()
	require.Len(t, flags, 1)
	assert.Equal(t, schema.ReasonHighTurnover, flags[0].Reason)
	assert.Equal(t, 3, flags[0].Severity) // 0.30 is twice the 0.15 threshold
	assert.Equal(t, schema.Month("2025-01"), flags[0].Month)
}

func TestDetectRiskQuietSeries(t *testing.T) {
	series := mustSeries(t, []schema.MetricRecord{
		engRecord("2025-01", 100, 10, 1, 30, 0.85, 0.01),
		engRecord("2025-02", 101, 10, 1, 30, 0.85, 0.01),
	})
	analyzer, err := NewAnalyzer(series, analyzeConfig())
	require.NoError(t, err)

	assert.Empty(t, analyzer.DetectRisk())
}

func TestDetectRiskDeterminism(t *testing.T) {
	series := mustSeries(t, []schema.MetricRecord{
		engRecord("2025-01", 100, 10, 5, 30, 0.85, 0.05),
		engRecord("2025-02", 110, 15, 5, 50, 0.85, 0.20),
		engRecord("2025-03", 112, 8, 6, 48, 0.84, 0.18),
	})
	analyzer, err := NewAnalyzer(series, analyzeConfig())
	require.NoError(t, err)

	first := analyzer.DetectRisk()
	second := analyzer.DetectRisk()
	assert.Equal(t, first, second)
	assert.Equal(t, analyzer.CompanyWideTrends(), analyzer.CompanyWideTrends())
}
