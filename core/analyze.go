package core

import (
	"math"
	"sort"

	"github.com/hrpulse/hrpulse/internal/contract"
	"github.com/hrpulse/hrpulse/schema"
)

// Analyzer derives trends and risk flags from a complete metric series.
// It is a pure function of its inputs: no external state, no randomness,
// the same series always yields byte-identical output.
type Analyzer struct {
	series *schema.MetricSeries
	cfg    *contract.Config
}

// NewAnalyzer wraps a series for analysis.
func NewAnalyzer(series *schema.MetricSeries, cfg *contract.Config) (*Analyzer, error) {
	if series == nil || series.Len() == 0 {
		return nil, contract.ErrEmptySeries
	}
	return &Analyzer{series: series, cfg: cfg}, nil
}

// Series exposes the underlying metric series.
func (a *Analyzer) Series() *schema.MetricSeries { return a.series }

// aggregateMonth collapses one month across departments: counts are summed,
// rates are averaged weighted by department headcount. A month with zero
// total headcount falls back to a plain mean so rates stay defined.
func (a *Analyzer) aggregateMonth(metric schema.Metric, month schema.Month) float64 {
	records := a.series.MonthRecords(month)
	if len(records) == 0 {
		return 0
	}

	if schema.IsCountMetric(metric) {
		var sum float64
		for _, r := range records {
			sum += r.Value(metric)
		}
		return sum
	}

	var weighted, totalHC float64
	for _, r := range records {
		weighted += r.Value(metric) * float64(r.Headcount)
		totalHC += float64(r.Headcount)
	}
	if totalHC == 0 {
		var sum float64
		for _, r := range records {
			sum += r.Value(metric)
		}
		return sum / float64(len(records))
	}
	return weighted / totalHC
}

// CompanyWideTrend aggregates a metric across departments per month and
// returns one insight per consecutive month pair: exactly len(months)-1
// entries. A zero previous value yields an insight marked Undefined instead
// of a division fault.
func (a *Analyzer) CompanyWideTrend(metric schema.Metric) []schema.TrendInsight {
	months := a.series.Months()
	insights := make([]schema.TrendInsight, 0, max(0, len(months)-1))

	for i := 1; i < len(months); i++ {
		prev := a.aggregateMonth(metric, months[i-1])
		curr := a.aggregateMonth(metric, months[i])

		insight := schema.TrendInsight{
			Metric:     metric,
			Scope:      schema.CompanyWide,
			Month:      months[i],
			PriorMonth: months[i-1],
			Prior:      prev,
			Current:    curr,
			DeltaAbs:   curr - prev,
			Direction:  schema.Flat,
		}

		if pct, ok := schema.PercentChange(prev, curr); ok {
			insight.DeltaPercent = pct
			insight.Direction = schema.ClassifyDirection(metric, pct, a.cfg.DeadBand)
		} else {
			insight.Undefined = true
		}
		insights = append(insights, insight)
	}
	return insights
}

// CompanyWideTrends returns insights for every analyzed metric, metrics in
// canonical order, months ascending within each metric.
func (a *Analyzer) CompanyWideTrends() []schema.TrendInsight {
	var all []schema.TrendInsight
	for _, m := range schema.AnalyzedMetrics {
		all = append(all, a.CompanyWideTrend(m)...)
	}
	return all
}

// MonthlyValues returns the company-wide aggregate of a metric for every
// month, aligned with Series().Months().
func (a *Analyzer) MonthlyValues(metric schema.Metric) []float64 {
	months := a.series.Months()
	values := make([]float64, len(months))
	for i, m := range months {
		values[i] = a.aggregateMonth(metric, m)
	}
	return values
}

// DepartmentBreakdown returns each department's value for a metric in one
// month, ranked best-first under the metric's polarity. Ties keep the
// canonical department order, so ranking is stable and total.
func (a *Analyzer) DepartmentBreakdown(metric schema.Metric, month schema.Month) []schema.DepartmentValue {
	records := a.series.MonthRecords(month)
	values := make([]schema.DepartmentValue, 0, len(records))
	for _, r := range records {
		values = append(values, schema.DepartmentValue{
			Department: r.Department,
			Value:      r.Value(metric),
		})
	}

	higherBetter := schema.MetricPolarity(metric) == schema.HigherIsBetter
	sort.SliceStable(values, func(i, j int) bool {
		if values[i].Value != values[j].Value {
			if higherBetter {
				return values[i].Value > values[j].Value
			}
			return values[i].Value < values[j].Value
		}
		return schema.DepartmentOrder(values[i].Department) < schema.DepartmentOrder(values[j].Department)
	})

	for i := range values {
		values[i].Rank = i + 1
	}
	return values
}

// BreakdownRows assembles the department breakdown table for one month:
// headcount rank plus the turnover and time-to-fill figures per department.
func (a *Analyzer) BreakdownRows(month schema.Month) []schema.BreakdownRow {
	ranked := a.DepartmentBreakdown(schema.MetricHeadcount, month)
	rows := make([]schema.BreakdownRow, 0, len(ranked))
	for _, dv := range ranked {
		rec, ok := a.series.At(month, dv.Department)
		if !ok {
			continue
		}
		rows = append(rows, schema.BreakdownRow{
			Rank:           dv.Rank,
			Department:     dv.Department,
			Headcount:      rec.Headcount,
			TurnoverRate:   rec.TurnoverRate,
			TimeToFillDays: rec.TimeToFillDays,
		})
	}
	return rows
}

// Severity rank bands, expressed as multiples of the crossed threshold.
const (
	severityCriticalFactor = 2.0
	severityHighFactor     = 1.5
)

// severityRank maps how far a value exceeded its threshold to a rank:
// 3 at twice the threshold or more, 2 at 1.5x, otherwise 1.
func severityRank(value, threshold float64) int {
	if threshold <= 0 {
		return 1
	}
	ratio := value / threshold
	switch {
	case ratio >= severityCriticalFactor:
		return 3
	case ratio >= severityHighFactor:
		return 2
	default:
		return 1
	}
}

// riskKey deduplicates flags per (department, reason).
type riskKey struct {
	dept   schema.Department
	reason schema.ReasonCode
}

// DetectRisk scans every department and flags turnover or time-to-fill
// threshold breaches in any month, plus metrics that worsened beyond the
// step-worsen fraction between consecutive months. Flags are deduplicated
// by (department, reason) keeping
// the highest severity, then ordered by severity descending with department
// and reason order as tie-breaks.
func (a *Analyzer) DetectRisk() []schema.RiskFlag {
	months := a.series.Months()
	best := make(map[riskKey]schema.RiskFlag)

	keep := func(f schema.RiskFlag) {
		k := riskKey{f.Department, f.Reason}
		cur, ok := best[k]
		if !ok || f.Severity > cur.Severity || (f.Severity == cur.Severity && f.Magnitude > cur.Magnitude) {
			best[k] = f
		}
	}

	for _, dept := range a.series.Departments() {
		for i, month := range months {
			curr, _ := a.series.At(month, dept)

			// Threshold breaches are absolute per month, so the first
			// month is checked too. Step-worsen needs a prior month.
			if curr.TurnoverRate > a.cfg.TurnoverMax {
				keep(schema.RiskFlag{
					Department: dept,
					Reason:     schema.ReasonHighTurnover,
					Severity:   severityRank(curr.TurnoverRate, a.cfg.TurnoverMax),
					Magnitude:  curr.TurnoverRate,
					Metric:     schema.MetricTurnover,
					Month:      month,
				})
			}

			if curr.TimeToFillDays > a.cfg.TimeToFill {
				keep(schema.RiskFlag{
					Department: dept,
					Reason:     schema.ReasonSlowTimeToFill,
					Severity:   severityRank(curr.TimeToFillDays, a.cfg.TimeToFill),
					Magnitude:  curr.TimeToFillDays,
					Metric:     schema.MetricTimeToFill,
					Month:      month,
				})
			}

			if i == 0 {
				continue
			}
			prev, _ := a.series.At(months[i-1], dept)

			for _, metric := range schema.AnalyzedMetrics {
				pct, ok := schema.PercentChange(prev.Value(metric), curr.Value(metric))
				if !ok {
					continue
				}
				if schema.ClassifyDirection(metric, pct, a.cfg.DeadBand) != schema.Worsening {
					continue
				}
				if math.Abs(pct) <= a.cfg.StepWorsen {
					continue
				}
				keep(schema.RiskFlag{
					Department: dept,
					Reason:     schema.ReasonSharpWorsening,
					Severity:   severityRank(math.Abs(pct), a.cfg.StepWorsen),
					Magnitude:  math.Abs(pct),
					Metric:     metric,
					Month:      month,
				})
			}
		}
	}

	flags := make([]schema.RiskFlag, 0, len(best))
	for _, f := range best {
		flags = append(flags, f)
	}
	sort.SliceStable(flags, func(i, j int) bool {
		if flags[i].Severity != flags[j].Severity {
			return flags[i].Severity > flags[j].Severity
		}
		if flags[i].Department != flags[j].Department {
			return schema.DepartmentOrder(flags[i].Department) < schema.DepartmentOrder(flags[j].Department)
		}
		return schema.ReasonOrder(flags[i].Reason) < schema.ReasonOrder(flags[j].Reason)
	})
	return flags
}
