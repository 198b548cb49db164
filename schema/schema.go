// Package schema has the data model, enums and static tables for all parts
// of hrpulse.
package schema

import (
	"fmt"
	"sort"
)

// MetricRecord is one row of the monthly dataset: every KPI for a single
// (month, department) pair.
type MetricRecord struct {
	Month               Month      `json:"month"`
	Department          Department `json:"department"`
	Headcount           int        `json:"headcount"`             // Employees on payroll at month end
	NewHires            int        `json:"new_hires"`             // Employees who started this month
	Terminations        int        `json:"terminations"`          // Employees who left this month
	OpenPositions       int        `json:"open_positions"`        // Requisitions open at month end
	TimeToFillDays      float64    `json:"time_to_fill_days"`     // Average days from posting to offer acceptance
	OfferAcceptanceRate float64    `json:"offer_acceptance_rate"` // Fraction of offers accepted, in [0,1]
	TurnoverRate        float64    `json:"turnover_rate"`         // Fraction of headcount lost, in [0,1]
}

// Value returns the record's value for the given metric.
func (r MetricRecord) Value(m Metric) float64 {
	switch m {
	case MetricHeadcount:
		return float64(r.Headcount)
	case MetricNewHires:
		return float64(r.NewHires)
	case MetricTerminations:
		return float64(r.Terminations)
	case MetricOpenPositions:
		return float64(r.OpenPositions)
	case MetricTimeToFill:
		return r.TimeToFillDays
	case MetricOfferAcceptance:
		return r.OfferAcceptanceRate
	case MetricTurnover:
		return r.TurnoverRate
	default:
		return 0
	}
}

// MetricSeries is an ordered, immutable collection of MetricRecord keyed by
// (month, department). Records are held chronologically, departments in
// canonical order within each month. Built once per run, never mutated.
type MetricSeries struct {
	records     []MetricRecord
	months      []Month
	departments []Department
	index       map[Month]map[Department]int
}

// NewMetricSeries builds a series from records. The input may arrive in any
// order; the constructor sorts it into the canonical (month, department)
// order. It rejects duplicate keys and months that do not all cover the same
// department set, since a ragged series would make month-over-month
// comparisons meaningless.
func NewMetricSeries(records []MetricRecord) (*MetricSeries, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("metric series: no records")
	}

	sorted := make([]MetricRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Month != sorted[j].Month {
			return sorted[i].Month.Before(sorted[j].Month)
		}
		return DepartmentOrder(sorted[i].Department) < DepartmentOrder(sorted[j].Department)
	})

	index := make(map[Month]map[Department]int)
	var months []Month
	for i, rec := range sorted {
		byDept, ok := index[rec.Month]
		if !ok {
			byDept = make(map[Department]int)
			index[rec.Month] = byDept
			months = append(months, rec.Month)
		}
		if _, dup := byDept[rec.Department]; dup {
			return nil, fmt.Errorf("metric series: duplicate row for %s / %s", rec.Month, rec.Department)
		}
		byDept[rec.Department] = i
	}

	// Department set is defined by the first month; every month must match.
	var departments []Department
	for _, d := range AllDepartments {
		if _, ok := index[months[0]][d]; ok {
			departments = append(departments, d)
		}
	}
	if len(departments) != len(index[months[0]]) {
		return nil, fmt.Errorf("metric series: unknown department in month %s", months[0])
	}
	for _, m := range months {
		if len(index[m]) != len(departments) {
			return nil, fmt.Errorf("metric series: month %s has %d departments, want %d", m, len(index[m]), len(departments))
		}
		for _, d := range departments {
			if _, ok := index[m][d]; !ok {
				return nil, fmt.Errorf("metric series: month %s is missing department %s", m, d)
			}
		}
	}

	return &MetricSeries{
		records:     sorted,
		months:      months,
		departments: departments,
		index:       index,
	}, nil
}

// Len returns the number of records in the series.
func (s *MetricSeries) Len() int { return len(s.records) }

// Records returns all rows in canonical order. Callers must not mutate the
// returned slice.
func (s *MetricSeries) Records() []MetricRecord { return s.records }

// Months returns the ordered list of months covered by the series.
func (s *MetricSeries) Months() []Month { return s.months }

// Departments returns the departments present, in canonical order.
func (s *MetricSeries) Departments() []Department { return s.departments }

// At returns the record for a (month, department) pair.
func (s *MetricSeries) At(m Month, d Department) (MetricRecord, bool) {
	byDept, ok := s.index[m]
	if !ok {
		return MetricRecord{}, false
	}
	i, ok := byDept[d]
	if !ok {
		return MetricRecord{}, false
	}
	return s.records[i], true
}

// MonthRecords returns all rows for one month, departments in canonical order.
func (s *MetricSeries) MonthRecords(m Month) []MetricRecord {
	byDept, ok := s.index[m]
	if !ok {
		return nil
	}
	out := make([]MetricRecord, 0, len(byDept))
	for _, d := range s.departments {
		out = append(out, s.records[byDept[d]])
	}
	return out
}

// CompanyWide identifies company-wide scope in a TrendInsight.
const CompanyWide Department = "Company-wide"

// TrendInsight is one derived month-over-month movement for a metric.
// Immutable; recomputed fresh from the full series on every run.
type TrendInsight struct {
	Metric       Metric     `json:"metric"`
	Scope        Department `json:"scope"` // a department, or CompanyWide
	Month        Month      `json:"month"`
	PriorMonth   Month      `json:"prior_month"`
	Prior        float64    `json:"prior"`
	Current      float64    `json:"current"`
	DeltaAbs     float64    `json:"delta_absolute"`
	DeltaPercent float64    `json:"delta_percent"` // fraction, e.g. 0.10 = +10%
	Undefined    bool       `json:"undefined"`     // prior period was zero; DeltaPercent not meaningful
	Direction    Direction  `json:"direction"`
}

// RiskFlag is a derived warning that a department crossed a threshold or
// worsened sharply between consecutive months.
type RiskFlag struct {
	Department Department `json:"department"`
	Reason     ReasonCode `json:"reason_code"`
	Severity   int        `json:"severity"`  // rank, higher is worse (1-3)
	Magnitude  float64    `json:"magnitude"` // metric value or worsening fraction behind the flag
	Metric     Metric     `json:"metric"`
	Month      Month      `json:"month"`
}

// DepartmentValue is one department's value and rank for a metric in a
// single month. Rank 1 is the best value under the metric's polarity.
type DepartmentValue struct {
	Department Department `json:"department"`
	Value      float64    `json:"value"`
	Rank       int        `json:"rank"`
}

// BreakdownRow is one line of the department breakdown table: the latest
// month's key figures for a department, ranked by headcount.
type BreakdownRow struct {
	Rank           int        `json:"rank"`
	Department     Department `json:"department"`
	Headcount      int        `json:"headcount"`
	TurnoverRate   float64    `json:"turnover_rate"`
	TimeToFillDays float64    `json:"time_to_fill_days"`
}

// Narrative is the formatter output consumed by the report assembler.
type Narrative struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
}
