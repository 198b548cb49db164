package schema

// Custom string types for type safety.
type (
	// Department identifies one of the tracked departments.
	Department string

	// Metric identifies a tracked KPI column.
	Metric string

	// Direction classifies a month-over-month movement.
	Direction string

	// Polarity indicates whether a higher metric value is good or bad.
	Polarity int

	// ReasonCode identifies why a department was flagged as a risk.
	ReasonCode string

	// OutputMode represents the format of console output.
	OutputMode string
)

// All departments tracked by the pipeline. The slice order is the canonical
// department order used for deterministic tie-breaks everywhere.
const (
	Engineering     Department = "Engineering"
	Sales           Department = "Sales"
	Operations      Department = "Operations"
	HumanResources  Department = "HR"
	Finance         Department = "Finance"
	CustomerSuccess Department = "Customer Success"
)

// AllDepartments is the canonical department order.
var AllDepartments = []Department{
	Engineering,
	Sales,
	Operations,
	HumanResources,
	Finance,
	CustomerSuccess,
}

// All metric columns in the tabular dataset.
const (
	MetricHeadcount       Metric = "headcount"
	MetricNewHires        Metric = "new_hires"
	MetricTerminations    Metric = "terminations"
	MetricOpenPositions   Metric = "open_positions"
	MetricTimeToFill      Metric = "time_to_fill_days"
	MetricOfferAcceptance Metric = "offer_acceptance_rate"
	MetricTurnover        Metric = "turnover_rate"
)

// AnalyzedMetrics lists the metrics the trend analyzer operates on.
// Open positions are generated and exported but not trended.
var AnalyzedMetrics = []Metric{
	MetricHeadcount,
	MetricNewHires,
	MetricTerminations,
	MetricTimeToFill,
	MetricOfferAcceptance,
	MetricTurnover,
}

// Movement directions.
const (
	Improving Direction = "improving"
	Worsening Direction = "worsening"
	Flat      Direction = "flat"
)

// Polarity values.
const (
	HigherIsBetter Polarity = 1
	LowerIsBetter  Polarity = -1
)

// Risk reason codes, in canonical order (used as the final sort tie-break).
const (
	ReasonHighTurnover   ReasonCode = "high_turnover"
	ReasonSlowTimeToFill ReasonCode = "slow_time_to_fill"
	ReasonSharpWorsening ReasonCode = "sharp_worsening"
)

// AllReasonCodes is the canonical reason code order.
var AllReasonCodes = []ReasonCode{
	ReasonHighTurnover,
	ReasonSlowTimeToFill,
	ReasonSharpWorsening,
}

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// metricPolarities is the explicit per-metric polarity table. Direction
// classification reads this table and never infers polarity from values.
var metricPolarities = map[Metric]Polarity{
	MetricHeadcount:       HigherIsBetter,
	MetricNewHires:        HigherIsBetter,
	MetricOpenPositions:   HigherIsBetter,
	MetricOfferAcceptance: HigherIsBetter,
	MetricTerminations:    LowerIsBetter,
	MetricTimeToFill:      LowerIsBetter,
	MetricTurnover:        LowerIsBetter,
}

// MetricPolarity returns the polarity for a metric. Unknown metrics are
// treated as higher-is-better, which only matters for display ordering.
func MetricPolarity(m Metric) Polarity {
	if p, ok := metricPolarities[m]; ok {
		return p
	}
	return HigherIsBetter
}

// countMetrics marks metrics aggregated company-wide by summation. The
// remaining analyzed metrics are rates, aggregated as a headcount-weighted
// average.
var countMetrics = map[Metric]struct{}{
	MetricHeadcount:     {},
	MetricNewHires:      {},
	MetricTerminations:  {},
	MetricOpenPositions: {},
}

// IsCountMetric reports whether a metric aggregates by summation.
func IsCountMetric(m Metric) bool {
	_, ok := countMetrics[m]
	return ok
}

// departmentIndex maps each department to its canonical position.
var departmentIndex = func() map[Department]int {
	idx := make(map[Department]int, len(AllDepartments))
	for i, d := range AllDepartments {
		idx[d] = i
	}
	return idx
}()

// DepartmentOrder returns the canonical position of a department, or
// len(AllDepartments) for departments outside the known set so that unknown
// values sort last but still deterministically.
func DepartmentOrder(d Department) int {
	if i, ok := departmentIndex[d]; ok {
		return i
	}
	return len(AllDepartments)
}

// reasonIndex maps each reason code to its canonical position.
var reasonIndex = func() map[ReasonCode]int {
	idx := make(map[ReasonCode]int, len(AllReasonCodes))
	for i, r := range AllReasonCodes {
		idx[r] = i
	}
	return idx
}()

// ReasonOrder returns the canonical position of a reason code.
func ReasonOrder(r ReasonCode) int {
	if i, ok := reasonIndex[r]; ok {
		return i
	}
	return len(AllReasonCodes)
}
