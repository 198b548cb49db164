package core

import (
	"math"
	"math/rand"

	"github.com/hrpulse/hrpulse/internal/contract"
	"github.com/hrpulse/hrpulse/schema"
)

// Department-specific generation parameters. Baselines and drifts are tuned
// so the synthetic dataset looks like a mid-size company with a growing
// engineering org and small G&A teams.
var (
	baselineHeadcount = map[schema.Department]float64{
		schema.Engineering:     95,
		schema.Sales:           62,
		schema.Operations:      54,
		schema.HumanResources:  18,
		schema.Finance:         21,
		schema.CustomerSuccess: 37,
	}

	monthlyGrowth = map[schema.Department]float64{
		schema.Engineering:     1.6,
		schema.Sales:           1.0,
		schema.Operations:      0.7,
		schema.HumanResources:  0.2,
		schema.Finance:         0.15,
		schema.CustomerSuccess: 0.8,
	}

	baseTurnover = map[schema.Department]float64{
		schema.Engineering:     0.011,
		schema.Sales:           0.019,
		schema.Operations:      0.015,
		schema.HumanResources:  0.010,
		schema.Finance:         0.009,
		schema.CustomerSuccess: 0.017,
	}

	baseTimeToFill = map[schema.Department]float64{
		schema.Engineering:     47,
		schema.Sales:           34,
		schema.Operations:      31,
		schema.HumanResources:  29,
		schema.Finance:         36,
		schema.CustomerSuccess: 26,
	}

	baseOfferAcceptance = map[schema.Department]float64{
		schema.Engineering:     0.82,
		schema.Sales:           0.79,
		schema.Operations:      0.84,
		schema.HumanResources:  0.86,
		schema.Finance:         0.81,
		schema.CustomerSuccess: 0.83,
	}
)

// Sampling bounds and seasonal adjustments.
const (
	minHeadcount       = 8
	minTimeToFillDays  = 15.0
	turnoverFloor      = 0.004
	turnoverCeiling    = 0.05
	acceptanceFloor    = 0.62
	acceptanceCeiling  = 0.95
	baseHireRate       = 0.035
	hiringBoostFactor  = 1.2 // Mar, Apr, Sep, Oct
	hiringSlowFactor   = 0.8 // all other months
	summerTurnoverBump = 0.002
)

// bounded clamps a value into [low, high].
func bounded(v, low, high float64) float64 {
	return math.Max(low, math.Min(high, v))
}

// isHiringSeason reports whether a month gets the seasonal hiring boost.
func isHiringSeason(monthNumber int) bool {
	switch monthNumber {
	case 3, 4, 9, 10:
		return true
	}
	return false
}

// Generate produces a synthetic monthly metric series for the configured
// month range and department list. The same seed always produces the same
// series. Each department's headcount satisfies
//
//	headcount_t = headcount_{t-1} + new_hires_t - terminations_t
//
// exactly for every month after the first.
func Generate(cfg *contract.Config) (*schema.MetricSeries, error) {
	if len(cfg.Departments) == 0 {
		return nil, contract.ErrNoDepartments
	}
	if cfg.Months <= 0 {
		return nil, contract.ErrNonPositiveMonths
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	months := schema.MonthsFrom(cfg.StartMonth, cfg.Months)
	prevHeadcount := make(map[schema.Department]int, len(cfg.Departments))

	records := make([]schema.MetricRecord, 0, len(months)*len(cfg.Departments))
	for _, month := range months {
		hiringFactor := hiringSlowFactor
		if isHiringSeason(month.MonthNumber()) {
			hiringFactor = hiringBoostFactor
		}

		for _, dept := range cfg.Departments {
			rec := sampleRecord(rng, dept, month, hiringFactor, prevHeadcount[dept])
			prevHeadcount[dept] = rec.Headcount
			records = append(records, rec)
		}
	}

	return schema.NewMetricSeries(records)
}

// sampleRecord draws one (month, department) row. prev is the department's
// headcount for the previous month, or 0 for the first generated month.
func sampleRecord(rng *rand.Rand, dept schema.Department, month schema.Month, hiringFactor float64, prev int) schema.MetricRecord {
	monthNum := month.MonthNumber()

	if prev == 0 {
		// First month seeds headcount from the baseline; there is no prior
		// month to reconcile against.
		hc := baselineHeadcount[dept] + rng.NormFloat64()*1.2
		prev = int(math.Round(math.Max(minHeadcount, hc)))
	}

	// Turnover rate drifts around the department base with a summer bump.
	turnover := baseTurnover[dept] + rng.NormFloat64()*0.0035
	if monthNum == 7 || monthNum == 8 {
		turnover += summerTurnoverBump
	}
	turnover = bounded(turnover, turnoverFloor, turnoverCeiling)

	terminations := int(math.Round(math.Max(0, float64(prev)*turnover+rng.NormFloat64()*0.6)))

	// Hires track the hiring rate plus the department's structural growth.
	hires := int(math.Round(math.Max(0,
		float64(prev)*baseHireRate*hiringFactor+monthlyGrowth[dept]+rng.NormFloat64())))

	headcount := prev + hires - terminations
	if headcount < minHeadcount {
		// Backfill hires to hold the floor without breaking the identity.
		hires += minHeadcount - headcount
		headcount = minHeadcount
	}

	openPositions := int(math.Round(math.Max(0,
		float64(hires)*(1.1+rng.Float64()*1.1)+rng.NormFloat64()*1.2)))

	ttf := baseTimeToFill[dept] + rng.NormFloat64()*4
	if monthNum == 10 || monthNum == 11 {
		ttf--
	}
	ttf = math.Max(minTimeToFillDays, math.Round(ttf))

	acceptance := baseOfferAcceptance[dept] + rng.NormFloat64()*0.03
	if monthNum == 6 || monthNum == 7 {
		acceptance -= 0.015
	}
	acceptance = bounded(acceptance, acceptanceFloor, acceptanceCeiling)

	// The recorded rate mirrors the realized terminations so counts and
	// rates in a row never contradict each other.
	realizedTurnover := turnover
	if prev > 0 {
		realizedTurnover = bounded(float64(terminations)/float64(prev), 0, 1)
	}

	return schema.MetricRecord{
		Month:               month,
		Department:          dept,
		Headcount:           headcount,
		NewHires:            hires,
		Terminations:        terminations,
		OpenPositions:       openPositions,
		TimeToFillDays:      ttf,
		OfferAcceptanceRate: math.Round(acceptance*1000) / 1000,
		TurnoverRate:        math.Round(realizedTurnover*10000) / 10000,
	}
}
