package schema

import "math"

// ClassifyDirection maps a fractional month-over-month delta to a direction
// using a symmetric dead-band and the metric's polarity. Deltas inside the
// dead-band are flat regardless of polarity.
func ClassifyDirection(m Metric, deltaPercent, deadBand float64) Direction {
	if math.Abs(deltaPercent) < deadBand {
		return Flat
	}
	rising := deltaPercent > 0
	if MetricPolarity(m) == HigherIsBetter {
		if rising {
			return Improving
		}
		return Worsening
	}
	if rising {
		return Worsening
	}
	return Improving
}

// PercentChange returns (curr-prev)/prev and whether the change is defined.
// A zero previous value yields an undefined change, never a division fault.
func PercentChange(prev, curr float64) (float64, bool) {
	if prev == 0 {
		return 0, false
	}
	return (curr - prev) / prev, true
}
