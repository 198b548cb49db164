package schema

// Metric display names used in generated narrative text. Explicit table so
// narrative wording is fixed and auditable.
var metricDisplayNames = map[Metric]string{
	MetricHeadcount:       "headcount",
	MetricNewHires:        "new hires",
	MetricTerminations:    "terminations",
	MetricOpenPositions:   "open positions",
	MetricTimeToFill:      "time-to-fill",
	MetricOfferAcceptance: "offer acceptance",
	MetricTurnover:        "turnover",
}

// MetricDisplayName returns the narrative name for a metric.
func MetricDisplayName(m Metric) string {
	if name, ok := metricDisplayNames[m]; ok {
		return name
	}
	return string(m)
}

// Direction verbs used when composing trend sentences.
var directionVerbs = map[Direction]string{
	Improving: "improved",
	Worsening: "worsened",
	Flat:      "held flat",
}

// DirectionVerb returns the past-tense verb for a direction.
func DirectionVerb(d Direction) string {
	if v, ok := directionVerbs[d]; ok {
		return v
	}
	return string(d)
}

// RecommendationTemplate returns the fixed recommendation template for a
// reason code. Templates interpolate, in order: department name, flag
// magnitude, and the configured threshold. Templates are an enumerated
// mapping rather than runtime string dispatch so the formatter output stays
// reproducible for compliance review.
func RecommendationTemplate(code ReasonCode) string {
	switch code {
	case ReasonHighTurnover:
		return "Launch targeted retention interventions in %s: turnover reached %.1f%%, above the %.1f%% alert threshold."
	case ReasonSlowTimeToFill:
		return "Accelerate the hiring pipeline for %s: time-to-fill averaged %.0f days against a %.0f-day target."
	case ReasonSharpWorsening:
		return "Review %s staffing and workload plans: a core metric worsened %.1f%% month-over-month, beyond the %.0f%% step limit."
	default:
		return "Investigate flagged conditions in %s (magnitude %.2f, threshold %.2f)."
	}
}
