package core

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hrpulse/hrpulse/internal/contract"
	"github.com/hrpulse/hrpulse/schema"
)

// metricRank gives each analyzed metric its canonical position for
// deterministic tie-breaks when two trends have the same magnitude.
var metricRank = func() map[schema.Metric]int {
	idx := make(map[schema.Metric]int, len(schema.AnalyzedMetrics))
	for i, m := range schema.AnalyzedMetrics {
		idx[m] = i
	}
	return idx
}()

// BuildNarrative turns analyzer output into the executive summary paragraph
// and the recommendations list. Output is pure template substitution over
// static tables: the same insights and flags always produce the same text.
func BuildNarrative(insights []schema.TrendInsight, flags []schema.RiskFlag, cfg *contract.Config) schema.Narrative {
	return schema.Narrative{
		Summary:         buildSummary(insights, cfg.TopTrends),
		Recommendations: buildRecommendations(flags, cfg),
	}
}

// buildSummary composes one paragraph from the top trends of the latest
// month, ranked by absolute delta magnitude. Undefined deltas are skipped:
// a movement from zero has no meaningful percentage to report.
func buildSummary(insights []schema.TrendInsight, topTrends int) string {
	var latest schema.Month
	for _, in := range insights {
		if latest == "" || latest.Before(in.Month) {
			latest = in.Month
		}
	}
	if latest == "" {
		return ""
	}

	var candidates []schema.TrendInsight
	for _, in := range insights {
		if in.Month == latest && in.Scope == schema.CompanyWide && !in.Undefined {
			candidates = append(candidates, in)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		mi := math.Abs(candidates[i].DeltaPercent)
		mj := math.Abs(candidates[j].DeltaPercent)
		if mi != mj {
			return mi > mj
		}
		return metricRank[candidates[i].Metric] < metricRank[candidates[j].Metric]
	})
	if len(candidates) > topTrends {
		candidates = candidates[:topTrends]
	}

	var sentences []string
	for i, in := range candidates {
		sentences = append(sentences, trendSentence(in, i == 0, latest))
	}
	return strings.Join(sentences, " ")
}

// trendSentence renders one company-wide movement through the fixed phrase
// tables in schema.
func trendSentence(in schema.TrendInsight, first bool, latest schema.Month) string {
	name := schema.MetricDisplayName(in.Metric)
	verb := schema.DirectionVerb(in.Direction)
	pct := math.Abs(in.DeltaPercent) * 100

	var body string
	if in.Direction == schema.Flat {
		body = fmt.Sprintf("%s %s at %s (%+.1f%% month-over-month)",
			name, verb, formatMetricValue(in.Metric, in.Current), in.DeltaPercent*100)
	} else {
		body = fmt.Sprintf("%s %s %.1f%% month-over-month (%s to %s)",
			name, verb, pct,
			formatMetricValue(in.Metric, in.Prior),
			formatMetricValue(in.Metric, in.Current))
	}

	if first {
		return fmt.Sprintf("As of %s, company-wide %s.", latest.Label(), body)
	}
	return fmt.Sprintf("%s.", strings.ToUpper(body[:1])+body[1:])
}

// formatMetricValue renders a metric value with units appropriate for the
// narrative: rates as percentages, days with a unit, counts as integers.
func formatMetricValue(m schema.Metric, v float64) string {
	switch m {
	case schema.MetricTurnover, schema.MetricOfferAcceptance:
		return fmt.Sprintf("%.1f%%", v*100)
	case schema.MetricTimeToFill:
		return fmt.Sprintf("%.1f days", v)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// buildRecommendations emits one recommendation per distinct reason code
// among the top-N flags, using the fixed template table with department and
// magnitude interpolated. Flags are assumed pre-sorted by the analyzer.
func buildRecommendations(flags []schema.RiskFlag, cfg *contract.Config) []string {
	limit := min(cfg.TopFlags, len(flags))
	seen := make(map[schema.ReasonCode]bool, limit)

	var recs []string
	for _, f := range flags[:limit] {
		if seen[f.Reason] {
			continue
		}
		seen[f.Reason] = true
		recs = append(recs, renderRecommendation(f, cfg))
	}
	return recs
}

// renderRecommendation fills a reason code template with the flag's
// department, magnitude and the threshold that was crossed. Rates are
// shown as percentages, day counts as-is.
func renderRecommendation(f schema.RiskFlag, cfg *contract.Config) string {
	tmpl := schema.RecommendationTemplate(f.Reason)
	switch f.Reason {
	case schema.ReasonHighTurnover:
		return fmt.Sprintf(tmpl, f.Department, f.Magnitude*100, cfg.TurnoverMax*100)
	case schema.ReasonSlowTimeToFill:
		return fmt.Sprintf(tmpl, f.Department, f.Magnitude, cfg.TimeToFill)
	case schema.ReasonSharpWorsening:
		return fmt.Sprintf(tmpl, f.Department, f.Magnitude*100, cfg.StepWorsen*100)
	default:
		return fmt.Sprintf(tmpl, f.Department, f.Magnitude, 0.0)
	}
}
