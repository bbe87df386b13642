package format

import "lhcompare/compare"

const (
	VerdictImproved  = "improved"
	VerdictRegressed = "regressed"
	VerdictMixed     = "mixed"
	VerdictUnchanged = "unchanged"
)

// Verdict summarizes a page: regressed if any metric regressed and none improved,
// improved in the opposite case, mixed when both happened.
func Verdict(record compare.Record) string {
	improved, regressed := 0, 0
	for _, res := range record {
		switch {
		case res.IsRegression:
			regressed++
		case res.Diff != 0:
			improved++
		}
	}
	switch {
	case improved > 0 && regressed == 0:
		return VerdictImproved
	case regressed > 0 && improved == 0:
		return VerdictRegressed
	case improved > 0 && regressed > 0:
		return VerdictMixed
	default:
		return VerdictUnchanged
	}
}

// HasRegression reports whether any metric of any page regressed.
func HasRegression(results compare.Results) bool {
	for _, record := range results {
		for _, res := range record {
			if res.IsRegression {
				return true
			}
		}
	}
	return false
}

type threshold struct {
	good float64 // values below this are "good"
	ni   float64 // values at or below this are "needs_improvement"; above is "poor"
}

// vitalsThresholds holds the Lighthouse / Web Vitals thresholds per output key.
var vitalsThresholds = map[string]threshold{
	"lcp":        {good: 2500, ni: 4000},
	"fcp":        {good: 1800, ni: 3000},
	"cls":        {good: 0.1, ni: 0.25},
	"tbt":        {good: 200, ni: 600},
	"speedIndex": {good: 3400, ni: 5800},
}

// Rating returns "good", "needs_improvement" or "poor" for a metric value,
// or "" for metrics without thresholds.
func Rating(key string, value float64) string {
	t, ok := vitalsThresholds[key]
	if !ok {
		return ""
	}
	if value < t.good {
		return "good"
	}
	if value <= t.ni {
		return "needs_improvement"
	}
	return "poor"
}
