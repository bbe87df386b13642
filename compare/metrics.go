package compare

import "slices"

// MetricKind tells where a metric lives inside a report.
type MetricKind int

const (
	// KindCategory values are category scores in [0,1], reported on a 0-100 scale.
	KindCategory MetricKind = iota
	// KindAudit values are audit numericValues, already in output units.
	KindAudit
)

func (k MetricKind) String() string {
	switch k {
	case KindCategory:
		return "category"
	case KindAudit:
		return "audit"
	default:
		return "unknown"
	}
}

// MetricDefinition describes one tracked metric. OutputKey names it in a Record,
// SourceKey names the category or audit in the report. Precision is the number
// of decimal digits kept before and after differencing.
type MetricDefinition struct {
	OutputKey      string
	SourceKey      string
	Kind           MetricKind
	Precision      int
	HigherIsBetter bool
}

// definitions is the single source of truth for every metric the engine knows.
// Order is the order metrics are processed and listed.
var definitions = []MetricDefinition{
	{OutputKey: "performance", SourceKey: "performance", Kind: KindCategory, HigherIsBetter: true},
	{OutputKey: "seo", SourceKey: "seo", Kind: KindCategory, HigherIsBetter: true},
	{OutputKey: "accessibility", SourceKey: "accessibility", Kind: KindCategory, HigherIsBetter: true},
	{OutputKey: "bestPractices", SourceKey: "best-practices", Kind: KindCategory, HigherIsBetter: true},
	{OutputKey: "lcp", SourceKey: "largest-contentful-paint", Kind: KindAudit},
	{OutputKey: "fcp", SourceKey: "first-contentful-paint", Kind: KindAudit},
	{OutputKey: "tbt", SourceKey: "total-blocking-time", Kind: KindAudit},
	{OutputKey: "cls", SourceKey: "cumulative-layout-shift", Kind: KindAudit, Precision: 3},
	{OutputKey: "speedIndex", SourceKey: "speed-index", Kind: KindAudit},
}

// Definitions returns a copy of the metric table.
func Definitions() []MetricDefinition {
	return slices.Clone(definitions)
}

// Lookup finds a metric by its output key.
func Lookup(outputKey string) (MetricDefinition, bool) {
	for _, def := range definitions {
		if def.OutputKey == outputKey {
			return def, true
		}
	}
	return MetricDefinition{}, false
}
