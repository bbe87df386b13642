package format

import "lhcompare/compare"

// Column defines how a compared metric is shown in every output format (Markdown, CSV, TUI).
type Column struct {
	Key        string // compare.MetricDefinition.OutputKey
	Header     string
	Unit       string
	DetailOnly bool // true = details table only; false = summary table
}

// ColumnRegistry is the single source of truth for which metrics appear in reports and in what order.
// Every key must exist in the compare metric table.
var ColumnRegistry = []Column{
	// --- Summary (category scores) ---
	{Key: "performance", Header: "Perf"},
	{Key: "accessibility", Header: "A11y"},
	{Key: "seo", Header: "SEO"},
	{Key: "bestPractices", Header: "Best P."},

	// --- Details (audit timings) ---
	{Key: "lcp", Header: "LCP", Unit: "ms", DetailOnly: true},
	{Key: "fcp", Header: "FCP", Unit: "ms", DetailOnly: true},
	{Key: "cls", Header: "CLS", DetailOnly: true},
	{Key: "tbt", Header: "TBT", Unit: "ms", DetailOnly: true},
	{Key: "speedIndex", Header: "SI", Unit: "ms", DetailOnly: true},
}

// SummaryColumns returns the category columns.
func SummaryColumns() []Column { return filterColumns(false) }

// DetailColumns returns the audit columns.
func DetailColumns() []Column { return filterColumns(true) }

func filterColumns(detail bool) []Column {
	var cols []Column
	for _, c := range ColumnRegistry {
		if c.DetailOnly == detail {
			cols = append(cols, c)
		}
	}
	return cols
}

// Definition returns the metric definition behind the column.
func (c Column) Definition() (compare.MetricDefinition, bool) {
	return compare.Lookup(c.Key)
}
