package format

import (
	"encoding/csv"
	"sort"
	"strconv"
	"strings"

	"lhcompare/compare"
)

// GenerateCSV creates a CSV formatted string for the comparison results,
// one line per page and metric.
func GenerateCSV(results compare.Results) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	// Header Row
	if err := w.Write([]string{"Page", "Metric", "Current", "Previous", "Diff", "Regression", "Rating", "Verdict"}); err != nil {
		return "", err
	}

	keys := make([]string, 0, len(results))
	for key := range results {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// All metrics from the shared registry
	for _, key := range keys {
		record := results[key]
		verdict := Verdict(record)
		for _, c := range ColumnRegistry {
			res := record[c.Key]
			err := w.Write([]string{
				key,
				c.Key,
				formatNumber(res.CurrentValue),
				formatNumber(res.PreviousValue),
				formatNumber(res.Diff),
				strconv.FormatBool(res.IsRegression),
				Rating(c.Key, res.CurrentValue),
				verdict,
			})
			if err != nil {
				return "", err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
