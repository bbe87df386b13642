package compare

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"lhcompare/schema"
)

func TestMetricProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	defs := Definitions()

	properties.Property("regression follows metric polarity", prop.ForAll(
		func(idx int, current, previous float64) bool {
			def := defs[idx]
			res := Diff(def, reportFor(def, current), reportFor(def, previous))
			if res.Diff == 0 {
				return !res.IsRegression
			}
			if def.HigherIsBetter {
				return res.IsRegression == (res.Diff < 0)
			}
			return res.IsRegression == (res.Diff > 0)
		},
		gen.IntRange(0, len(defs)-1),
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e6, 1e6),
	))

	properties.Property("category values stay on the 0-100 scale", prop.ForAll(
		func(idx int, current, previous float64) bool {
			def := defs[idx]
			if def.Kind != KindCategory {
				return true
			}
			res := Diff(def, reportFor(def, current), reportFor(def, previous))
			return res.CurrentValue >= 0 && res.CurrentValue <= 100 &&
				res.PreviousValue >= 0 && res.PreviousValue <= 100
		},
		gen.IntRange(0, len(defs)-1),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
	))

	properties.Property("diff is the rounded difference of the rounded values", prop.ForAll(
		func(idx int, current, previous float64) bool {
			def := defs[idx]
			res := Diff(def, reportFor(def, current), reportFor(def, previous))
			return res.Diff == round(res.CurrentValue-res.PreviousValue, def.Precision)
		},
		gen.IntRange(0, len(defs)-1),
		gen.Float64Range(0, 10000),
		gen.Float64Range(0, 10000),
	))

	properties.TestingRun(t)
}

func TestCompareProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every record holds every metric", prop.ForAll(
		func(scores []float64) bool {
			current, baseline := runSets(scores)
			results, err := Compare(current, baseline)
			if err != nil {
				return false
			}
			for _, record := range results {
				if len(record) != len(definitions) {
					return false
				}
				for _, def := range definitions {
					if _, ok := record[def.OutputKey]; !ok {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(0, 1)),
	))

	properties.Property("repeated comparisons are byte-identical", prop.ForAll(
		func(scores []float64) bool {
			current, baseline := runSets(scores)
			first, err := Compare(current, baseline)
			if err != nil {
				return false
			}
			second, err := Compare(current, baseline)
			if err != nil {
				return false
			}
			a, _ := json.Marshal(first)
			b, _ := json.Marshal(second)
			return string(a) == string(b)
		},
		gen.SliceOf(gen.Float64Range(0, 1)),
	))

	properties.TestingRun(t)
}

func reportFor(def MetricDefinition, v float64) *schema.Report {
	if def.Kind == KindCategory {
		return newReport(map[string]float64{def.SourceKey: v}, nil)
	}
	return newReport(nil, map[string]float64{def.SourceKey: v})
}

// runSets builds one page per score, with the baseline scoring the reverse order.
func runSets(scores []float64) (current, baseline []schema.Run) {
	pages := []string{"/", "/a", "/b", "/c"}
	for i, s := range scores {
		url := "http://localhost:PORT" + pages[i%len(pages)]
		current = append(current, schema.Run{URL: url, Report: newReport(
			map[string]float64{"performance": s, "seo": s},
			map[string]float64{"cumulative-layout-shift": s, "largest-contentful-paint": s * 4000},
		)})
		b := scores[len(scores)-1-i]
		baseline = append(baseline, schema.Run{URL: url, Report: newReport(
			map[string]float64{"performance": b},
			map[string]float64{"cumulative-layout-shift": b},
		)})
	}
	return current, baseline
}
