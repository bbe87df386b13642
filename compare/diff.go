package compare

import (
	"math"
	"math/big"

	"lhcompare/schema"
)

// MetricResult is the comparison of one metric between two reports.
type MetricResult struct {
	CurrentValue  float64 `json:"currentValue" yaml:"currentValue"`
	PreviousValue float64 `json:"previousValue" yaml:"previousValue"`
	Diff          float64 `json:"diff" yaml:"diff"`
	IsRegression  bool    `json:"isRegression" yaml:"isRegression"`
}

// Diff extracts def from both reports and classifies the change.
// A metric missing from a report counts as zero.
func Diff(def MetricDefinition, current, previous *schema.Report) MetricResult {
	currentValue := round(scale(def, extract(def, current)), def.Precision)
	previousValue := round(scale(def, extract(def, previous)), def.Precision)
	diff := round(currentValue-previousValue, def.Precision)

	isRegression := diff > 0
	if def.HigherIsBetter {
		isRegression = diff < 0
	}

	return MetricResult{
		CurrentValue:  currentValue,
		PreviousValue: previousValue,
		Diff:          diff,
		IsRegression:  isRegression,
	}
}

func extract(def MetricDefinition, report *schema.Report) float64 {
	if report == nil {
		return 0
	}

	var value *float64
	switch def.Kind {
	case KindCategory:
		if c, ok := report.Categories[def.SourceKey]; ok {
			value = c.Score
		}
	case KindAudit:
		if a, ok := report.Audits[def.SourceKey]; ok {
			value = a.NumericValue
		}
	}

	if value == nil {
		return 0
	}
	return *value
}

func scale(def MetricDefinition, v float64) float64 {
	if def.Kind == KindCategory {
		return v * 100
	}
	return v
}

// round rounds half away from zero to precision decimal digits. Ties are
// decided on the exact binary value of v, so 0.1235 (stored just below the
// midpoint) rounds to 0.123 while 2500.5 rounds to 2501.
func round(v float64, precision int) float64 {
	if v == 0 {
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(precision)), nil)
	scaled := new(big.Rat).SetFloat64(math.Abs(v))
	scaled.Mul(scaled, new(big.Rat).SetInt(pow))

	n, rem := new(big.Int).QuoRem(scaled.Num(), scaled.Denom(), new(big.Int))
	// rem/denom >= 1/2
	if rem.Lsh(rem, 1).Cmp(scaled.Denom()) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	r, _ := new(big.Rat).SetFrac(n, pow).Float64()
	if r == 0 {
		// drop the sign of -0
		return 0
	}
	return math.Copysign(r, v)
}
