// Package compare matches Lighthouse reports of a current run set against a
// baseline run set and classifies every tracked metric as regressed or not.
package compare

import (
	"github.com/rs/zerolog"

	"lhcompare/schema"
)

// Record holds one MetricResult per metric definition, keyed by OutputKey.
type Record map[string]MetricResult

// Results maps a page key to the comparison of that page.
type Results map[string]Record

// Engine runs comparisons. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	log zerolog.Logger
}

type Option func(*Engine)

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compare compares current against baseline with a silent engine.
func Compare(current, baseline []schema.Run) (Results, error) {
	return New().Compare(current, baseline)
}

// Compare builds a Record for every current run that has a baseline run with
// the same URL and usable reports on both sides. Unmatched runs are left out.
// Any malformed report or URL fails the whole call.
func (e *Engine) Compare(current, baseline []schema.Run) (Results, error) {
	currentRuns, err := e.normalizeAll(current)
	if err != nil {
		return nil, err
	}
	baselineRuns, err := e.normalizeAll(baseline)
	if err != nil {
		return nil, err
	}

	results := make(Results, len(currentRuns))
	for _, run := range currentRuns {
		ancestor, found := matchBaseline(run, baselineRuns)
		if !found || run.Report == nil || ancestor.Report == nil {
			e.log.Debug().
				Str("url", run.URL).
				Str("reason", skipReason(run, ancestor, found)).
				Msg("skipping comparison")
			continue
		}

		record := make(Record, len(definitions))
		for _, def := range definitions {
			record[def.OutputKey] = Diff(def, run.Report, ancestor.Report)
		}

		key, err := PageKey(run.URL)
		if err != nil {
			e.log.Debug().Err(err).Str("url", run.URL).Msg("cannot derive page key")
			return nil, err
		}
		e.log.Debug().Str("url", run.URL).Str("key", key).Msg("compared page")

		results[key] = record
	}

	return results, nil
}

func (e *Engine) normalizeAll(runs []schema.Run) ([]schema.Run, error) {
	normalized := make([]schema.Run, 0, len(runs))
	for _, run := range runs {
		n, err := Normalize(run)
		if err != nil {
			e.log.Debug().Err(err).Str("url", run.URL).Msg("error parsing report")
			return nil, err
		}
		normalized = append(normalized, n)
	}
	return normalized, nil
}

// matchBaseline returns the first baseline run with exactly the URL of run.
func matchBaseline(run schema.Run, baseline []schema.Run) (schema.Run, bool) {
	for _, candidate := range baseline {
		if candidate.URL == run.URL {
			return candidate, true
		}
	}
	return schema.Run{}, false
}

func skipReason(run, ancestor schema.Run, found bool) string {
	switch {
	case !found:
		return "ancestor run not found"
	case run.Report == nil && ancestor.Report == nil:
		return "current and ancestor reports missing"
	case run.Report == nil:
		return "current report missing"
	default:
		return "ancestor report missing"
	}
}
