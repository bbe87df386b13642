package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lhcompare/schema"
)

// ErrNoReports is returned when a directory holds no report files.
var ErrNoReports = errors.New("no lighthouse reports found")

// LoadRuns reads a run set from path. A file may hold a JSON array of runs
// ([{"url": ..., "lhr": ...}], as served by Lighthouse CI) or a single
// Lighthouse report. A directory is read as the output of `lhci collect`:
// every lhr-*.json or *.report.json file in it is one report, in name order.
func LoadRuns(path string) ([]schema.Run, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return loadDir(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return parseRuns(path, data)
}

func parseRuns(path string, data []byte) ([]schema.Run, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		run, err := reportRun(trimmed)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON in %s: %w", path, err)
		}
		return []schema.Run{run}, nil
	}

	var runs []schema.Run
	if err := json.Unmarshal(trimmed, &runs); err != nil {
		return nil, fmt.Errorf("failed to parse JSON in %s: %w", path, err)
	}
	return runs, nil
}

func loadDir(dir string) ([]schema.Run, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var runs []schema.Run
	for _, e := range entries {
		if e.IsDir() || !isReportFile(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		run, err := reportRun(bytes.TrimSpace(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON in %s: %w", path, err)
		}
		runs = append(runs, run)
	}

	if len(runs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoReports, dir)
	}
	return runs, nil
}

func isReportFile(name string) bool {
	if strings.HasPrefix(name, "lhr-") && strings.HasSuffix(name, ".json") {
		return true
	}
	return strings.HasSuffix(name, ".report.json")
}

// reportRun wraps a single serialized report as a run. Only the URL is read
// here; decoding the rest is left to the comparison.
func reportRun(data []byte) (schema.Run, error) {
	var head schema.Report
	if err := json.Unmarshal(data, &head); err != nil {
		return schema.Run{}, err
	}
	url := head.PageURL()
	if url == "" {
		return schema.Run{}, errors.New("report has neither requestedUrl nor finalUrl")
	}
	return schema.Run{URL: url, LHR: json.RawMessage(data)}, nil
}

// LoadLinks reads the page-to-report-link mapping written by `lhci upload`.
func LoadLinks(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var links map[string]string
	if err := json.Unmarshal(data, &links); err != nil {
		return nil, fmt.Errorf("failed to parse JSON in %s: %w", path, err)
	}
	return links, nil
}
