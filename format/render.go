package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"lhcompare/compare"
)

// Format names an output format.
type Format string

const (
	Markdown Format = "markdown"
	CSV      Format = "csv"
	JSON     Format = "json"
	YAML     Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{Markdown, CSV, JSON, YAML}

// ParseFormat resolves a format name, case-insensitively. "md" and "yml" are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md", "":
		return Markdown, nil
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown format %q, want one of %v", s, Formats)
}

// Render writes results in format f. Links are used by Markdown only.
func Render(f Format, results compare.Results, links map[string]string) ([]byte, error) {
	switch f {
	case Markdown:
		md, err := GenerateMarkdown(results, links)
		return []byte(md), err
	case CSV:
		out, err := GenerateCSV(results)
		return []byte(out), err
	case JSON:
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case YAML:
		return yaml.Marshal(results)
	}
	return nil, fmt.Errorf("unknown format %q", f)
}
