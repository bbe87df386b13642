package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"lhcompare/compare"
)

// pageRow is one page of a report table.
type pageRow struct {
	key  string // page key into compare.Results
	url  string // full URL when known
	link string // report link, empty when unknown
}

// pageRows lists the pages to render. With links, every link entry is a row, even
// pages without a comparison; keys may be full URLs or page paths. Without links,
// every compared page is a row. Rows are sorted by page key.
func pageRows(results compare.Results, links map[string]string) ([]pageRow, error) {
	var rows []pageRow
	if len(links) == 0 {
		for key := range results {
			rows = append(rows, pageRow{key: key})
		}
	} else {
		for target, link := range links {
			row := pageRow{key: target, link: link}
			if !strings.HasPrefix(target, "/") {
				key, err := compare.PageKey(target)
				if err != nil {
					return nil, err
				}
				row.key, row.url = key, target
			}
			rows = append(rows, row)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].key != rows[j].key {
			return rows[i].key < rows[j].key
		}
		return rows[i].url < rows[j].url
	})
	return rows, nil
}

// GenerateMarkdown creates the Markdown comparison report: a summary table of
// category scores and a details table of audit timings.
func GenerateMarkdown(results compare.Results, links map[string]string) (string, error) {
	rows, err := pageRows(results, links)
	if err != nil {
		return "", err
	}
	withLinks := len(links) > 0

	var sb strings.Builder
	sb.WriteString("# Lighthouse Report Comparison\n\n")
	sb.WriteString("Lighthouse reports are likely to vary between runs. ")
	sb.WriteString("🔴 marks a regression against the baseline, 🟢 no regression.\n\n")

	sb.WriteString("## Summary\n\n")
	writeTable(&sb, rows, results, SummaryColumns(), withLinks)

	sb.WriteString("\n## Details\n\n")
	writeTable(&sb, rows, results, DetailColumns(), withLinks)

	return sb.String(), nil
}

func writeTable(sb *strings.Builder, rows []pageRow, results compare.Results, cols []Column, withLinks bool) {
	// Header Row
	sb.WriteString("| URL |")
	for _, c := range cols {
		sb.WriteString(fmt.Sprintf(" %s |", c.Header))
	}
	if withLinks {
		sb.WriteString(" Report |")
	}
	sb.WriteString("\n")

	// Separator Row
	sb.WriteString("|:--- |")
	for range cols {
		sb.WriteString(":---: |")
	}
	if withLinks {
		sb.WriteString(":---: |")
	}
	sb.WriteString("\n")

	for _, row := range rows {
		if row.url != "" {
			sb.WriteString(fmt.Sprintf("| [%s](%s) |", row.key, row.url))
		} else {
			sb.WriteString(fmt.Sprintf("| %s |", row.key))
		}

		record, ok := results[row.key]
		for _, c := range cols {
			if !ok {
				sb.WriteString(" n/a |")
				continue
			}
			sb.WriteString(fmt.Sprintf(" %s |", markdownCell(record[c.Key], c.Unit)))
		}

		if withLinks {
			sb.WriteString(fmt.Sprintf(" [Rep](%s) |", row.link))
		}
		sb.WriteString("\n")
	}
}

// markdownCell renders "value unit marker (±diff unit)"; the diff is left out when zero.
func markdownCell(res compare.MetricResult, unit string) string {
	marker := "🟢"
	if res.IsRegression {
		marker = "🔴"
	}

	cell := fmt.Sprintf("%s%s %s", formatNumber(res.CurrentValue), unit, marker)
	if res.Diff != 0 {
		cell += fmt.Sprintf(" (%s%s)", formatSigned(res.Diff), unit)
	}
	return cell
}

// formatNumber prints the shortest decimal form, so rounded values print as rounded.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatSigned(v float64) string {
	if v > 0 {
		return "+" + formatNumber(v)
	}
	return formatNumber(v)
}
