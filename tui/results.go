package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"lhcompare/compare"
	"lhcompare/format"
)

// DefaultReportFile is where 's' saves the Markdown report.
const DefaultReportFile = "comparison_report.md"

var (
	resultsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1)
	headerStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	improvedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	regressedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	// We use a base cell style with some right padding for separation
	cellStyle = lipgloss.NewStyle().PaddingRight(4)
)

// ResultsModel shows compared pages as a page by metric matrix.
type ResultsModel struct {
	results  compare.Results
	links    map[string]string
	detail   bool
	savePath string
	quitting bool
	Saved    bool // Track if saved
	SaveMsg  string
}

func NewResultsModel(results compare.Results, links map[string]string) ResultsModel {
	return ResultsModel{results: results, links: links, savePath: DefaultReportFile}
}

func (m ResultsModel) Init() tea.Cmd { return nil }

func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "d", "tab":
			m.detail = !m.detail
			return m, nil
		case "s":
			if !m.Saved {
				m = m.save()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m ResultsModel) save() ResultsModel {
	content, err := format.GenerateMarkdown(m.results, m.links)
	if err == nil {
		err = os.WriteFile(m.savePath, []byte(content), 0o644)
	}
	if err != nil {
		m.SaveMsg = fmt.Sprintf("Error saving: %v", err)
		return m
	}
	m.Saved = true
	m.SaveMsg = fmt.Sprintf("Saved to %s!", m.savePath)
	return m
}

type cell struct {
	content string
	style   lipgloss.Style
}

func (m ResultsModel) columns() []format.Column {
	if m.detail {
		return format.DetailColumns()
	}
	return format.SummaryColumns()
}

func (m ResultsModel) View() string {
	if m.quitting {
		return ""
	}

	cols := m.columns()

	var grid [][]cell
	headerRow := []cell{{content: "Page", style: headerStyle}}
	for _, c := range cols {
		header := c.Header
		if c.Unit != "" {
			header += " (" + c.Unit + ")"
		}
		headerRow = append(headerRow, cell{content: header, style: headerStyle})
	}
	headerRow = append(headerRow, cell{content: "Verdict", style: headerStyle})
	grid = append(grid, headerRow)

	keys := make([]string, 0, len(m.results))
	for k := range m.results {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		record := m.results[key]
		row := []cell{{content: key, style: lipgloss.NewStyle()}}
		for _, c := range cols {
			row = append(row, resultCell(record[c.Key], c.Unit))
		}
		row = append(row, verdictCell(format.Verdict(record)))
		grid = append(grid, row)
	}

	colWidths := make([]int, len(headerRow))
	for _, row := range grid {
		for i, c := range row {
			if w := lipgloss.Width(c.content); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	var s strings.Builder
	s.WriteString("\n")
	title := " Summary "
	if m.detail {
		title = " Details "
	}
	s.WriteString(resultsTitleStyle.Render(" Lighthouse Comparison ·" + title))
	s.WriteString("\n\n")

	if len(keys) == 0 {
		s.WriteString(mutedStyle.Render("  No pages matched between the current and baseline runs.") + "\n")
		return s.String()
	}

	for _, row := range grid {
		var line strings.Builder
		for i, c := range row {
			line.WriteString(c.style.Inherit(cellStyle).Width(colWidths[i]).Render(c.content))
		}
		s.WriteString(line.String() + "\n")
	}
	return s.String()
}

// resultCell renders "current (diff)", red when regressed and green when improved.
func resultCell(res compare.MetricResult, unit string) cell {
	content := humanValue(res.CurrentValue, unit)
	if res.Diff != 0 {
		sign := "+"
		if res.Diff < 0 {
			sign = "-"
		}
		diff := res.Diff
		if diff < 0 {
			diff = -diff
		}
		content += fmt.Sprintf(" (%s%s)", sign, humanValue(diff, unit))
	}

	switch {
	case res.IsRegression:
		return cell{content: content, style: regressedStyle}
	case res.Diff != 0:
		return cell{content: content, style: improvedStyle}
	default:
		return cell{content: content, style: lipgloss.NewStyle()}
	}
}

func humanValue(v float64, unit string) string {
	return humanize.Commaf(v) + unit
}

func verdictCell(verdict string) cell {
	switch verdict {
	case format.VerdictRegressed:
		return cell{content: verdict, style: regressedStyle}
	case format.VerdictImproved:
		return cell{content: verdict, style: improvedStyle}
	default:
		return cell{content: verdict, style: mutedStyle}
	}
}
