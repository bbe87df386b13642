package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lhcompare/compare"
	"lhcompare/loader"
)

type FlowState int

const (
	StatePicking FlowState = iota
	StateLoading
	StateResults
)

// CompareFlowModel walks from picking two run sets to the comparison matrix.
type CompareFlowModel struct {
	state   FlowState
	picker  Model
	results ResultsModel
	engine  *compare.Engine
	links   map[string]string
	width   int
	height  int
	err     error
}

func NewCompareFlowModel(engine *compare.Engine, links map[string]string) CompareFlowModel {
	return CompareFlowModel{
		state:  StatePicking,
		picker: NewModel(),
		engine: engine,
		links:  links,
	}
}

func (m CompareFlowModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m CompareFlowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case resultsLoadedMsg:
		m.results = NewResultsModel(compare.Results(msg), m.links)
		m.state = StateResults
		return m, nil

	case errMsg:
		m.err = msg
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.err != nil && msg.String() == "q" {
			return m, tea.Quit
		}
	}

	switch m.state {
	case StatePicking:
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "c" {
			if len(m.picker.SelectedPaths) == len(slotLabels) {
				m.state = StateLoading
				return m, compareCmd(m.engine, m.picker.SelectedPaths[0], m.picker.SelectedPaths[1])
			}
		}

		newPicker, newCmd := m.picker.Update(msg)
		m.picker = newPicker.(Model)

		if m.picker.quitting {
			return m, tea.Quit
		}

		cmd = newCmd

	case StateResults:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "esc", "backspace":
				m.state = StatePicking
				return m, nil
			}
		}

		newResults, newCmd := m.results.Update(msg)
		m.results = newResults.(ResultsModel)
		cmd = newCmd
	}

	return m, cmd
}

// compareCmd loads both run sets and compares them off the UI loop.
func compareCmd(engine *compare.Engine, currentPath, baselinePath string) tea.Cmd {
	return func() tea.Msg {
		current, err := loader.LoadRuns(currentPath)
		if err != nil {
			return errMsg(err)
		}
		baseline, err := loader.LoadRuns(baselinePath)
		if err != nil {
			return errMsg(err)
		}
		results, err := engine.Compare(current, baseline)
		if err != nil {
			return errMsg(err)
		}
		return resultsLoadedMsg(results)
	}
}

type resultsLoadedMsg compare.Results
type errMsg error

func (m CompareFlowModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("\nError: %v\n\n(Press q to quit)", m.err)
	}

	switch m.state {
	case StatePicking:
		return m.picker.View()
	case StateLoading:
		return "\n  Comparing reports...\n"
	case StateResults:
		view := m.results.View()
		keys := "(Esc: Back • d: Summary/Details • s: Save Report • q: Quit)"
		footer := "\n  " + keys

		if m.results.SaveMsg != "" {
			color := "42" // Green
			if strings.HasPrefix(m.results.SaveMsg, "Error") {
				color = "196" // Red
			}
			msg := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(m.results.SaveMsg)
			footer = fmt.Sprintf("\n  %s\n  %s", msg, keys)
		}

		return view + lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(footer)
	}
	return ""
}
