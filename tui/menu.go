package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	MenuCompare = "Compare Reports"
	MenuQuit    = "Quit"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().MarginLeft(2).Foreground(lipgloss.Color("205")).Bold(true)
	menuItemStyle     = lipgloss.NewStyle().PaddingLeft(4)
	menuSelectedStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("212")).Bold(true)
)

type MenuModel struct {
	choices  []string
	cursor   int
	Selected string
}

func NewMenuModel() MenuModel {
	return MenuModel{choices: []string{MenuCompare, MenuQuit}}
}

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter", " ":
			m.Selected = m.choices[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	var s strings.Builder
	s.WriteString("\n" + menuTitleStyle.Render("Lighthouse Compare") + "\n\n")
	for i, choice := range m.choices {
		if i == m.cursor {
			s.WriteString(menuSelectedStyle.Render("> "+choice) + "\n")
		} else {
			s.WriteString(menuItemStyle.Render(choice) + "\n")
		}
	}
	s.WriteString("\n  (↑/↓: Move • Enter: Select • q: Quit)\n")
	return s.String()
}
