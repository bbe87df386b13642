package tui

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// slotLabels names the picked files in selection order.
var slotLabels = []string{"current", "baseline"}

var (
	pickerSelectedItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	checkedItemStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	dirStyle                = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	fileStyle               = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	permissionStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sizeStyle               = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right).Width(8)

	stagingStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Margin(0, 0, 1, 2)
)

type fileItem struct {
	name string
	path string
	// runDir marks a directory holding lhci collect output; it can be picked like a file.
	runDir bool
	isDir  bool
	info   fs.FileInfo
	// slot is the index into slotLabels, or -1 when not picked.
	slot int
}

func (i fileItem) FilterValue() string { return i.name }

func (i fileItem) selectable() bool { return !i.isDir || i.runDir }

type fileDelegate struct{}

func (d fileDelegate) Height() int                             { return 1 }
func (d fileDelegate) Spacing() int                            { return 0 }
func (d fileDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d fileDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(fileItem)
	if !ok {
		return
	}

	// Columns: Slot | Mode | Size | ModTime | Name
	var mode, size, modTime string
	name := i.name

	switch {
	case i.name == "..":
		mode = "drwxr-xr-x"
		size = "-"
		modTime = "            "
	case i.info != nil:
		mode = i.info.Mode().String()
		size = humanize.Bytes(uint64(i.info.Size()))
		modTime = i.info.ModTime().Format("Jan 02 15:04")
		if i.isDir {
			size = "-"
			name += "/"
		}
	default:
		mode = "?????????? "
		size = "?"
		modTime = "..."
	}

	nameStyle := fileStyle
	if i.isDir {
		nameStyle = dirStyle
	}

	check := "[ ]"
	if !i.selectable() {
		check = "   "
	}
	checkRender := fileStyle.Render(fmt.Sprintf("%-10s", check))
	if i.slot >= 0 {
		checkRender = checkedItemStyle.Render(fmt.Sprintf("%-10s", "["+slotLabels[i.slot]+"]"))
		nameStyle = checkedItemStyle
	}

	cursor := " "
	if index == m.Index() {
		cursor = ">"
		if i.slot < 0 {
			nameStyle = pickerSelectedItemStyle
		}
	}

	fmt.Fprintf(w, "%s %s %s %s %s  %s",
		cursor,
		checkRender,
		permissionStyle.Render(mode),
		sizeStyle.Render(size),
		permissionStyle.Render(modTime),
		nameStyle.Render(name),
	)
}

// Model is a file picker for a current and a baseline run set.
type Model struct {
	list       list.Model
	currentDir string

	// SelectedPaths holds the picked paths, current first.
	SelectedPaths []string

	quitting bool
	done     bool
}

func NewModel() Model {
	cwd, _ := os.Getwd()

	l := list.New(getItems(cwd, nil), fileDelegate{}, 80, 20)
	l.Title = "Select Run Sets to Compare"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().MarginLeft(2).Foreground(lipgloss.Color("205")).Bold(true)

	return Model{
		list:          l,
		currentDir:    cwd,
		SelectedPaths: []string{},
	}
}

// Done reports whether both run sets were picked and confirmed.
func (m Model) Done() bool { return m.done }

// getItems lists dir with JSON files and lhci output directories, marking picked ones.
func getItems(dir string, selected []string) []list.Item {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []list.Item{}
	}

	slots := make(map[string]int, len(selected))
	for i, p := range selected {
		slots[p] = i
	}
	slotOf := func(path string) int {
		if s, ok := slots[path]; ok {
			return s
		}
		return -1
	}

	dirs := []fileItem{{name: "..", path: filepath.Dir(dir), isDir: true, slot: -1}}
	var files []fileItem

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") && e.Name() != ".lighthouseci" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}

		fullPath := filepath.Join(dir, e.Name())
		item := fileItem{
			name:  e.Name(),
			path:  fullPath,
			isDir: e.IsDir(),
			info:  info,
			slot:  slotOf(fullPath),
		}

		if e.IsDir() {
			item.runDir = isRunDir(fullPath)
			dirs = append(dirs, item)
		} else if strings.HasSuffix(e.Name(), ".json") {
			files = append(files, item)
		}
	}

	items := make([]list.Item, 0, len(dirs)+len(files))
	for _, d := range dirs {
		items = append(items, d)
	}
	for _, f := range files {
		items = append(items, f)
	}
	return items
}

// isRunDir reports whether dir holds lhci collect reports.
func isRunDir(dir string) bool {
	matches, err := filepath.Glob(filepath.Join(dir, "lhr-*.json"))
	return err == nil && len(matches) > 0
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			i, ok := m.list.SelectedItem().(fileItem)
			if ok && i.isDir {
				m.currentDir = i.path
				cmd := m.list.SetItems(getItems(m.currentDir, m.SelectedPaths))
				m.list.ResetSelected()
				return m, cmd
			}
			if ok {
				return m.toggleSelection(i)
			}
			return m, nil

		case " ":
			i, ok := m.list.SelectedItem().(fileItem)
			if ok && i.selectable() {
				return m.toggleSelection(i)
			}

		case "left", "backspace":
			m.currentDir = filepath.Dir(m.currentDir)
			cmd := m.list.SetItems(getItems(m.currentDir, m.SelectedPaths))
			m.list.ResetSelected()
			return m, cmd

		case "c":
			if len(m.SelectedPaths) == len(slotLabels) {
				m.done = true
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4) // Reserve space for header/footer
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// toggleSelection picks or unpicks i. Once both slots are taken further picks are ignored.
func (m Model) toggleSelection(i fileItem) (Model, tea.Cmd) {
	idx := -1
	for x, p := range m.SelectedPaths {
		if p == i.path {
			idx = x
			break
		}
	}

	switch {
	case idx != -1:
		m.SelectedPaths = append(m.SelectedPaths[:idx:idx], m.SelectedPaths[idx+1:]...)
	case len(m.SelectedPaths) < len(slotLabels):
		m.SelectedPaths = append(m.SelectedPaths, i.path)
	default:
		return m, nil
	}

	cmd := m.list.SetItems(getItems(m.currentDir, m.SelectedPaths))
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var staging strings.Builder
	staging.WriteString("Comparison Staging:\n")
	for slot, label := range slotLabels {
		if slot < len(m.SelectedPaths) {
			staging.WriteString(fmt.Sprintf("  %s %-8s %s\n", checkedItemStyle.Render("✓"), label, filepath.Base(m.SelectedPaths[slot])))
		} else {
			staging.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(fmt.Sprintf("  - %-8s (not selected)", label)) + "\n")
		}
	}

	if len(m.SelectedPaths) == len(slotLabels) {
		staging.WriteString("\n" + lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")).Bold(true).Padding(0, 1).Render(" Press 'c' to Compare! "))
	} else {
		staging.WriteString("\n  Pick the current run set first, then the baseline")
	}

	header := stagingStyle.Render(staging.String())

	m.list.Title = fmt.Sprintf("Browse: %s", m.currentDir)

	help := "\n  (Space/Enter: Select • c: Compare • Backspace: Up)"

	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), help)
}
