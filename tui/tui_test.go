package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lhcompare/compare"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleResults() compare.Results {
	return compare.Results{
		"/": compare.Record{
			"performance": {CurrentValue: 90, PreviousValue: 95, Diff: -5, IsRegression: true},
			"seo":         {CurrentValue: 100, PreviousValue: 100},
			"lcp":         {CurrentValue: 2500, PreviousValue: 2000, Diff: 500, IsRegression: true},
		},
		"/about": compare.Record{
			"performance": {CurrentValue: 80, PreviousValue: 70, Diff: 10},
		},
	}
}

func TestMenuModel(t *testing.T) {
	m := NewMenuModel()

	next, _ := m.Update(key("j"))
	next, _ = next.Update(key("j"))
	next, cmd := next.Update(key("enter"))
	menu := next.(MenuModel)
	assert.Equal(t, MenuQuit, menu.Selected)
	assert.NotNil(t, cmd)

	next, _ = NewMenuModel().Update(key("enter"))
	assert.Equal(t, MenuCompare, next.(MenuModel).Selected)

	next, _ = NewMenuModel().Update(key("q"))
	assert.Empty(t, next.(MenuModel).Selected)
}

func TestPicker_Slots(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "b.json", "c.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o644))
	}

	m := NewModel()
	m.currentDir = dir
	item := func(name string) fileItem {
		return fileItem{name: name, path: filepath.Join(dir, name), slot: -1}
	}

	m, _ = m.toggleSelection(item("b.json"))
	m, _ = m.toggleSelection(item("a.json"))
	m, _ = m.toggleSelection(item("c.json"))
	assert.Equal(t, []string{filepath.Join(dir, "b.json"), filepath.Join(dir, "a.json")}, m.SelectedPaths)

	view := m.View()
	assert.Contains(t, view, "current")
	assert.Contains(t, view, "baseline")
	assert.Contains(t, view, "Press 'c' to Compare!")

	next, _ := m.Update(key("c"))
	assert.True(t, next.(Model).Done())

	m, _ = m.toggleSelection(item("b.json"))
	assert.Equal(t, []string{filepath.Join(dir, "a.json")}, m.SelectedPaths)
	next, _ = m.Update(key("c"))
	assert.False(t, next.(Model).Done())
}

func TestGetItems(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "runs.json"), []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".lighthouseci"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lighthouseci", "lhr-1.json"), []byte("{}"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))

	items := getItems(dir, []string{filepath.Join(dir, "runs.json")})

	byName := map[string]fileItem{}
	for _, it := range items {
		fi := it.(fileItem)
		byName[fi.name] = fi
	}
	assert.Contains(t, byName, "..")
	assert.NotContains(t, byName, "notes.txt")
	assert.NotContains(t, byName, ".git")
	assert.True(t, byName[".lighthouseci"].runDir)
	assert.True(t, byName[".lighthouseci"].selectable())
	assert.Equal(t, 0, byName["runs.json"].slot)
}

func TestResultsModel_View(t *testing.T) {
	m := NewResultsModel(sampleResults(), nil)

	view := m.View()
	assert.Contains(t, view, "Perf")
	assert.Contains(t, view, "90 (-5)")
	assert.Contains(t, view, "80 (+10)")
	assert.Contains(t, view, "/about")
	assert.Contains(t, view, "regressed")
	assert.NotContains(t, view, "LCP")

	next, _ := m.Update(key("d"))
	view = next.(ResultsModel).View()
	assert.Contains(t, view, "LCP (ms)")
	assert.Contains(t, view, "2,500ms (+500ms)")

	next, _ = next.Update(key("tab"))
	assert.Contains(t, next.(ResultsModel).View(), "Perf")
}

func TestResultsModel_Empty(t *testing.T) {
	view := NewResultsModel(compare.Results{}, nil).View()
	assert.Contains(t, view, "No pages matched")
}

func TestResultsModel_Save(t *testing.T) {
	m := NewResultsModel(sampleResults(), nil)
	m.savePath = filepath.Join(t.TempDir(), DefaultReportFile)

	next, _ := m.Update(key("s"))
	saved := next.(ResultsModel)
	assert.True(t, saved.Saved)
	assert.Contains(t, saved.SaveMsg, "Saved to")

	data, err := os.ReadFile(m.savePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Lighthouse Report Comparison")

	m.savePath = filepath.Join(t.TempDir(), "missing", DefaultReportFile)
	next, _ = m.Update(key("s"))
	assert.False(t, next.(ResultsModel).Saved)
	assert.Contains(t, next.(ResultsModel).SaveMsg, "Error saving")
}

func TestCompareCmd(t *testing.T) {
	dir := t.TempDir()
	current := filepath.Join(dir, "current.json")
	baseline := filepath.Join(dir, "baseline.json")
	require.NoError(t, os.WriteFile(current, []byte(`{"requestedUrl":"http://localhost:PORT/","categories":{"performance":{"score":0.9}},"audits":{}}`), 0o644))
	require.NoError(t, os.WriteFile(baseline, []byte(`[{"url":"http://localhost:PORT/","lhr":{"categories":{"performance":{"score":0.95}},"audits":{}}}]`), 0o644))

	msg := compareCmd(compare.New(), current, baseline)()
	loaded, ok := msg.(resultsLoadedMsg)
	require.True(t, ok, "got %T: %v", msg, msg)
	res := loaded["/"]["performance"]
	assert.Equal(t, 90.0, res.CurrentValue)
	assert.Equal(t, 95.0, res.PreviousValue)
	assert.True(t, res.IsRegression)

	msg = compareCmd(compare.New(), filepath.Join(dir, "missing.json"), baseline)()
	_, ok = msg.(errMsg)
	assert.True(t, ok)
}

func TestCompareFlowModel(t *testing.T) {
	flow := NewCompareFlowModel(compare.New(), nil)

	next, _ := flow.Update(resultsLoadedMsg(sampleResults()))
	flow = next.(CompareFlowModel)
	assert.Equal(t, StateResults, flow.state)
	assert.Contains(t, flow.View(), "Lighthouse Comparison")
	assert.Contains(t, flow.View(), "s: Save Report")

	next, _ = flow.Update(key("esc"))
	assert.Equal(t, StatePicking, next.(CompareFlowModel).state)

	next, _ = flow.Update(errMsg(assert.AnError))
	assert.Contains(t, next.(CompareFlowModel).View(), "Error:")
}
