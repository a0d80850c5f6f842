package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/pandiff/pkg/ast"
	"github.com/matzehuels/pandiff/pkg/diff"
)

func para(text string) *ast.Node {
	return ast.Para(ast.Str(text))
}

func testEntries() []diff.Entry {
	before := []*ast.Node{para("intro"), para("draft"), para("body"), para("outro")}
	after := []*ast.Node{para("intro"), para("final"), para("body"), para("outro"), para("appendix")}
	return diff.Align(before, after)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m viewModel, msgs ...tea.Msg) viewModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(viewModel)
	}
	return m
}

func TestViewModelNavigation(t *testing.T) {
	m := newViewModel(testEntries(), false)
	if len(m.rows) != 6 {
		t.Fatalf("rows = %d, want 6", len(m.rows))
	}

	m = update(m, key("down"), key("down"))
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	m = update(m, key("up"), key("up"), key("up"))
	if m.cursor != 0 {
		t.Errorf("cursor should stop at 0, got %d", m.cursor)
	}
	m = update(m, key("G"))
	if m.cursor != 5 {
		t.Errorf("end: cursor = %d, want 5", m.cursor)
	}
	m = update(m, key("g"))
	if m.cursor != 0 {
		t.Errorf("home: cursor = %d, want 0", m.cursor)
	}
}

func TestViewModelNextChange(t *testing.T) {
	m := newViewModel(testEntries(), false)

	m = update(m, key("n"))
	if m.rows[m.cursor].status == diff.StatusUnchanged {
		t.Errorf("n should land on a change, got row %d", m.cursor)
	}
	first := m.cursor
	m = update(m, key("n"), key("n"), key("n"))
	if m.cursor != first {
		t.Errorf("n should wrap around to row %d, got %d", first, m.cursor)
	}
}

func TestViewModelFilter(t *testing.T) {
	m := newViewModel(testEntries(), true)
	if len(m.rows) != 3 {
		t.Fatalf("changes only: rows = %d, want 3", len(m.rows))
	}
	for _, r := range m.rows {
		if r.status == diff.StatusUnchanged {
			t.Error("unchanged row shown in changes-only mode")
		}
	}

	m = update(m, key("c"))
	if m.changesOnly || len(m.rows) != 6 {
		t.Errorf("toggle: changesOnly = %v, rows = %d", m.changesOnly, len(m.rows))
	}
}

func TestViewModelScrolls(t *testing.T) {
	m := newViewModel(testEntries(), false)
	m = update(m, tea.WindowSizeMsg{Width: 60, Height: 4})
	if m.height != 5 {
		t.Fatalf("height = %d, want minimum 5", m.height)
	}
	m = update(m, key("G"))
	if m.offset != 1 {
		t.Errorf("offset = %d, want 1", m.offset)
	}
}

func TestViewModelView(t *testing.T) {
	m := newViewModel(testEntries(), false)
	out := m.View()
	for _, want := range []string{"pandiff", "+2", "-1", "draft", "final", "appendix", "[1/6]"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}

	empty := newViewModel(nil, false)
	if !strings.Contains(empty.View(), "no blocks") {
		t.Error("empty view should say so")
	}
}

func TestViewModelQuit(t *testing.T) {
	m := newViewModel(testEntries(), false)
	for _, k := range []string{"q", "esc"} {
		var msg tea.KeyMsg
		if k == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		} else {
			msg = key(k)
		}
		if _, cmd := m.Update(msg); cmd == nil {
			t.Errorf("%s should quit", k)
		}
	}
}

func TestLineNumber(t *testing.T) {
	if lineNumber(-1) != "" || lineNumber(0) != "1" {
		t.Errorf("lineNumber: %q %q", lineNumber(-1), lineNumber(0))
	}
}
