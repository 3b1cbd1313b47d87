package explorer

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sized(t *testing.T, exec Executor) Model {
	t.Helper()
	m := New(Config{Executor: exec, SessionID: "0123456789abcdef"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func submit(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

// run submits line and feeds the result back into the model
func run(t *testing.T, m Model, line string) Model {
	t.Helper()
	m, cmd := submit(t, m, line)
	if cmd == nil {
		t.Fatalf("submit(%q) returned no command", line)
	}
	updated, _ := m.Update(cmd())
	return updated.(Model)
}

func echo() ExecFunc {
	return func(line string) (string, error) {
		if strings.HasPrefix(line, "fail") {
			return "", errors.New("bad command")
		}
		return strings.ToUpper(line), nil
	}
}

func TestNew_Defaults(t *testing.T) {
	m := New(Config{})
	if m.target != "local" {
		t.Errorf("target = %q, want local", m.target)
	}
	if m.limit != DefaultHistoryLimit {
		t.Errorf("limit = %d, want %d", m.limit, DefaultHistoryLimit)
	}
	if m.View() != "Starting explorer..." {
		t.Errorf("View() before sizing = %q", m.View())
	}
}

func TestSubmit_RecordsEntries(t *testing.T) {
	m := sized(t, echo())
	m = run(t, m, "tree show")
	m = run(t, m, "fail now")

	entries := m.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Output != "TREE SHOW" || entries[0].Err != nil {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Err == nil {
		t.Error("entry 1 should carry the error")
	}
	if m.running {
		t.Error("model should be idle after the result arrived")
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q, want empty", m.input.Value())
	}

	view := m.View()
	if !strings.Contains(view, "TREE SHOW") || !strings.Contains(view, "bad command") {
		t.Errorf("view misses output:\n%s", view)
	}
	if !strings.Contains(view, "session 01234567") {
		t.Errorf("view misses session:\n%s", view)
	}
}

func TestSubmit_BlankLineDoesNothing(t *testing.T) {
	m := sized(t, echo())
	m, cmd := submit(t, m, "   ")
	if cmd != nil {
		t.Error("blank line should not run anything")
	}
	if len(m.history) != 0 {
		t.Error("blank line should not enter the history")
	}
}

func TestSubmit_IgnoredWhileRunning(t *testing.T) {
	m := sized(t, echo())
	m, cmd := submit(t, m, "first")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, second := submit(t, m, "second")
	if second != nil {
		t.Error("a second line must wait for the running one")
	}
}

func TestQuitCommands(t *testing.T) {
	for _, line := range []string{"quit", "exit"} {
		m := sized(t, echo())
		_, cmd := submit(t, m, line)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", line)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", line)
		}
	}

	m := sized(t, echo())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}

func TestClear(t *testing.T) {
	m := sized(t, echo())
	m = run(t, m, "a")
	m, _ = submit(t, m, "clear")
	if len(m.Entries()) != 0 {
		t.Errorf("clear left %d entries", len(m.Entries()))
	}

	m = run(t, m, "b")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if len(updated.(Model).Entries()) != 0 {
		t.Error("ctrl+l should clear the entries")
	}
}

func TestHistoryNavigation(t *testing.T) {
	m := sized(t, echo())
	m = run(t, m, "one")
	m = run(t, m, "two")
	m = run(t, m, "two")
	if len(m.history) != 2 {
		t.Fatalf("history = %v, consecutive duplicates should collapse", m.history)
	}

	m.input.SetValue("draft")
	up := func(m Model) Model {
		u, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		return u.(Model)
	}
	down := func(m Model) Model {
		u, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		return u.(Model)
	}

	m = up(m)
	if m.input.Value() != "two" {
		t.Errorf("up = %q, want two", m.input.Value())
	}
	m = up(m)
	m = up(m)
	if m.input.Value() != "one" {
		t.Errorf("up past the start = %q, want one", m.input.Value())
	}
	m = down(m)
	m = down(m)
	if m.input.Value() != "draft" {
		t.Errorf("down past the end = %q, want the draft", m.input.Value())
	}
}

func TestHistoryLimit(t *testing.T) {
	m := New(Config{Executor: echo(), HistoryLimit: 2})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = updated.(Model)
	for _, line := range []string{"a", "b", "c"} {
		m = run(t, m, line)
	}
	entries := m.Entries()
	if len(entries) != 2 || entries[0].Command != "b" {
		t.Errorf("entries = %+v, want the last two", entries)
	}
}

func TestNoExecutor(t *testing.T) {
	m := sized(t, nil)
	m = run(t, m, "tree show")
	if m.Entries()[0].Err == nil {
		t.Error("expected an error without an executor")
	}
}
