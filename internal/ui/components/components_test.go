package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMenuSkipsDisabled(t *testing.T) {
	fired := ""
	m := NewMenu([]MenuItem{
		{Label: "Sign in", Disabled: true},
		{Label: "Continue as guest", Action: func() tea.Cmd { fired = "guest"; return nil }},
		{Label: "Quit", Action: func() tea.Cmd { fired = "quit"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up onto a disabled item should not move, got %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if fired != "quit" {
		t.Errorf("expected quit action, got %q", fired)
	}
}

func TestMenuViewShowsDetail(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Ordering Food", Detail: "10-15 mins · 100 XP"}})
	view := m.View()
	if !strings.Contains(view, "Ordering Food") || !strings.Contains(view, "100 XP") {
		t.Errorf("unexpected view: %q", view)
	}
}

func TestMultiChoice(t *testing.T) {
	m := NewMultiChoice([]string{"hola", "adiós", "gracias"})
	if m.Value() != "hola" {
		t.Fatalf("expected first option, got %q", m.Value())
	}

	m, changed := m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if !changed || m.Value() != "adiós" {
		t.Errorf("down: changed=%v value=%q", changed, m.Value())
	}

	m, changed = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if !changed || m.Value() != "gracias" {
		t.Errorf("shortcut: changed=%v value=%q", changed, m.Value())
	}

	m, changed = m.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	if changed || m.Value() != "gracias" {
		t.Errorf("out of range shortcut should be ignored, got %q", m.Value())
	}

	m, changed = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if changed {
		t.Error("down at the last option should not change selection")
	}
}

func TestMultiChoiceEmpty(t *testing.T) {
	m := NewMultiChoice(nil)
	if m.Value() != "" {
		t.Errorf("expected empty value, got %q", m.Value())
	}
}

func TestHistogram(t *testing.T) {
	out := Histogram([]Bar{{"Mon", 40}, {"Thu", 210}, {"Sat", 0}}, 60)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "210") {
		t.Errorf("expected value on Thu row, got %q", lines[1])
	}
}

func TestHistogramAllZero(t *testing.T) {
	out := Histogram([]Bar{{"Mon", 0}, {"Tue", 0}}, 40)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}

func TestSpinnerWraps(t *testing.T) {
	var s Spinner
	for range spinnerFrames {
		s = s.Advance()
	}
	if s.frame != 0 {
		t.Errorf("expected wrap to frame 0, got %d", s.frame)
	}
}
