package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestProgressBarFraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 60, 0},
		{30, 60, 0.5},
		{60, 60, 1},
		{70, 60, 1},
		{3, 0, 0},
	}
	for _, tt := range tests {
		p := NewProgressBar("", tt.done, tt.total, 40)
		if got := p.Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestProgressBarShowsCount(t *testing.T) {
	v := NewProgressBar("Cooked", 3, 60, 40).View()
	if !strings.Contains(v, "3/60") {
		t.Errorf("View() = %q, want it to contain 3/60", v)
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "locked", Disabled: true},
		{Label: "a"},
		{Label: "locked", Disabled: true},
		{Label: "b"},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("after down Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("after up Selected = %d, want 1", m.Selected)
	}
	if m.Select(0) {
		t.Error("Select(0) on a disabled item should fail")
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Error("expected enter to run the selected action")
	}
}

func TestMenuWindowKeepsSelectionVisible(t *testing.T) {
	items := make([]MenuItem, 10)
	for i := range items {
		items[i] = MenuItem{Label: string(rune('a' + i))}
	}
	m := NewMenu(items)
	m.Select(7)

	v := m.Window(3)
	if got := strings.Count(v, "\n"); got != 3 {
		t.Errorf("Window(3) rendered %d rows, want 3", got)
	}
	if !strings.Contains(v, "▸ h") {
		t.Errorf("Window(3) = %q, want selected item h visible", v)
	}
}
