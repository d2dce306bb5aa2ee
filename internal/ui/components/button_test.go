package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestButtonFiresOnItsKey(t *testing.T) {
	pressed := 0
	b := NewButton("Check", "c", true, func() tea.Cmd {
		pressed++
		return nil
	})

	b.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	b.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})

	if pressed != 1 {
		t.Errorf("pressed = %d, want 1", pressed)
	}
}

func TestInactiveButtonIgnoresKeys(t *testing.T) {
	pressed := false
	b := NewButton("Reset", "r", false, func() tea.Cmd {
		pressed = true
		return nil
	})

	b.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if pressed {
		t.Error("inactive button should not fire")
	}
}
