package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{120, 23, true},
		{200, 60, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestMinSizeMessageSaysWhatIsMissing(t *testing.T) {
	msg := RenderMinSizeMessage(70, 20)
	for _, want := range []string{"too cramped", "10 more columns", "4 more rows"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestHeaderShowsCoinsAndProgress(t *testing.T) {
	h := RenderHeader("Menu", HeaderStats{Coins: 120, Completed: 3, Total: 60}, 100)
	for _, want := range []string{"CodeKitchen", "Menu", "120 coins", "3/60"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestFitHintsKeepsLastHint(t *testing.T) {
	hints := []KeyHint{
		{Key: "↑↓", Description: "Cursor"},
		{Key: "Space", Description: "Grab"},
		{Key: "C", Description: "Check"},
		{Key: "Ctrl+C", Description: "Quit"},
	}

	got := fitHints(hints, 30)
	if !strings.Contains(got, "Quit") || !strings.Contains(got, "Cursor") {
		t.Errorf("fitHints() = %q, want first and last hints", got)
	}
	if strings.Contains(got, "Check") {
		t.Errorf("fitHints() = %q, want middle hints dropped", got)
	}

	if all := fitHints(hints, 200); !strings.Contains(all, "Check") {
		t.Errorf("fitHints() = %q, want every hint when there is room", all)
	}
}

func TestStatusHintHasNoKey(t *testing.T) {
	got := fitHints([]KeyHint{{Description: "Plating up..."}}, 80)
	if lipgloss.Width(got) != len("Plating up...") {
		t.Errorf("width = %d, want %d", lipgloss.Width(got), len("Plating up..."))
	}
}
