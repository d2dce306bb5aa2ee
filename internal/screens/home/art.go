package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codekitchen/internal/ui/theme"
)

const titleFull = `┏━╸┏━┓╺┳┓┏━╸   ╻┏ ╻╺┳╸┏━╸╻ ╻┏━╸┏┓╻
┃  ┃ ┃ ┃┃┣╸    ┣┻┓┃ ┃ ┃  ┣━┫┣╸ ┃┗┫
┗━╸┗━┛╺┻┛┗━╸   ╹ ╹╹ ╹ ┗━╸╹ ╹┗━╸╹ ╹`

const titleCompact = "C O D E · K I T C H E N"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render(art))
}

// renderStatsBar renders coins and progress in a bordered box matching
// content width.
func renderStatsBar(completed, total, balance, hintCost, cw int) string {
	done := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
		Render(fmt.Sprintf("✓ %d/%d COOKED", completed, total))
	coins := theme.Coins.Render(fmt.Sprintf("● %d COINS", balance))
	cost := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("hint %d", hintCost))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Highlight).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(done + "   " + coins + "   " + cost)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
