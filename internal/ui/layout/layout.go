// Package layout draws the chrome around every screen: the header with the
// learner's coins, the footer with key hints, and the size guard.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codekitchen/internal/ui/theme"
)

const (
	// The board needs room for a full code line plus markers.
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

const hintSeparator = "  ·  "

// KeyHint is one key binding shown in the footer. An empty Key renders
// the description alone, as a status.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	desc := lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	if h.Key == "" {
		return desc
	}
	return lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(h.Key) + " " + desc
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall reports whether the terminal cannot fit the board.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the learner to make the kitchen bigger.
func RenderMinSizeMessage(width, height int) string {
	var need []string
	if width < MinWidth {
		need = append(need, fmt.Sprintf("%d more columns", MinWidth-width))
	}
	if height < MinHeight {
		need = append(need, fmt.Sprintf("%d more rows", MinHeight-height))
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("The kitchen is too cramped"),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Render(
			fmt.Sprintf("Needs %d x %d, have %d x %d", MinWidth, MinHeight, width, height)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			"Give it "+strings.Join(need, " and ")),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// HeaderStats is the learner state shown on the right of the header.
type HeaderStats struct {
	Coins     int
	Completed int
	Total     int
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader renders the brand on the left, the screen title centered
// and the coin balance with catalog progress on the right.
func RenderHeader(title string, stats HeaderStats, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  CodeKitchen")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	right := theme.Coins.Render(fmt.Sprintf("● %d coins", stats.Coins))
	if stats.Total > 0 {
		right += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("   ✓ %d/%d", stats.Completed, stats.Total))
	}

	inner := max(width-4, 0)
	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	rightGap := max(inner-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)

	return bar(width).Render(
		left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

// RenderFooter renders the key hints. When they do not fit, the hints just
// before the last one are dropped so the quit hint stays visible.
func RenderFooter(hints []KeyHint, width int) string {
	return bar(width).Render("  " + fitHints(hints, max(width-6, 0)))
}

func fitHints(hints []KeyHint, room int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = h.render()
	}
	for len(parts) > 2 && lipgloss.Width(strings.Join(parts, hintSeparator)) > room {
		parts = append(parts[:len(parts)-2], parts[len(parts)-1])
	}
	return strings.Join(parts, hintSeparator)
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the terminal.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(contentHeight).Render(content)
	return header + "\n" + body + "\n" + footer
}
