package kitchen

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codekitchen/internal/challenge"
	"github.com/abhisek/codekitchen/internal/ui/components"
	"github.com/abhisek/codekitchen/internal/ui/theme"
)

func (s *KitchenScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if !s.started {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Setting up the kitchen...")
	}
	if s.celebrating {
		return s.renderCelebration(width, height)
	}
	if s.showConcept {
		return s.renderConcept(width, height)
	}

	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, s.renderInfo(cw))
	sections = append(sections, s.renderBlocks(cw))
	sections = append(sections, s.renderHints(cw))
	sections = append(sections, s.renderActions())
	if s.status != "" {
		style := theme.Incorrect
		if s.statusOK {
			style = theme.Correct
		}
		sections = append(sections, style.Render(s.status))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (s *KitchenScreen) renderInfo(cw int) string {
	v := s.view
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("%s %s", v.Difficulty.Icon(), v.Difficulty.DisplayName()))
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("moves %d  checks %d  ", v.Moves, v.Checks)) +
		theme.Coins.Render(fmt.Sprintf("+%d", v.Reward))

	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left + strings.Repeat(" ", gap) + right

	instruction := v.Instruction
	if instruction == "" {
		instruction = v.Description
	}
	return line + "\n" + theme.Hint.Width(cw).Render(instruction)
}

func (s *KitchenScreen) renderBlocks(cw int) string {
	var b strings.Builder
	for i, block := range s.view.Blocks {
		marker := "  "
		if s.view.IsCorrectAt(i) {
			marker = theme.Correct.Render("✓ ")
		}

		pointer := "  "
		if i == s.cursor {
			pointer = theme.Selected.Render("▸ ")
		}

		style := theme.CodeLine
		if block.Type == challenge.BlockComment {
			style = theme.CommentLine
		}
		if i == s.grabbed || (s.grabbed != noGrab && i == s.cursor) {
			style = theme.Grabbed
		}

		b.WriteString(pointer + marker + style.Render(block.Content))
		if i < len(s.view.Blocks)-1 {
			b.WriteString("\n")
		}
	}
	return theme.Panel.Width(cw).Render(b.String())
}

func (s *KitchenScreen) renderHints(cw int) string {
	if len(s.view.Hints) == 0 {
		return ""
	}
	var lines []string
	for _, h := range s.view.Hints {
		if h.Purchased {
			lines = append(lines, fmt.Sprintf("%d. %s", h.Index+1, h.Text))
			continue
		}
		lines = append(lines, theme.Locked.Render(
			fmt.Sprintf("%d. locked (%d coins)", h.Index+1, s.view.HintCost)))
	}
	return theme.Hint.Width(cw).Render(strings.Join(lines, "\n"))
}

func (s *KitchenScreen) renderActions() string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		s.checkBtn.View(), "  ", s.resetBtn.View())
}

func (s *KitchenScreen) renderConcept(width, height int) string {
	cw := components.ContentWidth(width)
	body := theme.Title.Render("Concept: "+s.concept.Concept) + "\n\n" +
		theme.Body.Width(cw-6).Render(s.concept.Explanation) + "\n\n" +
		theme.Hint.Render("Press Enter to start this dish over.")
	return components.Frame(components.Card(body, cw), width, height)
}

func (s *KitchenScreen) renderCelebration(width, height int) string {
	cw := components.ContentWidth(width)
	body := theme.Correct.Render("Order up!") + "\n\n" +
		theme.Body.Render(s.view.Title) + "\n" +
		theme.Coins.Render(fmt.Sprintf("+%d coins", s.view.Reward))
	if s.view.Output != "" {
		body += "\n\n" + theme.CodeLine.Render(s.view.Output)
	}
	return components.Frame(components.Card(body, cw), width, height)
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}
