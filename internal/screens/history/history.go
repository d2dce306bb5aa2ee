package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codekitchen/internal/progression"
	"github.com/abhisek/codekitchen/internal/router"
	"github.com/abhisek/codekitchen/internal/screen"
	"github.com/abhisek/codekitchen/internal/store"
	"github.com/abhisek/codekitchen/internal/ui/layout"
	"github.com/abhisek/codekitchen/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Err      error
}

// HistoryScreen lists finished attempts from the journal.
type HistoryScreen struct {
	ctrl     *progression.Controller
	journal  store.EventRepo
	sessions []store.SessionSummaryRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ctrl *progression.Controller, journal store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		ctrl:     ctrl,
		journal:  journal,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		if s.journal == nil {
			return historyLoadedMsg{}
		}
		sessions, err := s.journal.SessionSummaries(context.Background(), store.QueryOpts{Limit: 50})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) title(challengeID string) string {
	if ch, err := s.ctrl.FindChallenge(challengeID); err == nil {
		return ch.Title
	}
	return "#" + challengeID
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing cooked yet. Pick a dish from the menu!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		mark := "left"
		if rec.Completed {
			mark = "✓"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-4s %-28s %s",
			prefix, rec.Timestamp.Format("Jan 02 15:04"), mark, s.title(rec.ChallengeID),
			plural(rec.Moves, "move"))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if !rec.Completed {
			style = style.Foreground(theme.TextDim)
		}
		if i == s.selected {
			style = theme.Selected
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %s · %s · outcome %s",
				plural(rec.Checks, "check"), plural(rec.HintsBought, "hint"), rec.Outcome)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
