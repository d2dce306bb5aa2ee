package home

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codekitchen/internal/catalog"
	"github.com/abhisek/codekitchen/internal/challenge"
	"github.com/abhisek/codekitchen/internal/progression"
	"github.com/abhisek/codekitchen/internal/router"
	"github.com/abhisek/codekitchen/internal/screen"
	"github.com/abhisek/codekitchen/internal/screens/history"
	"github.com/abhisek/codekitchen/internal/screens/kitchen"
	"github.com/abhisek/codekitchen/internal/screens/wallet"
	"github.com/abhisek/codekitchen/internal/store"
	"github.com/abhisek/codekitchen/internal/ui/components"
	"github.com/abhisek/codekitchen/internal/ui/layout"
	"github.com/abhisek/codekitchen/internal/ui/theme"
)

// HomeScreen lists the catalog and opens challenges.
type HomeScreen struct {
	ctrl    *progression.Controller
	journal store.EventRepo

	ids     []string
	menu    components.Menu
	jump    components.TextInput
	jumping bool
	status  string

	wallet progression.WalletView
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen. journal may be nil, in which case the
// wallet and history screens show no journal entries.
func New(ctrl *progression.Controller, journal store.EventRepo) *HomeScreen {
	h := &HomeScreen{
		ctrl:    ctrl,
		journal: journal,
		jump:    components.NewTextInput("challenge id", false, 12),
	}
	h.reload()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes flags and balance after a challenge screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	h.reload()
	return nil
}

func (h *HomeScreen) reload() {
	summaries := h.ctrl.ListChallenges()
	items := make([]components.MenuItem, len(summaries))
	h.ids = make([]string, len(summaries))
	frontier := 0
	for i, s := range summaries {
		id := s.ID
		h.ids[i] = id
		items[i] = components.MenuItem{
			Label:    fmt.Sprintf("%3s  %s", id, s.Title),
			Detail:   detail(s),
			Disabled: s.Locked,
			Action:   func() tea.Cmd { return h.open(id) },
		}
		if !s.Locked {
			frontier = i
		}
	}
	h.menu = components.NewMenu(items)
	h.menu.Select(frontier)
	h.wallet = h.ctrl.Wallet()
}

func detail(s challenge.Summary) string {
	switch {
	case s.Completed:
		return "✓ cooked"
	case s.Locked:
		return "locked"
	default:
		return fmt.Sprintf("%s %s · %d coins · %s",
			s.Difficulty.Icon(), s.Difficulty.DisplayName(), s.CoinsReward, s.EstimatedTime)
	}
}

func (h *HomeScreen) open(id string) tea.Cmd {
	h.status = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: kitchen.New(h.ctrl, id)}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if h.jumping {
			var cmd tea.Cmd
			h.jump, cmd = h.jump.Update(msg)
			return h, cmd
		}
		return h, nil
	}

	if h.jumping {
		switch kmsg.String() {
		case "esc":
			h.jumping = false
			h.jump.Clear()
			return h, nil
		case "enter":
			return h, h.jumpTo(strings.TrimSpace(h.jump.Value()))
		}
		var cmd tea.Cmd
		h.jump, cmd = h.jump.Update(msg)
		return h, cmd
	}

	switch kmsg.String() {
	case "/":
		h.jumping = true
		h.status = ""
		return h, h.jump.Init()
	case "w":
		return h, push(wallet.New(h.ctrl, h.journal))
	case "h":
		return h, push(history.New(h.ctrl, h.journal))
	case "q":
		return h, tea.Quit
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// jumpTo opens the challenge with the typed id when it is playable.
func (h *HomeScreen) jumpTo(id string) tea.Cmd {
	ch, err := h.ctrl.FindChallenge(id)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		h.jump.Submit(false)
		h.status = fmt.Sprintf("No challenge #%s on the menu.", id)
		return nil
	case err != nil:
		h.jump.Submit(false)
		h.status = err.Error()
		return nil
	case ch.Locked:
		h.jump.Submit(false)
		h.status = fmt.Sprintf("Challenge #%s is still locked.", id)
		return nil
	}

	h.jumping = false
	h.jump.Clear()
	h.menu.Select(slices.Index(h.ids, id))
	return h.open(id)
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.jumping {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Open"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "Enter", Description: "Cook"},
		{Key: "/", Description: "Jump to #"},
		{Key: "W", Description: "Wallet"},
		{Key: "H", Description: "History"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer
	termHeight := height + layout.HeaderHeight + layout.FooterHeight
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)
	w := h.wallet

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(
			pickMascot(w.Completed, w.Challenges, w.Balance, w.HintCost), cw))
	}
	sections = append(sections, renderStatsBar(w.Completed, w.Challenges, w.Balance, w.HintCost, cw))

	used := lipgloss.Height(strings.Join(sections, "\n\n")) + 8
	rows := max(height-used, 3)
	sections = append(sections, lipgloss.NewStyle().Width(cw).Render(h.menu.Window(rows)))

	if h.jumping {
		sections = append(sections, "Jump to "+h.jump.View())
	}
	if h.status != "" {
		sections = append(sections, theme.Incorrect.Render(h.status))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Menu"
}
