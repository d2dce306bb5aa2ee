package wallet

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codekitchen/internal/progression"
	"github.com/abhisek/codekitchen/internal/router"
	"github.com/abhisek/codekitchen/internal/screen"
	"github.com/abhisek/codekitchen/internal/store"
	"github.com/abhisek/codekitchen/internal/ui/components"
	"github.com/abhisek/codekitchen/internal/ui/layout"
	"github.com/abhisek/codekitchen/internal/ui/theme"
)

// ledgerLimit caps how many coin events the screen loads.
const ledgerLimit = 200

type ledgerLoadedMsg struct {
	Records []store.CoinEventRecord
	Err     error
}

// filter selects which coin movements are listed.
type filter int

const (
	filterAll filter = iota
	filterEarned
	filterSpent
)

var filters = []filter{filterAll, filterEarned, filterSpent}

func (f filter) label() string {
	switch f {
	case filterEarned:
		return "Earned"
	case filterSpent:
		return "Spent"
	default:
		return "All"
	}
}

func (f filter) keep(r store.CoinEventRecord) bool {
	switch f {
	case filterEarned:
		return r.Kind == store.CoinCredit
	case filterSpent:
		return r.Kind == store.CoinDebit
	default:
		return true
	}
}

// WalletScreen shows the coin balance and the ledger of coin movements.
type WalletScreen struct {
	ctrl         *progression.Controller
	journal      store.EventRepo
	summary      progression.WalletView
	records      []store.CoinEventRecord
	selected     int // index into filters
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*WalletScreen)(nil)
var _ screen.KeyHintProvider = (*WalletScreen)(nil)

// New creates a new WalletScreen. A nil journal shows the totals only.
func New(ctrl *progression.Controller, journal store.EventRepo) *WalletScreen {
	return &WalletScreen{
		ctrl:    ctrl,
		journal: journal,
		summary: ctrl.Wallet(),
	}
}

func (s *WalletScreen) Init() tea.Cmd {
	return func() tea.Msg {
		if s.journal == nil {
			return ledgerLoadedMsg{}
		}
		records, err := s.journal.QueryCoinEvents(context.Background(), store.QueryOpts{Limit: ledgerLimit})
		return ledgerLoadedMsg{Records: records, Err: err}
	}
}

func (s *WalletScreen) Title() string {
	return "Wallet"
}

func (s *WalletScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Filter"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *WalletScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.selected = (s.selected + 1) % len(filters)
			s.scrollOffset = 0
		case "shift+tab":
			s.selected = (s.selected - 1 + len(filters)) % len(filters)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *WalletScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Counting coins...")
	}

	w := s.summary
	var b strings.Builder
	center := func(str string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, str))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	center(theme.Coins.Render(fmt.Sprintf("● %d coins", w.Balance)))
	center(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("earned %d · spent %d · hints cost %d", w.TotalEarned, w.TotalSpent, w.HintCost)))
	b.WriteString("\n")
	center(components.NewProgressBar("Cooked", w.Completed, w.Challenges, min(width-8, 60)).View())
	b.WriteString("\n")

	var tabs []string
	for i, f := range filters {
		label := fmt.Sprintf("%s (%d)", f.label(), s.count(f))
		if i == s.selected {
			tabs = append(tabs, theme.Selected.Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	center(strings.Join(tabs, "     "))
	b.WriteString("\n")
	center(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60))))
	b.WriteString("\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		center(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("No coin movements yet"))
		return b.String()
	}

	maxVisible := max(height-14, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))

	for _, rec := range filtered[start:end] {
		amount := fmt.Sprintf("+%d", rec.Amount)
		if rec.Kind == store.CoinDebit {
			amount = fmt.Sprintf("-%d", rec.Amount)
		}
		line := fmt.Sprintf("%6s  %-32s %5d  %s",
			amount, rec.Reason, rec.BalanceAfter, rec.Timestamp.Format("15:04:05"))
		center(lipgloss.NewStyle().Foreground(kindColor(rec.Kind)).Render(line))
	}

	if end < len(filtered) {
		b.WriteString("\n")
		center(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}

	return b.String()
}

func (s *WalletScreen) filtered() []store.CoinEventRecord {
	f := filters[s.selected]
	var out []store.CoinEventRecord
	for _, r := range s.records {
		if f.keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *WalletScreen) count(f filter) int {
	n := 0
	for _, r := range s.records {
		if f.keep(r) {
			n++
		}
	}
	return n
}

func kindColor(kind string) color.Color {
	if kind == store.CoinDebit {
		return theme.Accent
	}
	return theme.Success
}
