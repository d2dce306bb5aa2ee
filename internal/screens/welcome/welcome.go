package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codekitchen/internal/router"
	"github.com/abhisek/codekitchen/internal/screen"
	"github.com/abhisek/codekitchen/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const chefArt = `   .-=====-.
   |_______|
   ( ◉   ◉ )
    \  ▽  /
  ╭──┴───┴──╮
  │  {   }  │
  ╰─────────╯`

// steam rises from the pot once the kitchen warms up
var steamFrames = []string{"~", "≈"}

type tickMsg time.Time

// Rules are the numbers shown on the splash.
type Rules struct {
	StartingCoins int
	HintCost      int
}

// WelcomeScreen shows a splash animation with the rules of the game
// before replacing itself with the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	rules        Rules
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen, rules Rules) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
		rules:       rules,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the rest of the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(chefArt)

	if w.elapsed >= phase1End {
		steam := lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(strings.Repeat(steamFrames[w.tickCount%len(steamFrames)]+" ", 3))
		rendered = steam + "\n" + rendered
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Put the code blocks in the right order."))
		sections = append(sections, theme.Coins.Render(fmt.Sprintf(
			"You start with %d coins. Each hint costs %d.", w.rules.StartingCoins, w.rules.HintCost)))
		sections = append(sections, "", theme.Hint.Render("press any key to open the kitchen"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
