// Package app wires the Bubble Tea program: the router, the header with
// the learner's coins, and delivery of acknowledgments to the screens.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codekitchen/internal/progression"
	"github.com/abhisek/codekitchen/internal/router"
	"github.com/abhisek/codekitchen/internal/screen"
	"github.com/abhisek/codekitchen/internal/screens/home"
	"github.com/abhisek/codekitchen/internal/screens/kitchen"
	"github.com/abhisek/codekitchen/internal/screens/welcome"
	"github.com/abhisek/codekitchen/internal/store"
	"github.com/abhisek/codekitchen/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Controller *progression.Controller
	Journal    store.EventRepo

	// SkipWelcome opens the home screen directly.
	SkipWelcome bool

	// Rules are shown on the welcome screen.
	StartingCoins int
	HintCost      int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctrl   *progression.Controller
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the welcome or home screen.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(opts.Controller, opts.Journal)
	}

	var first screen.Screen
	if opts.SkipWelcome {
		first = homeFactory()
	} else {
		first = welcome.New(homeFactory, welcome.Rules{
			StartingCoins: opts.StartingCoins,
			HintCost:      opts.HintCost,
		})
	}

	return AppModel{
		ctrl:   opts.Controller,
		router: router.New(first),
	}
}

// waitForAck blocks until the controller acknowledges a solved session.
func (m AppModel) waitForAck() tea.Cmd {
	acks := m.ctrl.Acknowledgements()
	return func() tea.Msg {
		ack, ok := <-acks
		if !ok {
			return nil
		}
		return kitchen.AcknowledgedMsg(ack)
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.waitForAck())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.ctrl.Close()
			return m, tea.Quit
		}

	case kitchen.AcknowledgedMsg:
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, m.waitForAck())
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	w := m.ctrl.Wallet()
	header := layout.RenderHeader(title, layout.HeaderStats{
		Coins:     w.Balance,
		Completed: w.Completed,
		Total:     w.Challenges,
	}, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
