// Package kitchen is the screen where a learner reorders the blocks of
// one challenge, buys hints and checks the result.
package kitchen

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codekitchen/internal/coins"
	"github.com/abhisek/codekitchen/internal/progression"
	"github.com/abhisek/codekitchen/internal/reorder"
	"github.com/abhisek/codekitchen/internal/router"
	"github.com/abhisek/codekitchen/internal/screen"
	"github.com/abhisek/codekitchen/internal/session"
	"github.com/abhisek/codekitchen/internal/ui/components"
	"github.com/abhisek/codekitchen/internal/ui/layout"
)

const noGrab = -1

// KitchenScreen implements screen.Screen for an active challenge.
type KitchenScreen struct {
	ctrl        *progression.Controller
	challengeID string

	view    progression.View
	started bool

	cursor  int
	grabbed int

	status   string
	statusOK bool

	concept     progression.ConceptView
	showConcept bool
	celebrating bool
	errMsg      string

	checkBtn components.Button
	resetBtn components.Button
}

var _ screen.Screen = (*KitchenScreen)(nil)
var _ screen.KeyHintProvider = (*KitchenScreen)(nil)

// New creates a KitchenScreen that starts challengeID when initialized.
func New(ctrl *progression.Controller, challengeID string) *KitchenScreen {
	s := &KitchenScreen{
		ctrl:        ctrl,
		challengeID: challengeID,
		grabbed:     noGrab,
	}
	s.checkBtn = components.NewButton("Check", "c", true, s.check)
	s.resetBtn = components.NewButton("Reset", "r", true, s.reset)
	return s
}

func (s *KitchenScreen) Init() tea.Cmd {
	return func() tea.Msg {
		v, err := s.ctrl.StartChallenge(context.Background(), s.challengeID)
		return startedMsg{View: v, Err: err}
	}
}

func (s *KitchenScreen) Title() string {
	if !s.started {
		return "Kitchen"
	}
	return s.view.Title
}

func (s *KitchenScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.celebrating:
		return []layout.KeyHint{{Key: "", Description: "Plating up..."}}
	case s.showConcept:
		return []layout.KeyHint{{Key: "Enter", Description: "Try again"}}
	case s.grabbed != noGrab:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Space", Description: "Drop"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Cursor"},
		{Key: "Space", Description: "Grab"},
		{Key: "1-9", Description: fmt.Sprintf("Hint (%d coins)", s.view.HintCost)},
		{Key: "C", Description: "Check"},
		{Key: "R", Description: "Reset"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *KitchenScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.started = true
		s.apply(msg.View)
		return s, nil

	case AcknowledgedMsg:
		if s.celebrating && msg.Handle == s.view.Handle {
			return s, popCmd
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func popCmd() tea.Msg { return router.PopScreenMsg{} }

func (s *KitchenScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, popCmd
	}
	if !s.started || s.celebrating {
		return s, nil
	}

	if s.showConcept {
		switch key {
		case "enter", "esc", "space", " ":
			v, err := s.ctrl.DismissConcept(context.Background(), s.view.Handle)
			return s.after(v, err, "Fresh start. The blocks have been shuffled.")
		}
		return s, nil
	}

	if s.grabbed != noGrab {
		switch key {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "space", " ", "enter":
			from := s.grabbed
			s.grabbed = noGrab
			v, err := s.ctrl.Reorder(context.Background(), s.view.Handle, from, s.cursor)
			return s.after(v, err, "")
		case "esc":
			// Released outside any drop target.
			from := s.grabbed
			s.grabbed = noGrab
			v, err := s.ctrl.Reorder(context.Background(), s.view.Handle, from, reorder.NoTarget)
			return s.after(v, err, "")
		}
		return s, nil
	}

	switch key {
	case "up", "k":
		s.moveCursor(-1)
	case "down", "j":
		s.moveCursor(1)
	case "space", " ", "enter":
		if len(s.view.Blocks) > 0 {
			s.grabbed = s.cursor
		}
	case "c", "r":
		// OnPress updates s, buttons included; the returned copies are stale.
		_, checkCmd := s.checkBtn.Update(msg)
		_, resetCmd := s.resetBtn.Update(msg)
		return s, tea.Batch(checkCmd, resetCmd)
	case "esc":
		if err := s.ctrl.Leave(context.Background(), s.view.Handle); err != nil {
			s.setStatus(err.Error(), false)
			return s, nil
		}
		return s, popCmd
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return s.purchase(int(key[0] - '1'))
	}
	return s, nil
}

func (s *KitchenScreen) check() tea.Cmd {
	res, err := s.ctrl.CheckSolution(context.Background(), s.view.Handle)
	if err != nil {
		_, cmd := s.after(progression.View{}, err, "")
		return cmd
	}
	s.refresh()

	switch {
	case res.Outcome == session.OutcomeCorrect:
		s.celebrating = true
		s.setStatus(res.Output, true)
	case res.HintsExhausted:
		s.setStatus(res.Output, false)
		return s.openConcept()
	default:
		s.setStatus(res.Output, false)
	}
	return nil
}

func (s *KitchenScreen) reset() tea.Cmd {
	v, err := s.ctrl.ResetChallenge(context.Background(), s.view.Handle)
	_, cmd := s.after(v, err, "Blocks reshuffled.")
	return cmd
}

// openConcept shows the concept panel once every hint has been bought.
func (s *KitchenScreen) openConcept() tea.Cmd {
	concept, err := s.ctrl.Concept(s.view.Handle)
	if err != nil {
		_, cmd := s.after(progression.View{}, err, "")
		return cmd
	}
	s.concept = concept
	s.showConcept = concept.Available
	return nil
}

func (s *KitchenScreen) purchase(index int) (screen.Screen, tea.Cmd) {
	if index >= len(s.view.Hints) {
		return s, nil
	}
	v, res, err := s.ctrl.PurchaseHint(context.Background(), s.view.Handle, index)
	if err != nil {
		s.setStatus(err.Error(), false)
		return s, nil
	}
	s.apply(v)

	switch res.Status {
	case coins.Purchased:
		s.setStatus(fmt.Sprintf("Hint %d unlocked for %d coins.", index+1, res.Cost), true)
	case coins.InsufficientFunds:
		s.setStatus(fmt.Sprintf("Not enough coins: a hint costs %d, you have %d.", res.Cost, res.Balance), false)
	default:
		s.setStatus(res.Status.DisplayName(), false)
	}
	return s, nil
}

// after applies the result of a controller operation.
func (s *KitchenScreen) after(v progression.View, err error, okStatus string) (screen.Screen, tea.Cmd) {
	if err != nil {
		if errors.Is(err, progression.ErrNoSession) {
			s.errMsg = "This session is no longer active."
			return s, nil
		}
		s.setStatus(err.Error(), false)
		return s, nil
	}
	s.showConcept = false
	s.apply(v)
	if okStatus != "" {
		s.setStatus(okStatus, true)
	}
	return s, nil
}

func (s *KitchenScreen) refresh() {
	if v, err := s.ctrl.Session(s.view.Handle); err == nil {
		s.apply(v)
	}
}

func (s *KitchenScreen) apply(v progression.View) {
	s.view = v
	if s.cursor >= len(v.Blocks) {
		s.cursor = max(len(v.Blocks)-1, 0)
	}
	s.checkBtn.Active = !v.Solved
	s.resetBtn.Active = !v.AwaitingAck
}

func (s *KitchenScreen) moveCursor(delta int) {
	next := s.cursor + delta
	if next < 0 || next >= len(s.view.Blocks) {
		return
	}
	s.cursor = next
}

func (s *KitchenScreen) setStatus(text string, ok bool) {
	s.status = text
	s.statusOK = ok
}
