// Package session runs a single attempt at a challenge: the shuffled
// working order, correctness feedback and the hints bought for it.
package session

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/codekitchen/internal/challenge"
	"github.com/abhisek/codekitchen/internal/reorder"
	"github.com/abhisek/codekitchen/internal/validator"
)

// IncorrectOutput is shown instead of the program output when a check fails.
const IncorrectOutput = "Code order is incorrect. Try rearranging the blocks!"

// ErrSessionComplete is returned when a solved session is asked to move blocks.
var ErrSessionComplete = errors.New("challenge already solved")

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Session is one attempt at a challenge. It is not safe for concurrent
// use; callers serialize access.
type Session struct {
	id        string
	challenge challenge.Challenge
	rng       Shuffler

	order          []string
	correct        validator.Result
	purchased      map[int]bool
	outcome        Outcome
	output         string
	hintsExhausted bool
	state          State

	moves     int
	checks    int
	startedAt time.Time
}

// New creates a session for ch and starts it.
func New(id string, ch challenge.Challenge, rng Shuffler) *Session {
	s := &Session{
		id:        id,
		challenge: ch.Clone(),
		rng:       rng,
	}
	s.Start()
	return s
}

// Start shuffles the blocks and clears all attempt state. The shuffle may
// happen to produce the canonical order.
func (s *Session) Start() {
	order := s.challenge.BlockIDs()
	if s.rng != nil {
		s.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	s.order = order
	s.purchased = make(map[int]bool)
	s.outcome = OutcomePending
	s.output = ""
	s.hintsExhausted = false
	s.state = StateShuffled
	s.moves = 0
	s.checks = 0
	s.startedAt = time.Now()
	s.recompute()
}

// Reset starts the same challenge over.
func (s *Session) Reset() {
	s.Start()
}

// Reorder moves the block at from to index to. A drop with no target
// (reorder.NoTarget) leaves everything unchanged.
func (s *Session) Reorder(from, to int) error {
	if s.state == StateCorrect {
		return ErrSessionComplete
	}
	if to == reorder.NoTarget {
		return nil
	}

	next, err := reorder.Move(s.order, from, to)
	if err != nil {
		return fmt.Errorf("reorder blocks: %w", err)
	}

	s.order = next
	s.moves++
	if s.state == StateIncorrect {
		s.state = StateShuffled
	}
	s.recompute()
	return nil
}

// Check validates the current order.
func (s *Session) Check() CheckResult {
	if s.state == StateCorrect {
		return s.result(false)
	}

	s.state = StateChecking
	s.checks++
	s.recompute()

	if s.correct.ExactMatch {
		s.state = StateCorrect
		s.outcome = OutcomeCorrect
		s.output = s.challenge.ExpectedOutput
		return s.result(true)
	}

	s.state = StateIncorrect
	s.outcome = OutcomeIncorrect
	s.output = IncorrectOutput
	if len(s.purchased) == len(s.challenge.Hints) {
		s.hintsExhausted = true
	}
	return s.result(false)
}

func (s *Session) result(completed bool) CheckResult {
	return CheckResult{
		Outcome:           s.outcome,
		Output:            s.output,
		MatchingPositions: s.CorrectPositions(),
		HintsExhausted:    s.hintsExhausted,
		Completed:         completed,
	}
}

func (s *Session) recompute() {
	s.correct = validator.Evaluate(s.order, s.challenge.CanonicalOrder)
}

func (s *Session) ID() string { return s.id }

// Challenge returns a copy of the challenge being attempted.
func (s *Session) Challenge() challenge.Challenge { return s.challenge.Clone() }

// Order returns the current block id order.
func (s *Session) Order() []string { return slices.Clone(s.order) }

// Blocks returns the blocks in their current order.
func (s *Session) Blocks() []challenge.CodeBlock {
	out := make([]challenge.CodeBlock, 0, len(s.order))
	for _, id := range s.order {
		if b, ok := s.challenge.Block(id); ok {
			out = append(out, b)
		}
	}
	return out
}

// CorrectPositions returns the indices already holding their canonical block.
func (s *Session) CorrectPositions() []int {
	return slices.Clone(s.correct.MatchingPositions)
}

// IsCorrectAt reports whether index i holds its canonical block.
func (s *Session) IsCorrectAt(i int) bool { return s.correct.Contains(i) }

// PurchasedHints returns the purchased hint indices in ascending order.
func (s *Session) PurchasedHints() []int {
	out := make([]int, 0, len(s.purchased))
	for i := range s.purchased {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

func (s *Session) Outcome() Outcome     { return s.outcome }
func (s *Session) Output() string       { return s.output }
func (s *Session) HintsExhausted() bool { return s.hintsExhausted }
func (s *Session) State() State         { return s.state }
func (s *Session) Solved() bool         { return s.state == StateCorrect }
func (s *Session) Moves() int           { return s.moves }
func (s *Session) Checks() int          { return s.checks }
func (s *Session) StartedAt() time.Time { return s.startedAt }

// The methods below make a Session a coins.HintLedger.

func (s *Session) SessionID() string   { return s.id }
func (s *Session) ChallengeID() string { return s.challenge.ID }
func (s *Session) HintCount() int      { return len(s.challenge.Hints) }

func (s *Session) HasHint(index int) bool { return s.purchased[index] }

func (s *Session) RecordHint(index int) {
	if index < 0 || index >= len(s.challenge.Hints) {
		return
	}
	s.purchased[index] = true
}
