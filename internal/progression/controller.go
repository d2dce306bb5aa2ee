// Package progression owns the catalog, the coin economy and the single
// active session, and runs the completion flow that unlocks the next
// challenge.
package progression

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/codekitchen/internal/catalog"
	"github.com/abhisek/codekitchen/internal/challenge"
	"github.com/abhisek/codekitchen/internal/coins"
	"github.com/abhisek/codekitchen/internal/session"
	"github.com/abhisek/codekitchen/internal/store"
)

var (
	ErrLocked     = errors.New("challenge is locked")
	ErrNoSession  = errors.New("no such session")
	ErrAckPending = errors.New("challenge solved, waiting for acknowledgment")
)

// DefaultAckDelay covers the celebration plus the hand-off back to the list.
const DefaultAckDelay = 3500 * time.Millisecond

// Timer is a scheduled callback that can be stopped.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run after d.
type AfterFunc func(d time.Duration, f func()) Timer

// Options configures a Controller. Zero values select defaults.
type Options struct {
	HintCost        int
	StartingBalance int
	AckDelay        time.Duration

	// Rand shuffles new sessions. Defaults to a randomly seeded source.
	Rand session.Shuffler

	EventRepo store.EventRepo
	Logger    *slog.Logger

	// AfterFunc and NewHandle are test seams.
	AfterFunc AfterFunc
	NewHandle func() string
}

type active struct {
	handle string
	sess   *session.Session
	timer  Timer // non-nil once solved, until acknowledged
}

// Controller serializes every learner operation.
type Controller struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	economy *coins.Economy
	opts    Options
	logger  *slog.Logger

	current *active
	acks    chan Acknowledgement
}

// New creates a Controller over cat.
func New(cat *catalog.Catalog, opts Options) *Controller {
	if opts.HintCost <= 0 {
		opts.HintCost = coins.DefaultHintCost
	}
	if opts.AckDelay <= 0 {
		opts.AckDelay = DefaultAckDelay
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		}
	}
	if opts.NewHandle == nil {
		opts.NewHandle = uuid.NewString
	}

	wallet := coins.NewWallet(opts.StartingBalance)
	return &Controller{
		catalog: cat,
		economy: coins.NewEconomy(wallet, opts.HintCost, opts.EventRepo, opts.Logger),
		opts:    opts,
		logger:  opts.Logger,
		acks:    make(chan Acknowledgement, 8),
	}
}

// Acknowledgements delivers one value per solved session once its
// celebration delay has elapsed.
func (c *Controller) Acknowledgements() <-chan Acknowledgement {
	return c.acks
}

// ListChallenges returns the catalog with current flags.
func (c *Controller) ListChallenges() []challenge.Summary {
	return c.catalog.List()
}

// FindChallenge returns one catalog entry with current flags.
func (c *Controller) FindChallenge(id string) (challenge.Challenge, error) {
	return c.catalog.FindByID(id)
}

// CurrentCoinBalance returns the wallet balance.
func (c *Controller) CurrentCoinBalance() int {
	return c.economy.Wallet().Balance()
}

// StartChallenge begins a fresh attempt at id, replacing any active session.
func (c *Controller) StartChallenge(ctx context.Context, id string) (View, error) {
	ch, err := c.catalog.FindByID(id)
	if err != nil {
		return View{}, err
	}
	if ch.Locked {
		return View{}, fmt.Errorf("%w: %q", ErrLocked, id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.discardLocked(ctx)

	handle := c.opts.NewHandle()
	c.current = &active{
		handle: handle,
		sess:   session.New(handle, ch, c.opts.Rand),
	}

	c.logger.Info("challenge started", "session_id", handle, "challenge_id", id)
	c.journal(ctx, store.ActionStart)
	return c.viewLocked(), nil
}

// Reorder moves a block within the active session.
func (c *Controller) Reorder(ctx context.Context, handle string, from, to int) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, err := c.lookupLocked(handle)
	if err != nil {
		return View{}, err
	}
	if err := a.sess.Reorder(from, to); err != nil {
		return c.viewLocked(), err
	}
	return c.viewLocked(), nil
}

// PurchaseHint spends coins on a hint for the active session. A declined
// purchase is reported through the result, not the error.
func (c *Controller) PurchaseHint(ctx context.Context, handle string, index int) (View, coins.PurchaseResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, err := c.lookupLocked(handle)
	if err != nil {
		return View{}, coins.PurchaseResult{}, err
	}
	if a.sess.Solved() {
		return c.viewLocked(), coins.PurchaseResult{}, session.ErrSessionComplete
	}

	res := c.economy.Purchase(ctx, a.sess, index)
	return c.viewLocked(), res, nil
}

// CheckSolution validates the active session. The first correct check
// credits the reward, completes the challenge, unlocks the next one and
// schedules the acknowledgment.
func (c *Controller) CheckSolution(ctx context.Context, handle string) (session.CheckResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, err := c.lookupLocked(handle)
	if err != nil {
		return session.CheckResult{}, err
	}

	res := a.sess.Check()
	if !res.Completed {
		if res.Outcome == session.OutcomeIncorrect {
			c.journal(ctx, store.ActionCheck)
		}
		return res, nil
	}

	c.completeLocked(ctx, a)
	return res, nil
}

func (c *Controller) completeLocked(ctx context.Context, a *active) {
	ch := a.sess.Challenge()

	balance := c.economy.Credit(ctx, ch.CoinsReward, fmt.Sprintf("Completed %s", ch.Title), ch.ID, a.handle)
	c.catalog.MarkCompleted(ch.ID)
	c.catalog.UnlockNext(ch.ID)
	next, _ := c.catalog.Next(ch.ID)

	c.logger.Info("challenge completed",
		"session_id", a.handle,
		"challenge_id", ch.ID,
		"reward", ch.CoinsReward,
		"balance", balance,
		"checks", a.sess.Checks(),
	)
	c.journal(ctx, store.ActionComplete)

	ack := Acknowledgement{
		Handle:      a.handle,
		ChallengeID: ch.ID,
		Title:       ch.Title,
		Reward:      ch.CoinsReward,
		NextID:      next,
	}
	a.timer = c.opts.AfterFunc(c.opts.AckDelay, func() { c.acknowledge(ack) })
}

// acknowledge runs when the celebration delay elapses. It only discards
// the session it was armed for.
func (c *Controller) acknowledge(ack Acknowledgement) {
	c.mu.Lock()
	if c.current == nil || c.current.handle != ack.Handle {
		c.mu.Unlock()
		return
	}
	c.journal(context.Background(), store.ActionAcknowledge)
	c.current = nil
	c.mu.Unlock()

	c.logger.Info("session acknowledged", "session_id", ack.Handle, "challenge_id", ack.ChallengeID)

	select {
	case c.acks <- ack:
	default:
		c.logger.Warn("acknowledgement dropped", "session_id", ack.Handle)
	}
}

// ResetChallenge reshuffles the active session and clears its hints.
func (c *Controller) ResetChallenge(ctx context.Context, handle string) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, err := c.lookupLocked(handle)
	if err != nil {
		return View{}, err
	}
	if a.timer != nil {
		return c.viewLocked(), ErrAckPending
	}

	a.sess.Reset()
	c.journal(ctx, store.ActionReset)
	return c.viewLocked(), nil
}

// Leave abandons the active session.
func (c *Controller) Leave(ctx context.Context, handle string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, err := c.lookupLocked(handle)
	if err != nil {
		return err
	}
	if a.timer != nil {
		return ErrAckPending
	}

	c.logger.Info("challenge left", "session_id", handle, "challenge_id", a.sess.ChallengeID())
	c.journal(ctx, store.ActionLeave)
	c.current = nil
	return nil
}

// Session returns a snapshot of the active session.
func (c *Controller) Session(handle string) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.lookupLocked(handle); err != nil {
		return View{}, err
	}
	return c.viewLocked(), nil
}

// Current returns a snapshot of whichever session is active.
func (c *Controller) Current() (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return View{}, ErrNoSession
	}
	return c.viewLocked(), nil
}

// Concept returns the concept help for the active session. It is only
// available after a failed check with every hint bought.
func (c *Controller) Concept(handle string) (ConceptView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, err := c.lookupLocked(handle)
	if err != nil {
		return ConceptView{}, err
	}
	if !conceptAvailable(a.sess) {
		return ConceptView{}, nil
	}
	ch := a.sess.Challenge()
	return ConceptView{
		Available:   true,
		Concept:     ch.Concept,
		Explanation: ch.ConceptExplanation,
	}, nil
}

// DismissConcept closes the concept help and starts the attempt over.
func (c *Controller) DismissConcept(ctx context.Context, handle string) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, err := c.lookupLocked(handle)
	if err != nil {
		return View{}, err
	}
	if !conceptAvailable(a.sess) {
		return c.viewLocked(), nil
	}

	a.sess.Reset()
	c.journal(ctx, store.ActionReset)
	return c.viewLocked(), nil
}

// Wallet summarizes coins and catalog progress.
func (c *Controller) Wallet() WalletView {
	w := c.economy.Wallet()
	done, total := c.catalog.Progress()
	return WalletView{
		Balance:     w.Balance(),
		TotalEarned: w.TotalEarned(),
		TotalSpent:  w.TotalSpent(),
		HintCost:    c.economy.HintCost(),
		Completed:   done,
		Challenges:  total,
	}
}

// Close stops a pending acknowledgment timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.current.timer != nil {
		c.current.timer.Stop()
	}
}

func conceptAvailable(s *session.Session) bool {
	return s.HintsExhausted() && !s.Solved()
}

// discardLocked drops the active session, stopping its timer if armed.
func (c *Controller) discardLocked(ctx context.Context) {
	if c.current == nil {
		return
	}
	if c.current.timer != nil {
		c.current.timer.Stop()
	} else {
		c.journal(ctx, store.ActionLeave)
	}
	c.current = nil
}

func (c *Controller) lookupLocked(handle string) (*active, error) {
	if c.current == nil || c.current.handle != handle {
		return nil, fmt.Errorf("%w: %q", ErrNoSession, handle)
	}
	return c.current, nil
}

func (c *Controller) viewLocked() View {
	return buildView(c.current, c.economy.HintCost(), c.economy.Wallet().Balance())
}

// journal records a lifecycle step of the active session. Failures are
// logged and never surface to the learner.
func (c *Controller) journal(ctx context.Context, action string) {
	if c.opts.EventRepo == nil || c.current == nil {
		return
	}
	s := c.current.sess
	err := c.opts.EventRepo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:   c.current.handle,
		ChallengeID: s.ChallengeID(),
		Action:      action,
		Moves:       s.Moves(),
		Checks:      s.Checks(),
		Outcome:     string(s.Outcome()),
	})
	if err != nil {
		c.logger.Warn("journal session event", "action", action, "error", err)
	}
}
