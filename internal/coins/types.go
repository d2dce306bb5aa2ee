package coins

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient coins")
	ErrAlreadyPurchased  = errors.New("hint already purchased")
	ErrNoSuchHint        = errors.New("no such hint")
)

// PurchaseStatus reports how a hint purchase was settled.
type PurchaseStatus string

const (
	Purchased         PurchaseStatus = "purchased"
	InsufficientFunds PurchaseStatus = "insufficient_funds"
	AlreadyPurchased  PurchaseStatus = "already_purchased"
	NoSuchHint        PurchaseStatus = "no_such_hint"
)

// DisplayName returns a human-readable label for the status.
func (s PurchaseStatus) DisplayName() string {
	switch s {
	case Purchased:
		return "Hint unlocked"
	case InsufficientFunds:
		return "Not enough coins"
	case AlreadyPurchased:
		return "Already unlocked"
	case NoSuchHint:
		return "No such hint"
	default:
		return string(s)
	}
}

// PurchaseResult is the outcome of a hint purchase. A declined purchase
// leaves wallet and ledger untouched.
type PurchaseResult struct {
	Status    PurchaseStatus `json:"status"`
	HintIndex int            `json:"hintIndex"`
	Cost      int            `json:"cost"`
	Balance   int            `json:"balance"`
}

// OK reports whether the purchase went through.
func (r PurchaseResult) OK() bool {
	return r.Status == Purchased
}

// Err maps a declined purchase to its sentinel error, nil otherwise.
func (r PurchaseResult) Err() error {
	switch r.Status {
	case InsufficientFunds:
		return ErrInsufficientFunds
	case AlreadyPurchased:
		return ErrAlreadyPurchased
	case NoSuchHint:
		return ErrNoSuchHint
	default:
		return nil
	}
}

// HintLedger is the per-session record of purchased hints.
type HintLedger interface {
	SessionID() string
	ChallengeID() string
	HintCount() int
	HasHint(index int) bool
	RecordHint(index int)
}
