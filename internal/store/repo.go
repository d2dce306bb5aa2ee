package store

import (
	"context"
	"time"
)

// Session actions recorded in the journal.
const (
	ActionStart       = "start"
	ActionReset       = "reset"
	ActionCheck       = "check"
	ActionComplete    = "complete"
	ActionLeave       = "leave"
	ActionAcknowledge = "acknowledge"
)

// Coin event kinds.
const (
	CoinCredit = "credit"
	CoinDebit  = "debit"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SessionEventData captures one step of a challenge attempt.
type SessionEventData struct {
	SessionID   string
	ChallengeID string
	Action      string
	Moves       int
	Checks      int
	Outcome     string
}

// SessionEventRecord is a stored session event.
type SessionEventRecord struct {
	SessionEventData
	Sequence  int64
	Timestamp time.Time
}

// HintEventData captures a purchased hint.
type HintEventData struct {
	SessionID   string
	ChallengeID string
	HintIndex   int
	Cost        int
}

// CoinEventData captures a wallet movement.
type CoinEventData struct {
	Kind         string
	Amount       int
	BalanceAfter int
	Reason       string
	ChallengeID  string
	SessionID    string
}

// CoinEventRecord is a stored coin event.
type CoinEventRecord struct {
	CoinEventData
	Sequence  int64
	Timestamp time.Time
}

// CoinTotals aggregates all coin events.
type CoinTotals struct {
	Earned int
	Spent  int
}

// SessionSummaryRecord describes one finished attempt (completed or left).
type SessionSummaryRecord struct {
	SessionID   string
	ChallengeID string
	Outcome     string
	Moves       int
	Checks      int
	HintsBought int
	Completed   bool
	Timestamp   time.Time
}

// EventRepo provides append and query access to the activity journal.
type EventRepo interface {
	// AppendSessionEvent records a session lifecycle step.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendHintEvent records a hint purchase.
	AppendHintEvent(ctx context.Context, data HintEventData) error

	// AppendCoinEvent records a credit or debit.
	AppendCoinEvent(ctx context.Context, data CoinEventData) error

	// QuerySessionEvents returns session events, newest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)

	// QueryCoinEvents returns coin events, newest first.
	QueryCoinEvents(ctx context.Context, opts QueryOpts) ([]CoinEventRecord, error)

	// CoinTotals sums credits and debits.
	CoinTotals(ctx context.Context) (CoinTotals, error)

	// SessionSummaries returns one record per finished attempt, newest first.
	SessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)
}
