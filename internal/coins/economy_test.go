package coins

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/codekitchen/internal/store"
)

// mockEventRepo implements store.EventRepo for coins tests.
type mockEventRepo struct {
	hintEvents []store.HintEventData
	coinEvents []store.CoinEventData
	failAppend error
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, _ store.SessionEventData) error {
	return nil
}
func (m *mockEventRepo) AppendHintEvent(_ context.Context, data store.HintEventData) error {
	if m.failAppend != nil {
		return m.failAppend
	}
	m.hintEvents = append(m.hintEvents, data)
	return nil
}
func (m *mockEventRepo) AppendCoinEvent(_ context.Context, data store.CoinEventData) error {
	if m.failAppend != nil {
		return m.failAppend
	}
	m.coinEvents = append(m.coinEvents, data)
	return nil
}
func (m *mockEventRepo) QuerySessionEvents(_ context.Context, _ store.QueryOpts) ([]store.SessionEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) QueryCoinEvents(_ context.Context, _ store.QueryOpts) ([]store.CoinEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) CoinTotals(_ context.Context) (store.CoinTotals, error) {
	return store.CoinTotals{}, nil
}
func (m *mockEventRepo) SessionSummaries(_ context.Context, _ store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return nil, nil
}

// fakeLedger is a minimal HintLedger.
type fakeLedger struct {
	hints     int
	purchased map[int]bool
}

func newFakeLedger(hints int) *fakeLedger {
	return &fakeLedger{hints: hints, purchased: map[int]bool{}}
}

func (l *fakeLedger) SessionID() string   { return "sess-1" }
func (l *fakeLedger) ChallengeID() string { return "3" }
func (l *fakeLedger) HintCount() int      { return l.hints }
func (l *fakeLedger) HasHint(i int) bool  { return l.purchased[i] }
func (l *fakeLedger) RecordHint(i int)    { l.purchased[i] = true }
func (l *fakeLedger) purchasedCount() int { return len(l.purchased) }

func newTestEconomy(balance int) (*Economy, *mockEventRepo) {
	repo := &mockEventRepo{}
	return NewEconomy(NewWallet(balance), DefaultHintCost, repo, nil), repo
}

func TestPurchase_InsufficientFunds(t *testing.T) {
	econ, repo := newTestEconomy(5)
	ledger := newFakeLedger(3)

	res := econ.Purchase(context.Background(), ledger, 0)

	if res.Status != InsufficientFunds {
		t.Errorf("Status = %q, want %q", res.Status, InsufficientFunds)
	}
	if !errors.Is(res.Err(), ErrInsufficientFunds) {
		t.Errorf("Err() = %v, want ErrInsufficientFunds", res.Err())
	}
	if econ.Wallet().Balance() != 5 {
		t.Errorf("balance = %d, want 5", econ.Wallet().Balance())
	}
	if ledger.purchasedCount() != 0 {
		t.Errorf("ledger recorded %d hints, want 0", ledger.purchasedCount())
	}
	if len(repo.coinEvents) != 0 || len(repo.hintEvents) != 0 {
		t.Error("declined purchase should not be journaled")
	}
}

func TestPurchase_DoublePurchaseDebitsOnce(t *testing.T) {
	econ, repo := newTestEconomy(100)
	ledger := newFakeLedger(3)
	ctx := context.Background()

	first := econ.Purchase(ctx, ledger, 0)
	if !first.OK() {
		t.Fatalf("first purchase status = %q", first.Status)
	}
	if first.Balance != 90 {
		t.Errorf("first Balance = %d, want 90", first.Balance)
	}

	second := econ.Purchase(ctx, ledger, 0)
	if second.Status != AlreadyPurchased {
		t.Errorf("second Status = %q, want %q", second.Status, AlreadyPurchased)
	}
	if !errors.Is(second.Err(), ErrAlreadyPurchased) {
		t.Errorf("second Err() = %v", second.Err())
	}
	if econ.Wallet().Balance() != 90 {
		t.Errorf("balance = %d, want 90", econ.Wallet().Balance())
	}
	if ledger.purchasedCount() != 1 {
		t.Errorf("ledger has %d hints, want 1", ledger.purchasedCount())
	}
	if len(repo.hintEvents) != 1 || len(repo.coinEvents) != 1 {
		t.Errorf("journal hint/coin events = %d/%d, want 1/1", len(repo.hintEvents), len(repo.coinEvents))
	}
	if repo.coinEvents[0].Kind != store.CoinDebit || repo.coinEvents[0].BalanceAfter != 90 {
		t.Errorf("coin event = %+v", repo.coinEvents[0])
	}
}

func TestPurchase_NoSuchHint(t *testing.T) {
	econ, _ := newTestEconomy(100)
	ledger := newFakeLedger(2)

	for _, idx := range []int{-1, 2, 10} {
		res := econ.Purchase(context.Background(), ledger, idx)
		if res.Status != NoSuchHint {
			t.Errorf("Purchase(%d) Status = %q, want %q", idx, res.Status, NoSuchHint)
		}
	}
	if econ.Wallet().Balance() != 100 {
		t.Errorf("balance = %d, want 100", econ.Wallet().Balance())
	}
}

func TestPurchase_ExactBalance(t *testing.T) {
	econ, _ := newTestEconomy(10)
	ledger := newFakeLedger(2)

	res := econ.Purchase(context.Background(), ledger, 1)
	if !res.OK() {
		t.Fatalf("Status = %q, want purchased", res.Status)
	}
	if res.Balance != 0 {
		t.Errorf("Balance = %d, want 0", res.Balance)
	}

	res = econ.Purchase(context.Background(), ledger, 0)
	if res.Status != InsufficientFunds {
		t.Errorf("Status = %q, want %q", res.Status, InsufficientFunds)
	}
}

func TestCreditThenPurchase(t *testing.T) {
	econ, repo := newTestEconomy(0)
	ctx := context.Background()

	bal := econ.Credit(ctx, 50, "Completed Hello Kitchen", "1", "sess-0")
	if bal != 50 {
		t.Errorf("Credit balance = %d, want 50", bal)
	}

	ledger := newFakeLedger(3)
	econ.Purchase(ctx, ledger, 0)
	econ.Purchase(ctx, ledger, 1)

	w := econ.Wallet()
	if w.Balance() != 30 {
		t.Errorf("balance = %d, want 30", w.Balance())
	}
	if w.TotalEarned() != 50 {
		t.Errorf("TotalEarned = %d, want 50", w.TotalEarned())
	}
	if w.TotalSpent() != 20 {
		t.Errorf("TotalSpent = %d, want 20", w.TotalSpent())
	}
	if len(repo.coinEvents) != 3 {
		t.Fatalf("coin events = %d, want 3", len(repo.coinEvents))
	}
	if repo.coinEvents[0].Kind != store.CoinCredit || repo.coinEvents[0].Reason != "Completed Hello Kitchen" {
		t.Errorf("credit event = %+v", repo.coinEvents[0])
	}
}

func TestCredit_IgnoresNonPositive(t *testing.T) {
	econ, repo := newTestEconomy(20)

	for _, amt := range []int{0, -5} {
		if got := econ.Credit(context.Background(), amt, "noop", "1", ""); got != 20 {
			t.Errorf("Credit(%d) = %d, want 20", amt, got)
		}
	}
	if econ.Wallet().TotalEarned() != 0 {
		t.Errorf("TotalEarned = %d, want 0", econ.Wallet().TotalEarned())
	}
	if len(repo.coinEvents) != 0 {
		t.Errorf("coin events = %d, want 0", len(repo.coinEvents))
	}
}

func TestNilEventRepo(t *testing.T) {
	econ := NewEconomy(NewWallet(100), DefaultHintCost, nil, nil)
	ledger := newFakeLedger(1)

	// Should not panic with nil repo.
	if res := econ.Purchase(context.Background(), ledger, 0); !res.OK() {
		t.Errorf("Status = %q, want purchased", res.Status)
	}
	econ.Credit(context.Background(), 10, "reward", "1", "")
	if econ.Wallet().Balance() != 100 {
		t.Errorf("balance = %d, want 100", econ.Wallet().Balance())
	}
}

func TestJournalFailureDoesNotDecline(t *testing.T) {
	repo := &mockEventRepo{failAppend: errors.New("disk full")}
	econ := NewEconomy(NewWallet(100), DefaultHintCost, repo, nil)
	ledger := newFakeLedger(1)

	res := econ.Purchase(context.Background(), ledger, 0)
	if !res.OK() {
		t.Errorf("Status = %q, want purchased", res.Status)
	}
	if !ledger.HasHint(0) {
		t.Error("hint should be recorded despite journal failure")
	}
}

func TestPurchaseResultErr(t *testing.T) {
	tests := []struct {
		status PurchaseStatus
		want   error
	}{
		{Purchased, nil},
		{InsufficientFunds, ErrInsufficientFunds},
		{AlreadyPurchased, ErrAlreadyPurchased},
		{NoSuchHint, ErrNoSuchHint},
	}
	for _, tt := range tests {
		got := PurchaseResult{Status: tt.status}.Err()
		if !errors.Is(got, tt.want) && got != tt.want {
			t.Errorf("Err() for %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}
