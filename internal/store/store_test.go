package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryDSN)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"session_events", "hint_events", "coin_events", "journal_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSessionEventsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	actions := []string{ActionStart, ActionCheck, ActionComplete}
	for i, a := range actions {
		err := repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID:   "sess-1",
			ChallengeID: "1",
			Action:      a,
			Moves:       i * 2,
			Checks:      i,
			Outcome:     "pending",
		})
		if err != nil {
			t.Fatalf("append %s: %v", a, err)
		}
	}

	events, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	// Newest first.
	if events[0].Action != ActionComplete {
		t.Errorf("events[0].Action = %q, want %q", events[0].Action, ActionComplete)
	}
	if events[0].Moves != 4 || events[0].Checks != 2 {
		t.Errorf("events[0] moves/checks = %d/%d, want 4/2", events[0].Moves, events[0].Checks)
	}
	if events[0].Sequence <= events[1].Sequence {
		t.Errorf("sequence not descending: %d then %d", events[0].Sequence, events[1].Sequence)
	}
	if time.Since(events[0].Timestamp) > time.Minute {
		t.Errorf("timestamp %v too far in the past", events[0].Timestamp)
	}
}

func TestQueryOpts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID: "s", ChallengeID: "1", Action: ActionCheck,
		}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	limited, err := repo.QuerySessionEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit 2 returned %d", len(limited))
	}

	after, err := repo.QuerySessionEvents(ctx, QueryOpts{After: 3})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 2 {
		t.Errorf("after 3 returned %d, want 2", len(after))
	}

	before, err := repo.QuerySessionEvents(ctx, QueryOpts{Before: 3})
	if err != nil {
		t.Fatalf("query before: %v", err)
	}
	if len(before) != 2 {
		t.Errorf("before 3 returned %d, want 2", len(before))
	}

	future, err := repo.QuerySessionEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query from: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("from future returned %d, want 0", len(future))
	}
}

func TestCoinEventsAndTotals(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []CoinEventData{
		{Kind: CoinCredit, Amount: 50, BalanceAfter: 150, Reason: "Completed Hello Kitchen", ChallengeID: "1"},
		{Kind: CoinDebit, Amount: 10, BalanceAfter: 140, Reason: "Hint 1", ChallengeID: "2", SessionID: "s2"},
		{Kind: CoinDebit, Amount: 10, BalanceAfter: 130, Reason: "Hint 2", ChallengeID: "2", SessionID: "s2"},
	}
	for _, e := range events {
		if err := repo.AppendCoinEvent(ctx, e); err != nil {
			t.Fatalf("append coin event: %v", err)
		}
	}

	got, err := repo.QueryCoinEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query coin events: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d coin events, want 3", len(got))
	}
	if got[0].BalanceAfter != 130 {
		t.Errorf("newest balance_after = %d, want 130", got[0].BalanceAfter)
	}
	if got[2].Reason != "Completed Hello Kitchen" {
		t.Errorf("oldest reason = %q", got[2].Reason)
	}

	totals, err := repo.CoinTotals(ctx)
	if err != nil {
		t.Fatalf("coin totals: %v", err)
	}
	if totals.Earned != 50 || totals.Spent != 20 {
		t.Errorf("totals = %+v, want earned 50 spent 20", totals)
	}
}

func TestCoinTotalsEmpty(t *testing.T) {
	s := openTestStore(t)

	totals, err := s.EventRepo().CoinTotals(context.Background())
	if err != nil {
		t.Fatalf("coin totals: %v", err)
	}
	if totals != (CoinTotals{}) {
		t.Errorf("totals = %+v, want zero", totals)
	}
}

func TestSessionSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	steps := []SessionEventData{
		{SessionID: "a", ChallengeID: "1", Action: ActionStart},
		{SessionID: "a", ChallengeID: "1", Action: ActionComplete, Moves: 3, Checks: 2, Outcome: "correct"},
		{SessionID: "b", ChallengeID: "2", Action: ActionStart},
		{SessionID: "b", ChallengeID: "2", Action: ActionLeave, Moves: 1, Checks: 1, Outcome: "incorrect"},
		{SessionID: "c", ChallengeID: "2", Action: ActionStart},
	}
	for _, st := range steps {
		if err := repo.AppendSessionEvent(ctx, st); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	for i := 0; i < 2; i++ {
		if err := repo.AppendHintEvent(ctx, HintEventData{SessionID: "b", ChallengeID: "2", HintIndex: i, Cost: 10}); err != nil {
			t.Fatalf("append hint: %v", err)
		}
	}

	summaries, err := repo.SessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("session summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2 (in-progress session excluded)", len(summaries))
	}

	left := summaries[0]
	if left.SessionID != "b" || left.Completed {
		t.Errorf("summaries[0] = %+v, want left session b", left)
	}
	if left.HintsBought != 2 {
		t.Errorf("HintsBought = %d, want 2", left.HintsBought)
	}

	done := summaries[1]
	if done.SessionID != "a" || !done.Completed || done.Moves != 3 {
		t.Errorf("summaries[1] = %+v, want completed session a with 3 moves", done)
	}
	if done.HintsBought != 0 {
		t.Errorf("HintsBought = %d, want 0", done.HintsBought)
	}
}
