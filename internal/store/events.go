package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func sqlite() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// append assigns the next global sequence and inserts one row.
func (r *eventRepo) append(ctx context.Context, table string, columns []string, values ...any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	cols := append([]string{"sequence", "timestamp"}, columns...)
	vals := append([]any{seqNum, time.Now().UTC().UnixMilli()}, values...)

	query, args := sqlite().Insert(table).Columns(cols...).Values(vals...).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.append(ctx, "session_events",
		[]string{"session_id", "challenge_id", "action", "moves", "checks", "outcome"},
		data.SessionID, data.ChallengeID, data.Action, data.Moves, data.Checks, data.Outcome,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendHintEvent(ctx context.Context, data HintEventData) error {
	err := r.append(ctx, "hint_events",
		[]string{"session_id", "challenge_id", "hint_index", "cost"},
		data.SessionID, data.ChallengeID, data.HintIndex, data.Cost,
	)
	if err != nil {
		return fmt.Errorf("save hint event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendCoinEvent(ctx context.Context, data CoinEventData) error {
	err := r.append(ctx, "coin_events",
		[]string{"kind", "amount", "balance_after", "reason", "challenge_id", "session_id"},
		data.Kind, data.Amount, data.BalanceAfter, data.Reason, data.ChallengeID, data.SessionID,
	)
	if err != nil {
		return fmt.Errorf("save coin event: %w", err)
	}
	return nil
}

// applyOpts adds the common filters and newest-first ordering.
func applyOpts(sel *entsql.Selector, opts QueryOpts) *entsql.Selector {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC().UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC().UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	sel := sqlite().
		Select("sequence", "timestamp", "session_id", "challenge_id", "action", "moves", "checks", "outcome").
		From(entsql.Table("session_events"))
	return r.querySessionEvents(ctx, applyOpts(sel, opts))
}

func (r *eventRepo) querySessionEvents(ctx context.Context, sel *entsql.Selector) ([]SessionEventRecord, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var records []SessionEventRecord
	for rows.Next() {
		var (
			rec SessionEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.ChallengeID,
			&rec.Action, &rec.Moves, &rec.Checks, &rec.Outcome); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) QueryCoinEvents(ctx context.Context, opts QueryOpts) ([]CoinEventRecord, error) {
	sel := sqlite().
		Select("sequence", "timestamp", "kind", "amount", "balance_after", "reason", "challenge_id", "session_id").
		From(entsql.Table("coin_events"))

	query, args := applyOpts(sel, opts).Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query coin events: %w", err)
	}
	defer rows.Close()

	var records []CoinEventRecord
	for rows.Next() {
		var (
			rec CoinEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.Kind, &rec.Amount, &rec.BalanceAfter,
			&rec.Reason, &rec.ChallengeID, &rec.SessionID); err != nil {
			return nil, fmt.Errorf("scan coin event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate coin events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) CoinTotals(ctx context.Context) (CoinTotals, error) {
	query, args := sqlite().
		Select("kind", entsql.As(entsql.Sum("amount"), "total")).
		From(entsql.Table("coin_events")).
		GroupBy("kind").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return CoinTotals{}, fmt.Errorf("query coin totals: %w", err)
	}
	defer rows.Close()

	var totals CoinTotals
	for rows.Next() {
		var (
			kind  string
			total int
		)
		if err := rows.Scan(&kind, &total); err != nil {
			return CoinTotals{}, fmt.Errorf("scan coin totals: %w", err)
		}
		switch kind {
		case CoinCredit:
			totals.Earned = total
		case CoinDebit:
			totals.Spent = total
		}
	}
	if err := rows.Err(); err != nil {
		return CoinTotals{}, fmt.Errorf("iterate coin totals: %w", err)
	}
	return totals, nil
}

func (r *eventRepo) SessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := sqlite().
		Select("sequence", "timestamp", "session_id", "challenge_id", "action", "moves", "checks", "outcome").
		From(entsql.Table("session_events")).
		Where(entsql.In("action", ActionComplete, ActionLeave))

	events, err := r.querySessionEvents(ctx, applyOpts(sel, opts))
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}

	// Hint counts are fetched after the event rows are closed; the store
	// runs on a single connection.
	records := make([]SessionSummaryRecord, len(events))
	for i, e := range events {
		hints, err := r.countHints(ctx, e.SessionID)
		if err != nil {
			return nil, err
		}
		records[i] = SessionSummaryRecord{
			SessionID:   e.SessionID,
			ChallengeID: e.ChallengeID,
			Outcome:     e.Outcome,
			Moves:       e.Moves,
			Checks:      e.Checks,
			HintsBought: hints,
			Completed:   e.Action == ActionComplete,
			Timestamp:   e.Timestamp,
		}
	}
	return records, nil
}

func (r *eventRepo) countHints(ctx context.Context, sessionID string) (int, error) {
	query, args := sqlite().
		Select(entsql.Count("*")).
		From(entsql.Table("hint_events")).
		Where(entsql.EQ("session_id", sessionID)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count hint events: %w", err)
	}
	return n, nil
}
