package coins

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/codekitchen/internal/store"
)

// DefaultHintCost is the price of one hint.
const DefaultHintCost = 10

// Economy settles hint purchases and completion rewards against a Wallet.
type Economy struct {
	wallet    *Wallet
	hintCost  int
	eventRepo store.EventRepo
	logger    *slog.Logger
}

// NewEconomy creates an Economy. eventRepo and logger may be nil.
func NewEconomy(wallet *Wallet, hintCost int, eventRepo store.EventRepo, logger *slog.Logger) *Economy {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Economy{
		wallet:    wallet,
		hintCost:  hintCost,
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (e *Economy) Wallet() *Wallet { return e.wallet }

func (e *Economy) HintCost() int { return e.hintCost }

// Purchase buys hint hintIndex for the session behind ledger. Nothing
// changes unless the returned status is Purchased.
func (e *Economy) Purchase(ctx context.Context, ledger HintLedger, hintIndex int) PurchaseResult {
	res := PurchaseResult{HintIndex: hintIndex, Cost: e.hintCost}

	switch {
	case hintIndex < 0 || hintIndex >= ledger.HintCount():
		res.Status = NoSuchHint
		res.Balance = e.wallet.Balance()
		return res
	case ledger.HasHint(hintIndex):
		res.Status = AlreadyPurchased
		res.Balance = e.wallet.Balance()
		return res
	}

	balance, ok := e.wallet.debit(e.hintCost)
	res.Balance = balance
	if !ok {
		res.Status = InsufficientFunds
		e.logger.Info("hint declined",
			"session_id", ledger.SessionID(),
			"challenge_id", ledger.ChallengeID(),
			"hint", hintIndex,
			"balance", balance,
		)
		return res
	}

	ledger.RecordHint(hintIndex)
	res.Status = Purchased

	e.logger.Info("hint purchased",
		"session_id", ledger.SessionID(),
		"challenge_id", ledger.ChallengeID(),
		"hint", hintIndex,
		"balance", balance,
	)
	e.persistHint(ctx, ledger, hintIndex)
	e.persistCoins(ctx, store.CoinEventData{
		Kind:         store.CoinDebit,
		Amount:       e.hintCost,
		BalanceAfter: balance,
		Reason:       fmt.Sprintf("Hint %d", hintIndex+1),
		ChallengeID:  ledger.ChallengeID(),
		SessionID:    ledger.SessionID(),
	})
	return res
}

// Credit adds a reward to the wallet and returns the new balance.
// Non-positive amounts are ignored.
func (e *Economy) Credit(ctx context.Context, amount int, reason, challengeID, sessionID string) int {
	if amount <= 0 {
		return e.wallet.Balance()
	}
	balance := e.wallet.credit(amount)

	e.logger.Info("coins credited",
		"session_id", sessionID,
		"challenge_id", challengeID,
		"amount", amount,
		"balance", balance,
	)
	e.persistCoins(ctx, store.CoinEventData{
		Kind:         store.CoinCredit,
		Amount:       amount,
		BalanceAfter: balance,
		Reason:       reason,
		ChallengeID:  challengeID,
		SessionID:    sessionID,
	})
	return balance
}

func (e *Economy) persistHint(ctx context.Context, ledger HintLedger, hintIndex int) {
	if e.eventRepo == nil {
		return
	}
	err := e.eventRepo.AppendHintEvent(ctx, store.HintEventData{
		SessionID:   ledger.SessionID(),
		ChallengeID: ledger.ChallengeID(),
		HintIndex:   hintIndex,
		Cost:        e.hintCost,
	})
	if err != nil {
		e.logger.Warn("journal hint event", "error", err)
	}
}

func (e *Economy) persistCoins(ctx context.Context, data store.CoinEventData) {
	if e.eventRepo == nil {
		return
	}
	if err := e.eventRepo.AppendCoinEvent(ctx, data); err != nil {
		e.logger.Warn("journal coin event", "error", err)
	}
}
