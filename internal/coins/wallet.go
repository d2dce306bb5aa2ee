package coins

import "sync"

// Wallet holds the learner's coins for the lifetime of the process.
type Wallet struct {
	mu          sync.Mutex
	balance     int
	totalEarned int
	totalSpent  int
}

// NewWallet creates a wallet with the given opening balance.
func NewWallet(balance int) *Wallet {
	if balance < 0 {
		balance = 0
	}
	return &Wallet{balance: balance}
}

func (w *Wallet) Balance() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balance
}

// TotalEarned is the sum of all credits. The opening balance is not counted.
func (w *Wallet) TotalEarned() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.totalEarned
}

func (w *Wallet) TotalSpent() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.totalSpent
}

// credit adds amount and returns the new balance.
func (w *Wallet) credit(amount int) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balance += amount
	w.totalEarned += amount
	return w.balance
}

// debit subtracts amount if the balance covers it.
func (w *Wallet) debit(amount int) (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.balance < amount {
		return w.balance, false
	}
	w.balance -= amount
	w.totalSpent += amount
	return w.balance, true
}
