package game

import (
	"fmt"
	"log/slog"

	"github.com/appengine-ltd/mathdash/internal/store"
)

// Wallet holds the coin balance. The balance never goes negative.
type Wallet struct {
	kv      store.KV
	balance int
}

func NewWallet(kv store.KV, logger *slog.Logger) *Wallet {
	logger = loggerOrDefault(logger)
	balance := loadJSON[int](kv, keyCoins, logger)
	if balance < 0 {
		logger.Warn("negative stored balance reset", "balance", balance)
		balance = 0
	}
	return &Wallet{kv: kv, balance: balance}
}

func (w *Wallet) Balance() int {
	return w.balance
}

// Add credits n coins and returns the new balance.
func (w *Wallet) Add(n int) (int, error) {
	if n < 0 {
		return w.balance, fmt.Errorf("add %d: %w", n, ErrInvalidAmount)
	}
	if n == 0 {
		return w.balance, nil
	}
	w.balance += n
	return w.balance, saveJSON(w.kv, keyCoins, w.balance)
}

// Spend debits n coins. Asking for more than the balance fails with
// ErrInsufficientFunds and leaves the balance untouched.
func (w *Wallet) Spend(n int) error {
	if n <= 0 {
		return fmt.Errorf("spend %d: %w", n, ErrInvalidAmount)
	}
	if n > w.balance {
		return fmt.Errorf("spend %d with %d: %w", n, w.balance, ErrInsufficientFunds)
	}
	w.balance -= n
	return saveJSON(w.kv, keyCoins, w.balance)
}
