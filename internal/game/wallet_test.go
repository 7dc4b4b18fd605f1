package game

import (
	"errors"
	"testing"

	"github.com/appengine-ltd/mathdash/internal/store"
)

func TestWalletAddAndSpend(t *testing.T) {
	kv := store.NewMemory()
	w := NewWallet(kv, nil)
	if w.Balance() != 0 {
		t.Fatalf("expected fresh wallet at 0, got %d", w.Balance())
	}
	if got, err := w.Add(12); err != nil || got != 12 {
		t.Fatalf("add: got %d err %v", got, err)
	}
	if err := w.Spend(5); err != nil {
		t.Fatalf("spend: %v", err)
	}
	if w.Balance() != 7 {
		t.Fatalf("expected 7, got %d", w.Balance())
	}
	if again := NewWallet(kv, nil); again.Balance() != 7 {
		t.Fatalf("expected persisted 7, got %d", again.Balance())
	}
}

func TestWalletRejectedSpendLeavesBalance(t *testing.T) {
	kv := store.NewMemory()
	w := NewWallet(kv, nil)
	_, _ = w.Add(10)
	for i := 0; i < 3; i++ {
		if err := w.Spend(15); !errors.Is(err, ErrInsufficientFunds) {
			t.Fatalf("expected insufficient funds, got %v", err)
		}
		if w.Balance() != 10 {
			t.Fatalf("rejected spend changed balance to %d", w.Balance())
		}
	}
	if err := w.Spend(10); err != nil {
		t.Fatalf("spending exact balance: %v", err)
	}
	if w.Balance() != 0 {
		t.Fatalf("expected 0, got %d", w.Balance())
	}
}

func TestWalletRejectsBadAmounts(t *testing.T) {
	w := NewWallet(store.NewMemory(), nil)
	if _, err := w.Add(-1); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for add(-1), got %v", err)
	}
	if err := w.Spend(0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for spend(0), got %v", err)
	}
}

func TestWalletCorruptOrNegativeStateLoadsAsZero(t *testing.T) {
	for _, raw := range []string{"banana", "-40", "{}"} {
		kv := store.NewMemory()
		_ = kv.Set(keyCoins, []byte(raw))
		if got := NewWallet(kv, nil).Balance(); got != 0 {
			t.Fatalf("stored %q: expected 0, got %d", raw, got)
		}
	}
}
