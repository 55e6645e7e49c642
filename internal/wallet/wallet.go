// Package wallet tracks the player's chip balance. The round orchestrator
// is the only mutator: it debits the bet when a round starts and credits
// winnings when it settles.
package wallet

import (
	"errors"
	"fmt"
)

// ErrInsufficientFunds is returned when a debit exceeds the balance
var ErrInsufficientFunds = errors.New("insufficient funds")

// Wallet holds a non-negative chip balance
type Wallet struct {
	balance int
}

// New creates a wallet with the given starting balance
func New(balance int) (*Wallet, error) {
	if balance < 0 {
		return nil, fmt.Errorf("starting balance must be non-negative, got %d", balance)
	}
	return &Wallet{balance: balance}, nil
}

// Balance returns the current balance
func (w *Wallet) Balance() int {
	return w.balance
}

// Debit removes amount from the balance
func (w *Wallet) Debit(amount int) error {
	if amount < 0 {
		return fmt.Errorf("debit amount must be non-negative, got %d", amount)
	}
	if amount > w.balance {
		return fmt.Errorf("%w: balance %d, debit %d", ErrInsufficientFunds, w.balance, amount)
	}
	w.balance -= amount
	return nil
}

// Credit adds amount to the balance
func (w *Wallet) Credit(amount int) error {
	if amount < 0 {
		return fmt.Errorf("credit amount must be non-negative, got %d", amount)
	}
	w.balance += amount
	return nil
}
