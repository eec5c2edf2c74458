// Package wallet is the client-side view of a doctor's or pharmacy's
// earnings wallet. Balances are authoritative on the server; this
// ledger validates withdrawal preconditions locally so a bad request
// never reaches the network, and reloads from the server after a
// withdrawal instead of mutating the balance optimistically. Doctor
// and pharmacy flows share one rule set.
package wallet

import (
	"context"
	"errors"

	"github.com/healthconnect/healthconnect/pkg/client"
)

// MinWithdrawal is the smallest amount in INR an owner may withdraw.
const MinWithdrawal = 100.0

var (
	ErrInvalidAmount       = errors.New("wallet: amount must be positive")
	ErrBelowMinimum        = errors.New("wallet: amount below minimum withdrawal")
	ErrInsufficientBalance = errors.New("wallet: amount exceeds balance")
	ErrNotLoaded           = errors.New("wallet: load the wallet first")
)

// API is the wallet surface of the backend client.
type API interface {
	Wallet(ctx context.Context, ownerType, ownerID string) (*client.WalletView, error)
	Earnings(ctx context.Context, ownerType, ownerID string) (*client.Earnings, error)
	Withdraw(ctx context.Context, ownerType, ownerID string, amount float64) (*client.Wallet, error)
}

// Ledger tracks one owner's wallet.
type Ledger struct {
	api       API
	ownerType string
	ownerID   string
	view      *client.WalletView
}

func NewLedger(api API, ownerType, ownerID string) *Ledger {
	return &Ledger{api: api, ownerType: ownerType, ownerID: ownerID}
}

// Load fetches the wallet and its transaction log.
func (l *Ledger) Load(ctx context.Context) error {
	view, err := l.api.Wallet(ctx, l.ownerType, l.ownerID)
	if err != nil {
		return err
	}
	l.view = view
	return nil
}

// View returns the last loaded wallet, or nil before Load.
func (l *Ledger) View() *client.WalletView { return l.view }

// Balance returns the last loaded balance; zero before Load.
func (l *Ledger) Balance() float64 {
	if l.view == nil {
		return 0
	}
	return l.view.Balance
}

// Earnings fetches the lifetime earnings summary.
func (l *Ledger) Earnings(ctx context.Context) (*client.Earnings, error) {
	return l.api.Earnings(ctx, l.ownerType, l.ownerID)
}

// Withdraw validates the amount against the loaded balance, submits
// the request, then reloads the wallet from the server. No network
// call happens when a precondition fails.
func (l *Ledger) Withdraw(ctx context.Context, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount < MinWithdrawal {
		return ErrBelowMinimum
	}
	if l.view == nil {
		return ErrNotLoaded
	}
	if amount > l.view.Balance {
		return ErrInsufficientBalance
	}
	if _, err := l.api.Withdraw(ctx, l.ownerType, l.ownerID, amount); err != nil {
		return err
	}
	return l.Load(ctx)
}
