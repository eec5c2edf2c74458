package wallet

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByOwner(ctx context.Context, ownerType, ownerID string) (*Wallet, error)
	Create(ctx context.Context, w *Wallet) error
	UpdateBalance(ctx context.Context, id uuid.UUID, balance float64) error
	AppendTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, walletID uuid.UUID) ([]*Transaction, error)
	SumByType(ctx context.Context, walletID uuid.UUID, txType string) (float64, error)
}
