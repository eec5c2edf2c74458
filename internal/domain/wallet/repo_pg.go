package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthconnect/healthconnect/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) GetByOwner(ctx context.Context, ownerType, ownerID string) (*Wallet, error) {
	var w Wallet
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, owner_id, owner_type, balance, currency, created_at, updated_at
		FROM wallets WHERE owner_type = $1 AND owner_id = $2`, ownerType, ownerID).
		Scan(&w.ID, &w.OwnerID, &w.OwnerType, &w.Balance, &w.Currency, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repoPG) Create(ctx context.Context, w *Wallet) error {
	w.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO wallets (id, owner_id, owner_type, balance, currency)
		VALUES ($1,$2,$3,$4,$5)`,
		w.ID, w.OwnerID, w.OwnerType, w.Balance, w.Currency)
	return err
}

func (r *repoPG) UpdateBalance(ctx context.Context, id uuid.UUID, balance float64) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE wallets SET balance = $2, updated_at = NOW() WHERE id = $1`, id, balance)
	return err
}

func (r *repoPG) AppendTransaction(ctx context.Context, tx *Transaction) error {
	tx.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO wallet_transactions (id, wallet_id, type, amount, description, reference)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		tx.ID, tx.WalletID, tx.Type, tx.Amount, tx.Description, tx.Reference)
	return err
}

func (r *repoPG) ListTransactions(ctx context.Context, walletID uuid.UUID) ([]*Transaction, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, wallet_id, type, amount, description, reference, created_at
		FROM wallet_transactions WHERE wallet_id = $1 ORDER BY created_at DESC`, walletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*Transaction
	for rows.Next() {
		var tx Transaction
		if err := rows.Scan(&tx.ID, &tx.WalletID, &tx.Type, &tx.Amount, &tx.Description,
			&tx.Reference, &tx.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, &tx)
	}
	return txs, rows.Err()
}

func (r *repoPG) SumByType(ctx context.Context, walletID uuid.UUID, txType string) (float64, error) {
	var sum float64
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM wallet_transactions
		WHERE wallet_id = $1 AND type = $2`, walletID, txType).Scan(&sum)
	return sum, err
}
