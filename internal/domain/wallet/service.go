package wallet

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidOwnerType    = errors.New("owner type must be DOCTOR or PHARMACY")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrBelowMinimum        = fmt.Errorf("minimum withdrawal is %.0f", MinWithdrawal)
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// TxRunner wraps a function in a database transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo  Repository
	runTx TxRunner
}

func NewService(repo Repository, runTx TxRunner) *Service {
	if runTx == nil {
		runTx = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	return &Service{repo: repo, runTx: runTx}
}

func validOwnerType(ownerType string) bool {
	return ownerType == OwnerDoctor || ownerType == OwnerPharmacy
}

// GetOrCreate returns the owner's wallet, creating an empty INR wallet
// on first access.
func (s *Service) GetOrCreate(ctx context.Context, ownerType, ownerID string) (*Wallet, error) {
	if !validOwnerType(ownerType) {
		return nil, ErrInvalidOwnerType
	}
	w, err := s.repo.GetByOwner(ctx, ownerType, ownerID)
	if err == nil {
		return w, nil
	}
	w = &Wallet{OwnerID: ownerID, OwnerType: ownerType, Balance: 0, Currency: "INR"}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	return w, nil
}

// Get returns the wallet with its transaction log.
func (s *Service) Get(ctx context.Context, ownerType, ownerID string) (*View, error) {
	w, err := s.GetOrCreate(ctx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	txs, err := s.repo.ListTransactions(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return &View{Wallet: *w, Transactions: txs}, nil
}

// Credit adds earnings to the owner's wallet and appends a CREDIT entry,
// atomically. Reference carries the payment id that produced the share.
func (s *Service) Credit(ctx context.Context, ownerType, ownerID string, amount float64, description, reference string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.runTx(ctx, func(ctx context.Context) error {
		w, err := s.GetOrCreate(ctx, ownerType, ownerID)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateBalance(ctx, w.ID, w.Balance+amount); err != nil {
			return fmt.Errorf("update balance: %w", err)
		}
		return s.repo.AppendTransaction(ctx, &Transaction{
			WalletID:    w.ID,
			Type:        TxCredit,
			Amount:      amount,
			Description: description,
			Reference:   reference,
		})
	})
}

// Withdraw debits the wallet. The same rules apply to every owner type:
// positive amount, at least MinWithdrawal, and no overdraft.
func (s *Service) Withdraw(ctx context.Context, ownerType, ownerID string, amount float64) (*Wallet, error) {
	if !validOwnerType(ownerType) {
		return nil, ErrInvalidOwnerType
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if amount < MinWithdrawal {
		return nil, ErrBelowMinimum
	}

	var out *Wallet
	err := s.runTx(ctx, func(ctx context.Context) error {
		w, err := s.GetOrCreate(ctx, ownerType, ownerID)
		if err != nil {
			return err
		}
		if amount > w.Balance {
			return ErrInsufficientBalance
		}
		w.Balance -= amount
		if err := s.repo.UpdateBalance(ctx, w.ID, w.Balance); err != nil {
			return fmt.Errorf("update balance: %w", err)
		}
		if err := s.repo.AppendTransaction(ctx, &Transaction{
			WalletID:    w.ID,
			Type:        TxDebit,
			Amount:      amount,
			Description: "withdrawal",
		}); err != nil {
			return err
		}
		out = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Earnings summarizes lifetime credits and debits.
func (s *Service) Earnings(ctx context.Context, ownerType, ownerID string) (*Earnings, error) {
	w, err := s.GetOrCreate(ctx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	credits, err := s.repo.SumByType(ctx, w.ID, TxCredit)
	if err != nil {
		return nil, err
	}
	debits, err := s.repo.SumByType(ctx, w.ID, TxDebit)
	if err != nil {
		return nil, err
	}
	return &Earnings{
		OwnerID:        ownerID,
		OwnerType:      ownerType,
		TotalEarnings:  credits,
		TotalWithdrawn: debits,
		Balance:        w.Balance,
	}, nil
}
