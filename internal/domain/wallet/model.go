package wallet

import (
	"time"

	"github.com/google/uuid"
)

// Owner types that can hold a wallet.
const (
	OwnerDoctor   = "DOCTOR"
	OwnerPharmacy = "PHARMACY"
)

// Transaction types.
const (
	TxCredit = "CREDIT"
	TxDebit  = "DEBIT"
)

// MinWithdrawal is the smallest amount in INR a wallet owner may withdraw.
const MinWithdrawal = 100.0

type Wallet struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	OwnerType string    `db:"owner_type" json:"owner_type"`
	Balance   float64   `db:"balance" json:"balance"`
	Currency  string    `db:"currency" json:"currency"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Transaction struct {
	ID          uuid.UUID `db:"id" json:"id"`
	WalletID    uuid.UUID `db:"wallet_id" json:"wallet_id"`
	Type        string    `db:"type" json:"type"`
	Amount      float64   `db:"amount" json:"amount"`
	Description string    `db:"description" json:"description"`
	Reference   string    `db:"reference" json:"reference,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Earnings summarizes a wallet's full history. Balance always equals
// TotalEarnings minus TotalWithdrawn.
type Earnings struct {
	OwnerID        string  `json:"owner_id"`
	OwnerType      string  `json:"owner_type"`
	TotalEarnings  float64 `json:"total_earnings"`
	TotalWithdrawn float64 `json:"total_withdrawn"`
	Balance        float64 `json:"balance"`
}

type WithdrawRequest struct {
	Amount float64 `json:"amount"`
}

// View is the wallet plus its transaction log, as served to clients.
type View struct {
	Wallet
	Transactions []*Transaction `json:"transactions"`
}
