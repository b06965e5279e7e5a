package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTransfer   TransactionType = "transfer"
)

// SystemActorID identifies movements initiated by the bank itself,
// such as interest accrual.
const SystemActorID = "system"

// Transaction is an immutable journal record of a completed money
// movement. ToAccountID is set only for transfers.
type Transaction struct {
	ID          uuid.UUID
	AccountID   string
	Type        TransactionType
	Amount      decimal.Decimal
	Timestamp   time.Time
	ActorID     string
	ToAccountID *string
}
