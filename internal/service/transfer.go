package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/logging"
)

// TransferCoordinator orchestrates two-account movements on top of
// the ledger. Both account locks are acquired in id order, so two
// concurrent transfers moving funds in opposite directions cannot
// deadlock.
type TransferCoordinator struct {
	ledger *LedgerService
}

func NewTransferCoordinator(ledger *LedgerService) *TransferCoordinator {
	return &TransferCoordinator{ledger: ledger}
}

// Transfer moves amount from one account to another and journals a
// single transfer record on success. If the destination leg fails
// after the source has been debited, the source is re-credited and
// the journal is left untouched. Not idempotent: a retried transfer
// moves the funds again.
func (c *TransferCoordinator) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, actorID string) (uuid.UUID, error) {
	log := logging.FromContext(ctx)

	source, err := c.ledger.accounts.Get(fromID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("Transfer: source: %w", err)
	}
	dest, err := c.ledger.accounts.Get(toID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("Transfer: destination: %w", err)
	}
	if fromID == toID {
		return uuid.Nil, fmt.Errorf("Transfer: %w", domain.ErrSameAccount)
	}
	if amount.Sign() <= 0 {
		return uuid.Nil, fmt.Errorf("Transfer: %w", domain.ErrInvalidAmount)
	}

	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	muFirst := c.ledger.lockFor(first)
	muSecond := c.ledger.lockFor(second)
	muFirst.Lock()
	defer muFirst.Unlock()
	muSecond.Lock()
	defer muSecond.Unlock()

	if err := source.CanWithdraw(amount); err != nil {
		return uuid.Nil, fmt.Errorf("Transfer: precheck (%v): %w", err, domain.ErrInsufficientFunds)
	}

	if err := source.Withdraw(amount); err != nil {
		return uuid.Nil, fmt.Errorf("Transfer: withdraw leg: %w", err)
	}
	if err := dest.Deposit(amount); err != nil {
		// Compensate the debited source. The account history keeps
		// both movements; the journal records nothing.
		if cerr := source.Deposit(amount); cerr != nil {
			log.Error("transfer compensation failed",
				"from_account", fromID,
				"amount", amount,
				"error", cerr,
			)
		}
		return uuid.Nil, fmt.Errorf("Transfer: deposit leg (%v): %w", err, domain.ErrTransferFailed)
	}

	txn := domain.Transaction{
		ID:          uuid.New(),
		AccountID:   fromID,
		Type:        domain.TransactionTypeTransfer,
		Amount:      amount,
		Timestamp:   time.Now().UTC(),
		ActorID:     actorID,
		ToAccountID: &toID,
	}
	c.ledger.journal.Append(txn)

	log.Info("transfer completed",
		"transaction_id", txn.ID,
		"from_account", fromID,
		"to_account", toID,
		"amount", amount,
		"actor_id", actorID,
	)
	return txn.ID, nil
}
