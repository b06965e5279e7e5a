package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/logging"
)

// InterestService applies interest to every interest-bearing account
// through the ledger's deposit path, so each credit appears in the
// journal as an ordinary deposit by the system actor.
type InterestService struct {
	ledger *LedgerService
}

func NewInterestService(ledger *LedgerService) *InterestService {
	return &InterestService{ledger: ledger}
}

// AccrueAll runs one accrual round and returns the number of accounts
// credited. It does not track accrual periods: invoking it twice in
// succession credits interest twice. The caller owns the cadence.
// Interest credits are not subject to the per-transaction ceiling.
func (s *InterestService) AccrueAll(ctx context.Context) int {
	log := logging.FromContext(ctx)
	credited := 0

	for _, account := range s.ledger.accounts.List() {
		bearing, ok := account.(domain.InterestBearing)
		if !ok {
			continue
		}

		mu := s.ledger.lockFor(account.ID())
		mu.Lock()
		interest := bearing.CalculateInterest()
		var err error
		if interest.Sign() > 0 {
			err = account.Deposit(interest)
		}
		balance := account.Balance()
		mu.Unlock()

		if interest.Sign() <= 0 {
			continue
		}
		if err != nil {
			log.Error("interest credit failed",
				"account_id", account.ID(),
				"interest", interest,
				"error", err,
			)
			continue
		}

		s.ledger.journal.Append(domain.Transaction{
			ID:        uuid.New(),
			AccountID: account.ID(),
			Type:      domain.TransactionTypeDeposit,
			Amount:    interest,
			Timestamp: time.Now().UTC(),
			ActorID:   domain.SystemActorID,
		})
		s.ledger.addDeposited(interest)
		credited++

		log.Info("interest credited",
			"account_id", account.ID(),
			"kind", account.Kind(),
			"interest", interest,
			"balance", balance,
		)
	}
	return credited
}
