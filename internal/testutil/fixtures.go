package testutil

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger/internal/config"
	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/repository"
	"github.com/corebank/ledger/internal/service"
)

// Env wires a complete in-memory core for tests. Each Env is fully
// independent, so tests can run in parallel.
type Env struct {
	Config    *config.Config
	Accounts  *repository.AccountStore
	Customers *repository.CustomerStore
	Journal   *repository.JournalStore
	LoanStore *repository.LoanStore

	Ledger    *service.LedgerService
	Transfers *service.TransferCoordinator
	Interest  *service.InterestService
	Loans     *service.LoanService
}

func NewEnv(t *testing.T) *Env {
	t.Helper()

	cfg := config.Default()
	accounts := repository.NewAccountStore()
	customers := repository.NewCustomerStore()
	journal := repository.NewJournalStore()
	loanStore := repository.NewLoanStore()

	ledger := service.NewLedgerService(accounts, customers, journal, cfg)

	return &Env{
		Config:    cfg,
		Accounts:  accounts,
		Customers: customers,
		Journal:   journal,
		LoanStore: loanStore,
		Ledger:    ledger,
		Transfers: service.NewTransferCoordinator(ledger),
		Interest:  service.NewInterestService(ledger),
		Loans:     service.NewLoanService(loanStore, customers, cfg),
	}
}

func (e *Env) SeedCustomer(t *testing.T, id, name string) domain.Customer {
	t.Helper()

	c, err := e.Ledger.RegisterCustomer(context.Background(), id, name, id+"@example.com", "0000000000", "1 Test St")
	if err != nil {
		t.Fatalf("seed customer %s: %v", id, err)
	}
	return c
}

func (e *Env) SeedAccount(t *testing.T, id, customerID string, kind domain.AccountKind, balance float64) domain.Account {
	t.Helper()

	account, err := e.Ledger.CreateAccount(context.Background(), id, customerID, kind, decimal.NewFromFloat(balance))
	if err != nil {
		t.Fatalf("seed account %s: %v", id, err)
	}
	return account
}
