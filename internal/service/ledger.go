package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank/ledger/internal/config"
	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/logging"
)

type accountStore interface {
	Create(account domain.Account) error
	Get(id string) (domain.Account, error)
	List() []domain.Account
	Count() int
}

type customerStore interface {
	Create(c domain.Customer) error
	Get(id string) (domain.Customer, error)
	Count() int
}

type journalStore interface {
	Append(t domain.Transaction)
	ByAccount(accountID string, since time.Time) []domain.Transaction
	Count() int
}

// LedgerService owns all account balance mutation. Every mutation of
// a given account happens under that account's lock; operations on
// different accounts proceed independently. No operation here is
// idempotent: retrying a deposit deposits twice. Callers that retry
// must deduplicate at a higher layer.
type LedgerService struct {
	accounts  accountStore
	customers customerStore
	journal   journalStore

	minOpening  decimal.Decimal
	txCeiling   decimal.Decimal
	savingsRate decimal.Decimal
	overdraft   decimal.Decimal
	fixedRate   decimal.Decimal
	fixedTenure int

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	statsMu        sync.Mutex
	totalDeposited decimal.Decimal
	totalWithdrawn decimal.Decimal
}

func NewLedgerService(accounts accountStore, customers customerStore, journal journalStore, cfg *config.Config) *LedgerService {
	return &LedgerService{
		accounts:    accounts,
		customers:   customers,
		journal:     journal,
		minOpening:  decimal.NewFromFloat(cfg.MinOpeningBalance),
		txCeiling:   decimal.NewFromFloat(cfg.TxCeiling),
		savingsRate: decimal.NewFromFloat(cfg.SavingsRatePct),
		overdraft:   decimal.NewFromFloat(cfg.OverdraftLimit),
		fixedRate:   decimal.NewFromFloat(cfg.FixedRatePct),
		fixedTenure: cfg.FixedTenureMonths,
		locks:       make(map[string]*sync.Mutex),
	}
}

func (s *LedgerService) RegisterCustomer(ctx context.Context, id, name, email, phone, address string) (domain.Customer, error) {
	c := domain.Customer{
		ID:           id,
		Name:         name,
		Email:        email,
		Phone:        phone,
		Address:      address,
		RegisteredAt: time.Now().UTC(),
	}
	if err := s.customers.Create(c); err != nil {
		return domain.Customer{}, fmt.Errorf("RegisterCustomer: %w", err)
	}
	logging.FromContext(ctx).Info("customer registered", "customer_id", id)
	return c, nil
}

func (s *LedgerService) GetCustomer(ctx context.Context, id string) (domain.Customer, error) {
	c, err := s.customers.Get(id)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("GetCustomer: %w", err)
	}
	return c, nil
}

// CreateAccount registers a new account of the given kind with the
// stock policy parameters for that kind.
func (s *LedgerService) CreateAccount(ctx context.Context, id, customerID string, kind domain.AccountKind, initialBalance decimal.Decimal) (domain.Account, error) {
	log := logging.FromContext(ctx)

	if _, err := s.accounts.Get(id); err == nil {
		return nil, fmt.Errorf("CreateAccount: %w", domain.ErrDuplicateAccountID)
	}
	if _, err := s.customers.Get(customerID); err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}
	if initialBalance.LessThan(s.minOpening) {
		return nil, fmt.Errorf("CreateAccount: %w", domain.ErrBelowMinimumBalance)
	}

	now := time.Now().UTC()
	var account domain.Account
	switch kind {
	case domain.AccountKindSavings:
		account = domain.NewSavingsAccount(id, customerID, initialBalance, s.savingsRate, s.minOpening, now)
	case domain.AccountKindCurrent:
		account = domain.NewCurrentAccount(id, customerID, initialBalance, s.overdraft, now)
	case domain.AccountKindFixed:
		account = domain.NewFixedDepositAccount(id, customerID, initialBalance, s.fixedRate, s.fixedTenure, now)
	default:
		return nil, fmt.Errorf("CreateAccount: %q: %w", kind, domain.ErrInvalidAccountKind)
	}

	if err := s.accounts.Create(account); err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}

	log.Info("account created",
		"account_id", id,
		"customer_id", customerID,
		"kind", kind,
		"balance", initialBalance,
	)
	return account, nil
}

// Deposit credits amount and journals the movement. Returns the new
// balance.
func (s *LedgerService) Deposit(ctx context.Context, accountID string, amount decimal.Decimal, actorID string) (decimal.Decimal, error) {
	account, err := s.accounts.Get(accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Deposit: %w", err)
	}
	if err := s.checkAmount(amount); err != nil {
		return decimal.Zero, fmt.Errorf("Deposit: %w", err)
	}

	mu := s.lockFor(accountID)
	mu.Lock()
	err = account.Deposit(amount)
	balance := account.Balance()
	mu.Unlock()
	if err != nil {
		return decimal.Zero, fmt.Errorf("Deposit: %w", err)
	}

	s.journal.Append(domain.Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Type:      domain.TransactionTypeDeposit,
		Amount:    amount,
		Timestamp: time.Now().UTC(),
		ActorID:   actorID,
	})
	s.addDeposited(amount)

	logging.FromContext(ctx).Info("deposit completed",
		"account_id", accountID,
		"amount", amount,
		"balance", balance,
		"actor_id", actorID,
	)
	return balance, nil
}

// Withdraw debits amount subject to the account variant's policy and
// journals the movement. Returns the new balance.
func (s *LedgerService) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, actorID string) (decimal.Decimal, error) {
	account, err := s.accounts.Get(accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Withdraw: %w", err)
	}
	if err := s.checkAmount(amount); err != nil {
		return decimal.Zero, fmt.Errorf("Withdraw: %w", err)
	}

	mu := s.lockFor(accountID)
	mu.Lock()
	err = account.Withdraw(amount)
	balance := account.Balance()
	mu.Unlock()
	if err != nil {
		return decimal.Zero, fmt.Errorf("Withdraw: %w", err)
	}

	s.journal.Append(domain.Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Type:      domain.TransactionTypeWithdrawal,
		Amount:    amount,
		Timestamp: time.Now().UTC(),
		ActorID:   actorID,
	})
	s.addWithdrawn(amount)

	logging.FromContext(ctx).Info("withdrawal completed",
		"account_id", accountID,
		"amount", amount,
		"balance", balance,
		"actor_id", actorID,
	)
	return balance, nil
}

// Statement returns the journal entries for the account within the
// lookback window, oldest first.
func (s *LedgerService) Statement(ctx context.Context, accountID string, lookbackDays int) ([]domain.Transaction, error) {
	if _, err := s.accounts.Get(accountID); err != nil {
		return nil, fmt.Errorf("Statement: %w", err)
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -lookbackDays)
	return s.journal.ByAccount(accountID, cutoff), nil
}

// AccountView is a consistent snapshot of an account taken under its
// lock. Variant-specific fields are nil when not applicable.
type AccountView struct {
	ID         string
	CustomerID string
	Kind       domain.AccountKind
	Balance    decimal.Decimal
	CreatedAt  time.Time
	History    []string

	InterestRate   *decimal.Decimal
	MinimumBalance *decimal.Decimal
	OverdraftLimit *decimal.Decimal
	TenureMonths   *int
	MaturityDate   *time.Time
	Matured        *bool
}

func (s *LedgerService) ViewAccount(ctx context.Context, accountID string) (AccountView, error) {
	account, err := s.accounts.Get(accountID)
	if err != nil {
		return AccountView{}, fmt.Errorf("ViewAccount: %w", err)
	}

	mu := s.lockFor(accountID)
	mu.Lock()
	defer mu.Unlock()

	v := AccountView{
		ID:         account.ID(),
		CustomerID: account.CustomerID(),
		Kind:       account.Kind(),
		Balance:    account.Balance(),
		CreatedAt:  account.CreatedAt(),
		History:    account.History(),
	}
	switch a := account.(type) {
	case *domain.SavingsAccount:
		rate, min := a.InterestRate(), a.MinimumBalance()
		v.InterestRate, v.MinimumBalance = &rate, &min
	case *domain.CurrentAccount:
		limit := a.OverdraftLimit()
		v.OverdraftLimit = &limit
	case *domain.FixedDepositAccount:
		rate, tenure, maturity, matured := a.InterestRate(), a.TenureMonths(), a.MaturityDate(), a.Matured()
		v.InterestRate, v.TenureMonths, v.MaturityDate, v.Matured = &rate, &tenure, &maturity, &matured
	}
	return v, nil
}

// Report summarizes ledger-side volume. Loan totals live with the
// loan book.
type Report struct {
	TotalAccounts     int
	TotalCustomers    int
	TotalTransactions int
	TotalDeposited    decimal.Decimal
	TotalWithdrawn    decimal.Decimal
	TotalBalance      decimal.Decimal
}

func (s *LedgerService) Report(ctx context.Context) Report {
	r := Report{
		TotalAccounts:     s.accounts.Count(),
		TotalCustomers:    s.customers.Count(),
		TotalTransactions: s.journal.Count(),
	}

	s.statsMu.Lock()
	r.TotalDeposited = s.totalDeposited
	r.TotalWithdrawn = s.totalWithdrawn
	s.statsMu.Unlock()

	total := decimal.Zero
	for _, account := range s.accounts.List() {
		mu := s.lockFor(account.ID())
		mu.Lock()
		total = total.Add(account.Balance())
		mu.Unlock()
	}
	r.TotalBalance = total
	return r
}

func (s *LedgerService) checkAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	if amount.GreaterThan(s.txCeiling) {
		return domain.ErrLimitExceeded
	}
	return nil
}

func (s *LedgerService) lockFor(id string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	mu, ok := s.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[id] = mu
	}
	return mu
}

func (s *LedgerService) addDeposited(amount decimal.Decimal) {
	s.statsMu.Lock()
	s.totalDeposited = s.totalDeposited.Add(amount)
	s.statsMu.Unlock()
}

func (s *LedgerService) addWithdrawn(amount decimal.Decimal) {
	s.statsMu.Lock()
	s.totalWithdrawn = s.totalWithdrawn.Add(amount)
	s.statsMu.Unlock()
}
