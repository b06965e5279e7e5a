package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebank/ledger/internal/config"
	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/repository"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

type ledgerFixture struct {
	ledger    *LedgerService
	accounts  *repository.AccountStore
	customers *repository.CustomerStore
	journal   *repository.JournalStore
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	f := &ledgerFixture{
		accounts:  repository.NewAccountStore(),
		customers: repository.NewCustomerStore(),
		journal:   repository.NewJournalStore(),
	}
	f.ledger = NewLedgerService(f.accounts, f.customers, f.journal, config.Default())

	_, err := f.ledger.RegisterCustomer(context.Background(), "C001", "John Doe", "john@example.com", "123", "1 Main St")
	require.NoError(t, err)
	return f
}

func TestRegisterCustomer(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.ledger.RegisterCustomer(ctx, "C001", "Dup", "d@example.com", "1", "x")
	require.ErrorIs(t, err, domain.ErrDuplicateCustomerID)

	c, err := f.ledger.GetCustomer(ctx, "C001")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", c.Name)

	_, err = f.ledger.GetCustomer(ctx, "C999")
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCreateAccount(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		customerID     string
		kind           domain.AccountKind
		initialBalance decimal.Decimal
		wantErr        error
	}{
		{"savings ok", "ACC100", "C001", domain.AccountKindSavings, dec(5000), nil},
		{"current ok", "ACC101", "C001", domain.AccountKindCurrent, dec(10000), nil},
		{"fixed ok", "ACC102", "C001", domain.AccountKindFixed, dec(50000), nil},
		{"at opening minimum ok", "ACC103", "C001", domain.AccountKindSavings, dec(100), nil},
		{"below opening minimum", "ACC104", "C001", domain.AccountKindSavings, dec(99.99), domain.ErrBelowMinimumBalance},
		{"unknown customer", "ACC105", "C999", domain.AccountKindSavings, dec(5000), domain.ErrCustomerNotFound},
		{"unknown kind", "ACC106", "C001", domain.AccountKind("premium"), dec(5000), domain.ErrInvalidAccountKind},
	}

	f := newLedgerFixture(t)
	ctx := context.Background()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			account, err := f.ledger.CreateAccount(ctx, tc.id, tc.customerID, tc.kind, tc.initialBalance)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.kind, account.Kind())
			assert.True(t, account.Balance().Equal(tc.initialBalance))
		})
	}

	_, err := f.ledger.CreateAccount(ctx, "ACC100", "C001", domain.AccountKindSavings, dec(5000))
	require.ErrorIs(t, err, domain.ErrDuplicateAccountID)
}

func TestDeposit(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	_, err := f.ledger.CreateAccount(ctx, "ACC1", "C001", domain.AccountKindSavings, dec(5000))
	require.NoError(t, err)

	tests := []struct {
		name      string
		accountID string
		amount    decimal.Decimal
		wantErr   error
	}{
		{"unknown account", "ACC9", dec(100), domain.ErrAccountNotFound},
		{"zero amount", "ACC1", decimal.Zero, domain.ErrInvalidAmount},
		{"negative amount", "ACC1", dec(-10), domain.ErrInvalidAmount},
		{"over ceiling", "ACC1", dec(100000.01), domain.ErrLimitExceeded},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ledger.Deposit(ctx, tc.accountID, tc.amount, "E001")
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
	require.Equal(t, 0, f.journal.Count(), "failed deposits must not be journaled")

	balance, err := f.ledger.Deposit(ctx, "ACC1", dec(100000), "E001")
	require.NoError(t, err)
	require.True(t, balance.Equal(dec(105000)), "balance = %s", balance)

	entries := f.journal.ByAccount("ACC1", time.Time{})
	require.Len(t, entries, 1)
	assert.Equal(t, domain.TransactionTypeDeposit, entries[0].Type)
	assert.Equal(t, "E001", entries[0].ActorID)
	assert.True(t, entries[0].Amount.Equal(dec(100000)))
	assert.NotEqual(t, uuid.Nil, entries[0].ID)

	report := f.ledger.Report(ctx)
	assert.True(t, report.TotalDeposited.Equal(dec(100000)))
}

func TestWithdraw(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	_, err := f.ledger.CreateAccount(ctx, "SAV1", "C001", domain.AccountKindSavings, dec(1000))
	require.NoError(t, err)
	_, err = f.ledger.CreateAccount(ctx, "FIX1", "C001", domain.AccountKindFixed, dec(50000))
	require.NoError(t, err)

	// Savings floor is the minimum opening balance (100).
	_, err = f.ledger.Withdraw(ctx, "SAV1", dec(900.01), "E001")
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = f.ledger.Withdraw(ctx, "FIX1", dec(1), "E001")
	require.ErrorIs(t, err, domain.ErrNotMatured)

	_, err = f.ledger.Withdraw(ctx, "SAV1", dec(100000.01), "E001")
	require.ErrorIs(t, err, domain.ErrLimitExceeded)

	require.Equal(t, 0, f.journal.Count())

	balance, err := f.ledger.Withdraw(ctx, "SAV1", dec(900), "E001")
	require.NoError(t, err)
	require.True(t, balance.Equal(dec(100)), "balance = %s", balance)

	entries := f.journal.ByAccount("SAV1", time.Time{})
	require.Len(t, entries, 1)
	assert.Equal(t, domain.TransactionTypeWithdrawal, entries[0].Type)

	report := f.ledger.Report(ctx)
	assert.True(t, report.TotalWithdrawn.Equal(dec(900)))
}

func TestStatementLookback(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	_, err := f.ledger.CreateAccount(ctx, "ACC1", "C001", domain.AccountKindSavings, dec(5000))
	require.NoError(t, err)

	// An old movement outside the lookback window.
	f.journal.Append(domain.Transaction{
		ID:        uuid.New(),
		AccountID: "ACC1",
		Type:      domain.TransactionTypeDeposit,
		Amount:    dec(10),
		Timestamp: time.Now().UTC().AddDate(0, 0, -40),
		ActorID:   "E001",
	})

	_, err = f.ledger.Deposit(ctx, "ACC1", dec(250), "E001")
	require.NoError(t, err)

	txns, err := f.ledger.Statement(ctx, "ACC1", 30)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].Amount.Equal(dec(250)))

	txns, err = f.ledger.Statement(ctx, "ACC1", 60)
	require.NoError(t, err)
	require.Len(t, txns, 2)

	_, err = f.ledger.Statement(ctx, "ACC9", 30)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestViewAccountVariantFields(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.ledger.CreateAccount(ctx, "SAV1", "C001", domain.AccountKindSavings, dec(5000))
	require.NoError(t, err)
	_, err = f.ledger.CreateAccount(ctx, "CUR1", "C001", domain.AccountKindCurrent, dec(10000))
	require.NoError(t, err)
	_, err = f.ledger.CreateAccount(ctx, "FIX1", "C001", domain.AccountKindFixed, dec(50000))
	require.NoError(t, err)

	sav, err := f.ledger.ViewAccount(ctx, "SAV1")
	require.NoError(t, err)
	require.NotNil(t, sav.InterestRate)
	require.NotNil(t, sav.MinimumBalance)
	assert.Nil(t, sav.OverdraftLimit)
	assert.True(t, sav.InterestRate.Equal(dec(2.5)))

	cur, err := f.ledger.ViewAccount(ctx, "CUR1")
	require.NoError(t, err)
	require.NotNil(t, cur.OverdraftLimit)
	assert.True(t, cur.OverdraftLimit.Equal(dec(1000)))

	fix, err := f.ledger.ViewAccount(ctx, "FIX1")
	require.NoError(t, err)
	require.NotNil(t, fix.TenureMonths)
	require.NotNil(t, fix.Matured)
	assert.Equal(t, 12, *fix.TenureMonths)
	assert.False(t, *fix.Matured)
}

func TestReportAggregates(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.ledger.CreateAccount(ctx, "A1", "C001", domain.AccountKindSavings, dec(5000))
	require.NoError(t, err)
	_, err = f.ledger.CreateAccount(ctx, "A2", "C001", domain.AccountKindCurrent, dec(10000))
	require.NoError(t, err)

	_, err = f.ledger.Deposit(ctx, "A1", dec(1000), "E001")
	require.NoError(t, err)
	_, err = f.ledger.Withdraw(ctx, "A2", dec(500), "E002")
	require.NoError(t, err)

	report := f.ledger.Report(ctx)
	assert.Equal(t, 2, report.TotalAccounts)
	assert.Equal(t, 1, report.TotalCustomers)
	assert.Equal(t, 2, report.TotalTransactions)
	assert.True(t, report.TotalDeposited.Equal(dec(1000)))
	assert.True(t, report.TotalWithdrawn.Equal(dec(500)))
	assert.True(t, report.TotalBalance.Equal(dec(15500)), "total = %s", report.TotalBalance)
}
