package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type AccountKind string

const (
	AccountKindSavings AccountKind = "savings"
	AccountKindCurrent AccountKind = "current"
	AccountKindFixed   AccountKind = "fixed"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Account is the capability contract shared by all account variants.
// Implementations are not safe for concurrent use; the ledger holds a
// per-account lock across every mutation.
type Account interface {
	ID() string
	CustomerID() string
	Kind() AccountKind
	Balance() decimal.Decimal
	CreatedAt() time.Time
	History() []string

	// Deposit credits amount. There is no upper balance bound.
	Deposit(amount decimal.Decimal) error

	// Withdraw debits amount if the variant's withdrawal policy
	// allows it.
	Withdraw(amount decimal.Decimal) error

	// CanWithdraw evaluates the same policy as Withdraw without
	// mutating the account. Used to pre-validate transfers.
	CanWithdraw(amount decimal.Decimal) error
}

// InterestBearing is implemented by variants that accrue interest.
// Current accounts do not.
type InterestBearing interface {
	CalculateInterest() decimal.Decimal
}

type baseAccount struct {
	id         string
	customerID string
	balance    decimal.Decimal
	createdAt  time.Time
	history    []string
}

func (a *baseAccount) ID() string { return a.id }
func (a *baseAccount) CustomerID() string { return a.customerID }
func (a *baseAccount) Balance() decimal.Decimal { return a.balance }
func (a *baseAccount) CreatedAt() time.Time { return a.createdAt }

func (a *baseAccount) History() []string {
	out := make([]string, len(a.history))
	copy(out, a.history)
	return out
}

func (a *baseAccount) Deposit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	a.record("DEPOSIT", amount)
	return nil
}

func (a *baseAccount) debit(amount decimal.Decimal) {
	a.balance = a.balance.Sub(amount)
	a.record("WITHDRAWAL", amount)
}

func (a *baseAccount) record(op string, amount decimal.Decimal) {
	a.history = append(a.history, fmt.Sprintf("%s: %s at %s", op, amount, time.Now().UTC().Format(time.RFC3339)))
}

// SavingsAccount pays monthly interest and enforces a minimum balance
// floor on withdrawals.
type SavingsAccount struct {
	baseAccount
	rate       decimal.Decimal
	minBalance decimal.Decimal
}

func NewSavingsAccount(id, customerID string, balance, ratePct, minBalance decimal.Decimal, now time.Time) *SavingsAccount {
	return &SavingsAccount{
		baseAccount: baseAccount{id: id, customerID: customerID, balance: balance, createdAt: now},
		rate:        ratePct,
		minBalance:  minBalance,
	}
}

func (a *SavingsAccount) Kind() AccountKind { return AccountKindSavings }
func (a *SavingsAccount) InterestRate() decimal.Decimal { return a.rate }
func (a *SavingsAccount) MinimumBalance() decimal.Decimal { return a.minBalance }

func (a *SavingsAccount) withdrawPolicy(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if a.balance.Sub(amount).LessThan(a.minBalance) {
		return ErrInsufficientFunds
	}
	return nil
}

func (a *SavingsAccount) Withdraw(amount decimal.Decimal) error {
	if err := a.withdrawPolicy(amount); err != nil {
		return err
	}
	a.debit(amount)
	return nil
}

func (a *SavingsAccount) CanWithdraw(amount decimal.Decimal) error {
	return a.withdrawPolicy(amount)
}

// CalculateInterest returns one month of simple interest on the
// current balance.
func (a *SavingsAccount) CalculateInterest() decimal.Decimal {
	return a.balance.Mul(a.rate).Div(hundred).Div(twelve)
}

// CurrentAccount allows the balance to go negative up to the overdraft
// limit and accrues no interest.
type CurrentAccount struct {
	baseAccount
	overdraftLimit decimal.Decimal
}

func NewCurrentAccount(id, customerID string, balance, overdraftLimit decimal.Decimal, now time.Time) *CurrentAccount {
	return &CurrentAccount{
		baseAccount:    baseAccount{id: id, customerID: customerID, balance: balance, createdAt: now},
		overdraftLimit: overdraftLimit,
	}
}

func (a *CurrentAccount) Kind() AccountKind { return AccountKindCurrent }
func (a *CurrentAccount) OverdraftLimit() decimal.Decimal { return a.overdraftLimit }

func (a *CurrentAccount) withdrawPolicy(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if a.balance.Sub(amount).LessThan(a.overdraftLimit.Neg()) {
		return ErrInsufficientFunds
	}
	return nil
}

func (a *CurrentAccount) Withdraw(amount decimal.Decimal) error {
	if err := a.withdrawPolicy(amount); err != nil {
		return err
	}
	a.debit(amount)
	return nil
}

func (a *CurrentAccount) CanWithdraw(amount decimal.Decimal) error {
	return a.withdrawPolicy(amount)
}

// FixedDepositAccount blocks withdrawals until maturity. Maturity is
// observed lazily: the first operation that runs at or after the
// maturity date latches the matured flag.
type FixedDepositAccount struct {
	baseAccount
	rate         decimal.Decimal
	tenureMonths int
	maturityDate time.Time
	matured      bool
}

func NewFixedDepositAccount(id, customerID string, balance, ratePct decimal.Decimal, tenureMonths int, now time.Time) *FixedDepositAccount {
	return &FixedDepositAccount{
		baseAccount:  baseAccount{id: id, customerID: customerID, balance: balance, createdAt: now},
		rate:         ratePct,
		tenureMonths: tenureMonths,
		maturityDate: now.AddDate(0, tenureMonths, 0),
	}
}

func (a *FixedDepositAccount) Kind() AccountKind { return AccountKindFixed }
func (a *FixedDepositAccount) InterestRate() decimal.Decimal { return a.rate }
func (a *FixedDepositAccount) TenureMonths() int { return a.tenureMonths }
func (a *FixedDepositAccount) MaturityDate() time.Time { return a.maturityDate }

// Matured reports whether the deposit has matured, latching the flag
// on first observation.
func (a *FixedDepositAccount) Matured() bool {
	if !a.matured && !time.Now().Before(a.maturityDate) {
		a.matured = true
	}
	return a.matured
}

func (a *FixedDepositAccount) withdrawPolicy(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if !a.Matured() {
		return ErrNotMatured
	}
	if a.balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

func (a *FixedDepositAccount) Withdraw(amount decimal.Decimal) error {
	if err := a.withdrawPolicy(amount); err != nil {
		return err
	}
	a.debit(amount)
	return nil
}

func (a *FixedDepositAccount) CanWithdraw(amount decimal.Decimal) error {
	return a.withdrawPolicy(amount)
}

// CalculateInterest returns simple interest over the full tenure,
// regardless of how much of the tenure has elapsed. Calling it twice
// and crediting both results over-credits the account; callers own
// the accrual cadence.
func (a *FixedDepositAccount) CalculateInterest() decimal.Decimal {
	a.Matured()
	return a.balance.Mul(a.rate).Div(hundred).Mul(decimal.NewFromInt(int64(a.tenureMonths))).Div(twelve)
}
