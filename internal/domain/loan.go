package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementEpsilon is the residual below which a loan counts as
// fully paid.
var SettlementEpsilon = decimal.NewFromFloat(0.01)

type LoanPayment struct {
	Amount decimal.Decimal
	PaidAt time.Time
}

// Loan tracks a debt independent of bank-held cash. RemainingBalance
// is seeded with full simple interest at issue time and only ever
// decreases.
type Loan struct {
	ID               uuid.UUID
	CustomerID       string
	Category         string
	Principal        decimal.Decimal
	InterestRate     decimal.Decimal
	TenureMonths     int
	StartedAt        time.Time
	RemainingBalance decimal.Decimal
	Payments         []LoanPayment
	Approved         bool
}

func (l *Loan) FullyPaid() bool {
	return l.RemainingBalance.LessThan(SettlementEpsilon)
}
