package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank/ledger/internal/config"
	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/logging"
)

type loanStore interface {
	Create(l *domain.Loan) error
	Get(id uuid.UUID) (*domain.Loan, error)
	List() []*domain.Loan
	Count() int
}

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	one     = decimal.NewFromInt(1)

	loanBaseRates = map[string]decimal.Decimal{
		"home":      decimal.NewFromFloat(8.5),
		"car":       decimal.NewFromFloat(10.0),
		"personal":  decimal.NewFromFloat(12.0),
		"education": decimal.NewFromFloat(7.5),
	}
	loanDefaultRate = decimal.NewFromFloat(15.0)

	largeTier         = decimal.NewFromInt(1_000_000)
	largeTierDiscount = decimal.NewFromFloat(0.5)
	midTier           = decimal.NewFromInt(500_000)
	midTierDiscount   = decimal.NewFromFloat(0.25)
)

// LoanService is the loan book. It owns all remaining-balance
// mutation; loans are not drawn from or repaid into bank-held cash.
type LoanService struct {
	loans     loanStore
	customers customerStore

	autoApproveLimit decimal.Decimal
	minTenureMonths  int
	maxTenureMonths  int

	mu sync.Mutex
}

func NewLoanService(loans loanStore, customers customerStore, cfg *config.Config) *LoanService {
	return &LoanService{
		loans:            loans,
		customers:        customers,
		autoApproveLimit: decimal.NewFromFloat(cfg.LoanAutoApproveLimit),
		minTenureMonths:  cfg.LoanMinTenureMonths,
		maxTenureMonths:  cfg.LoanMaxTenureMonths,
	}
}

// resolveRate returns the annual rate for a loan: the category base
// rate minus an amount-tier discount. The larger tier wins.
func resolveRate(category string, amount decimal.Decimal) decimal.Decimal {
	rate, ok := loanBaseRates[strings.ToLower(category)]
	if !ok {
		rate = loanDefaultRate
	}
	switch {
	case amount.GreaterThan(largeTier):
		rate = rate.Sub(largeTierDiscount)
	case amount.GreaterThan(midTier):
		rate = rate.Sub(midTierDiscount)
	}
	return rate
}

// Apply issues a loan. The remaining balance is seeded with full
// simple interest over the tenure, and the loan is auto-approved when
// the principal is at or under the approval ceiling. Unapproved loans
// exist but reject all payments.
func (s *LoanService) Apply(ctx context.Context, customerID, category string, amount decimal.Decimal, tenureMonths int) (domain.Loan, error) {
	if _, err := s.customers.Get(customerID); err != nil {
		return domain.Loan{}, fmt.Errorf("Apply: %w", err)
	}
	if amount.Sign() <= 0 {
		return domain.Loan{}, fmt.Errorf("Apply: %w", domain.ErrInvalidAmount)
	}
	if tenureMonths < s.minTenureMonths || tenureMonths > s.maxTenureMonths {
		return domain.Loan{}, fmt.Errorf("Apply: %w", domain.ErrInvalidTenure)
	}

	rate := resolveRate(category, amount)
	interestFactor := one.Add(rate.Div(hundred).Mul(decimal.NewFromInt(int64(tenureMonths))).Div(twelve))

	loan := &domain.Loan{
		ID:               uuid.New(),
		CustomerID:       customerID,
		Category:         strings.ToLower(category),
		Principal:        amount,
		InterestRate:     rate,
		TenureMonths:     tenureMonths,
		StartedAt:        time.Now().UTC(),
		RemainingBalance: amount.Mul(interestFactor),
		Approved:         amount.LessThanOrEqual(s.autoApproveLimit),
	}
	if err := s.loans.Create(loan); err != nil {
		return domain.Loan{}, fmt.Errorf("Apply: %w", err)
	}

	logging.FromContext(ctx).Info("loan issued",
		"loan_id", loan.ID,
		"customer_id", customerID,
		"category", loan.Category,
		"principal", amount,
		"rate", rate,
		"tenure_months", tenureMonths,
		"approved", loan.Approved,
	)
	return snapshotLoan(loan), nil
}

// ProcessPayment applies a payment to a loan. Overpayment is clamped
// to the remaining balance, never rejected. Returns the remaining
// balance after the payment.
func (s *LoanService) ProcessPayment(ctx context.Context, loanID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, err := s.loans.Get(loanID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ProcessPayment: %w", err)
	}
	if !loan.Approved {
		return decimal.Zero, fmt.Errorf("ProcessPayment: %w", domain.ErrLoanNotApproved)
	}
	if loan.RemainingBalance.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("ProcessPayment: %w", domain.ErrLoanSettled)
	}
	if amount.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("ProcessPayment: %w", domain.ErrInvalidAmount)
	}

	pay := amount
	if pay.GreaterThan(loan.RemainingBalance) {
		pay = loan.RemainingBalance
	}
	loan.RemainingBalance = loan.RemainingBalance.Sub(pay)
	loan.Payments = append(loan.Payments, domain.LoanPayment{Amount: pay, PaidAt: time.Now().UTC()})

	log := logging.FromContext(ctx)
	log.Info("loan payment processed",
		"loan_id", loanID,
		"amount", pay,
		"remaining", loan.RemainingBalance,
	)
	if loan.FullyPaid() {
		log.Info("loan fully paid", "loan_id", loanID)
	}
	return loan.RemainingBalance, nil
}

func (s *LoanService) Get(ctx context.Context, loanID uuid.UUID) (domain.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, err := s.loans.Get(loanID)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("Get: %w", err)
	}
	return snapshotLoan(loan), nil
}

// OutstandingTotal sums the remaining balance across every loan.
func (s *LoanService) OutstandingTotal(ctx context.Context) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, loan := range s.loans.List() {
		total = total.Add(loan.RemainingBalance)
	}
	return total
}

func (s *LoanService) Count() int {
	return s.loans.Count()
}

func snapshotLoan(l *domain.Loan) domain.Loan {
	out := *l
	out.Payments = make([]domain.LoanPayment, len(l.Payments))
	copy(out.Payments, l.Payments)
	return out
}
