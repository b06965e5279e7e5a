package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebank/ledger/internal/config"
	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/repository"
)

func newLoanFixture(t *testing.T) *LoanService {
	t.Helper()

	customers := repository.NewCustomerStore()
	require.NoError(t, customers.Create(domain.Customer{ID: "C001", Name: "John Doe"}))
	return NewLoanService(repository.NewLoanStore(), customers, config.Default())
}

func TestResolveRate(t *testing.T) {
	tests := []struct {
		name     string
		category string
		amount   decimal.Decimal
		want     decimal.Decimal
	}{
		{"home base", "home", dec(100000), dec(8.5)},
		{"car base", "car", dec(100000), dec(10.0)},
		{"personal base", "personal", dec(100000), dec(12.0)},
		{"education base", "education", dec(100000), dec(7.5)},
		{"unknown category", "boat", dec(100000), dec(15.0)},
		{"category is case-insensitive", "HOME", dec(100000), dec(8.5)},
		{"mid tier discount", "home", dec(600000), dec(8.25)},
		{"exactly at mid tier gets no discount", "home", dec(500000), dec(8.5)},
		{"large tier discount", "home", dec(1500000), dec(8.0)},
		{"exactly at large tier gets mid discount", "home", dec(1000000), dec(8.25)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveRate(tc.category, tc.amount)
			require.True(t, got.Equal(tc.want), "rate = %s, want %s", got, tc.want)
		})
	}
}

func TestApplyValidation(t *testing.T) {
	svc := newLoanFixture(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		customerID string
		amount     decimal.Decimal
		tenure     int
		wantErr    error
	}{
		{"unknown customer", "C999", dec(1000), 12, domain.ErrCustomerNotFound},
		{"zero amount", "C001", decimal.Zero, 12, domain.ErrInvalidAmount},
		{"negative amount", "C001", dec(-1), 12, domain.ErrInvalidAmount},
		{"tenure too short", "C001", dec(1000), 0, domain.ErrInvalidTenure},
		{"tenure too long", "C001", dec(1000), 61, domain.ErrInvalidTenure},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Apply(ctx, tc.customerID, "home", tc.amount, tc.tenure)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestApplySeedsFullSimpleInterest(t *testing.T) {
	svc := newLoanFixture(t)
	ctx := context.Background()

	loan, err := svc.Apply(ctx, "C001", "home", dec(600000), 20)
	require.NoError(t, err)

	require.True(t, loan.InterestRate.Equal(dec(8.25)), "rate = %s", loan.InterestRate)
	require.True(t, loan.RemainingBalance.Equal(dec(682500)), "remaining = %s", loan.RemainingBalance)
	assert.True(t, loan.Approved)
	assert.Equal(t, "home", loan.Category)
	assert.Empty(t, loan.Payments)
}

func TestApplyAutoApprovalCeiling(t *testing.T) {
	svc := newLoanFixture(t)
	ctx := context.Background()

	atCeiling, err := svc.Apply(ctx, "C001", "home", dec(5000000), 12)
	require.NoError(t, err)
	assert.True(t, atCeiling.Approved)

	overCeiling, err := svc.Apply(ctx, "C001", "home", dec(5000001), 12)
	require.NoError(t, err)
	assert.False(t, overCeiling.Approved)

	// Unapproved loans exist but reject all payments.
	_, err = svc.ProcessPayment(ctx, overCeiling.ID, dec(1000))
	require.ErrorIs(t, err, domain.ErrLoanNotApproved)
}

func TestProcessPayment(t *testing.T) {
	svc := newLoanFixture(t)
	ctx := context.Background()

	loan, err := svc.Apply(ctx, "C001", "personal", dec(10000), 12)
	require.NoError(t, err)
	// 10000 * (1 + 0.12) = 11200
	require.True(t, loan.RemainingBalance.Equal(dec(11200)), "remaining = %s", loan.RemainingBalance)

	_, err = svc.ProcessPayment(ctx, uuid.New(), dec(100))
	require.ErrorIs(t, err, domain.ErrLoanNotFound)

	_, err = svc.ProcessPayment(ctx, loan.ID, decimal.Zero)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	remaining, err := svc.ProcessPayment(ctx, loan.ID, dec(200))
	require.NoError(t, err)
	require.True(t, remaining.Equal(dec(11000)), "remaining = %s", remaining)

	// Remaining balance never increases across a payment sequence.
	prev := remaining
	for _, amount := range []float64{500, 500, 1000} {
		remaining, err = svc.ProcessPayment(ctx, loan.ID, dec(amount))
		require.NoError(t, err)
		require.True(t, remaining.LessThanOrEqual(prev), "remaining increased: %s > %s", remaining, prev)
		prev = remaining
	}

	got, err := svc.Get(ctx, loan.ID)
	require.NoError(t, err)
	assert.Len(t, got.Payments, 4)
}

func TestOverpaymentClampsToRemaining(t *testing.T) {
	svc := newLoanFixture(t)
	ctx := context.Background()

	loan, err := svc.Apply(ctx, "C001", "car", dec(1000), 12)
	require.NoError(t, err)
	// 1000 * (1 + 0.10) = 1100
	require.True(t, loan.RemainingBalance.Equal(dec(1100)))

	remaining, err := svc.ProcessPayment(ctx, loan.ID, dec(1200))
	require.NoError(t, err)
	require.True(t, remaining.IsZero(), "remaining = %s", remaining)

	got, err := svc.Get(ctx, loan.ID)
	require.NoError(t, err)
	require.Len(t, got.Payments, 1)
	assert.True(t, got.Payments[0].Amount.Equal(dec(1100)), "payment clamped to %s", got.Payments[0].Amount)
	assert.True(t, got.FullyPaid())

	_, err = svc.ProcessPayment(ctx, loan.ID, dec(10))
	require.ErrorIs(t, err, domain.ErrLoanSettled)
}

func TestOutstandingTotal(t *testing.T) {
	svc := newLoanFixture(t)
	ctx := context.Background()

	_, err := svc.Apply(ctx, "C001", "car", dec(1000), 12)
	require.NoError(t, err)
	_, err = svc.Apply(ctx, "C001", "personal", dec(10000), 12)
	require.NoError(t, err)

	total := svc.OutstandingTotal(ctx)
	require.True(t, total.Equal(dec(12300)), "total = %s", total)
	assert.Equal(t, 2, svc.Count())
}
