package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/logging"
)

type loanService interface {
	Apply(ctx context.Context, customerID, category string, amount decimal.Decimal, tenureMonths int) (domain.Loan, error)
	ProcessPayment(ctx context.Context, loanID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	Get(ctx context.Context, loanID uuid.UUID) (domain.Loan, error)
}

type LoanHandler struct {
	loans loanService
}

func NewLoanHandler(loans loanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

type applyLoanRequest struct {
	CustomerID   string          `json:"customer_id"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	TenureMonths int             `json:"tenure_months"`
}

func (r applyLoanRequest) Validate() []FieldError {
	var errs []FieldError
	if r.CustomerID == "" {
		errs = append(errs, FieldError{Field: "customer_id", Message: "required"})
	}
	if r.Category == "" {
		errs = append(errs, FieldError{Field: "category", Message: "required"})
	}
	return errs
}

type loanPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type loanPaymentDTO struct {
	Amount decimal.Decimal `json:"amount"`
	PaidAt time.Time       `json:"paid_at"`
}

type loanDTO struct {
	ID               string           `json:"id"`
	CustomerID       string           `json:"customer_id"`
	Category         string           `json:"category"`
	Principal        decimal.Decimal  `json:"principal"`
	InterestRate     decimal.Decimal  `json:"interest_rate"`
	TenureMonths     int              `json:"tenure_months"`
	StartedAt        time.Time        `json:"started_at"`
	RemainingBalance decimal.Decimal  `json:"remaining_balance"`
	Payments         []loanPaymentDTO `json:"payments"`
	Approved         bool             `json:"approved"`
	FullyPaid        bool             `json:"fully_paid"`
}

func toLoanDTO(l domain.Loan) loanDTO {
	payments := make([]loanPaymentDTO, len(l.Payments))
	for i, p := range l.Payments {
		payments[i] = loanPaymentDTO{Amount: p.Amount, PaidAt: p.PaidAt}
	}
	return loanDTO{
		ID:               l.ID.String(),
		CustomerID:       l.CustomerID,
		Category:         l.Category,
		Principal:        l.Principal,
		InterestRate:     l.InterestRate,
		TenureMonths:     l.TenureMonths,
		StartedAt:        l.StartedAt,
		RemainingBalance: l.RemainingBalance,
		Payments:         payments,
		Approved:         l.Approved,
		FullyPaid:        l.FullyPaid(),
	}
}

func (h *LoanHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	loan, err := h.loans.Apply(r.Context(), req.CustomerID, req.Category, req.Amount, req.TenureMonths)
	if err != nil {
		logging.FromContext(r.Context()).Error("loan application failed", "error", err)
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusCreated, toLoanDTO(loan))
}

type loanBalanceDTO struct {
	LoanID           string          `json:"loan_id"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	FullyPaid        bool            `json:"fully_paid"`
}

func (h *LoanHandler) Pay(w http.ResponseWriter, r *http.Request) {
	loanID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondDomainError(w, domain.ErrLoanNotFound)
		return
	}

	var req loanPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	remaining, err := h.loans.ProcessPayment(r.Context(), loanID, req.Amount)
	if err != nil {
		logging.FromContext(r.Context()).Error("loan payment failed", "loan_id", loanID, "error", err)
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, loanBalanceDTO{
		LoanID:           loanID.String(),
		RemainingBalance: remaining,
		FullyPaid:        remaining.LessThan(domain.SettlementEpsilon),
	})
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	loanID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondDomainError(w, domain.ErrLoanNotFound)
		return
	}

	loan, err := h.loans.Get(r.Context(), loanID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toLoanDTO(loan))
}
