package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/logging"
	"github.com/corebank/ledger/internal/service"
)

type ledgerService interface {
	CreateAccount(ctx context.Context, id, customerID string, kind domain.AccountKind, initialBalance decimal.Decimal) (domain.Account, error)
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal, actorID string) (decimal.Decimal, error)
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, actorID string) (decimal.Decimal, error)
	Statement(ctx context.Context, accountID string, lookbackDays int) ([]domain.Transaction, error)
	ViewAccount(ctx context.Context, accountID string) (service.AccountView, error)
}

type AccountHandler struct {
	ledger ledgerService
}

func NewAccountHandler(ledger ledgerService) *AccountHandler {
	return &AccountHandler{ledger: ledger}
}

type createAccountRequest struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	Kind           string          `json:"kind"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

func (r createAccountRequest) Validate() []FieldError {
	var errs []FieldError
	if r.ID == "" {
		errs = append(errs, FieldError{Field: "id", Message: "required"})
	}
	if r.CustomerID == "" {
		errs = append(errs, FieldError{Field: "customer_id", Message: "required"})
	}
	switch domain.AccountKind(r.Kind) {
	case domain.AccountKindSavings, domain.AccountKindCurrent, domain.AccountKindFixed:
	default:
		errs = append(errs, FieldError{Field: "kind", Message: "must be savings, current, or fixed"})
	}
	return errs
}

type moneyRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	ActorID string          `json:"actor_id"`
}

func (r moneyRequest) Validate() []FieldError {
	var errs []FieldError
	if r.ActorID == "" {
		errs = append(errs, FieldError{Field: "actor_id", Message: "required"})
	}
	return errs
}

type accountDTO struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Kind       string          `json:"kind"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"created_at"`
	History    []string        `json:"history,omitempty"`

	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty"`
	MinimumBalance *decimal.Decimal `json:"minimum_balance,omitempty"`
	OverdraftLimit *decimal.Decimal `json:"overdraft_limit,omitempty"`
	TenureMonths   *int             `json:"tenure_months,omitempty"`
	MaturityDate   *time.Time       `json:"maturity_date,omitempty"`
	Matured        *bool            `json:"matured,omitempty"`
}

func toAccountDTO(v service.AccountView) accountDTO {
	return accountDTO{
		ID:             v.ID,
		CustomerID:     v.CustomerID,
		Kind:           string(v.Kind),
		Balance:        v.Balance,
		CreatedAt:      v.CreatedAt,
		History:        v.History,
		InterestRate:   v.InterestRate,
		MinimumBalance: v.MinimumBalance,
		OverdraftLimit: v.OverdraftLimit,
		TenureMonths:   v.TenureMonths,
		MaturityDate:   v.MaturityDate,
		Matured:        v.Matured,
	}
}

type balanceDTO struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

type transactionDTO struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`
	ActorID     string          `json:"actor_id"`
	ToAccountID *string         `json:"to_account_id,omitempty"`
}

func toTransactionDTO(t domain.Transaction) transactionDTO {
	return transactionDTO{
		ID:          t.ID.String(),
		AccountID:   t.AccountID,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Timestamp:   t.Timestamp,
		ActorID:     t.ActorID,
		ToAccountID: t.ToAccountID,
	}
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	_, err := h.ledger.CreateAccount(r.Context(), req.ID, req.CustomerID, domain.AccountKind(req.Kind), req.InitialBalance)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create account", "error", err)
		RespondDomainError(w, err)
		return
	}

	view, err := h.ledger.ViewAccount(r.Context(), req.ID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusCreated, toAccountDTO(view))
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.ledger.ViewAccount(r.Context(), r.PathValue("id"))
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toAccountDTO(view))
}

func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.ledger.Deposit)
}

func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.ledger.Withdraw)
}

func (h *AccountHandler) move(w http.ResponseWriter, r *http.Request, op func(context.Context, string, decimal.Decimal, string) (decimal.Decimal, error)) {
	accountID := r.PathValue("id")

	var req moneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	balance, err := op(r.Context(), accountID, req.Amount, req.ActorID)
	if err != nil {
		logging.FromContext(r.Context()).Error("money movement failed", "account_id", accountID, "error", err)
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, balanceDTO{AccountID: accountID, Balance: balance})
}

func (h *AccountHandler) Statement(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("id")

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			RespondValidationError(w, []FieldError{{Field: "days", Message: "must be a positive integer"}})
			return
		}
		days = parsed
	}

	txns, err := h.ledger.Statement(r.Context(), accountID, days)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transactionDTO, len(txns))
	for i, t := range txns {
		dtos[i] = toTransactionDTO(t)
	}
	RespondSuccess(w, http.StatusOK, dtos)
}
