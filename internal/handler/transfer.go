package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank/ledger/internal/logging"
)

type transferService interface {
	Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, actorID string) (uuid.UUID, error)
}

type TransferHandler struct {
	transfers transferService
}

func NewTransferHandler(transfers transferService) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

type transferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	ActorID       string          `json:"actor_id"`
}

func (r transferRequest) Validate() []FieldError {
	var errs []FieldError
	if r.FromAccountID == "" {
		errs = append(errs, FieldError{Field: "from_account_id", Message: "required"})
	}
	if r.ToAccountID == "" {
		errs = append(errs, FieldError{Field: "to_account_id", Message: "required"})
	}
	if r.ActorID == "" {
		errs = append(errs, FieldError{Field: "actor_id", Message: "required"})
	}
	return errs
}

type transferDTO struct {
	TransactionID string          `json:"transaction_id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// Create executes a transfer. Transfers are not idempotent: retrying
// a request that already succeeded moves the funds again.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	txnID, err := h.transfers.Transfer(r.Context(), req.FromAccountID, req.ToAccountID, req.Amount, req.ActorID)
	if err != nil {
		logging.FromContext(r.Context()).Error("transfer failed",
			"from_account", req.FromAccountID,
			"to_account", req.ToAccountID,
			"error", err,
		)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, transferDTO{
		TransactionID: txnID.String(),
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
	})
}
