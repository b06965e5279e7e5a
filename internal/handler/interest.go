package handler

import (
	"context"
	"net/http"

	"github.com/corebank/ledger/internal/logging"
)

type interestService interface {
	AccrueAll(ctx context.Context) int
}

type InterestHandler struct {
	interest interestService
}

func NewInterestHandler(interest interestService) *InterestHandler {
	return &InterestHandler{interest: interest}
}

// Accrue runs one batch accrual round. The operation is not
// idempotent; calling it twice credits interest twice.
func (h *InterestHandler) Accrue(w http.ResponseWriter, r *http.Request) {
	credited := h.interest.AccrueAll(r.Context())
	logging.FromContext(r.Context()).Info("interest accrual run", "accounts_credited", credited)
	RespondSuccess(w, http.StatusOK, map[string]int{"accounts_credited": credited})
}
