package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger/internal/service"
)

type reportLedger interface {
	Report(ctx context.Context) service.Report
}

type reportLoans interface {
	OutstandingTotal(ctx context.Context) decimal.Decimal
	Count() int
}

type ReportHandler struct {
	ledger reportLedger
	loans  reportLoans
}

func NewReportHandler(ledger reportLedger, loans reportLoans) *ReportHandler {
	return &ReportHandler{ledger: ledger, loans: loans}
}

type reportDTO struct {
	TotalAccounts     int             `json:"total_accounts"`
	TotalCustomers    int             `json:"total_customers"`
	TotalTransactions int             `json:"total_transactions"`
	TotalDeposited    decimal.Decimal `json:"total_deposited"`
	TotalWithdrawn    decimal.Decimal `json:"total_withdrawn"`
	TotalBalance      decimal.Decimal `json:"total_balance"`
	TotalLoans        int             `json:"total_loans"`
	OutstandingLoans  decimal.Decimal `json:"outstanding_loans"`
}

func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	rep := h.ledger.Report(r.Context())
	RespondSuccess(w, http.StatusOK, reportDTO{
		TotalAccounts:     rep.TotalAccounts,
		TotalCustomers:    rep.TotalCustomers,
		TotalTransactions: rep.TotalTransactions,
		TotalDeposited:    rep.TotalDeposited,
		TotalWithdrawn:    rep.TotalWithdrawn,
		TotalBalance:      rep.TotalBalance,
		TotalLoans:        h.loans.Count(),
		OutstandingLoans:  h.loans.OutstandingTotal(r.Context()),
	})
}
