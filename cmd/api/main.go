package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger/internal/config"
	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/handler"
	"github.com/corebank/ledger/internal/logging"
	"github.com/corebank/ledger/internal/middleware"
	"github.com/corebank/ledger/internal/repository"
	"github.com/corebank/ledger/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("ledger-api", cfg.LogLevel, cfg.AppEnv)

	accounts := repository.NewAccountStore()
	customers := repository.NewCustomerStore()
	journal := repository.NewJournalStore()
	loans := repository.NewLoanStore()

	ledger := service.NewLedgerService(accounts, customers, journal, cfg)
	transfers := service.NewTransferCoordinator(ledger)
	interest := service.NewInterestService(ledger)
	loanBook := service.NewLoanService(loans, customers, cfg)

	if cfg.AppEnv == "development" {
		seedSampleData(ledger)
	}

	accountHandler := handler.NewAccountHandler(ledger)
	customerHandler := handler.NewCustomerHandler(ledger)
	transferHandler := handler.NewTransferHandler(transfers)
	loanHandler := handler.NewLoanHandler(loanBook)
	interestHandler := handler.NewInterestHandler(interest)
	reportHandler := handler.NewReportHandler(ledger, loanBook)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)

	mux.HandleFunc("POST /api/v1/customers", customerHandler.Register)
	mux.HandleFunc("GET /api/v1/customers/{id}", customerHandler.Get)

	mux.HandleFunc("POST /api/v1/accounts", accountHandler.Create)
	mux.HandleFunc("GET /api/v1/accounts/{id}", accountHandler.Get)
	mux.HandleFunc("POST /api/v1/accounts/{id}/deposits", accountHandler.Deposit)
	mux.HandleFunc("POST /api/v1/accounts/{id}/withdrawals", accountHandler.Withdraw)
	mux.HandleFunc("GET /api/v1/accounts/{id}/statement", accountHandler.Statement)

	mux.HandleFunc("POST /api/v1/transfers", transferHandler.Create)

	mux.HandleFunc("POST /api/v1/loans", loanHandler.Apply)
	mux.HandleFunc("GET /api/v1/loans/{id}", loanHandler.Get)
	mux.HandleFunc("POST /api/v1/loans/{id}/payments", loanHandler.Pay)

	mux.HandleFunc("POST /api/v1/interest/accrual", interestHandler.Accrue)
	mux.HandleFunc("GET /api/v1/reports/summary", reportHandler.Summary)

	var root http.Handler = mux
	root = middleware.Recovery(root)
	root = middleware.Logging(root)
	root = middleware.Tracing(root)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// seedSampleData loads the stock demo data set for development runs.
func seedSampleData(ledger *service.LedgerService) {
	ctx := context.Background()

	seedCustomers := []struct {
		id, name, email, phone, address string
	}{
		{"C001", "John Doe", "john.doe@email.com", "1234567890", "123 Main St"},
		{"C002", "Jane Smith", "jane.smith@email.com", "0987654321", "456 Oak Ave"},
		{"C003", "Bob Johnson", "bob.j@email.com", "1122334455", "789 Pine Rd"},
	}
	for _, c := range seedCustomers {
		if _, err := ledger.RegisterCustomer(ctx, c.id, c.name, c.email, c.phone, c.address); err != nil {
			slog.Warn("seed customer failed", "customer_id", c.id, "error", err)
		}
	}

	seedAccounts := []struct {
		id, customerID string
		kind           domain.AccountKind
		balance        decimal.Decimal
	}{
		{"ACC001", "C001", domain.AccountKindSavings, decimal.NewFromInt(5000)},
		{"ACC002", "C002", domain.AccountKindCurrent, decimal.NewFromInt(10000)},
		{"ACC003", "C003", domain.AccountKindFixed, decimal.NewFromInt(50000)},
	}
	for _, a := range seedAccounts {
		if _, err := ledger.CreateAccount(ctx, a.id, a.customerID, a.kind, a.balance); err != nil {
			slog.Warn("seed account failed", "account_id", a.id, "error", err)
		}
	}
}
