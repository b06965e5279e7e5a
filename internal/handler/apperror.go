package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrInvalidRequest   = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrInternalError    = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrAccountNotFound  = &AppError{http.StatusNotFound, "ACCOUNT_NOT_FOUND", "Account not found"}
	ErrCustomerNotFound = &AppError{http.StatusNotFound, "CUSTOMER_NOT_FOUND", "Customer not found"}
	ErrLoanNotFound     = &AppError{http.StatusNotFound, "LOAN_NOT_FOUND", "Loan not found"}

	ErrDuplicateAccountID  = &AppError{http.StatusConflict, "ACCOUNT_ALREADY_EXISTS", "Account id already exists"}
	ErrDuplicateCustomerID = &AppError{http.StatusConflict, "CUSTOMER_ALREADY_EXISTS", "Customer id already exists"}

	ErrInvalidAmount       = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be greater than zero"}
	ErrLimitExceeded       = &AppError{http.StatusUnprocessableEntity, "TRANSACTION_LIMIT_EXCEEDED", "Transaction limit exceeded"}
	ErrBelowMinimumBalance = &AppError{http.StatusUnprocessableEntity, "BELOW_MINIMUM_BALANCE", "Initial balance below minimum opening balance"}
	ErrInvalidAccountKind  = &AppError{http.StatusBadRequest, "INVALID_ACCOUNT_KIND", "Account kind must be savings, current, or fixed"}
	ErrInvalidTenure       = &AppError{http.StatusBadRequest, "INVALID_TENURE", "Tenure outside allowed range"}

	ErrInsufficientFunds = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", "Insufficient funds for withdrawal"}
	ErrNotMatured        = &AppError{http.StatusUnprocessableEntity, "NOT_MATURED", "Fixed deposit has not matured"}

	ErrSameAccount    = &AppError{http.StatusUnprocessableEntity, "SELF_TRANSFER_NOT_ALLOWED", "Cannot transfer to the same account"}
	ErrTransferFailed = &AppError{http.StatusUnprocessableEntity, "TRANSFER_FAILED", "Transfer failed and was compensated"}

	ErrLoanNotApproved = &AppError{http.StatusUnprocessableEntity, "LOAN_NOT_APPROVED", "Loan is not approved"}
	ErrLoanSettled     = &AppError{http.StatusConflict, "LOAN_ALREADY_SETTLED", "Loan already settled"}
)
