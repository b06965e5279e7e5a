package domain

import "errors"

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrLoanNotFound     = errors.New("loan not found")

	ErrDuplicateAccountID  = errors.New("account id already exists")
	ErrDuplicateCustomerID = errors.New("customer id already exists")

	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrLimitExceeded       = errors.New("transaction limit exceeded")
	ErrBelowMinimumBalance = errors.New("initial balance below minimum opening balance")
	ErrInvalidAccountKind  = errors.New("invalid account kind")
	ErrInvalidTenure       = errors.New("tenure outside allowed range")

	ErrInsufficientFunds = errors.New("insufficient funds for withdrawal")
	ErrNotMatured        = errors.New("fixed deposit has not matured")

	ErrSameAccount    = errors.New("cannot transfer to the same account")
	ErrTransferFailed = errors.New("transfer failed")

	ErrLoanNotApproved = errors.New("loan is not approved")
	ErrLoanSettled     = errors.New("loan already settled")
)
