package commons

import "errors"

// Transfer failures form a closed set. Callers branch with errors.Is and
// must never rely on message text.
var (
	ErrRecordNotFound        = errors.New("record not found")
	ErrDuplicateRecord       = errors.New("record already exists")
	ErrAccountNotFound       = errors.New("account not found")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrAuthorizationDenied   = errors.New("transfer authorization denied")
	ErrTransferFailed        = errors.New("transfer posting failed")
	ErrInvalidAmount         = errors.New("amount must be greater than zero")
	ErrInvalidPin            = errors.New("invalid transaction pin")
	ErrInvalidLoanTransition = errors.New("invalid loan status transition")
)
