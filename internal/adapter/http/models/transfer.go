package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
}

// Validate rejects structurally broken requests. A transfer where both sides
// are the same account is accepted on purpose; it books as a no-op movement
// with a normal ledger entry.
func (r TransferRequest) Validate() error {
	var errs []string

	if r.FromAccountID <= 0 {
		errs = append(errs, "fromAccountId is required")
	}
	if r.ToAccountID <= 0 {
		errs = append(errs, "toAccountId is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferResponse struct {
	TransactionID   int64           `json:"transactionId"`
	FromAccountID   int64           `json:"fromAccountId"`
	ToAccountID     int64           `json:"toAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transactionDate"`
}
