package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	CustomerID     int64           `json:"customerId"`
	AccountType    string          `json:"accountType"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if r.CustomerID <= 0 {
		errs = append(errs, "customerId is required")
	}
	if !isAccountType(r.AccountType) {
		errs = append(errs, "accountType must be SAVINGS or CHECKING")
	}
	if r.InitialDeposit.IsNegative() {
		errs = append(errs, "initialDeposit cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type UpdateAccountRequest struct {
	AccountType string `json:"accountType"`
}

func (r UpdateAccountRequest) Validate() error {
	if strings.TrimSpace(r.AccountType) != "" && !isAccountType(r.AccountType) {
		return errors.New("accountType must be SAVINGS or CHECKING")
	}
	return nil
}

type DepositFundsRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r DepositFundsRequest) Validate() error {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be greater than zero")
	}
	return nil
}

type AccountResponse struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customerId"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

func isAccountType(value string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	return normalized == "SAVINGS" || normalized == "CHECKING"
}
