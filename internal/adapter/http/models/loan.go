package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type LoanApplicationRequest struct {
	CustomerID   int64           `json:"customerId"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"termMonths"`
}

func (r LoanApplicationRequest) Validate() error {
	var errs []string

	if r.CustomerID <= 0 {
		errs = append(errs, "customerId is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}
	if r.InterestRate.IsNegative() {
		errs = append(errs, "interestRate cannot be negative")
	}
	if r.TermMonths <= 0 {
		errs = append(errs, "termMonths must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type UpdateLoanStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (r UpdateLoanStatusRequest) Validate() error {
	switch strings.ToUpper(strings.TrimSpace(r.Status)) {
	case "APPROVED", "REJECTED", "DISBURSED", "CLOSED":
		return nil
	default:
		return errors.New("status must be one of APPROVED, REJECTED, DISBURSED, CLOSED")
	}
}

type LoanResponse struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customerId"`
	Amount          decimal.Decimal `json:"amount"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	TermMonths      int             `json:"termMonths"`
	Status          string          `json:"status"`
	ApplicationDate string          `json:"applicationDate"`
	ApprovalDate    string          `json:"approvalDate,omitempty"`
	ApprovedBy      string          `json:"approvedBy,omitempty"`
	RejectReason    string          `json:"rejectReason,omitempty"`
}
