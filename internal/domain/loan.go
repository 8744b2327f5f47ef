package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusPending   LoanStatus = "PENDING"
	LoanStatusApproved  LoanStatus = "APPROVED"
	LoanStatusRejected  LoanStatus = "REJECTED"
	LoanStatusDisbursed LoanStatus = "DISBURSED"
	LoanStatusClosed    LoanStatus = "CLOSED"
)

type Loan struct {
	ID              int64
	CustomerID      int64
	Amount          decimal.Decimal
	InterestRate    decimal.Decimal
	TermMonths      int
	Status          LoanStatus
	ApplicationDate time.Time
	ApprovalDate    *time.Time
	ApprovedBy      string
	RejectReason    string
}
