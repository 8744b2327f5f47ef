package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is one append-only ledger entry for a directed funds movement.
// Rows are never updated after insert.
type Transaction struct {
	ID              int64
	FromAccountID   int64
	ToAccountID     int64
	Amount          decimal.Decimal
	TransactionDate time.Time
	Status          TransactionStatus
	Description     string
	Principal       string
}
