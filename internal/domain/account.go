package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
)

// Account balances are only mutated inside a committed transfer posting or
// an explicit deposit; everything else reads.
type Account struct {
	ID            int64
	CustomerID    int64
	AccountNumber string
	AccountType   AccountType
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
