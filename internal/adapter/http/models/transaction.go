package models

import "github.com/shopspring/decimal"

type TransactionResponse struct {
	ID              int64           `json:"id"`
	FromAccountID   int64           `json:"fromAccountId"`
	ToAccountID     int64           `json:"toAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transactionDate"`
}

type TransactionCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}
