package repo_interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
)

type TransactionRepository interface {
	// PerformTransferPosting moves amount between the two accounts and
	// appends one COMPLETED transaction row, all inside a single
	// all-or-nothing unit. The source balance is re-verified under lock, so
	// concurrent postings against a shared account cannot overdraw it.
	PerformTransferPosting(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal, description, principal string) (domain.Transaction, error)

	GetByID(ctx context.Context, id int64) (domain.Transaction, error)
	GetByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error)
	GetRecentByAccountID(ctx context.Context, accountID int64, limit int) ([]domain.Transaction, error)
	GetByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.Transaction, error)
	GetByAmountRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Transaction, error)
	CountByStatus(ctx context.Context, status domain.TransactionStatus) (int64, error)
	SearchByDescription(ctx context.Context, keyword string) ([]domain.Transaction, error)
}
