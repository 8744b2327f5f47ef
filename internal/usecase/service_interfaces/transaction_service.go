package service_interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/models"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
)

type TransactionService interface {
	GetByID(ctx context.Context, id int64) (commons.Response[models.TransactionResponse], error)
	GetByAccount(ctx context.Context, accountID int64) (commons.Response[[]models.TransactionResponse], error)
	GetRecentByAccount(ctx context.Context, accountID int64, limit int) (commons.Response[[]models.TransactionResponse], error)
	GetByStatus(ctx context.Context, status string) (commons.Response[[]models.TransactionResponse], error)
	GetByDateRange(ctx context.Context, start, end time.Time) (commons.Response[[]models.TransactionResponse], error)
	GetByAmountRange(ctx context.Context, min, max decimal.Decimal) (commons.Response[[]models.TransactionResponse], error)
	CountByStatus(ctx context.Context, status string) (commons.Response[models.TransactionCountResponse], error)
	SearchByDescription(ctx context.Context, keyword string) (commons.Response[[]models.TransactionResponse], error)
}
