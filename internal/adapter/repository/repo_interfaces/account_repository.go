package repo_interfaces

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id int64) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Account, error)
	GetAll(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, account domain.Account) (domain.Account, error)
	Delete(ctx context.Context, id int64) error
	DepositFunds(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error)
}
