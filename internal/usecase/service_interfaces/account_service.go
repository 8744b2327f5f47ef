package service_interfaces

import (
	"context"

	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/models"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, id int64) (commons.Response[models.AccountResponse], error)
	GetAccountsByCustomer(ctx context.Context, customerID int64) (commons.Response[[]models.AccountResponse], error)
	GetAllAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error)
	UpdateAccount(ctx context.Context, id int64, req models.UpdateAccountRequest) (commons.Response[models.AccountResponse], error)
	DeleteAccount(ctx context.Context, id int64) (commons.Response[struct{}], error)
	DepositFunds(ctx context.Context, id int64, req models.DepositFundsRequest) (commons.Response[models.AccountResponse], error)
}
