package service_interfaces

import (
	"context"

	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/models"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (commons.Response[models.CustomerResponse], error)
	GetCustomer(ctx context.Context, id int64) (commons.Response[models.CustomerResponse], error)
	GetAllCustomers(ctx context.Context) (commons.Response[[]models.CustomerResponse], error)
	UpdateCustomer(ctx context.Context, id int64, req models.UpdateCustomerRequest) (commons.Response[models.CustomerResponse], error)
	DeleteCustomer(ctx context.Context, id int64) (commons.Response[struct{}], error)
	SetTransactionPin(ctx context.Context, id int64, req models.SetTransactionPinRequest) (commons.Response[struct{}], error)
	VerifyTransactionPin(ctx context.Context, id int64, req models.VerifyTransactionPinRequest) (commons.Response[struct{}], error)
}
