package service_interfaces

import (
	"context"

	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/models"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
)

type LoanService interface {
	ApplyForLoan(ctx context.Context, req models.LoanApplicationRequest) (commons.Response[models.LoanResponse], error)
	GetLoan(ctx context.Context, id int64) (commons.Response[models.LoanResponse], error)
	GetLoansByCustomer(ctx context.Context, customerID int64) (commons.Response[[]models.LoanResponse], error)
	UpdateLoanStatus(ctx context.Context, principal string, id int64, req models.UpdateLoanStatusRequest) (commons.Response[models.LoanResponse], error)
}
