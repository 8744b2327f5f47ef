package repo_interfaces

import (
	"context"

	"github.com/ttnguyen-dev/bankcore/internal/domain"
)

type LoanRepository interface {
	Create(ctx context.Context, loan domain.Loan) (domain.Loan, error)
	GetByID(ctx context.Context, id int64) (domain.Loan, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Loan, error)
	Update(ctx context.Context, loan domain.Loan) (domain.Loan, error)
	ExistsByCustomerIDAndStatus(ctx context.Context, customerID int64, status domain.LoanStatus) (bool, error)
}
