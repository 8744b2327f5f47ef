package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
)

type LoanRepository struct {
	store *Store
}

func NewLoanRepository(store *Store) *LoanRepository {
	return &LoanRepository{store: store}
}

func (r *LoanRepository) Create(_ context.Context, loan domain.Loan) (domain.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextLoanID++
	loan.ID = r.store.nextLoanID
	r.store.loans[loan.ID] = loan
	return loan, nil
}

func (r *LoanRepository) GetByID(_ context.Context, id int64) (domain.Loan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	loan, ok := r.store.loans[id]
	if !ok {
		return domain.Loan{}, fmt.Errorf("%w: loan %d", commons.ErrRecordNotFound, id)
	}
	return loan, nil
}

func (r *LoanRepository) GetByCustomerID(_ context.Context, customerID int64) ([]domain.Loan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var loans []domain.Loan
	for _, loan := range r.store.loans {
		if loan.CustomerID == customerID {
			loans = append(loans, loan)
		}
	}
	sort.Slice(loans, func(i, j int) bool {
		return loans[i].ApplicationDate.After(loans[j].ApplicationDate)
	})
	return loans, nil
}

func (r *LoanRepository) Update(_ context.Context, loan domain.Loan) (domain.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.loans[loan.ID]; !ok {
		return domain.Loan{}, fmt.Errorf("%w: loan %d", commons.ErrRecordNotFound, loan.ID)
	}
	r.store.loans[loan.ID] = loan
	return loan, nil
}

func (r *LoanRepository) ExistsByCustomerIDAndStatus(_ context.Context, customerID int64, status domain.LoanStatus) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, loan := range r.store.loans {
		if loan.CustomerID == customerID && loan.Status == status {
			return true, nil
		}
	}
	return false, nil
}
