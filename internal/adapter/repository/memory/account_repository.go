package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
)

type AccountRepository struct {
	store *Store
}

func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.accounts {
		if existing.AccountNumber == account.AccountNumber {
			return domain.Account{}, fmt.Errorf("%w: account number %s", commons.ErrDuplicateRecord, account.AccountNumber)
		}
	}

	r.store.nextAccountID++
	account.ID = r.store.nextAccountID
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	r.store.accounts[account.ID] = account
	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id int64) (domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	account, ok := r.store.accounts[id]
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: account %d", commons.ErrRecordNotFound, id)
	}
	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, account := range r.store.accounts {
		if account.AccountNumber == accountNumber {
			return account, nil
		}
	}
	return domain.Account{}, fmt.Errorf("%w: account %s", commons.ErrRecordNotFound, accountNumber)
}

func (r *AccountRepository) GetByCustomerID(_ context.Context, customerID int64) ([]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var accounts []domain.Account
	for _, account := range r.store.accounts {
		if account.CustomerID == customerID {
			accounts = append(accounts, account)
		}
	}
	sortAccountsByID(accounts)
	return accounts, nil
}

func (r *AccountRepository) GetAll(_ context.Context) ([]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(r.store.accounts))
	for _, account := range r.store.accounts {
		accounts = append(accounts, account)
	}
	sortAccountsByID(accounts)
	return accounts, nil
}

func (r *AccountRepository) Update(_ context.Context, account domain.Account) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.accounts[account.ID]
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: account %d", commons.ErrRecordNotFound, account.ID)
	}

	existing.AccountType = account.AccountType
	existing.UpdatedAt = time.Now().UTC()
	r.store.accounts[existing.ID] = existing
	return existing, nil
}

func (r *AccountRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[id]; !ok {
		return fmt.Errorf("%w: account %d", commons.ErrRecordNotFound, id)
	}
	delete(r.store.accounts, id)
	return nil
}

func (r *AccountRepository) DepositFunds(_ context.Context, id int64, amount decimal.Decimal) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[id]
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: account %d", commons.ErrRecordNotFound, id)
	}

	account.Balance = account.Balance.Add(amount)
	account.UpdatedAt = time.Now().UTC()
	r.store.accounts[id] = account
	return account, nil
}

func sortAccountsByID(accounts []domain.Account) {
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
}
