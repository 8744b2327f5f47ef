package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
)

type TransactionRepository struct {
	store *Store
}

func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// PerformTransferPosting runs under the store's write lock, so the balance
// re-check and both writes are one serializable unit.
func (r *TransactionRepository) PerformTransferPosting(_ context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal, description, principal string) (domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	fromAccount, ok := r.store.accounts[fromAccountID]
	if !ok {
		return domain.Transaction{}, fmt.Errorf("%w: account %d", commons.ErrRecordNotFound, fromAccountID)
	}
	toAccount, ok := r.store.accounts[toAccountID]
	if !ok {
		return domain.Transaction{}, fmt.Errorf("%w: account %d", commons.ErrRecordNotFound, toAccountID)
	}

	if fromAccount.Balance.LessThan(amount) {
		return domain.Transaction{}, commons.ErrInsufficientBalance
	}

	now := time.Now().UTC()
	fromAccount.Balance = fromAccount.Balance.Sub(amount)
	fromAccount.UpdatedAt = now
	r.store.accounts[fromAccountID] = fromAccount

	// Re-read: from and to may be the same account.
	toAccount = r.store.accounts[toAccountID]
	toAccount.Balance = toAccount.Balance.Add(amount)
	toAccount.UpdatedAt = now
	r.store.accounts[toAccountID] = toAccount

	r.store.nextTransactionID++
	transaction := domain.Transaction{
		ID:              r.store.nextTransactionID,
		FromAccountID:   fromAccountID,
		ToAccountID:     toAccountID,
		Amount:          amount,
		TransactionDate: now,
		Status:          domain.TransactionStatusCompleted,
		Description:     description,
		Principal:       principal,
	}
	r.store.transactions[transaction.ID] = transaction
	return transaction, nil
}

func (r *TransactionRepository) GetByID(_ context.Context, id int64) (domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	transaction, ok := r.store.transactions[id]
	if !ok {
		return domain.Transaction{}, fmt.Errorf("%w: transaction %d", commons.ErrRecordNotFound, id)
	}
	return transaction, nil
}

func (r *TransactionRepository) GetByAccountID(_ context.Context, accountID int64) ([]domain.Transaction, error) {
	return r.filter(func(t domain.Transaction) bool {
		return t.FromAccountID == accountID || t.ToAccountID == accountID
	}), nil
}

func (r *TransactionRepository) GetRecentByAccountID(_ context.Context, accountID int64, limit int) ([]domain.Transaction, error) {
	transactions := r.filter(func(t domain.Transaction) bool {
		return t.FromAccountID == accountID || t.ToAccountID == accountID
	})
	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

func (r *TransactionRepository) GetByStatus(_ context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	return r.filter(func(t domain.Transaction) bool { return t.Status == status }), nil
}

func (r *TransactionRepository) GetByDateRange(_ context.Context, start, end time.Time) ([]domain.Transaction, error) {
	return r.filter(func(t domain.Transaction) bool {
		return !t.TransactionDate.Before(start) && !t.TransactionDate.After(end)
	}), nil
}

func (r *TransactionRepository) GetByAmountRange(_ context.Context, min, max decimal.Decimal) ([]domain.Transaction, error) {
	return r.filter(func(t domain.Transaction) bool {
		return t.Amount.GreaterThanOrEqual(min) && t.Amount.LessThanOrEqual(max)
	}), nil
}

func (r *TransactionRepository) CountByStatus(_ context.Context, status domain.TransactionStatus) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, transaction := range r.store.transactions {
		if transaction.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *TransactionRepository) SearchByDescription(_ context.Context, keyword string) ([]domain.Transaction, error) {
	lowered := strings.ToLower(keyword)
	return r.filter(func(t domain.Transaction) bool {
		return strings.Contains(strings.ToLower(t.Description), lowered)
	}), nil
}

func (r *TransactionRepository) filter(keep func(domain.Transaction) bool) []domain.Transaction {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var transactions []domain.Transaction
	for _, transaction := range r.store.transactions {
		if keep(transaction) {
			transactions = append(transactions, transaction)
		}
	}
	sort.Slice(transactions, func(i, j int) bool {
		if transactions[i].TransactionDate.Equal(transactions[j].TransactionDate) {
			return transactions[i].ID > transactions[j].ID
		}
		return transactions[i].TransactionDate.After(transactions[j].TransactionDate)
	})
	return transactions
}
