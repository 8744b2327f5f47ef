package memory

import (
	"sync"

	"github.com/ttnguyen-dev/bankcore/internal/domain"
)

// Store backs all in-memory repositories with one mutex, which makes a
// transfer posting a serializable unit the same way the postgres transaction
// does. Intended for tests and broker-less local runs.
type Store struct {
	mu sync.RWMutex

	accounts     map[int64]domain.Account
	transactions map[int64]domain.Transaction
	customers    map[int64]domain.Customer
	loans        map[int64]domain.Loan

	nextAccountID     int64
	nextTransactionID int64
	nextCustomerID    int64
	nextLoanID        int64
}

func NewStore() *Store {
	return &Store{
		accounts:     make(map[int64]domain.Account),
		transactions: make(map[int64]domain.Transaction),
		customers:    make(map[int64]domain.Customer),
		loans:        make(map[int64]domain.Loan),
	}
}
