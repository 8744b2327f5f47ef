package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
)

type CustomerRepository struct {
	store *Store
}

func NewCustomerRepository(store *Store) *CustomerRepository {
	return &CustomerRepository{store: store}
}

func (r *CustomerRepository) Create(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.customers {
		if existing.Email == customer.Email {
			return domain.Customer{}, fmt.Errorf("%w: email %s", commons.ErrDuplicateRecord, customer.Email)
		}
	}

	r.store.nextCustomerID++
	customer.ID = r.store.nextCustomerID
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	r.store.customers[customer.ID] = customer
	return customer, nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id int64) (domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	customer, ok := r.store.customers[id]
	if !ok {
		return domain.Customer{}, fmt.Errorf("%w: customer %d", commons.ErrRecordNotFound, id)
	}
	return customer, nil
}

func (r *CustomerRepository) GetByEmail(_ context.Context, email string) (domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, customer := range r.store.customers {
		if customer.Email == email {
			return customer, nil
		}
	}
	return domain.Customer{}, fmt.Errorf("%w: customer %s", commons.ErrRecordNotFound, email)
}

func (r *CustomerRepository) GetAll(_ context.Context) ([]domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	customers := make([]domain.Customer, 0, len(r.store.customers))
	for _, customer := range r.store.customers {
		customers = append(customers, customer)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers, nil
}

func (r *CustomerRepository) Update(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.customers[customer.ID]
	if !ok {
		return domain.Customer{}, fmt.Errorf("%w: customer %d", commons.ErrRecordNotFound, customer.ID)
	}

	existing.FullName = customer.FullName
	existing.Email = customer.Email
	existing.Phone = customer.Phone
	existing.Address = customer.Address
	existing.UpdatedAt = time.Now().UTC()
	r.store.customers[existing.ID] = existing
	return existing, nil
}

func (r *CustomerRepository) UpdatePinHash(_ context.Context, id int64, pinHash string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	customer, ok := r.store.customers[id]
	if !ok {
		return fmt.Errorf("%w: customer %d", commons.ErrRecordNotFound, id)
	}

	customer.PinHash = pinHash
	customer.UpdatedAt = time.Now().UTC()
	r.store.customers[id] = customer
	return nil
}

func (r *CustomerRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[id]; !ok {
		return fmt.Errorf("%w: customer %d", commons.ErrRecordNotFound, id)
	}
	delete(r.store.customers, id)
	return nil
}

func (r *CustomerRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.customers[id]
	return ok, nil
}
