package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
	"github.com/ttnguyen-dev/bankcore/internal/logger"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, full_name, email, phone, address, pin_hash, created_at, updated_at`

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	const query = `
INSERT INTO customers (full_name, email, phone, address)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`

	var (
		id        int64
		createdAt time.Time
		updatedAt time.Time
	)

	if err := r.db.QueryRowContext(
		ctx,
		query,
		customer.FullName,
		customer.Email,
		customer.Phone,
		customer.Address,
	).Scan(&id, &createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Customer{}, fmt.Errorf("%w: email %s", commons.ErrDuplicateRecord, customer.Email)
		}
		logger.Error("customer repository create failed", err, nil)
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	customer.ID = id
	customer.CreatedAt = createdAt
	customer.UpdatedAt = updatedAt
	return customer, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.scanCustomer(r.db.QueryRowContext(ctx, query, id))
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	return r.scanCustomer(r.db.QueryRowContext(ctx, query, email))
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		customer, err := r.scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	const query = `
UPDATE customers
SET full_name = $2,
    email = $3,
    phone = $4,
    address = $5,
    updated_at = NOW()
WHERE id = $1
RETURNING updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		customer.ID,
		customer.FullName,
		customer.Email,
		customer.Phone,
		customer.Address,
	).Scan(&customer.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, commons.ErrRecordNotFound
		}
		logger.Error("customer repository update failed", err, logger.Fields{"customerId": customer.ID})
		return domain.Customer{}, fmt.Errorf("update customer: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) UpdatePinHash(ctx context.Context, id int64, pinHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE customers SET pin_hash = $2, updated_at = NOW() WHERE id = $1`, id, pinHash)
	if err != nil {
		return fmt.Errorf("update customer pin: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update customer pin rows affected: %w", err)
	}
	if affected == 0 {
		return commons.ErrRecordNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete customer rows affected: %w", err)
	}
	if affected == 0 {
		return commons.ErrRecordNotFound
	}
	return nil
}

func (r *CustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check customer exists: %w", err)
	}
	return exists, nil
}

func (r *CustomerRepository) scanCustomer(row rowScanner) (domain.Customer, error) {
	var (
		customer domain.Customer
		pinHash  sql.NullString
	)
	err := row.Scan(
		&customer.ID,
		&customer.FullName,
		&customer.Email,
		&customer.Phone,
		&customer.Address,
		&pinHash,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, commons.ErrRecordNotFound
		}
		return domain.Customer{}, fmt.Errorf("scan customer: %w", err)
	}
	if pinHash.Valid {
		customer.PinHash = pinHash.String
	}
	return customer, nil
}
