package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
	"github.com/ttnguyen-dev/bankcore/internal/logger"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, from_account_id, to_account_id, amount, transaction_date, status, description, principal`

// PerformTransferPosting is the atomic unit of a transfer: both balance
// writes and the COMPLETED ledger row commit together or not at all. Row
// locks are taken in ascending account id order so concurrent postings over
// the same pair cannot deadlock, and the source balance is re-verified under
// lock.
func (r *TransactionRepository) PerformTransferPosting(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal, description, principal string) (domain.Transaction, error) {
	logger.Info("transaction repository transfer posting", logger.Fields{
		"fromAccountId": fromAccountID,
		"toAccountId":   toAccountID,
		"amount":        amount.StringFixed(2),
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("begin transfer posting: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	firstID, secondID := fromAccountID, toAccountID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}

	const lockQuery = `SELECT balance FROM accounts WHERE id = $1 FOR UPDATE`

	var firstBalance, secondBalance decimal.Decimal
	if err = tx.QueryRowContext(ctx, lockQuery, firstID).Scan(&firstBalance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = fmt.Errorf("%w: account %d", commons.ErrRecordNotFound, firstID)
		}
		return domain.Transaction{}, err
	}
	if secondID != firstID {
		if err = tx.QueryRowContext(ctx, lockQuery, secondID).Scan(&secondBalance); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = fmt.Errorf("%w: account %d", commons.ErrRecordNotFound, secondID)
			}
			return domain.Transaction{}, err
		}
	} else {
		secondBalance = firstBalance
	}

	fromBalance := firstBalance
	if fromAccountID == secondID {
		fromBalance = secondBalance
	}
	if fromBalance.LessThan(amount) {
		err = commons.ErrInsufficientBalance
		return domain.Transaction{}, err
	}

	const debitQuery = `
UPDATE accounts
SET balance = balance - $2::numeric,
    updated_at = NOW()
WHERE id = $1`
	if _, err = tx.ExecContext(ctx, debitQuery, fromAccountID, amount); err != nil {
		return domain.Transaction{}, fmt.Errorf("debit account %d: %w", fromAccountID, err)
	}

	const creditQuery = `
UPDATE accounts
SET balance = balance + $2::numeric,
    updated_at = NOW()
WHERE id = $1`
	if _, err = tx.ExecContext(ctx, creditQuery, toAccountID, amount); err != nil {
		return domain.Transaction{}, fmt.Errorf("credit account %d: %w", toAccountID, err)
	}

	const insertQuery = `
INSERT INTO transactions (from_account_id, to_account_id, amount, status, description, principal)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, transaction_date`

	transaction := domain.Transaction{
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		Status:        domain.TransactionStatusCompleted,
		Description:   description,
		Principal:     principal,
	}
	if err = tx.QueryRowContext(
		ctx,
		insertQuery,
		fromAccountID,
		toAccountID,
		amount,
		transaction.Status,
		description,
		principal,
	).Scan(&transaction.ID, &transaction.TransactionDate); err != nil {
		return domain.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return domain.Transaction{}, fmt.Errorf("commit transfer posting: %w", err)
	}

	logger.Info("transaction repository transfer posting success", logger.Fields{
		"transactionId": transaction.ID,
		"fromAccountId": fromAccountID,
		"toAccountId":   toAccountID,
	})
	return transaction, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return r.scanTransaction(r.db.QueryRowContext(ctx, query, id))
}

func (r *TransactionRepository) GetByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	const query = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE from_account_id = $1 OR to_account_id = $1
ORDER BY transaction_date DESC`
	return r.queryTransactions(ctx, query, accountID)
}

func (r *TransactionRepository) GetRecentByAccountID(ctx context.Context, accountID int64, limit int) ([]domain.Transaction, error) {
	const query = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE from_account_id = $1 OR to_account_id = $1
ORDER BY transaction_date DESC
LIMIT $2`
	return r.queryTransactions(ctx, query, accountID, limit)
}

func (r *TransactionRepository) GetByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions WHERE status = $1 ORDER BY transaction_date DESC`
	return r.queryTransactions(ctx, query, status)
}

func (r *TransactionRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	const query = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE transaction_date BETWEEN $1 AND $2
ORDER BY transaction_date DESC`
	return r.queryTransactions(ctx, query, start, end)
}

func (r *TransactionRepository) GetByAmountRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Transaction, error) {
	const query = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE amount >= $1::numeric AND amount <= $2::numeric
ORDER BY transaction_date DESC`
	return r.queryTransactions(ctx, query, min, max)
}

func (r *TransactionRepository) CountByStatus(ctx context.Context, status domain.TransactionStatus) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM transactions WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

func (r *TransactionRepository) SearchByDescription(ctx context.Context, keyword string) ([]domain.Transaction, error) {
	const query = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE description ILIKE '%' || $1 || '%'
ORDER BY transaction_date DESC`
	return r.queryTransactions(ctx, query, keyword)
}

func (r *TransactionRepository) scanTransaction(row rowScanner) (domain.Transaction, error) {
	var transaction domain.Transaction
	err := row.Scan(
		&transaction.ID,
		&transaction.FromAccountID,
		&transaction.ToAccountID,
		&transaction.Amount,
		&transaction.TransactionDate,
		&transaction.Status,
		&transaction.Description,
		&transaction.Principal,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, commons.ErrRecordNotFound
		}
		return domain.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	return transaction, nil
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		transaction, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}
