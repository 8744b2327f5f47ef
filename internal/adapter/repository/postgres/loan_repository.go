package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
	"github.com/ttnguyen-dev/bankcore/internal/logger"
)

type LoanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

const loanColumns = `id, customer_id, amount, interest_rate, term_months, status, application_date, approval_date, approved_by, reject_reason`

func (r *LoanRepository) Create(ctx context.Context, loan domain.Loan) (domain.Loan, error) {
	const query = `
INSERT INTO loans (customer_id, amount, interest_rate, term_months, status, application_date, reject_reason)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		loan.CustomerID,
		loan.Amount,
		loan.InterestRate,
		loan.TermMonths,
		loan.Status,
		loan.ApplicationDate,
		nullIfEmpty(loan.RejectReason),
	).Scan(&loan.ID); err != nil {
		logger.Error("loan repository create failed", err, logger.Fields{
			"customerId": loan.CustomerID,
		})
		return domain.Loan{}, fmt.Errorf("create loan: %w", err)
	}

	return loan, nil
}

func (r *LoanRepository) GetByID(ctx context.Context, id int64) (domain.Loan, error) {
	const query = `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	return r.scanLoan(r.db.QueryRowContext(ctx, query, id))
}

func (r *LoanRepository) GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Loan, error) {
	const query = `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY application_date DESC`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		loan, err := r.scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loans: %w", err)
	}
	return loans, nil
}

func (r *LoanRepository) Update(ctx context.Context, loan domain.Loan) (domain.Loan, error) {
	const query = `
UPDATE loans
SET status = $2,
    approval_date = $3,
    approved_by = $4,
    reject_reason = $5
WHERE id = $1`

	result, err := r.db.ExecContext(
		ctx,
		query,
		loan.ID,
		loan.Status,
		loan.ApprovalDate,
		nullIfEmpty(loan.ApprovedBy),
		nullIfEmpty(loan.RejectReason),
	)
	if err != nil {
		logger.Error("loan repository update failed", err, logger.Fields{"loanId": loan.ID})
		return domain.Loan{}, fmt.Errorf("update loan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Loan{}, fmt.Errorf("update loan rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Loan{}, commons.ErrRecordNotFound
	}
	return loan, nil
}

func (r *LoanRepository) ExistsByCustomerIDAndStatus(ctx context.Context, customerID int64, status domain.LoanStatus) (bool, error) {
	var exists bool
	const query = `SELECT EXISTS(SELECT 1 FROM loans WHERE customer_id = $1 AND status = $2)`
	if err := r.db.QueryRowContext(ctx, query, customerID, status).Scan(&exists); err != nil {
		return false, fmt.Errorf("check pending loan: %w", err)
	}
	return exists, nil
}

func (r *LoanRepository) scanLoan(row rowScanner) (domain.Loan, error) {
	var (
		loan         domain.Loan
		approvalDate sql.NullTime
		approvedBy   sql.NullString
		rejectReason sql.NullString
	)
	err := row.Scan(
		&loan.ID,
		&loan.CustomerID,
		&loan.Amount,
		&loan.InterestRate,
		&loan.TermMonths,
		&loan.Status,
		&loan.ApplicationDate,
		&approvalDate,
		&approvedBy,
		&rejectReason,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Loan{}, commons.ErrRecordNotFound
		}
		return domain.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	if approvalDate.Valid {
		value := approvalDate.Time
		loan.ApprovalDate = &value
	}
	if approvedBy.Valid {
		loan.ApprovedBy = approvedBy.String
	}
	if rejectReason.Valid {
		loan.RejectReason = rejectReason.String
	}
	return loan, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
