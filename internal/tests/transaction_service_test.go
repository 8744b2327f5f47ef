package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
	"github.com/ttnguyen-dev/bankcore/internal/usecase/services"
)

func TestTransactionServiceGetByIDNotFound(t *testing.T) {
	svc := services.NewTransactionService(transactionRepoStub{
		getByIDFn: func(context.Context, int64) (domain.Transaction, error) {
			return domain.Transaction{}, commons.ErrRecordNotFound
		},
	})

	_, err := svc.GetByID(context.Background(), 404)
	if !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestTransactionServiceGetByStatusRejectsUnknownStatus(t *testing.T) {
	svc := services.NewTransactionService(transactionRepoStub{})

	_, err := svc.GetByStatus(context.Background(), "SETTLED")
	if err == nil {
		t.Fatal("expected validation error for unknown status")
	}
}

func TestTransactionServiceGetByStatusNormalizesInput(t *testing.T) {
	svc := services.NewTransactionService(transactionRepoStub{
		getByStatusFn: func(_ context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
			if status != domain.TransactionStatusCompleted {
				t.Fatalf("expected normalized COMPLETED status, got %s", status)
			}
			return []domain.Transaction{{ID: 1, Status: status}}, nil
		},
	})

	resp, err := svc.GetByStatus(context.Background(), " completed ")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data == nil || len(*resp.Data) != 1 {
		t.Fatal("expected one transaction in the response")
	}
}

func TestTransactionServiceGetRecentByAccountDefaultsLimit(t *testing.T) {
	svc := services.NewTransactionService(transactionRepoStub{
		getRecentByAccountIDFn: func(_ context.Context, _ int64, limit int) ([]domain.Transaction, error) {
			if limit != 10 {
				t.Fatalf("expected default limit 10, got %d", limit)
			}
			return nil, nil
		},
	})

	if _, err := svc.GetRecentByAccount(context.Background(), 1, 0); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestTransactionServiceCountByStatus(t *testing.T) {
	svc := services.NewTransactionService(transactionRepoStub{
		countByStatusFn: func(_ context.Context, status domain.TransactionStatus) (int64, error) {
			if status != domain.TransactionStatusFailed {
				t.Fatalf("expected FAILED status, got %s", status)
			}
			return 3, nil
		},
	})

	resp, err := svc.CountByStatus(context.Background(), "failed")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data == nil || resp.Data.Count != 3 || resp.Data.Status != "FAILED" {
		t.Fatal("expected a count of 3 FAILED transactions")
	}
}

func TestTransactionServiceGetByDateRange(t *testing.T) {
	now := time.Now().UTC()
	svc := services.NewTransactionService(transactionRepoStub{
		getByDateRangeFn: func(_ context.Context, start, end time.Time) ([]domain.Transaction, error) {
			return []domain.Transaction{
				{ID: 1, Amount: decimal.NewFromInt(10), TransactionDate: now},
				{ID: 2, Amount: decimal.NewFromInt(20), TransactionDate: now},
			}, nil
		},
	})

	resp, err := svc.GetByDateRange(context.Background(), now.Add(-time.Hour), now)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data == nil || len(*resp.Data) != 2 {
		t.Fatal("expected two transactions in the window")
	}
}
