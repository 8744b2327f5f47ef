package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/models"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/repository/repo_interfaces"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
)

const defaultRecentLimit = 10

// TransactionService is the read side of the ledger. Rows are append-only,
// so everything here is a straight query.
type TransactionService struct {
	transactionRepo repo_interfaces.TransactionRepository
}

func NewTransactionService(transactionRepo repo_interfaces.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

func (s *TransactionService) GetByID(ctx context.Context, id int64) (commons.Response[models.TransactionResponse], error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("Transaction not found"), err
		}
		return commons.ErrorResponse[models.TransactionResponse]("failed to load transaction", "Unable to load transaction right now"), err
	}
	return commons.SuccessResponse("transaction retrieved successfully", mapTransactionToResponse(transaction)), nil
}

func (s *TransactionService) GetByAccount(ctx context.Context, accountID int64) (commons.Response[[]models.TransactionResponse], error) {
	transactions, err := s.transactionRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}
	return commons.SuccessResponse("transactions retrieved successfully", mapTransactionsToResponse(transactions)), nil
}

func (s *TransactionService) GetRecentByAccount(ctx context.Context, accountID int64, limit int) (commons.Response[[]models.TransactionResponse], error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	transactions, err := s.transactionRepo.GetRecentByAccountID(ctx, accountID, limit)
	if err != nil {
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}
	return commons.SuccessResponse("transactions retrieved successfully", mapTransactionsToResponse(transactions)), nil
}

func (s *TransactionService) GetByStatus(ctx context.Context, status string) (commons.Response[[]models.TransactionResponse], error) {
	normalized := domain.TransactionStatus(strings.ToUpper(strings.TrimSpace(status)))
	if normalized != domain.TransactionStatusCompleted && normalized != domain.TransactionStatusFailed {
		err := errors.New("status must be COMPLETED or FAILED")
		return commons.ErrorResponse[[]models.TransactionResponse]("validation failed", err.Error()), err
	}

	transactions, err := s.transactionRepo.GetByStatus(ctx, normalized)
	if err != nil {
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}
	return commons.SuccessResponse("transactions retrieved successfully", mapTransactionsToResponse(transactions)), nil
}

func (s *TransactionService) GetByDateRange(ctx context.Context, start, end time.Time) (commons.Response[[]models.TransactionResponse], error) {
	transactions, err := s.transactionRepo.GetByDateRange(ctx, start, end)
	if err != nil {
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}
	return commons.SuccessResponse("transactions retrieved successfully", mapTransactionsToResponse(transactions)), nil
}

func (s *TransactionService) GetByAmountRange(ctx context.Context, min, max decimal.Decimal) (commons.Response[[]models.TransactionResponse], error) {
	transactions, err := s.transactionRepo.GetByAmountRange(ctx, min, max)
	if err != nil {
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}
	return commons.SuccessResponse("transactions retrieved successfully", mapTransactionsToResponse(transactions)), nil
}

func (s *TransactionService) CountByStatus(ctx context.Context, status string) (commons.Response[models.TransactionCountResponse], error) {
	normalized := domain.TransactionStatus(strings.ToUpper(strings.TrimSpace(status)))

	count, err := s.transactionRepo.CountByStatus(ctx, normalized)
	if err != nil {
		return commons.ErrorResponse[models.TransactionCountResponse]("failed to count transactions", "Unable to count transactions right now"), err
	}

	return commons.SuccessResponse("transactions counted successfully", models.TransactionCountResponse{
		Status: string(normalized),
		Count:  count,
	}), nil
}

func (s *TransactionService) SearchByDescription(ctx context.Context, keyword string) (commons.Response[[]models.TransactionResponse], error) {
	transactions, err := s.transactionRepo.SearchByDescription(ctx, strings.TrimSpace(keyword))
	if err != nil {
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to search transactions", "Unable to search transactions right now"), err
	}
	return commons.SuccessResponse("transactions retrieved successfully", mapTransactionsToResponse(transactions)), nil
}

func mapTransactionToResponse(transaction domain.Transaction) models.TransactionResponse {
	return models.TransactionResponse{
		ID:              transaction.ID,
		FromAccountID:   transaction.FromAccountID,
		ToAccountID:     transaction.ToAccountID,
		Amount:          transaction.Amount,
		Status:          string(transaction.Status),
		Description:     transaction.Description,
		TransactionDate: transaction.TransactionDate.Format(time.RFC3339),
	}
}

func mapTransactionsToResponse(transactions []domain.Transaction) []models.TransactionResponse {
	out := make([]models.TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		out = append(out, mapTransactionToResponse(transaction))
	}
	return out
}
