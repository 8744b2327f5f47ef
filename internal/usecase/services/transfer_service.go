package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/models"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/repository/repo_interfaces"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
	"github.com/ttnguyen-dev/bankcore/internal/logger"
	"github.com/ttnguyen-dev/bankcore/internal/metrics"
)

// CoreBankingAuthorizer is the external approval step consulted before any
// balance is touched. Unreachability counts as denial.
type CoreBankingAuthorizer interface {
	Authorize(ctx context.Context, fromAccountNumber, toAccountNumber string, amount decimal.Decimal) error
}

// NotificationPublisher delivers a committed transfer description with no
// delivery guarantee. It never returns; failures stay inside the publisher.
type NotificationPublisher interface {
	Publish(message string)
}

type TransferService struct {
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
	authorizer      CoreBankingAuthorizer
	notifier        NotificationPublisher
}

func NewTransferService(
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	authorizer CoreBankingAuthorizer,
	notifier NotificationPublisher,
) *TransferService {
	return &TransferService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		authorizer:      authorizer,
		notifier:        notifier,
	}
}

const defaultTransferDescription = "Internal funds transfer"

// PerformTransfer moves req.Amount from the source to the destination
// account as one atomic posting. The sequence is validate, load both
// accounts, check the source balance, obtain core banking approval, then
// post both balance writes plus one COMPLETED ledger row in a single
// all-or-nothing unit. Nothing before the posting mutates state, and a
// failed posting leaves no record. The committed notification is
// fire-and-forget.
//
// principal identifies the acting user and is threaded in explicitly rather
// than read from any ambient request state.
//
// There is no idempotency across calls: repeating the same request moves the
// funds again and appends a second ledger row.
func (s *TransferService) PerformTransfer(ctx context.Context, principal string, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	start := time.Now()
	logger.Info("transfer service perform transfer request", logger.Fields{
		"principal": principal,
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		metrics.ObserveTransfer("validation_failed", start)
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()),
			fmt.Errorf("%w: %s", commons.ErrInvalidAmount, err.Error())
	}

	fromAccount, err := s.accountRepo.GetByID(ctx, req.FromAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			metrics.ObserveTransfer("account_not_found", start)
			return commons.ErrorResponse[models.TransferResponse]("Source account not found"),
				fmt.Errorf("%w: source account %d", commons.ErrAccountNotFound, req.FromAccountID)
		}
		metrics.ObserveTransfer("error", start)
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	toAccount, err := s.accountRepo.GetByID(ctx, req.ToAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			metrics.ObserveTransfer("account_not_found", start)
			return commons.ErrorResponse[models.TransferResponse]("Destination account not found"),
				fmt.Errorf("%w: destination account %d", commons.ErrAccountNotFound, req.ToAccountID)
		}
		metrics.ObserveTransfer("error", start)
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	if fromAccount.Balance.LessThan(req.Amount) {
		metrics.ObserveTransfer("insufficient_balance", start)
		return commons.ErrorResponse[models.TransferResponse]("Insufficient balance", commons.ErrInsufficientBalance.Error()),
			commons.ErrInsufficientBalance
	}

	if err := s.authorizer.Authorize(ctx, fromAccount.AccountNumber, toAccount.AccountNumber, req.Amount); err != nil {
		metrics.ObserveTransfer("authorization_denied", start)
		if errors.Is(err, commons.ErrAuthorizationDenied) {
			return commons.ErrorResponse[models.TransferResponse]("Transfer rejected by core banking", err.Error()), err
		}
		return commons.ErrorResponse[models.TransferResponse]("Transfer rejected by core banking", err.Error()),
			fmt.Errorf("%w: %s", commons.ErrAuthorizationDenied, err.Error())
	}

	description := req.Description
	if description == "" {
		description = defaultTransferDescription
	}

	transaction, err := s.transactionRepo.PerformTransferPosting(ctx, fromAccount.ID, toAccount.ID, req.Amount, description, principal)
	if err != nil {
		logger.Error("transfer service posting failed", err, logger.Fields{
			"fromAccountId": fromAccount.ID,
			"toAccountId":   toAccount.ID,
		})
		metrics.ObserveTransfer("posting_failed", start)
		if errors.Is(err, commons.ErrInsufficientBalance) {
			// A concurrent transfer drained the source between the read
			// above and the locked re-check inside the posting.
			return commons.ErrorResponse[models.TransferResponse]("Insufficient balance", commons.ErrInsufficientBalance.Error()),
				commons.ErrInsufficientBalance
		}
		return commons.ErrorResponse[models.TransferResponse]("transfer failed", "Unable to complete transfer posting"),
			fmt.Errorf("%w: %s", commons.ErrTransferFailed, err.Error())
	}

	s.notifier.Publish(fmt.Sprintf(
		"Transfer completed with ID: %d, amount: %s, from account: %s to account: %s",
		transaction.ID, req.Amount.StringFixed(2), fromAccount.AccountNumber, toAccount.AccountNumber,
	))

	metrics.ObserveTransfer("completed", start)
	logger.Info("transfer service perform transfer success", logger.Fields{
		"transactionId": transaction.ID,
		"fromAccountId": fromAccount.ID,
		"toAccountId":   toAccount.ID,
	})

	return commons.SuccessResponse("Transfer successful", mapTransactionToTransferResponse(transaction)), nil
}

func mapTransactionToTransferResponse(transaction domain.Transaction) models.TransferResponse {
	return models.TransferResponse{
		TransactionID:   transaction.ID,
		FromAccountID:   transaction.FromAccountID,
		ToAccountID:     transaction.ToAccountID,
		Amount:          transaction.Amount,
		Status:          string(transaction.Status),
		Description:     transaction.Description,
		TransactionDate: transaction.TransactionDate.Format(time.RFC3339),
	}
}
