package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/models"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/repository/repo_interfaces"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
	"github.com/ttnguyen-dev/bankcore/internal/logger"
)

type AccountService struct {
	accountRepo  repo_interfaces.AccountRepository
	customerRepo repo_interfaces.CustomerRepository
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	customerRepo repo_interfaces.CustomerRepository,
) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
	}
}

var accountNumberCounter uint32

const accountNumberAttempts = 3

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	exists, err := s.customerRepo.Exists(ctx, req.CustomerID)
	if err != nil {
		logger.Error("account service customer lookup failed", err, logger.Fields{
			"customerId": req.CustomerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}
	if !exists {
		err := fmt.Errorf("%w: customer %d", commons.ErrRecordNotFound, req.CustomerID)
		return commons.ErrorResponse[models.AccountResponse]("Customer not found"), err
	}

	account := domain.Account{
		CustomerID:  req.CustomerID,
		AccountType: domain.AccountType(strings.ToUpper(strings.TrimSpace(req.AccountType))),
		Balance:     req.InitialDeposit,
	}

	var created domain.Account
	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		account.AccountNumber = generateAccountNumber()
		created, err = s.accountRepo.Create(ctx, account)
		if err == nil {
			break
		}
		if errors.Is(err, commons.ErrDuplicateRecord) {
			logger.Warn("account service account number collision, regenerating", logger.Fields{
				"accountNumber": account.AccountNumber,
				"attempt":       attempt + 1,
			})
			continue
		}
		logger.Error("account service create account repository failed", err, logger.Fields{
			"customerId": account.CustomerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}
	if err != nil {
		logger.Error("account service create account exhausted number attempts", err, logger.Fields{
			"customerId": account.CustomerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
		"customerId":    created.CustomerID,
	})

	return commons.SuccessResponse("account created successfully", mapAccountToResponse(created)), nil
}

func (s *AccountService) GetAccount(ctx context.Context, id int64) (commons.Response[models.AccountResponse], error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to get account right now"), err
	}

	return commons.SuccessResponse("account retrieved successfully", mapAccountToResponse(account)), nil
}

func (s *AccountService) GetAccountsByCustomer(ctx context.Context, customerID int64) (commons.Response[[]models.AccountResponse], error) {
	accounts, err := s.accountRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to list accounts right now"), err
	}

	return commons.SuccessResponse("accounts retrieved successfully", mapAccountsToResponse(accounts)), nil
}

func (s *AccountService) GetAllAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error) {
	accounts, err := s.accountRepo.GetAll(ctx)
	if err != nil {
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to list accounts right now"), err
	}

	return commons.SuccessResponse("accounts retrieved successfully", mapAccountsToResponse(accounts)), nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, id int64, req models.UpdateAccountRequest) (commons.Response[models.AccountResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to update account", "Unable to update account right now"), err
	}

	if accountType := strings.ToUpper(strings.TrimSpace(req.AccountType)); accountType != "" {
		account.AccountType = domain.AccountType(accountType)
	}

	updated, err := s.accountRepo.Update(ctx, account)
	if err != nil {
		logger.Error("account service update account repository failed", err, logger.Fields{
			"accountId": id,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to update account", "Unable to update account right now"), err
	}

	return commons.SuccessResponse("account updated successfully", mapAccountToResponse(updated)), nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, id int64) (commons.Response[struct{}], error) {
	if err := s.accountRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}]("Account not found"), err
		}
		return commons.ErrorResponse[struct{}]("failed to delete account", "Unable to delete account right now"), err
	}

	logger.Info("account service delete account success", logger.Fields{"accountId": id})
	return commons.SuccessResponse("account deleted successfully", struct{}{}), nil
}

func (s *AccountService) DepositFunds(ctx context.Context, id int64, req models.DepositFundsRequest) (commons.Response[models.AccountResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.DepositFunds(ctx, id, req.Amount)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		logger.Error("account service deposit failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to deposit", "Unable to deposit right now"), err
	}

	logger.Info("account service deposit success", logger.Fields{
		"accountId": id,
		"amount":    req.Amount.StringFixed(2),
	})

	return commons.SuccessResponse("deposit successful", mapAccountToResponse(account)), nil
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:            account.ID,
		CustomerID:    account.CustomerID,
		AccountNumber: account.AccountNumber,
		AccountType:   string(account.AccountType),
		Balance:       account.Balance,
		CreatedAt:     account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     account.UpdatedAt.Format(time.RFC3339),
	}
}

func mapAccountsToResponse(accounts []domain.Account) []models.AccountResponse {
	out := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, mapAccountToResponse(account))
	}
	return out
}

// generateAccountNumber builds a 10-digit number from wall clock, a counter
// and a random tail. Uniqueness is ultimately enforced by the store's unique
// constraint; collisions are retried with a fresh number in CreateAccount.
func generateAccountNumber() string {
	counter := atomic.AddUint32(&accountNumberCounter, 1) % 1000
	return fmt.Sprintf("%06d%03d%01d", time.Now().Unix()%1000000, counter, rand.Intn(10))
}
