package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/models"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
	"github.com/ttnguyen-dev/bankcore/internal/usecase/services"
)

type accountRepoStub struct {
	createFn             func(ctx context.Context, account domain.Account) (domain.Account, error)
	getByIDFn            func(ctx context.Context, id int64) (domain.Account, error)
	getByAccountNumberFn func(ctx context.Context, accountNumber string) (domain.Account, error)
	getByCustomerIDFn    func(ctx context.Context, customerID int64) ([]domain.Account, error)
	getAllFn             func(ctx context.Context) ([]domain.Account, error)
	updateFn             func(ctx context.Context, account domain.Account) (domain.Account, error)
	deleteFn             func(ctx context.Context, id int64) error
	depositFundsFn       func(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error)
}

func (s accountRepoStub) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	if s.createFn != nil {
		return s.createFn(ctx, account)
	}
	return domain.Account{}, nil
}

func (s accountRepoStub) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return domain.Account{}, nil
}

func (s accountRepoStub) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	if s.getByAccountNumberFn != nil {
		return s.getByAccountNumberFn(ctx, accountNumber)
	}
	return domain.Account{}, nil
}

func (s accountRepoStub) GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Account, error) {
	if s.getByCustomerIDFn != nil {
		return s.getByCustomerIDFn(ctx, customerID)
	}
	return nil, nil
}

func (s accountRepoStub) GetAll(ctx context.Context) ([]domain.Account, error) {
	if s.getAllFn != nil {
		return s.getAllFn(ctx)
	}
	return nil, nil
}

func (s accountRepoStub) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, account)
	}
	return domain.Account{}, nil
}

func (s accountRepoStub) Delete(ctx context.Context, id int64) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s accountRepoStub) DepositFunds(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error) {
	if s.depositFundsFn != nil {
		return s.depositFundsFn(ctx, id, amount)
	}
	return domain.Account{}, nil
}

type transactionRepoStub struct {
	performTransferPostingFn func(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal, description, principal string) (domain.Transaction, error)
	getByIDFn                func(ctx context.Context, id int64) (domain.Transaction, error)
	getByAccountIDFn         func(ctx context.Context, accountID int64) ([]domain.Transaction, error)
	getRecentByAccountIDFn   func(ctx context.Context, accountID int64, limit int) ([]domain.Transaction, error)
	getByStatusFn            func(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error)
	getByDateRangeFn         func(ctx context.Context, start, end time.Time) ([]domain.Transaction, error)
	getByAmountRangeFn       func(ctx context.Context, min, max decimal.Decimal) ([]domain.Transaction, error)
	countByStatusFn          func(ctx context.Context, status domain.TransactionStatus) (int64, error)
	searchByDescriptionFn    func(ctx context.Context, keyword string) ([]domain.Transaction, error)
}

func (s transactionRepoStub) PerformTransferPosting(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal, description, principal string) (domain.Transaction, error) {
	if s.performTransferPostingFn != nil {
		return s.performTransferPostingFn(ctx, fromAccountID, toAccountID, amount, description, principal)
	}
	return domain.Transaction{}, nil
}

func (s transactionRepoStub) GetByID(ctx context.Context, id int64) (domain.Transaction, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return domain.Transaction{}, nil
}

func (s transactionRepoStub) GetByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	if s.getByAccountIDFn != nil {
		return s.getByAccountIDFn(ctx, accountID)
	}
	return nil, nil
}

func (s transactionRepoStub) GetRecentByAccountID(ctx context.Context, accountID int64, limit int) ([]domain.Transaction, error) {
	if s.getRecentByAccountIDFn != nil {
		return s.getRecentByAccountIDFn(ctx, accountID, limit)
	}
	return nil, nil
}

func (s transactionRepoStub) GetByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	if s.getByStatusFn != nil {
		return s.getByStatusFn(ctx, status)
	}
	return nil, nil
}

func (s transactionRepoStub) GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	if s.getByDateRangeFn != nil {
		return s.getByDateRangeFn(ctx, start, end)
	}
	return nil, nil
}

func (s transactionRepoStub) GetByAmountRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Transaction, error) {
	if s.getByAmountRangeFn != nil {
		return s.getByAmountRangeFn(ctx, min, max)
	}
	return nil, nil
}

func (s transactionRepoStub) CountByStatus(ctx context.Context, status domain.TransactionStatus) (int64, error) {
	if s.countByStatusFn != nil {
		return s.countByStatusFn(ctx, status)
	}
	return 0, nil
}

func (s transactionRepoStub) SearchByDescription(ctx context.Context, keyword string) ([]domain.Transaction, error) {
	if s.searchByDescriptionFn != nil {
		return s.searchByDescriptionFn(ctx, keyword)
	}
	return nil, nil
}

type authorizerStub struct {
	authorizeFn func(ctx context.Context, fromAccountNumber, toAccountNumber string, amount decimal.Decimal) error
}

func (s authorizerStub) Authorize(ctx context.Context, fromAccountNumber, toAccountNumber string, amount decimal.Decimal) error {
	if s.authorizeFn != nil {
		return s.authorizeFn(ctx, fromAccountNumber, toAccountNumber, amount)
	}
	return nil
}

type notifierStub struct {
	messages *[]string
}

func (s notifierStub) Publish(message string) {
	if s.messages != nil {
		*s.messages = append(*s.messages, message)
	}
}

func testAccount(id int64, number string, balance int64) domain.Account {
	return domain.Account{
		ID:            id,
		CustomerID:    1,
		AccountNumber: number,
		AccountType:   domain.AccountTypeSavings,
		Balance:       decimal.NewFromInt(balance),
	}
}

func accountsByID(accounts ...domain.Account) accountRepoStub {
	return accountRepoStub{
		getByIDFn: func(_ context.Context, id int64) (domain.Account, error) {
			for _, account := range accounts {
				if account.ID == id {
					return account, nil
				}
			}
			return domain.Account{}, commons.ErrRecordNotFound
		},
	}
}

func TestTransferServicePerformTransferValidationError(t *testing.T) {
	svc := services.NewTransferService(nil, nil, nil, nil)

	_, err := svc.PerformTransfer(context.Background(), "tester", models.TransferRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty transfer request")
	}
	if !errors.Is(err, commons.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestTransferServicePerformTransferRejectsNonPositiveAmount(t *testing.T) {
	svc := services.NewTransferService(nil, nil, nil, nil)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-25)} {
		_, err := svc.PerformTransfer(context.Background(), "tester", models.TransferRequest{
			FromAccountID: 1,
			ToAccountID:   2,
			Amount:        amount,
		})
		if !errors.Is(err, commons.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for amount %s, got %v", amount, err)
		}
	}
}

func TestTransferServicePerformTransferSourceAccountNotFound(t *testing.T) {
	svc := services.NewTransferService(
		accountsByID(testAccount(2, "0000000002", 500)),
		nil,
		nil,
		nil,
	)

	_, err := svc.PerformTransfer(context.Background(), "tester", models.TransferRequest{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        decimal.NewFromInt(100),
	})
	if !errors.Is(err, commons.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestTransferServicePerformTransferInsufficientBalanceSkipsAuthorizer(t *testing.T) {
	authorizerCalled := false
	svc := services.NewTransferService(
		accountsByID(
			testAccount(1, "0000000001", 50),
			testAccount(2, "0000000002", 500),
		),
		transactionRepoStub{
			performTransferPostingFn: func(context.Context, int64, int64, decimal.Decimal, string, string) (domain.Transaction, error) {
				t.Fatal("posting must not run when the source balance is short")
				return domain.Transaction{}, nil
			},
		},
		authorizerStub{
			authorizeFn: func(context.Context, string, string, decimal.Decimal) error {
				authorizerCalled = true
				return nil
			},
		},
		notifierStub{},
	)

	_, err := svc.PerformTransfer(context.Background(), "tester", models.TransferRequest{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        decimal.NewFromInt(100),
	})
	if !errors.Is(err, commons.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if authorizerCalled {
		t.Fatal("authorizer must not be consulted for an underfunded transfer")
	}
}

func TestTransferServicePerformTransferAuthorizerDenialBlocksPosting(t *testing.T) {
	postingCalled := false
	var notifications []string
	svc := services.NewTransferService(
		accountsByID(
			testAccount(1, "0000000001", 1000),
			testAccount(2, "0000000002", 500),
		),
		transactionRepoStub{
			performTransferPostingFn: func(context.Context, int64, int64, decimal.Decimal, string, string) (domain.Transaction, error) {
				postingCalled = true
				return domain.Transaction{}, nil
			},
		},
		authorizerStub{
			authorizeFn: func(context.Context, string, string, decimal.Decimal) error {
				return commons.ErrAuthorizationDenied
			},
		},
		notifierStub{messages: &notifications},
	)

	_, err := svc.PerformTransfer(context.Background(), "tester", models.TransferRequest{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        decimal.NewFromInt(100),
	})
	if !errors.Is(err, commons.ErrAuthorizationDenied) {
		t.Fatalf("expected ErrAuthorizationDenied, got %v", err)
	}
	if postingCalled {
		t.Fatal("a denied transfer must not reach the posting")
	}
	if len(notifications) != 0 {
		t.Fatal("a denied transfer must not notify")
	}
}

func TestTransferServicePerformTransferUnreachableAuthorizerFailsClosed(t *testing.T) {
	svc := services.NewTransferService(
		accountsByID(
			testAccount(1, "0000000001", 1000),
			testAccount(2, "0000000002", 500),
		),
		transactionRepoStub{
			performTransferPostingFn: func(context.Context, int64, int64, decimal.Decimal, string, string) (domain.Transaction, error) {
				t.Fatal("posting must not run when the authorizer is unreachable")
				return domain.Transaction{}, nil
			},
		},
		authorizerStub{
			authorizeFn: func(context.Context, string, string, decimal.Decimal) error {
				return errors.New("dial tcp: connection refused")
			},
		},
		notifierStub{},
	)

	_, err := svc.PerformTransfer(context.Background(), "tester", models.TransferRequest{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        decimal.NewFromInt(100),
	})
	if !errors.Is(err, commons.ErrAuthorizationDenied) {
		t.Fatalf("expected fail-closed ErrAuthorizationDenied, got %v", err)
	}
}

func TestTransferServicePerformTransferPostingFailureYieldsNoNotification(t *testing.T) {
	var notifications []string
	svc := services.NewTransferService(
		accountsByID(
			testAccount(1, "0000000001", 1000),
			testAccount(2, "0000000002", 500),
		),
		transactionRepoStub{
			performTransferPostingFn: func(context.Context, int64, int64, decimal.Decimal, string, string) (domain.Transaction, error) {
				return domain.Transaction{}, errors.New("pq: deadlock detected")
			},
		},
		authorizerStub{},
		notifierStub{messages: &notifications},
	)

	_, err := svc.PerformTransfer(context.Background(), "tester", models.TransferRequest{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        decimal.NewFromInt(100),
	})
	if !errors.Is(err, commons.ErrTransferFailed) {
		t.Fatalf("expected ErrTransferFailed, got %v", err)
	}
	if len(notifications) != 0 {
		t.Fatal("a failed posting must not notify")
	}
}

func TestTransferServicePerformTransferConcurrentDrainSurfacesInsufficientBalance(t *testing.T) {
	svc := services.NewTransferService(
		accountsByID(
			testAccount(1, "0000000001", 1000),
			testAccount(2, "0000000002", 500),
		),
		transactionRepoStub{
			performTransferPostingFn: func(context.Context, int64, int64, decimal.Decimal, string, string) (domain.Transaction, error) {
				return domain.Transaction{}, commons.ErrInsufficientBalance
			},
		},
		authorizerStub{},
		notifierStub{},
	)

	_, err := svc.PerformTransfer(context.Background(), "tester", models.TransferRequest{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        decimal.NewFromInt(100),
	})
	if !errors.Is(err, commons.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance from the locked re-check, got %v", err)
	}
}

func TestTransferServicePerformTransferSuccess(t *testing.T) {
	var notifications []string
	now := time.Now().UTC()
	svc := services.NewTransferService(
		accountsByID(
			testAccount(1, "0000000001", 1000),
			testAccount(2, "0000000002", 500),
		),
		transactionRepoStub{
			performTransferPostingFn: func(_ context.Context, fromID, toID int64, amount decimal.Decimal, description, principal string) (domain.Transaction, error) {
				if fromID != 1 || toID != 2 {
					t.Fatalf("unexpected posting accounts %d -> %d", fromID, toID)
				}
				if principal != "BankApp" {
					t.Fatalf("expected principal to reach the posting, got %q", principal)
				}
				return domain.Transaction{
					ID:              42,
					FromAccountID:   fromID,
					ToAccountID:     toID,
					Amount:          amount,
					TransactionDate: now,
					Status:          domain.TransactionStatusCompleted,
					Description:     description,
					Principal:       principal,
				}, nil
			},
		},
		authorizerStub{},
		notifierStub{messages: &notifications},
	)

	resp, err := svc.PerformTransfer(context.Background(), "BankApp", models.TransferRequest{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        decimal.NewFromInt(100),
		Description:   "rent",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
	if resp.Data.TransactionID != 42 {
		t.Fatalf("expected transaction id 42, got %d", resp.Data.TransactionID)
	}
	if resp.Data.Status != string(domain.TransactionStatusCompleted) {
		t.Fatalf("expected COMPLETED status, got %s", resp.Data.Status)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifications))
	}
	if notifications[0] != "Transfer completed with ID: 42, amount: 100.00, from account: 0000000001 to account: 0000000002" {
		t.Fatalf("unexpected notification message: %q", notifications[0])
	}
}

func TestTransferServicePerformTransferSameAccountPermitted(t *testing.T) {
	var notifications []string
	svc := services.NewTransferService(
		accountsByID(testAccount(1, "0000000001", 1000)),
		transactionRepoStub{
			performTransferPostingFn: func(_ context.Context, fromID, toID int64, amount decimal.Decimal, description, principal string) (domain.Transaction, error) {
				return domain.Transaction{
					ID:            7,
					FromAccountID: fromID,
					ToAccountID:   toID,
					Amount:        amount,
					Status:        domain.TransactionStatusCompleted,
					Description:   description,
					Principal:     principal,
				}, nil
			},
		},
		authorizerStub{},
		notifierStub{messages: &notifications},
	)

	resp, err := svc.PerformTransfer(context.Background(), "tester", models.TransferRequest{
		FromAccountID: 1,
		ToAccountID:   1,
		Amount:        decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("expected same-account transfer to succeed, got %v", err)
	}
	if resp.Data == nil || resp.Data.TransactionID != 7 {
		t.Fatal("expected a booked transaction for the same-account transfer")
	}
	if len(notifications) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifications))
	}
}
