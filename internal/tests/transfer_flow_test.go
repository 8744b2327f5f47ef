package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/models"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/repository/memory"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
	"github.com/ttnguyen-dev/bankcore/internal/usecase/services"
)

type flowFixture struct {
	service         *services.TransferService
	accountRepo     *memory.AccountRepository
	transactionRepo *memory.TransactionRepository
	notifications   []string
	fromID          int64
	toID            int64
}

func newFlowFixture(t *testing.T, authorize func(ctx context.Context, from, to string, amount decimal.Decimal) error) *flowFixture {
	t.Helper()

	store := memory.NewStore()
	fixture := &flowFixture{
		accountRepo:     memory.NewAccountRepository(store),
		transactionRepo: memory.NewTransactionRepository(store),
	}

	from, err := fixture.accountRepo.Create(context.Background(), domain.Account{
		CustomerID:    1,
		AccountNumber: "1755000001",
		AccountType:   domain.AccountTypeSavings,
		Balance:       decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("seed source account: %v", err)
	}
	to, err := fixture.accountRepo.Create(context.Background(), domain.Account{
		CustomerID:    2,
		AccountNumber: "1755000002",
		AccountType:   domain.AccountTypeChecking,
		Balance:       decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("seed destination account: %v", err)
	}
	fixture.fromID = from.ID
	fixture.toID = to.ID

	fixture.service = services.NewTransferService(
		fixture.accountRepo,
		fixture.transactionRepo,
		authorizerStub{authorizeFn: authorize},
		notifierStub{messages: &fixture.notifications},
	)
	return fixture
}

func (f *flowFixture) balance(t *testing.T, id int64) decimal.Decimal {
	t.Helper()
	account, err := f.accountRepo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("load account %d: %v", id, err)
	}
	return account.Balance
}

func TestTransferFlowMovesFundsAndBooksOneRecord(t *testing.T) {
	fixture := newFlowFixture(t, nil)

	resp, err := fixture.service.PerformTransfer(context.Background(), "BankApp", models.TransferRequest{
		FromAccountID: fixture.fromID,
		ToAccountID:   fixture.toID,
		Amount:        decimal.NewFromInt(100),
		Description:   "rent",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if got := fixture.balance(t, fixture.fromID); !got.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("expected source balance 900, got %s", got)
	}
	if got := fixture.balance(t, fixture.toID); !got.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected destination balance 600, got %s", got)
	}

	records, err := fixture.transactionRepo.GetByAccountID(context.Background(), fixture.fromID)
	if err != nil {
		t.Fatalf("load transactions: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected exactly one ledger record, got %d", len(records))
	}
	if records[0].Status != domain.TransactionStatusCompleted {
		t.Fatalf("expected COMPLETED record, got %s", records[0].Status)
	}
	if records[0].Principal != "BankApp" {
		t.Fatalf("expected principal BankApp on the record, got %q", records[0].Principal)
	}

	if len(fixture.notifications) != 1 {
		t.Fatalf("expected one notification, got %d", len(fixture.notifications))
	}
	if !strings.Contains(fixture.notifications[0], fmt.Sprintf("ID: %d", resp.Data.TransactionID)) {
		t.Fatalf("notification %q does not reference transaction %d", fixture.notifications[0], resp.Data.TransactionID)
	}
}

func TestTransferFlowRepeatedRequestMovesFundsTwice(t *testing.T) {
	fixture := newFlowFixture(t, nil)

	req := models.TransferRequest{
		FromAccountID: fixture.fromID,
		ToAccountID:   fixture.toID,
		Amount:        decimal.NewFromInt(100),
	}
	first, err := fixture.service.PerformTransfer(context.Background(), "BankApp", req)
	if err != nil {
		t.Fatalf("first transfer: %v", err)
	}
	second, err := fixture.service.PerformTransfer(context.Background(), "BankApp", req)
	if err != nil {
		t.Fatalf("second transfer: %v", err)
	}

	if first.Data.TransactionID == second.Data.TransactionID {
		t.Fatal("expected two distinct ledger records for two identical requests")
	}
	if got := fixture.balance(t, fixture.fromID); !got.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("expected source balance 800 after two transfers, got %s", got)
	}
	if got := fixture.balance(t, fixture.toID); !got.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("expected destination balance 700 after two transfers, got %s", got)
	}
}

func TestTransferFlowDenialLeavesStateUntouched(t *testing.T) {
	fixture := newFlowFixture(t, func(context.Context, string, string, decimal.Decimal) error {
		return commons.ErrAuthorizationDenied
	})

	_, err := fixture.service.PerformTransfer(context.Background(), "BankApp", models.TransferRequest{
		FromAccountID: fixture.fromID,
		ToAccountID:   fixture.toID,
		Amount:        decimal.NewFromInt(100),
	})
	if !errors.Is(err, commons.ErrAuthorizationDenied) {
		t.Fatalf("expected ErrAuthorizationDenied, got %v", err)
	}

	if got := fixture.balance(t, fixture.fromID); !got.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected untouched source balance 1000, got %s", got)
	}
	if got := fixture.balance(t, fixture.toID); !got.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected untouched destination balance 500, got %s", got)
	}
	records, err := fixture.transactionRepo.GetByAccountID(context.Background(), fixture.fromID)
	if err != nil {
		t.Fatalf("load transactions: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no ledger records after denial, got %d", len(records))
	}
}

func TestTransferFlowSameAccountKeepsBalance(t *testing.T) {
	fixture := newFlowFixture(t, nil)

	_, err := fixture.service.PerformTransfer(context.Background(), "BankApp", models.TransferRequest{
		FromAccountID: fixture.fromID,
		ToAccountID:   fixture.fromID,
		Amount:        decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("expected same-account transfer to succeed, got %v", err)
	}

	if got := fixture.balance(t, fixture.fromID); !got.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected unchanged balance 1000, got %s", got)
	}
	records, err := fixture.transactionRepo.GetByAccountID(context.Background(), fixture.fromID)
	if err != nil {
		t.Fatalf("load transactions: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one ledger record, got %d", len(records))
	}
	if len(fixture.notifications) != 1 {
		t.Fatalf("expected one notification, got %d", len(fixture.notifications))
	}
}

func TestTransferFlowConservesTotalFunds(t *testing.T) {
	fixture := newFlowFixture(t, nil)

	amounts := []int64{50, 125, 300, 25}
	for _, amount := range amounts {
		if _, err := fixture.service.PerformTransfer(context.Background(), "BankApp", models.TransferRequest{
			FromAccountID: fixture.fromID,
			ToAccountID:   fixture.toID,
			Amount:        decimal.NewFromInt(amount),
		}); err != nil {
			t.Fatalf("transfer of %d: %v", amount, err)
		}
	}

	total := fixture.balance(t, fixture.fromID).Add(fixture.balance(t, fixture.toID))
	if !total.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected total funds 1500 after transfers, got %s", total)
	}
}
