package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
)

func seedAccounts(t *testing.T, store *Store, balances ...int64) []int64 {
	t.Helper()

	repo := NewAccountRepository(store)
	ids := make([]int64, 0, len(balances))
	for i, balance := range balances {
		account, err := repo.Create(context.Background(), domain.Account{
			CustomerID:    int64(i + 1),
			AccountNumber: string(rune('A'+i)) + "000000001",
			AccountType:   domain.AccountTypeSavings,
			Balance:       decimal.NewFromInt(balance),
		})
		if err != nil {
			t.Fatalf("seed account %d: %v", i, err)
		}
		ids = append(ids, account.ID)
	}
	return ids
}

func TestPerformTransferPostingRejectsOverdraw(t *testing.T) {
	store := NewStore()
	ids := seedAccounts(t, store, 100, 0)
	repo := NewTransactionRepository(store)

	_, err := repo.PerformTransferPosting(context.Background(), ids[0], ids[1], decimal.NewFromInt(101), "too much", "tester")
	if !errors.Is(err, commons.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	account, err := NewAccountRepository(store).GetByID(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("load account: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected untouched balance 100, got %s", account.Balance)
	}
}

func TestPerformTransferPostingUnknownAccount(t *testing.T) {
	store := NewStore()
	ids := seedAccounts(t, store, 100)
	repo := NewTransactionRepository(store)

	_, err := repo.PerformTransferPosting(context.Background(), ids[0], 999, decimal.NewFromInt(10), "", "tester")
	if !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestPerformTransferPostingConcurrentTransfersNeverOverdraw(t *testing.T) {
	store := NewStore()
	ids := seedAccounts(t, store, 1000, 0)
	repo := NewTransactionRepository(store)

	const workers = 30
	amount := decimal.NewFromInt(50)

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.PerformTransferPosting(context.Background(), ids[0], ids[1], amount, "concurrent", "tester")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	completed, short := 0, 0
	for err := range results {
		switch {
		case err == nil:
			completed++
		case errors.Is(err, commons.ErrInsufficientBalance):
			short++
		default:
			t.Fatalf("unexpected posting error: %v", err)
		}
	}

	// 1000 / 50 leaves room for exactly 20 postings.
	if completed != 20 || short != 10 {
		t.Fatalf("expected 20 completed and 10 rejected postings, got %d and %d", completed, short)
	}

	accounts := NewAccountRepository(store)
	from, err := accounts.GetByID(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("load source: %v", err)
	}
	to, err := accounts.GetByID(context.Background(), ids[1])
	if err != nil {
		t.Fatalf("load destination: %v", err)
	}
	if !from.Balance.Equal(decimal.Zero) {
		t.Fatalf("expected drained source, got %s", from.Balance)
	}
	if !to.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected destination 1000, got %s", to.Balance)
	}

	records, err := repo.GetByAccountID(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("load records: %v", err)
	}
	if len(records) != 20 {
		t.Fatalf("expected 20 ledger records, got %d", len(records))
	}
	for _, record := range records {
		if record.Status != domain.TransactionStatusCompleted {
			t.Fatalf("expected only COMPLETED records, got %s", record.Status)
		}
	}
}

func TestPerformTransferPostingSameAccount(t *testing.T) {
	store := NewStore()
	ids := seedAccounts(t, store, 300)
	repo := NewTransactionRepository(store)

	transaction, err := repo.PerformTransferPosting(context.Background(), ids[0], ids[0], decimal.NewFromInt(100), "self", "tester")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if transaction.FromAccountID != transaction.ToAccountID {
		t.Fatal("expected both legs on the same account")
	}

	account, err := NewAccountRepository(store).GetByID(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("load account: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected unchanged balance 300, got %s", account.Balance)
	}
}
