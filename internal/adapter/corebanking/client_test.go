package corebanking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ttnguyen-dev/bankcore/internal/commons"
)

func TestAuthorizeApproved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/core/transactions" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			FromAccount string          `json:"fromAccount"`
			ToAccount   string          `json:"toAccount"`
			Amount      decimal.Decimal `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.FromAccount != "0000000001" || body.ToAccount != "0000000002" {
			t.Fatalf("unexpected accounts %q -> %q", body.FromAccount, body.ToAccount)
		}
		if !body.Amount.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("unexpected amount %s", body.Amount)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	if err := client.Authorize(context.Background(), "0000000001", "0000000002", decimal.NewFromInt(100)); err != nil {
		t.Fatalf("expected approval, got %v", err)
	}
}

func TestAuthorizeRejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	err := client.Authorize(context.Background(), "0000000001", "0000000002", decimal.NewFromInt(100))
	if !errors.Is(err, commons.ErrAuthorizationDenied) {
		t.Fatalf("expected ErrAuthorizationDenied, got %v", err)
	}
}

func TestAuthorizeUnreachableHostFailsClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, time.Second)
	err := client.Authorize(context.Background(), "0000000001", "0000000002", decimal.NewFromInt(100))
	if !errors.Is(err, commons.ErrAuthorizationDenied) {
		t.Fatalf("expected ErrAuthorizationDenied, got %v", err)
	}
}

func TestAuthorizeTimeoutFailsClosed(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	client := NewClient(server.URL, 50*time.Millisecond)
	err := client.Authorize(context.Background(), "0000000001", "0000000002", decimal.NewFromInt(100))
	if !errors.Is(err, commons.ErrAuthorizationDenied) {
		t.Fatalf("expected ErrAuthorizationDenied on timeout, got %v", err)
	}
}
