package corebanking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/logger"
)

// Client asks the core banking system to approve a proposed transfer. The
// call fails closed: a rejection, an unreachable host and an expired timeout
// all surface as commons.ErrAuthorizationDenied.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type authorizeRequest struct {
	FromAccount string          `json:"fromAccount"`
	ToAccount   string          `json:"toAccount"`
	Amount      decimal.Decimal `json:"amount"`
}

func (c *Client) Authorize(ctx context.Context, fromAccountNumber, toAccountNumber string, amount decimal.Decimal) error {
	payload, err := json.Marshal(authorizeRequest{
		FromAccount: fromAccountNumber,
		ToAccount:   toAccountNumber,
		Amount:      amount,
	})
	if err != nil {
		return fmt.Errorf("marshal authorize request: %w", err)
	}

	url := c.baseURL + "/core/transactions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build authorize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("core banking authorizer unreachable", err, logger.Fields{
			"fromAccount": fromAccountNumber,
			"toAccount":   toAccountNumber,
		})
		return fmt.Errorf("%w: authorizer unreachable", commons.ErrAuthorizationDenied)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Info("core banking authorizer rejected transfer", logger.Fields{
			"fromAccount": fromAccountNumber,
			"toAccount":   toAccountNumber,
			"status":      resp.StatusCode,
		})
		return fmt.Errorf("%w: authorizer returned status %d", commons.ErrAuthorizationDenied, resp.StatusCode)
	}

	return nil
}
