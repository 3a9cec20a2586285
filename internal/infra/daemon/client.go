package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"taker_go/internal/domain"
	"taker_go/internal/infra"

	"github.com/shopspring/decimal"
)

// Client is the REST client for the taker daemon (Boundary Layer).
// Timeouts and retries live here; the form layer above never retries.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new daemon API client.
func NewClient(cfg *infra.Config) *Client {
	return &Client{
		baseURL:   cfg.Daemon.RestURL,
		authToken: cfg.Daemon.AuthToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		logger: slog.Default().With("module", "daemon_client"),
	}
}

// Submit sends an order to the daemon. Transport failures are retried with
// exponential backoff; the client order id makes the request idempotent on
// the daemon side. A rejection is final and never retried.
func (c *Client) Submit(ctx context.Context, req *domain.OrderRequest) error {
	started := time.Now()

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			delay := baseDelay << uint(i-1)
			c.logger.Info("Retrying order submission",
				slog.Int("attempt", i),
				slog.Duration("delay", delay))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := c.doSubmit(ctx, req)
		if err == nil {
			infra.GlobalMetrics.RecordSubmission(time.Since(started).Nanoseconds())
			return nil
		}
		if !domain.IsRetriable(err) {
			infra.GlobalMetrics.RecordRejection()
			return err
		}
		lastErr = err
		c.logger.Warn("Order submission attempt failed",
			slog.Int("attempt", i+1),
			slog.Any("error", err))
	}

	infra.GlobalMetrics.RecordError()
	return lastErr
}

func (c *Client) doSubmit(ctx context.Context, order *domain.OrderRequest) error {
	body, err := json.Marshal(order)
	if err != nil {
		return domain.NewFatalNetworkError("submit", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/order", bytes.NewReader(body))
	if err != nil {
		return domain.NewFatalNetworkError("submit", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.NewNetworkError("submit", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Accepted; fall through to decode.
	case resp.StatusCode >= 500:
		// Daemon-side trouble is worth another attempt.
		return domain.NewNetworkError("submit", fmt.Errorf("status=%d body=%s", resp.StatusCode, respBody))
	default:
		return fmt.Errorf("%w: status=%d body=%s", domain.ErrDaemonRejected, resp.StatusCode, respBody)
	}

	var apiResp orderResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return domain.NewFatalNetworkError("submit", fmt.Errorf("failed to parse response: %w", err))
	}
	if apiResp.Status == "rejected" {
		return fmt.Errorf("%w: %s", domain.ErrDaemonRejected, apiResp.Reason)
	}

	c.logger.Info("Order accepted by daemon",
		slog.String("client_order_id", order.ClientOrderID),
		slog.String("daemon_order_id", apiResp.OrderID))
	return nil
}

// GetWalletBalance fetches the current wallet balance from the daemon.
func (c *Client) GetWalletBalance(ctx context.Context) (decimal.Decimal, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/wallet", nil)
	if err != nil {
		return decimal.Zero, domain.NewFatalNetworkError("wallet", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return decimal.Zero, domain.NewNetworkError("wallet", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, domain.NewNetworkError("wallet", fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	var wallet walletResponse
	if err := json.NewDecoder(resp.Body).Decode(&wallet); err != nil {
		return decimal.Zero, domain.NewFatalNetworkError("wallet", err)
	}
	return wallet.Balance, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}
