package transaction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"carmarket/internal/listing"
)

// Client calls the transaction service over HTTP. It satisfies the listing
// workflow's TransactionCreator port, so a listing server can hand sold
// listings off to a remote transaction server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the transaction service at baseURL. The
// timeout bounds every call; zero means the caller's context is the only
// bound.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateTransaction posts a new transaction and returns its ID. Transport
// errors, timeouts, and non-2xx responses all come back as plain errors; the
// caller does not distinguish them.
func (c *Client) CreateTransaction(ctx context.Context, req listing.TransactionRequest) (int64, error) {
	t := Transaction{
		BuyerID:         req.BuyerID,
		CarID:           req.CarID,
		Kind:            Kind(req.Kind),
		TotalAmount:     req.TotalAmount,
		Status:          StatusPending,
		TransactionDate: req.TransactionDate,
	}

	body, err := json.Marshal(t)
	if err != nil {
		return 0, fmt.Errorf("marshal transaction: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", bytes.NewBuffer(body))
	if err != nil {
		return 0, fmt.Errorf("build transaction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("call transaction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("transaction service returned status %d", resp.StatusCode)
	}

	var created Transaction
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&created); err != nil {
		return 0, fmt.Errorf("decode transaction response: %w", err)
	}
	return created.ID, nil
}
