// Package rappi is the HTTP client for the Rappi marketplace API.
package rappi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/podstore/backoffice/internal/domain/trade"
	"github.com/podstore/backoffice/internal/infrastructure/config"
)

// maxResponseSize bounds the body read from the API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Errors returned by the client
var (
	ErrUnavailable   = errors.New("rappi: api unavailable")
	ErrRequestFailed = errors.New("rappi: request failed")
)

// Client reads orders from the Rappi API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ trade.MarketplaceClient = (*Client)(nil)

// NewClient creates a client from configuration
func NewClient(cfg config.RappiConfig, logger *zap.Logger) *Client {
	timeout := cfg.APITimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		token:   cfg.APIToken,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// FetchOrders implements trade.MarketplaceClient
func (c *Client) FetchOrders(ctx context.Context) ([]trade.MarketplaceOrder, error) {
	body, err := c.get(ctx, "/orders")
	if err != nil {
		return nil, err
	}

	var orders []apiOrder
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '{' {
		var env ordersEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("rappi: failed to decode orders: %w", err)
		}
		orders = env.Orders
	} else if err := json.Unmarshal(trimmed, &orders); err != nil {
		return nil, fmt.Errorf("rappi: failed to decode orders: %w", err)
	}

	result := make([]trade.MarketplaceOrder, 0, len(orders))
	for _, o := range orders {
		result = append(result, o.toDomain())
	}
	c.logger.Debug("Fetched marketplace orders", zap.Int("count", len(result)))
	return result, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("rappi: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("rappi: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}
	return body, nil
}

func (o apiOrder) toDomain() trade.MarketplaceOrder {
	lines := make([]trade.OrderProduct, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, trade.OrderProduct{
			Name:          it.Name,
			Quantity:      it.Quantity,
			Price:         it.Price,
			SyncProductID: it.SyncProductID,
			EAN:           it.EAN,
		})
	}
	return trade.MarketplaceOrder{
		ExternalID: string(o.ID),
		StatusName: o.Status.Name,
		Customer: trade.Customer{
			Name:    o.Customer.Name,
			Email:   o.Customer.Email,
			Phone:   o.Customer.Phone,
			Address: o.Customer.Address,
		},
		Lines:       lines,
		TotalAmount: o.TotalAmount,
		PlacedAt:    o.CreatedAt,
	}
}
