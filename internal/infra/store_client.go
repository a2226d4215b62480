package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain"
)

type StoreClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewStoreClient(baseURL string, timeout time.Duration) *StoreClient {
	return &StoreClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *StoreClient) ListCustomers(ctx context.Context) ([]domain.CustomerSummary, error) {
	return getList[domain.CustomerSummary](ctx, c, "/api/customers")
}

func (c *StoreClient) ListProducts(ctx context.Context) ([]domain.ProductSummary, error) {
	return getList[domain.ProductSummary](ctx, c, "/api/products")
}

func (c *StoreClient) ListOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	return getList[domain.OrderSummary](ctx, c, "/api/orders")
}

func (c *StoreClient) GetStats(ctx context.Context) (domain.StoreStats, error) {
	var out domain.StoreStats
	if err := c.getJSON(ctx, "/api/stats", &out); err != nil {
		return domain.StoreStats{}, err
	}
	return out, nil
}

// Ping checks the remote host's health endpoint.
func (c *StoreClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("store api health returned status %d", resp.StatusCode)
	}
	return nil
}

// getList returns an empty, non-nil slice for a null body.
func getList[T any](ctx context.Context, c *StoreClient, path string) ([]T, error) {
	var out []T
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (c *StoreClient) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("store api %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
