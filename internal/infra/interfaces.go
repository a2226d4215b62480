package infra

import (
	"context"

	"storefront/internal/domain"
)

// StoreAPI is the read surface of the store. The in-process service and the
// HTTP client return the same shapes and the same page size.
type StoreAPI interface {
	ListCustomers(ctx context.Context) ([]domain.CustomerSummary, error)
	ListProducts(ctx context.Context) ([]domain.ProductSummary, error)
	ListOrders(ctx context.Context) ([]domain.OrderSummary, error)
	GetStats(ctx context.Context) (domain.StoreStats, error)
}

var _ StoreAPI = (*StoreClient)(nil)
