package repository

import (
	"context"

	"storefront/internal/domain"
)

// SeedRepository is the write side used by the seeding job.
type SeedRepository interface {
	Ping(ctx context.Context) error
	HasSchema(ctx context.Context) (bool, error)
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error
	Counts(ctx context.Context) (domain.TableCounts, error)
	// ClearAll removes every row child tables first, committing each table.
	ClearAll(ctx context.Context) error
	SaveCustomers(ctx context.Context, customers []domain.Customer) error
	SaveProducts(ctx context.Context, products []domain.Product) error
	SaveOrders(ctx context.Context, orders []domain.Order) error
	SaveOrderItems(ctx context.Context, items []domain.OrderItem) error
}

// QueryRepository is the read side behind the store API.
type QueryRepository interface {
	Ping(ctx context.Context) error
	ListCustomers(ctx context.Context, limit int) ([]domain.CustomerSummary, error)
	ListActiveProducts(ctx context.Context, limit int) ([]domain.ProductSummary, error)
	ListOrders(ctx context.Context, limit int) ([]domain.OrderSummary, error)
	Stats(ctx context.Context) (domain.StoreStats, error)
}

type StoreRepository interface {
	SeedRepository
	QueryRepository
}
