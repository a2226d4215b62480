package mocks

import (
	"context"
	"time"

	"storefront/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

type MockStoreRepository struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

type MockStoreAPI struct {
	mock.Mock
}

type MockCache struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, message any) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func (m *MockStoreRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStoreRepository) HasSchema(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockStoreRepository) CreateSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStoreRepository) DropSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStoreRepository) Counts(ctx context.Context) (domain.TableCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.TableCounts), args.Error(1)
}

func (m *MockStoreRepository) ClearAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStoreRepository) SaveCustomers(ctx context.Context, customers []domain.Customer) error {
	args := m.Called(ctx, customers)
	return args.Error(0)
}

func (m *MockStoreRepository) SaveProducts(ctx context.Context, products []domain.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockStoreRepository) SaveOrders(ctx context.Context, orders []domain.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

func (m *MockStoreRepository) SaveOrderItems(ctx context.Context, items []domain.OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockStoreRepository) ListCustomers(ctx context.Context, limit int) ([]domain.CustomerSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerSummary), args.Error(1)
}

func (m *MockStoreRepository) ListActiveProducts(ctx context.Context, limit int) ([]domain.ProductSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductSummary), args.Error(1)
}

func (m *MockStoreRepository) ListOrders(ctx context.Context, limit int) ([]domain.OrderSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderSummary), args.Error(1)
}

func (m *MockStoreRepository) Stats(ctx context.Context) (domain.StoreStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.StoreStats), args.Error(1)
}

func (m *MockStoreAPI) ListCustomers(ctx context.Context) ([]domain.CustomerSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerSummary), args.Error(1)
}

func (m *MockStoreAPI) ListProducts(ctx context.Context) ([]domain.ProductSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductSummary), args.Error(1)
}

func (m *MockStoreAPI) ListOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderSummary), args.Error(1)
}

func (m *MockStoreAPI) GetStats(ctx context.Context) (domain.StoreStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.StoreStats), args.Error(1)
}

func (m *MockCache) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

func (m *MockCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*redis.IntCmd)
}
