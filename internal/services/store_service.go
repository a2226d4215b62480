package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront/internal/domain"
	"storefront/internal/infra"
	"storefront/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const DefaultCacheTTL = 10 * time.Second

const (
	cacheKeyCustomers = "store:customers"
	cacheKeyProducts  = "store:products"
	cacheKeyOrders    = "store:orders"
	cacheKeyStats     = "store:stats"
)

var cacheKeys = []string{cacheKeyCustomers, cacheKeyProducts, cacheKeyOrders, cacheKeyStats}

// Cache is the subset of *redis.Client the query service needs.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ infra.StoreAPI = (*StoreService)(nil)

// StoreService answers the read API straight from the store. Responses are
// cached for a short TTL when a cache is attached.
type StoreService struct {
	repo     repository.QueryRepository
	cache    Cache
	cacheTTL time.Duration
	logger   zerolog.Logger
}

func NewStoreService(r repository.QueryRepository, logger zerolog.Logger) *StoreService {
	return &StoreService{
		repo:     r,
		cacheTTL: DefaultCacheTTL,
		logger:   logger.With().Str("component", "store").Logger(),
	}
}

func (s *StoreService) SetCache(c Cache, ttl time.Duration) {
	s.cache = c
	if ttl > 0 {
		s.cacheTTL = ttl
	}
}

func (s *StoreService) ListCustomers(ctx context.Context) ([]domain.CustomerSummary, error) {
	return cached(ctx, s, cacheKeyCustomers, func() ([]domain.CustomerSummary, error) {
		return s.repo.ListCustomers(ctx, domain.PageSize)
	})
}

func (s *StoreService) ListProducts(ctx context.Context) ([]domain.ProductSummary, error) {
	return cached(ctx, s, cacheKeyProducts, func() ([]domain.ProductSummary, error) {
		return s.repo.ListActiveProducts(ctx, domain.PageSize)
	})
}

func (s *StoreService) ListOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	return cached(ctx, s, cacheKeyOrders, func() ([]domain.OrderSummary, error) {
		return s.repo.ListOrders(ctx, domain.PageSize)
	})
}

func (s *StoreService) GetStats(ctx context.Context) (domain.StoreStats, error) {
	return cached(ctx, s, cacheKeyStats, func() (domain.StoreStats, error) {
		return s.repo.Stats(ctx)
	})
}

func (s *StoreService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// InvalidateCache drops every cached projection. Called after a reseed.
func (s *StoreService) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, cacheKeys...).Err()
}

// cached is read-through: cache failures only cost a trip to the store.
func cached[T any](ctx context.Context, s *StoreService, key string, load func() (T, error)) (T, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				return v, nil
			}
			s.logger.Warn().Str("key", key).Msg("discarding unreadable cache entry")
		case !errors.Is(err, redis.Nil):
			s.logger.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
	}

	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(v); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Str("key", key).Msg("cache set failed")
			}
		}
	}
	return v, nil
}
