package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	rabbit "storefront/internal/infra/rabbitmq"
	"storefront/internal/repository"
	"storefront/internal/seeddata"

	"github.com/rs/zerolog"
)

const publishTimeout = 5 * time.Second

// SeedService fills the store with generated data. It assumes it is the only
// writer while a run is in progress.
type SeedService struct {
	repo      repository.SeedRepository
	gen       *seeddata.Generator
	volumes   seeddata.Volumes
	publisher rabbit.PublisherInterface
	logger    zerolog.Logger
}

func NewSeedService(r repository.SeedRepository, gen *seeddata.Generator, volumes seeddata.Volumes, logger zerolog.Logger) *SeedService {
	if gen == nil {
		gen = seeddata.NewGenerator(time.Time{})
	}
	return &SeedService{
		repo:    r,
		gen:     gen,
		volumes: volumes,
		logger:  logger.With().Str("component", "seed").Logger(),
	}
}

func (s *SeedService) SetPublisher(p rabbit.PublisherInterface) {
	s.publisher = p
}

// Reseed drops and recreates the schema, then loads a fresh dataset.
func (s *SeedService) Reseed(ctx context.Context) (ok bool, err error) {
	defer s.guard(&ok, &err)

	s.logger.Info().Msg("forced reseed: recreating schema")
	if err := s.repo.DropSchema(ctx); err != nil {
		return false, stageErr("drop schema", err)
	}
	if err := s.repo.CreateSchema(ctx); err != nil {
		return false, stageErr("create schema", err)
	}

	if err := s.load(ctx, true); err != nil {
		return false, err
	}
	return true, nil
}

// PopulateIfEmpty is a no-op when every table already holds rows. Otherwise it
// makes sure the schema exists and loads a fresh dataset.
func (s *SeedService) PopulateIfEmpty(ctx context.Context) (ok bool, err error) {
	defer s.guard(&ok, &err)

	if s.TablesArePopulated(ctx) {
		s.logger.Info().Msg("store already populated, skipping")
		return true, nil
	}

	hasSchema, err := s.CanConnect(ctx)
	if err != nil {
		return false, err
	}
	if !hasSchema {
		s.logger.Info().Msg("schema missing, creating")
		if err := s.repo.CreateSchema(ctx); err != nil {
			return false, stageErr("create schema", err)
		}
	}

	if err := s.load(ctx, false); err != nil {
		return false, err
	}
	return true, nil
}

// TablesArePopulated never fails: any error reads as "not populated".
func (s *SeedService) TablesArePopulated(ctx context.Context) bool {
	if err := s.repo.Ping(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("populated check: store unreachable")
		return false
	}
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Msg("populated check: count failed")
		return false
	}
	return counts.AllPopulated()
}

// CanConnect reports whether the schema exists. A false result with a nil error
// means the store answered but has no tables yet.
func (s *SeedService) CanConnect(ctx context.Context) (bool, error) {
	if err := s.repo.Ping(ctx); err != nil {
		if errors.Is(err, domain.ErrStoreUnreachable) {
			return false, err
		}
		return false, fmt.Errorf("%w: %w", domain.ErrStoreUnreachable, err)
	}
	ok, err := s.repo.HasSchema(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrStoreUnreachable, err)
	}
	return ok, nil
}

func (s *SeedService) load(ctx context.Context, forced bool) error {
	start := time.Now()
	data := s.gen.Generate(s.volumes)
	if err := data.Validate(); err != nil {
		return stageErr("validate dataset", err)
	}

	if err := s.repo.ClearAll(ctx); err != nil {
		return stageErr("clear store", err)
	}

	steps := []struct {
		stage string
		save  func() error
	}{
		{"load customers", func() error { return s.repo.SaveCustomers(ctx, data.Customers) }},
		{"load products", func() error { return s.repo.SaveProducts(ctx, data.Products) }},
		{"load orders", func() error { return s.repo.SaveOrders(ctx, data.Orders) }},
		{"load order items", func() error { return s.repo.SaveOrderItems(ctx, data.OrderItems) }},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return stageErr(step.stage, err)
		}
		if err := step.save(); err != nil {
			return stageErr(step.stage, err)
		}
	}

	counts, err := s.repo.Counts(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("seeded, but could not read table counts")
		counts = data.Counts()
	}
	s.logger.Info().
		Int64("customers", counts.Customers).
		Int64("products", counts.Products).
		Int64("orders", counts.Orders).
		Int64("order_items", counts.OrderItems).
		Dur("took", time.Since(start)).
		Msg("seeding complete")

	s.publishSeeded(domain.StoreSeededEvent{
		Forced:   forced,
		Counts:   counts,
		SeededAt: time.Now().UTC(),
	})
	return nil
}

func (s *SeedService) publishSeeded(evt domain.StoreSeededEvent) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, domain.EventStoreSeeded, evt); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish store.seeded event")
		return
	}
	s.logger.Debug().Msg("published store.seeded event")
}

// guard turns a panic anywhere in a run into a (false, err) result.
func (s *SeedService) guard(ok *bool, err *error) {
	if r := recover(); r != nil {
		s.logger.Error().Interface("panic", r).Msg("seeding panicked")
		*ok = false
		*err = fmt.Errorf("seeding panicked: %v", r)
	}
	if *err != nil {
		*ok = false
	}
}

func stageErr(stage string, err error) error {
	if (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) && !errors.Is(err, domain.ErrSeedCanceled) {
		return fmt.Errorf("%s: %w: %w", stage, domain.ErrSeedCanceled, err)
	}
	return fmt.Errorf("%s: %w", stage, err)
}
