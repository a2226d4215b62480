package services

import (
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/repository/sqlstore"
	"storefront/internal/seeddata"
	"storefront/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var smallVolumes = seeddata.Volumes{Customers: 3, Products: 2, Orders: 4, OrderItems: 6}

var fullCounts = domain.TableCounts{Customers: 100, Products: 50, Orders: 200, OrderItems: 500}

func newTestSeedService(repo repository.SeedRepository, volumes seeddata.Volumes) *SeedService {
	return NewSeedService(repo, seeddata.NewGenerator(time.Time{}), volumes, zerolog.Nop())
}

// newSQLiteServices wires both services to one fresh in-memory store.
func newSQLiteServices(t *testing.T) (*gorm.DB, *SeedService, *StoreService) {
	t.Helper()
	db := testutil.NewSQLite(t)
	repo := sqlstore.NewStoreRepository(db, zerolog.Nop())
	return db, newTestSeedService(repo, seeddata.DefaultVolumes), NewStoreService(repo, zerolog.Nop())
}

func expectedRevenue(v seeddata.Volumes) decimal.Decimal {
	data := seeddata.NewGenerator(time.Time{}).Generate(v)
	total := decimal.Zero
	for _, o := range data.Orders {
		total = total.Add(o.TotalAmount)
	}
	return total.Round(2)
}

func CreateMockCustomer(id uint64, first, last string) domain.CustomerSummary {
	return domain.CustomerSummary{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Email:     first + "." + last + "@example.com",
		City:      "Springfield",
	}
}
