package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/infra/database"
	"storefront/internal/repository/sqlstore"
	"storefront/internal/seeddata"
	"storefront/internal/services"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the store with generated data",
	Long: `Populate the store with generated customers, products, orders and order items.

Without --force the run is a no-op when every table already holds rows, and a
missing schema is created. With --force the schema is dropped and recreated
before loading. The process exits non-zero when seeding fails.`,
	RunE: runSeed,
}

func init() {
	f := seedCmd.Flags()
	f.Bool("force", false, "drop and recreate the schema, then reload")
	f.Int("customers", 0, "number of customers (default from SEED_CUSTOMERS)")
	f.Int("products", 0, "number of products (default from SEED_PRODUCTS)")
	f.Int("orders", 0, "number of orders (default from SEED_ORDERS)")
	f.Int("order-items", 0, "number of order items (default from SEED_ORDER_ITEMS)")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	volumes := seeddata.Volumes{
		Customers:  cfg.SeedCustomers,
		Products:   cfg.SeedProducts,
		Orders:     cfg.SeedOrders,
		OrderItems: cfg.SeedOrderItems,
	}
	flags := cmd.Flags()
	overrides := []struct {
		name string
		dst  *int
	}{
		{"customers", &volumes.Customers},
		{"products", &volumes.Products},
		{"orders", &volumes.Orders},
		{"order-items", &volumes.OrderItems},
	}
	for _, o := range overrides {
		if !flags.Changed(o.name) {
			continue
		}
		v, _ := flags.GetInt(o.name)
		if v < 0 {
			return errors.New("--" + o.name + " must not be negative")
		}
		*o.dst = v
	}
	force, _ := flags.GetBool("force")

	anchor, err := cfg.Anchor()
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	repo := sqlstore.NewStoreRepository(db, log)
	seeder := services.NewSeedService(repo, seeddata.NewGenerator(anchor), volumes, log)
	if pub := newPublisher(cfg, log); pub != nil {
		defer pub.Close()
		seeder.SetPublisher(pub)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Bool("force", force).
		Int("customers", volumes.Customers).
		Int("products", volumes.Products).
		Int("orders", volumes.Orders).
		Int("order_items", volumes.OrderItems).
		Time("anchor", anchor).
		Msg("seeding store")

	var ok bool
	if force {
		ok, err = seeder.Reseed(ctx)
	} else {
		ok, err = seeder.PopulateIfEmpty(ctx)
	}
	if !ok {
		log.Error().Err(err).Msg("seeding failed")
		return err
	}

	if rdb := newRedis(cfg); rdb != nil {
		defer rdb.Close()
		store := services.NewStoreService(repo, log)
		store.SetCache(rdb, cfg.CacheTTL)

		cctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := store.InvalidateCache(cctx); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate query cache")
		}
	}
	return nil
}
