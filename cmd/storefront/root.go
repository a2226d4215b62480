package main

import (
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/infra/database"
	"storefront/internal/infra/rabbitmq"
	"storefront/internal/logger"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Seed and serve a sample online store",
	Long: `storefront fills a relational store with deterministic sample customers,
products, orders and order items, and serves read-only views of it as JSON
and as an HTML overview page.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json, toml or env)")
	rootCmd.AddCommand(seedCmd, serveCmd)
}

func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logger.New(cfg.LogLevel, cfg.LogPretty), nil
}

func openStore(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(database.Options{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DSN(),
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}
	return db, nil
}

// newRedis returns nil when no cache host is configured.
func newRedis(cfg *config.Config) *redis.Client {
	addr := cfg.RedisAddr()
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           0,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

// newPublisher returns nil when messaging is not configured or the broker is
// down. Events are optional.
func newPublisher(cfg *config.Config, log zerolog.Logger) *rabbitmq.Publisher {
	if cfg.RabbitMQURL == "" {
		return nil
	}
	p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, log)
	if err != nil {
		log.Warn().Err(err).Msg("event publishing disabled")
		return nil
	}
	return p
}
