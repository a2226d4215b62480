package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv    string `mapstructure:"APP_ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`
	Port      string `mapstructure:"PORT"`

	// DBDriver is one of mysql, postgres or sqlite. DatabaseURL wins over the
	// MYSQL_* parts when both are set.
	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	MySQLUser   string `mapstructure:"MYSQL_USER"`
	MySQLPass   string `mapstructure:"MYSQL_PASSWORD"`
	MySQLHost   string `mapstructure:"MYSQL_HOST"`
	MySQLPort   string `mapstructure:"MYSQL_PORT"`
	MySQLDB     string `mapstructure:"MYSQL_DATABASE"`

	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	DBConnMaxIdleTime time.Duration `mapstructure:"DB_CONN_MAX_IDLE_TIME"`

	RedisHost string        `mapstructure:"REDIS_HOST"`
	RedisPort string        `mapstructure:"REDIS_PORT"`
	CacheTTL  time.Duration `mapstructure:"CACHE_TTL"`

	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`
	RabbitMQExchange string `mapstructure:"RABBITMQ_EXCHANGE"`

	// StoreAPIURL points the web front-end at a remote API. Empty means the
	// front-end reads the store in-process.
	StoreAPIURL     string        `mapstructure:"STORE_API_URL"`
	StoreAPITimeout time.Duration `mapstructure:"STORE_API_TIMEOUT"`

	SeedCustomers  int    `mapstructure:"SEED_CUSTOMERS"`
	SeedProducts   int    `mapstructure:"SEED_PRODUCTS"`
	SeedOrders     int    `mapstructure:"SEED_ORDERS"`
	SeedOrderItems int    `mapstructure:"SEED_ORDER_ITEMS"`
	SeedAnchor     string `mapstructure:"SEED_ANCHOR"`
}

var defaults = map[string]any{
	"APP_ENV":               "development",
	"LOG_LEVEL":             "info",
	"LOG_PRETTY":            false,
	"PORT":                  "8080",
	"DB_DRIVER":             "mysql",
	"DATABASE_URL":          "",
	"MYSQL_USER":            "root",
	"MYSQL_PASSWORD":        "",
	"MYSQL_HOST":            "localhost",
	"MYSQL_PORT":            "3306",
	"MYSQL_DATABASE":        "store",
	"DB_MAX_OPEN_CONNS":     25,
	"DB_MAX_IDLE_CONNS":     10,
	"DB_CONN_MAX_LIFETIME":  5 * time.Minute,
	"DB_CONN_MAX_IDLE_TIME": 1 * time.Minute,
	"REDIS_HOST":            "",
	"REDIS_PORT":            "6379",
	"CACHE_TTL":             10 * time.Second,
	"RABBITMQ_URL":          "",
	"RABBITMQ_EXCHANGE":     "store.exchange",
	"STORE_API_URL":         "",
	"STORE_API_TIMEOUT":     2 * time.Second,
	"SEED_CUSTOMERS":        100,
	"SEED_PRODUCTS":         50,
	"SEED_ORDERS":           200,
	"SEED_ORDER_ITEMS":      500,
	"SEED_ANCHOR":           "2025-01-01T00:00:00Z",
}

// Load reads defaults, then the optional config file, then a .env file in the
// working directory, then the process environment. Later sources win.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cf.validate(); err != nil {
		return nil, err
	}
	return cf, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDriver != "mysql" && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for driver %s", c.DBDriver)
	}
	if c.SeedCustomers < 0 || c.SeedProducts < 0 || c.SeedOrders < 0 || c.SeedOrderItems < 0 {
		return errors.New("seed volumes must not be negative")
	}
	if _, err := c.Anchor(); err != nil {
		return err
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.MySQLUser, c.MySQLPass, c.MySQLHost, c.MySQLPort, c.MySQLDB)
}

func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

func (c *Config) Anchor() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.SeedAnchor)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid SEED_ANCHOR %q: %w", c.SeedAnchor, err)
	}
	return t, nil
}
