package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	DBHost            string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort            string        `envconfig:"DB_PORT" default:"5432"`
	DBUser            string        `envconfig:"DB_USER" default:"postgres"`
	DBPassword        string        `envconfig:"DB_PASSWORD"`
	DBName            string        `envconfig:"DB_NAME" default:"fooddelivery"`
	DBSslMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// OrderPendingTTL of zero disables the expiry job.
	OrderPendingTTL      time.Duration `envconfig:"ORDER_PENDING_TTL" default:"0"`
	OrderExpirySchedule  string        `envconfig:"ORDER_EXPIRY_SCHEDULE" default:"0 * * * * *"`
	OrderExpiryBatchSize int           `envconfig:"ORDER_EXPIRY_BATCH_SIZE" default:"100"`
}

// LoadConfig loads envFile when it exists and decodes the environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if cfg.OrderPendingTTL < 0 {
		return Config{}, fmt.Errorf("ORDER_PENDING_TTL must not be negative, got %s", cfg.OrderPendingTTL)
	}

	return cfg, nil
}

// DSN renders the connection string for the pgx-based gorm driver and lib/pq.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSslMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// ExpiryEnabled reports whether stale pending orders are cancelled automatically.
func (c Config) ExpiryEnabled() bool {
	return c.OrderPendingTTL > 0
}
