package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config provides environment-based configuration for the Postgres
// connection pool.
type Config struct {
	ConnectionURL string        `env:"DATABASE_URL,required"`
	RetryAttempts int           `env:"DATABASE_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"DATABASE_RETRY_INTERVAL" envDefault:"5s"`
}

var (
	// ErrEmptyConnectionURL is returned when connecting without a database URL.
	ErrEmptyConnectionURL = errors.New("empty database connection URL")
	// ErrNotReady is returned when the database does not answer pings within
	// the configured retry budget.
	ErrNotReady = errors.New("database did not become ready within the given time period")
)

// Connect creates a connection pool and verifies connectivity with retries,
// covering transient startup races between the application and the database.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}

	pool, err := pgxpool.New(ctx, cfg.ConnectionURL)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				pool.Close()
				return nil, ctx.Err()
			case <-time.After(cfg.RetryInterval):
			}
		}
		if lastErr = pool.Ping(ctx); lastErr == nil {
			return pool, nil
		}
	}

	pool.Close()
	return nil, errors.Join(ErrNotReady, lastErr)
}

// Healthcheck returns a probe suitable for readiness endpoints.
func Healthcheck(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		return pool.Ping(ctx)
	}
}
