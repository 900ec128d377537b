package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout     = 5 * time.Second
	defaultConnectTry  = 5
	uniqueViolation    = "23505"
	defaultMaxOpen     = 10
	defaultMaxIdle     = 5
	defaultMaxLifetime = time.Hour
)

// Config captures the settings for the shared connection pool.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Timeout         time.Duration
	// ConnectAttempts bounds the retry loop run at startup while the
	// database container is still coming up.
	ConnectAttempts int
}

// Connect opens the pool, retrying with a linear backoff, and verifies it
// with a ping. The returned pool is shared by every repository.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*sqlx.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	attempts := cfg.ConnectAttempts
	if attempts <= 0 {
		attempts = defaultConnectTry
	}

	var (
		db  *sqlx.DB
		err error
	)
	for i := 1; i <= attempts; i++ {
		connectCtx, cancel := context.WithTimeout(ctx, timeout)
		db, err = sqlx.ConnectContext(connectCtx, "postgres", cfg.DSN)
		cancel()
		if err == nil {
			break
		}
		if i == attempts {
			return nil, fmt.Errorf("postgres connect after %d attempts: %w", attempts, err)
		}
		log.Warn().Err(err).Int("attempt", i).Int("max_attempts", attempts).Msg("postgres not ready, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(i) * time.Second):
		}
	}

	db.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, defaultMaxOpen))
	db.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, defaultMaxIdle))
	lifetime := cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = defaultMaxLifetime
	}
	db.SetConnMaxLifetime(lifetime)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return db, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
