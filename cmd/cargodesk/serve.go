package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/astana-logistics/cargo-desk/internal/api"
	"github.com/astana-logistics/cargo-desk/internal/api/handler"
	"github.com/astana-logistics/cargo-desk/internal/api/metrics"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
	"github.com/astana-logistics/cargo-desk/internal/core/service"
	"github.com/astana-logistics/cargo-desk/internal/infrastructure/db/mongo"
	"github.com/astana-logistics/cargo-desk/internal/infrastructure/db/postgres"
	redisdb "github.com/astana-logistics/cargo-desk/internal/infrastructure/db/redis"
	"github.com/astana-logistics/cargo-desk/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var migrateOnStart bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, migrateOnStart)
		},
	}
	cmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func serve(ctx context.Context, migrateOnStart bool) error {
	cfg, log, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	if migrateOnStart {
		if err := postgres.Migrate(cfg.Postgres.DSN, postgres.Up); err != nil {
			return err
		}
	}

	// --- Infrastructure ---
	db, err := postgres.Connect(ctx, postgresConfig(cfg), log)
	if err != nil {
		return err
	}
	defer db.Close()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	checks := map[string]handler.Check{
		"postgres": db.PingContext,
		"redis":    redisdb.Ping(rdb),
	}

	var store limiter.Store
	store, err = redisdb.NewLimiterStore(rdb)
	if err != nil {
		log.Warn().Err(err).Msg("failed to create Redis store for rate limiting, falling back to memory")
		store = memory.NewStore()
	}

	var activityRepo ports.ActivityRepository = postgres.NewActivityRepository(db)
	if cfg.Activity.Backend == "mongo" {
		ms, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = ms.Close(context.Background()) }()

		activityRepo = mongo.NewActivityRepository(ms.Database())
		checks["mongodb"] = ms.Ping
	}

	// --- Services ---
	users := postgres.NewUserRepository(db)
	activity := service.NewActivityService(activityRepo, metrics.ActivityWriteFailuresTotal, log)
	sessions := service.NewSessionManager(redisdb.NewSessionStore(rdb), cfg.JWTSecret, cfg.Session.TTL)
	authService := service.NewAuthService(users, sessions, activity, cfg.BcryptCost, log)
	userService := service.NewUserService(users, activity, log)
	shipmentService := service.NewShipmentService(postgres.NewShipmentRequestRepository(db), activity, log)

	e, err := api.NewRouter(api.Deps{
		Log:            log,
		Auth:           authService,
		Gate:           service.NewGate(sessions, users),
		Users:          userService,
		Requests:       shipmentService,
		Activity:       activity,
		TrustedProxies: cfg.TrustedProxies,
		CookieName:     cfg.Session.CookieName,
		CookieSecure:   cfg.IsProduction(),
		SessionTTL:     cfg.Session.TTL,
		LimiterStore:   store,
		LoginRate:      cfg.RateLimit.Login,
		PublicRate:     cfg.RateLimit.Public,
		Checks:         checks,
	})
	if err != nil {
		return err
	}

	// --- Run until signalled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("server exited properly")
	return nil
}

func postgresConfig(cfg *config.Config) postgres.Config {
	return postgres.Config{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
}
