package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baechuer/flatfile-auth/internal/application/auth"
	"github.com/baechuer/flatfile-auth/internal/audit"
	"github.com/baechuer/flatfile-auth/internal/config"
	"github.com/baechuer/flatfile-auth/internal/domain"
	"github.com/baechuer/flatfile-auth/internal/infrastructure/filestore"
	"github.com/baechuer/flatfile-auth/internal/infrastructure/memory"
	"github.com/baechuer/flatfile-auth/internal/infrastructure/postgres"
	"github.com/baechuer/flatfile-auth/internal/infrastructure/redis"
	"github.com/baechuer/flatfile-auth/internal/logger"
	http_handlers "github.com/baechuer/flatfile-auth/internal/transport/http/handlers"
	"github.com/baechuer/flatfile-auth/internal/transport/http/middleware"
	"github.com/baechuer/flatfile-auth/internal/transport/http/response"
	"github.com/baechuer/flatfile-auth/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*App, error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*App, error) {
	return newServer(deps)
}

// App is the configured HTTP server plus the user store behind it.
type App struct {
	HTTP *http.Server

	StoreBackend string
	// StoreLocation is the users file path, redis key or postgres row name.
	// Empty for the memory backend.
	StoreLocation string

	closers []func() error
}

// Close releases the store's connections. Every closer runs; their
// errors are joined.
func (a *App) Close() error {
	return runCleanup(a.closers)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	// only called for STORE_BACKEND=postgres
	NewDB func(dsn string) (*sql.DB, error)

	// only called for STORE_BACKEND=redis
	NewRedis func(addr, password string, db int) *redis.Client

	NewRouter func(router.Deps) (http.Handler, error)
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*App, error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, err
	}

	// 1) user store
	store, location, closers, err := newUserStore(cfg, deps)
	if err != nil {
		return nil, err
	}

	// seed (dev only)
	if cfg.SeedUsers {
		if cfg.Env == "dev" {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := memory.SeedUsers(ctx, store)
			cancel()
			if err != nil {
				logger.Logger.Warn().Err(err).Msg("seeding dev users failed")
			}
		} else {
			logger.Logger.Warn().Str("env", cfg.Env).Msg("SEED_USERS ignored outside dev")
		}
	}

	// 2) service
	authSvc := auth.NewService(store).WithAudit(audit.New(logger.Logger).Record)

	// 3) handlers + middleware
	authH := http_handlers.NewAuthHandler(authSvc)
	healthH := http_handlers.NewHealthHandler(authSvc)

	modMW := middleware.RequireRole(authSvc, domain.RoleModerator, response.WriteError)
	adminMW := middleware.RequireRole(authSvc, domain.RoleAdmin, response.WriteError)

	var metricsH http.Handler
	if cfg.MetricsEnabled {
		metricsH = promhttp.Handler()
	}

	// 4) router
	mux, err := deps.NewRouter(router.Deps{
		Health:         healthH,
		Auth:           authH,
		ModMW:          modMW,
		AdminMW:        adminMW,
		Metrics:        metricsH,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		HSTS:           cfg.Env == "prod",
	})
	if err != nil {
		_ = runCleanup(closers)
		return nil, err
	}

	// 5) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	logger.Logger.Info().
		Str("env", cfg.Env).
		Str("store_backend", cfg.StoreBackend).
		Msg("server configured")

	return &App{
		HTTP:          srv,
		StoreBackend:  cfg.StoreBackend,
		StoreLocation: location,
		closers:       closers,
	}, nil
}

// newUserStore opens the configured backend. Unlike a cache, the store is
// the only copy of the data, so an unreachable backend fails startup.
func newUserStore(cfg *config.Config, deps Deps) (auth.UserStore, string, []func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendFile:
		s := filestore.NewUserStore(cfg.UsersFile)
		return s, s.Path(), nil, nil

	case config.BackendMemory:
		logger.Logger.Warn().Msg("memory user store: data is lost on restart")
		return memory.NewUserStore(), "", nil, nil

	case config.BackendRedis:
		if deps.NewRedis == nil {
			return nil, "", nil, fmt.Errorf("bootstrap: redis backend selected but NewRedis is nil")
		}
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := c.Ping(context.Background()); err != nil {
			_ = c.Close()
			return nil, "", nil, fmt.Errorf("bootstrap: redis unavailable: %w", err)
		}
		logger.Logger.Info().Msg("redis connected")
		s := redis.NewUserStore(c, cfg.RedisKey)
		closeRedis := func() error {
			if err := c.Close(); err != nil {
				return fmt.Errorf("close redis: %w", err)
			}
			return nil
		}
		return s, s.Key(), []func() error{closeRedis}, nil

	case config.BackendPostgres:
		if deps.NewDB == nil {
			return nil, "", nil, fmt.Errorf("bootstrap: postgres backend selected but NewDB is nil")
		}
		db, err := deps.NewDB(cfg.DBAddr)
		if err != nil {
			return nil, "", nil, err
		}
		closers := []func() error{func() error {
			if err := db.Close(); err != nil {
				return fmt.Errorf("close postgres: %w", err)
			}
			return nil
		}}

		s := postgres.NewUserStore(db, cfg.StoreName)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.EnsureSchema(ctx); err != nil {
			_ = runCleanup(closers)
			return nil, "", nil, err
		}
		return s, s.Name(), closers, nil

	default:
		return nil, "", nil, fmt.Errorf("bootstrap: unknown store backend %q", cfg.StoreBackend)
	}
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		NewRedis:   redis.New,
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

// runCleanup runs fns in reverse order.
func runCleanup(fns []func() error) error {
	var errs []error
	for i := len(fns) - 1; i >= 0; i-- {
		if err := fns[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
