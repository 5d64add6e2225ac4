package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/taplejung/menu-system/internal/api"
	"github.com/taplejung/menu-system/internal/api/middleware"
	"github.com/taplejung/menu-system/internal/core/ports"
	"github.com/taplejung/menu-system/internal/core/service"
	"github.com/taplejung/menu-system/internal/infrastructure/audit"
	"github.com/taplejung/menu-system/internal/infrastructure/crypto"
	"github.com/taplejung/menu-system/internal/infrastructure/db/mongo"
	"github.com/taplejung/menu-system/internal/infrastructure/db/redis"
	"github.com/taplejung/menu-system/internal/infrastructure/db/sqlstore"
	"github.com/taplejung/menu-system/internal/infrastructure/job"
	"github.com/taplejung/menu-system/internal/infrastructure/queue"
	"github.com/taplejung/menu-system/internal/infrastructure/session"
	"github.com/taplejung/menu-system/internal/pkg/config"
	"github.com/taplejung/menu-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Restaurant Menu API
// @version         1.0
// @description     Public menu and staff administration for a restaurant.
// @BasePath        /
// @securityDefinitions.apikey SessionCookie
// @in              cookie
// @name            sid
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "menu-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Relational store ---
	db, err := sqlstore.Connect(sqlstore.Config{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN}, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlstore.Close(db); err != nil {
			log.Warn().Err(err).Msg("closing database")
		}
	}()
	if err := sqlstore.Migrate(db); err != nil {
		return err
	}

	// --- Optional Redis ---
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	}

	// --- Optional Mongo audit trail ---
	var (
		mdb      *gomongo.Database
		recorder ports.AuditRecorder = audit.NewLogRecorder(log)
	)
	if cfg.Mongo.URI != "" {
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			if err := mongo.Disconnect(client); err != nil {
				log.Warn().Err(err).Msg("closing mongo")
			}
		}()
		repo := mongo.NewAuditRepository(database)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		mdb = database
		recorder = repo
		log.Info().Str("db", cfg.Mongo.Database).Msg("mongo audit trail enabled")
	}

	// --- Sessions ---
	var (
		sessions  ports.SessionStore
		scheduler *cron.Cron
	)
	switch cfg.Session.Store {
	case "redis":
		sessions = redis.NewSessionStore(rdb, cfg.Session.TTL, cfg.Session.Sliding)
	default:
		mem := session.NewMemoryStore(cfg.Session.TTL, session.WithSliding(cfg.Session.Sliding))
		scheduler, err = job.Schedule(job.NewSessionPurgeJob(mem, log))
		if err != nil {
			return err
		}
		defer scheduler.Stop()
		sessions = mem
	}

	// --- Password hashing ---
	// Stopped by the deferred call, after e.Shutdown has drained requests.
	hasher, stopPool := newHasher(cfg.Hashing.BcryptCost, cfg.Hashing.Workers, log)
	defer stopPool()

	// --- Services ---
	authService := service.NewAuthService(
		sqlstore.NewStaffRepository(db),
		sessions,
		hasher,
		recorder,
		log,
	)
	menuService := service.NewMenuService(sqlstore.NewMenuRepository(db), recorder, log)

	if err := authService.BootstrapDefaultAdmin(ctx, service.BootstrapAdmin{
		Enabled:        cfg.Bootstrap.Enabled,
		Name:           cfg.Bootstrap.Name,
		Email:          cfg.Bootstrap.Email,
		Password:       cfg.Bootstrap.Password,
		RandomPassword: cfg.Bootstrap.RandomPassword,
	}); err != nil {
		return err
	}

	// --- HTTP ---
	cookie := middleware.NewSessionCookie(middleware.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secret: []byte(cfg.Session.Secret),
		TTL:    cfg.Session.TTL,
		Secure: cfg.Session.CookieSecure,
	})
	if cfg.Session.Secret == "" {
		log.Warn().Msg("SESSION_SECRET not set: cookies will not survive a restart")
	}

	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		MenuService: menuService,
		Sessions:    sessions,
		Cookie:      cookie,
		DB:          db,
		Redis:       rdb,
		Mongo:       mdb,
		Log:         log,
	}, api.Options{
		StaticDir:       cfg.StaticDir,
		AllowedOrigins:  cfg.AllowedOrigins,
		SlidingSessions: cfg.Session.Sliding,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newHasher starts the hash worker pool on its own context so that a
// shutdown signal does not fail logins still being served. The returned
// func stops the pool.
func newHasher(cost, workers int, log zerolog.Logger) (*crypto.BcryptHasher, context.CancelFunc) {
	poolCtx, stop := context.WithCancel(context.Background())
	pool := queue.NewPool(workers, log)
	pool.Start(poolCtx)
	return crypto.NewBcryptHasher(cost, pool), stop
}
