// @title           Sweet Shop Manager API
// @version         1.0
// @description     Inventory API for a sweet shop: accounts, catalog and stock.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sweetshop/sweet-shop-manager/internal/api"
	"github.com/sweetshop/sweet-shop-manager/internal/api/handler"
	"github.com/sweetshop/sweet-shop-manager/internal/core/ports"
	"github.com/sweetshop/sweet-shop-manager/internal/core/service"
	"github.com/sweetshop/sweet-shop-manager/internal/infrastructure/db/mongo"
	"github.com/sweetshop/sweet-shop-manager/internal/infrastructure/db/redis"
	"github.com/sweetshop/sweet-shop-manager/internal/infrastructure/queue"
	"github.com/sweetshop/sweet-shop-manager/internal/pkg/config"
	"github.com/sweetshop/sweet-shop-manager/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.New(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "sweet-shop-api",
	})
	log := logger.Get()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
	log.Info().Msg("server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- MongoDB (required) ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "sweet-shop-api",
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	userRepo := mongo.NewUserRepository(db)
	sweetRepo := mongo.NewSweetRepository(db)
	movementRepo := mongo.NewMovementRepository(db)
	if err := mongo.EnsureIndexes(ctx, userRepo, sweetRepo, movementRepo); err != nil {
		return err
	}

	// --- Redis (optional: login lockout only) ---
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable; continuing without login lockout")
			rdb = nil
		} else {
			defer rdb.Close()
			log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
		}
	}

	// --- Core services ---
	tokens := service.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTExpire)
	authOpts := []service.AuthOption{}
	if rdb != nil {
		authOpts = append(authOpts, service.WithLockout(
			redis.NewLoginLockout(rdb, cfg.Auth.MaxAttempts, cfg.Auth.LockoutWindow),
		))
	}
	authService := service.NewAuthService(userRepo, tokens, log, authOpts...)
	sweetService := service.NewSweetService(sweetRepo, log)
	movementService := service.NewMovementService(movementRepo, log)

	// Stock history is written off the request path. Workers outlive the
	// signal context so queued movements are flushed during shutdown.
	dispatcher := queue.NewDispatcher(cfg.Movements.Workers, cfg.Movements.Buffer, movementService, log)
	dispatcher.Start(context.WithoutCancel(ctx))

	if err := service.BootstrapAdmin(ctx, userRepo, authService, ports.RegisterInput{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}, log); err != nil {
		return err
	}

	deps := api.Deps{
		Auth:       authService,
		Sweets:     sweetService,
		Movements:  movementService,
		Recorder:   dispatcher,
		Authorizer: service.NewAuthorizer(tokens),
		Mongo:      handler.MongoPinger{DB: db},
		Log:        log,
	}
	if rdb != nil {
		deps.Redis = handler.RedisPinger{Client: rdb}
	}

	e := api.NewRouter(deps, api.Options{
		Prefix:         cfg.APIPrefix,
		AllowOrigins:   cfg.HTTP.AllowOrigins,
		AuthRatePerSec: cfg.Auth.RateLimit,
		AuthRateBurst:  cfg.Auth.RateBurst,
		BodyLimit:      cfg.HTTP.BodyLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("prefix", cfg.APIPrefix).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down http server")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return shutdown(sctx, srv, dispatcher)
	})

	return g.Wait()
}
