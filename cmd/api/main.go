// @title                      Auth System API
// @version                    1.0
// @description                User signup and login issuing signed bearer tokens.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99minutos/auth-system/internal/api"
	"github.com/99minutos/auth-system/internal/api/handler"
	"github.com/99minutos/auth-system/internal/core/ports"
	"github.com/99minutos/auth-system/internal/core/service"
	mongostore "github.com/99minutos/auth-system/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/auth-system/internal/infrastructure/db/redis"
	"github.com/99minutos/auth-system/internal/infrastructure/security"
	"github.com/99minutos/auth-system/internal/pkg/config"
	"github.com/99minutos/auth-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "auth-system",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Storage ─────────────────────────────────────────────
	store, checks, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open user store")
	}
	defer closeStore()

	// ── Security ────────────────────────────────────────────
	issuer, err := security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build token issuer")
	}

	authService := service.NewAuthService(
		store,
		security.NewBcryptHasher(cfg.Auth.BcryptCost),
		security.NewUUIDGenerator(),
		issuer,
		logger.Component("auth_service"),
	)

	e := api.NewRouter(api.Dependencies{
		AuthService:   authService,
		TokenVerifier: issuer,
		HealthChecks:  checks,
		Logger:        logger.Component("http"),
	})

	// ── Start Server ────────────────────────────────────────
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openStore connects the configured backend and returns the user store along
// with its readiness probe and a close function.
func openStore(ctx context.Context, cfg *config.Config) (ports.UserStore, []handler.DependencyCheck, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		checks := []handler.DependencyCheck{{
			Name: "redis",
			Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		}}
		return redisstore.NewUserStore(client), checks, func() { _ = client.Close() }, nil

	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "auth-system",
		})
		if err != nil {
			return nil, nil, nil, err
		}
		store := mongostore.NewUserStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, nil, err
		}
		checks := []handler.DependencyCheck{{
			Name: "mongodb",
			Ping: func(ctx context.Context) error { return mongostore.Ping(ctx, db) },
		}}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(ctx)
		}
		return store, checks, closeFn, nil
	}
}
