// @title                       Task Manager API
// @version                     1.0
// @description                 Per-user task management with JWT authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer <JWT>
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/99minutos/task-manager/docs"
	"github.com/99minutos/task-manager/internal/api"
	"github.com/99minutos/task-manager/internal/api/handler"
	"github.com/99minutos/task-manager/internal/core/service"
	"github.com/99minutos/task-manager/internal/core/validation"
	"github.com/99minutos/task-manager/internal/infrastructure/db/mongo"
	"github.com/99minutos/task-manager/internal/infrastructure/db/redis"
	"github.com/99minutos/task-manager/internal/infrastructure/token"
	"github.com/99minutos/task-manager/internal/pkg/config"
	"github.com/99minutos/task-manager/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.New(logger.Options{Service: "task-manager"})
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "task-manager",
	})

	// --- Persistence ---
	store, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// --- Core ---
	tokens, err := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token issuer")
	}
	revocations := redis.NewRevocationStore(rdb)
	users := mongo.NewUserRepository(store)
	tasks := mongo.NewTaskRepository(store)

	authService := service.NewAuthService(users, tasks, tokens, revocations, log)
	taskService := service.NewTaskService(tasks, log)

	e := api.NewRouter(api.Deps{
		AuthService: authService,
		TaskService: taskService,
		Verifier:    tokens,
		Revocations: revocations,
		Validator:   validation.New(),
		Checkers:    []handler.DependencyChecker{store, revocations},
		Logger:      log,

		AllowOrigins: cfg.CORS.AllowOrigins,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
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
