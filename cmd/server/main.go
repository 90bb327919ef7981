package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ethoscore/internal/cache"
	"ethoscore/internal/config"
	"ethoscore/internal/repository"
	"ethoscore/internal/service"
	"ethoscore/internal/transport/rest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx := context.Background()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		slog.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		slog.Error("failed to ping mongodb", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to mongodb", "database", cfg.MongoDatabase)

	db := mongoClient.Database(cfg.MongoDatabase)

	// Tolerate redis:// URIs in the address field.
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("failed to ping redis", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to redis", "addr", redisAddr)

	// Repositories
	questionRepo := repository.NewQuestionRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	// Caches
	catalogCache := cache.NewCatalogCache(rdb, cfg.CatalogCacheTTL())
	recomputeGuard := cache.NewRecomputeGuard(rdb, cfg.RecomputeGuardTTL())

	// Services
	catalogSvc := service.NewCatalogService(questionRepo, catalogCache)
	scoreSvc := service.NewScoreService(responseRepo, scoreRepo, catalogSvc)
	responseSvc := service.NewResponseService(responseRepo, questionRepo)
	validationSvc := service.NewValidationService(assignmentRepo, responseRepo, scoreRepo, catalogSvc, cfg.MinAssignments)
	recomputeSvc := service.NewRecomputeService(responseRepo, scoreRepo, scoreSvc, validationSvc, recomputeGuard)

	router := rest.NewRouter(&rest.Container{
		CatalogService:    catalogSvc,
		ScoreService:      scoreSvc,
		ResponseService:   responseSvc,
		ValidationService: validationSvc,
		RecomputeService:  recomputeSvc,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}
