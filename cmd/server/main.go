package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/assets"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/booster"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/config"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/database"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/handlers"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/middleware"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/scryfall"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/tracing"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/tts"
)

const serviceName = "booster-pack-generator"

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ServiceName: serviceName,
		Environment: cfg.AppEnv,
		PrettyPrint: cfg.AppEnv == "development",
	})
	if err != nil {
		logger.Fatal("tracing init failed", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	db, err := database.OpenAndMigrate(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("db open/migrate failed", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("db close", zap.Error(err))
		}
	}()

	cache := database.NewCardCache(db, cfg.CacheTTL)
	client := scryfall.New(logger.Named("scryfall"), cache)
	client.BaseURL = cfg.CardAPIBaseURL

	gen := &booster.Generator{
		Source:   client,
		Logger:   logger.Named("booster"),
		RetryCap: cfg.RetryCap,
	}
	prober := assets.NewProber(logger.Named("assets"), cache)
	serializer := tts.New(prober)

	handlers.SetWebSocketOriginPolicy(
		cfg.AppEnv == "development", cfg.DevWebSocketsAllowAll, cfg.WSAllowedOrigins)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(middleware.RequestID(logger.Named("http")))
	router.Use(middleware.DevCORS(cfg))

	handlers.RegisterRoutes(router, handlers.Deps{
		Cfg:      cfg,
		Logger:   logger,
		Gen:      gen,
		Cache:    cache,
		Resolver: client,
		TTS:      serializer,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM; box streams get a grace period.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func buildLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.AppEnv == "development" {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	return zcfg.Build()
}
