package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/srm-logistics/delivery-service/internal/app"
	"github.com/srm-logistics/delivery-service/internal/auth"
	"github.com/srm-logistics/delivery-service/internal/blob"
	"github.com/srm-logistics/delivery-service/internal/config"
	"github.com/srm-logistics/delivery-service/internal/events"
	"github.com/srm-logistics/delivery-service/internal/handler"
	"github.com/srm-logistics/delivery-service/internal/postgres"
	"github.com/srm-logistics/delivery-service/internal/repo"
	"github.com/srm-logistics/delivery-service/internal/service"
	"github.com/srm-logistics/delivery-service/pkg/cache"
	"github.com/srm-logistics/delivery-service/pkg/trm"

	"github.com/joho/godotenv"
)

// @title           Delivery Service API
// @version         1.0
// @description     Order management and rider operations for the delivery fleet
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	orderRepo := repo.NewOrderRepo(db)
	riderRepo := repo.NewRiderRepo(db)
	adminRepo := repo.NewAdminRepo(db)
	txManager := trm.NewManager(db)

	orderCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
	go orderCache.StartJanitor(ctx)

	tokens := auth.NewTokenManager(conf.Auth.Secret, conf.Auth.TokenTTL)
	images := blob.NewImageHost(conf.Blob.Endpoint, conf.Blob.APIKey, conf.Blob.Timeout)
	producer := events.NewProducer(logger, conf.Kafka)

	riderService := service.NewRiderService(logger, riderRepo, images, tokens)
	orderService := service.NewOrderService(logger, txManager, orderRepo, riderService, producer, orderCache)
	adminService := service.NewAdminService(logger, adminRepo, tokens)

	handler.RegisterMetrics()
	orderHandler := handler.NewOrderHandler(logger, orderService, tokens)
	riderHandler := handler.NewRiderHandler(logger, riderService, tokens)
	adminHandler := handler.NewAdminHandler(logger, adminService)

	app := app.New(logger, conf)
	app.SetHttpHandlers(orderHandler, riderHandler, adminHandler)
	app.SetClosers(producer)

	panicIfErr("application failed", app.Run(ctx))
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
