package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/harmon-corp/reseller-service/internal/api/http"
	"github.com/harmon-corp/reseller-service/internal/api/http/handlers"
	"github.com/harmon-corp/reseller-service/internal/auth"
	"github.com/harmon-corp/reseller-service/internal/config"
	"github.com/harmon-corp/reseller-service/internal/events"
	"github.com/harmon-corp/reseller-service/internal/observability"
	"github.com/harmon-corp/reseller-service/internal/persistence"
	"github.com/harmon-corp/reseller-service/internal/repository"
	"github.com/harmon-corp/reseller-service/internal/service"
	"github.com/harmon-corp/reseller-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	store, err := persistence.NewCSVStore(cfg.Data.Dir, repository.TableHeaders(), logger)
	if err != nil {
		logger.Fatal("failed to open data store", zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	userRepo := repository.NewUserRepository(store)
	stockRepo := repository.NewStockRepository(store)
	txnRepo := repository.NewTransactionRepository(store)
	cartRepo := repository.NewCartRepository(redis, cfg.Cart.CartTTL())

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	stockService := service.NewStockService(stockRepo)
	checkoutService := service.NewCheckoutService(cartRepo, stockService, txnRepo, dispatcher)
	fulfillmentService := service.NewFulfillmentService(txnRepo, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Stock:          handlers.NewStockHandler(stockService),
		Cart:           handlers.NewCartHandler(checkoutService),
		Fulfillment:    handlers.NewFulfillmentHandler(fulfillmentService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
