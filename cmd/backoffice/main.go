package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wtr-org/backoffice/internal/app"
	"github.com/wtr-org/backoffice/internal/auth"
	"github.com/wtr-org/backoffice/internal/billing"
	"github.com/wtr-org/backoffice/internal/catalog/products"
	"github.com/wtr-org/backoffice/internal/catalog/stocks"
	"github.com/wtr-org/backoffice/internal/company"
	"github.com/wtr-org/backoffice/internal/customers"
	"github.com/wtr-org/backoffice/internal/employees"
	"github.com/wtr-org/backoffice/internal/observability"
	"github.com/wtr-org/backoffice/internal/payments"
	"github.com/wtr-org/backoffice/internal/platform/db"
	"github.com/wtr-org/backoffice/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	clock := shared.SystemClock{}
	idempotencyStore := shared.NewIdempotencyStore(dbpool)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := idempotencyStore.Cleanup(ctx, 24*time.Hour); err != nil {
					logger.Warn("idempotency cleanup", slog.Any("error", err))
				}
			}
		}
	}()
	metrics := observability.NewMetrics()

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL, clock)
	denylist := auth.NewDenylist(redisClient)

	employeeRepo := employees.NewRepository(dbpool)
	employeeService := employees.NewService(employeeRepo, clock)
	employeeHandler := employees.NewHandler(logger, employeeService)

	authService := auth.NewService(employeeRepo, issuer, denylist, clock)
	authHandler := auth.NewHandler(logger, authService)

	customerRepo := customers.NewRepository(dbpool)
	customerService := customers.NewService(customerRepo, clock)
	customerHandler := customers.NewHandler(logger, customerService)

	productRepo := products.NewRepository(dbpool)
	productService := products.NewService(productRepo, clock)
	productHandler := products.NewHandler(logger, productService)

	stockRepo := stocks.NewRepository(dbpool)
	stockService := stocks.NewService(stockRepo, clock)
	stockHandler := stocks.NewHandler(logger, stockService)

	paymentRepo := payments.NewRepository(dbpool)
	paymentService := payments.NewService(paymentRepo, clock)
	paymentHandler := payments.NewHandler(logger, paymentService)

	companyRepo := company.NewRepository(dbpool)
	companyService := company.NewService(companyRepo, clock)
	companyHandler := company.NewHandler(logger, companyService)

	billingRepo := billing.NewRepository(dbpool)
	billingService := billing.NewService(billingRepo, idempotencyStore, clock)
	billingHandler := billing.NewHandler(logger, billingService)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Metrics:         metrics,
		TokenIssuer:     issuer,
		Denylist:        denylist,
		AuthHandler:     authHandler,
		EmployeeHandler: employeeHandler,
		CustomerHandler: customerHandler,
		ProductHandler:  productHandler,
		StockHandler:    stockHandler,
		PaymentHandler:  paymentHandler,
		CompanyHandler:  companyHandler,
		BillingHandler:  billingHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
