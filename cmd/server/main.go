// Package main implements the entry point for the purchase API server,
// which lets customers spend balance to buy products.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver with database/sql
	"github.com/pressly/goose/v3"

	"github.com/jmallis/purchase-api/internal/api"
	"github.com/jmallis/purchase-api/internal/config"
	"github.com/jmallis/purchase-api/internal/domain"
	"github.com/jmallis/purchase-api/internal/events"
	"github.com/jmallis/purchase-api/internal/platform/logger"
	"github.com/jmallis/purchase-api/internal/platform/postgres"
	"github.com/jmallis/purchase-api/internal/registry"
	"github.com/jmallis/purchase-api/internal/service"
	"github.com/jmallis/purchase-api/internal/store"
	"github.com/jmallis/purchase-api/internal/task"
	"github.com/jmallis/purchase-api/migrations"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run wires the application together and serves HTTP until interrupted.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	customers := postgres.NewCustomerStore(db, appLogger)
	products := postgres.NewProductStore(db, appLogger)

	emitter := events.NewInMemoryEmitter(appLogger)
	reg := buildRegistry(db, customers, products, emitter, appLogger)
	appLogger.Info("service registry built", slog.Any("services", reg.Names()))

	// Best-effort notification pipeline: purchase events fan out to
	// registry-resolved notifiers executed by background workers.
	queue := task.NewQueue(cfg.Notify.QueueSize, appLogger)
	pool := task.NewWorkerPool(queue, task.WorkerPoolConfig{
		WorkerCount: cfg.Notify.WorkerCount,
	}, appLogger)
	pool.Start()
	emitter.RegisterHandler(task.NewPurchaseEventHandler(reg, queue, cfg.Notify.Services, appLogger))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(reg, appLogger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("server listening", slog.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		appLogger.Info("shutdown signal received")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}

	queue.Close()
	pool.Stop()

	return nil
}

// runMigrations applies the embedded goose migrations.
func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

// buildRegistry registers every service factory. The buy-product factory
// constructs an immutable service instance per call from the named arguments
// supplied at the caller boundary; the notifiers need no arguments.
func buildRegistry(
	db *sql.DB,
	customers store.CustomerStore,
	products store.ProductStore,
	emitter events.Emitter,
	appLogger *slog.Logger,
) *registry.Registry {
	reg := registry.New(appLogger)

	reg.Register(service.BuyProductServiceName, func(args registry.Args) (service.Service, error) {
		request, ok := args["request"].(domain.PurchaseRequest)
		if !ok {
			return nil, fmt.Errorf("buy_product factory requires a %q argument", "request")
		}
		customerID, _ := args["customer_id"].(uuid.UUID)

		svc, err := service.NewBuyProductService(request, customerID, service.BuyProductDeps{
			DB:        db,
			Customers: customers,
			Products:  products,
			Emitter:   emitter,
			Logger:    appLogger,
		})
		if err != nil {
			return nil, err
		}
		return service.WithErrorLogging(svc, appLogger), nil
	})

	reg.Register(service.SendEmailServiceName, func(args registry.Args) (service.Service, error) {
		return service.NewSendEmailService(appLogger), nil
	})

	reg.Register(service.SendCRMServiceName, func(args registry.Args) (service.Service, error) {
		return service.NewSendCRMService(appLogger), nil
	})

	return reg
}
