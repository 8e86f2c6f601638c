package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"gorm.io/gorm"

	catalogmemory "github.com/ordermesh/inventory-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/ordermesh/inventory-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/ordermesh/inventory-api/internal/domains/catalog/ports"
	orderscatalog "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/observability"
	orderspartners "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/partners"
	orderspostgres "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/ordermesh/inventory-api/internal/domains/orders/application"
	ordersports "github.com/ordermesh/inventory-api/internal/domains/orders/ports"
	partnersmemory "github.com/ordermesh/inventory-api/internal/domains/partners/adapters/memory"
	partnerspostgres "github.com/ordermesh/inventory-api/internal/domains/partners/adapters/persistence/postgres"
	partnersports "github.com/ordermesh/inventory-api/internal/domains/partners/ports"
	"github.com/ordermesh/inventory-api/internal/platform/migrations"
	platformobservability "github.com/ordermesh/inventory-api/internal/platform/observability"
	platformpostgres "github.com/ordermesh/inventory-api/internal/platform/postgres"
	orderactivities "github.com/ordermesh/inventory-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/ordermesh/inventory-api/internal/platform/temporal/workflows/orders"
	"github.com/ordermesh/inventory-api/internal/shared/txn"
)

func main() {
	ctx := context.Background()
	const serviceName = "inventory-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	orderService := buildOrderService(db, instruments)
	activities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

// buildOrderService wires the order ledger against postgres when configured,
// falling back to in-memory repositories otherwise.
func buildOrderService(db *gorm.DB, instruments *platformobservability.Instruments) ordersports.Service {
	var (
		productRepo  catalogports.Repository
		customerRepo partnersports.CustomerRepository
		orderRepo    ordersports.Repository
		tx           txn.Transactor
	)
	if db != nil {
		productRepo = catalogpostgres.NewRepository(db)
		customerRepo = partnerspostgres.NewCustomerRepository(db)
		orderRepo = orderspostgres.NewRepository(db)
		tx = platformpostgres.NewTransactor(db)
	} else {
		productRepo = catalogmemory.NewRepository()
		customerRepo = partnersmemory.NewCustomerRepository()
		orderRepo = ordersmemory.NewRepository()
		tx = txn.NewSerial()
	}
	core := ordersapp.NewService(
		orderRepo,
		orderscatalog.NewGateway(productRepo),
		orderspartners.NewGateway(customerRepo),
		tx,
	)
	return ordersobs.New(
		core,
		ordersobs.WithLogger(instruments.Logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
