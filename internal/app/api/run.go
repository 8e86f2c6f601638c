package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	"github.com/ordermesh/inventory-api/internal/admission"
	catalogmemory "github.com/ordermesh/inventory-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/ordermesh/inventory-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/ordermesh/inventory-api/internal/domains/catalog/application"
	catalogports "github.com/ordermesh/inventory-api/internal/domains/catalog/ports"
	orderscatalog "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/observability"
	orderspartners "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/partners"
	orderspostgres "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/ordermesh/inventory-api/internal/domains/orders/application"
	ordersports "github.com/ordermesh/inventory-api/internal/domains/orders/ports"
	partnersmemory "github.com/ordermesh/inventory-api/internal/domains/partners/adapters/memory"
	partnerspostgres "github.com/ordermesh/inventory-api/internal/domains/partners/adapters/persistence/postgres"
	partnersapp "github.com/ordermesh/inventory-api/internal/domains/partners/application"
	partnersports "github.com/ordermesh/inventory-api/internal/domains/partners/ports"
	stockcatalog "github.com/ordermesh/inventory-api/internal/domains/stock/adapters/catalog"
	stockmemory "github.com/ordermesh/inventory-api/internal/domains/stock/adapters/memory"
	stockpartners "github.com/ordermesh/inventory-api/internal/domains/stock/adapters/partners"
	stockpostgres "github.com/ordermesh/inventory-api/internal/domains/stock/adapters/persistence/postgres"
	stockapp "github.com/ordermesh/inventory-api/internal/domains/stock/application"
	stockports "github.com/ordermesh/inventory-api/internal/domains/stock/ports"
	"github.com/ordermesh/inventory-api/internal/httpapi"
	"github.com/ordermesh/inventory-api/internal/idempotency"
	"github.com/ordermesh/inventory-api/internal/platform/migrations"
	platformobservability "github.com/ordermesh/inventory-api/internal/platform/observability"
	platformpostgres "github.com/ordermesh/inventory-api/internal/platform/postgres"
	platformredis "github.com/ordermesh/inventory-api/internal/platform/redis"
	"github.com/ordermesh/inventory-api/internal/shared/txn"
)

// Run boots the inventory HTTP API with observability, storage, admission
// control, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "inventory-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	redisClient, cleanupRedis := platformredis.ConnectFromEnv(ctx, logger)
	defer cleanupRedis()

	admissionStore, idempotencyStore, cleanupStores := buildRequestStores(redisClient, cfg.IdempotencyTTL, logger)
	defer cleanupStores()

	deps := buildDomainServices(db, instruments)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(deps.orders)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := httpapi.Handlers{
		Products:     httpapi.NewProductAPI(deps.catalog),
		Partners:     httpapi.NewPartnerAPI(deps.partners),
		Orders:       httpapi.NewOrderAPI(deps.orders, orderWorkflows),
		StockEntries: httpapi.NewStockEntryAPI(deps.stock),
	}

	router := httpapi.NewRouter(handlers, httpapi.RouterConfig{
		Admission:        cfg.Admission,
		AdmissionStore:   admissionStore,
		IdempotencyStore: idempotencyStore,
		Logger:           logger,
	})
	router.Use(otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("inventory API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("inventory API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

type domainServices struct {
	catalog  catalogports.Service
	partners partnersports.Service
	orders   ordersports.Service
	stock    *stockapp.Service
}

// buildDomainServices wires repositories, gateways, and application services
// for every context, backed by postgres when available and memory otherwise.
func buildDomainServices(db *gorm.DB, instruments *platformobservability.Instruments) domainServices {
	var (
		productRepo  catalogports.Repository
		customerRepo partnersports.CustomerRepository
		supplierRepo partnersports.SupplierRepository
		orderRepo    ordersports.Repository
		stockRepo    = buildStockRepository(db)
		tx           txn.Transactor
	)
	if db != nil {
		productRepo = catalogpostgres.NewRepository(db)
		customerRepo = partnerspostgres.NewCustomerRepository(db)
		supplierRepo = partnerspostgres.NewSupplierRepository(db)
		orderRepo = orderspostgres.NewRepository(db)
		tx = platformpostgres.NewTransactor(db)
	} else {
		productRepo = catalogmemory.NewRepository()
		customerRepo = partnersmemory.NewCustomerRepository()
		supplierRepo = partnersmemory.NewSupplierRepository()
		orderRepo = ordersmemory.NewRepository()
		tx = txn.NewSerial()
	}

	coreOrders := ordersapp.NewService(
		orderRepo,
		orderscatalog.NewGateway(productRepo),
		orderspartners.NewGateway(customerRepo),
		tx,
	)
	orders := ordersobs.New(
		coreOrders,
		ordersobs.WithLogger(instruments.Logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	return domainServices{
		catalog:  catalogapp.NewService(productRepo),
		partners: partnersapp.NewService(customerRepo, supplierRepo),
		orders:   orders,
		stock: stockapp.NewService(
			stockRepo,
			stockcatalog.NewGateway(productRepo),
			stockpartners.NewGateway(supplierRepo),
			tx,
		),
	}
}

func buildStockRepository(db *gorm.DB) stockports.Repository {
	if db != nil {
		return stockpostgres.NewRepository(db)
	}
	return stockmemory.NewRepository()
}

// buildRequestStores picks Redis-backed admission and idempotency state when a
// client is available, falling back to in-process stores otherwise.
func buildRequestStores(redisClient *redis.Client, tokenTTL time.Duration, logger *slog.Logger) (admission.Store, idempotency.Store, func()) {
	if redisClient != nil {
		logger.Info("admission and idempotency state backed by redis")
		return admission.NewRedisStore(redisClient), idempotency.NewRedisStore(redisClient, tokenTTL), func() {}
	}
	logger.Warn("REDIS_ADDR not set, using in-process admission and idempotency state")
	admissionStore := admission.NewMemoryStore(admission.DefaultBucketTTL)
	idempotencyStore := idempotency.NewMemoryStore(tokenTTL)
	return admissionStore, idempotencyStore, func() {
		admissionStore.Close()
		idempotencyStore.Close()
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
