package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordertypes "github.com/ordermesh/inventory-api/internal/domains/orders/application/types"
	"github.com/ordermesh/inventory-api/internal/domains/orders/domain"
	"github.com/ordermesh/inventory-api/internal/domains/orders/ports"
)

const tracerName = "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/observability/service"

// Service decorates an orders application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// PlaceOrder creates an order through the ledger with instrumentation.
func (s *Service) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.PlaceOrder",
		attribute.Int64("order.customer_id", input.CustomerID),
		attribute.Int("order.item_count", len(input.Items)),
	)
	defer span.End()

	s.logInfo(ctx, "placing order", slog.Int64("customer.id", input.CustomerID), slog.Int("items", len(input.Items)))
	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx)
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.Int64("customer.id", input.CustomerID))
	}
	if result != nil {
		s.metrics.recordPlaced(ctx)
		s.logInfo(ctx, "order placed",
			slog.Int64("order.id", result.ID),
			slog.String("order.total", result.TotalAmount.String()),
		)
	}
	return result, nil
}

// GetOrder loads a single order.
func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.GetOrder", attribute.Int64("order.id", id))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

// ListOrders returns all live orders.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

// ListOrdersByCustomer returns one customer's live orders.
func (s *Service) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.ListOrdersByCustomer", attribute.Int64("customer.id", customerID))
	defer span.End()

	result, err := s.inner.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customer orders", slog.Int64("customer.id", customerID))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

// AddItem puts a product on an existing order.
func (s *Service) AddItem(ctx context.Context, input ordertypes.AddItemInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.AddItem",
		attribute.Int64("order.id", input.OrderID),
		attribute.Int64("order.product_id", input.ProductID),
		attribute.Int("order.item_quantity", input.Quantity),
	)
	defer span.End()

	s.logInfo(ctx, "adding order item", slog.Int64("order.id", input.OrderID), slog.Int64("product.id", input.ProductID))
	result, err := s.inner.AddItem(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add order item", slog.Int64("order.id", input.OrderID))
	}
	if result != nil {
		s.logInfo(ctx, "order item added",
			slog.Int64("order.id", result.ID),
			slog.String("order.total", result.TotalAmount.String()),
		)
	}
	return result, nil
}

// UpdateItem mutates one order line and reconciles stock.
func (s *Service) UpdateItem(ctx context.Context, input ordertypes.UpdateItemInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateItem",
		attribute.Int64("order.item_id", input.ItemID),
		attribute.Int("order.item_quantity", input.Quantity),
	)
	defer span.End()

	s.logInfo(ctx, "updating order item", slog.Int64("item.id", input.ItemID), slog.Int("quantity", input.Quantity))
	result, err := s.inner.UpdateItem(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order item", slog.Int64("item.id", input.ItemID))
	}
	if result != nil {
		s.logInfo(ctx, "order item updated",
			slog.Int64("order.id", result.ID),
			slog.String("order.total", result.TotalAmount.String()),
		)
	}
	return result, nil
}

// RemoveItem soft-deletes one order line.
func (s *Service) RemoveItem(ctx context.Context, itemID int64) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.RemoveItem", attribute.Int64("order.item_id", itemID))
	defer span.End()

	s.logInfo(ctx, "removing order item", slog.Int64("item.id", itemID))
	result, err := s.inner.RemoveItem(ctx, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove order item", slog.Int64("item.id", itemID))
	}
	return result, nil
}

// DeleteOrder soft-deletes an order and restores its stock.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	ctx, span := s.startSpan(ctx, "Service.DeleteOrder", attribute.Int64("order.id", id))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.Int64("order.id", id))
	if err := s.inner.DeleteOrder(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.Int64("order.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.Int64("order.id", id))
	return nil
}

// Stats aggregates revenue figures.
func (s *Service) Stats(ctx context.Context) (*ordertypes.OrderStats, error) {
	ctx, span := s.startSpan(ctx, "Service.Stats")
	defer span.End()

	result, err := s.inner.Stats(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to compute order stats")
	}
	if result != nil {
		span.SetAttributes(attribute.Int64("order.stats.count", result.OrderCount))
	}
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersPlaced   metric.Int64Counter
	ordersRejected metric.Int64Counter
	ordersDeleted  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	ordersRejected, _ := m.Int64Counter("orders.service.rejected", metric.WithDescription("Number of order placements rejected"))
	ordersDeleted, _ := m.Int64Counter("orders.service.deleted", metric.WithDescription("Number of orders deleted"))
	return serviceMetrics{
		ordersPlaced:   ordersPlaced,
		ordersRejected: ordersRejected,
		ordersDeleted:  ordersDeleted,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context) {
	addCounter(ctx, m.ordersPlaced, 1)
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	addCounter(ctx, m.ordersRejected, 1)
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.ordersDeleted, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
