// Package httpapi exposes the bounded contexts over HTTP with gin.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ordermesh/inventory-api/internal/admission"
	"github.com/ordermesh/inventory-api/internal/idempotency"
)

// Handlers bundles the per-context APIs the router mounts.
type Handlers struct {
	Products     ProductAPI
	Partners     PartnerAPI
	Orders       OrderAPI
	StockEntries StockEntryAPI
}

// RouterConfig carries the cross-cutting dependencies of the HTTP surface.
// Request flow is admission first, then the duplicate-submission guard on
// order creation, then the handlers.
type RouterConfig struct {
	Admission        admission.Config
	AdmissionStore   admission.Store
	IdempotencyStore idempotency.Store
	Logger           *slog.Logger
}

// NewRouter builds the gin engine with middleware and all routes mounted.
func NewRouter(handlers Handlers, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CorrelationID())
	router.Use(admission.Middleware(cfg.Admission, cfg.AdmissionStore, cfg.Logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	products := v1.Group("/products")
	{
		products.POST("", handlers.Products.CreateProduct)
		products.GET("", handlers.Products.ListProducts)
		products.GET("/:productId", handlers.Products.GetProduct)
		products.PUT("/:productId", handlers.Products.UpdateProduct)
		products.DELETE("/:productId", handlers.Products.DeleteProduct)
	}

	customers := v1.Group("/customers")
	{
		customers.POST("", handlers.Partners.CreateCustomer)
		customers.GET("", handlers.Partners.ListCustomers)
		customers.GET("/:customerId", handlers.Partners.GetCustomer)
		customers.PUT("/:customerId", handlers.Partners.UpdateCustomer)
		customers.DELETE("/:customerId", handlers.Partners.DeleteCustomer)
		customers.GET("/:customerId/orders", handlers.Orders.ListOrdersByCustomer)
	}

	suppliers := v1.Group("/suppliers")
	{
		suppliers.POST("", handlers.Partners.CreateSupplier)
		suppliers.GET("", handlers.Partners.ListSuppliers)
		suppliers.GET("/:supplierId", handlers.Partners.GetSupplier)
		suppliers.PUT("/:supplierId", handlers.Partners.UpdateSupplier)
		suppliers.DELETE("/:supplierId", handlers.Partners.DeleteSupplier)
	}

	orders := v1.Group("/orders")
	{
		orders.POST("", idempotency.Middleware(cfg.IdempotencyStore, cfg.Logger), handlers.Orders.PlaceOrder)
		orders.GET("", handlers.Orders.ListOrders)
		orders.GET("/stats", handlers.Orders.OrderStats)
		orders.GET("/:orderId", handlers.Orders.GetOrder)
		orders.POST("/:orderId/items", handlers.Orders.AddOrderItem)
		orders.DELETE("/:orderId", handlers.Orders.DeleteOrder)
	}

	orderItems := v1.Group("/order-items")
	{
		orderItems.PUT("/:itemId", handlers.Orders.UpdateOrderItem)
		orderItems.DELETE("/:itemId", handlers.Orders.RemoveOrderItem)
	}

	stockEntries := v1.Group("/stock-entries")
	{
		stockEntries.POST("", handlers.StockEntries.CreateStockEntry)
		stockEntries.GET("", handlers.StockEntries.ListStockEntries)
		stockEntries.GET("/:entryId", handlers.StockEntries.GetStockEntry)
		stockEntries.PUT("/:entryId", handlers.StockEntries.UpdateStockEntry)
		stockEntries.DELETE("/:entryId", handlers.StockEntries.DeleteStockEntry)
	}

	return router
}
