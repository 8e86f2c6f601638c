package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	stockdomain "github.com/ordermesh/inventory-api/internal/domains/stock/domain"
	stockports "github.com/ordermesh/inventory-api/internal/domains/stock/ports"
)

// StockEntryAPI wires HTTP transport with the stock bounded context service.
type StockEntryAPI struct {
	service stockports.Service
}

// NewStockEntryAPI creates a StockEntryAPI backed by the provided service.
func NewStockEntryAPI(service stockports.Service) StockEntryAPI {
	return StockEntryAPI{service: service}
}

// Post /api/v1/stock-entries
// Creating an entry credits the product's stock by its quantity.
func (api *StockEntryAPI) CreateStockEntry(c *gin.Context) {
	var payload StockEntry
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	entry := &stockdomain.StockEntry{
		ProductID:  payload.ProductID,
		SupplierID: payload.SupplierID,
		Quantity:   payload.Quantity,
	}
	if payload.EntryDate != nil {
		entry.EntryDate = *payload.EntryDate
	}
	created, err := api.service.CreateEntry(c.Request.Context(), entry)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromStockEntry(created))
}

// Get /api/v1/stock-entries/:entryId
func (api *StockEntryAPI) GetStockEntry(c *gin.Context) {
	id, ok := parseIDParam(c, "entryId")
	if !ok {
		return
	}
	entry, err := api.service.GetEntry(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromStockEntry(entry))
}

// Get /api/v1/stock-entries
// An optional ?productId= filters entries to one product.
func (api *StockEntryAPI) ListStockEntries(c *gin.Context) {
	if raw := strings.TrimSpace(c.Query("productId")); raw != "" {
		productID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || productID <= 0 {
			respondBadRequest(c, errInvalidProductIDQuery)
			return
		}
		entries, err := api.service.ListEntriesByProduct(c.Request.Context(), productID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, fromStockEntryList(entries))
		return
	}
	entries, err := api.service.ListEntries(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromStockEntryList(entries))
}

// Put /api/v1/stock-entries/:entryId
// Updating an entry applies the signed quantity difference, migrating the
// credit when the product reference changed.
func (api *StockEntryAPI) UpdateStockEntry(c *gin.Context) {
	id, ok := parseIDParam(c, "entryId")
	if !ok {
		return
	}
	var payload StockEntry
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	entry := &stockdomain.StockEntry{
		ID:         id,
		ProductID:  payload.ProductID,
		SupplierID: payload.SupplierID,
		Quantity:   payload.Quantity,
	}
	if payload.EntryDate != nil {
		entry.EntryDate = *payload.EntryDate
	}
	updated, err := api.service.UpdateEntry(c.Request.Context(), entry)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromStockEntry(updated))
}

// Delete /api/v1/stock-entries/:entryId
// Deleting an entry reverses its original stock credit.
func (api *StockEntryAPI) DeleteStockEntry(c *gin.Context) {
	id, ok := parseIDParam(c, "entryId")
	if !ok {
		return
	}
	if err := api.service.DeleteEntry(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

var errInvalidProductIDQuery = errors.New("productId must be a positive integer")
