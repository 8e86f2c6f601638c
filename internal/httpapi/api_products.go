package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/ordermesh/inventory-api/internal/domains/catalog/domain"
	catalogports "github.com/ordermesh/inventory-api/internal/domains/catalog/ports"
	sharederrors "github.com/ordermesh/inventory-api/internal/shared/errors"
)

// ProductAPI wires HTTP transport with the catalog bounded context service.
type ProductAPI struct {
	service catalogports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Post /api/v1/products
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	created, err := api.service.CreateProduct(c.Request.Context(), &catalogdomain.Product{
		Name:            payload.Name,
		Description:     payload.Description,
		Price:           payload.Price,
		QuantityInStock: payload.QuantityInStock,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromProduct(created))
}

// Get /api/v1/products/:productId
func (api *ProductAPI) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProductByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProduct(product))
}

// Get /api/v1/products
// An optional ?q= filters by name or slug substring.
func (api *ProductAPI) ListProducts(c *gin.Context) {
	if query := strings.TrimSpace(c.Query("q")); query != "" {
		products, err := api.service.SearchProducts(c.Request.Context(), query)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, fromProductList(products))
		return
	}
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProductList(products))
}

// Put /api/v1/products/:productId
func (api *ProductAPI) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.UpdateProduct(c.Request.Context(), &catalogdomain.Product{
		ID:              id,
		Name:            payload.Name,
		Description:     payload.Description,
		Price:           payload.Price,
		QuantityInStock: payload.QuantityInStock,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProduct(updated))
}

// Delete /api/v1/products/:productId
func (api *ProductAPI) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseIDParam reads a positive integer path parameter, responding with a
// 400 problem when it is malformed.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.
			WithDetail("invalid "+name+" path parameter"))
		return 0, false
	}
	return id, true
}
