package httpapi

import (
	"errors"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/ordermesh/inventory-api/internal/domains/catalog/application"
	ordersapp "github.com/ordermesh/inventory-api/internal/domains/orders/application"
	ordersports "github.com/ordermesh/inventory-api/internal/domains/orders/ports"
	partnersapp "github.com/ordermesh/inventory-api/internal/domains/partners/application"
	partnersports "github.com/ordermesh/inventory-api/internal/domains/partners/ports"
	stockapp "github.com/ordermesh/inventory-api/internal/domains/stock/application"
	stockports "github.com/ordermesh/inventory-api/internal/domains/stock/ports"
	sharederrors "github.com/ordermesh/inventory-api/internal/shared/errors"
)

// responder maps application errors onto RFC 7807 bodies. Mapper order
// matters: the insufficient-stock mapper runs before the generic not-found
// mapper so its extensions survive.
var responder = sharederrors.NewChainedResponder(
	"",
	mapInsufficientStock,
	mapInvalidInput,
	mapNotFound,
)

func respondServiceError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
}

func mapInsufficientStock(err error) (sharederrors.ProblemDetail, bool) {
	var insufficient *ordersapp.InsufficientStockError
	if errors.As(err, &insufficient) {
		return sharederrors.ErrValidation.
			WithDetail(insufficient.Error()).
			WithExtension("productId", insufficient.ProductID).
			WithExtension("productName", insufficient.ProductName).
			WithExtension("available", insufficient.Available).
			WithExtension("requested", insufficient.Requested), true
	}
	if errors.Is(err, ordersports.ErrInsufficientStock) || errors.Is(err, stockports.ErrInsufficientStock) {
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}

func mapInvalidInput(err error) (sharederrors.ProblemDetail, bool) {
	if errors.Is(err, ordersapp.ErrInvalidInput) ||
		errors.Is(err, stockapp.ErrInvalidInput) ||
		errors.Is(err, catalogapp.ErrInvalidInput) ||
		errors.Is(err, partnersapp.ErrInvalidInput) {
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}

func mapNotFound(err error) (sharederrors.ProblemDetail, bool) {
	for _, sentinel := range []error{
		ordersports.ErrOrderNotFound,
		ordersports.ErrItemNotFound,
		ordersports.ErrProductNotFound,
		ordersports.ErrCustomerNotFound,
		stockports.ErrEntryNotFound,
		stockports.ErrProductNotFound,
		stockports.ErrSupplierNotFound,
		catalogapp.ErrNotFound,
		partnersports.ErrCustomerNotFound,
		partnersports.ErrSupplierNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sharederrors.ErrNotFound.WithDetail(err.Error()), true
		}
	}
	return sharederrors.ProblemDetail{}, false
}
