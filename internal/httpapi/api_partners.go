package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	partnersdomain "github.com/ordermesh/inventory-api/internal/domains/partners/domain"
	partnersports "github.com/ordermesh/inventory-api/internal/domains/partners/ports"
)

// PartnerAPI wires HTTP transport with the partners bounded context service.
type PartnerAPI struct {
	service partnersports.Service
}

// NewPartnerAPI creates a PartnerAPI backed by the provided service.
func NewPartnerAPI(service partnersports.Service) PartnerAPI {
	return PartnerAPI{service: service}
}

// Post /api/v1/customers
func (api *PartnerAPI) CreateCustomer(c *gin.Context) {
	var payload Customer
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	created, err := api.service.CreateCustomer(c.Request.Context(), &partnersdomain.Customer{
		Name:        payload.Name,
		ContactInfo: payload.ContactInfo,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromCustomer(created))
}

// Get /api/v1/customers/:customerId
func (api *PartnerAPI) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}
	customer, err := api.service.GetCustomerByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCustomer(customer))
}

// Get /api/v1/customers
func (api *PartnerAPI) ListCustomers(c *gin.Context) {
	customers, err := api.service.ListCustomers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]Customer, 0, len(customers))
	for _, customer := range customers {
		out = append(out, fromCustomer(customer))
	}
	c.JSON(http.StatusOK, out)
}

// Put /api/v1/customers/:customerId
func (api *PartnerAPI) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}
	var payload Customer
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.UpdateCustomer(c.Request.Context(), &partnersdomain.Customer{
		ID:          id,
		Name:        payload.Name,
		ContactInfo: payload.ContactInfo,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCustomer(updated))
}

// Delete /api/v1/customers/:customerId
func (api *PartnerAPI) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}
	if err := api.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /api/v1/suppliers
func (api *PartnerAPI) CreateSupplier(c *gin.Context) {
	var payload Supplier
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	created, err := api.service.CreateSupplier(c.Request.Context(), &partnersdomain.Supplier{
		Name:        payload.Name,
		ContactInfo: payload.ContactInfo,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromSupplier(created))
}

// Get /api/v1/suppliers/:supplierId
func (api *PartnerAPI) GetSupplier(c *gin.Context) {
	id, ok := parseIDParam(c, "supplierId")
	if !ok {
		return
	}
	supplier, err := api.service.GetSupplierByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromSupplier(supplier))
}

// Get /api/v1/suppliers
func (api *PartnerAPI) ListSuppliers(c *gin.Context) {
	suppliers, err := api.service.ListSuppliers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]Supplier, 0, len(suppliers))
	for _, supplier := range suppliers {
		out = append(out, fromSupplier(supplier))
	}
	c.JSON(http.StatusOK, out)
}

// Put /api/v1/suppliers/:supplierId
func (api *PartnerAPI) UpdateSupplier(c *gin.Context) {
	id, ok := parseIDParam(c, "supplierId")
	if !ok {
		return
	}
	var payload Supplier
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.UpdateSupplier(c.Request.Context(), &partnersdomain.Supplier{
		ID:          id,
		Name:        payload.Name,
		ContactInfo: payload.ContactInfo,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromSupplier(updated))
}

// Delete /api/v1/suppliers/:supplierId
func (api *PartnerAPI) DeleteSupplier(c *gin.Context) {
	id, ok := parseIDParam(c, "supplierId")
	if !ok {
		return
	}
	if err := api.service.DeleteSupplier(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
