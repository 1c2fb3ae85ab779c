package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/domain/invoices"
	"retailhub/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler serves invoice operations.
type InvoiceHandler struct {
	*BaseHandler
	service *invoices.Service
}

// NewInvoiceHandler creates an invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoices.Service) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /invoices - issue an invoice for an order.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	orderID, err := id.Parse(req.OrderID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid orderId format"))
		return
	}

	inv, err := h.service.CreateFromOrder(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, inv)
}

// Get handles GET /invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, inv)
}

// List handles GET /invoices with filtering.
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter invoices.ListFilter
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	if storeStr := c.Query("storeId"); storeStr != "" {
		storeID, err := id.Parse(storeStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid storeId format"))
			return
		}
		filter.StoreID = &storeID
	}
	if orderStr := c.Query("orderId"); orderStr != "" {
		orderID, err := id.Parse(orderStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid orderId format"))
			return
		}
		filter.OrderID = &orderID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := invoices.Status(statusStr)
		filter.Status = &status
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RecordPayment handles POST /invoices/:id/payments.
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	invoiceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.service.RecordPayment(c.Request.Context(), invoiceID, req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, inv)
}

// Void handles POST /invoices/:id/void.
func (h *InvoiceHandler) Void(c *gin.Context) {
	invoiceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Void(c.Request.Context(), invoiceID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "invoice voided")
}
