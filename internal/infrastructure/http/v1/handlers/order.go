package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/domain/orders"
	"retailhub/internal/infrastructure/http/v1/dto"
)

// OrderHandler serves order operations.
type OrderHandler struct {
	*BaseHandler
	service *orders.Service
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(base *BaseHandler, service *orders.Service) *OrderHandler {
	return &OrderHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	svcReq, err := req.ToServiceRequest()
	if err != nil {
		h.Error(c, err)
		return
	}

	o, err := h.service.Create(c.Request.Context(), svcReq)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, o)
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, o)
}

// List handles GET /orders with filtering.
func (h *OrderHandler) List(c *gin.Context) {
	filter := orders.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.DateFrom = c.Query("dateFrom")
	filter.DateTo = c.Query("dateTo")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-order_date")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if storeStr := c.Query("storeId"); storeStr != "" {
		storeID, err := id.Parse(storeStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid storeId format"))
			return
		}
		filter.StoreID = &storeID
	}
	if channelStr := c.Query("channel"); channelStr != "" {
		ch := orders.Channel(channelStr)
		if !ch.Valid() {
			h.Error(c, apperror.NewValidation("unknown sales channel").
				WithDetail("channel", channelStr))
			return
		}
		filter.Channel = &ch
	}
	if statusStr := c.Query("paymentStatus"); statusStr != "" {
		status := orders.PaymentStatus(statusStr)
		filter.PaymentStatus = &status
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

// RecordPayment handles POST /orders/:id/payments.
func (h *OrderHandler) RecordPayment(c *gin.Context) {
	orderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.service.RecordPayment(c.Request.Context(), orderID, req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, o)
}

// Delete handles DELETE /orders/:id - soft delete with restock.
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), orderID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// BulkDelete handles POST /orders/bulk-delete.
func (h *OrderHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ids := make([]id.ID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		parsed, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid id format").
				WithDetail("id", raw))
			return
		}
		ids = append(ids, parsed)
	}

	deleted, err := h.service.BulkDelete(c.Request.Context(), ids)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.BulkDeleteResponse{Deleted: deleted})
}

// Ingest handles POST /orders/ingest - legacy record import.
func (h *OrderHandler) Ingest(c *gin.Context) {
	var req dto.IngestOrdersRequest
	if !h.BindJSON(c, &req) {
		return
	}

	skipped, err := h.service.Ingest(c.Request.Context(), req.Records, orders.Strategy(req.Strategy))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.IngestOrdersResponse{
		Received: len(req.Records),
		Skipped:  skipped,
	})
}

// DiagnoseChannel handles GET /orders/:id/channel-diagnosis. Reports where
// the strict and heuristic classifiers disagree for one order.
func (h *OrderHandler) DiagnoseChannel(c *gin.Context) {
	orderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	raw := o.RawFields("", string(o.Channel))
	strict := orders.ClassifyStrict(raw)
	heuristic := orders.ClassifyHeuristic(raw)

	h.OK(c, dto.ChannelDiagnosisResponse{
		OrderID:   o.ID.String(),
		Strict:    string(strict),
		Heuristic: string(heuristic),
		Ambiguous: strict != heuristic,
	})
}
