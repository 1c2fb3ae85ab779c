package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/domain/catalogs/store"
	"retailhub/internal/domain/warehouse"
	"retailhub/internal/infrastructure/http/v1/dto"
)

// WarehouseHandler serves stock movements and ledger queries.
type WarehouseHandler struct {
	*BaseHandler
	service *warehouse.Service
	stores  *store.Service
}

// NewWarehouseHandler creates a warehouse handler.
func NewWarehouseHandler(base *BaseHandler, service *warehouse.Service, stores *store.Service) *WarehouseHandler {
	return &WarehouseHandler{
		BaseHandler: base,
		service:     service,
		stores:      stores,
	}
}

// StockIn handles POST /warehouse/in.
func (h *WarehouseHandler) StockIn(c *gin.Context) {
	h.applyMovement(c, h.service.StockIn)
}

// StockOut handles POST /warehouse/out.
func (h *WarehouseHandler) StockOut(c *gin.Context) {
	h.applyMovement(c, h.service.RecordOut)
}

// Adjust handles POST /warehouse/adjust. Quantity is signed.
func (h *WarehouseHandler) Adjust(c *gin.Context) {
	h.applyMovement(c, h.service.Adjust)
}

func (h *WarehouseHandler) applyMovement(
	c *gin.Context,
	apply func(ctx context.Context, m warehouse.Movement) (*warehouse.Transaction, error),
) {
	var req dto.MovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	storeID, err := id.Parse(req.StoreID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid storeId format"))
		return
	}
	st, err := h.stores.GetByID(ctx, storeID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !st.IsActive() {
		h.Error(c, apperror.NewStorePaused(st.ID.String()))
		return
	}

	m, err := req.ToMovement(st.Name)
	if err != nil {
		h.Error(c, err)
		return
	}

	t, err := apply(ctx, m)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

// Get handles GET /warehouse/transactions/:id.
func (h *WarehouseHandler) Get(c *gin.Context) {
	txID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), txID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, t)
}

// List handles GET /warehouse/transactions with filtering.
func (h *WarehouseHandler) List(c *gin.Context) {
	filter := warehouse.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.Query("orderBy")

	if storeStr := c.Query("storeId"); storeStr != "" {
		storeID, err := id.Parse(storeStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid storeId format"))
			return
		}
		filter.StoreID = &storeID
	}
	if productStr := c.Query("productId"); productStr != "" {
		productID, err := id.Parse(productStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		filter.ProductID = &productID
	}
	if typeStr := c.Query("type"); typeStr != "" {
		txType := warehouse.TxType(typeStr)
		if !txType.Valid() {
			h.Error(c, apperror.NewValidation("unknown transaction type").
				WithDetail("type", typeStr))
			return
		}
		filter.Type = &txType
	}
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("from must be RFC3339"))
			return
		}
		filter.From = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("to must be RFC3339"))
			return
		}
		filter.To = &to
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

// History handles GET /warehouse/products/:productId/history.
func (h *WarehouseHandler) History(c *gin.Context) {
	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 100)

	items, err := h.service.History(c.Request.Context(), productID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": items})
}
