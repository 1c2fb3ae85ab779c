package handlers

import (
	"github.com/gin-gonic/gin"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/domain/catalogs/store"
	"retailhub/internal/infrastructure/http/v1/dto"
)

// StoreHandler serves the store catalog plus status management.
type StoreHandler struct {
	*CatalogHandler[*store.Store, dto.CreateStoreRequest, dto.UpdateStoreRequest]
	service *store.Service
}

// NewStoreHandler creates a store handler.
func NewStoreHandler(base *BaseHandler, service *store.Service) *StoreHandler {
	config := CatalogHandlerConfig[*store.Store, dto.CreateStoreRequest, dto.UpdateStoreRequest]{
		Service:    service.CatalogService,
		EntityName: "store",

		MapCreateDTO: func(req dto.CreateStoreRequest) (*store.Store, error) {
			return req.ToEntity(), nil
		},

		MapUpdateDTO: func(req dto.UpdateStoreRequest, existing *store.Store) (*store.Store, error) {
			req.ApplyTo(existing)
			return existing, nil
		},
	}

	return &StoreHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// SetStatus handles POST /catalog/stores/:id/status - pause or resume.
func (h *StoreHandler) SetStatus(c *gin.Context) {
	storeID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetStoreStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), storeID, store.Status(req.Status)); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "store status updated")
}

// Active handles GET /catalog/stores/active - list active stores.
func (h *StoreHandler) Active(c *gin.Context) {
	stores, err := h.service.FindActive(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": stores})
}
