package handlers

import (
	"retailhub/internal/domain/catalogs/category"
	"retailhub/internal/infrastructure/http/v1/dto"
)

// CategoryHTTPHandler serves the category tree.
type CategoryHTTPHandler = CatalogHandler[
	*category.Category,
	dto.CreateCategoryRequest,
	dto.UpdateCategoryRequest,
]

// NewCategoryHandler creates a category handler.
func NewCategoryHandler(base *BaseHandler, service *category.Service) *CategoryHTTPHandler {
	config := CatalogHandlerConfig[
		*category.Category,
		dto.CreateCategoryRequest,
		dto.UpdateCategoryRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "category",

		MapCreateDTO: func(req dto.CreateCategoryRequest) (*category.Category, error) {
			return req.ToEntity(), nil
		},

		MapUpdateDTO: func(req dto.UpdateCategoryRequest, existing *category.Category) (*category.Category, error) {
			req.ApplyTo(existing)
			return existing, nil
		},
	}

	return NewCatalogHandler(base, config)
}
