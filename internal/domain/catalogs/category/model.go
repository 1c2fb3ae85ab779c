// Package category provides the hierarchical product category catalog.
package category

import (
	"context"

	"retailhub/internal/core/entity"
)

// Category groups products for navigation and reporting.
// Categories form a tree via ParentID / IsFolder from the base catalog.
type Category struct {
	entity.Catalog

	// Description is optional free text
	Description string `db:"description" json:"description,omitempty"`

	// SortOrder controls display position among siblings
	SortOrder int `db:"sort_order" json:"sortOrder"`
}

// New creates a new Category.
func New(code, name string) *Category {
	return &Category{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}
