package category

import (
	"context"
	"fmt"
	"time"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/core/tx"
	"retailhub/internal/domain"
	"retailhub/pkg/numerator"
)

// Repository defines storage operations for the Category catalog.
type Repository interface {
	domain.CatalogRepository[*Category]
}

// Service provides business logic for the Category catalog.
type Service struct {
	*domain.CatalogService[*Category]
	repo Repository
}

// NewService creates a new Category service.
func NewService(repo Repository, txm tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Category]{
		Repo:       repo,
		TxManager:  txm,
		Numerator:  num,
		EntityName: "category",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, c *Category) error {
	if c.Code == "" {
		code, err := s.Numerator().GetNextNumber(ctx, numerator.DefaultConfig("CAT"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}

	if c.ParentID != nil && *c.ParentID != "" {
		// Parent must exist and must be a folder.
		parentID, err := id.Parse(*c.ParentID)
		if err != nil {
			return apperror.NewValidation("invalid parent category id").
				WithDetail("parentId", *c.ParentID)
		}
		parent, err := s.GetByID(ctx, parentID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewValidation("parent category does not exist").
					WithDetail("parentId", *c.ParentID)
			}
			return err
		}
		if !parent.IsFolder {
			return apperror.NewValidation("parent category must be a folder").
				WithDetail("parentId", *c.ParentID)
		}
	}

	return nil
}
