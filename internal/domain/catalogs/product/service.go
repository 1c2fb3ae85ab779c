package product

import (
	"context"
	"fmt"
	"time"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/core/tx"
	"retailhub/internal/core/types"
	"retailhub/internal/domain"
	"retailhub/pkg/logger"
	"retailhub/pkg/numerator"
)

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo Repository
}

// NewService creates a new Product service.
func NewService(repo Repository, txm tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txm,
		Numerator:  num,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	if p.Code == "" {
		code, err := s.Numerator().GetNextNumber(ctx, numerator.DefaultConfig("PRD"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		p.Code = code
	}

	taken, err := s.repo.ExistsByCode(ctx, p.Code)
	if err != nil {
		return err
	}
	if taken {
		return apperror.NewDuplicate("product", "code", p.Code)
	}

	return nil
}

// GetBySKU retrieves a product by SKU.
func (s *Service) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	p, err := s.repo.GetBySKU(ctx, sku)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", sku)
		}
		return nil, err
	}
	return p, nil
}

// AdjustStock changes the stock level by delta. Negative deltas that would
// drive stock below zero are rejected by the repository.
func (s *Service) AdjustStock(ctx context.Context, productID id.ID, delta types.Quantity) (types.Quantity, error) {
	newStock, err := s.repo.AdjustStock(ctx, productID, delta)
	if err != nil {
		return 0, err
	}

	logger.Debug(ctx, "stock adjusted",
		"product_id", productID,
		"delta", delta.Float64(),
		"stock", newStock.Float64(),
	)

	return newStock, nil
}

// FindLowStock retrieves products below their minimum stock level.
func (s *Service) FindLowStock(ctx context.Context) ([]*Product, error) {
	return s.repo.FindLowStock(ctx)
}
