package warehouse

import (
	"context"
	"fmt"
	"time"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/core/tx"
	"retailhub/internal/core/types"
	"retailhub/internal/domain"
	"retailhub/internal/domain/catalogs/product"
	"retailhub/pkg/logger"
	"retailhub/pkg/numerator"
)

// StockStore is the slice of the product repository the ledger needs:
// stock mutation and product snapshots for denormalized ledger rows.
type StockStore interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
	AdjustStock(ctx context.Context, productID id.ID, delta types.Quantity) (types.Quantity, error)
}

// Service provides stock movement operations. Every movement updates the
// product stock and appends a ledger row in one transaction, so the ledger
// always explains the current stock.
type Service struct {
	repo      Repository
	products  StockStore
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new warehouse service.
func NewService(repo Repository, products StockStore, txm tx.Manager, num *numerator.Service) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		txManager: txm,
		numerator: num,
	}
}

// Movement describes one requested stock movement.
type Movement struct {
	StoreID   id.ID
	StoreName string
	ProductID id.ID

	// Quantity is in base units: magnitude for in/out, signed for adjustment.
	Quantity  types.Quantity
	UnitPrice types.MinorUnits
	Reason    string
	Notes     string
}

// StockIn receives stock: increments the product and appends an "in" row.
func (s *Service) StockIn(ctx context.Context, m Movement) (*Transaction, error) {
	return s.apply(ctx, TypeIn, m)
}

// RecordOut issues stock: decrements the product and appends an "out" row.
// Fails with an insufficient-stock error when the product would go negative.
func (s *Service) RecordOut(ctx context.Context, m Movement) (*Transaction, error) {
	return s.apply(ctx, TypeOut, m)
}

// Adjust applies a signed manual correction (stocktake, damage write-off).
func (s *Service) Adjust(ctx context.Context, m Movement) (*Transaction, error) {
	return s.apply(ctx, TypeAdjustment, m)
}

func (s *Service) apply(ctx context.Context, txType TxType, m Movement) (*Transaction, error) {
	p, err := s.products.GetByID(ctx, m.ProductID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", m.ProductID.String())
		}
		return nil, err
	}

	t := NewTransaction(m.StoreID, m.StoreName, m.ProductID, txType, m.Quantity)
	t.ProductName = p.Name
	t.SKU = p.SKU
	t.UnitPrice = m.UnitPrice
	t.TotalValue = types.MinorUnits(float64(m.UnitPrice) * m.Quantity.Abs().Float64())
	t.Reason = m.Reason
	t.Notes = m.Notes

	if err := t.Validate(ctx); err != nil {
		return nil, err
	}

	number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("STK"),
		&numerator.Options{Strategy: numerator.StrategyCached}, time.Now())
	if err != nil {
		return nil, fmt.Errorf("generate number: %w", err)
	}
	t.Number = number

	delta := t.SignedQuantity()
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		newStock, err := s.products.AdjustStock(ctx, m.ProductID, delta)
		if err != nil {
			return err
		}
		if newStock.IsNegative() {
			return apperror.NewInsufficientStock(
				m.ProductID.String(),
				delta.Abs().Float64(),
				newStock.Float64()+delta.Abs().Float64(),
			)
		}
		return s.repo.Append(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock movement recorded",
		"number", t.Number,
		"type", txType,
		"product_id", m.ProductID,
		"quantity", delta.Float64(),
	)

	return t, nil
}

// GetByID retrieves one ledger row.
func (s *Service) GetByID(ctx context.Context, txID id.ID) (*Transaction, error) {
	t, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("transaction", txID.String())
		}
		return nil, err
	}
	return t, nil
}

// List retrieves ledger rows with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transaction], error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListFilter().Limit
	}
	if filter.OrderBy == "" {
		filter.OrderBy = DefaultListFilter().OrderBy
	}
	return s.repo.List(ctx, filter)
}

// History retrieves the most recent movements for a product.
func (s *Service) History(ctx context.Context, productID id.ID, limit int) ([]*Transaction, error) {
	return s.repo.FindByProduct(ctx, productID, limit)
}
