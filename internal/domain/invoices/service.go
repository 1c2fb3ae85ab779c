package invoices

import (
	"context"
	"fmt"
	"time"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/entity"
	"retailhub/internal/core/id"
	"retailhub/internal/core/tx"
	"retailhub/internal/core/types"
	"retailhub/internal/domain"
	"retailhub/internal/domain/orders"
	"retailhub/pkg/logger"
	"retailhub/pkg/numerator"
)

// ListFilter narrows invoice queries.
type ListFilter struct {
	StoreID *id.ID
	OrderID *id.ID
	Status  *Status

	OrderBy string
	Limit   int
	Offset  int
}

// Repository defines storage operations for invoices.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)
	GetByOrderID(ctx context.Context, orderID id.ID) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error)
}

// OrderProvider is the slice of the order service invoicing needs.
type OrderProvider interface {
	GetByID(ctx context.Context, orderID id.ID) (*orders.Order, error)
}

// Service provides invoice business logic.
type Service struct {
	repo      Repository
	orders    OrderProvider
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new invoice service.
func NewService(repo Repository, orderProv OrderProvider, txm tx.Manager, num *numerator.Service) *Service {
	return &Service{
		repo:      repo,
		orders:    orderProv,
		txManager: txm,
		numerator: num,
	}
}

// CreateFromOrder issues an invoice for an order. One invoice per order;
// wholesale deposits carry over as the initial paid amount.
func (s *Service) CreateFromOrder(ctx context.Context, orderID id.ID) (*Invoice, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.DeletionMark {
		return nil, apperror.NewBusinessRule("ORDER_DELETED", "cannot invoice a deleted order")
	}

	if existing, err := s.repo.GetByOrderID(ctx, orderID); err == nil && existing != nil {
		return nil, apperror.NewDuplicate("invoice", "orderId", orderID.String())
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	inv := &Invoice{
		Document:     entity.NewDocument(o.StoreID, o.StoreName),
		OrderID:      o.ID,
		OrderNumber:  o.Number,
		CustomerName: o.CustomerName,
		TotalAmount:  o.TotalAmount,
		PaidAmount:   o.Deposit,
		Status:       StatusIssued,
	}
	if inv.PaidAmount >= inv.TotalAmount && inv.TotalAmount > 0 {
		inv.Status = StatusPaid
	}

	if err := inv.Validate(ctx); err != nil {
		return nil, err
	}

	// Strict numbering: invoices must not have gaps.
	number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("INV"),
		&numerator.Options{Strategy: numerator.StrategyStrict}, time.Now())
	if err != nil {
		return nil, fmt.Errorf("generate number: %w", err)
	}
	inv.Number = number

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice issued",
		"number", inv.Number,
		"order", inv.OrderNumber,
		"total", inv.TotalAmount,
	)

	return inv, nil
}

// RecordPayment registers a payment against the invoice.
func (s *Service) RecordPayment(ctx context.Context, invoiceID id.ID, amount types.MinorUnits) (*Invoice, error) {
	if amount <= 0 {
		return nil, apperror.NewValidation("payment amount must be positive").
			WithDetail("amount", amount)
	}

	inv, err := s.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == StatusVoided {
		return nil, apperror.NewBusinessRule("INVOICE_VOIDED", "invoice is voided")
	}
	if inv.Status == StatusPaid {
		return nil, apperror.NewBusinessRule("ALREADY_PAID", "invoice is fully paid")
	}

	inv.PaidAmount += amount
	if inv.PaidAmount >= inv.TotalAmount {
		inv.PaidAmount = inv.TotalAmount
		inv.Status = StatusPaid
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	return inv, nil
}

// Void cancels an issued invoice.
func (s *Service) Void(ctx context.Context, invoiceID id.ID) error {
	inv, err := s.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if inv.Status == StatusVoided {
		return nil
	}

	inv.Status = StatusVoided
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, inv)
	})
}

// GetByID retrieves an invoice.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("invoice", invoiceID.String())
		}
		return nil, err
	}
	return inv, nil
}

// List retrieves invoices with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "-date"
	}
	return s.repo.List(ctx, filter)
}
