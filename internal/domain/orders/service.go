package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cast"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/core/tx"
	"retailhub/internal/core/types"
	"retailhub/internal/domain"
	"retailhub/internal/domain/catalogs/product"
	"retailhub/internal/domain/catalogs/store"
	"retailhub/internal/domain/warehouse"
	"retailhub/pkg/logger"
	"retailhub/pkg/numerator"
)

// StoreProvider is the slice of the store service the order flow needs.
type StoreProvider interface {
	GetByID(ctx context.Context, storeID id.ID) (*store.Store, error)
}

// ProductProvider supplies product snapshots for order lines.
type ProductProvider interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// Service provides business logic for orders. Creating an order decrements
// stock and appends the matching ledger rows in the same transaction, so an
// order either fully exists (with its stock effects) or not at all.
type Service struct {
	repo      Repository
	stores    StoreProvider
	products  ProductProvider
	stock     *warehouse.Service
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new order service.
func NewService(
	repo Repository,
	stores StoreProvider,
	products ProductProvider,
	stock *warehouse.Service,
	txm tx.Manager,
	num *numerator.Service,
) *Service {
	return &Service{
		repo:      repo,
		stores:    stores,
		products:  products,
		stock:     stock,
		txManager: txm,
		numerator: num,
	}
}

// CreateLine is one requested order line. Quantity is in sale units.
type CreateLine struct {
	ProductID id.ID
	Quantity  float64

	// PriceOverride replaces the catalog price when non-nil (manual discount
	// at the counter). Nil means the channel price applies.
	PriceOverride *types.MinorUnits
}

// CreateRequest describes a new order.
type CreateRequest struct {
	StoreID      id.ID
	Channel      Channel
	Lines        []CreateLine
	CustomerName string
	Platform     string
	Discount     types.MinorUnits
	ShippingFee  types.MinorUnits
	Deposit      types.MinorUnits
	Comment      string
}

// Create builds, prices and persists a new order, decrementing stock and
// writing ledger rows atomically with the order itself.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	st, err := s.stores.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}
	if !st.IsActive() {
		return nil, apperror.NewStorePaused(st.ID.String())
	}

	if !req.Channel.Valid() {
		return nil, apperror.NewValidation("unknown sales channel").
			WithDetail("channel", string(req.Channel))
	}

	o := New(st.ID, st.Name, req.Channel)
	o.CustomerName = req.CustomerName
	o.Platform = req.Platform
	o.Discount = req.Discount
	o.ShippingFee = req.ShippingFee
	o.Comment = req.Comment

	wholesale := req.Channel == ChannelWholesale

	var totalCost types.MinorUnits
	type stockLine struct {
		productID id.ID
		baseQty   types.Quantity
		unitPrice types.MinorUnits
	}
	stockLines := make([]stockLine, 0, len(req.Lines))

	for _, line := range req.Lines {
		p, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		var unitPrice types.MinorUnits
		if line.PriceOverride != nil {
			unitPrice = *line.PriceOverride
		} else {
			unitPrice = types.MinorUnitsFromMoney(p.PriceFor(wholesale), 0)
		}

		o.AddItem(p.ID, p.Name, p.SKU, line.Quantity, unitPrice)

		baseQty := p.BaseQuantity(line.Quantity)
		totalCost += types.MinorUnits(
			float64(types.MinorUnitsFromMoney(p.CostPrice, 0)) * baseQty.Float64())

		stockLines = append(stockLines, stockLine{
			productID: p.ID,
			baseQty:   baseQty,
			unitPrice: unitPrice,
		})
	}

	o.TotalCost = totalCost

	if wholesale {
		o.Deposit = req.Deposit
		if o.Deposit > o.TotalAmount {
			return nil, apperror.NewValidation("deposit exceeds order total").
				WithDetail("deposit", o.Deposit).
				WithDetail("totalAmount", o.TotalAmount)
		}
		o.PaymentStatus = paymentStatusFor(o.Deposit, o.TotalAmount)
	} else if req.Deposit != 0 {
		return nil, apperror.NewValidation("deposit is only allowed on wholesale orders").
			WithDetail("field", "deposit")
	}

	if err := o.Validate(ctx); err != nil {
		return nil, err
	}

	number, err := s.numerator.GetNextNumber(ctx, s.numberConfig(req.Channel),
		&numerator.Options{Strategy: numerator.StrategyCached}, time.Now())
	if err != nil {
		return nil, fmt.Errorf("generate number: %w", err)
	}
	o.Number = number

	// Stock decrements join the order transaction: the nested
	// RunInTransaction calls inside the warehouse service reuse the
	// transaction already carried by ctx.
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for _, sl := range stockLines {
			_, err := s.stock.RecordOut(ctx, warehouse.Movement{
				StoreID:   o.StoreID,
				StoreName: o.StoreName,
				ProductID: sl.productID,
				Quantity:  sl.baseQty,
				UnitPrice: sl.unitPrice,
				Reason:    "sale",
				Notes:     o.Number,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "order created",
		"number", o.Number,
		"channel", o.Channel,
		"store_id", o.StoreID,
		"total", o.TotalAmount,
	)

	return o, nil
}

// Ingest normalizes and persists legacy records without stock effects:
// historical sales already happened, their stock is accounted for in the
// ledger import. Returns the number of records skipped as unusable.
func (s *Service) Ingest(ctx context.Context, records []map[string]any, strategy Strategy) (int, error) {
	if !strategy.Valid() {
		return 0, apperror.NewValidation("unknown classification strategy").
			WithDetail("strategy", string(strategy))
	}

	skipped := 0
	for _, m := range records {
		o := FromLegacyMap(m)
		ch, err := Classify(strategy, o.RawFields(
			cast.ToString(m["orderType"]),
			cast.ToString(m["type"]),
		))
		if err != nil {
			return skipped, err
		}
		o.Channel = ch

		if o.OrderDate == "" || o.Number == "" {
			skipped++
			logger.Warn(ctx, "legacy order skipped",
				"number", o.Number,
				"reason", "missing date or number",
			)
			continue
		}

		if err := s.repo.Create(ctx, o); err != nil {
			return skipped, fmt.Errorf("ingest order %s: %w", o.Number, err)
		}
	}

	return skipped, nil
}

// RecordPayment adds a wholesale payment and rolls the status forward.
func (s *Service) RecordPayment(ctx context.Context, orderID id.ID, amount types.MinorUnits) (*Order, error) {
	if amount <= 0 {
		return nil, apperror.NewValidation("payment amount must be positive").
			WithDetail("amount", amount)
	}

	o, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Channel != ChannelWholesale {
		return nil, apperror.NewBusinessRule("PAYMENT_NOT_APPLICABLE",
			"payments are tracked on wholesale orders only")
	}
	if o.PaymentStatus == PaymentPaid {
		return nil, apperror.NewBusinessRule("ALREADY_PAID", "order is fully paid")
	}

	o.Deposit += amount
	if o.Deposit > o.TotalAmount {
		o.Deposit = o.TotalAmount
	}
	o.PaymentStatus = paymentStatusFor(o.Deposit, o.TotalAmount)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "payment recorded",
		"number", o.Number,
		"amount", amount,
		"status", o.PaymentStatus,
	)

	return o, nil
}

// Delete soft-deletes an order and returns its stock. The restock ledger
// rows and the deletion mark are written in one transaction.
func (s *Service) Delete(ctx context.Context, orderID id.ID) error {
	o, err := s.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.DeletionMark {
		return nil
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, it := range o.Items {
			p, err := s.products.GetByID(ctx, it.ProductID)
			if err != nil {
				if apperror.IsNotFound(err) {
					// Product removed since the sale: nothing to restock.
					continue
				}
				return err
			}
			_, err = s.stock.StockIn(ctx, warehouse.Movement{
				StoreID:   o.StoreID,
				StoreName: o.StoreName,
				ProductID: it.ProductID,
				Quantity:  p.BaseQuantity(it.Quantity),
				UnitPrice: it.Price,
				Reason:    "order_cancelled",
				Notes:     o.Number,
			})
			if err != nil {
				return err
			}
		}
		return s.repo.SetDeletionMark(ctx, orderID, true)
	})
}

// BulkDelete deletes several orders, stopping at the first failure.
// Returns the number of orders actually deleted.
func (s *Service) BulkDelete(ctx context.Context, orderIDs []id.ID) (int, error) {
	for i, orderID := range orderIDs {
		if err := s.Delete(ctx, orderID); err != nil {
			return i, err
		}
	}
	return len(orderIDs), nil
}

// GetByID retrieves an order with its items.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("order", orderID.String())
		}
		return nil, err
	}
	return o, nil
}

// List retrieves orders with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Order], error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListFilter().Limit
	}
	if filter.OrderBy == "" {
		filter.OrderBy = DefaultListFilter().OrderBy
	}
	if filter.DateFrom != "" && !IsCanonicalDate(filter.DateFrom) {
		return domain.ListResult[*Order]{}, apperror.NewValidation("dateFrom must be YYYY-MM-DD").
			WithDetail("dateFrom", filter.DateFrom)
	}
	if filter.DateTo != "" && !IsCanonicalDate(filter.DateTo) {
		return domain.ListResult[*Order]{}, apperror.NewValidation("dateTo must be YYYY-MM-DD").
			WithDetail("dateTo", filter.DateTo)
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) numberConfig(ch Channel) numerator.Config {
	prefix := "ORD"
	if ch == ChannelWholesale {
		prefix = "WS"
	}
	return numerator.DefaultConfig(prefix)
}

func paymentStatusFor(deposit, total types.MinorUnits) PaymentStatus {
	switch {
	case deposit <= 0:
		return PaymentPending
	case deposit < total:
		return PaymentPartial
	default:
		return PaymentPaid
	}
}
