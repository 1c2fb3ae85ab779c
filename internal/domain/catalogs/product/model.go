// Package product provides the Product catalog: sellable goods with retail
// and wholesale pricing, stock levels and unit conversion.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/entity"
	"retailhub/internal/core/types"
)

// defaultWholesaleRatio is applied when a product has no explicit
// wholesale price: wholesale = price * 0.8.
var defaultWholesaleRatio = decimal.NewFromFloat(0.8)

// Product represents a sellable good.
type Product struct {
	entity.Catalog

	// SKU is the stock-keeping unit (unique, may differ from Code)
	SKU string `db:"sku" json:"sku"`

	// Barcode for POS scanning
	Barcode string `db:"barcode" json:"barcode,omitempty"`

	// CategoryID links to the category tree (nullable)
	CategoryID *string `db:"category_id" json:"categoryId,omitempty"`

	// Price is the retail unit price
	Price types.Money `db:"price" json:"price"`

	// WholesalePrice is the wholesale unit price. Zero means "not set";
	// EffectiveWholesalePrice derives the default in that case.
	WholesalePrice types.Money `db:"wholesale_price" json:"wholesalePrice"`

	// CostPrice is the purchase cost, used for profit reporting on new orders
	CostPrice types.Money `db:"cost_price" json:"costPrice"`

	// Stock is the current on-hand quantity in base units
	Stock types.Quantity `db:"stock" json:"stock"`

	// Unit is the base unit of measure (pcs, kg, box)
	Unit string `db:"unit" json:"unit"`

	// SaleUnit is the selling unit; empty means same as Unit
	SaleUnit string `db:"sale_unit" json:"saleUnit,omitempty"`

	// Conversion is how many base units one sale unit contains (default 1)
	Conversion float64 `db:"conversion" json:"conversion"`

	// MinStock triggers low-stock alerts when Stock falls below it
	MinStock types.Quantity `db:"min_stock" json:"minStock"`

	// MaxStock is the reorder ceiling (0 = unlimited)
	MaxStock types.Quantity `db:"max_stock" json:"maxStock"`
}

// New creates a new Product with sane unit defaults.
func New(code, name, sku string, price types.Money) *Product {
	return &Product{
		Catalog:    entity.NewCatalog(code, name),
		SKU:        sku,
		Price:      price,
		Unit:       "pcs",
		Conversion: 1,
	}
}

// EffectiveWholesalePrice returns the explicit wholesale price, or the
// retail price discounted by the default ratio when none is set.
func (p *Product) EffectiveWholesalePrice() types.Money {
	if !p.WholesalePrice.IsZero() {
		return p.WholesalePrice
	}
	return p.Price.Mul(defaultWholesaleRatio)
}

// PriceFor returns the unit price for the given channel-like wholesale flag.
func (p *Product) PriceFor(wholesale bool) types.Money {
	if wholesale {
		return p.EffectiveWholesalePrice()
	}
	return p.Price
}

// BaseQuantity converts a quantity expressed in sale units to base units.
func (p *Product) BaseQuantity(saleQty float64) types.Quantity {
	conv := p.Conversion
	if conv <= 0 {
		conv = 1
	}
	return types.NewQuantityFromFloat64(saleQty * conv)
}

// IsLowStock reports whether current stock fell below the minimum.
func (p *Product) IsLowStock() bool {
	return p.MinStock.IsPositive() && p.Stock < p.MinStock
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.SKU == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}

	if p.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "price")
	}

	if p.WholesalePrice.IsNegative() {
		return apperror.NewValidation("wholesale price must not be negative").
			WithDetail("field", "wholesalePrice")
	}

	if p.Conversion < 0 {
		return apperror.NewValidation("conversion must not be negative").
			WithDetail("field", "conversion")
	}

	return nil
}
